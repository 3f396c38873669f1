package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"reflect"
	"strings"

	"github.com/dmitrijs2005/coursekeeper/internal/common"
	"github.com/go-playground/validator/v10"
)

// MsgJSONExpected is returned for bodies that are not a JSON object.
const MsgJSONExpected = "Invalid input, JSON data expected"

const maxRequestBody = 1 << 20

var validate = newValidator()

// newValidator reports fields by their json names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// MessageResponse is the body of every non-data response.
type MessageResponse struct {
	Message string `json:"message"`
}

// WriteJSON writes data as JSON with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, MessageResponse{Message: message})
}

// StatusMapper maps an error kind to an HTTP status code.
type StatusMapper func(common.Kind) int

// WriteError writes err's user-facing message with the status statusOf
// assigns to its kind.
func WriteError(w http.ResponseWriter, statusOf StatusMapper, err error) {
	WriteMessage(w, statusOf(common.KindOf(err)), common.MessageOf(err))
}

// IsJSON reports whether the request declares a JSON body
// (application/json or any +json type).
func IsJSON(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}

// DecodeJSON decodes the request body into dst and runs struct validation.
// A missing or malformed JSON body yields a validation error with
// MsgJSONExpected; a missing required field yields one with missingMsg and
// an over-long field one naming the field and its limit.
func DecodeJSON(r *http.Request, dst any, missingMsg string) error {
	if !IsJSON(r) {
		return common.NewError(common.KindValidation, MsgJSONExpected, nil)
	}

	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxRequestBody))
	if err := dec.Decode(dst); err != nil {
		return common.NewError(common.KindValidation, MsgJSONExpected, err)
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return common.NewError(common.KindValidation, validationMessage(verrs, missingMsg), err)
		}
		return common.NewError(common.KindInternal, "Internal error", err)
	}
	return nil
}

func validationMessage(verrs validator.ValidationErrors, missingMsg string) string {
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return missingMsg
		}
	}
	for _, fe := range verrs {
		if fe.Tag() == "max" {
			return fmt.Sprintf("Field %s must be at most %s characters", fe.Field(), fe.Param())
		}
	}
	return missingMsg
}
