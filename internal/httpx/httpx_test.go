package httpx

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dmitrijs2005/coursekeeper/internal/common"
	"github.com/dmitrijs2005/coursekeeper/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginBody struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func jsonRequest(body, contentType string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	if contentType != "" {
		r.Header.Set("Content-Type", contentType)
	}
	return r
}

func TestIsJSON(t *testing.T) {
	assert.True(t, IsJSON(jsonRequest("{}", "application/json")))
	assert.True(t, IsJSON(jsonRequest("{}", "application/json; charset=utf-8")))
	assert.True(t, IsJSON(jsonRequest("{}", "application/problem+json")))
	assert.False(t, IsJSON(jsonRequest("{}", "text/plain")))
	assert.False(t, IsJSON(jsonRequest("{}", "")))
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name, body, ct, msg string
	}{
		{"not json content type", `{"username":"a","password":"b"}`, "text/plain", MsgJSONExpected},
		{"malformed", `{"username":`, "application/json", MsgJSONExpected},
		{"wrong type", `{"username":5,"password":"b"}`, "application/json", MsgJSONExpected},
		{"missing field", `{"username":"a"}`, "application/json", "missing"},
		{"empty field", `{"username":"a","password":""}`, "application/json", "missing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dst loginBody
			err := DecodeJSON(jsonRequest(tt.body, tt.ct), &dst, "missing")
			require.Error(t, err)
			assert.Equal(t, common.KindValidation, common.KindOf(err))
			assert.Equal(t, tt.msg, common.MessageOf(err))
		})
	}

	var dst loginBody
	require.NoError(t, DecodeJSON(jsonRequest(`{"username":"a","password":"b"}`, "application/json"), &dst, "missing"))
	assert.Equal(t, loginBody{Username: "a", Password: "b"}, dst)
}

func TestDecodeJSON_MaxLength(t *testing.T) {
	type body struct {
		Title string `json:"title" validate:"required,max=5"`
		Notes string `json:"notes" validate:"max=3"`
	}

	var dst body
	err := DecodeJSON(jsonRequest(`{"title":"abcdef"}`, "application/json"), &dst, "missing")
	require.Error(t, err)
	assert.Equal(t, common.KindValidation, common.KindOf(err))
	assert.Equal(t, "Field title must be at most 5 characters", common.MessageOf(err))

	err = DecodeJSON(jsonRequest(`{"notes":"abcd"}`, "application/json"), &dst, "missing")
	assert.Equal(t, "missing", common.MessageOf(err), "a missing field wins over an over-long one")

	dst = body{}
	require.NoError(t, DecodeJSON(jsonRequest(`{"title":"abcde","notes":"abc"}`, "application/json"), &dst, "missing"))
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()
	statusOf := func(k common.Kind) int {
		if k == common.KindConflict {
			return http.StatusBadRequest
		}
		return http.StatusInternalServerError
	}

	WriteError(w, statusOf, common.NewError(common.KindConflict, "Username already exists", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"message":"Username already exists"}`, w.Body.String())

	w = httptest.NewRecorder()
	WriteError(w, statusOf, assert.AnError)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"Internal error"}`, w.Body.String())
}

func TestNewRouter_Healthz(t *testing.T) {
	r := NewRouter(logging.Nop{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
