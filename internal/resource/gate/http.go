package gate

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/coursekeeper/internal/common"
	"github.com/dmitrijs2005/coursekeeper/internal/netx"
)

type introspectRequest struct {
	Token string `json:"token"`
}

type introspectResponse struct {
	Scope  string `json:"scope"`
	UserID string `json:"user_id"`
}

// HTTPIntrospector calls POST {baseURL}/introspect.
type HTTPIntrospector struct {
	url    string
	client *http.Client
}

func NewHTTPIntrospector(baseURL string, timeout time.Duration) *HTTPIntrospector {
	return &HTTPIntrospector{
		url:    strings.TrimRight(baseURL, "/") + "/introspect",
		client: &http.Client{Timeout: effectiveTimeout(timeout)},
	}
}

// Introspect trusts only a 2xx answer carrying a recognized scope and a
// subject id.
func (h *HTTPIntrospector) Introspect(ctx context.Context, token string) (*common.Principal, error) {
	var out introspectResponse
	if err := netx.DoJSON(ctx, h.client, http.MethodPost, h.url, nil, introspectRequest{Token: token}, &out); err != nil {
		return nil, err
	}
	return principalOf(out.Scope, out.UserID)
}

func principalOf(scope, userID string) (*common.Principal, error) {
	role, ok := common.ParseRole(scope)
	if !ok || userID == "" {
		return nil, common.ErrInvalidToken
	}
	return &common.Principal{SubjectID: userID, Role: role}, nil
}
