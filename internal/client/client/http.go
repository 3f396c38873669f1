package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/coursekeeper/internal/common"
	"github.com/dmitrijs2005/coursekeeper/internal/netx"
	"github.com/dmitrijs2005/coursekeeper/internal/resource/models"
)

// HTTPClient talks to both services over JSON/HTTP.
type HTTPClient struct {
	identityURL string
	resourceURL string
	http        *http.Client
}

func NewHTTPClient(identityURL, resourceURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		identityURL: strings.TrimRight(identityURL, "/"),
		resourceURL: strings.TrimRight(resourceURL, "/"),
		http:        &http.Client{Timeout: timeout},
	}
}

// mapError turns transport failures into ErrUnavailable and 401/403 answers
// into ErrUnauthorized. The server message stays in the error text.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	var se *netx.StatusError
	if errors.As(err, &se) {
		switch se.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %s", ErrUnauthorized, se.Message)
		}
		return err
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

func bearer(token string) map[string]string {
	return map[string]string{common.AuthorizationHeaderName: common.BearerScheme + " " + token}
}

func (c *HTTPClient) Register(ctx context.Context, username, password, role string) error {
	in := map[string]string{"username": username, "password": password, "role": role}
	return mapError(netx.DoJSON(ctx, c.http, http.MethodPost, c.identityURL+"/register", nil, in, nil))
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (string, error) {
	in := map[string]string{"username": username, "password": password}
	var out struct {
		Token string `json:"token"`
	}
	if err := netx.DoJSON(ctx, c.http, http.MethodPost, c.identityURL+"/login", nil, in, &out); err != nil {
		return "", mapError(err)
	}
	return out.Token, nil
}

func (c *HTTPClient) Introspect(ctx context.Context, token string) (*common.Principal, error) {
	var out struct {
		Scope  string `json:"scope"`
		UserID string `json:"user_id"`
	}
	in := map[string]string{"token": token}
	if err := netx.DoJSON(ctx, c.http, http.MethodPost, c.identityURL+"/introspect", nil, in, &out); err != nil {
		return nil, mapError(err)
	}
	role, ok := common.ParseRole(out.Scope)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected scope %q", ErrUnauthorized, out.Scope)
	}
	return &common.Principal{SubjectID: out.UserID, Role: role}, nil
}

func (c *HTTPClient) ListCourses(ctx context.Context, token string) ([]*models.Course, error) {
	var out []*models.Course
	if err := netx.DoJSON(ctx, c.http, http.MethodGet, c.resourceURL+"/courses", bearer(token), nil, &out); err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

func (c *HTTPClient) CreateCourse(ctx context.Context, token, title, description string) (*models.Course, error) {
	in := map[string]string{"title": title, "description": description}
	var out models.Course
	if err := netx.DoJSON(ctx, c.http, http.MethodPost, c.resourceURL+"/course", bearer(token), in, &out); err != nil {
		return nil, mapError(err)
	}
	return &out, nil
}

func (c *HTTPClient) Enroll(ctx context.Context, token, courseTitle string) (*models.Course, error) {
	in := map[string]string{"course_title": courseTitle}
	var out models.Course
	if err := netx.DoJSON(ctx, c.http, http.MethodPost, c.resourceURL+"/enroll", bearer(token), in, &out); err != nil {
		return nil, mapError(err)
	}
	return &out, nil
}

// Ping probes /healthz on both services.
func (c *HTTPClient) Ping(ctx context.Context) error {
	for _, base := range []string{c.identityURL, c.resourceURL} {
		if err := netx.DoJSON(ctx, c.http, http.MethodGet, base+"/healthz", nil, nil, nil); err != nil {
			return mapError(err)
		}
	}
	return nil
}
