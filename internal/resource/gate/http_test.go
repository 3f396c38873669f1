package gate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/coursekeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identityStub(t *testing.T, status int, body string, delay time.Duration) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/introspect" || r.Method != http.MethodPost {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		var req introspectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if delay > 0 {
			time.Sleep(delay)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPIntrospector_OK(t *testing.T) {
	srv := identityStub(t, http.StatusOK, `{"scope":"Student","user_id":"u-1"}`, 0)

	p, err := NewHTTPIntrospector(srv.URL+"/", time.Second).Introspect(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, &common.Principal{SubjectID: "u-1", Role: common.RoleStudent}, p)
}

func TestHTTPIntrospector_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"forbidden", http.StatusForbidden, `{"message":"Invalid token"}`},
		{"server error", http.StatusInternalServerError, `oops`},
		{"unknown scope", http.StatusOK, `{"scope":"Admin","user_id":"u-1"}`},
		{"missing user", http.StatusOK, `{"scope":"Student"}`},
		{"not json", http.StatusOK, `<html>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := identityStub(t, tt.status, tt.body, 0)
			p, err := NewHTTPIntrospector(srv.URL, time.Second).Introspect(context.Background(), "tok")
			assert.Error(t, err)
			assert.Nil(t, p)
		})
	}
}

func TestHTTPIntrospector_TimeoutAndUnreachable(t *testing.T) {
	srv := identityStub(t, http.StatusOK, `{"scope":"Student","user_id":"u-1"}`, 300*time.Millisecond)
	_, err := NewHTTPIntrospector(srv.URL, 50*time.Millisecond).Introspect(context.Background(), "tok")
	assert.Error(t, err)

	_, err = NewHTTPIntrospector("http://127.0.0.1:1", time.Second).Introspect(context.Background(), "tok")
	assert.Error(t, err)
}
