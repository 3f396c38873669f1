package gate

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/coursekeeper/internal/common"
	"github.com/dmitrijs2005/coursekeeper/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIntrospector struct {
	p     *common.Principal
	err   error
	delay time.Duration
	calls int
}

func (f *fakeIntrospector) Introspect(ctx context.Context, token string) (*common.Principal, error) {
	f.calls++
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.p, f.err
}

func student() *common.Principal    { return &common.Principal{SubjectID: "s-1", Role: common.RoleStudent} }
func instructor() *common.Principal { return &common.Principal{SubjectID: "i-1", Role: common.RoleInstructor} }

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"", "", false},
		{"Bearer", "", false},
		{"Bearer ", "", false},
		{"bearer abc", "", false},
		{"Basic abc", "", false},
		{"Bearer abc def", "", false},
		{"Bearer  abc", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, err := BearerToken(tt.header)
			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, tt.token, got)
				return
			}
			assert.ErrorIs(t, err, common.ErrMissingAuth)
			assert.Equal(t, "Missing or invalid Authorization header", common.MessageOf(err))
		})
	}
}

func TestAuthorize_PolicyTable(t *testing.T) {
	tests := []struct {
		policy Policy
		p      *common.Principal
		ok     bool
		msg    string
	}{
		{ListCourses, student(), true, ""},
		{ListCourses, instructor(), true, ""},
		{CreateCourse, instructor(), true, ""},
		{CreateCourse, student(), false, "Only Instructors can create courses"},
		{Enroll, student(), true, ""},
		{Enroll, instructor(), false, "Only Students can enroll in courses"},
	}
	for _, tt := range tests {
		t.Run(tt.policy.Operation+"/"+tt.p.Role.String(), func(t *testing.T) {
			g := New(&fakeIntrospector{p: tt.p}, time.Second, logging.Nop{})
			got, err := g.Authorize(context.Background(), "Bearer t", tt.policy)
			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, tt.p, got)
				return
			}
			assert.ErrorIs(t, err, common.ErrUnauthorized)
			assert.Equal(t, tt.msg, common.MessageOf(err))
		})
	}
}

func TestAuthorize_FailsClosed(t *testing.T) {
	tests := []struct {
		name string
		fi   *fakeIntrospector
	}{
		{"verifier rejects", &fakeIntrospector{err: common.ErrInvalidToken}},
		{"transport error", &fakeIntrospector{err: errors.New("connection refused")}},
		{"nil principal without error", &fakeIntrospector{}},
		{"unknown role", &fakeIntrospector{p: &common.Principal{SubjectID: "x", Role: "Admin"}}},
		{"empty subject", &fakeIntrospector{p: &common.Principal{Role: common.RoleStudent}}},
		{"timeout", &fakeIntrospector{p: student(), delay: time.Second}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(tt.fi, 20*time.Millisecond, logging.Nop{})
			_, err := g.Authorize(context.Background(), "Bearer t", ListCourses)
			assert.ErrorIs(t, err, common.ErrUnauthorized)
			assert.Equal(t, "Invalid token", common.MessageOf(err))
		})
	}
}

type hangingIntrospector struct{}

func (hangingIntrospector) Introspect(ctx context.Context, _ string) (*common.Principal, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestAuthorize_ZeroTimeoutStillBounded(t *testing.T) {
	old := fallbackTimeout
	fallbackTimeout = 50 * time.Millisecond
	t.Cleanup(func() { fallbackTimeout = old })

	for _, timeout := range []time.Duration{0, -time.Second} {
		g := New(hangingIntrospector{}, timeout, logging.Nop{})
		assert.Equal(t, 50*time.Millisecond, g.timeout)

		start := time.Now()
		p, err := g.Authorize(context.Background(), "Bearer tok", ListCourses)
		assert.Nil(t, p)
		assert.Equal(t, "Invalid token", common.MessageOf(err))
		assert.Less(t, time.Since(start), 2*time.Second)
	}

	assert.Equal(t, 50*time.Millisecond, NewHTTPIntrospector("http://localhost", 0).client.Timeout)
	assert.Equal(t, time.Second, NewHTTPIntrospector("http://localhost", time.Second).client.Timeout)
}

func TestAuthorize_MissingHeaderSkipsIntrospection(t *testing.T) {
	fi := &fakeIntrospector{p: student()}
	g := New(fi, time.Second, logging.Nop{})

	_, err := g.Authorize(context.Background(), "Token abc", ListCourses)
	assert.ErrorIs(t, err, common.ErrMissingAuth)
	assert.Zero(t, fi.calls)
}

func TestRequire(t *testing.T) {
	g := New(&fakeIntrospector{p: instructor()}, time.Second, logging.Nop{})

	var seen *common.Principal
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = common.PrincipalFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	h := g.Require(CreateCourse)(next)

	req := httptest.NewRequest(http.MethodPost, "/course", nil)
	req.Header.Set("Authorization", "Bearer t")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, instructor(), seen)

	seen = nil
	h = g.Require(Enroll)(next)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"message":"Only Students can enroll in courses"}`, w.Body.String())
	assert.Nil(t, seen)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/enroll", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"message":"Missing or invalid Authorization header"}`, w.Body.String())
}
