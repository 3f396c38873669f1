// Package gate is the resource service's authorization layer. It extracts
// the bearer assertion from a request, has the identity service introspect
// it over the network and enforces a per-operation role allow-list. Any
// failure along the way denies.
package gate

import (
	"context"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/coursekeeper/internal/common"
	"github.com/dmitrijs2005/coursekeeper/internal/httpx"
	"github.com/dmitrijs2005/coursekeeper/internal/logging"
)

// Introspector asks the identity service to validate an assertion.
// Implementations return a principal only for an affirmative answer.
type Introspector interface {
	Introspect(ctx context.Context, token string) (*common.Principal, error)
}

// Policy is the role allow-list of one protected operation.
type Policy struct {
	Operation     string
	Allowed       []common.Role
	DeniedMessage string
}

func (p Policy) Allows(r common.Role) bool {
	return slices.Contains(p.Allowed, r)
}

var (
	ListCourses  = Policy{Operation: "list courses", Allowed: []common.Role{common.RoleStudent, common.RoleInstructor}, DeniedMessage: "Invalid role"}
	CreateCourse = Policy{Operation: "create course", Allowed: []common.Role{common.RoleInstructor}, DeniedMessage: "Only Instructors can create courses"}
	Enroll       = Policy{Operation: "enroll", Allowed: []common.Role{common.RoleStudent}, DeniedMessage: "Only Students can enroll in courses"}
)

var errTokenRejected = common.NewError(common.KindUnauthorized, "Invalid token", nil)

// DefaultTimeout bounds an introspection call when no positive timeout is
// configured.
const DefaultTimeout = 5 * time.Second

var fallbackTimeout = DefaultTimeout

func effectiveTimeout(d time.Duration) time.Duration {
	if d <= 0 {
		return fallbackTimeout
	}
	return d
}

// BearerToken extracts the token from an Authorization header value of
// exactly the form "Bearer <token>".
func BearerToken(header string) (string, error) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != common.BearerScheme || parts[1] == "" {
		return "", common.ErrMissingAuth
	}
	return parts[1], nil
}

type Gate struct {
	introspector Introspector
	timeout      time.Duration
	logger       logging.Logger
}

// New returns a gate that waits at most timeout for each introspection.
// A non-positive timeout means DefaultTimeout.
func New(i Introspector, timeout time.Duration, l logging.Logger) *Gate {
	return &Gate{introspector: i, timeout: effectiveTimeout(timeout), logger: l.With("module", "gate")}
}

// Authorize returns the principal behind header if the identity service
// vouches for it and its role is allowed by policy.
func (g *Gate) Authorize(ctx context.Context, header string, policy Policy) (*common.Principal, error) {
	token, err := BearerToken(header)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	p, err := g.introspector.Introspect(ctx, token)
	if err != nil || p == nil || p.SubjectID == "" || !p.Role.Valid() {
		g.logger.Warn(ctx, "introspection denied", "operation", policy.Operation, "error", err)
		return nil, errTokenRejected
	}

	if !policy.Allows(p.Role) {
		return nil, common.NewError(common.KindUnauthorized, policy.DeniedMessage, nil)
	}

	return p, nil
}

// Require is middleware that authorizes the request against policy and
// stores the principal in the request context.
func (g *Gate) Require(policy Policy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, err := g.Authorize(r.Context(), r.Header.Get(common.AuthorizationHeaderName), policy)
			if err != nil {
				httpx.WriteMessage(w, http.StatusForbidden, common.MessageOf(err))
				return
			}
			next.ServeHTTP(w, r.WithContext(common.WithPrincipal(r.Context(), p)))
		})
	}
}
