// Package httpapi exposes the identity service over HTTP:
// POST /register, POST /login and POST /introspect.
package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/coursekeeper/internal/common"
	"github.com/dmitrijs2005/coursekeeper/internal/httpx"
	"github.com/dmitrijs2005/coursekeeper/internal/identity/models"
	"github.com/dmitrijs2005/coursekeeper/internal/identity/services"
	"github.com/dmitrijs2005/coursekeeper/internal/logging"
	"github.com/go-chi/chi/v5"
)

type registerRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required"`
}

type introspectRequest struct {
	Token string `json:"token" validate:"required"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// IntrospectResponse is the body of a successful POST /introspect.
type IntrospectResponse struct {
	Scope  string `json:"scope"`
	UserID string `json:"user_id"`
}

// statusOf is the identity service status table.
func statusOf(k common.Kind) int {
	switch k {
	case common.KindValidation, common.KindConflict, common.KindNotFound:
		return http.StatusBadRequest
	case common.KindAuth:
		return http.StatusUnauthorized
	case common.KindInvalidToken, common.KindExpiredToken:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

type Handler struct {
	users       *services.UserService
	logger      logging.Logger
	debugRoutes bool
}

func NewHandler(us *services.UserService, l logging.Logger, debugRoutes bool) *Handler {
	return &Handler{users: us, logger: l.With("module", "identity.httpapi"), debugRoutes: debugRoutes}
}

// Routes builds the identity router.
func (h *Handler) Routes() http.Handler {
	r := httpx.NewRouter(h.logger)

	r.Post("/register", h.register)
	r.Post("/login", h.login)
	r.Post("/introspect", h.introspect)

	// Diagnostic listing; unauthenticated, never enable in production.
	if h.debugRoutes {
		r.Group(func(r chi.Router) {
			r.Get("/getAllUsers", h.getAllUsers)
		})
	}

	return r
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpx.DecodeJSON(r, &req, "Missing required fields: username, password, and role are required"); err != nil {
		httpx.WriteError(w, statusOf, err)
		return
	}

	if _, err := h.users.Register(r.Context(), req.Username, req.Password, req.Role); err != nil {
		httpx.WriteError(w, statusOf, err)
		return
	}

	httpx.WriteMessage(w, http.StatusOK, "User registered successfully")
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req, "Missing required fields: username and password are required"); err != nil {
		httpx.WriteError(w, statusOf, err)
		return
	}

	token, err := h.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		httpx.WriteError(w, statusOf, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tokenResponse{Token: token})
}

func (h *Handler) introspect(w http.ResponseWriter, r *http.Request) {
	var req introspectRequest
	if err := httpx.DecodeJSON(r, &req, "Missing token"); err != nil {
		httpx.WriteError(w, statusOf, err)
		return
	}

	p, err := h.users.Introspect(r.Context(), req.Token)
	if err != nil {
		httpx.WriteError(w, statusOf, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, IntrospectResponse{Scope: p.Role.String(), UserID: p.SubjectID})
}

func (h *Handler) getAllUsers(w http.ResponseWriter, r *http.Request) {
	list, err := h.users.ListUsers(r.Context())
	if err != nil {
		httpx.WriteError(w, statusOf, err)
		return
	}

	views := make([]models.IdentityView, 0, len(list))
	for _, u := range list {
		views = append(views, u.View())
	}
	httpx.WriteJSON(w, http.StatusOK, views)
}
