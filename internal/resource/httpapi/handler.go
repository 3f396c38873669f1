// Package httpapi exposes the resource service over HTTP. Course routes sit
// behind the authorization gate; POST /user and the diagnostic listings do
// not.
package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/coursekeeper/internal/common"
	"github.com/dmitrijs2005/coursekeeper/internal/httpx"
	"github.com/dmitrijs2005/coursekeeper/internal/logging"
	"github.com/dmitrijs2005/coursekeeper/internal/resource/gate"
	"github.com/dmitrijs2005/coursekeeper/internal/resource/services"
	"github.com/go-chi/chi/v5"
)

type createUserRequest struct {
	ID    string `json:"id" validate:"required,max=36"`
	Name  string `json:"name" validate:"required,max=100"`
	Role  string `json:"role" validate:"required"`
	Email string `json:"email" validate:"required,max=100"`
	Notes string `json:"notes" validate:"max=100"`
}

type createCourseRequest struct {
	Title       string `json:"title" validate:"required,max=100"`
	Description string `json:"description" validate:"required,max=100"`
}

type enrollRequest struct {
	CourseTitle string `json:"course_title" validate:"required,max=100"`
}

func statusOf(k common.Kind) int {
	switch k {
	case common.KindMissingAuth, common.KindUnauthorized, common.KindInvalidToken, common.KindExpiredToken:
		return http.StatusForbidden
	case common.KindValidation, common.KindConflict, common.KindNotFound:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

type Handler struct {
	courses     *services.CourseService
	users       *services.UserService
	gate        *gate.Gate
	logger      logging.Logger
	debugRoutes bool
}

func NewHandler(cs *services.CourseService, us *services.UserService, g *gate.Gate, l logging.Logger, debugRoutes bool) *Handler {
	return &Handler{
		courses:     cs,
		users:       us,
		gate:        g,
		logger:      l.With("module", "resource.httpapi"),
		debugRoutes: debugRoutes,
	}
}

func (h *Handler) Routes() http.Handler {
	r := httpx.NewRouter(h.logger)

	r.Post("/user", h.createUser)

	r.With(h.gate.Require(gate.ListCourses)).Get("/courses", h.listCourses)
	r.With(h.gate.Require(gate.CreateCourse)).Post("/course", h.createCourse)
	r.With(h.gate.Require(gate.Enroll)).Post("/enroll", h.enroll)

	// Diagnostic listings; unauthenticated, never enable in production.
	if h.debugRoutes {
		r.Group(func(r chi.Router) {
			r.Get("/getAllUsers", h.getAllUsers)
			r.Get("/enrollments", h.getEnrollments)
		})
	}

	return r
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := httpx.DecodeJSON(r, &req, "Missing required fields: id, name, role, and email are required"); err != nil {
		httpx.WriteError(w, statusOf, err)
		return
	}

	if _, err := h.users.CreateUser(r.Context(), req.ID, req.Name, req.Role, req.Email, req.Notes); err != nil {
		httpx.WriteError(w, statusOf, err)
		return
	}

	httpx.WriteMessage(w, http.StatusOK, "User created successfully")
}

func (h *Handler) listCourses(w http.ResponseWriter, r *http.Request) {
	p, _ := common.PrincipalFrom(r.Context())

	list, err := h.courses.ListCourses(r.Context(), p)
	if err != nil {
		httpx.WriteError(w, statusOf, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) createCourse(w http.ResponseWriter, r *http.Request) {
	p, _ := common.PrincipalFrom(r.Context())

	var req createCourseRequest
	if err := httpx.DecodeJSON(r, &req, "Missing required fields: title and description are required"); err != nil {
		httpx.WriteError(w, statusOf, err)
		return
	}

	course, err := h.courses.CreateCourse(r.Context(), p, req.Title, req.Description)
	if err != nil {
		httpx.WriteError(w, statusOf, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, course)
}

func (h *Handler) enroll(w http.ResponseWriter, r *http.Request) {
	p, _ := common.PrincipalFrom(r.Context())

	var req enrollRequest
	if err := httpx.DecodeJSON(r, &req, "Missing required field: course_title is required"); err != nil {
		httpx.WriteError(w, statusOf, err)
		return
	}

	course, err := h.courses.Enroll(r.Context(), p, req.CourseTitle)
	if err != nil {
		httpx.WriteError(w, statusOf, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, course)
}

func (h *Handler) getAllUsers(w http.ResponseWriter, r *http.Request) {
	list, err := h.users.ListUsers(r.Context())
	if err != nil {
		httpx.WriteError(w, statusOf, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) getEnrollments(w http.ResponseWriter, r *http.Request) {
	views, err := h.courses.ListEnrollments(r.Context())
	if err != nil {
		httpx.WriteError(w, statusOf, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, views)
}
