// AngelaMos | 2026
// handler.go

package auth

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/labsamples/internal/core"
	"github.com/carterperez-dev/labsamples/internal/middleware"
)

var (
	adminOnly = middleware.Roles("admin")
	anyRole   = middleware.Roles("admin", "data_entry")
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: core.NewValidator(),
	}
}

// RegisterRoutes mounts the auth endpoints. loginLimiter wraps the
// unauthenticated credential endpoints.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
	loginLimiter func(http.Handler) http.Handler,
) {
	r.Route("/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(loginLimiter)
			r.Post("/login", h.Login)
			r.Post("/register-first-admin", h.RegisterFirstAdmin)
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Post("/register", h.Register)
			r.Post("/logout", h.Logout)
		})
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !core.DecodeJSON(w, r, &req) {
		return
	}

	if err := core.Validate(h.validator, req); err != nil {
		core.JSONError(w, err)
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			core.Unauthorized(w, "invalid email or password")
			return
		}
		core.InternalServerError(w, r, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) RegisterFirstAdmin(w http.ResponseWriter, r *http.Request) {
	var req FirstAdminRequest
	if !core.DecodeJSON(w, r, &req) {
		return
	}

	if err := core.Validate(h.validator, req); err != nil {
		core.JSONError(w, err)
		return
	}

	resp, err := h.service.RegisterFirstAdmin(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrAdminExists):
			core.Forbidden(w, "admin already exists, use regular registration")
		case errors.Is(err, ErrEmailExists):
			core.Conflict(w, "email")
		default:
			core.InternalServerError(w, r, err)
		}
		return
	}

	core.Created(w, resp)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if !middleware.Authorize(w, r, adminOnly) {
		return
	}

	var req RegisterRequest
	if !core.DecodeJSON(w, r, &req) {
		return
	}

	if err := core.Validate(h.validator, req); err != nil {
		core.JSONError(w, err)
		return
	}

	resp, err := h.service.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailExists):
			core.Conflict(w, "email")
		case errors.Is(err, core.ErrInvalidInput):
			core.BadRequest(w, "invalid role specified")
		default:
			core.InternalServerError(w, r, err)
		}
		return
	}

	core.Created(w, resp)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if !middleware.Authorize(w, r, anyRole) {
		return
	}

	if err := h.service.Logout(r.Context(), middleware.GetClaims(r.Context())); err != nil {
		if errors.Is(err, core.ErrUnauthorized) {
			core.Unauthorized(w, "")
			return
		}
		core.InternalServerError(w, r, err)
		return
	}

	core.NoContent(w)
}
