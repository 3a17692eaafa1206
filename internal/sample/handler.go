// AngelaMos | 2026
// handler.go

package sample

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/labsamples/internal/core"
	"github.com/carterperez-dev/labsamples/internal/middleware"
)

var anyRole = middleware.Roles("admin", "data_entry")

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, optionalAuth func(http.Handler) http.Handler,
) {
	r.Route("/data", func(r chi.Router) {
		r.With(optionalAuth).Post("/entry", h.Submit)
		r.With(authenticator).Get("/entry/{sampleID}", h.Get)
	})
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if !core.DecodeJSON(w, r, &req) {
		return
	}

	sample, err := h.service.Submit(
		r.Context(),
		req,
		middleware.GetUserID(r.Context()),
	)
	if err != nil {
		switch {
		case core.IsAppError(err):
			core.JSONError(w, err)
		case errors.Is(err, ErrNoOwner):
			core.Unauthorized(w, "authentication required to submit samples")
		case errors.Is(err, ErrUnknownOwner):
			core.JSONError(w, core.NewAppError(
				err,
				"submitting account does not exist",
				http.StatusUnprocessableEntity,
				"UNKNOWN_OWNER",
			))
		case errors.Is(err, core.ErrDuplicateKey):
			core.Conflict(w, "sample_id")
		default:
			core.InternalServerError(w, r, err)
		}
		return
	}

	core.Created(w, ToSampleResponse(sample))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if !middleware.Authorize(w, r, anyRole) {
		return
	}

	sample, err := h.service.Get(r.Context(), chi.URLParam(r, "sampleID"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "sample")
			return
		}
		core.InternalServerError(w, r, err)
		return
	}

	core.OK(w, ToSampleResponse(sample))
}
