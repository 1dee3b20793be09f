package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/dcastellanos/paneltrack-backend/api/responses"
	"github.com/dcastellanos/paneltrack-backend/api/validators"
	"github.com/dcastellanos/paneltrack-backend/internal/projects"
	pkgerrors "github.com/dcastellanos/paneltrack-backend/pkg/errors"
	"github.com/dcastellanos/paneltrack-backend/pkg/logger"
)

type projectRequest struct {
	Name          string          `json:"name" validate:"required,min=1,max=120"`
	Owner         string          `json:"owner" validate:"required,min=1,max=120"`
	Country       *string         `json:"country,omitempty" validate:"omitempty,max=60"`
	CommissionPct decimal.Decimal `json:"commission_pct"`
}

// ProjectList returns every project.
func ProjectList(svc projects.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "project service unavailable"))
			return
		}
		list, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, projects.FromModels(list))
	}
}

// ProjectCreate registers a project.
func ProjectCreate(svc projects.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "project service unavailable"))
			return
		}
		var payload projectRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		project, err := svc.Create(r.Context(), projects.ProjectInput{
			Name:          payload.Name,
			Owner:         payload.Owner,
			Country:       payload.Country,
			CommissionPct: payload.CommissionPct,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, projects.FromModel(project))
	}
}

// ProjectUpdate edits a project, including its commission percentage.
// Existing cuts are immutable and keep the percentage they were saved with.
func ProjectUpdate(svc projects.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "project service unavailable"))
			return
		}
		id, err := validators.ParseIDParam(r, "projectId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload projectRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		project, err := svc.Update(r.Context(), id, projects.ProjectInput{
			Name:          payload.Name,
			Owner:         payload.Owner,
			Country:       payload.Country,
			CommissionPct: payload.CommissionPct,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, projects.FromModel(project))
	}
}

// ProjectDelete removes a project. Its historical payments stay attributed
// until a future cut drops the unresolved bucket.
func ProjectDelete(svc projects.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "project service unavailable"))
			return
		}
		id, err := validators.ParseIDParam(r, "projectId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
