package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/dcastellanos/paneltrack-backend/api/responses"
	"github.com/dcastellanos/paneltrack-backend/api/validators"
	"github.com/dcastellanos/paneltrack-backend/internal/panels"
	"github.com/dcastellanos/paneltrack-backend/pkg/enums"
	pkgerrors "github.com/dcastellanos/paneltrack-backend/pkg/errors"
	"github.com/dcastellanos/paneltrack-backend/pkg/logger"
)

type panelRequest struct {
	Name          string          `json:"name" validate:"required,min=1,max=120"`
	TotalCapacity int             `json:"total_capacity" validate:"gte=0"`
	MonthlyCost   decimal.Decimal `json:"monthly_cost"`
	Status        string          `json:"status" validate:"omitempty,oneof=active inactive"`
}

// PanelList returns every panel with its capacity counters.
func PanelList(svc panels.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "panel service unavailable"))
			return
		}
		list, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, panels.FromModels(list))
	}
}

// PanelGet returns one panel by id.
func PanelGet(svc panels.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "panel service unavailable"))
			return
		}
		id, err := validators.ParseIDParam(r, "panelId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		panel, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, panels.FromModel(panel))
	}
}

// PanelCreate registers a panel.
func PanelCreate(svc panels.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "panel service unavailable"))
			return
		}
		var payload panelRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		panel, err := svc.Create(r.Context(), panels.CreatePanelInput{
			Name:          payload.Name,
			TotalCapacity: payload.TotalCapacity,
			MonthlyCost:   payload.MonthlyCost,
			Status:        enums.PanelStatus(payload.Status),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, panels.FromModel(panel))
	}
}

// PanelUpdate edits a panel. Shrinking capacity below the slots in use is
// rejected.
func PanelUpdate(svc panels.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "panel service unavailable"))
			return
		}
		id, err := validators.ParseIDParam(r, "panelId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload panelRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		status := payload.Status
		if status == "" {
			status = string(enums.PanelStatusActive)
		}
		panel, err := svc.Update(r.Context(), id, panels.UpdatePanelInput{
			Name:          payload.Name,
			TotalCapacity: payload.TotalCapacity,
			MonthlyCost:   payload.MonthlyCost,
			Status:        enums.PanelStatus(status),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, panels.FromModel(panel))
	}
}

// PanelDelete removes a panel and every subscription hosted on it.
func PanelDelete(svc panels.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "panel service unavailable"))
			return
		}
		id, err := validators.ParseIDParam(r, "panelId")
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
