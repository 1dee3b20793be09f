package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dcastellanos/paneltrack-backend/api/responses"
	"github.com/dcastellanos/paneltrack-backend/api/validators"
	"github.com/dcastellanos/paneltrack-backend/internal/subscriptions"
	pkgerrors "github.com/dcastellanos/paneltrack-backend/pkg/errors"
	"github.com/dcastellanos/paneltrack-backend/pkg/logger"
)

type subscriptionCreateRequest struct {
	ClientID  uuid.UUID       `json:"client_id" validate:"required"`
	PanelID   uuid.UUID       `json:"panel_id" validate:"required"`
	Service   string          `json:"service" validate:"required,min=1,max=120"`
	StartDate string          `json:"start_date" validate:"required,datetime=2006-01-02"`
	Price     decimal.Decimal `json:"price"`
}

type subscriptionRenewRequest struct {
	FromDate *string `json:"from_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// SubscriptionList returns every subscription with derived status.
func SubscriptionList(svc subscriptions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "subscription service unavailable"))
			return
		}
		list, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, subscriptions.FromModels(list, time.Now()))
	}
}

// SubscriptionCreate opens a subscription, reserving a panel slot.
func SubscriptionCreate(svc subscriptions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "subscription service unavailable"))
			return
		}
		var payload subscriptionCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		start, err := time.ParseInLocation("2006-01-02", payload.StartDate, time.UTC)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid start date"))
			return
		}
		sub, err := svc.Create(r.Context(), subscriptions.CreateSubscriptionInput{
			ClientID:  payload.ClientID,
			PanelID:   payload.PanelID,
			Service:   payload.Service,
			StartDate: start,
			Price:     payload.Price,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, subscriptions.FromModel(sub, time.Now()))
	}
}

// SubscriptionRenew extends a subscription by one cycle.
func SubscriptionRenew(svc subscriptions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "subscription service unavailable"))
			return
		}
		id, err := validators.ParseIDParam(r, "subscriptionId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload subscriptionRenewRequest
		if r.ContentLength > 0 {
			if err := validators.DecodeJSONBody(r, &payload); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}
		var fromDate *time.Time
		if payload.FromDate != nil {
			parsed, err := time.ParseInLocation("2006-01-02", *payload.FromDate, time.UTC)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid from date"))
				return
			}
			fromDate = &parsed
		}
		sub, err := svc.Renew(r.Context(), id, fromDate)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, subscriptions.FromModel(sub, time.Now()))
	}
}

// SubscriptionDelete removes a subscription and frees its panel slot.
func SubscriptionDelete(svc subscriptions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "subscription service unavailable"))
			return
		}
		id, err := validators.ParseIDParam(r, "subscriptionId")
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
