package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dcastellanos/paneltrack-backend/api/responses"
	"github.com/dcastellanos/paneltrack-backend/api/validators"
	"github.com/dcastellanos/paneltrack-backend/internal/payments"
	"github.com/dcastellanos/paneltrack-backend/pkg/enums"
	pkgerrors "github.com/dcastellanos/paneltrack-backend/pkg/errors"
	"github.com/dcastellanos/paneltrack-backend/pkg/logger"
)

type paymentCreateRequest struct {
	ClientID         uuid.UUID        `json:"client_id" validate:"required"`
	ProjectID        *uuid.UUID       `json:"project_id,omitempty"`
	Date             string           `json:"date" validate:"required,datetime=2006-01-02"`
	Amount           decimal.Decimal  `json:"amount"`
	OriginalAmount   *decimal.Decimal `json:"original_amount,omitempty"`
	OriginalCurrency *string          `json:"original_currency,omitempty"`
	Method           string           `json:"method" validate:"required"`
}

// PaymentList returns payments, optionally filtered to one client.
func PaymentList(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment service unavailable"))
			return
		}
		if raw := r.URL.Query().Get("client_id"); raw != "" {
			clientID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid client id"))
				return
			}
			list, err := svc.ListByClient(r.Context(), clientID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			responses.WriteSuccess(w, payments.FromModels(list))
			return
		}
		list, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, payments.FromModels(list))
	}
}

// PaymentCreate records a received payment.
func PaymentCreate(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment service unavailable"))
			return
		}
		var payload paymentCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		date, err := time.ParseInLocation("2006-01-02", payload.Date, time.UTC)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid date"))
			return
		}
		var currency *enums.Currency
		if payload.OriginalCurrency != nil {
			c := enums.Currency(*payload.OriginalCurrency)
			currency = &c
		}
		payment, err := svc.Create(r.Context(), payments.CreatePaymentInput{
			ClientID:         payload.ClientID,
			ProjectID:        payload.ProjectID,
			Date:             date,
			Amount:           payload.Amount,
			OriginalAmount:   payload.OriginalAmount,
			OriginalCurrency: currency,
			Method:           enums.PaymentMethod(payload.Method),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, payments.FromModel(payment))
	}
}

// PaymentDelete removes a payment record.
func PaymentDelete(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment service unavailable"))
			return
		}
		id, err := validators.ParseIDParam(r, "paymentId")
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
