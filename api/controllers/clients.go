package controllers

import (
	"net/http"
	"time"

	"github.com/dcastellanos/paneltrack-backend/api/responses"
	"github.com/dcastellanos/paneltrack-backend/api/validators"
	"github.com/dcastellanos/paneltrack-backend/internal/clients"
	"github.com/dcastellanos/paneltrack-backend/internal/subscriptions"
	pkgerrors "github.com/dcastellanos/paneltrack-backend/pkg/errors"
	"github.com/dcastellanos/paneltrack-backend/pkg/logger"
)

type clientRequest struct {
	Name     string  `json:"name" validate:"required,min=1,max=120"`
	WhatsApp string  `json:"whatsapp" validate:"required,min=5,max=30"`
	Country  *string `json:"country,omitempty" validate:"omitempty,max=60"`
}

// ClientList returns every client.
func ClientList(svc clients.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "client service unavailable"))
			return
		}
		list, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, clients.FromModels(list))
	}
}

// ClientGet returns one client by id.
func ClientGet(svc clients.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "client service unavailable"))
			return
		}
		id, err := validators.ParseIDParam(r, "clientId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		client, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, clients.FromModel(client))
	}
}

// ClientCreate registers a client.
func ClientCreate(svc clients.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "client service unavailable"))
			return
		}
		var payload clientRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		client, err := svc.Create(r.Context(), clients.ClientInput{
			Name:     payload.Name,
			WhatsApp: payload.WhatsApp,
			Country:  payload.Country,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, clients.FromModel(client))
	}
}

// ClientUpdate edits a client's contact data.
func ClientUpdate(svc clients.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "client service unavailable"))
			return
		}
		id, err := validators.ParseIDParam(r, "clientId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload clientRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		client, err := svc.Update(r.Context(), id, clients.ClientInput{
			Name:     payload.Name,
			WhatsApp: payload.WhatsApp,
			Country:  payload.Country,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, clients.FromModel(client))
	}
}

// ClientDelete removes a client, its subscriptions and the capacity they
// held.
func ClientDelete(svc clients.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "client service unavailable"))
			return
		}
		id, err := validators.ParseIDParam(r, "clientId")
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

// ClientSubscriptions lists the subscriptions owned by one client.
func ClientSubscriptions(svc subscriptions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "subscription service unavailable"))
			return
		}
		id, err := validators.ParseIDParam(r, "clientId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		list, err := svc.ListByClient(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, subscriptions.FromModels(list, time.Now()))
	}
}
