package controllers

import (
	"net/http"

	"github.com/dcastellanos/paneltrack-backend/api/responses"
	"github.com/dcastellanos/paneltrack-backend/api/validators"
	"github.com/dcastellanos/paneltrack-backend/internal/calendar"
	pkgerrors "github.com/dcastellanos/paneltrack-backend/pkg/errors"
	"github.com/dcastellanos/paneltrack-backend/pkg/logger"
)

// CalendarEvents returns everything happening on a single date.
func CalendarEvents(svc calendar.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "calendar service unavailable"))
			return
		}
		date, err := validators.ParseDateParam(r, "date")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		events, err := svc.EventsForDate(r.Context(), date)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, events)
	}
}
