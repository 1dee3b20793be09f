package controllers

import (
	"net/http"
	"time"

	"github.com/dcastellanos/paneltrack-backend/api/responses"
	"github.com/dcastellanos/paneltrack-backend/api/validators"
	"github.com/dcastellanos/paneltrack-backend/internal/cuts"
	pkgerrors "github.com/dcastellanos/paneltrack-backend/pkg/errors"
	"github.com/dcastellanos/paneltrack-backend/pkg/logger"
)

type cutSaveRequest struct {
	WeekStart string  `json:"week_start" validate:"required,datetime=2006-01-02"`
	Notes     *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// CutPreview reconciles a week without saving it. The week_start query
// parameter defaults to the current week's Friday.
func CutPreview(svc cuts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cut service unavailable"))
			return
		}
		weekStart, err := validators.ParseQueryDate(r, "week_start")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		start := cuts.WeekStart(time.Now())
		if weekStart != nil {
			start = *weekStart
		}
		comp, err := svc.Compute(r.Context(), start)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cuts.FromComputation(comp))
	}
}

// CutSave reconciles the requested week and stores the snapshot.
func CutSave(svc cuts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cut service unavailable"))
			return
		}
		var payload cutSaveRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		start, err := time.ParseInLocation("2006-01-02", payload.WeekStart, time.UTC)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid week start"))
			return
		}
		comp, err := svc.Compute(r.Context(), start)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		cut, err := svc.Save(r.Context(), comp, payload.Notes)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dto, err := cuts.FromModel(cut)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render cut"))
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// CutList returns saved cuts, optionally narrowed to a month (yyyy-mm).
func CutList(svc cuts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cut service unavailable"))
			return
		}
		month, err := validators.ParseQueryMonth(r, "month")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		list, err := svc.List(r.Context(), month)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dtos, err := cuts.FromModels(list)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render cuts"))
			return
		}
		responses.WriteSuccess(w, dtos)
	}
}

// CutGet returns one saved cut by id.
func CutGet(svc cuts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cut service unavailable"))
			return
		}
		id, err := validators.ParseIDParam(r, "cutId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		cut, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dto, err := cuts.FromModel(cut)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render cut"))
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// CutShareText renders the WhatsApp summary for a saved cut.
func CutShareText(svc cuts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cut service unavailable"))
			return
		}
		id, err := validators.ParseIDParam(r, "cutId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		cut, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		text, err := cuts.FormatShareText(cut)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"text": text})
	}
}

// CutDelete removes a saved cut from history.
func CutDelete(svc cuts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cut service unavailable"))
			return
		}
		id, err := validators.ParseIDParam(r, "cutId")
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
