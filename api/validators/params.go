package validators

import (
	"net/http"
	"strings"
	"time"

	pkgerrors "github.com/dcastellanos/paneltrack-backend/pkg/errors"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// ParseIDParam reads a uuid path parameter from the chi route context.
func ParseIDParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid id").
			WithDetails(map[string]any{"field": name})
	}
	return id, nil
}

// ParseDateParam reads a yyyy-mm-dd path parameter.
func ParseDateParam(r *http.Request, name string) (time.Time, error) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	t, err := time.ParseInLocation(dateLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid date").
			WithDetails(map[string]any{"field": name, "format": dateLayout})
	}
	return t, nil
}

// ParseQueryDate reads an optional yyyy-mm-dd query parameter. A missing
// value yields nil.
func ParseQueryDate(r *http.Request, key string) (*time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, raw, time.UTC)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid date").
			WithDetails(map[string]any{"field": key, "format": dateLayout})
	}
	return &t, nil
}

// ParseQueryMonth reads an optional yyyy-mm query parameter as the first day
// of that month.
func ParseQueryMonth(r *http.Request, key string) (*time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation("2006-01", raw, time.UTC)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid month").
			WithDetails(map[string]any{"field": key, "format": "2006-01"})
	}
	return &t, nil
}
