package controllers

import (
	"context"
	"net/http"

	"github.com/dcastellanos/paneltrack-backend/api/responses"
	"github.com/dcastellanos/paneltrack-backend/pkg/config"
	pkgerrors "github.com/dcastellanos/paneltrack-backend/pkg/errors"
	"github.com/dcastellanos/paneltrack-backend/pkg/logger"
)

type dbPinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-PanelTrack-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness once the database answers a ping. Redis is
// optional infrastructure for the API process and is not probed here.
func HealthReady(cfg *config.Config, logg *logger.Logger, db dbPinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-PanelTrack-Env", cfg.App.Env)
		if db != nil {
			if err := db.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unavailable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
