package controllers

import (
	"net/http"

	"github.com/SvAkshayKumar/SmartCart-GenAI/api/responses"
	"github.com/SvAkshayKumar/SmartCart-GenAI/pkg/config"
	"github.com/SvAkshayKumar/SmartCart-GenAI/pkg/db"
	pkgerrors "github.com/SvAkshayKumar/SmartCart-GenAI/pkg/errors"
	"github.com/SvAkshayKumar/SmartCart-GenAI/pkg/logger"
	"github.com/SvAkshayKumar/SmartCart-GenAI/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-SmartCart-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness of the backing services. Redis is optional, a
// nil client shows as disabled without failing the check.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, cache *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-SmartCart-Env", cfg.App.Env)

		checks := map[string]string{"db": "ok", "redis": "disabled"}

		if dbP == nil {
			checks["db"] = "missing"
		} else if err := dbP.Ping(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unavailable"))
			return
		}

		if cache != nil {
			checks["redis"] = "ok"
			if err := cache.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unavailable"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
