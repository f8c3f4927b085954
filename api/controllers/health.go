package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/dukkonapp/dukkon-backend/api/responses"
	"github.com/dukkonapp/dukkon-backend/pkg/config"
	"github.com/dukkonapp/dukkon-backend/pkg/logger"
)

type pinger interface {
	Ping(context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Dukkon-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, db pinger, redis pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Dukkon-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		checks := map[string]string{}
		healthy := true

		checks["database"] = checkDependency(ctx, db)
		checks["redis"] = checkDependency(ctx, redis)
		for name, status := range checks {
			if status != "ok" {
				healthy = false
				if logg != nil {
					failCtx := logg.WithFields(ctx, map[string]any{"dependency": name})
					logg.Warn(failCtx, "readiness check failed")
				}
			}
		}

		status := http.StatusOK
		state := "ready"
		if !healthy {
			status = http.StatusServiceUnavailable
			state = "degraded"
		}
		responses.WriteSuccessStatus(w, status, map[string]any{
			"status": state,
			"checks": checks,
		})
	}
}

func checkDependency(ctx context.Context, dep pinger) string {
	if dep == nil {
		return "skipped"
	}
	if err := dep.Ping(ctx); err != nil {
		return "unavailable"
	}
	return "ok"
}
