package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/dineflow/dineflow-backend/api/responses"
	"github.com/dineflow/dineflow-backend/pkg/config"
	pkgerrors "github.com/dineflow/dineflow-backend/pkg/errors"
	"github.com/dineflow/dineflow-backend/pkg/logger"
)

const envHeader = "X-Dineflow-Env"

// Pinger is the dependency health surface checked by the ready probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		for name, dep := range deps {
			if dep == nil {
				continue
			}
			if err := dep.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Upstream(err, name))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
