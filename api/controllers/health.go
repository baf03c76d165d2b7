package controllers

import (
	"net/http"

	"github.com/chethan81/stockmonitor-backend/api/responses"
	"github.com/chethan81/stockmonitor-backend/pkg/config"
	"github.com/chethan81/stockmonitor-backend/pkg/db"
	pkgerrors "github.com/chethan81/stockmonitor-backend/pkg/errors"
	"github.com/chethan81/stockmonitor-backend/pkg/logger"
	"github.com/chethan81/stockmonitor-backend/pkg/redis"
)

const envHeader = "X-StockMonitor-Env"

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports whether a storage candidate is reachable and which one
// the process is currently running on.
func HealthReady(cfg *config.Config, connector *db.Connector, redisClient *redis.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		if connector == nil || !connector.Probe(r.Context()) {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeStorageUnavailable, "no storage candidate reachable"))
			return
		}

		conn, err := connector.Acquire(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload := map[string]any{
			"status":            "ready",
			"storage_candidate": conn.Candidate(),
			"storage_degraded":  conn.Degraded(),
			"storage_ephemeral": conn.Ephemeral(),
		}
		if redisClient != nil {
			status := "ok"
			if err := redisClient.Ping(r.Context()); err != nil {
				status = "unavailable"
			}
			payload["redis"] = status
		}

		responses.WriteSuccess(w, payload)
	}
}
