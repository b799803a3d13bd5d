package handler

import (
	"net/http"

	"github.com/planora/planora-api/internal/api/response"
	"github.com/planora/planora-api/internal/repository/postgres"
)

// HealthCheck returns service liveness
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{"status": "ok"})
}

// ReadyCheck returns service readiness, verifying database connectivity
func ReadyCheck(db *postgres.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(r.Context()); err != nil {
			response.Error(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		response.OK(w, map[string]string{"status": "ready"})
	}
}
