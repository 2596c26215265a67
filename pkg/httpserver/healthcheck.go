package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// HealthStatus is the body served by HealthCheckHandler.
type HealthStatus struct {
	Status string `json:"status"`
	// Degraded lists process-level advisories: capabilities the service
	// is running without. They widen the accepted security gap but do
	// not fail the probe, so operators see them without uploads being
	// rejected.
	Degraded []string `json:"degraded,omitempty"`
}

// HealthCheckHandler returns a HTTP handler usable for both liveness
// and readiness probes.
//
//   - Liveness: with no dependency checks supplied the handler returns
//     200 OK with {"status":"ok"}.
//   - Readiness: each supplied check runs against the request context;
//     any failure yields 503 with {"status":"unavailable"}.
//
// advisories are included verbatim in every healthy response.
func HealthCheckHandler(log *slog.Logger, advisories []string, checks ...func(r *http.Request) error) http.HandlerFunc {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")

		for _, check := range checks {
			if err := check(r); err != nil {
				log.ErrorContext(r.Context(), "readiness check failed", slog.Any("error", err))
				w.WriteHeader(http.StatusServiceUnavailable)
				_ = json.NewEncoder(w).Encode(HealthStatus{Status: "unavailable"})
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(HealthStatus{Status: "ok", Degraded: advisories})
	}
}
