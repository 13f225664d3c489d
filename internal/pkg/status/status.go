// Package status serves the client's health and metrics over HTTP.
package status

import (
	"encoding/json"
	"net/http"

	"github.com/davinnev/Big-Two-LAN/internal/pkg/session"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Reporter exposes the state of the client's session.
type Reporter interface {
	State() session.State
	PlayerIndex() int
	SessionID() uuid.UUID
}

// Health is the body of GET /healthz.
type Health struct {
	State   string `json:"state"`
	Session string `json:"session,omitempty"`
	Seat    int    `json:"seat"`
}

// NewRouter builds the status routes.
func NewRouter(r Reporter, gatherer prometheus.Gatherer) http.Handler {
	router := chi.NewRouter()
	router.Get("/healthz", Healthz(r))
	router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return router
}

// Healthz reports the session state. It answers 503 once the session is closed.
func Healthz(r Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		state := r.State()
		h := Health{State: state.String(), Seat: r.PlayerIndex()}
		if id := r.SessionID(); id != uuid.Nil {
			h.Session = id.String()
		}
		w.Header().Set("Content-Type", "application/json")
		if state == session.Closed {
			w.WriteHeader(http.StatusServiceUnavailable)
		} else {
			w.WriteHeader(http.StatusOK)
		}
		_ = json.NewEncoder(w).Encode(h)
	}
}
