package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/odvcencio/vista/pkg/telemetry"
	"github.com/odvcencio/vista/pkg/ui/screen"
)

// navigationSource reports the screen manager's navigation state.
type navigationSource interface {
	State() screen.State
}

// newRouter serves Prometheus metrics and a navigation snapshot.
func newRouter(nav navigationSource, metrics *telemetry.Metrics) http.Handler {
	router := chi.NewRouter()
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, map[string]string{"status": "ok", "time": time.Now().UTC().Format(time.RFC3339)})
	})
	router.Route("/debug", func(r chi.Router) {
		r.Get("/navigation", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, nav.State())
		})
	})
	if metrics != nil {
		router.Handle("/metrics", metrics.Handler())
	}
	return router
}

func respondJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(payload)
}
