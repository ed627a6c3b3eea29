// Package httpapi assembles the public router. Domain routes register
// themselves; this file only owns the operational endpoints.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"swiftindex/internal/swift/handler"
)

// NewRouter wires all public endpoints.
func NewRouter(swiftHandler *handler.Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	swiftHandler.Register(r)

	return r
}
