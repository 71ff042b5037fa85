package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"logpulse/internal/shared/loggers"
	"logpulse/internal/shared/metrics"
	"logpulse/internal/snapshots"
)

// NewRouter configures the operational HTTP surface. Log input never arrives
// here; it is stdin-only.
func NewRouter(cell *snapshots.Cell, httpLogger loggers.Logger) http.Handler {
	router := chi.NewRouter()
	setupMiddleware(router, httpLogger)

	snapshotHandler := NewSnapshotHandler(cell)

	router.Get("/snapshot", errorHandlingAdapter(snapshotHandler))
	router.Get("/metrics", metrics.PromHTTP.Handler().ServeHTTP)
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return router
}
