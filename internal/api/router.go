package api

import (
	"circuit-planner-service/internal/api/handlers"
	"circuit-planner-service/internal/platform/metrics"
	"circuit-planner-service/internal/ports"
	"circuit-planner-service/internal/services"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Options carries the router's optional collaborators. Zero values disable
// the corresponding feature.
type Options struct {
	Search   services.SearchOptions
	Logger   *zap.Logger
	Metrics  *metrics.Recorder
	Gatherer prometheus.Gatherer
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
// exclusions may be nil.
func NewRouter(catalog ports.RouteCatalog, exclusions ports.ExclusionSource, opts Options) http.Handler {
	mux := http.NewServeMux()

	healthHandler := &handlers.HealthHandler{Catalog: catalog}
	hubHandler := &handlers.HubHandler{Catalog: catalog}
	circuitHandler := &handlers.CircuitHandler{
		Catalog:    catalog,
		Exclusions: exclusions,
		Search:     opts.Search,
		Metrics:    opts.Metrics,
	}

	mux.HandleFunc("/health", healthHandler.Check)
	mux.HandleFunc("/hubs", hubHandler.List)
	mux.HandleFunc("/circuits", circuitHandler.Plan)
	if opts.Gatherer != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return requestContextMiddleware(logger, loggingMiddleware(opts.Metrics, mux))
}
