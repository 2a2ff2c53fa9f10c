package server

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/partyx/internal/catalog"
	"github.com/desertthunder/partyx/internal/party"
	"github.com/desertthunder/partyx/internal/shared"
)

// Opts contains the dependencies of the HTTP API.
type Opts struct {
	Coordinator *party.Coordinator
	Catalog     *catalog.Catalog
	DB          Pinger
	Metrics     *Metrics // nil disables /metrics and request instrumentation
	Resolve     party.ResolveOpts
	Logger      *log.Logger
}

// New builds the router serving the full API.
func New(opts Opts) *BasicRouter {
	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}

	router := NewBasicRouter()
	router.Use(Recover(logger), Logging(logger))
	if opts.Metrics != nil {
		router.Use(opts.Metrics.Middleware())
	}

	router.Handler(NewHealthHandler(opts.DB, logger))
	router.Handler(NewPartyHandler(opts.Coordinator, opts.Resolve, logger))
	router.Handler(NewTaskHandler(opts.Coordinator.Tasks(), logger))
	router.Handler(NewCatalogHandler(opts.Catalog, logger))
	router.Handler(NewMediaHandler(opts.Coordinator, logger))

	if opts.Metrics != nil {
		router.Handle("GET", "/metrics", opts.Metrics.Handler())
	}

	return router
}
