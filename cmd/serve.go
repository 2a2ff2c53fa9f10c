package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/desertthunder/partyx/internal/party"
	"github.com/desertthunder/partyx/internal/server"
	"github.com/desertthunder/partyx/internal/shared"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

const defaultShutdownTimeout = 10 * time.Second

// Serve runs the HTTP API until ctx is cancelled, then drains in-flight requests.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(ctx); err != nil {
		return err
	}

	addr := cmd.String("addr")
	if addr == "" {
		addr = r.config.Server.Addr()
	}

	var metrics *server.Metrics
	if cmd.Bool("metrics") {
		metrics = server.NewMetrics()
	}

	srv := &http.Server{
		Addr: addr,
		Handler: server.New(server.Opts{
			Coordinator: r.coord,
			Catalog:     r.catalog,
			DB:          r.db,
			Metrics:     metrics,
			Resolve:     party.ResolveOpts{Workers: r.config.Media.Workers, RateLimit: r.config.Media.RateLimit},
			Logger:      shared.WithLogger(r.logger, "pkg", "server"),
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		r.logger.Info("listening", "addr", addr, "lookup", r.lookup.Name())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		timeout := r.config.Server.ShutdownTimeout
		if timeout <= 0 {
			timeout = defaultShutdownTimeout
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		r.logger.Info("shutting down", "timeout", timeout)
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
