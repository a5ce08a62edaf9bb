package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/pseudology/internal/server"
)

// Serve loads the archive and serves it over HTTP until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	seed, err := seedValue(cmd)
	if err != nil {
		return err
	}
	seed = r.seed(seed)

	cfg := r.config.Server
	if host := cmd.String("host"); host != "" {
		cfg.Host = host
	}
	if port := int(cmd.Int("port")); port > 0 {
		cfg.Port = port
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	api := server.NewAPI(r.loadArchive(ctx, seed), r.logger)
	router := server.NewRouter(api, cfg, r.logger)

	if interval := cmd.Duration("refresh"); interval > 0 {
		go r.refresh(ctx, api, seed, interval)
	}

	return server.ListenAndServe(ctx, cfg, router, r.logger)
}

// refresh reloads the archive every interval and swaps it into api.
// An incomplete reload is discarded and the current archive keeps serving.
func (r *Runner) refresh(ctx context.Context, api *server.API, seed uint64, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a, err := r.fetchArchive(ctx, seed)
			if ctx.Err() != nil {
				return
			}
			if err != nil {
				r.logger.Warn("refresh incomplete, keeping current archive", "error", err)
				continue
			}
			api.Store(a)
			r.logger.Info("archive refreshed", "reviews", a.Len(), "years", len(a.Years()))
		}
	}
}
