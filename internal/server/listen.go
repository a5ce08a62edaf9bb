package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/pseudology/internal/shared"
)

const shutdownTimeout = 5 * time.Second

// NewRouter builds the API router with the standard middleware stack.
func NewRouter(api *API, cfg shared.ServerConfig, logger *log.Logger) *BasicRouter {
	router := NewBasicRouter()
	router.Use(Recover(logger), RequestID(), Logging(logger), RateLimit(NewLimiter(cfg)))
	router.Handler(NewHealthHandler(api))
	api.Register(router)
	return router
}

// ListenAndServe serves handler on cfg's address until ctx is cancelled, then shuts down gracefully.
func ListenAndServe(ctx context.Context, cfg shared.ServerConfig, handler http.Handler, logger *log.Logger) error {
	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Infof("serving archive API at http://%v", cfg.Addr())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
		close(serverErrors)
	}()

	select {
	case err, ok := <-serverErrors:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("error shutting down server", "error", err)
		return err
	}

	logger.Info("server stopped")
	return nil
}
