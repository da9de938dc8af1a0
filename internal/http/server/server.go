// Package server assembles the router and runs the HTTP server. Both
// binaries use it; they differ only in which resources they mount.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aanand-mishra/library-api/internal/config"
	"github.com/aanand-mishra/library-api/internal/http/middleware"
	"github.com/aanand-mishra/library-api/internal/utils/response"
)

const shutdownTimeout = 5 * time.Second

// Pinger reports whether the store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps is what NewHandler needs besides the resource routes.
type Deps struct {
	Config  *config.Config
	Log     *slog.Logger
	Store   Pinger
	Welcome string
}

// NewHandler builds the mux with the index and health routes, lets each
// mount func add its resource routes, and wraps the result in the
// middleware chain.
func NewHandler(deps Deps, mounts ...func(*http.ServeMux)) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, response.Text(deps.Welcome))
	})
	mux.HandleFunc("GET /healthz", health(deps.Store))

	for _, mount := range mounts {
		mount(mux)
	}

	return middleware.Chain(mux,
		middleware.RequestID(),
		middleware.Logging(deps.Log),
		middleware.Recovery(deps.Log, deps.Config.IsDevelopment()),
		middleware.SecurityHeaders(),
		middleware.CORS(deps.Config.AllowedOrigins),
	)
}

func health(store Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			response.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		response.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// New returns an *http.Server with production timeouts. It is not started.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// Run starts srv and blocks until SIGINT or SIGTERM, then shuts down
// gracefully: stop accepting, let in-flight requests finish (up to 5s).
func Run(srv *http.Server, log *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info("server started", slog.String("address", srv.Addr))
		// ListenAndServe returns http.ErrServerClosed after Shutdown; that is
		// the expected path, not an error.
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
		return nil
	case <-done:
	}

	log.Info("shutdown signal received, stopping server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return err
	}

	log.Info("server stopped gracefully")
	return nil
}
