// book-service is the standalone deployment of the books resource. It
// serves the same /api/books surface as library-api, on its own port,
// against the same schema. The two processes do not coordinate.
//
//	go run ./cmd/book-service --config=config/book-service.yaml
//	PORT=3001 go run ./cmd/book-service
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/aanand-mishra/library-api/internal/config"
	"github.com/aanand-mishra/library-api/internal/http/handlers/book"
	"github.com/aanand-mishra/library-api/internal/http/handlers/resource"
	"github.com/aanand-mishra/library-api/internal/http/server"
	"github.com/aanand-mishra/library-api/internal/logger"
	"github.com/aanand-mishra/library-api/internal/storage/sqlstore"
	"github.com/aanand-mishra/library-api/internal/validation"
)

const defaultPort = 3001

func main() {
	cfg := config.MustLoad(defaultPort)

	log := logger.New(cfg.Env)
	log.Info("starting book-service", slog.String("env", cfg.Env))

	store, err := sqlstore.Open(cfg.Database)
	if err != nil {
		log.Error("failed to initialise storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if cfg.AutoMigrate {
		if err := store.Migrate(ctx); err != nil {
			cancel()
			log.Error("failed to create tables", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
	if err := store.Ping(ctx); err != nil {
		log.Warn("database is not reachable yet", slog.String("error", err.Error()))
	}
	cancel()

	handler := server.NewHandler(
		server.Deps{
			Config:  cfg,
			Log:     log,
			Store:   store,
			Welcome: "Welcome to Library Management System Book Service",
		},
		func(mux *http.ServeMux) {
			book.Register(mux, store.Books(), resource.Options{
				Log:       log,
				Validator: validation.New(),
				Dev:       cfg.IsDevelopment(),
			})
		},
	)

	if err := server.Run(server.New(cfg.Addr(), handler), log); err != nil {
		log.Error("server encountered an error", slog.String("error", err.Error()))
		store.Close()
		os.Exit(1)
	}
}
