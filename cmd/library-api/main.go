// library-api serves the students and books resources.
//
// STARTUP SEQUENCE:
//  1. Load configuration (.env, optional YAML file, environment)
//  2. Initialise the logger
//  3. Open the connection pool (and create tables if DB_AUTO_MIGRATE)
//  4. Register all HTTP routes
//  5. Serve until SIGINT / SIGTERM, then shut down gracefully
//
// RUNNING THE SERVER:
//
//	go run ./cmd/library-api --config=config/local.yaml
//
// or, from the environment alone:
//
//	DB_HOST=db DB_PASSWORD=secret go run ./cmd/library-api
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
	"github.com/aanand-mishra/library-api/internal/http/handlers/student"
	"github.com/aanand-mishra/library-api/internal/http/server"
	"github.com/aanand-mishra/library-api/internal/logger"
	"github.com/aanand-mishra/library-api/internal/storage/sqlstore"
	"github.com/aanand-mishra/library-api/internal/validation"
)

const defaultPort = 3000

func main() {
	cfg := config.MustLoad(defaultPort)

	log := logger.New(cfg.Env)
	log.Info("starting library-api",
		slog.String("env", cfg.Env),
		slog.String("driver", cfg.Driver),
	)

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
	// Not fatal: every query fails until the store comes up, and reports so.
	if err := store.Ping(ctx); err != nil {
		log.Warn("database is not reachable yet", slog.String("error", err.Error()))
	}
	cancel()

	opts := resource.Options{Log: log, Validator: validation.New(), Dev: cfg.IsDevelopment()}

	handler := server.NewHandler(
		server.Deps{
			Config:  cfg,
			Log:     log,
			Store:   store,
			Welcome: "Welcome to Library Management System API",
		},
		func(mux *http.ServeMux) { student.Register(mux, store.Students(), opts) },
		func(mux *http.ServeMux) { book.Register(mux, store.Books(), opts) },
	)

	if err := server.Run(server.New(cfg.Addr(), handler), log); err != nil {
		log.Error("server encountered an error", slog.String("error", err.Error()))
		store.Close()
		os.Exit(1)
	}
}
