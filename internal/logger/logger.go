// Package logger builds the process-wide *slog.Logger.
package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/aanand-mishra/library-api/internal/config"
)

// New returns a *slog.Logger configured for the given environment,
// writing to stdout.
//
// Development: human-readable text output at DEBUG level.
// Staging:     JSON output at DEBUG level.
// Production:  JSON output at INFO level (anything unrecognised).
func New(env string) *slog.Logger {
	return NewWithWriter(env, os.Stdout)
}

func NewWithWriter(env string, w io.Writer) *slog.Logger {
	switch env {
	case config.EnvDevelopment, "dev":
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	case config.EnvStaging:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	default:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}
}
