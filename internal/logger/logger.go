// Package logger builds the slog logger for a given environment.
package logger

import (
	"log/slog"
	"os"

	"nutrilog/internal/config"
)

// New returns a logger tuned for the environment: human-readable debug
// output locally, JSON debug in dev, JSON info in prod. Unknown
// environments get the prod setup.
func New(env string) *slog.Logger {
	switch env {
	case config.EnvLocal:
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case config.EnvDev:
		return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	default:
		return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
}
