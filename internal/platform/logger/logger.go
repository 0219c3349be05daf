// Package logger provides structured logging for the application.
package logger

import (
	"log/slog"
	"os"
	"strings"

	"github.com/PedroCamargo-dev/transfer-orchestration-service/internal/config"
)

// Setup builds a JSON slog logger at the configured level and installs it
// as the process default. Unknown levels fall back to info.
func Setup(cfg config.ServerConfig) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	log := slog.New(handler)
	slog.SetDefault(log)

	return log
}
