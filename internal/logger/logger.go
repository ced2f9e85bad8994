package logger

import (
	"log/slog"
	"os"

	"github.com/m-goikhman/chicago-formula-web/internal/config"
)

// Setup configures the global slog logger based on environment
func Setup(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}

	var handler slog.Handler
	if cfg.Environment == "production" {
		// JSON format for production
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		// Text format for development
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// WithParticipant adds the participant code to logger context
func WithParticipant(logger *slog.Logger, participantCode string) *slog.Logger {
	return logger.With("participant", participantCode)
}
