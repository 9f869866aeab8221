package logging

import (
	"io"
	"log/slog"
	"strings"
)

// LoggerConfig holds configuration for the logger.
type LoggerConfig struct {
	Level string
	// Format is "json" (default) or "text".
	Format string
	// Component, when set, is attached to every record as the "component" attribute.
	Component string
}

// NewLogger creates a new slog.Logger writing to w.
// The level is parsed from the config; defaults to INFO if invalid or empty.
func NewLogger(config LoggerConfig, w io.Writer) *slog.Logger {
	handlerOptions := &slog.HandlerOptions{
		AddSource:   false,
		Level:       parseLevel(config.Level),
		ReplaceAttr: nil,
	}

	var handler slog.Handler

	if strings.EqualFold(config.Format, "text") {
		handler = slog.NewTextHandler(w, handlerOptions)
	} else {
		handler = slog.NewJSONHandler(w, handlerOptions)
	}

	logger := slog.New(handler)
	if config.Component != "" {
		logger = logger.With(slog.String("component", config.Component))
	}

	return logger
}

func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
