package logger

import (
	"log/slog"
	"os"
)

var log *slog.Logger

// Init sets up the global logger.
// env: "development" or "production"
func Init(env string) {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level:     slog.LevelInfo,
		AddSource: true,
	}

	if env == "development" {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		// Production: JSON for log shippers
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	log = slog.New(handler)
	slog.SetDefault(log)
}

// GetLogger returns the global logger.
func GetLogger() *slog.Logger {
	if log == nil {
		// Fallback when Init was not called
		Init("development")
	}
	return log
}

func Debug(msg string, args ...any) {
	GetLogger().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	GetLogger().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	GetLogger().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	GetLogger().Error(msg, args...)
}

// Fatal logs the error and exits.
func Fatal(msg string, args ...any) {
	GetLogger().Error(msg, args...)
	os.Exit(1)
}

// With creates a child logger with extra fields.
func With(args ...any) *slog.Logger {
	return GetLogger().With(args...)
}

// WithError creates a logger carrying an error field.
func WithError(err error) *slog.Logger {
	return GetLogger().With("error", err.Error())
}
