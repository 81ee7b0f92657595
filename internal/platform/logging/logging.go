package logging

import (
	"log/slog"
	"os"
)

// New returns a slog.Logger writing to stdout in the configured format.
func New(format string) *slog.Logger {
	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

// Setup installs the configured logger as the process default.
func Setup(format string) *slog.Logger {
	logger := New(format)
	slog.SetDefault(logger)
	return logger
}
