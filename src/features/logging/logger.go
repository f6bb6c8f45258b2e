package logging

import (
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"lrcsolid/src/features/config"
)

// SetupLogger builds the default slog logger from configuration. Silent
// mode raises the level so only warnings and errors reach the console.
func SetupLogger(cfg *config.Manager) *slog.Logger {
	var formatter log.Formatter
	switch cfg.Get().Logger.Format {
	case "json":
		formatter = log.JSONFormatter
	case "text":
		formatter = log.TextFormatter
	default:
		formatter = log.LogfmtFormatter
	}

	level := log.InfoLevel
	switch cfg.Get().Logger.Level {
	case "debug":
		level = log.DebugLevel
	case "warn":
		level = log.WarnLevel
	case "error":
		level = log.ErrorLevel
	}
	if cfg.Get().Silent && level < log.WarnLevel {
		level = log.WarnLevel
	}

	handler := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "lrcsolid",
		Formatter:       formatter,
		Level:           level,
	})

	return slog.New(handler)
}
