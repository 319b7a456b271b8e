// Package observability wires structured logging and watch-mode metrics.
package observability

import (
	"log/slog"
	"os"

	"github.com/kadeem-campbell/siteclean/internal/config"
)

// SetupLogging installs the process-wide slog default from config. Verbose
// forces debug level regardless of the configured one.
func SetupLogging(cfg config.Logging, verbose bool) {
	level := levelFor(config.NormalizeLogLevel(cfg.Level))
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if config.NormalizeLogFormat(cfg.Format) == config.LogFormatJSON {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func levelFor(l config.LogLevel) slog.Level {
	switch l {
	case config.LogLevelDebug:
		return slog.LevelDebug
	case config.LogLevelWarn:
		return slog.LevelWarn
	case config.LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
