package observability

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

type LoggerConfig struct {
	Env     string
	Service string
	// Level overrides the env default ("debug", "info", "warn", "error").
	Level string
}

func NewLogger(cfg LoggerConfig) *slog.Logger {
	return newLogger(os.Stdout, cfg)
}

func newLogger(w io.Writer, cfg LoggerConfig) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: parseLevel(cfg.Level, cfg.Env),
	})

	log := slog.New(NewTraceHandler(handler))

	if cfg.Service != "" {
		log = log.With("service", cfg.Service)
	}
	if cfg.Env != "" {
		log = log.With("env", cfg.Env)
	}

	return log
}

// parseLevel falls back to debug in dev and info elsewhere.
func parseLevel(raw, env string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err == nil {
		return level
	}

	if env == "dev" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
