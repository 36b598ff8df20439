package observability

import (
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
)

// SentryConfig configures optional error reporting.
type SentryConfig struct {
	DSN         string
	Environment string
	Release     string
}

// InitSentry initializes the global Sentry client when cfg.DSN is set.
// It returns a flush function to call before exit; the function is a no-op
// when Sentry is disabled. Init failures are logged, not returned.
func InitSentry(cfg SentryConfig, logger *slog.Logger) (flush func()) {
	noop := func() {}
	if cfg.DSN == "" {
		return noop
	}
	if cfg.Environment == "" {
		cfg.Environment = "production"
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      cfg.Environment,
		Release:          cfg.Release,
		TracesSampleRate: 1.0,
		AttachStacktrace: true,
	})
	if err != nil {
		logger.Warn("sentry initialization failed", "error", err)
		return noop
	}

	logger.Info("sentry initialized", "environment", cfg.Environment, "release", cfg.Release)
	return func() {
		logger.Debug("flushing sentry events", "deadline", "2s")
		sentry.Flush(2 * time.Second)
	}
}
