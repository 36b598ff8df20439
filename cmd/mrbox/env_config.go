package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/alnah/go-mrbox/internal/config"
)

// ErrInvalidEnv indicates an environment variable could not be parsed.
var ErrInvalidEnv = errors.New("invalid environment")

// envPrefix marks the variables owned by mrbox.
const envPrefix = "MRBOX_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath      string        `env:"MRBOX_CONFIG"`
	BundleDir       string        `env:"MRBOX_BUNDLE_DIR"`
	AudioURL        string        `env:"MRBOX_AUDIO_URL"`
	Strict          *bool         `env:"MRBOX_STRICT"`
	Addr            string        `env:"MRBOX_ADDR"`
	Port            string        `env:"PORT"` // Heroku-style, used when MRBOX_ADDR is unset
	LogLevel        string        `env:"MRBOX_LOG_LEVEL"`
	LogFormat       string        `env:"MRBOX_LOG_FORMAT"`
	SnapshotTimeout time.Duration `env:"MRBOX_SNAPSHOT_TIMEOUT"`

	SentryDSN         string `env:"SENTRY_DSN"`
	SentryEnvironment string `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
}

// knownEnvVars lists valid MRBOX_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MRBOX_CONFIG":           true,
	"MRBOX_BUNDLE_DIR":       true,
	"MRBOX_AUDIO_URL":        true,
	"MRBOX_STRICT":           true,
	"MRBOX_ADDR":             true,
	"MRBOX_LOG_LEVEL":        true,
	"MRBOX_LOG_FORMAT":       true,
	"MRBOX_SNAPSHOT_TIMEOUT": true,
	"MRBOX_CONTAINER":        true,
}

// loadEnvConfig parses environ (KEY=VALUE pairs, as from os.Environ).
func loadEnvConfig(environ []string) (*envConfig, error) {
	var cfg envConfig
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environMap(environ)}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEnv, err)
	}
	if cfg.SnapshotTimeout < 0 {
		return nil, fmt.Errorf("%w: MRBOX_SNAPSHOT_TIMEOUT must not be negative", ErrInvalidEnv)
	}
	return &cfg, nil
}

// environMap converts KEY=VALUE pairs to a map. Later duplicates win.
func environMap(environ []string) map[string]string {
	m := make(map[string]string, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			m[k] = v
		}
	}
	return m
}

// warnUnknownEnvVars writes a warning for each unrecognized MRBOX_* variable.
// Helps catch typos like MRBOX_AUDIO instead of MRBOX_AUDIO_URL.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	var unknown []string
	for _, kv := range environ {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, envPrefix) && !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
	}
}

// applyEnvConfig overlays set environment values on cfg.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied afterwards by applyFlags).
func applyEnvConfig(e *envConfig, cfg *config.Config) {
	if e.BundleDir != "" {
		cfg.Bundle.Dir = e.BundleDir
	}
	if e.AudioURL != "" {
		cfg.Bundle.AudioURL = e.AudioURL
	}
	if e.Strict != nil {
		cfg.Bundle.Strict = *e.Strict
	}

	switch {
	case e.Addr != "":
		cfg.Server.Addr = e.Addr
	case e.Port != "":
		cfg.Server.Addr = ":" + e.Port
	}

	if e.LogLevel != "" {
		cfg.Log.Level = e.LogLevel
	}
	if e.LogFormat != "" {
		cfg.Log.Format = e.LogFormat
	}
	if e.SnapshotTimeout > 0 {
		cfg.Snapshot.Timeout = e.SnapshotTimeout
	}
}
