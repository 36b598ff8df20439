package main

import (
	"errors"
	"fmt"
	"log/slog"

	flag "github.com/spf13/pflag"

	mrbox "github.com/alnah/go-mrbox"
	"github.com/alnah/go-mrbox/internal/config"
	"github.com/alnah/go-mrbox/internal/hints"
	"github.com/alnah/go-mrbox/internal/observability"
)

// defaultConfigName is looked up when neither --config nor MRBOX_CONFIG is set.
const defaultConfigName = "mrbox"

// settings is the resolved configuration for one command run.
type settings struct {
	cfg *config.Config
	env *envConfig
}

// resolveSettings merges defaults, the config file, the environment and flags.
// Precedence: CLI flags > env vars > config file > defaults.
func resolveSettings(fs *flag.FlagSet, common *commonFlags, bundle *bundleFlags, dirArg string, env *Environment) (*settings, error) {
	environ := env.Environ()
	warnUnknownEnvVars(env.Stderr, environ)

	envCfg, err := loadEnvConfig(environ)
	if err != nil {
		return nil, err
	}

	cfg, err := loadConfigFile(common.config, envCfg.ConfigPath)
	if err != nil {
		return nil, err
	}

	applyEnvConfig(envCfg, cfg)
	applyFlags(fs, bundle, dirArg, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &settings{cfg: cfg, env: envCfg}, nil
}

// loadConfigFile loads the explicit config, or mrbox.yaml when present.
// An explicit config that cannot be found is an error; a missing default is not.
func loadConfigFile(flagPath, envPath string) (*config.Config, error) {
	name := flagPath
	if name == "" {
		name = envPath
	}

	if name == "" {
		cfg, err := config.LoadConfig(defaultConfigName)
		if errors.Is(err, config.ErrConfigNotFound) {
			return config.DefaultConfig(), nil
		}
		return cfg, err
	}

	cfg, err := config.LoadConfig(name)
	if errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmt.Errorf("%w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
	}
	return cfg, err
}

// applyFlags overlays explicitly set flags and the directory argument.
func applyFlags(fs *flag.FlagSet, bundle *bundleFlags, dirArg string, cfg *config.Config) {
	if dirArg != "" {
		cfg.Bundle.Dir = dirArg
	}
	if bundle == nil {
		return
	}
	if fs.Changed("audio-url") {
		cfg.Bundle.AudioURL = bundle.audioURL
	}
	if fs.Changed("strict") {
		cfg.Bundle.Strict = bundle.strict
	}
}

// composer builds the Composer for the resolved bundle settings.
func (s *settings) composer() *mrbox.Composer {
	return mrbox.NewComposer(mrbox.WithStrictMarkers(s.cfg.Bundle.Strict))
}

// input is the composition input for the resolved bundle settings.
func (s *settings) input() mrbox.Input {
	return mrbox.Input{BaseDir: s.cfg.Bundle.Dir, AudioURL: s.cfg.Bundle.AudioURL}
}

// logger builds the command logger. -v forces debug, -q forces error.
// defaultFormat applies when neither config nor environment picked one.
func (s *settings) logger(common *commonFlags, defaultFormat string, env *Environment) *slog.Logger {
	level := s.cfg.Log.Level
	switch {
	case common.verbose:
		level = "debug"
	case common.quiet:
		level = "error"
	}

	format := s.cfg.Log.Format
	if format == "" {
		format = defaultFormat
	}

	return observability.NewLogger(observability.Config{
		Level:  level,
		Format: format,
		Output: env.Stderr,
	})
}

// composeError decorates a compose failure with an actionable hint.
func composeError(err error, result *mrbox.Result, dir string) error {
	switch {
	case errors.Is(err, mrbox.ErrMarkerMissing) && result != nil:
		var markers []string
		for _, sub := range result.Substitutions {
			if !sub.Found() {
				markers = append(markers, sub.Marker)
			}
		}
		return fmt.Errorf("%w%s", err, hints.ForMarkerMissing(markers))
	case errors.Is(err, mrbox.ErrReadTemplate),
		errors.Is(err, mrbox.ErrReadStylesheet),
		errors.Is(err, mrbox.ErrReadScript),
		errors.Is(err, mrbox.ErrInvalidBaseDir):
		return fmt.Errorf("%w%s", err, hints.ForBundleFile(dir))
	default:
		return err
	}
}
