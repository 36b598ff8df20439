package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-mrbox/internal/fileutil"
	"github.com/alnah/go-mrbox/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrFieldRange      = errors.New("field out of range")
)

// Field limits.
const (
	MaxPathLength    = 4096
	MaxTitleLength   = 200
	MaxHeadingLength = 2000 // Markdown source
	MaxAddrLength    = 256

	MinFrameSize = 100
	MaxFrameSize = 8192
)

// Log levels and formats accepted in the log section.
var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"json", "text"}
)

// Config holds the settings shared by every command.
type Config struct {
	Bundle   BundleConfig   `yaml:"bundle"`
	Page     PageConfig     `yaml:"page"`
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
}

// BundleConfig locates the bundle and controls composition.
type BundleConfig struct {
	Dir      string `yaml:"dir"`      // Directory with index.html, styles.css, game.js
	AudioURL string `yaml:"audioUrl"` // Empty = built-in default
	Strict   bool   `yaml:"strict"`   // Missing markers are errors
}

// PageConfig describes the host page around the embedded frame.
type PageConfig struct {
	Title     string `yaml:"title"`
	Heading   string `yaml:"heading"`   // Markdown
	Height    int    `yaml:"height"`    // px
	Width     int    `yaml:"width"`     // px, 0 = full width
	Scrolling bool   `yaml:"scrolling"` // frame scrollbars
}

// ServerConfig defines the HTTP host.
type ServerConfig struct {
	Addr            string          `yaml:"addr"`
	ReadTimeout     time.Duration   `yaml:"readTimeout"`
	WriteTimeout    time.Duration   `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration   `yaml:"shutdownTimeout"`
	RateLimit       RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig is a per-client token bucket. RPS 0 disables limiting.
type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// LogConfig selects log verbosity and encoding.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "json" or "text", empty = per command
}

// SnapshotConfig defines headless browser screenshots.
type SnapshotConfig struct {
	Width   int           `yaml:"width"`
	Timeout time.Duration `yaml:"timeout"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Bundle: BundleConfig{Dir: "."},
		Page: PageConfig{
			Title:   "Mr Box",
			Heading: "## Mr Box",
			Height:  720,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RateLimit:       RateLimitConfig{RPS: 20, Burst: 40},
		},
		Log: LogConfig{Level: "info"},
		Snapshot: SnapshotConfig{
			Width:   1280,
			Timeout: 30 * time.Second,
		},
	}
}

// Validate checks lengths and ranges.
// Called automatically by LoadConfig, but available for callers
// that build a Config from flags or environment.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"bundle.dir", c.Bundle.Dir, MaxPathLength},
		{"page.title", c.Page.Title, MaxTitleLength},
		{"page.heading", c.Page.Heading, MaxHeadingLength},
		{"server.addr", c.Server.Addr, MaxAddrLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if err := validateFrameSize("page.height", c.Page.Height, false); err != nil {
		return err
	}
	if err := validateFrameSize("page.width", c.Page.Width, true); err != nil {
		return err
	}
	if err := validateFrameSize("snapshot.width", c.Snapshot.Width, true); err != nil {
		return err
	}

	for _, d := range []struct {
		name  string
		value time.Duration
	}{
		{"server.readTimeout", c.Server.ReadTimeout},
		{"server.writeTimeout", c.Server.WriteTimeout},
		{"server.shutdownTimeout", c.Server.ShutdownTimeout},
		{"snapshot.timeout", c.Snapshot.Timeout},
	} {
		if d.value < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %s", ErrFieldRange, d.name, d.value)
		}
	}

	if c.Server.RateLimit.RPS < 0 {
		return fmt.Errorf("%w: server.rateLimit.rps must not be negative, got %g", ErrFieldRange, c.Server.RateLimit.RPS)
	}
	if c.Server.RateLimit.RPS > 0 && c.Server.RateLimit.Burst < 1 {
		return fmt.Errorf("%w: server.rateLimit.burst must be at least 1 when rps is set", ErrFieldRange)
	}

	if err := validateOneOf("log.level", c.Log.Level, logLevels); err != nil {
		return err
	}
	return validateOneOf("log.format", c.Log.Format, logFormats)
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateFrameSize checks a pixel dimension. Zero is allowed when optional.
func validateFrameSize(fieldName string, value int, optional bool) error {
	if value == 0 && optional {
		return nil
	}
	if value < MinFrameSize || value > MaxFrameSize {
		return fmt.Errorf("%w: %s must be between %d and %d, got %d", ErrFieldRange, fieldName, MinFrameSize, MaxFrameSize, value)
	}
	return nil
}

// validateOneOf checks value against allowed, case-insensitively. Empty is allowed.
func validateOneOf(fieldName, value string, allowed []string) error {
	if value == "" {
		return nil
	}
	for _, a := range allowed {
		if strings.EqualFold(value, a) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s: invalid value %q (must be one of %s)", ErrFieldRange, fieldName, value, strings.Join(allowed, ", "))
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys absent from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	cfg := DefaultConfig()
	if err := yamlutil.DecodeFile(configPath, cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths returns the locations LoadConfig tries for a config name, in order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "mrbox", name+ext))
		}
	}

	return paths
}

// resolveConfigPath returns the first existing SearchPaths entry.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
