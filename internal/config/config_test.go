package config

// Notes:
// - TestLoadConfig_SearchByName changes the working directory and cannot run
//   in parallel with other tests that rely on relative paths.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

// ---------------------------------------------------------------------------
// TestDefaultConfig - Defaults are valid and match the host contract
// ---------------------------------------------------------------------------

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Page.Height != 720 {
		t.Errorf("Page.Height = %d, want 720", cfg.Page.Height)
	}
	if cfg.Page.Scrolling {
		t.Error("Page.Scrolling = true, want false")
	}
	if cfg.Page.Heading != "## Mr Box" {
		t.Errorf("Page.Heading = %q, want %q", cfg.Page.Heading, "## Mr Box")
	}
	if cfg.Bundle.AudioURL != "" {
		t.Errorf("Bundle.AudioURL = %q, want empty", cfg.Bundle.AudioURL)
	}
	if cfg.Bundle.Strict {
		t.Error("Bundle.Strict = true, want false")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

// ---------------------------------------------------------------------------
// TestConfig_Validate - Lengths, ranges and enumerations
// ---------------------------------------------------------------------------

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
		wantMsg string
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "audio URL is never length checked", mutate: func(c *Config) { c.Bundle.AudioURL = "data:audio/mpeg;base64," + strings.Repeat("A", 64<<10) }},
		{name: "title too long", mutate: func(c *Config) { c.Page.Title = strings.Repeat("t", MaxTitleLength+1) }, wantErr: ErrFieldTooLong, wantMsg: "page.title"},
		{name: "heading at limit", mutate: func(c *Config) { c.Page.Heading = strings.Repeat("h", MaxHeadingLength) }},
		{name: "height too small", mutate: func(c *Config) { c.Page.Height = 50 }, wantErr: ErrFieldRange, wantMsg: "page.height"},
		{name: "height zero", mutate: func(c *Config) { c.Page.Height = 0 }, wantErr: ErrFieldRange, wantMsg: "page.height"},
		{name: "width zero allowed", mutate: func(c *Config) { c.Page.Width = 0 }},
		{name: "width too large", mutate: func(c *Config) { c.Page.Width = MaxFrameSize + 1 }, wantErr: ErrFieldRange, wantMsg: "page.width"},
		{name: "snapshot width too small", mutate: func(c *Config) { c.Snapshot.Width = 10 }, wantErr: ErrFieldRange, wantMsg: "snapshot.width"},
		{name: "negative timeout", mutate: func(c *Config) { c.Server.ReadTimeout = -time.Second }, wantErr: ErrFieldRange, wantMsg: "server.readTimeout"},
		{name: "negative rps", mutate: func(c *Config) { c.Server.RateLimit.RPS = -1 }, wantErr: ErrFieldRange, wantMsg: "rps"},
		{name: "rps without burst", mutate: func(c *Config) { c.Server.RateLimit = RateLimitConfig{RPS: 5} }, wantErr: ErrFieldRange, wantMsg: "burst"},
		{name: "rate limit disabled", mutate: func(c *Config) { c.Server.RateLimit = RateLimitConfig{} }},
		{name: "log level case insensitive", mutate: func(c *Config) { c.Log.Level = "DEBUG" }},
		{name: "unknown log level", mutate: func(c *Config) { c.Log.Level = "verbose" }, wantErr: ErrFieldRange, wantMsg: "log.level"},
		{name: "unknown log format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: ErrFieldRange, wantMsg: "log.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr == nil && tt.wantMsg == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() expected error, got nil")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Validate() error = %q, want mention of %q", err, tt.wantMsg)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig - File loading, defaults merge and error classes
// ---------------------------------------------------------------------------

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("partial file keeps defaults", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "mrbox.yaml", `
bundle:
  dir: ./game
  audioUrl: https://cdn.example/tigers.mp3
server:
  readTimeout: 5s
`)
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Bundle.Dir != "./game" {
			t.Errorf("Bundle.Dir = %q, want ./game", cfg.Bundle.Dir)
		}
		if cfg.Bundle.AudioURL != "https://cdn.example/tigers.mp3" {
			t.Errorf("Bundle.AudioURL = %q", cfg.Bundle.AudioURL)
		}
		if cfg.Server.ReadTimeout != 5*time.Second {
			t.Errorf("Server.ReadTimeout = %s, want 5s", cfg.Server.ReadTimeout)
		}
		if cfg.Page.Height != 720 {
			t.Errorf("Page.Height = %d, want default 720", cfg.Page.Height)
		}
		if cfg.Server.Addr != ":8080" {
			t.Errorf("Server.Addr = %q, want default", cfg.Server.Addr)
		}
	})

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()

		if _, err := LoadConfig(""); !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("LoadConfig(\"\") error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("missing path", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("LoadConfig() error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("unknown key", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "typo.yaml", "bundle:\n  audioURL: x\n")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("LoadConfig() error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid values rejected", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "bad.yaml", "page:\n  height: 10\n")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrFieldRange) {
			t.Errorf("LoadConfig() error = %v, want ErrFieldRange", err)
		}
	})
}

func TestLoadConfig_SearchByName(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "arcade.yml", "page:\n  title: Arcade\n")
	t.Chdir(dir)

	cfg, err := LoadConfig("arcade")
	if err != nil {
		t.Fatalf("LoadConfig(\"arcade\") error = %v", err)
	}
	if cfg.Page.Title != "Arcade" {
		t.Errorf("Page.Title = %q, want Arcade", cfg.Page.Title)
	}

	_, err = LoadConfig("nowhere")
	if !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("LoadConfig(\"nowhere\") error = %v, want ErrConfigNotFound", err)
	}
	if !strings.Contains(err.Error(), "nowhere.yaml") {
		t.Errorf("error %q should list tried paths", err)
	}
}

func TestSearchPaths(t *testing.T) {
	t.Parallel()

	paths := SearchPaths("mrbox")
	if len(paths) < 2 {
		t.Fatalf("SearchPaths() = %v, want at least local paths", paths)
	}
	if paths[0] != "mrbox.yaml" || paths[1] != "mrbox.yml" {
		t.Errorf("local paths = %v, want mrbox.yaml then mrbox.yml", paths[:2])
	}
	for _, p := range paths[2:] {
		if !strings.Contains(p, filepath.Join("mrbox", "mrbox.")) {
			t.Errorf("user path %q not under mrbox config dir", p)
		}
	}
}
