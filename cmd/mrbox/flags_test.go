package main

// Notes:
// - parseArgs: we test the directory argument count and error wrapping.
// - resolveSettings: we test the full precedence chain once; per-variable
//   behavior is covered by the env_config tests.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"testing"

	flag "github.com/spf13/pflag"
)

// ---------------------------------------------------------------------------
// TestParseArgs - Positional directory handling
// ---------------------------------------------------------------------------

func TestParseArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		wantDir string
		wantErr error
	}{
		{name: "no directory", args: nil, wantDir: ""},
		{name: "one directory", args: []string{"game"}, wantDir: "game"},
		{name: "flags around directory", args: []string{"-q", "game", "--strict"}, wantDir: "game"},
		{name: "two directories", args: []string{"a", "b"}, wantErr: ErrUsage},
		{name: "unknown flag", args: []string{"--nope"}, wantErr: ErrUsage},
		{name: "help", args: []string{"--help"}, wantErr: flag.ErrHelp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			te := newTestEnv(t)
			var o checkOptions
			fs := newFlagSet("check", te.Environment, printCheckUsage)
			o.register(fs)

			dir, err := parseArgs(fs, tt.args)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("parseArgs() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseArgs() unexpected error: %v", err)
			}
			if dir != tt.wantDir {
				t.Errorf("dir = %q, want %q", dir, tt.wantDir)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestResolveSettings - Precedence: flags > env > config > defaults
// ---------------------------------------------------------------------------

func TestResolveSettings(t *testing.T) {
	t.Parallel()

	cfgPath := writeConfig(t, "bundle:\n  dir: from-file\n  strict: true\npage:\n  title: File Title\n")
	te := newTestEnv(t, "MRBOX_CONFIG="+cfgPath, "MRBOX_BUNDLE_DIR=from-env", "MRBOX_STRICT=false")

	var o checkOptions
	fs := newFlagSet("check", te.Environment, printCheckUsage)
	o.register(fs)
	dir, err := parseArgs(fs, []string{"--strict", "from-arg"})
	if err != nil {
		t.Fatalf("parseArgs() error: %v", err)
	}

	s, err := resolveSettings(fs, &o.common, &o.bundle, dir, te.Environment)
	if err != nil {
		t.Fatalf("resolveSettings() error: %v", err)
	}

	if s.cfg.Bundle.Dir != "from-arg" {
		t.Errorf("Bundle.Dir = %q, want from-arg", s.cfg.Bundle.Dir)
	}
	if !s.cfg.Bundle.Strict {
		t.Error("--strict should override MRBOX_STRICT=false")
	}
	if s.cfg.Page.Title != "File Title" {
		t.Errorf("Page.Title = %q, want file value", s.cfg.Page.Title)
	}
	if s.cfg.Page.Height != 720 {
		t.Errorf("Page.Height = %d, want default 720", s.cfg.Page.Height)
	}
}

func TestResolveSettings_EnvironmentOverFile(t *testing.T) {
	t.Parallel()

	cfgPath := writeConfig(t, "bundle:\n  dir: from-file\n  strict: true\n")
	te := newTestEnv(t, "MRBOX_CONFIG="+cfgPath, "MRBOX_BUNDLE_DIR=from-env", "MRBOX_STRICT=false")

	var o checkOptions
	fs := newFlagSet("check", te.Environment, printCheckUsage)
	o.register(fs)
	if _, err := parseArgs(fs, nil); err != nil {
		t.Fatal(err)
	}

	s, err := resolveSettings(fs, &o.common, &o.bundle, "", te.Environment)
	if err != nil {
		t.Fatalf("resolveSettings() error: %v", err)
	}
	if s.cfg.Bundle.Dir != "from-env" {
		t.Errorf("Bundle.Dir = %q, want from-env", s.cfg.Bundle.Dir)
	}
	if s.cfg.Bundle.Strict {
		t.Error("MRBOX_STRICT=false should override the file")
	}
}
