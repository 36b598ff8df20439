package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"

	mrbox "github.com/alnah/go-mrbox"
	"github.com/alnah/go-mrbox/internal/assets"
	"github.com/alnah/go-mrbox/internal/fileutil"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"` // "ready", "warnings", "errors"
	Bundle   bundleInfo `json:"bundle"`
	Chrome   chromeInfo `json:"chrome"`
	Env      envInfo    `json:"environment"`
	System   systemInfo `json:"system"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// bundleInfo holds bundle directory and marker results.
type bundleInfo struct {
	Dir      string          `json:"dir"`
	Files    map[string]bool `json:"files"`
	Markers  map[string]int  `json:"markers,omitempty"`
	AudioURL string          `json:"audio_url"`
	Strict   bool            `json:"strict"`
}

// chromeInfo holds Chrome/Chromium detection results.
type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// lookChrome locates a browser binary; replaced in tests.
var lookChrome = launcher.LookPath

// runDoctor diagnoses the bundle, the browser used by snapshot, and the host system.
// Only errors fail the command; a missing browser is a warning because
// serve, compose and check work without one.
func runDoctor(ctx context.Context, args []string, env *Environment) error {
	var o checkOptions
	fs := newFlagSet("doctor", env, printDoctorUsage)
	o.register(fs)

	dir, err := parseArgs(fs, args)
	if err != nil {
		return err
	}

	s, err := resolveSettings(fs, &o.common, &o.bundle, dir, env)
	if err != nil {
		return err
	}

	vars := environMap(env.Environ())
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  vars["ROD_NO_SANDBOX"],
			BrowserBin: vars["ROD_BROWSER_BIN"],
		},
	}

	checkBundle(ctx, result, s)
	checkChrome(result)
	checkEnvironment(result, vars)
	checkSystem(result)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	if o.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ErrDoctorFailed
	}
	return nil
}

// ErrDoctorFailed indicates doctor found at least one error.
var ErrDoctorFailed = errors.New("doctor found problems")

// audioURLWarning describes an audio URL that is neither http(s) nor relative.
// Returns "" for the expected forms. The URL is composed verbatim either way.
func audioURLWarning(url string) string {
	if fileutil.IsURL(url) || fileutil.IsRelativeRef(url) {
		return ""
	}
	return fmt.Sprintf("Audio URL %q is neither http(s) nor a relative path; it is used verbatim", url)
}

// checkBundle verifies the bundle files and counts markers.
func checkBundle(ctx context.Context, result *doctorResult, s *settings) {
	b := &result.Bundle
	b.Dir = s.cfg.Bundle.Dir
	b.AudioURL = mrbox.ResolveAudioURL(s.cfg.Bundle.AudioURL)
	b.Strict = s.cfg.Bundle.Strict
	b.Files = make(map[string]bool, 3)

	if !fileutil.DirExists(b.Dir) {
		result.Errors = append(result.Errors, fmt.Sprintf("Bundle directory %s not found (run 'mrbox init %s')", b.Dir, b.Dir))
		return
	}

	for _, name := range []string{assets.TemplateFile, assets.StylesheetFile, assets.ScriptFile} {
		ok := fileutil.FileExists(filepath.Join(b.Dir, name))
		b.Files[name] = ok
		if !ok {
			result.Errors = append(result.Errors, fmt.Sprintf("%s not found in %s (run 'mrbox init %s')", name, b.Dir, b.Dir))
		}
	}

	if msg := audioURLWarning(b.AudioURL); msg != "" {
		result.Warnings = append(result.Warnings, msg)
	}

	if len(result.Errors) > 0 {
		return
	}

	// Strictness is reported separately, so count markers without failing on a miss
	composed, err := mrbox.NewComposer().Compose(ctx, s.input())
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Bundle cannot be composed: %v", err))
		return
	}

	b.Markers = make(map[string]int, len(composed.Substitutions))
	for _, sub := range composed.Substitutions {
		b.Markers[sub.Name] = sub.Count
		if sub.Found() {
			continue
		}
		msg := fmt.Sprintf("Template has no %s marker %s", sub.Name, sub.Marker)
		if b.Strict {
			result.Errors = append(result.Errors, msg+" (strict mode)")
		} else {
			result.Warnings = append(result.Warnings, msg)
		}
	}
}

// checkChrome detects Chrome/Chromium installation.
func checkChrome(result *doctorResult) {
	chromePath := result.Env.BrowserBin

	if chromePath == "" {
		var found bool
		chromePath, found = lookChrome()
		if !found {
			result.Warnings = append(result.Warnings,
				"Chrome/Chromium not found; 'mrbox snapshot' will download one or set ROD_BROWSER_BIN")
			return
		}
	}

	if _, err := os.Stat(chromePath); err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Chrome not found at %s", chromePath))
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = chromePath

	// #nosec G204 -- path comes from ROD_BROWSER_BIN or rod's lookup
	out, err := exec.Command(chromePath, "--version").Output()
	if err == nil {
		result.Chrome.Version = strings.TrimSpace(string(out))
	} else {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get Chrome version: %v", err))
	}

	result.Chrome.Sandbox = result.Env.NoSandbox != "1"
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult, vars map[string]string) {
	result.Env.Container, result.Env.ContainerHint = isContainer(vars)

	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if vars[v] != "" {
			result.Env.CI = true
			break
		}
	}

	if (result.Env.Container || result.Env.CI) && result.Env.NoSandbox != "1" {
		result.Warnings = append(result.Warnings,
			"Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1 for snapshots")
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
// MRBOX_CONTAINER=0 or 1 overrides detection.
func isContainer(vars map[string]string) (bool, string) {
	switch vars["MRBOX_CONTAINER"] {
	case "1":
		return true, "MRBOX_CONTAINER=1"
	case "0":
		return false, ""
	}
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true, "/.dockerenv"
	}
	if v := vars["container"]; v != "" {
		return true, "container=" + v
	}
	if vars["KUBERNETES_SERVICE_HOST"] != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies the temp directory used by snapshots is writable.
func checkSystem(result *doctorResult) {
	_, cleanup, err := fileutil.WriteTempFile("doctor", "html")
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", os.TempDir()))
		return
	}
	cleanup()
	result.System.TempWritable = true
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "mrbox doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Bundle")
	fmt.Fprintf(w, "  Directory: %s\n", r.Bundle.Dir)
	for _, name := range []string{assets.TemplateFile, assets.StylesheetFile, assets.ScriptFile} {
		if r.Bundle.Files[name] {
			fmt.Fprintf(w, "  [OK] %s\n", name)
		} else {
			fmt.Fprintf(w, "  [ERROR] %s missing\n", name)
		}
	}
	for _, name := range []string{mrbox.PlaceholderStylesheet, mrbox.PlaceholderScript, mrbox.PlaceholderAudio} {
		count, ok := r.Bundle.Markers[name]
		switch {
		case !ok:
		case count > 0:
			fmt.Fprintf(w, "  [OK] %s marker: %d\n", name, count)
		default:
			fmt.Fprintf(w, "  [WARN] %s marker: not found\n", name)
		}
	}
	fmt.Fprintf(w, "  Audio: %s\n", r.Bundle.AudioURL)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Chrome/Chromium (snapshot only)")
	if r.Chrome.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Chrome.Path)
		if r.Chrome.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Chrome.Version)
		}
		if r.Chrome.Sandbox {
			fmt.Fprintln(w, "  [OK] Sandbox: enabled")
		} else {
			fmt.Fprintln(w, "  [OK] Sandbox: disabled (ROD_NO_SANDBOX=1)")
		}
	} else {
		fmt.Fprintln(w, "  [WARN] Not found")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
