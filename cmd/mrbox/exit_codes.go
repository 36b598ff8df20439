package main

import (
	"errors"
	"os"

	mrbox "github.com/alnah/go-mrbox"
	"github.com/alnah/go-mrbox/internal/assets"
	"github.com/alnah/go-mrbox/internal/config"
)

// Exit codes for the mrbox CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Success
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, environment, or a strict marker miss
	ExitIO      = 3 // Bundle file missing, permission denied, output not writable
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, mrbox.ErrBrowserConnect) ||
		errors.Is(err, mrbox.ErrPageCreate) ||
		errors.Is(err, mrbox.ErrPageLoad) ||
		errors.Is(err, mrbox.ErrScreenshot) {
		return ExitBrowser
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidEnv) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, mrbox.ErrMarkerMissing) ||
		errors.Is(err, mrbox.ErrInvalidViewport) ||
		errors.Is(err, assets.ErrBundleExists) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrFieldRange) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, mrbox.ErrInvalidBaseDir) ||
		errors.Is(err, mrbox.ErrReadTemplate) ||
		errors.Is(err, mrbox.ErrReadStylesheet) ||
		errors.Is(err, mrbox.ErrReadScript) ||
		errors.Is(err, mrbox.ErrPathTraversal) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	return ExitGeneral
}
