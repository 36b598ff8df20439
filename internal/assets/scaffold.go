package assets

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alnah/go-mrbox/internal/fileutil"
)

// File permission constants for scaffolded bundles.
const (
	dirPermissions  = 0o750
	filePermissions = 0o644
)

// Scaffold writes the starter bundle into dir, creating it if needed.
// Returns the written file paths in load order.
// Returns ErrBundleExists if any bundle file already exists and overwrite is false;
// nothing is written in that case.
func Scaffold(dir string, overwrite bool) ([]string, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	bundle, err := LoadStarterBundle()
	if err != nil {
		return nil, err
	}

	paths := make([]string, len(bundleFiles))
	for i, name := range bundleFiles {
		paths[i] = filepath.Join(dir, name)
		if !overwrite && fileutil.FileExists(paths[i]) {
			return nil, fmt.Errorf("%w: %s (use --force to overwrite)", ErrBundleExists, paths[i])
		}
	}

	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}

	contents := []string{bundle.Template, bundle.Stylesheet, bundle.Script}
	for i, path := range paths {
		// #nosec G306 -- bundle files are served to browsers and meant to be readable
		if err := os.WriteFile(path, []byte(contents[i]), filePermissions); err != nil {
			return nil, fmt.Errorf("writing %s: %w", bundleFiles[i], err)
		}
	}

	return paths, nil
}
