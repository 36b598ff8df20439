package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemLoader loads a bundle from a directory on the filesystem.
// Implements BundleLoader interface.
type FilesystemLoader struct {
	basePath string
}

// NewFilesystemLoader creates a FilesystemLoader for the given base path.
// Returns ErrInvalidBasePath if the path is not a valid, readable directory.
func NewFilesystemLoader(basePath string) (*FilesystemLoader, error) {
	if basePath == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}

	// Resolve symlinks in base path so containment checks compare real paths
	if realPath, err := filepath.EvalSymlinks(absPath); err == nil {
		absPath = realPath
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, absPath)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, absPath)
	}

	return &FilesystemLoader{basePath: absPath}, nil
}

// BasePath returns the resolved absolute base directory.
func (f *FilesystemLoader) BasePath() string {
	return f.basePath
}

// LoadBundle reads index.html, styles.css and game.js from the base path.
// Read errors wrap both the file's sentinel and the underlying OS error,
// so errors.Is(err, fs.ErrNotExist) holds for a missing file.
func (f *FilesystemLoader) LoadBundle() (*Bundle, error) {
	contents := make([]string, 0, len(bundleFiles))
	for _, name := range bundleFiles {
		text, err := f.readFile(name)
		if err != nil {
			return nil, err
		}
		contents = append(contents, text)
	}

	return &Bundle{
		Template:   contents[0],
		Stylesheet: contents[1],
		Script:     contents[2],
	}, nil
}

// readFile reads one bundle file as UTF-8 text after the containment check.
func (f *FilesystemLoader) readFile(name string) (string, error) {
	filePath := filepath.Join(f.basePath, name)

	if err := f.verifyPathContainment(filePath); err != nil {
		return "", fmt.Errorf("%w: %w", errForFile(name), err)
	}

	content, err := os.ReadFile(filePath) // #nosec G304 -- path validated above
	if err != nil {
		return "", fmt.Errorf("%w: %w", errForFile(name), err)
	}

	return decodeText(name, content)
}

// verifyPathContainment ensures the resolved file path is within basePath.
// Resolves symlinks to prevent escape via a link pointing outside basePath.
func (f *FilesystemLoader) verifyPathContainment(filePath string) error {
	absFilePath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("%w: cannot resolve path", ErrPathTraversal)
	}

	// A missing file keeps its unresolved path; the read reports it
	if realPath, err := filepath.EvalSymlinks(absFilePath); err == nil {
		absFilePath = realPath
	}

	// Separator suffix prevents prefix attacks (/base/path vs /base/pathevil)
	if !strings.HasPrefix(absFilePath, f.basePath+string(filepath.Separator)) {
		return fmt.Errorf("%w: path escapes base directory", ErrPathTraversal)
	}

	return nil
}

// Compile-time interface check.
var _ BundleLoader = (*FilesystemLoader)(nil)
