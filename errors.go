package mrbox

import (
	"errors"

	"github.com/alnah/go-mrbox/internal/assets"
)

// Sentinel errors for library operations.
var (
	// Bundle loading errors. Each wraps the underlying fs error,
	// so errors.Is(err, fs.ErrNotExist) also holds for a missing file.
	ErrInvalidBaseDir = assets.ErrInvalidBasePath
	ErrReadTemplate   = assets.ErrTemplateRead
	ErrReadStylesheet = assets.ErrStylesheetRead
	ErrReadScript     = assets.ErrScriptRead
	ErrPathTraversal  = assets.ErrPathTraversal

	// ErrInvalidUTF8 is wrapped with the read error of a file that is not UTF-8 text.
	ErrInvalidUTF8 = assets.ErrInvalidUTF8

	// ErrMarkerMissing is returned in strict mode when a marker is absent from the template.
	ErrMarkerMissing = errors.New("template marker not found")

	// Snapshot errors.
	ErrBrowserConnect  = errors.New("failed to connect to browser")
	ErrPageCreate      = errors.New("failed to create browser page")
	ErrPageLoad        = errors.New("failed to load page")
	ErrScreenshot      = errors.New("screenshot capture failed")
	ErrInvalidViewport = errors.New("invalid viewport")
)
