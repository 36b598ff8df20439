package assets

import "errors"

// Sentinel errors for bundle operations.
var (
	// ErrInvalidBasePath indicates the configured base path is not a valid directory.
	ErrInvalidBasePath = errors.New("invalid base path")

	// ErrTemplateRead indicates the template document could not be read.
	ErrTemplateRead = errors.New("failed to read template")

	// ErrStylesheetRead indicates the stylesheet could not be read.
	ErrStylesheetRead = errors.New("failed to read stylesheet")

	// ErrScriptRead indicates the script could not be read.
	ErrScriptRead = errors.New("failed to read script")

	// ErrInvalidUTF8 indicates a bundle file is not valid UTF-8 text.
	ErrInvalidUTF8 = errors.New("invalid UTF-8")

	// ErrPathTraversal indicates an attempt to access files outside the base path.
	ErrPathTraversal = errors.New("path traversal detected")

	// ErrBundleExists indicates Scaffold would overwrite existing bundle files.
	ErrBundleExists = errors.New("bundle already exists")
)
