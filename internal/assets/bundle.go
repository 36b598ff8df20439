package assets

import (
	"fmt"
	"unicode/utf8"
)

// Fixed file names of a bundle, relative to its base directory.
const (
	TemplateFile   = "index.html"
	StylesheetFile = "styles.css"
	ScriptFile     = "game.js"
)

// Bundle holds the raw text of a page bundle.
// Content must be valid UTF-8 and is otherwise not validated.
type Bundle struct {
	Template   string // index.html
	Stylesheet string // styles.css
	Script     string // game.js
}

// BundleLoader defines the contract for loading a page bundle.
// Implementations may load from disk, embedded files, object storage, etc.
type BundleLoader interface {
	// LoadBundle reads the template, stylesheet and script, in that order.
	// The first failure aborts the load; no partial bundle is returned.
	LoadBundle() (*Bundle, error)
}

// bundleFiles lists the bundle files in load order.
var bundleFiles = []string{TemplateFile, StylesheetFile, ScriptFile}

// errForFile returns the sentinel error associated with a bundle file.
func errForFile(name string) error {
	switch name {
	case TemplateFile:
		return ErrTemplateRead
	case StylesheetFile:
		return ErrStylesheetRead
	default:
		return ErrScriptRead
	}
}

// decodeText returns data as text, rejecting invalid UTF-8 with the file's sentinel.
func decodeText(name string, data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: %w", errForFile(name), ErrInvalidUTF8)
	}
	return string(data), nil
}
