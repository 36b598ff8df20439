package assets

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed starter/index.html starter/styles.css starter/game.js
var starter embed.FS

// EmbeddedLoader loads the starter bundle from the embedded filesystem.
// Implements BundleLoader interface.
type EmbeddedLoader struct {
	fsys fs.FS
}

// NewEmbeddedLoader creates an EmbeddedLoader for the built-in starter bundle.
func NewEmbeddedLoader() *EmbeddedLoader {
	sub, err := fs.Sub(starter, "starter")
	if err != nil {
		// fs.Sub only fails on an invalid directory name, which is a constant here.
		panic(fmt.Sprintf("assets: starter bundle: %v", err))
	}
	return &EmbeddedLoader{fsys: sub}
}

// LoadBundle returns the starter bundle.
func (e *EmbeddedLoader) LoadBundle() (*Bundle, error) {
	contents := make([]string, 0, len(bundleFiles))
	for _, name := range bundleFiles {
		data, err := fs.ReadFile(e.fsys, name)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errForFile(name), err)
		}
		text, err := decodeText(name, data)
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

// Compile-time interface check.
var _ BundleLoader = (*EmbeddedLoader)(nil)
