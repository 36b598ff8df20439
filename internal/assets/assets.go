package assets

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// LoadStarterBundle loads the built-in starter bundle.
func LoadStarterBundle() (*Bundle, error) {
	return defaultLoader.LoadBundle()
}

// LoadBundle loads a bundle from basePath on disk.
// Returns ErrInvalidBasePath if basePath is not a readable directory.
func LoadBundle(basePath string) (*Bundle, error) {
	loader, err := NewFilesystemLoader(basePath)
	if err != nil {
		return nil, err
	}
	return loader.LoadBundle()
}
