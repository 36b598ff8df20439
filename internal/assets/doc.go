// Package assets loads the three static files that make up a page bundle.
//
// # Loader Architecture
//
//	BundleLoader (interface)
//	    │
//	    ├── FilesystemLoader  - loads a bundle from a directory on disk
//	    └── EmbeddedLoader    - loads the starter bundle compiled into the binary
//
// FilesystemLoader is the loader used for composition. A missing or
// unreadable file is always an error: there is no fallback to the embedded
// bundle, which exists only to scaffold new bundles (see Scaffold).
//
// # Directory Structure
//
// File names are fixed and not configurable:
//
//	{basePath}/
//	├── index.html   # template document
//	├── styles.css   # stylesheet, inlined into the template
//	└── game.js      # script, inlined into the template
//
// # Security
//
// FilesystemLoader resolves symlinks and verifies every file stays within
// basePath.
package assets
