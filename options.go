package mrbox

import "time"

// Option configures a Composer.
type Option func(*Composer)

// composerConfig holds internal configuration for Composer.
type composerConfig struct {
	strict bool
}

// WithStrictMarkers makes composition fail with ErrMarkerMissing when a marker is absent.
// The default preserves silent misses.
func WithStrictMarkers(strict bool) Option {
	return func(c *Composer) {
		c.cfg.strict = strict
	}
}

// WithBundleLoader loads bundles from loader instead of Input.BaseDir.
// Panics if loader is nil (programmer error).
func WithBundleLoader(loader BundleLoader) Option {
	if loader == nil {
		panic("mrbox: WithBundleLoader loader must not be nil")
	}
	return func(c *Composer) {
		c.loader = loader
	}
}

// SnapshotOption configures a Snapshotter.
type SnapshotOption func(*Snapshotter)

// snapshotConfig holds internal configuration for Snapshotter.
type snapshotConfig struct {
	width   int
	height  int
	timeout time.Duration
}

// defaultSnapshotTimeout is used when no timeout is specified.
const defaultSnapshotTimeout = 30 * time.Second

// WithViewport sets the browser viewport in CSS pixels.
// Panics if width or height is not positive (programmer error).
func WithViewport(width, height int) SnapshotOption {
	if width <= 0 || height <= 0 {
		panic("mrbox: WithViewport dimensions must be positive")
	}
	return func(s *Snapshotter) {
		s.cfg.width = width
		s.cfg.height = height
	}
}

// WithSnapshotTimeout sets the page load timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithSnapshotTimeout(d time.Duration) SnapshotOption {
	if d <= 0 {
		panic("mrbox: WithSnapshotTimeout duration must be positive")
	}
	return func(s *Snapshotter) {
		s.cfg.timeout = d
	}
}

// withRenderer injects a renderer (tests).
func withRenderer(r screenshotRenderer) SnapshotOption {
	return func(s *Snapshotter) {
		s.renderer = r
	}
}
