package mrbox

import (
	"context"
	"fmt"
	"strings"

	"github.com/alnah/go-mrbox/internal/assets"
)

// Composer loads bundles and composes them into self-contained HTML documents.
// A Composer holds no per-call state and is safe for concurrent use.
type Composer struct {
	cfg    composerConfig
	loader BundleLoader // nil: load from Input.BaseDir
}

// NewComposer creates a Composer.
// Use options to customize behavior (e.g., WithStrictMarkers, WithBundleLoader).
func NewComposer(opts ...Option) *Composer {
	c := &Composer{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose loads the bundle and composes it.
// The template, stylesheet and script are read in that order; the first read
// failure is returned and no result is produced.
//
// In strict mode a template missing any marker returns the Result together with
// an error wrapping ErrMarkerMissing.
func (c *Composer) Compose(ctx context.Context, input Input) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bundle, err := c.loadBundle(input.BaseDir)
	if err != nil {
		return nil, fmt.Errorf("loading bundle: %w", err)
	}

	return c.ComposeBundle(ctx, *bundle, input.AudioURL)
}

// ComposeBundle composes an already loaded bundle.
func (c *Composer) ComposeBundle(ctx context.Context, bundle Bundle, audioURL string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	subs := placeholders(bundle, audioURL)
	result := &Result{
		HTML:          substitute(bundle.Template, subs),
		Substitutions: subs,
	}

	if c.cfg.strict {
		if missing := result.Missing(); len(missing) > 0 {
			return result, fmt.Errorf("%w: %s", ErrMarkerMissing, strings.Join(missing, ", "))
		}
	}

	return result, nil
}

// loadBundle reads the bundle from the configured loader or from baseDir.
func (c *Composer) loadBundle(baseDir string) (*Bundle, error) {
	if c.loader != nil {
		return c.loader.LoadBundle()
	}

	b, err := assets.LoadBundle(baseDir)
	if err != nil {
		return nil, err
	}
	return fromAssetBundle(b), nil
}

// Strict reports whether missing markers are treated as errors.
func (c *Composer) Strict() bool {
	return c.cfg.strict
}

// Compose composes the bundle in input.BaseDir with a default Composer.
func Compose(ctx context.Context, input Input) (*Result, error) {
	return NewComposer().Compose(ctx, input)
}

// ComposeBundle composes an already loaded bundle with a default Composer.
// Missing markers are never an error here.
func ComposeBundle(ctx context.Context, bundle Bundle, audioURL string) (*Result, error) {
	return NewComposer().ComposeBundle(ctx, bundle, audioURL)
}
