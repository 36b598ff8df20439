package mrbox

import "github.com/alnah/go-mrbox/internal/assets"

// Bundle holds the template document and the assets inlined into it.
type Bundle struct {
	Template   string // index.html
	Stylesheet string // styles.css
	Script     string // game.js
}

// BundleLoader loads a bundle from any source (disk, embedded files, object storage).
// LoadBundle must return an error rather than a partial bundle.
type BundleLoader interface {
	LoadBundle() (*Bundle, error)
}

// Input holds the per-composition options.
type Input struct {
	// BaseDir is the directory containing index.html, styles.css and game.js.
	// Ignored when the Composer was built WithBundleLoader.
	BaseDir string

	// AudioURL replaces the audio source. Empty means DefaultAudioURL.
	AudioURL string
}

// Result is a composed document and the report of each substitution.
type Result struct {
	HTML          string
	Substitutions []Substitution
}

// Missing returns the names of placeholders whose marker was absent.
func (r *Result) Missing() []string {
	var missing []string
	for _, s := range r.Substitutions {
		if !s.Found() {
			missing = append(missing, s.Name)
		}
	}
	return missing
}

// Complete reports whether every marker was found.
func (r *Result) Complete() bool {
	return len(r.Missing()) == 0
}

// Substitution returns the report entry for the named placeholder.
func (r *Result) Substitution(name string) (Substitution, bool) {
	for _, s := range r.Substitutions {
		if s.Name == name {
			return s, true
		}
	}
	return Substitution{}, false
}

// fromAssetBundle converts the internal bundle type to the public one.
func fromAssetBundle(b *assets.Bundle) *Bundle {
	return &Bundle{
		Template:   b.Template,
		Stylesheet: b.Stylesheet,
		Script:     b.Script,
	}
}

// StarterBundle returns the built-in starter bundle, whose template carries all markers.
func StarterBundle() (*Bundle, error) {
	b, err := assets.LoadStarterBundle()
	if err != nil {
		return nil, err
	}
	return fromAssetBundle(b), nil
}
