package mrbox

import "strings"

// Markers are the literal substrings of the template replaced during composition.
// They must appear byte-for-byte; a reformatted tag is not recognized.
const (
	StylesheetMarker = `<link rel="stylesheet" href="./styles.css" />`
	ScriptMarker     = `<script src="./game.js"></script>`
	AudioMarker      = `src="./two_tigers.mp3"`
)

// DefaultAudioURL is used when no audio URL is configured.
const DefaultAudioURL = "https://raw.githubusercontent.com/lynnyolanda22-code/game/main/two_tigers.mp3"

// Placeholder names, in substitution order.
const (
	PlaceholderStylesheet = "stylesheet"
	PlaceholderScript     = "script"
	PlaceholderAudio      = "audio"
)

// Host frame defaults.
const (
	DefaultFrameHeight = 720
	DefaultFrameWidth  = 1280
)

// Substitution is a named placeholder resolved to its replacement text.
type Substitution struct {
	Name        string `json:"name"`
	Marker      string `json:"marker"`
	Replacement string `json:"-"`
	Count       int    `json:"count"` // occurrences replaced; 0 means the marker was absent
}

// Found reports whether the marker occurred at least once.
func (s Substitution) Found() bool {
	return s.Count > 0
}

// InlineStylesheet wraps stylesheet text in an inline style element.
// The text is kept verbatim.
func InlineStylesheet(css string) string {
	return "<style>" + css + "</style>"
}

// InlineScript wraps script text in an inline script element.
// The text is kept verbatim.
func InlineScript(js string) string {
	return "<script>" + js + "</script>"
}

// AudioSource builds the src attribute for the audio element.
// The URL is inserted verbatim, without validation or escaping.
func AudioSource(url string) string {
	return `src="` + url + `"`
}

// ResolveAudioURL returns url, or DefaultAudioURL when url is empty.
func ResolveAudioURL(url string) string {
	if url == "" {
		return DefaultAudioURL
	}
	return url
}

// placeholders builds the ordered placeholder mapping for a bundle.
func placeholders(b Bundle, audioURL string) []Substitution {
	return []Substitution{
		{Name: PlaceholderStylesheet, Marker: StylesheetMarker, Replacement: InlineStylesheet(b.Stylesheet)},
		{Name: PlaceholderScript, Marker: ScriptMarker, Replacement: InlineScript(b.Script)},
		{Name: PlaceholderAudio, Marker: AudioMarker, Replacement: AudioSource(ResolveAudioURL(audioURL))},
	}
}

// substitute applies each substitution in order to the output of the previous one,
// replacing every occurrence, and records the occurrence count.
// Later markers are matched against text produced by earlier replacements.
func substitute(doc string, subs []Substitution) string {
	for i := range subs {
		subs[i].Count = strings.Count(doc, subs[i].Marker)
		if subs[i].Count == 0 {
			continue
		}
		doc = strings.ReplaceAll(doc, subs[i].Marker, subs[i].Replacement)
	}
	return doc
}
