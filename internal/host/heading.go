package host

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrHeadingRender indicates the Markdown heading could not be rendered.
var ErrHeadingRender = errors.New("heading render failed")

// headingRenderer converts the page heading from Markdown to an HTML fragment.
type headingRenderer struct {
	md goldmark.Markdown
}

func newHeadingRenderer() *headingRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(false), // inline styles, the host page has no stylesheet for them
				),
			),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
			// WithUnsafe is not used: raw HTML in the heading is dropped.
		),
	)
	return &headingRenderer{md: md}
}

// Render converts markdown to a trusted HTML fragment.
// Goldmark has no context support, so conversion runs in a goroutine and
// Render returns early when ctx is done.
func (h *headingRenderer) Render(ctx context.Context, markdown string) (template.HTML, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := h.md.Convert([]byte(markdown), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHeadingRender, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		// #nosec G203 -- goldmark output without WithUnsafe escapes raw HTML
		return template.HTML(r.html), r.err
	}
}
