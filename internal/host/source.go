package host

import (
	"bytes"
	"fmt"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// sourceHighlighter renders a document as a standalone, highlighted HTML page.
type sourceHighlighter struct {
	lexer     chroma.Lexer
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

func newSourceHighlighter() *sourceHighlighter {
	lexer := lexers.Get("html")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	style := styles.Get("github")
	if style == nil {
		style = styles.Fallback
	}
	return &sourceHighlighter{
		lexer: chroma.Coalesce(lexer),
		style: style,
		formatter: chromahtml.New(
			chromahtml.Standalone(true),
			chromahtml.WithLineNumbers(true),
			chromahtml.TabWidth(2),
		),
	}
}

// Highlight returns doc as highlighted HTML.
func (s *sourceHighlighter) Highlight(doc string) ([]byte, error) {
	it, err := s.lexer.Tokenise(nil, doc)
	if err != nil {
		return nil, fmt.Errorf("tokenising source: %w", err)
	}

	var buf bytes.Buffer
	if err := s.formatter.Format(&buf, s.style, it); err != nil {
		return nil, fmt.Errorf("formatting source: %w", err)
	}
	return buf.Bytes(), nil
}
