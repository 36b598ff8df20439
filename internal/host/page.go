package host

import (
	"bytes"
	"fmt"
	"html/template"
)

// pageTemplate is the host document around the frame.
var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body{margin:0;padding:1rem;font-family:system-ui,sans-serif}
iframe{display:block;border:0;{{if not .Width}}width:100%;{{end}}}
</style>
</head>
<body>
{{.Heading}}
<iframe src="{{.FrameSrc}}" title="{{.Title}}" height="{{.Height}}"{{if .Width}} width="{{.Width}}"{{end}} scrolling="{{if .Scrolling}}yes{{else}}no{{end}}"></iframe>
</body>
</html>
`))

// pageData feeds pageTemplate.
type pageData struct {
	Title     string
	Heading   template.HTML
	FrameSrc  string
	Height    int
	Width     int
	Scrolling bool
}

// renderPage executes pageTemplate. The page depends only on configuration,
// so the server renders it once at startup.
func renderPage(data pageData) ([]byte, error) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering host page: %w", err)
	}
	return buf.Bytes(), nil
}
