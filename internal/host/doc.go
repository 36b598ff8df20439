// Package host serves a composed Mr Box bundle over HTTP.
//
// The host page at / carries a Markdown heading and an iframe of fixed
// height whose source is /frame. Every /frame request composes the bundle
// afresh, so edits to the bundle files show up on reload.
//
// Routes:
//
//	GET /         host page
//	GET /frame    composed document
//	GET /source   composed document, syntax highlighted
//	GET /markers  marker report as JSON
//	GET /healthz  liveness probe
package host
