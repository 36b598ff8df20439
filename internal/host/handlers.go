package host

import (
	"errors"
	"net/http"

	mrbox "github.com/alnah/go-mrbox"
)

const htmlContentType = "text/html; charset=utf-8"

func (s *Server) handlePage(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", htmlContentType)
	_, _ = w.Write(s.page)
}

// handleFrame serves the composed document. Any compose error, including
// a strict-mode marker miss, yields 500 and no partial document.
func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	result, err := s.compose(r)
	if err != nil {
		http.Error(w, composeErrorText(err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", htmlContentType)
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write([]byte(result.HTML))
}

func (s *Server) handleSource(w http.ResponseWriter, r *http.Request) {
	result, err := s.compose(r)
	if err != nil {
		http.Error(w, composeErrorText(err), http.StatusInternalServerError)
		return
	}

	page, err := s.source.Highlight(result.HTML)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "highlight failed", "error", err)
		http.Error(w, "failed to highlight source", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", htmlContentType)
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(page)
}

// markerReport is the /markers response body.
type markerReport struct {
	Complete      bool                 `json:"complete"`
	Missing       []string             `json:"missing"`
	Substitutions []mrbox.Substitution `json:"substitutions"`
}

// handleMarkers reports marker counts. A strict-mode miss is still a report,
// not a failure; only load errors yield 500.
func (s *Server) handleMarkers(w http.ResponseWriter, r *http.Request) {
	result, err := s.compose(r)
	if err != nil && (result == nil || !errors.Is(err, mrbox.ErrMarkerMissing)) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": composeErrorText(err)})
		return
	}

	missing := result.Missing()
	if missing == nil {
		missing = []string{}
	}
	writeJSON(w, http.StatusOK, markerReport{
		Complete:      result.Complete(),
		Missing:       missing,
		Substitutions: result.Substitutions,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// composeErrorText is the client-facing error text. File paths stay in the logs.
func composeErrorText(err error) string {
	switch {
	case errors.Is(err, mrbox.ErrMarkerMissing):
		return err.Error()
	case errors.Is(err, mrbox.ErrReadTemplate):
		return "failed to read index.html"
	case errors.Is(err, mrbox.ErrReadStylesheet):
		return "failed to read styles.css"
	case errors.Is(err, mrbox.ErrReadScript):
		return "failed to read game.js"
	case errors.Is(err, mrbox.ErrInvalidBaseDir):
		return "bundle directory unavailable"
	default:
		return "failed to compose bundle"
	}
}
