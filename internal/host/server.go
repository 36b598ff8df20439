package host

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"

	mrbox "github.com/alnah/go-mrbox"
	"github.com/alnah/go-mrbox/internal/observability"
)

// framePath is the iframe source on the host page.
const framePath = "/frame"

// Composer produces the framed document. *mrbox.Composer implements it.
type Composer interface {
	Compose(ctx context.Context, input mrbox.Input) (*mrbox.Result, error)
}

// Compile-time interface check.
var _ Composer = (*mrbox.Composer)(nil)

// Page describes the host document.
type Page struct {
	Title     string
	Heading   string // Markdown
	Height    int    // px
	Width     int    // px, 0 = full width
	Scrolling bool
}

// Options configures a Server.
type Options struct {
	Addr            string
	Input           mrbox.Input
	Page            Page
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	RateLimit       RateLimit
}

// Server is the rendering host.
type Server struct {
	opts     Options
	composer Composer
	logger   *slog.Logger
	page     []byte
	source   *sourceHighlighter
	handler  http.Handler
}

// New builds a Server. The host page is rendered here, so a heading that
// fails to render is reported before the server listens.
func New(ctx context.Context, opts Options, composer Composer, logger *slog.Logger) (*Server, error) {
	if composer == nil {
		return nil, errors.New("host: nil composer")
	}
	if logger == nil {
		logger = observability.Discard()
	}
	if opts.Page.Height <= 0 {
		opts.Page.Height = mrbox.DefaultFrameHeight
	}

	heading, err := newHeadingRenderer().Render(ctx, opts.Page.Heading)
	if err != nil {
		return nil, err
	}
	page, err := renderPage(pageData{
		Title:     opts.Page.Title,
		Heading:   heading,
		FrameSrc:  framePath,
		Height:    opts.Page.Height,
		Width:     opts.Page.Width,
		Scrolling: opts.Page.Scrolling,
	})
	if err != nil {
		return nil, err
	}

	s := &Server{
		opts:     opts,
		composer: composer,
		logger:   logger,
		page:     page,
		source:   newSourceHighlighter(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("GET "+framePath, s.handleFrame)
	mux.HandleFunc("GET /source", s.handleSource)
	mux.HandleFunc("GET /markers", s.handleMarkers)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	s.handler = chain(mux,
		requestID(),
		logging(logger),
		rateLimit(opts.RateLimit, logger),
	)
	return s, nil
}

// Addr is the configured listen address.
func (s *Server) Addr() string {
	return s.opts.Addr
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully within ShutdownTimeout. It returns nil after a clean shutdown.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       s.opts.ReadTimeout,
		WriteTimeout:      s.opts.WriteTimeout,
		IdleTimeout:       60 * time.Second,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
	}

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info("mrbox listening", "addr", ln.Addr().String(), "dir", s.opts.Input.BaseDir)
		serveErr <- srv.Serve(ln)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	timeout := s.opts.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	s.logger.Info("shutting down server", "timeout", timeout.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	s.logger.Info("server stopped gracefully")
	return nil
}

// ListenAndServe listens on Options.Addr and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.opts.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// compose runs the composer and reports failures to the request's Sentry hub.
func (s *Server) compose(r *http.Request) (*mrbox.Result, error) {
	result, err := s.composer.Compose(r.Context(), s.opts.Input)
	if err != nil {
		if hub := sentry.GetHubFromContext(r.Context()); hub != nil {
			hub.CaptureException(err)
		}
		s.logger.ErrorContext(r.Context(), "compose failed", "dir", s.opts.Input.BaseDir, "error", err)
	}
	return result, err
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
