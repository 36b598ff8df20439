package main

import (
	"context"
	"errors"

	flag "github.com/spf13/pflag"

	mrbox "github.com/alnah/go-mrbox"
	"github.com/alnah/go-mrbox/internal/host"
	"github.com/alnah/go-mrbox/internal/observability"
)

// serveOptions holds the serve command flags.
type serveOptions struct {
	common commonFlags
	bundle bundleFlags
	addr   string
	height int
	title  string
}

func (o *serveOptions) register(fs *flag.FlagSet) {
	addCommonFlags(fs, &o.common)
	addBundleFlags(fs, &o.bundle)
	fs.StringVarP(&o.addr, "addr", "a", "", "listen address (default: server.addr, MRBOX_ADDR or PORT)")
	fs.IntVar(&o.height, "height", 0, "iframe height in px (default: page.height)")
	fs.StringVar(&o.title, "title", "", "host page title (default: page.title)")
}

// runServe hosts the bundle: a page with a heading and an iframe whose
// document is composed fresh on every request.
func runServe(ctx context.Context, args []string, env *Environment) error {
	var o serveOptions
	fs := newFlagSet("serve", env, printServeUsage)
	o.register(fs)

	dir, err := parseArgs(fs, args)
	if err != nil {
		return err
	}

	s, err := resolveSettings(fs, &o.common, &o.bundle, dir, env)
	if err != nil {
		return err
	}
	if fs.Changed("addr") {
		s.cfg.Server.Addr = o.addr
	}
	if fs.Changed("height") {
		s.cfg.Page.Height = o.height
	}
	if fs.Changed("title") {
		s.cfg.Page.Title = o.title
	}
	if err := s.cfg.Validate(); err != nil {
		return err
	}

	logger := s.logger(&o.common, "json", env)
	flush := observability.InitSentry(observability.SentryConfig{
		DSN:         s.env.SentryDSN,
		Environment: s.env.SentryEnvironment,
		Release:     Version,
	}, logger)
	defer flush()

	composer := s.composer()

	// Files are read per request, so a broken bundle is reported but does not
	// prevent startup.
	result, err := composer.Compose(ctx, s.input())
	switch {
	case err != nil && !errors.Is(err, mrbox.ErrMarkerMissing):
		logger.Warn("bundle not composable yet", "dir", s.cfg.Bundle.Dir, "error", err)
	case result != nil:
		for _, name := range result.Missing() {
			logger.Warn("template marker not found", "placeholder", name, "strict", s.cfg.Bundle.Strict)
		}
	}

	srv, err := host.New(ctx, host.Options{
		Addr:  s.cfg.Server.Addr,
		Input: s.input(),
		Page: host.Page{
			Title:     s.cfg.Page.Title,
			Heading:   s.cfg.Page.Heading,
			Height:    s.cfg.Page.Height,
			Width:     s.cfg.Page.Width,
			Scrolling: s.cfg.Page.Scrolling,
		},
		ReadTimeout:     s.cfg.Server.ReadTimeout,
		WriteTimeout:    s.cfg.Server.WriteTimeout,
		ShutdownTimeout: s.cfg.Server.ShutdownTimeout,
		RateLimit: host.RateLimit{
			RPS:   s.cfg.Server.RateLimit.RPS,
			Burst: s.cfg.Server.RateLimit.Burst,
		},
	}, composer, logger)
	if err != nil {
		return err
	}

	return env.Serve(ctx, srv)
}
