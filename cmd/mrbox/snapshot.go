package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	mrbox "github.com/alnah/go-mrbox"
	"github.com/alnah/go-mrbox/internal/fileutil"
	"github.com/alnah/go-mrbox/internal/hints"
)

// defaultSnapshotOutput is written when --output is not given.
const defaultSnapshotOutput = "mrbox.png"

// snapshotOptions holds the snapshot command flags.
type snapshotOptions struct {
	common  commonFlags
	bundle  bundleFlags
	output  string
	width   int
	height  int
	timeout time.Duration
}

func (o *snapshotOptions) register(fs *flag.FlagSet) {
	addCommonFlags(fs, &o.common)
	addBundleFlags(fs, &o.bundle)
	fs.StringVarP(&o.output, "output", "o", defaultSnapshotOutput, "PNG output file")
	fs.IntVar(&o.width, "width", 0, "viewport width in px (default: snapshot.width)")
	fs.IntVar(&o.height, "height", 0, "viewport height in px (default: page.height)")
	fs.DurationVarP(&o.timeout, "timeout", "t", 0, "page load timeout (default: snapshot.timeout)")
}

// runSnapshot composes the bundle and saves a PNG of it rendered in headless Chrome.
func runSnapshot(ctx context.Context, args []string, env *Environment) error {
	var o snapshotOptions
	fs := newFlagSet("snapshot", env, printSnapshotUsage)
	o.register(fs)

	dir, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	output, width, height, timeout := o.output, o.width, o.height, o.timeout
	if !strings.EqualFold(filepath.Ext(output), ".png") {
		return fmt.Errorf("%w: snapshot output must end in .png, got %q", ErrUsage, output)
	}

	s, err := resolveSettings(fs, &o.common, &o.bundle, dir, env)
	if err != nil {
		return err
	}
	logger := s.logger(&o.common, "text", env)

	if width == 0 {
		width = s.cfg.Snapshot.Width
	}
	if width == 0 {
		width = mrbox.DefaultFrameWidth
	}
	if height == 0 {
		height = s.cfg.Page.Height
	}
	if timeout == 0 {
		timeout = s.cfg.Snapshot.Timeout
	}
	if width < 0 || height <= 0 || timeout < 0 {
		return fmt.Errorf("%w: %dx%d", mrbox.ErrInvalidViewport, width, height)
	}

	result, err := s.composer().Compose(ctx, s.input())
	if err != nil {
		return composeError(err, result, s.cfg.Bundle.Dir)
	}

	opts := []mrbox.SnapshotOption{mrbox.WithViewport(width, height)}
	if timeout > 0 {
		opts = append(opts, mrbox.WithSnapshotTimeout(timeout))
	}
	shooter := env.NewSnapshotter(opts...)
	defer func() {
		if cerr := shooter.Close(); cerr != nil {
			logger.Warn("closing browser", "error", cerr)
		}
	}()

	start := env.Now()
	logger.Debug("rendering snapshot", "width", width, "height", height, "timeout", timeout.String())
	png, err := shooter.Snapshot(ctx, result.HTML)
	if err != nil {
		return snapshotError(err)
	}

	if err := fileutil.WriteFileAtomic(output, png, outputPermissions); err != nil {
		return fmt.Errorf("%w: %v%s", ErrWriteOutput, err, hints.ForOutputDirectory())
	}
	if !o.common.quiet {
		fmt.Fprintf(env.Stderr, "Created %s (%dx%d, %s)\n", output, width, height, env.Now().Sub(start).Round(time.Millisecond))
	}
	return nil
}

// snapshotError decorates a browser failure with an actionable hint.
func snapshotError(err error) error {
	switch {
	case errors.Is(err, mrbox.ErrBrowserConnect):
		return fmt.Errorf("%w%s", err, hints.ForBrowserConnect())
	case errors.Is(err, mrbox.ErrPageLoad), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w%s", err, hints.ForTimeout())
	default:
		return err
	}
}
