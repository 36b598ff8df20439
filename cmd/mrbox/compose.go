package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	mrbox "github.com/alnah/go-mrbox"
	"github.com/alnah/go-mrbox/internal/fileutil"
	"github.com/alnah/go-mrbox/internal/hints"
)

// ErrWriteOutput indicates the output file could not be written.
var ErrWriteOutput = errors.New("failed to write output")

// outputPermissions for composed documents and snapshots.
const outputPermissions = 0o644

// composeOptions holds the compose command flags.
type composeOptions struct {
	common commonFlags
	bundle bundleFlags
	output string
	report bool
}

func (o *composeOptions) register(fs *flag.FlagSet) {
	addCommonFlags(fs, &o.common)
	addBundleFlags(fs, &o.bundle)
	fs.StringVarP(&o.output, "output", "o", "", "output file (default: stdout)")
	fs.BoolVar(&o.report, "report", false, "print the marker report to stderr")
}

// runCompose writes the composed document to stdout or --output.
// Nothing is written when composition fails, including a strict marker miss.
func runCompose(ctx context.Context, args []string, env *Environment) error {
	var o composeOptions
	fs := newFlagSet("compose", env, printComposeUsage)
	o.register(fs)

	dir, err := parseArgs(fs, args)
	if err != nil {
		return err
	}

	s, err := resolveSettings(fs, &o.common, &o.bundle, dir, env)
	if err != nil {
		return err
	}
	logger := s.logger(&o.common, "text", env)

	logger.Debug("composing bundle", "dir", s.cfg.Bundle.Dir, "strict", s.cfg.Bundle.Strict)
	result, err := s.composer().Compose(ctx, s.input())
	if err != nil {
		return composeError(err, result, s.cfg.Bundle.Dir)
	}

	if o.report {
		printReport(env.Stderr, result)
	}
	for _, name := range result.Missing() {
		logger.Warn("template marker not found", "placeholder", name)
	}

	output := o.output
	if output == "" {
		_, err := io.WriteString(env.Stdout, result.HTML)
		return err
	}

	if err := fileutil.WriteFileAtomic(output, []byte(result.HTML), outputPermissions); err != nil {
		return fmt.Errorf("%w: %v%s", ErrWriteOutput, err, hints.ForOutputDirectory())
	}
	if !o.common.quiet {
		fmt.Fprintf(env.Stderr, "Created %s (%d bytes)\n", output, len(result.HTML))
	}
	return nil
}

// printReport writes one line per placeholder with its occurrence count.
func printReport(w io.Writer, result *mrbox.Result) {
	for _, sub := range result.Substitutions {
		status := "OK"
		if !sub.Found() {
			status = "MISSING"
		}
		fmt.Fprintf(w, "  [%s] %-10s %d  %s\n", status, sub.Name, sub.Count, sub.Marker)
	}
}
