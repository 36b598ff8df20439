package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	mrbox "github.com/alnah/go-mrbox"
)

// checkReport is the --json output of the check command.
type checkReport struct {
	Dir           string               `json:"dir"`
	Complete      bool                 `json:"complete"`
	Substitutions []mrbox.Substitution `json:"substitutions"`
}

// checkOptions holds the check command flags.
type checkOptions struct {
	common commonFlags
	bundle bundleFlags
	json   bool
}

func (o *checkOptions) register(fs *flag.FlagSet) {
	addCommonFlags(fs, &o.common)
	addBundleFlags(fs, &o.bundle)
	fs.BoolVar(&o.json, "json", false, "output as JSON")
}

// runCheck reports which markers the template contains.
// Missing markers fail only with --strict (or bundle.strict / MRBOX_STRICT).
// An unusual audio URL only produces a warning on stderr.
func runCheck(ctx context.Context, args []string, env *Environment) error {
	var o checkOptions
	fs := newFlagSet("check", env, printCheckUsage)
	o.register(fs)

	dir, err := parseArgs(fs, args)
	if err != nil {
		return err
	}

	s, err := resolveSettings(fs, &o.common, &o.bundle, dir, env)
	if err != nil {
		return err
	}

	if msg := audioURLWarning(mrbox.ResolveAudioURL(s.cfg.Bundle.AudioURL)); msg != "" {
		fmt.Fprintf(env.Stderr, "warning: %s\n", msg)
	}

	result, err := s.composer().Compose(ctx, s.input())
	if err != nil && !errors.Is(err, mrbox.ErrMarkerMissing) {
		return composeError(err, result, s.cfg.Bundle.Dir)
	}

	if o.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(checkReport{
			Dir:           s.cfg.Bundle.Dir,
			Complete:      result.Complete(),
			Substitutions: result.Substitutions,
		}); encErr != nil {
			return encErr
		}
	} else if !o.common.quiet {
		fmt.Fprintf(env.Stdout, "Markers in %s\n", s.cfg.Bundle.Dir)
		printReport(env.Stdout, result)
		if result.Complete() {
			fmt.Fprintln(env.Stdout, "Status: all markers found")
		} else {
			fmt.Fprintf(env.Stdout, "Status: %d of %d markers missing\n", len(result.Missing()), len(result.Substitutions))
		}
	}

	if err != nil {
		return composeError(err, result, s.cfg.Bundle.Dir)
	}
	return nil
}
