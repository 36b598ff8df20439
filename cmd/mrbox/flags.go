package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrUsage indicates invalid flags or arguments.
var ErrUsage = errors.New("invalid usage")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// bundleFlags holds flags that shape composition.
type bundleFlags struct {
	audioURL string
	strict   bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs")
}

// addBundleFlags adds composition flags to a FlagSet.
func addBundleFlags(fs *flag.FlagSet, f *bundleFlags) {
	fs.StringVar(&f.audioURL, "audio-url", "", "audio source URL (default: MRBOX_AUDIO_URL or built-in)")
	fs.BoolVar(&f.strict, "strict", false, "fail when a template marker is missing")
}

// newFlagSet creates a FlagSet whose usage goes to env.Stderr.
// Parse errors are returned, not printed, so runMain prints them once.
func newFlagSet(name string, env *Environment, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() { usage(env.Stderr) }
	return fs
}

// parseArgs parses args and returns the optional bundle directory argument.
func parseArgs(fs *flag.FlagSet, args []string) (string, error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", ErrUsage, err)
	}

	switch fs.NArg() {
	case 0:
		return "", nil
	case 1:
		return fs.Arg(0), nil
	default:
		return "", fmt.Errorf("%w: %s takes at most one directory, got %d arguments", ErrUsage, fs.Name(), fs.NArg())
	}
}
