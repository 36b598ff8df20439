package main

import (
	"context"
	"fmt"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-mrbox/internal/assets"
	"github.com/alnah/go-mrbox/internal/config"
	"github.com/alnah/go-mrbox/internal/fileutil"
	"github.com/alnah/go-mrbox/internal/yamlutil"
)

// configFileName is the config written next to a scaffolded bundle.
const configFileName = defaultConfigName + ".yaml"

// initOptions holds the init command flags.
type initOptions struct {
	common   commonFlags
	force    bool
	noConfig bool
}

func (o *initOptions) register(fs *flag.FlagSet) {
	addCommonFlags(fs, &o.common)
	fs.BoolVarP(&o.force, "force", "f", false, "overwrite existing files")
	fs.BoolVar(&o.noConfig, "no-config", false, "do not write "+configFileName)
}

// runInit scaffolds the starter bundle and a default config into a directory.
func runInit(_ context.Context, args []string, env *Environment) error {
	var o initOptions
	fs := newFlagSet("init", env, printInitUsage)
	o.register(fs)

	dir, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if dir == "" {
		dir = "."
	}

	cfgPath := filepath.Join(dir, configFileName)
	writeCfg := !o.noConfig && (o.force || !fileutil.FileExists(cfgPath))

	written, err := assets.Scaffold(dir, o.force)
	if err != nil {
		return err
	}

	if writeCfg {
		cfg := config.DefaultConfig()
		cfg.Bundle.Dir = "."
		data, err := yamlutil.Encode(cfg)
		if err != nil {
			return err
		}
		if err := fileutil.WriteFileAtomic(cfgPath, data, outputPermissions); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		written = append(written, cfgPath)
	}

	if !o.common.quiet {
		for _, p := range written {
			fmt.Fprintf(env.Stdout, "Created %s\n", p)
		}
		fmt.Fprintf(env.Stdout, "\nNext: mrbox serve %s\n", dir)
	}
	return nil
}
