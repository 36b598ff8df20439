package main

import (
	"context"
	"io"
	"os"
	"time"

	mrbox "github.com/alnah/go-mrbox"
	"github.com/alnah/go-mrbox/internal/host"
)

// snapshotter renders composed documents to PNG. *mrbox.Snapshotter implements it.
type snapshotter interface {
	Snapshot(ctx context.Context, html string) ([]byte, error)
	Close() error
}

// Environment holds injectable dependencies for testability.
// Includes I/O, the process environment, and the long-running collaborators.
type Environment struct {
	Now     func() time.Time
	Stdout  io.Writer
	Stderr  io.Writer
	Environ func() []string

	// NewSnapshotter builds the browser renderer for the snapshot command.
	NewSnapshotter func(opts ...mrbox.SnapshotOption) snapshotter

	// Serve runs the host until ctx is done.
	Serve func(ctx context.Context, s *host.Server) error
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:     time.Now,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Environ: os.Environ,
		NewSnapshotter: func(opts ...mrbox.SnapshotOption) snapshotter {
			return mrbox.NewSnapshotter(opts...)
		},
		Serve: func(ctx context.Context, s *host.Server) error {
			return s.ListenAndServe(ctx)
		},
	}
}
