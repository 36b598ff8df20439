package main

import (
	"os"
	"testing"
	"time"
)

func TestDefaultEnv(t *testing.T) {
	t.Parallel()

	env := DefaultEnv()

	t.Run("Now returns real time", func(t *testing.T) {
		before := time.Now()
		got := env.Now()
		after := time.Now()

		if got.Before(before) || got.After(after) {
			t.Errorf("Now() = %v, should be between %v and %v", got, before, after)
		}
	})

	t.Run("standard streams", func(t *testing.T) {
		if env.Stdout != os.Stdout {
			t.Error("Stdout should be os.Stdout")
		}
		if env.Stderr != os.Stderr {
			t.Error("Stderr should be os.Stderr")
		}
	})

	t.Run("collaborators are set", func(t *testing.T) {
		if env.Environ == nil || env.NewSnapshotter == nil || env.Serve == nil {
			t.Error("Environ, NewSnapshotter and Serve should not be nil")
		}
	})

	t.Run("NewSnapshotter does not launch a browser", func(t *testing.T) {
		s := env.NewSnapshotter()
		if err := s.Close(); err != nil {
			t.Errorf("Close() on an unused snapshotter = %v, want nil", err)
		}
	})
}
