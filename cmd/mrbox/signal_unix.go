//go:build !windows

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// notifyContext cancels the command context on SIGINT or SIGTERM.
// serve drains connections on cancel and snapshot closes its browser;
// a second signal after stop() falls back to the default handler.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
