//go:build windows

package main

import (
	"context"
	"os"
	"os/signal"
)

// notifyContext cancels the command context on Ctrl+C.
// Windows has no SIGTERM, so a service manager stop ends serve without draining.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt)
}
