// Package shutdown provides interrupt handling for the CLI.
//
// A context returned by Listen is cancelled on the first SIGINT or
// SIGTERM so in-flight requests and the interactive shell can wind
// down. A second signal exits immediately.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// Listen returns a context cancelled on SIGINT or SIGTERM. The
// returned stop function releases the signal handler; callers should
// defer it.
func Listen(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	ch := make(chan os.Signal, 2)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	quit := make(chan struct{})
	go func() {
		select {
		case <-ch:
			cancel()
		case <-quit:
			return
		}
		select {
		case <-ch:
			os.Exit(1)
		case <-quit:
		}
	}()

	var stopped bool
	stop := func() {
		if !stopped {
			stopped = true
			signal.Stop(ch)
			close(quit)
		}
		cancel()
	}
	return ctx, stop
}
