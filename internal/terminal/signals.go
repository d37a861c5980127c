package terminal

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

// WatchSignals returns a context that is canceled on the first interrupt or
// termination signal. Further signals are swallowed until release is called,
// which also cancels the context.
func WatchSignals(parent context.Context) (ctx context.Context, release func()) {
	return watch(parent, shutdownSignals...)
}

func watch(parent context.Context, sigs ...os.Signal) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)
	c := make(chan os.Signal, 2)
	signal.Notify(c, sigs...)

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-c:
				cancel()
			case <-done:
				return
			}
		}
	}()

	return ctx, func() {
		signal.Stop(c)
		close(done)
		cancel()
	}
}
