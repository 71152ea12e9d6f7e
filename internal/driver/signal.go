package driver

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// SignalCancel returns a context derived from parent that is cancelled the
// first time the process receives SIGINT or SIGTERM. One handler per
// process lifetime, modeled on the teacher's emergency-stop signal watcher
// but reduced to a plain cancellation — there is no stop-file and no
// callback registry here, since the experiment driver's cancellation is a
// single flag, not a multi-subsystem emergency stop.
func SignalCancel(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-ctx.Done():
			signal.Stop(sigCh)
			return
		case <-sigCh:
			cancel()
			signal.Stop(sigCh)
			return
		}
	}()

	return ctx, cancel
}
