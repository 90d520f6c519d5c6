package graceful

import (
	"atm-locator-service/internal/platform/obs"
	"context"
	"os"
	"os/signal"
	"syscall"
)

// Context returns a context canceled on SIGINT or SIGTERM.
func Context(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			obs.Logger.Log("msg", "received signal, shutting down", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
