package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// WaitForShutdown blocks until SIGINT or SIGTERM arrives or ctx is done, and
// returns the signal received (nil when ctx ended first).
func WaitForShutdown(ctx context.Context) os.Signal {
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sc)

	select {
	case sig := <-sc:
		slog.Info("Shutdown signal received", "signal", sig.String())
		return sig
	case <-ctx.Done():
		return nil
	}
}
