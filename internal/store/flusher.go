package store

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

type Flushable interface {
	Name() string
	Flush(ctx context.Context) error
}

// Flusher periodically writes every dirty document.
type Flusher struct {
	interval time.Duration
	docs     []Flushable
}

func NewFlusher(interval time.Duration, docs ...Flushable) *Flusher {
	return &Flusher{interval: interval, docs: docs}
}

// Start blocks until ctx is cancelled. The final flush on shutdown is left to
// the caller through FlushAll so it can run with its own deadline.
func (f *Flusher) Start(ctx context.Context) error {
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	slog.Info("Document flusher started", "interval", f.interval, "documents", len(f.docs))

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := f.FlushAll(ctx); err != nil {
				slog.Error("Periodic flush failed", "error", err)
			}
		}
	}
}

// FlushAll flushes every document and joins the failures.
func (f *Flusher) FlushAll(ctx context.Context) error {
	var errs []error
	for _, doc := range f.docs {
		if err := doc.Flush(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
