package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"yasen/internal/core/ports"
	"yasen/internal/metrics"
)

// Document is one persisted JSON document held in memory. The state mutex is
// only held while the value is read or mutated and snapshotted; backend writes
// happen outside of it.
type Document[T any] struct {
	name    string
	backend ports.DocumentBackend
	empty   func() T

	mu      sync.Mutex
	value   T
	version uint64

	saveMu sync.Mutex
	saved  atomic.Uint64
}

func NewDocument[T any](name string, backend ports.DocumentBackend, empty func() T) *Document[T] {
	return &Document[T]{
		name:    name,
		backend: backend,
		empty:   empty,
		value:   empty(),
	}
}

func (d *Document[T]) Name() string {
	return d.name
}

// Load replaces the in-memory value with the persisted document. A document
// that was never saved loads as empty.
func (d *Document[T]) Load(ctx context.Context) error {
	data, err := d.backend.Load(ctx, d.name)
	if err != nil {
		return fmt.Errorf("load document %s: %w", d.name, err)
	}

	value := d.empty()
	if len(data) > 0 {
		if err := json.Unmarshal(data, &value); err != nil {
			return fmt.Errorf("decode document %s: %w", d.name, err)
		}
	}

	d.mu.Lock()
	d.value = value
	version := d.version
	d.mu.Unlock()

	d.saved.Store(version)
	slog.Info("Document loaded", "document", d.name, "bytes", len(data))
	return nil
}

// View runs fn with read access to the value. fn must not retain it.
func (d *Document[T]) View(fn func(T)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn(d.value)
}

// saveTimeout bounds the write that follows a mutation.
const saveTimeout = 10 * time.Second

// Mutate applies fn and saves the result immediately. When fn returns an
// error nothing is saved and the error is returned unchanged. Once fn has
// been applied the save no longer follows ctx cancellation, so a change that
// is visible in memory is also written.
func (d *Document[T]) Mutate(ctx context.Context, fn func(*T) error) error {
	d.mu.Lock()
	if err := fn(&d.value); err != nil {
		d.mu.Unlock()
		return err
	}
	d.version++
	version := d.version
	data, err := json.Marshal(d.value)
	d.mu.Unlock()

	if err != nil {
		return fmt.Errorf("encode document %s: %w", d.name, err)
	}

	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), saveTimeout)
	defer cancel()
	return d.save(saveCtx, version, data)
}

// Flush writes the current value if it changed since the last successful save.
func (d *Document[T]) Flush(ctx context.Context) error {
	d.mu.Lock()
	version := d.version
	if version == d.saved.Load() {
		d.mu.Unlock()
		return nil
	}
	data, err := json.Marshal(d.value)
	d.mu.Unlock()

	if err != nil {
		return fmt.Errorf("encode document %s: %w", d.name, err)
	}
	return d.save(ctx, version, data)
}

// Dirty reports whether there are mutations not yet persisted.
func (d *Document[T]) Dirty() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.version != d.saved.Load()
}

func (d *Document[T]) save(ctx context.Context, version uint64, data []byte) error {
	d.saveMu.Lock()
	defer d.saveMu.Unlock()

	if version <= d.saved.Load() {
		return nil
	}

	if err := d.backend.Save(ctx, d.name, data); err != nil {
		metrics.DocumentSaves.WithLabelValues(d.name, "failure").Inc()
		return fmt.Errorf("save document %s: %w", d.name, err)
	}

	d.saved.Store(version)
	metrics.DocumentSaves.WithLabelValues(d.name, "success").Inc()
	return nil
}
