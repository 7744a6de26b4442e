package store

import (
	"context"
	"sync"
)

type mockBackend struct {
	mu       sync.Mutex
	docs     map[string][]byte
	saves    int
	loadFunc func(ctx context.Context, name string) ([]byte, error)
	saveFunc func(ctx context.Context, name string, data []byte) error
	closed   bool
}

func newMockBackend() *mockBackend {
	return &mockBackend{docs: make(map[string][]byte)}
}

func (m *mockBackend) Load(ctx context.Context, name string) ([]byte, error) {
	if m.loadFunc != nil {
		return m.loadFunc(ctx, name)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.docs[name], nil
}

func (m *mockBackend) Save(ctx context.Context, name string, data []byte) error {
	if m.saveFunc != nil {
		if err := m.saveFunc(ctx, name, data); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[name] = data
	m.saves++
	return nil
}

func (m *mockBackend) Close() {
	m.closed = true
}

func (m *mockBackend) saved(name string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return string(m.docs[name])
}

func (m *mockBackend) saveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
