package services

import (
	"context"
	"sync"

	"yasen/internal/core/domain"
	"yasen/internal/store"
)

type memoryBackend struct {
	mu    sync.Mutex
	docs  map[string][]byte
	saves int
}

func newMemoryBackend() *memoryBackend {
	return &memoryBackend{docs: make(map[string][]byte)}
}

func (m *memoryBackend) Load(ctx context.Context, name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.docs[name], nil
}

func (m *memoryBackend) Save(ctx context.Context, name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[name] = data
	m.saves++
	return nil
}

func (m *memoryBackend) Close() {}

func (m *memoryBackend) saved(name string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return string(m.docs[name])
}

func (m *memoryBackend) saveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func loadDoc[T any](t interface{ Fatalf(string, ...any) }, backend *memoryBackend, name, raw string, empty func() T) *store.Document[T] {
	if raw != "" {
		backend.docs[name] = []byte(raw)
	}
	doc := store.NewDocument(name, backend, empty)
	if err := doc.Load(context.Background()); err != nil {
		t.Fatalf("load %s: %v", name, err)
	}
	return doc
}

type mockWarshipsAPI struct {
	findPlayerIDFunc func(ctx context.Context, region domain.Region, nickname string) (int64, error)
	playerStatsFunc  func(ctx context.Context, region domain.Region, playerID int64) (*domain.PlayerStats, error)
	shipsFunc        func(ctx context.Context, region domain.Region) ([]domain.Ship, error)
	findCalls        int
}

func (m *mockWarshipsAPI) FindPlayerID(ctx context.Context, region domain.Region, nickname string) (int64, error) {
	m.findCalls++
	if m.findPlayerIDFunc != nil {
		return m.findPlayerIDFunc(ctx, region, nickname)
	}
	return 0, domain.ErrNotFound
}

func (m *mockWarshipsAPI) PlayerStats(ctx context.Context, region domain.Region, playerID int64) (*domain.PlayerStats, error) {
	if m.playerStatsFunc != nil {
		return m.playerStatsFunc(ctx, region, playerID)
	}
	return &domain.PlayerStats{PlayerID: playerID, Region: region}, nil
}

func (m *mockWarshipsAPI) Ships(ctx context.Context, region domain.Region) ([]domain.Ship, error) {
	if m.shipsFunc != nil {
		return m.shipsFunc(ctx, region)
	}
	return nil, nil
}

type mockResolver struct {
	resolveFunc func(ctx context.Context, url string) (*domain.Track, error)
}

func (m *mockResolver) Resolve(ctx context.Context, url string) (*domain.Track, error) {
	if m.resolveFunc != nil {
		return m.resolveFunc(ctx, url)
	}
	return &domain.Track{URL: url, Title: url}, nil
}
