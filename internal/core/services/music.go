package services

import (
	"context"
	"fmt"
	"sync"

	"yasen/internal/core/domain"
	"yasen/internal/core/ports"
)

// MusicQueue keeps per-guild track queues in memory. Tracks are metadata
// only; nothing is streamed.
type MusicQueue struct {
	resolver ports.VideoResolver

	mu     sync.RWMutex
	queues map[string][]domain.Track
}

func NewMusicQueue(resolver ports.VideoResolver) *MusicQueue {
	return &MusicQueue{
		resolver: resolver,
		queues:   make(map[string][]domain.Track),
	}
}

// Enqueue resolves the url and appends the track. position is 1-based.
func (q *MusicQueue) Enqueue(ctx context.Context, guildID, url, requestedBy string) (*domain.Track, int, error) {
	track, err := q.resolver.Resolve(ctx, url)
	if err != nil {
		return nil, 0, fmt.Errorf("resolve %s: %w", url, err)
	}
	track.RequestedBy = requestedBy

	q.mu.Lock()
	defer q.mu.Unlock()
	q.queues[guildID] = append(q.queues[guildID], *track)
	return track, len(q.queues[guildID]), nil
}

func (q *MusicQueue) List(guildID string) []domain.Track {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return append([]domain.Track(nil), q.queues[guildID]...)
}

// Skip drops the head of the queue and returns it.
func (q *MusicQueue) Skip(guildID string) (domain.Track, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	tracks := q.queues[guildID]
	if len(tracks) == 0 {
		return domain.Track{}, false
	}
	head := tracks[0]
	if len(tracks) == 1 {
		delete(q.queues, guildID)
	} else {
		q.queues[guildID] = tracks[1:]
	}
	return head, true
}

// Clear empties the queue and returns how many tracks were removed.
func (q *MusicQueue) Clear(guildID string) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := len(q.queues[guildID])
	delete(q.queues, guildID)
	return n
}
