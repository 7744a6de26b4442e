package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"yasen/internal/core/domain"
	"yasen/internal/core/ports"
	"yasen/internal/store"
)

var (
	ErrPlayerNotFound = fmt.Errorf("player %w", domain.ErrNotFound)
	ErrNotListed      = errors.New("user is not in the shame list")
)

type ShameService struct {
	doc *store.Document[domain.ShameList]
	api ports.WarshipsAPI
}

func NewShameService(doc *store.Document[domain.ShameList], api ports.WarshipsAPI) *ShameService {
	return &ShameService{doc: doc, api: api}
}

// Register looks up the in-game nickname and stores it for the user. created
// is false when an existing entry was replaced.
func (s *ShameService) Register(ctx context.Context, guildID, userID, nickname string, region domain.Region) (bool, error) {
	if guildID == "" {
		return false, ErrNoGuild
	}

	playerID, err := s.api.FindPlayerID(ctx, region, nickname)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, ErrPlayerNotFound
		}
		return false, fmt.Errorf("find player %s: %w: %w", nickname, domain.ErrUpstream, err)
	}

	var created bool
	err = s.doc.Mutate(ctx, func(list *domain.ShameList) error {
		if *list == nil {
			*list = domain.ShameList{}
		}
		members, ok := (*list)[guildID]
		if !ok {
			members = make(map[string]domain.ShameEntry)
			(*list)[guildID] = members
		}
		_, exists := members[userID]
		created = !exists
		members[userID] = domain.ShameEntry{Region: region, PlayerID: playerID}
		return nil
	})
	return created, err
}

// Remove deletes only the user's entry. It returns ErrNotListed, without
// saving, when there was nothing to remove.
func (s *ShameService) Remove(ctx context.Context, guildID, userID string) error {
	return s.doc.Mutate(ctx, func(list *domain.ShameList) error {
		members, ok := (*list)[guildID]
		if !ok {
			return ErrNotListed
		}
		if _, ok := members[userID]; !ok {
			return ErrNotListed
		}
		delete(members, userID)
		return nil
	})
}

func (s *ShameService) Lookup(guildID, userID string) (domain.ShameEntry, bool) {
	var (
		entry domain.ShameEntry
		found bool
	)
	s.doc.View(func(list domain.ShameList) {
		entry, found = list[guildID][userID]
	})
	return entry, found
}

// Members returns the user ids registered in the guild, sorted.
func (s *ShameService) Members(guildID string) []string {
	var ids []string
	s.doc.View(func(list domain.ShameList) {
		for id := range list[guildID] {
			ids = append(ids, id)
		}
	})
	sort.Strings(ids)
	return ids
}

// Stats fetches player statistics. A registered user is resolved from the
// stored entry without a name lookup; otherwise nickname is searched in region.
func (s *ShameService) Stats(ctx context.Context, guildID, userID, nickname string, region domain.Region) (*domain.PlayerStats, error) {
	if userID != "" {
		entry, ok := s.Lookup(guildID, userID)
		if !ok || !entry.Resolved() {
			return nil, ErrPlayerNotFound
		}
		return s.playerStats(ctx, entry.Region, entry.PlayerID)
	}

	playerID, err := s.api.FindPlayerID(ctx, region, nickname)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("find player %s: %w: %w", nickname, domain.ErrUpstream, err)
	}
	return s.playerStats(ctx, region, playerID)
}

func (s *ShameService) playerStats(ctx context.Context, region domain.Region, playerID int64) (*domain.PlayerStats, error) {
	stats, err := s.api.PlayerStats(ctx, region, playerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("player stats %d: %w: %w", playerID, domain.ErrUpstream, err)
	}
	return stats, nil
}
