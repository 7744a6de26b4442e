package services

import (
	"context"
	"errors"
	"sort"

	"yasen/internal/core/domain"
	"yasen/internal/store"
)

var (
	ErrNoSheet    = errors.New("guild has no match sheet")
	ErrNoMatch    = errors.New("match not found")
	ErrInvalidDay = errors.New("invalid weekday")
)

type NamedMatch struct {
	Name string
	domain.Match
}

type SheetService struct {
	doc *store.Document[domain.MatchSheet]
}

func NewSheetService(doc *store.Document[domain.MatchSheet]) *SheetService {
	return &SheetService{doc: doc}
}

// New replaces the guild's sheet with an empty one.
func (s *SheetService) New(ctx context.Context, guildID string) error {
	if guildID == "" {
		return ErrNoGuild
	}
	return s.doc.Mutate(ctx, func(sheet *domain.MatchSheet) error {
		if *sheet == nil {
			*sheet = domain.MatchSheet{}
		}
		(*sheet)[guildID] = make(map[string]*domain.Match)
		return nil
	})
}

// AddMatch adds or replaces a match. The first element of when must be an
// English weekday name; the rest is free text.
func (s *SheetService) AddMatch(ctx context.Context, guildID, name string, when []string) (*domain.Match, error) {
	if len(when) == 0 || domain.WeekdayIndex(when[0]) < 0 {
		return nil, ErrInvalidDay
	}

	match := &domain.Match{
		Time:    append([]string(nil), when...),
		Players: []string{},
	}

	err := s.doc.Mutate(ctx, func(sheet *domain.MatchSheet) error {
		matches, ok := (*sheet)[guildID]
		if !ok {
			return ErrNoSheet
		}
		matches[name] = match
		return nil
	})
	if err != nil {
		return nil, err
	}
	return match, nil
}

func (s *SheetService) RemoveMatch(ctx context.Context, guildID, name string) error {
	return s.doc.Mutate(ctx, func(sheet *domain.MatchSheet) error {
		matches, ok := (*sheet)[guildID]
		if !ok {
			return ErrNoSheet
		}
		if _, ok := matches[name]; !ok {
			return ErrNoMatch
		}
		delete(matches, name)
		return nil
	})
}

// Join adds the user to each named match and returns the matches the user
// newly joined. Unknown names are skipped and joining twice is a no-op.
func (s *SheetService) Join(ctx context.Context, guildID, userID string, names []string) ([]string, error) {
	var joined []string
	err := s.doc.Mutate(ctx, func(sheet *domain.MatchSheet) error {
		matches, ok := (*sheet)[guildID]
		if !ok {
			return ErrNoSheet
		}
		for _, name := range names {
			m, ok := matches[name]
			if !ok || m.HasPlayer(userID) {
				continue
			}
			m.Players = append(m.Players, userID)
			joined = append(joined, name)
		}
		return nil
	})
	return joined, err
}

// Quit removes the user from each named match and returns the matches the
// user actually left.
func (s *SheetService) Quit(ctx context.Context, guildID, userID string, names []string) ([]string, error) {
	var quit []string
	err := s.doc.Mutate(ctx, func(sheet *domain.MatchSheet) error {
		matches, ok := (*sheet)[guildID]
		if !ok {
			return ErrNoSheet
		}
		for _, name := range names {
			m, ok := matches[name]
			if !ok {
				continue
			}
			for i, p := range m.Players {
				if p == userID {
					m.Players = append(m.Players[:i], m.Players[i+1:]...)
					quit = append(quit, name)
					break
				}
			}
		}
		return nil
	})
	return quit, err
}

// Matches returns copies of the guild's matches ordered by weekday, then name.
func (s *SheetService) Matches(guildID string) ([]NamedMatch, error) {
	var (
		result []NamedMatch
		exists bool
	)
	s.doc.View(func(sheet domain.MatchSheet) {
		matches, ok := sheet[guildID]
		if !ok {
			return
		}
		exists = true
		for name, m := range matches {
			result = append(result, NamedMatch{
				Name: name,
				Match: domain.Match{
					Time:    append([]string(nil), m.Time...),
					Players: append([]string(nil), m.Players...),
				},
			})
		}
	})
	if !exists {
		return nil, ErrNoSheet
	}

	sort.Slice(result, func(i, j int) bool {
		di, dj := domain.WeekdayIndex(result[i].Weekday()), domain.WeekdayIndex(result[j].Weekday())
		if di != dj {
			return di < dj
		}
		return result[i].Name < result[j].Name
	})
	return result, nil
}
