package services

import (
	"context"
	"errors"
	"unicode/utf8"

	"yasen/internal/core/domain"
	"yasen/internal/store"
)

var (
	ErrInvalidPrefix = errors.New("prefix must be exactly one character")
	ErrNoGuild       = errors.New("not in a guild")
)

type PrefixService struct {
	doc           *store.Document[domain.PrefixMap]
	defaultPrefix string
}

func NewPrefixService(doc *store.Document[domain.PrefixMap], defaultPrefix string) *PrefixService {
	return &PrefixService{doc: doc, defaultPrefix: defaultPrefix}
}

func (s *PrefixService) Default() string {
	return s.defaultPrefix
}

// Resolve returns the guild's prefix, or the default for direct messages and
// guilds that never set one.
func (s *PrefixService) Resolve(guildID string) string {
	if guildID == "" {
		return s.defaultPrefix
	}

	prefix := s.defaultPrefix
	s.doc.View(func(m domain.PrefixMap) {
		if p, ok := m[guildID]; ok && p != "" {
			prefix = p
		}
	})
	return prefix
}

func (s *PrefixService) Set(ctx context.Context, guildID, prefix string) error {
	if guildID == "" {
		return ErrNoGuild
	}
	if utf8.RuneCountInString(prefix) != 1 {
		return ErrInvalidPrefix
	}

	return s.doc.Mutate(ctx, func(m *domain.PrefixMap) error {
		if *m == nil {
			*m = domain.PrefixMap{}
		}
		(*m)[guildID] = prefix
		return nil
	})
}
