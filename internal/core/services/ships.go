package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"yasen/internal/core/domain"
	"yasen/internal/core/ports"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ShipCatalog caches the ship encyclopedia of the NA realm.
type ShipCatalog struct {
	api ports.WarshipsAPI

	mu    sync.RWMutex
	ships map[string]domain.Ship
}

func NewShipCatalog(api ports.WarshipsAPI) *ShipCatalog {
	return &ShipCatalog{
		api:   api,
		ships: make(map[string]domain.Ship),
	}
}

func (c *ShipCatalog) Refresh(ctx context.Context) (int, error) {
	ships, err := c.api.Ships(ctx, domain.RegionNA)
	if err != nil {
		return 0, fmt.Errorf("refresh ships: %w", err)
	}

	byName := make(map[string]domain.Ship, len(ships))
	for _, ship := range ships {
		byName[ship.Name] = ship
	}

	c.mu.Lock()
	c.ships = byName
	c.mu.Unlock()

	slog.Info("Ship encyclopedia refreshed", "ships", len(byName))
	return len(byName), nil
}

// Find matches a user supplied name against the title-cased encyclopedia names.
func (c *ShipCatalog) Find(name string) (domain.Ship, bool) {
	key := NormalizeShipName(name)

	c.mu.RLock()
	defer c.mu.RUnlock()
	ship, ok := c.ships[key]
	return ship, ok
}

func (c *ShipCatalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.ships)
}

func NormalizeShipName(name string) string {
	formatted := cases.Title(language.English).String(strings.ToLower(strings.TrimSpace(name)))
	if strings.HasPrefix(formatted, "Arp") {
		formatted = "ARP" + strings.TrimPrefix(formatted, "Arp")
	}
	return formatted
}
