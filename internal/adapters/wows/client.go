package wows

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"yasen/internal/adapters/httpclient"
	"yasen/internal/core/domain"
)

// Client talks to the Wargaming World of Warships public API.
type Client struct {
	httpClient    *http.Client
	applicationID string
	baseURL       func(realm string) string
}

func NewClient(applicationID string) *Client {
	return &Client{
		httpClient:    httpclient.New("wows", 10),
		applicationID: applicationID,
		baseURL: func(realm string) string {
			return fmt.Sprintf("https://api.worldofwarships.%s/wows", realm)
		},
	}
}

// NewTestClient creates a client that sends every realm to baseURL.
func NewTestClient(baseURL, applicationID string) *Client {
	return &Client{
		httpClient:    &http.Client{},
		applicationID: applicationID,
		baseURL:       func(string) string { return baseURL },
	}
}

func (c *Client) FindPlayerID(ctx context.Context, region domain.Region, nickname string) (int64, error) {
	params := url.Values{}
	params.Set("search", nickname)
	params.Set("limit", "10")

	var items []accountListItem
	if err := c.get(ctx, region, "/account/list/", params, &items); err != nil {
		return 0, fmt.Errorf("search player: %w", err)
	}

	for _, item := range items {
		if strings.EqualFold(item.Nickname, nickname) {
			return item.AccountID, nil
		}
	}
	if len(items) > 0 {
		return items[0].AccountID, nil
	}
	return 0, domain.ErrNotFound
}

func (c *Client) PlayerStats(ctx context.Context, region domain.Region, playerID int64) (*domain.PlayerStats, error) {
	id := strconv.FormatInt(playerID, 10)
	params := url.Values{}
	params.Set("account_id", id)

	var data map[string]*accountInfo
	if err := c.get(ctx, region, "/account/info/", params, &data); err != nil {
		return nil, fmt.Errorf("fetch player: %w", err)
	}

	info := data[id]
	if info == nil {
		return nil, domain.ErrNotFound
	}

	stats := &domain.PlayerStats{
		PlayerID: info.AccountID,
		Nickname: info.Nickname,
		Region:   region,
		Private:  info.HiddenProfile || info.Statistics == nil,
	}
	if info.Statistics != nil {
		pvp := info.Statistics.PvP
		stats.Battles = pvp.Battles
		stats.Wins = pvp.Wins
		stats.Losses = pvp.Losses
		stats.DamageDealt = pvp.DamageDealt
		stats.Frags = pvp.Frags
		stats.SurvivedBattles = pvp.SurvivedBattles
		stats.MaxDamage = pvp.MaxDamageDealt
		stats.MaxFrags = pvp.MaxFragsBattle
	}
	return stats, nil
}

// Ships walks every page of the encyclopedia.
func (c *Client) Ships(ctx context.Context, region domain.Region) ([]domain.Ship, error) {
	var ships []domain.Ship

	for page := 1; ; page++ {
		params := url.Values{}
		params.Set("page_no", strconv.Itoa(page))

		var data map[string]*shipInfo
		m, err := c.getPage(ctx, region, "/encyclopedia/ships/", params, &data)
		if err != nil {
			return nil, fmt.Errorf("fetch ships page %d: %w", page, err)
		}

		for _, info := range data {
			if info == nil {
				continue
			}
			ships = append(ships, toShip(info))
		}

		if m.PageTotal <= page {
			break
		}
	}

	return ships, nil
}

func toShip(info *shipInfo) domain.Ship {
	ship := domain.Ship{
		ID:          info.ShipID,
		Name:        info.Name,
		Tier:        info.Tier,
		Nation:      info.Nation,
		Type:        info.Type,
		PriceGold:   info.PriceGold,
		PriceCredit: info.PriceCredit,
	}
	if p := info.DefaultProfile; p != nil {
		if p.Hull != nil {
			ship.Health = p.Hull.Health
		}
		if a := p.Armour; a != nil {
			ship.Citadel = domain.ArmourRange(a.Citadel)
			ship.Casemate = domain.ArmourRange(a.Casemate)
			ship.Deck = domain.ArmourRange(a.Deck)
			ship.Extremities = domain.ArmourRange(a.Extremities)
		}
	}
	return ship
}

func (c *Client) get(ctx context.Context, region domain.Region, path string, params url.Values, dest any) error {
	_, err := c.getPage(ctx, region, path, params, dest)
	return err
}

func (c *Client) getPage(ctx context.Context, region domain.Region, path string, params url.Values, dest any) (meta, error) {
	params.Set("application_id", c.applicationID)
	u := c.baseURL(region.Realm()) + path + "?" + params.Encode()

	var env envelope
	if err := httpclient.GetJSON(ctx, c.httpClient, u, &env); err != nil {
		return meta{}, err
	}

	if env.Status != "ok" {
		if env.Error != nil {
			return meta{}, fmt.Errorf("api error %d: %s", env.Error.Code, env.Error.Message)
		}
		return meta{}, fmt.Errorf("api status %q", env.Status)
	}

	if len(env.Data) == 0 || string(env.Data) == "null" {
		return env.Meta, nil
	}
	if err := json.Unmarshal(env.Data, dest); err != nil {
		return meta{}, fmt.Errorf("decode data: %w", err)
	}
	return env.Meta, nil
}
