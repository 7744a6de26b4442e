package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Region is a World of Warships server region.
type Region string

const (
	RegionNA Region = "NA"
	RegionEU Region = "EU"
	RegionRU Region = "RU"
	RegionAS Region = "AS"
)

var Regions = []Region{RegionNA, RegionEU, RegionRU, RegionAS}

// ParseRegion accepts the command spelling (NA, EU, RU, AS, case-insensitive)
// as well as the persisted warships.today spelling (na, eu, ru, asia).
func ParseRegion(s string) (Region, error) {
	switch strings.ToUpper(s) {
	case "NA":
		return RegionNA, nil
	case "EU":
		return RegionEU, nil
	case "RU":
		return RegionRU, nil
	case "AS", "ASIA":
		return RegionAS, nil
	}
	return "", fmt.Errorf("unknown region %q", s)
}

// Realm is the top level domain of the Wargaming API host for the region.
func (r Region) Realm() string {
	switch r {
	case RegionNA:
		return "com"
	case RegionAS:
		return "asia"
	default:
		return strings.ToLower(string(r))
	}
}

// StatsSite is the region path segment used by warships.today.
func (r Region) StatsSite() string {
	switch r {
	case RegionAS:
		return "asia"
	default:
		return strings.ToLower(string(r))
	}
}

// ShameEntry is persisted as the pair [region, playerID]. Older documents
// hold a null id for players whose lookup failed; those load as unresolved.
type ShameEntry struct {
	Region   Region
	PlayerID int64
}

func (e ShameEntry) Resolved() bool {
	return e.PlayerID != 0
}

func (e ShameEntry) MarshalJSON() ([]byte, error) {
	if !e.Resolved() {
		return json.Marshal([]any{e.Region.StatsSite(), nil})
	}
	return json.Marshal([]any{e.Region.StatsSite(), e.PlayerID})
}

func (e *ShameEntry) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("shame entry: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("shame entry: expected 2 elements, got %d", len(pair))
	}

	var region string
	if err := json.Unmarshal(pair[0], &region); err != nil {
		return fmt.Errorf("shame entry region: %w", err)
	}
	r, err := ParseRegion(region)
	if err != nil {
		return err
	}

	if bytes.Equal(bytes.TrimSpace(pair[1]), []byte("null")) {
		e.Region = r
		e.PlayerID = 0
		return nil
	}

	var id json.Number
	if err := json.Unmarshal(pair[1], &id); err != nil {
		return fmt.Errorf("shame entry player id: %w", err)
	}
	playerID, err := id.Int64()
	if err != nil {
		return fmt.Errorf("shame entry player id: %w", err)
	}

	e.Region = r
	e.PlayerID = playerID
	return nil
}

// PrefixMap maps a guild id to its single character command prefix.
type PrefixMap map[string]string

// ShameList maps guild id to user id to the user's registered player.
type ShameList map[string]map[string]ShameEntry

// MatchSheet maps guild id to match name to match.
type MatchSheet map[string]map[string]*Match

type Match struct {
	Time    []string `json:"time"`
	Players []string `json:"players"`
}

// Weekday returns the weekday the match is scheduled on, without the
// trailing comma older sheets carry.
func (m *Match) Weekday() string {
	if len(m.Time) == 0 {
		return ""
	}
	return strings.TrimSuffix(m.Time[0], ",")
}

// When renders the schedule as "Monday, 20:00".
func (m *Match) When() string {
	if len(m.Time) == 0 {
		return ""
	}
	parts := make([]string, len(m.Time))
	copy(parts, m.Time)
	parts[0] = m.Weekday() + ","
	return strings.TrimSuffix(strings.Join(parts, " "), ",")
}

func (m *Match) HasPlayer(userID string) bool {
	for _, p := range m.Players {
		if p == userID {
			return true
		}
	}
	return false
}

var Weekdays = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// WeekdayIndex returns the position of day in Weekdays or -1.
func WeekdayIndex(day string) int {
	for i, d := range Weekdays {
		if d == day {
			return i
		}
	}
	return -1
}

type PlayerStats struct {
	PlayerID        int64
	Nickname        string
	Region          Region
	Battles         int
	Wins            int
	Losses          int
	DamageDealt     int64
	Frags           int
	SurvivedBattles int
	MaxDamage       int64
	MaxFrags        int
	Private         bool
}

func (s PlayerStats) WinRate() float64 {
	if s.Battles == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Battles) * 100
}

func (s PlayerStats) AverageDamage() float64 {
	if s.Battles == 0 {
		return 0
	}
	return float64(s.DamageDealt) / float64(s.Battles)
}

func (s PlayerStats) AverageFrags() float64 {
	if s.Battles == 0 {
		return 0
	}
	return float64(s.Frags) / float64(s.Battles)
}

type ArmourRange struct {
	Min int
	Max int
}

// String renders a range as "min" when both ends are equal and "min-max" otherwise.
func (a ArmourRange) String() string {
	if a.Min == a.Max {
		return fmt.Sprintf("%d", a.Min)
	}
	return fmt.Sprintf("%d-%d", a.Min, a.Max)
}

type Ship struct {
	ID          int64
	Name        string
	Tier        int
	Nation      string
	Type        string
	PriceGold   int
	PriceCredit int
	Health      int
	Citadel     ArmourRange
	Casemate    ArmourRange
	Deck        ArmourRange
	Extremities ArmourRange
}

// Price renders the doubloon price, falling back to credits.
func (s Ship) Price() string {
	switch {
	case s.PriceGold != 0:
		return fmt.Sprintf("%d Doubloons", s.PriceGold)
	case s.PriceCredit != 0:
		return fmt.Sprintf("%d Credits", s.PriceCredit)
	default:
		return "0"
	}
}

type Conversion struct {
	From   string
	To     string
	Amount float64
	Result float64
	Date   string
}

type Image struct {
	URL    string
	Source string
	Tags   string
}

type Answer struct {
	QuestionTitle string
	QuestionLink  string
	Body          string
	Score         int
	Accepted      bool
}

type Track struct {
	ID          string
	Title       string
	Author      string
	Duration    string
	URL         string
	RequestedBy string
}
