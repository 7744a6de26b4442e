package wows

import "encoding/json"

type envelope struct {
	Status string          `json:"status"`
	Error  *apiError       `json:"error"`
	Meta   meta            `json:"meta"`
	Data   json.RawMessage `json:"data"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field"`
}

type meta struct {
	Count     int `json:"count"`
	PageTotal int `json:"page_total"`
	Page      int `json:"page"`
}

type accountListItem struct {
	Nickname  string `json:"nickname"`
	AccountID int64  `json:"account_id"`
}

type accountInfo struct {
	AccountID     int64  `json:"account_id"`
	Nickname      string `json:"nickname"`
	HiddenProfile bool   `json:"hidden_profile"`
	Statistics    *struct {
		PvP pvpStats `json:"pvp"`
	} `json:"statistics"`
}

type pvpStats struct {
	Battles         int   `json:"battles"`
	Wins            int   `json:"wins"`
	Losses          int   `json:"losses"`
	DamageDealt     int64 `json:"damage_dealt"`
	Frags           int   `json:"frags"`
	SurvivedBattles int   `json:"survived_battles"`
	MaxDamageDealt  int64 `json:"max_damage_dealt"`
	MaxFragsBattle  int   `json:"max_frags_battle"`
}

type shipInfo struct {
	ShipID         int64  `json:"ship_id"`
	Name           string `json:"name"`
	Tier           int    `json:"tier"`
	Nation         string `json:"nation"`
	Type           string `json:"type"`
	PriceGold      int    `json:"price_gold"`
	PriceCredit    int    `json:"price_credit"`
	DefaultProfile *struct {
		Hull *struct {
			Health int `json:"health"`
		} `json:"hull"`
		Armour *struct {
			Citadel     armourRange `json:"citadel"`
			Casemate    armourRange `json:"casemate"`
			Deck        armourRange `json:"deck"`
			Extremities armourRange `json:"extremities"`
		} `json:"armour"`
	} `json:"default_profile"`
}

type armourRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}
