package domain

// Monster is an enemy definition.
type Monster struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	MonsterType     string  `json:"monster_type"`
	Health          int     `json:"health"`
	Attack          int     `json:"attack"`
	Defense         int     `json:"defense"`
	Speed           int     `json:"speed"`
	XPReward        int     `json:"xp_reward"`
	DooficoinReward Decimal `json:"dooficoin_reward"`
	ImageURL        string  `json:"image_url"`
	ScenarioID      *int    `json:"scenario_id"`
	IsActive        bool    `json:"is_active"`
}

// MonsterTypes lists the monster types accepted by the admin form.
var MonsterTypes = []string{"zombie", "animal", "robot", "mutant", "elemental"}

// Scenario is a themed level tied to a real-world place.
type Scenario struct {
	ID                        int     `json:"id"`
	Name                      string  `json:"name"`
	Description               string  `json:"description"`
	Country                   string  `json:"country"`
	City                      string  `json:"city"`
	LocationName              string  `json:"location_name"`
	Latitude                  Decimal `json:"latitude"`
	Longitude                 Decimal `json:"longitude"`
	PhaseNumber               int     `json:"phase_number"`
	ScenarioType              string  `json:"scenario_type"`
	DifficultyLevel           int     `json:"difficulty_level"`
	InitialMonsters           int     `json:"initial_monsters"`
	MonsterIncreasePercentage float64 `json:"monster_increase_percentage"`
	TotalMonsters             int     `json:"total_monsters,omitempty"`
	AmbientColor              string  `json:"ambient_color"`
	ImageURL                  string  `json:"image_url"`
	IsActive                  bool    `json:"is_active"`
}

// ScenarioTypes lists the scenario types accepted by the admin form.
var ScenarioTypes = []string{"forest", "desert", "mountain", "city", "ocean", "volcano", "space"}

// ScenarioProgress is a player's runtime progress through one scenario.
type ScenarioProgress struct {
	ScenarioID            int     `json:"scenario_id"`
	MonstersDefeated      int     `json:"monsters_defeated"`
	TotalMonstersRequired int     `json:"total_monsters_required"`
	ProgressPercentage    float64 `json:"progress_percentage"`
	IsCompleted           bool    `json:"is_completed"`
	IsPerfect             bool    `json:"is_perfect"`
}

// Country groups scenarios for the country filter.
type Country struct {
	Name          string `json:"name"`
	ScenarioCount int    `json:"scenario_count"`
}

// CollectibleCard is a card definition.
type CollectibleCard struct {
	ID               int     `json:"id"`
	Name             string  `json:"name"`
	Description      string  `json:"description"`
	CardSeries       string  `json:"card_series"`
	CardNumber       int     `json:"card_number"`
	FullNumber       string  `json:"full_number,omitempty"`
	Rarity           Rarity  `json:"rarity"`
	RarityColor      string  `json:"rarity_color,omitempty"`
	RarityDisplay    string  `json:"rarity_display,omitempty"`
	AvailableInPhase int     `json:"available_in_phase"`
	DropRate         float64 `json:"drop_rate"`
	ImageURL         string  `json:"image_url"`
	BackgroundColor  string  `json:"background_color"`
	IsActive         bool    `json:"is_active"`
}

// PlayerCard is an owned card stack.
type PlayerCard struct {
	CollectibleCard
	CardID   int `json:"card_id"`
	Quantity int `json:"quantity"`
}
