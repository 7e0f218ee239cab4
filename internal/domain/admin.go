package domain

// SecurityLogType classifies security log entries.
type SecurityLogType string

const (
	SecurityLogFraud              SecurityLogType = "fraud"
	SecurityLogLoginAttempt       SecurityLogType = "login_attempt"
	SecurityLogSuspiciousActivity SecurityLogType = "suspicious_activity"

	// SecurityLogAll is the UI filter value meaning "no type filter".
	SecurityLogAll SecurityLogType = "all"
)

// SecurityLogTypes lists the filterable log types.
var SecurityLogTypes = []SecurityLogType{
	SecurityLogFraud,
	SecurityLogLoginAttempt,
	SecurityLogSuspiciousActivity,
}

// SecurityLog is one entry of /api/admin/security-logs.
type SecurityLog struct {
	ID        int             `json:"id"`
	LogType   SecurityLogType `json:"log_type"`
	UserID    *int            `json:"user_id"`
	Message   string          `json:"message"`
	IPAddress string          `json:"ip_address"`
	Severity  string          `json:"severity,omitempty"`
	Timestamp string          `json:"timestamp"`
}

// GameSettings are the global tunables of /api/admin/settings. The whole
// object is read and written back as one form.
type GameSettings struct {
	PvPCoinPercentage                 float64 `json:"pvp_coin_percentage" validate:"gte=0,lte=1"`
	SelfKillCoinReward                Decimal `json:"self_kill_coin_reward"`
	MonsterKillHealthFillCount        int     `json:"monster_kill_health_fill_count" validate:"gte=0"`
	MonsterKillPowerFillCount         int     `json:"monster_kill_power_fill_count" validate:"gte=0"`
	LevelUpPlayerKillCount            int     `json:"level_up_player_kill_count" validate:"gte=0"`
	LevelUpMonsterKillCount           int     `json:"level_up_monster_kill_count" validate:"gte=0"`
	InitialMonstersPerPhase           int     `json:"initial_monsters_per_phase" validate:"gte=1"`
	MonsterIncreasePerPhasePercentage float64 `json:"monster_increase_per_phase_percentage" validate:"gte=0"`
	MiningInitialDooficoin            Decimal `json:"mining_initial_dooficoin"`
	MiningTimeDoubleThreshold         Decimal `json:"mining_time_double_threshold"`
	MiningTimeMultiplier              float64 `json:"mining_time_multiplier" validate:"gte=0"`
	AdDisplayIntervalMinutes          int     `json:"ad_display_interval_minutes" validate:"gte=0"`
	AdDisplayDurationSeconds          int     `json:"ad_display_duration_seconds" validate:"gte=0"`
	FraudDetectionThreshold           float64 `json:"fraud_detection_threshold" validate:"gte=0,lte=1"`
	IsAdSenseActive                   bool    `json:"is_adsense_active"`
	IsPvPActive                       bool    `json:"is_pvp_active"`
	IsMiningActive                    bool    `json:"is_mining_active"`
	IsShopActive                      bool    `json:"is_shop_active"`
	IsInventoryActive                 bool    `json:"is_inventory_active"`
	IsScenariosActive                 bool    `json:"is_scenarios_active"`
	IsLeaderboardActive               bool    `json:"is_leaderboard_active"`
	IsCollectibleCardsActive          bool    `json:"is_collectible_cards_active"`
}

// DefaultGameSettings mirrors the values the settings form starts from
// before the first fetch completes.
func DefaultGameSettings() GameSettings {
	return GameSettings{
		PvPCoinPercentage:                 0.20,
		SelfKillCoinReward:                "0.00000000000001",
		MonsterKillHealthFillCount:        100,
		MonsterKillPowerFillCount:         100,
		LevelUpPlayerKillCount:            90,
		LevelUpMonsterKillCount:           500,
		InitialMonstersPerPhase:           300,
		MonsterIncreasePerPhasePercentage: 0.25,
		MiningInitialDooficoin:            "0.0000000000000000000000000000000000101",
		MiningTimeDoubleThreshold:         "0.0000000000000000000000000000000000101",
		MiningTimeMultiplier:              2,
		AdDisplayIntervalMinutes:          10,
		AdDisplayDurationSeconds:          30,
		FraudDetectionThreshold:           0.5,
		IsPvPActive:                       true,
		IsMiningActive:                    true,
		IsShopActive:                      true,
		IsInventoryActive:                 true,
		IsScenariosActive:                 true,
		IsLeaderboardActive:               true,
		IsCollectibleCardsActive:          true,
	}
}

// AdSenseConfig holds the OAuth client and display cadence.
type AdSenseConfig struct {
	ClientID                 string  `json:"client_id" validate:"required"`
	ClientSecret             string  `json:"client_secret,omitempty"`
	RedirectURI              string  `json:"redirect_uri" validate:"omitempty,url"`
	AdDisplayIntervalMinutes int     `json:"ad_display_interval_minutes" validate:"gte=1"`
	AdDisplayDurationSeconds int     `json:"ad_display_duration_seconds" validate:"gte=1"`
	FraudDetectionThreshold  float64 `json:"fraud_detection_threshold" validate:"gte=0,lte=1"`
	IsActive                 bool    `json:"is_active"`
}

// DefaultAdSenseConfig is the blank config form.
func DefaultAdSenseConfig() AdSenseConfig {
	return AdSenseConfig{
		AdDisplayIntervalMinutes: 10,
		AdDisplayDurationSeconds: 30,
		FraudDetectionThreshold:  0.5,
	}
}

// AdFormats lists the ad unit formats.
var AdFormats = []string{"display", "in-feed", "in-article", "matched-content", "link"}

// AdUnit is one AdSense placement.
type AdUnit struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	AdUnitID string `json:"ad_unit_id"`
	AdFormat string `json:"ad_format"`
	IsActive bool   `json:"is_active"`
}

// DashboardStats is the payload of /api/admin/dashboard.
type DashboardStats struct {
	TotalUsers          int     `json:"total_users"`
	ActiveUsers         int     `json:"active_users"`
	TotalItems          int     `json:"total_items"`
	TotalScenarios      int     `json:"total_scenarios"`
	TotalMonsters       int     `json:"total_monsters"`
	TotalCards          int     `json:"total_cards"`
	TotalTransactions   int     `json:"total_transactions"`
	TotalDooficoinMined Decimal `json:"total_dooficoin_mined"`
	TotalSecurityLogs   int     `json:"total_security_logs"`
}
