package domain

// User is an account as returned by /api/users and /api/admin/users.
type User struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"is_admin"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at,omitempty"`
}

// Player is the game-side view of a user. Every mutating gameplay call
// returns the updated Player, which the session shell mirrors.
type Player struct {
	ID               int     `json:"id"`
	UserID           int     `json:"user_id,omitempty"`
	Username         string  `json:"username"`
	Email            string  `json:"email,omitempty"`
	Level            int     `json:"level"`
	Health           int     `json:"health"`
	Power            int     `json:"power"`
	MonstersKilled   int     `json:"monsters_killed"`
	PlayersKilled    int     `json:"players_killed"`
	Deaths           int     `json:"deaths"`
	SelfEliminations int     `json:"self_eliminations"`
	CurrentPhase     int     `json:"current_phase"`
	WalletBalance    Decimal `json:"wallet_balance"`
	WalletAddress    string  `json:"wallet_address,omitempty"`
	IsAdmin          bool    `json:"is_admin"`
	CreatedAt        string  `json:"created_at,omitempty"`
}

// Phase returns the current phase, defaulting to 1 like the header does.
func (p *Player) Phase() int {
	if p == nil || p.CurrentPhase <= 0 {
		return DefaultPhase
	}
	return p.CurrentPhase
}

// HealthPercent clamps health into the 0..100 bar, treating unset as full.
func (p *Player) HealthPercent() int {
	if p == nil || p.Health == 0 {
		return MaxHealth
	}
	return clampPercent(p.Health)
}

// PowerPercent clamps power into the 0..100 bar.
func (p *Player) PowerPercent() int {
	if p == nil {
		return 0
	}
	return clampPercent(p.Power)
}

// Clone returns a shallow copy safe to mutate.
func (p *Player) Clone() *Player {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > MaxHealth {
		return MaxHealth
	}
	return v
}

// ProfileStats is the payload of /api/profile/stats.
type ProfileStats struct {
	ItemsCollected     int `json:"items_collected"`
	CardsCollected     int `json:"cards_collected"`
	ScenariosCompleted int `json:"scenarios_completed"`
	PlayTimeMinutes    int `json:"play_time_minutes"`
}

// ProfileUpdate is the body of PUT /api/profile/update. Password fields are
// only sent when a new password was typed.
type ProfileUpdate struct {
	Username        string `json:"username" validate:"required,min=3,max=80"`
	Email           string `json:"email" validate:"required,email"`
	CurrentPassword string `json:"current_password,omitempty"`
	NewPassword     string `json:"new_password,omitempty"`
}

// LeaderboardEntry is one ranked row of /api/level/leaderboard/:category.
type LeaderboardEntry struct {
	Position       int    `json:"position,omitempty"`
	PlayerID       int    `json:"player_id,omitempty"`
	Username       string `json:"username"`
	Level          int    `json:"level"`
	MonstersKilled int    `json:"monsters_killed"`
	PlayersKilled  int    `json:"players_killed"`
	CurrentPhase   int    `json:"current_phase"`
}

// Value returns the statistic the given category ranks by.
func (e LeaderboardEntry) Value(category LeaderboardCategory) int {
	switch category {
	case LeaderboardLevel:
		return e.Level
	case LeaderboardMonsters:
		return e.MonstersKilled
	case LeaderboardPlayersKilled:
		return e.PlayersKilled
	default:
		return 0
	}
}

// LeaderboardCategory names a ranking.
type LeaderboardCategory string

const (
	LeaderboardLevel         LeaderboardCategory = "level"
	LeaderboardMonsters      LeaderboardCategory = "monsters"
	LeaderboardPlayersKilled LeaderboardCategory = "players_killed"
)

// LeaderboardCategories lists the rankings in display order.
var LeaderboardCategories = []LeaderboardCategory{
	LeaderboardLevel,
	LeaderboardMonsters,
	LeaderboardPlayersKilled,
}

// Label returns the Portuguese tab label.
func (c LeaderboardCategory) Label() string {
	switch c {
	case LeaderboardLevel:
		return "Nível"
	case LeaderboardMonsters:
		return "Monstros"
	case LeaderboardPlayersKilled:
		return "PvP"
	default:
		return string(c)
	}
}

// StatLabel returns the column header for the ranked statistic.
func (c LeaderboardCategory) StatLabel() string {
	switch c {
	case LeaderboardLevel:
		return "Nível"
	case LeaderboardMonsters:
		return "Monstros Mortos"
	case LeaderboardPlayersKilled:
		return "Jogadores Mortos"
	default:
		return "Pontos"
	}
}
