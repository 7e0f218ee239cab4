package fakeapi

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dooficoin/doofigame/internal/domain"
)

// signingKey only has to be stable: clients never verify the signature.
var signingKey = []byte("fakeapi-signing-key")

// DefaultTokenTTL is the lifetime of tokens issued by the fake.
const DefaultTokenTTL = time.Hour

// IssueToken mints a token for userID and accepts it on protected routes.
func (s *Server) IssueToken(userID int, isAdmin bool, ttl time.Duration) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.issueTokenLocked(userID, isAdmin, ttl)
}

func (s *Server) issueTokenLocked(userID int, isAdmin bool, ttl time.Duration) string {
	claims := jwt.MapClaims{
		"user_id":  userID,
		"is_admin": isAdmin,
		"exp":      s.Now().Add(ttl).Unix(),
		"iat":      s.Now().Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey)
	if err != nil {
		panic(err)
	}
	s.tokens[signed] = userID
	return signed
}

// RevokeToken makes token fail validation.
func (s *Server) RevokeToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
}

// AddUser registers u, assigning an id when it has none.
func (s *Server) AddUser(u domain.User) domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == 0 {
		u.ID = s.newID()
	}
	s.users = append(s.users, u)
	return u
}

// AddPlayer stores p for its user, assigning an id when it has none.
func (s *Server) AddPlayer(p domain.Player) domain.Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		p.ID = s.newID()
	}
	stored := p
	s.players[p.UserID] = &stored
	return p
}

// Player returns a copy of the player of userID.
func (s *Server) Player(userID int) *domain.Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.players[userID].Clone()
}

// Login seeds a user with a player and returns a valid token for it.
func (s *Server) Login(username string, isAdmin bool) (domain.Player, string) {
	u := s.AddUser(domain.User{Username: username, Email: username + "@doofi.test", IsAdmin: isAdmin, IsActive: true})
	p := s.AddPlayer(domain.Player{
		UserID:        u.ID,
		Username:      u.Username,
		Email:         u.Email,
		Level:         1,
		Health:        100,
		CurrentPhase:  1,
		WalletBalance: domain.ZeroDecimal,
		IsAdmin:       isAdmin,
	})
	return p, s.IssueToken(u.ID, isAdmin, DefaultTokenTTL)
}

// SetWallet overwrites the wallet balance of userID's player.
func (s *Server) SetWallet(userID int, balance domain.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p := s.players[userID]; p != nil {
		p.WalletBalance = balance
	}
}

// SetInventory replaces the inventory.
func (s *Server) SetInventory(entries ...domain.InventoryEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inventory = append([]domain.InventoryEntry(nil), entries...)
}

// Inventory returns a copy of the inventory.
func (s *Server) Inventory() []domain.InventoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.InventoryEntry(nil), s.inventory...)
}

// SetScenarios replaces the scenario list and countries.
func (s *Server) SetScenarios(scenarios []domain.Scenario, countries []domain.Country) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scenarios = scenarios
	s.countries = countries
}

// SetProgress replaces the player's scenario progress.
func (s *Server) SetProgress(progress ...domain.ScenarioProgress) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress = progress
}

// SetCards replaces the card catalog and the player's collection.
func (s *Server) SetCards(all []domain.CollectibleCard, owned []domain.PlayerCard) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cards = all
	s.collection = owned
}

// SetMining replaces the mining session.
func (s *Server) SetMining(session domain.MiningSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mining = session
}

// SetMiningStats replaces the mining statistics.
func (s *Server) SetMiningStats(stats domain.MiningStats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.miningStats = stats
}

// SetLeaderboard replaces one leaderboard category.
func (s *Server) SetLeaderboard(category domain.LeaderboardCategory, entries ...domain.LeaderboardEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leaderboard[category] = entries
}

// SetProfileStats replaces the profile counters.
func (s *Server) SetProfileStats(stats domain.ProfileStats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats = stats
}

// Seed appends rows to an admin collection ("users", "items", ...), assigning
// ids to rows without one.
func (s *Server) Seed(collection string, rows ...map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range rows {
		if _, ok := row["id"]; !ok {
			row["id"] = s.newID()
		}
		s.collections[collection] = append(s.collections[collection], row)
	}
}

// Rows returns the rows of an admin collection.
func (s *Server) Rows(collection string) []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]map[string]any(nil), s.collections[collection]...)
}

// SetSettings replaces the global settings.
func (s *Server) SetSettings(settings domain.GameSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
}

// Settings returns the global settings.
func (s *Server) Settings() domain.GameSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// SetAdSense replaces the AdSense configuration; nil means none saved.
func (s *Server) SetAdSense(cfg *domain.AdSenseConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.adsense = cfg
}

// SetAdUnits replaces the ad units.
func (s *Server) SetAdUnits(units ...domain.AdUnit) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.adUnits = units
}

// AdUnits returns the ad units.
func (s *Server) AdUnits() []domain.AdUnit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.AdUnit(nil), s.adUnits...)
}

// SetSecurityLogs replaces the security logs.
func (s *Server) SetSecurityLogs(logs ...domain.SecurityLog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = logs
}

// SetDashboard replaces the dashboard counters.
func (s *Server) SetDashboard(stats domain.DashboardStats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dashboard = stats
}
