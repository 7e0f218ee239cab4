package fakeapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/dooficoin/doofigame/internal/domain"
)

// currentPlayerLocked resolves the bearer token to its player. Callers hold mu.
func (s *Server) currentPlayerLocked(r *http.Request) *domain.Player {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	userID, ok := s.tokens[token]
	if !ok {
		return nil
	}
	return s.players[userID]
}

func (s *Server) userLocked(id int) *domain.User {
	for i := range s.users {
		if s.users[i].ID == id {
			return &s.users[i]
		}
	}
	return nil
}

func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	return id, err == nil
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	users := append([]domain.User{}, s.users...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	if err := decodeBody(r, &body); err != nil || body.Username == "" || body.Email == "" {
		writeError(w, http.StatusBadRequest, "Username e email são obrigatórios")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == body.Username {
			writeError(w, http.StatusBadRequest, "Username already exists")
			return
		}
		if u.Email == body.Email {
			writeError(w, http.StatusBadRequest, "Email already exists")
			return
		}
	}
	u := domain.User{ID: s.newID(), Username: body.Username, Email: body.Email, IsActive: true}
	s.users = append(s.users, u)
	writeJSON(w, http.StatusCreated, u)
}

func (s *Server) handleGetPlayer(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.players[userID]
	if p == nil {
		writeError(w, http.StatusNotFound, "Player not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"player": p,
		"token":  s.issueTokenLocked(userID, p.IsAdmin, DefaultTokenTTL),
	})
}

func (s *Server) handleCreatePlayer(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserID int `json:"user_id"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "user_id é obrigatório")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.userLocked(body.UserID)
	if u == nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if _, exists := s.players[u.ID]; exists {
		writeError(w, http.StatusBadRequest, "Player already exists")
		return
	}
	p := &domain.Player{
		ID:            s.newID(),
		UserID:        u.ID,
		Username:      u.Username,
		Email:         u.Email,
		Level:         1,
		Health:        100,
		CurrentPhase:  1,
		WalletBalance: domain.ZeroDecimal,
		IsAdmin:       u.IsAdmin,
	}
	s.players[u.ID] = p
	writeJSON(w, http.StatusCreated, map[string]any{
		"player": p,
		"token":  s.issueTokenLocked(u.ID, u.IsAdmin, DefaultTokenTTL),
	})
}

func (s *Server) handlePlayerAction(w http.ResponseWriter, r *http.Request) {
	playerID, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var p *domain.Player
	for _, candidate := range s.players {
		if candidate.ID == playerID {
			p = candidate
		}
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "Player not found")
		return
	}

	switch chi.URLParam(r, "action") {
	case "kill-monster":
		p.MonstersKilled++
	case "self-eliminate":
		p.SelfEliminations++
	case "die":
		p.Deaths++
		p.Health = 0
	default:
		writeError(w, http.StatusNotFound, "unknown action")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"player": p})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.currentPlayerLocked(r)
	if p == nil {
		writeError(w, http.StatusNotFound, "Player not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"player": p})
}

func (s *Server) handleProfileUpdate(w http.ResponseWriter, r *http.Request) {
	var body domain.ProfileUpdate
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.currentPlayerLocked(r)
	if p == nil {
		writeError(w, http.StatusNotFound, "Player not found")
		return
	}
	if body.NewPassword != "" && body.CurrentPassword == "" {
		writeError(w, http.StatusBadRequest, "Senha atual incorreta")
		return
	}
	p.Username = body.Username
	p.Email = body.Email
	writeJSON(w, http.StatusOK, map[string]any{"player": p})
}

func (s *Server) handleProfileStats(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"stats": s.stats})
}

func (s *Server) handleScenarioList(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	scenarios := s.scenarios
	if perPage, err := strconv.Atoi(r.URL.Query().Get("per_page")); err == nil && perPage < len(scenarios) {
		scenarios = scenarios[:perPage]
	}
	writeJSON(w, http.StatusOK, map[string]any{"scenarios": nonNil(scenarios)})
}

func (s *Server) handleCountries(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"countries": nonNil(s.countries)})
}

func (s *Server) handlePlayerProgress(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	completed := []domain.ScenarioProgress{}
	inProgress := []domain.ScenarioProgress{}
	for _, p := range s.progress {
		if p.IsCompleted {
			completed = append(completed, p)
		} else {
			inProgress = append(inProgress, p)
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"completed_scenarios":   completed,
		"in_progress_scenarios": inProgress,
	})
}

func (s *Server) handleScenarioStart(w http.ResponseWriter, r *http.Request) {
	id, _ := pathID(r)

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sc := range s.scenarios {
		if sc.ID != id {
			continue
		}
		for _, p := range s.progress {
			if p.ScenarioID == id {
				writeError(w, http.StatusBadRequest, "Cenário já iniciado")
				return
			}
		}
		s.progress = append(s.progress, domain.ScenarioProgress{
			ScenarioID:            id,
			TotalMonstersRequired: sc.InitialMonsters,
		})
		writeJSON(w, http.StatusOK, map[string]any{"scenario": sc})
		return
	}
	writeError(w, http.StatusNotFound, "Cenário não encontrado")
}

func (s *Server) handleInventory(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"inventory": nonNil(s.inventory)})
}

func (s *Server) handleEquip(w http.ResponseWriter, r *http.Request) {
	id, _ := pathID(r)

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.inventory {
		if s.inventory[i].ID == id {
			s.inventory[i].IsEquipped = !s.inventory[i].IsEquipped
			writeJSON(w, http.StatusOK, map[string]any{"player": s.currentPlayerLocked(r)})
			return
		}
	}
	writeError(w, http.StatusNotFound, "Item não encontrado")
}

func (s *Server) handleSell(w http.ResponseWriter, r *http.Request) {
	id, _ := pathID(r)

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, entry := range s.inventory {
		if entry.ID != id {
			continue
		}
		if !entry.Item.IsSellable {
			writeError(w, http.StatusBadRequest, "Item não pode ser vendido")
			return
		}
		price := entry.Item.CurrentPrice
		p := s.currentPlayerLocked(r)
		if p != nil {
			balance, _ := p.WalletBalance.Value()
			gain, _ := price.Value()
			p.WalletBalance = domain.DecimalFrom(balance.Add(gain))
		}
		s.inventory = append(s.inventory[:i], s.inventory[i+1:]...)
		writeJSON(w, http.StatusOK, map[string]any{"player": p, "sale_price": price})
		return
	}
	writeError(w, http.StatusNotFound, "Item não encontrado")
}

func (s *Server) handleCardCollection(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"cards": nonNil(s.collection)})
}

func (s *Server) handleAllCards(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"cards": nonNil(s.cards)})
}

func (s *Server) handleMiningStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.mining)
}

func (s *Server) handleMiningStats(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.miningStats)
}

func (s *Server) handleMiningStart(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mining.IsMining {
		writeError(w, http.StatusBadRequest, "Mineração já está ativa")
		return
	}
	now := s.Now().UTC()
	duration := s.mining.DurationMinutes
	if duration <= 0 {
		duration = 60
	}
	s.mining.IsMining = true
	s.mining.DurationMinutes = duration
	s.mining.StartTime = domain.NewTimestamp(now)
	s.mining.EndTime = domain.NewTimestamp(now.Add(time.Duration(duration) * time.Minute))
	writeJSON(w, http.StatusOK, map[string]any{
		"session": s.mining,
		"player":  s.currentPlayerLocked(r),
	})
}

func (s *Server) handleMiningStop(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.mining.IsMining {
		writeError(w, http.StatusBadRequest, "Nenhuma mineração ativa")
		return
	}
	reward := s.mining.EstimatedReward
	p := s.currentPlayerLocked(r)
	if p != nil {
		balance, _ := p.WalletBalance.Value()
		gain, _ := reward.Value()
		p.WalletBalance = domain.DecimalFrom(balance.Add(gain))
	}
	mined, _ := s.miningStats.TotalMined.Value()
	gain, _ := reward.Value()
	s.miningStats.TotalMined = domain.DecimalFrom(mined.Add(gain))
	s.miningStats.TotalSessions++
	s.miningStats.TotalTimeMinutes += s.mining.DurationMinutes
	total, _ := s.miningStats.TotalMined.Value()
	s.miningStats.AveragePerSession = domain.DecimalFrom(total.DivRound(decimal.NewFromInt(int64(s.miningStats.TotalSessions)), 40))

	s.mining.IsMining = false
	s.mining.EndTime = domain.NewTimestamp(s.Now().UTC())
	writeJSON(w, http.StatusOK, map[string]any{
		"session": s.mining,
		"player":  p,
		"reward":  map[string]any{"amount": reward},
	})
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	category := domain.LeaderboardCategory(chi.URLParam(r, "category"))

	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.leaderboard[category]
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit < len(entries) {
		entries = entries[:limit]
	}
	writeJSON(w, http.StatusOK, map[string]any{"leaderboard": nonNil(entries)})
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
