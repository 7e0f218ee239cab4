// Package game implements the player-facing panels: arena, scenarios, shop,
// inventory, cards, mining, leaderboard and profile. Panels hold view state
// only; the backend owns every rule and every returned player is pushed to
// the session through Env.OnPlayerUpdate.
package game

import (
	"context"
	"strings"

	"github.com/dooficoin/doofigame/internal/client"
	"github.com/dooficoin/doofigame/internal/domain"
	"github.com/dooficoin/doofigame/internal/logger"
	"github.com/dooficoin/doofigame/internal/panel"
)

// FilterAll is the filter value that matches everything.
const FilterAll = "all"

// Env is what every game panel needs from its front end.
type Env struct {
	API *client.Client
	UI  panel.UI
	// Player returns the logged-in player, nil when logged out.
	Player func() *domain.Player
	// OnPlayerUpdate receives players returned by mutating calls.
	OnPlayerUpdate panel.PlayerSink
}

func (e Env) player() (*domain.Player, error) {
	if e.Player == nil {
		return nil, domain.ErrNotAuthenticated
	}
	p := e.Player()
	if p == nil {
		return nil, domain.ErrNotAuthenticated
	}
	return p, nil
}

// fail logs err, shows it as "Erro: msg" and returns it.
func (e Env) fail(ctx context.Context, action string, err error) error {
	logger.FromContext(ctx).Warn("Game action failed", "action", action, "error", err)
	e.UI.Alert(ctx, "Erro: "+err.Error())
	return err
}

// matches reports whether the lowercased needle occurs in any of fields.
func matches(needle string, fields ...string) bool {
	if needle == "" {
		return true
	}
	needle = strings.ToLower(needle)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// Panels is the full set of game panels of one session.
type Panels struct {
	Arena       *Arena
	Scenarios   *Scenarios
	Shop        *Shop
	Inventory   *Inventory
	Cards       *Cards
	Mining      *Mining
	Leaderboard *Leaderboard
	Profile     *Profile
}

// NewPanels builds every game panel around env.
func NewPanels(env Env) *Panels {
	return &Panels{
		Arena:       NewArena(env),
		Scenarios:   NewScenarios(env),
		Shop:        NewShop(env),
		Inventory:   NewInventory(env),
		Cards:       NewCards(env),
		Mining:      NewMining(env),
		Leaderboard: NewLeaderboard(env),
		Profile:     NewProfile(env),
	}
}
