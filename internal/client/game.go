package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/dooficoin/doofigame/internal/domain"
)

// ActionResponse is returned by arena and inventory actions.
type ActionResponse struct {
	Player    *domain.Player `json:"player"`
	SalePrice domain.Decimal `json:"sale_price,omitempty"`
	Message   string         `json:"message,omitempty"`
}

// PlayerProgress groups scenario progress by state.
type PlayerProgress struct {
	Completed  []domain.ScenarioProgress `json:"completed_scenarios"`
	InProgress []domain.ScenarioProgress `json:"in_progress_scenarios"`
}

// All returns completed followed by in-progress entries.
func (p *PlayerProgress) All() []domain.ScenarioProgress {
	out := make([]domain.ScenarioProgress, 0, len(p.Completed)+len(p.InProgress))
	out = append(out, p.Completed...)
	return append(out, p.InProgress...)
}

// MiningActionResponse is returned by mining start and stop.
type MiningActionResponse struct {
	Session *domain.MiningSession `json:"session"`
	Player  *domain.Player        `json:"player"`
	Reward  *domain.MiningReward  `json:"reward,omitempty"`
}

func (c *Client) playerAction(ctx context.Context, route, action string, playerID int) (*ActionResponse, error) {
	var resp ActionResponse
	path := fmt.Sprintf("/api/game/player/%d/%s", playerID, action)
	if err := c.post(ctx, route, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// KillMonster records a monster kill.
func (c *Client) KillMonster(ctx context.Context, playerID int) (*ActionResponse, error) {
	return c.playerAction(ctx, RouteKillMonster, "kill-monster", playerID)
}

// SelfEliminate records a self elimination.
func (c *Client) SelfEliminate(ctx context.Context, playerID int) (*ActionResponse, error) {
	return c.playerAction(ctx, RouteSelfEliminate, "self-eliminate", playerID)
}

// Die records a death.
func (c *Client) Die(ctx context.Context, playerID int) (*ActionResponse, error) {
	return c.playerAction(ctx, RouteDie, "die", playerID)
}

// ListScenarios returns the playable scenarios.
func (c *Client) ListScenarios(ctx context.Context, perPage int) ([]domain.Scenario, error) {
	q := url.Values{}
	if perPage > 0 {
		q.Set(ParamPerPage, strconv.Itoa(perPage))
	}
	var resp struct {
		Scenarios []domain.Scenario `json:"scenarios"`
	}
	if err := c.get(ctx, RouteScenarioList, RouteScenarioList, q, &resp); err != nil {
		return nil, err
	}
	return resp.Scenarios, nil
}

// ListCountries returns the countries that have scenarios.
func (c *Client) ListCountries(ctx context.Context) ([]domain.Country, error) {
	var resp struct {
		Countries []domain.Country `json:"countries"`
	}
	if err := c.get(ctx, RouteCountries, RouteCountries, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Countries, nil
}

// GetScenarioProgress returns the player's scenario progress.
func (c *Client) GetScenarioProgress(ctx context.Context) (*PlayerProgress, error) {
	var resp PlayerProgress
	if err := c.get(ctx, RoutePlayerProgress, RoutePlayerProgress, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// StartScenario starts a scenario and returns it.
func (c *Client) StartScenario(ctx context.Context, scenarioID int) (*domain.Scenario, error) {
	var resp struct {
		Scenario *domain.Scenario `json:"scenario"`
	}
	path := fmt.Sprintf("/api/scenarios/%d/start", scenarioID)
	if err := c.post(ctx, RouteScenarioStart, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Scenario, nil
}

// GetInventory returns the player's inventory.
func (c *Client) GetInventory(ctx context.Context) ([]domain.InventoryEntry, error) {
	var resp struct {
		Inventory []domain.InventoryEntry `json:"inventory"`
	}
	if err := c.get(ctx, RouteInventory, RouteInventory, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Inventory, nil
}

// EquipItem toggles the equipped state of an inventory entry.
func (c *Client) EquipItem(ctx context.Context, entryID int) (*ActionResponse, error) {
	var resp ActionResponse
	path := fmt.Sprintf("/api/inventory/%d/equip", entryID)
	if err := c.post(ctx, RouteInventoryEquip, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SellItem sells an inventory entry.
func (c *Client) SellItem(ctx context.Context, entryID int) (*ActionResponse, error) {
	var resp ActionResponse
	path := fmt.Sprintf("/api/inventory/%d/sell", entryID)
	if err := c.post(ctx, RouteInventorySell, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetCardCollection returns the cards the player owns.
func (c *Client) GetCardCollection(ctx context.Context) ([]domain.PlayerCard, error) {
	var resp struct {
		Cards []domain.PlayerCard `json:"cards"`
	}
	if err := c.get(ctx, RouteCardCollection, RouteCardCollection, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Cards, nil
}

// GetAllCards returns every collectible card.
func (c *Client) GetAllCards(ctx context.Context) ([]domain.CollectibleCard, error) {
	var resp struct {
		Cards []domain.CollectibleCard `json:"cards"`
	}
	if err := c.get(ctx, RouteCardsAll, RouteCardsAll, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Cards, nil
}

// GetMiningStatus returns the current mining session state.
func (c *Client) GetMiningStatus(ctx context.Context) (*domain.MiningSession, error) {
	var resp domain.MiningSession
	if err := c.get(ctx, RouteMiningStatus, RouteMiningStatus, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetMiningStatistics returns lifetime mining totals.
func (c *Client) GetMiningStatistics(ctx context.Context) (*domain.MiningStats, error) {
	var resp domain.MiningStats
	if err := c.get(ctx, RouteMiningStats, RouteMiningStats, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// StartMining opens a mining session.
func (c *Client) StartMining(ctx context.Context) (*MiningActionResponse, error) {
	var resp MiningActionResponse
	if err := c.post(ctx, RouteMiningStart, RouteMiningStart, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// StopMining closes the mining session and returns the reward.
func (c *Client) StopMining(ctx context.Context) (*MiningActionResponse, error) {
	var resp MiningActionResponse
	if err := c.post(ctx, RouteMiningStop, RouteMiningStop, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetLeaderboard returns the top players of a category.
func (c *Client) GetLeaderboard(ctx context.Context, category domain.LeaderboardCategory, limit int) ([]domain.LeaderboardEntry, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set(ParamLimit, strconv.Itoa(limit))
	}
	var resp struct {
		Leaderboard []domain.LeaderboardEntry `json:"leaderboard"`
	}
	path := "/api/level/leaderboard/" + url.PathEscape(string(category))
	if err := c.get(ctx, RouteLeaderboard, path, q, &resp); err != nil {
		return nil, err
	}
	return resp.Leaderboard, nil
}
