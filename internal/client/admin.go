package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dooficoin/doofigame/internal/domain"
)

// Resource describes one paginated admin collection.
type Resource struct {
	Name string
	Path string
	// ListKey is the response field holding the rows; the total count lives
	// under "total_<ListKey>".
	ListKey string
	// FilterParam is the query parameter of the text filter.
	FilterParam string
}

func (r Resource) itemRoute() string {
	return r.Path + "/{id}"
}

func (r Resource) itemPath(id int) string {
	return r.Path + "/" + itoa(id)
}

// Admin collections
var (
	ResourceUsers        = Resource{Name: "users", Path: "/api/admin/users", ListKey: "users", FilterParam: ParamUsername}
	ResourceItems        = Resource{Name: "items", Path: "/api/admin/items", ListKey: "items", FilterParam: ParamName}
	ResourceMonsters     = Resource{Name: "monsters", Path: "/api/admin/monsters", ListKey: "monsters", FilterParam: ParamName}
	ResourceScenarios    = Resource{Name: "scenarios", Path: "/api/admin/scenarios", ListKey: "scenarios", FilterParam: ParamName}
	ResourceCards        = Resource{Name: "cards", Path: "/api/admin/cards", ListKey: "cards", FilterParam: ParamName}
	ResourceShopItems    = Resource{Name: "shop-items", Path: "/api/admin/shop-items", ListKey: "shop_items", FilterParam: ParamName}
	ResourcePlayers      = Resource{Name: "players", Path: "/api/admin/players", ListKey: "players", FilterParam: ParamUsername}
	ResourceSecurityLogs = Resource{Name: "security-logs", Path: RouteAdminSecurityLogs, ListKey: "logs", FilterParam: ParamSearch}
)

// ListResource fetches one page of an admin collection.
func ListResource[T any](ctx context.Context, c *Client, r Resource, params ListParams) (Page[T], error) {
	var raw map[string]json.RawMessage
	if err := c.get(ctx, r.Path, r.Path, params.Values(), &raw); err != nil {
		return Page[T]{}, err
	}
	return decodePage[T](raw, r.ListKey)
}

// CreateResource POSTs body to the collection and decodes the created row.
func CreateResource[T any](ctx context.Context, c *Client, r Resource, body any) (*T, error) {
	var created T
	if err := c.post(ctx, r.Path, r.Path, body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateResource PUTs body to a row and decodes the updated row.
func UpdateResource[T any](ctx context.Context, c *Client, r Resource, id int, body any) (*T, error) {
	var updated T
	if err := c.put(ctx, r.itemRoute(), r.itemPath(id), body, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteResource deletes a row.
func (c *Client) DeleteResource(ctx context.Context, r Resource, id int) error {
	return c.delete(ctx, r.itemRoute(), r.itemPath(id))
}

// BanUser deactivates a user.
func (c *Client) BanUser(ctx context.Context, userID int) (*MessageResponse, error) {
	var resp MessageResponse
	if err := c.post(ctx, RouteAdminUserBan, fmt.Sprintf("/api/admin/users/%d/ban", userID), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UnbanUser reactivates a user.
func (c *Client) UnbanUser(ctx context.Context, userID int) (*MessageResponse, error) {
	var resp MessageResponse
	if err := c.post(ctx, RouteAdminUserUnban, fmt.Sprintf("/api/admin/users/%d/unban", userID), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetDashboard returns the back-office counters.
func (c *Client) GetDashboard(ctx context.Context) (*domain.DashboardStats, error) {
	var stats domain.DashboardStats
	if err := c.get(ctx, RouteAdminDashboard, RouteAdminDashboard, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// GetSettings returns the global game settings.
func (c *Client) GetSettings(ctx context.Context) (*domain.GameSettings, error) {
	var settings domain.GameSettings
	if err := c.get(ctx, RouteAdminSettings, RouteAdminSettings, nil, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateSettings replaces the global game settings.
func (c *Client) UpdateSettings(ctx context.Context, settings domain.GameSettings) error {
	return c.put(ctx, RouteAdminSettings, RouteAdminSettings, settings, nil)
}

// GetAdSenseConfig returns the AdSense configuration, or nil when none has
// been saved yet.
func (c *Client) GetAdSenseConfig(ctx context.Context) (*domain.AdSenseConfig, error) {
	var cfg domain.AdSenseConfig
	if err := c.get(ctx, RouteAdminAdSense, RouteAdminAdSense, nil, &cfg); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &cfg, nil
}

// UpdateAdSenseConfig saves the AdSense configuration.
func (c *Client) UpdateAdSenseConfig(ctx context.Context, cfg domain.AdSenseConfig) (*domain.AdSenseConfig, error) {
	var saved domain.AdSenseConfig
	if err := c.put(ctx, RouteAdminAdSense, RouteAdminAdSense, cfg, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// ListAdUnits returns every ad unit. The endpoint is not paginated.
func (c *Client) ListAdUnits(ctx context.Context) ([]domain.AdUnit, error) {
	var units []domain.AdUnit
	if err := c.get(ctx, RouteAdminAdUnits, RouteAdminAdUnits, nil, &units); err != nil {
		return nil, err
	}
	return units, nil
}

// CreateAdUnit creates an ad unit.
func (c *Client) CreateAdUnit(ctx context.Context, unit domain.AdUnit) (*domain.AdUnit, error) {
	var created domain.AdUnit
	if err := c.post(ctx, RouteAdminAdUnits, RouteAdminAdUnits, adUnitBody(unit), &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateAdUnit updates an ad unit.
func (c *Client) UpdateAdUnit(ctx context.Context, id int, unit domain.AdUnit) (*domain.AdUnit, error) {
	var updated domain.AdUnit
	path := fmt.Sprintf("%s/%d", RouteAdminAdUnits, id)
	if err := c.put(ctx, RouteAdminAdUnit, path, adUnitBody(unit), &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteAdUnit deletes an ad unit.
func (c *Client) DeleteAdUnit(ctx context.Context, id int) error {
	return c.delete(ctx, RouteAdminAdUnit, fmt.Sprintf("%s/%d", RouteAdminAdUnits, id))
}

func adUnitBody(u domain.AdUnit) map[string]any {
	return map[string]any{
		"name":       u.Name,
		"ad_unit_id": u.AdUnitID,
		"ad_format":  u.AdFormat,
		"is_active":  u.IsActive,
	}
}

// SecurityLogFilter narrows the security log listing. The "all" type sends
// an empty type parameter.
type SecurityLogFilter struct {
	Search string
	Type   domain.SecurityLogType
}

// ListSecurityLogs fetches one page of security logs.
func (c *Client) ListSecurityLogs(ctx context.Context, page, perPage int, f SecurityLogFilter) (Page[domain.SecurityLog], error) {
	logType := string(f.Type)
	if f.Type == domain.SecurityLogAll {
		logType = ""
	}
	return ListResource[domain.SecurityLog](ctx, c, ResourceSecurityLogs, ListParams{
		Page:    page,
		PerPage: perPage,
		Filters: map[string]string{
			ParamSearch: f.Search,
			ParamType:   logType,
		},
	})
}

// PlayerGrant is the body of the admin give/remove item and card calls.
type PlayerGrant struct {
	ItemID   int `json:"item_id,omitempty"`
	CardID   int `json:"card_id,omitempty"`
	Quantity int `json:"quantity" validate:"min=1"`
}

func (c *Client) playerGrant(ctx context.Context, playerID int, action string, g PlayerGrant) (*MessageResponse, error) {
	var resp MessageResponse
	path := fmt.Sprintf("/api/admin/players/%d/%s", playerID, action)
	err := c.do(ctx, request{method: http.MethodPost, route: RouteAdminPlayerAction, path: path, body: g}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// GivePlayerItem adds items to a player's inventory.
func (c *Client) GivePlayerItem(ctx context.Context, playerID, itemID, quantity int) (*MessageResponse, error) {
	return c.playerGrant(ctx, playerID, "give-item", PlayerGrant{ItemID: itemID, Quantity: quantity})
}

// GivePlayerCard adds cards to a player's collection.
func (c *Client) GivePlayerCard(ctx context.Context, playerID, cardID, quantity int) (*MessageResponse, error) {
	return c.playerGrant(ctx, playerID, "give-card", PlayerGrant{CardID: cardID, Quantity: quantity})
}

// RemovePlayerItem removes items from a player's inventory.
func (c *Client) RemovePlayerItem(ctx context.Context, playerID, itemID, quantity int) (*MessageResponse, error) {
	return c.playerGrant(ctx, playerID, "remove-item", PlayerGrant{ItemID: itemID, Quantity: quantity})
}

// RemovePlayerCard removes cards from a player's collection.
func (c *Client) RemovePlayerCard(ctx context.Context, playerID, cardID, quantity int) (*MessageResponse, error) {
	return c.playerGrant(ctx, playerID, "remove-card", PlayerGrant{CardID: cardID, Quantity: quantity})
}
