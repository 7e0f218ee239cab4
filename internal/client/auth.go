package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dooficoin/doofigame/internal/domain"
)

// PlayerResponse wraps a player payload. Token is set only when the backend
// issues one alongside the player.
type PlayerResponse struct {
	Player *domain.Player `json:"player"`
	Token  string         `json:"token,omitempty"`
}

// NewUser is the registration payload.
type NewUser struct {
	Username string `json:"username" validate:"required,min=3,max=80"`
	Email    string `json:"email" validate:"required,email"`
}

// ListUsers returns every user. Used for login lookup, sent without a token.
func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := c.do(ctx, request{
		method:    http.MethodGet,
		route:     RouteUsers,
		path:      RouteUsers,
		anonymous: true,
	}, &users)
	if err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser registers a new user.
func (c *Client) CreateUser(ctx context.Context, u NewUser) (*domain.User, error) {
	var created domain.User
	err := c.do(ctx, request{
		method:    http.MethodPost,
		route:     RouteUsers,
		path:      RouteUsers,
		body:      u,
		anonymous: true,
	}, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// GetPlayer fetches the player record of a user.
func (c *Client) GetPlayer(ctx context.Context, userID int) (*PlayerResponse, error) {
	var resp PlayerResponse
	err := c.do(ctx, request{
		method:    http.MethodGet,
		route:     RoutePlayer,
		path:      fmt.Sprintf("/api/game/player/%d", userID),
		anonymous: true,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreatePlayer creates the player record for a user.
func (c *Client) CreatePlayer(ctx context.Context, userID int) (*PlayerResponse, error) {
	var resp PlayerResponse
	err := c.do(ctx, request{
		method:    http.MethodPost,
		route:     RoutePlayerCreate,
		path:      RoutePlayerCreate,
		body:      map[string]int{"user_id": userID},
		anonymous: true,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetProfile validates the token and returns the current player.
func (c *Client) GetProfile(ctx context.Context) (*domain.Player, error) {
	var resp PlayerResponse
	if err := c.get(ctx, RouteProfile, RouteProfile, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Player, nil
}

// UpdateProfile saves profile changes and returns the updated player.
func (c *Client) UpdateProfile(ctx context.Context, u domain.ProfileUpdate) (*domain.Player, error) {
	var resp PlayerResponse
	if err := c.put(ctx, RouteProfileUpdate, RouteProfileUpdate, u, &resp); err != nil {
		return nil, err
	}
	return resp.Player, nil
}

// GetProfileStats returns the collection counters shown on the profile.
func (c *Client) GetProfileStats(ctx context.Context) (*domain.ProfileStats, error) {
	var resp struct {
		Stats domain.ProfileStats `json:"stats"`
	}
	if err := c.get(ctx, RouteProfileStats, RouteProfileStats, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Stats, nil
}

func itoa(id int) string {
	return strconv.Itoa(id)
}
