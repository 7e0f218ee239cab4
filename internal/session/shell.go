// Package session owns the token and the current player. It is the only
// writer of either; panels report player changes through UpdatePlayer.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/dooficoin/doofigame/internal/client"
	"github.com/dooficoin/doofigame/internal/domain"
	"github.com/dooficoin/doofigame/internal/logger"
)

// Tab identifies a top-level panel.
type Tab string

const (
	TabArena       Tab = "arena"
	TabScenarios   Tab = "scenarios"
	TabShop        Tab = "shop"
	TabInventory   Tab = "inventory"
	TabCards       Tab = "cards"
	TabMining      Tab = "mining"
	TabLeaderboard Tab = "leaderboard"
	TabProfile     Tab = "profile"
	TabAdmin       Tab = "admin"

	DefaultTab = TabArena
)

var playerTabs = []Tab{
	TabArena,
	TabScenarios,
	TabShop,
	TabInventory,
	TabCards,
	TabMining,
	TabLeaderboard,
	TabProfile,
}

// Label returns the display name of the tab.
func (t Tab) Label() string {
	switch t {
	case TabArena:
		return "Arena"
	case TabScenarios:
		return "Cenários"
	case TabShop:
		return "Loja"
	case TabInventory:
		return "Inventário"
	case TabCards:
		return "Cartas"
	case TabMining:
		return "Mineração"
	case TabLeaderboard:
		return "Ranking"
	case TabProfile:
		return "Perfil"
	case TabAdmin:
		return "Admin"
	default:
		return string(t)
	}
}

var validate = validator.New()

// Shell holds the session state of one player.
type Shell struct {
	api   *client.Client
	store TokenStore
	now   func() time.Time

	mu     sync.RWMutex
	player *domain.Player
	tab    Tab
}

// ShellOption configures a Shell
type ShellOption func(*Shell)

// WithClock overrides the clock used for token expiry checks.
func WithClock(now func() time.Time) ShellOption {
	return func(s *Shell) {
		s.now = now
	}
}

// NewShell creates a logged-out shell.
func NewShell(api *client.Client, store TokenStore, opts ...ShellOption) *Shell {
	s := &Shell{
		api:   api,
		store: store,
		now:   time.Now,
		tab:   DefaultTab,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Client returns the API client carrying the session token.
func (s *Shell) Client() *client.Client {
	return s.api
}

// Player returns a copy of the current player, or nil when logged out.
func (s *Shell) Player() *domain.Player {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.player.Clone()
}

// LoggedIn reports whether a player is loaded.
func (s *Shell) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.player != nil
}

// IsAdmin reports whether the current player may open the admin tab.
func (s *Shell) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.player != nil && s.player.IsAdmin
}

// Restore loads the persisted token and validates it against the profile
// endpoint. Any validation failure logs the session out.
func (s *Shell) Restore(ctx context.Context) error {
	token, err := s.store.Load()
	if err != nil {
		return err
	}
	if token == "" {
		return domain.ErrNotAuthenticated
	}
	return s.adoptToken(ctx, token)
}

// UseToken adopts an externally issued token.
func (s *Shell) UseToken(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("%w: empty token", domain.ErrInvalidInput)
	}
	return s.adoptToken(ctx, token)
}

func (s *Shell) adoptToken(ctx context.Context, token string) error {
	log := logger.FromContext(ctx)

	if claims, err := ParseClaims(token); err == nil && claims.Expired(s.now()) {
		log.Info("Stored token expired", "expired_at", claims.ExpiresAt)
		s.Logout(ctx)
		return domain.ErrTokenExpired
	}

	s.api.SetToken(token)
	player, err := s.api.GetProfile(ctx)
	if err == nil && player == nil {
		err = domain.ErrNotAuthenticated
	}
	if err != nil {
		log.Warn("Session validation failed", "error", err)
		s.Logout(ctx)
		return err
	}

	if err := s.store.Save(token); err != nil {
		log.Warn("Failed to persist token", "error", err)
	}
	s.setPlayer(player)
	return nil
}

// Login looks the user up by username or email in the full user listing,
// then fetches its player, creating it when missing.
func (s *Shell) Login(ctx context.Context, username, email string) (*domain.Player, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" && email == "" {
		return nil, fmt.Errorf("%w: username or email required", domain.ErrInvalidInput)
	}

	users, err := s.api.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	var user *domain.User
	for i := range users {
		u := &users[i]
		if (username != "" && u.Username == username) || (email != "" && u.Email == email) {
			user = u
			break
		}
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	resp, err := s.api.GetPlayer(ctx, user.ID)
	if err != nil || resp.Player == nil {
		logger.FromContext(ctx).Info("Player missing, creating", "user_id", user.ID)
		resp, err = s.api.CreatePlayer(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrPlayerNotCreated, err)
		}
	}
	return s.adoptPlayer(ctx, resp)
}

// Register creates the user and its player.
func (s *Shell) Register(ctx context.Context, username, email string) (*domain.Player, error) {
	form := client.NewUser{Username: strings.TrimSpace(username), Email: strings.TrimSpace(email)}
	if err := validate.Struct(form); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	user, err := s.api.CreateUser(ctx, form)
	if err != nil {
		return nil, err
	}

	resp, err := s.api.CreatePlayer(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPlayerNotCreated, err)
	}
	return s.adoptPlayer(ctx, resp)
}

func (s *Shell) adoptPlayer(ctx context.Context, resp *client.PlayerResponse) (*domain.Player, error) {
	if resp == nil || resp.Player == nil {
		return nil, domain.ErrPlayerNotCreated
	}
	if resp.Token != "" {
		s.api.SetToken(resp.Token)
		if err := s.store.Save(resp.Token); err != nil {
			logger.FromContext(ctx).Warn("Failed to persist token", "error", err)
		}
	}
	s.setPlayer(resp.Player)
	logger.FromContext(ctx).Info("Logged in", "player_id", resp.Player.ID, "username", resp.Player.Username)
	return resp.Player.Clone(), nil
}

// Logout clears the player, the token and the persisted token, and resets
// the active tab.
func (s *Shell) Logout(ctx context.Context) {
	s.mu.Lock()
	s.player = nil
	s.tab = DefaultTab
	s.mu.Unlock()

	s.api.SetToken("")
	if err := s.store.Clear(); err != nil {
		logger.FromContext(ctx).Warn("Failed to clear stored token", "error", err)
	}
}

// UpdatePlayer replaces the player snapshot with one returned by a panel
// action. Nil is ignored.
func (s *Shell) UpdatePlayer(p *domain.Player) {
	if p == nil {
		return
	}
	s.setPlayer(p)
}

func (s *Shell) setPlayer(p *domain.Player) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.player = p.Clone()
}

// Tab returns the active tab.
func (s *Shell) Tab() Tab {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tab
}

// Tabs returns the tabs visible to the current player.
func (s *Shell) Tabs() []Tab {
	tabs := append([]Tab(nil), playerTabs...)
	if s.IsAdmin() {
		tabs = append(tabs, TabAdmin)
	}
	return tabs
}

// SetTab switches the active tab.
func (s *Shell) SetTab(t Tab) error {
	if !s.LoggedIn() {
		return domain.ErrNotAuthenticated
	}
	for _, allowed := range s.Tabs() {
		if allowed == t {
			s.mu.Lock()
			s.tab = t
			s.mu.Unlock()
			return nil
		}
	}
	if t == TabAdmin {
		return domain.ErrNotAdmin
	}
	return fmt.Errorf("%w: %s", domain.ErrUnknownTab, t)
}

// Claims returns the claims of the current token, if it is a JWT.
func (s *Shell) Claims() (*Claims, error) {
	token := s.api.Token()
	if token == "" {
		return nil, domain.ErrNotAuthenticated
	}
	return ParseClaims(token)
}

// IsSessionError reports failures that mean the session is no longer valid.
func IsSessionError(err error) bool {
	return errors.Is(err, domain.ErrNotAuthenticated) ||
		errors.Is(err, domain.ErrTokenExpired) ||
		client.IsStatus(err, http.StatusUnauthorized)
}
