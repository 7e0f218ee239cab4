package discord

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"github.com/dooficoin/doofigame/internal/admin"
	"github.com/dooficoin/doofigame/internal/client"
	"github.com/dooficoin/doofigame/internal/domain"
	"github.com/dooficoin/doofigame/internal/game"
	"github.com/dooficoin/doofigame/internal/logger"
	"github.com/dooficoin/doofigame/internal/metrics"
	"github.com/dooficoin/doofigame/internal/panel"
	"github.com/dooficoin/doofigame/internal/session"
)

type confirmedKey struct{}

// withConfirmation marks ctx as carrying a click on a confirm button.
func withConfirmation(ctx context.Context) context.Context {
	return context.WithValue(ctx, confirmedKey{}, true)
}

// confirmFromContext answers panel confirmations. Slash commands never
// carry a confirmation, so destructive actions only run from the button.
func confirmFromContext(ctx context.Context, _ string) bool {
	ok, _ := ctx.Value(confirmedKey{}).(bool)
	return ok
}

// UserSession is the client state of one Discord user. Interactions of the
// same user run one at a time.
type UserSession struct {
	mu sync.Mutex

	UserID string
	Shell  *session.Shell
	Game   *game.Panels
	Admin  *admin.Panels
	alerts *panel.Collector
}

func newUserSession(api *client.Client, store session.TokenStore, userID string, perPage int) *UserSession {
	us := &UserSession{
		UserID: userID,
		Shell:  session.NewShell(api, store),
		alerts: &panel.Collector{},
	}
	ui := panel.UI{
		Alerter:   us.alerts,
		Confirmer: panel.ConfirmFunc(confirmFromContext),
	}
	us.Game = game.NewPanels(game.Env{
		API:            us.Shell.Client(),
		UI:             ui,
		Player:         us.Shell.Player,
		OnPlayerUpdate: us.Shell.UpdatePlayer,
	})
	us.Admin = admin.NewPanels(us.Shell.Client(), ui, perPage)
	return us
}

// Run executes fn under the session lock and folds the alerts it raised
// into the response. An error already alerted by a panel is not repeated.
func (us *UserSession) Run(fn func() (*Response, error)) *Response {
	us.mu.Lock()
	defer us.mu.Unlock()

	us.alerts.Drain()
	resp, err := fn()
	alerts := us.alerts.Drain()

	if resp == nil {
		resp = &Response{}
	}
	if err != nil && (len(alerts) == 0 || errors.Is(err, domain.ErrCancelled)) {
		alerts = append(alerts, friendlyError(err))
		resp.Embed = nil
		resp.Components = nil
	}
	resp.prepend(alerts)
	return resp
}

// Sessions caches one UserSession per Discord user. Idle sessions expire;
// their tokens stay in the store and are restored on the next interaction.
type Sessions struct {
	api     *client.Client
	store   *session.KeyedFileStore
	perPage int

	lru *expirable.LRU[string, *UserSession]
	// creating collapses concurrent first interactions of one user.
	creating singleflight.Group
}

// NewSessions creates the cache.
func NewSessions(api *client.Client, store *session.KeyedFileStore, perPage, size int, ttl time.Duration) *Sessions {
	return &Sessions{
		api:     api,
		store:   store,
		perPage: perPage,
		lru: expirable.NewLRU[string, *UserSession](size, func(string, *UserSession) {
			metrics.ActiveSessions.Dec()
		}, ttl),
	}
}

// Get returns the session of userID, creating it and restoring its stored
// token on first use. Only callers for the same user wait on that restore.
func (s *Sessions) Get(ctx context.Context, userID string) *UserSession {
	if us, ok := s.lru.Get(userID); ok {
		return us
	}

	v, _, _ := s.creating.Do(userID, func() (any, error) {
		if us, ok := s.lru.Get(userID); ok {
			return us, nil
		}
		us := newUserSession(s.api.Fork(""), s.store.For(userID), userID, s.perPage)
		if err := us.Shell.Restore(ctx); err != nil && !errors.Is(err, domain.ErrNotAuthenticated) {
			logger.FromContext(ctx).Info("Stored Discord session rejected", "user_id", userID, "error", err)
		}
		s.lru.Add(userID, us)
		metrics.ActiveSessions.Inc()
		return us, nil
	})
	return v.(*UserSession)
}

// Len returns the number of cached sessions.
func (s *Sessions) Len() int {
	return s.lru.Len()
}

// Purge drops every cached session.
func (s *Sessions) Purge() {
	s.lru.Purge()
}
