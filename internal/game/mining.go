package game

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dooficoin/doofigame/internal/domain"
	"github.com/dooficoin/doofigame/internal/logger"
	"github.com/dooficoin/doofigame/internal/mining"
	"github.com/dooficoin/doofigame/internal/panel"
)

// Mining starts and stops mining sessions and counts down the active one.
type Mining struct {
	env       Env
	guard     panel.Guard
	banner    panel.Banner
	countdown *mining.Countdown

	mu     sync.RWMutex
	status *domain.MiningSession
	stats  *domain.MiningStats
}

// NewMining creates the panel. Countdown options are for tests.
func NewMining(env Env, opts ...mining.Option) *Mining {
	m := &Mining{env: env}
	m.countdown = mining.NewCountdown(m.RefreshStatus, opts...)
	return m
}

// Load fetches the session status and the statistics concurrently. Each
// result is kept on its own, so failing statistics still leave the session
// and its countdown visible.
func (m *Mining) Load(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error {
		status, err := m.env.API.GetMiningStatus(ctx)
		if err != nil {
			return err
		}
		m.mu.Lock()
		m.status = status
		m.mu.Unlock()
		return nil
	})
	g.Go(func() error {
		stats, err := m.env.API.GetMiningStatistics(ctx)
		if err != nil {
			return err
		}
		m.mu.Lock()
		m.stats = stats
		m.mu.Unlock()
		return nil
	})
	err := g.Wait()
	m.banner.Set(err)
	if err != nil {
		logger.FromContext(ctx).Warn("Failed to load mining", "error", err)
	}
	return err
}

// RefreshStatus re-fetches only the session status. The countdown calls it
// when the session reaches its end time.
func (m *Mining) RefreshStatus(ctx context.Context) error {
	status, err := m.env.API.GetMiningStatus(ctx)
	if err != nil {
		m.banner.Set(err)
		return err
	}
	m.mu.Lock()
	m.status = status
	m.mu.Unlock()
	return nil
}

func (m *Mining) refreshStats(ctx context.Context) error {
	stats, err := m.env.API.GetMiningStatistics(ctx)
	if err != nil {
		m.banner.Set(err)
		return err
	}
	m.mu.Lock()
	m.stats = stats
	m.mu.Unlock()
	return nil
}

// Banner returns the inline error.
func (m *Mining) Banner() string { return m.banner.Message() }

// Status returns the last known session, nil before the first load.
func (m *Mining) Status() *domain.MiningSession {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.status == nil {
		return nil
	}
	s := *m.status
	return &s
}

// Stats returns the last known statistics, nil before the first load.
func (m *Mining) Stats() *domain.MiningStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.stats == nil {
		return nil
	}
	s := *m.stats
	return &s
}

// Level is the mining level shown next to the statistics.
func (m *Mining) Level() int {
	return m.Stats().Level()
}

// Remaining returns the whole seconds left in the active session.
func (m *Mining) Remaining() int {
	return m.countdown.Remaining(m.Status())
}

// Watch ticks onTick every second while the current session is mining and
// refreshes the status once when it ends. It returns when ctx is cancelled
// or the session ended.
func (m *Mining) Watch(ctx context.Context, onTick mining.TickFunc) error {
	return m.countdown.Run(ctx, m.Status(), onTick)
}

// Start opens a session and pushes the returned player.
func (m *Mining) Start(ctx context.Context) error {
	return m.guard.Run(func() error {
		resp, err := m.env.API.StartMining(ctx)
		if err != nil {
			return m.env.fail(ctx, "start-mining", err)
		}
		m.mu.Lock()
		m.status = resp.Session
		m.mu.Unlock()
		m.env.OnPlayerUpdate.Push(resp.Player)
		logger.FromContext(ctx).Info("Mining started")
		return nil
	})
}

// Stop closes the session, pushes the player, alerts the reward and
// re-fetches the statistics.
func (m *Mining) Stop(ctx context.Context) error {
	return m.guard.Run(func() error {
		resp, err := m.env.API.StopMining(ctx)
		if err != nil {
			return m.env.fail(ctx, "stop-mining", err)
		}
		m.mu.Lock()
		m.status = resp.Session
		m.mu.Unlock()
		m.env.OnPlayerUpdate.Push(resp.Player)

		reward := domain.ZeroDecimal
		if resp.Reward != nil && !resp.Reward.Amount.IsEmpty() {
			reward = resp.Reward.Amount
		}
		logger.FromContext(ctx).Info("Mining stopped", "reward", reward.String())
		m.env.UI.Alert(ctx, fmt.Sprintf("Mineração concluída! Você ganhou %s DOOF", reward))
		return m.refreshStats(ctx)
	})
}
