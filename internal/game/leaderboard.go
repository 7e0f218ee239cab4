package game

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dooficoin/doofigame/internal/domain"
	"github.com/dooficoin/doofigame/internal/logger"
	"github.com/dooficoin/doofigame/internal/panel"
)

// LeaderboardLimit is the limit sent with every ranking request.
const LeaderboardLimit = 50

// Leaderboard holds the three rankings.
type Leaderboard struct {
	env    Env
	banner panel.Banner

	mu     sync.RWMutex
	boards map[domain.LeaderboardCategory][]domain.LeaderboardEntry
	active domain.LeaderboardCategory
}

// NewLeaderboard creates the panel on the level ranking.
func NewLeaderboard(env Env) *Leaderboard {
	return &Leaderboard{
		env:    env,
		boards: map[domain.LeaderboardCategory][]domain.LeaderboardEntry{},
		active: domain.LeaderboardLevel,
	}
}

// Load fetches every category concurrently. A failed category keeps its
// previous ranking, the others are replaced.
func (l *Leaderboard) Load(ctx context.Context) error {
	var g errgroup.Group
	for _, category := range domain.LeaderboardCategories {
		g.Go(func() error {
			entries, err := l.env.API.GetLeaderboard(ctx, category, LeaderboardLimit)
			if err != nil {
				return err
			}
			if entries == nil {
				entries = []domain.LeaderboardEntry{}
			}
			l.mu.Lock()
			l.boards[category] = entries
			l.mu.Unlock()
			return nil
		})
	}
	err := g.Wait()
	l.banner.Set(err)
	if err != nil {
		logger.FromContext(ctx).Warn("Failed to load leaderboards", "error", err)
	}
	return err
}

// Banner returns the inline error.
func (l *Leaderboard) Banner() string { return l.banner.Message() }

// SetActive switches the displayed ranking.
func (l *Leaderboard) SetActive(category domain.LeaderboardCategory) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.active = category
}

// Active returns the displayed ranking.
func (l *Leaderboard) Active() domain.LeaderboardCategory {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.active
}

// Entries returns a ranking in position order.
func (l *Leaderboard) Entries(category domain.LeaderboardCategory) []domain.LeaderboardEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	b := l.boards[category]
	out := make([]domain.LeaderboardEntry, len(b))
	copy(out, b)
	return out
}

// Rank returns the 1-based position of the current player in a ranking, 0
// when absent.
func (l *Leaderboard) Rank(category domain.LeaderboardCategory) int {
	p, err := l.env.player()
	if err != nil {
		return 0
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	for i, e := range l.boards[category] {
		if e.Username == p.Username {
			return i + 1
		}
	}
	return 0
}
