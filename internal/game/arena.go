package game

import (
	"context"
	"math"
	"sync"

	"github.com/dooficoin/doofigame/internal/client"
	"github.com/dooficoin/doofigame/internal/domain"
	"github.com/dooficoin/doofigame/internal/logger"
	"github.com/dooficoin/doofigame/internal/panel"
)

// PhaseStatus is the arena's local phase display.
type PhaseStatus struct {
	Phase             int
	KilledInPhase     int
	MonstersInPhase   int
	NextPhaseMonsters int
	Percent           float64
}

// PhaseTracker follows the arena phase locally. The backend keeps its own
// current_phase; this one only drives the arena progress bar.
type PhaseTracker struct {
	phase           int
	monstersInPhase int
}

// NewPhaseTracker starts at phase 1 with 300 monsters.
func NewPhaseTracker() PhaseTracker {
	return PhaseTracker{phase: 1, monstersInPhase: domain.ArenaInitialMonstersPerPhase}
}

func grow(monsters int) int {
	return int(math.Floor(float64(monsters) * domain.ArenaMonsterIncreaseFactor))
}

// Observe records the kill total after a kill and advances the phase when
// it lands on a multiple of the current phase size.
func (t *PhaseTracker) Observe(monstersKilled int) bool {
	if monstersKilled <= 0 || monstersKilled%t.monstersInPhase != 0 {
		return false
	}
	t.phase++
	t.monstersInPhase = grow(t.monstersInPhase)
	return true
}

// Status derives the display from the kill total.
func (t PhaseTracker) Status(monstersKilled int) PhaseStatus {
	killed := monstersKilled % t.monstersInPhase
	return PhaseStatus{
		Phase:             t.phase,
		KilledInPhase:     killed,
		MonstersInPhase:   t.monstersInPhase,
		NextPhaseMonsters: grow(t.monstersInPhase),
		Percent:           float64(killed) / float64(t.monstersInPhase) * 100,
	}
}

// Arena runs the three combat actions.
type Arena struct {
	env   Env
	guard panel.Guard

	mu      sync.RWMutex
	tracker PhaseTracker
}

// NewArena creates the arena at phase 1.
func NewArena(env Env) *Arena {
	return &Arena{env: env, tracker: NewPhaseTracker()}
}

// KillMonster records a kill and advances the local phase when due.
func (a *Arena) KillMonster(ctx context.Context) error {
	return a.act(ctx, "kill-monster", a.env.API.KillMonster, true)
}

// SelfEliminate records a self elimination.
func (a *Arena) SelfEliminate(ctx context.Context) error {
	return a.act(ctx, "self-eliminate", a.env.API.SelfEliminate, false)
}

// Die records a death.
func (a *Arena) Die(ctx context.Context) error {
	return a.act(ctx, "die", a.env.API.Die, false)
}

func (a *Arena) act(ctx context.Context, action string, call func(context.Context, int) (*client.ActionResponse, error), kill bool) error {
	p, err := a.env.player()
	if err != nil {
		return err
	}
	return a.guard.Run(func() error {
		resp, err := call(ctx, p.ID)
		if err != nil {
			return a.env.fail(ctx, action, err)
		}
		if resp.Player == nil {
			return nil
		}
		a.env.OnPlayerUpdate.Push(resp.Player)
		if kill {
			a.mu.Lock()
			advanced := a.tracker.Observe(resp.Player.MonstersKilled)
			a.mu.Unlock()
			if advanced {
				logger.FromContext(ctx).Info("Arena phase completed", "player_id", p.ID, "monsters_killed", resp.Player.MonstersKilled)
			}
		}
		return nil
	})
}

// Status returns the phase display for the current player.
func (a *Arena) Status() PhaseStatus {
	killed := 0
	if p := a.currentPlayer(); p != nil {
		killed = p.MonstersKilled
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.tracker.Status(killed)
}

func (a *Arena) currentPlayer() *domain.Player {
	p, _ := a.env.player()
	return p
}
