// Package mining drives the mining countdown shown while a session runs.
package mining

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/dooficoin/doofigame/internal/domain"
	"github.com/dooficoin/doofigame/internal/logger"
)

// TickInterval is how often the countdown is recomputed.
const TickInterval = time.Second

// RefetchFunc reloads the mining status once the countdown reaches zero.
type RefetchFunc func(ctx context.Context) error

// TickFunc receives the remaining whole seconds on every tick.
type TickFunc func(remaining int)

// Countdown recomputes the seconds left in a mining session. It never polls
// the backend: the only request it makes is the single refetch at zero.
type Countdown struct {
	now      func() time.Time
	interval time.Duration
	refetch  RefetchFunc
}

// Option configures a Countdown
type Option func(*Countdown)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Countdown) {
		c.now = now
	}
}

// WithInterval overrides the tick interval.
func WithInterval(d time.Duration) Option {
	return func(c *Countdown) {
		if d > 0 {
			c.interval = d
		}
	}
}

// NewCountdown creates a countdown that calls refetch at expiry.
func NewCountdown(refetch RefetchFunc, opts ...Option) *Countdown {
	c := &Countdown{
		now:      time.Now,
		interval: TickInterval,
		refetch:  refetch,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Remaining returns the whole seconds until the session ends, never negative.
// Inactive sessions have nothing remaining.
func (c *Countdown) Remaining(session *domain.MiningSession) int {
	if !session.Active() {
		return 0
	}
	left := session.EndTime.Sub(c.now()).Seconds()
	if left <= 0 {
		return 0
	}
	return int(math.Floor(left))
}

// Run ticks until the session reaches zero or ctx is cancelled. At zero it
// calls the refetch function exactly once and returns its error. Cancelling
// ctx stops the ticker and returns nil.
func (c *Countdown) Run(ctx context.Context, session *domain.MiningSession, onTick TickFunc) error {
	if !session.Active() {
		return nil
	}
	if onTick == nil {
		onTick = func(int) {}
	}

	remaining := c.Remaining(session)
	onTick(remaining)
	if remaining == 0 {
		return c.expire(ctx)
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			remaining = c.Remaining(session)
			onTick(remaining)
			if remaining == 0 {
				return c.expire(ctx)
			}
		}
	}
}

func (c *Countdown) expire(ctx context.Context) error {
	logger.FromContext(ctx).Debug("Mining countdown reached zero, refreshing status")
	if c.refetch == nil {
		return nil
	}
	return c.refetch(ctx)
}

// FormatRemaining renders seconds as "1h 2m 3s", "2m 3s" or "3s".
func FormatRemaining(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60

	switch {
	case h > 0:
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	case m > 0:
		return fmt.Sprintf("%dm %ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}
