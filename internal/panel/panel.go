// Package panel holds what every panel shares: how it talks back to the
// user (alerts and confirmations), the busy guard that blocks double
// submits, and the error banner.
package panel

import (
	"context"
	"sync"

	"github.com/dooficoin/doofigame/internal/domain"
	"github.com/dooficoin/doofigame/internal/logger"
	"github.com/dooficoin/doofigame/internal/metrics"
)

// Alerter shows a blocking message to the user.
type Alerter interface {
	Alert(ctx context.Context, msg string)
}

// AlertFunc adapts a function to Alerter.
type AlertFunc func(ctx context.Context, msg string)

func (f AlertFunc) Alert(ctx context.Context, msg string) { f(ctx, msg) }

// Confirmer asks the user a yes/no question. Anything but an explicit yes
// is a no.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool { return f(ctx, prompt) }

// Confirmed is a Confirmer for actions the user already approved elsewhere,
// such as a Discord confirm button.
var Confirmed Confirmer = ConfirmFunc(func(context.Context, string) bool { return true })

// UI bundles the two callbacks a front end hands to its panels.
type UI struct {
	Alerter   Alerter
	Confirmer Confirmer
}

// Alert forwards msg to the alerter, if any.
func (u UI) Alert(ctx context.Context, msg string) {
	if u.Alerter != nil {
		u.Alerter.Alert(ctx, msg)
	}
}

// Confirm asks the confirmer and counts the answer. With no confirmer the
// answer is no.
func (u UI) Confirm(ctx context.Context, prompt string) bool {
	ok := u.Confirmer != nil && u.Confirmer.Confirm(ctx, prompt)
	metrics.RecordConfirmation(ok)
	return ok
}

// Fail logs err, alerts its message and returns it, for use as the last
// statement of a failed action.
func (u UI) Fail(ctx context.Context, action string, err error) error {
	logger.FromContext(ctx).Warn("Panel action failed", "action", action, "error", err)
	u.Alert(ctx, err.Error())
	return err
}

// Collector records alerts instead of showing them. Front ends that answer
// asynchronously (Discord) drain it into the reply.
type Collector struct {
	mu       sync.Mutex
	messages []string
}

func (c *Collector) Alert(_ context.Context, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, msg)
}

// Messages returns the recorded alerts.
func (c *Collector) Messages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.messages...)
}

// Drain returns and forgets the recorded alerts.
func (c *Collector) Drain() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.messages
	c.messages = nil
	return out
}

// Guard disables a control while its request is in flight.
type Guard struct {
	mu sync.Mutex
}

// Run executes fn unless another call is still running, in which case it
// returns domain.ErrBusy without calling fn.
func (g *Guard) Run(fn func() error) error {
	if !g.mu.TryLock() {
		return domain.ErrBusy
	}
	defer g.mu.Unlock()
	return fn()
}

// Banner is the inline error flag of a panel.
type Banner struct {
	mu  sync.RWMutex
	msg string
}

// Set records err, or clears the banner when err is nil.
func (b *Banner) Set(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err == nil {
		b.msg = ""
		return
	}
	b.msg = err.Error()
}

// Clear hides the banner.
func (b *Banner) Clear() { b.Set(nil) }

// Message returns the banner text, "" when hidden.
func (b *Banner) Message() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.msg
}

// PlayerSink receives players returned by mutating calls.
type PlayerSink func(*domain.Player)

// Push forwards p when both are set.
func (s PlayerSink) Push(p *domain.Player) {
	if s != nil && p != nil {
		s(p)
	}
}
