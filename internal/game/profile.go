package game

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/dooficoin/doofigame/internal/domain"
	"github.com/dooficoin/doofigame/internal/logger"
	"github.com/dooficoin/doofigame/internal/panel"
)

var validate = validator.New()

// ProfileForm is the editable profile. Passwords are only sent when
// NewPassword is set.
type ProfileForm struct {
	Username        string
	Email           string
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

// Profile shows collection statistics and edits the account.
type Profile struct {
	env    Env
	guard  panel.Guard
	banner panel.Banner

	mu      sync.RWMutex
	stats   *domain.ProfileStats
	form    ProfileForm
	editing bool
}

// NewProfile creates the panel.
func NewProfile(env Env) *Profile {
	return &Profile{env: env}
}

// Load fetches the statistics.
func (p *Profile) Load(ctx context.Context) error {
	stats, err := p.env.API.GetProfileStats(ctx)
	if err != nil {
		p.banner.Set(err)
		return err
	}
	p.banner.Clear()
	p.mu.Lock()
	p.stats = stats
	p.mu.Unlock()
	return nil
}

// Banner returns the inline error.
func (p *Profile) Banner() string { return p.banner.Message() }

// Stats returns the last loaded statistics.
func (p *Profile) Stats() *domain.ProfileStats {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stats == nil {
		return nil
	}
	s := *p.stats
	return &s
}

func (p *Profile) freshForm() ProfileForm {
	pl, err := p.env.player()
	if err != nil {
		return ProfileForm{}
	}
	return ProfileForm{Username: pl.Username, Email: pl.Email}
}

// StartEdit opens the form filled from the current player.
func (p *Profile) StartEdit() {
	form := p.freshForm()
	p.mu.Lock()
	defer p.mu.Unlock()
	p.form = form
	p.editing = true
}

// Editing reports whether the form is open.
func (p *Profile) Editing() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.editing
}

// Form returns a copy of the form.
func (p *Profile) Form() ProfileForm {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.form
}

// EditForm applies fn to the form.
func (p *Profile) EditForm(fn func(*ProfileForm)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(&p.form)
}

// Cancel closes the form and refills it from the player.
func (p *Profile) Cancel() {
	form := p.freshForm()
	p.mu.Lock()
	defer p.mu.Unlock()
	p.form = form
	p.editing = false
}

// Save sends the profile. A new password that does not match its
// confirmation fails before any request.
func (p *Profile) Save(ctx context.Context) error {
	form := p.Form()
	if form.NewPassword != "" && form.NewPassword != form.ConfirmPassword {
		p.env.UI.Alert(ctx, "As senhas não coincidem!")
		return domain.ErrPasswordMismatch
	}

	update := domain.ProfileUpdate{Username: form.Username, Email: form.Email}
	if form.NewPassword != "" {
		update.CurrentPassword = form.CurrentPassword
		update.NewPassword = form.NewPassword
	}
	if err := validate.Struct(update); err != nil {
		return p.env.fail(ctx, "update-profile", fmt.Errorf("%w: %v", domain.ErrInvalidInput, err))
	}

	return p.guard.Run(func() error {
		player, err := p.env.API.UpdateProfile(ctx, update)
		if err != nil {
			return p.env.fail(ctx, "update-profile", err)
		}
		p.env.OnPlayerUpdate.Push(player)

		p.mu.Lock()
		p.editing = false
		p.form.CurrentPassword = ""
		p.form.NewPassword = ""
		p.form.ConfirmPassword = ""
		p.mu.Unlock()

		logger.FromContext(ctx).Info("Profile updated", "password_changed", update.NewPassword != "")
		p.env.UI.Alert(ctx, "Perfil atualizado com sucesso!")
		return nil
	})
}
