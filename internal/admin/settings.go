package admin

import (
	"context"
	"fmt"
	"sync"

	"github.com/dooficoin/doofigame/internal/client"
	"github.com/dooficoin/doofigame/internal/domain"
	"github.com/dooficoin/doofigame/internal/logger"
	"github.com/dooficoin/doofigame/internal/panel"
)

// SettingsPanel reads and writes the global game settings as one form.
type SettingsPanel struct {
	api    *client.Client
	ui     panel.UI
	guard  panel.Guard
	banner panel.Banner

	mu   sync.RWMutex
	form domain.GameSettings
}

// NewSettingsPanel creates the panel with the default settings loaded in
// the form until the first fetch.
func NewSettingsPanel(api *client.Client, ui panel.UI) *SettingsPanel {
	return &SettingsPanel{api: api, ui: ui, form: domain.DefaultGameSettings()}
}

// Load replaces the form with the saved settings.
func (p *SettingsPanel) Load(ctx context.Context) error {
	settings, err := p.api.GetSettings(ctx)
	if err != nil {
		p.banner.Set(err)
		return err
	}
	p.banner.Clear()
	p.mu.Lock()
	p.form = *settings
	p.mu.Unlock()
	return nil
}

// Form returns a copy of the form.
func (p *SettingsPanel) Form() domain.GameSettings {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.form
}

// EditForm applies fn to the form in place.
func (p *SettingsPanel) EditForm(fn func(*domain.GameSettings)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(&p.form)
}

// Banner returns the inline error.
func (p *SettingsPanel) Banner() string { return p.banner.Message() }

// Save PUTs the whole settings object, then reloads it.
func (p *SettingsPanel) Save(ctx context.Context) error {
	return p.guard.Run(func() error {
		form := p.Form()
		err := validate.Struct(form)
		if err == nil {
			err = validateDecimals(form.SelfKillCoinReward, form.MiningInitialDooficoin, form.MiningTimeDoubleThreshold)
		}
		if err == nil {
			err = p.api.UpdateSettings(ctx, form)
		}
		if err != nil {
			p.banner.Set(err)
			p.ui.Alert(ctx, "Erro ao atualizar configurações: "+err.Error())
			return err
		}
		logger.FromContext(ctx).Info("Game settings updated")
		p.ui.Alert(ctx, "Configurações atualizadas com sucesso!")
		return p.Load(ctx)
	})
}

// AdSensePanel manages the AdSense configuration and ad units.
type AdSensePanel struct {
	api    *client.Client
	ui     panel.UI
	guard  panel.Guard
	banner panel.Banner

	mu            sync.RWMutex
	config        *domain.AdSenseConfig
	configForm    domain.AdSenseConfig
	editingConfig bool
	units         []domain.AdUnit
	unitForm      domain.AdUnit
	editingUnit   int
	creatingUnit  bool
}

// NewAdSensePanel creates the panel.
func NewAdSensePanel(api *client.Client, ui panel.UI) *AdSensePanel {
	return &AdSensePanel{
		api:        api,
		ui:         ui,
		configForm: domain.DefaultAdSenseConfig(),
		units:      []domain.AdUnit{},
		unitForm:   DefaultAdUnitForm(),
	}
}

// DefaultAdUnitForm is the blank ad unit form.
func DefaultAdUnitForm() domain.AdUnit {
	return domain.AdUnit{AdFormat: "display", IsActive: true}
}

// Load fetches the config and the ad units. A missing config is not an
// error: the panel shows an empty config form.
func (p *AdSensePanel) Load(ctx context.Context) error {
	cfg, err := p.api.GetAdSenseConfig(ctx)
	if err != nil {
		p.banner.Set(err)
		return err
	}
	units, err := p.api.ListAdUnits(ctx)
	if err != nil {
		p.banner.Set(err)
		return err
	}
	p.banner.Clear()

	p.mu.Lock()
	defer p.mu.Unlock()
	p.config = cfg
	if cfg != nil {
		p.configForm = configForm(*cfg)
	}
	p.units = units
	return nil
}

// configForm fills blanks with the form defaults.
func configForm(cfg domain.AdSenseConfig) domain.AdSenseConfig {
	def := domain.DefaultAdSenseConfig()
	if cfg.AdDisplayIntervalMinutes == 0 {
		cfg.AdDisplayIntervalMinutes = def.AdDisplayIntervalMinutes
	}
	if cfg.AdDisplayDurationSeconds == 0 {
		cfg.AdDisplayDurationSeconds = def.AdDisplayDurationSeconds
	}
	if cfg.FraudDetectionThreshold == 0 {
		cfg.FraudDetectionThreshold = def.FraudDetectionThreshold
	}
	return cfg
}

// Config returns the saved config, nil when none exists.
func (p *AdSensePanel) Config() *domain.AdSenseConfig {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.config == nil {
		return nil
	}
	c := *p.config
	return &c
}

// Units returns the ad units.
func (p *AdSensePanel) Units() []domain.AdUnit {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]domain.AdUnit, len(p.units))
	copy(out, p.units)
	return out
}

// Banner returns the inline error.
func (p *AdSensePanel) Banner() string { return p.banner.Message() }

// EditConfig opens the config form and applies fn to it.
func (p *AdSensePanel) EditConfig(fn func(*domain.AdSenseConfig)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.editingConfig = true
	fn(&p.configForm)
}

// ConfigForm returns the config form.
func (p *AdSensePanel) ConfigForm() domain.AdSenseConfig {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.configForm
}

// CancelConfig closes the config form and restores the saved values.
func (p *AdSensePanel) CancelConfig() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.editingConfig = false
	if p.config != nil {
		p.configForm = configForm(*p.config)
	} else {
		p.configForm = domain.DefaultAdSenseConfig()
	}
}

// SaveConfig PUTs the config form and reloads.
func (p *AdSensePanel) SaveConfig(ctx context.Context) error {
	return p.guard.Run(func() error {
		form := p.ConfigForm()
		err := validate.Struct(form)
		if err == nil {
			_, err = p.api.UpdateAdSenseConfig(ctx, form)
		}
		if err != nil {
			p.banner.Set(err)
			p.ui.Alert(ctx, "Erro ao atualizar configuração: "+err.Error())
			return err
		}
		p.ui.Alert(ctx, "Configuração do AdSense atualizada com sucesso!")
		p.mu.Lock()
		p.editingConfig = false
		p.mu.Unlock()
		return p.Load(ctx)
	})
}

// StartCreateUnit opens a blank ad unit form.
func (p *AdSensePanel) StartCreateUnit() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.creatingUnit = true
	p.editingUnit = 0
	p.unitForm = DefaultAdUnitForm()
}

// StartEditUnit opens the form for a loaded unit.
func (p *AdSensePanel) StartEditUnit(id int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, u := range p.units {
		if u.ID == id {
			p.creatingUnit = false
			p.editingUnit = id
			p.unitForm = u
			return nil
		}
	}
	return fmt.Errorf("%w: ad unit %d", domain.ErrNotFound, id)
}

// EditUnit applies fn to the ad unit form.
func (p *AdSensePanel) EditUnit(fn func(*domain.AdUnit)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(&p.unitForm)
}

// UnitForm returns the ad unit form.
func (p *AdSensePanel) UnitForm() domain.AdUnit {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.unitForm
}

// CancelUnit closes the ad unit form and resets it.
func (p *AdSensePanel) CancelUnit() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resetUnitLocked()
}

func (p *AdSensePanel) resetUnitLocked() {
	p.creatingUnit = false
	p.editingUnit = 0
	p.unitForm = DefaultAdUnitForm()
}

// SaveUnit creates or updates the ad unit in the form. The returned unit is
// spliced into the local list instead of reloading it.
func (p *AdSensePanel) SaveUnit(ctx context.Context) error {
	return p.guard.Run(func() error {
		p.mu.RLock()
		form, id, creating := p.unitForm, p.editingUnit, p.creatingUnit
		p.mu.RUnlock()

		if id == 0 && !creating {
			return fmt.Errorf("%w: no ad unit form open", domain.ErrInvalidInput)
		}
		if form.Name == "" || form.AdUnitID == "" {
			err := fmt.Errorf("%w: name and ad unit id are required", domain.ErrInvalidInput)
			p.ui.Alert(ctx, unitFailure(creating, err))
			return err
		}

		var (
			saved *domain.AdUnit
			err   error
		)
		if creating {
			saved, err = p.api.CreateAdUnit(ctx, form)
		} else {
			saved, err = p.api.UpdateAdUnit(ctx, id, form)
		}
		if err != nil {
			p.banner.Set(err)
			p.ui.Alert(ctx, unitFailure(creating, err))
			return err
		}

		p.mu.Lock()
		if creating {
			p.units = append(p.units, *saved)
		} else {
			for i := range p.units {
				if p.units[i].ID == id {
					p.units[i] = *saved
				}
			}
		}
		p.resetUnitLocked()
		p.mu.Unlock()

		if creating {
			p.ui.Alert(ctx, "Unidade de anúncio criada com sucesso!")
		} else {
			p.ui.Alert(ctx, "Unidade de anúncio atualizada com sucesso!")
		}
		return nil
	})
}

func unitFailure(creating bool, err error) string {
	if creating {
		return "Erro ao criar unidade de anúncio: " + err.Error()
	}
	return "Erro ao atualizar unidade de anúncio: " + err.Error()
}

// DeleteUnit deletes an ad unit after confirmation and drops it from the
// local list.
func (p *AdSensePanel) DeleteUnit(ctx context.Context, id int) error {
	if !p.ui.Confirm(ctx, "Tem certeza que deseja deletar esta unidade de anúncio?") {
		return domain.ErrCancelled
	}
	return p.guard.Run(func() error {
		if err := p.api.DeleteAdUnit(ctx, id); err != nil {
			p.banner.Set(err)
			p.ui.Alert(ctx, "Erro ao deletar unidade de anúncio: "+err.Error())
			return err
		}
		p.mu.Lock()
		for i := range p.units {
			if p.units[i].ID == id {
				p.units = append(p.units[:i:i], p.units[i+1:]...)
				break
			}
		}
		p.mu.Unlock()
		p.ui.Alert(ctx, "Unidade de anúncio deletada com sucesso!")
		return nil
	})
}

// DashboardPanel shows the read-only back-office counters.
type DashboardPanel struct {
	api    *client.Client
	banner panel.Banner

	mu    sync.RWMutex
	stats *domain.DashboardStats
}

// NewDashboardPanel creates the panel.
func NewDashboardPanel(api *client.Client) *DashboardPanel {
	return &DashboardPanel{api: api}
}

// Load fetches the counters.
func (p *DashboardPanel) Load(ctx context.Context) error {
	stats, err := p.api.GetDashboard(ctx)
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

// Stats returns the last loaded counters, nil before the first load.
func (p *DashboardPanel) Stats() *domain.DashboardStats {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stats == nil {
		return nil
	}
	s := *p.stats
	return &s
}

// Banner returns the inline error.
func (p *DashboardPanel) Banner() string { return p.banner.Message() }
