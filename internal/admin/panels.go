package admin

import (
	"fmt"
	"sort"

	"github.com/dooficoin/doofigame/internal/client"
	"github.com/dooficoin/doofigame/internal/domain"
	"github.com/dooficoin/doofigame/internal/panel"
)

// Panels is the whole back office of one admin session.
type Panels struct {
	Users        *UsersPanel
	Items        *Panel[domain.Item, ItemForm]
	Monsters     *Panel[domain.Monster, MonsterForm]
	Scenarios    *Panel[domain.Scenario, ScenarioForm]
	Cards        *Panel[domain.CollectibleCard, CardForm]
	ShopItems    *Panel[domain.ShopItem, ShopItemForm]
	Players      *PlayersPanel
	SecurityLogs *SecurityLogsPanel
	Settings     *SettingsPanel
	AdSense      *AdSensePanel
	Dashboard    *DashboardPanel

	tables map[string]Table
}

// NewPanels builds every panel around one client and UI.
func NewPanels(api *client.Client, ui panel.UI, perPage int) *Panels {
	p := &Panels{
		Users:        NewUsersPanel(api, ui, perPage),
		Items:        NewPanel(api, ItemsSchema, ui, perPage),
		Monsters:     NewPanel(api, MonstersSchema, ui, perPage),
		Scenarios:    NewPanel(api, ScenariosSchema, ui, perPage),
		Cards:        NewPanel(api, CardsSchema, ui, perPage),
		ShopItems:    NewPanel(api, ShopItemsSchema, ui, perPage),
		Players:      NewPlayersPanel(api, ui, perPage),
		SecurityLogs: NewSecurityLogsPanel(api, perPage),
		Settings:     NewSettingsPanel(api, ui),
		AdSense:      NewAdSensePanel(api, ui),
		Dashboard:    NewDashboardPanel(api),
	}
	p.tables = map[string]Table{}
	for _, t := range []Table{p.Users, p.Items, p.Monsters, p.Scenarios, p.Cards, p.ShopItems, p.Players} {
		p.tables[t.Resource().Name] = t
	}
	return p
}

// Table returns the CRUD panel of a collection by name ("items", ...).
func (p *Panels) Table(name string) (Table, error) {
	t, ok := p.tables[name]
	if !ok {
		return nil, fmt.Errorf("%w: admin resource %q", domain.ErrNotFound, name)
	}
	return t, nil
}

// TableNames lists the CRUD collections in alphabetical order.
func (p *Panels) TableNames() []string {
	names := make([]string, 0, len(p.tables))
	for name := range p.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
