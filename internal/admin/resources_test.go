package admin

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dooficoin/doofigame/internal/client"
	"github.com/dooficoin/doofigame/internal/domain"
)

func TestUsersPanel_BanTogglesRow(t *testing.T) {
	h := newHarness(t)
	h.srv.Seed("users", map[string]any{"id": 5, "username": "cypher", "email": "cypher@doofi.test", "is_active": true})
	p := NewUsersPanel(h.api, h.ui, 10)
	ctx := context.Background()
	require.NoError(t, p.Load(ctx))

	h.answer = false
	assert.ErrorIs(t, p.Ban(ctx, 5), domain.ErrCancelled)
	assert.Empty(t, h.srv.RequestsTo(http.MethodPost, "/api/admin/users/5/ban"))

	h.answer = true
	require.NoError(t, p.Ban(ctx, 5))
	assert.Len(t, h.srv.RequestsTo(http.MethodPost, "/api/admin/users/5/ban"), 1)
	row, ok := p.Row(5)
	require.True(t, ok)
	assert.False(t, row.IsActive)
	assert.Equal(t, []string{"Usuário banido com sucesso!"}, h.alerts.Drain())
	assert.Equal(t, []string{"Tem certeza que deseja banir este usuário?", "Tem certeza que deseja banir este usuário?"}, h.prompts)

	require.NoError(t, p.Unban(ctx, 5))
	row, _ = p.Row(5)
	assert.True(t, row.IsActive)
	assert.Equal(t, []string{"Usuário desbanido com sucesso!"}, h.alerts.Drain())
}

func TestUsersPanel_NoCreate(t *testing.T) {
	h := newHarness(t)
	p := NewUsersPanel(h.api, h.ui, 10)

	assert.ErrorIs(t, p.StartCreate(), domain.ErrInvalidInput)
	assert.False(t, p.Active())
}

func TestUsersPanel_BanFailure(t *testing.T) {
	h := newHarness(t)
	h.answer = true
	p := NewUsersPanel(h.api, h.ui, 10)

	err := p.Ban(context.Background(), 404)

	require.Error(t, err)
	assert.Equal(t, []string{"Erro ao banir usuário: User not found"}, h.alerts.Messages())
}

func TestPlayersPanel_Grants(t *testing.T) {
	h := newHarness(t)
	h.srv.Seed("players", map[string]any{"id": 7, "username": "morpheus", "level": 3})
	p := NewPlayersPanel(h.api, h.ui, 10)
	ctx := context.Background()

	require.NoError(t, p.Give(ctx, 7, GrantCard, 2, 1))
	req := h.srv.RequestsTo(http.MethodPost, "/api/admin/players/7/give-card")
	require.Len(t, req, 1)
	assert.JSONEq(t, `{"card_id":2,"quantity":1}`, string(req[0].Body))

	h.answer = false
	assert.ErrorIs(t, p.Remove(ctx, 7, GrantItem, 3, 1), domain.ErrCancelled)
	assert.Empty(t, h.srv.RequestsTo(http.MethodPost, "/api/admin/players/7/remove-item"))

	assert.ErrorIs(t, p.Give(ctx, 7, GrantItem, 0, 1), domain.ErrInvalidInput)
}

func TestSettingsPanel(t *testing.T) {
	h := newHarness(t)
	saved := domain.DefaultGameSettings()
	saved.SelfKillCoinReward = tinyReward
	h.srv.SetSettings(saved)
	p := NewSettingsPanel(h.api, h.ui)
	ctx := context.Background()

	assert.Equal(t, domain.DefaultGameSettings(), p.Form())
	require.NoError(t, p.Load(ctx))
	assert.Equal(t, domain.Decimal(tinyReward), p.Form().SelfKillCoinReward)

	p.EditForm(func(s *domain.GameSettings) { s.IsPvPActive = false })
	require.NoError(t, p.Save(ctx))

	puts := h.srv.RequestsTo(http.MethodPut, "/api/admin/settings")
	require.Len(t, puts, 1)
	assert.Contains(t, string(puts[0].Body), `"self_kill_coin_reward":"`+tinyReward+`"`)
	assert.False(t, h.srv.Settings().IsPvPActive)
	assert.Equal(t, []string{"Configurações atualizadas com sucesso!"}, h.alerts.Messages())
	assert.Len(t, h.srv.RequestsTo(http.MethodGet, "/api/admin/settings"), 2, "saved settings are re-fetched")
}

func TestSettingsPanel_InvalidDecimal(t *testing.T) {
	h := newHarness(t)
	p := NewSettingsPanel(h.api, h.ui)
	p.EditForm(func(s *domain.GameSettings) { s.MiningInitialDooficoin = "abc" })

	assert.ErrorIs(t, p.Save(context.Background()), domain.ErrInvalidDecimal)
	assert.Empty(t, h.srv.RequestsTo(http.MethodPut, "/api/admin/settings"))
}

func TestAdSensePanel_MissingConfig(t *testing.T) {
	h := newHarness(t)
	p := NewAdSensePanel(h.api, h.ui)

	require.NoError(t, p.Load(context.Background()))

	assert.Nil(t, p.Config())
	assert.Equal(t, domain.DefaultAdSenseConfig(), p.ConfigForm())
	assert.Empty(t, p.Units())
	assert.Empty(t, p.Banner())
}

func TestAdSensePanel_SaveConfig(t *testing.T) {
	h := newHarness(t)
	p := NewAdSensePanel(h.api, h.ui)
	ctx := context.Background()
	require.NoError(t, p.Load(ctx))

	p.EditConfig(func(c *domain.AdSenseConfig) { c.ClientID = "ca-pub-42" })
	require.NoError(t, p.SaveConfig(ctx))

	require.NotNil(t, p.Config())
	assert.Equal(t, "ca-pub-42", p.Config().ClientID)
	assert.Equal(t, []string{"Configuração do AdSense atualizada com sucesso!"}, h.alerts.Messages())
}

func TestAdSensePanel_UnitsSplicedLocally(t *testing.T) {
	h := newHarness(t)
	h.srv.SetAdUnits(domain.AdUnit{ID: 1, Name: "Topo", AdUnitID: "111", AdFormat: "display", IsActive: true})
	p := NewAdSensePanel(h.api, h.ui)
	ctx := context.Background()
	require.NoError(t, p.Load(ctx))

	p.StartCreateUnit()
	p.EditUnit(func(u *domain.AdUnit) {
		u.Name = "Rodapé"
		u.AdUnitID = "222"
	})
	h.srv.ResetRequests()
	require.NoError(t, p.SaveUnit(ctx))
	assert.Empty(t, h.srv.RequestsTo(http.MethodGet, "/api/admin/adsense/ad-units"), "list is spliced, not reloaded")
	require.Len(t, p.Units(), 2)
	assert.Equal(t, "Rodapé", p.Units()[1].Name)
	assert.Equal(t, DefaultAdUnitForm(), p.UnitForm())

	require.NoError(t, p.StartEditUnit(1))
	p.EditUnit(func(u *domain.AdUnit) { u.IsActive = false })
	require.NoError(t, p.SaveUnit(ctx))
	assert.False(t, p.Units()[0].IsActive)

	h.answer = true
	require.NoError(t, p.DeleteUnit(ctx, 1))
	require.Len(t, p.Units(), 1)
	assert.Equal(t, "Rodapé", p.Units()[0].Name)
	assert.Len(t, h.srv.AdUnits(), 1)
}

func TestAdSensePanel_UnitRequiresName(t *testing.T) {
	h := newHarness(t)
	p := NewAdSensePanel(h.api, h.ui)

	p.StartCreateUnit()
	assert.ErrorIs(t, p.SaveUnit(context.Background()), domain.ErrInvalidInput)
	assert.Empty(t, h.srv.RequestsTo(http.MethodPost, "/api/admin/adsense/ad-units"))
}

func TestSecurityLogsPanel(t *testing.T) {
	h := newHarness(t)
	h.srv.SetSecurityLogs(
		domain.SecurityLog{ID: 1, LogType: domain.SecurityLogFraud, Message: "click fraud"},
		domain.SecurityLog{ID: 2, LogType: domain.SecurityLogLoginAttempt, Message: "bad login"},
		domain.SecurityLog{ID: 3, LogType: domain.SecurityLogFraud, Message: "bot traffic"},
	)
	p := NewSecurityLogsPanel(h.api, 2)
	ctx := context.Background()

	require.NoError(t, p.Load(ctx))
	assert.Len(t, p.Logs(), 2)
	assert.Equal(t, 3, p.Total())
	q := h.srv.LastRequest().Query
	assert.True(t, q.Has(client.ParamType))
	assert.Empty(t, q.Get(client.ParamType))

	require.NoError(t, p.NextPage(ctx))
	require.NoError(t, p.SetType(ctx, domain.SecurityLogFraud))
	page, total, _, _ := p.Page()
	assert.Equal(t, 1, page)
	assert.Equal(t, 1, total)
	assert.Len(t, p.Logs(), 2)

	require.NoError(t, p.SetSearch(ctx, "bot"))
	require.Len(t, p.Logs(), 1)
	assert.Equal(t, 3, p.Logs()[0].ID)
}

func TestDashboardPanel(t *testing.T) {
	h := newHarness(t)
	h.srv.SetDashboard(domain.DashboardStats{TotalUsers: 10, TotalDooficoinMined: tinyReward})
	p := NewDashboardPanel(h.api)

	assert.Nil(t, p.Stats())
	require.NoError(t, p.Load(context.Background()))
	require.NotNil(t, p.Stats())
	assert.Equal(t, 10, p.Stats().TotalUsers)
	assert.Equal(t, domain.Decimal(tinyReward), p.Stats().TotalDooficoinMined)
}

func TestSettingsAndAdSense_SetFieldByName(t *testing.T) {
	h := newHarness(t)
	settings := NewSettingsPanel(h.api, h.ui)

	require.NoError(t, settings.SetField("mining_initial_dooficoin", tinyReward))
	require.NoError(t, settings.SetField("is_pvp_active", "não"))
	assert.ErrorIs(t, settings.SetField("nope", "1"), domain.ErrInvalidInput)
	assert.Equal(t, domain.Decimal(tinyReward), settings.Form().MiningInitialDooficoin)
	assert.False(t, settings.Form().IsPvPActive)
	assert.Contains(t, settings.FormFields(), Field{Name: "is_pvp_active", Value: "false"})

	ads := NewAdSensePanel(h.api, h.ui)
	require.NoError(t, ads.SetConfigField("client_id", "ca-pub-1"))
	assert.Equal(t, "ca-pub-1", ads.ConfigForm().ClientID)

	assert.ErrorIs(t, ads.SetUnitField("name", "Topo"), domain.ErrInvalidInput, "no unit form open")
	ads.StartCreateUnit()
	require.NoError(t, ads.SetUnitField("name", "Topo"))
	assert.Contains(t, ads.UnitFields(), Field{Name: "name", Value: "Topo"})
}
