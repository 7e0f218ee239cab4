package game

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dooficoin/doofigame/internal/client"
	"github.com/dooficoin/doofigame/internal/domain"
	"github.com/dooficoin/doofigame/internal/mining"
	"github.com/dooficoin/doofigame/internal/panel"
	"github.com/dooficoin/doofigame/internal/testing/fakeapi"
)

type harness struct {
	srv    *fakeapi.Server
	env    Env
	alerts *panel.Collector
	answer bool

	mu      sync.Mutex
	current *domain.Player
	pushed  []*domain.Player
}

func newHarness(t *testing.T, seed domain.Player) *harness {
	t.Helper()
	srv := fakeapi.New()
	t.Cleanup(srv.Close)

	u := srv.AddUser(domain.User{Username: "neo", Email: "neo@doofi.test", IsActive: true})
	seed.UserID = u.ID
	seed.Username = u.Username
	seed.Email = u.Email
	if seed.Level == 0 {
		seed.Level = 1
	}
	if seed.WalletBalance.IsEmpty() {
		seed.WalletBalance = domain.ZeroDecimal
	}
	p := srv.AddPlayer(seed)
	token := srv.IssueToken(u.ID, false, fakeapi.DefaultTokenTTL)

	h := &harness{srv: srv, alerts: &panel.Collector{}, current: &p}
	h.env = Env{
		API: client.New(srv.URL, client.WithToken(token)),
		UI: panel.UI{
			Alerter: h.alerts,
			Confirmer: panel.ConfirmFunc(func(context.Context, string) bool {
				return h.answer
			}),
		},
		Player: h.player,
		OnPlayerUpdate: func(p *domain.Player) {
			h.mu.Lock()
			defer h.mu.Unlock()
			h.current = p
			h.pushed = append(h.pushed, p)
		},
	}
	return h
}

func (h *harness) player() *domain.Player {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current.Clone()
}

func (h *harness) pushes() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.pushed)
}

func TestPhaseTracker(t *testing.T) {
	tr := NewPhaseTracker()

	st := tr.Status(150)
	assert.Equal(t, 1, st.Phase)
	assert.Equal(t, 150, st.KilledInPhase)
	assert.Equal(t, 300, st.MonstersInPhase)
	assert.Equal(t, 375, st.NextPhaseMonsters)
	assert.InDelta(t, 50.0, st.Percent, 1e-9)

	assert.False(t, tr.Observe(299))
	assert.True(t, tr.Observe(300))
	st = tr.Status(300)
	assert.Equal(t, 2, st.Phase)
	assert.Equal(t, 375, st.MonstersInPhase)
	assert.Equal(t, 300, st.KilledInPhase)
	assert.Equal(t, 468, st.NextPhaseMonsters, "375 * 1.25 floors to 468")

	assert.False(t, tr.Observe(0))
}

func TestArena_KillAdvancesPhase(t *testing.T) {
	h := newHarness(t, domain.Player{MonstersKilled: 299})
	arena := NewArena(h.env)

	require.NoError(t, arena.KillMonster(context.Background()))

	assert.Equal(t, 300, h.player().MonstersKilled)
	st := arena.Status()
	assert.Equal(t, 2, st.Phase)
	assert.Equal(t, 375, st.MonstersInPhase)
	require.Len(t, h.srv.RequestsTo(http.MethodPost, "/api/game/player/"+itoa(h.player().ID)+"/kill-monster"), 1)
}

func TestArena_OtherActionsPushPlayer(t *testing.T) {
	h := newHarness(t, domain.Player{Health: 100})
	arena := NewArena(h.env)
	ctx := context.Background()

	require.NoError(t, arena.SelfEliminate(ctx))
	require.NoError(t, arena.Die(ctx))

	p := h.player()
	assert.Equal(t, 1, p.SelfEliminations)
	assert.Equal(t, 1, p.Deaths)
	assert.Equal(t, 1, arena.Status().Phase)
	assert.Equal(t, 2, h.pushes())
}

func TestArena_FailureAlerts(t *testing.T) {
	h := newHarness(t, domain.Player{})
	arena := NewArena(h.env)
	h.srv.Fail(http.MethodPost, "/api/game/player/"+itoa(h.player().ID)+"/die", http.StatusInternalServerError, "boom")

	err := arena.Die(context.Background())

	require.Error(t, err)
	assert.Equal(t, []string{"Erro: boom"}, h.alerts.Messages())
	assert.Zero(t, h.pushes())
}

func TestArena_LoggedOut(t *testing.T) {
	arena := NewArena(Env{API: client.New("http://127.0.0.1:1"), Player: func() *domain.Player { return nil }})
	assert.ErrorIs(t, arena.KillMonster(context.Background()), domain.ErrNotAuthenticated)
}

func TestScenarios_LoadFilterStart(t *testing.T) {
	h := newHarness(t, domain.Player{})
	h.srv.SetScenarios(
		[]domain.Scenario{
			{ID: 1, Name: "Amazônia", Country: "Brasil", InitialMonsters: 300},
			{ID: 2, Name: "Sahara", Country: "Egito", InitialMonsters: 300},
			{ID: 3, Name: "Pantanal", Country: "Brasil", InitialMonsters: 300},
		},
		[]domain.Country{{Name: "Brasil", ScenarioCount: 2}, {Name: "Egito", ScenarioCount: 1}},
	)
	h.srv.SetProgress(domain.ScenarioProgress{ScenarioID: 2, IsCompleted: true, IsPerfect: true})
	s := NewScenarios(h.env)
	ctx := context.Background()

	require.NoError(t, s.Load(ctx))
	assert.Equal(t, "50", h.srv.RequestsTo(http.MethodGet, "/api/scenarios/list")[0].Query.Get(client.ParamPerPage))
	assert.Len(t, s.Visible(), 3)
	assert.Len(t, s.Countries(), 2)
	assert.Equal(t, 1, s.Completed())
	assert.Equal(t, 1, s.Perfect())

	s.SetCountry("Brasil")
	visible := s.Visible()
	require.Len(t, visible, 2)
	assert.Equal(t, "Pantanal", visible[1].Name)

	require.NoError(t, s.Start(ctx, 3))
	assert.Equal(t, []string{"Cenário iniciado: Pantanal"}, h.alerts.Messages())
	prog, ok := s.Progress(3)
	require.True(t, ok)
	assert.Equal(t, 300, prog.TotalMonstersRequired)
	assert.Len(t, h.srv.RequestsTo(http.MethodGet, "/api/scenarios/player-progress"), 2)
}

func TestScenarios_StartFailure(t *testing.T) {
	h := newHarness(t, domain.Player{})
	s := NewScenarios(h.env)

	err := s.Start(context.Background(), 99)

	require.Error(t, err)
	assert.Equal(t, []string{"Erro: Cenário não encontrado"}, h.alerts.Messages())
}

func TestScenarios_LoadKeepsSucceededSlices(t *testing.T) {
	h := newHarness(t, domain.Player{})
	h.srv.SetScenarios(
		[]domain.Scenario{{ID: 1, Name: "Amazônia", Country: "Brasil", InitialMonsters: 300}},
		[]domain.Country{{Name: "Brasil", ScenarioCount: 1}},
	)
	h.srv.Fail(http.MethodGet, client.RouteCountries, http.StatusInternalServerError, "")
	s := NewScenarios(h.env)

	require.Error(t, s.Load(context.Background()))

	assert.Equal(t, "HTTP error! status: 500", s.Banner())
	assert.Len(t, s.Visible(), 1)
	assert.Empty(t, s.Countries())
	assert.NotNil(t, s.Countries())
}

func TestShop_BuyExactBalance(t *testing.T) {
	h := newHarness(t, domain.Player{WalletBalance: "0.0000001", Power: 10})
	shop := NewShop(h.env)

	item, ok := shop.Find(1)
	require.True(t, ok)
	assert.True(t, shop.CanAfford(item))
	require.NoError(t, shop.Buy(context.Background(), 1))

	p := h.player()
	assert.Equal(t, domain.Decimal("0"), p.WalletBalance)
	assert.Equal(t, 15, p.Power)
	assert.Equal(t, []string{"Item Espada Básica comprado com sucesso!"}, h.alerts.Messages())
	assert.Empty(t, h.srv.Requests(), "purchases are settled locally")
}

func TestShop_InsufficientFunds(t *testing.T) {
	h := newHarness(t, domain.Player{WalletBalance: "0.00000009999999999999999999999"})
	shop := NewShop(h.env)

	item, _ := shop.Find(5)
	assert.False(t, shop.CanAfford(item))
	err := shop.Buy(context.Background(), 5)

	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.Equal(t, []string{"Saldo insuficiente para comprar este item!"}, h.alerts.Messages())
	assert.Zero(t, h.pushes())
}

func TestShop_Catalog(t *testing.T) {
	shop := NewShop(Env{})
	for _, c := range ShopCategories {
		assert.Len(t, shop.Items(c), 4, c)
	}
	item, _ := shop.Find(12)
	assert.Equal(t, "Efeito: Todos atributos +10", item.Bonus())
	assert.Equal(t, "Acessórios", ShopAccessories.Label())
	_, ok := shop.Find(13)
	assert.False(t, ok)
}

func inventoryFixture() []domain.InventoryEntry {
	return []domain.InventoryEntry{
		{ID: 1, Quantity: 1, Item: domain.Item{Name: "Espada Curta", Description: "lâmina", ItemType: domain.ItemTypeWeapon, Rarity: domain.RarityCommon, IsSellable: true, CurrentPrice: "0.00000000000000000000000000000000101"}},
		{ID: 2, Quantity: 1, Item: domain.Item{Name: "Escudo", Description: "madeira de carvalho", ItemType: domain.ItemTypeArmor, Rarity: domain.RarityRare, IsSellable: true, CurrentPrice: "1"}},
		{ID: 3, Quantity: 2, Item: domain.Item{Name: "Troféu", ItemType: domain.ItemTypeCollectible, Rarity: domain.RarityEpic}},
	}
}

func TestInventory_Filters(t *testing.T) {
	h := newHarness(t, domain.Player{})
	h.srv.SetInventory(inventoryFixture()...)
	inv := NewInventory(h.env)
	require.NoError(t, inv.Load(context.Background()))

	assert.Len(t, inv.Visible(), 3)

	inv.SetFilter(ItemFilter{Category: string(domain.ItemTypeArmor)})
	require.Len(t, inv.Visible(), 1)
	assert.Equal(t, 2, inv.Visible()[0].ID)

	inv.SetFilter(ItemFilter{Rarity: string(domain.RarityEpic)})
	require.Len(t, inv.Visible(), 1)
	assert.Equal(t, 3, inv.Visible()[0].ID)

	inv.SetFilter(ItemFilter{Search: "CARVALHO"})
	require.Len(t, inv.Visible(), 1, "search matches the description case-insensitively")
	assert.Equal(t, FilterAll, inv.Filter().Category)
}

func TestInventory_EquipToggles(t *testing.T) {
	h := newHarness(t, domain.Player{})
	h.srv.SetInventory(inventoryFixture()...)
	inv := NewInventory(h.env)
	ctx := context.Background()
	require.NoError(t, inv.Load(ctx))

	require.NoError(t, inv.Equip(ctx, 1))
	e, _ := inv.Entry(1)
	assert.True(t, e.IsEquipped)
	assert.Equal(t, 1, h.pushes())

	require.NoError(t, inv.Equip(ctx, 1))
	e, _ = inv.Entry(1)
	assert.False(t, e.IsEquipped)
}

func TestInventory_SellNeedsConfirmation(t *testing.T) {
	h := newHarness(t, domain.Player{})
	h.srv.SetInventory(inventoryFixture()...)
	inv := NewInventory(h.env)
	ctx := context.Background()
	require.NoError(t, inv.Load(ctx))

	h.answer = false
	assert.ErrorIs(t, inv.Sell(ctx, 1), domain.ErrCancelled)
	assert.Empty(t, h.srv.RequestsTo(http.MethodPost, "/api/inventory/1/sell"))

	h.answer = true
	require.NoError(t, inv.Sell(ctx, 1))
	assert.Len(t, inv.Entries(), 2)
	_, ok := inv.Entry(1)
	assert.False(t, ok)
	assert.Equal(t, []string{"Item vendido por 0.00000000000000000000000000000000101 DOOF!"}, h.alerts.Messages())
	assert.Equal(t, domain.Decimal("0.00000000000000000000000000000000101"), h.player().WalletBalance)
}

func TestInventory_SellFailureKeepsRow(t *testing.T) {
	h := newHarness(t, domain.Player{})
	h.srv.SetInventory(inventoryFixture()...)
	inv := NewInventory(h.env)
	ctx := context.Background()
	require.NoError(t, inv.Load(ctx))
	h.answer = true

	err := inv.Sell(ctx, 3)

	require.Error(t, err)
	assert.Len(t, inv.Entries(), 3)
	assert.Equal(t, []string{"Erro: Item não pode ser vendido"}, h.alerts.Messages())
}

func TestCards_FiltersAndStats(t *testing.T) {
	h := newHarness(t, domain.Player{})
	all := []domain.CollectibleCard{
		{ID: 1, Name: "Onça", CardSeries: "Brasil", Rarity: domain.RarityCommon},
		{ID: 2, Name: "Arara", CardSeries: "Brasil", Rarity: domain.RarityRare},
		{ID: 3, Name: "Esfinge", CardSeries: "Egito", Rarity: domain.RarityLegendary, Description: "guardiã"},
		{ID: 4, Name: "Camelo", CardSeries: "Egito", Rarity: domain.RarityCommon},
	}
	owned := []domain.PlayerCard{
		{CardID: 1, Quantity: 3, CollectibleCard: all[0]},
		{CardID: 3, Quantity: 1, CollectibleCard: all[2]},
	}
	h.srv.SetCards(all, owned)
	cards := NewCards(h.env)
	require.NoError(t, cards.Load(context.Background()))

	assert.Equal(t, []string{"Brasil", "Egito"}, cards.Series())

	cards.SetFilter(CardFilter{Series: "Egito"})
	assert.Len(t, cards.Visible(), 2)
	cards.SetFilter(CardFilter{OnlyOwned: true})
	assert.Len(t, cards.Visible(), 2)
	cards.SetFilter(CardFilter{Search: "guardi"})
	require.Len(t, cards.Visible(), 1)
	assert.Equal(t, 3, cards.Visible()[0].ID)

	pc, ok := cards.Owned(1)
	require.True(t, ok)
	assert.Equal(t, 3, pc.Quantity)

	st := cards.Stats()
	assert.Equal(t, 4, st.Total)
	assert.Equal(t, 2, st.Owned)
	assert.InDelta(t, 50.0, st.Completion, 1e-9)
	require.Len(t, st.ByRarity, 5)
	assert.Equal(t, RarityStat{Rarity: domain.RarityCommon, Total: 2, Owned: 1, Percentage: 50}, st.ByRarity[0])
	assert.Equal(t, RarityStat{Rarity: domain.RarityMythic}, st.ByRarity[4])
}

func TestMining_StartStop(t *testing.T) {
	h := newHarness(t, domain.Player{WalletBalance: "1"})
	h.srv.SetMiningStats(domain.MiningStats{TotalSessions: 9, TotalMined: "0"})
	m := NewMining(h.env)
	ctx := context.Background()

	require.NoError(t, m.Load(ctx))
	assert.False(t, m.Status().IsMining)
	assert.Equal(t, 1, m.Level())
	assert.Zero(t, m.Remaining())

	require.NoError(t, m.Start(ctx))
	assert.True(t, m.Status().IsMining)
	assert.InDelta(t, 3600, m.Remaining(), 2)
	assert.Equal(t, 1, h.pushes())

	require.NoError(t, m.Stop(ctx))
	assert.False(t, m.Status().IsMining)
	assert.Equal(t, []string{"Mineração concluída! Você ganhou 0.0000000000000000000000000000000000101 DOOF"}, h.alerts.Messages())
	assert.Equal(t, 10, m.Stats().TotalSessions, "statistics are re-fetched after stop")
	assert.Equal(t, 2, m.Level())
	assert.Equal(t, domain.Decimal("1.0000000000000000000000000000000000101"), h.player().WalletBalance)
}

func TestMining_LoadKeepsSessionWhenStatisticsFail(t *testing.T) {
	h := newHarness(t, domain.Player{})
	now := time.Now()
	h.srv.SetMining(domain.MiningSession{
		IsMining:        true,
		StartTime:       domain.NewTimestamp(now),
		EndTime:         domain.NewTimestamp(now.Add(time.Hour)),
		DurationMinutes: 60,
	})
	h.srv.Fail(http.MethodGet, client.RouteMiningStats, http.StatusInternalServerError, "boom")
	m := NewMining(h.env)

	require.Error(t, m.Load(context.Background()))

	assert.Equal(t, "boom", m.Banner())
	require.NotNil(t, m.Status())
	assert.True(t, m.Status().IsMining)
	assert.InDelta(t, 3600, m.Remaining(), 2)
	assert.Nil(t, m.Stats())

	h.srv.ClearFailures()
	require.NoError(t, m.Load(context.Background()))
	assert.Empty(t, m.Banner())
	assert.NotNil(t, m.Stats())
}

func TestMining_StartFailure(t *testing.T) {
	h := newHarness(t, domain.Player{})
	h.srv.SetMining(domain.MiningSession{IsMining: true, DurationMinutes: 60})
	m := NewMining(h.env)

	err := m.Start(context.Background())

	require.Error(t, err)
	assert.Equal(t, []string{"Erro: Mineração já está ativa"}, h.alerts.Messages())
}

func TestMining_WatchRefreshesOnExpiry(t *testing.T) {
	h := newHarness(t, domain.Player{})
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	h.srv.SetMining(domain.MiningSession{
		IsMining:        true,
		StartTime:       domain.NewTimestamp(now.Add(-time.Hour)),
		EndTime:         domain.NewTimestamp(now),
		DurationMinutes: 60,
	})
	m := NewMining(h.env, mining.WithClock(func() time.Time { return now }), mining.WithInterval(time.Millisecond))
	ctx := context.Background()
	require.NoError(t, m.Load(ctx))
	h.srv.SetMining(domain.MiningSession{DurationMinutes: 60})

	var ticks []int
	require.NoError(t, m.Watch(ctx, func(remaining int) { ticks = append(ticks, remaining) }))

	assert.Equal(t, []int{0}, ticks)
	assert.False(t, m.Status().IsMining)
	assert.Len(t, h.srv.RequestsTo(http.MethodGet, "/api/mining/status"), 2)
}

func TestLeaderboard_LoadAndRank(t *testing.T) {
	h := newHarness(t, domain.Player{})
	h.srv.SetLeaderboard(domain.LeaderboardLevel,
		domain.LeaderboardEntry{Username: "trinity", Level: 9},
		domain.LeaderboardEntry{Username: "neo", Level: 7},
	)
	h.srv.SetLeaderboard(domain.LeaderboardMonsters, domain.LeaderboardEntry{Username: "neo", MonstersKilled: 500})
	lb := NewLeaderboard(h.env)

	require.NoError(t, lb.Load(context.Background()))

	for _, c := range domain.LeaderboardCategories {
		reqs := h.srv.RequestsTo(http.MethodGet, "/api/level/leaderboard/"+string(c))
		require.Len(t, reqs, 1, c)
		assert.Equal(t, "50", reqs[0].Query.Get(client.ParamLimit))
	}
	assert.Equal(t, 2, lb.Rank(domain.LeaderboardLevel))
	assert.Equal(t, 1, lb.Rank(domain.LeaderboardMonsters))
	assert.Equal(t, 0, lb.Rank(domain.LeaderboardPlayersKilled))
	assert.NotNil(t, lb.Entries(domain.LeaderboardPlayersKilled))
	assert.Equal(t, domain.LeaderboardLevel, lb.Active())
}

func TestLeaderboard_FailureKeepsBoards(t *testing.T) {
	h := newHarness(t, domain.Player{})
	h.srv.SetLeaderboard(domain.LeaderboardLevel, domain.LeaderboardEntry{Username: "neo"})
	lb := NewLeaderboard(h.env)
	ctx := context.Background()
	require.NoError(t, lb.Load(ctx))

	h.srv.Fail(http.MethodGet, "/api/level/leaderboard/monsters", http.StatusInternalServerError, "")
	require.Error(t, lb.Load(ctx))

	assert.Equal(t, "HTTP error! status: 500", lb.Banner())
	assert.Len(t, lb.Entries(domain.LeaderboardLevel), 1)
}

func TestLeaderboard_PartialFailureReplacesOthers(t *testing.T) {
	h := newHarness(t, domain.Player{})
	h.srv.SetLeaderboard(domain.LeaderboardLevel, domain.LeaderboardEntry{Username: "neo"})
	h.srv.Fail(http.MethodGet, "/api/level/leaderboard/monsters", http.StatusInternalServerError, "")
	lb := NewLeaderboard(h.env)

	require.Error(t, lb.Load(context.Background()))

	assert.Equal(t, 1, lb.Rank(domain.LeaderboardLevel))
	assert.NotNil(t, lb.Entries(domain.LeaderboardPlayersKilled))
	assert.Empty(t, lb.Entries(domain.LeaderboardMonsters))
}

func TestProfile_PasswordMismatch(t *testing.T) {
	h := newHarness(t, domain.Player{})
	p := NewProfile(h.env)
	p.StartEdit()
	p.EditForm(func(f *ProfileForm) {
		f.CurrentPassword = "old"
		f.NewPassword = "segredo1"
		f.ConfirmPassword = "segredo2"
	})

	err := p.Save(context.Background())

	assert.ErrorIs(t, err, domain.ErrPasswordMismatch)
	assert.Empty(t, h.srv.RequestsTo(http.MethodPut, "/api/profile/update"))
	assert.Equal(t, []string{"As senhas não coincidem!"}, h.alerts.Messages())
	assert.True(t, p.Editing())
}

func TestProfile_SaveClearsPasswords(t *testing.T) {
	h := newHarness(t, domain.Player{})
	h.srv.SetProfileStats(domain.ProfileStats{ItemsCollected: 4})
	p := NewProfile(h.env)
	ctx := context.Background()
	require.NoError(t, p.Load(ctx))
	assert.Equal(t, 4, p.Stats().ItemsCollected)

	p.StartEdit()
	assert.Equal(t, "neo", p.Form().Username)
	p.EditForm(func(f *ProfileForm) {
		f.Username = "neo2"
		f.CurrentPassword = "old"
		f.NewPassword = "segredo"
		f.ConfirmPassword = "segredo"
	})
	require.NoError(t, p.Save(ctx))

	reqs := h.srv.RequestsTo(http.MethodPut, "/api/profile/update")
	require.Len(t, reqs, 1)
	assert.JSONEq(t, `{"username":"neo2","email":"neo@doofi.test","current_password":"old","new_password":"segredo"}`, string(reqs[0].Body))
	assert.Equal(t, "neo2", h.player().Username)
	assert.False(t, p.Editing())
	assert.Empty(t, p.Form().NewPassword)
	assert.Empty(t, p.Form().ConfirmPassword)
	assert.Equal(t, []string{"Perfil atualizado com sucesso!"}, h.alerts.Messages())
}

func TestProfile_NoPasswordOmitsFields(t *testing.T) {
	h := newHarness(t, domain.Player{})
	p := NewProfile(h.env)
	p.StartEdit()
	p.EditForm(func(f *ProfileForm) { f.CurrentPassword = "typed but unused" })

	require.NoError(t, p.Save(context.Background()))

	reqs := h.srv.RequestsTo(http.MethodPut, "/api/profile/update")
	require.Len(t, reqs, 1)
	assert.JSONEq(t, `{"username":"neo","email":"neo@doofi.test"}`, string(reqs[0].Body))
}

func TestProfile_CancelRestoresPlayer(t *testing.T) {
	h := newHarness(t, domain.Player{})
	p := NewProfile(h.env)
	p.StartEdit()
	p.EditForm(func(f *ProfileForm) { f.Username = "zzz" })

	p.Cancel()

	assert.False(t, p.Editing())
	assert.Equal(t, ProfileForm{Username: "neo", Email: "neo@doofi.test"}, p.Form())
}

func TestPanels_SharedEnv(t *testing.T) {
	h := newHarness(t, domain.Player{})
	all := NewPanels(h.env)
	require.NotNil(t, all.Mining)
	require.NoError(t, all.Inventory.Load(context.Background()))
	assert.Empty(t, all.Inventory.Entries())
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
