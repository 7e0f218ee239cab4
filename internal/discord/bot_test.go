package discord

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dooficoin/doofigame/internal/domain"
	"github.com/dooficoin/doofigame/internal/game"
)

func TestDispatch_RequiresLogin(t *testing.T) {
	tb := newTestBot(t)

	edit := tb.dispatch(t, command("u1", "inventory"))

	assert.Contains(t, edit.Content, MsgLoginFirst)
	assert.Empty(t, tb.srv.Requests())
	assert.Len(t, tb.callbacks(), 1, "interaction deferred once")
}

func TestDispatch_LoginThenArena(t *testing.T) {
	tb := newTestBot(t)
	p, _ := tb.srv.Login("neo", false)

	edit := tb.dispatch(t, command("u1", "login", strOpt("conta", "neo")))
	assert.Contains(t, edit.Content, "Bem-vindo, **neo**")

	edit = tb.dispatch(t, command("u1", "arena", strOpt("acao", arenaKill)))
	assert.Len(t, tb.srv.RequestsTo(http.MethodPost, fmt.Sprintf("/api/game/player/%d/kill-monster", p.ID)), 1)
	require.Len(t, edit.Embeds, 1)
	assert.Equal(t, "⚔️ Arena - Fase 1", edit.Embeds[0].Title)
	assert.Contains(t, edit.text(), "Monstros mortos: 1")
}

func TestDispatch_BackendFailureShownOnce(t *testing.T) {
	tb := newTestBot(t)
	p, _ := tb.srv.Login("neo", false)
	tb.srv.Fail(http.MethodPost, fmt.Sprintf("/api/game/player/%d/die", p.ID), http.StatusInternalServerError, "boom")

	tb.dispatch(t, command("u1", "login", strOpt("conta", "neo")))
	edit := tb.dispatch(t, command("u1", "arena", strOpt("acao", arenaDie)))

	assert.Equal(t, "Erro: boom", edit.Content)
	assert.Empty(t, edit.Embeds)
}

func TestSessions_IsolatedPerUser(t *testing.T) {
	tb := newTestBot(t)
	tb.srv.Login("neo", false)

	tb.dispatch(t, command("u1", "login", strOpt("conta", "neo")))
	edit := tb.dispatch(t, command("u2", "profile"))

	assert.Contains(t, edit.Content, MsgLoginFirst)
	assert.Equal(t, 2, tb.bot.Sessions.Len())
}

func TestSessions_TokenRestoredAfterEviction(t *testing.T) {
	tb := newTestBot(t)
	tb.srv.Login("neo", false)

	tb.dispatch(t, command("u1", "login", strOpt("conta", "neo")))
	tb.bot.Sessions.Purge()
	require.Zero(t, tb.bot.Sessions.Len())

	edit := tb.dispatch(t, command("u1", "profile"))
	require.Len(t, edit.Embeds, 1)
	assert.Equal(t, "👤 neo", edit.Embeds[0].Title)

	edit = tb.dispatch(t, command("u1", "logout"))
	assert.Equal(t, MsgLoggedOut, edit.Content)
	tb.bot.Sessions.Purge()
	edit = tb.dispatch(t, command("u1", "profile"))
	assert.Contains(t, edit.Content, MsgLoginFirst)
}

func TestSell_OnlyFromConfirmButton(t *testing.T) {
	tb := newTestBot(t)
	tb.srv.Login("neo", false)
	tb.srv.SetInventory(domain.InventoryEntry{
		ID:       7,
		Quantity: 1,
		Item:     domain.Item{ID: 3, Name: "Espada", ItemType: domain.ItemTypeWeapon, Rarity: domain.RarityCommon, CurrentPrice: "2.5", IsSellable: true},
	})
	tb.dispatch(t, command("u1", "login", strOpt("conta", "neo")))

	edit := tb.dispatch(t, command("u1", "sell", intOpt("id", 7)))
	assert.Contains(t, edit.Content, game.SellPrompt)
	confirm, ok := edit.button(LabelConfirm)
	require.True(t, ok)
	assert.Equal(t, "confirm:sell:7", confirm.CustomID)
	_, ok = edit.button(LabelCancel)
	assert.True(t, ok)
	assert.Empty(t, tb.srv.RequestsTo(http.MethodPost, "/api/inventory/7/sell"))

	edit = tb.dispatch(t, click("u1", kindCancel))
	assert.Equal(t, MsgCancelled, edit.Content)
	assert.Empty(t, edit.buttons())
	assert.Empty(t, tb.srv.RequestsTo(http.MethodPost, "/api/inventory/7/sell"))

	edit = tb.dispatch(t, click("u1", confirm.CustomID))
	assert.Len(t, tb.srv.RequestsTo(http.MethodPost, "/api/inventory/7/sell"), 1)
	assert.Contains(t, edit.Content, "Item vendido por 2.5 DOOF!")
	assert.Contains(t, edit.Content, "Saldo: 2.500000 DOOF")
}

func TestAdminList_PaginationButtons(t *testing.T) {
	tb := newTestBot(t)
	tb.srv.Login("root", true)
	tb.srv.Seed("items",
		map[string]any{"id": 1, "name": "Espada"},
		map[string]any{"id": 2, "name": "Escudo"},
		map[string]any{"id": 3, "name": "Elmo"},
	)
	tb.dispatch(t, command("u1", "login", strOpt("conta", "root")))

	edit := tb.dispatch(t, command("u1", "admin-list", strOpt("recurso", "items")))
	assert.Contains(t, edit.text(), "Espada")
	assert.Contains(t, edit.text(), "Página: 1 de 2")
	prev, _ := edit.button(LabelPrev)
	next, _ := edit.button(LabelNext)
	assert.True(t, prev.Disabled)
	assert.False(t, next.Disabled)

	edit = tb.dispatch(t, click("u1", next.CustomID))
	assert.Contains(t, edit.text(), "Elmo")
	assert.Contains(t, edit.text(), "Página: 2 de 2")
	prev, _ = edit.button(LabelPrev)
	next, _ = edit.button(LabelNext)
	assert.False(t, prev.Disabled)
	assert.True(t, next.Disabled)
}

func TestAdminDelete_OnlyFromConfirmButton(t *testing.T) {
	tb := newTestBot(t)
	tb.srv.Login("root", true)
	tb.srv.Seed("items",
		map[string]any{"id": 1, "name": "Espada"},
		map[string]any{"id": 2, "name": "Escudo"},
		map[string]any{"id": 3, "name": "Elmo"},
	)
	tb.dispatch(t, command("u1", "login", strOpt("conta", "root")))

	edit := tb.dispatch(t, command("u1", "admin-delete", strOpt("recurso", "items"), intOpt("id", 3)))
	assert.Contains(t, edit.Content, "Tem certeza que deseja deletar este item?")
	assert.Empty(t, tb.srv.RequestsTo(http.MethodDelete, "/api/admin/items/3"))

	confirm, ok := edit.button(LabelConfirm)
	require.True(t, ok)
	edit = tb.dispatch(t, click("u1", confirm.CustomID))

	assert.Len(t, tb.srv.RequestsTo(http.MethodDelete, "/api/admin/items/3"), 1)
	assert.Len(t, tb.srv.Rows("items"), 2)
	assert.Contains(t, edit.Content, "Item deletado com sucesso!")
	assert.Contains(t, edit.text(), "Registros: 2")
}

func TestAdmin_DeniedToPlayers(t *testing.T) {
	tb := newTestBot(t)
	tb.srv.Login("neo", false)
	tb.dispatch(t, command("u1", "login", strOpt("conta", "neo")))

	edit := tb.dispatch(t, command("u1", "admin-dashboard"))
	assert.Equal(t, MsgNotAdmin, edit.Content)

	edit = tb.dispatch(t, click("u1", "confirm:delete:items:1"))
	assert.Equal(t, MsgNotAdmin, edit.Content)
	assert.Empty(t, tb.srv.RequestsTo(http.MethodDelete, "/api/admin/items/1"))
}

func TestAdminDashboard(t *testing.T) {
	tb := newTestBot(t)
	tb.srv.Login("root", true)
	tb.srv.SetDashboard(domain.DashboardStats{TotalUsers: 12, ActiveUsers: 9, TotalDooficoinMined: "0"})
	tb.dispatch(t, command("u1", "login", strOpt("conta", "root")))

	edit := tb.dispatch(t, command("u1", "admin-dashboard"))
	assert.Contains(t, edit.text(), "Usuários: 12 (9 ativos)")
}

func TestAdminBan_Confirmed(t *testing.T) {
	tb := newTestBot(t)
	tb.srv.Login("root", true)
	tb.dispatch(t, command("u1", "login", strOpt("conta", "root")))

	edit := tb.dispatch(t, command("u1", "admin-ban", intOpt("id", 1)))
	confirm, ok := edit.button(LabelConfirm)
	require.True(t, ok)
	assert.Equal(t, "confirm:ban:1", confirm.CustomID)

	edit = tb.dispatch(t, command("u1", "admin-ban", intOpt("id", 1), boolOpt("desbanir", true)))
	confirm, _ = edit.button(LabelConfirm)
	assert.Equal(t, "confirm:unban:1", confirm.CustomID)
}

func TestDispatch_RecordsCommands(t *testing.T) {
	tb := newTestBot(t)

	tb.dispatch(t, command("u1", "mining"))
	tb.dispatch(t, click("u1", kindCancel))

	assert.Equal(t, int64(2), tb.bot.recorder.Commands())
}

func TestMining_StatisticsFailureKeepsSession(t *testing.T) {
	tb := newTestBot(t)
	tb.srv.Login("neo", false)
	now := time.Now()
	tb.srv.SetMining(domain.MiningSession{
		IsMining:        true,
		StartTime:       domain.NewTimestamp(now),
		EndTime:         domain.NewTimestamp(now.Add(time.Hour)),
		DurationMinutes: 60,
	})
	tb.srv.Fail(http.MethodGet, "/api/mining/statistics", http.StatusInternalServerError, "boom")

	tb.dispatch(t, command("u1", "login", strOpt("conta", "neo")))
	edit := tb.dispatch(t, command("u1", "mining"))

	assert.Contains(t, edit.Content, "⚠️ boom")
	require.Len(t, edit.Embeds, 1)
	assert.Contains(t, edit.Embeds[0].Description, "Minerando, faltam")
	assert.NotContains(t, edit.text(), "Sessões")
}
