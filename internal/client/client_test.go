package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dooficoin/doofigame/internal/domain"
	"github.com/dooficoin/doofigame/internal/logger"
	"github.com/dooficoin/doofigame/internal/testing/fakeapi"
)

const tinyReward = "0.00000000000000000000000000000000101"

func setup(t *testing.T, admin bool) (*fakeapi.Server, *Client, domain.Player) {
	t.Helper()
	srv := fakeapi.New()
	t.Cleanup(srv.Close)
	player, token := srv.Login("neo", admin)
	return srv, New(srv.URL, WithToken(token)), player
}

func TestDo_Headers(t *testing.T) {
	srv, c, _ := setup(t, false)
	ctx := logger.WithRequestID(context.Background(), "req-42")

	_, err := c.GetProfile(ctx)
	require.NoError(t, err)

	req := srv.LastRequest()
	assert.Equal(t, "/api/profile", req.Path)
	assert.Equal(t, "Bearer "+c.Token(), req.Auth)
	assert.Equal(t, "req-42", req.RequestID)
}

func TestDo_AnonymousRoutesSkipToken(t *testing.T) {
	srv, c, player := setup(t, false)

	_, err := c.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, srv.LastRequest().Auth)

	_, err = c.GetPlayer(context.Background(), player.UserID)
	require.NoError(t, err)
	assert.Empty(t, srv.LastRequest().Auth)
	assert.NotEmpty(t, srv.LastRequest().RequestID, "request id is generated when missing")
}

func TestDo_ErrorPayload(t *testing.T) {
	srv, c, _ := setup(t, false)
	srv.Fail(http.MethodPost, "/api/mining/start", http.StatusBadRequest, "Mineração já está ativa")

	_, err := c.StartMining(context.Background())

	require.Error(t, err)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Mineração já está ativa", apiErr.Message)
	assert.Equal(t, "/api/mining/start", apiErr.Path)
}

func TestDo_GenericStatusMessage(t *testing.T) {
	srv, c, _ := setup(t, false)
	srv.Fail(http.MethodGet, "/api/inventory", http.StatusInternalServerError, "")

	_, err := c.GetInventory(context.Background())

	require.Error(t, err)
	assert.Equal(t, "HTTP error! status: 500", err.Error())
	assert.Len(t, srv.RequestsTo(http.MethodGet, "/api/inventory"), 1, "failures are never retried")
}

func TestDo_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url).ListUsers(context.Background())

	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
	assert.Contains(t, err.Error(), "/api/users")
}

func TestIsUnauthorized(t *testing.T) {
	_, c, _ := setup(t, false)
	c.SetToken("bogus")

	_, err := c.GetProfile(context.Background())

	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, "Token inválido", err.Error())
	assert.False(t, IsNotFound(err))
}

func TestCreateResource_DecimalBytesUnchanged(t *testing.T) {
	srv, c, _ := setup(t, true)

	type monsterForm struct {
		Name            string         `json:"name"`
		DooficoinReward domain.Decimal `json:"dooficoin_reward"`
	}
	created, err := CreateResource[domain.Monster](context.Background(), c, ResourceMonsters, monsterForm{
		Name:            "Zumbi",
		DooficoinReward: tinyReward,
	})

	require.NoError(t, err)
	body := string(srv.LastRequest().Body)
	assert.Contains(t, body, `"dooficoin_reward":"`+tinyReward+`"`)
	assert.Equal(t, domain.Decimal(tinyReward), created.DooficoinReward)
	assert.NotZero(t, created.ID)
}

func TestListResource_Pagination(t *testing.T) {
	srv, c, _ := setup(t, true)
	for _, name := range []string{"Espada", "Escudo", "Elmo"} {
		srv.Seed("items", map[string]any{"name": name, "item_type": "weapon", "rarity": "common"})
	}

	page, err := ListResource[domain.Item](context.Background(), c, ResourceItems, ListParams{
		Page:    2,
		PerPage: 2,
		Filters: map[string]string{ParamName: ""},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, 3, page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Elmo", page.Items[0].Name)

	q := srv.LastRequest().Query
	assert.Equal(t, "2", q.Get(ParamPage))
	assert.Equal(t, "2", q.Get(ParamPerPage))
	assert.True(t, q.Has(ParamName))
}

func TestListResource_EmptyClampsTotalPages(t *testing.T) {
	_, c, _ := setup(t, true)

	page, err := ListResource[domain.CollectibleCard](context.Background(), c, ResourceCards, ListParams{Page: 1, PerPage: 10})

	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.NotNil(t, page.Items)
	assert.Equal(t, 1, page.TotalPages)
}

func TestGetAdSenseConfig_NotFoundIsNil(t *testing.T) {
	srv, c, _ := setup(t, true)

	cfg, err := c.GetAdSenseConfig(context.Background())
	require.NoError(t, err)
	assert.Nil(t, cfg)

	srv.SetAdSense(&domain.AdSenseConfig{ClientID: "ca-pub-1", AdDisplayIntervalMinutes: 10})
	cfg, err = c.GetAdSenseConfig(context.Background())
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "ca-pub-1", cfg.ClientID)
}

func TestListSecurityLogs_AllTypeSendsEmpty(t *testing.T) {
	srv, c, _ := setup(t, true)
	srv.SetSecurityLogs(
		domain.SecurityLog{ID: 1, LogType: domain.SecurityLogFraud, Message: "click fraud"},
		domain.SecurityLog{ID: 2, LogType: domain.SecurityLogLoginAttempt, Message: "bad login"},
	)

	page, err := c.ListSecurityLogs(context.Background(), 1, 10, SecurityLogFilter{Type: domain.SecurityLogAll})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	q := srv.LastRequest().Query
	assert.True(t, q.Has(ParamType))
	assert.Empty(t, q.Get(ParamType))

	page, err = c.ListSecurityLogs(context.Background(), 1, 10, SecurityLogFilter{Type: domain.SecurityLogFraud, Search: "click"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "fraud", srv.LastRequest().Query.Get(ParamType))
	assert.Equal(t, "click", srv.LastRequest().Query.Get(ParamSearch))
}

func TestGetLeaderboard(t *testing.T) {
	srv, c, _ := setup(t, false)
	srv.SetLeaderboard(domain.LeaderboardMonsters,
		domain.LeaderboardEntry{Username: "trinity", MonstersKilled: 90},
		domain.LeaderboardEntry{Username: "neo", MonstersKilled: 40},
	)

	entries, err := c.GetLeaderboard(context.Background(), domain.LeaderboardMonsters, LeaderboardLimit)

	require.NoError(t, err)
	require.Len(t, entries, 2)
	req := srv.LastRequest()
	assert.Equal(t, "/api/level/leaderboard/monsters", req.Path)
	assert.Equal(t, "50", req.Query.Get(ParamLimit))
}

func TestMiningStop_Reward(t *testing.T) {
	srv, c, _ := setup(t, false)
	srv.SetMining(domain.MiningSession{DurationMinutes: 1, EstimatedReward: tinyReward})

	_, err := c.StartMining(context.Background())
	require.NoError(t, err)
	resp, err := c.StopMining(context.Background())

	require.NoError(t, err)
	require.NotNil(t, resp.Reward)
	assert.Equal(t, domain.Decimal(tinyReward), resp.Reward.Amount)
	assert.False(t, resp.Session.IsMining)
	assert.Equal(t, domain.Decimal(tinyReward), resp.Player.WalletBalance)
}

func TestPlayerGrant(t *testing.T) {
	srv, c, _ := setup(t, true)
	srv.Seed("players", map[string]any{"id": 7, "username": "morpheus"})

	resp, err := c.GivePlayerItem(context.Background(), 7, 3, 2)

	require.NoError(t, err)
	assert.Contains(t, resp.Message, "give-item")
	req := srv.LastRequest()
	assert.Equal(t, "/api/admin/players/7/give-item", req.Path)
	assert.JSONEq(t, `{"item_id":3,"quantity":2}`, string(req.Body))
}

func TestNew_TrimsTrailingSlash(t *testing.T) {
	c := New("http://example.test/")
	assert.False(t, strings.HasSuffix(c.BaseURL, "/"))

	forked := c.Fork("abc")
	assert.Equal(t, "abc", forked.Token())
	assert.Empty(t, c.Token())
	assert.Same(t, c.HTTP, forked.HTTP)
}

func TestPing(t *testing.T) {
	srv, c, _ := setup(t, false)
	require.NoError(t, c.Ping(context.Background()))

	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer down.Close()
	err := New(down.URL).Ping(context.Background())
	assert.True(t, IsStatus(err, http.StatusBadGateway))

	srv.Close()
	assert.Error(t, c.Ping(context.Background()))
}
