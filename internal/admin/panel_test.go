package admin

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dooficoin/doofigame/internal/client"
	"github.com/dooficoin/doofigame/internal/domain"
	"github.com/dooficoin/doofigame/internal/panel"
	"github.com/dooficoin/doofigame/internal/testing/fakeapi"
)

const tinyReward = "0.00000000000000000000000000000000101"

type harness struct {
	srv     *fakeapi.Server
	api     *client.Client
	alerts  *panel.Collector
	answer  bool
	prompts []string
	ui      panel.UI
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	srv := fakeapi.New()
	t.Cleanup(srv.Close)
	_, token := srv.Login("root", true)

	h := &harness{
		srv:    srv,
		api:    client.New(srv.URL, client.WithToken(token)),
		alerts: &panel.Collector{},
	}
	h.ui = panel.UI{
		Alerter: h.alerts,
		Confirmer: panel.ConfirmFunc(func(_ context.Context, prompt string) bool {
			h.prompts = append(h.prompts, prompt)
			return h.answer
		}),
	}
	return h
}

func (h *harness) seedItems(names ...string) {
	for _, name := range names {
		h.srv.Seed("items", map[string]any{
			"name": name, "item_type": "weapon", "rarity": "common", "current_price": "1.5",
			"required_level": 1, "required_phase": 1, "max_stack": 1, "drop_rate": 0.1,
		})
	}
}

func TestPanel_LoadAndPaginate(t *testing.T) {
	h := newHarness(t)
	h.seedItems("Espada", "Escudo", "Elmo")
	p := NewPanel(h.api, ItemsSchema, h.ui, 2)
	ctx := context.Background()

	require.NoError(t, p.Load(ctx))
	page, total, canPrev, canNext := p.Page()
	assert.Equal(t, 1, page)
	assert.Equal(t, 2, total)
	assert.False(t, canPrev)
	assert.True(t, canNext)
	assert.Len(t, p.Rows(), 2)
	assert.Equal(t, 3, p.Total())

	require.NoError(t, p.NextPage(ctx))
	_, _, canPrev, canNext = p.Page()
	assert.True(t, canPrev)
	assert.False(t, canNext)
	require.Len(t, p.Rows(), 1)
	assert.Equal(t, "Elmo", p.Rows()[0].Name)

	h.srv.ResetRequests()
	require.NoError(t, p.NextPage(ctx))
	assert.Empty(t, h.srv.Requests(), "next on the last page is a no-op")

	require.NoError(t, p.SetFilter(ctx, "esc"))
	page, _, _, _ = p.Page()
	assert.Equal(t, 1, page, "filter change returns to page 1")
	q := h.srv.LastRequest().Query
	assert.Equal(t, "1", q.Get(client.ParamPage))
	assert.Equal(t, "esc", q.Get(client.ParamName))
	require.Len(t, p.Rows(), 1)
	assert.Equal(t, "Escudo", p.Rows()[0].Name)
}

func TestPanel_LoadFailureKeepsRows(t *testing.T) {
	h := newHarness(t)
	h.seedItems("Espada")
	p := NewPanel(h.api, ItemsSchema, h.ui, 10)
	require.NoError(t, p.Load(context.Background()))

	h.srv.Fail(http.MethodGet, "/api/admin/items", http.StatusInternalServerError, "")
	err := p.Load(context.Background())

	require.Error(t, err)
	assert.Equal(t, "HTTP error! status: 500", p.Banner())
	assert.Len(t, p.Rows(), 1)
}

func TestPanel_CreateSendsDecimalVerbatim(t *testing.T) {
	h := newHarness(t)
	p := NewPanel(h.api, MonstersSchema, h.ui, 10)
	ctx := context.Background()

	require.NoError(t, p.StartCreate())
	require.NoError(t, p.SetField("name", "Zumbi"))
	require.NoError(t, p.SetField("dooficoin_reward", tinyReward))
	require.NoError(t, p.Save(ctx))

	posts := h.srv.RequestsTo(http.MethodPost, "/api/admin/monsters")
	require.Len(t, posts, 1)
	assert.Contains(t, string(posts[0].Body), `"dooficoin_reward":"`+tinyReward+`"`)
	assert.Equal(t, []string{"Monstro criado com sucesso!"}, h.alerts.Messages())
	assert.False(t, p.Active())
	assert.Equal(t, DefaultMonsterForm(), p.Form())
	require.Len(t, p.Rows(), 1)
	assert.Equal(t, domain.Decimal(tinyReward), p.Rows()[0].DooficoinReward)
}

func TestPanel_SaveKeepsCurrentPage(t *testing.T) {
	h := newHarness(t)
	h.seedItems("Espada", "Escudo", "Elmo")
	p := NewPanel(h.api, ItemsSchema, h.ui, 2)
	ctx := context.Background()
	require.NoError(t, p.Load(ctx))
	require.NoError(t, p.NextPage(ctx))

	id := p.Rows()[0].ID
	require.NoError(t, p.StartEditID(id))
	assert.Equal(t, "Elmo", p.Form().Name)
	p.EditForm(func(f *ItemForm) { f.Name = "Elmo Dourado" })
	require.NoError(t, p.Save(ctx))

	puts := h.srv.RequestsTo(http.MethodPut, "/api/admin/items/"+itoa(id))
	require.Len(t, puts, 1)
	assert.Contains(t, string(puts[0].Body), `"attributes":{}`)
	assert.Equal(t, "2", h.srv.LastRequest().Query.Get(client.ParamPage))
	page, _, _, _ := p.Page()
	assert.Equal(t, 2, page)
	assert.Equal(t, "Item atualizado com sucesso!", h.alerts.Messages()[0])
}

func TestPanel_InvalidFormNoRequest(t *testing.T) {
	h := newHarness(t)
	p := NewPanel(h.api, CardsSchema, h.ui, 10)

	require.NoError(t, p.StartCreate())
	err := p.Save(context.Background())

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, h.srv.RequestsTo(http.MethodPost, "/api/admin/cards"))
	assert.True(t, p.Active(), "form stays open after a failure")
	require.Len(t, h.alerts.Messages(), 1)
	assert.Contains(t, h.alerts.Messages()[0], "Erro ao criar carta")
}

func TestPanel_BackendErrorKeepsForm(t *testing.T) {
	h := newHarness(t)
	h.srv.Fail(http.MethodPost, "/api/admin/items", http.StatusBadRequest, "Missing or invalid field: 'rarity'")
	p := NewPanel(h.api, ItemsSchema, h.ui, 10)

	require.NoError(t, p.StartCreate())
	require.NoError(t, p.SetField("name", "Arco"))
	err := p.Save(context.Background())

	require.Error(t, err)
	assert.Equal(t, "Arco", p.Form().Name)
	assert.Equal(t, []string{"Erro ao criar item: Missing or invalid field: 'rarity'"}, h.alerts.Messages())
	assert.Equal(t, "Missing or invalid field: 'rarity'", p.Banner())
}

func TestPanel_InvalidAttributesJSON(t *testing.T) {
	h := newHarness(t)
	p := NewPanel(h.api, ItemsSchema, h.ui, 10)

	require.NoError(t, p.StartCreate())
	require.NoError(t, p.SetField("name", "Arco"))
	require.NoError(t, p.SetField("attributes", "{not json"))

	assert.ErrorIs(t, p.Save(context.Background()), domain.ErrInvalidInput)
	assert.Empty(t, h.srv.RequestsTo(http.MethodPost, "/api/admin/items"))
}

func TestPanel_CancelResetsToDefaults(t *testing.T) {
	h := newHarness(t)
	h.seedItems("Espada")
	p := NewPanel(h.api, ItemsSchema, h.ui, 10)
	require.NoError(t, p.Load(context.Background()))

	require.NoError(t, p.StartEditID(p.Rows()[0].ID))
	assert.Equal(t, "Espada", p.Form().Name)
	p.Cancel()

	assert.False(t, p.Active())
	assert.Equal(t, DefaultItemForm(), p.Form())
	assert.ErrorIs(t, p.SetField("name", "x"), domain.ErrInvalidInput, "no form open")
}

func TestPanel_DeleteRequiresConfirmation(t *testing.T) {
	h := newHarness(t)
	h.seedItems("Espada", "Escudo")
	p := NewPanel(h.api, ItemsSchema, h.ui, 10)
	ctx := context.Background()
	require.NoError(t, p.Load(ctx))
	id := p.Rows()[0].ID
	path := "/api/admin/items/" + itoa(id)

	h.answer = false
	assert.ErrorIs(t, p.Delete(ctx, id), domain.ErrCancelled)
	assert.Empty(t, h.srv.RequestsTo(http.MethodDelete, path))
	assert.Equal(t, []string{"Tem certeza que deseja deletar este item?"}, h.prompts)

	h.answer = true
	require.NoError(t, p.Delete(ctx, id))
	assert.Len(t, h.srv.RequestsTo(http.MethodDelete, path), 1)
	assert.Len(t, p.Rows(), 1)
	assert.Equal(t, []string{"Item deletado com sucesso!"}, h.alerts.Messages())
}

func TestPanel_FeminineMessages(t *testing.T) {
	n := CardsSchema.Noun
	assert.Equal(t, "Carta criada com sucesso!", n.SavedMessage(true))
	assert.Equal(t, "Carta atualizada com sucesso!", n.SavedMessage(false))
	assert.Equal(t, "Tem certeza que deseja deletar esta carta?", n.DeletePrompt())
	assert.Equal(t, "Carta deletada com sucesso!", n.DeletedMessage())
	assert.Equal(t, "Cenário criado com sucesso!", ScenariosSchema.Noun.SavedMessage(true))
}

func TestPanel_BusyGuardBlocksDoubleSubmit(t *testing.T) {
	h := newHarness(t)
	var p *Panel[domain.Item, ItemForm]
	var nested error
	ui := panel.UI{Alerter: panel.AlertFunc(func(ctx context.Context, _ string) {
		if nested == nil {
			nested = p.Save(ctx)
		}
	})}
	p = NewPanel(h.api, ItemsSchema, ui, 10)

	require.NoError(t, p.StartCreate())
	require.NoError(t, p.SetField("name", "Arco"))
	require.NoError(t, p.Save(context.Background()))

	assert.ErrorIs(t, nested, domain.ErrBusy)
	assert.Len(t, h.srv.RequestsTo(http.MethodPost, "/api/admin/items"), 1)
}

func TestSetField_Types(t *testing.T) {
	form := DefaultShopItemForm()

	require.NoError(t, setFormField(&form, "item_id", "12"))
	require.NoError(t, setFormField(&form, "price", tinyReward))
	require.NoError(t, setFormField(&form, "is_featured", "sim"))
	require.NoError(t, setFormField(&form, "discount_percentage", "12.5"))
	require.NoError(t, setFormField(&form, "stock_quantity", "3"))

	assert.Equal(t, 12, form.ItemID)
	assert.Equal(t, domain.Decimal(tinyReward), form.Price)
	assert.True(t, form.IsFeatured)
	assert.InDelta(t, 12.5, form.DiscountPercentage, 1e-9)
	require.NotNil(t, form.StockQuantity)
	assert.Equal(t, 3, *form.StockQuantity)

	require.NoError(t, setFormField(&form, "stock_quantity", ""))
	assert.Nil(t, form.StockQuantity)

	assert.ErrorIs(t, setFormField(&form, "price", "1,5"), domain.ErrInvalidInput)
	assert.ErrorIs(t, setFormField(&form, "colour", "red"), domain.ErrInvalidInput)
	assert.ErrorIs(t, setFormField(&form, "item_id", "abc"), domain.ErrInvalidInput)

	fields := formFields(form)
	assert.Equal(t, Field{Name: "item_id", Value: "12"}, fields[0])
	assert.Equal(t, Field{Name: "price", Value: tinyReward}, fields[1])
}

func TestPanels_TableLookup(t *testing.T) {
	h := newHarness(t)
	all := NewPanels(h.api, h.ui, 10)

	assert.Equal(t, []string{"cards", "items", "monsters", "players", "scenarios", "shop-items", "users"}, all.TableNames())
	tbl, err := all.Table("shop-items")
	require.NoError(t, err)
	assert.Equal(t, client.ResourceShopItems, tbl.Resource())

	_, err = all.Table("weapons")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
