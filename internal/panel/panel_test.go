package panel

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dooficoin/doofigame/internal/domain"
)

func TestGuard_BlocksReentry(t *testing.T) {
	var g Guard
	var inner error

	err := g.Run(func() error {
		inner = g.Run(func() error {
			t.Fatal("nested call must not run")
			return nil
		})
		return nil
	})

	require.NoError(t, err)
	assert.ErrorIs(t, inner, domain.ErrBusy)
	assert.NoError(t, g.Run(func() error { return nil }), "guard released after the first call")
}

func TestGuard_ReturnsError(t *testing.T) {
	var g Guard
	boom := errors.New("boom")
	assert.ErrorIs(t, g.Run(func() error { return boom }), boom)
}

func TestUI_ConfirmDefaultsToNo(t *testing.T) {
	ctx := context.Background()

	assert.False(t, UI{}.Confirm(ctx, "Excluir?"))
	assert.True(t, UI{Confirmer: Confirmed}.Confirm(ctx, "Excluir?"))

	var asked string
	ui := UI{Confirmer: ConfirmFunc(func(_ context.Context, prompt string) bool {
		asked = prompt
		return false
	})}
	assert.False(t, ui.Confirm(ctx, "Vender?"))
	assert.Equal(t, "Vender?", asked)
}

func TestUI_Fail(t *testing.T) {
	c := &Collector{}
	ui := UI{Alerter: c}
	boom := errors.New("Item não encontrado")

	err := ui.Fail(context.Background(), "sell", boom)

	assert.Same(t, boom, err)
	assert.Equal(t, []string{"Item não encontrado"}, c.Messages())
	assert.Equal(t, []string{"Item não encontrado"}, c.Drain())
	assert.Empty(t, c.Messages())
}

func TestBanner(t *testing.T) {
	var b Banner
	b.Set(errors.New("HTTP error! status: 500"))
	assert.Equal(t, "HTTP error! status: 500", b.Message())
	b.Clear()
	assert.Empty(t, b.Message())
}

func TestPlayerSink(t *testing.T) {
	var got *domain.Player
	sink := PlayerSink(func(p *domain.Player) { got = p })

	sink.Push(nil)
	assert.Nil(t, got)
	sink.Push(&domain.Player{ID: 1})
	require.NotNil(t, got)

	var none PlayerSink
	none.Push(&domain.Player{ID: 2})
}
