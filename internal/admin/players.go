package admin

import (
	"context"
	"fmt"

	"github.com/dooficoin/doofigame/internal/client"
	"github.com/dooficoin/doofigame/internal/domain"
	"github.com/dooficoin/doofigame/internal/logger"
	"github.com/dooficoin/doofigame/internal/panel"
)

// GrantKind selects what a grant moves.
type GrantKind string

const (
	GrantItem GrantKind = "item"
	GrantCard GrantKind = "card"
)

// PlayersPanel edits players and moves items or cards in and out of their
// inventories.
type PlayersPanel struct {
	*Panel[domain.Player, PlayerForm]
}

// NewPlayersPanel creates the players panel.
func NewPlayersPanel(api *client.Client, ui panel.UI, perPage int) *PlayersPanel {
	return &PlayersPanel{Panel: NewPanel(api, PlayersSchema, ui, perPage)}
}

// Give adds quantity of an item or card to the player.
func (p *PlayersPanel) Give(ctx context.Context, playerID int, kind GrantKind, id, quantity int) error {
	return p.grant(ctx, playerID, kind, id, quantity, true)
}

// Remove takes quantity of an item or card from the player, after
// confirmation.
func (p *PlayersPanel) Remove(ctx context.Context, playerID int, kind GrantKind, id, quantity int) error {
	if !p.ui.Confirm(ctx, "Tem certeza que deseja remover do inventário deste jogador?") {
		return domain.ErrCancelled
	}
	return p.grant(ctx, playerID, kind, id, quantity, false)
}

func (p *PlayersPanel) grant(ctx context.Context, playerID int, kind GrantKind, id, quantity int, give bool) error {
	if id < 1 || quantity < 1 {
		return fmt.Errorf("%w: id and quantity must be positive", domain.ErrInvalidInput)
	}

	return p.guard.Run(func() error {
		var (
			resp *client.MessageResponse
			err  error
		)
		switch {
		case kind == GrantItem && give:
			resp, err = p.api.GivePlayerItem(ctx, playerID, id, quantity)
		case kind == GrantItem:
			resp, err = p.api.RemovePlayerItem(ctx, playerID, id, quantity)
		case kind == GrantCard && give:
			resp, err = p.api.GivePlayerCard(ctx, playerID, id, quantity)
		case kind == GrantCard:
			resp, err = p.api.RemovePlayerCard(ctx, playerID, id, quantity)
		default:
			return fmt.Errorf("%w: grant kind %q", domain.ErrInvalidInput, kind)
		}
		if err != nil {
			p.banner.Set(err)
			p.ui.Alert(ctx, "Erro: "+err.Error())
			return err
		}

		logger.FromContext(ctx).Info("Player grant applied", "player_id", playerID, "kind", kind, "id", id, "quantity", quantity, "give", give)
		if resp != nil && resp.Message != "" {
			p.ui.Alert(ctx, resp.Message)
		}
		return p.Load(ctx)
	})
}
