package admin

import (
	"context"
	"fmt"

	"github.com/dooficoin/doofigame/internal/client"
	"github.com/dooficoin/doofigame/internal/domain"
	"github.com/dooficoin/doofigame/internal/logger"
	"github.com/dooficoin/doofigame/internal/panel"
)

// UsersPanel lists and edits accounts and bans or unbans them.
type UsersPanel struct {
	*Panel[domain.User, UserForm]
}

// NewUsersPanel creates the users panel.
func NewUsersPanel(api *client.Client, ui panel.UI, perPage int) *UsersPanel {
	return &UsersPanel{Panel: NewPanel(api, UsersSchema, ui, perPage)}
}

// Ban deactivates the user after confirmation.
func (p *UsersPanel) Ban(ctx context.Context, userID int) error {
	return p.setActive(ctx, userID, false)
}

// Unban reactivates the user after confirmation.
func (p *UsersPanel) Unban(ctx context.Context, userID int) error {
	return p.setActive(ctx, userID, true)
}

// setActive flips is_active on the loaded row as soon as the backend
// accepts, then reloads the page.
func (p *UsersPanel) setActive(ctx context.Context, userID int, active bool) error {
	verb, done := "banir", "banido"
	if active {
		verb, done = "desbanir", "desbanido"
	}
	if !p.ui.Confirm(ctx, fmt.Sprintf("Tem certeza que deseja %s este usuário?", verb)) {
		return domain.ErrCancelled
	}

	return p.guard.Run(func() error {
		var err error
		if active {
			_, err = p.api.UnbanUser(ctx, userID)
		} else {
			_, err = p.api.BanUser(ctx, userID)
		}
		if err != nil {
			p.banner.Set(err)
			p.ui.Alert(ctx, fmt.Sprintf("Erro ao %s usuário: %s", verb, err.Error()))
			return err
		}

		logger.FromContext(ctx).Info("User activation changed", "user_id", userID, "active", active)
		p.mutateRow(userID, func(u *domain.User) { u.IsActive = active })
		p.ui.Alert(ctx, fmt.Sprintf("Usuário %s com sucesso!", done))
		return p.Load(ctx)
	})
}
