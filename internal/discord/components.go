package discord

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/dooficoin/doofigame/internal/domain"
	"github.com/dooficoin/doofigame/internal/session"
)

// Button kinds, the first segment of a custom id.
const (
	kindPage    = "page"
	kindConfirm = "confirm"
	kindCancel  = "cancel"
)

// Confirmable verbs.
const (
	verbDelete = "delete"
	verbSell   = "sell"
	verbBan    = "ban"
	verbUnban  = "unban"
)

const idSeparator = ":"

// Action is a decoded button custom id:
//
//	page:<resource>:prev|next
//	confirm:delete:<resource>:<id>
//	confirm:sell|ban|unban:<id>
//	cancel
type Action struct {
	Kind     string
	Verb     string
	Resource string
	ID       int
}

// CustomID encodes a for a button.
func (a Action) CustomID() string {
	switch a.Kind {
	case kindPage:
		return strings.Join([]string{kindPage, a.Resource, a.Verb}, idSeparator)
	case kindConfirm:
		parts := []string{kindConfirm, a.Verb}
		if a.Resource != "" {
			parts = append(parts, a.Resource)
		}
		return strings.Join(append(parts, strconv.Itoa(a.ID)), idSeparator)
	default:
		return kindCancel
	}
}

func parseCustomID(id string) (Action, error) {
	parts := strings.Split(id, idSeparator)
	bad := fmt.Errorf("%w: custom id %q", domain.ErrInvalidInput, id)

	switch parts[0] {
	case kindCancel:
		return Action{Kind: kindCancel}, nil
	case kindPage:
		if len(parts) != 3 || (parts[2] != "prev" && parts[2] != "next") {
			return Action{}, bad
		}
		return Action{Kind: kindPage, Resource: parts[1], Verb: parts[2]}, nil
	case kindConfirm:
		a := Action{Kind: kindConfirm}
		switch {
		case len(parts) == 4 && parts[1] == verbDelete:
			a.Verb, a.Resource = parts[1], parts[2]
		case len(parts) == 3 && (parts[1] == verbSell || parts[1] == verbBan || parts[1] == verbUnban):
			a.Verb = parts[1]
		default:
			return Action{}, bad
		}
		n, err := strconv.Atoi(parts[len(parts)-1])
		if err != nil || n < 1 {
			return Action{}, bad
		}
		a.ID = n
		return a, nil
	}
	return Action{}, bad
}

// pageButtons renders the Anterior / Próxima pair, disabled at the ends.
func pageButtons(resource string, canPrev, canNext bool) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.Button{
			Label:    LabelPrev,
			Style:    discordgo.SecondaryButton,
			CustomID: Action{Kind: kindPage, Resource: resource, Verb: "prev"}.CustomID(),
			Disabled: !canPrev,
		},
		discordgo.Button{
			Label:    LabelNext,
			Style:    discordgo.SecondaryButton,
			CustomID: Action{Kind: kindPage, Resource: resource, Verb: "next"}.CustomID(),
			Disabled: !canNext,
		},
	}}}
}

// confirmPrompt asks question with a Confirmar / Cancelar pair. Nothing
// runs until Confirmar is clicked.
func confirmPrompt(question string, a Action) *Response {
	return &Response{
		Content: "❓ " + question,
		Components: []discordgo.MessageComponent{discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{Label: LabelConfirm, Style: discordgo.DangerButton, CustomID: a.CustomID()},
			discordgo.Button{Label: LabelCancel, Style: discordgo.SecondaryButton, CustomID: kindCancel},
		}}},
	}
}

// handleAction runs a button click.
func handleAction(ctx context.Context, us *UserSession, a Action) (*Response, error) {
	switch a.Kind {
	case kindCancel:
		return text(MsgCancelled), nil
	case kindPage:
		if err := us.Shell.SetTab(session.TabAdmin); err != nil {
			return nil, err
		}
		t, err := us.Admin.Table(a.Resource)
		if err != nil {
			return nil, err
		}
		if a.Verb == "next" {
			err = t.NextPage(ctx)
		} else {
			err = t.PrevPage(ctx)
		}
		if err != nil {
			return nil, err
		}
		return adminListResponse(t), nil
	}

	ctx = withConfirmation(ctx)
	switch a.Verb {
	case verbSell:
		if err := us.Shell.SetTab(session.TabInventory); err != nil {
			return nil, err
		}
		if err := us.Game.Inventory.Sell(ctx, a.ID); err != nil {
			return nil, err
		}
		return balanceLine(us), nil
	case verbDelete:
		if err := us.Shell.SetTab(session.TabAdmin); err != nil {
			return nil, err
		}
		t, err := us.Admin.Table(a.Resource)
		if err != nil {
			return nil, err
		}
		if err := t.Delete(ctx, a.ID); err != nil {
			return nil, err
		}
		return adminListResponse(t), nil
	case verbBan, verbUnban:
		if err := us.Shell.SetTab(session.TabAdmin); err != nil {
			return nil, err
		}
		if a.Verb == verbBan {
			return &Response{}, us.Admin.Users.Ban(ctx, a.ID)
		}
		return &Response{}, us.Admin.Users.Unban(ctx, a.ID)
	}
	return nil, fmt.Errorf("%w: action %q", domain.ErrInvalidInput, a.Verb)
}
