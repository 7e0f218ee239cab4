package discord

import (
	"context"
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"github.com/dooficoin/doofigame/internal/admin"
	"github.com/dooficoin/doofigame/internal/client"
	"github.com/dooficoin/doofigame/internal/format"
	"github.com/dooficoin/doofigame/internal/session"
)

// adminResources are the CRUD collections offered as choices.
var adminResources = []string{
	client.ResourceUsers.Name,
	client.ResourceItems.Name,
	client.ResourceMonsters.Name,
	client.ResourceScenarios.Name,
	client.ResourceCards.Name,
	client.ResourceShopItems.Name,
	client.ResourcePlayers.Name,
}

var adminPermission int64 = discordgo.PermissionAdministrator

// adminTable opens the admin tab and resolves the resource option.
func adminTable(us *UserSession, i *discordgo.InteractionCreate) (admin.Table, error) {
	if err := us.Shell.SetTab(session.TabAdmin); err != nil {
		return nil, err
	}
	return us.Admin.Table(getOptions(i).String("recurso"))
}

// adminListResponse renders the loaded page with its pagination buttons.
func adminListResponse(t admin.Table) *Response {
	page, pages, canPrev, canNext := t.Page()
	r := embed(
		format.Title(t.Resource().Name),
		codeTable(t.Columns(), t.Table()),
		ColorAdmin,
		field("Página", fmt.Sprintf("%d de %d", page, pages)),
		field("Registros", strconv.Itoa(t.Total())),
	)
	if b := t.Banner(); b != "" {
		r.Content = "⚠️ " + b
	}
	r.Components = pageButtons(t.Resource().Name, canPrev, canNext)
	return r
}

// AdminListCommand returns the admin-list command definition and handler
func AdminListCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:                     "admin-list",
		Description:              "Listar registros de uma coleção",
		DefaultMemberPermissions: &adminPermission,
		Options: []*discordgo.ApplicationCommandOption{
			stringOption("recurso", "Coleção", true, adminResources...),
			stringOption("filtro", "Filtrar por nome", false),
		},
	}
	handler := func(ctx context.Context, us *UserSession, i *discordgo.InteractionCreate) (*Response, error) {
		t, err := adminTable(us, i)
		if err != nil {
			return nil, err
		}
		if err := t.SetFilter(ctx, getOptions(i).String("filtro")); err != nil {
			return nil, err
		}
		return adminListResponse(t), nil
	}
	return cmd, handler
}

// AdminDeleteCommand returns the admin-delete command definition and
// handler. The DELETE is only sent from the confirm button.
func AdminDeleteCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:                     "admin-delete",
		Description:              "Deletar um registro",
		DefaultMemberPermissions: &adminPermission,
		Options: []*discordgo.ApplicationCommandOption{
			stringOption("recurso", "Coleção", true, adminResources...),
			idOption("id", "ID do registro"),
		},
	}
	handler := func(_ context.Context, us *UserSession, i *discordgo.InteractionCreate) (*Response, error) {
		id, err := getOptions(i).ID("id")
		if err != nil {
			return nil, err
		}
		t, err := adminTable(us, i)
		if err != nil {
			return nil, err
		}
		a := Action{Kind: kindConfirm, Verb: verbDelete, Resource: t.Resource().Name, ID: id}
		return confirmPrompt(t.Noun().DeletePrompt(), a), nil
	}
	return cmd, handler
}

// AdminBanCommand returns the admin-ban command definition and handler
func AdminBanCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:                     "admin-ban",
		Description:              "Banir ou desbanir um usuário",
		DefaultMemberPermissions: &adminPermission,
		Options: []*discordgo.ApplicationCommandOption{
			idOption("id", "ID do usuário"),
			boolOption("desbanir", "Reativar o usuário"),
		},
	}
	handler := func(_ context.Context, us *UserSession, i *discordgo.InteractionCreate) (*Response, error) {
		opts := getOptions(i)
		id, err := opts.ID("id")
		if err != nil {
			return nil, err
		}
		if err := us.Shell.SetTab(session.TabAdmin); err != nil {
			return nil, err
		}
		verb, word := verbBan, "banir"
		if opts.Bool("desbanir") {
			verb, word = verbUnban, "desbanir"
		}
		question := fmt.Sprintf("Tem certeza que deseja %s o usuário #%d?", word, id)
		return confirmPrompt(question, Action{Kind: kindConfirm, Verb: verb, ID: id}), nil
	}
	return cmd, handler
}

// AdminDashboardCommand returns the admin-dashboard command definition and handler
func AdminDashboardCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:                     "admin-dashboard",
		Description:              "Ver os números do jogo",
		DefaultMemberPermissions: &adminPermission,
	}
	handler := func(ctx context.Context, us *UserSession, _ *discordgo.InteractionCreate) (*Response, error) {
		if err := us.Shell.SetTab(session.TabAdmin); err != nil {
			return nil, err
		}
		d := us.Admin.Dashboard
		if err := d.Load(ctx); err != nil {
			return nil, err
		}
		s := d.Stats()
		return embed("📊 Dashboard", "", ColorAdmin,
			field("Usuários", fmt.Sprintf("%d (%d ativos)", s.TotalUsers, s.ActiveUsers)),
			field("Itens", strconv.Itoa(s.TotalItems)),
			field("Cenários", strconv.Itoa(s.TotalScenarios)),
			field("Monstros", strconv.Itoa(s.TotalMonsters)),
			field("Cartas", strconv.Itoa(s.TotalCards)),
			field("Transações", strconv.Itoa(s.TotalTransactions)),
			field("DOOF minerado", format.WithSymbol(format.DoofiCoin(s.TotalDooficoinMined))),
			field("Logs de segurança", strconv.Itoa(s.TotalSecurityLogs)),
		), nil
	}
	return cmd, handler
}
