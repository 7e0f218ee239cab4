package console

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dooficoin/doofigame/internal/admin"
	"github.com/dooficoin/doofigame/internal/domain"
	"github.com/dooficoin/doofigame/internal/format"
	"github.com/dooficoin/doofigame/internal/session"
)

const adminUsage = "admin <recurso> list|next|prev|filter|new|edit|set|form|save|cancel|delete|ban|unban"

func (c *Console) registerAdmin() {
	c.Register(Command{
		Name:  "admin",
		Usage: adminUsage,
		Help:  "painel administrativo (admin dashboard|settings|adsense|logs|players give|remove)",
		Run:   c.adminCommand,
	})
}

func (c *Console) adminCommand(ctx context.Context, args []string) error {
	if err := c.enter(session.TabAdmin); err != nil {
		return err
	}
	if len(args) == 0 {
		c.printf("Recursos: %s\n", strings.Join(c.admin.TableNames(), ", "))
		c.printf("Outros: dashboard, settings, adsense, logs\n")
		return nil
	}

	resource := strings.ToLower(args[0])
	rest := args[1:]
	switch resource {
	case "dashboard":
		return c.adminDashboard(ctx)
	case "settings":
		return c.adminSettings(ctx, rest)
	case "adsense":
		return c.adminAdSense(ctx, rest)
	case "logs", "security-logs":
		return c.adminLogs(ctx, rest)
	}

	table, err := c.admin.Table(resource)
	if err != nil {
		return err
	}
	if len(rest) == 0 {
		rest = []string{"list"}
	}
	return c.adminTable(ctx, table, strings.ToLower(rest[0]), rest[1:])
}

func (c *Console) adminTable(ctx context.Context, t admin.Table, verb string, args []string) error {
	switch verb {
	case "list":
		if err := t.Load(ctx); err != nil {
			return err
		}
	case "next":
		if err := t.NextPage(ctx); err != nil {
			return err
		}
	case "prev":
		if err := t.PrevPage(ctx); err != nil {
			return err
		}
	case "filter":
		if err := t.SetFilter(ctx, strings.Join(args, " ")); err != nil {
			return err
		}
	case "new":
		if err := t.StartCreate(); err != nil {
			return err
		}
		c.printForm(t)
		return nil
	case "edit":
		id, err := parseID(args, "admin <recurso> edit <id>")
		if err != nil {
			return err
		}
		if err := t.StartEditID(id); err != nil {
			return err
		}
		c.printForm(t)
		return nil
	case "set":
		if len(args) < 1 {
			return usageError("admin <recurso> set <campo> <valor>")
		}
		return t.SetField(args[0], strings.Join(args[1:], " "))
	case "form":
		c.printForm(t)
		return nil
	case "save":
		return t.Save(ctx)
	case "cancel":
		t.Cancel()
		return nil
	case "delete":
		id, err := parseID(args, "admin <recurso> delete <id>")
		if err != nil {
			return err
		}
		return t.Delete(ctx, id)
	case "ban", "unban":
		return c.adminBan(ctx, t, verb, args)
	case "give", "remove":
		return c.adminGrant(ctx, t, verb, args)
	default:
		return usageError(adminUsage)
	}
	c.printTable(t)
	return nil
}

func (c *Console) printTable(t admin.Table) {
	c.banner(t.Banner())
	c.table(t.Columns(), t.Table())
	page, pages, _, _ := t.Page()
	c.pageLine(page, pages, t.Total())
}

func (c *Console) printForm(t admin.Table) {
	if !t.Active() {
		c.printf("Nenhum formulário aberto.\n")
		return
	}
	id, creating := t.Editing()
	if creating {
		c.printf("Novo %s\n", t.Noun().Name)
	} else {
		c.printf("Editando %s #%d\n", t.Noun().Name, id)
	}
	c.fields(t.FormFields())
}

func (c *Console) fields(fields []admin.Field) {
	kv := make([]string, 0, len(fields)*2)
	for _, f := range fields {
		kv = append(kv, f.Name, f.Value)
	}
	c.pairs(kv...)
}

func (c *Console) adminBan(ctx context.Context, t admin.Table, verb string, args []string) error {
	users, ok := t.(*admin.UsersPanel)
	if !ok {
		return fmt.Errorf("%w: %s só existe para usuários", domain.ErrInvalidInput, verb)
	}
	id, err := parseID(args, "admin users "+verb+" <id>")
	if err != nil {
		return err
	}
	if verb == "ban" {
		return users.Ban(ctx, id)
	}
	return users.Unban(ctx, id)
}

func (c *Console) adminGrant(ctx context.Context, t admin.Table, verb string, args []string) error {
	const usage = "admin players give|remove <jogador> item|card <id> [quantidade]"
	players, ok := t.(*admin.PlayersPanel)
	if !ok || len(args) < 3 {
		return usageError(usage)
	}
	playerID, err1 := strconv.Atoi(args[0])
	id, err2 := strconv.Atoi(args[2])
	quantity := 1
	var err3 error
	if len(args) > 3 {
		quantity, err3 = strconv.Atoi(args[3])
	}
	if err1 != nil || err2 != nil || err3 != nil {
		return usageError(usage)
	}

	kind := admin.GrantKind(strings.ToLower(args[1]))
	if kind != admin.GrantItem && kind != admin.GrantCard {
		return usageError(usage)
	}
	if verb == "give" {
		return players.Give(ctx, playerID, kind, id, quantity)
	}
	return players.Remove(ctx, playerID, kind, id, quantity)
}

func (c *Console) adminDashboard(ctx context.Context) error {
	d := c.admin.Dashboard
	if err := d.Load(ctx); err != nil {
		return err
	}
	s := d.Stats()
	c.pairs(
		"Usuários", fmt.Sprintf("%d (%d ativos)", s.TotalUsers, s.ActiveUsers),
		"Itens", strconv.Itoa(s.TotalItems),
		"Cenários", strconv.Itoa(s.TotalScenarios),
		"Monstros", strconv.Itoa(s.TotalMonsters),
		"Cartas", strconv.Itoa(s.TotalCards),
		"Transações", strconv.Itoa(s.TotalTransactions),
		"DOOF minerado", format.WithSymbol(format.DoofiCoin(s.TotalDooficoinMined)),
		"Logs de segurança", strconv.Itoa(s.TotalSecurityLogs),
	)
	return nil
}

func (c *Console) adminSettings(ctx context.Context, args []string) error {
	p := c.admin.Settings
	if len(args) == 0 {
		if err := p.Load(ctx); err != nil {
			return err
		}
		c.fields(p.FormFields())
		return nil
	}
	switch strings.ToLower(args[0]) {
	case "set":
		if len(args) < 2 {
			return usageError("admin settings set <campo> <valor>")
		}
		return p.SetField(args[1], strings.Join(args[2:], " "))
	case "save":
		return p.Save(ctx)
	case "form":
		c.fields(p.FormFields())
		return nil
	default:
		return usageError("admin settings [set|save|form]")
	}
}

func (c *Console) adminAdSense(ctx context.Context, args []string) error {
	const usage = "admin adsense [set|save|cancel|unit-new|unit-edit|unit-set|unit-save|unit-cancel|unit-delete]"
	p := c.admin.AdSense
	if len(args) == 0 {
		if err := p.Load(ctx); err != nil {
			return err
		}
		if p.Config() == nil {
			c.printf("AdSense não configurado.\n")
		}
		c.fields(p.ConfigFields())
		rows := [][]string{}
		for _, u := range p.Units() {
			rows = append(rows, []string{strconv.Itoa(u.ID), u.Name, u.AdUnitID, u.AdFormat, strconv.FormatBool(u.IsActive)})
		}
		c.table([]string{"ID", "NOME", "AD UNIT", "FORMATO", "ATIVO"}, rows)
		return nil
	}

	switch strings.ToLower(args[0]) {
	case "set":
		if len(args) < 2 {
			return usageError(usage)
		}
		return p.SetConfigField(args[1], strings.Join(args[2:], " "))
	case "save":
		return p.SaveConfig(ctx)
	case "cancel":
		p.CancelConfig()
		return nil
	case "unit-new":
		p.StartCreateUnit()
		c.fields(p.UnitFields())
		return nil
	case "unit-edit":
		id, err := parseID(args[1:], "admin adsense unit-edit <id>")
		if err != nil {
			return err
		}
		if err := p.StartEditUnit(id); err != nil {
			return err
		}
		c.fields(p.UnitFields())
		return nil
	case "unit-set":
		if len(args) < 2 {
			return usageError(usage)
		}
		return p.SetUnitField(args[1], strings.Join(args[2:], " "))
	case "unit-save":
		return p.SaveUnit(ctx)
	case "unit-cancel":
		p.CancelUnit()
		return nil
	case "unit-delete":
		id, err := parseID(args[1:], "admin adsense unit-delete <id>")
		if err != nil {
			return err
		}
		return p.DeleteUnit(ctx, id)
	default:
		return usageError(usage)
	}
}

func (c *Console) adminLogs(ctx context.Context, args []string) error {
	p := c.admin.SecurityLogs
	var err error
	switch {
	case len(args) == 0:
		err = p.Load(ctx)
	case args[0] == "next":
		err = p.NextPage(ctx)
	case args[0] == "prev":
		err = p.PrevPage(ctx)
	case args[0] == "type" && len(args) == 2:
		err = p.SetType(ctx, domain.SecurityLogType(args[1]))
	case args[0] == "search":
		err = p.SetSearch(ctx, strings.Join(args[1:], " "))
	default:
		return usageError("admin logs [next|prev|type <tipo>|search <texto>]")
	}
	if err != nil {
		return err
	}

	c.banner(p.Banner())
	rows := [][]string{}
	for _, l := range p.Logs() {
		user := "-"
		if l.UserID != nil {
			user = strconv.Itoa(*l.UserID)
		}
		rows = append(rows, []string{strconv.Itoa(l.ID), string(l.LogType), user, l.IPAddress, l.Message, l.Timestamp})
	}
	c.table([]string{"ID", "TIPO", "USUÁRIO", "IP", "MENSAGEM", "DATA"}, rows)
	page, pages, _, _ := p.Page()
	c.pageLine(page, pages, p.Total())
	return nil
}
