package console

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dooficoin/doofigame/internal/domain"
	"github.com/dooficoin/doofigame/internal/format"
	"github.com/dooficoin/doofigame/internal/game"
	"github.com/dooficoin/doofigame/internal/mining"
	"github.com/dooficoin/doofigame/internal/session"
)

// partial prints a failed panel load as a banner and reports whether the
// rest of the panel can still be shown.
func (c *Console) partial(ctx context.Context, err error) bool {
	if ctx.Err() != nil || session.IsSessionError(err) {
		return false
	}
	c.banner(err.Error())
	return true
}

func usageError(usage string) error {
	return fmt.Errorf("%w: uso: %s", domain.ErrInvalidInput, usage)
}

func parseID(args []string, usage string) (int, error) {
	if len(args) < 1 {
		return 0, usageError(usage)
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id < 1 {
		return 0, usageError(usage)
	}
	return id, nil
}

// enter switches to the tab of the command being run. It fails when logged
// out, which is how player commands require a session.
func (c *Console) enter(tab session.Tab) error {
	return c.shell.SetTab(tab)
}

func (c *Console) registerSession() {
	c.Register(Command{Name: "help", Usage: "help [comando]", Help: "lista os comandos", Run: c.help})
	c.Register(Command{Name: "quit", Usage: "quit", Help: "sai do jogo", Run: func(context.Context, []string) error {
		c.quit = true
		return nil
	}})
	c.Register(Command{Name: "login", Usage: "login <usuário|email>", Help: "entra com uma conta existente", Run: c.login})
	c.Register(Command{Name: "register", Usage: "register <usuário> <email>", Help: "cria uma conta e o jogador", Run: c.register})
	c.Register(Command{Name: "token", Usage: "token <jwt>", Help: "entra com um token emitido pelo servidor", Run: c.useToken})
	c.Register(Command{Name: "logout", Usage: "logout", Help: "encerra a sessão", Run: func(ctx context.Context, _ []string) error {
		c.shell.Logout(ctx)
		c.printf("Sessão encerrada.\n")
		return nil
	}})
	c.Register(Command{Name: "tabs", Usage: "tabs", Help: "lista as abas disponíveis", Run: c.tabs})
	c.Register(Command{Name: "tab", Usage: "tab <id>", Help: "muda a aba ativa", Run: func(_ context.Context, args []string) error {
		if len(args) != 1 {
			return usageError("tab <id>")
		}
		return c.shell.SetTab(session.Tab(strings.ToLower(args[0])))
	}})
}

func (c *Console) login(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("login <usuário|email>")
	}
	username, email := args[0], ""
	if strings.Contains(username, "@") {
		username, email = "", args[0]
	}
	p, err := c.shell.Login(ctx, username, email)
	if err != nil {
		return err
	}
	c.printf("Bem-vindo, %s!\n", p.Username)
	return nil
}

func (c *Console) register(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usageError("register <usuário> <email>")
	}
	p, err := c.shell.Register(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	c.printf("Conta criada. Bem-vindo, %s!\n", p.Username)
	return nil
}

func (c *Console) useToken(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("token <jwt>")
	}
	if err := c.shell.UseToken(ctx, args[0]); err != nil {
		return err
	}
	c.printf("Bem-vindo, %s!\n", c.shell.Player().Username)
	return nil
}

func (c *Console) tabs(context.Context, []string) error {
	if !c.shell.LoggedIn() {
		return domain.ErrNotAuthenticated
	}
	active := c.shell.Tab()
	rows := make([][]string, 0, 9)
	for _, t := range c.shell.Tabs() {
		mark := ""
		if t == active {
			mark = "*"
		}
		rows = append(rows, []string{mark, string(t), t.Label()})
	}
	c.table([]string{"", "ID", "ABA"}, rows)
	return nil
}

func (c *Console) registerGame() {
	c.Register(Command{Name: "arena", Usage: "arena", Help: "mostra o progresso da fase", Run: c.arena})
	c.Register(Command{Name: "kill", Usage: "kill", Help: "mata um monstro", Run: c.arenaAction(c.game.Arena.KillMonster)})
	c.Register(Command{Name: "self-eliminate", Usage: "self-eliminate", Help: "autoeliminação", Run: c.arenaAction(c.game.Arena.SelfEliminate)})
	c.Register(Command{Name: "die", Usage: "die", Help: "registra uma morte", Run: c.arenaAction(c.game.Arena.Die)})

	c.Register(Command{Name: "scenarios", Usage: "scenarios [país]", Help: "lista os cenários", Run: c.scenarios})
	c.Register(Command{Name: "start", Usage: "start <id>", Help: "inicia um cenário", Run: c.startScenario})

	c.Register(Command{Name: "shop", Usage: "shop [weapons|armors|accessories]", Help: "mostra a loja", Run: c.shop})
	c.Register(Command{Name: "buy", Usage: "buy <id>", Help: "compra um item da loja", Run: c.buy})

	c.Register(Command{Name: "inventory", Usage: "inventory [categoria] [raridade] [busca]", Help: "lista o inventário", Run: c.inventory})
	c.Register(Command{Name: "equip", Usage: "equip <id>", Help: "equipa ou desequipa um item", Run: c.equip})
	c.Register(Command{Name: "sell", Usage: "sell <id>", Help: "vende um item do inventário", Run: c.sell})

	c.Register(Command{Name: "cards", Usage: "cards [série] [raridade] [owned]", Help: "mostra o álbum de cartas", Run: c.cards})

	c.Register(Command{Name: "mining", Usage: "mining", Help: "mostra a mineração", Run: c.mining})
	c.Register(Command{Name: "mine", Usage: "mine start|stop|watch", Help: "controla a mineração", Run: c.mine})

	c.Register(Command{Name: "leaderboard", Usage: "leaderboard [level|monsters|players_killed]", Help: "mostra o ranking", Run: c.leaderboard})

	c.Register(Command{Name: "profile", Usage: "profile [update campo=valor ...]", Help: "mostra ou edita o perfil", Run: c.profile})
}

func (c *Console) arena(context.Context, []string) error {
	if err := c.enter(session.TabArena); err != nil {
		return err
	}
	p := c.shell.Player()
	st := c.game.Arena.Status()
	c.pairs(
		"Fase", fmt.Sprintf("%d", st.Phase),
		"Progresso", fmt.Sprintf("%d/%d %s", st.KilledInPhase, st.MonstersInPhase, format.Bar(int(st.Percent), 20)),
		"Próxima fase", fmt.Sprintf("%d monstros", st.NextPhaseMonsters),
		"Monstros mortos", strconv.Itoa(p.MonstersKilled),
		"Jogadores mortos", strconv.Itoa(p.PlayersKilled),
		"Mortes", strconv.Itoa(p.Deaths),
		"Autoeliminações", strconv.Itoa(p.SelfEliminations),
		"Poder", format.Bar(p.PowerPercent(), 10),
	)
	return nil
}

func (c *Console) arenaAction(action func(context.Context) error) Handler {
	return func(ctx context.Context, args []string) error {
		if err := c.enter(session.TabArena); err != nil {
			return err
		}
		if err := action(ctx); err != nil {
			return err
		}
		return c.arena(ctx, args)
	}
}

func (c *Console) scenarios(ctx context.Context, args []string) error {
	if err := c.enter(session.TabScenarios); err != nil {
		return err
	}
	sc := c.game.Scenarios
	if err := sc.Load(ctx); err != nil && !c.partial(ctx, err) {
		return err
	}
	country := game.FilterAll
	if len(args) > 0 {
		country = strings.Join(args, " ")
	}
	sc.SetCountry(country)

	rows := [][]string{}
	for _, s := range sc.Visible() {
		progress := "-"
		if pr, ok := sc.Progress(s.ID); ok {
			progress = fmt.Sprintf("%d/%d", pr.MonstersDefeated, pr.TotalMonstersRequired)
			if pr.IsPerfect {
				progress += " perfeito"
			} else if pr.IsCompleted {
				progress += " concluído"
			}
		}
		rows = append(rows, []string{
			strconv.Itoa(s.ID), s.Name, s.Country, s.City,
			strconv.Itoa(s.PhaseNumber), strconv.Itoa(s.DifficultyLevel), progress,
		})
	}
	c.table([]string{"ID", "CENÁRIO", "PAÍS", "CIDADE", "FASE", "DIFICULDADE", "PROGRESSO"}, rows)
	c.printf("Concluídos: %d | Perfeitos: %d\n", sc.Completed(), sc.Perfect())
	return nil
}

func (c *Console) startScenario(ctx context.Context, args []string) error {
	id, err := parseID(args, "start <id>")
	if err != nil {
		return err
	}
	if err := c.enter(session.TabScenarios); err != nil {
		return err
	}
	return c.game.Scenarios.Start(ctx, id)
}

func (c *Console) shop(_ context.Context, args []string) error {
	if err := c.enter(session.TabShop); err != nil {
		return err
	}
	categories := game.ShopCategories
	if len(args) > 0 {
		categories = []game.ShopCategory{game.ShopCategory(strings.ToLower(args[0]))}
	}
	rows := [][]string{}
	for _, cat := range categories {
		for _, it := range c.game.Shop.Items(cat) {
			afford := ""
			if !c.game.Shop.CanAfford(it) {
				afford = "saldo insuficiente"
			}
			rows = append(rows, []string{
				strconv.Itoa(it.ID), it.Name, cat.Label(), it.Bonus(),
				format.WithSymbol(format.Balance(it.Price)), afford,
			})
		}
	}
	c.table([]string{"ID", "ITEM", "CATEGORIA", "BÔNUS", "PREÇO", ""}, rows)
	return nil
}

func (c *Console) buy(ctx context.Context, args []string) error {
	id, err := parseID(args, "buy <id>")
	if err != nil {
		return err
	}
	if err := c.enter(session.TabShop); err != nil {
		return err
	}
	return c.game.Shop.Buy(ctx, id)
}

func (c *Console) inventory(ctx context.Context, args []string) error {
	if err := c.enter(session.TabInventory); err != nil {
		return err
	}
	inv := c.game.Inventory
	if err := inv.Load(ctx); err != nil {
		return err
	}
	f := game.DefaultItemFilter()
	if len(args) > 0 {
		f.Category = args[0]
	}
	if len(args) > 1 {
		f.Rarity = args[1]
	}
	if len(args) > 2 {
		f.Search = strings.Join(args[2:], " ")
	}
	inv.SetFilter(f)

	rows := [][]string{}
	for _, e := range inv.Visible() {
		equipped := ""
		if e.IsEquipped {
			equipped = "equipado"
		}
		rows = append(rows, []string{
			strconv.Itoa(e.ID), e.Item.Name, e.Item.ItemType.Label(), e.Item.Rarity.Label(),
			strconv.Itoa(e.Quantity), format.WithSymbol(format.Balance(e.Item.CurrentPrice)), equipped,
		})
	}
	c.table([]string{"ID", "ITEM", "TIPO", "RARIDADE", "QTD", "VALOR", ""}, rows)
	return nil
}

func (c *Console) equip(ctx context.Context, args []string) error {
	id, err := parseID(args, "equip <id>")
	if err != nil {
		return err
	}
	if err := c.enter(session.TabInventory); err != nil {
		return err
	}
	if err := c.game.Inventory.Equip(ctx, id); err != nil {
		return err
	}
	if e, ok := c.game.Inventory.Entry(id); ok {
		state := "desequipado"
		if e.IsEquipped {
			state = "equipado"
		}
		c.printf("%s %s.\n", e.Item.Name, state)
	}
	return nil
}

func (c *Console) sell(ctx context.Context, args []string) error {
	id, err := parseID(args, "sell <id>")
	if err != nil {
		return err
	}
	if err := c.enter(session.TabInventory); err != nil {
		return err
	}
	return c.game.Inventory.Sell(ctx, id)
}

func (c *Console) cards(ctx context.Context, args []string) error {
	if err := c.enter(session.TabCards); err != nil {
		return err
	}
	cards := c.game.Cards
	if err := cards.Load(ctx); err != nil && !c.partial(ctx, err) {
		return err
	}
	f := game.DefaultCardFilter()
	for i, arg := range args {
		switch {
		case strings.EqualFold(arg, "owned"):
			f.OnlyOwned = true
		case i == 0:
			f.Series = arg
		case i == 1:
			f.Rarity = arg
		}
	}
	cards.SetFilter(f)

	stats := cards.Stats()
	c.printf("Coleção: %d/%d (%.1f%%)\n", stats.Owned, stats.Total, stats.Completion)
	for _, rs := range stats.ByRarity {
		if rs.Total > 0 {
			c.printf("  %s: %d/%d\n", rs.Rarity.Label(), rs.Owned, rs.Total)
		}
	}

	rows := [][]string{}
	for _, card := range cards.Visible() {
		qty := "-"
		if pc, ok := cards.Owned(card.ID); ok {
			qty = "x" + strconv.Itoa(pc.Quantity)
		}
		rows = append(rows, []string{strconv.Itoa(card.ID), card.Name, card.CardSeries, card.Rarity.Label(), qty})
	}
	c.table([]string{"ID", "CARTA", "SÉRIE", "RARIDADE", "POSSUI"}, rows)
	return nil
}

func (c *Console) mining(ctx context.Context, _ []string) error {
	if err := c.enter(session.TabMining); err != nil {
		return err
	}
	m := c.game.Mining
	if err := m.Load(ctx); err != nil && !c.partial(ctx, err) {
		return err
	}
	c.printMining()
	return nil
}

func (c *Console) printMining() {
	m := c.game.Mining
	status := m.Status()
	stats := m.Stats()

	state := "parada"
	if status.Active() {
		state = "minerando, faltam " + mining.FormatRemaining(m.Remaining())
	}
	kv := []string{"Status", state, "Nível", strconv.Itoa(m.Level())}
	if status != nil {
		kv = append(kv,
			"Duração", fmt.Sprintf("%d min", status.DurationMinutes),
			"Recompensa estimada", format.WithSymbol(format.DoofiCoin(status.EstimatedReward)))
	}
	if stats != nil {
		kv = append(kv,
			"Sessões", strconv.Itoa(stats.TotalSessions),
			"Total minerado", format.WithSymbol(format.DoofiCoin(stats.TotalMined)),
			"Média por sessão", format.WithSymbol(format.DoofiCoin(stats.AveragePerSession)))
	}
	c.pairs(kv...)
}

func (c *Console) mine(ctx context.Context, args []string) error {
	const usage = "mine start|stop|watch"
	if len(args) != 1 {
		return usageError(usage)
	}
	if err := c.enter(session.TabMining); err != nil {
		return err
	}
	m := c.game.Mining
	switch strings.ToLower(args[0]) {
	case "start":
		if err := m.Start(ctx); err != nil {
			return err
		}
		c.printMining()
		return nil
	case "stop":
		return m.Stop(ctx)
	case "watch":
		if !m.Status().Active() {
			c.printf("Nenhuma mineração ativa.\n")
			return nil
		}
		err := m.Watch(ctx, func(remaining int) {
			c.printf("Tempo restante: %s\n", mining.FormatRemaining(remaining))
		})
		if err != nil {
			return err
		}
		if ctx.Err() == nil {
			c.printMining()
		}
		return nil
	default:
		return usageError(usage)
	}
}

func (c *Console) leaderboard(ctx context.Context, args []string) error {
	if err := c.enter(session.TabLeaderboard); err != nil {
		return err
	}
	lb := c.game.Leaderboard
	if len(args) > 0 {
		lb.SetActive(domain.LeaderboardCategory(strings.ToLower(args[0])))
	}
	if err := lb.Load(ctx); err != nil && !c.partial(ctx, err) {
		return err
	}

	category := lb.Active()
	rows := [][]string{}
	for i, e := range lb.Entries(category) {
		rows = append(rows, []string{
			strconv.Itoa(i + 1), e.Username, strconv.Itoa(e.Value(category)), strconv.Itoa(e.CurrentPhase),
		})
	}
	c.printf("Ranking: %s\n", category.Label())
	c.table([]string{"#", "JOGADOR", strings.ToUpper(category.StatLabel()), "FASE"}, rows)
	if rank := lb.Rank(category); rank > 0 {
		c.printf("Sua posição: %dº\n", rank)
	}
	return nil
}

// profileFields maps profile update keys to form fields.
var profileFields = map[string]func(*game.ProfileForm, string){
	"username":         func(f *game.ProfileForm, v string) { f.Username = v },
	"email":            func(f *game.ProfileForm, v string) { f.Email = v },
	"current_password": func(f *game.ProfileForm, v string) { f.CurrentPassword = v },
	"new_password":     func(f *game.ProfileForm, v string) { f.NewPassword = v },
	"confirm_password": func(f *game.ProfileForm, v string) { f.ConfirmPassword = v },
}

func (c *Console) profile(ctx context.Context, args []string) error {
	if err := c.enter(session.TabProfile); err != nil {
		return err
	}
	pr := c.game.Profile
	if len(args) > 0 {
		if !strings.EqualFold(args[0], "update") {
			return usageError("profile [update campo=valor ...]")
		}
		return c.updateProfile(ctx, args[1:])
	}

	if err := pr.Load(ctx); err != nil {
		return err
	}
	p := c.shell.Player()
	kv := []string{
		"Usuário", p.Username,
		"Email", p.Email,
		"Nível", strconv.Itoa(p.Level),
		"Saldo", format.WithSymbol(format.Balance(p.WalletBalance)),
	}
	if st := pr.Stats(); st != nil {
		kv = append(kv,
			"Itens coletados", strconv.Itoa(st.ItemsCollected),
			"Cartas coletadas", strconv.Itoa(st.CardsCollected),
			"Cenários concluídos", strconv.Itoa(st.ScenariosCompleted),
			"Tempo de jogo", fmt.Sprintf("%d min", st.PlayTimeMinutes))
	}
	c.pairs(kv...)
	return nil
}

func (c *Console) updateProfile(ctx context.Context, args []string) error {
	pr := c.game.Profile
	pr.StartEdit()
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		set, known := profileFields[strings.ToLower(key)]
		if !ok || !known {
			pr.Cancel()
			return fmt.Errorf("%w: campo desconhecido %q", domain.ErrInvalidInput, key)
		}
		pr.EditForm(func(f *game.ProfileForm) { set(f, value) })
	}
	if err := pr.Save(ctx); err != nil {
		pr.Cancel()
		return err
	}
	return nil
}
