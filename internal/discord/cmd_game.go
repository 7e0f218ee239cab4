package discord

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/dooficoin/doofigame/internal/domain"
	"github.com/dooficoin/doofigame/internal/format"
	"github.com/dooficoin/doofigame/internal/game"
	"github.com/dooficoin/doofigame/internal/mining"
	"github.com/dooficoin/doofigame/internal/session"
)

// Arena actions
const (
	arenaStatus        = "status"
	arenaKill          = "kill"
	arenaSelfEliminate = "self-eliminate"
	arenaDie           = "die"
)

// ArenaCommand returns the arena command definition and handler
func ArenaCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "arena",
		Description: "Lutar na arena ou ver o progresso da fase",
		Options: []*discordgo.ApplicationCommandOption{
			stringOption("acao", "O que fazer", false, arenaStatus, arenaKill, arenaSelfEliminate, arenaDie),
		},
	}
	handler := func(ctx context.Context, us *UserSession, i *discordgo.InteractionCreate) (*Response, error) {
		if err := us.Shell.SetTab(session.TabArena); err != nil {
			return nil, err
		}
		arena := us.Game.Arena
		var err error
		switch getOptions(i).String("acao") {
		case arenaKill:
			err = arena.KillMonster(ctx)
		case arenaSelfEliminate:
			err = arena.SelfEliminate(ctx)
		case arenaDie:
			err = arena.Die(ctx)
		}
		if err != nil {
			return nil, err
		}
		return arenaResponse(us), nil
	}
	return cmd, handler
}

func arenaResponse(us *UserSession) *Response {
	p := us.Shell.Player()
	st := us.Game.Arena.Status()
	progress := fmt.Sprintf("%d/%d %s", st.KilledInPhase, st.MonstersInPhase, format.Bar(int(st.Percent), 20))
	return embed(fmt.Sprintf("⚔️ Arena - Fase %d", st.Phase), progress, ColorDanger,
		field("Próxima fase", fmt.Sprintf("%d monstros", st.NextPhaseMonsters)),
		field("Monstros mortos", strconv.Itoa(p.MonstersKilled)),
		field("Jogadores mortos", strconv.Itoa(p.PlayersKilled)),
		field("Mortes", strconv.Itoa(p.Deaths)),
		field("Autoeliminações", strconv.Itoa(p.SelfEliminations)),
		field("Vida", format.Bar(p.HealthPercent(), 10)),
		field("Saldo", format.WithSymbol(format.Balance(p.WalletBalance))),
	)
}

// ScenariosCommand returns the scenarios command definition and handler
func ScenariosCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "scenarios",
		Description: "Listar os cenários",
		Options: []*discordgo.ApplicationCommandOption{
			stringOption("pais", "Filtrar por país", false),
		},
	}
	handler := func(ctx context.Context, us *UserSession, i *discordgo.InteractionCreate) (*Response, error) {
		if err := us.Shell.SetTab(session.TabScenarios); err != nil {
			return nil, err
		}
		sc := us.Game.Scenarios
		loadErr := sc.Load(ctx)
		if loadErr != nil && !partial(ctx, loadErr) {
			return nil, loadErr
		}
		country := getOptions(i).String("pais")
		if country == "" {
			country = game.FilterAll
		}
		sc.SetCountry(country)

		rows := [][]string{}
		for _, s := range sc.Visible() {
			progress := "-"
			if pr, ok := sc.Progress(s.ID); ok {
				progress = fmt.Sprintf("%d/%d", pr.MonstersDefeated, pr.TotalMonstersRequired)
				if pr.IsPerfect {
					progress += " ⭐"
				} else if pr.IsCompleted {
					progress += " ✓"
				}
			}
			rows = append(rows, []string{strconv.Itoa(s.ID), s.Name, s.Country, strconv.Itoa(s.PhaseNumber), progress})
		}
		return withBanner(embed("🗺️ Cenários",
			codeTable([]string{"ID", "CENÁRIO", "PAÍS", "FASE", "PROGRESSO"}, rows), ColorInfo,
			field("Concluídos", strconv.Itoa(sc.Completed())),
			field("Perfeitos", strconv.Itoa(sc.Perfect())),
		), loadErr), nil
	}
	return cmd, handler
}

// StartScenarioCommand returns the start-scenario command definition and handler
func StartScenarioCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "start-scenario",
		Description: "Iniciar um cenário",
		Options: []*discordgo.ApplicationCommandOption{
			idOption("id", "ID do cenário"),
		},
	}
	handler := func(ctx context.Context, us *UserSession, i *discordgo.InteractionCreate) (*Response, error) {
		id, err := getOptions(i).ID("id")
		if err != nil {
			return nil, err
		}
		if err := us.Shell.SetTab(session.TabScenarios); err != nil {
			return nil, err
		}
		return &Response{}, us.Game.Scenarios.Start(ctx, id)
	}
	return cmd, handler
}

func shopCategoryNames() []string {
	names := make([]string, 0, len(game.ShopCategories))
	for _, c := range game.ShopCategories {
		names = append(names, string(c))
	}
	return names
}

// ShopCommand returns the shop command definition and handler
func ShopCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "shop",
		Description: "Ver a loja",
		Options: []*discordgo.ApplicationCommandOption{
			stringOption("categoria", "Categoria da loja", false, shopCategoryNames()...),
		},
	}
	handler := func(_ context.Context, us *UserSession, i *discordgo.InteractionCreate) (*Response, error) {
		if err := us.Shell.SetTab(session.TabShop); err != nil {
			return nil, err
		}
		categories := game.ShopCategories
		if c := getOptions(i).String("categoria"); c != "" {
			categories = []game.ShopCategory{game.ShopCategory(c)}
		}

		shop := us.Game.Shop
		rows := [][]string{}
		for _, cat := range categories {
			for _, it := range shop.Items(cat) {
				mark := ""
				if !shop.CanAfford(it) {
					mark = "saldo insuficiente"
				}
				rows = append(rows, []string{strconv.Itoa(it.ID), it.Name, it.Bonus(), format.WithSymbol(format.Balance(it.Price)), mark})
			}
		}
		return embed("🛒 Loja", codeTable([]string{"ID", "ITEM", "BÔNUS", "PREÇO", ""}, rows), ColorWarning), nil
	}
	return cmd, handler
}

// BuyCommand returns the buy command definition and handler
func BuyCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "buy",
		Description: "Comprar um item da loja",
		Options: []*discordgo.ApplicationCommandOption{
			idOption("id", "ID do item na loja"),
		},
	}
	handler := func(ctx context.Context, us *UserSession, i *discordgo.InteractionCreate) (*Response, error) {
		id, err := getOptions(i).ID("id")
		if err != nil {
			return nil, err
		}
		if err := us.Shell.SetTab(session.TabShop); err != nil {
			return nil, err
		}
		if err := us.Game.Shop.Buy(ctx, id); err != nil {
			return nil, err
		}
		return balanceLine(us), nil
	}
	return cmd, handler
}

// InventoryCommand returns the inventory command definition and handler
func InventoryCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "inventory",
		Description: "Ver o seu inventário",
		Options: []*discordgo.ApplicationCommandOption{
			stringOption("categoria", "Tipo do item", false, itemTypeNames()...),
			stringOption("raridade", "Raridade", false, rarityNames()...),
			stringOption("busca", "Buscar pelo nome", false),
		},
	}
	handler := func(ctx context.Context, us *UserSession, i *discordgo.InteractionCreate) (*Response, error) {
		if err := us.Shell.SetTab(session.TabInventory); err != nil {
			return nil, err
		}
		inv := us.Game.Inventory
		if err := inv.Load(ctx); err != nil {
			return nil, err
		}
		opts := getOptions(i)
		f := game.DefaultItemFilter()
		if v := opts.String("categoria"); v != "" {
			f.Category = v
		}
		if v := opts.String("raridade"); v != "" {
			f.Rarity = v
		}
		f.Search = opts.String("busca")
		inv.SetFilter(f)

		rows := [][]string{}
		for _, e := range inv.Visible() {
			equipped := ""
			if e.IsEquipped {
				equipped = "equipado"
			}
			rows = append(rows, []string{
				strconv.Itoa(e.ID), e.Item.Name, e.Item.Rarity.Label(), strconv.Itoa(e.Quantity),
				format.WithSymbol(format.Balance(e.Item.CurrentPrice)), equipped,
			})
		}
		return embed("🎒 Inventário", codeTable([]string{"ID", "ITEM", "RARIDADE", "QTD", "VALOR", ""}, rows), ColorInfo), nil
	}
	return cmd, handler
}

func itemTypeNames() []string {
	types := []domain.ItemType{
		domain.ItemTypeWeapon, domain.ItemTypeArmor, domain.ItemTypeAccessory,
		domain.ItemTypeCollectible, domain.ItemTypeConsumable, domain.ItemTypeSpecial,
	}
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, string(t))
	}
	return names
}

func rarityNames() []string {
	rarities := []domain.Rarity{domain.RarityCommon, domain.RarityRare, domain.RarityEpic, domain.RarityLegendary, domain.RarityMythic}
	names := make([]string, 0, len(rarities))
	for _, r := range rarities {
		names = append(names, string(r))
	}
	return names
}

// EquipCommand returns the equip command definition and handler
func EquipCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "equip",
		Description: "Equipar ou desequipar um item do inventário",
		Options: []*discordgo.ApplicationCommandOption{
			idOption("id", "ID da entrada do inventário"),
		},
	}
	handler := func(ctx context.Context, us *UserSession, i *discordgo.InteractionCreate) (*Response, error) {
		id, err := getOptions(i).ID("id")
		if err != nil {
			return nil, err
		}
		if err := us.Shell.SetTab(session.TabInventory); err != nil {
			return nil, err
		}
		inv := us.Game.Inventory
		if len(inv.Entries()) == 0 {
			if err := inv.Load(ctx); err != nil {
				return nil, err
			}
		}
		if err := inv.Equip(ctx, id); err != nil {
			return nil, err
		}
		if e, ok := inv.Entry(id); ok {
			state := "desequipado"
			if e.IsEquipped {
				state = "equipado"
			}
			return text("%s %s.", e.Item.Name, state), nil
		}
		return &Response{}, nil
	}
	return cmd, handler
}

// SellCommand returns the sell command definition and handler. The sale
// only happens from the confirm button.
func SellCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "sell",
		Description: "Vender um item do inventário",
		Options: []*discordgo.ApplicationCommandOption{
			idOption("id", "ID da entrada do inventário"),
		},
	}
	handler := func(_ context.Context, us *UserSession, i *discordgo.InteractionCreate) (*Response, error) {
		id, err := getOptions(i).ID("id")
		if err != nil {
			return nil, err
		}
		if err := us.Shell.SetTab(session.TabInventory); err != nil {
			return nil, err
		}
		return confirmPrompt(game.SellPrompt, Action{Kind: kindConfirm, Verb: verbSell, ID: id}), nil
	}
	return cmd, handler
}

// CardsCommand returns the cards command definition and handler
func CardsCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "cards",
		Description: "Ver o álbum de cartas",
		Options: []*discordgo.ApplicationCommandOption{
			stringOption("serie", "Série", false),
			stringOption("raridade", "Raridade", false, rarityNames()...),
			boolOption("possuidas", "Somente cartas que você possui"),
		},
	}
	handler := func(ctx context.Context, us *UserSession, i *discordgo.InteractionCreate) (*Response, error) {
		if err := us.Shell.SetTab(session.TabCards); err != nil {
			return nil, err
		}
		cards := us.Game.Cards
		loadErr := cards.Load(ctx)
		if loadErr != nil && !partial(ctx, loadErr) {
			return nil, loadErr
		}
		opts := getOptions(i)
		f := game.DefaultCardFilter()
		if v := opts.String("serie"); v != "" {
			f.Series = v
		}
		if v := opts.String("raridade"); v != "" {
			f.Rarity = v
		}
		f.OnlyOwned = opts.Bool("possuidas")
		cards.SetFilter(f)

		rows := [][]string{}
		for _, c := range cards.Visible() {
			qty := "-"
			if pc, ok := cards.Owned(c.ID); ok {
				qty = "x" + strconv.Itoa(pc.Quantity)
			}
			rows = append(rows, []string{strconv.Itoa(c.ID), c.Name, c.CardSeries, c.Rarity.Label(), qty})
		}

		stats := cards.Stats()
		fields := []*discordgo.MessageEmbedField{
			field("Coleção", fmt.Sprintf("%d/%d (%.1f%%)", stats.Owned, stats.Total, stats.Completion)),
		}
		for _, rs := range stats.ByRarity {
			if rs.Total > 0 {
				fields = append(fields, field(rs.Rarity.Label(), fmt.Sprintf("%d/%d", rs.Owned, rs.Total)))
			}
		}
		return withBanner(embed("🃏 Cartas", codeTable([]string{"ID", "CARTA", "SÉRIE", "RARIDADE", "POSSUI"}, rows), ColorAdmin, fields...), loadErr), nil
	}
	return cmd, handler
}

// MiningCommand returns the mining command definition and handler
func MiningCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "mining",
		Description: "Ver a mineração",
	}
	handler := func(ctx context.Context, us *UserSession, _ *discordgo.InteractionCreate) (*Response, error) {
		if err := us.Shell.SetTab(session.TabMining); err != nil {
			return nil, err
		}
		loadErr := us.Game.Mining.Load(ctx)
		if loadErr != nil && !partial(ctx, loadErr) {
			return nil, loadErr
		}
		return withBanner(miningResponse(us), loadErr), nil
	}
	return cmd, handler
}

// MineCommand returns the mine command definition and handler
func MineCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "mine",
		Description: "Iniciar ou parar a mineração",
		Options: []*discordgo.ApplicationCommandOption{
			stringOption("acao", "start ou stop", true, "start", "stop"),
		},
	}
	handler := func(ctx context.Context, us *UserSession, i *discordgo.InteractionCreate) (*Response, error) {
		if err := us.Shell.SetTab(session.TabMining); err != nil {
			return nil, err
		}
		m := us.Game.Mining
		var err error
		switch getOptions(i).String("acao") {
		case "start":
			err = m.Start(ctx)
		case "stop":
			err = m.Stop(ctx)
		default:
			err = fmt.Errorf("%w: ação deve ser start ou stop", domain.ErrInvalidInput)
		}
		if err != nil {
			return nil, err
		}
		return miningResponse(us), nil
	}
	return cmd, handler
}

func miningResponse(us *UserSession) *Response {
	m := us.Game.Mining
	status := m.Status()
	stats := m.Stats()

	state := "Parada"
	if status.Active() {
		state = "Minerando, faltam " + mining.FormatRemaining(m.Remaining())
	}
	fields := []*discordgo.MessageEmbedField{field("Nível", strconv.Itoa(m.Level()))}
	if status != nil {
		fields = append(fields,
			field("Duração", fmt.Sprintf("%d min", status.DurationMinutes)),
			field("Recompensa estimada", format.WithSymbol(format.DoofiCoin(status.EstimatedReward))))
	}
	if stats != nil {
		fields = append(fields,
			field("Sessões", strconv.Itoa(stats.TotalSessions)),
			field("Total minerado", format.WithSymbol(format.DoofiCoin(stats.TotalMined))),
			field("Média por sessão", format.WithSymbol(format.DoofiCoin(stats.AveragePerSession))))
	}
	return embed("⛏️ Mineração", state, ColorWarning, fields...)
}

func leaderboardNames() []string {
	names := make([]string, 0, len(domain.LeaderboardCategories))
	for _, c := range domain.LeaderboardCategories {
		names = append(names, string(c))
	}
	return names
}

// LeaderboardCommand returns the leaderboard command definition and handler
func LeaderboardCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "leaderboard",
		Description: "Ver o ranking",
		Options: []*discordgo.ApplicationCommandOption{
			stringOption("categoria", "Ranking", false, leaderboardNames()...),
		},
	}
	handler := func(ctx context.Context, us *UserSession, i *discordgo.InteractionCreate) (*Response, error) {
		if err := us.Shell.SetTab(session.TabLeaderboard); err != nil {
			return nil, err
		}
		lb := us.Game.Leaderboard
		if c := getOptions(i).String("categoria"); c != "" {
			lb.SetActive(domain.LeaderboardCategory(c))
		}
		loadErr := lb.Load(ctx)
		if loadErr != nil && !partial(ctx, loadErr) {
			return nil, loadErr
		}

		category := lb.Active()
		rows := [][]string{}
		for n, e := range lb.Entries(category) {
			rows = append(rows, []string{strconv.Itoa(n + 1), e.Username, strconv.Itoa(e.Value(category)), strconv.Itoa(e.CurrentPhase)})
		}
		var fields []*discordgo.MessageEmbedField
		if rank := lb.Rank(category); rank > 0 {
			fields = append(fields, field("Sua posição", fmt.Sprintf("%dº", rank)))
		}
		return withBanner(embed("🏆 "+category.Label(),
			codeTable([]string{"#", "JOGADOR", strings.ToUpper(category.StatLabel()), "FASE"}, rows), ColorSuccess, fields...), loadErr), nil
	}
	return cmd, handler
}
