package discord

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/dooficoin/doofigame/internal/format"
	"github.com/dooficoin/doofigame/internal/session"
)

// LoginCommand returns the login command definition and handler
func LoginCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "login",
		Description: "Entrar com uma conta existente",
		Options: []*discordgo.ApplicationCommandOption{
			stringOption("conta", "Nome de usuário ou email", true),
		},
	}
	handler := func(ctx context.Context, us *UserSession, i *discordgo.InteractionCreate) (*Response, error) {
		account := getOptions(i).String("conta")
		username, email := account, ""
		if strings.Contains(account, "@") {
			username, email = "", account
		}
		p, err := us.Shell.Login(ctx, username, email)
		if err != nil {
			return nil, err
		}
		return text("✅ Bem-vindo, **%s**!", p.Username), nil
	}
	return cmd, handler
}

// RegisterCommand returns the register command definition and handler
func RegisterCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "register",
		Description: "Criar uma conta e o seu jogador",
		Options: []*discordgo.ApplicationCommandOption{
			stringOption("usuario", "Nome de usuário", true),
			stringOption("email", "Email", true),
		},
	}
	handler := func(ctx context.Context, us *UserSession, i *discordgo.InteractionCreate) (*Response, error) {
		opts := getOptions(i)
		p, err := us.Shell.Register(ctx, opts.String("usuario"), opts.String("email"))
		if err != nil {
			return nil, err
		}
		return text("✅ Conta criada. Bem-vindo, **%s**!", p.Username), nil
	}
	return cmd, handler
}

// LogoutCommand returns the logout command definition and handler
func LogoutCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "logout",
		Description: "Encerrar a sessão",
	}
	handler := func(ctx context.Context, us *UserSession, _ *discordgo.InteractionCreate) (*Response, error) {
		us.Shell.Logout(ctx)
		return text(MsgLoggedOut), nil
	}
	return cmd, handler
}

// ProfileCommand returns the profile command definition and handler
func ProfileCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "profile",
		Description: "Ver o seu perfil",
	}
	handler := func(ctx context.Context, us *UserSession, _ *discordgo.InteractionCreate) (*Response, error) {
		if err := us.Shell.SetTab(session.TabProfile); err != nil {
			return nil, err
		}
		pr := us.Game.Profile
		if err := pr.Load(ctx); err != nil {
			return nil, err
		}

		p := us.Shell.Player()
		fields := []*discordgo.MessageEmbedField{
			field("Nível", strconv.Itoa(p.Level)),
			field("Fase", strconv.Itoa(p.Phase())),
			field("Saldo", format.WithSymbol(format.Balance(p.WalletBalance))),
			field("Vida", format.Bar(p.HealthPercent(), 10)),
			field("Poder", format.Bar(p.PowerPercent(), 10)),
		}
		if st := pr.Stats(); st != nil {
			fields = append(fields,
				field("Itens coletados", strconv.Itoa(st.ItemsCollected)),
				field("Cartas coletadas", strconv.Itoa(st.CardsCollected)),
				field("Cenários concluídos", strconv.Itoa(st.ScenariosCompleted)),
				field("Tempo de jogo", fmt.Sprintf("%d min", st.PlayTimeMinutes)),
			)
		}
		title := "👤 " + p.Username
		if p.IsAdmin {
			title += " (admin)"
		}
		return embed(title, p.Email, ColorInfo, fields...), nil
	}
	return cmd, handler
}

// balanceLine shows the player's balance after a wallet change.
func balanceLine(us *UserSession) *Response {
	p := us.Shell.Player()
	if p == nil {
		return &Response{}
	}
	return text("💰 Saldo: %s", format.WithSymbol(format.Balance(p.WalletBalance)))
}
