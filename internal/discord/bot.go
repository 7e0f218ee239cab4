package discord

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/dooficoin/doofigame/internal/client"
	"github.com/dooficoin/doofigame/internal/logger"
	"github.com/dooficoin/doofigame/internal/metrics"
	"github.com/dooficoin/doofigame/internal/session"
	"github.com/dooficoin/doofigame/internal/status"
)

// Bot represents the Discord bot
type Bot struct {
	Session  *discordgo.Session
	API      *client.Client
	AppID    string
	Registry *CommandRegistry
	Sessions *Sessions

	recorder *status.Recorder
}

// Config holds the bot configuration
type Config struct {
	Token            string
	AppID            string
	PerPage          int
	SessionCacheSize int
	SessionTTL       time.Duration
}

// New creates a new Discord bot. Tokens of each Discord user are kept in
// store under the user id.
func New(cfg Config, api *client.Client, store *session.KeyedFileStore, recorder *status.Recorder) (*Bot, error) {
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}
	if recorder == nil {
		recorder = status.NewRecorder()
	}

	return &Bot{
		Session:  s,
		API:      api,
		AppID:    cfg.AppID,
		Registry: NewCommandRegistry(),
		Sessions: NewSessions(api, store, cfg.PerPage, cfg.SessionCacheSize, cfg.SessionTTL),
		recorder: recorder,
	}, nil
}

// Start opens the gateway connection
func (b *Bot) Start() error {
	b.Session.AddHandler(b.ready)
	b.Session.AddHandler(b.interactionCreate)

	if err := b.Session.Open(); err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}

	slog.Info("Discord bot is now running")
	return nil
}

// Stop closes the gateway connection
func (b *Bot) Stop(context.Context) error {
	b.Sessions.Purge()
	return b.Session.Close()
}

// Connected reports whether the gateway is up.
func (b *Bot) Connected() bool {
	return b.Session != nil && b.Session.DataReady
}

func (b *Bot) ready(s *discordgo.Session, r *discordgo.Ready) {
	slog.Info("Bot is ready", "user", r.User.Username)
}

func (b *Bot) interactionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	b.Dispatch(context.Background(), s, i)
}

// Dispatch routes one interaction: slash commands to the registry, button
// clicks to the component handlers.
func (b *Bot) Dispatch(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx, _ = logger.EnsureRequestID(ctx)

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		b.handleCommand(ctx, s, i)
	case discordgo.InteractionMessageComponent:
		b.handleComponent(ctx, s, i)
	}
}

func (b *Bot) record(name string) {
	b.recorder.RecordCommand()
	metrics.CommandsTotal.WithLabelValues(metrics.FrontendDiscord, name).Inc()
}

func (b *Bot) handleCommand(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	name := i.ApplicationCommandData().Name
	handler, ok := b.Registry.Handlers[name]
	if !ok {
		slog.Warn("Unknown command", "command", name)
		return
	}
	b.record(name)

	if !deferResponse(s, i, discordgo.InteractionResponseDeferredChannelMessageWithSource) {
		return
	}

	user := getInteractionUser(i)
	logger.FromContext(ctx).Debug("Discord command", "command", name, "user_id", user.ID)

	us := b.Sessions.Get(ctx, user.ID)
	resp := us.Run(func() (*Response, error) {
		return handler(ctx, us, i)
	})
	editResponse(s, i, resp)
}

func (b *Bot) handleComponent(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	action, err := parseCustomID(i.MessageComponentData().CustomID)
	if err != nil {
		slog.Warn("Unknown component", "custom_id", i.MessageComponentData().CustomID)
		return
	}
	b.record("button:" + action.Kind)

	if !deferResponse(s, i, discordgo.InteractionResponseDeferredMessageUpdate) {
		return
	}

	us := b.Sessions.Get(ctx, getInteractionUser(i).ID)
	resp := us.Run(func() (*Response, error) {
		return handleAction(ctx, us, action)
	})
	editResponse(s, i, resp)
}
