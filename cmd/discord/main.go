package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dooficoin/doofigame/internal/bootstrap"
	"github.com/dooficoin/doofigame/internal/client"
	"github.com/dooficoin/doofigame/internal/config"
	"github.com/dooficoin/doofigame/internal/discord"
	"github.com/dooficoin/doofigame/internal/session"
	"github.com/dooficoin/doofigame/internal/status"
)

func main() {
	os.Exit(run(os.Stdout, os.Stderr))
}

// run returns the exit code so deferred cleanup runs before the process
// exits.
func run(stdout, stderr io.Writer) int {
	cfg, err := config.LoadDiscord()
	if err != nil {
		fmt.Fprintln(stderr, "Configuration failed:", config.FormatValidationError(err))
		return 1
	}

	logFile, err := bootstrap.SetupLogger(cfg, "discord", stdout)
	if err != nil {
		fmt.Fprintln(stderr, "Failed to setup logger:", err)
		return 1
	}
	defer logFile.Close()

	api := client.New(cfg.APIURL, client.WithTimeout(cfg.RequestTimeout))
	recorder := status.NewRecorder()

	bot, err := discord.New(discord.Config{
		Token:            cfg.DiscordToken,
		AppID:            cfg.DiscordAppID,
		PerPage:          cfg.AdminPageSize,
		SessionCacheSize: cfg.SessionCacheSize,
		SessionTTL:       cfg.SessionTTL,
	}, api, session.NewKeyedFileStore(cfg.DiscordTokenFile), recorder)
	if err != nil {
		slog.Error("Failed to create bot", "error", err)
		return 1
	}

	statusServer := status.NewServer(cfg.StatusPort, recorder, api.Ping, bot.Connected)
	statusServer.Start()

	bot.Registry.RegisterAll(discord.Factories())

	if cfg.DiscordForceCommands {
		slog.Info("Force command update enabled via environment variable")
	}

	if err := bot.Start(); err != nil {
		slog.Error("Bot failed", "error", err)
		bootstrap.GracefulShutdown(context.Background(),
			bootstrap.Component{Name: "Status server", Stopper: statusServer})
		return 1
	}

	if err := bot.RegisterCommands(bot.Registry, cfg.DiscordForceCommands); err != nil {
		slog.Error("Failed to register commands", "error", err)
		// Don't exit - bot can still run if commands are already registered
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	bootstrap.GracefulShutdown(context.Background(),
		bootstrap.Component{Name: "Discord bot", Stopper: bot},
		bootstrap.Component{Name: "Status server", Stopper: statusServer},
	)
	return 0
}
