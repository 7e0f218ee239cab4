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
	"github.com/dooficoin/doofigame/internal/console"
	"github.com/dooficoin/doofigame/internal/session"
)

func main() {
	os.Exit(run(os.Stdin, os.Stdout, os.Stderr))
}

// run returns the exit code so deferred cleanup runs before the process
// exits.
func run(stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, "Failed to load config:", config.FormatValidationError(err))
		return 1
	}

	logFile, err := bootstrap.SetupLogger(cfg, "console", nil)
	if err != nil {
		fmt.Fprintln(stderr, "Failed to setup logger:", err)
		return 1
	}
	defer logFile.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api := client.New(cfg.APIURL, client.WithTimeout(cfg.RequestTimeout))
	shell := session.NewShell(api, session.NewFileStore(cfg.TokenFile))

	if err := console.New(stdin, stdout, shell, cfg.AdminPageSize).Run(ctx); err != nil && ctx.Err() == nil {
		slog.Error("Console stopped", "error", err)
		fmt.Fprintln(stderr, err)
		return 1
	}
	slog.Info(bootstrap.LogMsgStopped)
	return 0
}
