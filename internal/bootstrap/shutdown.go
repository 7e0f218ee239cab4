package bootstrap

import (
	"context"
	"log/slog"
)

// Stopper is anything with a context-bounded shutdown.
type Stopper interface {
	Stop(context.Context) error
}

// Component names a Stopper for shutdown logging.
type Component struct {
	Name    string
	Stopper Stopper
}

// GracefulShutdown stops components in the given order, outermost first.
// Errors are logged but do not stop the sequence. Nil stoppers are skipped.
func GracefulShutdown(ctx context.Context, components ...Component) {
	slog.Info(LogMsgShuttingDown)

	for _, c := range components {
		if c.Stopper == nil {
			continue
		}
		if err := c.Stopper.Stop(ctx); err != nil {
			slog.Error(c.Name+LogMsgComponentShutdownFailed, "error", err)
		}
	}

	slog.Info(LogMsgStopped)
}
