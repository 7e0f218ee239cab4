// Package console is the line-oriented terminal front end. One Console
// drives one session: it reads commands, dispatches them to the game and
// admin panels, and prints alerts, confirmations and tables.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dooficoin/doofigame/internal/admin"
	"github.com/dooficoin/doofigame/internal/domain"
	"github.com/dooficoin/doofigame/internal/format"
	"github.com/dooficoin/doofigame/internal/game"
	"github.com/dooficoin/doofigame/internal/logger"
	"github.com/dooficoin/doofigame/internal/metrics"
	"github.com/dooficoin/doofigame/internal/panel"
	"github.com/dooficoin/doofigame/internal/session"
)

const prompt = "> "

// yes lists the answers that confirm a prompt. Anything else declines.
var yes = map[string]bool{"s": true, "sim": true, "y": true, "yes": true}

// Handler runs one command with its arguments.
type Handler func(ctx context.Context, args []string) error

// Command is a registered console command.
type Command struct {
	Name  string
	Usage string
	Help  string
	Run   Handler
}

// Console is the REPL of one session.
type Console struct {
	in    *bufio.Scanner
	out   io.Writer
	shell *session.Shell

	game  *game.Panels
	admin *admin.Panels

	commands map[string]Command
	quit     bool
	// alerts counts alerts shown, so errors a panel already alerted are
	// not printed again.
	alerts int
}

// New wires a console around shell. perPage is the admin page size.
func New(in io.Reader, out io.Writer, shell *session.Shell, perPage int) *Console {
	c := &Console{
		in:       bufio.NewScanner(in),
		out:      out,
		shell:    shell,
		commands: make(map[string]Command),
	}
	ui := panel.UI{
		Alerter:   panel.AlertFunc(c.alert),
		Confirmer: panel.ConfirmFunc(c.confirm),
	}
	c.game = game.NewPanels(game.Env{
		API:            shell.Client(),
		UI:             ui,
		Player:         shell.Player,
		OnPlayerUpdate: shell.UpdatePlayer,
	})
	c.admin = admin.NewPanels(shell.Client(), ui, perPage)

	c.registerSession()
	c.registerGame()
	c.registerAdmin()
	return c
}

// Register adds a command, replacing any previous one with the same name.
func (c *Console) Register(cmd Command) {
	c.commands[cmd.Name] = cmd
}

// Run restores the stored session and reads commands until quit, EOF or
// ctx is cancelled.
func (c *Console) Run(ctx context.Context) error {
	if err := c.shell.Restore(ctx); err == nil {
		c.printf("Sessão restaurada.\n")
	} else if !errors.Is(err, domain.ErrNotAuthenticated) {
		c.printf("Sessão expirada, faça login novamente.\n")
	}
	c.printf("DoofiCoin Game. Digite 'help' para ver os comandos.\n")

	for !c.quit {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.printHeader()
		c.printf(prompt)
		line, ok := c.readLine()
		if !ok {
			return c.in.Err()
		}
		before := c.alerts
		if err := c.Exec(ctx, line); err != nil && (c.alerts == before || errors.Is(err, domain.ErrCancelled)) {
			c.report(err)
		}
	}
	return nil
}

// Exec runs one command line.
func (c *Console) Exec(ctx context.Context, line string) error {
	args, err := splitArgs(line)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return nil
	}

	name := strings.ToLower(args[0])
	cmd, ok := c.commands[name]
	if !ok {
		return fmt.Errorf("%w: comando desconhecido %q", domain.ErrInvalidInput, name)
	}

	ctx, _ = logger.EnsureRequestID(ctx)
	metrics.CommandsTotal.WithLabelValues(metrics.FrontendConsole, name).Inc()
	logger.FromContext(ctx).Debug("Console command", "command", name, "args", len(args)-1)
	return cmd.Run(ctx, args[1:])
}

func (c *Console) report(err error) {
	switch {
	case errors.Is(err, domain.ErrCancelled):
		c.printf("Cancelado.\n")
	case errors.Is(err, domain.ErrNotAuthenticated):
		c.printf("erro: faça login primeiro\n")
	case session.IsSessionError(err):
		c.printf("erro: sessão inválida, faça login novamente\n")
	default:
		c.printf("erro: %s\n", err)
	}
}

func (c *Console) alert(_ context.Context, msg string) {
	c.alerts++
	c.printf("! %s\n", msg)
}

func (c *Console) confirm(_ context.Context, question string) bool {
	c.printf("? %s [s/N] ", question)
	answer, ok := c.readLine()
	if !ok {
		c.printf("\n")
		return false
	}
	return yes[strings.ToLower(strings.TrimSpace(answer))]
}

func (c *Console) readLine() (string, bool) {
	if !c.in.Scan() {
		return "", false
	}
	return c.in.Text(), true
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// printHeader shows player, level, phase, balance and health.
func (c *Console) printHeader() {
	p := c.shell.Player()
	if p == nil {
		c.printf("[desconectado]\n")
		return
	}
	role := ""
	if p.IsAdmin {
		role = " (admin)"
	}
	c.printf("[%s%s | Nível %d | Fase %d | %s | Vida %s | %s]\n",
		p.Username, role, p.Level, p.Phase(),
		format.WithSymbol(format.Balance(p.WalletBalance)),
		format.Bar(p.HealthPercent(), 10),
		c.shell.Tab().Label())
}

func (c *Console) commandNames() []string {
	names := make([]string, 0, len(c.commands))
	for name := range c.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *Console) help(_ context.Context, args []string) error {
	if len(args) > 0 {
		cmd, ok := c.commands[strings.ToLower(args[0])]
		if !ok {
			return fmt.Errorf("%w: comando desconhecido %q", domain.ErrInvalidInput, args[0])
		}
		c.printf("%s\n  %s\n", cmd.Usage, cmd.Help)
		return nil
	}
	rows := make([][]string, 0, len(c.commands))
	for _, name := range c.commandNames() {
		cmd := c.commands[name]
		rows = append(rows, []string{cmd.Usage, cmd.Help})
	}
	c.table([]string{"COMANDO", "DESCRIÇÃO"}, rows)
	return nil
}

// splitArgs splits on whitespace, keeping double-quoted runs together.
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		current strings.Builder
		quoted  bool
		started bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
			started = true
		case !quoted && (r == ' ' || r == '\t'):
			if started {
				args = append(args, current.String())
				current.Reset()
				started = false
			}
		default:
			current.WriteRune(r)
			started = true
		}
	}
	if quoted {
		return nil, fmt.Errorf("%w: aspas sem fechamento", domain.ErrInvalidInput)
	}
	if started {
		args = append(args, current.String())
	}
	return args, nil
}
