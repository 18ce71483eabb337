package command

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/joeycumines/pocket-dos/internal/gamestate"
	"github.com/joeycumines/pocket-dos/internal/termui"
)

// errNoTerminal is returned when play is not attached to a terminal.
var errNoTerminal = errors.New("play needs an interactive terminal; try 'pocketdos repl' or 'pocketdos exec'")

// PlayCommand runs the full-screen game.
type PlayCommand struct {
	*BaseCommand
	env  Env
	page string
	logs logFlags

	// isTerminal is replaced in tests.
	isTerminal func(r io.Reader) bool
	// run is replaced in tests.
	run func(env Env, app *termui.App, stdout io.Writer) error
}

// NewPlayCommand creates a new play command.
func NewPlayCommand(env Env) *PlayCommand {
	return &PlayCommand{
		BaseCommand: NewBaseCommand(
			"play",
			"Play Pocket DOS full screen (the default)",
			"play [options]",
		),
		env:        env,
		isTerminal: readerIsTerminal,
		run: func(env Env, app *termui.App, stdout io.Writer) error {
			return termui.Run(env.context(), app, env.Stdin, stdout)
		},
	}
}

// SetupFlags configures the flags for the play command.
func (c *PlayCommand) SetupFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.page, "page", "", fmt.Sprintf("Open this page instead of the saved one %v", gamestate.Pages()))
	c.logs.register(fs)
}

// Execute runs the game until the user quits.
func (c *PlayCommand) Execute(args []string, stdout, stderr io.Writer) error {
	if len(args) > 0 {
		_, _ = fmt.Fprintf(stderr, "unexpected arguments: %v\n", args)
		return fmt.Errorf("unexpected arguments")
	}
	if !c.isTerminal(c.env.Stdin) {
		return errNoTerminal
	}

	game, err := openSaveGame(c.env, c.logs)
	if err != nil {
		return err
	}
	defer func() { _ = game.Close() }()

	page := c.page
	if page == "" {
		page = game.settings.StartPage
	}
	if page != "" {
		p, err := gamestate.ParsePage(page)
		if err != nil {
			return err
		}
		if err := game.state.SetPage(p); err != nil {
			_, _ = fmt.Fprintf(stderr, "Warning: %v\n", err)
		}
	}

	logger := game.log.Component("play")
	logger.Info("play started", "page", string(game.state.Page()))

	app := termui.New(termui.Options{
		State:    game.state,
		Scores:   game.store,
		Settings: game.settings,
		Logger:   game.log.Logger,
	})
	defer app.Close()

	err = c.run(c.env, app, stdout)
	logger.Info("play finished", "page", string(game.state.Page()), "error", err)
	return err
}

func readerIsTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
