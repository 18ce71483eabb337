package command

import (
	"flag"
	"fmt"
	"io"

	"github.com/joeycumines/pocket-dos/internal/circle"
	"github.com/joeycumines/pocket-dos/internal/story"
)

// NewGameCommand puts the listing back up: the next play starts on the
// marketplace ad.
type NewGameCommand struct {
	*BaseCommand
	env    Env
	logs   logFlags
	scores bool
}

// NewNewGameCommand creates a new newgame command.
func NewNewGameCommand(env Env) *NewGameCommand {
	return &NewGameCommand{
		BaseCommand: NewBaseCommand(
			"newgame",
			"Start over from the marketplace listing",
			"newgame [options]",
		),
		env: env,
	}
}

// SetupFlags configures the flags for the newgame command.
func (c *NewGameCommand) SetupFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.scores, "scores", false, "Also clear the PERFECT CIRCLE high score")
	c.logs.register(fs)
}

// Execute resets the saved page.
func (c *NewGameCommand) Execute(args []string, stdout, stderr io.Writer) error {
	if len(args) > 0 {
		_, _ = fmt.Fprintf(stderr, "unexpected arguments: %v\n", args)
		return fmt.Errorf("unexpected arguments")
	}
	game, err := openSaveGame(c.env, c.logs)
	if err != nil {
		return err
	}
	defer func() { _ = game.Close() }()

	if err := game.state.NewGame(); err != nil {
		return fmt.Errorf("failed to save new game: %w", err)
	}
	if c.scores {
		if err := game.store.Remove(circle.HighScoreKey); err != nil {
			return fmt.Errorf("failed to clear high score: %w", err)
		}
		_, _ = fmt.Fprintln(stdout, "High score cleared.")
	}
	game.log.Component("newgame").Info("new game", "scores", c.scores)
	_, _ = fmt.Fprintf(stdout, "The %s is back up on %s.\n", story.ItemModel, story.Brand)
	return nil
}
