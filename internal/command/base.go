// Package command implements the pocketdos subcommands: the full-screen
// game, the line REPL, batch execution and configuration management.
package command

import (
	"context"
	"flag"
	"io"
	"os"

	"github.com/joeycumines/pocket-dos/internal/config"
)

// Command is a pocketdos subcommand.
type Command interface {
	// Name returns the command name.
	Name() string

	// Description returns a short description of the command.
	Description() string

	// Usage returns the usage string for the command.
	Usage() string

	// SetupFlags registers the command's flags. It is called once, before
	// the arguments are parsed.
	SetupFlags(fs *flag.FlagSet)

	// Execute runs the command with the arguments left after flag parsing.
	Execute(args []string, stdout, stderr io.Writer) error
}

// Env is the process state shared by commands that talk to the terminal or
// read the configuration.
type Env struct {
	// Ctx is cancelled when the command should stop.
	Ctx context.Context
	// Stdin is the input stream. Interactive commands need a terminal here.
	Stdin io.Reader
	// Config is the loaded configuration, never nil.
	Config *config.Config
	// ConfigPath is where config changes are persisted, or "" to skip
	// persistence.
	ConfigPath string
}

// DefaultEnv returns an Env over the process's stdin with an empty config.
func DefaultEnv() Env {
	return Env{
		Ctx:    context.Background(),
		Stdin:  os.Stdin,
		Config: config.NewConfig(),
	}
}

func (e Env) context() context.Context {
	if e.Ctx == nil {
		return context.Background()
	}
	return e.Ctx
}

func (e Env) config() *config.Config {
	if e.Config == nil {
		return config.NewConfig()
	}
	return e.Config
}

// BaseCommand provides a basic implementation that other commands can embed.
type BaseCommand struct {
	name        string
	description string
	usage       string
}

// NewBaseCommand creates a new BaseCommand.
func NewBaseCommand(name, description, usage string) *BaseCommand {
	return &BaseCommand{
		name:        name,
		description: description,
		usage:       usage,
	}
}

// Name returns the command name.
func (c *BaseCommand) Name() string {
	return c.name
}

// Description returns the command description.
func (c *BaseCommand) Description() string {
	return c.description
}

// Usage returns the command usage.
func (c *BaseCommand) Usage() string {
	return c.usage
}

// SetupFlags registers no flags.
func (c *BaseCommand) SetupFlags(fs *flag.FlagSet) {}
