package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/joeycumines/pocket-dos/internal/command"
	"github.com/joeycumines/pocket-dos/internal/config"
)

const version = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Warning: cannot locate config file: %v\n", err)
	}
	cfg := config.NewConfig()
	if configPath != "" {
		if loaded, err := config.LoadFromPath(configPath); err != nil {
			_, _ = fmt.Fprintf(stderr, "Warning: ignoring config: %v\n", err)
		} else {
			cfg = loaded
		}
	}
	for _, w := range cfg.Warnings {
		_, _ = fmt.Fprintf(stderr, "Warning: config: %s\n", w)
	}

	env := command.Env{
		Ctx:        ctx,
		Stdin:      stdin,
		Config:     cfg,
		ConfigPath: configPath,
	}

	registry := command.NewRegistry()
	helpCmd := command.NewHelpCommand(registry)
	registry.Register(helpCmd)
	registry.Register(command.NewVersionCommand(version))
	registry.Register(command.NewConfigCommand(cfg, configPath))
	registry.Register(command.NewInitCommand(configPath))
	registry.Register(command.NewPlayCommand(env))
	registry.Register(command.NewReplCommand(env))
	registry.Register(command.NewExecCommand(env))
	registry.Register(command.NewNewGameCommand(env))
	registry.Register(command.NewCompletionCommand(registry))
	registry.SetDefault("play")

	var cmd command.Command
	var cmdArgs []string
	switch {
	case len(args) == 0:
		if cmd, err = registry.Default(); err != nil {
			return err
		}
	case args[0] == "-h" || args[0] == "--help":
		return helpCmd.Execute(nil, stdout, stderr)
	default:
		cmd, err = registry.Get(args[0])
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "Unknown command: %s\n", args[0])
			_, _ = fmt.Fprintln(stderr, "Use 'pocketdos help' to see available commands.")
			return err
		}
		cmdArgs = args[1:]
	}

	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		_, _ = fmt.Fprintf(stderr, "Usage: pocketdos %s\n", cmd.Usage())
		_, _ = fmt.Fprintf(stderr, "\n%s\n\n", cmd.Description())
		_, _ = fmt.Fprintln(stderr, "Options:")
		fs.PrintDefaults()
	}
	cmd.SetupFlags(fs)
	if err := fs.Parse(cmdArgs); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	return cmd.Execute(fs.Args(), stdout, stderr)
}
