package command

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/joeycumines/pocket-dos/internal/config"
	"github.com/joeycumines/pocket-dos/internal/console"
	"github.com/joeycumines/pocket-dos/internal/sched"
)

// settleLimit bounds the virtual time one command may take.
const settleLimit = time.Minute

// ExecCommand runs console commands without a terminal and prints the
// transcript.
type ExecCommand struct {
	*BaseCommand
	env   Env
	logs  logFlags
	quiet bool
}

// NewExecCommand creates a new exec command.
func NewExecCommand(env Env) *ExecCommand {
	return &ExecCommand{
		BaseCommand: NewBaseCommand(
			"exec",
			"Run console commands and print the transcript",
			"exec [options] [command...]  (reads commands from stdin when none are given)",
		),
		env: env,
	}
}

// SetupFlags configures the flags for the exec command.
func (c *ExecCommand) SetupFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.quiet, "quiet", false, "Omit the boot messages from the transcript")
	c.logs.register(fs)
}

// Execute boots instantly, runs each command in turn on the virtual clock
// and writes the transcript. Each argument is one command line.
func (c *ExecCommand) Execute(args []string, stdout, stderr io.Writer) error {
	lines := args
	if len(lines) == 0 {
		if c.env.Stdin == nil {
			return fmt.Errorf("no commands given")
		}
		scanner := bufio.NewScanner(c.env.Stdin)
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("failed to read commands: %w", err)
		}
	}

	cfg := c.env.config()
	log, err := openLogger(c.logs, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Close() }()
	logger := log.Component("exec")

	set := config.ResolveSettings(cfg, nil)
	set.FastBoot = true
	con := console.NewFromSettings(set, sched.New(), log.Logger, console.WithBlinkInterval(0))
	con.Boot(false)
	if !con.Settle(settleLimit) {
		return fmt.Errorf("console did not boot")
	}

	// the boot messages end where the first prompt line starts
	booted := con.Session().Output
	booted = booted[:strings.LastIndex(booted, "\n")+1]

	for _, line := range lines {
		if !con.Run(line) {
			return fmt.Errorf("console is not accepting input")
		}
		if !con.Settle(settleLimit) && con.Suspended() == "" {
			return fmt.Errorf("command did not finish: %s", line)
		}
		if program := con.Suspended(); program != "" {
			logger.Info("skipped full-screen program", "program", program)
			con.Resume()
		}
	}

	out := con.Session().Output
	if c.quiet {
		out = strings.TrimPrefix(out, booted)
	}
	_, _ = io.WriteString(stdout, out+"\n")
	return nil
}
