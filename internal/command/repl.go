package command

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	prompt "github.com/joeycumines/go-prompt"
	istrings "github.com/joeycumines/go-prompt/strings"

	"github.com/joeycumines/pocket-dos/internal/argv"
	"github.com/joeycumines/pocket-dos/internal/config"
	"github.com/joeycumines/pocket-dos/internal/console"
	"github.com/joeycumines/pocket-dos/internal/sched"
	"github.com/joeycumines/pocket-dos/internal/vfs"
)

// clearScreen homes the cursor and clears the terminal.
const clearScreen = "\x1b[H\x1b[2J"

// ReplCommand runs the console as a line-oriented shell, without the
// full-screen UI.
type ReplCommand struct {
	*BaseCommand
	env  Env
	logs logFlags

	// isTerminal is replaced in tests.
	isTerminal func(r io.Reader) bool
}

// NewReplCommand creates a new repl command.
func NewReplCommand(env Env) *ReplCommand {
	return &ReplCommand{
		BaseCommand: NewBaseCommand(
			"repl",
			"Use the Pocket DOS console as a line shell",
			"repl [options]",
		),
		env:        env,
		isTerminal: readerIsTerminal,
	}
}

// SetupFlags configures the flags for the repl command.
func (c *ReplCommand) SetupFlags(fs *flag.FlagSet) {
	c.logs.register(fs)
}

// Execute boots the console and reads commands until EXIT, QUIT or end of
// input.
func (c *ReplCommand) Execute(args []string, stdout, stderr io.Writer) error {
	if len(args) > 0 {
		_, _ = fmt.Fprintf(stderr, "unexpected arguments: %v\n", args)
		return fmt.Errorf("unexpected arguments")
	}
	cfg := c.env.config()
	log, err := openLogger(c.logs, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Close() }()

	ctx := c.env.context()
	interactive := c.isTerminal(c.env.Stdin)
	sh := newLineShell(config.ResolveSettings(cfg, nil), stdout, interactive, log.Component("repl"))
	if err := sh.boot(ctx); err != nil {
		return err
	}
	if interactive {
		return sh.runPrompt(ctx)
	}
	return sh.runLines(ctx, c.env.Stdin)
}

// lineShell drives a console from whole input lines, streaming the
// transcript to out as it grows.
type lineShell struct {
	console *console.Console
	driver  *sched.Driver
	out     io.Writer
	logger  *slog.Logger
	// interactive hosts echo input themselves and draw their own "> ".
	interactive bool
	// shown is the part of the transcript already accounted for.
	shown string
}

func newLineShell(set config.Settings, out io.Writer, interactive bool, logger *slog.Logger) *lineShell {
	s := sched.New()
	return &lineShell{
		console: console.NewFromSettings(set, s, logger,
			console.WithHost(bellHost{out: out}),
			console.WithBlinkInterval(0),
		),
		driver:      &sched.Driver{Scheduler: s},
		out:         out,
		logger:      logger,
		interactive: interactive,
	}
}

// bellHost rings the terminal bell for each tone.
type bellHost struct {
	console.NopHost
	out io.Writer
}

func (h bellHost) Beep(int, int) { _, _ = io.WriteString(h.out, "\a") }

func (sh *lineShell) boot(ctx context.Context) error {
	sh.console.Boot(false)
	return sh.settle(ctx)
}

// execute submits line and streams the result. Lines typed while the
// console is busy are dropped.
func (sh *lineShell) execute(ctx context.Context, line string) error {
	before := sh.console.Session().Output
	if !sh.console.Run(line) {
		sh.logger.Debug("line dropped", "line", line)
		return nil
	}
	if echoed := before + line + "\n"; sh.interactive && strings.HasPrefix(sh.console.Session().Output, echoed) {
		sh.shown = echoed
	}
	return sh.settle(ctx)
}

// settle runs the clock until the prompt returns. Demo frames are not
// streamed, only the final one.
func (sh *lineShell) settle(ctx context.Context) error {
	err := sh.driver.RunUntil(ctx, func() bool {
		done := sh.console.Ready() || sh.console.Suspended() != ""
		if done || sh.console.Animating() == "" {
			sh.flush()
		}
		return done
	})
	if err != nil {
		return err
	}
	if program := sh.console.Suspended(); program != "" {
		sh.logger.Info("program needs the full-screen ui", "program", program)
		_, _ = fmt.Fprintf(sh.out, "%s runs full screen. Start 'pocketdos play' to use it.\n", strings.ToUpper(program))
		sh.console.Resume()
		sh.flush()
	}
	return nil
}

// flush writes the transcript added since the last flush. A transcript
// that no longer extends what was shown (CLS, REBOOT) is written in full.
func (sh *lineShell) flush() {
	out := sh.console.Session().Output
	var delta string
	if strings.HasPrefix(out, sh.shown) {
		delta = out[len(sh.shown):]
	} else {
		if sh.interactive {
			_, _ = io.WriteString(sh.out, clearScreen)
		}
		delta = out
	}
	sh.shown = out
	if sh.interactive && sh.console.Ready() {
		// the prompt's own "> " is drawn by the line editor
		delta = strings.TrimSuffix(delta, "> ")
	}
	if delta != "" {
		_, _ = io.WriteString(sh.out, delta)
	}
}

func isExitLine(line string) bool {
	switch strings.ToUpper(strings.TrimSpace(line)) {
	case "EXIT", "QUIT":
		return true
	}
	return false
}

// runLines reads commands from r, one per line.
func (sh *lineShell) runLines(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if isExitLine(line) {
			_, _ = io.WriteString(sh.out, line+"\n")
			return nil
		}
		if err := sh.execute(ctx, line); err != nil {
			return err
		}
	}
	_, _ = io.WriteString(sh.out, "\n")
	return scanner.Err()
}

// executeAll runs each line of a submission, which holds several when
// text was pasted, stopping at EXIT or QUIT.
func (sh *lineShell) executeAll(ctx context.Context, in string) (exit bool, err error) {
	for _, line := range strings.Split(strings.ReplaceAll(in, "\r\n", "\n"), "\n") {
		if isExitLine(line) {
			return true, nil
		}
		if strings.TrimSpace(line) == "" && strings.Contains(in, "\n") {
			continue
		}
		if err := sh.execute(ctx, line); err != nil {
			return false, err
		}
	}
	return false, nil
}

// runPrompt reads commands with a line editor offering completion and
// history.
func (sh *lineShell) runPrompt(ctx context.Context) error {
	var (
		runErr  error
		exiting bool
	)
	p := prompt.New(
		func(in string) {
			exiting, runErr = sh.executeAll(ctx, in)
		},
		prompt.WithPrefix("> "),
		prompt.WithPrefixTextColor(prompt.Green),
		prompt.WithInputTextColor(prompt.Green),
		prompt.WithSuggestionTextColor(prompt.Black),
		prompt.WithSuggestionBGColor(prompt.Green),
		prompt.WithSelectedSuggestionTextColor(prompt.Green),
		prompt.WithSelectedSuggestionBGColor(prompt.Black),
		prompt.WithDescriptionTextColor(prompt.Black),
		prompt.WithDescriptionBGColor(prompt.DarkGreen),
		prompt.WithCompleter(sh.complete),
		prompt.WithExitChecker(func(in string, breakline bool) bool {
			return breakline && (exiting || runErr != nil)
		}),
		prompt.WithReader(prompt.NewStdinReader()),
		prompt.WithWriter(prompt.NewStdoutWriter()),
	)
	p.Run()
	if runErr != nil {
		return runErr
	}
	return ctx.Err()
}

// complete adapts suggest to the line editor.
func (sh *lineShell) complete(d prompt.Document) ([]prompt.Suggest, istrings.RuneNumber, istrings.RuneNumber) {
	suggestions, start, end := sh.suggest(d.TextBeforeCursor())
	return suggestions, istrings.RuneNumber(start), istrings.RuneNumber(end)
}

// suggest completes the word before the cursor: command names first, then
// programs after RUN, files after TYPE and directories after CD. start and
// end are the rune span the suggestion replaces.
func (sh *lineShell) suggest(before string) (suggestions []prompt.Suggest, start, end int) {
	completed, current := argv.BeforeCursor(before)
	start, end = current.Start, current.End
	word := strings.ToUpper(current.Text)

	add := func(text, description string) {
		if strings.HasPrefix(text, word) {
			suggestions = append(suggestions, prompt.Suggest{Text: text, Description: description})
		}
	}

	if len(completed) == 0 {
		for _, b := range sh.console.Interpreter().Commands() {
			add(b.Name, b.Usage)
		}
		add("EXIT", "leave the shell")
		return suggestions, start, end
	}
	if len(completed) > 1 {
		return nil, start, end
	}

	in := sh.console.Interpreter()
	cwd := sh.console.Session().Cwd
	dir, err := in.FS().Dir(cwd)
	if err != nil {
		return nil, start, end
	}
	switch strings.ToUpper(completed[0]) {
	case "RUN":
		for _, name := range in.Executables(cwd) {
			add(strings.TrimSuffix(name, ".EXE"), "program")
		}
	case "TYPE":
		for _, e := range dir.List() {
			if e.Kind == vfs.KindFile {
				add(e.Name, "file")
			}
		}
	case "CD":
		if len(cwd) > 1 {
			add("..", "parent directory")
		}
		for _, e := range dir.List() {
			if e.Kind == vfs.KindDirectory {
				add(e.Name, "directory")
			}
		}
	}
	return suggestions, start, end
}
