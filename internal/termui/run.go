package termui

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
)

// signalNotify and signalStop are replaced in tests.
var (
	signalNotify = signal.Notify
	signalStop   = signal.Stop
)

// Run shows app full screen on the given terminal until the user quits,
// ctx is cancelled or an interrupt arrives.
func Run(ctx context.Context, app *App, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		// interrupts are handled below so the program can shut down cleanly
		tea.WithoutSignalHandler(),
	}
	if in != nil {
		opts = append(opts, tea.WithInput(in))
	}
	if out != nil {
		opts = append(opts, tea.WithOutput(out))
	}
	if f, ok := out.(*os.File); ok && app.bell == nil {
		app.bell = f
	}

	p := tea.NewProgram(app, opts...)

	sigCh := make(chan os.Signal, 1)
	signalNotify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer signalStop(sigCh)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		select {
		case <-ctx.Done():
		case <-sigCh:
		}
		p.Quit()
	}()
	defer wg.Wait()
	defer cancel()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run program: %w", err)
	}
	return nil
}
