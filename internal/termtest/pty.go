//go:build unix

// Package termtest drives a program attached to a pseudo terminal, for
// end-to-end tests of the interactive commands.
package termtest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/creack/pty"

	"github.com/joeycumines/pocket-dos/internal/testutil"
)

// Options configure a Console.
type Options struct {
	// Args are passed to the program.
	Args []string
	// Env is appended to the inherited environment.
	Env []string
	// Dir is the working directory.
	Dir string
	// Timeout bounds each Expect. Defaults to 10s.
	Timeout time.Duration
	// Rows and Cols size the terminal. Default 24x80.
	Rows, Cols uint16
}

// Console is a running program and everything it has written.
type Console struct {
	cmd        *exec.Cmd
	ptm        *os.File
	timeout    time.Duration
	rows, cols int

	mu     sync.Mutex
	output strings.Builder

	readDone chan struct{}
	exited   chan struct{}
	waitErr  error
	closed   bool
}

// Start runs name with args under a new pseudo terminal. Output is captured
// in the background until the program exits.
func Start(ctx context.Context, name string, opts Options) (*Console, error) {
	cmd := exec.CommandContext(ctx, name, opts.Args...)
	cmd.Env = append(os.Environ(), "TERM=xterm-256color")
	cmd.Env = append(cmd.Env, opts.Env...)
	cmd.Dir = opts.Dir

	size := &pty.Winsize{Rows: opts.Rows, Cols: opts.Cols}
	if size.Rows == 0 {
		size.Rows = 24
	}
	if size.Cols == 0 {
		size.Cols = 80
	}
	ptm, err := pty.StartWithSize(cmd, size)
	if err != nil {
		return nil, fmt.Errorf("failed to start %s with pty: %w", name, err)
	}

	c := &Console{
		cmd:      cmd,
		ptm:      ptm,
		timeout:  opts.Timeout,
		rows:     int(size.Rows),
		cols:     int(size.Cols),
		readDone: make(chan struct{}),
		exited:   make(chan struct{}),
	}
	if c.timeout <= 0 {
		c.timeout = 10 * time.Second
	}
	go c.read()
	go func() {
		c.waitErr = cmd.Wait()
		close(c.exited)
	}()
	return c, nil
}

func (c *Console) read() {
	defer close(c.readDone)
	buf := make([]byte, 4096)
	for {
		n, err := c.ptm.Read(buf)
		if n > 0 {
			c.mu.Lock()
			c.output.Write(buf[:n])
			c.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

// Output returns everything written so far.
func (c *Console) Output() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.output.String()
}

// OutputLen is an offset for ExpectSince. Take it before sending input.
func (c *Console) OutputLen() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.output.Len()
}

// Send types s a rune at a time.
func (c *Console) Send(s string) error {
	for _, r := range s {
		if _, err := c.ptm.WriteString(string(r)); err != nil {
			return fmt.Errorf("failed to write input: %w", err)
		}
		time.Sleep(5 * time.Millisecond)
	}
	return nil
}

// SendLine types s and presses enter. Enter is sent once the echo has
// settled, so line editors that poll their input see it as a key of its
// own rather than the tail of a paste.
func (c *Console) SendLine(s string) error {
	if err := c.Send(s); err != nil {
		return err
	}
	if err := c.Quiet(echoQuiet); err != nil {
		return err
	}
	return c.SendKey("enter")
}

// echoQuiet is how long SendLine waits for output to stop before enter.
const echoQuiet = 100 * time.Millisecond

// Quiet waits until nothing has been written for d.
func (c *Console) Quiet(d time.Duration) error {
	last, since := c.OutputLen(), time.Now()
	err := testutil.Poll(context.Background(), func() bool {
		if n := c.OutputLen(); n != last {
			last, since = n, time.Now()
		}
		return time.Since(since) >= d
	}, c.timeout, 10*time.Millisecond)
	if err != nil {
		return fmt.Errorf("output did not settle for %v: %w", d, err)
	}
	return nil
}

// keys maps key names to the bytes a terminal sends for them.
var keys = map[string]string{
	"enter":     "\r",
	"tab":       "\t",
	"esc":       "\x1b",
	"backspace": "\x7f",
	"ctrl+c":    "\x03",
	"ctrl+d":    "\x04",
	"ctrl+j":    "\n",
	"up":        "\x1b[A",
	"down":      "\x1b[B",
	"right":     "\x1b[C",
	"left":      "\x1b[D",
	"f1":        "\x1bOP",
	"f2":        "\x1bOQ",
	"f3":        "\x1bOR",
	"f4":        "\x1bOS",
}

// SendKey sends a named key, such as "enter" or "ctrl+c".
func (c *Console) SendKey(name string) error {
	seq, ok := keys[strings.ToLower(name)]
	if !ok {
		return fmt.Errorf("unknown key: %s", name)
	}
	_, err := c.ptm.WriteString(seq)
	return err
}

// Expect waits for text anywhere in the output.
func (c *Console) Expect(text string) error {
	return c.ExpectSince(text, 0)
}

// ExpectSince waits for text in the output written after offset start.
func (c *Console) ExpectSince(text string, start int) error {
	err := testutil.Poll(context.Background(), func() bool {
		out := c.Output()
		return start <= len(out) && strings.Contains(out[start:], text)
	}, c.timeout, 10*time.Millisecond)
	if err != nil {
		return fmt.Errorf("expected %q: %w\noutput:\n%s", text, err, c.Output())
	}
	return nil
}

// Wait waits for the program to exit and returns its exit code.
func (c *Console) Wait() (int, error) {
	select {
	case <-c.exited:
		var exitErr *exec.ExitError
		if errors.As(c.waitErr, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		if c.waitErr != nil {
			return -1, c.waitErr
		}
		return 0, nil
	case <-time.After(c.timeout):
		return -1, fmt.Errorf("program still running after %v", c.timeout)
	}
}

// Close kills the program if it is still running and releases the
// terminal.
func (c *Console) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	select {
	case <-c.exited:
	default:
		_ = c.cmd.Process.Kill()
		<-c.exited
	}
	err := c.ptm.Close()
	<-c.readDone
	return err
}
