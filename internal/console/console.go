// Package console hosts a shell session on the scheduler: the timed boot
// transcript, prompt arming, cursor blink, the DEMO animation, chip
// shortcuts and suspension while a full-screen program runs.
package console

import (
	"log/slog"
	"time"

	"github.com/joeycumines/pocket-dos/internal/logging"
	"github.com/joeycumines/pocket-dos/internal/sched"
	"github.com/joeycumines/pocket-dos/internal/shell"
)

// CursorGlyph is drawn after the input line while the cursor is visible.
const CursorGlyph = "▌"

// Default timings.
const (
	DefaultBlinkInterval = 530 * time.Millisecond
	PowerBlinkInterval   = 1200 * time.Millisecond
)

// Host carries out the effects the console cannot perform itself.
type Host interface {
	// InitAudio prepares the audio device. It is called before the first
	// tone and may be called again.
	InitAudio()
	// Beep plays a square-wave tone.
	Beep(freqHz, durationMs int)
	// RunGame hands the screen to a full-screen program. The host calls
	// Console.Resume when the program exits.
	RunGame(programID string)
}

// NopHost ignores every effect.
type NopHost struct{}

func (NopHost) InitAudio()     {}
func (NopHost) Beep(int, int)  {}
func (NopHost) RunGame(string) {}

// Console is not safe for concurrent use.
type Console struct {
	in     *shell.Interpreter
	sched  *sched.Scheduler
	host   Host
	logger *slog.Logger

	bootTimers  *sched.Group
	animTimers  *sched.Group
	blinkTimers *sched.Group

	blinkInterval time.Duration
	fastBoot      bool
	autosubmit    bool

	session    shell.Session
	cursorOn   bool
	powerOn    bool
	audioReady bool
	suspended  string
	animating  string
	picker     *picker
	boots      int
}

// Option configures a Console.
type Option func(*Console)

// WithHost sets the host. The default is NopHost.
func WithHost(h Host) Option {
	return func(c *Console) {
		if h != nil {
			c.host = h
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Console) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithFastBoot collapses every boot delay to zero.
func WithFastBoot(fast bool) Option {
	return func(c *Console) { c.fastBoot = fast }
}

// WithBlinkInterval sets the cursor blink period; zero keeps the cursor
// solid.
func WithBlinkInterval(d time.Duration) Option {
	return func(c *Console) { c.blinkInterval = max(d, 0) }
}

// WithAutosubmit enables submitting `RUN <NAME>` as soon as the line names
// an executable.
func WithAutosubmit(on bool) Option {
	return func(c *Console) { c.autosubmit = on }
}

// New returns a console running in on s. Call Boot to start it.
func New(in *shell.Interpreter, s *sched.Scheduler, opts ...Option) *Console {
	c := &Console{
		in:            in,
		sched:         s,
		host:          NopHost{},
		logger:        logging.Discard(),
		bootTimers:    s.NewGroup(),
		animTimers:    s.NewGroup(),
		blinkTimers:   s.NewGroup(),
		blinkInterval: DefaultBlinkInterval,
		autosubmit:    true,
		session:       shell.NewSession(in.FS().RootPath()),
		cursorOn:      true,
		powerOn:       true,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.blinkInterval > 0 {
		c.blinkTimers.Every(c.blinkInterval, func() {
			if c.session.PromptActive {
				c.cursorOn = !c.cursorOn
			}
		})
	}
	c.blinkTimers.Every(PowerBlinkInterval, func() { c.powerOn = !c.powerOn })
	return c
}

// Interpreter returns the interpreter behind the console.
func (c *Console) Interpreter() *shell.Interpreter { return c.in }

// Session returns a copy of the current session.
func (c *Console) Session() shell.Session { return c.session.Clone() }

// Render returns the transcript, the input line and, while the prompt is
// active and the blink phase is on, the cursor glyph.
func (c *Console) Render() string {
	out := c.session.Output + c.session.Input
	if c.session.PromptActive && c.cursorOn {
		out += CursorGlyph
	}
	return out
}

// Ready reports whether the prompt accepts input.
func (c *Console) Ready() bool { return c.session.PromptActive }

// Booting reports whether a boot sequence is still in progress.
func (c *Console) Booting() bool { return c.bootTimers.Pending() > 0 }

// Animating returns the program ID of a running animation, or "".
func (c *Console) Animating() string { return c.animating }

// Suspended returns the program ID holding the screen, or "".
func (c *Console) Suspended() string { return c.suspended }

// PowerOn is the phase of the power LED.
func (c *Console) PowerOn() bool { return c.powerOn }

// Boots returns how many times Boot has run.
func (c *Console) Boots() int { return c.boots }

// InsertText types text at the prompt.
func (c *Console) InsertText(text string) bool {
	if !c.session.InsertText(text) {
		return false
	}
	c.afterEdit()
	return true
}

// SetLine replaces the input line.
func (c *Console) SetLine(text string) bool {
	if !c.session.SetLine(text) {
		return false
	}
	c.afterEdit()
	return true
}

// Backspace deletes the last rune of the input line.
func (c *Console) Backspace() bool {
	if !c.session.Backspace() {
		return false
	}
	c.afterEdit()
	return true
}

// HistoryUp recalls an older line.
func (c *Console) HistoryUp() bool {
	if !c.session.HistoryUp() {
		return false
	}
	c.afterEdit()
	return true
}

// HistoryDown recalls a newer line.
func (c *Console) HistoryDown() bool {
	if !c.session.HistoryDown() {
		return false
	}
	c.afterEdit()
	return true
}

func (c *Console) afterEdit() {
	c.cursorOn = true
	if c.autosubmit && c.session.PromptActive && c.in.Runnable(c.session.Cwd, c.session.Input) {
		c.Submit()
	}
}

// Submit commits the input line and executes it, reporting false when the
// prompt is inactive.
func (c *Console) Submit() bool {
	line, ok := c.session.TakeLine()
	if !ok {
		return false
	}
	c.picker = nil
	c.ensureAudio()

	res := c.in.Execute(c.session, line)
	c.session = res.Session
	c.playTones(res.Tones)

	switch res.Effect.Kind {
	case shell.EffectLaunch:
		c.suspended = res.Effect.Program
		c.logger.Info("console run game", slog.String("program", c.suspended))
		c.host.RunGame(c.suspended)
	case shell.EffectAnimate:
		c.animate(res.Effect.Program)
	case shell.EffectReboot:
		c.logger.Info("console reboot")
		c.Boot(true)
	}
	return true
}

// Run types line and submits it, as chips do.
func (c *Console) Run(line string) bool {
	if !c.session.SetLine(line) {
		return false
	}
	return c.Submit()
}

// Resume returns from a full-screen program and re-arms the prompt.
func (c *Console) Resume() bool {
	if c.suspended == "" {
		return false
	}
	c.logger.Info("console resume", slog.String("program", c.suspended))
	c.suspended = ""
	c.session.Arm()
	c.cursorOn = true
	return true
}

func (c *Console) ensureAudio() {
	if !c.audioReady {
		c.host.InitAudio()
		c.audioReady = true
	}
}

func (c *Console) playTones(tones []shell.Tone) {
	if len(tones) == 0 {
		return
	}
	c.ensureAudio()
	for _, t := range tones {
		c.host.Beep(t.FreqHz, t.DurationMs)
	}
}

// Settle advances the scheduler until the prompt is armed or a program
// holds the screen, reporting whether the prompt is armed. It gives up
// after limit of virtual time.
func (c *Console) Settle(limit time.Duration) bool {
	deadline := c.sched.Now() + limit
	for !c.session.PromptActive && c.suspended == "" {
		next, ok := c.sched.Next()
		if !ok || next > deadline {
			return false
		}
		c.sched.AdvanceTo(next)
	}
	return c.session.PromptActive
}
