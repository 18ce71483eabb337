// Package termui is the full-screen terminal front end: the marketplace
// story pages, the handheld console and its programs, drawn with lipgloss
// and driven by a Bubble Tea program.
package termui

import (
	"io"
	"log/slog"
	"math/rand/v2"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/joeycumines/pocket-dos/internal/circle"
	"github.com/joeycumines/pocket-dos/internal/config"
	"github.com/joeycumines/pocket-dos/internal/console"
	"github.com/joeycumines/pocket-dos/internal/gamestate"
	"github.com/joeycumines/pocket-dos/internal/logging"
	"github.com/joeycumines/pocket-dos/internal/sched"
	"github.com/joeycumines/pocket-dos/internal/story"
	"github.com/joeycumines/pocket-dos/internal/tictactoe"
)

// FrameInterval is how often the virtual clock is advanced.
const FrameInterval = 16 * time.Millisecond

// maxStep bounds a single clock advance, so a stalled terminal does not
// fast-forward the boot sequence.
const maxStep = 250 * time.Millisecond

const (
	defaultWidth  = 80
	defaultHeight = 24
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(FrameInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Options configures an App.
type Options struct {
	// State is the persisted page. Nil starts a fresh, unsaved game.
	State *gamestate.Manager
	// Scores keeps the circle high score. May be nil.
	Scores circle.ScoreStore
	// Settings are the resolved configuration values.
	Settings config.Settings
	Logger   *slog.Logger
	// Bell receives a BEL for each tone played by the console. May be nil.
	Bell io.Writer
	// Scheduler defaults to a new one.
	Scheduler *sched.Scheduler
	// Rand seeds chat typing and think-time jitter. Defaults to random.
	Rand *rand.Rand
}

// App is the root Bubble Tea model. It also hosts the console, carrying
// out its launches and tones.
type App struct {
	sched  *sched.Scheduler
	state  *gamestate.Manager
	theme  Theme
	zones  *zone.Manager
	logger *slog.Logger
	bell   io.Writer

	console *console.Console
	chat    *story.Chat
	arrival *story.Arrival
	ttt     *tictactoe.Game
	circle  *circle.Game

	width, height int
	last          time.Time
	scrollBack    int
	adFocus       int
	cursor        int
	audio         bool
	toneHz        int
	toneUntil     time.Duration
	notice        string
	quitting      bool
}

var _ console.Host = (*App)(nil)

// New builds the app and enters the persisted page. A saved full-screen
// program resumes on the console.
func New(opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	s := opts.Scheduler
	if s == nil {
		s = sched.New()
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	state := opts.State
	if state == nil {
		state = gamestate.Load(nil, logger)
	}
	set := opts.Settings

	a := &App{
		sched:  s,
		state:  state,
		theme:  NewTheme(set.ThemeColor),
		zones:  zone.New(),
		logger: logger,
		bell:   opts.Bell,
		width:  defaultWidth,
		height: defaultHeight,
		cursor: tictactoe.GridCells / 2,
	}

	a.console = console.NewFromSettings(set, s, logger, console.WithHost(a))

	a.chat = story.NewChat(s,
		story.WithChatRand(rng),
		story.WithChatLogger(logger.With(logging.KeyComponent, "chat")),
	)
	a.arrival = story.NewArrival(s, func() { a.goTo(a.state.ArrivalComplete) })

	tttOpts := []tictactoe.Option{
		tictactoe.WithRand(rng),
		tictactoe.WithLogger(logger.With(logging.KeyComponent, "tictactoe")),
		tictactoe.WithOnExit(a.exitProgram),
	}
	if set.ThinkMin > 0 || set.ThinkJitter > 0 {
		tttOpts = append(tttOpts, tictactoe.WithThinkTime(set.ThinkMin, set.ThinkJitter))
	}
	a.ttt = tictactoe.NewGame(s, tttOpts...)
	a.circle = circle.NewGame(opts.Scores, logger.With(logging.KeyComponent, "circle"))

	if a.state.Page().Program() {
		a.goTo(a.state.ExitProgram)
	} else {
		a.enterPage()
	}
	return a
}

// Close releases the hit-zone tracker.
func (a *App) Close() { a.zones.Close() }

// Page returns the current page.
func (a *App) Page() gamestate.Page { return a.state.Page() }

// Console returns the handheld console.
func (a *App) Console() *console.Console { return a.console }

// Advance moves the virtual clock forward by d.
func (a *App) Advance(d time.Duration) { a.sched.Advance(d) }

// goTo applies a page transition, then starts whatever the new page runs.
// A failed save is shown but does not block the move.
func (a *App) goTo(step func() error) {
	if err := step(); err != nil {
		a.notice = "Progress not saved: " + err.Error()
	}
	a.enterPage()
}

func (a *App) enterPage() {
	page := a.state.Page()
	if page != gamestate.PageChat {
		a.chat.Stop()
	}
	if page != gamestate.PageArrival {
		a.arrival.Stop()
	}
	switch page {
	case gamestate.PageAd:
		a.adFocus = 0
	case gamestate.PageChat:
		a.chat.Start()
	case gamestate.PageArrival:
		a.arrival.Start()
	case gamestate.PageConsole:
		a.scrollBack = 0
		if a.console.Boots() == 0 {
			a.console.Boot(false)
		}
	case gamestate.PageTicTacToe:
		a.cursor = tictactoe.GridCells / 2
		a.ttt.Start()
	case gamestate.PageCircle:
		a.circle.Reset()
	}
}

func (a *App) exitProgram() {
	a.goTo(a.state.ExitProgram)
	a.console.Resume()
}

// InitAudio implements console.Host.
func (a *App) InitAudio() {
	if !a.audio {
		a.audio = true
		a.logger.Debug("audio ready")
	}
}

// Beep implements console.Host by ringing the terminal bell and showing a
// tone indicator for the duration.
func (a *App) Beep(freqHz, durationMs int) {
	a.toneHz = freqHz
	a.toneUntil = a.sched.Now() + time.Duration(durationMs)*time.Millisecond
	if a.bell != nil {
		if _, err := io.WriteString(a.bell, "\a"); err != nil {
			a.logger.Debug("bell failed", slog.Any("error", err))
		}
	}
}

// RunGame implements console.Host.
func (a *App) RunGame(programID string) {
	a.goTo(func() error { return a.state.Launch(programID) })
	if !a.state.Page().Program() {
		a.logger.Warn("unknown program", slog.String("program", programID))
		a.console.Resume()
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd { return tick() }

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		a.advanceTo(time.Time(msg))
		return a, tick()
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			a.quitting = true
			return a, tea.Quit
		}
		a.notice = ""
		a.handleKey(msg)
		return a, nil
	case tea.MouseMsg:
		a.handleMouse(msg)
		return a, nil
	}
	return a, nil
}

func (a *App) advanceTo(now time.Time) {
	if a.last.IsZero() {
		a.last = now
		return
	}
	d := min(max(now.Sub(a.last), 0), maxStep)
	a.last = now
	a.sched.Advance(d)
}

func (a *App) handleKey(msg tea.KeyMsg) {
	switch a.state.Page() {
	case gamestate.PageAd:
		a.adKey(msg)
	case gamestate.PageChat:
		a.chatKey(msg)
	case gamestate.PageArrival:
		a.arrival.Skip()
	case gamestate.PageTitle:
		a.titleKey(msg)
	case gamestate.PageConsole:
		a.consoleKey(msg)
	case gamestate.PageTicTacToe:
		a.tttKey(msg)
	case gamestate.PageCircle:
		a.circleKey(msg)
	case gamestate.PageElite, gamestate.PagePinball:
		a.stubKey(msg)
	}
}

func (a *App) handleMouse(msg tea.MouseMsg) {
	switch a.state.Page() {
	case gamestate.PageAd:
		a.adMouse(msg)
	case gamestate.PageChat:
		a.chatMouse(msg)
	case gamestate.PageArrival:
		if isClick(msg) {
			a.arrival.Skip()
		}
	case gamestate.PageTitle:
		if a.hit(zoneBoot, msg) {
			a.goTo(a.state.TitleComplete)
		}
	case gamestate.PageConsole:
		a.consoleMouse(msg)
	case gamestate.PageTicTacToe:
		a.tttMouse(msg)
	case gamestate.PageCircle:
		a.circleMouse(msg)
	case gamestate.PageElite, gamestate.PagePinball:
		if _, exit := a.programBarHit(msg); exit {
			a.exitProgram()
		}
	}
}

func isClick(msg tea.MouseMsg) bool {
	return msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft
}

// View implements tea.Model.
func (a *App) View() string {
	if a.quitting {
		return ""
	}
	var view string
	switch a.state.Page() {
	case gamestate.PageAd:
		view = a.adView()
	case gamestate.PageChat:
		view = a.chatView()
	case gamestate.PageArrival:
		view = a.arrivalView()
	case gamestate.PageTitle:
		view = a.titleView()
	case gamestate.PageConsole:
		view = a.consoleView()
	case gamestate.PageTicTacToe:
		view = a.tttView()
	case gamestate.PageCircle:
		view = a.circleView()
	case gamestate.PageElite, gamestate.PagePinball:
		view = a.stubView()
	}
	if a.notice != "" {
		view += "\n" + a.theme.Price.Render(a.notice)
	}
	return a.zones.Scan(view)
}
