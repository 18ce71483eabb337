package tictactoe

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/joeycumines/pocket-dos/internal/sched"
)

// The human always plays O and the system X.
const (
	Player   = O
	Computer = X
)

// Status lines shown above the grid.
const (
	StatusInitializing = "INITIALIZING..."
	StatusAwaitingMove = "AWAITING SYSTEM MOVE"
	StatusThinking     = "SYSTEM THINKING..."
	StatusYourTurn     = "YOUR TURN (O)"
	StatusComputerWins = "SYSTEM WINS. GAME OVER."
	StatusStalemate    = "STALEMATE. NO WINNER."
	StatusAnomalyWin   = "!! ANOMALY DETECTED. PLAYER WINS. !!"
)

// Default think time: DefaultThinkMin plus up to DefaultThinkJitter.
const (
	DefaultThinkMin    = 800 * time.Millisecond
	DefaultThinkJitter = 500 * time.Millisecond
)

// Phase is the state of a Game.
type Phase int

const (
	AwaitingComputer Phase = iota
	ComputerThinking
	AwaitingPlayer
	GameOver
)

func (p Phase) String() string {
	switch p {
	case AwaitingComputer:
		return "awaiting-computer"
	case ComputerThinking:
		return "computer-thinking"
	case AwaitingPlayer:
		return "awaiting-player"
	case GameOver:
		return "game-over"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Outcome is how a finished game ended.
type Outcome int

const (
	NoOutcome Outcome = iota
	ComputerWon
	Stalemate
	AnomalyWon
)

func (o Outcome) String() string {
	switch o {
	case NoOutcome:
		return "none"
	case ComputerWon:
		return "computer"
	case Stalemate:
		return "stalemate"
	case AnomalyWon:
		return "anomaly"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Game is the timed state machine behind TICTACTO.EXE. It is driven by a
// sched.Scheduler and is not safe for concurrent use.
type Game struct {
	timers      *sched.Group
	rng         *rand.Rand
	thinkMin    time.Duration
	thinkJitter time.Duration
	logger      *slog.Logger
	onExit      func()
	onOver      func(Outcome)

	board   Board
	outer   [GridCells]Mark
	phase   Phase
	outcome Outcome
	status  string
}

// Option configures a Game.
type Option func(*Game)

// WithThinkTime sets the computer's delay to base plus up to jitter.
func WithThinkTime(base, jitter time.Duration) Option {
	return func(g *Game) {
		g.thinkMin = max(base, 0)
		g.thinkJitter = max(jitter, 0)
	}
}

// WithRand sets the source of think-time jitter.
func WithRand(r *rand.Rand) Option {
	return func(g *Game) { g.rng = r }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithOnExit sets the callback run by Exit.
func WithOnExit(fn func()) Option {
	return func(g *Game) { g.onExit = fn }
}

// WithOnGameOver sets a callback run whenever a game ends.
func WithOnGameOver(fn func(Outcome)) Option {
	return func(g *Game) { g.onOver = fn }
}

// NewGame returns a game bound to s. Nothing happens until Start.
func NewGame(s *sched.Scheduler, opts ...Option) *Game {
	g := &Game{
		timers:      s.NewGroup(),
		thinkMin:    DefaultThinkMin,
		thinkJitter: DefaultThinkJitter,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		status:      StatusInitializing,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return g
}

// Start clears the board and has the computer move first. Restarting
// discards any pending computer move.
func (g *Game) Start() {
	g.timers.Cancel()
	g.board = Board{}
	g.outer = [GridCells]Mark{}
	g.outcome = NoOutcome
	g.phase = AwaitingComputer
	g.status = StatusAwaitingMove
	g.logger.Debug("tictactoe start")
	g.computerMove()
}

// Restart starts a new game once the current one is over, and reports
// whether it did.
func (g *Game) Restart() bool {
	if g.phase != GameOver {
		return false
	}
	g.Start()
	return true
}

// Exit abandons the game and hands control back.
func (g *Game) Exit() {
	g.timers.Cancel()
	if g.onExit != nil {
		g.onExit()
	}
}

func (g *Game) computerMove() {
	g.phase = ComputerThinking
	g.status = StatusThinking
	delay := g.thinkMin
	if g.thinkJitter > 0 {
		delay += time.Duration(g.rng.Int64N(int64(g.thinkJitter)))
	}
	g.timers.After(delay, func() {
		i := BestComputerMove(g.board, Computer, Player)
		if i < 0 {
			g.finish(Stalemate)
			return
		}
		g.board[i] = Computer
		if g.checkResult() {
			return
		}
		g.phase = AwaitingPlayer
		g.status = StatusYourTurn
	})
}

func (g *Game) checkResult() bool {
	switch {
	case Winner(g.board) == Computer:
		g.finish(ComputerWon)
	case g.board.Full():
		g.finish(Stalemate)
	default:
		return false
	}
	return true
}

func (g *Game) finish(o Outcome) {
	g.timers.Cancel()
	g.phase = GameOver
	g.outcome = o
	switch o {
	case ComputerWon:
		g.status = StatusComputerWins
	case Stalemate:
		g.status = StatusStalemate
	case AnomalyWon:
		g.status = StatusAnomalyWin
	}
	g.logger.Info("tictactoe game over", slog.String("outcome", o.String()))
	if g.onOver != nil {
		g.onOver(o)
	}
}

// Click handles a click on visual cell v, reporting whether it changed the
// game. Inner cells are moves on the logical board; outer cells can only
// trigger the hidden win.
func (g *Game) Click(v int) bool {
	if i, ok := InnerIndex(v); ok {
		return g.playInner(i)
	}
	return g.playOuter(v)
}

func (g *Game) playInner(i int) bool {
	if g.phase != AwaitingPlayer || g.board[i] != Empty {
		return false
	}
	g.board[i] = Player
	if g.checkResult() {
		return true
	}
	g.computerMove()
	return true
}

func (g *Game) playOuter(v int) bool {
	if v < 0 || v >= GridCells || g.phase == GameOver || g.outer[v] != Empty {
		return false
	}
	if !CanWinByOuterMove(v, g.board, Player) {
		return false
	}
	g.outer[v] = Player
	g.finish(AnomalyWon)
	return true
}

// Cell returns the mark shown at visual cell v.
func (g *Game) Cell(v int) Mark {
	if i, ok := InnerIndex(v); ok {
		return g.board[i]
	}
	if v < 0 || v >= GridCells {
		return Empty
	}
	return g.outer[v]
}

// Board returns the logical board.
func (g *Game) Board() Board { return g.board }

// Phase returns the current state.
func (g *Game) Phase() Phase { return g.phase }

// Outcome returns how the last game ended, or NoOutcome while playing.
func (g *Game) Outcome() Outcome { return g.outcome }

// Status returns the status line.
func (g *Game) Status() string { return g.status }

// AcceptsInput reports whether inner cells are clickable, which is false
// while the computer is thinking.
func (g *Game) AcceptsInput() bool { return g.phase == AwaitingPlayer }
