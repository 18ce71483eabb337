package circle

import (
	"io"
	"log/slog"
	"strconv"
)

// HighScoreKey is the storage key of the best score.
const HighScoreKey = "perfectCircleHighScore"

// Messages shown under the canvas.
const (
	MessageDraw       = "> DRAW A CIRCLE WITH ONE STROKE <"
	MessageTooSmall   = "> NOT ENOUGH DATA. DRAW BIGGER. <"
	MessageHighScore  = "> NEW HIGH SCORE! <"
	MessagePerfection = "> SYSTEM CALL: PERFECTION! <"
	MessageComplete   = "> ANALYSIS COMPLETE <"
)

// ScoreStore persists the high score.
type ScoreStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Game captures strokes and keeps the high score. It is not safe for
// concurrent use.
type Game struct {
	store  ScoreStore
	logger *slog.Logger

	drawing   bool
	points    []Point
	scored    bool
	score     int
	fit       Fit
	message   string
	highScore int
}

// NewGame loads the high score from store, which may be nil. A missing or
// unreadable value counts as 0.
func NewGame(store ScoreStore, logger *slog.Logger) *Game {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	g := &Game{store: store, logger: logger, message: MessageDraw}
	if store != nil {
		v, ok, err := store.Get(HighScoreKey)
		switch {
		case err != nil:
			logger.Warn("circle: failed to load high score", slog.Any("error", err))
		case ok:
			if n, err := strconv.Atoi(v); err == nil {
				g.highScore = n
			} else {
				logger.Warn("circle: ignoring invalid high score", slog.String("value", v))
			}
		}
	}
	return g
}

// Reset clears the canvas and the last score.
func (g *Game) Reset() {
	g.drawing = false
	g.points = g.points[:0]
	g.scored = false
	g.score = 0
	g.fit = Fit{}
	g.message = MessageDraw
}

// Down starts a new stroke at p.
func (g *Game) Down(p Point) {
	g.Reset()
	g.drawing = true
	g.points = append(g.points, p)
}

// Move extends the stroke, if one is in progress.
func (g *Game) Move(p Point) {
	if g.drawing {
		g.points = append(g.points, p)
	}
}

// Up ends the stroke and scores it. It reports false if no stroke was in
// progress.
func (g *Game) Up() bool {
	if !g.drawing {
		return false
	}
	g.drawing = false
	g.scored = true
	if len(g.points) < MinSamples {
		g.score = 0
		g.message = MessageTooSmall
		return true
	}

	g.score, g.fit = Score(g.points)
	switch {
	case g.score > g.highScore:
		g.highScore = g.score
		g.message = MessageHighScore
		if g.store != nil {
			if err := g.store.Set(HighScoreKey, strconv.Itoa(g.score)); err != nil {
				g.logger.Warn("circle: failed to save high score", slog.Any("error", err))
			}
		}
	case g.fit.Raw > 90:
		g.message = MessagePerfection
	default:
		g.message = MessageComplete
	}
	g.logger.Info("circle scored", slog.Int("score", g.score), slog.Int("points", len(g.points)))
	return true
}

// Drawing reports whether a stroke is in progress.
func (g *Game) Drawing() bool { return g.drawing }

// Points returns the current stroke. The slice is reused by the next
// stroke.
func (g *Game) Points() []Point { return g.points }

// Score returns the last score and whether one has been computed since
// the last reset.
func (g *Game) Score() (int, bool) { return g.score, g.scored }

// Fit returns the circle fitted to the last scored stroke.
func (g *Game) Fit() Fit { return g.fit }

// Message returns the instruction line.
func (g *Game) Message() string { return g.message }

// HighScore returns the best score so far.
func (g *Game) HighScore() int { return g.highScore }
