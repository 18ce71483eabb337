package console

import (
	"fmt"
	"math"

	"github.com/joeycumines/pocket-dos/internal/circle"
	"github.com/joeycumines/pocket-dos/internal/shell"
	"github.com/joeycumines/pocket-dos/internal/tictactoe"
	"github.com/joeycumines/pocket-dos/internal/vfs"
)

// GameSelfChecks covers the bundled games, run by TESTS after the shell's
// own checks.
func GameSelfChecks() []shell.SelfCheck {
	return []shell.SelfCheck{
		{Name: "tictactoe-center", Run: checkTicTacToeCenter},
		{Name: "tictactoe-outer", Run: checkTicTacToeOuter},
		{Name: "circle-perfect", Run: checkCirclePerfect},
	}
}

// NewInterpreter returns an interpreter over the stock drive with every
// self-check registered.
func NewInterpreter(opts ...shell.Option) *shell.Interpreter {
	opts = append([]shell.Option{shell.WithSelfChecks(GameSelfChecks()...)}, opts...)
	return shell.New(vfs.PocketDOS(), opts...)
}

func checkTicTacToeCenter(*shell.Interpreter, shell.Session) error {
	if got := tictactoe.BestComputerMove(tictactoe.Board{}, tictactoe.X, tictactoe.O); got != 4 {
		return fmt.Errorf("opening move %d, want 4", got)
	}
	return nil
}

func checkTicTacToeOuter(*shell.Interpreter, shell.Session) error {
	b, err := tictactoe.ParseBoard("X", "X", "O", "", "O", "", "X", "", "")
	if err != nil {
		return err
	}
	if !tictactoe.CanWinByOuterMove(4, b, tictactoe.O) {
		return fmt.Errorf("outer cell 4 does not win")
	}
	if tictactoe.CanWinByOuterMove(tictactoe.Map3x3To5x5[0], b, tictactoe.O) {
		return fmt.Errorf("inner cell accepted as outer")
	}
	return nil
}

func checkCirclePerfect(*shell.Interpreter, shell.Session) error {
	pts := make([]circle.Point, 48)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(len(pts))
		pts[i] = circle.Point{X: 50 + 20*math.Cos(a), Y: 50 + 20*math.Sin(a)}
	}
	if score, _ := circle.Score(pts); score != 100 {
		return fmt.Errorf("perfect circle scored %d", score)
	}
	return nil
}
