package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func board(t *testing.T, cells ...string) Board {
	t.Helper()
	b, err := ParseBoard(cells...)
	require.NoError(t, err)
	return b
}

func TestWinner(t *testing.T) {
	assert.Equal(t, Empty, Winner(Board{}))
	assert.Equal(t, X, Winner(board(t, "X", "X", "X", "O", "O", "", "", "", "")))
	assert.Equal(t, O, Winner(board(t, "X", "X", "O", "", "O", "", "O", "", "X")))
	assert.Equal(t, O, Winner(board(t, "O", "X", "", "O", "X", "", "O", "", "")))
	assert.Equal(t, Empty, Winner(board(t, "X", "O", "X", "X", "O", "O", "O", "X", "X")))
}

func TestBestComputerMove(t *testing.T) {
	for _, tc := range []struct {
		name     string
		cells    []string
		computer Mark
		player   Mark
		want     int
	}{
		{"immediate win", []string{"X", "X", "", "O", "O", "", "", "", ""}, X, O, 2},
		{"swapped marks complete own row", []string{"X", "X", "", "O", "O", "", "", "", ""}, O, X, 5},
		{"complete column over block", []string{"X", "", "", "X", "", "", "O", "O", ""}, O, X, 8},
		{"block", []string{"X", "", "", "", "", "", "O", "O", ""}, X, O, 8},
		{"empty board x", make([]string, 9), X, O, 4},
		{"empty board o", make([]string, 9), O, X, 4},
		{"full board", []string{"X", "O", "X", "X", "O", "O", "O", "X", "X"}, X, O, -1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, BestComputerMove(board(t, tc.cells...), tc.computer, tc.player))
		})
	}
}

func TestBestComputerMoveNeverOccupied(t *testing.T) {
	// play the engine against itself from every single opening
	for first := range 9 {
		var b Board
		b[first] = O
		turn := X
		for Winner(b) == Empty && !b.Full() {
			other := O
			if turn == O {
				other = X
			}
			i := BestComputerMove(b, turn, other)
			require.GreaterOrEqual(t, i, 0)
			require.Equal(t, Empty, b[i])
			b[i] = turn
			turn = other
		}
		assert.NotEqual(t, O, Winner(b), "opening %d", first)
	}
}

func TestComputerNeverLoses(t *testing.T) {
	var losses int
	var explore func(b Board)
	explore = func(b Board) {
		if w := Winner(b); w != Empty || b.Full() {
			if w == O {
				losses++
			}
			return
		}
		i := BestComputerMove(b, X, O)
		b[i] = X
		if Winner(b) != Empty || b.Full() {
			return
		}
		for j := range b {
			if b[j] == Empty {
				next := b
				next[j] = O
				explore(next)
			}
		}
	}
	explore(Board{})
	assert.Zero(t, losses)
}

func TestCanWinByOuterMove(t *testing.T) {
	assert.True(t, CanWinByOuterMove(4, board(t, "X", "X", "O", "", "O", "", "X", "", ""), O))
	assert.True(t, CanWinByOuterMove(10, board(t, "", "", "", "O", "O", "", "", "", ""), O))
	assert.True(t, CanWinByOuterMove(21, board(t, "", "", "", "O", "", "", "O", "", ""), O))
	assert.False(t, CanWinByOuterMove(8, board(t, "X", "X", "", "", "O", "", "O", "", ""), O))
	assert.False(t, CanWinByOuterMove(4, board(t, "X", "O", "X", "O", "X", "O", "O", "X", ""), O))

	b := board(t, "X", "", "O", "", "O", "", "X", "", "")
	for _, i := range []int{0, 1, 2, 3, 5, 9, 10, 14, 15, 19, 20, 22, 23, 24} {
		assert.False(t, CanWinByOuterMove(i, b, O), "outer %d", i)
	}
}

func TestCanWinByOuterMoveRejectsNonTableIndices(t *testing.T) {
	var full Board
	for i := range full {
		full[i] = O
	}
	for _, v := range append(Map3x3To5x5[:], -1, 25, 100) {
		assert.False(t, CanWinByOuterMove(v, full, O), "index %d", v)
	}
	assert.False(t, CanWinByOuterMove(0, Board{}, Empty))
}

func TestOuterRingCoversEveryNonInnerCell(t *testing.T) {
	for v := range GridCells {
		_, inner := InnerIndex(v)
		_, outer := OuterPair(v)
		assert.NotEqual(t, inner, outer, "cell %d", v)
	}
}

func TestOuterPairsFormLines(t *testing.T) {
	// the outer cell, its pair, and the grid geometry must be collinear
	pos := func(v int) (int, int) { return v % GridSize, v / GridSize }
	for v := range GridCells {
		p, ok := OuterPair(v)
		if !ok {
			continue
		}
		x0, y0 := pos(v)
		x1, y1 := pos(Map3x3To5x5[p[0]])
		x2, y2 := pos(Map3x3To5x5[p[1]])
		assert.Zero(t, (x1-x0)*(y2-y0)-(y1-y0)*(x2-x0), "cell %d", v)
	}
}

func TestParseBoard(t *testing.T) {
	_, err := ParseBoard("X")
	assert.Error(t, err)
	_, err = ParseBoard("X", "Y", "", "", "", "", "", "", "")
	assert.Error(t, err)
	assert.Equal(t, "X", X.String())
	assert.Equal(t, "", Empty.String())
}
