// Package tictactoe implements TICTACTO.EXE: an unbeatable minimax opponent
// on a 3x3 board drawn inside a 5x5 grid, where the ring of outer cells
// hides a second way for the player to win.
package tictactoe

import (
	"fmt"
	"math"
	"slices"
)

// Mark is the content of a cell.
type Mark uint8

const (
	Empty Mark = iota
	X
	O
)

func (m Mark) String() string {
	switch m {
	case Empty:
		return ""
	case X:
		return "X"
	case O:
		return "O"
	default:
		return fmt.Sprintf("Mark(%d)", uint8(m))
	}
}

// ParseMark converts "X", "O" or "" to a Mark.
func ParseMark(s string) (Mark, error) {
	switch s {
	case "":
		return Empty, nil
	case "X", "x":
		return X, nil
	case "O", "o":
		return O, nil
	}
	return Empty, fmt.Errorf("tictactoe: invalid mark %q", s)
}

// Board is the logical 3x3 grid in row-major order.
type Board [9]Mark

// ParseBoard builds a board from nine cell strings.
func ParseBoard(cells ...string) (Board, error) {
	var b Board
	if len(cells) != len(b) {
		return b, fmt.Errorf("tictactoe: board needs %d cells, got %d", len(b), len(cells))
	}
	for i, c := range cells {
		m, err := ParseMark(c)
		if err != nil {
			return b, err
		}
		b[i] = m
	}
	return b, nil
}

// Full reports whether no empty cell remains.
func (b Board) Full() bool { return !slices.Contains(b[:], Empty) }

var lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// Winner returns the mark owning a complete line, or Empty.
func Winner(b Board) Mark {
	for _, l := range lines {
		if m := b[l[0]]; m != Empty && m == b[l[1]] && m == b[l[2]] {
			return m
		}
	}
	return Empty
}

// moveOrder is the candidate order: center, corners, edges.
var moveOrder = [9]int{4, 0, 2, 6, 8, 1, 3, 5, 7}

// BestComputerMove returns the index computer should play, or -1 if the
// board is full. The search is exhaustive; wins score 10-depth and losses
// depth-10, so faster wins and slower losses are preferred. Ties keep the
// earliest candidate in center, corner, edge order.
func BestComputerMove(b Board, computer, player Mark) int {
	best, bestScore := -1, math.MinInt
	for _, i := range moveOrder {
		if b[i] != Empty {
			continue
		}
		b[i] = computer
		score := minimax(&b, 1, false, computer, player)
		b[i] = Empty
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

func minimax(b *Board, depth int, computerTurn bool, computer, player Mark) int {
	switch Winner(*b) {
	case computer:
		return 10 - depth
	case player:
		return depth - 10
	}
	if b.Full() {
		return 0
	}
	mark, best := player, math.MaxInt
	if computerTurn {
		mark, best = computer, math.MinInt
	}
	for _, i := range moveOrder {
		if b[i] != Empty {
			continue
		}
		b[i] = mark
		score := minimax(b, depth+1, !computerTurn, computer, player)
		b[i] = Empty
		if computerTurn {
			best = max(best, score)
		} else {
			best = min(best, score)
		}
	}
	return best
}

// GridSize is the width and height of the visual grid.
const GridSize = 5

// GridCells is the number of cells in the visual grid.
const GridCells = GridSize * GridSize

// Map3x3To5x5 maps each logical index to its visual cell.
var Map3x3To5x5 = [9]int{6, 7, 8, 11, 12, 13, 16, 17, 18}

// InnerIndex returns the logical index shown at visual cell v.
func InnerIndex(v int) (int, bool) {
	i := slices.Index(Map3x3To5x5[:], v)
	return i, i >= 0
}

// outerLines maps each outer visual cell to the two logical cells that,
// both held by the player, let that outer cell complete a line.
var outerLines = map[int][2]int{
	0: {0, 4}, 1: {0, 3}, 2: {1, 4}, 3: {2, 5}, 4: {2, 4},
	5: {0, 1}, 9: {2, 1},
	10: {3, 4}, 14: {5, 4},
	15: {6, 7}, 19: {8, 7},
	20: {6, 4}, 21: {6, 3}, 22: {7, 4}, 23: {8, 5}, 24: {8, 4},
}

// OuterPair returns the logical cells wired to outer visual cell v.
func OuterPair(v int) ([2]int, bool) {
	p, ok := outerLines[v]
	return p, ok
}

// CanWinByOuterMove reports whether playing mark on outer visual cell outer
// wins: outer must be wired and both its logical cells must hold mark.
func CanWinByOuterMove(outer int, b Board, mark Mark) bool {
	p, ok := outerLines[outer]
	if !ok || mark == Empty {
		return false
	}
	return b[p[0]] == mark && b[p[1]] == mark
}
