//go:build unix

package termtest

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// screen replays terminal output onto a fixed grid. It knows enough of
// the VT100 set to follow a full-screen renderer: cursor moves, erases and
// the alternate screen. Colours and modes are skipped.
type screen struct {
	rows, cols int
	cells      [][]rune
	row, col   int
}

func newScreen(rows, cols int) *screen {
	s := &screen{rows: rows, cols: cols}
	s.cells = make([][]rune, rows)
	for r := range s.cells {
		s.cells[r] = blankRow(cols)
	}
	return s
}

func blankRow(cols int) []rune {
	row := make([]rune, cols)
	for i := range row {
		row[i] = ' '
	}
	return row
}

// Lines renders the grid with trailing spaces trimmed.
func (s *screen) Lines() []string {
	out := make([]string, s.rows)
	for r, row := range s.cells {
		out[r] = strings.TrimRight(string(row), " ")
	}
	return out
}

func (s *screen) clamp() {
	s.row = min(max(s.row, 0), s.rows-1)
	s.col = min(max(s.col, 0), s.cols-1)
}

func (s *screen) lineFeed() {
	if s.row < s.rows-1 {
		s.row++
		return
	}
	copy(s.cells, s.cells[1:])
	s.cells[s.rows-1] = blankRow(s.cols)
}

func (s *screen) erase(fromRow, fromCol, toRow, toCol int) {
	for r := fromRow; r <= toRow; r++ {
		start, end := 0, s.cols-1
		if r == fromRow {
			start = fromCol
		}
		if r == toRow {
			end = toCol
		}
		for c := start; c <= end && c < s.cols; c++ {
			s.cells[r][c] = ' '
		}
	}
}

// Write replays b.
func (s *screen) Write(b string) {
	for i := 0; i < len(b); {
		switch c := b[i]; {
		case c == '\x1b':
			i = s.escape(b, i+1)
		case c == '\r':
			s.col = 0
			i++
		case c == '\n':
			s.lineFeed()
			i++
		case c == '\b':
			s.col = max(s.col-1, 0)
			i++
		case c == '\t':
			s.col = min((s.col/8+1)*8, s.cols-1)
			i++
		case c < 0x20 || c == 0x7f:
			i++
		default:
			r, size := utf8.DecodeRuneInString(b[i:])
			i += size
			if s.col >= s.cols {
				s.col = 0
				s.lineFeed()
			}
			s.cells[s.row][s.col] = r
			s.col++
		}
	}
}

// escape handles the sequence after an ESC at b[i] and returns the index
// after it.
func (s *screen) escape(b string, i int) int {
	if i >= len(b) {
		return i
	}
	switch b[i] {
	case '[':
		i++
		start := i
		for i < len(b) && (b[i] < 0x40 || b[i] > 0x7e) {
			i++
		}
		if i >= len(b) {
			return i
		}
		s.csi(b[start:i], b[i])
		return i + 1
	case ']', 'P', '_':
		// string sequences end with BEL or ST
		for i++; i < len(b); i++ {
			if b[i] == '\a' {
				return i + 1
			}
			if b[i] == '\x1b' && i+1 < len(b) && b[i+1] == '\\' {
				return i + 2
			}
		}
		return i
	case '(', ')':
		return i + 2
	}
	return i + 1
}

func (s *screen) csi(params string, final byte) {
	private := strings.HasPrefix(params, "?")
	params = strings.TrimLeft(params, "?<>=")
	args := strings.Split(params, ";")
	arg := func(n, def int) int {
		if n < len(args) {
			if v, err := strconv.Atoi(args[n]); err == nil {
				return v
			}
		}
		return def
	}
	switch final {
	case 'H', 'f':
		s.row, s.col = arg(0, 1)-1, arg(1, 1)-1
		s.clamp()
	case 'A':
		s.row -= max(arg(0, 1), 1)
		s.clamp()
	case 'B':
		s.row += max(arg(0, 1), 1)
		s.clamp()
	case 'C':
		s.col += max(arg(0, 1), 1)
		s.clamp()
	case 'D':
		s.col -= max(arg(0, 1), 1)
		s.clamp()
	case 'G':
		s.col = arg(0, 1) - 1
		s.clamp()
	case 'J':
		switch arg(0, 0) {
		case 0:
			s.erase(s.row, s.col, s.rows-1, s.cols-1)
		case 1:
			s.erase(0, 0, s.row, s.col)
		default:
			s.erase(0, 0, s.rows-1, s.cols-1)
		}
	case 'K':
		switch arg(0, 0) {
		case 0:
			s.erase(s.row, s.col, s.row, s.cols-1)
		case 1:
			s.erase(s.row, 0, s.row, s.col)
		default:
			s.erase(s.row, 0, s.row, s.cols-1)
		}
	case 'h', 'l':
		// entering or leaving the alternate screen starts from a blank grid
		if private && (params == "1049" || params == "47") {
			s.erase(0, 0, s.rows-1, s.cols-1)
			s.row, s.col = 0, 0
		}
	}
}

// Screen replays everything written so far and returns the visible lines.
func (c *Console) Screen() []string {
	s := newScreen(c.rows, c.cols)
	s.Write(c.Output())
	return s.Lines()
}

// Find returns the 1-based column and row of the first visible occurrence
// of text.
func (c *Console) Find(text string) (x, y int, ok bool) {
	for r, line := range c.Screen() {
		if i := strings.Index(line, text); i >= 0 {
			return utf8.RuneCountInString(line[:i]) + 1, r + 1, true
		}
	}
	return 0, 0, false
}
