package termui

import (
	"strings"

	"github.com/rivo/uniseg"
)

// wrapText splits text into display lines no wider than width cells,
// breaking between grapheme clusters so wide and combined characters
// stay intact.
func wrapText(text string, width int) []string {
	var out []string
	for line := range strings.SplitSeq(text, "\n") {
		out = append(out, wrapLine(line, width)...)
	}
	return out
}

func wrapLine(line string, width int) []string {
	if width <= 0 || uniseg.StringWidth(line) <= width {
		return []string{line}
	}
	var (
		out []string
		cur strings.Builder
		w   int
	)
	g := uniseg.NewGraphemes(line)
	for g.Next() {
		cw := g.Width()
		if w+cw > width && w > 0 {
			out = append(out, cur.String())
			cur.Reset()
			w = 0
		}
		cur.WriteString(g.Str())
		w += cw
	}
	return append(out, cur.String())
}

// padRight pads s with spaces to width display cells.
func padRight(s string, width int) string {
	if w := uniseg.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
