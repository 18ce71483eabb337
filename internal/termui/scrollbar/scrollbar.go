// Package scrollbar renders the vertical scroll indicator beside the
// handheld's transcript.
package scrollbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Model describes a scrolled window of Lines over Total lines.
type Model struct {
	Total   int
	Visible int
	Offset  int

	Thumb lipgloss.Style
	Track lipgloss.Style

	ThumbGlyph string
	TrackGlyph string
}

// New returns a scrollbar drawn in color.
func New(color lipgloss.TerminalColor) Model {
	return Model{
		Thumb:      lipgloss.NewStyle().Background(color),
		Track:      lipgloss.NewStyle().Foreground(color).Faint(true),
		ThumbGlyph: " ",
		TrackGlyph: "│",
	}
}

// MaxOffset is the largest offset that still fills the window.
func (m Model) MaxOffset() int {
	return max(0, m.Total-m.Visible)
}

// ThumbSpan returns the first row and height of the thumb.
func (m Model) ThumbSpan() (top, height int) {
	if m.Visible <= 0 {
		return 0, 0
	}
	maxOffset := m.MaxOffset()
	if maxOffset == 0 {
		return 0, m.Visible
	}
	height = m.Visible * m.Visible / m.Total
	height = min(max(height, 1), m.Visible)
	room := m.Visible - height
	offset := min(max(m.Offset, 0), maxOffset)
	return offset * room / maxOffset, height
}

// OffsetAt maps a click on row to the offset that puts the thumb there.
func (m Model) OffsetAt(row int) int {
	maxOffset := m.MaxOffset()
	if maxOffset == 0 || m.Visible <= 1 {
		return 0
	}
	row = min(max(row, 0), m.Visible-1)
	return row * maxOffset / (m.Visible - 1)
}

// View renders exactly Visible rows.
func (m Model) View() string {
	if m.Visible <= 0 {
		return ""
	}
	// plain spaces can lose their background after lipgloss trims them
	thumbGlyph := nbsp(m.ThumbGlyph)
	trackGlyph := nbsp(m.TrackGlyph)
	top, height := m.ThumbSpan()
	rows := make([]string, m.Visible)
	for i := range rows {
		if i >= top && i < top+height {
			rows[i] = m.Thumb.Render(thumbGlyph)
		} else {
			rows[i] = m.Track.Render(trackGlyph)
		}
	}
	return strings.Join(rows, "\n")
}

func nbsp(s string) string {
	if s == " " {
		return "\u00a0"
	}
	return s
}
