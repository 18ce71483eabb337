package termui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/joeycumines/pocket-dos/internal/console"
	"github.com/joeycumines/pocket-dos/internal/termui/scrollbar"
)

const (
	zoneScrollbar = "console-scrollbar"
	wheelLines    = 3
)

var functionKeys = map[tea.KeyType]int{
	tea.KeyF1: 1,
	tea.KeyF2: 2,
	tea.KeyF3: 3,
	tea.KeyF4: 4,
	tea.KeyF5: 5,
}

func chipZone(i int) string { return fmt.Sprintf("chip-%d", i) }

// screenSize is the transcript area inside the handheld's bezel.
func (a *App) screenSize() (width, height int) {
	// bezel border and padding, plus one column of scrollbar
	width = max(20, min(a.width, 84)-5)
	// header, bezel border, function keys and hint line
	height = max(4, a.height-5)
	return width, height
}

// tabText is what Tab types at the prompt.
const tabText = "    "

func (a *App) consoleKey(msg tea.KeyMsg) {
	c := a.console
	_, rows := a.screenSize()
	switch msg.Type {
	case tea.KeyRunes, tea.KeySpace:
		c.InsertText(string(msg.Runes))
	case tea.KeyTab:
		c.InsertText(tabText)
	case tea.KeyBackspace:
		c.Backspace()
	case tea.KeyEnter:
		c.Submit()
	case tea.KeyUp:
		c.HistoryUp()
	case tea.KeyDown:
		c.HistoryDown()
	case tea.KeyEsc:
		c.ClosePicker()
	case tea.KeyF1, tea.KeyF2, tea.KeyF3, tea.KeyF4, tea.KeyF5:
		c.PressFunctionKey(functionKeys[msg.Type])
	case tea.KeyPgUp:
		a.scrollBack += rows - 1
		return
	case tea.KeyPgDown:
		a.scrollBack = max(0, a.scrollBack-(rows-1))
		return
	default:
		return
	}
	a.scrollBack = 0
}

func (a *App) consoleMouse(msg tea.MouseMsg) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		a.scrollBack += wheelLines
		return
	case tea.MouseButtonWheelDown:
		a.scrollBack = max(0, a.scrollBack-wheelLines)
		return
	}
	if !isClick(msg) {
		return
	}
	for i := range console.ChipCount {
		if a.hit(chipZone(i), msg) {
			a.console.PressChip(i)
			a.scrollBack = 0
			return
		}
	}
	if z := a.zones.Get(zoneScrollbar); z != nil && z.InBounds(msg) {
		_, row := z.Pos(msg)
		sb := a.transcriptScrollbar()
		a.scrollBack = sb.MaxOffset() - sb.OffsetAt(row)
	}
}

// transcript returns the wrapped transcript and the scrollbar positioned
// over it.
func (a *App) transcript() ([]string, scrollbar.Model) {
	width, rows := a.screenSize()
	lines := wrapText(a.console.Render(), width)
	sb := scrollbar.New(a.theme.Phosphor)
	sb.Total, sb.Visible = len(lines), rows
	a.scrollBack = min(a.scrollBack, sb.MaxOffset())
	sb.Offset = sb.MaxOffset() - a.scrollBack
	return lines, sb
}

func (a *App) transcriptScrollbar() scrollbar.Model {
	_, sb := a.transcript()
	return sb
}

func (a *App) consoleView() string {
	t := a.theme
	width, rows := a.screenSize()
	lines, sb := a.transcript()

	visible := make([]string, rows)
	for i := range visible {
		if j := sb.Offset + i; j < len(lines) {
			visible[i] = t.Text.Render(padRight(lines[j], width))
		} else {
			visible[i] = strings.Repeat(" ", width)
		}
	}
	screen := lipgloss.JoinHorizontal(lipgloss.Top,
		strings.Join(visible, "\n"),
		a.zones.Mark(zoneScrollbar, sb.View()),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		a.consoleHeader(width+3),
		t.Screen.Render(screen),
		a.chipBar(),
		t.Dim.Render("enter run · ↑↓ history · F1-F5 keys · pgup/pgdn scroll · ctrl+c quit"),
	)
}

func (a *App) consoleHeader(width int) string {
	t := a.theme
	led := "○"
	if a.console.PowerOn() {
		led = "◉"
	}
	right := "POWER " + led
	if a.toneActive() {
		right = fmt.Sprintf("♪ %dHz  ", a.toneHz) + right
	}
	left := t.Heading.Render("POCKET DOS")
	gap := max(1, width-lipgloss.Width(left)-lipgloss.Width(right))
	return left + strings.Repeat(" ", gap) + t.Status.Render(right)
}

// chipBar draws the function keys. Blank chips keep their F-number so the
// bar never shifts.
func (a *App) chipBar() string {
	t := a.theme
	chips := a.console.Chips()
	parts := make([]string, len(chips))
	for i, ch := range chips {
		label := t.Chip.Render(padRight(ch.Label, 8))
		if ch.Blank() || !a.console.Ready() {
			label = t.Dim.Render(padRight(" "+ch.Label, 10))
		}
		parts[i] = a.zones.Mark(chipZone(i), t.FKey.Render(fmt.Sprintf("%d", i+1))+label)
	}
	return strings.Join(parts, "")
}

// programBar draws the function keys of a full-screen program: labels
// for the given keys, blank otherwise.
func (a *App) programBar(labels map[int]string) string {
	t := a.theme
	var b strings.Builder
	for i := range console.ChipCount {
		label := labels[i]
		text := t.FKey.Render(fmt.Sprintf("%d", i+1)) + t.Chip.Render(padRight(label, 8))
		if label != "" {
			text = a.zones.Mark(programZone(i), text)
		}
		b.WriteString(text)
	}
	return b.String()
}

func programZone(i int) string { return fmt.Sprintf("program-key-%d", i) }

// toneActive reports whether a tone indicator is showing.
func (a *App) toneActive() bool { return a.sched.Now() < a.toneUntil }
