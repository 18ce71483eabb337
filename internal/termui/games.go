package termui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/joeycumines/pocket-dos/internal/circle"
	"github.com/joeycumines/pocket-dos/internal/gamestate"
	"github.com/joeycumines/pocket-dos/internal/tictactoe"
)

const (
	zoneCanvas = "circle-canvas"

	// canvas cells are about twice as tall as they are wide, so rows are
	// scaled by cellAspect to keep circles round
	canvasWidth  = 48
	canvasHeight = 16
	cellAspect   = 2
)

func cellZone(v int) string { return fmt.Sprintf("ttt-%d", v) }

// programKey maps keys shared by every full-screen program: F1 is the
// program's own action, F5 and Escape exit.
func programKey(msg tea.KeyMsg) (action, exit bool) {
	switch msg.Type {
	case tea.KeyF1:
		return true, false
	case tea.KeyF5, tea.KeyEsc:
		return false, true
	}
	return false, false
}

func (a *App) programBarHit(msg tea.MouseMsg) (action, exit bool) {
	return a.hit(programZone(0), msg), a.hit(programZone(4), msg)
}

// tictactoe

func (a *App) tttKey(msg tea.KeyMsg) {
	if action, exit := programKey(msg); action || exit {
		if exit {
			a.ttt.Exit()
		} else {
			a.ttt.Restart()
		}
		return
	}
	row, col := a.cursor/tictactoe.GridSize, a.cursor%tictactoe.GridSize
	switch msg.String() {
	case "up", "k":
		row = max(0, row-1)
	case "down", "j":
		row = min(tictactoe.GridSize-1, row+1)
	case "left", "h":
		col = max(0, col-1)
	case "right", "l":
		col = min(tictactoe.GridSize-1, col+1)
	case "enter", " ":
		a.ttt.Click(a.cursor)
		return
	case "r":
		a.ttt.Restart()
		return
	}
	a.cursor = row*tictactoe.GridSize + col
}

func (a *App) tttMouse(msg tea.MouseMsg) {
	if action, exit := a.programBarHit(msg); action || exit {
		if exit {
			a.ttt.Exit()
		} else {
			a.ttt.Restart()
		}
		return
	}
	for v := range tictactoe.GridCells {
		if a.hit(cellZone(v), msg) {
			a.cursor = v
			a.ttt.Click(v)
			return
		}
	}
}

func (a *App) tttView() string {
	t := a.theme
	grid := make([]string, tictactoe.GridSize)
	for r := range tictactoe.GridSize {
		cells := make([]string, tictactoe.GridSize)
		for c := range tictactoe.GridSize {
			v := r*tictactoe.GridSize + c
			cells[c] = a.zones.Mark(cellZone(v), a.tttCell(v))
		}
		grid[r] = strings.Join(cells, " ")
	}
	status := t.Text.Render(a.ttt.Status())
	if a.ttt.Outcome() == tictactoe.AnomalyWon {
		status = t.Heading.Blink(true).Render(a.ttt.Status())
	}
	bar := map[int]string{4: "EXIT"}
	if a.ttt.Phase() == tictactoe.GameOver {
		bar[0] = "RESTART"
	}
	body := lipgloss.JoinVertical(lipgloss.Center,
		t.Heading.Render("TICTACTO.EXE"),
		"",
		status,
		"",
		strings.Join(grid, "\n\n"),
	)
	return lipgloss.JoinVertical(lipgloss.Left,
		t.Screen.Render(lipgloss.PlaceHorizontal(a.contentWidth(), lipgloss.Center, body)),
		a.programBar(bar),
		t.Dim.Render("arrows move · enter mark · ctrl+c quit"),
	)
}

func (a *App) tttCell(v int) string {
	t := a.theme
	_, inner := tictactoe.InnerIndex(v)
	mark := a.ttt.Cell(v)
	text := "   "
	switch {
	case mark != tictactoe.Empty:
		text = " " + mark.String() + " "
	case !inner:
		text = " · "
	}
	style := t.Dim
	if inner || mark != tictactoe.Empty {
		style = t.Text.Bold(true)
	}
	if inner {
		text = "[" + text + "]"
	} else {
		text = " " + text + " "
	}
	if v == a.cursor {
		style = style.Reverse(true)
	}
	return style.Render(text)
}

// circle

func (a *App) circleKey(msg tea.KeyMsg) {
	action, exit := programKey(msg)
	switch {
	case exit:
		a.exitProgram()
	case action || msg.String() == "r":
		a.circle.Reset()
	}
}

func (a *App) circleMouse(msg tea.MouseMsg) {
	if action, exit := a.programBarHit(msg); action || exit {
		if exit {
			a.exitProgram()
		} else {
			a.circle.Reset()
		}
		return
	}
	if msg.Action == tea.MouseActionRelease {
		a.circle.Up()
		return
	}
	z := a.zones.Get(zoneCanvas)
	if z == nil || !z.InBounds(msg) {
		return
	}
	x, y := z.Pos(msg)
	p := circle.Point{X: float64(x), Y: float64(y * cellAspect)}
	switch {
	case isClick(msg):
		a.circle.Down(p)
	case msg.Action == tea.MouseActionMotion && a.circle.Drawing():
		a.circle.Move(p)
	}
}

func (a *App) circleView() string {
	t := a.theme
	canvas := a.zones.Mark(zoneCanvas, a.renderCanvas())
	score := ""
	if s, ok := a.circle.Score(); ok {
		score = t.Heading.Render(fmt.Sprintf("%d%%", s))
	}
	body := lipgloss.JoinVertical(lipgloss.Center,
		t.Heading.Render("PERFECT CIRCLE"),
		t.Dim.Render(fmt.Sprintf("HIGH SCORE: %d%%", a.circle.HighScore())),
		t.Text.Render(a.circle.Message()),
		score,
		lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(t.Phosphor).Render(canvas),
	)
	return lipgloss.JoinVertical(lipgloss.Left,
		t.Screen.Render(lipgloss.PlaceHorizontal(a.contentWidth(), lipgloss.Center, body)),
		a.programBar(map[int]string{0: "CLEAR", 4: "EXIT"}),
		t.Dim.Render("drag with the mouse · ctrl+c quit"),
	)
}

// renderCanvas plots the stroke and, once scored, the fitted circle.
func (a *App) renderCanvas() string {
	grid := make([][]rune, canvasHeight)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", canvasWidth))
	}
	plot := func(x, y float64, ch rune) {
		c, r := int(math.Round(x)), int(math.Round(y/cellAspect))
		if r >= 0 && r < canvasHeight && c >= 0 && c < canvasWidth {
			grid[r][c] = ch
		}
	}
	if _, ok := a.circle.Score(); ok {
		if fit := a.circle.Fit(); fit.Radius > 0 {
			for i := range 120 {
				th := 2 * math.Pi * float64(i) / 120
				plot(fit.Center.X+fit.Radius*math.Cos(th), fit.Center.Y+fit.Radius*math.Sin(th), '·')
			}
		}
	}
	for _, p := range a.circle.Points() {
		plot(p.X, p.Y, '•')
	}
	lines := make([]string, canvasHeight)
	for r, row := range grid {
		lines[r] = a.theme.Text.Render(string(row))
	}
	return strings.Join(lines, "\n")
}

// elite and pinball

func (a *App) stubKey(msg tea.KeyMsg) {
	if _, exit := programKey(msg); exit {
		a.exitProgram()
	}
}

func (a *App) stubView() string {
	t := a.theme
	name := "ELITE.EXE"
	if a.state.Page() == gamestate.PagePinball {
		name = "PINBALL.EXE"
	}
	body := lipgloss.JoinVertical(lipgloss.Center,
		t.Heading.Render(name),
		"",
		t.Text.Render("LOADING..."),
		t.Text.Render("ERROR: DISK IN DRIVE A: NOT READY"),
		"",
		t.Dim.Render("PRESS F5 TO EXIT"),
	)
	return lipgloss.JoinVertical(lipgloss.Left,
		t.Screen.Render(lipgloss.Place(a.contentWidth(), 10, lipgloss.Center, lipgloss.Center, body)),
		a.programBar(map[int]string{4: "EXIT"}),
	)
}
