package console

import (
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/joeycumines/pocket-dos/internal/vfs"
)

// Plasma dimensions and timing.
const (
	PlasmaWidth    = 38
	PlasmaHeight   = 10
	PlasmaFrames   = 90
	PlasmaInterval = 33 * time.Millisecond
)

// DemoFinished is printed when the animation ends.
const DemoFinished = "DEMO finished."

// PlasmaFrame renders frame t of the DEMO.EXE plasma as PlasmaHeight rows.
func PlasmaFrame(t int) []string {
	rows := make([]string, PlasmaHeight)
	var b strings.Builder
	for y := range PlasmaHeight {
		b.Reset()
		for x := range PlasmaWidth {
			v := math.Sin((float64(x)+float64(t)*0.6)*0.5) + math.Cos(float64(y)*1.3+float64(t)*0.37)
			switch {
			case v > 1.1:
				b.WriteByte('*')
			case v > 0.9:
				b.WriteByte('.')
			default:
				b.WriteByte(' ')
			}
		}
		rows[y] = b.String()
	}
	return rows
}

func (c *Console) animate(program string) {
	if program != vfs.ProgramDemo {
		c.logger.Warn("console unknown animation", slog.String("program", program))
		c.session.Arm()
		return
	}
	c.animating = program
	anchor := len(c.session.Output)
	frame := 0
	c.animTimers.Every(PlasmaInterval, func() {
		frame++
		c.session.Output = c.session.Output[:anchor] + strings.Join(PlasmaFrame(frame), "\n") + "\n"
		if frame < PlasmaFrames {
			return
		}
		c.animTimers.Cancel()
		c.animating = ""
		c.session.Println(DemoFinished)
		c.session.Arm()
		c.cursorOn = true
	})
}
