//go:build unix

package termtest

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/joeycumines/pocket-dos/internal/testutil"
)

// SGR mouse button codes.
const (
	buttonLeft   = 0
	motionFlag   = 32
	buttonWheelU = 64
	buttonWheelD = 65
)

func (c *Console) mouse(button, x, y int, release bool) error {
	final := 'M'
	if release {
		final = 'm'
	}
	_, err := fmt.Fprintf(c.ptm, "\x1b[<%d;%d;%d%c", button, x, y, final)
	if err != nil {
		return fmt.Errorf("failed to send mouse event: %w", err)
	}
	return nil
}

// Click presses and releases the left button at column x, row y, both
// 1-based.
func (c *Console) Click(x, y int) error {
	if err := c.mouse(buttonLeft, x, y, false); err != nil {
		return err
	}
	time.Sleep(30 * time.Millisecond)
	return c.mouse(buttonLeft, x, y, true)
}

// Drag presses at the first point, moves through the rest and releases
// at the last.
func (c *Console) Drag(points ...[2]int) error {
	if len(points) == 0 {
		return nil
	}
	if err := c.mouse(buttonLeft, points[0][0], points[0][1], false); err != nil {
		return err
	}
	for _, p := range points[1:] {
		time.Sleep(10 * time.Millisecond)
		if err := c.mouse(buttonLeft|motionFlag, p[0], p[1], false); err != nil {
			return err
		}
	}
	last := points[len(points)-1]
	return c.mouse(buttonLeft, last[0], last[1], true)
}

// Wheel scrolls "up" or "down" at x, y.
func (c *Console) Wheel(x, y int, direction string) error {
	switch strings.ToLower(direction) {
	case "up":
		return c.mouse(buttonWheelU, x, y, false)
	case "down":
		return c.mouse(buttonWheelD, x, y, false)
	}
	return fmt.Errorf("unknown scroll direction: %s", direction)
}

// ClickText waits for text to be visible and clicks its middle.
func (c *Console) ClickText(text string) error {
	var x, y int
	err := testutil.Poll(context.Background(), func() bool {
		var ok bool
		x, y, ok = c.Find(text)
		return ok
	}, c.timeout, 20*time.Millisecond)
	if err != nil {
		return fmt.Errorf("%q not on screen: %w\nscreen:\n%s", text, err, strings.Join(c.Screen(), "\n"))
	}
	return c.Click(x+utf8.RuneCountInString(text)/2, y)
}
