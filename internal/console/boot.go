package console

import (
	"log/slog"
	"time"

	"github.com/joeycumines/pocket-dos/internal/shell"
)

// Reboot tone.
const (
	RebootToneHz = 660
	RebootToneMs = 90
)

// ReadyLine is printed just before the first prompt.
const ReadyLine = "Self-tests: PASS"

var biosBanner = []string{
	"American Megatrends, Inc. BIOS (C) 1992-95",
	"Pentium(TM) CPU at 100 MHz  \n640K Base Memory, 64M Extended",
	"Detecting IDE drives ... OK",
	"Booting from C: ...",
}

type bootStep struct {
	at   time.Duration
	line string
}

var bootSteps = []bootStep{
	{700 * time.Millisecond, "\nStarting MS-DOS..."},
	{1100 * time.Millisecond, "HIMEM is testing extended memory... done."},
	{1600 * time.Millisecond, "\nMicrosoft(R) MS-DOS(R) Version 6.22"},
	{1900 * time.Millisecond, "Copyright (C) Microsoft Corp 1981-1994."},
}

// BootDuration is the delay from Boot to the armed prompt.
const BootDuration = 2200 * time.Millisecond

// Boot clears the screen and plays the boot transcript. Any earlier boot
// and any running animation are cancelled first. History survives.
func (c *Console) Boot(reboot bool) {
	c.bootTimers.Cancel()
	c.animTimers.Cancel()
	c.animating = ""
	c.suspended = ""
	c.picker = nil
	c.boots++

	history := c.session.History
	c.session = shell.NewSession(c.in.FS().RootPath())
	c.session.History = history
	c.cursorOn = true

	c.logger.Info("console boot", slog.Bool("reboot", reboot), slog.Bool("fast", c.fastBoot))
	for _, line := range biosBanner {
		c.session.Println(line)
	}

	finish := func() {
		if reboot {
			c.playTones([]shell.Tone{{FreqHz: RebootToneHz, DurationMs: RebootToneMs}})
		}
		c.session.Println(ReadyLine)
		c.session.Arm()
		c.logger.Info("console ready")
	}

	if c.fastBoot {
		for _, step := range bootSteps {
			c.session.Println(step.line)
		}
		finish()
		return
	}
	for _, step := range bootSteps {
		c.bootTimers.After(step.at, func() { c.session.Println(step.line) })
	}
	c.bootTimers.After(BootDuration, finish)
}
