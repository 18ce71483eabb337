package console

import (
	"log/slog"

	"github.com/joeycumines/pocket-dos/internal/config"
	"github.com/joeycumines/pocket-dos/internal/logging"
	"github.com/joeycumines/pocket-dos/internal/sched"
	"github.com/joeycumines/pocket-dos/internal/shell"
)

// NewFromSettings builds a console over the stock drive configured by set.
// opts are applied after the settings, so they win.
func NewFromSettings(set config.Settings, s *sched.Scheduler, logger *slog.Logger, opts ...Option) *Console {
	if logger == nil {
		logger = logging.Discard()
	}
	in := NewInterpreter(
		shell.WithVolumeLabel(set.VolumeLabel),
		shell.WithLogger(logger.With(logging.KeyComponent, "shell")),
	)
	base := []Option{
		WithLogger(logger.With(logging.KeyComponent, "console")),
		WithFastBoot(set.FastBoot),
		WithAutosubmit(set.AutosubmitRun),
	}
	if set.BlinkInterval > 0 {
		base = append(base, WithBlinkInterval(set.BlinkInterval))
	}
	return New(in, s, append(base, opts...)...)
}
