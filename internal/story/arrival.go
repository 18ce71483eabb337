package story

import (
	"time"

	"github.com/joeycumines/pocket-dos/internal/sched"
)

// ArrivalText is the only line of the delivery interlude.
const ArrivalText = "3 to 5 days later. Your package arrives."

// Arrival phases follow a fade in, a hold and a fade out.
const (
	ArrivalFadeIn   = 100 * time.Millisecond
	ArrivalFadeOut  = 2300 * time.Millisecond
	ArrivalDuration = 3500 * time.Millisecond
)

// ArrivalPhase is the visual state of the interlude.
type ArrivalPhase int

const (
	ArrivalHidden ArrivalPhase = iota
	ArrivalShown
	ArrivalFading
	ArrivalOver
)

// Arrival runs the delivery interlude and calls onComplete at the end.
type Arrival struct {
	timers     *sched.Group
	phase      ArrivalPhase
	onComplete func()
}

// NewArrival returns an interlude bound to s.
func NewArrival(s *sched.Scheduler, onComplete func()) *Arrival {
	return &Arrival{timers: s.NewGroup(), onComplete: onComplete}
}

// Start (re)starts the interlude.
func (a *Arrival) Start() {
	a.timers.Cancel()
	a.phase = ArrivalHidden
	a.timers.After(ArrivalFadeIn, func() { a.phase = ArrivalShown })
	a.timers.After(ArrivalFadeOut, func() { a.phase = ArrivalFading })
	a.timers.After(ArrivalDuration, a.finish)
}

// Skip ends the interlude immediately.
func (a *Arrival) Skip() {
	if a.phase == ArrivalOver {
		return
	}
	a.timers.Cancel()
	a.finish()
}

func (a *Arrival) finish() {
	a.phase = ArrivalOver
	if a.onComplete != nil {
		a.onComplete()
	}
}

// Stop cancels the interlude without completing it.
func (a *Arrival) Stop() { a.timers.Cancel() }

// Phase returns the current phase.
func (a *Arrival) Phase() ArrivalPhase { return a.phase }
