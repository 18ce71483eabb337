// Package sched provides a single-threaded timer queue driven by a virtual
// clock. Nothing fires on its own: the owner advances the clock (from a UI
// tick, a wall-clock Driver, or directly in tests) and due callbacks run
// synchronously, in due order, on the caller's goroutine.
package sched

import (
	"container/heap"
	"time"
)

// Scheduler is a virtual-time timer queue. It is not safe for concurrent use.
type Scheduler struct {
	now     time.Duration
	seq     uint64
	queue   timerHeap
	live    map[uint64]*timer
	running bool
}

// New returns a Scheduler whose clock starts at zero.
func New() *Scheduler {
	return &Scheduler{live: make(map[uint64]*timer)}
}

// Timer is a handle to a scheduled callback.
type Timer struct {
	s  *Scheduler
	id uint64
}

// Stop cancels the timer, reporting whether it was still pending. Stopping
// a repeating timer from inside its own callback prevents the next run.
func (t Timer) Stop() bool {
	if t.s == nil {
		return false
	}
	return t.s.cancel(t.id)
}

// Active reports whether the timer is still scheduled.
func (t Timer) Active() bool {
	if t.s == nil {
		return false
	}
	_, ok := t.s.live[t.id]
	return ok
}

type timer struct {
	id    uint64
	due   time.Duration
	every time.Duration
	fn    func()
	group *Group
	index int
}

// Now returns the current virtual time.
func (s *Scheduler) Now() time.Duration { return s.now }

// Pending returns the number of scheduled timers.
func (s *Scheduler) Pending() int { return len(s.live) }

// After schedules fn to run once, d after the current virtual time. A
// non-positive d runs on the next Advance call, even Advance(0).
func (s *Scheduler) After(d time.Duration, fn func()) Timer {
	return s.add(nil, d, 0, fn)
}

// Every schedules fn to run every d (which must be positive) until stopped.
func (s *Scheduler) Every(d time.Duration, fn func()) Timer {
	if d <= 0 {
		panic("sched: non-positive interval")
	}
	return s.add(nil, d, d, fn)
}

func (s *Scheduler) add(g *Group, d, every time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}
	s.seq++
	t := &timer{id: s.seq, due: s.now + d, every: every, fn: fn, group: g}
	heap.Push(&s.queue, t)
	s.live[t.id] = t
	if g != nil {
		g.ids[t.id] = struct{}{}
	}
	return Timer{s: s, id: t.id}
}

func (s *Scheduler) cancel(id uint64) bool {
	t, ok := s.live[id]
	if !ok {
		return false
	}
	s.drop(t)
	if t.index >= 0 {
		heap.Remove(&s.queue, t.index)
	}
	return true
}

func (s *Scheduler) drop(t *timer) {
	delete(s.live, t.id)
	if t.group != nil {
		delete(t.group.ids, t.id)
	}
}

// Next returns the due time of the earliest pending timer.
func (s *Scheduler) Next() (time.Duration, bool) {
	if len(s.queue) == 0 {
		return 0, false
	}
	return s.queue[0].due, true
}

// Advance moves the clock forward by d, running every callback that falls
// due, and returns how many ran.
func (s *Scheduler) Advance(d time.Duration) int {
	if d < 0 {
		d = 0
	}
	return s.AdvanceTo(s.now + d)
}

// AdvanceTo moves the clock to t (never backwards), running due callbacks
// in (due time, scheduling order) order. Callbacks observe Now() equal to
// their own due time and may schedule or cancel timers; new timers that
// fall due before t run in the same call.
func (s *Scheduler) AdvanceTo(t time.Duration) int {
	if s.running {
		panic("sched: re-entrant advance")
	}
	s.running = true
	defer func() { s.running = false }()

	var ran int
	for len(s.queue) > 0 && s.queue[0].due <= t {
		next := heap.Pop(&s.queue).(*timer)
		if next.due > s.now {
			s.now = next.due
		}
		if next.every > 0 {
			next.due += next.every
			heap.Push(&s.queue, next)
		} else {
			s.drop(next)
		}
		next.fn()
		ran++
	}
	if t > s.now {
		s.now = t
	}
	return ran
}

// Group tracks timers so they can be cancelled together, e.g. every step of
// a boot sequence.
type Group struct {
	s   *Scheduler
	ids map[uint64]struct{}
}

// NewGroup returns an empty group bound to s.
func (s *Scheduler) NewGroup() *Group {
	return &Group{s: s, ids: make(map[uint64]struct{})}
}

// After is Scheduler.After, tracked by the group.
func (g *Group) After(d time.Duration, fn func()) Timer {
	return g.s.add(g, d, 0, fn)
}

// Every is Scheduler.Every, tracked by the group.
func (g *Group) Every(d time.Duration, fn func()) Timer {
	if d <= 0 {
		panic("sched: non-positive interval")
	}
	return g.s.add(g, d, d, fn)
}

// Pending returns the number of live timers in the group.
func (g *Group) Pending() int { return len(g.ids) }

// Cancel stops every timer in the group and returns how many were pending.
func (g *Group) Cancel() int {
	var n int
	for id := range g.ids {
		if g.s.cancel(id) {
			n++
		}
	}
	return n
}

type timerHeap []*timer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].due != h[j].due {
		return h[i].due < h[j].due
	}
	return h[i].id < h[j].id
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	t := x.(*timer)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}
