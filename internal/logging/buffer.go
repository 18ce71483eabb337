package logging

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// DefaultBufferSize is the ring capacity used when none is given.
const DefaultBufferSize = 1000

// Entry is one buffered record.
type Entry struct {
	Time    time.Time         `json:"time"`
	Level   slog.Level        `json:"level"`
	Message string            `json:"message"`
	Attrs   map[string]string `json:"attrs"`
}

// ring is the storage shared by a BufferHandler and its derivatives.
type ring struct {
	mu      sync.RWMutex
	entries []Entry
	max     int
}

// BufferHandler is a slog.Handler keeping the most recent records in
// memory so a host can show or search them. Handlers derived through
// WithAttrs and WithGroup share the same buffer.
type BufferHandler struct {
	ring   *ring
	level  slog.Leveler
	attrs  []slog.Attr
	prefix string
}

var _ slog.Handler = (*BufferHandler)(nil)

// NewBufferHandler returns a handler keeping up to size entries at or above
// level. A nil level records everything.
func NewBufferHandler(size int, level slog.Leveler) *BufferHandler {
	if size <= 0 {
		size = DefaultBufferSize
	}
	if level == nil {
		level = slog.LevelDebug
	}
	return &BufferHandler{
		ring:  &ring{entries: make([]Entry, 0, min(size, 64)), max: size},
		level: level,
	}
}

func (h *BufferHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *BufferHandler) Handle(_ context.Context, record slog.Record) error {
	attrs := make(map[string]string, len(h.attrs)+record.NumAttrs())
	for _, a := range h.attrs {
		addAttr(attrs, "", a)
	}
	record.Attrs(func(a slog.Attr) bool {
		addAttr(attrs, h.prefix, a)
		return true
	})

	r := h.ring
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{
		Time:    record.Time,
		Level:   record.Level,
		Message: record.Message,
		Attrs:   attrs,
	})
	if over := len(r.entries) - r.max; over > 0 {
		r.entries = append(r.entries[:0], r.entries[over:]...)
	}
	return nil
}

func addAttr(dst map[string]string, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		p := prefix
		if a.Key != "" {
			p += a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			addAttr(dst, p, ga)
		}
		return
	}
	dst[prefix+a.Key] = a.Value.String()
}

func (h *BufferHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	c := *h
	c.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	c.attrs = append(c.attrs, h.attrs...)
	for _, a := range attrs {
		if h.prefix != "" {
			a.Key = h.prefix + a.Key
		}
		c.attrs = append(c.attrs, a)
	}
	return &c
}

func (h *BufferHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	c := *h
	c.prefix = h.prefix + name + "."
	return &c
}

// Entries returns a copy of every buffered entry, oldest first.
func (h *BufferHandler) Entries() []Entry {
	return h.Recent(0)
}

// Recent returns the newest n entries, or all of them when n <= 0.
func (h *BufferHandler) Recent(n int) []Entry {
	r := h.ring
	r.mu.RLock()
	defer r.mu.RUnlock()
	if n <= 0 || n > len(r.entries) {
		n = len(r.entries)
	}
	out := make([]Entry, n)
	copy(out, r.entries[len(r.entries)-n:])
	return out
}

// Search returns entries whose message or attributes contain query,
// ignoring case.
func (h *BufferHandler) Search(query string) []Entry {
	query = strings.ToLower(query)
	r := h.ring
	r.mu.RLock()
	defer r.mu.RUnlock()
	var matches []Entry
	for _, e := range r.entries {
		if entryContains(e, query) {
			matches = append(matches, e)
		}
	}
	return matches
}

func entryContains(e Entry, query string) bool {
	if strings.Contains(strings.ToLower(e.Message), query) {
		return true
	}
	for k, v := range e.Attrs {
		if strings.Contains(strings.ToLower(k), query) || strings.Contains(strings.ToLower(v), query) {
			return true
		}
	}
	return false
}

// Clear drops every buffered entry.
func (h *BufferHandler) Clear() {
	r := h.ring
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = r.entries[:0]
}
