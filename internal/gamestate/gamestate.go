// Package gamestate tracks which screen the player is on and persists it,
// so a restart resumes where they left off.
package gamestate

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"slices"
)

// StorageKey is the key the state is stored under.
const StorageKey = "gameState"

// Page is a top-level screen.
type Page string

const (
	PageAd        Page = "ad"
	PageChat      Page = "chat"
	PageArrival   Page = "arrival"
	PageTitle     Page = "title"
	PageConsole   Page = "console"
	PageElite     Page = "elite"
	PagePinball   Page = "pinball"
	PageTicTacToe Page = "tictactoe"
	PageCircle    Page = "circle"
)

var pages = []Page{
	PageAd, PageChat, PageArrival, PageTitle, PageConsole,
	PageElite, PagePinball, PageTicTacToe, PageCircle,
}

// Pages returns every page in story order.
func Pages() []Page { return slices.Clone(pages) }

// Valid reports whether p is a known page.
func (p Page) Valid() bool { return slices.Contains(pages, p) }

// ParsePage validates s as a page name.
func ParsePage(s string) (Page, error) {
	p := Page(s)
	if !p.Valid() {
		return "", fmt.Errorf("unknown page %q", s)
	}
	return p, nil
}

// Program reports whether p is a full-screen program launched from the
// console.
func (p Page) Program() bool {
	switch p {
	case PageElite, PagePinball, PageTicTacToe, PageCircle:
		return true
	}
	return false
}

// State is the persisted document.
type State struct {
	Page Page `json:"page"`
}

// Store is the subset of storage.Store used here.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Manager owns the current page. It is not safe for concurrent use.
type Manager struct {
	store  Store
	logger *slog.Logger
	state  State
}

// Load restores the state from store, which may be nil. Anything missing
// or unreadable starts a new game on the ad page.
func Load(store Store, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	m := &Manager{store: store, logger: logger, state: State{Page: PageAd}}
	if store == nil {
		return m
	}
	raw, ok, err := store.Get(StorageKey)
	if err != nil {
		logger.Warn("gamestate: failed to load", slog.Any("error", err))
		return m
	}
	if !ok {
		return m
	}
	var st State
	if err := json.Unmarshal([]byte(raw), &st); err != nil || !st.Page.Valid() {
		logger.Warn("gamestate: ignoring invalid state", slog.String("value", raw))
		return m
	}
	m.state = st
	return m
}

// Page returns the current page.
func (m *Manager) Page() Page { return m.state.Page }

// SetPage moves to p and persists it. The page changes even if saving
// fails; the error is returned for reporting.
func (m *Manager) SetPage(p Page) error {
	if !p.Valid() {
		return fmt.Errorf("unknown page %q", p)
	}
	if p != m.state.Page {
		m.logger.Info("page change", slog.String("from", string(m.state.Page)), slog.String("to", string(p)))
	}
	m.state.Page = p
	return m.save()
}

func (m *Manager) save() error {
	if m.store == nil {
		return nil
	}
	data, err := json.Marshal(m.state)
	if err != nil {
		return fmt.Errorf("failed to marshal game state: %w", err)
	}
	if err := m.store.Set(StorageKey, string(data)); err != nil {
		m.logger.Warn("gamestate: failed to save", slog.Any("error", err))
		return fmt.Errorf("failed to save game state: %w", err)
	}
	return nil
}

// MessageSeller opens the chat from the ad.
func (m *Manager) MessageSeller() error { return m.SetPage(PageChat) }

// BuyNow skips the chat and goes straight to the delivery.
func (m *Manager) BuyNow() error { return m.SetPage(PageArrival) }

// ChatComplete follows the end of the conversation.
func (m *Manager) ChatComplete() error { return m.SetPage(PageArrival) }

// ArrivalComplete shows the title screen.
func (m *Manager) ArrivalComplete() error { return m.SetPage(PageTitle) }

// TitleComplete boots the console.
func (m *Manager) TitleComplete() error { return m.SetPage(PageConsole) }

// Launch records that a program took over the screen.
func (m *Manager) Launch(programID string) error {
	p := Page(programID)
	if !p.Program() {
		return fmt.Errorf("%q is not a full-screen program", programID)
	}
	return m.SetPage(p)
}

// ExitProgram returns to the console.
func (m *Manager) ExitProgram() error { return m.SetPage(PageConsole) }

// NewGame starts over from the ad.
func (m *Manager) NewGame() error { return m.SetPage(PageAd) }
