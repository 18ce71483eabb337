package gamestate

import (
	"errors"
	"testing"

	"github.com/joeycumines/pocket-dos/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) storage.Store {
	t.Helper()
	t.Cleanup(storage.ClearAllInMemoryStores)
	s, err := storage.NewInMemoryBackend(t.Name())
	require.NoError(t, err)
	return s
}

func TestLoadDefaults(t *testing.T) {
	assert.Equal(t, PageAd, Load(nil, nil).Page())
	assert.Equal(t, PageAd, Load(newStore(t), nil).Page())
}

func TestLoadIgnoresInvalid(t *testing.T) {
	for _, raw := range []string{"", "{", `{"page":""}`, `{"page":"bogus"}`, `[]`} {
		store := newStore(t)
		require.NoError(t, store.Set(StorageKey, raw))
		assert.Equal(t, PageAd, Load(store, nil).Page(), raw)
	}
}

func TestStoryTransitionsPersist(t *testing.T) {
	store := newStore(t)
	m := Load(store, nil)

	steps := []struct {
		do   func() error
		want Page
	}{
		{m.MessageSeller, PageChat},
		{m.ChatComplete, PageArrival},
		{m.ArrivalComplete, PageTitle},
		{m.TitleComplete, PageConsole},
		{func() error { return m.Launch("tictactoe") }, PageTicTacToe},
		{m.ExitProgram, PageConsole},
		{m.NewGame, PageAd},
		{m.BuyNow, PageArrival},
	}
	for _, step := range steps {
		require.NoError(t, step.do())
		assert.Equal(t, step.want, m.Page())
		raw, ok, err := store.Get(StorageKey)
		require.NoError(t, err)
		require.True(t, ok)
		assert.JSONEq(t, `{"page":"`+string(step.want)+`"}`, raw)
		assert.Equal(t, step.want, Load(store, nil).Page())
	}
}

func TestLaunchRejectsNonPrograms(t *testing.T) {
	m := Load(nil, nil)
	assert.Error(t, m.Launch("demo"))
	assert.Error(t, m.Launch("console"))
	assert.Equal(t, PageAd, m.Page())
	assert.Error(t, m.SetPage("nowhere"))
}

type brokenStore struct{}

func (brokenStore) Get(string) (string, bool, error) { return "", false, errors.New("no disk") }
func (brokenStore) Set(string, string) error         { return errors.New("no disk") }

func TestSaveErrorStillMoves(t *testing.T) {
	m := Load(brokenStore{}, nil)
	assert.Equal(t, PageAd, m.Page())
	assert.Error(t, m.MessageSeller())
	assert.Equal(t, PageChat, m.Page())
}

func TestParsePage(t *testing.T) {
	p, err := ParsePage("circle")
	require.NoError(t, err)
	assert.Equal(t, PageCircle, p)
	assert.True(t, p.Program())
	assert.False(t, PageTitle.Program())
	_, err = ParsePage("Circle")
	assert.Error(t, err)
	assert.Len(t, Pages(), 9)
}
