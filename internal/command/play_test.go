package command

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeycumines/pocket-dos/internal/circle"
	"github.com/joeycumines/pocket-dos/internal/gamestate"
	"github.com/joeycumines/pocket-dos/internal/logging"
	"github.com/joeycumines/pocket-dos/internal/storage"
	"github.com/joeycumines/pocket-dos/internal/termui"
)

// savedPage reads the page persisted under env's storage settings.
func savedPage(t *testing.T, env Env) gamestate.Page {
	t.Helper()
	store, err := storage.GetBackend("memory", "command-"+t.Name())
	require.NoError(t, err)
	defer store.Close()
	return gamestate.Load(store, logging.Discard()).Page()
}

func newTestPlay(env Env, pages *[]gamestate.Page) *PlayCommand {
	cmd := NewPlayCommand(env)
	cmd.isTerminal = func(io.Reader) bool { return true }
	cmd.run = func(_ Env, app *termui.App, _ io.Writer) error {
		*pages = append(*pages, app.Page())
		return nil
	}
	return cmd
}

func TestPlayNeedsTerminal(t *testing.T) {
	cmd := NewPlayCommand(testEnv(t, ""))
	var stdout, stderr bytes.Buffer
	assert.ErrorIs(t, cmd.Execute(nil, &stdout, &stderr), errNoTerminal)
}

func TestPlayStartsFromSavedPage(t *testing.T) {
	env := testEnv(t, "")
	var pages []gamestate.Page
	cmd := newTestPlay(env, &pages)

	var stdout, stderr bytes.Buffer
	require.NoError(t, cmd.Execute(nil, &stdout, &stderr))
	assert.Equal(t, []gamestate.Page{gamestate.PageAd}, pages)
}

func TestPlayPageFlag(t *testing.T) {
	env := testEnv(t, "")
	var pages []gamestate.Page
	cmd := newTestPlay(env, &pages)
	fs := newFlagSet(cmd)
	require.NoError(t, fs.Parse([]string{"-page", "title"}))

	var stdout, stderr bytes.Buffer
	require.NoError(t, cmd.Execute(fs.Args(), &stdout, &stderr))
	assert.Equal(t, []gamestate.Page{gamestate.PageTitle}, pages)
	assert.Equal(t, gamestate.PageTitle, savedPage(t, env))
}

func TestPlayStartPageFromConfig(t *testing.T) {
	env := testEnv(t, "")
	env.Config.SetCommandOption("play", "start-page", "console")
	var pages []gamestate.Page
	cmd := newTestPlay(env, &pages)

	var stdout, stderr bytes.Buffer
	require.NoError(t, cmd.Execute(nil, &stdout, &stderr))
	assert.Equal(t, []gamestate.Page{gamestate.PageConsole}, pages)
}

func TestPlaySavedProgramResumesOnConsole(t *testing.T) {
	env := testEnv(t, "")
	var pages []gamestate.Page
	cmd := newTestPlay(env, &pages)
	fs := newFlagSet(cmd)
	require.NoError(t, fs.Parse([]string{"-page", "tictactoe"}))

	var stdout, stderr bytes.Buffer
	require.NoError(t, cmd.Execute(fs.Args(), &stdout, &stderr))
	assert.Equal(t, []gamestate.Page{gamestate.PageConsole}, pages)
}

func TestPlayErrors(t *testing.T) {
	env := testEnv(t, "")
	var pages []gamestate.Page
	cmd := newTestPlay(env, &pages)
	fs := newFlagSet(cmd)
	require.NoError(t, fs.Parse([]string{"-page", "checkout"}))

	var stdout, stderr bytes.Buffer
	assert.Error(t, cmd.Execute(fs.Args(), &stdout, &stderr))
	assert.Error(t, cmd.Execute([]string{"extra"}, &stdout, &stderr))
	assert.Empty(t, pages)

	boom := errors.New("boom")
	cmd = NewPlayCommand(testEnv(t, ""))
	cmd.isTerminal = func(io.Reader) bool { return true }
	cmd.run = func(Env, *termui.App, io.Writer) error { return boom }
	assert.ErrorIs(t, cmd.Execute(nil, &stdout, &stderr), boom)
}

func TestPlayUnknownBackend(t *testing.T) {
	env := testEnv(t, "")
	env.Config.SetGlobalOption("storage.backend", "floppy")
	var pages []gamestate.Page
	cmd := newTestPlay(env, &pages)

	var stdout, stderr bytes.Buffer
	err := cmd.Execute(nil, &stdout, &stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open storage")
}

func TestNewGame(t *testing.T) {
	env := testEnv(t, "")
	store, err := storage.GetBackend("memory", "command-"+t.Name())
	require.NoError(t, err)
	require.NoError(t, gamestate.Load(store, logging.Discard()).SetPage(gamestate.PageConsole))
	require.NoError(t, store.Set(circle.HighScoreKey, "88"))
	require.NoError(t, store.Close())

	cmd := NewNewGameCommand(env)
	var stdout, stderr bytes.Buffer
	require.NoError(t, cmd.Execute(nil, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "is back up on BayLike")
	assert.Equal(t, gamestate.PageAd, savedPage(t, env))

	store, err = storage.GetBackend("memory", "command-"+t.Name())
	require.NoError(t, err)
	_, ok, err := store.Get(circle.HighScoreKey)
	require.NoError(t, err)
	assert.True(t, ok, "scores survive without -scores")
	require.NoError(t, store.Close())

	cmd = NewNewGameCommand(env)
	fs := newFlagSet(cmd)
	require.NoError(t, fs.Parse([]string{"-scores"}))
	stdout.Reset()
	require.NoError(t, cmd.Execute(fs.Args(), &stdout, &stderr))
	assert.Contains(t, stdout.String(), "High score cleared.")

	store, err = storage.GetBackend("memory", "command-"+t.Name())
	require.NoError(t, err)
	defer store.Close()
	_, ok, err = store.Get(circle.HighScoreKey)
	require.NoError(t, err)
	assert.False(t, ok)
}
