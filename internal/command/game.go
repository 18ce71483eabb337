package command

import (
	"errors"
	"fmt"

	"github.com/joeycumines/pocket-dos/internal/config"
	"github.com/joeycumines/pocket-dos/internal/gamestate"
	"github.com/joeycumines/pocket-dos/internal/logging"
	"github.com/joeycumines/pocket-dos/internal/storage"
)

// saveGame is the persisted half of a game run: the logger, the opened
// store and the page state read from it.
type saveGame struct {
	settings config.Settings
	log      *logging.Logger
	store    storage.Store
	state    *gamestate.Manager
}

// openSaveGame resolves settings, sets up logging and opens the configured
// storage backend. The caller must Close the result.
func openSaveGame(env Env, flags logFlags) (*saveGame, error) {
	cfg := env.config()
	settings := config.ResolveSettings(cfg, nil)

	log, err := openLogger(flags, cfg)
	if err != nil {
		return nil, err
	}

	store, err := storage.GetBackend(settings.StorageBackend, settings.StorageDir)
	if err != nil {
		_ = log.Close()
		if errors.Is(err, storage.ErrWouldBlock) {
			return nil, fmt.Errorf("another pocketdos is using the save directory: %w", err)
		}
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	log.Info("storage opened",
		"backend", settings.StorageBackend,
		"location", settings.StorageDir)

	return &saveGame{
		settings: settings,
		log:      log,
		store:    store,
		state:    gamestate.Load(store, log.Component("gamestate")),
	}, nil
}

// Close releases the store, then the log file.
func (g *saveGame) Close() error {
	return errors.Join(g.store.Close(), g.log.Close())
}
