package command

import (
	"flag"
	"fmt"

	"github.com/joeycumines/pocket-dos/internal/config"
	"github.com/joeycumines/pocket-dos/internal/logging"
	"github.com/joeycumines/pocket-dos/internal/session"
)

// logFlags are the logging overrides shared by the game commands.
type logFlags struct {
	file  string
	level string
}

func (f *logFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.file, "log-file", "", "Write JSON logs to this file (default from config log.file)")
	fs.StringVar(&f.level, "log-level", "", "Log level: debug, info, warn, error (default from config log.level)")
}

// openLogger resolves logging from flags and config and builds the logger.
// Flag values take precedence over config, which takes precedence over the
// schema defaults. The caller must Close the result.
func openLogger(flags logFlags, cfg *config.Config) (*logging.Logger, error) {
	schema := config.DefaultSchema()

	levelStr := flags.level
	if levelStr == "" {
		levelStr = schema.Resolve(cfg, "log.level")
	}
	level, err := logging.ParseLevel(levelStr)
	if err != nil {
		return nil, err
	}

	path := flags.file
	if path == "" {
		path = schema.Resolve(cfg, "log.file")
	}

	maxSizeMB := schema.ResolveInt(cfg, "log.max-size-mb")
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}
	// Zero backups is valid: the file is truncated on rotation.
	maxFiles := schema.ResolveInt(cfg, "log.max-files")
	if maxFiles < 0 {
		maxFiles = 5
	}

	id, source := session.ID("")
	l, err := logging.Setup(logging.Options{
		Level:     level,
		File:      path,
		MaxSizeMB: maxSizeMB,
		MaxFiles:  maxFiles,
		SessionID: id,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}
	l.Debug("logging started", "source", source)
	return l, nil
}
