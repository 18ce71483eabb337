package config

import "time"

// Settings is the resolved, typed view of the options the game reads.
type Settings struct {
	VolumeLabel    string
	FastBoot       bool
	BlinkInterval  time.Duration
	AutosubmitRun  bool
	ThinkMin       time.Duration
	ThinkJitter    time.Duration
	StorageBackend string
	StorageDir     string
	ThemeColor     string
	StartPage      string
}

// ResolveSettings applies env overrides and defaults from s to c. A nil c
// resolves defaults only.
func ResolveSettings(c *Config, s *ConfigSchema) Settings {
	if s == nil {
		s = DefaultSchema()
	}
	return Settings{
		VolumeLabel:    s.Resolve(c, "volume-label"),
		FastBoot:       s.ResolveBool(c, "boot.fast"),
		BlinkInterval:  s.ResolveDuration(c, "cursor.blink-interval"),
		AutosubmitRun:  s.ResolveBool(c, "console.autosubmit-run"),
		ThinkMin:       s.ResolveDuration(c, "tictactoe.think-min"),
		ThinkJitter:    s.ResolveDuration(c, "tictactoe.think-jitter"),
		StorageBackend: s.Resolve(c, "storage.backend"),
		StorageDir:     s.Resolve(c, "storage.dir"),
		ThemeColor:     s.Resolve(c, "theme.color"),
		StartPage:      s.ResolveIn(c, "play", "start-page"),
	}
}
