package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSchemaLookup(t *testing.T) {
	s := DefaultSchema()
	opt := s.Lookup("", "boot.fast")
	if assert.NotNil(t, opt) {
		assert.Equal(t, TypeBool, opt.Type)
		assert.Equal(t, "POCKETDOS_FAST_BOOT", opt.EnvVar)
	}
	assert.NotNil(t, s.Lookup("play", "start-page"))
	assert.Nil(t, s.Lookup("play", "nope"))
	assert.True(t, s.IsKnown("play", "volume-label"))
	assert.Equal(t, []string{"play"}, s.Sections())
}

func TestResolvePrecedence(t *testing.T) {
	s := DefaultSchema()
	cfg := NewConfig()
	t.Setenv("POCKETDOS_STORAGE", "")

	assert.Equal(t, "POCKETDOS", s.Resolve(cfg, "volume-label"))
	cfg.SetGlobalOption("volume-label", "RETRO")
	assert.Equal(t, "RETRO", s.Resolve(cfg, "volume-label"))

	cfg.SetGlobalOption("storage.backend", "fs")
	assert.Equal(t, "", s.Resolve(cfg, "storage.backend"), "set env wins even when empty")
	t.Setenv("POCKETDOS_STORAGE", "memory")
	assert.Equal(t, "memory", s.Resolve(cfg, "storage.backend"))

	assert.Equal(t, "", s.Resolve(cfg, "unknown"))
	assert.Equal(t, "POCKETDOS", s.Resolve(nil, "volume-label"))
}

func TestTypedResolveFallsBackToDefault(t *testing.T) {
	s := DefaultSchema()
	cfg := NewConfig()
	cfg.SetGlobalOption("cursor.blink-interval", "soon")
	cfg.SetGlobalOption("log.max-files", "9")
	assert.Equal(t, 530*time.Millisecond, s.ResolveDuration(cfg, "cursor.blink-interval"))
	assert.Equal(t, 9, s.ResolveInt(cfg, "log.max-files"))
	assert.True(t, s.ResolveBool(cfg, "console.autosubmit-run"))
}

func TestResolveSettings(t *testing.T) {
	t.Setenv("POCKETDOS_FAST_BOOT", "yes")
	cfg := NewConfig()
	cfg.SetCommandOption("play", "start-page", "console")
	cfg.SetGlobalOption("tictactoe.think-min", "10ms")

	got := ResolveSettings(cfg, nil)
	assert.True(t, got.FastBoot)
	assert.Equal(t, "console", got.StartPage)
	assert.Equal(t, 10*time.Millisecond, got.ThinkMin)
	assert.Equal(t, 500*time.Millisecond, got.ThinkJitter)
	assert.Equal(t, "46", got.ThemeColor)
}

func TestFormatHelp(t *testing.T) {
	help := DefaultSchema().FormatHelp()
	assert.True(t, strings.HasPrefix(help, "Global Options:\n"))
	assert.Contains(t, help, "boot.fast")
	assert.Contains(t, help, "env: POCKETDOS_FAST_BOOT")
	assert.Contains(t, help, "[play] Options:")
}
