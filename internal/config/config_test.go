package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromReader(t *testing.T) {
	cfg, err := LoadFromReader(strings.NewReader(`# Pocket DOS
volume-label   RETRO
boot.fast true

[play]
start-page console
`))
	require.NoError(t, err)
	assert.False(t, cfg.HasWarnings(), "%v", cfg.Warnings)

	v, ok := cfg.GetGlobalOption("volume-label")
	assert.True(t, ok)
	assert.Equal(t, "RETRO", v)

	v, ok = cfg.GetCommandOption("play", "start-page")
	assert.True(t, ok)
	assert.Equal(t, "console", v)

	v, ok = cfg.GetCommandOption("play", "boot.fast")
	assert.True(t, ok, "falls back to global")
	assert.Equal(t, "true", v)

	_, ok = cfg.GetCommandOption("nope", "missing")
	assert.False(t, ok)
}

func TestLoadFromReaderWarnings(t *testing.T) {
	cfg, err := LoadFromReader(strings.NewReader("colour green\nboot.fast maybe\n[play]\nbogus 1\n"))
	require.NoError(t, err)
	require.Len(t, cfg.Warnings, 3)
	assert.Contains(t, strings.Join(cfg.Warnings, "\n"), `unknown global option: "colour"`)
	assert.Contains(t, strings.Join(cfg.Warnings, "\n"), `global option "boot.fast": expected bool`)
	assert.Contains(t, strings.Join(cfg.Warnings, "\n"), `unknown option for command "play"`)
}

func TestLoadFromPathMissingFile(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.Empty(t, cfg.Global)
}

func TestLoadFromPathRejectsSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	dir := t.TempDir()
	target := filepath.Join(dir, "real")
	require.NoError(t, os.WriteFile(target, []byte("volume-label X\n"), 0644))
	link := filepath.Join(dir, "config")
	require.NoError(t, os.Symlink(target, link))

	_, err := LoadFromPath(link)
	assert.ErrorContains(t, err, "symlink not allowed")
}

func TestParseBool(t *testing.T) {
	for _, s := range []string{"true", "YES", "1", "On"} {
		b, err := ParseBool(s)
		require.NoError(t, err)
		assert.True(t, b, s)
	}
	for _, s := range []string{"false", "no", "0", "OFF"} {
		b, err := ParseBool(s)
		require.NoError(t, err)
		assert.False(t, b, s)
	}
	_, err := ParseBool("maybe")
	assert.Error(t, err)
}

func TestGetConfigPath(t *testing.T) {
	t.Setenv(EnvConfigPath, "/tmp/custom-config")
	got, err := GetConfigPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom-config", got)

	home := t.TempDir()
	t.Setenv(EnvConfigPath, "")
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	got, err = GetConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".pocket-dos", "config"), got)
}
