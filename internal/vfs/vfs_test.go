package vfs

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRoundTrip(t *testing.T) {
	fs := PocketDOS()

	var visited int
	err := fs.Walk(func(p []string, n Node) error {
		visited++
		for _, sep := range []string{`\`, "/"} {
			path := strings.Join(p, sep)
			got, abs, err := fs.ResolvePath(path, []string{"C:", "NOTES"})
			require.NoError(t, err, path)
			assert.Same(t, n, got, path)
			assert.Equal(t, p, abs, path)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 13, visited)
}

func TestResolveRelative(t *testing.T) {
	fs := PocketDOS()
	root := fs.RootPath()

	tests := []struct {
		name string
		path string
		cwd  []string
		want []string
	}{
		{"empty is cwd", "", []string{"C:", "NOTES"}, []string{"C:", "NOTES"}},
		{"dot", ".", root, root},
		{"child", "NOTES", root, []string{"C:", "NOTES"}},
		{"nested", `NOTES\TODO.TXT`, root, []string{"C:", "NOTES", "TODO.TXT"}},
		{"parent", `..\README.TXT`, []string{"C:", "NOTES"}, []string{"C:", "README.TXT"}},
		{"parent clamps", `..\..\..\GAMES`, []string{"C:", "NOTES"}, []string{"C:", "GAMES"}},
		{"leading separator", `\DOS\COMMAND.COM`, []string{"C:", "NOTES"}, []string{"C:", "DOS", "COMMAND.COM"}},
		{"lowercase drive", `c:\NOTES`, []string{"C:", "GAMES"}, []string{"C:", "NOTES"}},
		{"drive only", "C:", []string{"C:", "GAMES"}, root},
		{"dot segments", `./NOTES/./TODO.TXT`, root, []string{"C:", "NOTES", "TODO.TXT"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, got, err := fs.ResolvePath(tt.path, tt.cwd)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveNotFound(t *testing.T) {
	fs := PocketDOS()
	root := fs.RootPath()

	for _, path := range []string{
		"MISSING.TXT",
		`NOTES\MISSING.TXT`,
		`README.TXT\..`,
		`README.TXT\MORE`,
		`D:\README.TXT`,
		"readme.txt",
	} {
		t.Run(path, func(t *testing.T) {
			n, err := fs.Resolve(path, root)
			assert.Nil(t, n)
			assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)
		})
	}

	t.Run("bad cwd", func(t *testing.T) {
		_, err := fs.Resolve("TODO.TXT", []string{"C:", "NOPE"})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestListPreservesInsertionOrder(t *testing.T) {
	fs := PocketDOS()

	var names []string
	for _, e := range fs.Root().List() {
		names = append(names, e.Name+":"+e.Kind.String())
	}
	assert.Equal(t, []string{
		"AUTOEXEC.BAT:file",
		"CONFIG.SYS:file",
		"README.TXT:file",
		"ELITE.EXE:exe",
		"PINBALL.EXE:exe",
		"NOTES:dir",
		"GAMES:dir",
		"DOS:dir",
	}, names)
}

func TestNewDirectoryValidation(t *testing.T) {
	f := &File{}
	for name, children := range map[string][]Child{
		"empty":     {{"", f}},
		"dot":       {{".", f}},
		"dotdot":    {{"..", f}},
		"separator": {{`A\B`, f}},
		"slash":     {{"A/B", f}},
		"nil":       {{"A", nil}},
		"duplicate": {{"A", f}, {"A", f}},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := NewDirectory(children...)
			assert.Error(t, err)
		})
	}

	_, err := New("CC", &Directory{})
	assert.Error(t, err)
	_, err = New("C:", nil)
	assert.Error(t, err)
}

func TestDir(t *testing.T) {
	fs := PocketDOS()

	d, err := fs.Dir([]string{"C:", "GAMES"})
	require.NoError(t, err)
	n, ok := d.Lookup("DEMO.EXE")
	require.True(t, ok)
	assert.Equal(t, ProgramDemo, n.(*Executable).ProgramID)

	_, err = fs.Dir([]string{"C:", "README.TXT"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFormatPath(t *testing.T) {
	assert.Equal(t, "C:", FormatPath([]string{"C:"}))
	assert.Equal(t, `C:\NOTES`, FormatPath([]string{"C:", "NOTES"}))
	assert.Equal(t, "", FormatPath(nil))
}
