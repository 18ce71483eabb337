package shell

import (
	"strings"
	"testing"

	"github.com/joeycumines/pocket-dos/internal/vfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testStamp = Stamp{Date: "03-14-95", Time: "09:26"}

func newTestInterpreter(opts ...Option) *Interpreter {
	return New(vfs.PocketDOS(), append([]Option{WithStamp(testStamp)}, opts...)...)
}

// armed returns a session at the root with an empty transcript and an
// active prompt, the way boot leaves it.
func armed() Session {
	s := NewSession([]string{"C:"})
	s.PromptActive = true
	return s
}

// run submits line the way the console does and returns the new output.
func run(t *testing.T, in *Interpreter, s Session, line string) (Session, Result, string) {
	t.Helper()
	before := len(s.Output)
	s.Input = line
	_, ok := s.TakeLine()
	require.True(t, ok)
	res := in.Execute(s, line)
	return res.Session, res, res.Session.Output[before:]
}

func TestExecuteDoesNotMutateInput(t *testing.T) {
	in := newTestInterpreter()
	s := armed()
	s.Cwd = []string{"C:", "NOTES"}
	s.History = []string{"CD NOTES"}
	snapshot := s.Clone()

	res := in.Execute(s, "CD ..")
	assert.Equal(t, []string{"C:"}, res.Session.Cwd)
	assert.Equal(t, snapshot, s)
}

func TestEmptyLineReArms(t *testing.T) {
	in := newTestInterpreter()
	s := armed()
	s.PromptActive = false
	res := in.Execute(s, "   ")
	assert.Equal(t, "\nC:> ", res.Session.Output)
	assert.True(t, res.Session.PromptActive)
	assert.Equal(t, EffectNone, res.Effect.Kind)
}

func TestDir(t *testing.T) {
	in := newTestInterpreter()
	_, _, out := run(t, in, armed(), "DIR")
	want := "DIR\n" +
		"\n Volume in drive C is POCKETDOS\n" +
		" Directory of C:\\\n" +
		"\n" +
		" 03-14-95  09:26          AUTOEXEC.BAT\n" +
		" 03-14-95  09:26          CONFIG.SYS\n" +
		" 03-14-95  09:26          README.TXT\n" +
		" 03-14-95  09:26          ELITE.EXE\n" +
		" 03-14-95  09:26          PINBALL.EXE\n" +
		" 03-14-95  09:26  <DIR>  NOTES\n" +
		" 03-14-95  09:26  <DIR>  GAMES\n" +
		" 03-14-95  09:26  <DIR>  DOS\n" +
		"\nC:> "
	assert.Equal(t, want, out)
}

func TestDirVolumeLabel(t *testing.T) {
	in := newTestInterpreter(WithVolumeLabel("FLOPPY"))
	_, _, out := run(t, in, armed(), "dir")
	assert.Contains(t, out, " Volume in drive C is FLOPPY\n")
}

func TestEndToEndNotes(t *testing.T) {
	in := newTestInterpreter()
	s := armed()

	s, _, out := run(t, in, s, "DIR")
	assert.Contains(t, out, "NOTES")

	s, _, out = run(t, in, s, "CD NOTES")
	assert.Equal(t, []string{"C:", "NOTES"}, s.Cwd)
	assert.Equal(t, "CD NOTES\n\nC:\\NOTES> ", out)

	s, _, out = run(t, in, s, "TYPE TODO.TXT")
	assert.Contains(t, out, "\n- Finish the space trader prototype\n- Record DOS simulator demo\n")
	assert.NotContains(t, out, "\r")

	s, _, out = run(t, in, s, "CD ..")
	assert.Equal(t, []string{"C:"}, s.Cwd)
	assert.True(t, strings.HasSuffix(out, "\nC:> "))

	assert.Equal(t, []string{"CD ..", "TYPE TODO.TXT", "CD NOTES", "DIR"}, s.History)

	_, _, out = run(t, in, s, "FOO")
	assert.Contains(t, out, "'FOO' is not recognized as an internal or external command, operable program or batch file.")
}

func TestCd(t *testing.T) {
	in := newTestInterpreter()
	for _, tc := range []struct {
		name    string
		cwd     []string
		line    string
		wantCwd []string
		wantOut string
	}{
		{"print root", []string{"C:"}, "CD", []string{"C:"}, "C:\n"},
		{"print nested", []string{"C:", "GAMES"}, "cd", []string{"C:", "GAMES"}, "C:\\GAMES\n"},
		{"root clamped", []string{"C:"}, "CD ..", []string{"C:"}, "Already at root.\n"},
		{"ascend", []string{"C:", "NOTES"}, "CD ..", []string{"C:"}, ""},
		{"no compact form", []string{"C:", "NOTES"}, "CD..", []string{"C:", "NOTES"}, "'CD..' is not recognized as an internal or external command, operable program or batch file.\n"},
		{"child", []string{"C:"}, "CD DOS", []string{"C:", "DOS"}, ""},
		{"case sensitive", []string{"C:"}, "CD notes", []string{"C:"}, "The system cannot find the path specified.\n"},
		{"file", []string{"C:"}, "CD README.TXT", []string{"C:"}, "The system cannot find the path specified.\n"},
		{"multi segment", []string{"C:"}, `CD NOTES\..`, []string{"C:"}, "The system cannot find the path specified.\n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s := armed()
			s.Cwd = tc.cwd
			res := in.Execute(s, tc.line)
			assert.Equal(t, tc.wantCwd, res.Session.Cwd)
			assert.Equal(t, tc.wantOut+Prompt(tc.wantCwd), res.Session.Output)
		})
	}
}

func TestCdDotDotNeverFailsAtAnyDepth(t *testing.T) {
	in := newTestInterpreter()
	err := in.FS().Walk(func(p []string, n vfs.Node) error {
		if n.Kind() != vfs.KindDirectory {
			return nil
		}
		s := armed()
		s.Cwd = p
		for range len(p) + 1 {
			res := in.Execute(s, "CD ..")
			require.Equal(t, EffectNone, res.Effect.Kind)
			require.True(t, res.Session.PromptActive)
			require.NotEmpty(t, res.Session.Cwd)
			s = res.Session
		}
		assert.Equal(t, []string{"C:"}, s.Cwd)
		return nil
	})
	require.NoError(t, err)
}

func TestType(t *testing.T) {
	in := newTestInterpreter()
	for _, tc := range []struct {
		line string
		want string
	}{
		{"TYPE", "File name required.\n"},
		{"TYPE MISSING.TXT", "File not found.\n"},
		{"TYPE NOTES", "Cannot TYPE this item.\n"},
		{"TYPE ELITE.EXE", "Cannot TYPE this item.\n"},
		{"type config.sys", "File not found.\n"},
		{"TYPE CONFIG.SYS", "\nDEVICE=HIMEM.SYS\nDOS=HIGH,UMB\nFILES=30\nBUFFERS=20\n\n"},
		{`TYPE C:\NOTES\TODO.TXT`, "\n- Finish the space trader prototype\n- Record DOS simulator demo\n- Buy floppies (just kidding)\n\n"},
		{"TYPE NOTES/TODO.TXT", "\n- Finish the space trader prototype\n- Record DOS simulator demo\n- Buy floppies (just kidding)\n\n"},
	} {
		t.Run(tc.line, func(t *testing.T) {
			res := in.Execute(armed(), tc.line)
			assert.Equal(t, tc.want+"\nC:> ", res.Session.Output)
		})
	}
}

func TestEchoKeepsCase(t *testing.T) {
	in := newTestInterpreter()
	res := in.Execute(armed(), "echo   Hello,   World ")
	assert.Equal(t, "Hello,   World\n\nC:> ", res.Session.Output)

	res = in.Execute(armed(), "ECHO")
	assert.Equal(t, "\n\nC:> ", res.Session.Output)
}

func TestFixedOutputs(t *testing.T) {
	in := newTestInterpreter()
	for line, want := range map[string]string{
		"VER":  "MS-DOS Version 6.22 (sim)\n",
		"TIME": "Current time: 09:26\n",
		"date": "Current date: 03-14-95\n",
		"Mem":  "655,360 bytes total conventional memory\n615,000 bytes free (simulated)\n",
	} {
		res := in.Execute(armed(), line)
		assert.Equal(t, want+"\nC:> ", res.Session.Output, line)
	}
}

func TestHelp(t *testing.T) {
	in := newTestInterpreter()
	res := in.Execute(armed(), "help")
	lines := strings.Split(strings.TrimSuffix(res.Session.Output, "\nC:> "), "\n")
	assert.Equal(t, "POCKET DOS (sim) Help", lines[1])
	assert.Len(t, lines, 16)
	assert.Equal(t, " REBOOT            reboot the simulated PC", lines[14])
}

func TestCls(t *testing.T) {
	in := newTestInterpreter()
	s := armed()
	s.Output = "lots of text"
	res := in.Execute(s, "CLS")
	assert.Equal(t, "\nC:> ", res.Session.Output)
}

func TestRun(t *testing.T) {
	in := newTestInterpreter()
	for _, tc := range []struct {
		name    string
		cwd     []string
		line    string
		want    Effect
		wantOut string
	}{
		{"no args", []string{"C:"}, "RUN", Effect{}, "Specify program name.\n"},
		{"games fallback", []string{"C:"}, "RUN demo", Effect{EffectAnimate, vfs.ProgramDemo}, "Launching DEMO.EXE...\n"},
		{"exe suffix", []string{"C:"}, "RUN Demo.exe", Effect{EffectAnimate, vfs.ProgramDemo}, "Launching DEMO.EXE...\n"},
		{"cwd", []string{"C:"}, "RUN ELITE", Effect{EffectLaunch, vfs.ProgramElite}, "Launching ELITE.EXE...\n"},
		{"from subdir", []string{"C:", "NOTES"}, "RUN TICTACTO", Effect{EffectLaunch, vfs.ProgramTicTacToe}, "Launching TICTACTO.EXE...\n"},
		{"not in games", []string{"C:", "NOTES"}, "RUN PINBALL", Effect{}, "This program cannot be run in this DOS box.\n"},
		{"missing", []string{"C:"}, "RUN NOPE", Effect{}, "This program cannot be run in this DOS box.\n"},
		{"bare name", []string{"C:"}, "circle", Effect{EffectLaunch, vfs.ProgramCircle}, "Launching CIRCLE.EXE...\n"},
		{"bare name suffix", []string{"C:"}, "PINBALL.EXE", Effect{EffectLaunch, vfs.ProgramPinball}, "Launching PINBALL.EXE...\n"},
		{"elite shortcut", []string{"C:", "DOS"}, "ELITE", Effect{EffectLaunch, vfs.ProgramElite}, ""},
		{"pinball shortcut", []string{"C:"}, "pinball", Effect{EffectLaunch, vfs.ProgramPinball}, ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s := armed()
			s.Cwd = tc.cwd
			res := in.Execute(s, tc.line)
			assert.Equal(t, tc.want, res.Effect)
			if tc.want.Kind == EffectNone {
				assert.Equal(t, tc.wantOut+Prompt(tc.cwd), res.Session.Output)
				assert.True(t, res.Session.PromptActive)
			} else {
				assert.Equal(t, tc.wantOut, res.Session.Output)
				assert.False(t, res.Session.PromptActive)
			}
		})
	}
}

func TestRunUnregisteredProgram(t *testing.T) {
	in := newTestInterpreter(WithPrograms(map[string]ProgramMode{vfs.ProgramDemo: Animation}))
	res := in.Execute(armed(), "RUN CIRCLE")
	assert.Equal(t, EffectNone, res.Effect.Kind)
	assert.Equal(t, "This program cannot be run in this DOS box.\n\nC:> ", res.Session.Output)
}

func TestBeepQueuesTone(t *testing.T) {
	in := newTestInterpreter()
	res := in.Execute(armed(), "BEEP")
	assert.Equal(t, []Tone{{FreqHz: 880, DurationMs: 120}}, res.Tones)
	assert.Equal(t, "Beep!\n\nC:> ", res.Session.Output)
}

func TestReboot(t *testing.T) {
	in := newTestInterpreter()
	s := armed()
	s.Output = "x"
	res := in.Execute(s, "reboot")
	assert.Equal(t, Effect{Kind: EffectReboot}, res.Effect)
	assert.Equal(t, "x", res.Session.Output)
	assert.False(t, res.Session.PromptActive)
}

func TestRunnable(t *testing.T) {
	in := newTestInterpreter()
	root := []string{"C:"}
	assert.True(t, in.Runnable(root, "RUN DEMO"))
	assert.True(t, in.Runnable(root, "run demo "))
	assert.True(t, in.Runnable(root, "RUN ELITE"))
	assert.True(t, in.Runnable(root, "RUN elite.exe"))
	assert.False(t, in.Runnable(root, "RUN DEM"))
	assert.False(t, in.Runnable(root, "RUN "))
	assert.False(t, in.Runnable(root, "DEMO"))
	assert.False(t, in.Runnable([]string{"C:", "NOTES"}, "RUN ELITE"))
	assert.True(t, in.Runnable([]string{"C:", "NOTES"}, "RUN CIRCLE"))
}

func TestExecutables(t *testing.T) {
	in := newTestInterpreter()
	assert.Equal(t, []string{"ELITE.EXE", "PINBALL.EXE"}, in.Executables([]string{"C:"}))
	assert.Equal(t, []string{"CIRCLE.EXE", "DEMO.EXE", "TICTACTO.EXE"}, in.Executables([]string{"C:", "GAMES"}))
	assert.Empty(t, in.Executables([]string{"C:", "NOTES"}))
	assert.Nil(t, in.Executables([]string{"C:", "MISSING"}))
}

func TestCommandsSorted(t *testing.T) {
	in := newTestInterpreter()
	cmds := in.Commands()
	require.NotEmpty(t, cmds)
	for i := 1; i < len(cmds); i++ {
		assert.Less(t, cmds[i-1].Name, cmds[i].Name)
	}
}

func TestEffectKindString(t *testing.T) {
	assert.Equal(t, "launch", EffectLaunch.String())
	assert.Equal(t, "EffectKind(9)", EffectKind(9).String())
}

func TestExecuteSuspendsPromptForEffects(t *testing.T) {
	in := newTestInterpreter()
	for _, line := range []string{"RUN DEMO", "RUN TICTACTO", "ELITE", "REBOOT"} {
		t.Run(line, func(t *testing.T) {
			s := armed()
			res := in.Execute(s, line)
			assert.NotEqual(t, EffectNone, res.Effect.Kind)
			assert.False(t, res.Session.PromptActive)
			assert.True(t, s.PromptActive, "input session must not change")
		})
	}
}
