package shell

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/joeycumines/pocket-dos/internal/vfs"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// EffectKind classifies the side effect a command asks its host to perform.
type EffectKind int

const (
	// EffectNone means the command completed and the prompt was re-armed.
	EffectNone EffectKind = iota
	// EffectLaunch hands the screen to a full-screen program. The session
	// stays suspended until the host resumes it.
	EffectLaunch
	// EffectAnimate starts an in-transcript animation, which re-arms the
	// prompt itself when it ends.
	EffectAnimate
	// EffectReboot restarts the boot sequence.
	EffectReboot
)

func (k EffectKind) String() string {
	switch k {
	case EffectNone:
		return "none"
	case EffectLaunch:
		return "launch"
	case EffectAnimate:
		return "animate"
	case EffectReboot:
		return "reboot"
	default:
		return fmt.Sprintf("EffectKind(%d)", int(k))
	}
}

// Effect is the side-effect descriptor returned by Execute.
type Effect struct {
	Kind    EffectKind
	Program string
}

// Tone is a beep requested by a command.
type Tone struct {
	FreqHz     int
	DurationMs int
}

// Result is the outcome of executing one line.
type Result struct {
	Session Session
	Effect  Effect
	// Tones are to be played in order, after the audio device is
	// initialised.
	Tones []Tone
}

// ProgramMode says how a registered program takes over the display.
type ProgramMode int

const (
	// FullScreen programs replace the console until resumed.
	FullScreen ProgramMode = iota
	// Animation programs draw into the transcript.
	Animation
)

// Stamp is the date and time shown by DIR, DATE and TIME. It is captured
// once, not read live.
type Stamp struct {
	Date string // MM-DD-YY
	Time string // HH:MM
}

// NewStamp formats t.
func NewStamp(t time.Time) Stamp {
	return Stamp{Date: t.Format("01-02-06"), Time: t.Format("15:04")}
}

// DefaultVolumeLabel is printed by DIR unless overridden.
const DefaultVolumeLabel = "POCKETDOS"

// DefaultPrograms maps the stock program IDs to their display modes.
func DefaultPrograms() map[string]ProgramMode {
	return map[string]ProgramMode{
		vfs.ProgramDemo:      Animation,
		vfs.ProgramElite:     FullScreen,
		vfs.ProgramPinball:   FullScreen,
		vfs.ProgramTicTacToe: FullScreen,
		vfs.ProgramCircle:    FullScreen,
	}
}

// Interpreter executes command lines against a read-only filesystem.
type Interpreter struct {
	fs       *vfs.FS
	stamp    Stamp
	label    string
	programs map[string]ProgramMode
	builtins map[string]Builtin
	checks   []SelfCheck
	logger   *slog.Logger
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithStamp sets the date and time stamp.
func WithStamp(s Stamp) Option {
	return func(in *Interpreter) { in.stamp = s }
}

// WithVolumeLabel sets the label printed by DIR.
func WithVolumeLabel(label string) Option {
	return func(in *Interpreter) {
		if label != "" {
			in.label = label
		}
	}
}

// WithPrograms replaces the program registry.
func WithPrograms(programs map[string]ProgramMode) Option {
	return func(in *Interpreter) { in.programs = programs }
}

// WithSelfChecks appends checks run by TESTS.
func WithSelfChecks(checks ...SelfCheck) Option {
	return func(in *Interpreter) { in.checks = append(in.checks, checks...) }
}

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(in *Interpreter) {
		if l != nil {
			in.logger = l
		}
	}
}

// New returns an interpreter over fs with the stock built-ins and the
// shell's own self-checks registered.
func New(fs *vfs.FS, opts ...Option) *Interpreter {
	in := &Interpreter{
		fs:       fs,
		stamp:    NewStamp(time.Now()),
		label:    DefaultVolumeLabel,
		programs: DefaultPrograms(),
		checks:   BuiltinSelfChecks(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(in)
	}
	in.builtins = builtins()
	return in
}

// FS returns the filesystem the interpreter runs against.
func (in *Interpreter) FS() *vfs.FS { return in.fs }

// Stamp returns the date and time stamp.
func (in *Interpreter) Stamp() Stamp { return in.stamp }

// Commands returns the built-in commands, sorted by name.
func (in *Interpreter) Commands() []Builtin {
	list := make([]Builtin, 0, len(in.builtins))
	for _, b := range in.builtins {
		list = append(list, b)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

// Call is the execution context handed to a Builtin.
type Call struct {
	in      *Interpreter
	Session *Session
	// Name is the uppercased command word.
	Name string
	// Args are the whitespace-separated arguments, case preserved.
	Args []string
	// Rest is the raw text following the command word, trimmed.
	Rest   string
	effect Effect
	tones  []Tone
}

// Println appends a line to the transcript.
func (c *Call) Println(text string) { c.Session.Println(text) }

// Beep queues a tone.
func (c *Call) Beep(freqHz, durationMs int) {
	c.tones = append(c.tones, Tone{FreqHz: freqHz, DurationMs: durationMs})
}

func (c *Call) setEffect(e Effect) { c.effect = e }

// Execute runs one raw line against s and returns the next state. s itself
// is never modified. User errors are reported in the transcript. The next
// state accepts input only when the command had no effect; launches,
// animations and reboots leave the prompt suspended.
func (in *Interpreter) Execute(s Session, line string) Result {
	next := s.Clone()
	next.PromptActive = false
	trimmed := strings.TrimSpace(line)
	fields := strings.Fields(trimmed)
	if len(fields) == 0 {
		next.Arm()
		return Result{Session: next}
	}

	call := &Call{
		in:      in,
		Session: &next,
		Name:    upper(fields[0]),
		Args:    fields[1:],
		Rest:    strings.TrimSpace(trimmed[len(fields[0]):]),
	}
	in.logger.Debug("shell command", slog.String("command", call.Name), slog.Int("args", len(call.Args)))

	if b, ok := in.builtins[call.Name]; ok {
		b.Run(call)
	} else if !in.runByName(call, call.Name) {
		call.Println("'" + call.Name + "' is not recognized as an internal or external command, operable program or batch file.")
	}

	if call.effect.Kind == EffectNone {
		next.Arm()
	}
	return Result{Session: next, Effect: call.effect, Tones: call.tones}
}

var runLinePattern = regexp.MustCompile(`(?i)^RUN\s+(.+)$`)

// Runnable reports whether line is a complete `RUN <NAME>` naming an
// executable in cwd or the games directory, with or without ".EXE".
func (in *Interpreter) Runnable(cwd []string, line string) bool {
	m := runLinePattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return false
	}
	_, ok := in.findExecutable(cwd, upper(trimExeSuffix(strings.TrimSpace(m[1])))+".EXE")
	return ok
}

// Executables lists the .EXE names in cwd, sorted.
func (in *Interpreter) Executables(cwd []string) []string {
	dir, err := in.fs.Dir(cwd)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range dir.List() {
		if e.Kind == vfs.KindExecutable && strings.HasSuffix(e.Name, ".EXE") {
			names = append(names, e.Name)
		}
	}
	sort.Strings(names)
	return names
}

func (in *Interpreter) findExecutable(cwd []string, name string) (*vfs.Executable, bool) {
	for _, p := range [][]string{cwd, append(in.fs.RootPath(), vfs.GamesDir)} {
		dir, err := in.fs.Dir(p)
		if err != nil {
			continue
		}
		if n, ok := dir.Lookup(name); ok {
			if exe, ok := n.(*vfs.Executable); ok {
				return exe, true
			}
		}
	}
	return nil, false
}

// runByName launches <name>.EXE, reporting false if no such executable
// exists in cwd or the games directory. name must be uppercased.
func (in *Interpreter) runByName(c *Call, name string) bool {
	prog := trimExeSuffix(name)
	exe, ok := in.findExecutable(c.Session.Cwd, prog+".EXE")
	if !ok {
		return false
	}
	in.launch(c, prog+".EXE", exe.ProgramID, true)
	return true
}

// launch starts programID, announcing file if announce is set.
func (in *Interpreter) launch(c *Call, file, programID string, announce bool) {
	mode, ok := in.programs[programID]
	if !ok {
		c.Println("This program cannot be run in this DOS box.")
		return
	}
	if announce {
		c.Println("Launching " + file + "...")
	}
	in.logger.Info("shell launch", slog.String("program", programID))
	switch mode {
	case Animation:
		c.setEffect(Effect{Kind: EffectAnimate, Program: programID})
	default:
		c.setEffect(Effect{Kind: EffectLaunch, Program: programID})
	}
}

func trimExeSuffix(name string) string {
	if len(name) >= 4 && strings.EqualFold(name[len(name)-4:], ".EXE") {
		return name[:len(name)-4]
	}
	return name
}

func upper(s string) string {
	return cases.Upper(language.Und).String(s)
}
