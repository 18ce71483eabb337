package shell

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/joeycumines/pocket-dos/internal/vfs"
)

// maxFailureRunes bounds the error text printed per failed check.
const maxFailureRunes = 60

// SelfCheck is one check run by TESTS. Run receives the interpreter and a
// scratch session at the root; anything it executes there is discarded,
// including tones.
type SelfCheck struct {
	Name string
	Run  func(in *Interpreter, scratch Session) error
}

// CheckFailure records a failed check.
type CheckFailure struct {
	Name string
	Err  string
}

// CheckReport is the outcome of RunSelfChecks.
type CheckReport struct {
	Total    int
	Failures []CheckFailure
}

// Passed returns the number of checks that passed.
func (r CheckReport) Passed() int { return r.Total - len(r.Failures) }

// Summary renders the report for the transcript.
func (r CheckReport) Summary() string {
	var b strings.Builder
	b.WriteString("Self-tests: ")
	b.WriteString(strconv.Itoa(r.Passed()))
	b.WriteByte('/')
	b.WriteString(strconv.Itoa(r.Total))
	b.WriteString(" PASS")
	for _, f := range r.Failures {
		b.WriteString("\n FAIL ")
		b.WriteString(f.Name)
		b.WriteString(": ")
		b.WriteString(f.Err)
	}
	return b.String()
}

// RunSelfChecks runs every registered check. A failing or panicking check
// never stops the rest.
func (in *Interpreter) RunSelfChecks() CheckReport {
	report := CheckReport{Total: len(in.checks)}
	for _, check := range in.checks {
		if err := in.runCheck(check); err != nil {
			in.logger.Warn("self-check failed", slog.String("check", check.Name), slog.Any("error", err))
			report.Failures = append(report.Failures, CheckFailure{
				Name: check.Name,
				Err:  truncateRunes(err.Error(), maxFailureRunes),
			})
		}
	}
	return report
}

func (in *Interpreter) runCheck(check SelfCheck) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return check.Run(in, NewSession(in.fs.RootPath()))
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// BuiltinSelfChecks returns the checks covering the shell itself.
func BuiltinSelfChecks() []SelfCheck {
	return []SelfCheck{
		{Name: "help-runs", Run: checkHelpRuns},
		{Name: "resolve-readme", Run: checkResolveReadme},
		{Name: "cd-root-clamped", Run: checkCdRootClamped},
	}
}

func checkHelpRuns(in *Interpreter, scratch Session) error {
	res := in.Execute(scratch, "HELP")
	if !strings.Contains(res.Session.Output, "POCKET DOS (sim) Help") {
		return errors.New("HELP printed no reference")
	}
	return nil
}

func checkResolveReadme(in *Interpreter, scratch Session) error {
	n, err := in.fs.Resolve(in.fs.Drive()+`\README.TXT`, scratch.Cwd)
	if err != nil {
		return err
	}
	if n.Kind() != vfs.KindFile {
		return fmt.Errorf("README.TXT is a %s", n.Kind())
	}
	return nil
}

func checkCdRootClamped(in *Interpreter, scratch Session) error {
	res := in.Execute(scratch, "CD ..")
	if !slices.Equal(res.Session.Cwd, in.fs.RootPath()) {
		return fmt.Errorf("cwd %s after CD .. at root", vfs.FormatPath(res.Session.Cwd))
	}
	if !strings.Contains(res.Session.Output, "Already at root.") {
		return errors.New("missing root message")
	}
	return nil
}
