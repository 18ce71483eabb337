// Package shell implements the Pocket DOS command interpreter and the line
// editor that feeds it.
//
// A Session is a plain value. Interpreter.Execute never mutates the session
// it is given; it returns the next state together with any side effect the
// host has to carry out (launching a program, rebooting, playing a tone).
package shell

import (
	"slices"

	"github.com/joeycumines/pocket-dos/internal/vfs"
)

// Session is the mutable state of one shell.
type Session struct {
	// Cwd is the root-anchored working directory, e.g. ["C:", "NOTES"].
	Cwd []string
	// Output is the transcript shown to the user.
	Output string
	// History holds submitted non-empty lines, most recent first.
	History []string
	// HistoryCursor indexes History while browsing, -1 otherwise.
	HistoryCursor int
	// Input is the line being edited.
	Input string
	// PromptActive is true while the shell accepts input.
	PromptActive bool
}

// NewSession returns an idle session rooted at root.
func NewSession(root []string) Session {
	return Session{
		Cwd:           slices.Clone(root),
		HistoryCursor: -1,
	}
}

// Clone returns a deep copy of s.
func (s Session) Clone() Session {
	s.Cwd = slices.Clone(s.Cwd)
	s.History = slices.Clone(s.History)
	return s
}

// Prompt returns the prompt line printed when the shell is armed.
func Prompt(cwd []string) string {
	return "\n" + vfs.FormatPath(cwd) + "> "
}

// Arm re-enables input: it prints a fresh prompt, clears the line and
// leaves history browsing.
func (s *Session) Arm() {
	s.Output += Prompt(s.Cwd)
	s.Input = ""
	s.HistoryCursor = -1
	s.PromptActive = true
}

// Println appends text and a newline to the transcript.
func (s *Session) Println(text string) {
	s.Output += text + "\n"
}
