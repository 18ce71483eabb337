package command

import (
	"bytes"
	"strings"
	"testing"
)

func newCompletionCommand() *CompletionCommand {
	registry := NewRegistry()
	registry.Register(NewVersionCommand("1.0.0"))
	registry.Register(NewExecCommand(DefaultEnv()))
	cmd := NewCompletionCommand(registry)
	registry.Register(cmd)
	return cmd
}

func TestCompletionScripts(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		shell string
		want  []string
	}{
		{"", []string{"complete -F _pocketdos_completion pocketdos", "completion exec version", "bash zsh fish", "ad chat"}},
		{"bash", []string{"#!/bin/bash", "-page|--page", "validate schema unset volume-label boot.fast"}},
		{"zsh", []string{"#compdef pocketdos", "'exec:Run console commands and print the transcript'", "'bash' 'zsh' 'fish'"}},
		{"FISH", []string{"complete -c pocketdos -n '__fish_use_subcommand' -a 'version'", "-o page -xa"}},
	} {
		t.Run(tc.shell, func(t *testing.T) {
			t.Parallel()
			var args []string
			if tc.shell != "" {
				args = []string{tc.shell}
			}
			var stdout, stderr bytes.Buffer
			if err := newCompletionCommand().Execute(args, &stdout, &stderr); err != nil {
				t.Fatalf("Execute: %v (stderr %s)", err, stderr.String())
			}
			for _, part := range tc.want {
				if !strings.Contains(stdout.String(), part) {
					t.Errorf("Expected %q in script:\n%s", part, stdout.String())
				}
			}
		})
	}
}

func TestCompletionErrors(t *testing.T) {
	t.Parallel()
	cmd := newCompletionCommand()

	var stdout, stderr bytes.Buffer
	if err := cmd.Execute([]string{"powershell"}, &stdout, &stderr); err == nil {
		t.Error("Expected error for an unsupported shell")
	}
	if !strings.Contains(stderr.String(), "Supported shells: bash, zsh, fish") {
		t.Errorf("Unexpected stderr: %s", stderr.String())
	}
	if err := cmd.Execute([]string{"bash", "zsh"}, &stdout, &stderr); err == nil {
		t.Error("Expected error for too many arguments")
	}
}

func TestQuoteSingle(t *testing.T) {
	t.Parallel()
	if got := quoteSingle("it's"); got != `'it'\''s'` {
		t.Errorf("quoteSingle = %s", got)
	}
}
