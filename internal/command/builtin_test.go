package command

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joeycumines/pocket-dos/internal/config"
)

func newHelpRegistry() *Registry {
	registry := NewRegistry()
	registry.Register(NewVersionCommand("1.0.0"))
	registry.Register(NewConfigCommand(config.NewConfig(), ""))
	registry.Register(NewExecCommand(DefaultEnv()))
	registry.Register(NewHelpCommand(registry))
	return registry
}

func TestHelpCommandGeneral(t *testing.T) {
	t.Parallel()
	registry := newHelpRegistry()
	registry.SetDefault("exec")
	cmd, _ := registry.Get("help")

	var stdout, stderr bytes.Buffer
	if err := cmd.Execute(nil, &stdout, &stderr); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	output := stdout.String()
	for _, part := range []string{
		"pocketdos",
		"Usage: pocketdos [command]",
		"Available commands:",
		"config",
		"Run console commands and print the transcript",
		"With no command, pocketdos runs 'exec'.",
	} {
		if !strings.Contains(output, part) {
			t.Errorf("Expected output to contain %q. Output: %s", part, output)
		}
	}
}

func TestHelpCommandSpecific(t *testing.T) {
	t.Parallel()
	cmd, _ := newHelpRegistry().Get("help")

	var stdout, stderr bytes.Buffer
	if err := cmd.Execute([]string{"exec"}, &stdout, &stderr); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	output := stdout.String()
	for _, part := range []string{"Command: exec", "Usage: exec", "Flags:", "-quiet", "-log-level"} {
		if !strings.Contains(output, part) {
			t.Errorf("Expected output to contain %q. Output: %s", part, output)
		}
	}

	stdout.Reset()
	if err := cmd.Execute([]string{"version"}, &stdout, &stderr); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(stdout.String(), "Flags:") {
		t.Errorf("version has no flags, got: %s", stdout.String())
	}
}

func TestHelpCommandUnknown(t *testing.T) {
	t.Parallel()
	cmd, _ := newHelpRegistry().Get("help")

	var stdout, stderr bytes.Buffer
	if err := cmd.Execute([]string{"nope"}, &stdout, &stderr); err == nil {
		t.Fatal("Expected error for unknown command")
	}
	if !strings.Contains(stderr.String(), "Unknown command: nope") {
		t.Errorf("Unexpected stderr: %s", stderr.String())
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()
	cmd := NewVersionCommand("1.2.3")

	var stdout, stderr bytes.Buffer
	if err := cmd.Execute(nil, &stdout, &stderr); err != nil {
		t.Fatal(err)
	}
	if got := stdout.String(); got != "pocketdos version 1.2.3\n" {
		t.Errorf("Unexpected output: %q", got)
	}
	if err := cmd.Execute([]string{"extra"}, &stdout, &stderr); err == nil {
		t.Error("Expected error for extra arguments")
	}
}

func TestConfigCommandGetSet(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config")
	cfg := config.NewConfig()
	cmd := NewConfigCommand(cfg, path)

	var stdout, stderr bytes.Buffer
	if err := cmd.Execute([]string{"boot.fast"}, &stdout, &stderr); err != nil {
		t.Fatal(err)
	}
	if got := stdout.String(); got != "boot.fast: false (default)\n" {
		t.Errorf("Unexpected default output: %q", got)
	}

	stdout.Reset()
	if err := cmd.Execute([]string{"boot.fast", "true"}, &stdout, &stderr); err != nil {
		t.Fatal(err)
	}
	if v, _ := cfg.GetGlobalOption("boot.fast"); v != "true" {
		t.Errorf("Expected boot.fast=true in memory, got %q", v)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "boot.fast true") {
		t.Errorf("Expected the value persisted, got: %q", data)
	}

	stdout.Reset()
	if err := cmd.Execute([]string{"boot.fast"}, &stdout, &stderr); err != nil {
		t.Fatal(err)
	}
	if got := stdout.String(); got != "boot.fast: true\n" {
		t.Errorf("Unexpected output: %q", got)
	}

	stdout.Reset()
	if err := cmd.Execute([]string{"no.such.key"}, &stdout, &stderr); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout.String(), "not found") {
		t.Errorf("Unexpected output: %q", stdout.String())
	}
}

func TestConfigCommandRejectsBadValues(t *testing.T) {
	t.Parallel()
	cfg := config.NewConfig()
	cmd := NewConfigCommand(cfg, "")

	for _, args := range [][]string{
		{"boot.fast", "maybe"},
		{"cursor.blink-interval", "soon"},
		{"log.max-files", "many"},
		{"start-page", "checkout"},
	} {
		var stdout, stderr bytes.Buffer
		if err := cmd.Execute(args, &stdout, &stderr); err == nil {
			t.Errorf("Expected error for %v", args)
		}
		if _, ok := cfg.GetGlobalOption(args[0]); ok {
			t.Errorf("Expected %s to stay unset", args[0])
		}
	}

	var stdout, stderr bytes.Buffer
	if err := cmd.Execute([]string{"custom.thing", "1"}, &stdout, &stderr); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr.String(), "not a known option") {
		t.Errorf("Expected an unknown-key warning, got: %q", stderr.String())
	}
}

func TestConfigCommandUnset(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config")
	if err := os.WriteFile(path, []byte("theme.color 214\nboot.fast true\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.LoadFromPath(path)
	if err != nil {
		t.Fatal(err)
	}
	cmd := NewConfigCommand(cfg, path)

	var stdout, stderr bytes.Buffer
	if err := cmd.Execute([]string{"unset", "theme.color"}, &stdout, &stderr); err != nil {
		t.Fatal(err)
	}
	if _, ok := cfg.GetGlobalOption("theme.color"); ok {
		t.Error("Expected theme.color removed from memory")
	}
	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "theme.color") || !strings.Contains(string(data), "boot.fast true") {
		t.Errorf("Unexpected file after unset: %q", data)
	}

	stdout.Reset()
	if err := cmd.Execute([]string{"unset", "theme.color"}, &stdout, &stderr); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout.String(), "was not set") {
		t.Errorf("Unexpected output: %q", stdout.String())
	}

	if err := cmd.Execute([]string{"unset"}, &stdout, &stderr); err == nil {
		t.Error("Expected error without a key")
	}
}

func TestConfigCommandListings(t *testing.T) {
	t.Parallel()
	cfg := config.NewConfig()
	cfg.SetGlobalOption("theme.color", "214")
	cfg.SetGlobalOption("boot.fast", "true")
	cfg.SetCommandOption("play", "start-page", "console")

	cmd := NewConfigCommand(cfg, "")
	fs := newFlagSet(cmd)
	if err := fs.Parse([]string{"-all"}); err != nil {
		t.Fatal(err)
	}
	var stdout, stderr bytes.Buffer
	if err := cmd.Execute(fs.Args(), &stdout, &stderr); err != nil {
		t.Fatal(err)
	}
	want := "Global configuration:\n  boot.fast: true\n  theme.color: 214\n\nCommand-specific configuration:\n  [play]\n    start-page: console\n"
	if got := stdout.String(); got != want {
		t.Errorf("Unexpected listing:\n%s", got)
	}

	cmd = NewConfigCommand(cfg, "")
	stdout.Reset()
	if err := cmd.Execute(nil, &stdout, &stderr); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout.String(), "Configuration management:") {
		t.Errorf("Expected usage, got: %s", stdout.String())
	}
}

func TestConfigCommandValidateAndSchema(t *testing.T) {
	t.Parallel()
	cfg := config.NewConfig()
	cmd := NewConfigCommand(cfg, "")

	var stdout, stderr bytes.Buffer
	if err := cmd.Execute([]string{"validate"}, &stdout, &stderr); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout.String(), "Configuration is valid.") {
		t.Errorf("Unexpected output: %s", stdout.String())
	}

	cfg.SetGlobalOption("boot.fast", "perhaps")
	stdout.Reset()
	if err := cmd.Execute([]string{"validate"}, &stdout, &stderr); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout.String(), "1 issue(s)") {
		t.Errorf("Unexpected output: %s", stdout.String())
	}

	stdout.Reset()
	if err := cmd.Execute([]string{"schema"}, &stdout, &stderr); err != nil {
		t.Fatal(err)
	}
	for _, part := range []string{"Global Options:", "storage.backend", "[play] Options:"} {
		if !strings.Contains(stdout.String(), part) {
			t.Errorf("Expected schema to contain %q", part)
		}
	}
}

func TestInitCommand(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "config")
	cmd := NewInitCommand(path)

	var stdout, stderr bytes.Buffer
	if err := cmd.Execute(nil, &stdout, &stderr); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, part := range []string{"# pocketdos configuration file", "# boot.fast false", "[play]"} {
		if !strings.Contains(string(data), part) {
			t.Errorf("Expected file to contain %q", part)
		}
	}
	cfg, err := config.LoadFromPath(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Global) != 0 {
		t.Errorf("Expected every option commented out, got %v", cfg.Global)
	}

	stdout.Reset()
	if err := cmd.Execute(nil, &stdout, &stderr); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout.String(), "already exists") {
		t.Errorf("Expected no overwrite without -force, got: %s", stdout.String())
	}

	fs := newFlagSet(cmd)
	if err := fs.Parse([]string{"-force"}); err != nil {
		t.Fatal(err)
	}
	stdout.Reset()
	if err := cmd.Execute(fs.Args(), &stdout, &stderr); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout.String(), "Initialized pocketdos configuration") {
		t.Errorf("Unexpected output: %s", stdout.String())
	}
}
