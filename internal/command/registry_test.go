package command

import (
	"flag"
	"io"
	"testing"
)

// TestCommand implements Command for testing.
type TestCommand struct {
	*BaseCommand
	ran []string
}

func NewTestCommand(name, description, usage string) *TestCommand {
	return &TestCommand{BaseCommand: NewBaseCommand(name, description, usage)}
}

func (c *TestCommand) Execute(args []string, stdout, stderr io.Writer) error {
	c.ran = args
	return nil
}

// newFlagSet returns cmd's flags, set up the way main does.
func newFlagSet(cmd Command) *flag.FlagSet {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cmd.SetupFlags(fs)
	return fs
}

func TestRegistry(t *testing.T) {
	t.Parallel()
	registry := NewRegistry()
	registry.Register(NewTestCommand("zeta", "Last", "zeta"))
	registry.Register(NewTestCommand("alpha", "First", "alpha"))

	cmd, err := registry.Get("alpha")
	if err != nil {
		t.Fatalf("Expected to find alpha, got error: %v", err)
	}
	if cmd.Description() != "First" {
		t.Errorf("Expected description 'First', got %q", cmd.Description())
	}

	if _, err := registry.Get("missing"); err == nil {
		t.Error("Expected error for missing command")
	}

	names := registry.List()
	if len(names) != 2 || names[0] != "alpha" || names[1] != "zeta" {
		t.Errorf("Expected sorted [alpha zeta], got %v", names)
	}
}

func TestRegistryReplaces(t *testing.T) {
	t.Parallel()
	registry := NewRegistry()
	registry.Register(NewTestCommand("play", "old", "play"))
	registry.Register(NewTestCommand("play", "new", "play"))

	cmd, err := registry.Get("play")
	if err != nil {
		t.Fatal(err)
	}
	if cmd.Description() != "new" {
		t.Errorf("Expected the later registration, got %q", cmd.Description())
	}
	if n := len(registry.List()); n != 1 {
		t.Errorf("Expected 1 command, got %d", n)
	}
}

func TestRegistryDefault(t *testing.T) {
	t.Parallel()
	registry := NewRegistry()
	if _, err := registry.Default(); err == nil {
		t.Error("Expected error with no default set")
	}

	registry.Register(NewTestCommand("play", "Play", "play"))
	registry.SetDefault("play")
	cmd, err := registry.Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if cmd.Name() != "play" {
		t.Errorf("Expected play, got %s", cmd.Name())
	}

	registry.SetDefault("gone")
	if _, err := registry.Default(); err == nil {
		t.Error("Expected error for an unregistered default")
	}
}

func TestBaseCommandHasNoFlags(t *testing.T) {
	t.Parallel()
	fs := newFlagSet(NewTestCommand("x", "X", "x"))
	n := 0
	fs.VisitAll(func(*flag.Flag) { n++ })
	if n != 0 {
		t.Errorf("Expected no flags, got %d", n)
	}
}
