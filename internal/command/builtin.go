package command

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/joeycumines/pocket-dos/internal/config"
	"github.com/joeycumines/pocket-dos/internal/gamestate"
)

// HelpCommand displays help information for commands.
type HelpCommand struct {
	*BaseCommand
	registry *Registry
}

// NewHelpCommand creates a new help command.
func NewHelpCommand(registry *Registry) *HelpCommand {
	return &HelpCommand{
		BaseCommand: NewBaseCommand(
			"help",
			"Display help information for commands",
			"help [command]",
		),
		registry: registry,
	}
}

// Execute displays help information.
func (c *HelpCommand) Execute(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		_, _ = fmt.Fprintln(stdout, "pocketdos - a secondhand pocket DOS machine for your terminal")
		_, _ = fmt.Fprintln(stdout, "")
		_, _ = fmt.Fprintln(stdout, "Usage: pocketdos [command] [options] [args...]")
		_, _ = fmt.Fprintln(stdout, "")
		_, _ = fmt.Fprintln(stdout, "Available commands:")

		w := tabwriter.NewWriter(stdout, 0, 8, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "")
		for _, name := range c.registry.List() {
			if cmd, err := c.registry.Get(name); err == nil {
				_, _ = fmt.Fprintf(w, "  %s\t%s\n", name, cmd.Description())
			}
		}
		_ = w.Flush()

		if def, err := c.registry.Default(); err == nil {
			_, _ = fmt.Fprintln(stdout, "")
			_, _ = fmt.Fprintf(stdout, "With no command, pocketdos runs '%s'.\n", def.Name())
		}
		_, _ = fmt.Fprintln(stdout, "Use 'pocketdos help <command>' for more information about a specific command (includes flags).")
		return nil
	}

	cmdName := args[0]
	cmd, err := c.registry.Get(cmdName)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Unknown command: %s\n", cmdName)
		return err
	}

	_, _ = fmt.Fprintf(stdout, "Command: %s\n", cmd.Name())
	_, _ = fmt.Fprintf(stdout, "Description: %s\n", cmd.Description())
	_, _ = fmt.Fprintf(stdout, "Usage: %s\n", cmd.Usage())

	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	buf := &bytes.Buffer{}
	fs.SetOutput(buf)
	cmd.SetupFlags(fs)
	fs.PrintDefaults()
	if buf.Len() > 0 {
		_, _ = fmt.Fprintln(stdout, "")
		_, _ = fmt.Fprintln(stdout, "Flags:")
		_, _ = fmt.Fprint(stdout, buf.String())
	}
	return nil
}

// VersionCommand displays version information.
type VersionCommand struct {
	*BaseCommand
	version string
}

// NewVersionCommand creates a new version command.
func NewVersionCommand(version string) *VersionCommand {
	return &VersionCommand{
		BaseCommand: NewBaseCommand(
			"version",
			"Display version information",
			"version",
		),
		version: version,
	}
}

// Execute displays version information.
func (c *VersionCommand) Execute(args []string, stdout, stderr io.Writer) error {
	if len(args) > 0 {
		_, _ = fmt.Fprintf(stderr, "unexpected arguments: %v\n", args)
		return fmt.Errorf("unexpected arguments")
	}
	_, _ = fmt.Fprintf(stdout, "pocketdos version %s\n", c.version)
	return nil
}

// ConfigCommand shows and edits configuration.
type ConfigCommand struct {
	*BaseCommand
	config     *config.Config
	configPath string
	showGlobal bool
	showAll    bool
}

// NewConfigCommand creates a new config command. An empty configPath skips
// persistence to disk.
func NewConfigCommand(cfg *config.Config, configPath string) *ConfigCommand {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &ConfigCommand{
		BaseCommand: NewBaseCommand(
			"config",
			"Manage configuration settings",
			"config [options] [key] [value] | config unset <key> | config validate | config schema",
		),
		config:     cfg,
		configPath: configPath,
	}
}

// SetupFlags configures the flags for the config command.
func (c *ConfigCommand) SetupFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.showGlobal, "global", false, "Show only global configuration")
	fs.BoolVar(&c.showAll, "all", false, "Show all configuration (global and command-specific)")
}

// Execute manages configuration.
func (c *ConfigCommand) Execute(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		switch {
		case c.showAll:
			c.printGlobal(stdout)
			_, _ = fmt.Fprintln(stdout, "\nCommand-specific configuration:")
			for _, section := range sortedKeys(c.config.Commands) {
				_, _ = fmt.Fprintf(stdout, "  [%s]\n", section)
				options := c.config.Commands[section]
				for _, key := range sortedKeys(options) {
					_, _ = fmt.Fprintf(stdout, "    %s: %s\n", key, options[key])
				}
			}
		case c.showGlobal:
			c.printGlobal(stdout)
		default:
			_, _ = fmt.Fprintln(stdout, "Configuration management:")
			_, _ = fmt.Fprintln(stdout, "  config <key>          - Get configuration value")
			_, _ = fmt.Fprintln(stdout, "  config <key> <value>  - Set configuration value")
			_, _ = fmt.Fprintln(stdout, "  config unset <key>    - Remove configuration value")
			_, _ = fmt.Fprintln(stdout, "  config --global       - Show global configuration")
			_, _ = fmt.Fprintln(stdout, "  config --all          - Show all configuration")
			_, _ = fmt.Fprintln(stdout, "  config validate       - Validate configuration")
			_, _ = fmt.Fprintln(stdout, "  config schema         - Show configuration schema")
		}
		return nil
	}

	switch args[0] {
	case "validate":
		return c.executeValidate(stdout)
	case "schema":
		_, _ = fmt.Fprint(stdout, config.DefaultSchema().FormatHelp())
		return nil
	case "unset":
		if len(args) != 2 {
			_, _ = fmt.Fprintln(stderr, "Usage: pocketdos config unset <key>")
			return fmt.Errorf("invalid arguments")
		}
		return c.executeUnset(args[1], stdout, stderr)
	}

	schema := config.DefaultSchema()
	switch len(args) {
	case 1:
		key := args[0]
		if value, ok := c.config.GetGlobalOption(key); ok {
			_, _ = fmt.Fprintf(stdout, "%s: %s\n", key, value)
		} else if schema.Lookup("", key) != nil {
			_, _ = fmt.Fprintf(stdout, "%s: %s (default)\n", key, schema.Resolve(c.config, key))
		} else {
			_, _ = fmt.Fprintf(stdout, "Configuration key '%s' not found\n", key)
		}
		return nil

	case 2:
		key, value := args[0], args[1]
		if err := checkOption(schema, key, value); err != nil {
			_, _ = fmt.Fprintf(stderr, "Invalid value for %s: %v\n", key, err)
			return err
		}
		if schema.Lookup("", key) == nil {
			_, _ = fmt.Fprintf(stderr, "Warning: %s is not a known option\n", key)
		}
		c.config.SetGlobalOption(key, value)
		if c.configPath != "" {
			if err := config.SetKeyInFile(c.configPath, key, value); err != nil {
				_, _ = fmt.Fprintf(stderr, "Warning: failed to persist config to disk: %v\n", err)
			}
		}
		_, _ = fmt.Fprintf(stdout, "Set configuration: %s = %s\n", key, value)
		return nil
	}

	_, _ = fmt.Fprintln(stderr, "Invalid number of arguments")
	return fmt.Errorf("invalid arguments")
}

func (c *ConfigCommand) printGlobal(w io.Writer) {
	_, _ = fmt.Fprintln(w, "Global configuration:")
	for _, key := range sortedKeys(c.config.Global) {
		_, _ = fmt.Fprintf(w, "  %s: %s\n", key, c.config.Global[key])
	}
}

func (c *ConfigCommand) executeUnset(key string, stdout, stderr io.Writer) error {
	delete(c.config.Global, key)
	if c.configPath != "" {
		removed, err := config.UnsetKeyInFile(c.configPath, key)
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "Warning: failed to persist config to disk: %v\n", err)
		} else if !removed {
			_, _ = fmt.Fprintf(stdout, "Configuration key '%s' was not set\n", key)
			return nil
		}
	}
	_, _ = fmt.Fprintf(stdout, "Unset configuration: %s\n", key)
	return nil
}

// executeValidate validates the current config against the schema.
func (c *ConfigCommand) executeValidate(stdout io.Writer) error {
	issues := config.ValidateConfig(c.config, config.DefaultSchema())
	if len(issues) == 0 {
		_, _ = fmt.Fprintln(stdout, "Configuration is valid.")
		return nil
	}
	_, _ = fmt.Fprintf(stdout, "Configuration has %d issue(s):\n", len(issues))
	for _, issue := range issues {
		_, _ = fmt.Fprintf(stdout, "  - %s\n", issue)
	}
	return nil
}

// checkOption rejects values a known global option cannot hold.
func checkOption(schema *config.ConfigSchema, key, value string) error {
	probe := config.NewConfig()
	probe.SetGlobalOption(key, value)
	for _, issue := range config.ValidateConfig(probe, schema) {
		if strings.HasPrefix(issue, "unknown ") {
			continue
		}
		return fmt.Errorf("%s", issue)
	}
	if key == "start-page" {
		if _, err := gamestate.ParsePage(value); err != nil {
			return err
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// InitCommand writes a commented default configuration file.
type InitCommand struct {
	*BaseCommand
	configPath string
	force      bool
}

// NewInitCommand creates a new init command writing to configPath.
func NewInitCommand(configPath string) *InitCommand {
	return &InitCommand{
		BaseCommand: NewBaseCommand(
			"init",
			"Write a default configuration file",
			"init [options]",
		),
		configPath: configPath,
	}
}

// SetupFlags configures the flags for the init command.
func (c *InitCommand) SetupFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.force, "force", false, "Overwrite an existing configuration file")
}

// Execute writes the file.
func (c *InitCommand) Execute(args []string, stdout, stderr io.Writer) error {
	if len(args) > 0 {
		_, _ = fmt.Fprintf(stderr, "unexpected arguments: %v\n", args)
		return fmt.Errorf("unexpected arguments")
	}
	if c.configPath == "" {
		return fmt.Errorf("no configuration path")
	}

	if _, err := os.Stat(c.configPath); err == nil && !c.force {
		_, _ = fmt.Fprintf(stdout, "Configuration already exists at: %s\n", c.configPath)
		_, _ = fmt.Fprintln(stdout, "Use --force to overwrite existing configuration")
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(c.configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(c.configPath, []byte(defaultConfigFile(config.DefaultSchema())), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if _, err := config.LoadFromPath(c.configPath); err != nil {
		_, _ = fmt.Fprintf(stderr, "Warning: failed to load created config: %v\n", err)
	}
	_, _ = fmt.Fprintf(stdout, "Initialized pocketdos configuration at: %s\n", c.configPath)
	return nil
}

// defaultConfigFile renders every option commented out at its default.
func defaultConfigFile(schema *config.ConfigSchema) string {
	var b strings.Builder
	b.WriteString("# pocketdos configuration file\n")
	b.WriteString("# Format: optionName remainingLineIsTheValue\n")
	b.WriteString("# Use [command_name] sections for command-specific options\n\n")
	for _, o := range schema.GlobalOptions() {
		fmt.Fprintf(&b, "# %s\n# %s %s\n", o.Description, o.Key, o.Default)
	}
	for _, section := range schema.Sections() {
		fmt.Fprintf(&b, "\n[%s]\n", section)
		for _, o := range schema.SectionOptions(section) {
			fmt.Fprintf(&b, "# %s\n# %s %s\n", o.Description, o.Key, o.Default)
		}
	}
	return b.String()
}
