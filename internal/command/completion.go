package command

import (
	"fmt"
	"io"
	"strings"

	"github.com/joeycumines/pocket-dos/internal/config"
	"github.com/joeycumines/pocket-dos/internal/gamestate"
)

// completionShells are the shells CompletionCommand can generate for.
var completionShells = []string{"bash", "zsh", "fish"}

// CompletionCommand generates shell completion scripts.
type CompletionCommand struct {
	*BaseCommand
	registry *Registry
}

// NewCompletionCommand creates a new completion command.
func NewCompletionCommand(registry *Registry) *CompletionCommand {
	return &CompletionCommand{
		BaseCommand: NewBaseCommand(
			"completion",
			"Generate shell completion scripts",
			"completion [bash|zsh|fish]",
		),
		registry: registry,
	}
}

// Execute writes the completion script for the named shell, bash by
// default.
func (c *CompletionCommand) Execute(args []string, stdout, stderr io.Writer) error {
	if len(args) > 1 {
		_, _ = fmt.Fprintf(stderr, "Too many arguments: %v\n", args[1:])
		_, _ = fmt.Fprintln(stderr, "Usage: pocketdos completion [shell]")
		return fmt.Errorf("too many arguments")
	}

	shell := "bash"
	if len(args) > 0 {
		shell = strings.ToLower(args[0])
	}

	var script string
	switch shell {
	case "bash":
		script = c.bashScript()
	case "zsh":
		script = c.zshScript()
	case "fish":
		script = c.fishScript()
	default:
		_, _ = fmt.Fprintf(stderr, "Unsupported shell: %s\n", shell)
		_, _ = fmt.Fprintf(stderr, "Supported shells: %s\n", strings.Join(completionShells, ", "))
		return fmt.Errorf("unsupported shell: %s", shell)
	}
	_, err := io.WriteString(stdout, script)
	return err
}

// configWords are the config subcommands plus every known global key.
func configWords() []string {
	words := []string{"validate", "schema", "unset"}
	for _, o := range config.DefaultSchema().GlobalOptions() {
		words = append(words, o.Key)
	}
	return words
}

func pageWords() []string {
	pages := gamestate.Pages()
	words := make([]string, len(pages))
	for i, p := range pages {
		words[i] = string(p)
	}
	return words
}

func (c *CompletionCommand) bashScript() string {
	return fmt.Sprintf(`#!/bin/bash
# Bash completion script for pocketdos

_pocketdos_completion() {
    local cur prev
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=($(compgen -W "%s" -- ${cur}))
        return 0
    fi

    case "${prev}" in
        completion)
            COMPREPLY=($(compgen -W "%s" -- ${cur}))
            ;;
        help)
            COMPREPLY=($(compgen -W "%s" -- ${cur}))
            ;;
        config)
            COMPREPLY=($(compgen -W "%s" -- ${cur}))
            ;;
        -page|--page)
            COMPREPLY=($(compgen -W "%s" -- ${cur}))
            ;;
        -log-file|--log-file)
            COMPREPLY=($(compgen -f -- ${cur}))
            ;;
    esac
    return 0
}

complete -F _pocketdos_completion pocketdos

# To install, source it from ~/.bashrc:
#    source <(pocketdos completion bash)
`,
		strings.Join(c.registry.List(), " "),
		strings.Join(completionShells, " "),
		strings.Join(c.registry.List(), " "),
		strings.Join(configWords(), " "),
		strings.Join(pageWords(), " "),
	)
}

func (c *CompletionCommand) zshScript() string {
	var commands strings.Builder
	for _, name := range c.registry.List() {
		if cmd, err := c.registry.Get(name); err == nil {
			fmt.Fprintf(&commands, "                %s\n", quoteSingle(name+":"+cmd.Description()))
		}
	}
	return fmt.Sprintf(`#compdef pocketdos

# Zsh completion script for pocketdos

_pocketdos() {
    local state line
    typeset -A opt_args

    _arguments -C \
        '1: :->commands' \
        '*: :->args' && return 0

    case "$state" in
        commands)
            local commands
            commands=(
%s            )
            _describe 'commands' commands
            ;;
        args)
            case ${words[2]} in
                completion)
                    _values 'shell' %s
                    ;;
                help)
                    _values 'command' %s
                    ;;
                config)
                    _values 'key' %s
                    ;;
                play)
                    _arguments '-page[page to open]:page:(%s)' '-log-file[log file]:file:_files' '-log-level[log level]:level:(debug info warn error)'
                    ;;
                *)
                    _files
                    ;;
            esac
            ;;
    esac
}

_pocketdos "$@"

# To install, put this file in a directory on $fpath as _pocketdos, or:
#    source <(pocketdos completion zsh)
`,
		commands.String(),
		quoteEach(completionShells),
		quoteEach(c.registry.List()),
		quoteEach(configWords()),
		strings.Join(pageWords(), " "),
	)
}

func (c *CompletionCommand) fishScript() string {
	var b strings.Builder
	b.WriteString("# Fish completion script for pocketdos\n\n")
	b.WriteString("complete -c pocketdos -f\n")
	for _, name := range c.registry.List() {
		if cmd, err := c.registry.Get(name); err == nil {
			fmt.Fprintf(&b, "complete -c pocketdos -n '__fish_use_subcommand' -a %s -d %s\n",
				quoteSingle(name), quoteSingle(cmd.Description()))
		}
	}
	fmt.Fprintf(&b, "complete -c pocketdos -n '__fish_seen_subcommand_from completion' -a %s -d 'Shell'\n",
		quoteSingle(strings.Join(completionShells, " ")))
	fmt.Fprintf(&b, "complete -c pocketdos -n '__fish_seen_subcommand_from help' -a %s -d 'Command'\n",
		quoteSingle(strings.Join(c.registry.List(), " ")))
	fmt.Fprintf(&b, "complete -c pocketdos -n '__fish_seen_subcommand_from config' -a %s -d 'Option'\n",
		quoteSingle(strings.Join(configWords(), " ")))
	fmt.Fprintf(&b, "complete -c pocketdos -n '__fish_seen_subcommand_from play' -o page -xa %s -d 'Page'\n",
		quoteSingle(strings.Join(pageWords(), " ")))
	b.WriteString("\n# To install: pocketdos completion fish > ~/.config/fish/completions/pocketdos.fish\n")
	return b.String()
}

// quoteSingle quotes s for a POSIX-style shell.
func quoteSingle(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func quoteEach(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = quoteSingle(w)
	}
	return strings.Join(quoted, " ")
}
