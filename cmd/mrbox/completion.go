package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagFile // file with glob pattern
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	FileGlob string   // for file flags, e.g. "*.yaml,*.yml"
}

// commandDef describes a command for completion.
type commandDef struct {
	Name     string
	Desc     string
	Flags    []flagDef
	TakesDir bool // accepts a bundle directory argument
}

// flagFileGlobs maps file-valued flag names to their glob patterns.
// Flag names, types and descriptions come from the FlagSet.
var flagFileGlobs = map[string]string{
	"config": "*.yaml,*.yml",
	"output": "*.html,*.png",
}

// flagRegistrars builds each command's FlagSet, sharing the registration
// the command itself uses.
var flagRegistrars = map[string]func(*flag.FlagSet){
	"serve":    func(fs *flag.FlagSet) { new(serveOptions).register(fs) },
	"compose":  func(fs *flag.FlagSet) { new(composeOptions).register(fs) },
	"check":    func(fs *flag.FlagSet) { new(checkOptions).register(fs) },
	"snapshot": func(fs *flag.FlagSet) { new(snapshotOptions).register(fs) },
	"init":     func(fs *flag.FlagSet) { new(initOptions).register(fs) },
	"doctor":   func(fs *flag.FlagSet) { new(checkOptions).register(fs) },
}

// runCompletion handles the completion command.
func runCompletion(_ context.Context, args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: completion takes one shell name", ErrUsage)
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mrbox completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(mrbox completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (after compinit):")
	fmt.Fprintln(w, "    eval \"$(mrbox completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    mrbox completion fish > ~/.config/fish/completions/mrbox.fish")
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// VisitAll walks flags in lexicographical order.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch {
		case f.Value.Type() == "bool":
			fd.Type = flagBool
		case flagFileGlobs[f.Name] != "":
			fd.Type = flagFile
			fd.FileGlob = flagFileGlobs[f.Name]
		default:
			fd.Type = flagString
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion, in usage order.
func getCommands() []commandDef {
	cmds := make([]commandDef, 0, len(commandSummaries))
	for _, c := range commandSummaries {
		def := commandDef{Name: c.Name, Desc: c.Desc}
		if register, ok := flagRegistrars[c.Name]; ok {
			fs := flag.NewFlagSet(c.Name, flag.ContinueOnError)
			register(fs)
			def.Flags = extractFlagsFromFlagSet(fs)
			def.TakesDir = true
		}
		cmds = append(cmds, def)
	}
	return cmds
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	switch shell {
	case ShellBash:
		return generateBash(w)
	case ShellZsh:
		return generateZsh(w)
	case ShellFish:
		return generateFish(w)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}
}

func commandNames(cmds []commandDef) string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return strings.Join(names, " ")
}

func flagWords(flags []flagDef) string {
	words := make([]string, 0, len(flags)*2)
	for _, f := range flags {
		words = append(words, "--"+f.Long)
		if f.Short != "" {
			words = append(words, "-"+f.Short)
		}
	}
	sort.Strings(words)
	return strings.Join(words, " ")
}

func generateBash(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder

	b.WriteString("# bash completion for mrbox\n")
	b.WriteString("_mrbox() {\n")
	b.WriteString("    local cur prev\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    COMPREPLY=()\n\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", commandNames(cmds))
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"${COMP_WORDS[1]}\" in\n")

	for _, c := range cmds {
		switch {
		case c.Name == "help":
			b.WriteString("    help)\n")
			fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", commandNames(cmds))
			b.WriteString("        ;;\n")
		case c.Name == "completion":
			b.WriteString("    completion)\n")
			b.WriteString("        COMPREPLY=($(compgen -W \"bash zsh fish\" -- \"$cur\"))\n")
			b.WriteString("        ;;\n")
		case len(c.Flags) > 0:
			fmt.Fprintf(&b, "    %s)\n", c.Name)
			b.WriteString("        case \"$prev\" in\n")
			for _, f := range c.Flags {
				if f.Type == flagBool {
					continue
				}
				pattern := "--" + f.Long
				if f.Short != "" {
					pattern += "|-" + f.Short
				}
				switch f.Type {
				case flagFile:
					fmt.Fprintf(&b, "            %s) COMPREPLY=($(compgen -f -- \"$cur\")); return ;;\n", pattern)
				default:
					fmt.Fprintf(&b, "            %s) return ;;\n", pattern)
				}
			}
			b.WriteString("        esac\n")
			b.WriteString("        if [[ \"$cur\" == -* ]]; then\n")
			fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", flagWords(c.Flags))
			b.WriteString("        else\n")
			b.WriteString("            COMPREPLY=($(compgen -d -- \"$cur\"))\n")
			b.WriteString("        fi\n")
			b.WriteString("        ;;\n")
		}
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n")
	b.WriteString("complete -o filenames -F _mrbox mrbox\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// zshEscape escapes characters special inside _arguments specs.
func zshEscape(s string) string {
	r := strings.NewReplacer("'", "'\\''", "[", "\\[", "]", "\\]", ":", "\\:")
	return r.Replace(s)
}

func generateZsh(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder

	b.WriteString("#compdef mrbox\n\n")
	b.WriteString("_mrbox() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    local cmd=$words[2]\n")
	b.WriteString("    shift words\n")
	b.WriteString("    (( CURRENT-- ))\n\n")
	b.WriteString("    case $cmd in\n")

	for _, c := range cmds {
		switch {
		case c.Name == "help":
			b.WriteString("        help) _describe 'command' commands ;;\n")
		case c.Name == "completion":
			b.WriteString("        completion) _values 'shell' bash zsh fish ;;\n")
		case len(c.Flags) > 0:
			fmt.Fprintf(&b, "        %s)\n", c.Name)
			b.WriteString("            _arguments \\\n")
			for _, f := range c.Flags {
				fmt.Fprintf(&b, "                %s \\\n", zshFlagSpec(f))
			}
			b.WriteString("                '1:directory:_files -/'\n")
			b.WriteString("            ;;\n")
		}
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("compdef _mrbox mrbox\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// zshFlagSpec renders one _arguments spec for f.
func zshFlagSpec(f flagDef) string {
	desc := "[" + zshEscape(f.Desc) + "]"

	var action string
	switch f.Type {
	case flagBool:
	case flagFile:
		globs := strings.ReplaceAll(f.FileGlob, ",", "|")
		globs = strings.ReplaceAll(globs, "*.", "")
		action = ":file:_files -g \"*.(" + globs + ")\""
	default:
		action = ":" + f.Long + ": "
	}

	if f.Short == "" {
		return "'--" + f.Long + desc + action + "'"
	}
	return "'(-" + f.Short + " --" + f.Long + ")'{-" + f.Short + ",--" + f.Long + "}'" + desc + action + "'"
}

// fishEscape escapes single quotes for fish single-quoted strings.
func fishEscape(s string) string {
	return strings.ReplaceAll(s, "'", "\\'")
}

func generateFish(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder

	b.WriteString("# fish completion for mrbox\n")
	b.WriteString("complete -c mrbox -f\n\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c mrbox -n '__fish_use_subcommand' -a %s -d '%s'\n", c.Name, fishEscape(c.Desc))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "complete -c mrbox -n '__fish_seen_subcommand_from help' -a '%s'\n", commandNames(cmds))
	b.WriteString("complete -c mrbox -n '__fish_seen_subcommand_from completion' -a 'bash zsh fish'\n")

	for _, c := range cmds {
		if len(c.Flags) == 0 {
			continue
		}
		cond := "'__fish_seen_subcommand_from " + c.Name + "'"
		b.WriteString("\n")
		if c.TakesDir {
			fmt.Fprintf(&b, "complete -c mrbox -n %s -a '(__fish_complete_directories)'\n", cond)
		}
		for _, f := range c.Flags {
			line := "complete -c mrbox -n " + cond + " -l " + f.Long
			if f.Short != "" {
				line += " -s " + f.Short
			}
			switch f.Type {
			case flagBool:
			case flagFile:
				line += " -r -F"
			default:
				line += " -x"
			}
			line += " -d '" + fishEscape(f.Desc) + "'"
			b.WriteString(line + "\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
