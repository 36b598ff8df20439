package main

import (
	"fmt"
	"io"
)

// commandSummary is one line of the top-level usage.
type commandSummary struct {
	Name string
	Desc string
}

// commandSummaries lists the commands in usage order.
var commandSummaries = []commandSummary{
	{"serve", "Host the bundle in a page with a heading and an iframe"},
	{"compose", "Write the composed self-contained document"},
	{"check", "Report which template markers are present"},
	{"snapshot", "Save a PNG of the composed document"},
	{"init", "Scaffold a starter bundle and mrbox.yaml"},
	{"doctor", "Check the bundle, browser and system"},
	{"completion", "Generate shell completion script"},
	{"version", "Show version information"},
	{"help", "Show help for a command"},
}

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mrbox <command> [flags] [dir]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, c := range commandSummaries {
		fmt.Fprintf(w, "  %-11s%s\n", c.Name, c.Desc)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "The bundle directory holds index.html, styles.css and game.js (default: .).")
	fmt.Fprintln(w, "Run 'mrbox help <command>' for details on a specific command.")
}

func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path (default: ./mrbox.yaml if present)")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs")
}

func printBundleUsage(w io.Writer) {
	fmt.Fprintln(w, "Bundle:")
	fmt.Fprintln(w, "      --audio-url <url>     Audio source (default: built-in track)")
	fmt.Fprintln(w, "      --strict              Fail when a template marker is missing")
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mrbox serve [dir] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Host the bundle. GET / returns the host page; GET /frame returns the")
	fmt.Fprintln(w, "composed document, re-read from disk on every request.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Server:")
	fmt.Fprintln(w, "  -a, --addr <addr>         Listen address (default: :8080, MRBOX_ADDR or PORT)")
	fmt.Fprintln(w, "      --height <px>         Iframe height (default: 720)")
	fmt.Fprintln(w, "      --title <s>           Host page title")
	fmt.Fprintln(w)
	printBundleUsage(w)
	fmt.Fprintln(w)
	printCommonUsage(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Routes: /, /frame, /source, /markers, /healthz")
}

// printComposeUsage prints usage for the compose command.
func printComposeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mrbox compose [dir] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Inline styles.css and game.js into index.html and set the audio source.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (default: stdout)")
	fmt.Fprintln(w, "      --report              Print the marker report to stderr")
	fmt.Fprintln(w)
	printBundleUsage(w)
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printCheckUsage prints usage for the check command.
func printCheckUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mrbox check [dir] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Report how often each template marker occurs.")
	fmt.Fprintln(w, "Exits with status 2 on a missing marker when --strict is set.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "      --json                Output as JSON")
	fmt.Fprintln(w)
	printBundleUsage(w)
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printSnapshotUsage prints usage for the snapshot command.
func printSnapshotUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mrbox snapshot [dir] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render the composed document in headless Chrome and save a PNG.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       PNG file (default: mrbox.png)")
	fmt.Fprintln(w, "      --width <px>          Viewport width (default: 1280)")
	fmt.Fprintln(w, "      --height <px>         Viewport height (default: page height)")
	fmt.Fprintln(w, "  -t, --timeout <dur>       Page load timeout (default: 30s)")
	fmt.Fprintln(w)
	printBundleUsage(w)
	fmt.Fprintln(w)
	printCommonUsage(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment: ROD_BROWSER_BIN, ROD_NO_SANDBOX")
}

// printInitUsage prints usage for the init command.
func printInitUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mrbox init [dir] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Write the starter index.html, styles.css, game.js and mrbox.yaml.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -f, --force               Overwrite existing files")
	fmt.Fprintln(w, "      --no-config           Do not write mrbox.yaml")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mrbox doctor [dir] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check the bundle files and markers, Chrome availability, and the system.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "      --json                Output as JSON")
	fmt.Fprintln(w)
	printBundleUsage(w)
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// usageFuncs maps command names to their usage printers.
var usageFuncs = map[string]func(io.Writer){
	"serve":      printServeUsage,
	"compose":    printComposeUsage,
	"check":      printCheckUsage,
	"snapshot":   printSnapshotUsage,
	"init":       printInitUsage,
	"doctor":     printDoctorUsage,
	"completion": printCompletionUsage,
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	if usage, ok := usageFuncs[args[0]]; ok {
		usage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: mrbox version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: mrbox help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
