// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Command-line parsing and dispatch for firstverify.
package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/jeranaias/firstverify-chat/internal/config"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdChat
	CmdConfig
	CmdVersion
	CmdHelp
)

// String returns the command name as typed on the command line.
func (c Command) String() string {
	switch c {
	case CmdTUI:
		return "tui"
	case CmdAsk:
		return "ask"
	case CmdChat:
		return "chat"
	case CmdConfig:
		return "config"
	case CmdVersion:
		return "version"
	case CmdHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Verbose    bool
	Quiet      bool
	NoAnim     bool
	URL        string // Overrides every other source of the agent base URL
	ConfigPath string // Config file to use instead of ~/.firstverify/config.toml

	// Output
	JSON  bool
	Raw   bool
	Force bool // config init: replace an existing file

	// Command-specific
	Query      string
	Subcommand string
	Format     string // Export format for chat /export

	// Options holds any further --name value pairs
	Options map[string]string
}

// boolFlagNames are the flags that never take a value.
var boolFlagNames = []string{
	"v", "verbose",
	"q", "quiet",
	"no-anim",
	"json",
	"raw",
	"h", "help",
	"version",
	"force",
}

const usageText = `firstverify - terminal client for the FirstVerify agent

Talks to a FirstVerify agent server over HTTP. Replies are shown as
markdown; analysis blocks in a reply are drawn as stacked percentage bars.

Usage:
  firstverify [flags]                 Open the chat screen (default)
  firstverify ask [flags] <question>  Ask one question and print the reply
  firstverify chat [flags]            Line-mode chat with input history
  firstverify config [show|path|init] Inspect or create the config file
  firstverify version                 Show version information
  firstverify help                    Show this help

Global Flags:
  --url URL          Agent server base URL (default: http://localhost:8000)
  --config FILE      Config file (default: ~/.firstverify/config.toml)
  --no-anim          Draw bars and labels without animation
  -v, --verbose      Debug logging
  -q, --quiet        Print replies only

Ask Flags:
  --raw              Print the reply text without markdown rendering, then
                     the analysis block as JSON
  --json             Print {display, payload} as a JSON response

Chat Commands:
  /help              List commands
  /clear             Start a new conversation
  /export [md|json]  Write the conversation to a file
  /quit              Leave (also Ctrl+D)

Chat Screen Keys:
  enter send   tab/shift+tab step through bars   ctrl+p inspect analysis
  ctrl+s export   ctrl+y copy reply   f1 help   ctrl+c quit

Environment:
  FIRSTVERIFY_API_URL          Agent base URL (overrides the config file)
  NEXT_PUBLIC_API_URL          Agent base URL, read when the above is unset
  FIRSTVERIFY_LOG_LEVEL        debug, info, warn or error
  FIRSTVERIFY_NO_ANIM          Any true value disables animation
  FIRSTVERIFY_TYPING_INTERVAL  Label reveal delay per character, e.g. 30ms
  A .env file in the working directory is read first; it never replaces
  variables that are already set.

Examples:
  firstverify
  firstverify --url http://10.0.0.5:8000
  firstverify ask "What color is best for a kitchen?"
  firstverify ask --json "Summarize the survey" | jq .data.payload

Version: %s
`

// PrintUsage writes the usage text.
func PrintUsage(w io.Writer) {
	fmt.Fprintf(w, usageText, Version)
}

// PrintVersion writes version information.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "firstverify version %s\n", Version)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  Build date: %s\n", BuildDate)
	fmt.Fprintf(w, "  Go version: %s\n", runtime.Version())
}

// VersionData is the JSON form of the version command.
type VersionData struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
}

// =============================================================================
// PARSING
// =============================================================================

// Parse parses command-line arguments (without the program name) and
// returns the command to run. Flags may appear before or after the command.
func Parse(argv []string) (Command, Args, error) {
	p := NewArgParser(argv, boolFlagNames...)

	args := Args{
		Verbose:    p.BoolFlag("verbose", "v"),
		Quiet:      p.BoolFlag("quiet", "q"),
		NoAnim:     p.BoolFlag("no-anim"),
		JSON:       p.BoolFlag("json"),
		Raw:        p.BoolFlag("raw"),
		Force:      p.BoolFlag("force"),
		URL:        p.Flag("url"),
		ConfigPath: p.Flag("config"),
		Format:     p.Flag("format"),
		Options:    make(map[string]string),
	}

	for _, name := range []string{"url", "config"} {
		if p.HasFlag(name) && p.Flag(name) == "" {
			return CmdHelp, args, NewValidationErrorWithExample(
				"--"+name, "", "flag needs a value", "--"+name+" "+flagExample(name))
		}
	}
	if args.URL != "" {
		if err := config.ValidateBaseURL(args.URL); err != nil {
			return CmdHelp, args, NewValidationErrorWithExample(
				"--url", args.URL, err.Error(), "--url "+flagExample("url"))
		}
	}

	known := map[string]bool{"url": true, "config": true, "format": true}
	for _, name := range p.Flags() {
		if known[name] {
			continue
		}
		if v := p.Flag(name); v != "" {
			args.Options[name] = v
		}
	}

	if p.BoolFlag("help", "h") {
		return CmdHelp, args, nil
	}
	if p.BoolFlag("version") {
		return CmdVersion, args, nil
	}

	cmd := strings.ToLower(p.Subcommand())
	switch cmd {
	case "", "tui":
		return CmdTUI, args, nil

	case "ask":
		args.Query = JoinPositionalArgs(p, 1)
		if strings.TrimSpace(args.Query) == "" {
			return CmdAsk, args, NewValidationErrorWithExample(
				"question", "", "ask needs a question", `firstverify ask "What color is best?"`)
		}
		return CmdAsk, args, nil

	case "chat", "repl":
		return CmdChat, args, nil

	case "config":
		args.Subcommand = strings.ToLower(p.Positional(1))
		return CmdConfig, args, nil

	case "version":
		return CmdVersion, args, nil

	case "help":
		return CmdHelp, args, nil

	default:
		return CmdHelp, args, NewValidationErrorWithExample(
			"command", p.Subcommand(), "unknown command", "firstverify help")
	}
}

func flagExample(name string) string {
	switch name {
	case "url":
		return config.DefaultBaseURL
	case "config":
		return "./config.toml"
	default:
		return "VALUE"
	}
}

// =============================================================================
// COMMAND HANDLERS
// =============================================================================

// HandleVersion handles the "version" command.
func HandleVersion(rt *Runtime, args Args) error {
	if args.JSON {
		data := VersionData{
			Version:   Version,
			GitCommit: GitCommit,
			BuildDate: BuildDate,
			GoVersion: runtime.Version(),
		}
		return NewJSONResponse("version", data).Print(rt.stdout())
	}
	PrintVersion(rt.stdout())
	return nil
}

// HandleHelp handles the "help" command.
func HandleHelp(rt *Runtime) error {
	PrintUsage(rt.stdout())
	return nil
}
