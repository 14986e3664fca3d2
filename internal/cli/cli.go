// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - argument parsing and command dispatch for shoptalk.
package cli

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
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
	CmdStatus
	CmdConfig
	CmdDoctor
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet      bool
	Verbose    bool
	JSON       bool
	NoMarkdown bool
	Model      string
	Memory     int

	// Command-specific
	Query      string
	SessionID  string
	Subcommand string
	ConfigKey  string
	ConfigVal  string

	// Raw args (remaining after flag parsing)
	Raw []string
}

const usageText = `shoptalk - terminal chat client for the shop assistant

Shoptalk is a terminal front end for a retrieval-augmented shop
assistant backend. Questions go to the backend's /search endpoint;
the server keeps the conversation memory per session.

Usage:
  shoptalk                    Start TUI (default)
  shoptalk ask "question"     Ask a single question
  shoptalk chat               Interactive chat without the alternate screen
  shoptalk status, s          Show backend and configuration status
  shoptalk config [show|set|init|path]  Configuration
  shoptalk doctor             Run health checks
  shoptalk version            Show version
  shoptalk help               Show this help

Ask:
  shoptalk ask "What laptops do you sell?"
  shoptalk ask --session ID "And the cheapest one?"   Continue a session
  shoptalk ask --json "warranty terms"                JSON output for scripts
  echo "shipping cost to Alaska?" | shoptalk ask      Question from stdin

Config:
  shoptalk config show                Show current configuration
  shoptalk config set chat.model huggingface
  shoptalk config set backend.url http://10.0.0.5:8000
  shoptalk config init                Write a default config file
  shoptalk config path                Print the config file path

Global Flags:
  -q, --quiet      Minimal output
  -v, --verbose    Debug output
  --json           Machine-readable JSON output
  --no-markdown    Plain text answers (no terminal markdown rendering)
  --model NAME     Inference model: gemini or huggingface
  --memory N       Conversation memory depth: 5, 10, 15 or 20

Environment:
  SHOPTALK_BACKEND_URL    Override backend.url
  SHOPTALK_MODEL          Override chat.model
  SHOPTALK_MAX_MEMORY     Override chat.max_memory
  SHOPTALK_TIMEOUT_SECS   Override backend.timeout_secs
  SHOPTALK_NO_MARKDOWN    Disable markdown rendering

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("shoptalk version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
}

// Parse parses command-line arguments and returns the command and args.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses the given arguments. Split out from Parse for testing.
func ParseArgs(argv []string) (Command, Args) {
	remaining, parsedArgs := parseGlobalFlags(argv)

	// No arguments means the TUI
	if len(remaining) == 0 {
		return CmdTUI, parsedArgs
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsedArgs.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, parsedArgs

	case "ask":
		parseAskArgs(&parsedArgs, remaining)
		return CmdAsk, parsedArgs

	case "chat":
		return CmdChat, parsedArgs

	case "status", "s":
		return CmdStatus, parsedArgs

	case "config":
		parseConfigArgs(&parsedArgs, remaining)
		return CmdConfig, parsedArgs

	case "doctor":
		return CmdDoctor, parsedArgs

	case "version", "--version", "-V":
		return CmdVersion, parsedArgs

	case "help", "--help", "-h":
		return CmdHelp, parsedArgs

	default:
		// Unknown word: treat the whole line as an ask query, so
		// "shoptalk what laptops do you sell" just works
		parseAskArgs(&parsedArgs, append([]string{cmd}, remaining...))
		return CmdAsk, parsedArgs
	}
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	var parsedArgs Args

	i := 0
	for i < len(args) {
		arg := args[i]

		switch arg {
		case "-q", "--quiet":
			parsedArgs.Quiet = true
		case "-v", "--verbose":
			parsedArgs.Verbose = true
		case "--json":
			parsedArgs.JSON = true
		case "--no-markdown", "--plain":
			parsedArgs.NoMarkdown = true
		case "--model", "-m":
			if i+1 < len(args) {
				i++
				parsedArgs.Model = args[i]
			}
		case "--memory":
			if i+1 < len(args) {
				i++
				if n, err := strconv.Atoi(args[i]); err == nil {
					parsedArgs.Memory = n
				}
			}
		default:
			switch {
			case strings.HasPrefix(arg, "--model="):
				parsedArgs.Model = strings.TrimPrefix(arg, "--model=")
			case strings.HasPrefix(arg, "--memory="):
				if n, err := strconv.Atoi(strings.TrimPrefix(arg, "--memory=")); err == nil {
					parsedArgs.Memory = n
				}
			default:
				remaining = append(remaining, arg)
			}
		}
		i++
	}

	return remaining, parsedArgs
}

// parseAskArgs parses ask command specific arguments.
func parseAskArgs(args *Args, remaining []string) {
	var query []string

	i := 0
	for i < len(remaining) {
		arg := remaining[i]

		switch arg {
		case "--session", "-s":
			if i+1 < len(remaining) {
				i++
				args.SessionID = remaining[i]
			}
		default:
			switch {
			case strings.HasPrefix(arg, "--session="):
				args.SessionID = strings.TrimPrefix(arg, "--session=")
			case !strings.HasPrefix(arg, "-"):
				query = append(query, arg)
			}
		}
		i++
	}

	args.Query = strings.Join(query, " ")
}

// parseConfigArgs parses config command specific arguments.
func parseConfigArgs(args *Args, remaining []string) {
	if len(remaining) > 0 {
		args.Subcommand = remaining[0]
		if len(remaining) > 1 {
			args.ConfigKey = remaining[1]
		}
		if len(remaining) > 2 {
			args.ConfigVal = strings.Join(remaining[2:], " ")
		}
	}
}

// =============================================================================
// COMMAND HANDLERS
// =============================================================================

// HandleAsk handles the "ask" command.
func HandleAsk(args Args) {
	if err := HandleAskCommand(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(GetExitCode(err))
	}
}

// HandleChat handles the "chat" command.
func HandleChat(args Args) {
	if err := HandleChatCommand(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(GetExitCode(err))
	}
}

// HandleVersion handles the "version" command.
func HandleVersion(args Args) {
	if args.JSON {
		data := VersionData{
			Version:   Version,
			GitCommit: GitCommit,
			BuildDate: BuildDate,
			GoVersion: runtime.Version(),
		}
		NewJSONResponse("version", data).Print()
		return
	}
	PrintVersion()
}

// HandleHelp handles the "help" command.
func HandleHelp() {
	PrintUsage()
}
