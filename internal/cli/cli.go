// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command routing for mathrun.
package cli

import (
	"fmt"
	"os"
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
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool
	Model   string
	Trace   bool // Show the math pipeline trace
	NoPipe  bool // Disable the math pipeline, chat directly

	// Command-specific
	Query      string
	ConfigKey  string
	ConfigVal  string
	Subcommand string

	// Raw args (remaining after flag parsing)
	Raw []string
}

const usageText = `mathrun - local LLM chat with a deterministic math pipeline

Mathrun chats with a local Ollama model. Arithmetic questions are
routed through a three-stage pipeline: the model extracts the
expression, mathrun evaluates it exactly, and the model phrases the
answer. Everything else is a plain chat completion.

Usage:
  mathrun                    Start TUI (default)
  mathrun ask "question"     Ask a single question
  mathrun chat               Interactive chat REPL
  mathrun status, s          Show backend status and models
  mathrun config [show|set]  Configuration
  mathrun version            Show version
  mathrun help               Show this help

Interactive Commands (during chat):
  /help, /h           Show available commands
  /clear, /c          Clear conversation history
  /trace, /t          Toggle pipeline trace display
  /model [name]       Show or switch model
  /quit, /q           Exit chat

Global Flags:
  -q, --quiet     Minimal output
  -v, --verbose   Debug output
  --model NAME    Override default model
  --trace         Show pipeline stage trace for math queries
  --no-pipeline   Send everything straight to the model

Examples:
  mathrun                              Start TUI interface
  mathrun ask "what is 17 * 23"        One-shot math query
  mathrun ask --trace "what is 2+2"    Show the pipeline trace
  mathrun chat --model qwen2.5:14b     Chat with a specific model
  mathrun status                       Check Ollama and list models
  mathrun config set model llama3      Set the default model

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("mathrun version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
}

// Parse parses command-line arguments and returns the command and args.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses the given arguments. Split out from Parse for tests.
func ParseArgs(argv []string) (Command, Args) {
	remaining, args := parseGlobalFlags(argv)

	if len(remaining) == 0 {
		return CmdTUI, args
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	args.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, args

	case "ask":
		args.Query = strings.TrimSpace(strings.Join(remaining, " "))
		return CmdAsk, args

	case "chat":
		return CmdChat, args

	case "status", "s":
		return CmdStatus, args

	case "config":
		if len(remaining) > 0 {
			args.Subcommand = remaining[0]
		}
		if len(remaining) > 1 {
			args.ConfigKey = remaining[1]
		}
		if len(remaining) > 2 {
			args.ConfigVal = remaining[2]
		}
		return CmdConfig, args

	case "version", "--version", "-V":
		return CmdVersion, args

	case "help", "--help", "-h":
		return CmdHelp, args

	default:
		// Unknown word: treat the whole line as an ask query.
		args.Query = strings.TrimSpace(cmd + " " + strings.Join(remaining, " "))
		return CmdAsk, args
	}
}

// parseGlobalFlags extracts global flags, returning the remaining args.
func parseGlobalFlags(argv []string) ([]string, Args) {
	var args Args
	remaining := make([]string, 0, len(argv))

	i := 0
	for i < len(argv) {
		switch arg := argv[i]; arg {
		case "-q", "--quiet":
			args.Quiet = true
		case "-v", "--verbose":
			args.Verbose = true
		case "--trace":
			args.Trace = true
		case "--no-pipeline":
			args.NoPipe = true
		case "--model", "-m":
			if i+1 < len(argv) {
				args.Model = argv[i+1]
				i++
			}
		default:
			if strings.HasPrefix(arg, "--model=") {
				args.Model = strings.TrimPrefix(arg, "--model=")
			} else {
				remaining = append(remaining, arg)
			}
		}
		i++
	}

	return remaining, args
}
