// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command handlers for parley.
package cli

import (
	"errors"
	"fmt"
	"os"
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
	CmdTUI Command = iota // Default: full-screen chat TUI
	CmdAsk                // One-shot question to stdout
	CmdChat               // Line-based REPL chat
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	ServerURL   string // --server overrides config base URL
	TimeoutSecs int    // --timeout overrides config timeout
	Quiet       bool
	Plain       bool // --plain disables markdown rendering even on a TTY

	// Command-specific
	Query string

	// Raw args remaining after flag parsing
	Raw []string
}

const usageText = `parley - terminal client for a hosted chat assistant

Parley talks to an assistant service over HTTP and renders replies with
inline image, video, and link cards.

Usage:
  parley                     Start the chat TUI (default)
  parley ask "question"      Ask a single question, print the reply
  parley chat                Line-based interactive chat
  parley version             Show version information
  parley help                Show this help

Flags:
  --server URL        Assistant base URL (overrides config and PARLEY_BASE_URL)
  --timeout SECS      Request timeout in seconds
  --plain             Plain text output, no markdown rendering
  -q, --quiet         Minimal output

Configuration:
  ~/.parley/config.toml (or config.json)

  [server]
  base_url = "http://127.0.0.1:8000"
  timeout_secs = 60

  [ui]
  show_timestamps = true
  word_wrap = 0
  debounce_ms = 400

Environment:
  PARLEY_BASE_URL       Assistant base URL
  PARLEY_TIMEOUT_SECS   Request timeout in seconds
  NO_COLOR              Disable colored output

Examples:
  parley
  parley ask "What is a goroutine?"
  parley --server http://10.0.0.5:8000 chat
`

// Parse interprets command-line arguments.
func Parse(argv []string) (Command, *Args, error) {
	args := &Args{}
	cmd := CmdTUI
	var positional []string

	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		switch {
		case arg == "--server":
			if i+1 >= len(argv) {
				return CmdHelp, nil, errors.New("--server requires a URL")
			}
			i++
			args.ServerURL = argv[i]
		case strings.HasPrefix(arg, "--server="):
			args.ServerURL = strings.TrimPrefix(arg, "--server=")
		case arg == "--timeout":
			if i+1 >= len(argv) {
				return CmdHelp, nil, errors.New("--timeout requires a value")
			}
			i++
			secs, err := strconv.Atoi(argv[i])
			if err != nil || secs <= 0 {
				return CmdHelp, nil, fmt.Errorf("invalid timeout %q", argv[i])
			}
			args.TimeoutSecs = secs
		case arg == "--plain":
			args.Plain = true
		case arg == "-q" || arg == "--quiet":
			args.Quiet = true
		case arg == "-h" || arg == "--help":
			return CmdHelp, args, nil
		case strings.HasPrefix(arg, "-"):
			return CmdHelp, nil, fmt.Errorf("unknown flag %q", arg)
		default:
			positional = append(positional, arg)
		}
	}

	if len(positional) == 0 {
		return cmd, args, nil
	}

	switch positional[0] {
	case "ask":
		cmd = CmdAsk
		args.Query = strings.Join(positional[1:], " ")
		if strings.TrimSpace(args.Query) == "" {
			return CmdHelp, nil, errors.New("ask requires a question")
		}
	case "chat":
		cmd = CmdChat
	case "version", "-V", "--version":
		cmd = CmdVersion
	case "help":
		cmd = CmdHelp
	default:
		return CmdHelp, nil, fmt.Errorf("unknown command %q", positional[0])
	}
	args.Raw = positional[1:]

	return cmd, args, nil
}

// PrintUsage writes the usage text to stdout.
func PrintUsage() {
	fmt.Print(usageText)
}

// PrintVersion writes version information to stdout.
func PrintVersion() {
	fmt.Printf("parley %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
}

// Fatal prints an error and exits non-zero.
func Fatal(err error) {
	fmt.Fprintln(os.Stderr, "parley:", err)
	os.Exit(1)
}
