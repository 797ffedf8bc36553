// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - argument parsing and usage for the helpdesk client.
package cli

import (
	"fmt"
	"os"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "1.2.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdStatus
	CmdConfig
	CmdLogout
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Admin      bool   // Open the admin audience on the login form
	ConfigPath string // Explicit config file path
	BaseURL    string // Backend override, wins over config and env

	// Command-specific
	Subcommand string
	ConfigKey  string
	ConfigVal  string

	// Raw args remaining after flag parsing
	Raw []string
}

const usageText = `helpdesk - IT helpdesk terminal client

Usage:
  helpdesk                   Start the TUI (default)
  helpdesk status            Show backend and session status
  helpdesk config            Show configuration
  helpdesk config path       Print the config file location
  helpdesk config set K V    Change a setting
  helpdesk logout            Clear the remembered session
  helpdesk version           Show version information
  helpdesk help              Show this help

Global flags:
  --admin                    Include the administrator audience on the
                             login form
  --config PATH              Use an explicit config file
  --base-url URL             Override the backend base URL

Environment:
  HELPDESK_BASE_URL, HELPDESK_THEME, HELPDESK_SESSION_DIR and friends
  override the config file. Flags win over both.
`

// PrintUsage writes the usage text to stdout.
func PrintUsage() {
	fmt.Print(usageText)
}

// PrintVersion writes version information to stdout.
func PrintVersion() {
	fmt.Printf("helpdesk version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
}

// Parse parses os.Args and returns the command and args.
func Parse() (Command, Args) {
	return parseArgs(os.Args[1:])
}

// parseArgs is Parse without the os.Args dependency.
func parseArgs(argv []string) (Command, Args) {
	remaining, parsed := parseGlobalFlags(argv)

	if len(remaining) == 0 {
		return CmdTUI, parsed
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsed.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, parsed

	case "status", "s":
		return CmdStatus, parsed

	case "config":
		parseConfigArgs(&parsed, remaining)
		return CmdConfig, parsed

	case "logout":
		return CmdLogout, parsed

	case "version", "--version", "-v":
		return CmdVersion, parsed

	case "help", "--help", "-h":
		return CmdHelp, parsed
	}

	fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
	return CmdHelp, parsed
}

// parseGlobalFlags strips the global flags from argv.
func parseGlobalFlags(argv []string) ([]string, Args) {
	var args Args
	var remaining []string

	for i := 0; i < len(argv); i++ {
		switch argv[i] {
		case "--admin":
			args.Admin = true
		case "--config":
			if i+1 < len(argv) {
				i++
				args.ConfigPath = argv[i]
			}
		case "--base-url":
			if i+1 < len(argv) {
				i++
				args.BaseURL = argv[i]
			}
		default:
			remaining = append(remaining, argv[i])
		}
	}
	return remaining, args
}

// parseConfigArgs fills the config subcommand fields: "show" (default),
// "path", or "set KEY VALUE".
func parseConfigArgs(args *Args, remaining []string) {
	if len(remaining) == 0 {
		args.Subcommand = "show"
		return
	}
	args.Subcommand = strings.ToLower(remaining[0])
	if args.Subcommand == "set" && len(remaining) >= 3 {
		args.ConfigKey = strings.ToLower(remaining[1])
		args.ConfigVal = remaining[2]
	}
}
