// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli parses command-line arguments and implements the non-TUI
// commands.
//
// Running the binary with no arguments starts the TUI; everything else is
// a small subcommand that prints and exits:
//
//	helpdesk                 Start the TUI
//	helpdesk --admin         Start the TUI with the admin login audience
//	helpdesk status          Backend reachability and session state
//	helpdesk config [...]    Show or change configuration
//	helpdesk logout          Clear the remembered session
//	helpdesk version         Version information
//
// # Key Types
//
//   - Command: which command was requested
//   - Args: parsed global flags and command arguments
package cli
