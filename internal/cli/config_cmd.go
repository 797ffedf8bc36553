// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - config command: show, set, and locate configuration.
//
// Command: config
// Short:   Show or change configuration
//
// Examples:
//   helpdesk config                      Show current settings
//   helpdesk config path                 Print the config file location
//   helpdesk config set theme light      Change the theme
//   helpdesk config set base_url URL     Point at another backend
//
// Settable Keys:
//   base_url, timeout_secs, max_retries, theme,
//   employee_page_size, technician_page_size
package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jeranaias/helpdesk-tui/internal/config"
)

// HandleConfig runs the config subcommand.
func HandleConfig(cfg *config.Config, args Args) int {
	switch args.Subcommand {
	case "", "show":
		printConfig(cfg)
		return 0

	case "path":
		path := args.ConfigPath
		if path == "" {
			var err error
			path, err = config.DefaultPath()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return 1
			}
		}
		fmt.Println(path)
		return 0

	case "set":
		if args.ConfigKey == "" {
			fmt.Fprintln(os.Stderr, "Usage: helpdesk config set KEY VALUE")
			return 1
		}
		return setConfig(cfg, args)

	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", args.Subcommand)
		return 1
	}
}

func printConfig(cfg *config.Config) {
	fmt.Println("[backend]")
	fmt.Printf("  base_url             = %s\n", cfg.Backend.BaseURL)
	fmt.Printf("  timeout_secs         = %d\n", cfg.Backend.TimeoutSecs)
	fmt.Printf("  max_retries          = %d\n", cfg.Backend.MaxRetries)
	if cfg.Backend.LogPath != "" {
		fmt.Printf("  log_path             = %s\n", cfg.Backend.LogPath)
	}
	fmt.Println("[ui]")
	fmt.Printf("  theme                = %s\n", cfg.UI.Theme)
	fmt.Printf("  employee_page_size   = %d\n", cfg.UI.EmployeePageSize)
	fmt.Printf("  technician_page_size = %d\n", cfg.UI.TechnicianPageSize)
	if cfg.Session.Dir != "" {
		fmt.Println("[session]")
		fmt.Printf("  dir                  = %s\n", cfg.Session.Dir)
	}
}

// setConfig applies one key change and writes the file back.
func setConfig(cfg *config.Config, args Args) int {
	key, val := args.ConfigKey, args.ConfigVal

	switch key {
	case "base_url":
		cfg.Backend.BaseURL = val
	case "timeout_secs":
		n, err := strconv.Atoi(val)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s must be a number\n", key)
			return 1
		}
		cfg.Backend.TimeoutSecs = n
	case "max_retries":
		n, err := strconv.Atoi(val)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s must be a number\n", key)
			return 1
		}
		cfg.Backend.MaxRetries = n
	case "theme":
		cfg.UI.Theme = val
	case "employee_page_size":
		n, err := strconv.Atoi(val)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s must be a number\n", key)
			return 1
		}
		cfg.UI.EmployeePageSize = n
	case "technician_page_size":
		n, err := strconv.Atoi(val)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s must be a number\n", key)
			return 1
		}
		cfg.UI.TechnicianPageSize = n
	default:
		fmt.Fprintf(os.Stderr, "Unknown setting: %s\n", key)
		return 1
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	path := args.ConfigPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}
	if err := config.Save(cfg, path); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Printf("Set %s = %s\n", key, val)
	return 0
}
