// helpdesk TUI - a terminal client for the IT helpdesk backend.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/jeranaias/helpdesk-tui/internal/api"
	"github.com/jeranaias/helpdesk-tui/internal/auth"
	"github.com/jeranaias/helpdesk-tui/internal/cli"
	"github.com/jeranaias/helpdesk-tui/internal/config"
	"github.com/jeranaias/helpdesk-tui/internal/ui/app"
	"github.com/jeranaias/helpdesk-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "1.2.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdVersion:
		cli.PrintVersion()
		return
	case cli.CmdHelp:
		cli.PrintUsage()
		return
	}

	cfg, err := config.Load(args.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if args.BaseURL != "" {
		cfg.Backend.BaseURL = args.BaseURL
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	store, err := buildStore(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	client := buildClient(cfg, store)

	switch cmd {
	case cli.CmdStatus:
		os.Exit(cli.HandleStatus(cfg, store, client))
	case cli.CmdConfig:
		os.Exit(cli.HandleConfig(cfg, args))
	case cli.CmdLogout:
		os.Exit(cli.HandleLogout(store))
	}

	runTUI(cfg, store, client, args)
}

// buildStore wires the session store to its on-disk keeper and restores
// any remembered session.
func buildStore(cfg *config.Config) (*auth.Store, error) {
	dir, err := cfg.SessionDir()
	if err != nil {
		return nil, err
	}
	store := auth.NewStore(auth.NewFileKeeper(dir))
	store.Restore()
	return store, nil
}

// buildClient applies the backend config to the API client.
func buildClient(cfg *config.Config, store *auth.Store) *api.Client {
	client := api.NewClient(cfg.Backend.BaseURL, store).
		WithMaxRetries(cfg.Backend.MaxRetries).
		WithTimeout(time.Duration(cfg.Backend.TimeoutSecs) * time.Second)

	if cfg.Backend.LogPath != "" {
		f, err := os.OpenFile(cfg.Backend.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: request log disabled: %v\n", err)
		} else {
			client.WithLogger(log.New(f, "", log.LstdFlags))
		}
	}
	return client
}

// runTUI starts the Bubble Tea program.
func runTUI(cfg *config.Config, store *auth.Store, client *api.Client, args cli.Args) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: the TUI needs an interactive terminal; see 'helpdesk help' for commands.")
		os.Exit(1)
	}

	theme := styles.New(cfg.UI.Theme)
	root := app.New(theme, client, store, cfg, args.Admin)

	program := tea.NewProgram(root, tea.WithAltScreen())

	// Config changes on disk reach the running UI as messages. An invalid
	// intermediate save is ignored by the watcher, so every delivery here
	// is a loadable config.
	watchPath := args.ConfigPath
	if watchPath == "" {
		if p, err := config.DefaultPath(); err == nil {
			watchPath = p
		}
	}
	if watchPath != "" {
		watcher, err := config.Watch(watchPath, func(next *config.Config) {
			program.Send(app.ConfigReloadedMsg{Config: next})
		})
		if err == nil {
			defer watcher.Close()
		}
	}

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
