// shoptalk - a terminal chat client for the shop assistant backend.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"shoptalk/internal/backend"
	"shoptalk/internal/cli"
	"shoptalk/internal/config"
	"shoptalk/internal/ui/chat"
	"shoptalk/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
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
	case cli.CmdTUI:
		runTUI(args)
	case cli.CmdAsk:
		cli.HandleAsk(args)
	case cli.CmdChat:
		cli.HandleChat(args)
	case cli.CmdStatus:
		cli.HandleStatus(args)
	case cli.CmdConfig:
		cli.HandleConfig(args)
	case cli.CmdDoctor:
		cli.HandleDoctor(args)
	case cli.CmdVersion:
		cli.HandleVersion(args)
	case cli.CmdHelp:
		cli.HandleHelp()
	default:
		runTUI(args)
	}
}

// runTUI starts the full-screen chat interface.
func runTUI(args cli.Args) {
	cfg := config.Global()

	theme := styles.NewTheme()
	client := backend.NewClientWithConfig(cfg.BackendClientConfig())

	m := chat.New(theme, client, cfg)
	m.SetVersion(Version)

	// CLI flags override the config
	if args.Model != "" {
		if !m.SetModel(args.Model) {
			fmt.Fprintf(os.Stderr, "Error: unknown model %q\n", args.Model)
			os.Exit(cli.ExitUsageError)
		}
	}
	if args.Memory != 0 {
		if !m.SetMemoryDepth(args.Memory) {
			fmt.Fprintf(os.Stderr, "Error: invalid memory depth %d\n", args.Memory)
			os.Exit(cli.ExitUsageError)
		}
	}

	opts := []tea.ProgramOption{tea.WithMouseCellMotion()}
	if cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}

	p := tea.NewProgram(m, opts...)

	// Reload the config when the file changes on disk. Best-effort; the
	// TUI works fine without the watcher.
	if watcher, err := config.NewWatcher(500*time.Millisecond, func(reloaded *config.Config) {
		p.Send(chat.ConfigReloadedMsg{Config: reloaded})
	}); err == nil {
		if err := watcher.Watch(); err == nil {
			defer watcher.Close()
		}
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running shoptalk: %v\n", err)
		os.Exit(cli.ExitGeneralError)
	}
}
