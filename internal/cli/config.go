// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - config command handler for the shoptalk CLI.
//
// Subcommands:
//   show     Print the effective configuration
//   set      Set a key and write the config file
//   init     Write a default config file
//   path     Print the config file path
package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"shoptalk/internal/config"
)

// HandleConfig handles the "config" command.
func HandleConfig(args Args) {
	var err error

	switch args.Subcommand {
	case "", "show":
		err = configShow(args)
	case "set":
		err = configSet(args)
	case "init":
		err = configInit(args)
	case "path":
		err = configPath(args)
	default:
		err = NewUsageError("unknown config subcommand %q (show, set, init, path)", args.Subcommand)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(GetExitCode(err))
	}
}

func configShow(args Args) error {
	cfg := config.Global()

	if args.JSON {
		return NewJSONResponse("config", cfg).Print()
	}

	path := "(defaults)"
	if p, err := config.ConfigPathTOML(); err == nil {
		if _, statErr := os.Stat(p); statErr == nil {
			path = p
		}
	}

	fmt.Println(welcomeStyle.Render("shoptalk configuration"))
	fmt.Println()
	fmt.Printf("  %s %s\n", summaryLabelStyle.Render("backend.url:"), cfg.Backend.URL)
	fmt.Printf("  %s %d\n", summaryLabelStyle.Render("backend.timeout_secs:"), cfg.Backend.TimeoutSecs)
	fmt.Printf("  %s %s\n", summaryLabelStyle.Render("chat.model:"), cfg.Chat.Model)
	fmt.Printf("  %s %d\n", summaryLabelStyle.Render("chat.max_memory:"), cfg.Chat.MaxMemory)
	fmt.Printf("  %s %s\n", summaryLabelStyle.Render("ui.theme:"), cfg.UI.Theme)
	fmt.Printf("  %s %t\n", summaryLabelStyle.Render("ui.markdown:"), cfg.UI.Markdown)
	fmt.Printf("  %s %t\n", summaryLabelStyle.Render("ui.alt_screen:"), cfg.UI.AltScreen)
	fmt.Printf("  %s %t\n", summaryLabelStyle.Render("ui.show_session_banner:"), cfg.UI.ShowSessionBanner)
	fmt.Println()
	fmt.Printf("  %s %s\n", summaryLabelStyle.Render("file:"), path)
	return nil
}

func configSet(args Args) error {
	if args.ConfigKey == "" || args.ConfigVal == "" {
		return NewUsageError("usage: shoptalk config set <key> <value>")
	}

	// Start from the file if one exists so unrelated keys survive
	cfg := config.Global()

	if err := applyConfigKey(cfg, args.ConfigKey, args.ConfigVal); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := config.EnsureConfigDir(); err != nil {
		return err
	}
	path, err := config.ConfigPathTOML()
	if err != nil {
		return err
	}
	if err := config.SaveTOML(cfg, path); err != nil {
		return err
	}

	config.SetGlobal(cfg)

	if !args.Quiet {
		fmt.Printf("%s %s = %s\n",
			infoStyle.Render("Set"), args.ConfigKey, args.ConfigVal)
		fmt.Printf("%s %s\n", infoStyle.Render("Wrote"), path)
	}
	return nil
}

// applyConfigKey sets one dotted config key on cfg.
func applyConfigKey(cfg *config.Config, key, value string) error {
	switch strings.ToLower(key) {
	case "backend.url":
		cfg.Backend.URL = value
	case "backend.timeout_secs":
		n, err := strconv.Atoi(value)
		if err != nil {
			return NewUsageError("backend.timeout_secs must be an integer, got %q", value)
		}
		cfg.Backend.TimeoutSecs = n
	case "chat.model":
		cfg.Chat.Model = strings.ToLower(value)
	case "chat.max_memory":
		n, err := strconv.Atoi(value)
		if err != nil {
			return NewUsageError("chat.max_memory must be an integer, got %q", value)
		}
		cfg.Chat.MaxMemory = n
	case "ui.theme":
		cfg.UI.Theme = strings.ToLower(value)
	case "ui.markdown":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return NewUsageError("ui.markdown must be true or false, got %q", value)
		}
		cfg.UI.Markdown = b
	case "ui.alt_screen":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return NewUsageError("ui.alt_screen must be true or false, got %q", value)
		}
		cfg.UI.AltScreen = b
	case "ui.show_session_banner":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return NewUsageError("ui.show_session_banner must be true or false, got %q", value)
		}
		cfg.UI.ShowSessionBanner = b
	default:
		return NewUsageError("unknown config key %q", key)
	}
	return nil
}

func configInit(args Args) error {
	path, err := config.ConfigPathTOML()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	if err := config.EnsureConfigDir(); err != nil {
		return err
	}
	if err := config.SaveTOML(config.Default(), path); err != nil {
		return err
	}

	if !args.Quiet {
		fmt.Printf("%s %s\n", infoStyle.Render("Wrote"), path)
	}
	return nil
}

func configPath(args Args) error {
	path, err := config.ConfigPathTOML()
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}
