// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - status command handler for the shoptalk CLI.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"shoptalk/internal/backend"
	"shoptalk/internal/config"
	"shoptalk/internal/ui/styles"
)

// HandleStatus handles the "status" command.
func HandleStatus(args Args) {
	data := collectStatus()

	if args.JSON {
		NewJSONResponse("status", data).Print()
		return
	}

	fmt.Println(welcomeStyle.Render("shoptalk status"))
	fmt.Println()

	backendLine := styles.RenderSuccess("reachable")
	if !data.Backend.Reachable {
		backendLine = styles.RenderError("unreachable")
		if data.Backend.Error != "" {
			backendLine += " " + infoStyle.Render("("+data.Backend.Error+")")
		}
	}

	fmt.Printf("  %s %s\n", summaryLabelStyle.Render("Backend:"), data.Backend.URL)
	fmt.Printf("  %s %s\n", summaryLabelStyle.Render("Health:"), backendLine)
	fmt.Printf("  %s %ds\n", summaryLabelStyle.Render("Timeout:"), data.Backend.TimeoutSecs)
	fmt.Println()
	fmt.Printf("  %s %s\n", summaryLabelStyle.Render("Model:"), data.Chat.Model)
	fmt.Printf("  %s %d exchanges\n", summaryLabelStyle.Render("Memory:"), data.Chat.MaxMemory)
	fmt.Println()

	if data.Config.Exists {
		fmt.Printf("  %s %s\n", summaryLabelStyle.Render("Config:"), data.Config.Path)
	} else {
		fmt.Printf("  %s %s\n", summaryLabelStyle.Render("Config:"),
			infoStyle.Render("defaults (run 'shoptalk config init' to create a file)"))
	}
}

// collectStatus gathers status information shared by text and JSON output.
func collectStatus() StatusData {
	cfg := config.Global()

	data := StatusData{
		Backend: BackendStatusInfo{
			URL:         cfg.Backend.URL,
			TimeoutSecs: cfg.Backend.TimeoutSecs,
		},
		Chat: ChatStatusInfo{
			Model:     cfg.Chat.Model,
			MaxMemory: cfg.Chat.MaxMemory,
		},
	}

	client := backend.NewClientWithConfig(cfg.BackendClientConfig())
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.CheckReachable(ctx); err != nil {
		data.Backend.Reachable = false
		data.Backend.Error = err.Error()
	} else {
		data.Backend.Reachable = true
	}

	if path, err := config.ConfigPathTOML(); err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			data.Config.Path = path
			data.Config.Exists = true
		} else {
			data.Config.Path = path
		}
	}

	return data
}
