// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// styles.go - shared lipgloss styles for CLI output.
package cli

import (
	"github.com/charmbracelet/lipgloss"

	"shoptalk/internal/ui/styles"
)

var (
	// Prompt style for the chat REPL
	promptStyle = lipgloss.NewStyle().
			Foreground(styles.Cyan).
			Bold(true)

	// Welcome banner style
	welcomeStyle = lipgloss.NewStyle().
			Foreground(styles.Purple).
			Bold(true)

	// Info style for secondary text
	infoStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary)

	// Command style for slash command names in help
	commandStyle = lipgloss.NewStyle().
			Foreground(styles.Emerald)

	// Warning style
	warningStyle = lipgloss.NewStyle().
			Foreground(styles.Amber)

	// Error style
	errorStyle = lipgloss.NewStyle().
			Foreground(styles.Rose)

	// Separator style
	separatorStyle = lipgloss.NewStyle().
			Foreground(styles.Overlay)

	// Summary label / value styles for the exit summary
	summaryLabelStyle = lipgloss.NewStyle().
				Foreground(styles.TextSecondary)

	summaryValueStyle = lipgloss.NewStyle().
				Foreground(styles.Emerald)
)
