// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"shoptalk/internal/ui/styles"
)

// =============================================================================
// WELCOME SCREEN MODEL
// =============================================================================

// Welcome is the welcome screen shown before the first message.
type Welcome struct {
	version     string
	modelName   string
	backendURL  string
	memoryDepth int

	// Dimensions
	width  int
	height int

	theme *styles.Theme
}

// NewWelcome creates a new welcome screen.
func NewWelcome(theme *styles.Theme) Welcome {
	return Welcome{
		version: "dev",
		theme:   theme,
	}
}

// SetVersion sets the version string.
func (w *Welcome) SetVersion(version string) {
	w.version = version
}

// SetModelName sets the model name.
func (w *Welcome) SetModelName(name string) {
	w.modelName = name
}

// SetBackendURL sets the backend URL shown in the system info block.
func (w *Welcome) SetBackendURL(url string) {
	w.backendURL = url
}

// SetMemoryDepth sets the conversation memory depth.
func (w *Welcome) SetMemoryDepth(depth int) {
	w.memoryDepth = depth
}

// SetSize updates the dimensions.
func (w *Welcome) SetSize(width, height int) {
	w.width = width
	w.height = height
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init initializes the welcome screen.
func (w Welcome) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (w Welcome) Update(msg tea.Msg) (Welcome, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		w.height = msg.Height
	}
	return w, nil
}

// View renders the welcome screen.
// Responsive: adapts to terminal size, minimum 80x24 supported.
func (w Welcome) View() string {
	width := w.width
	if width == 0 {
		width = 80
	}
	height := w.height
	if height == 0 {
		height = 24
	}

	boxWidth := 62
	if width < 70 {
		boxWidth = width - 8
	}
	if boxWidth < 40 {
		boxWidth = 40
	}
	if boxWidth > width-4 {
		boxWidth = width - 4
	}

	horizontalPadding := 4
	verticalPadding := 1
	if width < 70 {
		horizontalPadding = 2
	}

	boxOverhead := 2 + 2*verticalPadding
	availableContentLines := height - boxOverhead

	var content string
	if availableContentLines >= 16 {
		content = w.renderLogo()
		content += "\n\n" + w.renderVersion()
		content += "\n\n" + w.renderSystemInfo()
		content += "\n\n" + w.renderQuickStart()
	} else if availableContentLines >= 12 {
		content = w.renderLogo()
		content += "\n" + w.renderVersion()
		content += "\n" + w.renderSystemInfo()
		content += "\n" + w.renderQuickStartCompact()
	} else {
		content = w.renderLogoCompact()
		content += "\n" + w.renderSystemInfoCompact()
		content += "\n" + w.renderQuickStartCompact()
	}

	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(styles.Purple).
		Padding(verticalPadding, horizontalPadding).
		Width(boxWidth).
		Align(lipgloss.Center).
		Render(content)

	boxHeight := lipgloss.Height(box)

	// Align top when the box would overflow, rather than cutting the top off
	if boxHeight >= height {
		return lipgloss.Place(
			width, height,
			lipgloss.Center, lipgloss.Top,
			box,
		)
	}

	return lipgloss.Place(
		width, height,
		lipgloss.Center, lipgloss.Center,
		box,
	)
}

// =============================================================================
// RENDER HELPERS
// =============================================================================

// renderLogo renders the ASCII art logo (6 lines).
func (w Welcome) renderLogo() string {
	logoStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true)

	if w.width >= 60 {
		logo := ` ____  _   _  ___  ____ _____  _    _     _  __
/ ___|| | | |/ _ \|  _ \_   _|/ \  | |   | |/ /
\___ \| |_| | | | | |_) || | / _ \ | |   | ' /
 ___) |  _  | |_| |  __/ | |/ ___ \| |___| . \
|____/|_| |_|\___/|_|    |_/_/   \_\_____|_|\_\
                                               `
		return logoStyle.Render(logo)
	}

	return w.renderLogoCompact()
}

// renderLogoCompact renders a compact text-based logo.
func (w Welcome) renderLogoCompact() string {
	logoStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true)

	if w.width >= 40 {
		return logoStyle.Render(`+--------------------+
|     shoptalk       |
+--------------------+`)
	}

	return logoStyle.Render("shoptalk - Chat Assistant")
}

// renderVersion renders the version subtitle.
func (w Welcome) renderVersion() string {
	return lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true).
		Render("Chat Assistant v" + w.version)
}

// renderSystemInfo renders model, backend and memory info (3 lines).
func (w Welcome) renderSystemInfo() string {
	labelStyle := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Width(9)

	valueStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true)

	lines := []string{
		labelStyle.Render("Model:  ") + valueStyle.Render(w.modelName),
		labelStyle.Render("Backend:") + valueStyle.Render(w.backendURL),
		labelStyle.Render("Memory: ") + valueStyle.Render(strconv.Itoa(w.memoryDepth)+" exchanges"),
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderSystemInfoCompact renders a single-line system info.
func (w Welcome) renderSystemInfoCompact() string {
	valueStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true)

	return valueStyle.Render(w.modelName) + " | " + w.backendURL
}

// renderQuickStart renders the quick start tips.
func (w Welcome) renderQuickStart() string {
	bulletStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true)

	tipStyle := lipgloss.NewStyle().
		Foreground(styles.TextSecondary)

	tips := []string{
		bulletStyle.Render("-") + tipStyle.Render(" Type a message and press Enter"),
		bulletStyle.Render("-") + tipStyle.Render(" Use /help to see all commands"),
		bulletStyle.Render("-") + tipStyle.Render(" Use /reset to start a fresh session"),
	}

	return lipgloss.JoinVertical(lipgloss.Left, tips...)
}

// renderQuickStartCompact renders a condensed quick start for small terminals.
func (w Welcome) renderQuickStartCompact() string {
	return lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Render("Type /help for commands, Ctrl+C to quit")
}
