// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"shoptalk/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT - Bottom status bar
// =============================================================================

// Status represents the current application status.
type Status int

const (
	StatusReady Status = iota
	StatusWaiting
	StatusError
)

// String returns the display string for the status.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusWaiting:
		return "Waiting..."
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Icon returns an icon for the status.
// ACCESSIBILITY: Uses distinct shapes alongside colors for colorblind users.
func (s Status) Icon() string {
	switch s {
	case StatusReady:
		return styles.StatusIndicators.Success
	case StatusWaiting:
		return styles.StatusIndicators.Pending
	case StatusError:
		return styles.StatusIndicators.Error
	default:
		return "?"
	}
}

// StatusBar represents the bottom status bar.
type StatusBar struct {
	ModelName     string // Current inference model
	MemoryDepth   int    // Conversation memory depth in exchanges
	SessionActive bool   // Whether a server session exists
	Exchanges     int    // Completed exchanges this session
	Status        Status // Current status
	Width         int    // Available width
	ShowShortcuts bool   // Show keyboard shortcuts
	theme         *styles.Theme
}

// NewStatusBar creates a new StatusBar component.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		ModelName:     "",
		MemoryDepth:   0,
		Status:        StatusReady,
		Width:         80,
		ShowShortcuts: true,
		theme:         theme,
	}
}

// SetWidth updates the status bar width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetStatus updates the current status.
func (s *StatusBar) SetStatus(status Status) {
	s.Status = status
}

// SetModel updates the model name.
func (s *StatusBar) SetModel(name string) {
	s.ModelName = name
}

// SetMemoryDepth updates the memory depth display.
func (s *StatusBar) SetMemoryDepth(depth int) {
	s.MemoryDepth = depth
}

// SetSession updates the session indicator.
func (s *StatusBar) SetSession(active bool, exchanges int) {
	s.SessionActive = active
	s.Exchanges = exchanges
}

// View renders the status bar.
func (s *StatusBar) View() string {
	if s.Width < 60 {
		return s.viewNarrow()
	}
	return s.viewWide()
}

// viewNarrow renders a compact status bar for narrow terminals.
// Format: [model] S:3 [OK]
func (s *StatusBar) viewNarrow() string {
	parts := []string{}

	if s.ModelName != "" {
		modelStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary)
		parts = append(parts, modelStyle.Render("["+s.ModelName+"]"))
	}

	if s.SessionActive {
		sessStyle := lipgloss.NewStyle().Foreground(styles.Cyan)
		parts = append(parts, sessStyle.Render("S:"+strconv.Itoa(s.Exchanges)))
	}

	statusStyle := s.getStatusStyle()
	parts = append(parts, statusStyle.Render(s.Status.Icon()))

	result := strings.Join(parts, " ")

	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary).
		Width(s.Width).
		Render(result)
}

// viewWide renders a full status bar for wide terminals.
// Format: model | memory: 10 | session: 3 exchanges | Ready    ^C quit /help cmds
func (s *StatusBar) viewWide() string {
	separator := lipgloss.NewStyle().
		Foreground(styles.Overlay).
		Render(" | ")

	leftParts := []string{}

	if s.ModelName != "" {
		modelStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary).Bold(true)
		leftParts = append(leftParts, modelStyle.Render(s.ModelName))
	}

	if s.MemoryDepth > 0 {
		memStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
		leftParts = append(leftParts, memStyle.Render("memory: "+strconv.Itoa(s.MemoryDepth)))
	}

	sessStyle := lipgloss.NewStyle().Foreground(styles.Cyan)
	if s.SessionActive {
		label := "session: " + strconv.Itoa(s.Exchanges) + " exchange"
		if s.Exchanges != 1 {
			label += "s"
		}
		leftParts = append(leftParts, sessStyle.Render(label))
	} else {
		leftParts = append(leftParts, lipgloss.NewStyle().Foreground(styles.TextMuted).Render("no session"))
	}

	statusStyle := s.getStatusStyle()
	leftParts = append(leftParts, statusStyle.Render(s.Status.String()))

	leftSection := strings.Join(leftParts, separator)

	// Right section: keyboard shortcuts
	rightSection := ""
	if s.ShowShortcuts {
		rightSection = s.renderShortcuts()
	}

	leftWidth := lipgloss.Width(leftSection)
	rightWidth := lipgloss.Width(rightSection)

	spacing := s.Width - leftWidth - rightWidth - 2
	if spacing < 1 {
		spacing = 1
	}

	result := leftSection + strings.Repeat(" ", spacing) + rightSection

	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary).
		Padding(0, 1).
		Width(s.Width).
		Render(result)
}

// renderShortcuts renders keyboard shortcut hints.
func (s *StatusBar) renderShortcuts() string {
	keyStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted)

	shortcuts := []string{
		keyStyle.Render("/help") + descStyle.Render(" cmds"),
		keyStyle.Render("^C") + descStyle.Render(" quit"),
	}

	return strings.Join(shortcuts, " ")
}

// getStatusStyle returns the style for the current status.
// ACCESSIBILITY: Uses high contrast colors with bold for colorblind users.
func (s *StatusBar) getStatusStyle() lipgloss.Style {
	switch s.Status {
	case StatusReady:
		return lipgloss.NewStyle().Foreground(styles.SuccessHighContrast).Bold(true)
	case StatusWaiting:
		return lipgloss.NewStyle().Foreground(styles.WarningHighContrast).Bold(true)
	case StatusError:
		return lipgloss.NewStyle().Foreground(styles.ErrorHighContrast).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(styles.TextMuted)
	}
}
