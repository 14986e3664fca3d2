// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// INPUT SUBMISSION
// =============================================================================

// submitInput processes the current input line on enter.
func (m Model) submitInput() (tea.Model, tea.Cmd) {
	content := strings.TrimSpace(m.input.Value())

	// Empty input is a no-op
	if content == "" {
		return m, nil
	}

	// One request at a time; additional submits are ignored until the reply
	// lands, and the input keeps whatever was typed
	if m.state == StateWaiting {
		return m, nil
	}

	// Slash commands never go to the backend
	if strings.HasPrefix(content, "/") {
		m.input.Reset()
		return m.handleCommand(content)
	}

	// A fresh submit clears a lingering error banner
	m.lastError = nil

	// Optimistic append: the user's message shows immediately, before the
	// backend answers
	m.conversation.AddUserMessage(content)
	m.input.Reset()

	m.state = StateWaiting
	spinCmd := m.spinner.Start()

	m.syncStatusBar()
	m.updateViewport()
	m.viewport.GotoBottom()

	return m, tea.Batch(m.searchCmd(content), spinCmd)
}
