// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"shoptalk/internal/backend"
)

// =============================================================================
// SLASH COMMANDS
// =============================================================================

// CommandHandler processes one slash command. args excludes the command name.
type CommandHandler func(m Model, args []string) (tea.Model, tea.Cmd)

// commandHandlers maps command names (and aliases) to handlers.
var commandHandlers = map[string]CommandHandler{
	"help":    cmdHelp,
	"h":       cmdHelp,
	"?":       cmdHelp,
	"quit":    cmdQuit,
	"q":       cmdQuit,
	"exit":    cmdQuit,
	"clear":   cmdClear,
	"c":       cmdClear,
	"reset":   cmdReset,
	"new":     cmdReset,
	"r":       cmdReset,
	"model":   cmdModel,
	"m":       cmdModel,
	"memory":  cmdMemory,
	"mem":     cmdMemory,
	"status":  cmdStatus,
	"save":    cmdSave,
	"export":  cmdSave,
	"version": cmdVersion,
	"ver":     cmdVersion,
}

// handleCommand dispatches a slash command line.
func (m Model) handleCommand(line string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(strings.TrimPrefix(line, "/"))
	if len(parts) == 0 {
		return m, nil
	}

	name := strings.ToLower(parts[0])
	handler, ok := commandHandlers[name]
	if !ok {
		m.conversation.AddSystemMessage(fmt.Sprintf("Unknown command: /%s (try /help)", name))
		m.updateViewport()
		m.viewport.GotoBottom()
		return m, nil
	}
	return handler(m, parts[1:])
}

// =============================================================================
// COMMAND HANDLERS
// =============================================================================

func cmdHelp(m Model, _ []string) (tea.Model, tea.Cmd) {
	m.showHelp = true
	return m, nil
}

func cmdQuit(m Model, _ []string) (tea.Model, tea.Cmd) {
	return m, tea.Sequence(m.endSessionCmd(), tea.Quit)
}

// cmdClear wipes the local transcript only. The server session and its
// memory survive; use /reset for a clean slate.
func cmdClear(m Model, _ []string) (tea.Model, tea.Cmd) {
	m.conversation.ClearHistory()
	m.lastError = nil
	if m.state == StateError {
		m.state = StateReady
	}
	m.syncStatusBar()
	m.updateViewport()
	return m, nil
}

// cmdReset starts a fresh conversation: local transcript cleared and the
// server session deleted. The memory depth preference is kept.
func cmdReset(m Model, _ []string) (tea.Model, tea.Cmd) {
	endCmd := m.endSessionCmd()

	m.conversation.ClearHistory()
	m.session.Reset()
	m.lastError = nil

	// Invalidate any in-flight request; its late reply would otherwise
	// re-adopt the session id we just deleted.
	m.generation++
	if m.state != StateReady {
		m.spinner.Stop()
		m.state = StateReady
	}

	m.conversation.AddSystemMessage("Started a new conversation.")
	m.syncStatusBar()
	m.updateViewport()
	m.viewport.GotoBottom()
	return m, endCmd
}

func cmdModel(m Model, args []string) (tea.Model, tea.Cmd) {
	if len(args) == 0 {
		m.conversation.AddSystemMessage(fmt.Sprintf(
			"Current model: %s (available: %s)",
			m.modelName, strings.Join(backend.Models, ", ")))
		m.updateViewport()
		m.viewport.GotoBottom()
		return m, nil
	}

	name := strings.ToLower(args[0])
	if !backend.ValidModel(name) {
		m.conversation.AddSystemMessage(fmt.Sprintf(
			"Unknown model %q. Available: %s",
			name, strings.Join(backend.Models, ", ")))
		m.updateViewport()
		m.viewport.GotoBottom()
		return m, nil
	}

	m.modelName = name
	m.conversation.AddSystemMessage("Switched model to " + name + ". Takes effect on the next message.")
	m.syncStatusBar()
	m.updateViewport()
	m.viewport.GotoBottom()
	return m, nil
}

func cmdMemory(m Model, args []string) (tea.Model, tea.Cmd) {
	if len(args) == 0 {
		m.conversation.AddSystemMessage(fmt.Sprintf(
			"Memory depth: %d exchanges (choose from %s)",
			m.session.MaxMemory(), memoryChoices()))
		m.updateViewport()
		m.viewport.GotoBottom()
		return m, nil
	}

	n, err := strconv.Atoi(args[0])
	if err != nil || !m.session.SetMaxMemory(n) {
		m.conversation.AddSystemMessage(fmt.Sprintf(
			"Invalid memory depth %q. Choose from %s.", args[0], memoryChoices()))
		m.updateViewport()
		m.viewport.GotoBottom()
		return m, nil
	}

	m.conversation.AddSystemMessage(fmt.Sprintf("Memory depth set to %d exchanges.", n))
	m.syncStatusBar()
	m.updateViewport()
	m.viewport.GotoBottom()
	return m, nil
}

func cmdStatus(m Model, _ []string) (tea.Model, tea.Cmd) {
	snap := m.session.Snapshot()
	sessionLine := "none"
	if snap.SessionID != "" {
		sessionLine = fmt.Sprintf("%s (%d exchanges)", snap.SessionID, snap.Exchanges)
	}

	m.conversation.AddSystemMessage(fmt.Sprintf(
		"Model: %s | Memory: %d | Session: %s | Backend: %s",
		m.modelName, snap.MaxMemory, sessionLine, m.client.GetConfig().BaseURL))
	m.updateViewport()
	m.viewport.GotoBottom()
	return m, nil
}

func cmdSave(m Model, _ []string) (tea.Model, tea.Cmd) {
	if m.conversation.IsEmpty() {
		m.conversation.AddSystemMessage("Nothing to save yet.")
		m.updateViewport()
		m.viewport.GotoBottom()
		return m, nil
	}

	path, err := exportTranscript(m.conversation)
	if err != nil {
		m.conversation.AddSystemMessage("Save failed: " + err.Error())
	} else {
		m.lastExported = path
		m.conversation.AddSystemMessage("Transcript saved to " + path)
	}
	m.updateViewport()
	m.viewport.GotoBottom()
	return m, nil
}

func cmdVersion(m Model, _ []string) (tea.Model, tea.Cmd) {
	m.conversation.AddSystemMessage("shoptalk " + m.version)
	m.updateViewport()
	m.viewport.GotoBottom()
	return m, nil
}

// memoryChoices renders the allowed memory depths for messages.
func memoryChoices() string {
	depths := backend.MemoryDepths
	parts := make([]string, len(depths))
	for i, d := range depths {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, ", ")
}
