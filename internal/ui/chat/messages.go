// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// This file defines the Bubble Tea message types used by the chat view.
// All message types follow Bubble Tea conventions and are immutable.

package chat

import (
	"time"

	"shoptalk/internal/backend"
	"shoptalk/internal/config"
)

// =============================================================================
// SEARCH MESSAGES
// =============================================================================

// SearchResultMsg delivers a successful backend reply. Gen identifies the
// conversation generation the request was dispatched under; a result from a
// since-reset conversation is discarded.
type SearchResultMsg struct {
	Response *backend.SearchResponse
	Elapsed  time.Duration
	Gen      int
}

// SearchErrorMsg signals a failed backend request.
type SearchErrorMsg struct {
	Err     error
	Elapsed time.Duration
	Gen     int
}

// =============================================================================
// SESSION MESSAGES
// =============================================================================

// SessionEndedMsg confirms a server-side session delete. The delete is
// best-effort; Err is informational only.
type SessionEndedMsg struct {
	Err error
}

// =============================================================================
// CONVERSATION MESSAGES
// =============================================================================

// ClearConversationMsg clears the visible transcript.
type ClearConversationMsg struct{}

// =============================================================================
// CONFIG MESSAGES
// =============================================================================

// ConfigReloadedMsg carries a freshly loaded configuration after the config
// file changed on disk.
type ConfigReloadedMsg struct {
	Config *config.Config
}

// =============================================================================
// ERROR MESSAGES
// =============================================================================

// ErrorMsg displays an error banner to the user.
type ErrorMsg struct {
	Title   string
	Message string
	Tip     string
}

// ErrorDismissMsg dismisses the current error banner.
type ErrorDismissMsg struct{}

// NewErrorMsg creates a new dismissible error message.
func NewErrorMsg(title, message string) ErrorMsg {
	return ErrorMsg{
		Title:   title,
		Message: message,
	}
}
