// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the HTTP client for the shoptalk assistant API.
package backend

// =============================================================================
// MODEL IDENTIFIERS
// =============================================================================

// Model identifiers understood by the backend.
const (
	ModelGemini      = "gemini"
	ModelHuggingFace = "huggingface"
)

// Models lists the selectable backend models, in display order.
var Models = []string{ModelGemini, ModelHuggingFace}

// ValidModel reports whether name is a selectable backend model.
func ValidModel(name string) bool {
	for _, m := range Models {
		if m == name {
			return true
		}
	}
	return false
}

// =============================================================================
// MEMORY DEPTH
// =============================================================================

// MemoryDepths lists the selectable conversation memory depths, in
// exchanges, in display order.
var MemoryDepths = []int{5, 10, 15, 20}

// DefaultMemoryDepth is the memory depth used when none is configured.
const DefaultMemoryDepth = 10

// ValidMemoryDepth reports whether n is a selectable memory depth.
func ValidMemoryDepth(n int) bool {
	for _, d := range MemoryDepths {
		if d == n {
			return true
		}
	}
	return false
}

// =============================================================================
// WIRE TYPES
// =============================================================================

// SearchRequest is the body of POST /search.
type SearchRequest struct {
	// UserInput is the free-text question.
	UserInput string `json:"user_input"`

	// Model selects the backend inference model ("gemini" or "huggingface").
	Model string `json:"model"`

	// SessionID carries the server-issued session, once one exists.
	SessionID string `json:"session_id,omitempty"`

	// MaxMemory is the requested conversation-memory depth in exchanges.
	MaxMemory int `json:"max_memory"`
}

// SearchResponse is the body returned by POST /search.
type SearchResponse struct {
	// Result is the assistant's reply text.
	Result string `json:"result"`

	// SessionID is the server-side conversation context id. The first
	// response establishes the session; later responses may repeat it.
	SessionID string `json:"session_id,omitempty"`

	// HasConversationHistory is true once the server retains prior
	// exchanges for this session.
	HasConversationHistory bool `json:"has_conversation_history,omitempty"`
}
