// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session tracks the client side of a backend conversation session.
package session

import (
	"sync"
	"time"

	"shoptalk/internal/backend"
)

// =============================================================================
// SESSION STATE
// =============================================================================

// State tracks the backend-issued session id and related settings.
//
// The zero value is not usable; create with New. All methods are safe for
// concurrent use, though the TUI only touches it from its update loop.
type State struct {
	mu sync.Mutex

	// Backend-issued session. Empty until the first response carries one.
	sessionID  string
	hasHistory bool

	// Requested conversation-memory depth in exchanges.
	maxMemory int

	// Bookkeeping for display.
	startedAt time.Time
	exchanges int
}

// New creates session state with the given memory depth. Depths outside the
// selectable set fall back to the default.
func New(maxMemory int) *State {
	if !backend.ValidMemoryDepth(maxMemory) {
		maxMemory = backend.DefaultMemoryDepth
	}
	return &State{maxMemory: maxMemory}
}

// =============================================================================
// ACCESSORS
// =============================================================================

// SessionID returns the backend session id, or "" when no session exists.
func (s *State) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID
}

// HasSession reports whether the backend has issued a session id.
func (s *State) HasSession() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID != ""
}

// HasHistory reports whether the backend retains prior exchanges.
func (s *State) HasHistory() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasHistory
}

// MaxMemory returns the configured memory depth in exchanges.
func (s *State) MaxMemory() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxMemory
}

// Exchanges returns the number of completed exchanges this session.
func (s *State) Exchanges() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exchanges
}

// =============================================================================
// MUTATION
// =============================================================================

// SetMaxMemory updates the memory depth. Returns false (and leaves the
// depth unchanged) when n is not one of the selectable depths. Pure local
// state: it takes effect on the next submission.
func (s *State) SetMaxMemory(n int) bool {
	if !backend.ValidMemoryDepth(n) {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maxMemory = n
	return true
}

// AdoptResponse merges session fields from a backend response. The first
// response carrying a session id establishes the session; any response may
// update the history flag.
func (s *State) AdoptResponse(resp *backend.SearchResponse) {
	if resp == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if resp.SessionID != "" {
		if s.sessionID == "" {
			s.startedAt = time.Now()
		}
		s.sessionID = resp.SessionID
	}
	s.hasHistory = resp.HasConversationHistory
	s.exchanges++
}

// Reset clears the session id and history flag. The memory depth survives a
// reset: it is a user preference, not session state. Idempotent.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessionID = ""
	s.hasHistory = false
	s.startedAt = time.Time{}
	s.exchanges = 0
}

// =============================================================================
// STATUS SNAPSHOT
// =============================================================================

// Status is a point-in-time snapshot of the session for display.
type Status struct {
	SessionID  string
	HasHistory bool
	MaxMemory  int
	Exchanges  int
	StartedAt  time.Time
}

// Snapshot returns the current session status.
func (s *State) Snapshot() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{
		SessionID:  s.sessionID,
		HasHistory: s.hasHistory,
		MaxMemory:  s.maxMemory,
		Exchanges:  s.exchanges,
		StartedAt:  s.startedAt,
	}
}
