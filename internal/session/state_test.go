// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session tracks the client side of a backend conversation session.
package session

import (
	"testing"

	"shoptalk/internal/backend"
)

func TestNew_InvalidDepthFallsBack(t *testing.T) {
	s := New(7)
	if s.MaxMemory() != backend.DefaultMemoryDepth {
		t.Errorf("MaxMemory = %d, want default %d", s.MaxMemory(), backend.DefaultMemoryDepth)
	}

	s = New(15)
	if s.MaxMemory() != 15 {
		t.Errorf("MaxMemory = %d, want 15", s.MaxMemory())
	}
}

func TestState_AdoptResponse(t *testing.T) {
	s := New(10)

	if s.HasSession() {
		t.Error("New state should have no session")
	}

	// First response establishes the session
	s.AdoptResponse(&backend.SearchResponse{Result: "hi", SessionID: "abc123"})

	if got := s.SessionID(); got != "abc123" {
		t.Errorf("SessionID = %q, want 'abc123'", got)
	}
	if s.HasHistory() {
		t.Error("HasHistory should be false until the backend says otherwise")
	}

	// Later responses may update the history flag without a session id
	s.AdoptResponse(&backend.SearchResponse{Result: "more", HasConversationHistory: true})

	if got := s.SessionID(); got != "abc123" {
		t.Errorf("SessionID after second response = %q, want 'abc123'", got)
	}
	if !s.HasHistory() {
		t.Error("HasHistory should be true after the backend reports history")
	}
	if got := s.Exchanges(); got != 2 {
		t.Errorf("Exchanges = %d, want 2", got)
	}
}

func TestState_AdoptResponse_Nil(t *testing.T) {
	s := New(10)
	s.AdoptResponse(nil)

	if s.HasSession() || s.Exchanges() != 0 {
		t.Error("Nil response should not change state")
	}
}

func TestState_Reset(t *testing.T) {
	s := New(20)
	s.AdoptResponse(&backend.SearchResponse{SessionID: "abc123", HasConversationHistory: true})

	s.Reset()

	if s.HasSession() {
		t.Error("Session id should be cleared by Reset")
	}
	if s.HasHistory() {
		t.Error("History flag should be cleared by Reset")
	}
	if s.Exchanges() != 0 {
		t.Error("Exchange count should be cleared by Reset")
	}
	if s.MaxMemory() != 20 {
		t.Errorf("MaxMemory = %d after Reset, want 20 (preference survives)", s.MaxMemory())
	}

	// Idempotent
	s.Reset()
	if s.HasSession() {
		t.Error("Reset should be idempotent")
	}
}

func TestState_SetMaxMemory(t *testing.T) {
	s := New(10)

	if s.SetMaxMemory(7) {
		t.Error("SetMaxMemory(7) should be rejected")
	}
	if s.MaxMemory() != 10 {
		t.Errorf("MaxMemory = %d after rejected set, want 10", s.MaxMemory())
	}

	if !s.SetMaxMemory(5) {
		t.Error("SetMaxMemory(5) should be accepted")
	}
	if s.MaxMemory() != 5 {
		t.Errorf("MaxMemory = %d, want 5", s.MaxMemory())
	}
}

func TestState_Snapshot(t *testing.T) {
	s := New(15)
	s.AdoptResponse(&backend.SearchResponse{SessionID: "abc123", HasConversationHistory: true})

	status := s.Snapshot()

	if status.SessionID != "abc123" {
		t.Errorf("Snapshot.SessionID = %q, want 'abc123'", status.SessionID)
	}
	if !status.HasHistory {
		t.Error("Snapshot.HasHistory should be true")
	}
	if status.MaxMemory != 15 {
		t.Errorf("Snapshot.MaxMemory = %d, want 15", status.MaxMemory)
	}
	if status.StartedAt.IsZero() {
		t.Error("Snapshot.StartedAt should be set once a session exists")
	}
}
