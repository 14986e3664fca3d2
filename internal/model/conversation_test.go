// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"strings"
	"testing"
)

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestNewUserMessage(t *testing.T) {
	msg := NewUserMessage("Hello")

	if msg.Role != RoleUser {
		t.Errorf("Role = %q, want 'user'", msg.Role)
	}

	if msg.Content != "Hello" {
		t.Errorf("Content = %q, want 'Hello'", msg.Content)
	}

	if !strings.HasPrefix(msg.ID, "msg_") {
		t.Errorf("ID = %q, want 'msg_' prefix", msg.ID)
	}
}

func TestNewAssistantMessage(t *testing.T) {
	msg := NewAssistantMessage("hi there")

	if msg.Role != RoleAssistant {
		t.Errorf("Role = %q, want 'assistant'", msg.Role)
	}

	if msg.Content != "hi there" {
		t.Errorf("Content = %q, want 'hi there'", msg.Content)
	}
}

func TestMessage_UniqueIDs(t *testing.T) {
	a := NewUserMessage("a")
	b := NewUserMessage("b")

	if a.ID == b.ID {
		t.Errorf("Messages share ID %q, want unique IDs", a.ID)
	}
}

func TestRole_DisplayName(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{RoleUser, "You"},
		{RoleAssistant, "Assistant"},
		{RoleSystem, "System"},
		{Role("other"), "other"},
	}

	for _, tc := range tests {
		if got := tc.role.DisplayName(); got != tc.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tc.role, got, tc.want)
		}
	}
}

func TestMessage_Preview(t *testing.T) {
	tests := []struct {
		name    string
		content string
		maxLen  int
		want    string
	}{
		{"short content", "hello", 10, "hello"},
		{"exact length", "hello", 5, "hello"},
		{"truncated", "hello world", 8, "hello..."},
		{"unicode safe", "héllo wörld", 8, "héllo..."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			msg := NewUserMessage(tc.content)
			if got := msg.Preview(tc.maxLen); got != tc.want {
				t.Errorf("Preview(%d) = %q, want %q", tc.maxLen, got, tc.want)
			}
		})
	}
}

// =============================================================================
// CONVERSATION TESTS
// =============================================================================

func TestNewConversation(t *testing.T) {
	conv := NewConversation()

	if !conv.IsEmpty() {
		t.Error("New conversation should be empty")
	}

	if conv.MessageCount() != 0 {
		t.Errorf("MessageCount = %d, want 0", conv.MessageCount())
	}

	if !strings.HasPrefix(conv.ID, "conv_") {
		t.Errorf("ID = %q, want 'conv_' prefix", conv.ID)
	}
}

func TestConversation_AppendOrder(t *testing.T) {
	conv := NewConversation()
	conv.AddUserMessage("first")
	conv.AddAssistantMessage("second")
	conv.AddUserMessage("third")

	if conv.MessageCount() != 3 {
		t.Fatalf("MessageCount = %d, want 3", conv.MessageCount())
	}

	// Insertion order is display order
	wantContents := []string{"first", "second", "third"}
	for i, want := range wantContents {
		if conv.Messages[i].Content != want {
			t.Errorf("Messages[%d].Content = %q, want %q", i, conv.Messages[i].Content, want)
		}
	}
}

func TestConversation_GetLastMessage(t *testing.T) {
	conv := NewConversation()

	if conv.GetLastMessage() != nil {
		t.Error("GetLastMessage on empty conversation should be nil")
	}

	conv.AddUserMessage("question")
	conv.AddAssistantMessage("answer")

	last := conv.GetLastMessage()
	if last == nil || last.Content != "answer" {
		t.Errorf("GetLastMessage = %v, want assistant 'answer'", last)
	}

	lastUser := conv.GetLastUserMessage()
	if lastUser == nil || lastUser.Content != "question" {
		t.Errorf("GetLastUserMessage = %v, want user 'question'", lastUser)
	}
}

func TestConversation_ClearHistory(t *testing.T) {
	conv := NewConversation()
	conv.AddUserMessage("hello")
	conv.AddAssistantMessage("hi there")

	conv.ClearHistory()

	if !conv.IsEmpty() {
		t.Error("Conversation should be empty after ClearHistory")
	}

	if conv.GetTitle() != "New Conversation" {
		t.Errorf("Title after clear = %q, want default", conv.GetTitle())
	}
}

func TestConversation_TitleFromFirstUserMessage(t *testing.T) {
	conv := NewConversation()
	conv.AddSystemMessage("notice")
	conv.AddUserMessage("what laptops do you recommend?")

	if conv.GetTitle() != "what laptops do you recommend?" {
		t.Errorf("Title = %q, want first user message", conv.GetTitle())
	}
}

func TestConversation_PruneOldMessages(t *testing.T) {
	conv := NewConversation()
	conv.AddSystemMessage("kept")

	for i := 0; i < MaxMessages+10; i++ {
		conv.AddUserMessage("filler")
	}

	if conv.MessageCount() != MaxMessages+1 {
		t.Errorf("MessageCount = %d, want %d", conv.MessageCount(), MaxMessages+1)
	}

	if conv.Messages[0].Role != RoleSystem {
		t.Error("System message should survive pruning")
	}
}
