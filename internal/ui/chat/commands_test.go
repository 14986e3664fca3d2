// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"
	"testing"

	"shoptalk/internal/backend"
	"shoptalk/internal/model"
)

func lastSystemMessage(t *testing.T, m Model) string {
	t.Helper()
	last := m.Conversation().GetLastMessage()
	if last == nil {
		t.Fatal("no messages in transcript")
	}
	if last.Role != model.RoleSystem {
		t.Fatalf("Role = %v, want system", last.Role)
	}
	return last.Content
}

func TestHandleCommand_Unknown(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.handleCommand("/bogus")
	got := updated.(Model)

	content := lastSystemMessage(t, got)
	if !strings.Contains(content, "Unknown command") {
		t.Errorf("content = %q", content)
	}
}

func TestCommandClear_KeepsSession(t *testing.T) {
	m := newTestModel(t)
	m.conversation.AddUserMessage("hi")
	m.conversation.AddAssistantMessage("hello")
	m.session.AdoptResponse(&backend.SearchResponse{SessionID: "sess-1", HasConversationHistory: true})

	updated, _ := m.handleCommand("/clear")
	got := updated.(Model)

	if !got.Conversation().IsEmpty() {
		t.Error("transcript should be empty after /clear")
	}
	if got.Session().SessionID() != "sess-1" {
		t.Error("/clear must not drop the server session")
	}
}

func TestCommandReset_DropsSessionKeepsMemory(t *testing.T) {
	m := newTestModel(t)
	m.session.SetMaxMemory(15)
	m.conversation.AddUserMessage("hi")
	m.session.AdoptResponse(&backend.SearchResponse{SessionID: "sess-1", HasConversationHistory: true})

	updated, cmd := m.handleCommand("/reset")
	got := updated.(Model)

	if cmd == nil {
		t.Error("/reset should issue the session delete command")
	}
	if got.Session().HasSession() {
		t.Error("session should be cleared")
	}
	if got.Session().MaxMemory() != 15 {
		t.Errorf("MaxMemory = %d, want 15 (preference survives reset)", got.Session().MaxMemory())
	}
	// Only the "new conversation" notice remains
	if got.Conversation().MessageCount() != 1 {
		t.Errorf("MessageCount = %d, want 1", got.Conversation().MessageCount())
	}
}

func TestCommandModel_Switch(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.handleCommand("/model huggingface")
	got := updated.(Model)

	if got.modelName != backend.ModelHuggingFace {
		t.Errorf("modelName = %q, want huggingface", got.modelName)
	}
}

func TestCommandModel_Invalid(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.handleCommand("/model gpt4")
	got := updated.(Model)

	if got.modelName != backend.ModelGemini {
		t.Errorf("modelName = %q, should be unchanged", got.modelName)
	}
	content := lastSystemMessage(t, got)
	if !strings.Contains(content, "Unknown model") {
		t.Errorf("content = %q", content)
	}
}

func TestCommandModel_ShowCurrent(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.handleCommand("/model")
	got := updated.(Model)

	content := lastSystemMessage(t, got)
	if !strings.Contains(content, "gemini") || !strings.Contains(content, "huggingface") {
		t.Errorf("content = %q", content)
	}
}

func TestCommandMemory_Set(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.handleCommand("/memory 20")
	got := updated.(Model)

	if got.Session().MaxMemory() != 20 {
		t.Errorf("MaxMemory = %d, want 20", got.Session().MaxMemory())
	}
}

func TestCommandMemory_Invalid(t *testing.T) {
	m := newTestModel(t)

	for _, arg := range []string{"7", "0", "-5", "abc"} {
		updated, _ := m.handleCommand("/memory " + arg)
		got := updated.(Model)

		if got.Session().MaxMemory() != backend.DefaultMemoryDepth {
			t.Errorf("arg %q: MaxMemory = %d, should be unchanged", arg, got.Session().MaxMemory())
		}
		m = got
	}
}

func TestCommandStatus(t *testing.T) {
	m := newTestModel(t)
	m.session.AdoptResponse(&backend.SearchResponse{SessionID: "sess-7"})

	updated, _ := m.handleCommand("/status")
	got := updated.(Model)

	content := lastSystemMessage(t, got)
	for _, want := range []string{"gemini", "sess-7"} {
		if !strings.Contains(content, want) {
			t.Errorf("content = %q, missing %q", content, want)
		}
	}
}

func TestCommandAliases(t *testing.T) {
	aliases := map[string]string{
		"h":   "help",
		"?":   "help",
		"c":   "clear",
		"r":   "reset",
		"new": "reset",
		"m":   "model",
		"mem": "memory",
		"q":   "quit",
		"ver": "version",
	}

	for alias, canonical := range aliases {
		if _, ok := commandHandlers[alias]; !ok {
			t.Errorf("alias %q (for %s) not registered", alias, canonical)
		}
	}
}

func TestCommandHelp_TogglesOverlay(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.handleCommand("/help")
	got := updated.(Model)

	if !got.showHelp {
		t.Error("showHelp should be set")
	}
}

func TestCommandVersion(t *testing.T) {
	m := newTestModel(t)
	m.SetVersion("1.2.3")

	updated, _ := m.handleCommand("/version")
	got := updated.(Model)

	content := lastSystemMessage(t, got)
	if !strings.Contains(content, "1.2.3") {
		t.Errorf("content = %q", content)
	}
}
