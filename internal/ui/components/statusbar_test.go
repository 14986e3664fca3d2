// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"shoptalk/internal/ui/styles"
)

func TestStatusString(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusReady, "Ready"},
		{StatusWaiting, "Waiting..."},
		{StatusError, "Error"},
		{Status(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestStatusIcon(t *testing.T) {
	if StatusReady.Icon() != styles.StatusIndicators.Success {
		t.Error("ready icon should be the success indicator")
	}
	if StatusError.Icon() != styles.StatusIndicators.Error {
		t.Error("error icon should be the error indicator")
	}
}

func TestStatusBarWideView(t *testing.T) {
	theme := styles.NewTheme()
	bar := NewStatusBar(theme)
	bar.SetWidth(100)
	bar.SetModel("gemini")
	bar.SetMemoryDepth(10)
	bar.SetSession(true, 3)
	bar.SetStatus(StatusReady)

	view := bar.View()
	for _, want := range []string{"gemini", "memory: 10", "3 exchanges", "Ready"} {
		if !strings.Contains(view, want) {
			t.Errorf("wide view should contain %q:\n%s", want, view)
		}
	}
}

func TestStatusBarNoSession(t *testing.T) {
	theme := styles.NewTheme()
	bar := NewStatusBar(theme)
	bar.SetWidth(100)
	bar.SetModel("gemini")

	if !strings.Contains(bar.View(), "no session") {
		t.Error("wide view should show 'no session' before the first exchange")
	}
}

func TestStatusBarNarrowView(t *testing.T) {
	theme := styles.NewTheme()
	bar := NewStatusBar(theme)
	bar.SetWidth(40)
	bar.SetModel("gemini")
	bar.SetSession(true, 2)

	view := bar.View()
	if !strings.Contains(view, "[gemini]") {
		t.Errorf("narrow view should contain the bracketed model name:\n%s", view)
	}
	if !strings.Contains(view, "S:2") {
		t.Errorf("narrow view should contain the compact session counter:\n%s", view)
	}
}

func TestStatusBarSingularExchange(t *testing.T) {
	theme := styles.NewTheme()
	bar := NewStatusBar(theme)
	bar.SetWidth(100)
	bar.SetSession(true, 1)

	view := bar.View()
	if !strings.Contains(view, "1 exchange") || strings.Contains(view, "1 exchanges") {
		t.Errorf("one exchange should render without plural s:\n%s", view)
	}
}
