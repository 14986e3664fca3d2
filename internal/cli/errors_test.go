// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"testing"

	"shoptalk/internal/backend"
	"shoptalk/internal/config"
)

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"generic error", errors.New("boom"), ExitGeneralError},
		{"usage error", NewUsageError("bad flag"), ExitUsageError},
		{"wrapped usage error", fmt.Errorf("parse: %w", NewUsageError("bad")), ExitUsageError},
		{
			"validation errors",
			config.ValidateErrors{{Field: "chat.model", Message: "unknown"}},
			ExitConfigError,
		},
		{"unreachable", backend.ErrUnreachable, ExitNetworkError},
		{
			"wrapped unreachable",
			fmt.Errorf("search: %w", backend.ErrUnreachable),
			ExitNetworkError,
		},
		{"timeout", backend.ErrTimeout, ExitTimeoutError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.want {
				t.Errorf("GetExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestUsageError_Message(t *testing.T) {
	err := NewUsageError("unknown key %q", "x.y")
	if err.Error() != `unknown key "x.y"` {
		t.Errorf("message = %q", err.Error())
	}
}
