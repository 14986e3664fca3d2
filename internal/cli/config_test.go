// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"testing"

	"shoptalk/internal/config"
)

func TestApplyConfigKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr bool
		check   func(t *testing.T, cfg *config.Config)
	}{
		{
			name:  "backend url",
			key:   "backend.url",
			value: "http://10.0.0.5:8000",
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Backend.URL != "http://10.0.0.5:8000" {
					t.Errorf("url = %q", cfg.Backend.URL)
				}
			},
		},
		{
			name:  "timeout",
			key:   "backend.timeout_secs",
			value: "60",
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Backend.TimeoutSecs != 60 {
					t.Errorf("timeout = %d", cfg.Backend.TimeoutSecs)
				}
			},
		},
		{
			name:  "model lowercased",
			key:   "chat.model",
			value: "HuggingFace",
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Chat.Model != "huggingface" {
					t.Errorf("model = %q", cfg.Chat.Model)
				}
			},
		},
		{
			name:  "max memory",
			key:   "chat.max_memory",
			value: "15",
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Chat.MaxMemory != 15 {
					t.Errorf("max memory = %d", cfg.Chat.MaxMemory)
				}
			},
		},
		{
			name:  "markdown off",
			key:   "ui.markdown",
			value: "false",
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.UI.Markdown {
					t.Error("markdown should be off")
				}
			},
		},
		{
			name:  "key is case insensitive",
			key:   "UI.Alt_Screen",
			value: "false",
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.UI.AltScreen {
					t.Error("alt screen should be off")
				}
			},
		},
		{name: "unknown key", key: "nope.nothing", value: "x", wantErr: true},
		{name: "non-integer timeout", key: "backend.timeout_secs", value: "soon", wantErr: true},
		{name: "non-integer memory", key: "chat.max_memory", value: "lots", wantErr: true},
		{name: "non-bool markdown", key: "ui.markdown", value: "maybe", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			err := applyConfigKey(cfg, tt.key, tt.value)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("applyConfigKey: %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestApplyConfigKey_BadValueKindIsUsageError(t *testing.T) {
	cfg := config.Default()
	err := applyConfigKey(cfg, "chat.max_memory", "many")
	if err == nil {
		t.Fatal("expected an error")
	}
	if GetExitCode(err) != ExitUsageError {
		t.Errorf("exit code = %d, want %d", GetExitCode(err), ExitUsageError)
	}
}
