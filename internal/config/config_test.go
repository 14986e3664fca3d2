// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"shoptalk/internal/backend"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Backend.URL != "http://127.0.0.1:8000" {
		t.Errorf("Backend.URL = %q, want http://127.0.0.1:8000", cfg.Backend.URL)
	}
	if cfg.Backend.TimeoutSecs != 60 {
		t.Errorf("Backend.TimeoutSecs = %d, want 60", cfg.Backend.TimeoutSecs)
	}
	if cfg.Chat.Model != backend.ModelGemini {
		t.Errorf("Chat.Model = %q, want %q", cfg.Chat.Model, backend.ModelGemini)
	}
	if cfg.Chat.MaxMemory != backend.DefaultMemoryDepth {
		t.Errorf("Chat.MaxMemory = %d, want %d", cfg.Chat.MaxMemory, backend.DefaultMemoryDepth)
	}
	if !cfg.UI.Markdown {
		t.Error("UI.Markdown should default to true")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid defaults",
			mutate: func(c *Config) {},
		},
		{
			name:    "bad URL",
			mutate:  func(c *Config) { c.Backend.URL = "not a url" },
			wantErr: "backend.url",
		},
		{
			name:    "timeout too small",
			mutate:  func(c *Config) { c.Backend.TimeoutSecs = 0 },
			wantErr: "backend.timeout_secs",
		},
		{
			name:    "timeout too large",
			mutate:  func(c *Config) { c.Backend.TimeoutSecs = 601 },
			wantErr: "backend.timeout_secs",
		},
		{
			name:    "unknown model",
			mutate:  func(c *Config) { c.Chat.Model = "gpt-虚" },
			wantErr: "chat.model",
		},
		{
			name:    "odd memory depth",
			mutate:  func(c *Config) { c.Chat.MaxMemory = 7 },
			wantErr: "chat.max_memory",
		},
		{
			name:    "unknown theme",
			mutate:  func(c *Config) { c.UI.Theme = "solarized" },
			wantErr: "ui.theme",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Chat.Model = "bogus"
	cfg.Chat.MaxMemory = 3

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}

	errs, ok := err.(ValidateErrors)
	if !ok {
		t.Fatalf("error type = %T, want ValidateErrors", err)
	}
	if len(errs) != 2 {
		t.Errorf("got %d errors, want 2: %v", len(errs), errs)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("SHOPTALK_BACKEND_URL", "http://backend.internal:9000")
	t.Setenv("SHOPTALK_MODEL", backend.ModelHuggingFace)
	t.Setenv("SHOPTALK_MAX_MEMORY", "20")
	t.Setenv("SHOPTALK_TIMEOUT_SECS", "120")
	t.Setenv("SHOPTALK_NO_MARKDOWN", "1")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Backend.URL != "http://backend.internal:9000" {
		t.Errorf("Backend.URL = %q", cfg.Backend.URL)
	}
	if cfg.Chat.Model != backend.ModelHuggingFace {
		t.Errorf("Chat.Model = %q", cfg.Chat.Model)
	}
	if cfg.Chat.MaxMemory != 20 {
		t.Errorf("Chat.MaxMemory = %d", cfg.Chat.MaxMemory)
	}
	if cfg.Backend.TimeoutSecs != 120 {
		t.Errorf("Backend.TimeoutSecs = %d", cfg.Backend.TimeoutSecs)
	}
	if cfg.UI.Markdown {
		t.Error("UI.Markdown should be disabled")
	}
}

func TestApplyEnvOverridesIgnoresGarbage(t *testing.T) {
	t.Setenv("SHOPTALK_MAX_MEMORY", "lots")
	t.Setenv("SHOPTALK_TIMEOUT_SECS", "")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Chat.MaxMemory != backend.DefaultMemoryDepth {
		t.Errorf("Chat.MaxMemory = %d, want default", cfg.Chat.MaxMemory)
	}
	if cfg.Backend.TimeoutSecs != 60 {
		t.Errorf("Backend.TimeoutSecs = %d, want 60", cfg.Backend.TimeoutSecs)
	}
}

func TestLoadTOMLPartial(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[backend]
url = "http://10.0.0.2:8000"

[chat]
model = "huggingface"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}

	if cfg.Backend.URL != "http://10.0.0.2:8000" {
		t.Errorf("Backend.URL = %q", cfg.Backend.URL)
	}
	if cfg.Chat.Model != backend.ModelHuggingFace {
		t.Errorf("Chat.Model = %q", cfg.Chat.Model)
	}
	// Unset fields come from defaults
	if cfg.Backend.TimeoutSecs != 60 {
		t.Errorf("Backend.TimeoutSecs = %d, want default 60", cfg.Backend.TimeoutSecs)
	}
	if cfg.Chat.MaxMemory != backend.DefaultMemoryDepth {
		t.Errorf("Chat.MaxMemory = %d, want default", cfg.Chat.MaxMemory)
	}
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	content := `{"backend": {"url": "http://json.example:8000", "timeout_secs": 30}}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}

	if cfg.Backend.URL != "http://json.example:8000" {
		t.Errorf("Backend.URL = %q", cfg.Backend.URL)
	}
	if cfg.Backend.TimeoutSecs != 30 {
		t.Errorf("Backend.TimeoutSecs = %d, want 30", cfg.Backend.TimeoutSecs)
	}
}

func TestLoadInvalidFileRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[chat]
max_memory = 7
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFromPath(path); err == nil {
		t.Error("expected validation error for max_memory = 7")
	}
}

func TestSaveAndReloadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := Default()
	cfg.Backend.URL = "http://round.trip:8000"
	cfg.Chat.MaxMemory = 15

	if err := SaveTOML(cfg, path); err != nil {
		t.Fatalf("SaveTOML() error: %v", err)
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}

	if loaded.Backend.URL != cfg.Backend.URL {
		t.Errorf("Backend.URL = %q, want %q", loaded.Backend.URL, cfg.Backend.URL)
	}
	if loaded.Chat.MaxMemory != 15 {
		t.Errorf("Chat.MaxMemory = %d, want 15", loaded.Chat.MaxMemory)
	}
}

func TestBackendClientConfig(t *testing.T) {
	cfg := Default()
	cfg.Backend.TimeoutSecs = 30
	cfg.Chat.Model = backend.ModelHuggingFace

	cc := cfg.BackendClientConfig()
	if cc.BaseURL != cfg.Backend.URL {
		t.Errorf("BaseURL = %q", cc.BaseURL)
	}
	if cc.Timeout.Seconds() != 30 {
		t.Errorf("Timeout = %v, want 30s", cc.Timeout)
	}
	if cc.DefaultModel != backend.ModelHuggingFace {
		t.Errorf("DefaultModel = %q", cc.DefaultModel)
	}
}

func TestGlobalSetAndReset(t *testing.T) {
	ResetGlobalForTesting()
	defer ResetGlobalForTesting()

	custom := Default()
	custom.Backend.URL = "http://custom.example:8000"
	SetGlobal(custom)

	if got := Global(); got.Backend.URL != "http://custom.example:8000" {
		t.Errorf("Global().Backend.URL = %q", got.Backend.URL)
	}
}

func TestIsConfigFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/home/u/.shoptalk/config.toml", true},
		{"/home/u/.shoptalk/config.json", true},
		{"/home/u/.shoptalk/config.toml.swp", false},
		{"/home/u/.shoptalk/other.toml", false},
	}

	for _, tt := range tests {
		if got := isConfigFile(tt.path); got != tt.want {
			t.Errorf("isConfigFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
