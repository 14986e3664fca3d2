// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// doctor.go - environment diagnostics for the shoptalk CLI.
//
// Runs a small battery of checks (config, config dir, backend
// reachability, chat settings) and reports pass/warn/fail for each.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"shoptalk/internal/backend"
	"shoptalk/internal/config"
	"shoptalk/internal/ui/styles"
)

const doctorTimeout = 3 * time.Second

// HandleDoctor handles the "doctor" command.
func HandleDoctor(args Args) {
	data := runDoctorChecks()

	if args.JSON {
		if err := NewJSONResponse("doctor", data).Print(); err != nil {
			os.Exit(ExitGeneralError)
		}
		if !data.Summary.Healthy {
			os.Exit(ExitGeneralError)
		}
		return
	}

	fmt.Println(welcomeStyle.Render("shoptalk doctor"))
	fmt.Println()
	for _, check := range data.Checks {
		fmt.Printf("  %s\n", renderDoctorCheck(check))
		if check.Fix != "" {
			fmt.Printf("      %s\n", infoStyle.Render("fix: "+check.Fix))
		}
	}
	fmt.Println()
	fmt.Printf("  %d passed, %d warnings, %d failed\n",
		data.Summary.Passed, data.Summary.Warned, data.Summary.Failed)

	if !data.Summary.Healthy {
		os.Exit(ExitGeneralError)
	}
}

func renderDoctorCheck(check DoctorCheck) string {
	line := fmt.Sprintf("%s: %s", check.Name, check.Message)
	switch check.Status {
	case "pass":
		return styles.RenderSuccess(line)
	case "warn":
		return styles.RenderWarning(line)
	default:
		return styles.RenderError(line)
	}
}

func runDoctorChecks() DoctorData {
	checks := []DoctorCheck{
		checkConfig(),
		checkConfigDir(),
		checkBackend(),
		checkChatSettings(),
	}

	summary := DoctorSummary{Healthy: true}
	for _, c := range checks {
		switch c.Status {
		case "pass":
			summary.Passed++
		case "warn":
			summary.Warned++
		default:
			summary.Failed++
			summary.Healthy = false
		}
	}

	return DoctorData{Checks: checks, Summary: summary}
}

func checkConfig() DoctorCheck {
	cfg := config.Global()
	if err := cfg.Validate(); err != nil {
		return DoctorCheck{
			Name:    "config",
			Status:  "fail",
			Message: err.Error(),
			Fix:     "run: shoptalk config show, then fix the offending key with shoptalk config set",
		}
	}

	path, err := config.ConfigPathTOML()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return DoctorCheck{Name: "config", Status: "pass", Message: "valid (" + path + ")"}
		}
	}
	return DoctorCheck{
		Name:    "config",
		Status:  "pass",
		Message: "using defaults (no config file)",
	}
}

func checkConfigDir() DoctorCheck {
	dir, err := config.ConfigDir()
	if err != nil {
		return DoctorCheck{
			Name:    "config dir",
			Status:  "fail",
			Message: err.Error(),
		}
	}
	if err := config.EnsureConfigDir(); err != nil {
		return DoctorCheck{
			Name:    "config dir",
			Status:  "fail",
			Message: err.Error(),
			Fix:     "check permissions on " + dir,
		}
	}

	// Probe writability, history and transcripts land here
	probe := filepath.Join(dir, ".doctor-probe")
	if err := os.WriteFile(probe, []byte("ok"), 0600); err != nil {
		return DoctorCheck{
			Name:    "config dir",
			Status:  "warn",
			Message: "not writable: " + err.Error(),
			Fix:     "chat history and transcripts will not be saved",
		}
	}
	os.Remove(probe)

	return DoctorCheck{Name: "config dir", Status: "pass", Message: dir + " is writable"}
}

func checkBackend() DoctorCheck {
	cfg := config.Global()
	client := backend.NewClientWithConfig(cfg.BackendClientConfig())

	ctx, cancel := context.WithTimeout(context.Background(), doctorTimeout)
	defer cancel()

	if err := client.CheckReachable(ctx); err != nil {
		fix := "start the backend, or point shoptalk at it: shoptalk config set backend.url <url>"
		if backend.IsTimeout(err) {
			fix = "the backend is slow to respond, raise backend.timeout_secs or check the server"
		}
		return DoctorCheck{
			Name:    "backend",
			Status:  "fail",
			Message: cfg.Backend.URL + " is unreachable",
			Fix:     fix,
		}
	}
	return DoctorCheck{Name: "backend", Status: "pass", Message: cfg.Backend.URL + " is reachable"}
}

func checkChatSettings() DoctorCheck {
	cfg := config.Global()

	if !backend.ValidModel(cfg.Chat.Model) {
		return DoctorCheck{
			Name:    "chat settings",
			Status:  "fail",
			Message: fmt.Sprintf("unknown model %q", cfg.Chat.Model),
			Fix:     "run: shoptalk config set chat.model gemini",
		}
	}
	if !backend.ValidMemoryDepth(cfg.Chat.MaxMemory) {
		return DoctorCheck{
			Name:    "chat settings",
			Status:  "warn",
			Message: fmt.Sprintf("unusual memory depth %d", cfg.Chat.MaxMemory),
			Fix:     fmt.Sprintf("run: shoptalk config set chat.max_memory %d", backend.DefaultMemoryDepth),
		}
	}
	return DoctorCheck{
		Name:   "chat settings",
		Status: "pass",
		Message: fmt.Sprintf("model %s, memory depth %d",
			cfg.Chat.Model, cfg.Chat.MaxMemory),
	}
}
