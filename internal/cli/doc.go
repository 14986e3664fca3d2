// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the shoptalk command line interface.
//
// The default invocation starts the full-screen TUI. Two lighter entry
// points exist for scripts and quick questions: "ask" sends one question
// and prints the answer, "chat" runs a readline-style REPL without the
// alternate screen. Supporting commands cover configuration, diagnostics,
// and version reporting.
package cli
