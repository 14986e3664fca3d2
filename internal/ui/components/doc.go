// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the shoptalk TUI:
// the welcome screen, the bottom status bar, the thinking spinner and the
// syntax-highlighted code block renderer.
package components
