// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the shoptalk TUI.
//
// All colors use Lip Gloss AdaptiveColor pairs so the same palette works on
// light and dark terminal backgrounds. The Theme struct bundles the styled
// surfaces the chat view composes: message bubbles, the input area, the
// status bar, the thinking indicator and the error box. Terminal color
// capability is detected once at startup via termenv.
package styles
