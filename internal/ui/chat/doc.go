// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view for the shoptalk TUI.
//
// The view is a Bubble Tea model composed of a scrollable message viewport,
// a single-line text input and a status bar. A submitted message is appended
// to the transcript immediately, the view enters the waiting state and a
// search request is issued to the backend as a tea.Cmd. Exactly one request
// is in flight at a time; submissions while waiting are ignored. Replies and
// errors come back as typed messages (SearchResultMsg, SearchErrorMsg) and
// are folded into the transcript. Session identity lives in the session
// package and is adopted from backend responses.
package chat
