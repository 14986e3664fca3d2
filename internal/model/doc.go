// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
//
// A Conversation is an append-only, ordered list of Messages. Messages are
// immutable once created: insertion order is display order, and the list is
// only ever cleared wholesale when the session is reset.
//
// The types here carry no network or rendering concerns; the backend client
// and the TUI both consume them.
package model
