// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session tracks the client side of a backend conversation session.
//
// The backend issues an opaque session id on the first /search response and
// keeps the conversation memory for it server-side, bounded by a memory
// depth in exchanges. This package holds that id, the history flag, and the
// configured depth, and clears them on reset. Nothing is persisted locally.
package session
