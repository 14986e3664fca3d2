// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the HTTP client for the shoptalk assistant API.
//
// The backend owns all of the hard parts: model inference, conversation
// memory, and session persistence. This package only speaks its wire
// contract:
//
//	POST   /search          {user_input, model, session_id?, max_memory}
//	                        -> {result, session_id?, has_conversation_history?}
//	DELETE /session/{id}    response body ignored
//
// There are no retries and no backoff: one Search call means exactly one
// network request. Transport failures and non-2xx statuses both surface as
// a *ClientError so callers can collapse them into a single failure path.
package backend
