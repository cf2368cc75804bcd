// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package assistant

import "encoding/json"

// =============================================================================
// REQUEST TYPES
// =============================================================================

// ChatRequest is the request body for the /chat endpoint.
type ChatRequest struct {
	Query     string `json:"query"`      // The user's message
	SessionID string `json:"session_id"` // Opaque session correlation token
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// ChatResponse is the response envelope from the /chat endpoint. Fields
// beyond these are ignored but preserved in Reply.Raw.
type ChatResponse struct {
	Data ChatData `json:"data"`
}

// ChatData is the payload of a chat response.
type ChatData struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

// Reply is the client-level result of one chat exchange.
type Reply struct {
	// Message is the assistant's reply text.
	Message string

	// SessionID is the session token to carry into the next exchange.
	SessionID string

	// Raw is the unmodified response body.
	Raw json.RawMessage
}
