// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file defines the Bubble Tea message types used by the chat
// interface. One chat round trip produces exactly one ResponseMsg or one
// ErrorMsg; there is no streaming.
package chat

import (
	"github.com/morganforge/parley/internal/assistant"
)

// =============================================================================
// CHAT ROUND-TRIP MESSAGES
// =============================================================================

// ResponseMsg delivers a successful assistant reply.
type ResponseMsg struct {
	Reply *assistant.Reply
}

// ErrorMsg signals that the chat round trip failed. The transcript gets
// the fixed apology; Err carries the cause for the error banner.
type ErrorMsg struct {
	Err error
}

// PingResultMsg reports the startup reachability check.
type PingResultMsg struct {
	Reachable bool
}

// ConfigReloadedMsg delivers a hot-reloaded configuration snapshot from
// the config watcher.
type ConfigReloadedMsg struct {
	BaseURL     string
	TimeoutSecs int
}
