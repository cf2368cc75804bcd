// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// MaxMessages is the maximum number of messages to keep in conversation
// history. When exceeded, the oldest messages are pruned to prevent
// unbounded memory growth during a long session.
const MaxMessages = 1000

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation holds one in-memory chat conversation. It lives for the
// duration of the view and is discarded on exit; nothing is persisted.
type Conversation struct {
	ID        string     `json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Messages  []*Message `json:"messages"`

	// SessionID is the opaque token returned by the assistant service.
	// It starts as a locally generated id and is replaced by whatever the
	// service last returned, surviving failed exchanges so retries stay
	// in the same server-side session.
	SessionID string `json:"session_id"`
}

// NewConversation creates a new conversation with a locally generated
// session id.
func NewConversation() *Conversation {
	return &Conversation{
		ID:        "conv_" + uuid.NewString(),
		SessionID: uuid.NewString(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		Messages:  make([]*Message, 0),
	}
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// AddMessage adds a message to the conversation.
func (c *Conversation) AddMessage(msg *Message) {
	c.Messages = append(c.Messages, msg)
	c.UpdatedAt = time.Now()
	c.pruneOldMessages()
}

// AddUserMessage creates and adds a user message.
func (c *Conversation) AddUserMessage(content string) *Message {
	msg := NewUserMessage(content)
	c.AddMessage(msg)
	return msg
}

// AddAssistantMessage creates and adds an assistant message with its raw
// service payload.
func (c *Conversation) AddAssistantMessage(content string, raw json.RawMessage) *Message {
	msg := NewAssistantMessage(content, raw)
	c.AddMessage(msg)
	return msg
}

// AddSystemMessage creates and adds a system message.
func (c *Conversation) AddSystemMessage(content string) *Message {
	msg := NewSystemMessage(content)
	c.AddMessage(msg)
	return msg
}

// GetLastMessage returns the most recent message, or nil if empty.
func (c *Conversation) GetLastMessage() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return c.Messages[len(c.Messages)-1]
}

// MessageCount returns the number of messages.
func (c *Conversation) MessageCount() int {
	return len(c.Messages)
}

// IsEmpty returns true if there are no messages.
func (c *Conversation) IsEmpty() bool {
	return len(c.Messages) == 0
}

// Clear removes all messages. The session id is kept so the server-side
// conversation continues.
func (c *Conversation) Clear() {
	c.Messages = make([]*Message, 0)
	c.UpdatedAt = time.Now()
}

// SetSessionID records the session id returned by the service.
// Empty values are ignored so a failed exchange never loses the session.
func (c *Conversation) SetSessionID(id string) {
	if id == "" {
		return
	}
	c.SessionID = id
	c.UpdatedAt = time.Now()
}

// pruneOldMessages removes old messages when history exceeds MaxMessages.
func (c *Conversation) pruneOldMessages() {
	if len(c.Messages) <= MaxMessages {
		return
	}
	c.Messages = c.Messages[len(c.Messages)-MaxMessages:]
}
