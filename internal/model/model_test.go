// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"encoding/json"
	"strings"
	"testing"
)

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestNewMessage_GeneratesUniqueIDs(t *testing.T) {
	a := NewUserMessage("one")
	b := NewUserMessage("two")
	if a.ID == b.ID {
		t.Errorf("Duplicate message IDs: %s", a.ID)
	}
	if !strings.HasPrefix(a.ID, "msg_") {
		t.Errorf("ID prefix: got %q", a.ID)
	}
}

func TestNewAssistantMessage_KeepsRawPayload(t *testing.T) {
	raw := json.RawMessage(`{"data":{"message":"hi","session_id":"s1"}}`)
	msg := NewAssistantMessage("hi", raw)
	if msg.Role != RoleAssistant {
		t.Errorf("Role: got %s", msg.Role)
	}
	if string(msg.Raw) != string(raw) {
		t.Errorf("Raw payload lost: %s", msg.Raw)
	}
}

func TestMessagePreview_Truncates(t *testing.T) {
	msg := NewUserMessage(strings.Repeat("a", 100))
	got := msg.Preview(10)
	if len([]rune(got)) != 10 {
		t.Errorf("Preview length: got %d, want 10", len([]rune(got)))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("Preview missing ellipsis: %q", got)
	}
}

func TestRoleDisplayName(t *testing.T) {
	if RoleUser.DisplayName() != "You" {
		t.Errorf("RoleUser: got %q", RoleUser.DisplayName())
	}
	if RoleAssistant.DisplayName() != "Assistant" {
		t.Errorf("RoleAssistant: got %q", RoleAssistant.DisplayName())
	}
}

// =============================================================================
// CONVERSATION TESTS
// =============================================================================

func TestConversation_AddAndOrder(t *testing.T) {
	conv := NewConversation()
	conv.AddUserMessage("q1")
	conv.AddAssistantMessage("a1", nil)
	conv.AddUserMessage("q2")

	if conv.MessageCount() != 3 {
		t.Fatalf("Count: got %d, want 3", conv.MessageCount())
	}
	last := conv.GetLastMessage()
	if last == nil || last.Content != "q2" {
		t.Errorf("Last message: %+v", last)
	}
}

func TestConversation_SessionIDCarriedForward(t *testing.T) {
	conv := NewConversation()
	initial := conv.SessionID
	if initial == "" {
		t.Fatal("New conversation has no session id")
	}

	conv.SetSessionID("server-issued")
	if conv.SessionID != "server-issued" {
		t.Errorf("SessionID: got %q", conv.SessionID)
	}

	// A failed exchange reports no session id; the last one survives.
	conv.SetSessionID("")
	if conv.SessionID != "server-issued" {
		t.Errorf("Empty id overwrote session: %q", conv.SessionID)
	}
}

func TestConversation_ClearKeepsSession(t *testing.T) {
	conv := NewConversation()
	conv.SetSessionID("s1")
	conv.AddUserMessage("hello")
	conv.Clear()

	if !conv.IsEmpty() {
		t.Error("Clear left messages behind")
	}
	if conv.SessionID != "s1" {
		t.Errorf("Clear dropped session id: %q", conv.SessionID)
	}
}

func TestConversation_PrunesOldMessages(t *testing.T) {
	conv := NewConversation()
	for i := 0; i < MaxMessages+10; i++ {
		conv.AddUserMessage("m")
	}
	if conv.MessageCount() != MaxMessages {
		t.Errorf("Count after prune: got %d, want %d", conv.MessageCount(), MaxMessages)
	}
}
