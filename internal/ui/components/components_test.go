// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"errors"
	"strings"
	"testing"

	"github.com/morganforge/parley/internal/assistant"
	"github.com/morganforge/parley/internal/model"
	"github.com/morganforge/parley/internal/segment"
	"github.com/morganforge/parley/internal/ui/styles"
)

func testTheme() *styles.Theme {
	return styles.NewTheme()
}

// =============================================================================
// SEGMENT VIEW TESTS
// =============================================================================

func TestSegmentView_RendersInOrder(t *testing.T) {
	segs := []segment.Segment{
		{Kind: segment.KindText, Content: "first some prose"},
		{Kind: segment.KindImage, AltText: "cat", URL: "https://example.com/cat.png"},
		{Kind: segment.KindVideo, VideoID: "dQw4w9WgXcQ"},
		{Kind: segment.KindLink, URL: "https://example.com", DisplayText: "https://example.com"},
	}

	view := NewSegmentView(segs, testTheme())
	view.SetWidth(100)
	out := view.View()

	proseIdx := strings.Index(out, "first some prose")
	imageIdx := strings.Index(out, "cat")
	videoIdx := strings.Index(out, "dQw4w9WgXcQ")
	linkIdx := strings.Index(out, "example.com\x1b")

	if proseIdx < 0 || imageIdx < 0 || videoIdx < 0 {
		t.Fatalf("Missing segment in output:\n%s", out)
	}
	if !(proseIdx < imageIdx && imageIdx < videoIdx) {
		t.Errorf("Segments rendered out of order: prose=%d image=%d video=%d link=%d",
			proseIdx, imageIdx, videoIdx, linkIdx)
	}
}

func TestSegmentView_VideoCardHasWatchURL(t *testing.T) {
	segs := []segment.Segment{{Kind: segment.KindVideo, VideoID: "abcdefghijk"}}
	out := NewSegmentView(segs, testTheme()).View()

	if !strings.Contains(out, "youtube.com/watch?v=abcdefghijk") {
		t.Errorf("Video card missing watch URL:\n%s", out)
	}
}

func TestSegmentView_EmptyIsEmpty(t *testing.T) {
	if out := NewSegmentView(nil, testTheme()).View(); out != "" {
		t.Errorf("Empty segments rendered %q", out)
	}
}

func TestRenderSegments_ParsesRawContent(t *testing.T) {
	out := RenderSegments("Look at this\nImage URL: https://example.com/pic.jpg", 80, testTheme())
	if !strings.Contains(out, "Look at this") {
		t.Error("Prose missing from rendered output")
	}
	if !strings.Contains(out, "example.com/pic.jpg") {
		t.Error("Image URL missing from rendered output")
	}
}

// =============================================================================
// MESSAGE BUBBLE TESTS
// =============================================================================

func TestMessageBubble_Roles(t *testing.T) {
	theme := testTheme()

	user := NewMessageBubble(model.NewUserMessage("hello"), theme)
	if !strings.Contains(user.View(), "hello") {
		t.Error("User bubble dropped content")
	}

	asst := NewMessageBubble(model.NewAssistantMessage("hi there", nil), theme)
	if !strings.Contains(asst.View(), "hi there") {
		t.Error("Assistant bubble dropped content")
	}

	sys := NewMessageBubble(model.NewSystemMessage("notice"), theme)
	if !strings.Contains(sys.View(), "notice") {
		t.Error("System bubble dropped content")
	}
}

func TestMessageBubble_NilMessageSafe(t *testing.T) {
	bubble := NewMessageBubble(nil, testTheme())
	if bubble.View() == "" {
		t.Error("Nil message should still render a placeholder")
	}
}

func TestMessageList_EmptyState(t *testing.T) {
	list := NewMessageList(testTheme())
	if !strings.Contains(list.View(), "No messages yet") {
		t.Error("Empty list missing placeholder text")
	}
}

// =============================================================================
// CODE BLOCK TESTS
// =============================================================================

func TestParseCodeBlocks(t *testing.T) {
	text := "before\n```go\nfunc main() {}\n```\nafter"
	out := ParseCodeBlocks(text, 80)

	if !strings.Contains(out, "before") || !strings.Contains(out, "after") {
		t.Error("Surrounding prose lost")
	}
	if !strings.Contains(out, "main") {
		t.Error("Code content lost")
	}
	if strings.Contains(out, "```") {
		t.Error("Fence markers leaked into output")
	}
}

func TestParseCodeBlocks_UnclosedFence(t *testing.T) {
	out := ParseCodeBlocks("```python\nprint('hi')", 80)
	if !strings.Contains(out, "print") {
		t.Error("Unclosed fence dropped code")
	}
}

// =============================================================================
// ERROR BANNER TESTS
// =============================================================================

func TestErrorBanner_UnreachableSuggestions(t *testing.T) {
	banner := NewErrorBanner(testTheme())
	banner.Show(assistant.ErrUnreachable)

	out := banner.View()
	if !strings.Contains(out, "unreachable") {
		t.Errorf("Banner missing title:\n%s", out)
	}
	if !strings.Contains(out, "base_url") {
		t.Error("Banner missing config suggestion")
	}
}

func TestErrorBanner_DismissHides(t *testing.T) {
	banner := NewErrorBanner(testTheme())
	banner.Show(errors.New("boom"))
	if !banner.Visible() {
		t.Fatal("Show did not make banner visible")
	}

	banner.Dismiss()
	if banner.Visible() || banner.View() != "" {
		t.Error("Dismiss did not hide banner")
	}
}

// =============================================================================
// HEADER AND WELCOME TESTS
// =============================================================================

func TestHeader_BusyToggle(t *testing.T) {
	header := NewHeader("parley", "", testTheme())
	header.SetWidth(80)

	if !strings.Contains(header.View(), "ready") {
		t.Error("Idle header missing ready state")
	}
	header.SetBusy(true)
	if !strings.Contains(header.View(), "busy") {
		t.Error("Busy header missing busy state")
	}
}

func TestWelcome_ShowsServerState(t *testing.T) {
	welcome := NewWelcome("1.0.0", "http://127.0.0.1:8000", testTheme())
	welcome.SetSize(100, 30)

	out := welcome.View()
	if !strings.Contains(out, "127.0.0.1:8000") {
		t.Error("Welcome missing server URL")
	}
	if !strings.Contains(out, "not reachable") {
		t.Error("Welcome should warn before reachability confirmed")
	}

	welcome.SetReachable(true)
	if !strings.Contains(welcome.View(), "connected") {
		t.Error("Welcome missing connected state")
	}
}
