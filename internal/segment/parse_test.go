// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package segment

import (
	"strings"
	"testing"
)

// =============================================================================
// PLAIN TEXT
// =============================================================================

func TestParse_PlainTextSingleSegment(t *testing.T) {
	input := "Hello there.\nHow can I help you today?"
	segs := Parse(input)

	if len(segs) != 1 {
		t.Fatalf("Segment count: got %d, want 1", len(segs))
	}
	if segs[0].Kind != KindText {
		t.Errorf("Kind: got %s, want text", segs[0].Kind)
	}
	if segs[0].Content != input {
		t.Errorf("Content: got %q, want %q", segs[0].Content, input)
	}
}

func TestParse_EmptyInput(t *testing.T) {
	if segs := Parse(""); segs != nil {
		t.Errorf("Empty input: got %d segments, want none", len(segs))
	}
	if segs := Parse("   \n  \n"); segs != nil {
		t.Errorf("Whitespace input: got %d segments, want none", len(segs))
	}
}

func TestParse_EmphasisSubstitution(t *testing.T) {
	segs := Parse("this is **bold** and *slanted* text")
	if len(segs) != 1 {
		t.Fatalf("Segment count: got %d, want 1", len(segs))
	}
	want := "this is " + ansiBold + "bold" + ansiBoldReset +
		" and " + ansiItalic + "slanted" + ansiItalicReset + " text"
	if segs[0].Content != want {
		t.Errorf("Content: got %q, want %q", segs[0].Content, want)
	}
}

// =============================================================================
// SENTINEL LINES
// =============================================================================

func TestParse_ImageSentinelBareURL(t *testing.T) {
	segs := Parse("Image URL: https://x/a.png")

	if len(segs) != 1 {
		t.Fatalf("Segment count: got %d, want 1", len(segs))
	}
	s := segs[0]
	if s.Kind != KindImage {
		t.Fatalf("Kind: got %s, want image", s.Kind)
	}
	if s.Content != "https://x/a.png" {
		t.Errorf("Content: got %q", s.Content)
	}
	if s.AltText != defaultAltText {
		t.Errorf("AltText: got %q, want default", s.AltText)
	}
}

func TestParse_ImageSentinelMarkdownPayload(t *testing.T) {
	segs := Parse("Image URL: [a sunset](https://cdn.example.com/sunset.jpg)")

	if len(segs) != 1 {
		t.Fatalf("Segment count: got %d, want 1", len(segs))
	}
	s := segs[0]
	if s.Kind != KindImage {
		t.Fatalf("Kind: got %s, want image", s.Kind)
	}
	if s.AltText != "a sunset" {
		t.Errorf("AltText: got %q", s.AltText)
	}
	if s.Content != "https://cdn.example.com/sunset.jpg" {
		t.Errorf("Content: got %q", s.Content)
	}
}

func TestParse_VideoSentinelYouTube(t *testing.T) {
	for _, url := range []string{
		"https://youtu.be/dQw4w9WgXcQ",
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"https://www.youtube.com/embed/dQw4w9WgXcQ",
	} {
		segs := Parse("Video URL: " + url)
		if len(segs) != 1 {
			t.Fatalf("%s: got %d segments, want 1", url, len(segs))
		}
		if segs[0].Kind != KindVideo {
			t.Errorf("%s: kind %s, want video", url, segs[0].Kind)
		}
		if segs[0].VideoID != "dQw4w9WgXcQ" {
			t.Errorf("%s: VideoID %q", url, segs[0].VideoID)
		}
	}
}

func TestParse_VideoSentinelNonYouTube(t *testing.T) {
	segs := Parse("Video URL: https://example.com/page")

	if len(segs) != 1 {
		t.Fatalf("Segment count: got %d, want 1", len(segs))
	}
	s := segs[0]
	if s.Kind != KindLink {
		t.Fatalf("Kind: got %s, want link", s.Kind)
	}
	// 24 characters, under the 50-char threshold: unmodified.
	if s.DisplayText != "https://example.com/page" {
		t.Errorf("DisplayText: got %q", s.DisplayText)
	}
}

func TestParse_SentinelCaseInsensitive(t *testing.T) {
	segs := Parse("IMAGE url: https://x/a.png")
	if len(segs) != 1 || segs[0].Kind != KindImage {
		t.Fatalf("Case-insensitive sentinel not matched: %+v", segs)
	}
}

func TestParse_NALinesDropped(t *testing.T) {
	inputs := []string{
		"Image URL: N/A",
		"Video URL: N/A",
		"Image URL: n/a",
		"Some text\nImage URL: N/A\nVideo URL: N/A\nmore text",
	}
	for _, input := range inputs {
		for _, s := range Parse(input) {
			if s.Kind != KindText {
				t.Errorf("%q: unexpected %s segment", input, s.Kind)
			}
			if strings.Contains(s.Content, "N/A") {
				t.Errorf("%q: N/A leaked into output: %q", input, s.Content)
			}
		}
	}
}

func TestParse_NADropJoinsSurroundingText(t *testing.T) {
	segs := Parse("before\nImage URL: N/A\nafter")
	if len(segs) != 1 {
		t.Fatalf("Segment count: got %d, want 1", len(segs))
	}
	if segs[0].Content != "before\nafter" {
		t.Errorf("Content: got %q, want %q", segs[0].Content, "before\nafter")
	}
}

func TestParse_SentinelFlushesBufferFirst(t *testing.T) {
	segs := Parse("Here you go:\nImage URL: https://x/pic.png\nEnjoy!")

	if len(segs) != 3 {
		t.Fatalf("Segment count: got %d, want 3: %+v", len(segs), segs)
	}
	if segs[0].Kind != KindText || segs[0].Content != "Here you go:" {
		t.Errorf("First segment: %+v", segs[0])
	}
	if segs[1].Kind != KindImage {
		t.Errorf("Second segment kind: %s", segs[1].Kind)
	}
	if segs[2].Kind != KindText || segs[2].Content != "Enjoy!" {
		t.Errorf("Third segment: %+v", segs[2])
	}
}

func TestParse_SentinelValueNotRescanned(t *testing.T) {
	// A markdown payload inside a sentinel is consumed by the sentinel
	// rule; it must not additionally produce a link segment.
	segs := Parse("Image URL: [pic](https://x/images/1)")
	if len(segs) != 1 {
		t.Fatalf("Segment count: got %d, want 1", len(segs))
	}
	if segs[0].Kind != KindImage {
		t.Errorf("Kind: got %s, want image", segs[0].Kind)
	}
}

// =============================================================================
// MARKDOWN LINKS
// =============================================================================

func TestParse_MarkdownLinkTruncatedDisplay(t *testing.T) {
	url := "https://example.com/reference-guide-that-is-quite-long-indeed"
	segs := Parse("See [docs](" + url + ") now")

	if len(segs) != 3 {
		t.Fatalf("Segment count: got %d, want 3: %+v", len(segs), segs)
	}
	if segs[0].Kind != KindText || segs[0].Content != "See " {
		t.Errorf("First segment: %+v", segs[0])
	}
	link := segs[1]
	if link.Kind != KindLink {
		t.Fatalf("Kind: got %s, want link", link.Kind)
	}
	if link.URL != url {
		t.Errorf("URL: got %q", link.URL)
	}
	wantDisplay := string([]rune(url)[:47]) + "..."
	if link.DisplayText != wantDisplay {
		t.Errorf("DisplayText: got %q, want %q", link.DisplayText, wantDisplay)
	}
	if segs[2].Kind != KindText || segs[2].Content != " now" {
		t.Errorf("Third segment: %+v", segs[2])
	}
}

func TestParse_MarkdownLinkImageHeuristics(t *testing.T) {
	// Markdown-link URLs use the loose image heuristic: extension match,
	// "/images/" path, or the substring "image" anywhere.
	cases := []struct {
		url  string
		want Kind
	}{
		{"https://x/photo.png", KindImage},
		{"https://x/images/42", KindImage},
		{"https://x/imagery-report", KindImage},
		{"https://x/docs", KindLink},
		{"https://youtu.be/dQw4w9WgXcQ", KindVideo},
	}
	for _, tc := range cases {
		segs := Parse("[label](" + tc.url + ")")
		if len(segs) != 1 {
			t.Fatalf("%s: got %d segments", tc.url, len(segs))
		}
		if segs[0].Kind != tc.want {
			t.Errorf("%s: kind %s, want %s", tc.url, segs[0].Kind, tc.want)
		}
	}
}

func TestParse_MultipleMarkdownLinksLeftToRight(t *testing.T) {
	segs := Parse("[a](https://x/1) mid [b](https://x/2)")
	if len(segs) != 3 {
		t.Fatalf("Segment count: got %d, want 3: %+v", len(segs), segs)
	}
	if segs[0].URL != "https://x/1" || segs[2].URL != "https://x/2" {
		t.Errorf("Link order wrong: %+v", segs)
	}
	if segs[1].Kind != KindText {
		t.Errorf("Middle segment: %+v", segs[1])
	}
}

// =============================================================================
// BARE URLS
// =============================================================================

func TestParse_BareURLExtensionOnly(t *testing.T) {
	// Bare URLs use the extension-only image check: a "/images/" path
	// without an image extension stays a link.
	cases := []struct {
		url  string
		want Kind
	}{
		{"https://x/shot.jpg", KindImage},
		{"https://x/shot.webp?w=100", KindImage},
		{"https://x/images/42", KindLink},
		{"https://x/image-gallery", KindLink},
		{"https://youtube.com/watch?v=dQw4w9WgXcQ", KindVideo},
		{"https://x/page", KindLink},
	}
	for _, tc := range cases {
		segs := Parse("look: " + tc.url)
		if len(segs) != 2 {
			t.Fatalf("%s: got %d segments: %+v", tc.url, len(segs), segs)
		}
		if segs[1].Kind != tc.want {
			t.Errorf("%s: kind %s, want %s", tc.url, segs[1].Kind, tc.want)
		}
	}
}

func TestParse_TextAroundBareURL(t *testing.T) {
	segs := Parse("start https://example.com end")
	if len(segs) != 3 {
		t.Fatalf("Segment count: got %d, want 3", len(segs))
	}
	if segs[0].Content != "start " || segs[2].Content != " end" {
		t.Errorf("Surrounding text: %+v", segs)
	}
}

// =============================================================================
// MIXED CONTENT AND INVARIANTS
// =============================================================================

func TestParse_MixedReply(t *testing.T) {
	input := strings.Join([]string{
		"Here is what I found:",
		"Image URL: https://cdn.x/map.png",
		"Video URL: https://youtu.be/dQw4w9WgXcQ",
		"Video URL: N/A",
		"More at [the wiki](https://wiki.example.org/page) today.",
	}, "\n")

	segs := Parse(input)
	kinds := make([]Kind, len(segs))
	for i, s := range segs {
		kinds[i] = s.Kind
	}

	want := []Kind{KindText, KindImage, KindVideo, KindText, KindLink, KindText}
	if len(kinds) != len(want) {
		t.Fatalf("Kinds: got %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("Kinds: got %v, want %v", kinds, want)
		}
	}
}

func TestParse_Idempotence(t *testing.T) {
	input := strings.Join([]string{
		"Intro line",
		"Image URL: N/A",
		"A link https://example.com/page here",
		"Video URL: N/A",
		"Outro",
	}, "\n")

	first := Parse(input)

	// Reconstruct from segment content with the original separators and
	// re-run; no new segments may appear beyond a second parse of the
	// sentinel-stripped input.
	var parts []string
	for _, s := range first {
		parts = append(parts, s.Content)
	}
	second := Parse(strings.Join(parts, ""))

	if len(second) != len(first) {
		t.Fatalf("Re-parse produced %d segments, first parse %d", len(second), len(first))
	}
	for i := range first {
		if second[i].Kind != first[i].Kind {
			t.Errorf("Segment %d: kind %s vs %s", i, second[i].Kind, first[i].Kind)
		}
	}
}

func TestParse_MalformedNeverEmpty(t *testing.T) {
	// Broken markdown, stray brackets, half sentinels: all degrade to text.
	inputs := []string{
		"[broken](still-open",
		"Image URL",
		"]( )[",
		"**unterminated bold",
	}
	for _, input := range inputs {
		segs := Parse(input)
		if len(segs) != 1 || segs[0].Kind != KindText {
			t.Errorf("%q: got %+v, want single text segment", input, segs)
		}
	}
}

func TestParse_WhitespaceSegmentsDropped(t *testing.T) {
	segs := Parse("https://x/1 https://x/2")
	if len(segs) != 2 {
		t.Fatalf("Segment count: got %d, want 2: %+v", len(segs), segs)
	}
	for _, s := range segs {
		if s.Kind != KindLink {
			t.Errorf("Kind: got %s, want link", s.Kind)
		}
	}
}

func TestParse_EmptySentinelValueDropped(t *testing.T) {
	segs := Parse("Image URL:")
	if segs != nil {
		t.Errorf("Empty sentinel value: got %+v, want none", segs)
	}
}
