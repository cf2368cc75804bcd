// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the parley TUI.
package components

import (
	"strings"

	"github.com/morganforge/parley/internal/segment"
	"github.com/morganforge/parley/internal/ui/styles"
	"github.com/morganforge/parley/internal/util"
)

// =============================================================================
// SEGMENT VIEW - Renders parsed assistant content
// =============================================================================

// SegmentView renders an ordered list of content segments: prose, image
// cards, video cards, and links, in the order they appeared in the reply.
type SegmentView struct {
	Segments []segment.Segment
	Width    int
	theme    *styles.Theme
}

// NewSegmentView creates a view over already-parsed segments.
func NewSegmentView(segs []segment.Segment, theme *styles.Theme) *SegmentView {
	return &SegmentView{
		Segments: segs,
		Width:    80,
		theme:    theme,
	}
}

// SetWidth sets the rendering width.
func (v *SegmentView) SetWidth(width int) {
	v.Width = width
}

// View renders all segments joined by blank lines, preserving order.
func (v *SegmentView) View() string {
	if len(v.Segments) == 0 {
		return ""
	}

	var parts []string
	for _, seg := range v.Segments {
		var rendered string
		switch seg.Kind {
		case segment.KindText:
			rendered = v.renderText(seg)
		case segment.KindImage:
			rendered = v.renderImage(seg)
		case segment.KindVideo:
			rendered = v.renderVideo(seg)
		case segment.KindLink:
			rendered = v.renderLink(seg)
		}
		if rendered != "" {
			parts = append(parts, rendered)
		}
	}

	return strings.Join(parts, "\n")
}

// renderText wraps prose to width and renders any fenced code blocks it
// contains. Emphasis escapes in the content pass through untouched.
func (v *SegmentView) renderText(seg segment.Segment) string {
	width := v.Width - 4
	if width < 20 {
		width = 20
	}

	if strings.Contains(seg.Content, "```") {
		return ParseCodeBlocks(seg.Content, width)
	}
	return util.WordWrap(seg.Content, width)
}

// renderImage renders an image as a framed card with the alt text and URL.
// Terminals cannot show the image itself; the card keeps its place in the
// reading order.
func (v *SegmentView) renderImage(seg segment.Segment) string {
	label := v.theme.ImageCardLabel.Render("[image] " + seg.AltText)
	url := v.theme.MediaURL.Render(util.TruncateRunes(seg.URL, v.cardWidth()))
	return v.theme.ImageCard.Render(label + "\n" + url)
}

// renderVideo renders a YouTube video card with the id and canonical
// watch URL.
func (v *SegmentView) renderVideo(seg segment.Segment) string {
	label := v.theme.VideoCardLabel.Render("[video] youtube: " + seg.VideoID)
	url := v.theme.MediaURL.Render("https://www.youtube.com/watch?v=" + seg.VideoID)
	return v.theme.VideoCard.Render(label + "\n" + url)
}

// renderLink renders a link with its display text underlined; the full
// URL follows when the display text was truncated.
func (v *SegmentView) renderLink(seg segment.Segment) string {
	link := v.theme.Link.Render(seg.DisplayText)
	if seg.DisplayText == seg.URL {
		return link
	}
	return link + " " + v.theme.MediaURL.Render("("+seg.URL+")")
}

// cardWidth is the usable interior width of a media card.
func (v *SegmentView) cardWidth() int {
	w := v.Width - 8
	if w < 20 {
		w = 20
	}
	return w
}

// RenderSegments is a convenience wrapper: parse raw assistant text and
// render it at the given width.
func RenderSegments(content string, width int, theme *styles.Theme) string {
	view := NewSegmentView(segment.Parse(content), theme)
	view.SetWidth(width)
	return view.View()
}
