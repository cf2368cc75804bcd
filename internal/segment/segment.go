// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package segment parses assistant replies into ordered, typed content
// segments for rendering.
//
// The assistant signals structured media with sentinel lines of the form
// "Image URL: <value>" and "Video URL: <value>", and may embed markdown
// links and bare URLs anywhere in free text. The parser classifies every
// renderable span as text, image, video, or link. Malformed input never
// fails; anything unrecognized degrades to plain text.
package segment

// =============================================================================
// SEGMENT TYPES
// =============================================================================

// Kind identifies the classification of a segment.
type Kind string

const (
	KindText  Kind = "text"
	KindImage Kind = "image"
	KindVideo Kind = "video"
	KindLink  Kind = "link"
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// Segment is one classified unit of renderable content. Segments are
// immutable once produced; their order matches the position of the source
// span in the original text.
type Segment struct {
	// Kind is the classification of this segment.
	Kind Kind

	// Content is the original matched text (for text segments, after
	// emphasis substitution) or the matched URL.
	Content string

	// VideoID is the 11-character YouTube video id (video segments only).
	VideoID string

	// AltText is the alternative text for image segments.
	AltText string

	// URL is the target for image, video, and link segments.
	URL string

	// DisplayText is the user-visible label for link segments. URLs
	// longer than 50 characters are shown as 47 characters plus "...".
	DisplayText string
}

// IsMedia reports whether the segment references external media.
func (s Segment) IsMedia() bool {
	return s.Kind == KindImage || s.Kind == KindVideo
}
