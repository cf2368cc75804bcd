// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package segment

import (
	"regexp"
	"strings"

	"github.com/morganforge/parley/internal/util"
)

// =============================================================================
// PATTERNS
// =============================================================================

var (
	// Sentinel lines, matched case-insensitively on the whole trimmed line.
	imageSentinelRe = regexp.MustCompile(`(?i)^image url:\s*(.*)$`)
	videoSentinelRe = regexp.MustCompile(`(?i)^video url:\s*(.*)$`)

	// Markdown link: [text](url). The URL part stops at whitespace or ')'.
	markdownLinkRe = regexp.MustCompile(`\[([^\]]*)\]\(([^)\s]+)\)`)

	// YouTube URL forms, capturing the 11-character video id.
	youtubeRe = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtube\.com/embed/|youtu\.be/)([A-Za-z0-9_-]{11})`)

	// Bare http(s) URL inside free text.
	bareURLRe = regexp.MustCompile(`https?://[^\s<>"]+`)

	// Image file extension at the end of the path (query/fragment allowed).
	imageExtRe = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|gif|webp|svg|bmp)(?:[?#]|$)`)

	// Inline emphasis. Bold is substituted before italic so ** pairs are
	// never consumed as two italic markers.
	boldRe   = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicRe = regexp.MustCompile(`\*([^*\n]+)\*`)
)

// ANSI SGR sequences used for emphasis substitution. Emitting the escape
// codes directly keeps parser output deterministic regardless of the
// terminal profile detected at render time.
const (
	ansiBold        = "\x1b[1m"
	ansiBoldReset   = "\x1b[22m"
	ansiItalic      = "\x1b[3m"
	ansiItalicReset = "\x1b[23m"
)

// sentinelNA is the value an assistant sends when a media slot is unused.
// Lines carrying it are dropped entirely.
const sentinelNA = "N/A"

// defaultAltText is used for image segments without a markdown caption.
const defaultAltText = "image"

// linkDisplayMax is the display-text threshold for links: URLs longer than
// this are truncated to linkDisplayMax-3 visible characters plus "...".
const linkDisplayMax = 50

// =============================================================================
// PARSER
// =============================================================================

// Parse scans a raw assistant reply and returns its renderable segments in
// left-to-right, top-to-bottom order. It never fails: unmatched patterns
// degrade to plain text, and empty or whitespace-only spans are dropped.
func Parse(text string) []Segment {
	p := parser{}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)

		if m := imageSentinelRe.FindStringSubmatch(trimmed); m != nil {
			p.emitImageSentinel(strings.TrimSpace(m[1]))
			continue
		}
		if m := videoSentinelRe.FindStringSubmatch(trimmed); m != nil {
			p.emitVideoSentinel(strings.TrimSpace(m[1]))
			continue
		}

		p.bufferLine(line)
	}
	p.flush()

	return p.compact()
}

// parser accumulates plain-text lines between sentinel lines and collects
// emitted segments.
type parser struct {
	segs     []Segment
	buf      strings.Builder
	buffered bool
}

// bufferLine appends a non-sentinel line to the pending text buffer.
func (p *parser) bufferLine(line string) {
	if p.buffered {
		p.buf.WriteString("\n")
	}
	p.buf.WriteString(line)
	p.buffered = true
}

// flush converts the pending text buffer into segments and resets it.
func (p *parser) flush() {
	if !p.buffered {
		return
	}
	text := p.buf.String()
	p.buf.Reset()
	p.buffered = false
	p.segs = append(p.segs, scanInline(text)...)
}

// emitImageSentinel handles an "Image URL:" line. The value is either a
// markdown [alt](url) payload or a bare URL; "N/A" drops the line with no
// output. Sentinel values are never re-scanned for embedded links.
func (p *parser) emitImageSentinel(value string) {
	if strings.EqualFold(value, sentinelNA) {
		return
	}
	p.flush()

	alt, url := defaultAltText, value
	if m := markdownLinkRe.FindStringSubmatch(value); m != nil {
		if m[1] != "" {
			alt = m[1]
		}
		url = m[2]
	}

	p.segs = append(p.segs, Segment{
		Kind:    KindImage,
		Content: url,
		URL:     url,
		AltText: alt,
	})
}

// emitVideoSentinel handles a "Video URL:" line. YouTube URLs become video
// segments carrying the extracted id; anything else becomes a link.
func (p *parser) emitVideoSentinel(value string) {
	if strings.EqualFold(value, sentinelNA) {
		return
	}
	p.flush()

	if id := youtubeID(value); id != "" {
		p.segs = append(p.segs, Segment{
			Kind:    KindVideo,
			Content: value,
			URL:     value,
			VideoID: id,
		})
		return
	}

	p.segs = append(p.segs, linkSegment(value))
}

// compact drops segments whose final content is empty or whitespace-only.
func (p *parser) compact() []Segment {
	out := p.segs[:0]
	for _, s := range p.segs {
		if strings.TrimSpace(s.Content) == "" {
			continue
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// =============================================================================
// INLINE SCANNING
// =============================================================================

// scanInline processes a flushed text block: markdown links are extracted
// left-to-right, the text before each link is scanned for bare URLs, and
// the remainder after the last link is scanned the same way.
func scanInline(text string) []Segment {
	var segs []Segment

	rest := text
	for {
		loc := markdownLinkRe.FindStringSubmatchIndex(rest)
		if loc == nil {
			break
		}
		segs = append(segs, scanPlain(rest[:loc[0]])...)

		url := rest[loc[4]:loc[5]]
		segs = append(segs, classifyURL(url, true))
		rest = rest[loc[1]:]
	}

	return append(segs, scanPlain(rest)...)
}

// scanPlain splits free text on bare URLs. URL spans are classified with
// the extension-only image check; everything else becomes a text segment
// after emphasis substitution.
func scanPlain(text string) []Segment {
	var segs []Segment

	last := 0
	for _, ix := range bareURLRe.FindAllStringIndex(text, -1) {
		if span := text[last:ix[0]]; span != "" {
			segs = appendText(segs, span)
		}
		segs = append(segs, classifyURL(text[ix[0]:ix[1]], false))
		last = ix[1]
	}
	if span := text[last:]; span != "" {
		segs = appendText(segs, span)
	}

	return segs
}

// appendText emits a text segment for a plain span, applying emphasis
// substitution. Whitespace-only spans are skipped here so surrounding
// media segments stay adjacent.
func appendText(segs []Segment, span string) []Segment {
	content := applyEmphasis(span)
	if strings.TrimSpace(content) == "" {
		return segs
	}
	return append(segs, Segment{Kind: KindText, Content: content})
}

// =============================================================================
// CLASSIFICATION
// =============================================================================

// classifyURL classifies a URL span with the fixed precedence: YouTube
// pattern first, then image match, then link. The loose flag enables the
// substring heuristics ("/images/", "image") used for markdown-link URLs;
// bare URLs use the extension check only.
func classifyURL(url string, loose bool) Segment {
	if id := youtubeID(url); id != "" {
		return Segment{
			Kind:    KindVideo,
			Content: url,
			URL:     url,
			VideoID: id,
		}
	}

	if isImageURL(url, loose) {
		return Segment{
			Kind:    KindImage,
			Content: url,
			URL:     url,
			AltText: defaultAltText,
		}
	}

	return linkSegment(url)
}

// linkSegment builds a link segment with truncated display text.
func linkSegment(url string) Segment {
	return Segment{
		Kind:        KindLink,
		Content:     url,
		URL:         url,
		DisplayText: util.TruncateRunes(url, linkDisplayMax),
	}
}

// youtubeID extracts the 11-character video id from a YouTube URL, or
// returns "" when the URL does not match any supported form.
func youtubeID(url string) string {
	if m := youtubeRe.FindStringSubmatch(url); m != nil {
		return m[1]
	}
	return ""
}

// isImageURL reports whether a URL points at an image.
func isImageURL(url string, loose bool) bool {
	if imageExtRe.MatchString(url) {
		return true
	}
	if !loose {
		return false
	}
	lower := strings.ToLower(url)
	return strings.Contains(lower, "/images/") || strings.Contains(lower, "image")
}

// applyEmphasis converts markdown bold and italic markers into ANSI SGR
// sequences. Newlines are already native line breaks in a terminal, so no
// break conversion is needed.
func applyEmphasis(s string) string {
	s = boldRe.ReplaceAllString(s, ansiBold+"$1"+ansiBoldReset)
	s = italicRe.ReplaceAllString(s, ansiItalic+"$1"+ansiItalicReset)
	return s
}
