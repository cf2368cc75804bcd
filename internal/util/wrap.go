// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// WordWrap wraps text to fit within the given display width. Existing
// newlines are preserved; words longer than the width are emitted on
// their own line rather than split.
func WordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var out strings.Builder
	for lineIdx, line := range strings.Split(text, "\n") {
		if lineIdx > 0 {
			out.WriteString("\n")
		}

		words := strings.Fields(line)
		if len(words) == 0 {
			continue
		}

		current := words[0]
		for _, word := range words[1:] {
			if runewidth.StringWidth(current)+1+runewidth.StringWidth(word) <= width {
				current += " " + word
			} else {
				out.WriteString(current)
				out.WriteString("\n")
				current = word
			}
		}
		out.WriteString(current)
	}

	return out.String()
}
