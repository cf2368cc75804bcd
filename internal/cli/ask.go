// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - Single query command handler for the parley CLI.
//
// Handles "parley ask", which sends one question to the assistant and
// prints the reply to stdout. Media segments are printed as labeled
// lines so piped output stays parseable.
//
// Examples:
//   parley ask "What is the capital of France?"
//   parley ask --plain "Explain goroutines" > answer.txt
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/google/uuid"

	"github.com/morganforge/parley/internal/assistant"
	"github.com/morganforge/parley/internal/config"
	"github.com/morganforge/parley/internal/segment"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// newMarkdownRenderer builds a glamour renderer sized to the terminal.
// Returns nil when rendering should not be used; callers fall back to
// plain text.
func newMarkdownRenderer() *glamour.TermRenderer {
	width := GetTerminalWidth()
	if width > 100 {
		width = 100
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	return r
}

// renderMarkdown renders markdown for terminal display, returning the
// original content if rendering fails.
func renderMarkdown(r *glamour.TermRenderer, content string) string {
	if r == nil {
		return content
	}
	out, err := r.Render(content)
	if err != nil {
		return content
	}
	return out
}

// =============================================================================
// ASK COMMAND
// =============================================================================

// RunAsk executes a single chat round trip and prints the reply.
func RunAsk(args *Args) error {
	client := newClient(args)

	ctx, cancel := context.WithTimeout(context.Background(), clientTimeout(args))
	defer cancel()

	reply, err := client.Chat(ctx, args.Query, uuid.NewString())
	if err != nil {
		return err
	}

	printReply(reply.Message, args.Plain)
	return nil
}

// printReply prints an assistant reply segment by segment. On a TTY the
// prose goes through glamour; piped or --plain output is untouched text
// with media as "label: url" lines.
func printReply(message string, plain bool) {
	pretty := !plain && IsStdoutTTY()

	var renderer *glamour.TermRenderer
	if pretty {
		renderer = newMarkdownRenderer()
	}

	for _, seg := range segment.Parse(message) {
		switch seg.Kind {
		case segment.KindText:
			if pretty {
				fmt.Print(renderMarkdown(renderer, seg.Content))
			} else {
				fmt.Println(seg.Content)
			}
		case segment.KindImage:
			fmt.Printf("[image: %s] %s\n", seg.AltText, seg.URL)
		case segment.KindVideo:
			fmt.Printf("[video] https://www.youtube.com/watch?v=%s\n", seg.VideoID)
		case segment.KindLink:
			fmt.Println(seg.DisplayText)
		}
	}
}

// =============================================================================
// SHARED CLIENT CONSTRUCTION
// =============================================================================

// newClient builds an assistant client from config plus CLI overrides.
func newClient(args *Args) *assistant.Client {
	cfg := config.Global()

	baseURL := cfg.Server.BaseURL
	if args.ServerURL != "" {
		baseURL = args.ServerURL
	}

	return assistant.NewClientWithConfig(&assistant.ClientConfig{
		BaseURL: baseURL,
		Timeout: clientTimeout(args),
	})
}

// clientTimeout resolves the effective request timeout.
func clientTimeout(args *Args) time.Duration {
	secs := config.Global().Server.TimeoutSecs
	if args.TimeoutSecs > 0 {
		secs = args.TimeoutSecs
	}
	return time.Duration(secs) * time.Second
}
