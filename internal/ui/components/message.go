// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/morganforge/parley/internal/model"
	"github.com/morganforge/parley/internal/ui/styles"
	"github.com/morganforge/parley/internal/util"
)

// =============================================================================
// MESSAGE BUBBLE COMPONENT
// =============================================================================

// MessageBubble represents a styled message bubble.
type MessageBubble struct {
	Message       *model.Message
	Width         int
	ShowTimestamp bool
	theme         *styles.Theme
}

// NewMessageBubble creates a new MessageBubble.
func NewMessageBubble(msg *model.Message, theme *styles.Theme) *MessageBubble {
	if msg == nil {
		msg = &model.Message{Role: model.RoleSystem}
	}
	return &MessageBubble{
		Message:       msg,
		Width:         80,
		ShowTimestamp: true,
		theme:         theme,
	}
}

// SetWidth sets the bubble width.
func (b *MessageBubble) SetWidth(width int) {
	b.Width = width
}

// View renders the message bubble.
func (b *MessageBubble) View() string {
	switch b.Message.Role {
	case model.RoleUser:
		return b.renderUserBubble()
	case model.RoleAssistant:
		return b.renderAssistantBubble()
	default:
		return b.renderSystemBubble()
	}
}

// ==========================================================================
// USER BUBBLE - Blue tones, right-aligned feel
// ==========================================================================

func (b *MessageBubble) renderUserBubble() string {
	content := b.Message.Content
	if content == "" {
		content = "..."
	}

	maxContentWidth := b.Width - 12
	if maxContentWidth < 20 {
		maxContentWidth = 20
	}
	wrapped := util.WordWrap(content, maxContentWidth)
	contentWidth := minInt(util.MaxLineWidth(wrapped)+4, b.Width-8)

	bubble := lipgloss.NewStyle().
		Foreground(styles.UserBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.UserBubbleBorder).
		Padding(0, 2).
		Width(contentWidth).
		Render(wrapped)

	header := b.renderHeader("you")

	// Right-align the bubble with a left margin.
	leftMargin := b.Width - contentWidth - 4
	if leftMargin < 0 {
		leftMargin = 0
	}
	marginStyle := lipgloss.NewStyle().MarginLeft(leftMargin)

	return lipgloss.JoinVertical(lipgloss.Right,
		marginStyle.Render(header),
		marginStyle.Render(bubble),
	)
}

// ==========================================================================
// ASSISTANT BUBBLE - Purple tones, left-aligned, segment-aware
// ==========================================================================

func (b *MessageBubble) renderAssistantBubble() string {
	maxContentWidth := b.Width - 12
	if maxContentWidth < 20 {
		maxContentWidth = 20
	}

	// Assistant content is parsed into typed segments so media and links
	// keep their place in the reading order.
	content := RenderSegments(b.Message.Content, maxContentWidth, b.theme)
	if content == "" {
		content = "..."
	}

	contentWidth := minInt(util.MaxLineWidth(content)+4, b.Width-8)

	bubble := lipgloss.NewStyle().
		Foreground(styles.AssistantBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.AssistantBubbleBorder).
		Padding(0, 2).
		Width(contentWidth).
		MarginRight(4).
		Render(content)

	header := b.renderHeader("assistant")

	return lipgloss.JoinVertical(lipgloss.Left, header, bubble)
}

// ==========================================================================
// SYSTEM BUBBLE - Amber tones, centered
// ==========================================================================

func (b *MessageBubble) renderSystemBubble() string {
	content := b.Message.Content
	if content == "" {
		content = "System message"
	}

	maxContentWidth := b.Width - 20
	if maxContentWidth < 30 {
		maxContentWidth = 30
	}
	wrapped := util.WordWrap(content, maxContentWidth)
	contentWidth := minInt(util.MaxLineWidth(wrapped)+4, b.Width-16)

	bubble := lipgloss.NewStyle().
		Foreground(styles.SystemBubbleFg).
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(styles.SystemBubbleBorder).
		Padding(0, 2).
		Width(contentWidth).
		Align(lipgloss.Center).
		Render(wrapped)

	centerStyle := lipgloss.NewStyle().
		Width(b.Width).
		Align(lipgloss.Center)

	return lipgloss.JoinVertical(lipgloss.Center,
		centerStyle.Render(b.renderHeader("system")),
		centerStyle.Render(bubble),
	)
}

// ==========================================================================
// HELPERS
// ==========================================================================

// renderHeader renders the role label with an optional dimmed timestamp.
func (b *MessageBubble) renderHeader(role string) string {
	roleStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true)
	header := roleStyle.Render(role)

	if b.ShowTimestamp && !b.Message.Timestamp.IsZero() {
		header += " " + b.theme.Timestamp.Render(formatTimestamp(b.Message.Timestamp))
	}
	return header
}

// formatTimestamp formats a timestamp as "3:04 PM", adding the date when
// the message is from a different day.
func formatTimestamp(ts time.Time) string {
	now := time.Now()
	if ts.Year() == now.Year() && ts.YearDay() == now.YearDay() {
		return ts.Format("3:04 PM")
	}
	return ts.Format("Jan 2, 3:04 PM")
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// =============================================================================
// MESSAGE LIST COMPONENT
// =============================================================================

// MessageList renders a conversation transcript as stacked bubbles.
type MessageList struct {
	Messages       []*model.Message
	Width          int
	ShowTimestamps bool
	theme          *styles.Theme
}

// NewMessageList creates a new MessageList.
func NewMessageList(theme *styles.Theme) *MessageList {
	return &MessageList{
		Width:          80,
		ShowTimestamps: true,
		theme:          theme,
	}
}

// SetMessages sets the messages to display.
func (ml *MessageList) SetMessages(messages []*model.Message) {
	ml.Messages = messages
}

// SetWidth sets the list width.
func (ml *MessageList) SetWidth(width int) {
	ml.Width = width
}

// View renders all messages.
func (ml *MessageList) View() string {
	if len(ml.Messages) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Italic(true).
			Width(ml.Width).
			Align(lipgloss.Center).
			Padding(2, 0)
		return emptyStyle.Render("No messages yet. Start a conversation!")
	}

	var bubbles []string
	for _, msg := range ml.Messages {
		bubble := NewMessageBubble(msg, ml.theme)
		bubble.SetWidth(ml.Width)
		bubble.ShowTimestamp = ml.ShowTimestamps
		bubbles = append(bubbles, bubble.View())
	}

	return strings.Join(bubbles, "\n")
}
