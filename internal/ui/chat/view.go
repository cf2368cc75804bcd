// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/morganforge/parley/internal/ui/components"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the chat screen: header, transcript, spinner line, error
// banner, input.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	var b strings.Builder

	b.WriteString(m.header.View())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if m.spinner.IsActive() {
		b.WriteString(m.spinner.View())
	}
	b.WriteString("\n")

	if m.errorBanner.Visible() {
		b.WriteString(m.errorBanner.View())
		b.WriteString("\n")
	}

	b.WriteString(m.renderInput())
	b.WriteString("\n")
	b.WriteString(m.renderShortcuts())

	return b.String()
}

// renderTranscript renders the conversation as message bubbles.
func (m Model) renderTranscript() string {
	list := components.NewMessageList(m.theme)
	list.SetMessages(m.conversation.Messages)
	list.SetWidth(m.contentWidth())
	list.ShowTimestamps = m.showTimestamps
	return list.View()
}

// renderInput renders the input box, dimmed while a request is pending.
func (m Model) renderInput() string {
	box := m.theme.InputContainer.Width(m.width - 2)
	if m.busy {
		hint := m.theme.InputPlaceholder.Render("waiting for assistant...")
		return box.Render(hint)
	}
	return box.Render(m.input.View())
}

// renderShortcuts renders the one-line shortcut help bar.
func (m Model) renderShortcuts() string {
	pairs := []struct{ key, desc string }{
		{"enter", "send"},
		{"C-l", "clear"},
		{"esc", "dismiss"},
		{"C-c", "quit"},
	}

	var parts []string
	for _, p := range pairs {
		parts = append(parts, m.theme.ShortcutKey.Render(p.key)+" "+m.theme.ShortcutDesc.Render(p.desc))
	}

	return lipgloss.NewStyle().
		Padding(0, 1).
		Render(strings.Join(parts, "  "))
}
