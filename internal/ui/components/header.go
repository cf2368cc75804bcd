// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/morganforge/parley/internal/ui/styles"
)

// =============================================================================
// HEADER COMPONENT
// =============================================================================

// Header is the top bar: app name, connection target, busy state.
type Header struct {
	Title    string
	Subtitle string
	Width    int
	Busy     bool
	theme    *styles.Theme
}

// NewHeader creates the application header.
func NewHeader(title, subtitle string, theme *styles.Theme) *Header {
	return &Header{
		Title:    title,
		Subtitle: subtitle,
		Width:    80,
		theme:    theme,
	}
}

// SetWidth sets the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetBusy toggles the busy indicator.
func (h *Header) SetBusy(busy bool) {
	h.Busy = busy
}

// View renders the header bar.
func (h *Header) View() string {
	title := h.theme.HeaderTitle.Render(h.Title)
	if h.Subtitle != "" {
		title += " " + h.theme.HeaderSubtitle.Render(h.Subtitle)
	}

	var status string
	if h.Busy {
		status = h.theme.StatusBusy.Render("busy")
	} else {
		status = h.theme.StatusReady.Render("ready")
	}

	// Title left, status right, gap in between.
	gap := h.Width - lipgloss.Width(title) - lipgloss.Width(status) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	bar := lipgloss.JoinHorizontal(lipgloss.Center, title, spacer, status)

	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(styles.Overlay).
		Width(h.Width).
		Padding(0, 2).
		Render(bar)
}
