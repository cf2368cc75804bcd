// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/morganforge/parley/internal/assistant"
	"github.com/morganforge/parley/internal/ui/styles"
)

// =============================================================================
// ERROR BANNER
// =============================================================================

// ErrorBanner is a dismissible error box shown above the input area.
type ErrorBanner struct {
	Title       string
	Message     string
	Suggestions []string
	Width       int
	visible     bool
	theme       *styles.Theme
}

// NewErrorBanner creates an empty, hidden error banner.
func NewErrorBanner(theme *styles.Theme) *ErrorBanner {
	return &ErrorBanner{Width: 80, theme: theme}
}

// Show populates the banner from an error and makes it visible. Client
// errors get targeted suggestions; everything else gets a generic title.
func (e *ErrorBanner) Show(err error) {
	e.visible = true
	e.Message = err.Error()
	e.Suggestions = nil

	switch {
	case assistant.IsUnreachable(err):
		e.Title = "Assistant unreachable"
		e.Suggestions = []string{
			"Check that the assistant service is running",
			"Verify server.base_url in ~/.parley/config.toml",
		}
	case assistant.IsTimeout(err):
		e.Title = "Request timed out"
		e.Suggestions = []string{
			"The assistant may be under load; try again",
			"Raise server.timeout_secs if replies are slow",
		}
	default:
		e.Title = "Something went wrong"
	}
}

// Dismiss hides the banner.
func (e *ErrorBanner) Dismiss() {
	e.visible = false
}

// Visible reports whether the banner is showing.
func (e *ErrorBanner) Visible() bool {
	return e.visible
}

// SetWidth sets the banner width.
func (e *ErrorBanner) SetWidth(width int) {
	e.Width = width
}

// View renders the banner, or "" when hidden.
func (e *ErrorBanner) View() string {
	if !e.visible {
		return ""
	}

	var b strings.Builder
	b.WriteString(e.theme.ErrorTitle.Render(styles.StatusIndicators.Error + " " + e.Title))
	b.WriteString("\n")
	b.WriteString(e.theme.ErrorMessage.Render(e.Message))

	for _, s := range e.Suggestions {
		b.WriteString("\n")
		b.WriteString(e.theme.ErrorMessage.Render("  - " + s))
	}
	b.WriteString("\n")
	b.WriteString(e.theme.Timestamp.Render("esc to dismiss"))

	return e.theme.ErrorBox.MaxWidth(e.Width).Render(b.String())
}
