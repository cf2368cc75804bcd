// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/morganforge/parley/internal/ui/styles"
)

// =============================================================================
// SPINNER COMPONENT
// =============================================================================

// Spinner is the "waiting for the assistant" indicator.
type Spinner struct {
	spinner   spinner.Model
	message   string
	startTime time.Time
	isActive  bool
	showTimer bool
	theme     *styles.Theme
}

// NewThinkingSpinner creates the spinner shown while a chat request is in
// flight. ASCII frames for maximum terminal compatibility.
func NewThinkingSpinner(theme *styles.Theme) Spinner {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}
	s.Style = theme.Spinner

	return Spinner{
		spinner:   s,
		message:   "Thinking",
		showTimer: true,
		theme:     theme,
	}
}

// Start activates the spinner and resets its timer.
func (s *Spinner) Start() tea.Cmd {
	s.isActive = true
	s.startTime = time.Now()
	return s.spinner.Tick
}

// Stop deactivates the spinner.
func (s *Spinner) Stop() {
	s.isActive = false
}

// IsActive reports whether the spinner is running.
func (s *Spinner) IsActive() bool {
	return s.isActive
}

// Update advances the spinner animation.
func (s *Spinner) Update(msg tea.Msg) tea.Cmd {
	if !s.isActive {
		return nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return cmd
}

// View renders the spinner line: frame, message, elapsed time.
func (s *Spinner) View() string {
	if !s.isActive {
		return ""
	}

	out := s.spinner.View() + " " + s.theme.ThinkingText.Render(s.message+"...")
	if s.showTimer {
		elapsed := time.Since(s.startTime).Round(time.Second)
		if elapsed >= time.Second {
			out += " " + s.theme.Timestamp.Render("("+elapsed.String()+")")
		}
	}
	return out
}
