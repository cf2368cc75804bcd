// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/morganforge/parley/internal/assistant"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update handles all Bubble Tea messages for the chat view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		var cmd tea.Cmd
		var handled bool
		m, cmd, handled = m.handleKey(msg)
		if handled {
			return m, cmd
		}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}

	case ResponseMsg:
		m.handleResponse(msg)

	case ErrorMsg:
		m.handleError(msg)

	case PingResultMsg:
		// Reachability is informational here; the header shows busy state,
		// the welcome screen owns the connected indicator.

	case ConfigReloadedMsg:
		m.handleConfigReload(msg)
	}

	if cmd := m.spinner.Update(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// =============================================================================
// KEY HANDLING
// =============================================================================

// handleKey processes keyboard input. handled=true means the key was
// consumed and must not reach the text input or viewport.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m, tea.Quit, true

	case key.Matches(msg, m.keyMap.Submit):
		return m.submit()

	case key.Matches(msg, m.keyMap.Dismiss):
		if m.errorBanner.Visible() {
			m.errorBanner.Dismiss()
			m.state = stateForBusy(m.busy)
			m.refreshViewport()
		}
		return m, nil, true

	case key.Matches(msg, m.keyMap.Clear):
		m.conversation.Clear()
		m.errorBanner.Dismiss()
		m.refreshViewport()
		return m, nil, true

	case key.Matches(msg, m.keyMap.Up),
		key.Matches(msg, m.keyMap.Down),
		key.Matches(msg, m.keyMap.PageUp),
		key.Matches(msg, m.keyMap.PageDown),
		key.Matches(msg, m.keyMap.Home),
		key.Matches(msg, m.keyMap.End):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd, true
	}

	return m, nil, false
}

// submit sends the current input as a chat request. Submission is gated
// two ways: the busy flag blocks while a request is in flight, and the
// rate limiter collapses rapid repeats into one request per quiet window.
func (m Model) submit() (Model, tea.Cmd, bool) {
	query := strings.TrimSpace(m.input.Value())
	if query == "" {
		return m, nil, true
	}
	if m.busy {
		return m, nil, true
	}
	if !m.limiter.Allow() {
		return m, nil, true
	}

	m.conversation.AddUserMessage(query)
	m.input.Reset()
	m.errorBanner.Dismiss()

	m.busy = true
	m.state = StateWaiting
	m.header.SetBusy(true)
	m.refreshViewport()
	m.viewport.GotoBottom()

	return m, tea.Batch(
		m.spinner.Start(),
		m.sendChat(query, m.conversation.SessionID),
	), true
}

// =============================================================================
// ROUND-TRIP RESULTS
// =============================================================================

// handleResponse records a successful reply. The server-issued session id
// replaces the current one; an empty id keeps the last known value.
func (m *Model) handleResponse(msg ResponseMsg) {
	m.settle()

	m.conversation.AddAssistantMessage(msg.Reply.Message, msg.Reply.Raw)
	m.conversation.SetSessionID(msg.Reply.SessionID)

	m.refreshViewport()
	m.viewport.GotoBottom()
}

// handleError records a failed round trip: the fixed apology goes into
// the transcript, the banner explains the cause, and the session id is
// left untouched so the next attempt reuses it.
func (m *Model) handleError(msg ErrorMsg) {
	m.settle()
	m.state = StateError

	m.conversation.AddAssistantMessage(apologyText, nil)
	m.errorBanner.Show(msg.Err)

	m.refreshViewport()
	m.viewport.GotoBottom()
}

// settle clears the busy flag. Runs on every round-trip outcome, success
// or failure, so input can never stay locked.
func (m *Model) settle() {
	m.busy = false
	m.state = StateReady
	m.header.SetBusy(false)
	m.spinner.Stop()
}

// handleConfigReload swaps the client for one pointing at the reloaded
// base URL and timeout. The in-flight request, if any, finishes against
// the old client.
func (m *Model) handleConfigReload(msg ConfigReloadedMsg) {
	m.client = assistant.NewClientWithConfig(&assistant.ClientConfig{
		BaseURL: msg.BaseURL,
		Timeout: time.Duration(msg.TimeoutSecs) * time.Second,
	})
	m.timeout = time.Duration(msg.TimeoutSecs) * time.Second
	m.header.Subtitle = m.client.BaseURL()
}

// =============================================================================
// LAYOUT
// =============================================================================

// resize recomputes component dimensions from the terminal size.
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.theme.SetSize(width, height)

	m.header.SetWidth(width)
	m.errorBanner.SetWidth(width - 2)
	m.input.Width = width - 6

	viewportHeight := height - m.chromeHeight()
	if viewportHeight < 3 {
		viewportHeight = 3
	}

	if !m.ready {
		m.viewport = viewport.New(width, viewportHeight)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = viewportHeight
	}

	m.refreshViewport()
	m.viewport.GotoBottom()
}

// chromeHeight is the vertical space used by everything except the
// transcript viewport.
func (m Model) chromeHeight() int {
	h := 6 // header + input area + spinner line
	if m.errorBanner.Visible() {
		h += 6
	}
	return h
}

// refreshViewport re-renders the transcript into the viewport.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderTranscript())
}

func stateForBusy(busy bool) State {
	if busy {
		return StateWaiting
	}
	return StateReady
}
