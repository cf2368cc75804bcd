// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/time/rate"

	"github.com/morganforge/parley/internal/assistant"
	"github.com/morganforge/parley/internal/config"
	"github.com/morganforge/parley/internal/model"
	"github.com/morganforge/parley/internal/ui/components"
	"github.com/morganforge/parley/internal/ui/styles"
)

// apologyText is the fixed transcript entry shown when a chat round trip
// fails for any reason (network, HTTP status, or undecodable response).
const apologyText = "Sorry, something went wrong while getting a response. Please try again."

// =============================================================================
// CHAT STATE
// =============================================================================

// State represents the current state of the chat view.
type State int

const (
	StateReady   State = iota // Ready for input
	StateWaiting              // One chat request in flight
	StateError                // Showing an error banner
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	// State
	state State
	busy  bool

	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int
	ready  bool

	// Conversation
	conversation *model.Conversation

	// Assistant client
	client  *assistant.Client
	timeout time.Duration

	// Rapid submits inside one quiet window collapse to a single request.
	limiter *rate.Limiter

	// UI components
	viewport    viewport.Model
	input       textinput.Model
	spinner     components.Spinner
	header      *components.Header
	errorBanner *components.ErrorBanner

	// Key bindings
	keyMap KeyMap

	// Presentation settings
	showTimestamps bool
	wordWrap       int
}

// New creates the chat model wired to an assistant client.
func New(client *assistant.Client, cfg *config.Config, theme *styles.Theme) Model {
	input := textinput.New()
	input.Placeholder = "Ask anything..."
	input.PlaceholderStyle = theme.InputPlaceholder
	input.PromptStyle = theme.InputPrompt
	input.Prompt = "> "
	input.CharLimit = 4000
	input.Focus()

	debounce := time.Duration(cfg.UI.DebounceMs) * time.Millisecond
	if debounce <= 0 {
		debounce = time.Millisecond
	}

	return Model{
		state:          StateReady,
		theme:          theme,
		conversation:   model.NewConversation(),
		client:         client,
		timeout:        time.Duration(cfg.Server.TimeoutSecs) * time.Second,
		limiter:        rate.NewLimiter(rate.Every(debounce), 1),
		input:          input,
		spinner:        components.NewThinkingSpinner(theme),
		header:         components.NewHeader("parley", client.BaseURL(), theme),
		errorBanner:    components.NewErrorBanner(theme),
		keyMap:         DefaultKeyMap(),
		showTimestamps: cfg.UI.ShowTimestamps,
		wordWrap:       cfg.UI.WordWrap,
	}
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Conversation exposes the transcript, mainly for tests.
func (m Model) Conversation() *model.Conversation {
	return m.conversation
}

// Busy reports whether a chat request is in flight.
func (m Model) Busy() bool {
	return m.busy
}

// sendChat performs one chat round trip off the UI goroutine. The busy
// flag stays set until the resulting ResponseMsg or ErrorMsg is handled,
// so a second request can never start while one is pending.
func (m *Model) sendChat(query, sessionID string) tea.Cmd {
	client := m.client
	timeout := m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		reply, err := client.Chat(ctx, query, sessionID)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ResponseMsg{Reply: reply}
	}
}

// contentWidth is the usable transcript width, honoring the word_wrap
// setting when one is configured.
func (m Model) contentWidth() int {
	w := m.width - 2
	if m.wordWrap > 0 && m.wordWrap < w {
		w = m.wordWrap
	}
	if w < 20 {
		w = 20
	}
	return w
}
