// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/morganforge/parley/internal/ui/styles"
)

// =============================================================================
// WELCOME SCREEN
// =============================================================================

const parleyLogo = `
 ____   __   ____  __    ____  _  _
(  _ \ / _\ (  _ \(  )  (  __)( \/ )
 ) __//    \ )   // (_/\ ) _)  )  /
(__)  \_/\_/(__\_)\____/(____)(__/
`

// Welcome is the start screen shown before the first message.
type Welcome struct {
	Version   string
	ServerURL string
	Reachable bool
	Width     int
	Height    int
	theme     *styles.Theme
}

// NewWelcome creates the welcome screen.
func NewWelcome(version, serverURL string, theme *styles.Theme) *Welcome {
	return &Welcome{
		Version:   version,
		ServerURL: serverURL,
		Width:     80,
		Height:    24,
		theme:     theme,
	}
}

// SetSize sets the available screen size.
func (w *Welcome) SetSize(width, height int) {
	w.Width = width
	w.Height = height
}

// SetReachable records the result of the startup reachability check.
func (w *Welcome) SetReachable(ok bool) {
	w.Reachable = ok
}

// View renders the welcome box centered on screen.
func (w *Welcome) View() string {
	var b strings.Builder

	b.WriteString(w.theme.WelcomeLogo.Render(strings.TrimLeft(parleyLogo, "\n")))
	b.WriteString("\n")
	b.WriteString(w.theme.WelcomeVersion.Render("v" + w.Version))
	b.WriteString("\n\n")

	b.WriteString(w.theme.WelcomeInfo.Render("assistant: " + w.ServerURL))
	b.WriteString("\n")
	if w.Reachable {
		b.WriteString(w.theme.StatusReady.Render(styles.StatusIndicators.Success + " connected"))
	} else {
		b.WriteString(styles.RenderWarning("assistant not reachable"))
	}
	b.WriteString("\n\n")

	b.WriteString(w.theme.WelcomePressKey.Render("press enter to start chatting"))

	box := w.theme.WelcomeBox.Render(b.String())

	return lipgloss.Place(w.Width, w.Height, lipgloss.Center, lipgloss.Center, box)
}
