// parley - a terminal client for a hosted chat assistant.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/morganforge/parley/internal/assistant"
	"github.com/morganforge/parley/internal/cli"
	"github.com/morganforge/parley/internal/config"
	"github.com/morganforge/parley/internal/ui/chat"
	"github.com/morganforge/parley/internal/ui/components"
	"github.com/morganforge/parley/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Global program reference for async sends (config watcher)
var (
	programRef *tea.Program
	programMu  sync.Mutex
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args, err := cli.Parse(os.Args[1:])
	if err != nil {
		cli.Fatal(err)
	}

	switch cmd {
	case cli.CmdTUI:
		runTUI(args)
	case cli.CmdAsk:
		if err := cli.RunAsk(args); err != nil {
			cli.Fatal(err)
		}
	case cli.CmdChat:
		if err := cli.RunChat(args); err != nil {
			cli.Fatal(err)
		}
	case cli.CmdVersion:
		cli.PrintVersion()
	case cli.CmdHelp:
		cli.PrintUsage()
	}
}

// =============================================================================
// TUI STARTUP
// =============================================================================

func runTUI(args *cli.Args) {
	cfg := config.Global()
	if args.ServerURL != "" {
		cfg.Server.BaseURL = args.ServerURL
	}
	if args.TimeoutSecs > 0 {
		cfg.Server.TimeoutSecs = args.TimeoutSecs
	}

	theme := styles.NewTheme()

	client := assistant.NewClientWithConfig(&assistant.ClientConfig{
		BaseURL: cfg.Server.BaseURL,
		Timeout: time.Duration(cfg.Server.TimeoutSecs) * time.Second,
	})

	m := newAppModel(theme, client, cfg)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	programMu.Lock()
	programRef = p
	programMu.Unlock()

	// Hot-reload: config edits repoint the client without a restart.
	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	startConfigWatcher(watchCtx)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running parley: %v\n", err)
		os.Exit(1)
	}
}

// startConfigWatcher forwards reloaded config snapshots into the running
// program. Watcher setup failure is not fatal; hot-reload is best effort.
func startConfigWatcher(ctx context.Context) {
	watcher, err := config.NewWatcher(func(cfg *config.Config) {
		programMu.Lock()
		p := programRef
		programMu.Unlock()
		if p != nil {
			p.Send(chat.ConfigReloadedMsg{
				BaseURL:     cfg.Server.BaseURL,
				TimeoutSecs: cfg.Server.TimeoutSecs,
			})
		}
	})
	if err != nil {
		return
	}
	go watcher.Watch(ctx)
}

// =============================================================================
// APPLICATION MODEL
// =============================================================================

// State represents the current application state.
type State int

const (
	StateWelcome State = iota // Welcome screen
	StateChat                 // Chat view
)

// appModel is the top-level Bubble Tea model: a welcome screen that hands
// off to the chat view.
type appModel struct {
	state State

	theme  *styles.Theme
	client *assistant.Client

	width  int
	height int

	chatModel chat.Model
	welcome   *components.Welcome
}

func newAppModel(theme *styles.Theme, client *assistant.Client, cfg *config.Config) *appModel {
	return &appModel{
		state:     StateWelcome,
		theme:     theme,
		client:    client,
		chatModel: chat.New(client, cfg, theme),
		welcome:   components.NewWelcome(Version, client.BaseURL(), theme),
	}
}

// Init kicks off the chat model and the startup reachability check.
func (m *appModel) Init() tea.Cmd {
	return tea.Batch(m.chatModel.Init(), m.pingCmd())
}

// pingCmd checks that the assistant answers at all before the first chat.
func (m *appModel) pingCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return chat.PingResultMsg{Reachable: client.Ping(ctx) == nil}
	}
}

// Update routes messages by application state.
func (m *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.welcome.SetSize(msg.Width, msg.Height)
		// Chat keeps its layout current even while the welcome screen shows.
		var cmd tea.Cmd
		m.chatModel, cmd = m.chatModel.Update(msg)
		return m, cmd

	case chat.PingResultMsg:
		m.welcome.SetReachable(msg.Reachable)
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.state == StateWelcome {
			if msg.Type == tea.KeyEnter {
				m.state = StateChat
			}
			return m, nil
		}
	}

	if m.state == StateChat {
		var cmd tea.Cmd
		m.chatModel, cmd = m.chatModel.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the active screen.
func (m *appModel) View() string {
	if m.state == StateWelcome {
		return m.welcome.View()
	}
	return m.chatModel.View()
}
