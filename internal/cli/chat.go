// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Interactive chat command handler for the parley CLI.
//
// Handles "parley chat", a line-based REPL for terminals where the
// full-screen TUI is unwanted (ssh sessions, simple terminals, scripts
// driving a pty).
//
// Interactive commands:
//   /help, /h      Show available commands
//   /clear, /c     Clear conversation history (keeps the session)
//   /session       Show the current session id
//   /quit, /q      Exit chat
//   Ctrl+D         Exit chat
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"

	"github.com/morganforge/parley/internal/config"
	"github.com/morganforge/parley/internal/model"
	"github.com/morganforge/parley/internal/ui/styles"
)

// chatApology matches the transcript apology used by the TUI.
const chatApology = "Sorry, something went wrong while getting a response. Please try again."

// =============================================================================
// STYLES
// =============================================================================

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(styles.Cyan).
			Bold(true)

	welcomeStyle = lipgloss.NewStyle().
			Foreground(styles.Purple).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary)

	commandStyle = lipgloss.NewStyle().
			Foreground(styles.Emerald)
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// chatREPL provides input history and line editing for interactive chat.
type chatREPL struct {
	line        *liner.State
	historyFile string
}

// newChatREPL creates a REPL with input history support.
func newChatREPL() *chatREPL {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}
	historyFile := filepath.Join(configDir, "chat_history")

	if f, err := os.Open(historyFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}

	return &chatREPL{line: line, historyFile: historyFile}
}

// Close saves history and closes the liner.
func (r *chatREPL) Close() {
	if f, err := os.Create(r.historyFile); err == nil {
		r.line.WriteHistory(f)
		f.Close()
	}
	r.line.Close()
}

// Prompt reads one line of input with history navigation.
func (r *chatREPL) Prompt(prompt string) (string, error) {
	input, err := r.line.Prompt(prompt)
	if err == nil && strings.TrimSpace(input) != "" {
		r.line.AppendHistory(input)
	}
	return input, err
}

// =============================================================================
// CHAT COMMAND
// =============================================================================

// RunChat runs the line-based interactive chat loop.
func RunChat(args *Args) error {
	client := newClient(args)
	conversation := model.NewConversation()

	repl := newChatREPL()
	defer repl.Close()

	if !args.Quiet {
		fmt.Println(welcomeStyle.Render("parley chat"))
		fmt.Println(infoStyle.Render("assistant: " + client.BaseURL()))
		fmt.Println(infoStyle.Render("type /help for commands, /quit to exit"))
		fmt.Println()
	}

	for {
		input, err := repl.Prompt(promptStyle.Render("> "))
		if err == io.EOF || err == liner.ErrPromptAborted {
			fmt.Println()
			return nil
		}
		if err != nil {
			return err
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			if quit := handleSlashCommand(input, conversation); quit {
				return nil
			}
			continue
		}

		conversation.AddUserMessage(input)

		// One request at a time: the loop blocks here until the round
		// trip settles, which is the REPL's busy gate.
		ctx, cancel := context.WithTimeout(context.Background(), clientTimeout(args))
		reply, err := client.Chat(ctx, input, conversation.SessionID)
		cancel()

		if err != nil {
			conversation.AddAssistantMessage(chatApology, nil)
			fmt.Println(styles.RenderError(chatApology))
			continue
		}

		conversation.AddAssistantMessage(reply.Message, reply.Raw)
		conversation.SetSessionID(reply.SessionID)

		printReply(reply.Message, args.Plain)
		fmt.Println()
	}
}

// handleSlashCommand executes a /command. Returns true to exit the loop.
func handleSlashCommand(input string, conversation *model.Conversation) bool {
	switch strings.ToLower(strings.Fields(input)[0]) {
	case "/quit", "/q", "/exit":
		return true

	case "/clear", "/c":
		conversation.Clear()
		fmt.Println(infoStyle.Render("conversation cleared"))

	case "/session":
		fmt.Println(infoStyle.Render("session: " + conversation.SessionID))

	case "/help", "/h":
		fmt.Println(commandStyle.Render("/help") + "     show this help")
		fmt.Println(commandStyle.Render("/clear") + "    clear conversation history")
		fmt.Println(commandStyle.Render("/session") + "  show the current session id")
		fmt.Println(commandStyle.Render("/quit") + "     exit chat")

	default:
		fmt.Println(infoStyle.Render("unknown command; /help lists commands"))
	}
	return false
}
