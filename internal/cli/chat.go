// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - interactive chat command handler for the shoptalk CLI.
//
// A readline-style REPL for environments where the full-screen TUI is
// unwanted (ssh sessions, screen readers, simple terminals). Input history
// persists across sessions in the config directory.
//
// Interactive commands:
//   /help, /h           Show available commands
//   /clear, /c          Clear the local transcript
//   /reset, /r          Start a new conversation (drops server memory)
//   /model [name]       Show or switch model
//   /memory [n]         Show or set memory depth
//   /status, /s         Show session details
//   /history            Show the transcript so far
//   /quit, /q           Exit
//   Ctrl+C, Ctrl+D      Exit
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/peterh/liner"

	"shoptalk/internal/backend"
	"shoptalk/internal/config"
	"shoptalk/internal/model"
	"shoptalk/internal/session"
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// ChatCLI provides input history and line editing for interactive chat.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a new ChatCLI with input history support.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}
	historyFile := filepath.Join(configDir, "chat_history")

	cli := &ChatCLI{
		line:        line,
		historyFile: historyFile,
	}
	cli.LoadHistory()
	return cli
}

// LoadHistory loads command history from file.
func (c *ChatCLI) LoadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads a line of input with the given prompt. Arrow keys
// navigate history.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// SaveHistory persists command history with owner-only permissions.
func (c *ChatCLI) SaveHistory() {
	if err := config.EnsureConfigDir(); err != nil {
		return
	}

	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	c.line.WriteHistory(f)
}

// Close saves history and closes the liner.
func (c *ChatCLI) Close() {
	c.SaveHistory()
	c.line.Close()
}

// =============================================================================
// SESSION STATE
// =============================================================================

// ChatSession holds the state for an interactive chat session.
type ChatSession struct {
	Conversation *model.Conversation
	Session      *session.State
	Client       *backend.Client
	Config       *config.Config

	Model       string
	UseMarkdown bool
	Quiet       bool
	Verbose     bool

	StartTime time.Time

	InputCLI *ChatCLI
}

// NewChatSession creates a new chat session from CLI args and config.
func NewChatSession(args Args) (*ChatSession, error) {
	cfg := config.Global()

	modelName := cfg.Chat.Model
	if args.Model != "" {
		if !backend.ValidModel(args.Model) {
			return nil, NewUsageError("unknown model %q (available: %s)",
				args.Model, strings.Join(backend.Models, ", "))
		}
		modelName = args.Model
	}

	maxMemory := cfg.Chat.MaxMemory
	if args.Memory != 0 {
		if !backend.ValidMemoryDepth(args.Memory) {
			return nil, NewUsageError("invalid memory depth %d (choose from 5, 10, 15, 20)", args.Memory)
		}
		maxMemory = args.Memory
	}

	return &ChatSession{
		Conversation: model.NewConversationWithModel(modelName),
		Session:      session.New(maxMemory),
		Client:       backend.NewClientWithConfig(cfg.BackendClientConfig()),
		Config:       cfg,
		Model:        modelName,
		UseMarkdown:  !args.NoMarkdown && cfg.UI.Markdown,
		Quiet:        args.Quiet,
		Verbose:      args.Verbose,
		StartTime:    time.Now(),
		InputCLI:     NewChatCLI(),
	}, nil
}

// =============================================================================
// CHAT HANDLER
// =============================================================================

// HandleChatCommand handles the "chat" command.
func HandleChatCommand(args Args) error {
	if err := RequiresTTY("chat"); err != nil {
		return err
	}

	sess, err := NewChatSession(args)
	if err != nil {
		return err
	}

	if !sess.Quiet {
		printChatWelcome(sess)
	}

	defer sess.InputCLI.Close()
	defer endServerSession(sess)

	for {
		input, err := sess.InputCLI.ReadInput(promptStyle.Render("shoptalk> "))
		if err != nil {
			// Ctrl+C (ErrPromptAborted) or Ctrl+D (EOF) both exit
			fmt.Println()
			printExitSummary(sess)
			return nil
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			shouldContinue, err := handleSlashCommand(input, sess)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("[Error]"), err)
			}
			if !shouldContinue {
				printExitSummary(sess)
				return nil
			}
			continue
		}

		if strings.EqualFold(input, "exit") || strings.EqualFold(input, "quit") {
			printExitSummary(sess)
			return nil
		}

		if err := processMessage(sess, input); err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("[Error]"), err)
		}
	}
}

// endServerSession deletes the server-side session, best-effort.
func endServerSession(sess *ChatSession) {
	sessionID := sess.Session.SessionID()
	if sessionID == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sess.Client.EndSession(ctx, sessionID); err != nil && sess.Verbose {
		fmt.Fprintf(os.Stderr, "%s session cleanup failed: %v\n",
			warningStyle.Render("[!]"), err)
	}
}

// =============================================================================
// MESSAGE PROCESSING
// =============================================================================

// processMessage sends a message to the backend and prints the reply.
func processMessage(sess *ChatSession, input string) error {
	sess.Conversation.AddUserMessage(input)

	start := time.Now()
	resp, err := sess.Client.Search(context.Background(), backend.SearchRequest{
		UserInput: input,
		Model:     sess.Model,
		SessionID: sess.Session.SessionID(),
		MaxMemory: sess.Session.MaxMemory(),
	})
	duration := time.Since(start)

	if err != nil {
		// The transcript gets the fixed fallback; stderr gets the detail
		const fallback = "Sorry, something went wrong."
		sess.Conversation.AddAssistantMessage(fallback)
		fmt.Println()
		fmt.Println(fallback)
		fmt.Println()
		return err
	}

	sess.Session.AdoptResponse(resp)
	sess.Conversation.AddAssistantMessage(resp.Result)

	fmt.Println()
	displayAnswer(resp.Result, sess.UseMarkdown)
	fmt.Println()

	if sess.Verbose {
		fmt.Fprintf(os.Stderr, "%s %s\n",
			summaryLabelStyle.Render("Time:"),
			duration.Round(time.Millisecond).String())
	}

	return nil
}

// =============================================================================
// SLASH COMMANDS
// =============================================================================

// handleSlashCommand processes a REPL slash command. The returned bool is
// false when the REPL should exit.
func handleSlashCommand(input string, sess *ChatSession) (bool, error) {
	parts := strings.Fields(strings.TrimPrefix(input, "/"))
	if len(parts) == 0 {
		return true, nil
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "h", "?":
		printChatHelp()
		return true, nil

	case "quit", "q", "exit":
		return false, nil

	case "clear", "c":
		sess.Conversation.ClearHistory()
		fmt.Println(infoStyle.Render("Transcript cleared. Server memory kept; use /reset for a clean slate."))
		return true, nil

	case "reset", "r", "new":
		endServerSession(sess)
		sess.Conversation.ClearHistory()
		sess.Session.Reset()
		fmt.Println(infoStyle.Render("Started a new conversation."))
		return true, nil

	case "model", "m":
		if len(args) == 0 {
			fmt.Printf("Current model: %s (available: %s)\n",
				sess.Model, strings.Join(backend.Models, ", "))
			return true, nil
		}
		name := strings.ToLower(args[0])
		if !backend.ValidModel(name) {
			return true, NewUsageError("unknown model %q (available: %s)",
				name, strings.Join(backend.Models, ", "))
		}
		sess.Model = name
		fmt.Println(infoStyle.Render("Switched model to " + name + ". Takes effect on the next message."))
		return true, nil

	case "memory", "mem":
		if len(args) == 0 {
			fmt.Printf("Memory depth: %d exchanges (choose from 5, 10, 15, 20)\n",
				sess.Session.MaxMemory())
			return true, nil
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || !sess.Session.SetMaxMemory(n) {
			return true, NewUsageError("invalid memory depth %q (choose from 5, 10, 15, 20)", args[0])
		}
		fmt.Printf("%s\n", infoStyle.Render(fmt.Sprintf("Memory depth set to %d exchanges.", n)))
		return true, nil

	case "status", "s":
		printSessionStatus(sess)
		return true, nil

	case "history":
		printHistory(sess)
		return true, nil

	default:
		return true, NewUsageError("unknown command /%s (try /help)", cmd)
	}
}

// =============================================================================
// DISPLAY
// =============================================================================

func printChatWelcome(sess *ChatSession) {
	fmt.Println(welcomeStyle.Render("shoptalk chat"))
	fmt.Printf("%s %s  %s %s  %s %d\n",
		infoStyle.Render("model:"), sess.Model,
		infoStyle.Render("backend:"), sess.Config.Backend.URL,
		infoStyle.Render("memory:"), sess.Session.MaxMemory())
	fmt.Println(infoStyle.Render("Type /help for commands, Ctrl+D to exit."))
	fmt.Println()
}

func printChatHelp() {
	rows := []struct{ cmd, desc string }{
		{"/help", "Show this help"},
		{"/clear", "Clear the local transcript"},
		{"/reset", "Start a new conversation (drops server memory)"},
		{"/model [name]", "Show or switch model (gemini, huggingface)"},
		{"/memory [n]", "Show or set memory depth (5, 10, 15, 20)"},
		{"/status", "Show session details"},
		{"/history", "Show the transcript so far"},
		{"/quit", "Exit"},
	}

	fmt.Println()
	for _, row := range rows {
		fmt.Printf("  %s  %s\n",
			commandStyle.Render(fmt.Sprintf("%-14s", row.cmd)),
			infoStyle.Render(row.desc))
	}
	fmt.Println()
}

func printSessionStatus(sess *ChatSession) {
	snap := sess.Session.Snapshot()

	sessionLine := "none"
	if snap.SessionID != "" {
		sessionLine = fmt.Sprintf("%s (%d exchanges)", snap.SessionID, snap.Exchanges)
	}

	fmt.Println()
	fmt.Printf("  %s %s\n", summaryLabelStyle.Render("Model:"), sess.Model)
	fmt.Printf("  %s %d exchanges\n", summaryLabelStyle.Render("Memory:"), snap.MaxMemory)
	fmt.Printf("  %s %s\n", summaryLabelStyle.Render("Session:"), sessionLine)
	fmt.Printf("  %s %s\n", summaryLabelStyle.Render("Backend:"), sess.Config.Backend.URL)
	fmt.Println()
}

func printHistory(sess *ChatSession) {
	if sess.Conversation.IsEmpty() {
		fmt.Println(infoStyle.Render("No messages yet."))
		return
	}

	fmt.Println()
	for _, msg := range sess.Conversation.GetHistory() {
		label := "You"
		if msg.Role == model.RoleAssistant {
			label = "Assistant"
		} else if msg.Role == model.RoleSystem {
			label = "System"
		}
		fmt.Printf("%s %s\n%s\n\n",
			promptStyle.Render(label),
			infoStyle.Render(msg.Timestamp.Format("15:04")),
			msg.Content)
	}
}

func printExitSummary(sess *ChatSession) {
	if sess.Quiet {
		return
	}

	duration := time.Since(sess.StartTime)
	questions := 0
	for _, msg := range sess.Conversation.GetHistory() {
		if msg.Role == model.RoleUser {
			questions++
		}
	}

	separator := strings.Repeat("─", 45)
	fmt.Println(separatorStyle.Render(separator))
	fmt.Printf("%s %s  %s %s\n",
		summaryLabelStyle.Render("Questions:"),
		summaryValueStyle.Render(strconv.Itoa(questions)),
		summaryLabelStyle.Render("Duration:"),
		summaryValueStyle.Render(duration.Round(time.Second).String()))
}
