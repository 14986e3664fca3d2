// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - single question command handler for the shoptalk CLI.
//
// Sends one question to the backend and prints the answer. On a TTY the
// answer is rendered as terminal markdown; piped output stays plain so it
// can be processed by other tools.
//
// Examples:
//   shoptalk ask "What laptops do you sell?"
//   shoptalk ask --session abc123 "And in 15 inch?"
//   shoptalk ask --json "warranty terms"
//   cat question.txt | shoptalk ask
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"

	"shoptalk/internal/backend"
	"shoptalk/internal/config"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// markdownRenderer renders answers as terminal markdown. nil when the
// renderer could not be built; output then falls back to plain text.
var markdownRenderer *glamour.TermRenderer

func init() {
	var err error
	markdownRenderer, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		markdownRenderer = nil
	}
}

// renderMarkdown renders markdown content for terminal display.
// Returns the content unchanged if rendering fails.
func renderMarkdown(content string) string {
	if markdownRenderer == nil {
		return content
	}

	rendered, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// displayAnswer prints an answer, markdown-rendered when on a TTY and
// markdown is enabled.
func displayAnswer(answer string, useMarkdown bool) {
	if useMarkdown && IsStdoutTTY() {
		fmt.Print(renderMarkdown(answer))
	} else {
		fmt.Println(answer)
	}
}

// =============================================================================
// ASK HANDLER
// =============================================================================

// HandleAskCommand handles the "ask" command.
func HandleAskCommand(args Args) error {
	cfg := config.Global()

	question := args.Query

	// Piped stdin is an alternative question source
	if question == "" && IsStdinPiped() {
		reader := bufio.NewReader(os.Stdin)
		stdinData, err := io.ReadAll(reader)
		if err == nil && len(stdinData) > 0 {
			question = strings.TrimSpace(string(stdinData))
			if !args.Quiet && !args.JSON {
				fmt.Fprintf(os.Stderr, "%s Read question from stdin (%d bytes)\n",
					infoStyle.Render("[+]"), len(stdinData))
			}
		}
	}

	if question == "" {
		err := NewUsageError("no question provided. Usage: shoptalk ask \"your question\"")
		if args.JSON {
			NewJSONErrorResponse("ask", err).Print()
		}
		return err
	}

	// Resolve model and memory depth: flag > config
	model := cfg.Chat.Model
	if args.Model != "" {
		if !backend.ValidModel(args.Model) {
			err := NewUsageError("unknown model %q (available: %s)",
				args.Model, strings.Join(backend.Models, ", "))
			if args.JSON {
				NewJSONErrorResponse("ask", err).Print()
			}
			return err
		}
		model = args.Model
	}

	maxMemory := cfg.Chat.MaxMemory
	if args.Memory != 0 {
		if !backend.ValidMemoryDepth(args.Memory) {
			err := NewUsageError("invalid memory depth %d (choose from 5, 10, 15, 20)", args.Memory)
			if args.JSON {
				NewJSONErrorResponse("ask", err).Print()
			}
			return err
		}
		maxMemory = args.Memory
	}

	client := backend.NewClientWithConfig(cfg.BackendClientConfig())

	start := time.Now()
	resp, err := client.Search(context.Background(), backend.SearchRequest{
		UserInput: question,
		Model:     model,
		SessionID: args.SessionID,
		MaxMemory: maxMemory,
	})
	duration := time.Since(start)

	if err != nil {
		if args.JSON {
			NewJSONErrorResponse("ask", err).Print()
		}
		return err
	}

	if args.JSON {
		data := AskData{
			Response:   resp.Result,
			Model:      model,
			SessionID:  resp.SessionID,
			HasHistory: resp.HasConversationHistory,
			MaxMemory:  maxMemory,
			DurationMs: duration.Milliseconds(),
		}
		return NewJSONResponse("ask", data).Print()
	}

	displayAnswer(resp.Result, !args.NoMarkdown && cfg.UI.Markdown)

	// The session id lets a follow-up question reuse server memory
	if !args.Quiet && resp.SessionID != "" {
		fmt.Fprintf(os.Stderr, "\n%s %s  %s %s\n",
			summaryLabelStyle.Render("Session:"),
			summaryValueStyle.Render(resp.SessionID),
			summaryLabelStyle.Render("Time:"),
			duration.Round(time.Millisecond).String())
		fmt.Fprintf(os.Stderr, "%s\n",
			infoStyle.Render("Continue with: shoptalk ask --session "+resp.SessionID+" \"...\""))
	}

	return nil
}
