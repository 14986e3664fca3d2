// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"shoptalk/internal/model"
	"shoptalk/internal/ui/components"
	"shoptalk/internal/util"
)

// =============================================================================
// MAIN RENDER
// =============================================================================

// renderChat assembles the full chat screen.
func (m Model) renderChat() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	header := m.renderHeader()
	inputArea := m.renderInputArea()
	statusBar := m.renderStatusBar()

	sections := []string{header}

	if m.sessionBannerVisible() {
		sections = append(sections, m.renderSessionBanner())
	}

	// The viewport gets whatever height the fixed chrome leaves over
	chromeHeight := lipgloss.Height(header) + lipgloss.Height(inputArea) + lipgloss.Height(statusBar)
	if m.sessionBannerVisible() {
		chromeHeight += 1
	}
	if m.lastError != nil {
		chromeHeight += lipgloss.Height(m.renderErrorBox())
	}

	viewportHeight := m.height - chromeHeight
	if viewportHeight < 1 {
		viewportHeight = 1
	}

	body := m.viewport.View()
	if bodyHeight := lipgloss.Height(body); bodyHeight < viewportHeight {
		body += strings.Repeat("\n", viewportHeight-bodyHeight)
	}
	sections = append(sections, body)

	if m.lastError != nil {
		sections = append(sections, m.renderErrorBox())
	}

	sections = append(sections, inputArea, statusBar)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// =============================================================================
// HEADER
// =============================================================================

func (m Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render("shoptalk")
	subtitle := m.theme.HeaderSubtitle.Render("model: " + m.modelName)

	line := title + "  " + subtitle
	return m.theme.Header.Width(m.width).Render(line)
}

// =============================================================================
// SESSION BANNER
// =============================================================================

// renderSessionBanner shows that the server holds prior context.
func (m Model) renderSessionBanner() string {
	n := m.session.Exchanges()
	label := fmt.Sprintf(" Continuing conversation (%d %s remembered) ", n, pluralExchanges(n))
	return m.theme.SessionBanner.Width(m.width).Render(label)
}

func pluralExchanges(n int) string {
	if n == 1 {
		return "exchange"
	}
	return "exchanges"
}

// =============================================================================
// MESSAGES
// =============================================================================

// renderMessages renders the scrollback content for the viewport.
func (m Model) renderMessages() string {
	if m.conversation.IsEmpty() && m.state != StateWaiting {
		return m.welcome.View()
	}

	var blocks []string
	for _, msg := range m.conversation.GetHistory() {
		blocks = append(blocks, m.renderMessage(msg))
	}

	if m.state == StateWaiting {
		blocks = append(blocks, m.renderThinking())
	}

	return strings.Join(blocks, "\n\n")
}

// renderMessage renders one transcript entry with a role label, timestamp,
// and left-bordered body.
func (m Model) renderMessage(msg *model.Message) string {
	var labelStyle, bodyStyle lipgloss.Style
	var label string

	switch msg.Role {
	case model.RoleUser:
		labelStyle = m.theme.UserLabel
		bodyStyle = m.theme.UserBubble
		label = "You"
	case model.RoleAssistant:
		labelStyle = m.theme.AssistantLabel
		bodyStyle = m.theme.AssistantBubble
		label = "Assistant"
	default:
		labelStyle = m.theme.SystemLabel
		bodyStyle = m.theme.SystemBubble
		label = "System"
	}

	timestamp := m.theme.Timestamp.Render(msg.Timestamp.Format("15:04"))
	header := labelStyle.Render(label) + " " + timestamp

	contentWidth := m.width - 6
	if contentWidth < 20 {
		contentWidth = 20
	}

	var body string
	if msg.Role == model.RoleAssistant {
		body = m.renderContentWithCodeBlocks(msg.Content, contentWidth)
	} else {
		body = wrapText(msg.Content, contentWidth)
	}

	return header + "\n" + bodyStyle.Render(body)
}

// renderContentWithCodeBlocks splits fenced code out of prose. Prose is
// word-wrapped with inline code spans styled; code goes through the
// highlighter untouched so ANSI sequences survive.
func (m Model) renderContentWithCodeBlocks(content string, width int) string {
	var parts []string
	var codeLines []string
	var language string
	inCodeBlock := false

	flushCode := func() {
		code := strings.Join(codeLines, "\n")
		cb := components.NewCodeBlock(language, code)
		cb.SetMaxWidth(width)
		parts = append(parts, cb.Render())
		codeLines = nil
		language = ""
	}

	for _, line := range strings.Split(content, "\n") {
		switch {
		case strings.HasPrefix(line, "```"):
			if inCodeBlock {
				flushCode()
				inCodeBlock = false
			} else {
				language = strings.TrimSpace(strings.TrimPrefix(line, "```"))
				inCodeBlock = true
			}
		case inCodeBlock:
			codeLines = append(codeLines, line)
		default:
			// Wrap before styling so escape codes don't skew the width math
			parts = append(parts, components.ParseInlineCode(wrapText(line, width)))
		}
	}

	// Unclosed fence still renders
	if inCodeBlock && len(codeLines) > 0 {
		flushCode()
	}

	return strings.Join(parts, "\n")
}

// renderThinking shows the in-flight spinner line.
func (m Model) renderThinking() string {
	label := m.theme.AssistantLabel.Render("Assistant")
	return label + "\n" + m.theme.AssistantBubble.Render(m.spinner.View())
}

// =============================================================================
// INPUT AREA
// =============================================================================

func (m Model) renderInputArea() string {
	inner := m.input.View()
	width := m.width - 2
	if width < 10 {
		width = 10
	}
	return m.theme.InputContainer.Width(width).Render(inner)
}

// =============================================================================
// STATUS BAR
// =============================================================================

func (m Model) renderStatusBar() string {
	// syncStatusBar mutates the pointer receiver; safe from a value method
	m.syncStatusBar()
	return m.statusBar.View()
}

// =============================================================================
// ERROR BOX
// =============================================================================

func (m Model) renderErrorBox() string {
	if m.lastError == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.theme.ErrorTitle.Render(m.lastError.Title))
	if m.lastError.Message != "" {
		b.WriteString("\n" + m.theme.ErrorMessage.Render(wrapText(m.lastError.Message, m.width-8)))
	}
	if m.lastError.Tip != "" {
		b.WriteString("\n" + m.theme.ErrorTip.Render(wrapText(m.lastError.Tip, m.width-8)))
	}

	width := m.width - 2
	if width < 20 {
		width = 20
	}
	return m.theme.ErrorBox.Width(width).Render(b.String())
}

// =============================================================================
// HELP OVERLAY
// =============================================================================

func (m Model) renderHelp() string {
	rows := []struct{ key, desc string }{
		{"/help", "Show this help"},
		{"/clear", "Clear the local transcript"},
		{"/reset", "Start a new conversation (forgets server memory)"},
		{"/model [name]", "Show or switch the model (gemini, huggingface)"},
		{"/memory [n]", "Show or set memory depth (5, 10, 15, 20)"},
		{"/status", "Show session details"},
		{"/save", "Export the transcript to Markdown"},
		{"/quit", "Exit"},
		{"", ""},
		{"enter", "Send message"},
		{"tab", "Switch model"},
		{"ctrl+n", "New conversation"},
		{"up/down", "Scroll one line"},
		{"pgup/pgdn", "Scroll half a page"},
		{"home/end", "Jump to top or bottom"},
		{"esc", "Dismiss error"},
		{"ctrl+c", "Quit"},
	}

	var b strings.Builder
	b.WriteString(m.theme.HeaderTitle.Render("Help") + "\n\n")
	for _, row := range rows {
		if row.key == "" {
			b.WriteString("\n")
			continue
		}
		key := m.theme.ShortcutKey.Render(fmt.Sprintf("%-14s", row.key))
		b.WriteString("  " + key + " " + m.theme.ShortcutDesc.Render(row.desc) + "\n")
	}
	b.WriteString("\n" + m.theme.WelcomeHint.Render("Press any key to close"))

	box := m.theme.WelcomeBox.Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// =============================================================================
// TEXT WRAPPING
// =============================================================================

// wrapText word-wraps text to a column budget, preserving existing newlines.
// Words wider than the budget are hard-broken. Width is measured in terminal
// columns, so double-width (CJK) runes count as two.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}

	var out []string
	for _, line := range strings.Split(text, "\n") {
		if util.StringWidth(line) <= width {
			out = append(out, line)
			continue
		}

		var current strings.Builder
		currentLen := 0
		for _, word := range strings.Fields(line) {
			wordLen := util.StringWidth(word)

			if currentLen > 0 && currentLen+1+wordLen > width {
				out = append(out, current.String())
				current.Reset()
				currentLen = 0
			}

			// Hard-break words wider than the whole line
			for wordLen > width {
				head, rest := splitAtColumns(word, width)
				out = append(out, head)
				word = rest
				wordLen = util.StringWidth(word)
			}

			if currentLen > 0 {
				current.WriteString(" ")
				currentLen++
			}
			current.WriteString(word)
			currentLen += wordLen
		}
		out = append(out, current.String())
	}

	return strings.Join(out, "\n")
}

// splitAtColumns breaks a string at a column budget without splitting a
// double-width rune across the boundary.
func splitAtColumns(s string, width int) (head, rest string) {
	cols := 0
	for i, r := range s {
		rw := runewidth.RuneWidth(r)
		// Always take at least one rune so a wide rune at a narrow budget
		// still makes progress
		if cols+rw > width && i > 0 {
			return s[:i], s[i:]
		}
		cols += rw
	}
	return s, ""
}
