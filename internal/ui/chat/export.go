// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"shoptalk/internal/config"
	"shoptalk/internal/model"
	"shoptalk/internal/util"
)

// =============================================================================
// TRANSCRIPT EXPORT
// =============================================================================

// exportTranscript writes the conversation as Markdown under the config
// directory and returns the written path.
func exportTranscript(conv *model.Conversation) (string, error) {
	base, err := config.ConfigDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(base, "transcripts")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create transcript dir: %w", err)
	}

	name := fmt.Sprintf("chat-%s.md", time.Now().Format("20060102-150405"))
	path := filepath.Join(dir, name)

	data := formatTranscript(conv)
	if err := util.AtomicWriteFile(path, []byte(data), 0644); err != nil {
		return "", fmt.Errorf("failed to write transcript: %w", err)
	}
	return path, nil
}

// formatTranscript renders the conversation as a Markdown document.
func formatTranscript(conv *model.Conversation) string {
	var b strings.Builder

	b.WriteString("# " + conv.GetTitle() + "\n\n")
	b.WriteString("Exported " + time.Now().Format(time.RFC1123) + "\n\n")

	for _, msg := range conv.GetHistory() {
		switch msg.Role {
		case model.RoleUser:
			b.WriteString("## You\n\n")
		case model.RoleAssistant:
			b.WriteString("## Assistant\n\n")
		default:
			b.WriteString("## System\n\n")
		}
		b.WriteString(msg.Content + "\n\n")
	}

	return b.String()
}
