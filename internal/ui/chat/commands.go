// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/firstverify-chat/internal/export"
	"github.com/jeranaias/firstverify-chat/internal/model"
)

// noticeTTL is how long a status notice stays visible.
const noticeTTL = 4 * time.Second

// =============================================================================
// COMMAND CREATORS
// =============================================================================

// SendCmd posts the conversation to the agent and reports the reply.
// The request has no deadline and cannot be cancelled.
func SendCmd(client Sender, messages []model.WireMessage) tea.Cmd {
	return func() tea.Msg {
		if client == nil {
			return ChatErrorMsg{Err: errors.New("no agent client configured")}
		}
		raw, err := client.Chat(context.Background(), messages)
		if err != nil {
			return ChatErrorMsg{Err: err}
		}
		return ChatReplyMsg{Raw: raw}
	}
}

// ExportCmd writes the transcript in the background.
func ExportCmd(t *model.Transcript, format export.Format, dir string) tea.Cmd {
	return func() tea.Msg {
		opts := export.DefaultOptions()
		opts.OutputDir = dir
		path, err := export.Export(t, format, opts)
		return ExportDoneMsg{Path: path, Err: err}
	}
}

// CopyCmd puts text on the system clipboard.
func CopyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return CopyDoneMsg{Err: clipboard.WriteAll(text)}
	}
}

func expireNoticeCmd(id int) tea.Cmd {
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{id: id}
	})
}
