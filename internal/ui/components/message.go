// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jeranaias/firstverify-chat/internal/model"
	"github.com/jeranaias/firstverify-chat/internal/ui/styles"
)

// =============================================================================
// MESSAGE BUBBLE COMPONENT
// =============================================================================

// MessageBubble renders one transcript entry.
type MessageBubble struct {
	Message       *model.Message
	Width         int
	ShowTimestamp bool
	theme         *styles.Theme
	markdown      *Markdown
}

// NewMessageBubble creates a bubble. markdown may be nil, in which case
// assistant text is shown as written.
func NewMessageBubble(msg *model.Message, theme *styles.Theme, markdown *Markdown) *MessageBubble {
	return &MessageBubble{
		Message:  msg,
		Width:    80,
		theme:    theme,
		markdown: markdown,
	}
}

// View renders the message bubble
func (b *MessageBubble) View() string {
	switch b.Message.Role {
	case model.RoleUser:
		return b.renderUserBubble()
	case model.RoleAssistant:
		return b.renderAssistantBubble()
	default:
		return b.renderSystemNotice()
	}
}

// ==========================================================================
// USER BUBBLE - sage, right-aligned
// ==========================================================================

func (b *MessageBubble) renderUserBubble() string {
	maxContentWidth := b.Width * 3 / 4
	if maxContentWidth < 20 {
		maxContentWidth = 20
	}
	content := wordwrap.String(b.Message.Content, maxContentWidth-4)
	bubble := b.theme.UserBubble.Render(content)

	header := b.header()
	return lipgloss.JoinVertical(lipgloss.Right,
		lipgloss.PlaceHorizontal(b.Width, lipgloss.Right, header),
		lipgloss.PlaceHorizontal(b.Width, lipgloss.Right, bubble),
	)
}

// ==========================================================================
// ASSISTANT BUBBLE - bordered, left-aligned
// ==========================================================================

func (b *MessageBubble) renderAssistantBubble() string {
	content := b.Message.Content
	if content == "" {
		content = "..."
	}

	inner := b.Width - 6
	if inner < 20 {
		inner = 20
	}
	if b.markdown != nil {
		b.markdown.SetWidth(inner)
		content = b.markdown.Render(content)
	} else {
		content = wordwrap.String(content, inner)
	}

	bubble := b.theme.AssistantBubble.Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, b.header(), bubble)
}

// ==========================================================================
// SYSTEM NOTICE - muted, centered
// ==========================================================================

func (b *MessageBubble) renderSystemNotice() string {
	content := wordwrap.String(b.Message.Content, b.Width-4)
	return lipgloss.PlaceHorizontal(b.Width, lipgloss.Center, b.theme.SystemNotice.Render(content))
}

func (b *MessageBubble) header() string {
	parts := []string{b.theme.RoleLabel.Render(b.Message.Role.DisplayName())}
	if b.ShowTimestamp && !b.Message.Timestamp.IsZero() {
		parts = append(parts, styles.RenderMuted(formatTime(b.Message.Timestamp)))
	}
	return strings.Join(parts, " ")
}

// formatTime shows a clock time for today and a date otherwise.
func formatTime(t time.Time) string {
	now := time.Now()
	if t.Year() == now.Year() && t.YearDay() == now.YearDay() {
		return t.Format("15:04")
	}
	return t.Format("Jan 2 15:04")
}

// =============================================================================
// MESSAGE LIST
// =============================================================================

// RenderTranscript renders messages top to bottom, separated by blank lines.
func RenderTranscript(messages []*model.Message, theme *styles.Theme, markdown *Markdown, width int, timestamps bool) string {
	blocks := make([]string, 0, len(messages))
	for _, msg := range messages {
		if msg == nil {
			continue
		}
		bubble := NewMessageBubble(msg, theme, markdown)
		bubble.Width = width
		bubble.ShowTimestamp = timestamps
		blocks = append(blocks, bubble.View())
	}
	return strings.Join(blocks, "\n\n")
}
