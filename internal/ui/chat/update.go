// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/firstverify-chat/internal/export"
	"github.com/jeranaias/firstverify-chat/internal/model"
	"github.com/jeranaias/firstverify-chat/internal/ui/components"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update handles every message the chat screen receives.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case ChatReplyMsg:
		return m.handleReply(msg)

	case ChatErrorMsg:
		return m.handleError(msg)

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refreshTranscript()
		return m, cmd

	case ConfigReloadedMsg:
		return m.handleConfigReload(msg)

	case ExportDoneMsg:
		if msg.Err != nil {
			m.logger.Warn("export failed", "error", msg.Err)
			m.transcript.Append(model.NewSystemMessage("[FAIL] Export failed: " + msg.Err.Error()))
		} else {
			m.logger.Info("transcript exported", "path", msg.Path)
			m.transcript.Append(model.NewSystemMessage("[OK] Exported to " + msg.Path))
		}
		m.refreshTranscript()
		return m, nil

	case CopyDoneMsg:
		if msg.Err != nil {
			return m.notify("Copy failed: " + msg.Err.Error())
		}
		return m.notify("Copied reply to clipboard")

	case noticeExpiredMsg:
		if msg.id == m.noticeID {
			m.status.SetNotice("")
		}
		return m, nil
	}

	// Animation ticks
	var cmd tea.Cmd
	m.bars, cmd = m.bars.Update(msg)
	return m, cmd
}

// handleKey routes key presses. Bindings are checked first; everything
// else edits the input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.NextBar):
		m.bars.FocusNext()
		return m, nil

	case key.Matches(msg, m.keys.PrevBar):
		m.bars.FocusPrev()
		return m, nil

	case key.Matches(msg, m.keys.Blur):
		m.bars.Blur()
		m.inspector.Hide()
		m.showHelp = false
		m.layout()
		return m, nil

	case key.Matches(msg, m.keys.Inspect):
		m.inspector.Toggle()
		return m, nil

	case key.Matches(msg, m.keys.Export):
		return m, ExportCmd(m.transcript.Clone(), export.FormatMarkdown, m.exportDir)

	case key.Matches(msg, m.keys.Copy):
		last := m.transcript.LastAssistant()
		if last == nil {
			return m.notify("Nothing to copy")
		}
		return m, CopyCmd(last.Content)

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.layout()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// =============================================================================
// CONVERSATION
// =============================================================================

// submit sends the input as a user message. Blank input and input typed
// while a request is in flight are left alone.
func (m Model) submit() (tea.Model, tea.Cmd) {
	text := m.input.Value()
	if strings.TrimSpace(text) == "" || m.loading {
		return m, nil
	}

	m.transcript.Append(model.NewUserMessage(text))
	m.input.Reset()
	m.setLoading(true)

	if m.stage == StageHero {
		m.stage = StageActive
		m.layout()
	}
	m.refreshTranscript()

	wire := m.transcript.WireMessages()
	m.logger.Debug("sending conversation", "messages", len(wire))
	return m, tea.Batch(SendCmd(m.client, wire), m.spinner.Tick)
}

// handleReply extracts the analysis block and appends the reply.
func (m Model) handleReply(msg ChatReplyMsg) (tea.Model, tea.Cmd) {
	text, payload := m.extractor.Extract(msg.Raw)
	m.transcript.Append(model.NewAssistantMessage(text, payload))
	m.setLoading(false)
	m.refreshTranscript()

	cmd := m.bars.SetPayload(m.transcript.LatestPayload())
	return m, cmd
}

// handleError appends the fixed apology; the cause only goes to the log.
func (m Model) handleError(msg ChatErrorMsg) (tea.Model, tea.Cmd) {
	m.logger.Error("chat request failed", "error", msg.Err)
	m.transcript.Append(model.NewAssistantMessage(model.FallbackReply, nil))
	m.setLoading(false)
	m.refreshTranscript()
	return m, nil
}

func (m *Model) setLoading(loading bool) {
	m.loading = loading
	m.input.SetDisabled(loading)
}

// =============================================================================
// CONFIG RELOAD
// =============================================================================

// handleConfigReload applies UI settings from a changed config file.
// Agent settings are read once at startup.
func (m Model) handleConfigReload(msg ConfigReloadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.logger.Warn("config reload failed", "error", msg.Err)
		return m.notify("Config not reloaded: " + msg.Err.Error())
	}
	if msg.Config == nil {
		return m, nil
	}

	prev := m.cfg
	m.cfg = msg.Config
	m.bars.SetBarWidth(m.cfg.UI.BarWidth)
	m.bars.SetAnimation(m.cfg.UI.Animate, m.cfg.UI.TypingInterval.Duration)
	m.logger.Info("config reloaded", "animate", m.cfg.UI.Animate, "bar_width", m.cfg.UI.BarWidth)

	if prev != nil && prev.Agent != m.cfg.Agent {
		return m.notify("Config reloaded; agent changes apply on restart")
	}
	return m.notify("Config reloaded")
}

// =============================================================================
// STATUS NOTICES
// =============================================================================

// notify shows a notice in the status bar until it expires.
func (m Model) notify(text string) (tea.Model, tea.Cmd) {
	m.noticeID++
	m.status.SetNotice(text)
	return m, expireNoticeCmd(m.noticeID)
}

// updateShortcuts fills the status bar hints from the key map.
func (m *Model) updateShortcuts() {
	bindings := m.keys.ShortHelp()
	shortcuts := make([]components.Shortcut, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		shortcuts = append(shortcuts, components.Shortcut{Key: h.Key, Desc: h.Desc})
	}
	m.status.SetShortcuts(shortcuts)
}
