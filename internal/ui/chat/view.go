// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/firstverify-chat/internal/ui/components"
)

// =============================================================================
// LAYOUT CONSTANTS
// =============================================================================

const (
	headerHeight = 2 // title line plus bottom border
	inputHeight  = 3 // bordered single line
	statusHeight = 1

	// splitMinWidth is the narrowest terminal that shows the panel beside
	// the transcript; narrower ones stack it underneath.
	splitMinWidth = 100
)

// =============================================================================
// LAYOUT
// =============================================================================

// panelGeometry returns the outer size of the analysis panel and whether it
// sits beside the transcript.
func (m Model) panelGeometry() (width, height int, beside bool) {
	body := m.bodyHeight()
	if m.width >= splitMinWidth {
		return m.width * 2 / 5, body, true
	}
	h := body * 2 / 5
	if h < 6 {
		h = 6
	}
	return m.width, h, false
}

func (m Model) bodyHeight() int {
	h := m.height - headerHeight - inputHeight - statusHeight
	if m.showHelp {
		h -= lipgloss.Height(m.help.FullHelpView(m.keys.FullHelp()))
	}
	if h < 4 {
		h = 4
	}
	return h
}

// layout sizes every component for the current stage and terminal.
func (m *Model) layout() {
	width, height := m.width, m.height
	if width == 0 {
		width, height = 80, 24
		m.width, m.height = width, height
	}
	m.theme.SetSize(width, height)
	m.status.SetWidth(width)
	m.help.Width = width

	if m.stage == StageHero {
		m.hero.SetSize(width, height-statusHeight)
		m.input.SetWidth(components.HeroInputWidth(width))
		return
	}

	m.input.SetWidth(width)

	panelW, panelH, beside := m.panelGeometry()
	// Border and padding take two cells on each side.
	m.bars.SetSize(panelW - 4)
	m.inspector.SetWidth(panelW - 4)

	vpW, vpH := width, m.bodyHeight()
	if beside {
		vpW = width - panelW
	} else {
		vpH -= panelH
	}
	if vpH < 1 {
		vpH = 1
	}
	m.viewport.Width = vpW
	m.viewport.Height = vpH
	m.refreshTranscript()
}

// refreshTranscript re-renders the transcript into the viewport and keeps
// the newest message in view.
func (m *Model) refreshTranscript() {
	if m.stage == StageHero {
		return
	}
	w := m.viewport.Width - 1
	content := components.RenderTranscript(m.transcript.Messages(), m.theme, m.markdown, w, true)
	if m.loading {
		content += "\n\n" + m.spinner.View() + " " + m.theme.ThinkingText.Render("Thinking...")
	}
	m.viewport.SetContent(content)
	m.viewport.GotoBottom()
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the whole screen.
func (m Model) View() string {
	if m.stage == StageHero {
		return lipgloss.JoinVertical(lipgloss.Left,
			m.hero.View(m.input.View()),
			m.status.View(),
		)
	}

	header := m.theme.Header.Width(m.width).Render(components.HeroTitle)

	panelW, panelH, beside := m.panelGeometry()
	panel := m.renderPanel(panelW, panelH)

	var body string
	if beside {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.viewport.View(), panel)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), panel)
	}

	parts := []string{header, body, m.input.View()}
	if m.showHelp {
		parts = append(parts, m.help.FullHelpView(m.keys.FullHelp()))
	}
	parts = append(parts, m.status.View())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderPanel draws the analysis panel, or the payload inspector when it
// is open, clipped to the given outer size.
func (m Model) renderPanel(width, height int) string {
	var content string
	if m.inspector.Visible() {
		content = m.inspector.View(m.bars.Payload())
	} else {
		content = m.theme.PanelTitle.Render("Analysis") + "\n\n" + m.bars.View()
	}

	innerH := height - 2
	if innerH < 1 {
		innerH = 1
	}
	lines := strings.Split(content, "\n")
	if len(lines) > innerH {
		lines = lines[:innerH]
	}

	return m.theme.Panel.
		Width(width - 2).
		Height(innerH).
		Render(strings.Join(lines, "\n"))
}
