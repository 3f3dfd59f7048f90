// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// Markdown renders assistant replies for the terminal. The renderer is
// rebuilt only when the wrap width changes.
type Markdown struct {
	width    int
	style    string
	renderer *glamour.TermRenderer
}

// NewMarkdown creates a renderer for a dark or light background.
func NewMarkdown(width int, dark bool) *Markdown {
	style := "light"
	if dark {
		style = "dark"
	}
	m := &Markdown{style: style}
	m.SetWidth(width)
	return m
}

// SetWidth changes the wrap width.
func (m *Markdown) SetWidth(width int) {
	if width < 20 {
		width = 20
	}
	if width == m.width && m.renderer != nil {
		return
	}
	m.width = width

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(m.style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		// Plain text from here on
		m.renderer = nil
		return
	}
	m.renderer = r
}

// Render returns content as styled terminal text, or content unchanged if
// rendering fails.
func (m *Markdown) Render(content string) string {
	if m == nil || m.renderer == nil {
		return content
	}
	out, err := m.renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.Trim(out, "\n")
}
