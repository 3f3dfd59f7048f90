// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"encoding/json"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/firstverify-chat/internal/model"
	"github.com/jeranaias/firstverify-chat/internal/ui/styles"
)

// =============================================================================
// PAYLOAD INSPECTOR
// =============================================================================

// Inspector shows the decoded analysis payload as highlighted JSON.
type Inspector struct {
	theme   *styles.Theme
	width   int
	visible bool
}

// NewInspector creates a hidden inspector.
func NewInspector(theme *styles.Theme) Inspector {
	return Inspector{theme: theme, width: 60}
}

// Toggle shows or hides the inspector.
func (i *Inspector) Toggle() {
	i.visible = !i.visible
}

// Hide hides the inspector.
func (i *Inspector) Hide() {
	i.visible = false
}

// Visible reports whether the inspector is showing.
func (i Inspector) Visible() bool {
	return i.visible
}

// SetWidth sets the outer width.
func (i *Inspector) SetWidth(width int) {
	i.width = width
}

// View renders p, or a hint when there is nothing to inspect.
func (i Inspector) View(p *model.Payload) string {
	title := i.theme.PanelTitle.Render("Payload")
	var body string
	if p == nil {
		body = i.theme.Placeholder.Render("No analysis received yet")
	} else {
		body = PayloadJSON(p, true)
	}

	w := i.width - 4
	if w < 20 {
		w = 20
	}
	return i.theme.Inspector.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, title, "", body))
}

// PayloadJSON pretty-prints p. With highlight set the output carries
// terminal colors.
func PayloadJSON(p *model.Payload, highlight bool) string {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err.Error()
	}
	if !highlight {
		return string(data)
	}
	return highlightCode(string(data), "json")
}

// highlightCode applies syntax highlighting using chroma. It returns code
// unchanged if any stage fails.
func highlightCode(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get("monokai")
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return strings.TrimRight(buf.String(), "\n")
}
