// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/firstverify-chat/internal/ui/styles"
)

// DefaultPlaceholder is shown in the empty input.
const DefaultPlaceholder = "Ask anything..."

// =============================================================================
// INPUT AREA COMPONENT
// =============================================================================

// InputArea is the single-line message input with a send hint.
type InputArea struct {
	input textinput.Model
	width int
	// disabled mirrors the in-flight request; keystrokes still edit the
	// text but the hint shows that sending is unavailable.
	disabled bool
	theme    *styles.Theme
}

// NewInputArea creates a focused input.
func NewInputArea(theme *styles.Theme) InputArea {
	ti := textinput.New()
	ti.Placeholder = DefaultPlaceholder
	ti.CharLimit = 4096
	ti.Prompt = "> "
	ti.PromptStyle = theme.InputPrompt
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.TextPrimary)
	ti.PlaceholderStyle = theme.InputPlaceholder
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(styles.Sage)
	ti.Focus()

	in := InputArea{input: ti, theme: theme}
	in.SetWidth(80)
	return in
}

// SetWidth sets the outer width, border included.
func (i *InputArea) SetWidth(width int) {
	i.width = width
	inner := width - 16
	if inner < 10 {
		inner = 10
	}
	i.input.Width = inner
}

// SetDisabled marks whether sending is currently possible.
func (i *InputArea) SetDisabled(disabled bool) {
	i.disabled = disabled
}

// Value returns the current text.
func (i InputArea) Value() string {
	return i.input.Value()
}

// SetValue replaces the text.
func (i *InputArea) SetValue(v string) {
	i.input.SetValue(v)
}

// Reset clears the text.
func (i *InputArea) Reset() {
	i.input.Reset()
}

// Focus focuses the input.
func (i *InputArea) Focus() tea.Cmd {
	return i.input.Focus()
}

// Update forwards key input to the text field.
func (i InputArea) Update(msg tea.Msg) (InputArea, tea.Cmd) {
	var cmd tea.Cmd
	i.input, cmd = i.input.Update(msg)
	return i, cmd
}

// View renders the bordered input.
func (i InputArea) View() string {
	hint := i.theme.ShortcutKey.Render("enter") + " " + i.theme.ShortcutDesc.Render("send")
	if i.disabled {
		hint = i.theme.ShortcutDesc.Render("waiting...")
	}
	row := lipgloss.JoinHorizontal(lipgloss.Center, i.input.View(), "  ", hint)

	w := i.width - 2
	if w < 20 {
		w = 20
	}
	return i.theme.InputContainer.Width(w).Render(row)
}
