// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/firstverify-chat/internal/ui/styles"
	"github.com/jeranaias/firstverify-chat/internal/util"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// Shortcut is one key hint in the status bar.
type Shortcut struct {
	Key  string
	Desc string
}

// StatusBar is the bottom line: endpoint and transient notice on the left,
// key hints on the right.
type StatusBar struct {
	width     int
	endpoint  string
	notice    string
	shortcuts []Shortcut
	theme     *styles.Theme
}

// NewStatusBar creates an empty status bar.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{theme: theme, width: 80}
}

// SetWidth sets the status bar width.
func (s *StatusBar) SetWidth(width int) {
	s.width = width
}

// SetEndpoint sets the agent URL shown on the left.
func (s *StatusBar) SetEndpoint(endpoint string) {
	s.endpoint = endpoint
}

// SetNotice sets a short transient message; "" clears it.
func (s *StatusBar) SetNotice(notice string) {
	s.notice = notice
}

// SetShortcuts replaces the key hints.
func (s *StatusBar) SetShortcuts(shortcuts []Shortcut) {
	s.shortcuts = shortcuts
}

// View renders the status bar. Narrow terminals drop the endpoint and
// then the hints that do not fit.
func (s *StatusBar) View() string {
	left := s.notice
	if left == "" && styles.LayoutFor(s.width) != styles.LayoutNarrow {
		left = s.endpoint
	}
	left = styles.RenderMuted(left)

	hints := make([]string, 0, len(s.shortcuts))
	for _, sc := range s.shortcuts {
		hints = append(hints, s.theme.ShortcutKey.Render(sc.Key)+" "+s.theme.ShortcutDesc.Render(sc.Desc))
	}

	inner := s.width - 2
	right := strings.Join(hints, "  ")
	for len(hints) > 0 && lipgloss.Width(left)+lipgloss.Width(right)+2 > inner {
		hints = hints[:len(hints)-1]
		right = strings.Join(hints, "  ")
	}
	if lipgloss.Width(left)+lipgloss.Width(right)+2 > inner {
		left = styles.RenderMuted(util.Truncate(s.notice+s.endpointIfShown(), inner-lipgloss.Width(right)-2))
	}

	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return s.theme.StatusBar.Width(s.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (s *StatusBar) endpointIfShown() string {
	if s.notice != "" || styles.LayoutFor(s.width) == styles.LayoutNarrow {
		return ""
	}
	return s.endpoint
}
