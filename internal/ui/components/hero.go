// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/firstverify-chat/internal/ui/styles"
)

// Hero screen text.
const (
	HeroTitle    = "FirstVerify Chat"
	HeroSubtitle = "Your offline, on-device AI assistant."
)

// =============================================================================
// HERO SCREEN
// =============================================================================

// Hero is the centered landing screen shown until the first message is
// sent. The input is owned by the caller and passed in at render time.
type Hero struct {
	width  int
	height int
	theme  *styles.Theme
}

// NewHero creates the landing screen.
func NewHero(theme *styles.Theme) Hero {
	return Hero{theme: theme}
}

// SetSize updates the dimensions.
func (h *Hero) SetSize(width, height int) {
	h.width = width
	h.height = height
}

// View renders the title, subtitle and input centered in the screen.
// Responsive: the input narrows with the terminal, minimum 40x12.
func (h Hero) View(input string) string {
	width := h.width
	if width == 0 {
		width = 80
	}
	height := h.height
	if height == 0 {
		height = 24
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		h.theme.Title.Render(HeroTitle),
		"",
		h.theme.Subtitle.Render(HeroSubtitle),
		"",
		input,
	)

	// Too short to center: pin to the top so the title stays visible
	vertical := lipgloss.Center
	if lipgloss.Height(content) >= height {
		vertical = lipgloss.Top
	}
	return lipgloss.Place(width, height, lipgloss.Center, vertical, content)
}

// HeroInputWidth is the input width used on the hero screen.
func HeroInputWidth(termWidth int) int {
	w := 64
	if termWidth-8 < w {
		w = termWidth - 8
	}
	if w < 30 {
		w = 30
	}
	return w
}
