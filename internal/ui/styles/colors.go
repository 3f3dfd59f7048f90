// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the chat TUI.
package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// ANALYSIS BAR PALETTE
// =============================================================================

// BarPalette colors answer segments by answer index modulo its length.
var BarPalette = []lipgloss.Color{
	"#7D9178", // muted green-gray
	"#E8E8E8", // light gray
	"#C9A889", // warm tan
}

// SegmentColor returns the palette color for the answer at index i.
func SegmentColor(i int) lipgloss.Color {
	n := len(BarPalette)
	return BarPalette[((i%n)+n)%n]
}

// SegmentText is readable on every palette entry.
var SegmentText = lipgloss.Color("#1F2937")

// =============================================================================
// PRIMARY ACCENT COLORS
// =============================================================================

// Sage - Primary accent, titles, the user's bubble
var Sage = lipgloss.AdaptiveColor{Light: "#5E7259", Dark: "#9DB098"}

// SageDeep - Darker sage for backgrounds
var SageDeep = lipgloss.AdaptiveColor{Light: "#4A5B46", Dark: "#3C4A39"}

// Tan - Secondary accent, focus and highlights
var Tan = lipgloss.AdaptiveColor{Light: "#9C7A5B", Dark: "#C9A889"}

// =============================================================================
// SEMANTIC COLORS
// =============================================================================

// Rose - Errors
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// Amber - Warnings, loading
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// Emerald - Success notices
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// =============================================================================
// SURFACE COLORS
// =============================================================================

// Surface - Main background
var Surface = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}

// SurfaceDim - Headers and footers
var SurfaceDim = lipgloss.AdaptiveColor{Light: "#F5F5F5", Dark: "#181825"}

// Overlay - Borders, separators, empty bar track
var Overlay = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#313244"}

// =============================================================================
// TEXT COLORS
// =============================================================================

// TextPrimary - Main body text
var TextPrimary = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}

// TextSecondary - Labels, less prominent text
var TextSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A6ADC8"}

// TextMuted - Hints, timestamps, placeholders
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}

// TextInverse - Text on colored backgrounds
var TextInverse = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}

// =============================================================================
// MESSAGE BUBBLE COLORS
// =============================================================================

var UserBubbleFg = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#F4F7F3"}
var UserBubbleBg = lipgloss.AdaptiveColor{Light: "#7D9178", Dark: "#4A5B46"}
var AssistantBubbleBorder = lipgloss.AdaptiveColor{Light: "#E5E7EB", Dark: "#45475A"}

// =============================================================================
// STATUS RENDERING
// =============================================================================

// RenderMuted renders de-emphasised text.
func RenderMuted(msg string) string {
	return lipgloss.NewStyle().Foreground(TextMuted).Render(msg)
}
