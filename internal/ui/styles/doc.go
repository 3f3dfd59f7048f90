// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the chat TUI.
//
// All interface colors use Lip Gloss AdaptiveColor for automatic light/dark
// detection. The analysis bar palette is fixed and does not adapt.
//
// # Key Types
//
//   - Theme: All styled components, built once per program
//   - LayoutMode: Responsive width classes (narrow, medium, wide)
//   - SpinnerConfig: Frame set for the loading indicator
//
// # Usage
//
//	theme := styles.NewTheme("auto")
//	theme.SetSize(width, height)
//	title := theme.Title.Render("FirstVerify Chat")
//	seg := lipgloss.NewStyle().Background(styles.SegmentColor(i))
package styles
