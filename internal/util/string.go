// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"github.com/mattn/go-runewidth"
)

// Ellipsis is appended by Truncate when text is cut.
const Ellipsis = "…"

// Width returns the number of terminal cells s occupies.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate cuts s to at most maxWidth cells, ending in an ellipsis when
// anything was removed. Wide characters are never split.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= runewidth.StringWidth(Ellipsis) {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, Ellipsis)
}

// WrapItems breaks items into lines no wider than width cells, keeping
// each item whole with sep between items on a line. It returns the item
// indices of each line. An item wider than width gets a line of its own.
func WrapItems(items []string, sep string, width int) [][]int {
	if len(items) == 0 {
		return nil
	}

	var lines [][]int
	var line []int
	lineWidth := 0
	sepWidth := runewidth.StringWidth(sep)

	for i, item := range items {
		w := runewidth.StringWidth(item)
		if width > 0 && len(line) > 0 && lineWidth+sepWidth+w > width {
			lines = append(lines, line)
			line = nil
			lineWidth = 0
		}
		if len(line) > 0 {
			lineWidth += sepWidth
		}
		line = append(line, i)
		lineWidth += w
	}
	return append(lines, line)
}
