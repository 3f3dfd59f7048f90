// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"
)

// =============================================================================
// TYPEWRITER
// =============================================================================

// Typewriter reveals a string one user-perceived character at a time.
// Text is NFC-normalized and split into grapheme clusters, so combining
// marks and emoji sequences appear whole.
type Typewriter struct {
	text      string
	graphemes []string
	shown     int
}

// NewTypewriter creates a typewriter with nothing revealed yet.
func NewTypewriter(text string) Typewriter {
	tw := Typewriter{}
	tw.SetText(text)
	return tw
}

// SetText replaces the text. The reveal restarts only when the text
// actually changes; it reports whether it did.
func (tw *Typewriter) SetText(text string) bool {
	if text == tw.text && tw.graphemes != nil {
		return false
	}
	tw.text = text
	tw.graphemes = splitGraphemes(text)
	tw.shown = 0
	return true
}

// Text returns the full text.
func (tw Typewriter) Text() string {
	return tw.text
}

// Step reveals one more character. It reports whether anything changed.
func (tw *Typewriter) Step() bool {
	if tw.shown >= len(tw.graphemes) {
		return false
	}
	tw.shown++
	return true
}

// Finish reveals everything.
func (tw *Typewriter) Finish() {
	tw.shown = len(tw.graphemes)
}

// Done reports whether the whole text is visible.
func (tw Typewriter) Done() bool {
	return tw.shown >= len(tw.graphemes)
}

// Shown returns the number of revealed characters.
func (tw Typewriter) Shown() int {
	return tw.shown
}

// Len returns the number of characters in the text.
func (tw Typewriter) Len() int {
	return len(tw.graphemes)
}

// View returns the revealed prefix.
func (tw Typewriter) View() string {
	return strings.Join(tw.graphemes[:tw.shown], "")
}

func splitGraphemes(s string) []string {
	s = norm.NFC.String(s)
	out := make([]string, 0, len(s))
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}
