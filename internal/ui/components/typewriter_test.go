// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import "testing"

// =============================================================================
// TYPEWRITER TESTS
// =============================================================================

func TestTypewriter_RevealsOneCharacterPerStep(t *testing.T) {
	tw := NewTypewriter("abc")

	want := []string{"", "a", "ab", "abc", "abc"}
	for i, w := range want {
		if got := tw.View(); got != w {
			t.Errorf("after %d steps View() = %q, want %q", i, got, w)
		}
		tw.Step()
	}
	if !tw.Done() {
		t.Error("Done() = false after revealing everything")
	}
}

func TestTypewriter_Graphemes(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"ascii", "Yes", 3},
		{"combining mark is normalized", "cafe\u0301", 4},
		{"emoji sequence", "hi \U0001F468‍\U0001F469‍\U0001F467", 4},
		{"wide runes", "你好", 2},
		{"empty", "", 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tw := NewTypewriter(tc.text)
			if got := tw.Len(); got != tc.want {
				t.Errorf("Len() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestTypewriter_SetTextRestartsOnlyOnChange(t *testing.T) {
	tw := NewTypewriter("What color?")
	tw.Step()
	tw.Step()

	if tw.SetText("What color?") {
		t.Error("SetText(same) reported a restart")
	}
	if tw.Shown() != 2 {
		t.Errorf("Shown() = %d after same text, want 2", tw.Shown())
	}

	if !tw.SetText("What size?") {
		t.Error("SetText(different) did not report a restart")
	}
	if tw.Shown() != 0 {
		t.Errorf("Shown() = %d after new text, want 0", tw.Shown())
	}
}

func TestTypewriter_Finish(t *testing.T) {
	tw := NewTypewriter("done")
	tw.Finish()
	if tw.View() != "done" {
		t.Errorf("View() = %q, want %q", tw.View(), "done")
	}
	if tw.Step() {
		t.Error("Step() after Finish reported a change")
	}
}

func TestTypewriter_EmptyTextIsDone(t *testing.T) {
	var tw Typewriter
	tw.SetText("")
	if !tw.Done() {
		t.Error("empty typewriter should be done")
	}
	if tw.View() != "" {
		t.Errorf("View() = %q, want empty", tw.View())
	}
}
