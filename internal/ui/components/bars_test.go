// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/jeranaias/firstverify-chat/internal/model"
	"github.com/jeranaias/firstverify-chat/internal/ui/styles"
)

// =============================================================================
// HELPERS
// =============================================================================

func colorPayload() *model.Payload {
	return &model.Payload{Questions: []model.Question{{
		Question: "What color?",
		Answers: []model.Answer{
			{Label: "Red", Percentage: 60},
			{Label: "Blue", Percentage: 40},
		},
	}}}
}

func newTestBars(t *testing.T) AnalysisBars {
	t.Helper()
	b := NewAnalysisBars(styles.NewTheme("dark"))
	b.SetSize(50)
	fixed := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return fixed }
	return b
}

// =============================================================================
// LAYOUT TESTS
// =============================================================================

func TestLayoutSegments(t *testing.T) {
	tests := []struct {
		name    string
		answers []model.Answer
		want    []float64
	}{
		{"sums to 100", []model.Answer{{Label: "A", Percentage: 60}, {Label: "B", Percentage: 40}}, []float64{24, 16}},
		{"under 100 is not renormalized", []model.Answer{{Label: "A", Percentage: 25}, {Label: "B", Percentage: 25}}, []float64{10, 10}},
		{"over 100 is not renormalized", []model.Answer{{Label: "A", Percentage: 100}, {Label: "B", Percentage: 50}}, []float64{40, 20}},
		{"negative gets no width", []model.Answer{{Label: "A", Percentage: -20}, {Label: "B", Percentage: 50}}, []float64{0, 20}},
		{"no answers", nil, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			segs := LayoutSegments(model.Question{Question: "q", Answers: tc.answers}, 40)
			if len(segs) != len(tc.want) {
				t.Fatalf("got %d segments, want %d", len(segs), len(tc.want))
			}
			for i, s := range segs {
				if s.Width != tc.want[i] {
					t.Errorf("segment %d width = %v, want %v", i, s.Width, tc.want[i])
				}
				if s.Percentage != tc.answers[i].Percentage {
					t.Errorf("segment %d percentage = %v, want %v", i, s.Percentage, tc.answers[i].Percentage)
				}
			}
		})
	}
}

func TestLayoutSegments_ColorsCycle(t *testing.T) {
	q := model.Question{Answers: []model.Answer{{Label: "a", Percentage: 10}, {Label: "b", Percentage: 10}, {Label: "c", Percentage: 10}, {Label: "d", Percentage: 10}, {Label: "e", Percentage: 10}}}
	segs := LayoutSegments(q, 40)

	want := []string{"#7D9178", "#E8E8E8", "#C9A889", "#7D9178", "#E8E8E8"}
	for i, s := range segs {
		if string(s.Color) != want[i] {
			t.Errorf("segment %d color = %s, want %s", i, s.Color, want[i])
		}
	}
}

// =============================================================================
// VIEW TESTS
// =============================================================================

func TestAnalysisBars_PlaceholderWithoutPayload(t *testing.T) {
	b := newTestBars(t)
	got := ansi.Strip(b.View())
	if !strings.Contains(got, PlaceholderText) {
		t.Errorf("View() = %q, want placeholder", got)
	}
}

func TestAnalysisBars_EmptyQuestionsRenderNothing(t *testing.T) {
	b := newTestBars(t)
	b.SetPayload(&model.Payload{Questions: []model.Question{}})
	if got := b.View(); got != "" {
		t.Errorf("View() = %q, want empty", got)
	}
}

func TestAnalysisBars_ZeroAnswersRenderNoSegments(t *testing.T) {
	b := newTestBars(t)
	b.SetAnimation(false, 0)
	b.SetPayload(&model.Payload{Questions: []model.Question{{Question: "Anything?"}}})

	got := ansi.Strip(b.View())
	if !strings.Contains(got, "Anything?") {
		t.Errorf("View() missing question label: %q", got)
	}
	for _, g := range segmentGlyphs {
		if strings.Contains(got, g) {
			t.Errorf("View() contains segment glyph %q for a question with no answers", g)
		}
	}
	if strings.Contains(got, legendGlyph) {
		t.Error("View() contains a legend for a question with no answers")
	}
}

func TestAnalysisBars_SettledView(t *testing.T) {
	b := newTestBars(t)
	b.SetAnimation(false, 0)
	if cmd := b.SetPayload(colorPayload()); cmd != nil {
		t.Error("SetPayload() with animation off returned a command")
	}

	got := ansi.Strip(b.View())
	for _, want := range []string{"What color?", "Red (60%)", "Blue (40%)"} {
		if !strings.Contains(got, want) {
			t.Errorf("View() missing %q:\n%s", want, got)
		}
	}

	track := b.trackWidth()
	red := strings.Repeat(segmentGlyphs[0], track*60/100)
	blue := strings.Repeat(segmentGlyphs[1], track*40/100)
	if !strings.Contains(got, red+blue) {
		t.Errorf("View() bar does not hold 60%% red then 40%% blue:\n%s", got)
	}
}

func TestAnalysisBars_OverflowStaysInsidePanel(t *testing.T) {
	b := newTestBars(t)
	b.SetAnimation(false, 0)
	b.SetPayload(&model.Payload{Questions: []model.Question{{
		Question: "Q",
		Answers:  []model.Answer{{Label: "A", Percentage: 150}, {Label: "B", Percentage: 90}},
	}}})

	for _, line := range strings.Split(ansi.Strip(b.View()), "\n") {
		if w := ansi.StringWidth(line); w > 50 {
			t.Errorf("line width %d exceeds panel width 50: %q", w, line)
		}
	}
}

func TestAnalysisBars_HugePercentageFillsPanel(t *testing.T) {
	for _, pct := range []float64{150, 1e10, 1e19, 1e300} {
		p := &model.Payload{Questions: []model.Question{{
			Question: "Q",
			Answers:  []model.Answer{{Label: "A", Percentage: pct}},
		}}}
		got := ansi.Strip(RenderStatic(styles.NewTheme("dark"), p, 50))
		if n := strings.Count(got, "█"); n != 50 {
			t.Errorf("pct %g: %d segment cells, want 50", pct, n)
		}
	}
}

func TestAnalysisBars_LegendColorsFollowAnswers(t *testing.T) {
	prev := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.TrueColor)
	defer lipgloss.SetColorProfile(prev)

	b := newTestBars(t)
	b.SetAnimation(false, 0)
	q := model.Question{
		Question: "Q",
		Answers:  []model.Answer{{Label: "x  ■ y", Percentage: 50}, {Label: "Blue", Percentage: 50}},
	}
	b.SetPayload(&model.Payload{Questions: []model.Question{q}})

	legend := strings.Join(b.renderLegend(q), "\n")
	marker := func(i int) string {
		return lipgloss.NewStyle().Foreground(styles.SegmentColor(i)).Render(legendGlyph)
	}
	if !strings.Contains(legend, marker(0)) || !strings.Contains(legend, marker(1)) {
		t.Errorf("legend missing a marker: %q", legend)
	}
	if strings.Contains(legend, marker(2)) {
		t.Errorf("legend has a third marker for two answers: %q", legend)
	}
	if got := ansi.Strip(legend); !strings.Contains(got, "x  ■ y (50%)") {
		t.Errorf("label not intact: %q", got)
	}
}

func TestRenderStatic(t *testing.T) {
	got := ansi.Strip(RenderStatic(styles.NewTheme("light"), colorPayload(), 60))
	if !strings.Contains(got, "What color?") || !strings.Contains(got, "Red (60%)") {
		t.Errorf("RenderStatic() = %q", got)
	}
	if got := ansi.Strip(RenderStatic(styles.NewTheme("light"), nil, 60)); !strings.Contains(got, PlaceholderText) {
		t.Errorf("RenderStatic(nil) = %q, want placeholder", got)
	}
}

// =============================================================================
// ANIMATION TESTS
// =============================================================================

func TestAnalysisBars_LabelTypesOut(t *testing.T) {
	b := newTestBars(t)
	if cmd := b.SetPayload(colorPayload()); cmd == nil {
		t.Fatal("SetPayload() returned no animation command")
	}

	if got := b.questions[0].label.View(); got != "" {
		t.Errorf("label before any tick = %q, want empty", got)
	}
	for i := 0; i < 4; i++ {
		b, _ = b.Update(barsTypeMsg{gen: b.gen})
	}
	if got := b.questions[0].label.View(); got != "What" {
		t.Errorf("label after 4 ticks = %q, want %q", got, "What")
	}
}

func TestAnalysisBars_LabelRestartsOnlyWhenTextChanges(t *testing.T) {
	b := newTestBars(t)
	b.SetPayload(colorPayload())
	for i := 0; i < 3; i++ {
		b, _ = b.Update(barsTypeMsg{gen: b.gen})
	}

	same := colorPayload()
	same.Questions[0].Answers[0].Percentage = 70
	b.SetPayload(same)
	if got := b.questions[0].label.Shown(); got != 3 {
		t.Errorf("same question text: Shown() = %d, want 3", got)
	}

	changed := colorPayload()
	changed.Questions[0].Question = "Which shade?"
	b.SetPayload(changed)
	if got := b.questions[0].label.Shown(); got != 0 {
		t.Errorf("new question text: Shown() = %d, want 0", got)
	}
}

func TestAnalysisBars_StaleTicksIgnored(t *testing.T) {
	b := newTestBars(t)
	b.SetPayload(colorPayload())
	old := b.gen
	b.SetPayload(colorPayload())

	b, cmd := b.Update(barsTypeMsg{gen: old})
	if cmd != nil {
		t.Error("stale tick returned a command")
	}
	if b.questions[0].label.Shown() != 0 {
		t.Error("stale tick advanced the label")
	}
}

func TestAnalysisBars_BarsWaitForDelay(t *testing.T) {
	b := newTestBars(t)
	b.SetPayload(colorPayload())

	b, _ = b.Update(barsFrameMsg{gen: b.gen, at: b.start.Add(styles.BarDelay / 2)})
	if b.questions[0].pos[0] != 0 {
		t.Errorf("bar moved before its delay: pos = %v", b.questions[0].pos[0])
	}

	b, _ = b.Update(barsFrameMsg{gen: b.gen, at: b.start.Add(styles.BarDelay + time.Millisecond)})
	if b.questions[0].pos[0] <= 0 {
		t.Error("bar did not move after its delay")
	}
}

func TestAnalysisBars_LegendWaitsForDelay(t *testing.T) {
	b := newTestBars(t)
	b.SetPayload(colorPayload())
	if strings.Contains(ansi.Strip(b.View()), "Red (60%)") {
		t.Error("legend shown before its delay")
	}

	b.Settle()
	if !strings.Contains(ansi.Strip(b.View()), "Red (60%)") {
		t.Error("legend missing after Settle")
	}
	if b.Animating() {
		t.Error("Animating() = true after Settle")
	}
}

// =============================================================================
// FOCUS TESTS
// =============================================================================

func TestAnalysisBars_FocusTooltip(t *testing.T) {
	b := newTestBars(t)
	b.SetAnimation(false, 0)
	b.SetPayload(colorPayload())

	if b.Tooltip() != "" {
		t.Error("tooltip shown without focus")
	}

	b.FocusNext()
	if got := b.Tooltip(); got != "Red: 60%" {
		t.Errorf("Tooltip() = %q, want %q", got, "Red: 60%")
	}
	if !strings.Contains(ansi.Strip(b.View()), "Red: 60%") {
		t.Error("View() does not show the focused tooltip")
	}

	b.FocusNext()
	if got := b.Tooltip(); got != "Blue: 40%" {
		t.Errorf("Tooltip() = %q, want %q", got, "Blue: 40%")
	}

	b.FocusNext()
	if got := b.Tooltip(); got != "Red: 60%" {
		t.Errorf("focus did not wrap: Tooltip() = %q", got)
	}

	b.FocusPrev()
	if got := b.Tooltip(); got != "Blue: 40%" {
		t.Errorf("FocusPrev() did not wrap: Tooltip() = %q", got)
	}

	b.Blur()
	if b.Tooltip() != "" {
		t.Error("tooltip shown after Blur")
	}
}

func TestAnalysisBars_FocusSkipsQuestionsWithoutAnswers(t *testing.T) {
	b := newTestBars(t)
	b.SetAnimation(false, 0)
	b.SetPayload(&model.Payload{Questions: []model.Question{
		{Question: "Empty"},
		{Question: "Full", Answers: []model.Answer{{Label: "Yes", Percentage: 12.5}}},
	}})

	b.FocusNext()
	q, a, ok := b.Focused()
	if !ok || q != 1 || a != 0 {
		t.Errorf("Focused() = (%d, %d, %v), want (1, 0, true)", q, a, ok)
	}
	if got := b.Tooltip(); got != "Yes: 12.5%" {
		t.Errorf("Tooltip() = %q, want %q", got, "Yes: 12.5%")
	}
}

func TestAnalysisBars_FocusWithoutPayload(t *testing.T) {
	b := newTestBars(t)
	b.FocusNext()
	if _, _, ok := b.Focused(); ok {
		t.Error("focus set without a payload")
	}
}
