// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/firstverify-chat/internal/model"
	"github.com/jeranaias/firstverify-chat/internal/ui/styles"
	"github.com/jeranaias/firstverify-chat/internal/util"
)

// =============================================================================
// SEGMENT LAYOUT
// =============================================================================

// Segment glyphs, indexed like the color palette so segments stay
// distinguishable without color.
var segmentGlyphs = []string{"█", "▓", "▒"}

const (
	trackGlyph  = "░"
	legendGlyph = "■"

	// PlaceholderText is shown while no reply has carried an analysis.
	PlaceholderText = "Analysis will appear here"
)

// Segment is one answer's slice of a question bar.
type Segment struct {
	Index      int
	Label      string
	Percentage float64
	// Width is the unrounded target width in cells.
	Width float64
	Color lipgloss.Color
}

// LayoutSegments computes segment widths for a bar whose 100% mark is
// track cells wide. Percentages are used as given: totals under 100 leave
// part of the track empty, totals over 100 run past it, negatives get no
// cells. A question with no answers has no segments.
func LayoutSegments(q model.Question, track int) []Segment {
	if len(q.Answers) == 0 {
		return nil
	}
	segs := make([]Segment, len(q.Answers))
	for i, a := range q.Answers {
		w := a.Percentage / 100 * float64(track)
		if w < 0 || math.IsNaN(w) {
			w = 0
		}
		segs[i] = Segment{
			Index:      i,
			Label:      a.Label,
			Percentage: a.Percentage,
			Width:      w,
			Color:      styles.SegmentColor(i),
		}
	}
	return segs
}

// =============================================================================
// ANIMATION MESSAGES
// =============================================================================

// barsTypeMsg advances the label reveal by one character.
type barsTypeMsg struct {
	gen int
}

// barsFrameMsg advances bar growth to the given time.
type barsFrameMsg struct {
	gen int
	at  time.Time
}

// =============================================================================
// ANALYSIS BARS MODEL
// =============================================================================

type questionState struct {
	label Typewriter
	// Spring state per answer, in cells.
	pos    []float64
	vel    []float64
	target []float64
}

// AnalysisBars renders the latest analysis payload as stacked bars.
//
// It never changes the payload it is given. Animation state (typed label
// length, bar growth, legend visibility) is cosmetic and is driven by the
// messages its commands produce.
type AnalysisBars struct {
	theme *styles.Theme

	width    int
	barWidth int

	animate        bool
	typingInterval time.Duration
	spring         harmonica.Spring

	payload   *model.Payload
	questions []questionState

	gen     int
	start   time.Time
	elapsed time.Duration
	typing  bool
	framing bool

	// focus is a flat index over all segments of all questions; -1 is none.
	focus int

	now func() time.Time
}

// NewAnalysisBars creates the component with animation enabled.
func NewAnalysisBars(theme *styles.Theme) AnalysisBars {
	if theme == nil {
		theme = styles.NewTheme("auto")
	}
	return AnalysisBars{
		theme:          theme,
		width:          40,
		animate:        true,
		typingInterval: 30 * time.Millisecond,
		spring:         styles.NewBarSpring(),
		focus:          -1,
		now:            time.Now,
	}
}

// SetSize sets the panel content width.
func (b *AnalysisBars) SetSize(width int) {
	if width < 10 {
		width = 10
	}
	if width == b.width {
		return
	}
	b.width = width
	b.retarget()
}

// SetBarWidth fixes the track width; 0 fits the panel.
func (b *AnalysisBars) SetBarWidth(w int) {
	b.barWidth = w
	b.retarget()
}

// SetAnimation configures the reveal rate and whether to animate at all.
// Turning animation off jumps to the final state.
func (b *AnalysisBars) SetAnimation(animate bool, typingInterval time.Duration) {
	b.animate = animate
	if typingInterval > 0 {
		b.typingInterval = typingInterval
	}
	if !animate {
		b.Settle()
	}
}

// Payload returns the payload currently shown.
func (b AnalysisBars) Payload() *model.Payload {
	return b.payload
}

// SetPayload shows p. Labels whose text changed restart their reveal;
// bars grow from their current width toward the new one. Passing the
// payload already shown is a no-op.
func (b *AnalysisBars) SetPayload(p *model.Payload) tea.Cmd {
	if p == b.payload {
		return nil
	}
	b.payload = p
	b.gen++
	b.start = b.now()
	b.elapsed = 0
	b.focus = -1

	var qs []model.Question
	if p != nil {
		qs = p.Questions
	}

	next := make([]questionState, len(qs))
	for i, q := range qs {
		if i < len(b.questions) {
			next[i] = b.questions[i]
		}
		next[i].label.SetText(q.Question)

		n := len(q.Answers)
		pos := make([]float64, n)
		vel := make([]float64, n)
		copy(pos, next[i].pos)
		copy(vel, next[i].vel)
		next[i].pos, next[i].vel = pos, vel
	}
	b.questions = next
	b.retarget()

	if !b.animate {
		b.Settle()
		return nil
	}
	b.typing, b.framing = false, false
	return b.kick()
}

// retarget recomputes spring targets for the current width.
func (b *AnalysisBars) retarget() {
	if b.payload == nil {
		return
	}
	track := b.trackWidth()
	for i, q := range b.payload.Questions {
		if i >= len(b.questions) {
			break
		}
		segs := LayoutSegments(q, track)
		target := make([]float64, len(segs))
		for j, s := range segs {
			// Nothing past the panel edge is drawn.
			target[j] = math.Min(s.Width, float64(b.width))
		}
		b.questions[i].target = target
		if !b.animate {
			copy(b.questions[i].pos, target)
		}
	}
}

// Settle jumps every animation to its end state.
func (b *AnalysisBars) Settle() {
	for i := range b.questions {
		q := &b.questions[i]
		q.label.Finish()
		copy(q.pos, q.target)
		for j := range q.vel {
			q.vel[j] = 0
		}
	}
	b.elapsed = b.legendDelay(len(b.questions))
	b.typing, b.framing = false, false
}

// Animating reports whether any animation is still running.
func (b AnalysisBars) Animating() bool {
	return !b.typingDone() || !b.barsDone()
}

func (b AnalysisBars) trackWidth() int {
	if b.barWidth > 0 && b.barWidth <= b.width {
		return b.barWidth
	}
	// Leave a fifth of the panel to show overflow past 100%.
	w := b.width * 4 / 5
	if w < 10 {
		w = 10
	}
	return w
}

func (b AnalysisBars) barDelay(i int) time.Duration {
	return styles.BarDelay + time.Duration(i)*styles.StaggerDelay
}

func (b AnalysisBars) legendDelay(i int) time.Duration {
	return styles.LegendDelay + time.Duration(i)*styles.StaggerDelay
}

func (b AnalysisBars) typingDone() bool {
	for _, q := range b.questions {
		if !q.label.Done() {
			return false
		}
	}
	return true
}

func (b AnalysisBars) barsDone() bool {
	if len(b.questions) == 0 {
		return true
	}
	for _, q := range b.questions {
		for j := range q.pos {
			if math.Abs(q.pos[j]-q.target[j]) > 0.01 || math.Abs(q.vel[j]) > 0.01 {
				return false
			}
		}
	}
	return b.elapsed >= b.legendDelay(len(b.questions)-1)
}

// kick starts whichever tick loops are not already running.
func (b *AnalysisBars) kick() tea.Cmd {
	var cmds []tea.Cmd
	if !b.typing && !b.typingDone() {
		b.typing = true
		cmds = append(cmds, b.typeTick())
	}
	if !b.framing && !b.barsDone() {
		b.framing = true
		cmds = append(cmds, b.frameTick())
	}
	return tea.Batch(cmds...)
}

func (b AnalysisBars) typeTick() tea.Cmd {
	gen := b.gen
	return tea.Tick(b.typingInterval, func(time.Time) tea.Msg {
		return barsTypeMsg{gen: gen}
	})
}

func (b AnalysisBars) frameTick() tea.Cmd {
	gen := b.gen
	return tea.Tick(styles.FrameDuration(), func(t time.Time) tea.Msg {
		return barsFrameMsg{gen: gen, at: t}
	})
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init starts nothing; animation begins with SetPayload.
func (b AnalysisBars) Init() tea.Cmd {
	return nil
}

// Update advances animations. Ticks from a previous payload are ignored.
func (b AnalysisBars) Update(msg tea.Msg) (AnalysisBars, tea.Cmd) {
	switch msg := msg.(type) {
	case barsTypeMsg:
		if msg.gen != b.gen {
			return b, nil
		}
		for i := range b.questions {
			b.questions[i].label.Step()
		}
		if b.typingDone() {
			b.typing = false
			return b, nil
		}
		return b, b.typeTick()

	case barsFrameMsg:
		if msg.gen != b.gen {
			return b, nil
		}
		b.advance(msg.at)
		if b.barsDone() {
			b.framing = false
			return b, nil
		}
		return b, b.frameTick()
	}
	return b, nil
}

// advance steps the springs of every bar whose delay has passed.
func (b *AnalysisBars) advance(at time.Time) {
	b.elapsed = at.Sub(b.start)
	for i := range b.questions {
		if b.elapsed < b.barDelay(i) {
			continue
		}
		q := &b.questions[i]
		for j := range q.pos {
			q.pos[j], q.vel[j] = b.spring.Update(q.pos[j], q.vel[j], q.target[j])
		}
	}
}

// =============================================================================
// FOCUS (TOOLTIP)
// =============================================================================

// segmentCount returns the number of focusable segments.
func (b AnalysisBars) segmentCount() int {
	if b.payload == nil {
		return 0
	}
	n := 0
	for _, q := range b.payload.Questions {
		n += len(q.Answers)
	}
	return n
}

// FocusNext moves focus to the next segment, wrapping around.
func (b *AnalysisBars) FocusNext() {
	n := b.segmentCount()
	if n == 0 {
		b.focus = -1
		return
	}
	b.focus = (b.focus + 1) % n
}

// FocusPrev moves focus to the previous segment, wrapping around.
func (b *AnalysisBars) FocusPrev() {
	n := b.segmentCount()
	if n == 0 {
		b.focus = -1
		return
	}
	if b.focus <= 0 {
		b.focus = n - 1
		return
	}
	b.focus--
}

// Blur clears segment focus.
func (b *AnalysisBars) Blur() {
	b.focus = -1
}

// Focused returns the question and answer index of the focused segment.
func (b AnalysisBars) Focused() (question, answer int, ok bool) {
	if b.focus < 0 || b.payload == nil {
		return 0, 0, false
	}
	idx := b.focus
	for qi, q := range b.payload.Questions {
		if idx < len(q.Answers) {
			return qi, idx, true
		}
		idx -= len(q.Answers)
	}
	return 0, 0, false
}

// Tooltip returns the "label: pct%" text of the focused segment.
func (b AnalysisBars) Tooltip() string {
	qi, ai, ok := b.Focused()
	if !ok {
		return ""
	}
	a := b.payload.Questions[qi].Answers[ai]
	return a.Label + ": " + a.PercentString() + "%"
}

// =============================================================================
// RENDERING
// =============================================================================

// View renders the panel content: a placeholder without a payload,
// nothing for a payload without questions, otherwise one block per question.
func (b AnalysisBars) View() string {
	if b.payload == nil {
		return b.theme.Placeholder.Render(PlaceholderText)
	}
	if len(b.payload.Questions) == 0 {
		return ""
	}

	fq, fa, focused := b.Focused()
	blocks := make([]string, 0, len(b.payload.Questions))
	for i, q := range b.payload.Questions {
		focusAnswer := -1
		if focused && fq == i {
			focusAnswer = fa
		}
		blocks = append(blocks, b.renderQuestion(i, q, focusAnswer))
	}
	return strings.Join(blocks, "\n\n")
}

func (b AnalysisBars) renderQuestion(i int, q model.Question, focusAnswer int) string {
	state := b.questions[i]
	var lines []string

	label := util.Truncate(state.label.View(), b.width)
	lines = append(lines, b.theme.QuestionLabel.Render(label))

	bar, offsets := b.renderBar(q, state, focusAnswer)
	lines = append(lines, bar)

	if focusAnswer >= 0 {
		tip := b.theme.Tooltip.Render(b.Tooltip())
		indent := offsets[focusAnswer]
		if maxIndent := b.width - lipgloss.Width(tip); indent > maxIndent {
			indent = maxIndent
		}
		if indent < 0 {
			indent = 0
		}
		lines = append(lines, strings.Repeat(" ", indent)+tip)
	}

	if b.elapsed >= b.legendDelay(i) {
		lines = append(lines, b.renderLegend(q)...)
	}
	return strings.Join(lines, "\n")
}

// renderBar draws the segments left to right at their current animated
// widths, then fills the rest of the track. offsets holds the starting
// column of each segment.
func (b AnalysisBars) renderBar(q model.Question, state questionState, focusAnswer int) (string, []int) {
	track := b.trackWidth()
	offsets := make([]int, len(q.Answers))

	var sb strings.Builder
	col := 0
	for j := range q.Answers {
		offsets[j] = col
		// Clip before converting; huge percentages do not fit an int.
		w := 0.0
		if j < len(state.pos) {
			w = math.Min(math.Round(state.pos[j]), float64(b.width-col))
		}
		if !(w > 0) {
			continue
		}
		cells := int(w)

		glyph := segmentGlyphs[j%len(segmentGlyphs)]
		style := lipgloss.NewStyle().Foreground(styles.SegmentColor(j))
		if j == focusAnswer {
			style = style.Underline(true)
		}
		sb.WriteString(style.Render(strings.Repeat(glyph, cells)))
		col += cells
	}

	if col < track {
		sb.WriteString(b.theme.BarTrack.Render(strings.Repeat(trackGlyph, track-col)))
	}
	return sb.String(), offsets
}

func (b AnalysisBars) renderLegend(q model.Question) []string {
	if len(q.Answers) == 0 {
		return nil
	}
	plain := make([]string, len(q.Answers))
	for j, a := range q.Answers {
		plain[j] = legendGlyph + " " + a.Label + " (" + a.PercentString() + "%)"
	}

	// Wrap on plain text, then render each line item by item.
	groups := util.WrapItems(plain, "  ", b.width)
	lines := make([]string, 0, len(groups))
	for _, group := range groups {
		items := make([]string, 0, len(group))
		for _, j := range group {
			a := q.Answers[j]
			marker := lipgloss.NewStyle().Foreground(styles.SegmentColor(j)).Render(legendGlyph)
			items = append(items, marker+" "+b.theme.LegendText.Render(a.Label+" ("+a.PercentString()+"%)"))
		}
		lines = append(lines, strings.Join(items, "  "))
	}
	return lines
}

// RenderStatic renders a payload with every animation finished, for
// non-interactive output.
func RenderStatic(theme *styles.Theme, p *model.Payload, width int) string {
	bars := NewAnalysisBars(theme)
	bars.SetSize(width)
	bars.SetAnimation(false, 0)
	bars.SetPayload(p)
	return bars.View()
}
