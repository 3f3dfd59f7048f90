// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"time"

	"github.com/charmbracelet/harmonica"
)

// =============================================================================
// SPINNER ANIMATIONS
// =============================================================================

// SpinnerConfig holds the configuration for a spinner animation.
type SpinnerConfig struct {
	Frames []string
	FPS    int
}

// Duration returns the duration for each frame.
func (s SpinnerConfig) Duration() time.Duration {
	if s.FPS <= 0 {
		return time.Second
	}
	return time.Second / time.Duration(s.FPS)
}

// LineSpinner - Simple line rotation
var LineSpinner = SpinnerConfig{
	Frames: []string{"|", "/", "-", "\\"},
	FPS:    10,
}

// DotsSpinner - Three-dot thinking animation
var DotsSpinner = SpinnerConfig{
	Frames: []string{".  ", ".. ", "...", " ..", "  .", "   "},
	FPS:    6,
}

// =============================================================================
// BAR ANIMATION
// =============================================================================

// Timing of the analysis bar entrance.
const (
	// AnimationFPS is the frame rate of bar growth.
	AnimationFPS = 60

	// BarDelay is when the first bar starts growing.
	BarDelay = 500 * time.Millisecond

	// LegendDelay is when the first legend appears.
	LegendDelay = 1500 * time.Millisecond

	// StaggerDelay is added per question index to both delays.
	StaggerDelay = 100 * time.Millisecond
)

// FrameDuration is the time between animation frames.
func FrameDuration() time.Duration {
	return time.Second / AnimationFPS
}

// NewBarSpring returns the spring that drives bar width. It is critically
// damped so bars settle in about a second without overshooting.
func NewBarSpring() harmonica.Spring {
	return harmonica.NewSpring(harmonica.FPS(AnimationFPS), 6.0, 1.0)
}

// =============================================================================
// EASING
// =============================================================================

// EasingFunc is a function that maps progress (0-1) to output (0-1).
type EasingFunc func(t float64) float64

// EaseLinear - constant speed
func EaseLinear(t float64) float64 {
	return t
}

// EaseOutQuad - decelerating to zero
func EaseOutQuad(t float64) float64 {
	return t * (2 - t)
}

// EaseOutCubic - decelerating to zero (smoother)
func EaseOutCubic(t float64) float64 {
	t--
	return t*t*t + 1
}
