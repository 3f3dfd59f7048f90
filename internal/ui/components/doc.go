// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the UI components of the FirstVerify chat TUI.

Each component is styled through a shared *styles.Theme and renders to a
string. Stateful components follow the Bubble Tea shape of
Update(tea.Msg) (T, tea.Cmd) and View() string.

# Components

Hero (hero.go) - Centered landing screen with title, subtitle and input.
InputArea (input.go) - Single-line message input.
MessageBubble (message.go) - Transcript entries; assistant text goes through Markdown.
Markdown (markdown.go) - Glamour renderer cached per wrap width.
AnalysisBars (bars.go) - Stacked percentage bars for the latest analysis.
Typewriter (typewriter.go) - Character-by-character text reveal.
Inspector (inspector.go) - Highlighted JSON view of the analysis payload.
StatusBar (statusbar.go) - Endpoint, notices and key hints.

# Analysis Bars

AnalysisBars never rescales the answers it is given. A segment's width is
its percentage of the track, so totals under 100 leave the track partly
empty and totals over 100 run past it:

	bars := components.NewAnalysisBars(theme)
	bars.SetSize(40)
	cmd := bars.SetPayload(payload) // starts the entrance animation
	view := bars.View()

RenderStatic draws a payload with every animation finished, for output
that is printed once.
*/
package components
