// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the conversation screen of the FirstVerify TUI.

# Key Components

## Model (model.go)

The Model struct is the Bubble Tea model that owns the chat state:
  - The transcript, seeded with the assistant greeting
  - The loading flag that admits one request at a time
  - The layout stage, hero until the first submission and active after
  - Components: input, transcript viewport, analysis bars, inspector

## Update Loop (update.go)

Submitting appends the user message, clears the input and sends the whole
conversation. A reply goes through the extractor; the visible text lands
in the transcript and any analysis payload feeds the bars. Any failure
appends a fixed apology instead. Requests are never retried, cancelled or
timed out.

## View Rendering (view.go)

Terminals at least 100 columns wide show the analysis panel beside the
transcript; narrower ones stack it underneath.

# Usage

	client := agent.NewClient(cfg.Agent.BaseURL)
	m := chat.New(chat.Options{Config: cfg, Client: client})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}

Config file changes reach a running program as ConfigReloadedMsg, sent
with p.Send from a config.Watch callback.
*/
package chat
