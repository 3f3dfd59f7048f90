// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the chat transcript and
// the analysis payload carried by assistant replies.
//
// # Key Types
//
//   - Transcript: Append-only ordered sequence of messages for one session
//   - Message: Single message with role, content, timestamp, and optional payload
//   - Payload: Decoded analysis data (questions with percentage answers)
//   - Role: Message role enumeration (user, assistant, system)
//
// # Usage
//
// Build a transcript and produce the upstream request body:
//
//	tr := model.NewTranscript("Hello! How can I help you today?")
//	tr.Append(model.NewUserMessage("What color?"))
//	body := tr.WireMessages()
//
// Find the payload the analysis panel should show:
//
//	if p := tr.LatestPayload(); p != nil {
//	    fmt.Println(len(p.Questions))
//	}
package model
