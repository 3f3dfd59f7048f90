// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultGreeting is the assistant message a new transcript starts with.
	DefaultGreeting = "Hello! How can I help you today?"

	// FallbackReply stands in for the assistant when a request fails.
	FallbackReply = "Sorry, I encountered an error. Please try again."
)

// =============================================================================
// TRANSCRIPT
// =============================================================================

// Transcript is the append-only ordered message history of a session.
// It is owned by a single controller and is not safe for concurrent use.
type Transcript struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time

	messages []*Message
}

// WireMessage is the role/content pair sent to the agent endpoint.
type WireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// NewTranscript creates a transcript, seeded with an assistant greeting
// unless greeting is empty.
func NewTranscript(greeting string) *Transcript {
	now := time.Now()
	t := &Transcript{
		ID:        "conv_" + uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if greeting != "" {
		t.Append(NewAssistantMessage(greeting, nil))
	}
	return t
}

// Append adds a message to the end of the transcript.
func (t *Transcript) Append(msg *Message) {
	if msg == nil {
		return
	}
	t.messages = append(t.messages, msg)
	t.UpdatedAt = time.Now()
}

// Messages returns a copy of the message slice.
func (t *Transcript) Messages() []*Message {
	out := make([]*Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Clone returns a snapshot that later appends to t do not affect.
// Messages themselves are shared; they are not modified after Append.
func (t *Transcript) Clone() *Transcript {
	c := *t
	c.messages = t.Messages()
	return &c
}

// Len returns the number of messages.
func (t *Transcript) Len() int {
	return len(t.messages)
}

// Last returns the newest message, or nil if the transcript is empty.
func (t *Transcript) Last() *Message {
	if len(t.messages) == 0 {
		return nil
	}
	return t.messages[len(t.messages)-1]
}

// LastAssistant returns the newest assistant message, or nil.
func (t *Transcript) LastAssistant() *Message {
	for i := len(t.messages) - 1; i >= 0; i-- {
		if t.messages[i].Role == RoleAssistant {
			return t.messages[i]
		}
	}
	return nil
}

// LatestPayload scans from newest to oldest and returns the first payload
// found, or nil when no message carries one.
func (t *Transcript) LatestPayload() *Payload {
	for i := len(t.messages) - 1; i >= 0; i-- {
		if t.messages[i].HasPayload() {
			return t.messages[i].Payload
		}
	}
	return nil
}

// WireMessages converts the transcript to the request form.
// Payloads and local notices are left out.
func (t *Transcript) WireMessages() []WireMessage {
	out := make([]WireMessage, 0, len(t.messages))
	for _, m := range t.messages {
		if !m.Role.IsWire() {
			continue
		}
		out = append(out, WireMessage{
			Role:    m.Role.String(),
			Content: m.Content,
		})
	}
	return out
}
