// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the chat transcript.
package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"

	// RoleSystem marks local notices (export confirmations and the like).
	// They are shown in the transcript but never sent upstream.
	RoleSystem Role = "system"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	case RoleSystem:
		return "System"
	default:
		return string(r)
	}
}

// IsWire reports whether messages with this role are part of the
// conversation sent to the agent endpoint.
func (r Role) IsWire() bool {
	return r == RoleUser || r == RoleAssistant
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single message in the transcript.
// A Message is treated as immutable once appended to a Transcript.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Timestamp time.Time `json:"timestamp"`
	Content   string    `json:"content"`

	// Payload is the analysis block extracted from an assistant reply.
	// Nil when the reply carried none or it failed to decode.
	Payload *Payload `json:"payload,omitempty"`
}

// NewMessage creates a new message with the given role and content.
func NewMessage(role Role, content string) *Message {
	return &Message{
		ID:        generateID(),
		Role:      role,
		Timestamp: time.Now(),
		Content:   content,
	}
}

// NewUserMessage creates a new user message.
func NewUserMessage(content string) *Message {
	return NewMessage(RoleUser, content)
}

// NewAssistantMessage creates a new assistant message with an optional payload.
func NewAssistantMessage(content string, payload *Payload) *Message {
	msg := NewMessage(RoleAssistant, content)
	msg.Payload = payload
	return msg
}

// NewSystemMessage creates a local notice.
func NewSystemMessage(content string) *Message {
	return NewMessage(RoleSystem, content)
}

// HasPayload returns true if the message carries an analysis payload.
func (m *Message) HasPayload() bool {
	return m != nil && m.Payload != nil
}

// generateID creates a unique message ID.
func generateID() string {
	return "msg_" + uuid.NewString()
}
