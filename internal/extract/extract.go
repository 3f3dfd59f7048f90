// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package extract

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/jeranaias/firstverify-chat/internal/model"
)

const (
	// OpenMarker starts an embedded payload block.
	OpenMarker = "```json"

	// CloseMarker ends it.
	CloseMarker = "```"
)

// Fence locates the first payload block in a reply.
// Start and End are byte offsets of the whole block including markers;
// Body is the text between the markers.
type Fence struct {
	Start int
	End   int
	Body  string
}

// FindFence returns the first "```json" ... "```" block in raw.
// ok is false when there is no opening marker or it is never closed.
func FindFence(raw string) (f Fence, ok bool) {
	open := strings.Index(raw, OpenMarker)
	if open < 0 {
		return Fence{}, false
	}
	bodyStart := open + len(OpenMarker)
	rel := strings.Index(raw[bodyStart:], CloseMarker)
	if rel < 0 {
		return Fence{}, false
	}
	bodyEnd := bodyStart + rel
	return Fence{
		Start: open,
		End:   bodyEnd + len(CloseMarker),
		Body:  raw[bodyStart:bodyEnd],
	}, true
}

// Extractor splits replies into display text and payload.
type Extractor struct {
	logger *slog.Logger
}

// New creates an extractor that reports decode failures to logger.
// A nil logger means slog.Default().
func New(logger *slog.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// Extract returns the text to show and the decoded payload, if any.
//
// Without a complete fence the reply is returned as is. If the fenced body
// does not decode, the reply is also returned as is and the failure is
// logged. Otherwise the fence is cut out and the rest trimmed.
func (e *Extractor) Extract(raw string) (string, *model.Payload) {
	fence, ok := FindFence(raw)
	if !ok {
		return raw, nil
	}

	payload := &model.Payload{}
	if err := json.Unmarshal([]byte(fence.Body), payload); err != nil {
		e.log().Warn("discarding malformed analysis block",
			"error", err,
			"offset", fence.Start,
			"length", len(fence.Body),
		)
		return raw, nil
	}

	display := strings.TrimSpace(raw[:fence.Start] + raw[fence.End:])
	return display, payload
}

func (e *Extractor) log() *slog.Logger {
	if e == nil || e.logger == nil {
		return slog.Default()
	}
	return e.logger
}

// Extract runs the default extractor, logging through slog.Default().
func Extract(raw string) (string, *model.Payload) {
	return (*Extractor)(nil).Extract(raw)
}
