// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package agent

import "github.com/jeranaias/firstverify-chat/internal/model"

// ChatRequest is the body posted to the chat endpoint.
type ChatRequest struct {
	Messages []model.WireMessage `json:"messages"`
}

// ChatResponse is the body of a successful reply.
type ChatResponse struct {
	Response string `json:"response"`
}
