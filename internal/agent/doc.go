// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package agent provides the HTTP client for the agent chat endpoint.
//
// One call sends the whole conversation and receives one reply:
//
//	POST {base}/agent/chat
//	{"messages":[{"role":"user","content":"..."}]}
//
//	200 OK
//	{"response":"..."}
//
// # Key Types
//
//   - Client: Thread-safe client, no timeout and no retries
//   - ClientError: Typed failure (connection, status, decode, request)
//
// # Usage
//
//	client := agent.NewClient("http://localhost:8000")
//	reply, err := client.Chat(ctx, transcript.WireMessages())
//	if errors.Is(err, agent.ErrBadStatus) {
//	    ...
//	}
package agent
