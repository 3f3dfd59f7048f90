// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package extract pulls the analysis payload out of assistant replies.
//
// A reply may embed one fenced block opened by "```json" and closed by the
// next "```". Only the first such block is considered; any later fences
// stay in the display text as literal content. Nested fences are not
// recognised.
//
// # Usage
//
//	display, payload := extract.Extract(reply)
//	if payload != nil {
//	    // render bars
//	}
//
// A block that fails to decode leaves the reply untouched and is only
// logged through log/slog.
package extract
