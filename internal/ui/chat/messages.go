// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/jeranaias/firstverify-chat/internal/config"
)

// =============================================================================
// AGENT MESSAGES
// =============================================================================

// ChatReplyMsg carries the raw reply text of a completed request.
type ChatReplyMsg struct {
	Raw string
}

// ChatErrorMsg is sent when a request fails for any reason.
type ChatErrorMsg struct {
	Err error
}

// =============================================================================
// CONFIG MESSAGES
// =============================================================================

// ConfigReloadedMsg is sent by the config watcher after the file changes.
// Err is set when the new file failed to load; Config is then nil.
type ConfigReloadedMsg struct {
	Config *config.Config
	Err    error
}

// =============================================================================
// EXPORT AND CLIPBOARD MESSAGES
// =============================================================================

// ExportDoneMsg reports the outcome of an export.
type ExportDoneMsg struct {
	Path string
	Err  error
}

// CopyDoneMsg reports the outcome of a clipboard copy.
type CopyDoneMsg struct {
	Err error
}

// =============================================================================
// STATUS MESSAGES
// =============================================================================

// noticeExpiredMsg clears the status notice it was scheduled for.
type noticeExpiredMsg struct {
	id int
}
