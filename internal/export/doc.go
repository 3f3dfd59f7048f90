// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes chat transcripts to files.
//
// # Supported Formats
//
//   - Markdown: Human-readable, with analysis payloads rendered as tables
//   - JSON: Machine-readable, every message with its payload
//
// # Usage
//
//	path, err := export.Export(transcript, export.FormatMarkdown, export.DefaultOptions())
//
// Files are named from the first user message and the export time and are
// written atomically.
package export
