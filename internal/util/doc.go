// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by the CLI and the TUI.
//
// # Key Functions
//
// Display width (terminal cells, CJK and emoji aware):
//   - Width: Cell width of a string
//   - Truncate: Cut a string to a cell width with an ellipsis
//   - WrapItems: Group whole items into lines of a cell width
//
// Files:
//   - AtomicWriteFile: Crash-safe file writing with fsync
//
// # Usage
//
//	label := util.Truncate(answer.Label, 24)
//	err := util.AtomicWriteFile(path, data, 0644)
package util
