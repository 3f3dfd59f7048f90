// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the non-screen commands of
// firstverify.
//
// # Key Types
//
//   - Command: the command to run
//   - Args: parsed global and command-specific flags
//   - Runtime: config, agent client and output streams shared by handlers
//   - JSONResponse: envelope for --json output
//
// # Usage
//
//	cmd, args, err := cli.Parse(os.Args[1:])
//	if err != nil {
//	    cli.DisplayError(os.Stderr, err, false)
//	    os.Exit(cli.GetExitCode(err))
//	}
//	switch cmd {
//	case cli.CmdAsk:
//	    err = cli.HandleAskCommand(rt, args)
//	case cli.CmdChat:
//	    err = cli.HandleChatCommand(rt, args)
//	}
//
// # Commands Overview
//
//   - ask: one question, reply printed with static analysis bars
//   - chat: line-mode conversation with history, /clear and /export
//   - config: show, path or init the config file
//   - version, help
//
// The full-screen chat is started by main and lives in ui/chat.
package cli
