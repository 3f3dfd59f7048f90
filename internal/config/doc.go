// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for
// FirstVerify Chat.
//
// Settings come from a TOML file with sensible defaults, a .env file, and
// environment variable overrides, followed by validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - AgentConfig: Where chat requests are sent
//   - UIConfig: Greeting, typing speed and bar animation
//   - LogConfig: Diagnostic log destination and level
//
// # Configuration Precedence
//
// The agent base URL is resolved from (in order of precedence):
//   - The --url command line flag
//   - FIRSTVERIFY_API_URL
//   - NEXT_PUBLIC_API_URL (also read from ./.env)
//   - ~/.firstverify/config.toml
//   - Built-in default (http://localhost:8000)
//
// # Usage
//
//	_ = config.LoadDotEnv()
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	endpoint := cfg.Agent.ChatURL()
package config
