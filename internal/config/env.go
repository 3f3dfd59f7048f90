// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// ENVIRONMENT
// =============================================================================

// Environment variables read by ApplyEnvOverrides.
const (
	EnvAPIURL       = "FIRSTVERIFY_API_URL"
	EnvPublicAPIURL = "NEXT_PUBLIC_API_URL"
	EnvLogLevel     = "FIRSTVERIFY_LOG_LEVEL"
	EnvNoAnim       = "FIRSTVERIFY_NO_ANIM"
	EnvTypingDelay  = "FIRSTVERIFY_TYPING_INTERVAL"
)

// LoadDotEnv loads KEY=value pairs from the given files (default ".env")
// into the process environment. Variables already set are not replaced.
// A missing file is not an error.
func LoadDotEnv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	var present []string
	for _, name := range filenames {
		if _, err := os.Stat(name); err == nil {
			present = append(present, name)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	if len(present) == 0 {
		return nil
	}
	return godotenv.Load(present...)
}

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported variables:
//   - FIRSTVERIFY_API_URL: overrides agent.base_url
//   - NEXT_PUBLIC_API_URL: overrides agent.base_url when FIRSTVERIFY_API_URL is unset
//   - FIRSTVERIFY_LOG_LEVEL: overrides log.level
//   - FIRSTVERIFY_NO_ANIM: "1"/"true" disables ui.animate
//   - FIRSTVERIFY_TYPING_INTERVAL: overrides ui.typing_interval (e.g. "15ms")
func (c *Config) ApplyEnvOverrides() {
	if u := os.Getenv(EnvAPIURL); u != "" {
		c.Agent.BaseURL = u
	} else if u := os.Getenv(EnvPublicAPIURL); u != "" {
		c.Agent.BaseURL = u
	}

	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Log.Level = strings.ToLower(level)
	}

	if noAnim := os.Getenv(EnvNoAnim); noAnim != "" {
		if noAnim == "1" || strings.ToLower(noAnim) == "true" {
			c.UI.Animate = false
		}
	}

	if iv := os.Getenv(EnvTypingDelay); iv != "" {
		if d, err := time.ParseDuration(iv); err == nil {
			c.UI.TypingInterval = Duration{d}
		}
	}
}
