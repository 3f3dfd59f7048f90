// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

// isolate points the home directory at a temp dir and clears overrides.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	for _, key := range []string{EnvAPIURL, EnvPublicAPIURL, EnvLogLevel, EnvNoAnim, EnvTypingDelay} {
		t.Setenv(key, "")
	}
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// =============================================================================
// DEFAULTS AND LOADING
// =============================================================================

func TestConfig_Default(t *testing.T) {
	cfg := Default()

	if cfg.Agent.BaseURL != "http://localhost:8000" {
		t.Errorf("BaseURL = %q, want http://localhost:8000", cfg.Agent.BaseURL)
	}
	if cfg.Agent.ChatURL() != "http://localhost:8000/agent/chat" {
		t.Errorf("ChatURL() = %q", cfg.Agent.ChatURL())
	}
	if cfg.UI.TypingInterval.Duration != 30*time.Millisecond {
		t.Errorf("TypingInterval = %s, want 30ms", cfg.UI.TypingInterval)
	}
	if !cfg.UI.Animate {
		t.Error("Animate should default to true")
	}
	if cfg.UI.Greeting != DefaultGreeting {
		t.Errorf("Greeting = %q", cfg.UI.Greeting)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Agent.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", cfg.Agent.BaseURL, DefaultBaseURL)
	}
}

func TestLoad_FromTOML(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".firstverify", "config.toml"), `
[agent]
base_url = "http://agent.internal:9000/"

[ui]
greeting = ""
typing_interval = "15ms"
animate = false
bar_width = 40
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Agent.BaseURL != "http://agent.internal:9000" {
		t.Errorf("BaseURL = %q, trailing slash should be trimmed", cfg.Agent.BaseURL)
	}
	if cfg.Agent.ChatPath != DefaultChatPath {
		t.Errorf("ChatPath = %q, absent key should keep default", cfg.Agent.ChatPath)
	}
	if cfg.UI.Greeting != "" {
		t.Errorf("Greeting = %q, explicit empty should disable it", cfg.UI.Greeting)
	}
	if cfg.UI.TypingInterval.Duration != 15*time.Millisecond {
		t.Errorf("TypingInterval = %s, want 15ms", cfg.UI.TypingInterval)
	}
	if cfg.UI.Animate {
		t.Error("Animate should be false")
	}
	if cfg.UI.BarWidth != 40 {
		t.Errorf("BarWidth = %d, want 40", cfg.UI.BarWidth)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
}

func TestLoadFromPath_Invalid(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad toml", "[agent\nbase_url=", "decode"},
		{"bad url", "[agent]\nbase_url = \"ftp://x\"", "agent.base_url"},
		{"bad path", "[agent]\nchat_path = \"agent/chat\"", "agent.chat_path"},
		{"bad interval", "[ui]\ntyping_interval = \"5s\"", "ui.typing_interval"},
		{"bad width", "[ui]\nbar_width = 3", "ui.bar_width"},
		{"bad theme", "[ui]\ntheme = \"neon\"", "ui.theme"},
		{"bad level", "[log]\nlevel = \"loud\"", "log.level"},
	}

	for i, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, "c"+string(rune('a'+i))+".toml")
			writeFile(t, path, tc.content)

			_, err := LoadFromPath(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error = %v, want it to mention %q", err, tc.wantErr)
			}
		})
	}
}

func TestSaveTOML_RoundTrip(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.Agent.BaseURL = "https://agent.example.com"
	cfg.UI.TypingInterval = Duration{45 * time.Millisecond}

	if err := SaveTOML(cfg, path); err != nil {
		t.Fatalf("SaveTOML() error: %v", err)
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if loaded.Agent.BaseURL != cfg.Agent.BaseURL {
		t.Errorf("BaseURL = %q, want %q", loaded.Agent.BaseURL, cfg.Agent.BaseURL)
	}
	if loaded.UI.TypingInterval.Duration != 45*time.Millisecond {
		t.Errorf("TypingInterval = %s, want 45ms", loaded.UI.TypingInterval)
	}
}

// =============================================================================
// ENVIRONMENT
// =============================================================================

func TestApplyEnvOverrides_BaseURLPrecedence(t *testing.T) {
	tests := []struct {
		name    string
		primary string
		public  string
		want    string
	}{
		{"none", "", "", "http://from-file:1"},
		{"public only", "", "http://public:2", "http://public:2"},
		{"primary wins", "http://primary:3", "http://public:2", "http://primary:3"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(EnvAPIURL, tc.primary)
			t.Setenv(EnvPublicAPIURL, tc.public)

			cfg := Default()
			cfg.Agent.BaseURL = "http://from-file:1"
			cfg.ApplyEnvOverrides()

			if cfg.Agent.BaseURL != tc.want {
				t.Errorf("BaseURL = %q, want %q", cfg.Agent.BaseURL, tc.want)
			}
		})
	}
}

func TestApplyEnvOverrides_UI(t *testing.T) {
	isolate(t)
	t.Setenv(EnvNoAnim, "true")
	t.Setenv(EnvTypingDelay, "10ms")
	t.Setenv(EnvLogLevel, "DEBUG")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.UI.Animate {
		t.Error("Animate should be disabled")
	}
	if cfg.UI.TypingInterval.Duration != 10*time.Millisecond {
		t.Errorf("TypingInterval = %s, want 10ms", cfg.UI.TypingInterval)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
}

func TestLoadDotEnv(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	writeFile(t, envFile, "NEXT_PUBLIC_API_URL=http://dotenv:8000\n")

	os.Unsetenv(EnvPublicAPIURL)
	t.Cleanup(func() { os.Unsetenv(EnvPublicAPIURL) })

	if err := LoadDotEnv(envFile); err != nil {
		t.Fatalf("LoadDotEnv() error: %v", err)
	}
	if got := os.Getenv(EnvPublicAPIURL); got != "http://dotenv:8000" {
		t.Errorf("%s = %q, want value from .env", EnvPublicAPIURL, got)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Agent.BaseURL != "http://dotenv:8000" {
		t.Errorf("BaseURL = %q, want value from .env", cfg.Agent.BaseURL)
	}
}

func TestLoadDotEnv_DoesNotOverrideEnvironment(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	writeFile(t, envFile, "FIRSTVERIFY_API_URL=http://dotenv:8000\n")
	t.Setenv(EnvAPIURL, "http://real:9000")

	if err := LoadDotEnv(envFile); err != nil {
		t.Fatalf("LoadDotEnv() error: %v", err)
	}
	if got := os.Getenv(EnvAPIURL); got != "http://real:9000" {
		t.Errorf("%s = %q, real environment should win", EnvAPIURL, got)
	}
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "nope.env")); err != nil {
		t.Errorf("missing .env should not error, got %v", err)
	}
}

// =============================================================================
// WATCH
// =============================================================================

func TestWatch_ReloadsOnWrite(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[ui]\nbar_width = 20\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan *Config, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = Watch(ctx, path, func(cfg *Config, err error) {
			if err == nil && cfg != nil {
				got <- cfg
			}
		})
	}()

	deadline := time.After(5 * time.Second)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case cfg := <-got:
			if cfg.UI.BarWidth != 30 {
				continue
			}
			cancel()
			<-done
			return
		case <-ticker.C:
			writeFile(t, path, "[ui]\nbar_width = 30\n")
		case <-deadline:
			t.Fatal("no reload observed")
		}
	}
}

// =============================================================================
// GLOBAL SINGLETON
// =============================================================================

// TestConfig_ConcurrentAccess tests that Global() and SetGlobal() can be
// safely called concurrently. Run with: go test -race ./internal/config/
func TestConfig_ConcurrentAccess(t *testing.T) {
	isolate(t)
	ResetGlobalForTesting()
	defer ResetGlobalForTesting()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)

		go func() {
			defer wg.Done()
			c := Default()
			c.Agent.BaseURL = "http://writer:1"
			SetGlobal(c)
		}()

		go func() {
			defer wg.Done()
			if Global() == nil {
				t.Error("Global() returned nil")
			}
		}()
	}
	wg.Wait()
}

func TestConfig_SetGlobalOverwrites(t *testing.T) {
	isolate(t)
	ResetGlobalForTesting()
	defer ResetGlobalForTesting()

	_ = Global()
	custom := Default()
	custom.Agent.BaseURL = "http://custom:1"
	SetGlobal(custom)

	if Global().Agent.BaseURL != "http://custom:1" {
		t.Errorf("Global().Agent.BaseURL = %q, want custom", Global().Agent.BaseURL)
	}
}

func TestConfig_Clone(t *testing.T) {
	cfg := Default()
	clone := cfg.Clone()
	clone.Agent.BaseURL = "http://other:1"

	if cfg.Agent.BaseURL == clone.Agent.BaseURL {
		t.Error("Clone() should not share nested structs")
	}
}
