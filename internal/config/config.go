// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management.
package config

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/firstverify-chat/internal/util"
)

// =============================================================================
// CONFIGURATION STRUCTURES
// =============================================================================

// Config is the main configuration structure.
type Config struct {
	// Version is the config format version.
	Version string `toml:"version" json:"version"`

	Agent AgentConfig `toml:"agent" json:"agent"`
	UI    UIConfig    `toml:"ui" json:"ui"`
	Log   LogConfig   `toml:"log" json:"log"`
}

// AgentConfig contains the chat endpoint settings.
type AgentConfig struct {
	// BaseURL is the agent server root, e.g. http://localhost:8000
	BaseURL string `toml:"base_url" json:"base_url"`
	// ChatPath is appended to BaseURL for chat requests.
	ChatPath string `toml:"chat_path" json:"chat_path"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Greeting is the assistant message a new session starts with.
	// An explicit empty string disables it.
	Greeting string `toml:"greeting" json:"greeting"`
	// TypingInterval is the delay between revealed characters of a question label.
	TypingInterval Duration `toml:"typing_interval" json:"typing_interval"`
	// Animate enables bar growth and label typing animations.
	Animate bool `toml:"animate" json:"animate"`
	// BarWidth fixes the bar track width in cells; 0 fits the panel.
	BarWidth int `toml:"bar_width" json:"bar_width"`
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme" json:"theme"`
}

// LogConfig controls the diagnostic log.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level" json:"level"`
	// File is the log path; empty means ConfigDir()/firstverify.log.
	File string `toml:"file" json:"file"`
}

// Duration is a time.Duration that reads and writes as "30ms" in config files.
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

const (
	// DefaultBaseURL is used when nothing else names the agent server.
	DefaultBaseURL = "http://localhost:8000"

	// DefaultChatPath is the chat endpoint below the base URL.
	DefaultChatPath = "/agent/chat"

	// DefaultGreeting opens every new transcript.
	DefaultGreeting = "Hello! How can I help you today?"

	// DefaultTypingInterval is the label reveal rate.
	DefaultTypingInterval = 30 * time.Millisecond

	configVersion = "1"
)

// Default returns a Config with all default values.
func Default() *Config {
	return &Config{
		Version: configVersion,
		Agent: AgentConfig{
			BaseURL:  DefaultBaseURL,
			ChatPath: DefaultChatPath,
		},
		UI: UIConfig{
			Greeting:       DefaultGreeting,
			TypingInterval: Duration{DefaultTypingInterval},
			Animate:        true,
			BarWidth:       0,
			Theme:          "auto",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ChatURL joins the base URL and chat path.
func (a AgentConfig) ChatURL() string {
	return strings.TrimRight(a.BaseURL, "/") + a.ChatPath
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".firstverify"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// LogPath returns the resolved diagnostic log path.
func (c *Config) LogPath() (string, error) {
	if c.Log.File != "" {
		return c.Log.File, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "firstverify.log"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from ~/.firstverify/config.toml, falling back
// to defaults when the file does not exist. Environment overrides are
// applied last.
func Load() (*Config, error) {
	path, err := ConfigPathTOML()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return LoadFromPath(path)
		}
	}

	cfg := Default()
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific TOML file with full validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if err := LoadTOML(cfg, path); err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file over cfg. Keys absent from the file keep
// their current values.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// SaveTOML saves the configuration to a TOML file.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "# FirstVerify Chat configuration file")
	fmt.Fprintln(&buf, "# NEXT_PUBLIC_API_URL / FIRSTVERIFY_API_URL override agent.base_url")
	fmt.Fprintln(&buf, "")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SetDefaults fills zero values that must never be empty.
// The greeting is left alone so an empty value can disable it.
func (c *Config) SetDefaults() {
	d := Default()
	if c.Version == "" {
		c.Version = d.Version
	}
	if c.Agent.BaseURL == "" {
		c.Agent.BaseURL = d.Agent.BaseURL
	}
	if c.Agent.ChatPath == "" {
		c.Agent.ChatPath = d.Agent.ChatPath
	}
	c.Agent.BaseURL = strings.TrimRight(c.Agent.BaseURL, "/")
	if c.UI.TypingInterval.Duration == 0 {
		c.UI.TypingInterval = d.UI.TypingInterval
	}
	if c.UI.Theme == "" {
		c.UI.Theme = d.UI.Theme
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if err := ValidateBaseURL(c.Agent.BaseURL); err != nil {
		errs = append(errs, ValidationError{Field: "agent.base_url", Message: err.Error()})
	}
	if !strings.HasPrefix(c.Agent.ChatPath, "/") {
		errs = append(errs, ValidationError{
			Field:   "agent.chat_path",
			Message: fmt.Sprintf("path %q must start with '/'", c.Agent.ChatPath),
		})
	}

	if iv := c.UI.TypingInterval.Duration; iv <= 0 || iv > time.Second {
		errs = append(errs, ValidationError{
			Field:   "ui.typing_interval",
			Message: fmt.Sprintf("interval %s must be between 1ns and 1s", iv),
		})
	}
	if c.UI.BarWidth != 0 && c.UI.BarWidth < 10 {
		errs = append(errs, ValidationError{
			Field:   "ui.bar_width",
			Message: fmt.Sprintf("width %d too small, use 0 (auto) or at least 10", c.UI.BarWidth),
		})
	}
	validThemes := map[string]bool{"auto": true, "dark": true, "light": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: auto, dark, light", c.UI.Theme),
		})
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Log.Level),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateBaseURL checks that raw is an absolute http(s) URL.
func ValidateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL %q must use http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("URL %q has no host", raw)
	}
	return nil
}

// String renders the config as TOML for display.
func (c *Config) String() string {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Sprintf("<config: %v>", err)
	}
	return buf.String()
}

// Clone returns a copy of the config.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
			cfg = Default()
		}
		globalConfigMu.Lock()
		if globalConfig == nil {
			globalConfig = cfg
		}
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
