// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/jeranaias/firstverify-chat/internal/config"
	"github.com/jeranaias/firstverify-chat/internal/extract"
	"github.com/jeranaias/firstverify-chat/internal/model"
)

// Chatter posts a conversation to the agent. *agent.Client implements it.
type Chatter interface {
	Chat(ctx context.Context, messages []model.WireMessage) (string, error)
	Endpoint() string
}

// Runtime carries what every command handler needs. main builds it once
// after loading the config; tests fill in buffers and a fake Chatter.
type Runtime struct {
	Config     *config.Config
	ConfigPath string
	Client     Chatter
	Extractor  *extract.Extractor
	Logger     *slog.Logger

	// Nil streams mean the process's own.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// ExportDir receives /export files (default: current directory).
	ExportDir string
}

func (rt *Runtime) stdout() io.Writer {
	if rt.Stdout != nil {
		return rt.Stdout
	}
	return os.Stdout
}

func (rt *Runtime) stderr() io.Writer {
	if rt.Stderr != nil {
		return rt.Stderr
	}
	return os.Stderr
}

func (rt *Runtime) logger() *slog.Logger {
	if rt.Logger != nil {
		return rt.Logger
	}
	return slog.Default()
}

func (rt *Runtime) extractor() *extract.Extractor {
	if rt.Extractor == nil {
		rt.Extractor = extract.New(rt.logger())
	}
	return rt.Extractor
}

func (rt *Runtime) config() *config.Config {
	if rt.Config == nil {
		rt.Config = config.Global()
	}
	return rt.Config
}

// interactive reports whether output goes to a terminal the handlers may
// style. Injected writers are never interactive.
func (rt *Runtime) interactive() bool {
	return rt.Stdout == nil && IsStdoutTTY()
}
