// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/jeranaias/firstverify-chat/internal/config"
)

// =============================================================================
// CONFIG COMMAND
// =============================================================================

// HandleConfig handles "config [show|path|init]".
func HandleConfig(rt *Runtime, args Args) error {
	path, err := rt.configPath()
	if err != nil {
		return NewCommandError("config", "locate", "no config path", err)
	}

	switch args.Subcommand {
	case "", "show":
		return handleConfigShow(rt, args, path)
	case "path":
		if args.JSON {
			return NewJSONResponse("config path", map[string]string{"path": path}).Print(rt.stdout())
		}
		fmt.Fprintln(rt.stdout(), path)
		return nil
	case "init":
		return handleConfigInit(rt, args, path)
	default:
		return NewValidationErrorWithExample("config subcommand", args.Subcommand,
			"must be show, path or init", "firstverify config init")
	}
}

// configPath is the file in use: --config if given, else the default.
func (rt *Runtime) configPath() (string, error) {
	if rt.ConfigPath != "" {
		return rt.ConfigPath, nil
	}
	return config.ConfigPathTOML()
}

// handleConfigShow prints the effective configuration, after environment
// and flag overrides.
func handleConfigShow(rt *Runtime, args Args, path string) error {
	_, statErr := os.Stat(path)
	exists := statErr == nil
	cfg := rt.config()

	if args.JSON {
		return NewJSONResponse("config show", ConfigData{
			Path:   path,
			Exists: exists,
			Config: cfg,
		}).Print(rt.stdout())
	}

	out := rt.stdout()
	source := path
	if !exists {
		source += " (not found, using defaults)"
	}
	fmt.Fprintln(out, TitleStyle.Render("FirstVerify configuration"))
	fmt.Fprintln(out, RenderLabel("File")+ValueStyle.Render(source))
	fmt.Fprintln(out, RenderLabel("Chat endpoint")+ValueStyle.Render(cfg.Agent.ChatURL()))
	if logPath, err := cfg.LogPath(); err == nil {
		fmt.Fprintln(out, RenderLabel("Log file")+ValueStyle.Render(logPath))
	}
	fmt.Fprintln(out, RenderSeparator())
	fmt.Fprint(out, cfg.String())
	return nil
}

// handleConfigInit writes a default config file. An existing file is only
// replaced with --force.
func handleConfigInit(rt *Runtime, args Args, path string) error {
	_, err := os.Stat(path)
	switch {
	case err == nil && !args.Force:
		return NewCommandError("config", "init", "file exists, use --force to replace it", fs.ErrExist)
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return NewCommandError("config", "init", "cannot check "+path, err)
	}

	if err := config.SaveTOML(config.Default(), path); err != nil {
		return NewCommandError("config", "init", "cannot write "+path, err)
	}
	rt.logger().Info("config file written", "path", path)

	if args.JSON {
		return NewJSONResponse("config init", map[string]string{"path": path}).Print(rt.stdout())
	}
	fmt.Fprintln(rt.stdout(), RenderStatus("ok")+" Wrote "+path)
	return nil
}
