// firstverify - terminal client for the FirstVerify agent.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/firstverify-chat/internal/agent"
	"github.com/jeranaias/firstverify-chat/internal/cli"
	"github.com/jeranaias/firstverify-chat/internal/config"
	"github.com/jeranaias/firstverify-chat/internal/extract"
	"github.com/jeranaias/firstverify-chat/internal/logging"
	"github.com/jeranaias/firstverify-chat/internal/ui/chat"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args, err := cli.Parse(os.Args[1:])
	if err != nil {
		cli.DisplayError(os.Stderr, err, args.JSON)
		if cmd == cli.CmdHelp {
			fmt.Fprintln(os.Stderr, "Run 'firstverify help' for usage.")
		}
		os.Exit(cli.GetExitCode(err))
	}

	// Help and version need nothing loaded.
	rt := &cli.Runtime{ConfigPath: args.ConfigPath}
	switch cmd {
	case cli.CmdHelp:
		cli.HandleHelp(rt)
		return
	case cli.CmdVersion:
		exit(cli.HandleVersion(rt, args), args)
	}

	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "%s reading .env: %v\n", cli.WarningStyle.Render("[WARN]"), err)
	}

	cfg, err := loadConfig(args)
	if err != nil {
		cli.DisplayError(os.Stderr, err, args.JSON)
		os.Exit(cli.ExitConfigError)
	}
	config.SetGlobal(cfg)

	logger, closer, err := setupLogging(cfg, args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s logging disabled: %v\n", cli.WarningStyle.Render("[WARN]"), err)
		logger, closer = logging.Discard(), io.NopCloser(nil)
	}

	client := agent.NewClientWithConfig(&agent.ClientConfig{
		BaseURL:  cfg.Agent.BaseURL,
		ChatPath: cfg.Agent.ChatPath,
		Logger:   logger,
	})
	logger.Info("starting", "command", cmd.String(), "version", Version, "endpoint", client.Endpoint())

	rt.Config = cfg
	rt.Client = client
	rt.Logger = logger
	rt.Extractor = extract.New(logger)

	switch cmd {
	case cli.CmdAsk:
		err = cli.HandleAskCommand(rt, args)
	case cli.CmdChat:
		err = cli.HandleChatCommand(rt, args)
	case cli.CmdConfig:
		err = cli.HandleConfig(rt, args)
	default:
		err = runTUI(rt, args)
	}
	if err != nil {
		logger.Error("command failed", "command", cmd.String(), "error", err)
	}
	// os.Exit skips deferred calls
	closer.Close()
	exit(err, args)
}

// exit reports err, if any, and ends the process with its exit code.
func exit(err error, args cli.Args) {
	if err != nil {
		cli.DisplayError(os.Stderr, err, args.JSON)
	}
	os.Exit(cli.GetExitCode(err))
}

// loadConfig reads the config file and applies environment and flag
// overrides, in that order.
func loadConfig(args cli.Args) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if args.ConfigPath != "" {
		cfg, err = config.LoadFromPath(args.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	applyFlags(cfg, args)
	return cfg, nil
}

// applyFlags puts command-line overrides on top of a loaded config.
func applyFlags(cfg *config.Config, args cli.Args) {
	if args.URL != "" {
		cfg.Agent.BaseURL = args.URL
		cfg.SetDefaults()
	}
	if args.NoAnim {
		cfg.UI.Animate = false
	}
}

func setupLogging(cfg *config.Config, args cli.Args) (*slog.Logger, io.Closer, error) {
	path, err := cfg.LogPath()
	if err != nil {
		return nil, nil, err
	}
	return logging.Setup(logging.Options{
		Path:    path,
		Level:   cfg.Log.Level,
		Verbose: args.Verbose,
	})
}

// runTUI starts the chat screen and keeps it in step with the config file.
func runTUI(rt *cli.Runtime, args cli.Args) error {
	m := chat.New(chat.Options{
		Config:    rt.Config,
		Client:    rt.Client,
		Extractor: rt.Extractor,
		Logger:    rt.Logger,
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go watchConfig(ctx, p, rt, args)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat screen: %w", err)
	}
	return nil
}

// watchConfig forwards config file changes to the running program.
func watchConfig(ctx context.Context, p *tea.Program, rt *cli.Runtime, args cli.Args) {
	path := args.ConfigPath
	if path == "" {
		var err error
		if path, err = config.ConfigPathTOML(); err != nil {
			rt.Logger.Warn("config watch disabled", "error", err)
			return
		}
	}

	err := config.Watch(ctx, path, func(cfg *config.Config, err error) {
		if cfg != nil {
			applyFlags(cfg, args)
			config.SetGlobal(cfg)
		}
		p.Send(chat.ConfigReloadedMsg{Config: cfg, Err: err})
	})
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		rt.Logger.Warn("config watch disabled", "path", path, "error", err)
	}
}
