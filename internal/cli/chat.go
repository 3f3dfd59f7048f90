// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Line-mode chat for terminals where the full screen is unwanted.
//
// Each line is one submission. The whole conversation is sent every time,
// exactly as the chat screen does, and replies are printed with their
// analysis bars drawn statically.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/peterh/liner"

	"github.com/jeranaias/firstverify-chat/internal/config"
	"github.com/jeranaias/firstverify-chat/internal/export"
	"github.com/jeranaias/firstverify-chat/internal/model"
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// lineReader reads one line of user input per call.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
	Close() error
}

// ChatCLI provides input history and line editing for interactive chat.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a ChatCLI with history kept in the config directory.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}

	cli := &ChatCLI{
		line:        line,
		historyFile: filepath.Join(configDir, "chat_history"),
	}
	cli.LoadHistory()
	return cli
}

// LoadHistory loads input history from file.
func (c *ChatCLI) LoadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

// Prompt reads a line with arrow-key history navigation.
func (c *ChatCLI) Prompt(prompt string) (string, error) {
	return c.line.Prompt(prompt)
}

// AppendHistory records a submitted line.
func (c *ChatCLI) AppendHistory(item string) {
	c.line.AppendHistory(item)
}

// SaveHistory writes history to file, readable only by the owner.
func (c *ChatCLI) SaveHistory() {
	if err := config.EnsureConfigDir(); err != nil {
		return
	}
	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	c.line.WriteHistory(f)
}

// Close saves history and restores the terminal.
func (c *ChatCLI) Close() error {
	c.SaveHistory()
	return c.line.Close()
}

// scanReader reads lines from a pipe or an injected reader.
type scanReader struct {
	scanner *bufio.Scanner
}

func newScanReader(r io.Reader) *scanReader {
	return &scanReader{scanner: bufio.NewScanner(r)}
}

func (s *scanReader) Prompt(string) (string, error) {
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.scanner.Text(), nil
}

func (s *scanReader) AppendHistory(string) {}

func (s *scanReader) Close() error { return nil }

// =============================================================================
// SESSION STATE
// =============================================================================

// chatSession holds the state of one line-mode conversation.
type chatSession struct {
	rt         *Runtime
	args       Args
	transcript *model.Transcript
	printer    *replyPrinter
	in         lineReader

	// Session statistics
	startTime time.Time
	sent      int
	failed    int
	analyses  int
	waited    time.Duration
}

const chatPrompt = "you> "

// =============================================================================
// CHAT COMMAND
// =============================================================================

// HandleChatCommand runs the line-mode chat until /quit or end of input.
func HandleChatCommand(rt *Runtime, args Args) error {
	if rt.Client == nil {
		return NewCommandError("chat", "start", "no agent client configured", nil)
	}

	var in lineReader
	switch {
	case rt.Stdin != nil:
		in = newScanReader(rt.Stdin)
	case IsTTY():
		in = NewChatCLI()
	default:
		in = newScanReader(os.Stdin)
	}
	defer in.Close()

	s := &chatSession{
		rt:        rt,
		args:      args,
		printer:   newReplyPrinter(rt, args.Raw),
		in:        in,
		startTime: time.Now(),
	}
	s.reset()

	if !args.Quiet {
		out := rt.stdout()
		fmt.Fprintln(out, TitleStyle.Render("FirstVerify Chat"))
		fmt.Fprintln(out, DimStyle.Render("Connected to "+rt.Client.Endpoint()+". Type /help for commands."))
		if greeting := s.transcript.LastAssistant(); greeting != nil {
			fmt.Fprintln(out)
			s.printer.print(greeting.Content, nil)
		}
		fmt.Fprintln(out)
	}

	err := s.loop()
	if !args.Quiet {
		s.printExitSummary()
	}
	return err
}

func (s *chatSession) loop() error {
	for {
		input, err := s.in.Prompt(chatPrompt)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				fmt.Fprintln(s.rt.stdout())
				return nil
			}
			return NewCommandError("chat", "read", "reading input failed", err)
		}

		trimmed := strings.TrimSpace(input)
		if trimmed == "" {
			continue
		}
		s.in.AppendHistory(input)

		if strings.HasPrefix(trimmed, "/") {
			if !s.handleSlashCommand(trimmed) {
				return nil
			}
			continue
		}

		s.send(input)
	}
}

// send submits one line. The user message keeps the text as typed.
func (s *chatSession) send(text string) {
	out := s.rt.stdout()
	log := s.rt.logger().With("command", "chat")

	s.transcript.Append(model.NewUserMessage(text))
	wire := s.transcript.WireMessages()
	log.Debug("sending conversation", "messages", len(wire))

	start := time.Now()
	raw, err := s.rt.Client.Chat(context.Background(), wire)
	s.sent++
	s.waited += time.Since(start)
	if err != nil {
		s.failed++
		log.Error("chat request failed", "error", err)
		s.transcript.Append(model.NewAssistantMessage(model.FallbackReply, nil))
		fmt.Fprintln(out)
		fmt.Fprintln(out, ErrorStyle.Render(model.FallbackReply))
		fmt.Fprintln(out)
		return
	}

	display, payload := s.rt.extractor().Extract(raw)
	s.transcript.Append(model.NewAssistantMessage(display, payload))
	if payload != nil {
		s.analyses++
	}

	fmt.Fprintln(out)
	s.printer.print(display, payload)
	fmt.Fprintln(out)
}

// printExitSummary reports what the session sent, once the loop ends.
func (s *chatSession) printExitSummary() {
	out := s.rt.stdout()
	if s.sent == 0 {
		fmt.Fprintln(out, DimStyle.Render("Goodbye!"))
		return
	}

	fmt.Fprintln(out, TitleStyle.Render("Session Summary"))
	fmt.Fprintf(out, "  %s%d (%d failed)\n", RenderLabel("Messages sent"), s.sent, s.failed)
	fmt.Fprintf(out, "  %s%d\n", RenderLabel("Analyses"), s.analyses)
	fmt.Fprintf(out, "  %s%s\n", RenderLabel("Avg reply"), formatDurationShort(s.waited/time.Duration(s.sent)))
	fmt.Fprintf(out, "  %s%s\n", RenderLabel("Duration"), time.Since(s.startTime).Round(time.Second))
}

// reset starts a new conversation with the configured greeting.
func (s *chatSession) reset() {
	s.transcript = model.NewTranscript(s.rt.config().UI.Greeting)
}

// =============================================================================
// SLASH COMMANDS
// =============================================================================

const chatHelp = `Commands:
  /help              Show this list
  /clear             Start a new conversation
  /export [md|json]  Write the conversation to a file (default: md)
  /quit              Leave (also /exit, Ctrl+D)`

// handleSlashCommand runs a /command and reports whether to keep going.
func (s *chatSession) handleSlashCommand(line string) bool {
	out := s.rt.stdout()
	fields := strings.Fields(line)
	cmd := strings.ToLower(fields[0])

	switch cmd {
	case "/quit", "/exit", "/q":
		return false

	case "/help", "/?":
		fmt.Fprintln(out, chatHelp)

	case "/clear", "/new":
		s.reset()
		fmt.Fprintln(out, RenderStatus("ok")+" New conversation")

	case "/export":
		format := s.args.Format
		if len(fields) > 1 {
			format = fields[1]
		}
		path, err := s.export(format)
		if err != nil {
			s.rt.logger().Warn("export failed", "error", err)
			fmt.Fprintln(out, RenderStatus("fail")+" Export failed: "+err.Error())
			break
		}
		fmt.Fprintln(out, RenderStatus("ok")+" Exported to "+path)

	default:
		fmt.Fprintf(out, "%s Unknown command %s. Type /help for commands.\n", RenderStatus("warn"), cmd)
	}
	return true
}

func (s *chatSession) export(format string) (string, error) {
	f, err := export.ParseFormat(format)
	if err != nil {
		return "", err
	}
	dir := s.rt.ExportDir
	if dir == "" {
		dir = "."
	}
	dir, err = ValidateOutputPath(dir)
	if err != nil {
		return "", err
	}
	opts := export.DefaultOptions()
	opts.OutputDir = dir
	return export.Export(s.transcript, f, opts)
}
