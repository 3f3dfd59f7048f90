// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - One-shot question command.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/jeranaias/firstverify-chat/internal/model"
	"github.com/jeranaias/firstverify-chat/internal/ui/components"
	"github.com/jeranaias/firstverify-chat/internal/ui/styles"
)

// =============================================================================
// REPLY RENDERING
// =============================================================================

// replyPrinter writes extracted replies, styled for a terminal or plain
// for pipes.
type replyPrinter struct {
	w        io.Writer
	styled   bool
	raw      bool
	width    int
	theme    *styles.Theme
	markdown *components.Markdown
}

func newReplyPrinter(rt *Runtime, raw bool) *replyPrinter {
	p := &replyPrinter{
		w:      rt.stdout(),
		styled: rt.interactive(),
		raw:    raw,
		width:  DefaultTerminalWidth - 2,
	}
	if p.styled {
		p.width = renderWidth()
		theme := rt.config().UI.Theme
		p.theme = styles.NewTheme(theme)
		p.markdown = components.NewMarkdown(p.width, hasDarkBackground(theme))
	} else {
		p.theme = styles.NewTheme("dark")
	}
	return p
}

// print writes the visible text and, when present, the analysis payload.
func (p *replyPrinter) print(display string, payload *model.Payload) {
	switch {
	case p.raw:
		fmt.Fprintln(p.w, display)
	case p.styled:
		fmt.Fprintln(p.w, p.markdown.Render(display))
	default:
		fmt.Fprintln(p.w, display)
	}

	if payload == nil {
		return
	}
	fmt.Fprintln(p.w)
	if p.raw {
		fmt.Fprintln(p.w, components.PayloadJSON(payload, p.styled))
		return
	}
	fmt.Fprintln(p.w, components.RenderStatic(p.theme, payload, p.width))
}

// =============================================================================
// ASK COMMAND
// =============================================================================

// HandleAskCommand sends a single question and prints the reply. The
// conversation is the configured greeting followed by the question, the
// same as the first submission in the chat screen.
func HandleAskCommand(rt *Runtime, args Args) error {
	if rt.Client == nil {
		return NewCommandError("ask", "send", "no agent client configured", nil)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	transcript := model.NewTranscript(rt.config().UI.Greeting)
	transcript.Append(model.NewUserMessage(args.Query))

	log := rt.logger().With("command", "ask")
	log.Debug("sending question", "endpoint", rt.Client.Endpoint())

	start := time.Now()
	raw, err := rt.Client.Chat(ctx, transcript.WireMessages())
	elapsed := time.Since(start)
	if err != nil {
		log.Error("chat request failed", "error", err, "duration", elapsed)
		if !args.JSON {
			fmt.Fprintln(rt.stdout(), model.FallbackReply)
		}
		return NewCommandError("ask", "send", "agent request failed", err)
	}

	display, payload := rt.extractor().Extract(raw)
	log.Info("reply received", "duration", elapsed, "has_payload", payload != nil)

	if args.JSON {
		return NewJSONResponse("ask", AskData{
			Endpoint:   rt.Client.Endpoint(),
			Display:    display,
			Payload:    payload,
			Raw:        raw,
			DurationMs: elapsed.Milliseconds(),
		}).Print(rt.stdout())
	}

	newReplyPrinter(rt, args.Raw).print(display, payload)

	if !args.Quiet && rt.interactive() {
		meta := []string{rt.Client.Endpoint(), formatDurationShort(elapsed)}
		if payload != nil {
			meta = append(meta, fmt.Sprintf("%d questions analysed", len(payload.Questions)))
		}
		fmt.Fprintln(rt.stderr(), DimStyle.Render(strings.Join(meta, " · ")))
	}
	return nil
}
