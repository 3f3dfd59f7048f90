// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/firstverify-chat/internal/config"
	"github.com/jeranaias/firstverify-chat/internal/extract"
	"github.com/jeranaias/firstverify-chat/internal/model"
	"github.com/jeranaias/firstverify-chat/internal/ui/components"
	"github.com/jeranaias/firstverify-chat/internal/ui/styles"
)

// =============================================================================
// LAYOUT STAGE
// =============================================================================

// Stage is the screen layout. It only ever moves from StageHero to
// StageActive, on the first accepted submission.
type Stage int

const (
	StageHero   Stage = iota // Centered title and input
	StageActive              // Transcript beside the analysis panel
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageHero:
		return "hero"
	case StageActive:
		return "active"
	default:
		return "unknown"
	}
}

// =============================================================================
// DEPENDENCIES
// =============================================================================

// Sender posts a conversation to the agent. *agent.Client implements it.
type Sender interface {
	Chat(ctx context.Context, messages []model.WireMessage) (string, error)
	Endpoint() string
}

// Options wires a Model to its collaborators.
type Options struct {
	Config    *config.Config
	Client    Sender
	Extractor *extract.Extractor
	Logger    *slog.Logger
	// ExportDir receives exported transcripts (default: current directory).
	ExportDir string
}

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model of the chat screen. It owns the transcript
// and the loading flag; all changes happen in Update.
type Model struct {
	// Collaborators
	cfg       *config.Config
	client    Sender
	extractor *extract.Extractor
	logger    *slog.Logger
	exportDir string

	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int

	// Conversation state
	stage      Stage
	transcript *model.Transcript
	loading    bool

	// UI Components
	input     components.InputArea
	viewport  viewport.Model
	spinner   spinner.Model
	markdown  *components.Markdown
	bars      components.AnalysisBars
	inspector components.Inspector
	hero      components.Hero
	status    *components.StatusBar
	help      help.Model

	// Key bindings
	keys     KeyMap
	showHelp bool

	// Status notice
	noticeID int
}

// New creates the chat model in the hero stage.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	extractor := opts.Extractor
	if extractor == nil {
		extractor = extract.New(logger)
	}
	exportDir := opts.ExportDir
	if exportDir == "" {
		exportDir = "."
	}

	theme := styles.NewTheme(cfg.UI.Theme)

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: styles.DotsSpinner.Frames,
		FPS:    styles.DotsSpinner.Duration(),
	}
	sp.Style = theme.Spinner

	bars := components.NewAnalysisBars(theme)
	bars.SetBarWidth(cfg.UI.BarWidth)
	bars.SetAnimation(cfg.UI.Animate, cfg.UI.TypingInterval.Duration)

	status := components.NewStatusBar(theme)
	if opts.Client != nil {
		status.SetEndpoint(opts.Client.Endpoint())
	}

	h := help.New()
	h.Styles.ShortKey = theme.ShortcutKey
	h.Styles.ShortDesc = theme.ShortcutDesc
	h.Styles.FullKey = theme.ShortcutKey
	h.Styles.FullDesc = theme.ShortcutDesc

	m := Model{
		cfg:        cfg,
		client:     opts.Client,
		extractor:  extractor,
		logger:     logger,
		exportDir:  exportDir,
		theme:      theme,
		stage:      StageHero,
		transcript: model.NewTranscript(cfg.UI.Greeting),
		input:      components.NewInputArea(theme),
		viewport:   viewport.New(80, 20),
		spinner:    sp,
		markdown:   components.NewMarkdown(74, theme.IsDark),
		bars:       bars,
		inspector:  components.NewInspector(theme),
		hero:       components.NewHero(theme),
		status:     status,
		help:       h,
		keys:       DefaultKeyMap(),
	}
	m.updateShortcuts()
	m.layout()
	return m
}

// Init starts the cursor blinking.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Stage returns the current layout stage.
func (m Model) Stage() Stage {
	return m.stage
}

// Loading reports whether a request is in flight.
func (m Model) Loading() bool {
	return m.loading
}

// Transcript returns the conversation.
func (m Model) Transcript() *model.Transcript {
	return m.transcript
}

// Input returns the current input text.
func (m Model) Input() string {
	return m.input.Value()
}

// Payload returns the analysis payload on display, or nil.
func (m Model) Payload() *model.Payload {
	return m.bars.Payload()
}
