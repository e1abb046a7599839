// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/mathrun-tui/internal/config"
	"github.com/jeranaias/mathrun-tui/internal/model"
	"github.com/jeranaias/mathrun-tui/internal/ollama"
	"github.com/jeranaias/mathrun-tui/internal/pipeline"
	"github.com/jeranaias/mathrun-tui/internal/ui/components"
	"github.com/jeranaias/mathrun-tui/internal/ui/styles"
)

// =============================================================================
// CHAT STATE
// =============================================================================

// State represents the current state of the chat view.
type State int

const (
	StateReady State = iota // Ready for input
	StateBusy               // Waiting on a generation or pipeline run
	StateError              // Showing an error
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	// State
	state State

	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int

	// Conversation
	conversation *model.Conversation

	// Backend
	client       *ollama.Client
	orchestrator *pipeline.Orchestrator
	connected    bool

	// Configuration
	modelName       string
	temperature     float64
	pipelineEnabled bool
	showTrace       bool

	// UI components
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	header   *components.Header
	welcome  *components.Welcome
	trace    *components.TraceView

	// Markdown rendering
	renderer      *glamour.TermRenderer
	rendererWidth int
}

// NewModel creates the chat view wired to a client and orchestrator.
func NewModel(cfg *config.Config, client *ollama.Client, orch *pipeline.Orchestrator) Model {
	theme := styles.NewTheme()

	input := textinput.New()
	input.Placeholder = "Ask anything, or try some arithmetic..."
	input.Prompt = "❯ "
	input.CharLimit = 4096
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner

	vp := viewport.New(80, 20)

	header := components.NewHeader(theme)
	header.SetModel(cfg.Ollama.Model)

	trace := components.NewTraceView(theme)
	trace.Verbose = cfg.UI.ShowTrace

	return Model{
		state:           StateReady,
		theme:           theme,
		width:           80,
		height:          24,
		conversation:    model.NewConversationWithModel(cfg.Ollama.Model),
		client:          client,
		orchestrator:    orch,
		modelName:       cfg.Ollama.Model,
		temperature:     cfg.Ollama.Temperature,
		pipelineEnabled: cfg.Pipeline.Enabled,
		showTrace:       cfg.UI.ShowTrace,
		viewport:        vp,
		input:           input,
		spinner:         sp,
		header:          header,
		welcome:         components.NewWelcome(theme),
		trace:           trace,
	}
}

// Init starts cursor blinking and the initial backend probe.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		CheckOllamaCmd(m.client),
	)
}

// State returns the current view state.
func (m Model) State() State {
	return m.state
}

// Conversation exposes the conversation for inspection.
func (m Model) Conversation() *model.Conversation {
	return m.conversation
}

// handleResize recomputes component dimensions after a terminal resize.
func (m *Model) handleResize(width, height int) {
	m.width = width
	m.height = height
	m.theme.SetSize(width, height)
	m.header.SetWidth(width)
	m.welcome.SetWidth(width)
	m.trace.SetWidth(width)
	m.input.Width = width - 6

	// header + input box + status line
	viewportHeight := height - 1 - 3 - 1
	if viewportHeight < 1 {
		viewportHeight = 1
	}
	m.viewport.Width = width
	m.viewport.Height = viewportHeight
	m.refreshViewport()
}
