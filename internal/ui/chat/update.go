// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/mathrun-tui/internal/ollama"
	"github.com/jeranaias/mathrun-tui/internal/pipeline"
)

// =============================================================================
// COMMAND CREATORS
// =============================================================================

// CheckOllamaCmd creates a command that probes backend reachability.
func CheckOllamaCmd(client *ollama.Client) tea.Cmd {
	return func() tea.Msg {
		if client == nil {
			return OllamaStatusMsg{Running: false}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return OllamaStatusMsg{Running: client.IsAvailable(ctx)}
	}
}

// GenerateCmd creates a command that runs a direct chat completion.
func GenerateCmd(client *ollama.Client, prompt, modelName string, temperature float64) tea.Cmd {
	return func() tea.Msg {
		if client == nil {
			return GenerateResultMsg{Err: ollama.ErrNotRunning}
		}
		content, err := client.Generate(context.Background(), prompt, &ollama.GenerateOptions{
			Model:       modelName,
			Temperature: temperature,
		})
		return GenerateResultMsg{Content: strings.TrimSpace(content), Err: err}
	}
}

// SolveCmd creates a command that runs the math pipeline on a query.
func SolveCmd(orch *pipeline.Orchestrator, query string) tea.Cmd {
	return func() tea.Msg {
		if orch == nil {
			return PipelineResultMsg{Err: ollama.ErrNotRunning}
		}
		run, err := orch.Solve(context.Background(), query)
		return PipelineResultMsg{Run: run, Err: err}
	}
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles Bubble Tea messages for the chat view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleResize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if m.state == StateBusy {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case OllamaStatusMsg:
		m.connected = msg.Running
		m.header.SetConnected(msg.Running)
		if !msg.Running && m.conversation.Len() == 0 {
			m.conversation.AddErrorMessage("Ollama is not reachable. Start it with `ollama serve` and try again.")
			m.refreshViewport()
		}
		return m, nil

	case GenerateResultMsg:
		m.state = StateReady
		if msg.Err != nil {
			m.conversation.AddErrorMessage("Generation failed: " + msg.Err.Error())
		} else {
			m.conversation.AddAssistantMessage(msg.Content)
		}
		m.refreshViewport()
		return m, nil

	case PipelineResultMsg:
		m.state = StateReady
		m.applyPipelineResult(msg)
		m.refreshViewport()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// handleKey routes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "ctrl+l":
		m.conversation.Clear()
		m.refreshViewport()
		return m, nil

	case "ctrl+t":
		m.showTrace = !m.showTrace
		m.trace.Verbose = m.showTrace
		m.refreshViewport()
		return m, nil

	case "enter":
		// Input is not accepted while a query is in flight.
		if m.state == StateBusy {
			return m, nil
		}
		return m.submit()

	case "pgup":
		m.viewport.HalfViewUp()
		return m, nil

	case "pgdown":
		m.viewport.HalfViewDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit dispatches the current input to the pipeline or direct chat.
func (m Model) submit() (Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}

	m.conversation.AddUserMessage(text)
	m.input.Reset()
	m.state = StateBusy
	m.refreshViewport()

	var work tea.Cmd
	if m.pipelineEnabled && pipeline.IsMathQuery(text) {
		work = SolveCmd(m.orchestrator, text)
	} else {
		work = GenerateCmd(m.client, text, m.modelName, m.temperature)
	}
	return m, tea.Batch(work, m.spinner.Tick)
}

// applyPipelineResult turns a pipeline result into conversation messages.
func (m *Model) applyPipelineResult(msg PipelineResultMsg) {
	if msg.Err != nil {
		m.conversation.AddErrorMessage("Pipeline failed: " + msg.Err.Error())
		return
	}

	run := msg.Run
	if run.Success {
		m.conversation.AddPipelineMessage(run.Answer, run)
		return
	}

	content := "I couldn't evaluate that expression."
	if failed := run.FailedStage(); failed != nil && failed.Err != "" {
		content = "I couldn't evaluate that expression: " + failed.Err
	}
	pm := m.conversation.AddPipelineMessage(content, run)
	pm.IsError = true
}
