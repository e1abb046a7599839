// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/mathrun-tui/internal/config"
	"github.com/jeranaias/mathrun-tui/internal/model"
	"github.com/jeranaias/mathrun-tui/internal/pipeline"
)

func newTestModel() Model {
	m := NewModel(config.DefaultConfig(), nil, nil)
	m.handleResize(100, 30)
	return m
}

func pressEnter(m Model) (Model, tea.Cmd) {
	nm, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return nm.(Model), cmd
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	nm, cmd := m.Update(msg)
	return nm.(Model), cmd
}

func TestSubmitAddsUserMessageAndGoesBusy(t *testing.T) {
	m := newTestModel()
	m.input.SetValue("what is 2 plus 2")

	m, cmd := pressEnter(m)

	if m.State() != StateBusy {
		t.Errorf("state = %v, want StateBusy", m.State())
	}
	if cmd == nil {
		t.Error("expected a work command")
	}
	if m.Conversation().Len() != 1 {
		t.Fatalf("conversation length = %d, want 1", m.Conversation().Len())
	}
	last := m.Conversation().GetLastMessage()
	if last.Role != model.RoleUser || last.Content != "what is 2 plus 2" {
		t.Errorf("unexpected last message: %+v", last)
	}
}

func TestInputRejectedWhileBusy(t *testing.T) {
	m := newTestModel()
	m.input.SetValue("what is 2 plus 2")
	m, _ = pressEnter(m)

	m.input.SetValue("another question")
	m, cmd := pressEnter(m)

	if cmd != nil {
		t.Error("expected no command while busy")
	}
	if m.Conversation().Len() != 1 {
		t.Errorf("conversation length = %d, want 1 (submit while busy must be ignored)", m.Conversation().Len())
	}
	if m.State() != StateBusy {
		t.Errorf("state = %v, want StateBusy", m.State())
	}
}

func TestEmptySubmitIgnored(t *testing.T) {
	m := newTestModel()
	m.input.SetValue("   ")

	m, cmd := pressEnter(m)

	if cmd != nil {
		t.Error("expected no command for blank input")
	}
	if m.Conversation().Len() != 0 {
		t.Errorf("conversation length = %d, want 0", m.Conversation().Len())
	}
}

func TestPipelineSuccessResult(t *testing.T) {
	m := newTestModel()
	m.state = StateBusy

	run := &pipeline.Run{
		ID:      "r1",
		Query:   "what is 2 plus 2",
		Success: true,
		Answer:  "2 plus 2 is 4.",
		Stages: []pipeline.Stage{
			pipeline.NewStage(1, pipeline.StageNameExtract).Start("what is 2 plus 2").Complete("2+2"),
			pipeline.NewStage(2, pipeline.StageNameEvaluate).Start("2+2").Complete("4"),
			pipeline.NewStage(3, pipeline.StageNameFormat).Start("4").Complete("2 plus 2 is 4."),
		},
	}
	m, _ = update(m, PipelineResultMsg{Run: run})

	if m.State() != StateReady {
		t.Errorf("state = %v, want StateReady", m.State())
	}
	last := m.Conversation().GetLastMessage()
	if last == nil || !last.HasPipeline() {
		t.Fatal("expected a pipeline message")
	}
	if last.Content != "2 plus 2 is 4." {
		t.Errorf("content = %q", last.Content)
	}
	if last.IsError {
		t.Error("successful run must not be error-flagged")
	}
}

func TestPipelineEvaluationFailureResult(t *testing.T) {
	m := newTestModel()
	m.state = StateBusy

	run := &pipeline.Run{
		ID:      "r2",
		Query:   "divide 1 by 0",
		Success: false,
		Stages: []pipeline.Stage{
			pipeline.NewStage(1, pipeline.StageNameExtract).Start("divide 1 by 0").Complete("1/0"),
			pipeline.NewStage(2, pipeline.StageNameEvaluate).Start("1/0").Fail("division by zero"),
		},
	}
	m, _ = update(m, PipelineResultMsg{Run: run})

	last := m.Conversation().GetLastMessage()
	if last == nil || !last.IsError {
		t.Fatal("expected an error-flagged message")
	}
	if !last.HasPipeline() {
		t.Error("failed run should still carry its trace")
	}
}

func TestPipelineTransportFailureResult(t *testing.T) {
	m := newTestModel()
	m.state = StateBusy

	m, _ = update(m, PipelineResultMsg{Err: errors.New("connection refused")})

	if m.State() != StateReady {
		t.Errorf("state = %v, want StateReady", m.State())
	}
	last := m.Conversation().GetLastMessage()
	if last == nil || !last.IsError {
		t.Fatal("expected an error message")
	}
	if last.HasPipeline() {
		t.Error("transport failure has no run to attach")
	}
}

func TestGenerateResult(t *testing.T) {
	m := newTestModel()
	m.state = StateBusy

	m, _ = update(m, GenerateResultMsg{Content: "Hello there."})

	if m.State() != StateReady {
		t.Errorf("state = %v, want StateReady", m.State())
	}
	last := m.Conversation().GetLastMessage()
	if last == nil || last.Role != model.RoleAssistant || last.Content != "Hello there." {
		t.Errorf("unexpected message: %+v", last)
	}
}

func TestOllamaStatusUpdatesConnection(t *testing.T) {
	m := newTestModel()

	m, _ = update(m, OllamaStatusMsg{Running: true})
	if !m.connected {
		t.Error("expected connected after running status")
	}
}
