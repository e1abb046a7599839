// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the mathrun TUI.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/mathrun-tui/internal/pipeline"
	"github.com/jeranaias/mathrun-tui/internal/ui/styles"
	"github.com/jeranaias/mathrun-tui/internal/util"
)

// =============================================================================
// PIPELINE TRACE VIEW
// =============================================================================

// Stage status glyphs.
const (
	glyphComplete = "✓"
	glyphError    = "✗"
	glyphPending  = "○"
	glyphRunning  = "◌"
)

// TraceView renders a pipeline run as a stage-by-stage trace box. In
// compact form it shows one line per stage; verbose form adds each
// stage's input and output under it.
type TraceView struct {
	Width   int
	Verbose bool
	theme   *styles.Theme
}

// NewTraceView creates a trace view component.
func NewTraceView(theme *styles.Theme) *TraceView {
	return &TraceView{Width: 80, theme: theme}
}

// SetWidth updates the trace view width.
func (t *TraceView) SetWidth(width int) {
	t.Width = width
}

// Render produces the trace box for a run. Returns "" for a nil run.
func (t *TraceView) Render(run *pipeline.Run) string {
	if run == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(t.theme.TraceTitle.Render("math pipeline"))
	b.WriteString("\n")

	for _, stage := range run.Stages {
		b.WriteString(t.renderStage(stage))
	}

	outcome := t.theme.StageError.Render("failed")
	if run.Success {
		outcome = t.theme.StageComplete.Render("ok")
	}
	b.WriteString(t.theme.StageDetail.Render("result: "))
	b.WriteString(outcome)

	inner := t.Width - 4
	if inner < 20 {
		inner = 20
	}
	return t.theme.TraceBox.Width(inner).Render(b.String())
}

// renderStage produces the line(s) for a single stage.
func (t *TraceView) renderStage(stage pipeline.Stage) string {
	glyph, style := t.stageGlyph(stage.Status)

	var b strings.Builder
	b.WriteString(style.Render(fmt.Sprintf("%s %d. %s", glyph, stage.Index, stage.Name)))
	b.WriteString("\n")

	if stage.Status == pipeline.StageError && stage.Err != "" {
		b.WriteString(t.theme.StageError.Render("    " + stage.Err))
		b.WriteString("\n")
	}

	if t.Verbose {
		if stage.Input != "" {
			b.WriteString(t.theme.StageDetail.Render("    in:  " + util.TruncateWidth(stage.Input, t.Width-12)))
			b.WriteString("\n")
		}
		if stage.Output != "" {
			b.WriteString(t.theme.StageDetail.Render("    out: " + util.TruncateWidth(stage.Output, t.Width-12)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// stageGlyph maps a stage status to its glyph and style.
func (t *TraceView) stageGlyph(status pipeline.StageStatus) (string, lipgloss.Style) {
	switch status {
	case pipeline.StageComplete:
		return glyphComplete, t.theme.StageComplete
	case pipeline.StageError:
		return glyphError, t.theme.StageError
	case pipeline.StageRunning:
		return glyphRunning, t.theme.StagePending
	default:
		return glyphPending, t.theme.StagePending
	}
}
