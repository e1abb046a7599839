// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/jeranaias/mathrun-tui/internal/pipeline"
	"github.com/jeranaias/mathrun-tui/internal/ui/styles"
)

func successRun() *pipeline.Run {
	s1 := pipeline.NewStage(1, pipeline.StageNameExtract).Start("what is 2 plus 2").Complete("2+2")
	s2 := pipeline.NewStage(2, pipeline.StageNameEvaluate).Start("2+2").Complete("4")
	s3 := pipeline.NewStage(3, pipeline.StageNameFormat).Start("4").Complete("2 plus 2 is 4.")
	return &pipeline.Run{
		ID:      "test-run",
		Query:   "what is 2 plus 2",
		Stages:  []pipeline.Stage{s1, s2, s3},
		Success: true,
		Answer:  "2 plus 2 is 4.",
	}
}

func failedRun() *pipeline.Run {
	s1 := pipeline.NewStage(1, pipeline.StageNameExtract).Start("divide 1 by 0").Complete("1/0")
	s2 := pipeline.NewStage(2, pipeline.StageNameEvaluate).Start("1/0").Fail("division by zero")
	return &pipeline.Run{
		ID:      "test-run",
		Query:   "divide 1 by 0",
		Stages:  []pipeline.Stage{s1, s2},
		Success: false,
	}
}

func TestTraceViewNilRun(t *testing.T) {
	tv := NewTraceView(styles.NewTheme())
	if got := tv.Render(nil); got != "" {
		t.Errorf("expected empty render for nil run, got %q", got)
	}
}

func TestTraceViewStageNames(t *testing.T) {
	tv := NewTraceView(styles.NewTheme())
	out := tv.Render(successRun())

	for _, name := range []string{
		pipeline.StageNameExtract,
		pipeline.StageNameEvaluate,
		pipeline.StageNameFormat,
	} {
		if !strings.Contains(out, name) {
			t.Errorf("trace missing stage name %q", name)
		}
	}
	if !strings.Contains(out, "ok") {
		t.Error("trace missing success outcome")
	}
}

func TestTraceViewFailureShowsError(t *testing.T) {
	tv := NewTraceView(styles.NewTheme())
	out := tv.Render(failedRun())

	if !strings.Contains(out, "division by zero") {
		t.Error("trace missing stage error message")
	}
	if !strings.Contains(out, "failed") {
		t.Error("trace missing failure outcome")
	}
	if strings.Contains(out, pipeline.StageNameFormat) {
		t.Error("failed run should not show a format stage")
	}
}

func TestTraceViewVerboseShowsIO(t *testing.T) {
	tv := NewTraceView(styles.NewTheme())
	tv.Verbose = true
	out := tv.Render(successRun())

	if !strings.Contains(out, "2+2") {
		t.Error("verbose trace missing stage input")
	}
	if !strings.Contains(out, "2 plus 2 is 4.") {
		t.Error("verbose trace missing stage output")
	}
}
