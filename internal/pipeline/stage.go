// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// stage.go - Stage and Run records for the math pipeline state machine.
package pipeline

// =============================================================================
// STAGE STATUS
// =============================================================================

// StageStatus is the lifecycle state of a pipeline stage.
type StageStatus string

const (
	StagePending  StageStatus = "pending"
	StageRunning  StageStatus = "running"
	StageComplete StageStatus = "complete"
	StageError    StageStatus = "error"
)

// Stage names in pipeline order.
const (
	StageNameExtract  = "Extract Expression"
	StageNameEvaluate = "Evaluate"
	StageNameFormat   = "Format Response"
)

// =============================================================================
// STAGE TYPE
// =============================================================================

// Stage is one step of a pipeline run: its position, what went in, what
// came out, and how it ended.
//
// Stages are values with pure transitions: Start, Complete, and Fail each
// return a new Stage rather than mutating in place, so every intermediate
// state of the run is independently inspectable and testable. A stage is
// final once its status is complete or error.
type Stage struct {
	Index  int         `json:"index"` // 1-based position in the run
	Name   string      `json:"name"`
	Status StageStatus `json:"status"`
	Input  string      `json:"input,omitempty"`
	Output string      `json:"output,omitempty"`
	Err    string      `json:"error,omitempty"`
}

// NewStage creates a pending stage at the given position.
func NewStage(index int, name string) Stage {
	return Stage{Index: index, Name: name, Status: StagePending}
}

// Start returns the stage in the running state with its input recorded.
func (s Stage) Start(input string) Stage {
	s.Status = StageRunning
	s.Input = input
	return s
}

// Complete returns the stage in the complete state with its output recorded.
func (s Stage) Complete(output string) Stage {
	s.Status = StageComplete
	s.Output = output
	return s
}

// Fail returns the stage in the error state with the failure message recorded.
func (s Stage) Fail(msg string) Stage {
	s.Status = StageError
	s.Err = msg
	return s
}

// Terminal reports whether the stage has reached a final status.
func (s Stage) Terminal() bool {
	return s.Status == StageComplete || s.Status == StageError
}

// =============================================================================
// RUN TYPE
// =============================================================================

// Run is one complete attempt to answer a math-classified query. It holds
// the ordered stage trace, the overall outcome, and the final answer text.
//
// Runs are created per query and discarded once rendered; nothing is
// persisted and no two runs share state.
type Run struct {
	ID      string  `json:"id"`
	Query   string  `json:"query"`
	Stages  []Stage `json:"stages"`
	Success bool    `json:"success"` // True iff all three stages completed
	Answer  string  `json:"answer,omitempty"`
}

// FailedStage returns the first stage that ended in error, or nil.
func (r *Run) FailedStage() *Stage {
	for i := range r.Stages {
		if r.Stages[i].Status == StageError {
			return &r.Stages[i]
		}
	}
	return nil
}
