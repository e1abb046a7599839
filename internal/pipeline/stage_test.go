// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pipeline

import "testing"

func TestStage_Transitions(t *testing.T) {
	st := NewStage(1, StageNameExtract)
	if st.Status != StagePending {
		t.Fatalf("new stage status = %q, want pending", st.Status)
	}
	if st.Terminal() {
		t.Error("pending stage should not be terminal")
	}

	running := st.Start("what is 2+2")
	if running.Status != StageRunning {
		t.Errorf("Status = %q, want running", running.Status)
	}
	if running.Input != "what is 2+2" {
		t.Errorf("Input = %q", running.Input)
	}
	// Transitions are pure: the original value is untouched.
	if st.Status != StagePending {
		t.Error("Start mutated the original stage value")
	}

	done := running.Complete("2+2")
	if done.Status != StageComplete || done.Output != "2+2" {
		t.Errorf("Complete = %+v", done)
	}
	if !done.Terminal() {
		t.Error("complete stage should be terminal")
	}

	failed := running.Fail("division by zero")
	if failed.Status != StageError || failed.Err != "division by zero" {
		t.Errorf("Fail = %+v", failed)
	}
	if !failed.Terminal() {
		t.Error("error stage should be terminal")
	}
}

func TestRun_FailedStage(t *testing.T) {
	run := &Run{
		Stages: []Stage{
			NewStage(1, StageNameExtract).Start("q").Complete(""),
			NewStage(2, StageNameEvaluate).Start("").Fail("empty expression"),
		},
	}

	failed := run.FailedStage()
	if failed == nil {
		t.Fatal("FailedStage() = nil")
	}
	if failed.Index != 2 || failed.Err != "empty expression" {
		t.Errorf("FailedStage() = %+v", failed)
	}

	ok := &Run{Stages: []Stage{NewStage(1, StageNameExtract).Start("q").Complete("2+2")}}
	if ok.FailedStage() != nil {
		t.Error("FailedStage() should be nil when no stage errored")
	}
}
