// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// orchestrator.go - Sequences the three pipeline stages against the gateway.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jeranaias/mathrun-tui/internal/ollama"
)

// =============================================================================
// GENERATOR INTERFACE
// =============================================================================

// Generator is the slice of the Ollama client the orchestrator needs.
// The concrete *ollama.Client satisfies it; tests substitute a fake.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts *ollama.GenerateOptions) (string, error)
}

// =============================================================================
// ORCHESTRATOR CONFIGURATION
// =============================================================================

// OrchestratorConfig holds the tunables for a pipeline orchestrator.
type OrchestratorConfig struct {
	// Model is the model name passed to the gateway (default: "llama3").
	Model string

	// ExtractionTemperature is the sampling temperature for stage 1.
	// Kept low so extraction is near-deterministic (default: 0.1).
	ExtractionTemperature float64

	// FormattingTemperature is the sampling temperature for stage 3
	// (default: 0.5).
	FormattingTemperature float64
}

// DefaultOrchestratorConfig returns the default orchestrator configuration.
func DefaultOrchestratorConfig() *OrchestratorConfig {
	return &OrchestratorConfig{
		Model:                 "llama3",
		ExtractionTemperature: 0.1,
		FormattingTemperature: 0.5,
	}
}

// =============================================================================
// ORCHESTRATOR
// =============================================================================

// Orchestrator runs math-classified queries through the three-stage
// pipeline. It holds no per-run state, so a single orchestrator is safe
// to use for independent queries; each call to Solve owns its Run.
type Orchestrator struct {
	gen    Generator
	config *OrchestratorConfig
}

// NewOrchestrator creates an orchestrator around the given generator.
// A nil config gets the defaults; zero-valued fields are filled in.
func NewOrchestrator(gen Generator, config *OrchestratorConfig) *Orchestrator {
	if config == nil {
		config = DefaultOrchestratorConfig()
	}
	if config.Model == "" {
		config.Model = "llama3"
	}
	if config.ExtractionTemperature == 0 {
		config.ExtractionTemperature = 0.1
	}
	if config.FormattingTemperature == 0 {
		config.FormattingTemperature = 0.5
	}
	return &Orchestrator{gen: gen, config: config}
}

// Solve runs the full pipeline for a user query.
//
// The three stages execute strictly in order, and stage n+1 never starts
// before stage n is terminal. An evaluation failure is recorded in the
// stage trace and ends the run with Success=false - stage 3 is never
// constructed. A transport failure from the gateway in stage 1 or 3 is
// returned as an error; the caller decides how to surface it.
func (o *Orchestrator) Solve(ctx context.Context, query string) (*Run, error) {
	run := &Run{
		ID:     uuid.New().String(),
		Query:  query,
		Stages: make([]Stage, 0, 3),
	}

	// Stage 1: extraction. Completes with whatever survives sanitization,
	// even an empty string - malformed output is stage 2's problem.
	extract := NewStage(1, StageNameExtract).Start(query)
	raw, err := o.gen.Generate(ctx, ExtractionPrompt(query), &ollama.GenerateOptions{
		Model:       o.config.Model,
		Temperature: o.config.ExtractionTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("extraction failed: %w", err)
	}
	expr := Sanitize(strings.TrimSpace(raw))
	run.Stages = append(run.Stages, extract.Complete(expr))

	// Stage 2: local evaluation. Failure is terminal for the run but not
	// for the caller.
	eval := NewStage(2, StageNameEvaluate).Start(expr)
	result, err := Evaluate(expr)
	if err != nil {
		run.Stages = append(run.Stages, eval.Fail(err.Error()))
		return run, nil
	}
	run.Stages = append(run.Stages, eval.Complete(result.Formatted))

	// Stage 3: formatting. Only reached on evaluation success.
	format := NewStage(3, StageNameFormat).Start(result.Formatted)
	answer, err := o.gen.Generate(ctx, FormattingPrompt(query, expr, result.Formatted), &ollama.GenerateOptions{
		Model:       o.config.Model,
		Temperature: o.config.FormattingTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("formatting failed: %w", err)
	}
	answer = strings.TrimSpace(answer)
	run.Stages = append(run.Stages, format.Complete(answer))

	run.Answer = answer
	run.Success = true
	return run, nil
}
