// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file defines the Bubble Tea message types used by the chat view:
//   - Ollama: backend health checks
//   - Generation: direct chat completions
//   - Pipeline: math pipeline run results
package chat

import (
	"github.com/jeranaias/mathrun-tui/internal/pipeline"
)

// =============================================================================
// OLLAMA MESSAGES
// =============================================================================

// OllamaStatusMsg reports backend reachability.
type OllamaStatusMsg struct {
	Running bool
}

// =============================================================================
// GENERATION MESSAGES
// =============================================================================

// GenerateResultMsg delivers a direct chat completion.
type GenerateResultMsg struct {
	Content string
	Err     error
}

// =============================================================================
// PIPELINE MESSAGES
// =============================================================================

// PipelineResultMsg delivers a finished math pipeline run. Err is set
// only on transport failure; an evaluation failure arrives as a run
// with Success false.
type PipelineResultMsg struct {
	Run *pipeline.Run
	Err error
}
