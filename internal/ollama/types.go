// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// types.go - Request and response types for the Ollama API.
package ollama

import "time"

// =============================================================================
// REQUEST TYPES
// =============================================================================

// Options contains model parameters for inference.
type Options struct {
	Temperature   float64 `json:"temperature,omitempty"`    // 0.0-2.0
	TopK          int     `json:"top_k,omitempty"`          // Default 40
	TopP          float64 `json:"top_p,omitempty"`          // 0.0-1.0, default 0.9
	RepeatPenalty float64 `json:"repeat_penalty,omitempty"` // Default 1.1

	// Context parameters
	NumCtx     int `json:"num_ctx,omitempty"`     // Context window size
	NumPredict int `json:"num_predict,omitempty"` // Max tokens, -1 for unlimited

	// Stopping
	Stop []string `json:"stop,omitempty"`

	// Seed for reproducibility
	Seed int `json:"seed,omitempty"`
}

// GenerateRequest is the request body for the /api/generate endpoint.
// Streaming is always disabled; the pipeline wants complete responses.
type GenerateRequest struct {
	Model   string   `json:"model"`
	Prompt  string   `json:"prompt"`
	Stream  bool     `json:"stream"`
	System  string   `json:"system,omitempty"`
	Options *Options `json:"options,omitempty"`
}

// GenerateOptions are the per-call knobs for Client.Generate. Zero values
// fall back to the client defaults.
type GenerateOptions struct {
	// Model overrides the client's default model.
	Model string

	// Temperature overrides the client's default temperature.
	Temperature float64

	// ModelOptions, when set, is passed through as the request options
	// with Temperature merged in.
	ModelOptions *Options
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// GenerateResponse is the response from the /api/generate endpoint.
type GenerateResponse struct {
	Model              string    `json:"model"`
	CreatedAt          time.Time `json:"created_at"`
	Response           string    `json:"response"`
	Done               bool      `json:"done"`
	DoneReason         string    `json:"done_reason,omitempty"`
	TotalDuration      int64     `json:"total_duration,omitempty"`       // nanoseconds
	LoadDuration       int64     `json:"load_duration,omitempty"`        // nanoseconds
	PromptEvalCount    int       `json:"prompt_eval_count,omitempty"`    // prompt tokens
	PromptEvalDuration int64     `json:"prompt_eval_duration,omitempty"` // nanoseconds
	EvalCount          int       `json:"eval_count,omitempty"`           // generated tokens
	EvalDuration       int64     `json:"eval_duration,omitempty"`        // nanoseconds
}

// OllamaError is the error body Ollama returns on failed requests.
type OllamaError struct {
	Error string `json:"error"`
}

// =============================================================================
// MODEL TYPES
// =============================================================================

// ModelInfo contains information about an installed model.
type ModelInfo struct {
	Name       string       `json:"name"`
	ModifiedAt time.Time    `json:"modified_at"`
	Size       int64        `json:"size"`
	Digest     string       `json:"digest"`
	Details    ModelDetails `json:"details,omitempty"`
}

// ModelDetails contains detailed information about a model.
type ModelDetails struct {
	Format            string   `json:"format"`
	Family            string   `json:"family"`
	Families          []string `json:"families"`
	ParameterSize     string   `json:"parameter_size"`
	QuantizationLevel string   `json:"quantization_level"`
}

// ListModelsResponse is the response from the /api/tags endpoint.
type ListModelsResponse struct {
	Models []ModelInfo `json:"models"`
}
