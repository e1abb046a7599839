// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ollama is the gateway to the Ollama HTTP API.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the Ollama client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeNotRunning
	ErrTypeTimeout
	ErrTypeModelNotFound
	ErrTypeConnection
	ErrTypeInvalidResponse
)

// Sentinel errors for easy checking.
var (
	ErrNotRunning    = &ClientError{Type: ErrTypeNotRunning, Message: "Ollama is not running"}
	ErrTimeout       = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
	ErrModelNotFound = &ClientError{Type: ErrTypeModelNotFound, Message: "model not found"}
)

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the Ollama client.
type ClientConfig struct {
	// BaseURL is the Ollama API base URL (default: http://127.0.0.1:11434)
	// Note: Uses explicit IPv4 address instead of localhost to avoid IPv6
	// resolution issues on Windows
	BaseURL string

	// Timeout for generation requests (default: 120s; local models can be
	// slow to load on first call)
	Timeout time.Duration

	// ProbeTimeout for the availability check (default: 5s)
	ProbeTimeout time.Duration

	// DefaultModel to use if none specified (default: "llama3")
	DefaultModel string

	// DefaultTemperature when a call does not set one (default: 0.7)
	DefaultTemperature float64
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:            "http://127.0.0.1:11434",
		Timeout:            120 * time.Second,
		ProbeTimeout:       5 * time.Second,
		DefaultModel:       "llama3",
		DefaultTemperature: 0.7,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the Ollama API.
//
// The Client is thread-safe for concurrent use.
//
// Example:
//
//	client := ollama.NewClient()
//	if !client.IsAvailable(ctx) {
//	    log.Fatal("Ollama not available")
//	}
//	answer, err := client.Generate(ctx, "why is the sky blue?", nil)
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
}

// NewClient creates a new Ollama client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new Ollama client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	// Fill in defaults for any zero values
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:11434"
	}
	if config.Timeout == 0 {
		config.Timeout = 120 * time.Second
	}
	if config.ProbeTimeout == 0 {
		config.ProbeTimeout = 5 * time.Second
	}
	if config.DefaultModel == "" {
		config.DefaultModel = "llama3"
	}
	if config.DefaultTemperature == 0 {
		config.DefaultTemperature = 0.7
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// BaseURL returns the base URL the client talks to.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// DefaultModel returns the model used when a call does not specify one.
func (c *Client) DefaultModel() string {
	return c.config.DefaultModel
}

// =============================================================================
// AVAILABILITY PROBE
// =============================================================================

// IsAvailable probes the /api/tags endpoint and reports whether the
// backend is reachable. Every failure - network, timeout, bad status -
// collapses into false; this call never returns an error.
func (c *Client) IsAvailable(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, c.config.ProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/api/tags", nil)
	if err != nil {
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}

// CheckRunning verifies that Ollama is reachable, with a typed error for
// callers that want to know why it is not.
func (c *Client) CheckRunning(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/api/tags", nil)
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		return ErrNotRunning
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &ClientError{
			Type:    ErrTypeConnection,
			Message: "unexpected status from Ollama: " + resp.Status,
		}
	}

	return nil
}

// StartOllama attempts to start the Ollama server if it's not running.
// Returns nil if Ollama is already running or was successfully started.
// The actual start logic is platform-specific (see start_windows.go and
// start_unix.go).
func (c *Client) StartOllama(ctx context.Context) error {
	if err := c.CheckRunning(ctx); err == nil {
		return nil // Already running
	}
	return c.startOllamaProcess(ctx)
}

// EnsureRunning checks if Ollama is running, and starts it if not.
func (c *Client) EnsureRunning(ctx context.Context) error {
	if err := c.CheckRunning(ctx); err == nil {
		return nil
	}
	return c.StartOllama(ctx)
}

// =============================================================================
// MODEL OPERATIONS
// =============================================================================

// ListModels retrieves all available models from Ollama.
func (c *Client) ListModels(ctx context.Context) ([]ModelInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/api/tags", nil)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, ErrNotRunning
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ClientError{
			Type:    ErrTypeInvalidResponse,
			Message: "failed to list models: " + resp.Status,
		}
	}

	var result ListModelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}

	return result.Models, nil
}

// =============================================================================
// GENERATION
// =============================================================================

// Generate sends a single-shot, non-streaming generation request and
// returns the response text.
//
// opts may be nil; model and temperature then come from the client
// defaults. Any transport failure or non-success status is returned as a
// typed error - never retried, never swallowed.
func (c *Client) Generate(ctx context.Context, prompt string, opts *GenerateOptions) (string, error) {
	model := c.config.DefaultModel
	temperature := c.config.DefaultTemperature
	var modelOpts *Options

	if opts != nil {
		if opts.Model != "" {
			model = opts.Model
		}
		if opts.Temperature != 0 {
			temperature = opts.Temperature
		}
		modelOpts = opts.ModelOptions
	}
	if modelOpts == nil {
		modelOpts = &Options{}
	}
	modelOpts.Temperature = temperature

	reqBody := GenerateRequest{
		Model:   model,
		Prompt:  prompt,
		Stream:  false,
		Options: modelOpts,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", ErrTimeout
		}
		return "", ErrNotRunning
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", ErrModelNotFound
	}

	if resp.StatusCode != http.StatusOK {
		// Try to surface Ollama's own error message
		var ollamaErr OllamaError
		if err := json.NewDecoder(resp.Body).Decode(&ollamaErr); err == nil && ollamaErr.Error != "" {
			return "", &ClientError{
				Type:    ErrTypeInvalidResponse,
				Message: ollamaErr.Error,
			}
		}
		return "", &ClientError{
			Type:    ErrTypeInvalidResponse,
			Message: "generate request failed: " + resp.Status,
		}
	}

	var result GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}

	return result.Response, nil
}
