// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// =============================================================================
// CONFIGURATION TESTS
// =============================================================================

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.BaseURL != "http://127.0.0.1:11434" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.DefaultModel != "llama3" {
		t.Errorf("DefaultModel = %q, want 'llama3'", cfg.DefaultModel)
	}
	if cfg.DefaultTemperature != 0.7 {
		t.Errorf("DefaultTemperature = %v, want 0.7", cfg.DefaultTemperature)
	}
}

func TestNewClientWithConfig_FillsZeroValues(t *testing.T) {
	client := NewClientWithConfig(&ClientConfig{BaseURL: "http://example:1234"})

	if client.BaseURL() != "http://example:1234" {
		t.Errorf("BaseURL = %q", client.BaseURL())
	}
	if client.DefaultModel() != "llama3" {
		t.Errorf("DefaultModel = %q, want default fill-in", client.DefaultModel())
	}
	if client.config.Timeout == 0 {
		t.Error("Timeout should be filled in")
	}
}

func TestNewClientWithConfig_NilGetsDefaults(t *testing.T) {
	client := NewClientWithConfig(nil)
	if client.BaseURL() != "http://127.0.0.1:11434" {
		t.Errorf("BaseURL = %q", client.BaseURL())
	}
}

// =============================================================================
// AVAILABILITY PROBE TESTS
// =============================================================================

func TestIsAvailable(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   bool
	}{
		{"ok", http.StatusOK, true},
		{"server error", http.StatusInternalServerError, false},
		{"not found", http.StatusNotFound, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/tags" {
					t.Errorf("probe hit %q, want /api/tags", r.URL.Path)
				}
				w.WriteHeader(tc.status)
			}))
			defer srv.Close()

			client := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL})
			if got := client.IsAvailable(context.Background()); got != tc.want {
				t.Errorf("IsAvailable() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestIsAvailable_Unreachable(t *testing.T) {
	// Nothing listens here; the probe must swallow the failure.
	client := NewClientWithConfig(&ClientConfig{
		BaseURL:      "http://127.0.0.1:1",
		ProbeTimeout: 500 * time.Millisecond,
	})
	if client.IsAvailable(context.Background()) {
		t.Error("IsAvailable() should be false when nothing is listening")
	}
}

// =============================================================================
// GENERATE TESTS
// =============================================================================

func TestGenerate(t *testing.T) {
	var gotReq GenerateRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("generate hit %q, want /api/generate", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(GenerateResponse{
			Model:    gotReq.Model,
			Response: "The answer is 4.",
			Done:     true,
		})
	}))
	defer srv.Close()

	client := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL})

	text, err := client.Generate(context.Background(), "what is 2+2?", &GenerateOptions{
		Model:       "llama3",
		Temperature: 0.1,
	})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	if text != "The answer is 4." {
		t.Errorf("Generate() = %q", text)
	}
	if gotReq.Stream {
		t.Error("request must be non-streaming")
	}
	if gotReq.Model != "llama3" {
		t.Errorf("request model = %q", gotReq.Model)
	}
	if gotReq.Prompt != "what is 2+2?" {
		t.Errorf("request prompt = %q", gotReq.Prompt)
	}
	if gotReq.Options == nil || gotReq.Options.Temperature != 0.1 {
		t.Errorf("request options = %+v, want temperature 0.1", gotReq.Options)
	}
}

func TestGenerate_DefaultsApply(t *testing.T) {
	var gotReq GenerateRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(GenerateResponse{Response: "ok", Done: true})
	}))
	defer srv.Close()

	client := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL})

	if _, err := client.Generate(context.Background(), "hello", nil); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	if gotReq.Model != "llama3" {
		t.Errorf("model = %q, want default 'llama3'", gotReq.Model)
	}
	if gotReq.Options == nil || gotReq.Options.Temperature != 0.7 {
		t.Errorf("options = %+v, want default temperature 0.7", gotReq.Options)
	}
}

func TestGenerate_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(OllamaError{Error: "model failed to load"})
	}))
	defer srv.Close()

	client := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL})

	_, err := client.Generate(context.Background(), "hello", nil)
	if err == nil {
		t.Fatal("Generate() should fail on 500")
	}

	var clientErr *ClientError
	if !errors.As(err, &clientErr) {
		t.Fatalf("error type = %T, want *ClientError", err)
	}
	if clientErr.Message != "model failed to load" {
		t.Errorf("error message = %q", clientErr.Message)
	}
}

func TestGenerate_ModelNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL})

	_, err := client.Generate(context.Background(), "hello", &GenerateOptions{Model: "nope"})
	if err != ErrModelNotFound {
		t.Errorf("error = %v, want ErrModelNotFound", err)
	}
}

func TestGenerate_Unreachable(t *testing.T) {
	client := NewClientWithConfig(&ClientConfig{
		BaseURL: "http://127.0.0.1:1",
		Timeout: 500 * time.Millisecond,
	})

	_, err := client.Generate(context.Background(), "hello", nil)
	if err == nil {
		t.Fatal("Generate() should fail when nothing is listening")
	}
}

// =============================================================================
// LIST MODELS TESTS
// =============================================================================

func TestListModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ListModelsResponse{
			Models: []ModelInfo{
				{Name: "llama3", Size: 4_000_000_000},
				{Name: "qwen2.5:7b", Size: 5_000_000_000},
			},
		})
	}))
	defer srv.Close()

	client := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL})

	models, err := client.ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels() error: %v", err)
	}
	if len(models) != 2 {
		t.Fatalf("len(models) = %d, want 2", len(models))
	}
	if models[0].Name != "llama3" {
		t.Errorf("models[0].Name = %q", models[0].Name)
	}
}

// =============================================================================
// ERROR TYPE TESTS
// =============================================================================

func TestClientError_Error(t *testing.T) {
	plain := &ClientError{Type: ErrTypeConnection, Message: "boom"}
	if plain.Error() != "boom" {
		t.Errorf("Error() = %q", plain.Error())
	}

	wrapped := &ClientError{Type: ErrTypeConnection, Message: "boom", Cause: ErrTimeout}
	if wrapped.Error() != "boom: request timed out" {
		t.Errorf("Error() = %q", wrapped.Error())
	}
	if wrapped.Unwrap() != ErrTimeout {
		t.Error("Unwrap() should return the cause")
	}
}
