// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for mathrun.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete mathrun configuration.
type Config struct {
	Version string `toml:"version"`

	// Ollama backend configuration
	Ollama OllamaConfig `toml:"ollama"`

	// Math pipeline configuration
	Pipeline PipelineConfig `toml:"pipeline"`

	// UI configuration
	UI UIConfig `toml:"ui"`
}

// OllamaConfig contains the backend connection settings.
type OllamaConfig struct {
	// URL is the base URL of the Ollama server
	URL string `toml:"url"`
	// Model is the default model for both chat and the pipeline
	Model string `toml:"model"`
	// Temperature is the default sampling temperature for direct chat
	Temperature float64 `toml:"temperature"`
}

// PipelineConfig contains math pipeline settings.
type PipelineConfig struct {
	// Enabled routes math-classified queries through the pipeline.
	// When false every query goes straight to the model.
	Enabled bool `toml:"enabled"`
	// ExtractionTemperature is the stage-1 sampling temperature
	ExtractionTemperature float64 `toml:"extraction_temperature"`
	// FormattingTemperature is the stage-3 sampling temperature
	FormattingTemperature float64 `toml:"formatting_temperature"`
}

// UIConfig contains UI settings.
type UIConfig struct {
	// ShowTrace renders every pipeline stage's input/output in the chat
	ShowTrace bool `toml:"show_trace"`
	// CompactMode reduces message spacing in the TUI
	CompactMode bool `toml:"compact_mode"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: "1",
		Ollama: OllamaConfig{
			URL:         "http://127.0.0.1:11434",
			Model:       "llama3",
			Temperature: 0.7,
		},
		Pipeline: PipelineConfig{
			Enabled:               true,
			ExtractionTemperature: 0.1,
			FormattingTemperature: 0.5,
		},
		UI: UIConfig{
			ShowTrace:   false,
			CompactMode: false,
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the mathrun configuration directory (~/.mathrun),
// creating it if necessary.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	dir := filepath.Join(home, ".mathrun")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("cannot create config directory: %w", err)
	}
	return dir, nil
}

// ConfigPath returns the path of the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the config file, applies environment overrides, and
// validates. A missing file is not an error; defaults are used.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	path, err := ConfigPath()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if _, decodeErr := toml.DecodeFile(path, cfg); decodeErr != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", path, decodeErr)
			}
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies MATHRUN_* environment variables on top of the
// loaded values.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("MATHRUN_OLLAMA_URL"); v != "" {
		c.Ollama.URL = v
	}
	if v := os.Getenv("MATHRUN_MODEL"); v != "" {
		c.Ollama.Model = v
	}
	if v := os.Getenv("MATHRUN_PIPELINE_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Pipeline.Enabled = b
		}
	}
	if v := os.Getenv("MATHRUN_SHOW_TRACE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.UI.ShowTrace = b
		}
	}
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Ollama.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid ollama url: %q", c.Ollama.URL)
	}
	if c.Ollama.Model == "" {
		return fmt.Errorf("model must not be empty")
	}
	if c.Pipeline.ExtractionTemperature < 0 || c.Pipeline.ExtractionTemperature > 2 {
		return fmt.Errorf("extraction_temperature out of range: %v", c.Pipeline.ExtractionTemperature)
	}
	if c.Pipeline.FormattingTemperature < 0 || c.Pipeline.FormattingTemperature > 2 {
		return fmt.Errorf("formatting_temperature out of range: %v", c.Pipeline.FormattingTemperature)
	}
	return nil
}

// Save writes the configuration to the config file.
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot write config: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(c)
}

// =============================================================================
// GLOBAL CONFIG
// =============================================================================

var (
	globalMu     sync.RWMutex
	globalConfig *Config
)

// Global returns the process-wide config, loading it on first access.
// Load failures fall back to defaults; the TUI should not die over a
// malformed config file.
func Global() *Config {
	globalMu.RLock()
	if globalConfig != nil {
		defer globalMu.RUnlock()
		return globalConfig
	}
	globalMu.RUnlock()

	globalMu.Lock()
	defer globalMu.Unlock()
	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			cfg = DefaultConfig()
		}
		globalConfig = cfg
	}
	return globalConfig
}

// SetGlobal replaces the process-wide config.
func SetGlobal(c *Config) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalConfig = c
}

// ResetGlobalForTesting clears the global config so tests start fresh.
func ResetGlobalForTesting() {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalConfig = nil
}
