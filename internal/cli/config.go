// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - Configuration command for the mathrun CLI.
//
// Command: config
// Short:   Show or change configuration
//
// Examples:
//   mathrun config show
//   mathrun config set model llama3
//   mathrun config set pipeline false
package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jeranaias/mathrun-tui/internal/config"
)

// HandleConfig runs the config command.
func HandleConfig(args Args) {
	switch args.Subcommand {
	case "", "show":
		configShow()
	case "set":
		configSet(args.ConfigKey, args.ConfigVal)
	case "path":
		path, err := config.ConfigPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(path)
	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", args.Subcommand)
		fmt.Fprintln(os.Stderr, "Usage: mathrun config [show|set|path]")
		os.Exit(1)
	}
}

// configShow prints the effective configuration.
func configShow() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Ollama:")
	fmt.Printf("  url           %s\n", cfg.Ollama.URL)
	fmt.Printf("  model         %s\n", cfg.Ollama.Model)
	fmt.Printf("  temperature   %g\n", cfg.Ollama.Temperature)
	fmt.Println("Pipeline:")
	fmt.Printf("  enabled       %t\n", cfg.Pipeline.Enabled)
	fmt.Printf("  extraction_temperature  %g\n", cfg.Pipeline.ExtractionTemperature)
	fmt.Printf("  formatting_temperature  %g\n", cfg.Pipeline.FormattingTemperature)
	fmt.Println("UI:")
	fmt.Printf("  show_trace    %t\n", cfg.UI.ShowTrace)
	fmt.Printf("  compact_mode  %t\n", cfg.UI.CompactMode)
}

// configSet changes one setting and saves the config file.
func configSet(key, value string) {
	if key == "" || value == "" {
		fmt.Fprintln(os.Stderr, "Usage: mathrun config set KEY VALUE")
		fmt.Fprintln(os.Stderr, "Keys: url, model, temperature, pipeline, show_trace")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	switch key {
	case "url", "ollama_url":
		cfg.Ollama.URL = value
	case "model":
		cfg.Ollama.Model = value
	case "temperature":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "temperature must be a number: %v\n", err)
			os.Exit(1)
		}
		cfg.Ollama.Temperature = f
	case "pipeline", "pipeline_enabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			fmt.Fprintf(os.Stderr, "pipeline must be true or false: %v\n", err)
			os.Exit(1)
		}
		cfg.Pipeline.Enabled = b
	case "show_trace", "trace":
		b, err := strconv.ParseBool(value)
		if err != nil {
			fmt.Fprintf(os.Stderr, "show_trace must be true or false: %v\n", err)
			os.Exit(1)
		}
		cfg.UI.ShowTrace = b
	default:
		fmt.Fprintf(os.Stderr, "Unknown config key: %s\n", key)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid value: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Save(); err != nil {
		fmt.Fprintf(os.Stderr, "Could not save config: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Set %s = %s\n", key, value)
}
