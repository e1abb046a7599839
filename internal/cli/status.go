// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - Backend status command for the mathrun CLI.
//
// Command: status (alias: s)
// Short:   Show Ollama reachability and installed models
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jeranaias/mathrun-tui/internal/config"
	"github.com/jeranaias/mathrun-tui/internal/util"
)

// HandleStatus runs the status command.
func HandleStatus(args Args) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	client := newClientFromConfig(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	fmt.Printf("Backend:   %s\n", client.BaseURL())
	fmt.Printf("Model:     %s\n", cfg.Ollama.Model)
	fmt.Printf("Pipeline:  %s\n", enabledWord(cfg.Pipeline.Enabled))

	if !client.IsAvailable(ctx) {
		fmt.Println("Status:    not reachable")
		fmt.Println()
		fmt.Println("Start Ollama with: ollama serve")
		os.Exit(1)
	}
	fmt.Println("Status:    running")

	models, err := client.ListModels(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not list models: %v\n", err)
		return
	}

	fmt.Printf("\nInstalled models (%d):\n", len(models))
	for _, m := range models {
		marker := "  "
		if m.Name == cfg.Ollama.Model {
			marker = "* "
		}
		fmt.Printf("%s%-32s %s\n", marker, m.Name, util.HumanBytes(m.Size))
	}
}

func enabledWord(on bool) string {
	if on {
		return "enabled"
	}
	return "disabled"
}
