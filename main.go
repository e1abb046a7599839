// mathrun - local LLM chat with a deterministic math pipeline.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/mathrun-tui/internal/cli"
	"github.com/jeranaias/mathrun-tui/internal/config"
	"github.com/jeranaias/mathrun-tui/internal/ollama"
	"github.com/jeranaias/mathrun-tui/internal/pipeline"
	"github.com/jeranaias/mathrun-tui/internal/ui/chat"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdTUI:
		runTUI(args)
	case cli.CmdAsk:
		cli.HandleAsk(args)
	case cli.CmdChat:
		cli.HandleChat(args)
	case cli.CmdStatus:
		cli.HandleStatus(args)
	case cli.CmdConfig:
		cli.HandleConfig(args)
	case cli.CmdVersion:
		cli.PrintVersion()
	case cli.CmdHelp:
		cli.PrintUsage()
	default:
		cli.PrintUsage()
		os.Exit(1)
	}
}

// runTUI starts the full-screen chat interface.
func runTUI(args cli.Args) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if args.Model != "" {
		cfg.Ollama.Model = args.Model
	}
	if args.Trace {
		cfg.UI.ShowTrace = true
	}
	if args.NoPipe {
		cfg.Pipeline.Enabled = false
	}
	config.SetGlobal(cfg)

	client := ollama.NewClientWithConfig(&ollama.ClientConfig{
		BaseURL:            cfg.Ollama.URL,
		DefaultModel:       cfg.Ollama.Model,
		DefaultTemperature: cfg.Ollama.Temperature,
	})

	// Try to bring Ollama up before entering the alternate screen; the
	// TUI still starts if this fails and shows the offline state.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	_ = client.EnsureRunning(ctx)
	cancel()

	orch := pipeline.NewOrchestrator(client, &pipeline.OrchestratorConfig{
		Model:                 cfg.Ollama.Model,
		ExtractionTemperature: cfg.Pipeline.ExtractionTemperature,
		FormattingTemperature: cfg.Pipeline.FormattingTemperature,
	})

	m := chat.NewModel(cfg, client, orch)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
