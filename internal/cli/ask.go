// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - One-shot question command for the mathrun CLI.
//
// Command: ask
// Short:   Ask a single question and print the answer
//
// Examples:
//   mathrun ask "what is 17 * 23"
//   mathrun ask --trace "what is 2+2"
//   mathrun ask --no-pipeline "tell me a joke"
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/mathrun-tui/internal/config"
	"github.com/jeranaias/mathrun-tui/internal/ollama"
	"github.com/jeranaias/mathrun-tui/internal/pipeline"
	"github.com/jeranaias/mathrun-tui/internal/ui/components"
	"github.com/jeranaias/mathrun-tui/internal/ui/styles"
)

// askTimeout bounds a single one-shot query end to end.
const askTimeout = 5 * time.Minute

// HandleAsk runs the ask command.
func HandleAsk(args Args) {
	if args.Query == "" {
		fmt.Fprintln(os.Stderr, "Usage: mathrun ask \"question\"")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if args.Model != "" {
		cfg.Ollama.Model = args.Model
	}

	client := newClientFromConfig(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
	defer cancel()

	if err := client.EnsureRunning(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Ollama is not available: %v\n", err)
		os.Exit(1)
	}

	usePipeline := !args.NoPipe && cfg.Pipeline.Enabled && pipeline.IsMathQuery(args.Query)
	if usePipeline {
		askPipeline(ctx, cfg, client, args)
		return
	}
	askDirect(ctx, cfg, client, args)
}

// askPipeline answers through the math pipeline and optionally prints
// the stage trace.
func askPipeline(ctx context.Context, cfg *config.Config, client *ollama.Client, args Args) {
	orch := pipeline.NewOrchestrator(client, &pipeline.OrchestratorConfig{
		Model:                 cfg.Ollama.Model,
		ExtractionTemperature: cfg.Pipeline.ExtractionTemperature,
		FormattingTemperature: cfg.Pipeline.FormattingTemperature,
	})

	run, err := orch.Solve(ctx, args.Query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Pipeline failed: %v\n", err)
		os.Exit(1)
	}

	if run.Success {
		printAnswer(run.Answer, args)
	} else {
		msg := "could not evaluate the expression"
		if failed := run.FailedStage(); failed != nil && failed.Err != "" {
			msg = failed.Err
		}
		fmt.Fprintf(os.Stderr, "Evaluation failed: %s\n", msg)
	}

	if args.Trace || cfg.UI.ShowTrace {
		trace := components.NewTraceView(styles.NewTheme())
		trace.SetWidth(GetTerminalWidth())
		trace.Verbose = args.Verbose || args.Trace
		fmt.Println()
		fmt.Println(trace.Render(run))
	}

	if !run.Success {
		os.Exit(1)
	}
}

// askDirect answers with a plain chat completion.
func askDirect(ctx context.Context, cfg *config.Config, client *ollama.Client, args Args) {
	content, err := client.Generate(ctx, args.Query, &ollama.GenerateOptions{
		Model:       cfg.Ollama.Model,
		Temperature: cfg.Ollama.Temperature,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generation failed: %v\n", err)
		os.Exit(1)
	}
	printAnswer(strings.TrimSpace(content), args)
}

// printAnswer renders markdown for terminals, raw text for pipes.
func printAnswer(content string, args Args) {
	if args.Quiet || !IsStdoutTTY() {
		fmt.Println(content)
		return
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(GetTerminalWidth()),
	)
	if err != nil {
		fmt.Println(content)
		return
	}
	out, err := r.Render(content)
	if err != nil {
		fmt.Println(content)
		return
	}
	fmt.Print(out)
}

// newClientFromConfig builds an Ollama client from the app config.
func newClientFromConfig(cfg *config.Config) *ollama.Client {
	return ollama.NewClientWithConfig(&ollama.ClientConfig{
		BaseURL:            cfg.Ollama.URL,
		DefaultModel:       cfg.Ollama.Model,
		DefaultTemperature: cfg.Ollama.Temperature,
	})
}
