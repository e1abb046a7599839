// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Interactive chat REPL for the mathrun CLI.
//
// Command: chat
// Short:   Start an interactive chat session
//
// Examples:
//   mathrun chat                       Start interactive chat (default model)
//   mathrun chat --model qwen2.5:14b   Use a specific model
//   mathrun chat --trace               Show pipeline traces for math queries
//
// Interactive Commands (during chat):
//   /help, /h           Show available commands
//   /clear, /c          Clear conversation history
//   /trace, /t          Toggle pipeline trace display
//   /model [name]       Show or switch model
//   /quit, /q           Exit chat
//   Ctrl+D              Exit chat
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"

	"github.com/jeranaias/mathrun-tui/internal/config"
	"github.com/jeranaias/mathrun-tui/internal/model"
	"github.com/jeranaias/mathrun-tui/internal/ollama"
	"github.com/jeranaias/mathrun-tui/internal/pipeline"
	"github.com/jeranaias/mathrun-tui/internal/ui/components"
	"github.com/jeranaias/mathrun-tui/internal/ui/styles"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(styles.Cyan).
			Bold(true)

	welcomeStyle = lipgloss.NewStyle().
			Foreground(styles.Purple).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary)

	commandStyle = lipgloss.NewStyle().
			Foreground(styles.Emerald)

	warningStyle = lipgloss.NewStyle().
			Foreground(styles.Amber)
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// ChatCLI provides input history and line editing for interactive chat.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a new ChatCLI with input history support.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}
	historyFile := filepath.Join(configDir, "chat_history")

	c := &ChatCLI{line: line, historyFile: historyFile}
	c.LoadHistory()
	return c
}

// LoadHistory loads command history from file.
func (c *ChatCLI) LoadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

// SaveHistory persists command history to file.
func (c *ChatCLI) SaveHistory() {
	if f, err := os.Create(c.historyFile); err == nil {
		c.line.WriteHistory(f)
		f.Close()
	}
}

// Close saves history and releases the terminal.
func (c *ChatCLI) Close() {
	c.SaveHistory()
	c.line.Close()
}

// Prompt reads one line with editing and history.
func (c *ChatCLI) Prompt(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err == nil && strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, err
}

// =============================================================================
// CHAT SESSION
// =============================================================================

// chatSession holds the state of one interactive REPL session.
type chatSession struct {
	cfg          *config.Config
	client       *ollama.Client
	orchestrator *pipeline.Orchestrator
	conversation *model.Conversation
	trace        *components.TraceView
	showTrace    bool
}

// HandleChat runs the interactive chat command.
func HandleChat(args Args) {
	if !IsTTY() {
		fmt.Fprintln(os.Stderr, "chat requires an interactive terminal; use `mathrun ask` for piped input")
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
	if err := client.EnsureRunning(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Ollama is not available: %v\n", err)
		os.Exit(1)
	}

	sess := &chatSession{
		cfg:    cfg,
		client: client,
		orchestrator: pipeline.NewOrchestrator(client, &pipeline.OrchestratorConfig{
			Model:                 cfg.Ollama.Model,
			ExtractionTemperature: cfg.Pipeline.ExtractionTemperature,
			FormattingTemperature: cfg.Pipeline.FormattingTemperature,
		}),
		conversation: model.NewConversationWithModel(cfg.Ollama.Model),
		trace:        components.NewTraceView(styles.NewTheme()),
		showTrace:    args.Trace || cfg.UI.ShowTrace,
	}
	sess.trace.SetWidth(GetTerminalWidth())
	sess.trace.Verbose = true

	repl := NewChatCLI()
	defer repl.Close()

	fmt.Println(welcomeStyle.Render("mathrun chat"))
	fmt.Println(infoStyle.Render("model: " + cfg.Ollama.Model + "  (/help for commands, /quit to exit)"))
	fmt.Println()

	for {
		input, err := repl.Prompt(promptStyle.Render("you ❯ "))
		if err != nil {
			// liner returns io.EOF on Ctrl+D and ErrPromptAborted on Ctrl+C
			fmt.Println()
			break
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			if sess.handleCommand(input, args) {
				break
			}
			continue
		}

		sess.answer(input, args)
	}

	fmt.Println(infoStyle.Render(fmt.Sprintf("Session ended. %d messages.", sess.conversation.Len())))
}

// handleCommand processes a /command. Returns true to exit the REPL.
func (s *chatSession) handleCommand(input string, args Args) bool {
	fields := strings.Fields(input)
	cmd := strings.ToLower(fields[0])

	switch cmd {
	case "/quit", "/q", "/exit":
		return true

	case "/help", "/h":
		fmt.Println(commandStyle.Render("/clear") + infoStyle.Render("  clear conversation history"))
		fmt.Println(commandStyle.Render("/trace") + infoStyle.Render("  toggle pipeline trace display"))
		fmt.Println(commandStyle.Render("/model") + infoStyle.Render("  show or switch model"))
		fmt.Println(commandStyle.Render("/quit ") + infoStyle.Render("  exit chat"))

	case "/clear", "/c":
		s.conversation.Clear()
		fmt.Println(infoStyle.Render("History cleared."))

	case "/trace", "/t":
		s.showTrace = !s.showTrace
		if s.showTrace {
			fmt.Println(infoStyle.Render("Pipeline trace on."))
		} else {
			fmt.Println(infoStyle.Render("Pipeline trace off."))
		}

	case "/model":
		if len(fields) < 2 {
			fmt.Println(infoStyle.Render("model: " + s.cfg.Ollama.Model))
			break
		}
		s.cfg.Ollama.Model = fields[1]
		s.orchestrator = pipeline.NewOrchestrator(s.client, &pipeline.OrchestratorConfig{
			Model:                 s.cfg.Ollama.Model,
			ExtractionTemperature: s.cfg.Pipeline.ExtractionTemperature,
			FormattingTemperature: s.cfg.Pipeline.FormattingTemperature,
		})
		fmt.Println(infoStyle.Render("Switched to " + fields[1]))

	default:
		fmt.Println(warningStyle.Render("Unknown command: " + cmd + " (/help for commands)"))
	}

	return false
}

// answer dispatches a query to the pipeline or direct chat and prints
// the response.
func (s *chatSession) answer(query string, args Args) {
	s.conversation.AddUserMessage(query)

	ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
	defer cancel()

	if !args.NoPipe && s.cfg.Pipeline.Enabled && pipeline.IsMathQuery(query) {
		run, err := s.orchestrator.Solve(ctx, query)
		if err != nil {
			fmt.Println(warningStyle.Render("Pipeline failed: " + err.Error()))
			s.conversation.AddErrorMessage(err.Error())
			return
		}
		if run.Success {
			printAnswer(run.Answer, args)
			s.conversation.AddPipelineMessage(run.Answer, run)
		} else {
			msg := "could not evaluate the expression"
			if failed := run.FailedStage(); failed != nil && failed.Err != "" {
				msg = failed.Err
			}
			fmt.Println(warningStyle.Render("Evaluation failed: " + msg))
			pm := s.conversation.AddPipelineMessage(msg, run)
			pm.IsError = true
		}
		if s.showTrace {
			fmt.Println(s.trace.Render(run))
		}
		return
	}

	content, err := s.client.Generate(ctx, query, &ollama.GenerateOptions{
		Model:       s.cfg.Ollama.Model,
		Temperature: s.cfg.Ollama.Temperature,
	})
	if err != nil {
		fmt.Println(warningStyle.Render("Generation failed: " + err.Error()))
		s.conversation.AddErrorMessage(err.Error())
		return
	}
	content = strings.TrimSpace(content)
	printAnswer(content, args)
	s.conversation.AddAssistantMessage(content)
}
