// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the mathrun TUI.
package components

import (
	"strings"

	"github.com/jeranaias/mathrun-tui/internal/ui/styles"
)

// =============================================================================
// WELCOME BANNER
// =============================================================================

// Welcome renders the empty-conversation greeting with a few example
// queries, so the first screen explains the math pipeline.
type Welcome struct {
	Width int
	theme *styles.Theme
}

// NewWelcome creates the welcome banner component.
func NewWelcome(theme *styles.Theme) *Welcome {
	return &Welcome{Width: 80, theme: theme}
}

// SetWidth updates the banner width.
func (w *Welcome) SetWidth(width int) {
	w.Width = width
}

// Render produces the banner text.
func (w *Welcome) Render() string {
	var b strings.Builder

	b.WriteString(w.theme.HeaderTitle.Render("mathrun"))
	b.WriteString("\n")
	b.WriteString(w.theme.HeaderSubtitle.Render("local LLM chat with a deterministic math pipeline"))
	b.WriteString("\n\n")
	b.WriteString(w.theme.ThinkingText.Render("Arithmetic questions are extracted, evaluated exactly, then phrased"))
	b.WriteString("\n")
	b.WriteString(w.theme.ThinkingText.Render("by the model. Everything else goes straight to the model."))
	b.WriteString("\n\n")

	examples := []string{
		`"what is 2 plus 2"`,
		`"calculate 1234567890 * 987654321"`,
		`"how much is (12.5 + 7.5) / 4"`,
	}
	for _, ex := range examples {
		b.WriteString(w.theme.ShortcutDesc.Render("  try: "))
		b.WriteString(w.theme.ShortcutKey.Render(ex))
		b.WriteString("\n")
	}

	return b.String()
}
