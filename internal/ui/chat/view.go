// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/mathrun-tui/internal/model"
)

// =============================================================================
// MAIN RENDER
// =============================================================================

// View renders the complete chat view.
// Layout: header (1 line) + messages (viewport) + input (3 lines) + status (1 line).
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := m.header.Render()
	input := m.renderInput()
	status := m.renderStatusBar()
	messages := m.viewport.View()

	return lipgloss.JoinVertical(lipgloss.Left, header, messages, input, status)
}

// renderInput renders the input box, or the spinner line while busy.
func (m Model) renderInput() string {
	inner := m.width - 4
	if inner < 10 {
		inner = 10
	}

	if m.state == StateBusy {
		line := m.spinner.View() + " " + m.theme.ThinkingText.Render("thinking...")
		return m.theme.InputContainer.Width(inner).Render(line)
	}
	return m.theme.InputContainer.Width(inner).Render(m.input.View())
}

// renderStatusBar renders the shortcut hints and trace toggle state.
func (m Model) renderStatusBar() string {
	var parts []string
	parts = append(parts,
		m.theme.ShortcutKey.Render("enter")+m.theme.ShortcutDesc.Render(" send"),
		m.theme.ShortcutKey.Render("ctrl+t")+m.theme.ShortcutDesc.Render(" trace"),
		m.theme.ShortcutKey.Render("ctrl+l")+m.theme.ShortcutDesc.Render(" clear"),
		m.theme.ShortcutKey.Render("esc")+m.theme.ShortcutDesc.Render(" quit"),
	)
	if m.showTrace {
		parts = append(parts, m.theme.StatusOK.Render("trace on"))
	}
	return m.theme.StatusBar.Width(m.width).Render(strings.Join(parts, "  "))
}

// =============================================================================
// CONVERSATION RENDERING
// =============================================================================

// refreshViewport re-renders the conversation into the viewport and
// scrolls to the bottom.
func (m *Model) refreshViewport() {
	if m.conversation.Len() == 0 {
		m.viewport.SetContent(m.welcome.Render())
		return
	}

	var b strings.Builder
	for i, msg := range m.conversation.Messages {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.renderMessage(msg))
		b.WriteString("\n")
	}

	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

// renderMessage renders one message as a labelled bubble, with the
// pipeline trace attached when the message carries one.
func (m *Model) renderMessage(msg *model.Message) string {
	label := m.theme.RoleLabel.Render(msg.Role.DisplayName())
	ts := m.theme.Timestamp.Render(msg.Timestamp.Format("15:04"))
	head := label + " " + ts

	bubbleWidth := m.width - 6
	if bubbleWidth < 20 {
		bubbleWidth = 20
	}

	var body string
	switch {
	case msg.IsError:
		body = m.theme.ErrorBubble.Width(bubbleWidth).Render(msg.Content)
	case msg.Role == model.RoleUser:
		body = m.theme.UserBubble.Width(bubbleWidth).Render(msg.Content)
	case msg.Role == model.RoleSystem:
		body = m.theme.SystemBubble.Render(msg.Content)
	default:
		body = m.theme.AssistantBubble.Width(bubbleWidth).Render(m.renderMarkdown(msg.Content, bubbleWidth))
	}

	out := head + "\n" + body
	if msg.HasPipeline() {
		out += "\n" + m.trace.Render(msg.Pipeline)
	}
	return out
}

// renderMarkdown runs assistant content through Glamour. Falls back to
// the raw text if rendering fails.
func (m *Model) renderMarkdown(content string, width int) string {
	if m.renderer == nil || m.rendererWidth != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return content
		}
		m.renderer = r
		m.rendererWidth = width
	}

	out, err := m.renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n")
}
