// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the mathrun TUI.
package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/mathrun-tui/internal/ui/styles"
	"github.com/jeranaias/mathrun-tui/internal/util"
)

// =============================================================================
// HEADER COMPONENT
// =============================================================================

// Header is the title bar: app name, current model, backend status.
type Header struct {
	Title     string // Main title (default: "mathrun")
	ModelName string // Current model name
	Connected bool   // Backend reachability
	Width     int    // Available width
	theme     *styles.Theme
}

// NewHeader creates a new Header component with default values.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Title: "mathrun",
		Width: 80,
		theme: theme,
	}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetModel updates the current model name.
func (h *Header) SetModel(model string) {
	h.ModelName = model
}

// SetConnected updates the backend status indicator.
func (h *Header) SetConnected(connected bool) {
	h.Connected = connected
}

// Render produces the header line.
func (h *Header) Render() string {
	title := h.theme.HeaderTitle.Render(h.Title)

	status := h.theme.StatusBad.Render("● offline")
	if h.Connected {
		status = h.theme.StatusOK.Render("● online")
	}

	model := ""
	if h.ModelName != "" {
		model = h.theme.HeaderSubtitle.Render(util.TruncateWidth(h.ModelName, 32))
	}

	left := lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", model)
	gap := h.Width - lipgloss.Width(left) - lipgloss.Width(status) - 2
	if gap < 1 {
		gap = 1
	}

	line := left + lipgloss.NewStyle().Width(gap).Render("") + status
	return h.theme.Header.Width(h.Width).Render(line)
}
