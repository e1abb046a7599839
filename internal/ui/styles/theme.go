// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the mathrun TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style

	// ==========================================================================
	// MESSAGE BUBBLE STYLES
	// ==========================================================================

	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	SystemBubble    lipgloss.Style
	ErrorBubble     lipgloss.Style
	RoleLabel       lipgloss.Style
	Timestamp       lipgloss.Style

	// ==========================================================================
	// PIPELINE TRACE STYLES
	// ==========================================================================

	TraceBox       lipgloss.Style
	TraceTitle     lipgloss.Style
	StageComplete  lipgloss.Style
	StageError     lipgloss.Style
	StagePending   lipgloss.Style
	StageDetail    lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer lipgloss.Style
	InputPrompt    lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	StatusOK     lipgloss.Style
	StatusBad    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// ==========================================================================
	// SPINNER AND LOADING STYLES
	// ==========================================================================

	Spinner      lipgloss.Style
	ThinkingText lipgloss.Style
}

// NewTheme creates a theme tuned to the current terminal.
func NewTheme() *Theme {
	profile := termenv.ColorProfile()

	t := &Theme{
		HasTrueColor: profile == termenv.TrueColor,
		ColorProfile: profile,
		Width:        80,
		Height:       24,
	}

	// Header
	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		Padding(0, 1)
	t.HeaderTitle = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)
	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Message bubbles
	t.UserBubble = lipgloss.NewStyle().
		Foreground(TextPrimary).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Cyan).
		Padding(0, 1)
	t.AssistantBubble = lipgloss.NewStyle().
		Foreground(TextPrimary).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(0, 1)
	t.SystemBubble = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)
	t.ErrorBubble = lipgloss.NewStyle().
		Foreground(Rose).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Rose).
		Padding(0, 1)
	t.RoleLabel = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Bold(true)
	t.Timestamp = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Pipeline trace
	t.TraceBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)
	t.TraceTitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Bold(true)
	t.StageComplete = lipgloss.NewStyle().
		Foreground(Emerald)
	t.StageError = lipgloss.NewStyle().
		Foreground(Rose)
	t.StagePending = lipgloss.NewStyle().
		Foreground(Amber)
	t.StageDetail = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Input
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)
	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)
	t.StatusOK = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)
	t.StatusBad = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)
	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan)
	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Spinner
	t.Spinner = lipgloss.NewStyle().
		Foreground(Purple)
	t.ThinkingText = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	return t
}

// SetSize updates the theme's layout dimensions.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}
