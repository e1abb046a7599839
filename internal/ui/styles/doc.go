// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the mathrun TUI.
//
// All colors are Lip Gloss AdaptiveColor values so light and dark
// terminals both get readable output, and the Theme adapts to the
// terminal's color capability via termenv profile detection.
package styles
