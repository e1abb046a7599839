// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the mathrun TUI:
// the header bar, the welcome banner, and the pipeline trace view.
package components
