// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the non-TUI command surface of mathrun:
// argument parsing, the one-shot ask command, the interactive chat
// REPL, and the status and config commands.
package cli
