// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// The view is a Bubble Tea model wiring together the conversation,
// the Ollama client, and the math pipeline orchestrator. Queries the
// classifier tags as arithmetic are routed through the pipeline and
// rendered with their stage trace; everything else goes straight to
// the model as a plain generation.
package chat
