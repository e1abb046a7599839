// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
//
// A Conversation is an append-only list of Messages; messages are never
// edited in place once added. Assistant messages that came out of the math
// pipeline carry their *pipeline.Run so the UI can render the stage trace.
// Nothing in this package is persisted - history lives and dies with the
// process.
package model
