// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/jeranaias/mathrun-tui/internal/pipeline"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	case RoleSystem:
		return "System"
	default:
		return string(r)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single message in a conversation.
type Message struct {
	// Identity
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Timestamp time.Time `json:"timestamp"`

	// Content
	Content string `json:"content"`

	// IsError marks a message that reports a failure (backend down,
	// generation failed). Rendered in the error style.
	IsError bool `json:"is_error,omitempty"`

	// Pipeline holds the math pipeline trace when this message was
	// produced by a pipeline run. Nil for direct-chat messages.
	Pipeline *pipeline.Run `json:"pipeline,omitempty"`
}

// NewMessage creates a new message with a generated ID.
func NewMessage(role Role, content string) *Message {
	return &Message{
		ID:        generateID(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewUserMessage creates a new user message.
func NewUserMessage(content string) *Message {
	return NewMessage(RoleUser, content)
}

// NewAssistantMessage creates a new assistant message.
func NewAssistantMessage(content string) *Message {
	return NewMessage(RoleAssistant, content)
}

// NewSystemMessage creates a new system message.
func NewSystemMessage(content string) *Message {
	return NewMessage(RoleSystem, content)
}

// NewErrorMessage creates an assistant message flagged as an error.
func NewErrorMessage(content string) *Message {
	msg := NewMessage(RoleAssistant, content)
	msg.IsError = true
	return msg
}

// NewPipelineMessage creates an assistant message carrying a pipeline run.
func NewPipelineMessage(content string, run *pipeline.Run) *Message {
	msg := NewMessage(RoleAssistant, content)
	msg.Pipeline = run
	return msg
}

// =============================================================================
// MESSAGE METHODS
// =============================================================================

// HasPipeline reports whether this message carries a pipeline trace.
func (m *Message) HasPipeline() bool {
	return m.Pipeline != nil
}

// Preview returns a truncated preview of the message content.
// Uses rune-based truncation to handle Unicode correctly.
func (m *Message) Preview(maxLen int) string {
	runes := []rune(m.Content)
	if len(runes) <= maxLen {
		return m.Content
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// IsEmpty returns true if the message has no content.
func (m *Message) IsEmpty() bool {
	return len(m.Content) == 0
}

// =============================================================================
// ID GENERATION
// =============================================================================

// generateID creates a random 16-character hex ID.
func generateID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		// Timestamp fallback if the system RNG is unavailable
		return hex.EncodeToString([]byte(time.Now().String()))[:16]
	}
	return hex.EncodeToString(b)
}
