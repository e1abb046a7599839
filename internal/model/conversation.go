// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"strings"
	"time"

	"github.com/jeranaias/mathrun-tui/internal/pipeline"
)

// MaxMessages is the maximum number of messages to keep in conversation
// history. When exceeded, the oldest messages are pruned to prevent
// unbounded memory growth.
const MaxMessages = 1000

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation holds a chat conversation with history and metadata.
// Messages are appended, never mutated in place.
type Conversation struct {
	// Identity
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Messages
	Messages []*Message `json:"messages"`

	// Model configuration
	Model string `json:"model"`
}

// NewConversation creates a new conversation with a generated ID.
func NewConversation() *Conversation {
	return &Conversation{
		ID:        generateID(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		Messages:  make([]*Message, 0),
	}
}

// NewConversationWithModel creates a new conversation with a specific model.
func NewConversationWithModel(model string) *Conversation {
	conv := NewConversation()
	conv.Model = model
	return conv
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// AddMessage adds a message to the conversation.
func (c *Conversation) AddMessage(msg *Message) {
	c.Messages = append(c.Messages, msg)
	c.UpdatedAt = time.Now()
	c.updateTitle()
	c.pruneOldMessages()
}

// AddUserMessage creates and adds a user message.
func (c *Conversation) AddUserMessage(content string) *Message {
	msg := NewUserMessage(content)
	c.AddMessage(msg)
	return msg
}

// AddAssistantMessage creates and adds an assistant message.
func (c *Conversation) AddAssistantMessage(content string) *Message {
	msg := NewAssistantMessage(content)
	c.AddMessage(msg)
	return msg
}

// AddErrorMessage creates and adds an error-flagged assistant message.
func (c *Conversation) AddErrorMessage(content string) *Message {
	msg := NewErrorMessage(content)
	c.AddMessage(msg)
	return msg
}

// AddPipelineMessage creates and adds an assistant message with its
// pipeline trace attached.
func (c *Conversation) AddPipelineMessage(content string, run *pipeline.Run) *Message {
	msg := NewPipelineMessage(content, run)
	c.AddMessage(msg)
	return msg
}

// GetLastMessage returns the most recent message, or nil if empty.
func (c *Conversation) GetLastMessage() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return c.Messages[len(c.Messages)-1]
}

// Len returns the number of messages in the conversation.
func (c *Conversation) Len() int {
	return len(c.Messages)
}

// Clear removes all messages but keeps the conversation identity.
func (c *Conversation) Clear() {
	c.Messages = make([]*Message, 0)
	c.Title = ""
	c.UpdatedAt = time.Now()
}

// =============================================================================
// INTERNAL MAINTENANCE
// =============================================================================

// updateTitle derives the title from the first user message.
func (c *Conversation) updateTitle() {
	if c.Title != "" {
		return
	}
	for _, msg := range c.Messages {
		if msg.Role == RoleUser {
			title := strings.TrimSpace(msg.Content)
			c.Title = msg.Preview(48)
			if title == "" {
				c.Title = "New conversation"
			}
			return
		}
	}
}

// pruneOldMessages drops the oldest messages beyond MaxMessages.
func (c *Conversation) pruneOldMessages() {
	if len(c.Messages) <= MaxMessages {
		return
	}
	excess := len(c.Messages) - MaxMessages
	c.Messages = c.Messages[excess:]
}
