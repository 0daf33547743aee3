// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat transcripts and messages.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/ollamachat/internal/ollama"
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

	// RoleError marks an in-band failure message. Error messages are
	// rendered in the transcript but never sent back to the model.
	RoleError Role = "error"
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
	case RoleError:
		return "Error"
	default:
		return string(r)
	}
}

// IsChatRole reports whether messages with this role participate in the
// history sent to the model.
func (r Role) IsChatRole() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	default:
		return false
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single entry in a transcript.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`

	// Model that produced the message, set on assistant replies only.
	Model string `json:"model,omitempty"`
}

// NewMessage creates a new message with a generated ID.
func NewMessage(role Role, content string) *Message {
	return &Message{
		ID:        "msg_" + uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewUserMessage creates a new user message.
func NewUserMessage(content string) *Message {
	return NewMessage(RoleUser, content)
}

// NewAssistantMessage creates a new assistant message attributed to model.
func NewAssistantMessage(content, model string) *Message {
	msg := NewMessage(RoleAssistant, content)
	msg.Model = model
	return msg
}

// NewErrorMessage creates a new in-band error message.
func NewErrorMessage(content string) *Message {
	return NewMessage(RoleError, content)
}

// FromChatResult converts a normalized adapter outcome into a transcript
// message. Error results map to RoleError.
func FromChatResult(res ollama.ChatResult, model string) *Message {
	if res.IsError() {
		return NewErrorMessage(res.Content)
	}
	return NewAssistantMessage(res.Content, model)
}

// =============================================================================
// MESSAGE METHODS
// =============================================================================

// IsError reports whether the message carries an in-band failure.
func (m *Message) IsError() bool {
	return m.Role == RoleError
}

// IsEmpty returns true if the message has no content.
func (m *Message) IsEmpty() bool {
	return len(m.Content) == 0
}

// Preview returns a truncated preview of the message content.
// Uses rune-based truncation to handle Unicode correctly.
func (m *Message) Preview(maxLen int) string {
	runes := []rune(m.Content)
	if len(runes) <= maxLen {
		return m.Content
	}
	return string(runes[:maxLen-3]) + "..."
}

// ToOllama converts the message to the adapter's wire format.
func (m *Message) ToOllama() ollama.Message {
	return ollama.Message{
		Role:    m.Role.String(),
		Content: m.Content,
	}
}
