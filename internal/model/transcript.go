// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat transcripts and messages.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/ollamachat/internal/ollama"
)

// HistoryWindow is the number of trailing messages sent with each chat
// request. Small local models drift on long contexts; a short window keeps
// replies anchored to the recent exchange.
const HistoryWindow = 3

// MaxMessages is the maximum number of messages kept in a transcript.
// When exceeded, the oldest messages are pruned to bound memory.
const MaxMessages = 1000

// =============================================================================
// TRANSCRIPT TYPE
// =============================================================================

// Transcript holds the full ordered message history of one chat session
// plus its metadata. It is not safe for concurrent use; callers serialize
// access through their event loop or session manager.
type Transcript struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Messages []*Message `json:"messages"`

	// Model and endpoint the transcript was recorded against.
	Model    string `json:"model"`
	Endpoint string `json:"endpoint,omitempty"`
}

// NewTranscript creates a new empty transcript with a generated ID.
func NewTranscript() *Transcript {
	return &Transcript{
		ID:        "chat_" + uuid.NewString(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		Messages:  make([]*Message, 0),
	}
}

// NewTranscriptWithModel creates a new transcript bound to a model.
func NewTranscriptWithModel(model string) *Transcript {
	tr := NewTranscript()
	tr.Model = model
	return tr
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// Append adds a message to the transcript.
func (t *Transcript) Append(msg *Message) {
	t.Messages = append(t.Messages, msg)
	t.UpdatedAt = time.Now()
	t.updateTitle()
	t.prune()
}

// AppendUser creates and appends a user message.
func (t *Transcript) AppendUser(content string) *Message {
	msg := NewUserMessage(content)
	t.Append(msg)
	return msg
}

// AppendResult converts a normalized adapter outcome and appends it.
func (t *Transcript) AppendResult(res ollama.ChatResult) *Message {
	msg := FromChatResult(res, t.Model)
	t.Append(msg)
	return msg
}

// Last returns the most recent message, or nil if empty.
func (t *Transcript) Last() *Message {
	if len(t.Messages) == 0 {
		return nil
	}
	return t.Messages[len(t.Messages)-1]
}

// LastByRole returns the most recent message with the given role.
func (t *Transcript) LastByRole(role Role) *Message {
	for i := len(t.Messages) - 1; i >= 0; i-- {
		if t.Messages[i].Role == role {
			return t.Messages[i]
		}
	}
	return nil
}

// Clear removes all messages from the transcript.
func (t *Transcript) Clear() {
	t.Messages = make([]*Message, 0)
	t.UpdatedAt = time.Now()
}

// Len returns the number of messages.
func (t *Transcript) Len() int {
	return len(t.Messages)
}

// IsEmpty returns true if there are no messages.
func (t *Transcript) IsEmpty() bool {
	return len(t.Messages) == 0
}

// =============================================================================
// HISTORY WINDOW
// =============================================================================

// Window returns the trailing n messages in adapter wire format, oldest
// first. Error messages and other non-chat roles are excluded before the
// window is taken, so a failed exchange never shrinks the usable history.
func (t *Transcript) Window(n int) []ollama.Message {
	if n <= 0 {
		return []ollama.Message{}
	}

	chat := make([]*Message, 0, len(t.Messages))
	for _, msg := range t.Messages {
		if msg.Role.IsChatRole() && !msg.IsEmpty() {
			chat = append(chat, msg)
		}
	}

	if len(chat) > n {
		chat = chat[len(chat)-n:]
	}

	window := make([]ollama.Message, len(chat))
	for i, msg := range chat {
		window[i] = msg.ToOllama()
	}
	return window
}

// RequestWindow returns the history window for the next chat request.
func (t *Transcript) RequestWindow() []ollama.Message {
	return t.Window(HistoryWindow)
}

// =============================================================================
// TITLE MANAGEMENT
// =============================================================================

// updateTitle auto-generates a title from the first user message if not set.
func (t *Transcript) updateTitle() {
	if t.Title != "" {
		return
	}
	for _, msg := range t.Messages {
		if msg.Role == RoleUser {
			t.Title = msg.Preview(50)
			return
		}
	}
}

// GetTitle returns the transcript title or a default.
func (t *Transcript) GetTitle() string {
	if t.Title != "" {
		return t.Title
	}
	return "New Chat"
}

// =============================================================================
// HELPERS
// =============================================================================

// Clone creates a deep copy of the transcript.
func (t *Transcript) Clone() *Transcript {
	clone := &Transcript{
		ID:        t.ID,
		Title:     t.Title,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
		Model:     t.Model,
		Endpoint:  t.Endpoint,
		Messages:  make([]*Message, len(t.Messages)),
	}
	for i, msg := range t.Messages {
		msgCopy := *msg
		clone.Messages[i] = &msgCopy
	}
	return clone
}

// prune removes the oldest messages once the transcript exceeds MaxMessages.
func (t *Transcript) prune() {
	if len(t.Messages) <= MaxMessages {
		return
	}
	t.Messages = t.Messages[len(t.Messages)-MaxMessages:]
}
