// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ollama is the HTTP adapter for the Ollama model-serving API.
package ollama

import "context"

// =============================================================================
// CHAT RESULT
// =============================================================================

// Result roles. RoleInit is the placeholder before a call completes; a
// delivered result always carries RoleAssistant or RoleError.
const (
	RoleAssistant = "assistant"
	RoleError     = "error"
	RoleInit      = "init"
)

// Fixed error texts, markdown-formatted so they render like any other reply.
const (
	errMissingMessage = "**Error** in LLM response!"
	errPrefix         = "**Error** with Ollama: "
)

// ChatResult is the normalized outcome of a chat request: either the
// assistant's message, or an error-role message describing what went wrong.
// Failures never escape as Go errors on this layer; they ride in-band so
// the UI can render them in the chat stream like any other turn.
type ChatResult struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// IsError reports whether the result represents a failed request.
func (r ChatResult) IsError() bool {
	return r.Role == RoleError
}

// InitResult returns the placeholder result a pending request holds
// before completion.
func InitResult() ChatResult {
	return ChatResult{Role: RoleInit, Content: "**Initials** in LLM response!"}
}

// =============================================================================
// NORMALIZED CHAT
// =============================================================================

// SendChat sends the given conversation window to the model and returns the
// normalized outcome. The caller decides how much history the window holds;
// the adapter transmits exactly what it is given.
//
// Outcome mapping:
//   - response with a message field  → that message, verbatim
//   - well-formed response without a message field → RoleError with a fixed text
//   - transport or decode failure → RoleError embedding the cause's text
//
// SendChat blocks for the duration of the HTTP call.
func (c *Client) SendChat(ctx context.Context, model string, window []Message) ChatResult {
	resp, err := c.Chat(ctx, model, window)
	if err != nil {
		return ChatResult{Role: RoleError, Content: errPrefix + err.Error()}
	}

	if resp.Message == nil {
		return ChatResult{Role: RoleError, Content: errMissingMessage}
	}

	return ChatResult{Role: resp.Message.Role, Content: resp.Message.Content}
}

// =============================================================================
// ASYNC DELIVERY
// =============================================================================

// Deliverer schedules a completion handler on the caller's results context.
// A UI front-end passes a Deliverer that marshals onto its event loop; the
// network call itself always runs on a worker goroutine, never the
// delivering context.
type Deliverer func(fn func())

// DeliverInline runs the handler directly on the worker goroutine.
// Use it when the caller does its own marshaling, or none is needed.
func DeliverInline(fn func()) { fn() }

// SendChatAsync issues the chat request on a new goroutine and hands the
// ChatResult to onResult via the supplied Deliverer once available.
// A nil deliver is treated as DeliverInline. The spawned goroutine owns the
// blocking call; the calling context returns immediately.
func (c *Client) SendChatAsync(ctx context.Context, model string, window []Message, deliver Deliverer, onResult func(ChatResult)) {
	if deliver == nil {
		deliver = DeliverInline
	}

	go func() {
		result := c.SendChat(ctx, model, window)
		deliver(func() { onResult(result) })
	}()
}
