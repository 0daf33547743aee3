// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file defines all Bubble Tea messages used by the chat interface.
// Messages are organized by category: server health, model discovery,
// chat exchange, persistence, and UI state.
package chat

import (
	"github.com/jeranaias/ollamachat/internal/ollama"
	"github.com/jeranaias/ollamachat/internal/storage"
)

// =============================================================================
// SERVER MESSAGES
// =============================================================================

// HealthCheckMsg carries the result of a server reachability probe.
type HealthCheckMsg struct {
	Running bool
	Error   error
}

// =============================================================================
// MODEL MESSAGES
// =============================================================================

// ModelListMsg carries the chat-capable model names fetched from the server.
// Names is never nil; an unreachable server yields an empty list.
type ModelListMsg struct {
	Names []string
}

// =============================================================================
// CHAT MESSAGES
// =============================================================================

// ChatResultMsg carries the reply (or error result) for an in-flight
// chat request. Exactly one arrives per accepted request.
type ChatResultMsg struct {
	Result ollama.ChatResult
}

// =============================================================================
// PERSISTENCE MESSAGES
// =============================================================================

// TranscriptSavedMsg reports the outcome of a transcript save.
type TranscriptSavedMsg struct {
	ID    string
	Error error
}

// TranscriptExportedMsg reports the outcome of a transcript export.
type TranscriptExportedMsg struct {
	Path  string
	Error error
}

// TranscriptListMsg carries stored transcript summaries for display.
type TranscriptListMsg struct {
	Metas []storage.TranscriptMeta
	Error error
}

// =============================================================================
// UI MESSAGES
// =============================================================================

// CopyDoneMsg reports the outcome of copying the last reply to the
// system clipboard.
type CopyDoneMsg struct {
	Error error
}

// ConfigReloadedMsg is sent when the config watcher detects a change
// on disk and the new config has been applied.
type ConfigReloadedMsg struct{}
