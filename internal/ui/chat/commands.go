// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file defines the asynchronous commands behind the chat interface.
// Each command runs in its own goroutine under Bubble Tea and reports
// back through exactly one message from messages.go.
package chat

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ollamachat/internal/export"
	"github.com/jeranaias/ollamachat/internal/model"
	"github.com/jeranaias/ollamachat/internal/ollama"
	"github.com/jeranaias/ollamachat/internal/storage"
)

// =============================================================================
// SERVER COMMANDS
// =============================================================================

// CheckServerCmd creates a command that probes the configured server.
func CheckServerCmd(client *ollama.Client) tea.Cmd {
	return func() tea.Msg {
		if client == nil {
			return HealthCheckMsg{Running: false}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err := client.CheckRunning(ctx)
		return HealthCheckMsg{
			Running: err == nil,
			Error:   err,
		}
	}
}

// FetchModelsCmd creates a command that lists the chat-capable models.
// The listing is fail-soft: an unreachable server yields an empty list,
// never an error, so the picker can offer a retry instead of dying.
func FetchModelsCmd(client *ollama.Client) tea.Cmd {
	return func() tea.Msg {
		if client == nil {
			return ModelListMsg{Names: []string{}}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return ModelListMsg{Names: client.ChatModelNames(ctx)}
	}
}

// =============================================================================
// CHAT COMMANDS
// =============================================================================

// SendChatCmd creates a command that posts one chat request and waits
// for the complete reply. Errors come back as an error-role result
// inside ChatResultMsg, never as a dropped message, so the caller can
// always release the request slot.
func SendChatCmd(client *ollama.Client, modelName string, window []ollama.Message, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		if timeout <= 0 {
			timeout = 120 * time.Second
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		return ChatResultMsg{Result: client.SendChat(ctx, modelName, window)}
	}
}

// =============================================================================
// PERSISTENCE COMMANDS
// =============================================================================

// SaveTranscriptCmd creates a command that writes the transcript to the
// history directory. The store snapshots the transcript before writing,
// so the live conversation may keep growing while the save runs.
func SaveTranscriptCmd(store *storage.TranscriptStore, tr *model.Transcript) tea.Cmd {
	return func() tea.Msg {
		id, err := store.Save(tr)
		return TranscriptSavedMsg{ID: id, Error: err}
	}
}

// ExportTranscriptCmd creates a command that exports the transcript in
// the given format (markdown, html, or json).
func ExportTranscriptCmd(tr *model.Transcript, format string, opts *export.Options) tea.Cmd {
	return func() tea.Msg {
		path, err := export.ExportTranscript(tr, format, opts)
		return TranscriptExportedMsg{Path: path, Error: err}
	}
}

// ListTranscriptsCmd creates a command that lists stored transcripts.
func ListTranscriptsCmd(store *storage.TranscriptStore) tea.Cmd {
	return func() tea.Msg {
		metas, err := store.List()
		return TranscriptListMsg{Metas: metas, Error: err}
	}
}

// =============================================================================
// CLIPBOARD COMMANDS
// =============================================================================

// CopyTextCmd creates a command that places text on the system clipboard.
// The caller strips presentation markup before handing the text over.
func CopyTextCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return CopyDoneMsg{Error: clipboard.WriteAll(text)}
	}
}
