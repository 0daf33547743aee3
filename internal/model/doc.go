// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat transcripts and messages.
//
// This package defines the core domain types used throughout the application
// for representing a chat session's history and the messages within it.
//
// # Key Types
//
//   - Transcript: Full ordered history of one chat session with metadata
//   - Message: Single message with role, content, and timestamp
//   - Role: Message role enumeration (user, assistant, system, error)
//
// # Usage
//
// Build a transcript and take the request window:
//
//	tr := model.NewTranscriptWithModel("qwen2.5:7b")
//	tr.AppendUser("Hello!")
//	window := tr.RequestWindow()
//
// The transcript keeps every message, including in-band error messages;
// only the trailing HistoryWindow chat-role messages travel with a request.
package model
