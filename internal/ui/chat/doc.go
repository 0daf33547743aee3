// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the main chat flow for the ollamachat TUI.

The package implements a three-phase Bubble Tea model:

 1. Endpoint entry: the user confirms or edits the Ollama server URL.
 2. Model picker: chat-capable models are fetched from the server and
    offered in a list. Embedding models are filtered out upstream.
 3. Conversation: turns are exchanged with the selected model, one
    request in flight at a time.

# Files

  - model.go: the Model struct, construction, and markdown rendering
  - update.go: the update loop, keyboard handling, and phase transitions
  - view.go: rendering for all three phases
  - commands.go: asynchronous commands (health check, model listing,
    chat requests, persistence, clipboard)
  - messages.go: the Bubble Tea messages those commands report with
  - keys.go: keyboard bindings

# Concurrency

All commands run in goroutines managed by Bubble Tea and communicate
exclusively through messages. The session manager enforces the
single-request rule; the update loop surfaces a toast instead of
queueing when the user submits while a reply is pending.
*/
package chat
