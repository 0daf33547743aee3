// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ollama is the HTTP adapter for the Ollama model-serving API.
//
// It covers the two calls the application needs:
//
//   - GET  /api/tags  lists the models available on the server
//   - POST /api/chat  sends a conversation window and receive one reply
//
// Two layers are exposed. The raw layer (ListModels, Chat) speaks the wire
// format directly and reports failures as typed errors. The normalized layer
// (ChatModelNames, SendChat, SendChatAsync) implements the fail-soft contract
// the UI depends on: listing degrades to an empty slice, and chat failures
// come back as in-band ChatResult values with role "error"; callers never
// need error handling around them for network causes.
package ollama
