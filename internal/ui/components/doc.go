// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the visual UI components for ollamachat.

Each component renders one region of the TUI and is composed by the chat
model in internal/ui/chat:

  - Header: title bar with endpoint, model, and connection state
  - StatusBar: bottom bar with transcript stats, status, and shortcuts
  - MessageBubble: a single transcript message with role decoration
  - Spinner / InlineSpinner: ASCII-safe loading indicators
  - Toast / ToastManager: non-blocking corner notifications

Components take a *styles.Theme so all colors resolve through the shared
palette. Rendering is pure: View methods return strings and never perform
I/O, which keeps them testable without a terminal.
*/
package components
