// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides the plain-mode line REPL for ollamachat.
//
// Plain mode is a fallback for environments where the full-screen TUI
// is unwanted: dumb terminals, scripting, or user preference. It keeps
// the exact chat semantics of the TUI (single in-flight request,
// trailing context window, inline error replies) but reads input with
// readline-style editing and prints rendered markdown line by line.
//
// Entry point: Run(cfg), which blocks until the user exits.
package cli
