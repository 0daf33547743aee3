// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export provides transcript export functionality for ollamachat.
//
// This package supports exporting chat transcripts to various formats with
// styling, metadata, and optional opening in external applications.
//
// # Key Types
//
//   - Exporter: Main export interface
//   - MarkdownExporter, HTMLExporter, JSONExporter: Format implementations
//   - Options: Export configuration options
//
// # Supported Formats
//
//   - Markdown: Human-readable with formatting
//   - HTML: Styled for viewing in browsers
//   - JSON: Machine-readable with full transcript data
//
// # Usage
//
// Export a transcript to Markdown:
//
//	path, err := export.ExportMarkdown(transcript, nil)
//
// Export in a named format:
//
//	path, err := export.ExportTranscript(transcript, "html", &export.Options{
//	    OutputDir: "~/exports",
//	    Theme:     "light",
//	})
package export
