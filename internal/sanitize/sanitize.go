// sanitize.go - Model output cleanup before display and clipboard export.
//
// Reasoning models interleave THINK blocks with their answer; terminals
// have no use for them. Styled transcripts carry inline markup tags that
// must not leak into plain-text exports.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package sanitize

import "regexp"

// =============================================================================
// PATTERNS
// =============================================================================

// thinkingPattern matches a complete THINK block, case-insensitive and
// spanning newlines. Lazy so adjacent blocks are removed independently.
var thinkingPattern = regexp.MustCompile(`(?is)<THINK>.*?</THINK>`)

// markupPattern matches opening and closing styling tags of the fixed tag
// set used in rendered transcripts. Bracketed text outside this set, such
// as markdown links or checkbox lists, is left alone.
var markupPattern = regexp.MustCompile(`\[/?(?:color|b|i|u|s|sub|sup|font|font_context|font_family|font_features|size|ref|anchor|text_language).*?\]`)

// =============================================================================
// STRIPPING
// =============================================================================

// StripThinking removes every <THINK>...</THINK> block from s, matching
// tags in any letter case. Unclosed blocks are left untouched. The
// operation is idempotent.
func StripThinking(s string) string {
	return thinkingPattern.ReplaceAllString(s, "")
}

// StripMarkup removes inline styling tags from s, leaving the readable
// text between them. Tag attributes, as in [color=#ff0000], are removed
// with the tag.
func StripMarkup(s string) string {
	return markupPattern.ReplaceAllString(s, "")
}

// Clean applies both passes, THINK blocks first so markup inside a
// removed block never survives.
func Clean(s string) string {
	return StripMarkup(StripThinking(s))
}
