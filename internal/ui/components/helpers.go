// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/jeranaias/ollamachat/internal/util"
)

// =============================================================================
// SHARED HELPER FUNCTIONS
// =============================================================================

// wordWrap wraps text at word boundaries to fit within maxWidth columns.
// Lines that already fit are left untouched, so code blocks keep their shape.
func wordWrap(text string, maxWidth int) string {
	if maxWidth <= 0 {
		return text
	}

	var out []string
	for _, line := range strings.Split(text, "\n") {
		if util.StringWidth(line) <= maxWidth {
			out = append(out, line)
			continue
		}

		words := strings.Fields(line)
		if len(words) == 0 {
			out = append(out, line)
			continue
		}

		var current strings.Builder
		for _, word := range words {
			if current.Len() == 0 {
				current.WriteString(word)
			} else if util.StringWidth(current.String())+1+util.StringWidth(word) <= maxWidth {
				current.WriteString(" ")
				current.WriteString(word)
			} else {
				out = append(out, current.String())
				current.Reset()
				current.WriteString(word)
			}
		}
		if current.Len() > 0 {
			out = append(out, current.String())
		}
	}

	return strings.Join(out, "\n")
}

// maxLineWidth returns the display width of the widest line.
func maxLineWidth(text string) int {
	max := 0
	for _, line := range strings.Split(text, "\n") {
		if w := util.StringWidth(line); w > max {
			max = w
		}
	}
	return max
}

// minInt returns the smaller of two ints.
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
