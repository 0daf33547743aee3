// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// styles.go - Shared styling for the plain-mode CLI.
//
// Colors are automatically disabled for non-TTY output and the
// NO_COLOR environment variable is respected.

package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/ollamachat/internal/ui/styles"
)

// init configures the lipgloss color profile from terminal
// capabilities, so the styles below degrade to plain text when piped.
func init() {
	lipgloss.SetColorProfile(ColorProfile())
}

// =============================================================================
// SHARED STYLES
// =============================================================================

var (
	// promptStyle renders the REPL prompt
	promptStyle = lipgloss.NewStyle().
			Foreground(styles.Cyan).
			Bold(true)

	// welcomeStyle renders the welcome banner
	welcomeStyle = lipgloss.NewStyle().
			Foreground(styles.Purple).
			Bold(true)

	// infoStyle renders secondary information
	infoStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary)

	// commandStyle renders command names and confirmations
	commandStyle = lipgloss.NewStyle().
			Foreground(styles.Emerald)

	// warningStyle renders warnings
	warningStyle = lipgloss.NewStyle().
			Foreground(styles.Amber)

	// errorStyle renders errors
	errorStyle = lipgloss.NewStyle().
			Foreground(styles.Rose).
			Bold(true)

	// summaryHeaderStyle renders section headers
	summaryHeaderStyle = lipgloss.NewStyle().
				Foreground(styles.Cyan).
				Bold(true)
)
