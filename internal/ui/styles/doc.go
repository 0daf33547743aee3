// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for ollamachat.

This package defines the color palette and themed Lip Gloss styles used
throughout the TUI. All colors use Lip Gloss AdaptiveColor for automatic
light/dark terminal detection, and the detected background can be overridden
by the configured theme preference.

# Color System (colors.go)

  - Purple - Primary accent for assistant messages and selections
  - Cyan - Brand color for info, commands, and user highlights
  - Emerald - Success states and connected endpoint indicator
  - Amber - Warnings and the busy indicator
  - Rose - Errors and critical warnings

Message bubbles use semantic color tokens (UserBubbleBg, AssistantBubbleFg,
ErrorBubbleBorder and so on) so the palette can change in one place.

# Theme (theme.go)

The Theme struct holds every styled component: header, message bubbles,
input area, status bar, picker lists, spinner, error boxes, and toasts.

Create a theme honoring the configured preference:

	theme := styles.NewThemeWithPreference(cfg.UI.Theme)
	theme.SetSize(width, height)

# Status Indicators

ASCII shape indicators ([OK], [X], [!], [i]) accompany semantic colors so
status is readable without color vision. Use RenderSuccess, RenderError,
RenderWarning, and RenderInfo for one-line status output.
*/
package styles
