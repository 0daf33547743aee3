// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for ollamachat.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/ollamachat/internal/ui/styles"
	"github.com/jeranaias/ollamachat/internal/util"
)

// =============================================================================
// HEADER COMPONENT - Title bar with endpoint and model info
// =============================================================================

// Header represents the title bar component.
type Header struct {
	Title     string // Main title (default: "ollamachat")
	ModelName string // Current model name
	Endpoint  string // Ollama endpoint URL
	Connected bool   // Whether the endpoint answered the last health check
	Width     int    // Available width
	theme     *styles.Theme
}

// NewHeader creates a new Header component with default values.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Title: "ollamachat",
		Width: 80,
		theme: theme,
	}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetModel updates the current model name.
func (h *Header) SetModel(model string) {
	h.ModelName = model
}

// SetEndpoint updates the displayed endpoint.
func (h *Header) SetEndpoint(endpoint string) {
	h.Endpoint = endpoint
}

// SetConnected updates the connection indicator.
func (h *Header) SetConnected(connected bool) {
	h.Connected = connected
}

// View renders the header component.
func (h *Header) View() string {
	width := h.Width
	if width < 40 {
		width = 40
	}

	// Inner width accounts for borders and padding
	innerWidth := width - 6

	brandStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.Cyan)

	accentStyle := lipgloss.NewStyle().
		Foreground(styles.Purple)

	brand := accentStyle.Render("< ") +
		brandStyle.Render(h.Title) +
		accentStyle.Render(" >")

	// Subtitle line with endpoint, model, and connection state
	subtitleParts := []string{}

	if h.Endpoint != "" {
		endpointStyle := lipgloss.NewStyle().
			Foreground(styles.TextMuted)
		subtitleParts = append(subtitleParts, endpointStyle.Render(util.TruncateRunes(h.Endpoint, 40)))
	}

	if h.ModelName != "" {
		modelStyle := lipgloss.NewStyle().
			Foreground(styles.TextSecondary)
		subtitleParts = append(subtitleParts, modelStyle.Render(h.ModelName))
	}

	subtitleParts = append(subtitleParts, h.connectionBadge())

	subtitle := strings.Join(subtitleParts, " ")

	brandLine := lipgloss.NewStyle().
		Width(innerWidth).
		Align(lipgloss.Center).
		Render(brand)

	subtitleLine := lipgloss.NewStyle().
		Width(innerWidth).
		Align(lipgloss.Center).
		Foreground(styles.TextMuted).
		Render(subtitle)

	content := lipgloss.JoinVertical(lipgloss.Center, brandLine, subtitleLine)

	headerBox := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Purple).
		Background(styles.SurfaceDim).
		Padding(0, 2).
		Width(width)

	return headerBox.Render(content)
}

// ViewCompact renders a compact single-line header for narrow terminals.
func (h *Header) ViewCompact() string {
	brandStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.Cyan)

	accentStyle := lipgloss.NewStyle().
		Foreground(styles.Purple)

	brand := accentStyle.Render("<") +
		brandStyle.Render(h.Title) +
		accentStyle.Render(">")

	parts := []string{brand}

	if h.ModelName != "" {
		modelStyle := lipgloss.NewStyle().
			Foreground(styles.TextMuted)
		parts = append(parts, modelStyle.Render(h.ModelName))
	}

	parts = append(parts, h.connectionBadge())

	separator := lipgloss.NewStyle().
		Foreground(styles.Overlay).
		Render(" | ")

	return strings.Join(parts, separator)
}

// connectionBadge renders the connection state with shape and color.
func (h *Header) connectionBadge() string {
	if h.Connected {
		return lipgloss.NewStyle().
			Foreground(styles.Emerald).
			Bold(true).
			Render("[" + styles.StatusIndicators.Active + " online]")
	}
	return lipgloss.NewStyle().
		Foreground(styles.Rose).
		Bold(true).
		Render("[" + styles.StatusIndicators.Error + " offline]")
}
