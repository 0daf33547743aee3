// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/ollamachat/internal/model"
	"github.com/jeranaias/ollamachat/internal/ui/styles"
)

// =============================================================================
// MESSAGE BUBBLE COMPONENT
// =============================================================================

// MessageBubble renders a single transcript message as a styled bubble.
// Content is expected to be already rendered (markdown, sanitized); the
// bubble only handles wrapping, alignment, and role decoration.
type MessageBubble struct {
	Message       *model.Message
	Content       string // Rendered content; falls back to Message.Content
	Width         int
	ShowTimestamp bool
	theme         *styles.Theme
}

// NewMessageBubble creates a new MessageBubble.
func NewMessageBubble(msg *model.Message, theme *styles.Theme) *MessageBubble {
	if msg == nil {
		msg = model.NewMessage(model.RoleSystem, "")
	}
	return &MessageBubble{
		Message:       msg,
		Width:         80,
		ShowTimestamp: true,
		theme:         theme,
	}
}

// SetWidth sets the bubble width.
func (b *MessageBubble) SetWidth(width int) {
	b.Width = width
}

// SetContent overrides the displayed content with a pre-rendered string.
func (b *MessageBubble) SetContent(content string) {
	b.Content = content
}

// View renders the message bubble.
func (b *MessageBubble) View() string {
	switch b.Message.Role {
	case model.RoleUser:
		return b.renderUserBubble()
	case model.RoleAssistant:
		return b.renderAssistantBubble()
	case model.RoleError:
		return b.renderErrorBubble()
	default:
		return b.renderGenericBubble()
	}
}

// displayContent returns the rendered content, wrapped to fit.
func (b *MessageBubble) displayContent(maxWidth int) string {
	content := b.Content
	if content == "" {
		content = b.Message.Content
	}
	if content == "" {
		content = "..."
	}
	return wordWrap(content, maxWidth)
}

// ==========================================================================
// USER BUBBLE - Blue tones, right-aligned feel
// ==========================================================================

func (b *MessageBubble) renderUserBubble() string {
	maxContentWidth := b.Width - 12
	if maxContentWidth < 20 {
		maxContentWidth = 20
	}
	wrapped := b.displayContent(maxContentWidth)
	contentWidth := minInt(maxLineWidth(wrapped)+4, b.Width-8)

	bubble := lipgloss.NewStyle().
		Foreground(styles.UserBubbleFg).
		Background(styles.UserBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.UserBubbleBorder).
		Padding(0, 2).
		Width(contentWidth).
		Render(wrapped)

	roleStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true)
	label := roleStyle.Render("you") + b.renderTimestamp()

	block := lipgloss.JoinVertical(lipgloss.Right, label, bubble)

	// Push to the right side of the viewport
	return lipgloss.NewStyle().
		Width(b.Width).
		Align(lipgloss.Right).
		Render(block)
}

// ==========================================================================
// ASSISTANT BUBBLE - Purple tones, left-aligned
// ==========================================================================

func (b *MessageBubble) renderAssistantBubble() string {
	maxContentWidth := b.Width - 12
	if maxContentWidth < 20 {
		maxContentWidth = 20
	}
	wrapped := b.displayContent(maxContentWidth)
	contentWidth := minInt(maxLineWidth(wrapped)+4, b.Width-8)

	bubble := lipgloss.NewStyle().
		Foreground(styles.AssistantBubbleFg).
		Background(styles.AssistantBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.AssistantBubbleBorder).
		Padding(0, 2).
		Width(contentWidth).
		Render(wrapped)

	roleStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true)
	roleName := "assistant"
	if b.Message.Model != "" {
		roleName = b.Message.Model
	}
	label := roleStyle.Render(roleName) + b.renderTimestamp()

	return lipgloss.JoinVertical(lipgloss.Left, label, bubble)
}

// ==========================================================================
// ERROR BUBBLE - Rose left border, full width
// ==========================================================================

func (b *MessageBubble) renderErrorBubble() string {
	maxContentWidth := b.Width - 8
	if maxContentWidth < 20 {
		maxContentWidth = 20
	}
	wrapped := b.displayContent(maxContentWidth)

	bubble := lipgloss.NewStyle().
		Foreground(styles.ErrorBubbleFg).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(styles.ErrorBubbleBorder).
		PaddingLeft(2).
		Render(wrapped)

	labelStyle := lipgloss.NewStyle().
		Foreground(styles.Rose).
		Bold(true)
	label := labelStyle.Render(styles.StatusIndicators.Error+" error") + b.renderTimestamp()

	return lipgloss.JoinVertical(lipgloss.Left, label, bubble)
}

// ==========================================================================
// GENERIC BUBBLE - System and unknown roles
// ==========================================================================

func (b *MessageBubble) renderGenericBubble() string {
	maxContentWidth := b.Width - 8
	if maxContentWidth < 20 {
		maxContentWidth = 20
	}
	wrapped := b.displayContent(maxContentWidth)

	return lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Italic(true).
		Render(wrapped)
}

// renderTimestamp renders the message timestamp, dimmed.
func (b *MessageBubble) renderTimestamp() string {
	if !b.ShowTimestamp || b.Message.Timestamp.IsZero() {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Render("  " + b.Message.Timestamp.Format("15:04"))
}
