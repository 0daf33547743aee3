// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file contains all rendering logic for the chat flow: the endpoint
// entry screen, the model picker, and the conversation view.
package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/ollamachat/internal/model"
	"github.com/jeranaias/ollamachat/internal/sanitize"
	"github.com/jeranaias/ollamachat/internal/ui/components"
	"github.com/jeranaias/ollamachat/internal/ui/styles"
)

// =============================================================================
// MAIN RENDER
// =============================================================================

// View renders the current phase of the chat flow.
func (m Model) View() string {
	if m.quitting {
		return "Goodbye.\n"
	}

	switch m.phase {
	case PhaseEndpoint:
		return m.viewEndpoint()
	case PhaseModels:
		return m.viewModels()
	default:
		return m.viewChat()
	}
}

// =============================================================================
// ENDPOINT SCREEN
// =============================================================================

// viewEndpoint renders the server URL entry screen.
func (m Model) viewEndpoint() string {
	var b strings.Builder

	b.WriteString(m.theme.HeaderTitle.Render("ollamachat"))
	b.WriteString("\n")
	b.WriteString(m.theme.HeaderSubtitle.Render("Connect to an Ollama server"))
	b.WriteString("\n\n")
	b.WriteString(m.theme.InputContainer.Render(m.input.View()))
	b.WriteString("\n\n")
	b.WriteString(m.theme.PickerHint.Render("Enter to connect   Ctrl+C to quit"))

	box := m.theme.Container.Render(b.String())
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

// =============================================================================
// MODEL PICKER
// =============================================================================

// viewModels renders the model picker screen.
func (m Model) viewModels() string {
	var b strings.Builder

	b.WriteString(m.theme.PickerTitle.Render("Select a model"))
	b.WriteString("\n\n")

	switch {
	case m.fetching:
		b.WriteString(m.spinner.View())
	case len(m.modelNames) == 0:
		b.WriteString(m.theme.ErrorMessage.Render("No chat models available."))
		b.WriteString("\n")
		b.WriteString(m.theme.ErrorTip.Render("Is the server running? Try: ollama pull llama3.2"))
	default:
		for i, name := range m.modelNames {
			if i == m.modelCursor {
				b.WriteString(m.theme.PickerItemSelected.Render("> " + name))
			} else {
				b.WriteString(m.theme.PickerItem.Render("  " + name))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.theme.PickerHint.Render("Enter to choose   r to refresh   Esc to change server"))

	box := m.theme.PickerBox.Render(b.String())
	view := box
	if m.width > 0 && m.height > 0 {
		view = lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return m.overlayToasts(view)
}

// =============================================================================
// CONVERSATION
// =============================================================================

// viewChat renders the conversation screen.
// Layout: header + viewport + waiting line + input + status bar.
func (m Model) viewChat() string {
	var sections []string

	if m.theme.GetLayoutMode() == styles.LayoutNarrow {
		sections = append(sections, m.header.ViewCompact())
	} else {
		sections = append(sections, m.header.View())
	}

	sections = append(sections, m.viewport.View())

	if m.session.IsAwaiting() {
		sections = append(sections, m.theme.ThinkingText.Render(m.spinner.View()))
	}

	sections = append(sections, m.theme.InputContainer.Render(m.input.View()))
	sections = append(sections, m.statusBar.View())

	view := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return m.overlayToasts(view)
}

// overlayToasts appends the active toast stack below the main view.
func (m Model) overlayToasts(view string) string {
	if !m.toasts.HasToasts() {
		return view
	}
	stack := components.RenderToastStack(m.toasts.GetToasts(), m.width, 0)
	return lipgloss.JoinVertical(lipgloss.Right, view, stack)
}

// =============================================================================
// TRANSCRIPT RENDERING
// =============================================================================

// refreshTranscript rebuilds the viewport content from the transcript
// and scrolls to the latest message. Assistant replies go through the
// markdown renderer; thinking blocks are stripped first when the config
// asks for it.
func (m *Model) refreshTranscript() {
	tr := m.session.Transcript()
	if tr.IsEmpty() {
		m.viewport.SetContent(m.theme.PickerHint.Render("No messages yet. Say hello!"))
		return
	}

	blocks := make([]string, 0, tr.Len())
	for _, msg := range tr.Messages {
		bubble := components.NewMessageBubble(msg, m.theme)
		bubble.SetWidth(m.viewport.Width)
		bubble.ShowTimestamp = m.cfg.UI.ShowTimestamps

		if msg.Role == model.RoleAssistant {
			content := msg.Content
			if m.cfg.Chat.StripThinking {
				content = sanitize.StripThinking(content)
			}
			bubble.SetContent(strings.TrimRight(m.renderMarkdown(content), "\n"))
		}

		blocks = append(blocks, bubble.View())
	}

	m.viewport.SetContent(strings.Join(blocks, "\n\n"))
	m.viewport.GotoBottom()
}
