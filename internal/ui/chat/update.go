// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file holds the Bubble Tea update loop. Keyboard handling is split
// per phase; asynchronous results from commands.go are handled uniformly
// regardless of phase.
package chat

import (
	"errors"
	"net/url"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ollamachat/internal/model"
	"github.com/jeranaias/ollamachat/internal/ollama"
	"github.com/jeranaias/ollamachat/internal/sanitize"
	"github.com/jeranaias/ollamachat/internal/session"
	"github.com/jeranaias/ollamachat/internal/ui/components"
	"github.com/jeranaias/ollamachat/internal/util"
)

// =============================================================================
// UPDATE LOOP
// =============================================================================

// Update handles all incoming messages for the chat flow.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case HealthCheckMsg:
		m.connected = msg.Running
		m.header.SetConnected(msg.Running)
		if !msg.Running && m.phase != PhaseEndpoint {
			m.toasts.AddWarning("Server is not responding")
		}
		m.syncStatus()
		return m, components.ToastTickCmd()

	case ModelListMsg:
		return m.handleModelList(msg)

	case ChatResultMsg:
		return m.handleChatResult(msg)

	case TranscriptListMsg:
		if msg.Error != nil {
			m.toasts.AddError("List failed: " + msg.Error.Error())
		} else {
			m.toasts.AddStatus(util.IntToString(len(msg.Metas)) + " saved transcripts")
		}
		return m, components.ToastTickCmd()

	case TranscriptSavedMsg:
		if msg.Error != nil {
			m.toasts.AddError("Save failed: " + msg.Error.Error())
		} else {
			m.toasts.AddSuccess("Transcript saved")
		}
		return m, components.ToastTickCmd()

	case TranscriptExportedMsg:
		if msg.Error != nil {
			m.toasts.AddError("Export failed: " + msg.Error.Error())
		} else {
			m.toasts.AddSuccess("Exported to " + msg.Path)
		}
		return m, components.ToastTickCmd()

	case CopyDoneMsg:
		if msg.Error != nil {
			m.toasts.AddError("Copy failed: " + msg.Error.Error())
		} else {
			m.toasts.AddStatus("Reply copied to clipboard")
		}
		return m, components.ToastTickCmd()

	case ConfigReloadedMsg:
		m.toasts.AddStatus("Configuration reloaded")
		return m, components.ToastTickCmd()

	case components.ToastTickMsg:
		m.toasts.TickToasts()
		if m.toasts.HasToasts() {
			return m, components.ToastTickCmd()
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// =============================================================================
// RESIZE
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)
	m.header.SetWidth(msg.Width)
	m.statusBar.SetWidth(msg.Width)
	m.input.Width = msg.Width - 4

	// Leave room for the header, input line, and status bar.
	vpHeight := msg.Height - 9
	if vpHeight < 3 {
		vpHeight = 3
	}
	m.viewport.Width = msg.Width
	m.viewport.Height = vpHeight

	// Reflow markdown to the new width.
	m.renderer = newMarkdownRenderer(msg.Width - 6)
	if m.phase == PhaseChat {
		m.refreshTranscript()
	}
	return m
}

// =============================================================================
// KEYBOARD
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	// Ctrl+C quits from any phase.
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.phase {
	case PhaseEndpoint:
		return m.handleEndpointKey(msg)
	case PhaseModels:
		return m.handleModelsKey(msg)
	default:
		return m.handleChatKey(msg)
	}
}

func (m Model) handleEndpointKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		return m.submitEndpoint()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleModelsKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.modelCursor > 0 {
			m.modelCursor--
		}
	case "down", "j":
		if m.modelCursor < len(m.modelNames)-1 {
			m.modelCursor++
		}
	case "enter":
		return m.chooseModel()
	case "r":
		m.fetching = true
		return m, tea.Batch(m.spinner.Start(), FetchModelsCmd(m.client))
	case "esc":
		m.phase = PhaseEndpoint
		m.input.Placeholder = "Server URL..."
		m.input.SetValue(m.session.Endpoint())
		m.input.CursorEnd()
	}
	return m, nil
}

func (m Model) handleChatKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m.submitMessage()
	case "ctrl+n":
		return m.startNewChat()
	case "ctrl+s":
		return m.saveTranscript()
	case "ctrl+e":
		return m.exportTranscript()
	case "ctrl+l":
		if m.store == nil {
			m.toasts.AddWarning("History is disabled in the config")
			return m, components.ToastTickCmd()
		}
		return m, ListTranscriptsCmd(m.store)
	case "ctrl+y":
		return m.copyLastReply()
	case "y":
		// Bare y copies only while the input is empty, so typing the
		// letter still works.
		if m.input.Value() == "" {
			return m.copyLastReply()
		}
	case "esc":
		if !m.session.IsAwaiting() {
			m.phase = PhaseModels
			m.fetching = true
			m.spinner = components.NewModelListSpinner()
			return m, tea.Batch(m.spinner.Start(), FetchModelsCmd(m.client))
		}
		return m, nil
	case "up", "down", "pgup", "pgdown", "ctrl+u", "ctrl+d":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// =============================================================================
// PHASE TRANSITIONS
// =============================================================================

func (m Model) submitEndpoint() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.input.Value())
	if raw == "" {
		m.toasts.AddWarning("Enter a server URL")
		return m, components.ToastTickCmd()
	}
	if u, err := url.Parse(raw); err != nil || u.Scheme == "" {
		m.toasts.AddWarning("URL needs a scheme, e.g. http://127.0.0.1:11434")
		return m, components.ToastTickCmd()
	}

	if err := m.session.SetEndpoint(raw); err != nil {
		if errors.Is(err, session.ErrBusy) {
			m.toasts.AddWarning("Still waiting on the model")
		} else {
			m.toasts.AddError(err.Error())
		}
		return m, components.ToastTickCmd()
	}

	m.client = ollama.NewClient(raw)
	m.header.SetEndpoint(raw)
	m.statusBar.SetEndpoint(raw)

	m.phase = PhaseModels
	m.fetching = true
	m.modelNames = nil
	m.modelCursor = 0
	m.spinner = components.NewModelListSpinner()
	return m, tea.Batch(
		m.spinner.Start(),
		CheckServerCmd(m.client),
		FetchModelsCmd(m.client),
	)
}

func (m Model) handleModelList(msg ModelListMsg) (Model, tea.Cmd) {
	m.fetching = false
	m.spinner.Stop()
	m.modelNames = msg.Names
	m.modelCursor = 0

	// Preselect the configured default when the server offers it.
	for i, name := range msg.Names {
		if name == m.cfg.Chat.DefaultModel {
			m.modelCursor = i
			break
		}
	}

	if len(msg.Names) == 0 {
		m.toasts.AddWarning("No chat models found. Press r to retry.")
		return m, components.ToastTickCmd()
	}
	return m, nil
}

func (m Model) chooseModel() (Model, tea.Cmd) {
	if len(m.modelNames) == 0 {
		m.fetching = true
		return m, tea.Batch(m.spinner.Start(), FetchModelsCmd(m.client))
	}

	name := m.modelNames[m.modelCursor]
	m.session.SetModel(name)
	m.header.SetModel(name)
	m.statusBar.SetModel(name)

	m.phase = PhaseChat
	m.input.SetValue("")
	m.input.Placeholder = "Type a message..."
	m.spinner = components.NewWaitingSpinner()
	m.refreshTranscript()
	m.syncStatus()
	return m, nil
}

// =============================================================================
// CHAT ACTIONS
// =============================================================================

func (m Model) submitMessage() (Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		m.toasts.AddWarning("Nothing to send")
		return m, components.ToastTickCmd()
	}

	if err := m.session.Begin(); err != nil {
		switch {
		case errors.Is(err, session.ErrBusy):
			m.toasts.AddWarning("Still waiting on the previous reply")
		case errors.Is(err, session.ErrNoModel):
			m.toasts.AddWarning("Pick a model first")
		default:
			m.toasts.AddError(err.Error())
		}
		return m, components.ToastTickCmd()
	}

	tr := m.session.Transcript()
	tr.AppendUser(text)
	m.input.SetValue("")
	m.refreshTranscript()
	m.syncStatus()

	return m, tea.Batch(
		m.spinner.Start(),
		components.ToastTickCmd(),
		SendChatCmd(m.client, m.session.Model(), tr.RequestWindow(), m.requestTimeout()),
	)
}

func (m Model) handleChatResult(msg ChatResultMsg) (Model, tea.Cmd) {
	m.session.Finish()
	m.spinner.Stop()

	tr := m.session.Transcript()
	tr.AppendResult(msg.Result)
	m.refreshTranscript()
	m.syncStatus()

	if msg.Result.IsError() {
		m.toasts.AddError(sanitize.StripMarkup(msg.Result.Content))
		return m, components.ToastTickCmd()
	}
	return m, nil
}

func (m Model) startNewChat() (Model, tea.Cmd) {
	if m.session.IsAwaiting() {
		m.toasts.AddWarning("Still waiting on the previous reply")
		return m, components.ToastTickCmd()
	}
	m.session.ResetTranscript()
	m.refreshTranscript()
	m.syncStatus()
	m.toasts.AddStatus("Started a new chat")
	return m, components.ToastTickCmd()
}

func (m Model) saveTranscript() (Model, tea.Cmd) {
	tr := m.session.Transcript()
	if m.store == nil {
		m.toasts.AddWarning("History is disabled in the config")
		return m, components.ToastTickCmd()
	}
	if tr.IsEmpty() {
		m.toasts.AddWarning("Nothing to save yet")
		return m, components.ToastTickCmd()
	}
	return m, SaveTranscriptCmd(m.store, tr)
}

func (m Model) exportTranscript() (Model, tea.Cmd) {
	tr := m.session.Transcript()
	if tr.IsEmpty() {
		m.toasts.AddWarning("Nothing to export yet")
		return m, components.ToastTickCmd()
	}
	return m, ExportTranscriptCmd(tr, "markdown", nil)
}

func (m Model) copyLastReply() (Model, tea.Cmd) {
	last := m.session.Transcript().LastByRole(model.RoleAssistant)
	if last == nil {
		m.toasts.AddWarning("No reply to copy yet")
		return m, components.ToastTickCmd()
	}
	return m, CopyTextCmd(sanitize.Clean(last.Content))
}

// =============================================================================
// STATUS
// =============================================================================

// syncStatus keeps the status bar in step with the session state.
func (m *Model) syncStatus() {
	m.statusBar.SetMessageCount(m.session.Transcript().Len())
	switch {
	case m.session.IsAwaiting():
		m.statusBar.SetStatus(components.StatusWaiting)
	case m.connected:
		m.statusBar.SetStatus(components.StatusReady)
	default:
		m.statusBar.SetStatus(components.StatusDisconnected)
	}
}
