// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ollamachat/internal/config"
	"github.com/jeranaias/ollamachat/internal/ollama"
	"github.com/jeranaias/ollamachat/internal/ui/styles"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func newTestModel() Model {
	cfg := config.Default()
	cfg.History.Enabled = false
	theme := styles.NewThemeWithPreference("dark")
	theme.SetSize(100, 30)
	m := New(cfg, theme)
	m.width = 100
	m.height = 30
	return m
}

func keyEnter() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// advanceToChat drives the model through endpoint entry and model
// selection so chat-phase tests start from a clean conversation.
func advanceToChat(t *testing.T, m Model) Model {
	t.Helper()

	m.input.SetValue("http://127.0.0.1:11434")
	m, _ = m.Update(keyEnter())
	if m.phase != PhaseModels {
		t.Fatalf("phase = %d, want PhaseModels", m.phase)
	}

	m, _ = m.Update(ModelListMsg{Names: []string{"llama3.2:latest", "qwen2.5:7b"}})
	m, _ = m.Update(keyEnter())
	if m.phase != PhaseChat {
		t.Fatalf("phase = %d, want PhaseChat", m.phase)
	}
	return m
}

// =============================================================================
// PHASE FLOW
// =============================================================================

func TestNewStartsAtEndpoint(t *testing.T) {
	m := newTestModel()
	if m.phase != PhaseEndpoint {
		t.Errorf("phase = %d, want PhaseEndpoint", m.phase)
	}
	if m.input.Value() != m.cfg.Server.URL {
		t.Errorf("input prefill = %q, want %q", m.input.Value(), m.cfg.Server.URL)
	}
}

func TestSubmitEndpointRejectsEmpty(t *testing.T) {
	m := newTestModel()
	m.input.SetValue("   ")
	m, _ = m.Update(keyEnter())

	if m.phase != PhaseEndpoint {
		t.Errorf("phase = %d, want PhaseEndpoint", m.phase)
	}
	if !m.toasts.HasToasts() {
		t.Error("expected a warning toast for an empty URL")
	}
}

func TestSubmitEndpointRejectsMissingScheme(t *testing.T) {
	m := newTestModel()
	m.input.SetValue("127.0.0.1:11434")
	m, _ = m.Update(keyEnter())

	if m.phase != PhaseEndpoint {
		t.Errorf("phase = %d, want PhaseEndpoint", m.phase)
	}
}

func TestSubmitEndpointAdvancesToModels(t *testing.T) {
	m := newTestModel()
	m.input.SetValue("http://127.0.0.1:11434")
	m, cmd := m.Update(keyEnter())

	if m.phase != PhaseModels {
		t.Fatalf("phase = %d, want PhaseModels", m.phase)
	}
	if !m.fetching {
		t.Error("expected model fetch to be in progress")
	}
	if cmd == nil {
		t.Error("expected a fetch command")
	}
}

func TestModelListPreselectsDefault(t *testing.T) {
	m := newTestModel()
	m.cfg.Chat.DefaultModel = "qwen2.5:7b"
	m.phase = PhaseModels

	m, _ = m.Update(ModelListMsg{Names: []string{"llama3.2:latest", "qwen2.5:7b"}})
	if m.modelCursor != 1 {
		t.Errorf("modelCursor = %d, want 1", m.modelCursor)
	}
}

func TestEmptyModelListWarns(t *testing.T) {
	m := newTestModel()
	m.phase = PhaseModels

	m, _ = m.Update(ModelListMsg{Names: []string{}})
	if !m.toasts.HasToasts() {
		t.Error("expected a warning toast for an empty model list")
	}
}

func TestChooseModelEntersChat(t *testing.T) {
	m := advanceToChat(t, newTestModel())
	if got := m.session.Model(); got != "llama3.2:latest" {
		t.Errorf("session model = %q, want llama3.2:latest", got)
	}
}

// =============================================================================
// CHAT EXCHANGE
// =============================================================================

func TestSubmitEmptyMessageWarns(t *testing.T) {
	m := advanceToChat(t, newTestModel())
	m, _ = m.Update(keyEnter())

	if m.session.IsAwaiting() {
		t.Error("empty input must not claim the request slot")
	}
	if !m.toasts.HasToasts() {
		t.Error("expected a warning toast")
	}
}

func TestSubmitMessageClaimsSlot(t *testing.T) {
	m := advanceToChat(t, newTestModel())
	m.input.SetValue("hello there")
	m, cmd := m.Update(keyEnter())

	if !m.session.IsAwaiting() {
		t.Fatal("expected the request slot to be claimed")
	}
	if got := m.session.Transcript().Len(); got != 1 {
		t.Errorf("transcript length = %d, want 1", got)
	}
	if m.input.Value() != "" {
		t.Error("input should be cleared after submit")
	}
	if cmd == nil {
		t.Error("expected a send command")
	}
}

func TestSubmitWhileAwaitingIsRejected(t *testing.T) {
	m := advanceToChat(t, newTestModel())
	m.input.SetValue("first")
	m, _ = m.Update(keyEnter())

	m.input.SetValue("second")
	m, _ = m.Update(keyEnter())

	if got := m.session.Transcript().Len(); got != 1 {
		t.Errorf("transcript length = %d, want 1 (second send rejected)", got)
	}
	if m.input.Value() != "second" {
		t.Error("rejected input should stay in the field")
	}
}

func TestChatResultReleasesSlot(t *testing.T) {
	m := advanceToChat(t, newTestModel())
	m.input.SetValue("hello")
	m, _ = m.Update(keyEnter())

	m, _ = m.Update(ChatResultMsg{Result: ollama.ChatResult{
		Role:    ollama.RoleAssistant,
		Content: "hi back",
	}})

	if m.session.IsAwaiting() {
		t.Error("slot must be released after the reply arrives")
	}
	if got := m.session.Transcript().Len(); got != 2 {
		t.Errorf("transcript length = %d, want 2", got)
	}
}

func TestChatErrorResultAddsToast(t *testing.T) {
	m := advanceToChat(t, newTestModel())
	m.input.SetValue("hello")
	m, _ = m.Update(keyEnter())
	m.toasts.Clear()

	m, _ = m.Update(ChatResultMsg{Result: ollama.ChatResult{
		Role:    ollama.RoleError,
		Content: "**Error** with Ollama: connection refused",
	}})

	if !m.toasts.HasToasts() {
		t.Error("expected an error toast")
	}
	if m.session.IsAwaiting() {
		t.Error("slot must be released even on error")
	}
}

func TestNewChatResetsTranscript(t *testing.T) {
	m := advanceToChat(t, newTestModel())
	m.input.SetValue("hello")
	m, _ = m.Update(keyEnter())
	m, _ = m.Update(ChatResultMsg{Result: ollama.ChatResult{
		Role: ollama.RoleAssistant, Content: "hi",
	}})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	if got := m.session.Transcript().Len(); got != 0 {
		t.Errorf("transcript length = %d, want 0 after new chat", got)
	}
	if got := m.session.Model(); got != "llama3.2:latest" {
		t.Errorf("model = %q, should survive a new chat", got)
	}
}

func TestCopyWithNoReplyWarns(t *testing.T) {
	m := advanceToChat(t, newTestModel())
	m, cmd := m.Update(keyRunes("y"))

	if cmd == nil {
		t.Fatal("expected a toast tick command")
	}
	if !m.toasts.HasToasts() {
		t.Error("expected a warning toast when there is no reply yet")
	}
}

func TestTypedLettersAreNotShortcuts(t *testing.T) {
	m := advanceToChat(t, newTestModel())
	m.input.SetValue("sa")
	m, _ = m.Update(keyRunes("y"))

	if m.input.Value() != "say" {
		t.Errorf("input = %q, want %q", m.input.Value(), "say")
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel()
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	if !m.quitting {
		t.Error("expected quitting flag")
	}
	if cmd == nil {
		t.Error("expected tea.Quit command")
	}
}

// =============================================================================
// RENDERING
// =============================================================================

func TestViewEndpointPhase(t *testing.T) {
	m := newTestModel()
	view := m.View()
	if !strings.Contains(view, "ollamachat") {
		t.Error("endpoint view should show the app name")
	}
}

func TestViewModelsPhase(t *testing.T) {
	m := newTestModel()
	m.phase = PhaseModels
	m.modelNames = []string{"llama3.2:latest"}

	view := m.View()
	if !strings.Contains(view, "Select a model") {
		t.Error("picker view should show its title")
	}
	if !strings.Contains(view, "llama3.2:latest") {
		t.Error("picker view should list the models")
	}
}

func TestViewChatPhaseShowsUserMessage(t *testing.T) {
	m := advanceToChat(t, newTestModel())
	m.input.SetValue("hello viewport")
	m, _ = m.Update(keyEnter())

	view := m.View()
	if !strings.Contains(view, "hello viewport") {
		t.Error("chat view should contain the submitted message")
	}
}

func TestResizeRebuildsLayout(t *testing.T) {
	m := advanceToChat(t, newTestModel())
	m, _ = m.Update(tea.WindowSizeMsg{Width: 50, Height: 20})

	if m.viewport.Width != 50 {
		t.Errorf("viewport width = %d, want 50", m.viewport.Width)
	}
	if m.width != 50 {
		t.Errorf("width = %d, want 50", m.width)
	}
}
