// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	"github.com/jeranaias/ollamachat/internal/model"
	"github.com/jeranaias/ollamachat/internal/ui/styles"
)

func testTheme() *styles.Theme {
	return styles.NewThemeWithPreference("dark")
}

// =============================================================================
// HEADER TESTS
// =============================================================================

func TestHeaderView(t *testing.T) {
	h := NewHeader(testTheme())
	h.SetWidth(80)
	h.SetModel("llama3.2:latest")
	h.SetEndpoint("http://127.0.0.1:11434")
	h.SetConnected(true)

	view := h.View()
	if !strings.Contains(view, "ollamachat") {
		t.Error("header missing title")
	}
	if !strings.Contains(view, "llama3.2:latest") {
		t.Error("header missing model name")
	}
	if !strings.Contains(view, "online") {
		t.Error("header missing connection badge")
	}
}

func TestHeaderViewOffline(t *testing.T) {
	h := NewHeader(testTheme())
	h.SetConnected(false)

	if !strings.Contains(h.View(), "offline") {
		t.Error("header should show offline badge")
	}
	if !strings.Contains(h.ViewCompact(), "offline") {
		t.Error("compact header should show offline badge")
	}
}

// =============================================================================
// STATUS BAR TESTS
// =============================================================================

func TestStatusBarView(t *testing.T) {
	sb := NewStatusBar(testTheme())
	sb.SetWidth(120)
	sb.SetEndpoint("http://127.0.0.1:11434")
	sb.SetModel("qwen2.5-coder:7b")
	sb.SetMessageCount(4)
	sb.SetStatus(StatusReady)

	view := sb.View()
	if !strings.Contains(view, "qwen2.5-coder:7b") {
		t.Error("status bar missing model")
	}
	if !strings.Contains(view, "4 msgs") {
		t.Error("status bar missing message count")
	}
	if !strings.Contains(view, "Ready") {
		t.Error("status bar missing status text")
	}
}

func TestStatusBarNarrow(t *testing.T) {
	sb := NewStatusBar(testTheme())
	sb.SetWidth(50)
	sb.SetModel("a-very-long-model-name:latest")
	sb.SetMessageCount(2)

	view := sb.View()
	if !strings.Contains(view, "2 msgs") {
		t.Error("narrow status bar missing message count")
	}
	// Narrow view truncates long model names
	if strings.Contains(view, "a-very-long-model-name:latest") {
		t.Error("narrow status bar should truncate model name")
	}
}

func TestStatusString(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusReady, "Ready"},
		{StatusWaiting, "Waiting..."},
		{StatusLoading, "Loading..."},
		{StatusError, "Error"},
		{StatusDisconnected, "Disconnected"},
		{Status(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}

// =============================================================================
// MESSAGE BUBBLE TESTS
// =============================================================================

func TestMessageBubbleUser(t *testing.T) {
	msg := model.NewUserMessage("hello there")
	b := NewMessageBubble(msg, testTheme())
	b.SetWidth(80)

	view := b.View()
	if !strings.Contains(view, "hello there") {
		t.Error("user bubble missing content")
	}
	if !strings.Contains(view, "you") {
		t.Error("user bubble missing role label")
	}
}

func TestMessageBubbleAssistantUsesModelLabel(t *testing.T) {
	msg := model.NewAssistantMessage("hi", "llama3.2:latest")
	b := NewMessageBubble(msg, testTheme())
	b.SetWidth(80)

	if !strings.Contains(b.View(), "llama3.2:latest") {
		t.Error("assistant bubble should label with the model name")
	}
}

func TestMessageBubbleError(t *testing.T) {
	msg := model.NewErrorMessage("**Error** with Ollama: connection refused")
	b := NewMessageBubble(msg, testTheme())
	b.SetWidth(80)

	view := b.View()
	if !strings.Contains(view, "connection refused") {
		t.Error("error bubble missing content")
	}
	if !strings.Contains(view, "error") {
		t.Error("error bubble missing label")
	}
}

func TestMessageBubbleNilMessage(t *testing.T) {
	b := NewMessageBubble(nil, testTheme())
	b.SetWidth(80)
	// Must not panic
	_ = b.View()
}

func TestMessageBubbleSetContent(t *testing.T) {
	msg := model.NewAssistantMessage("raw **markdown**", "m")
	b := NewMessageBubble(msg, testTheme())
	b.SetWidth(80)
	b.SetContent("rendered markdown")

	view := b.View()
	if !strings.Contains(view, "rendered markdown") {
		t.Error("bubble should use the pre-rendered content")
	}
	if strings.Contains(view, "raw **markdown**") {
		t.Error("bubble should not fall back to raw content when overridden")
	}
}

// =============================================================================
// SPINNER TESTS
// =============================================================================

func TestSpinnerLifecycle(t *testing.T) {
	s := NewWaitingSpinner()
	if s.IsActive() {
		t.Error("spinner should start inactive")
	}
	if s.View() != "" {
		t.Error("inactive spinner should render nothing")
	}

	cmd := s.Start()
	if cmd == nil {
		t.Error("Start should return a tick command")
	}
	if !s.IsActive() {
		t.Error("spinner should be active after Start")
	}
	if !strings.Contains(s.View(), "Waiting for reply") {
		t.Error("spinner view missing message")
	}

	s.Stop()
	if s.IsActive() {
		t.Error("spinner should be inactive after Stop")
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{5 * time.Second, "5s"},
		{59 * time.Second, "59s"},
		{60 * time.Second, "1m 0s"},
		{125 * time.Second, "2m 5s"},
	}
	for _, tt := range tests {
		if got := formatElapsed(tt.d); got != tt.want {
			t.Errorf("formatElapsed(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

// =============================================================================
// TOAST TESTS
// =============================================================================

func TestToastManagerAddAndExpire(t *testing.T) {
	m := NewToastManager()
	if m.HasToasts() {
		t.Error("new manager should have no toasts")
	}

	id := m.AddError("request failed")
	if id == 0 {
		t.Error("expected non-zero toast ID")
	}
	if !m.HasToasts() {
		t.Error("manager should have a toast")
	}

	// Force expiry
	toasts := m.GetToasts()
	toasts[0].CreatedAt = time.Now().Add(-time.Minute)
	m.Clear()
	m.AddToast(toasts[0])

	if remaining := m.TickToasts(); len(remaining) != 0 {
		t.Errorf("expected expired toast to be removed, got %d", len(remaining))
	}
}

func TestToastManagerMaxToasts(t *testing.T) {
	m := NewToastManager()
	for i := 0; i < 10; i++ {
		m.AddStatus("toast")
	}
	if got := len(m.GetToasts()); got != 5 {
		t.Errorf("expected 5 toasts after trim, got %d", got)
	}
}

func TestToastManagerRemove(t *testing.T) {
	m := NewToastManager()
	id := m.AddWarning("careful")
	m.RemoveToast(id)
	if m.HasToasts() {
		t.Error("toast should be removed")
	}
}

func TestRenderToast(t *testing.T) {
	toast := NewSuccessToast("transcript saved")
	out := RenderToast(toast, 100)
	if !strings.Contains(out, "transcript saved") {
		t.Error("rendered toast missing message")
	}
	if !strings.Contains(out, styles.StatusIndicators.Success) {
		t.Error("rendered toast missing success indicator")
	}
}

func TestRenderToastStackEmpty(t *testing.T) {
	if out := RenderToastStack(nil, 80, 24); out != "" {
		t.Error("empty toast stack should render nothing")
	}
}

// =============================================================================
// HELPER TESTS
// =============================================================================

func TestWordWrap(t *testing.T) {
	wrapped := wordWrap("the quick brown fox jumps over the lazy dog", 10)
	for _, line := range strings.Split(wrapped, "\n") {
		if len(line) > 10 {
			t.Errorf("line %q exceeds wrap width", line)
		}
	}
}

func TestWordWrapPreservesShortLines(t *testing.T) {
	in := "short\nlines\nstay"
	if got := wordWrap(in, 40); got != in {
		t.Errorf("short lines should pass through unchanged, got %q", got)
	}
}

func TestMaxLineWidth(t *testing.T) {
	if got := maxLineWidth("ab\nabcd\na"); got != 4 {
		t.Errorf("maxLineWidth = %d, want 4", got)
	}
}
