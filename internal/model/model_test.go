// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat transcripts and messages.
package model

import (
	"strings"
	"testing"

	"github.com/jeranaias/ollamachat/internal/ollama"
)

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestNewMessage(t *testing.T) {
	msg := NewUserMessage("hello")

	if msg.Role != RoleUser {
		t.Errorf("Role = %q, want %q", msg.Role, RoleUser)
	}
	if msg.Content != "hello" {
		t.Errorf("Content = %q, want %q", msg.Content, "hello")
	}
	if !strings.HasPrefix(msg.ID, "msg_") {
		t.Errorf("ID = %q, want msg_ prefix", msg.ID)
	}
	if msg.Timestamp.IsZero() {
		t.Error("Timestamp should be set")
	}
}

func TestNewAssistantMessage(t *testing.T) {
	msg := NewAssistantMessage("hi there", "llama3.2")
	if msg.Role != RoleAssistant {
		t.Errorf("Role = %q, want %q", msg.Role, RoleAssistant)
	}
	if msg.Model != "llama3.2" {
		t.Errorf("Model = %q, want %q", msg.Model, "llama3.2")
	}
}

func TestFromChatResult(t *testing.T) {
	ok := FromChatResult(ollama.ChatResult{Role: "assistant", Content: "fine"}, "llama3.2")
	if ok.Role != RoleAssistant || ok.Model != "llama3.2" {
		t.Errorf("assistant result mapped to %q/%q", ok.Role, ok.Model)
	}

	bad := FromChatResult(ollama.ChatResult{Role: "error", Content: "**Error** in LLM response!"}, "llama3.2")
	if !bad.IsError() {
		t.Error("error result should map to RoleError")
	}
	if bad.Model != "" {
		t.Errorf("error message should not carry a model, got %q", bad.Model)
	}
}

func TestMessagePreview(t *testing.T) {
	msg := NewUserMessage("hello world")
	if got := msg.Preview(50); got != "hello world" {
		t.Errorf("Preview = %q, want full content", got)
	}
	if got := msg.Preview(8); got != "hello..." {
		t.Errorf("Preview = %q, want %q", got, "hello...")
	}
}

func TestRoleIsChatRole(t *testing.T) {
	for _, role := range []Role{RoleUser, RoleAssistant, RoleSystem} {
		if !role.IsChatRole() {
			t.Errorf("%q should be a chat role", role)
		}
	}
	if RoleError.IsChatRole() {
		t.Error("error role must not participate in request history")
	}
}

// =============================================================================
// TRANSCRIPT TESTS
// =============================================================================

func TestTranscriptAppend(t *testing.T) {
	tr := NewTranscript()
	tr.AppendUser("what is the capital of France?")

	if tr.Len() != 1 {
		t.Fatalf("Len = %d, want 1", tr.Len())
	}
	if tr.GetTitle() != "what is the capital of France?" {
		t.Errorf("title should come from the first user message, got %q", tr.GetTitle())
	}
}

func TestTranscriptWindow(t *testing.T) {
	tr := NewTranscriptWithModel("llama3.2")
	tr.AppendUser("one")
	tr.Append(NewAssistantMessage("two", "llama3.2"))
	tr.AppendUser("three")
	tr.Append(NewAssistantMessage("four", "llama3.2"))
	tr.AppendUser("five")

	window := tr.Window(3)
	if len(window) != 3 {
		t.Fatalf("window length = %d, want 3", len(window))
	}
	for i, want := range []string{"three", "four", "five"} {
		if window[i].Content != want {
			t.Errorf("window[%d] = %q, want %q", i, window[i].Content, want)
		}
	}
}

func TestTranscriptWindowShorterThanN(t *testing.T) {
	tr := NewTranscript()
	tr.AppendUser("only one")

	window := tr.Window(HistoryWindow)
	if len(window) != 1 {
		t.Fatalf("window length = %d, want 1", len(window))
	}
}

func TestTranscriptWindowExcludesErrors(t *testing.T) {
	tr := NewTranscript()
	tr.AppendUser("one")
	tr.Append(NewErrorMessage("**Error** with Ollama: connection refused"))
	tr.AppendUser("two")

	window := tr.Window(HistoryWindow)
	if len(window) != 2 {
		t.Fatalf("window length = %d, want 2", len(window))
	}
	for _, m := range window {
		if m.Role == "error" {
			t.Error("error messages must not reach the request window")
		}
	}
}

func TestTranscriptAppendResult(t *testing.T) {
	tr := NewTranscriptWithModel("llama3.2")
	tr.AppendUser("hi")
	msg := tr.AppendResult(ollama.ChatResult{Role: "assistant", Content: "hello"})

	if msg.Role != RoleAssistant {
		t.Errorf("Role = %q, want assistant", msg.Role)
	}
	if tr.Last() != msg {
		t.Error("appended message should be last")
	}
}

func TestTranscriptClear(t *testing.T) {
	tr := NewTranscript()
	tr.AppendUser("a")
	tr.Clear()
	if !tr.IsEmpty() {
		t.Error("transcript should be empty after Clear")
	}
}

func TestTranscriptPrune(t *testing.T) {
	tr := NewTranscript()
	for i := 0; i < MaxMessages+10; i++ {
		tr.Append(NewUserMessage("m"))
	}
	if tr.Len() != MaxMessages {
		t.Errorf("Len = %d, want %d after prune", tr.Len(), MaxMessages)
	}
}

func TestTranscriptClone(t *testing.T) {
	tr := NewTranscriptWithModel("llama3.2")
	tr.AppendUser("original")

	clone := tr.Clone()
	clone.Messages[0].Content = "mutated"

	if tr.Messages[0].Content != "original" {
		t.Error("mutating a clone should not affect the source transcript")
	}
}
