// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"testing"
	"time"

	"github.com/jeranaias/ollamachat/internal/config"
)

// newTestSession builds a session pointed at a closed port so any
// accidental network call fails fast instead of hanging.
func newTestSession(t *testing.T) *ChatSession {
	t.Helper()
	cfg := config.Default()
	cfg.Server.URL = "http://127.0.0.1:1"
	cfg.History.Enabled = false
	return NewChatSession(cfg)
}

func TestPickModel(t *testing.T) {
	names := []string{"llama3.2:latest", "qwen2.5:7b"}

	if got := pickModel(names, "qwen2.5:7b"); got != "qwen2.5:7b" {
		t.Errorf("pickModel preferred = %q, want qwen2.5:7b", got)
	}
	if got := pickModel(names, "missing:model"); got != "llama3.2:latest" {
		t.Errorf("pickModel fallback = %q, want llama3.2:latest", got)
	}
	if got := pickModel(names, ""); got != "llama3.2:latest" {
		t.Errorf("pickModel empty preference = %q, want llama3.2:latest", got)
	}
}

func TestSlashCommandQuit(t *testing.T) {
	s := newTestSession(t)

	for _, cmd := range []string{"/quit", "/q", "/exit"} {
		keepGoing, err := handleSlashCommand(cmd, s)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", cmd, err)
		}
		if keepGoing {
			t.Errorf("%s: expected keepGoing=false", cmd)
		}
	}
}

func TestSlashCommandUnknown(t *testing.T) {
	s := newTestSession(t)

	keepGoing, err := handleSlashCommand("/bogus", s)
	if err == nil {
		t.Error("expected an error for an unknown command")
	}
	if !keepGoing {
		t.Error("unknown commands must not exit the REPL")
	}
}

func TestSlashCommandClear(t *testing.T) {
	s := newTestSession(t)
	s.Manager.Transcript().AppendUser("hello")

	keepGoing, err := handleSlashCommand("/clear", s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !keepGoing {
		t.Error("clear must not exit the REPL")
	}
	if got := s.Manager.Transcript().Len(); got != 0 {
		t.Errorf("transcript length = %d, want 0", got)
	}
}

func TestSlashCommandSaveWithoutStore(t *testing.T) {
	s := newTestSession(t)
	s.Manager.Transcript().AppendUser("hello")

	_, err := handleSlashCommand("/save", s)
	if err == nil {
		t.Error("expected an error when history is disabled")
	}
}

func TestSlashCommandExportEmpty(t *testing.T) {
	s := newTestSession(t)

	_, err := handleSlashCommand("/export", s)
	if err == nil {
		t.Error("expected an error for an empty transcript")
	}
}

func TestSlashCommandHelp(t *testing.T) {
	s := newTestSession(t)

	keepGoing, err := handleSlashCommand("/help", s)
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if !keepGoing {
		t.Error("help must not exit the REPL")
	}
}

func TestRequestTimeoutDefaults(t *testing.T) {
	s := newTestSession(t)
	s.Config.Server.TimeoutSecs = 0
	if got := s.requestTimeout(); got != 120*time.Second {
		t.Errorf("requestTimeout = %v, want 120s", got)
	}

	s.Config.Server.TimeoutSecs = 30
	if got := s.requestTimeout(); got != 30*time.Second {
		t.Errorf("requestTimeout = %v, want 30s", got)
	}
}
