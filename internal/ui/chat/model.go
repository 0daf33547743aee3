// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/ollamachat/internal/config"
	"github.com/jeranaias/ollamachat/internal/ollama"
	"github.com/jeranaias/ollamachat/internal/session"
	"github.com/jeranaias/ollamachat/internal/storage"
	"github.com/jeranaias/ollamachat/internal/ui/components"
	"github.com/jeranaias/ollamachat/internal/ui/styles"
)

// =============================================================================
// PHASES
// =============================================================================

// Phase represents the current screen of the chat flow. The flow moves
// forward endpoint -> models -> chat, and Esc moves it back one step.
type Phase int

const (
	PhaseEndpoint Phase = iota // Entering or confirming the server URL
	PhaseModels                // Picking a model from the server's list
	PhaseChat                  // Exchanging chat turns
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the whole chat flow.
type Model struct {
	// Flow
	phase    Phase
	quitting bool

	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int

	// Configuration
	cfg *config.Config

	// Server client and session bookkeeping
	client  *ollama.Client
	session *session.Manager

	// Transcript persistence. Nil when history is disabled.
	store *storage.TranscriptStore

	// Markdown rendering for assistant replies
	renderer *glamour.TermRenderer

	// UI components
	header    *components.Header
	statusBar *components.StatusBar
	spinner   components.Spinner
	toasts    *components.ToastManager
	viewport  viewport.Model
	input     textinput.Model

	// Key bindings
	keyMap KeyMap

	// Model picker state
	modelNames  []string
	modelCursor int
	fetching    bool

	// Server health, drives the header badge
	connected bool
}

// New creates the chat model from a loaded configuration.
func New(cfg *config.Config, theme *styles.Theme) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Server URL..."
	ti.CharLimit = 4096
	ti.SetValue(cfg.Server.URL)
	ti.Focus()

	vp := viewport.New(80, 20)
	vp.SetContent("")

	client := ollama.NewClient(cfg.Server.URL)
	mgr := session.NewManager(cfg.Server.URL)
	mgr.SetModel(cfg.Chat.DefaultModel)

	var store *storage.TranscriptStore
	if cfg.History.Enabled {
		if dir, err := cfg.HistoryDir(); err == nil {
			if s, err := storage.NewTranscriptStoreWithDir(dir); err == nil {
				s.MaxTranscripts = cfg.History.MaxTranscripts
				store = s
			}
		}
	}

	header := components.NewHeader(theme)
	header.SetEndpoint(cfg.Server.URL)

	statusBar := components.NewStatusBar(theme)
	statusBar.SetEndpoint(cfg.Server.URL)
	statusBar.SetStatus(components.StatusDisconnected)

	return Model{
		phase:     PhaseEndpoint,
		theme:     theme,
		cfg:       cfg,
		client:    client,
		session:   mgr,
		store:     store,
		renderer:  newMarkdownRenderer(78),
		header:    header,
		statusBar: statusBar,
		spinner:   components.NewWaitingSpinner(),
		toasts:    components.NewToastManager(),
		viewport:  vp,
		input:     ti,
		keyMap:    DefaultKeyMap(),
	}
}

// Init starts the initial commands: cursor blink plus a reachability
// probe for the preconfigured endpoint.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		CheckServerCmd(m.client),
	)
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Phase returns the current screen of the chat flow.
func (m Model) Phase() Phase { return m.phase }

// Session exposes the session manager, mainly for tests.
func (m Model) Session() *session.Manager { return m.session }

// requestTimeout converts the configured per-request timeout.
func (m Model) requestTimeout() time.Duration {
	return time.Duration(m.cfg.Server.TimeoutSecs) * time.Second
}

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// newMarkdownRenderer builds a glamour renderer for the given wrap
// width. A nil renderer falls back to plain text.
func newMarkdownRenderer(wrap int) *glamour.TermRenderer {
	if wrap < 20 {
		wrap = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return nil
	}
	return r
}

// renderMarkdown renders assistant markdown for terminal display.
// Returns the input unchanged when the renderer is unavailable.
func (m Model) renderMarkdown(content string) string {
	if m.renderer == nil {
		return content
	}
	out, err := m.renderer.Render(content)
	if err != nil {
		return content
	}
	return out
}
