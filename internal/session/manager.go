// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session tracks one chat session: endpoint, model, transcript,
// and the single-request-in-flight slot.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/jeranaias/ollamachat/internal/model"
	"github.com/jeranaias/ollamachat/internal/util"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrBusy is returned when a chat request is attempted while another
	// is still awaiting its reply.
	ErrBusy = errors.New("a request is already in flight")

	// ErrEmptyEndpoint is returned when an endpoint update carries an
	// empty URL. The session never silently keeps a blank endpoint.
	ErrEmptyEndpoint = errors.New("endpoint URL is empty")

	// ErrNoModel is returned when a chat request is attempted before a
	// model has been selected.
	ErrNoModel = errors.New("no model selected")
)

// =============================================================================
// REQUEST STATE
// =============================================================================

// State describes the request slot.
type State int

const (
	// StateIdle means no request is in flight; input is accepted.
	StateIdle State = iota

	// StateAwaiting means a request was sent and its reply is pending.
	// Further requests are rejected until Finish.
	StateAwaiting
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaiting:
		return "awaiting"
	default:
		return "unknown"
	}
}

// =============================================================================
// SESSION MANAGER
// =============================================================================

// Manager owns the mutable state of one chat session. All methods are safe
// for concurrent use; the request slot serializes chat traffic so at most
// one request is ever awaiting a reply.
type Manager struct {
	mu sync.Mutex

	sessionID string
	startTime time.Time

	endpoint string
	model    string

	transcript *Transcript

	state     State
	requestAt time.Time
}

// Transcript aliases the domain type so callers do not import two packages
// for one concept.
type Transcript = model.Transcript

// NewManager creates a new session manager pointed at endpoint.
func NewManager(endpoint string) *Manager {
	now := time.Now()
	return &Manager{
		sessionID:  generateSessionID(),
		startTime:  now,
		endpoint:   endpoint,
		transcript: model.NewTranscript(),
		state:      StateIdle,
	}
}

// =============================================================================
// IDENTITY
// =============================================================================

// SessionID returns the current session ID.
func (m *Manager) SessionID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessionID
}

// StartTime returns when the session started.
func (m *Manager) StartTime() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.startTime
}

// Duration returns how long the session has been active.
func (m *Manager) Duration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return time.Since(m.startTime)
}

// =============================================================================
// ENDPOINT AND MODEL
// =============================================================================

// Endpoint returns the server URL the session talks to.
func (m *Manager) Endpoint() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.endpoint
}

// SetEndpoint points the session at a new server URL. The selected model
// is cleared since the new server's model list may differ. Rejected while
// a request is awaiting, and when the URL is empty.
func (m *Manager) SetEndpoint(url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StateAwaiting {
		return ErrBusy
	}
	if url == "" {
		return ErrEmptyEndpoint
	}

	m.endpoint = url
	m.model = ""
	return nil
}

// Model returns the currently selected model, or "" if none.
func (m *Manager) Model() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.model
}

// SetModel selects the model used for chat requests.
func (m *Manager) SetModel(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.model = name
	m.transcript.Model = name
}

// =============================================================================
// TRANSCRIPT ACCESS
// =============================================================================

// Transcript returns the session's live transcript. The transcript itself
// is not synchronized; mutate it only from the goroutine that owns the
// session's event loop.
func (m *Manager) Transcript() *Transcript {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.transcript
}

// ResetTranscript replaces the transcript with a fresh one, keeping the
// endpoint and the selected model.
func (m *Manager) ResetTranscript() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transcript = model.NewTranscriptWithModel(m.model)
	m.transcript.Endpoint = m.endpoint
}

// =============================================================================
// REQUEST SLOT
// =============================================================================

// State returns the current request slot state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// IsAwaiting reports whether a reply is pending.
func (m *Manager) IsAwaiting() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == StateAwaiting
}

// Begin claims the request slot. It fails with ErrBusy when a reply is
// already pending, and with ErrNoModel before a model is chosen. On
// success the caller must pair it with Finish, typically via defer on the
// delivery path.
func (m *Manager) Begin() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StateAwaiting {
		return ErrBusy
	}
	if m.model == "" {
		return ErrNoModel
	}

	m.state = StateAwaiting
	m.requestAt = time.Now()
	return nil
}

// Finish releases the request slot. Safe to call when already idle.
func (m *Manager) Finish() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = StateIdle
}

// AwaitingFor returns how long the pending request has been in flight,
// or zero when idle.
func (m *Manager) AwaitingFor() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateAwaiting {
		return 0
	}
	return time.Since(m.requestAt)
}

// =============================================================================
// SESSION STATUS
// =============================================================================

// Status is a point-in-time snapshot of the session for display.
type Status struct {
	SessionID    string
	StartTime    time.Time
	Duration     time.Duration
	Endpoint     string
	Model        string
	State        State
	MessageCount int
}

// GetStatus returns the current session status.
func (m *Manager) GetStatus() Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Status{
		SessionID:    m.sessionID,
		StartTime:    m.startTime,
		Duration:     time.Since(m.startTime),
		Endpoint:     m.endpoint,
		Model:        m.model,
		State:        m.state,
		MessageCount: m.transcript.Len(),
	}
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// generateSessionID creates a unique session ID.
func generateSessionID() string {
	return "sess_" + time.Now().Format("20060102_150405")
}

// FormatDuration returns a human-readable duration string.
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		secs := int(d.Seconds())
		return util.IntToString(secs) + "s"
	}
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	if secs == 0 {
		return util.IntToString(mins) + "m"
	}
	return util.IntToString(mins) + "m " + util.IntToString(secs) + "s"
}
