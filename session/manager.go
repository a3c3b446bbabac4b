// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/danielhkuo/hydrogen-intake/export"
	"github.com/danielhkuo/hydrogen-intake/ids"
	"github.com/danielhkuo/hydrogen-intake/models"
)

var ErrSessionNotFound = errors.New("session not found")

// Manager owns every live session.
type Manager struct {
	exporter *export.Exporter
	pushType string
	gen      ids.Generator
	newID    func() string

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager(sink export.Sink, pushType string) *Manager {
	return &Manager{
		exporter: export.NewExporter(sink),
		pushType: pushType,
		gen:      ids.Default,
		newID:    ids.NewSessionID,
		sessions: make(map[string]*Session),
	}
}

// Create starts a session holding the default model.
func (m *Manager) Create() (*Session, error) {
	s, err := newSession(m.newID(), m.gen, m.exporter, m.pushType)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.sessions[s.id] = s
	count := len(m.sessions)
	m.mu.Unlock()

	slog.Info("session created", "session", s.id, "active", count)
	return s, nil
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Remove closes and forgets one session.
func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	s.Close()
	slog.Info("session closed", "session", id)
	return nil
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.sessions)
}

// Submissions returns the whole submission log.
func (m *Manager) Submissions(ctx context.Context) ([]models.Submission, error) {
	return m.exporter.Submissions(ctx)
}

// Close closes every session.
func (m *Manager) Close() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
	slog.Info("all sessions closed", "count", len(sessions))
}
