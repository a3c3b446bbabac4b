// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/danielhkuo/hydrogen-intake/bridge"
	"github.com/danielhkuo/hydrogen-intake/export"
	"github.com/danielhkuo/hydrogen-intake/form"
	"github.com/danielhkuo/hydrogen-intake/ids"
	"github.com/danielhkuo/hydrogen-intake/models"
)

const inboxSize = 16

var ErrSessionClosed = errors.New("session closed")

// Session is one live form: its model, the hidden mirror document and the
// bridge to the hosting page.
type Session struct {
	id        string
	createdAt time.Time

	mu      sync.Mutex
	model   models.FormModel
	version uint64
	reducer *form.Reducer

	doc      *bridge.MemDocument
	bridge   *bridge.Bridge
	exporter *export.Exporter

	inbox  chan bridge.Event
	sub    *bridge.Subscription
	closed chan struct{}
	once   sync.Once
}

func newSession(id string, gen ids.Generator, exporter *export.Exporter, pushType string) (*Session, error) {
	s := &Session{
		id:        id,
		createdAt: time.Now(),
		model:     form.Default(),
		reducer:   form.NewReducer(gen),
		doc:       bridge.NewMemDocument(),
		exporter:  exporter,
		inbox:     make(chan bridge.Event, inboxSize),
		closed:    make(chan struct{}),
	}

	b, err := bridge.New(s.doc, bridge.NewSelfWindow(id), s, pushType)
	if err != nil {
		return nil, err
	}
	s.bridge = b

	sub, err := b.Subscribe(s.inbox)
	if err != nil {
		return nil, err
	}
	s.sub = sub

	// Mirror the initial model so the node exists from the start
	if err := b.Mirror(s.model); err != nil {
		sub.Close()
		return nil, err
	}
	return s, nil
}

func (s *Session) ID() string { return s.id }

func (s *Session) CreatedAt() time.Time { return s.createdAt }

// Snapshot returns a copy of the current model and its version.
func (s *Session) Snapshot() (models.FormModel, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return form.Clone(s.model), s.version
}

// GetFormData implements bridge.Accessor.
func (s *Session) GetFormData() models.FormModel {
	m, _ := s.Snapshot()
	return m
}

// GetSubmissions implements bridge.Accessor.
func (s *Session) GetSubmissions(ctx context.Context) ([]models.Submission, error) {
	return s.exporter.Submissions(ctx)
}

// Apply runs cmd against the current model. On success the version is
// bumped and the new model mirrored; on error nothing changes.
func (s *Session) Apply(cmd form.Command) (models.FormModel, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.reducer.Apply(s.model, cmd)
	if err != nil {
		return form.Clone(s.model), s.version, err
	}
	s.model = next
	s.version++

	// Mirroring under the lock keeps pushes in version order
	if err := s.bridge.Mirror(s.model); err != nil {
		slog.Error("failed to mirror form data", "session", s.id, "error", err)
	}

	slog.Debug("command applied", "session", s.id, "command", cmd.Kind(), "version", s.version)
	return form.Clone(s.model), s.version, nil
}

func (s *Session) Reset() (models.FormModel, uint64, error) {
	return s.Apply(form.ResetForm{})
}

// MirrorText returns the serialized model held by the hidden mirror node.
func (s *Session) MirrorText() string {
	return s.bridge.MirrorText()
}

// Embedded reports whether a host is attached.
func (s *Session) Embedded() bool {
	return s.bridge.Embedded()
}

// AttachHost makes w the form's parent window and pushes the current model
// to it.
func (s *Session) AttachHost(w bridge.Window) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bridge.SetParent(w)
	if err := s.bridge.Mirror(s.model); err != nil {
		slog.Error("failed to mirror form data", "session", s.id, "error", err)
	}
}

// DetachHost drops w if it is still the parent window.
func (s *Session) DetachHost(w bridge.Window) {
	s.bridge.ClearParent(w)
}

// Deliver queues an incoming host message for the bridge subscription.
func (s *Session) Deliver(ctx context.Context, ev bridge.Event) error {
	select {
	case s.inbox <- ev:
		return nil
	case <-s.closed:
		return ErrSessionClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Submit exports the current model and appends it to the submission log.
// The snapshot is forwarded to the host when one is attached.
func (s *Session) Submit(ctx context.Context, format export.Format) (export.Result, error) {
	model, _ := s.Snapshot()

	res, err := s.exporter.Submit(ctx, model, format, s.bridge)
	if err != nil {
		return export.Result{}, fmt.Errorf("session %s: %w", s.id, err)
	}
	return res, nil
}

// Submissions lists the submission log as seen through this session's bridge.
func (s *Session) Submissions(ctx context.Context) ([]models.Submission, error) {
	subs, err := s.bridge.Submissions(ctx)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", s.id, err)
	}
	return subs, nil
}

// Done is closed when the session has been closed.
func (s *Session) Done() <-chan struct{} {
	return s.closed
}

// Close stops the bridge subscription. Safe to call more than once.
func (s *Session) Close() {
	s.once.Do(func() {
		close(s.closed)
		s.sub.Close()
	})
}
