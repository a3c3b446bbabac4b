// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"github.com/danielhkuo/hydrogen-intake/models"
)

// MirrorElementID identifies the hidden node holding the serialized model.
const MirrorElementID = "hydrogen-form-data"

var (
	ErrDeliveryFailure   = errors.New("message delivery failed")
	ErrAlreadySubscribed = errors.New("bridge already has a message subscription")
	ErrInvalidPushType   = errors.New("invalid push message type")
)

// Accessor is what the hosting page exposes to the bridge.
type Accessor interface {
	GetFormData() models.FormModel
	GetSubmissions(ctx context.Context) ([]models.Submission, error)
}

// Bridge keeps a host window informed of the live form model.
type Bridge struct {
	doc      Document
	self     Window
	accessor Accessor
	pushType string

	mu     sync.RWMutex
	parent Window

	// orders find-or-create of the mirror node
	mirrorMu sync.Mutex

	subMu sync.Mutex
	sub   *Subscription
}

// New creates a bridge for a top-level window. Call SetParent once the form
// is embedded in a host.
func New(doc Document, self Window, accessor Accessor, pushType string) (*Bridge, error) {
	if pushType == "" {
		pushType = models.MessageFormDataResponse
	}
	if pushType != models.MessageFormDataResponse && pushType != models.MessageFormDataUpdated {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPushType, pushType)
	}
	return &Bridge{
		doc:      doc,
		self:     self,
		accessor: accessor,
		pushType: pushType,
		parent:   self,
	}, nil
}

// SetParent sets the window the form is embedded in. A nil parent makes the
// form top-level again.
func (b *Bridge) SetParent(parent Window) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if parent == nil {
		parent = b.self
	}
	b.parent = parent
}

// ClearParent detaches parent if it is still the current parent.
func (b *Bridge) ClearParent(parent Window) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.parent == parent {
		b.parent = b.self
	}
}

// Embedded reports whether the form's parent is a window other than itself.
func (b *Bridge) Embedded() bool {
	_, ok := b.embeddingParent()
	return ok
}

func (b *Bridge) embeddingParent() (Window, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.parent == nil || b.parent == b.self {
		return nil, false
	}
	return b.parent, true
}

// Mirror writes the serialized model into the mirror node, then pushes it
// to the parent window when embedded. Push failures are logged only.
func (b *Bridge) Mirror(model models.FormModel) error {
	data, err := json.Marshal(model)
	if err != nil {
		return fmt.Errorf("failed to serialize form data: %w", err)
	}

	b.mirrorMu.Lock()
	el := b.doc.ElementByID(MirrorElementID)
	if el == nil {
		el = b.doc.CreateHiddenElement(MirrorElementID)
	}
	el.SetText(string(data))
	b.mirrorMu.Unlock()

	b.postToParent(models.Message{Type: b.pushType, Data: model})
	return nil
}

// MirrorText returns the current content of the mirror node.
func (b *Bridge) MirrorText() string {
	el := b.doc.ElementByID(MirrorElementID)
	if el == nil {
		return ""
	}
	return el.Text()
}

// Submissions returns the stored submission log through the accessor.
func (b *Bridge) Submissions(ctx context.Context) ([]models.Submission, error) {
	return b.accessor.GetSubmissions(ctx)
}

// ForwardSubmission posts a FORM_SUBMISSION message to the parent window
// when embedded.
func (b *Bridge) ForwardSubmission(snapshot models.FormSnapshot) {
	b.postToParent(models.Message{Type: models.MessageFormSubmission, Data: snapshot})
}

// postToParent delivers msg to the parent window if there is one. It never
// fails; delivery errors are logged.
func (b *Bridge) postToParent(msg models.Message) {
	parent, ok := b.embeddingParent()
	if !ok {
		return
	}
	if err := parent.PostMessage(msg, AnyOrigin); err != nil {
		slog.Error("failed to send message to parent window",
			"type", msg.Type,
			"error", fmt.Errorf("%w: %w", ErrDeliveryFailure, err),
		)
	}
}

// HandleMessage answers a GET_FORM_DATA request with the accessor's current
// form data. Other messages are ignored. It reports whether a reply was
// attempted.
func (b *Bridge) HandleMessage(ev Event) bool {
	var msg struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(ev.Data, &msg); err != nil || msg.Type != models.MessageGetFormData {
		return false
	}

	source, ok := ev.Source.(Window)
	if !ok || isNilWindow(source) {
		slog.Debug("form data request without a reply target")
		return false
	}

	reply := models.Message{Type: models.MessageFormDataResponse, Data: b.accessor.GetFormData()}
	if err := source.PostMessage(reply, AnyOrigin); err != nil {
		slog.Error("failed to send response to parent window",
			"error", fmt.Errorf("%w: %w", ErrDeliveryFailure, err),
		)
	}
	return true
}

// isNilWindow also catches typed nil pointers stored in the interface.
func isNilWindow(w Window) bool {
	if w == nil {
		return true
	}
	v := reflect.ValueOf(w)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// Subscription is the bridge's message listener. Close stops it and waits
// for the listener goroutine to exit.
type Subscription struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Subscribe starts handling events until the channel closes or the
// subscription is closed. A bridge has at most one subscription at a time.
func (b *Bridge) Subscribe(events <-chan Event) (*Subscription, error) {
	b.subMu.Lock()
	defer b.subMu.Unlock()

	if b.sub != nil {
		return nil, ErrAlreadySubscribed
	}

	ctx, cancel := context.WithCancel(context.Background())
	sub := &Subscription{cancel: cancel, done: make(chan struct{})}
	b.sub = sub

	go func() {
		defer close(sub.done)
		defer b.releaseSubscription(sub)

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-events:
				if !ok {
					return
				}
				b.HandleMessage(ev)
			}
		}
	}()

	return sub, nil
}

func (b *Bridge) releaseSubscription(sub *Subscription) {
	b.subMu.Lock()
	defer b.subMu.Unlock()

	if b.sub == sub {
		b.sub = nil
	}
}

// Close stops the listener. Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(s.cancel)
	<-s.done
}

// Done is closed once the listener has stopped.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}
