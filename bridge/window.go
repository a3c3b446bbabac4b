// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package bridge

import (
	"encoding/json"
	"log/slog"

	"github.com/danielhkuo/hydrogen-intake/models"
)

// AnyOrigin lets a message be delivered regardless of the receiver's origin.
const AnyOrigin = "*"

// Window is anything that can receive posted messages.
type Window interface {
	PostMessage(msg models.Message, targetOrigin string) error
}

// Event is one incoming message. Source is whatever sent it; replies are
// only possible when it is a Window.
type Event struct {
	Data   json.RawMessage
	Source any
}

// SelfWindow stands for the form's own window. A bridge whose parent is its
// own SelfWindow is not embedded.
type SelfWindow struct {
	name string
}

func NewSelfWindow(name string) *SelfWindow {
	return &SelfWindow{name: name}
}

// PostMessage drops the message; nothing listens on the form's own window
// besides the bridge itself.
func (w *SelfWindow) PostMessage(msg models.Message, targetOrigin string) error {
	slog.Debug("message posted to own window", "window", w.name, "type", msg.Type)
	return nil
}
