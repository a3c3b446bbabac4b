// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/danielhkuo/hydrogen-intake/models"
)

const writeTimeout = 5 * time.Second

var ErrOriginMismatch = errors.New("target origin does not match host origin")

// WSWindow is a host window reached over a WebSocket. Messages posted to it
// are written as JSON text frames; frames read from it become Events whose
// Source is the WSWindow itself.
type WSWindow struct {
	conn   *websocket.Conn
	origin string

	writeMu sync.Mutex
}

func NewWSWindow(conn *websocket.Conn, origin string) *WSWindow {
	return &WSWindow{conn: conn, origin: origin}
}

// Origin is the Origin header the host connected with.
func (w *WSWindow) Origin() string { return w.origin }

func (w *WSWindow) PostMessage(msg models.Message, targetOrigin string) error {
	if targetOrigin != AnyOrigin && targetOrigin != w.origin {
		return fmt.Errorf("%w: %q vs %q", ErrOriginMismatch, targetOrigin, w.origin)
	}

	w.writeMu.Lock()
	defer w.writeMu.Unlock()

	if err := w.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return w.conn.WriteJSON(msg)
}

// ReadLoop reads frames until the connection fails or ctx is done, passing
// each one to deliver. Non-JSON frames are skipped.
func (w *WSWindow) ReadLoop(ctx context.Context, deliver func(Event)) error {
	stop := context.AfterFunc(ctx, func() {
		w.conn.Close()
	})
	defer stop()

	for {
		_, data, err := w.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		if !json.Valid(data) {
			continue
		}
		deliver(Event{Data: data, Source: w})
	}
}

// Close closes the underlying connection.
func (w *WSWindow) Close() error {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()

	_ = w.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeTimeout))
	return w.conn.Close()
}
