// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/danielhkuo/hydrogen-intake/bridge"
	"github.com/danielhkuo/hydrogen-intake/cliparse"
	"github.com/danielhkuo/hydrogen-intake/middleware"
	"github.com/danielhkuo/hydrogen-intake/session"
)

// HostHandler connects a hosting page to a form session over WebSocket.
// The page receives every push and may send GET_FORM_DATA requests.
type HostHandler struct {
	manager  *session.Manager
	upgrader websocket.Upgrader
}

func NewHostHandler(manager *session.Manager, cfg cliparse.Config) *HostHandler {
	allowed := cfg.AllowedOrigin
	return &HostHandler{
		manager: manager,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return middleware.OriginAllowed(allowed, r.Header.Get("Origin"))
			},
		},
	}
}

// Connect handles GET /forms/{id}/host
func (h *HostHandler) Connect(w http.ResponseWriter, r *http.Request) {
	s, err := h.manager.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response
		slog.Warn("host upgrade failed", "session", s.ID(), "error", err)
		return
	}

	host := bridge.NewWSWindow(conn, r.Header.Get("Origin"))
	defer host.Close()

	s.AttachHost(host)
	defer s.DetachHost(host)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Drop the host when the session closes
	go func() {
		select {
		case <-s.Done():
			cancel()
		case <-ctx.Done():
		}
	}()

	slog.Info("host connected", "session", s.ID(), "origin", host.Origin())

	err = host.ReadLoop(ctx, func(ev bridge.Event) {
		if err := s.Deliver(ctx, ev); err != nil {
			slog.Debug("host message dropped", "session", s.ID(), "error", err)
		}
	})
	slog.Info("host disconnected", "session", s.ID(), "reason", err)
}
