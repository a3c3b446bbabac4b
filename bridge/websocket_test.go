// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/danielhkuo/hydrogen-intake/models"
)

// startHostServer serves one bridge over WebSocket. The returned channel
// closes when the server side read loop ends.
func startHostServer(t *testing.T, b *Bridge) (*httptest.Server, <-chan struct{}) {
	t.Helper()

	done := make(chan struct{})
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer close(done)

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		host := NewWSWindow(conn, r.Header.Get("Origin"))
		defer host.Close()

		b.SetParent(host)
		defer b.ClearParent(host)

		b.Mirror(sampleModel())
		host.ReadLoop(r.Context(), func(ev Event) { b.HandleMessage(ev) })
	}))
	return srv, done
}

func dialHost(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	header := http.Header{"Origin": {"https://host.example"}}
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) models.Message {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var raw struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	if err := conn.ReadJSON(&raw); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	var model models.FormModel
	if err := json.Unmarshal(raw.Data, &model); err != nil {
		t.Fatalf("data is not a form model: %v", err)
	}
	return models.Message{Type: raw.Type, Data: model}
}

func TestWSWindow_PushAndPull(t *testing.T) {
	b, _ := newTestBridge(t, "")
	srv, done := startHostServer(t, b)
	defer srv.Close()

	conn := dialHost(t, srv)

	// Push sent on attach
	pushed := readMessage(t, conn)
	if pushed.Type != models.MessageFormDataResponse {
		t.Errorf("expected push of type %s, got %s", models.MessageFormDataResponse, pushed.Type)
	}

	// Non-JSON frames and unrelated messages get no answer
	conn.WriteMessage(websocket.TextMessage, []byte("hello"))
	conn.WriteJSON(map[string]string{"type": "PING"})

	// Pull
	if err := conn.WriteJSON(map[string]string{"type": models.MessageGetFormData}); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	reply := readMessage(t, conn)
	if reply.Type != models.MessageFormDataResponse {
		t.Errorf("expected %s, got %s", models.MessageFormDataResponse, reply.Type)
	}
	got := reply.Data.(models.FormModel)
	if len(got.StorageDevices) != 1 || got.StorageDevices[0].ID != "sd-1" {
		t.Errorf("unexpected reply data: %+v", got)
	}

	conn.Close()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("server read loop did not stop")
	}
	if b.Embedded() {
		t.Error("bridge still embedded after host disconnected")
	}
}

func TestWSWindow_OriginCheck(t *testing.T) {
	w := &WSWindow{origin: "https://host.example"}

	err := w.PostMessage(models.Message{Type: models.MessageFormDataResponse}, "https://evil.example")
	if !errors.Is(err, ErrOriginMismatch) {
		t.Errorf("expected ErrOriginMismatch, got %v", err)
	}
}

func TestWSWindow_ReadLoopStopsOnContext(t *testing.T) {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	loopErr := make(chan error, 1)
	ctx, cancel := context.WithCancel(context.Background())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			loopErr <- err
			return
		}
		host := NewWSWindow(conn, "")
		loopErr <- host.ReadLoop(ctx, func(Event) {})
	}))
	defer srv.Close()

	conn := dialHost(t, srv)
	defer conn.Close()

	cancel()

	select {
	case err := <-loopErr:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("read loop ignored cancellation")
	}
}
