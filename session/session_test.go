// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"github.com/danielhkuo/hydrogen-intake/bridge"
	"github.com/danielhkuo/hydrogen-intake/db"
	"github.com/danielhkuo/hydrogen-intake/export"
	"github.com/danielhkuo/hydrogen-intake/form"
	"github.com/danielhkuo/hydrogen-intake/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type hostWindow struct {
	mu   sync.Mutex
	msgs []models.Message
}

func (w *hostWindow) PostMessage(msg models.Message, targetOrigin string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.msgs = append(w.msgs, msg)
	return nil
}

func (w *hostWindow) messages() []models.Message {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]models.Message(nil), w.msgs...)
}

func (w *hostWindow) waitFor(t *testing.T, n int) []models.Message {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if msgs := w.messages(); len(msgs) >= n {
			return msgs
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d messages, got %d", n, len(w.messages()))
	return nil
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()

	m := NewManager(export.NewMemorySink(), "")
	t.Cleanup(m.Close)
	return m
}

func mustApply(t *testing.T, s *Session, cmd form.Command) models.FormModel {
	t.Helper()

	model, _, err := s.Apply(cmd)
	if err != nil {
		t.Fatalf("Apply(%s) error = %v", cmd.Kind(), err)
	}
	return model
}

func TestManager_Lifecycle(t *testing.T) {
	m := newTestManager(t)

	s, err := m.Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if s.ID() == "" {
		t.Error("expected session id")
	}

	got, err := m.Get(s.ID())
	if err != nil || got != s {
		t.Fatalf("Get() = %v, %v", got, err)
	}
	if m.Len() != 1 {
		t.Errorf("expected 1 session, got %d", m.Len())
	}

	if err := m.Remove(s.ID()); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	select {
	case <-s.Done():
	default:
		t.Error("removed session should be closed")
	}
	if _, err := m.Get(s.ID()); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
	if err := m.Remove(s.ID()); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound on second remove, got %v", err)
	}
}

func TestManager_CloseAll(t *testing.T) {
	m := NewManager(export.NewMemorySink(), "")

	var sessions []*Session
	for i := 0; i < 3; i++ {
		s, err := m.Create()
		if err != nil {
			t.Fatal(err)
		}
		sessions = append(sessions, s)
	}

	m.Close()
	m.Close()

	if m.Len() != 0 {
		t.Errorf("expected no sessions, got %d", m.Len())
	}
	for _, s := range sessions {
		select {
		case <-s.Done():
		default:
			t.Errorf("session %s still open", s.ID())
		}
	}
}

func TestManager_InvalidPushType(t *testing.T) {
	m := NewManager(export.NewMemorySink(), "SOMETHING_ELSE")
	defer m.Close()

	if _, err := m.Create(); !errors.Is(err, bridge.ErrInvalidPushType) {
		t.Errorf("expected ErrInvalidPushType, got %v", err)
	}
}

func TestSession_InitialMirror(t *testing.T) {
	s, _ := newTestManager(t).Create()

	want, _ := json.Marshal(form.Default())
	if s.MirrorText() != string(want) {
		t.Errorf("mirror = %s, want %s", s.MirrorText(), want)
	}
	if s.Embedded() {
		t.Error("new session should not be embedded")
	}
}

func TestSession_ApplyMirrorsAndVersions(t *testing.T) {
	s, _ := newTestManager(t).Create()

	model, version, err := s.Apply(form.SetFlag{Key: form.KeyFuelCells, Value: true})
	if err != nil {
		t.Fatal(err)
	}
	if version != 1 || !model.Preferences.FuelCells {
		t.Errorf("version=%d fuelCells=%v", version, model.Preferences.FuelCells)
	}

	want, _ := json.Marshal(model)
	if s.MirrorText() != string(want) {
		t.Errorf("mirror out of date: %s", s.MirrorText())
	}

	// A failed command leaves model, version and mirror alone
	before := s.MirrorText()
	_, version, err = s.Apply(form.SetChoice{Key: form.KeyApproach, Value: "Whatever"})
	if !errors.Is(err, form.ErrInvalidEnumValue) {
		t.Fatalf("expected ErrInvalidEnumValue, got %v", err)
	}
	if version != 1 {
		t.Errorf("version bumped on failure: %d", version)
	}
	if s.MirrorText() != before {
		t.Error("mirror changed on failure")
	}
	got, _ := s.Snapshot()
	if got.Preferences.Approach != models.ApproachPrescriptive {
		t.Errorf("approach changed: %s", got.Preferences.Approach)
	}
}

func TestSession_Reset(t *testing.T) {
	s, _ := newTestManager(t).Create()

	mustApply(t, s, form.AddDevice{})
	mustApply(t, s, form.AddEquipment{})
	mustApply(t, s, form.SetChoice{Key: form.KeyUndergroundType, Value: models.UndergroundSome})

	model, version, err := s.Reset()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(form.Default(), model); diff != "" {
		t.Errorf("reset model mismatch (-want +got):\n%s", diff)
	}
	if version != 4 {
		t.Errorf("expected version 4, got %d", version)
	}
}

func TestSession_SnapshotIsCopy(t *testing.T) {
	s, _ := newTestManager(t).Create()
	mustApply(t, s, form.AddDevice{})

	snap, _ := s.Snapshot()
	snap.StorageDevices[0].Name = "changed"

	again, _ := s.Snapshot()
	if again.StorageDevices[0].Name != "Storage Device 1" {
		t.Error("snapshot shares storage with the live model")
	}
}

func TestSession_HostPushes(t *testing.T) {
	m := NewManager(export.NewMemorySink(), models.MessageFormDataUpdated)
	defer m.Close()
	s, err := m.Create()
	if err != nil {
		t.Fatal(err)
	}

	host := &hostWindow{}
	s.AttachHost(host)
	if !s.Embedded() {
		t.Fatal("expected embedded after attach")
	}
	mustApply(t, s, form.AddEquipment{})

	msgs := host.messages()
	if len(msgs) != 2 {
		t.Fatalf("expected attach push and edit push, got %d", len(msgs))
	}
	for _, msg := range msgs {
		if msg.Type != models.MessageFormDataUpdated {
			t.Errorf("unexpected push type %s", msg.Type)
		}
	}
	if last := msgs[1].Data.(models.FormModel); len(last.FuelingEquipments) != 1 {
		t.Errorf("push carried stale model: %+v", last)
	}

	s.DetachHost(host)
	mustApply(t, s, form.AddDevice{})
	if len(host.messages()) != 2 {
		t.Error("detached host still receives pushes")
	}
}

func TestSession_DeliverGetFormData(t *testing.T) {
	s, _ := newTestManager(t).Create()
	mustApply(t, s, form.AddDevice{})

	host := &hostWindow{}
	ev := bridge.Event{Data: json.RawMessage(`{"type":"GET_FORM_DATA"}`), Source: host}
	if err := s.Deliver(context.Background(), ev); err != nil {
		t.Fatal(err)
	}

	msgs := host.waitFor(t, 1)
	if msgs[0].Type != models.MessageFormDataResponse {
		t.Errorf("expected FORM_DATA_RESPONSE, got %s", msgs[0].Type)
	}
	if got := msgs[0].Data.(models.FormModel); len(got.StorageDevices) != 1 {
		t.Errorf("reply carried wrong model: %+v", got)
	}
}

func TestSession_DeliverAfterClose(t *testing.T) {
	m := newTestManager(t)
	s, _ := m.Create()
	m.Remove(s.ID())

	// Fill the inbox so the only ready case is the closed channel
	for i := 0; i < inboxSize; i++ {
		select {
		case s.inbox <- bridge.Event{}:
		default:
		}
	}
	err := s.Deliver(context.Background(), bridge.Event{Data: json.RawMessage(`{}`)})
	if !errors.Is(err, ErrSessionClosed) {
		t.Errorf("expected ErrSessionClosed, got %v", err)
	}
}

func TestSession_SubmitForwardsToHost(t *testing.T) {
	s, _ := newTestManager(t).Create()
	host := &hostWindow{}
	s.AttachHost(host)

	res, err := s.Submit(context.Background(), export.FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	if res.Submission == nil || res.Submission.ID != "submission-1" {
		t.Errorf("unexpected submission %+v", res.Submission)
	}

	msgs := host.messages()
	last := msgs[len(msgs)-1]
	if last.Type != models.MessageFormSubmission {
		t.Errorf("expected FORM_SUBMISSION, got %s", last.Type)
	}
}

func TestSession_SubmissionsThroughBridge(t *testing.T) {
	s, _ := newTestManager(t).Create()

	subs, err := s.Submissions(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(subs) != 0 {
		t.Fatalf("expected empty log, got %d", len(subs))
	}

	res, err := s.Submit(context.Background(), export.FormatCSV)
	if err != nil {
		t.Fatal(err)
	}

	subs, err = s.Submissions(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(subs) != 1 || subs[0].ID != res.Submission.ID {
		t.Errorf("expected submission %s in log, got %+v", res.Submission.ID, subs)
	}
}

func TestSession_SubmitUnknownFormat(t *testing.T) {
	s, _ := newTestManager(t).Create()

	if _, err := s.Submit(context.Background(), export.Format("xml")); err == nil {
		t.Error("expected error for unknown format")
	}
}

// Defaults, one flag, one dispenser, two storage devices, then submit.
func TestSession_IntakeScenario(t *testing.T) {
	conn, err := db.Open(db.TypeSQLite, ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	if err := db.CreateSchema(conn); err != nil {
		t.Fatal(err)
	}

	sink := db.NewSubmissionLog(conn, db.TypeSQLite)
	m := NewManager(sink, "")
	defer m.Close()
	ctx := context.Background()

	// An earlier submission from another session
	other, _ := m.Create()
	if _, err := other.Submit(ctx, export.FormatCSV); err != nil {
		t.Fatal(err)
	}

	before, err := m.Submissions(ctx)
	if err != nil {
		t.Fatal(err)
	}

	s, _ := m.Create()
	mustApply(t, s, form.SetFlag{Key: form.KeyFuelingCapacity, Value: true})
	mustApply(t, s, form.AddEquipment{})
	mustApply(t, s, form.AddDevice{})
	mustApply(t, s, form.AddDevice{})

	res, err := s.Submit(ctx, export.FormatCSV)
	if err != nil {
		t.Fatal(err)
	}
	if res.PersistErr != nil {
		t.Fatalf("persist error: %v", res.PersistErr)
	}

	after, err := m.Submissions(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(after) != len(before)+1 {
		t.Fatalf("log grew from %d to %d", len(before), len(after))
	}

	entry := after[len(after)-1]
	if entry.ID != "submission-2" {
		t.Errorf("expected submission-2, got %s", entry.ID)
	}
	if !entry.Preferences.FuelingCapacity {
		t.Error("fuelingCapacity lost")
	}
	names := []string{}
	for _, d := range entry.StorageDevices {
		names = append(names, d.Name)
	}
	if diff := cmp.Diff([]string{"Storage Device 1", "Storage Device 2"}, names); diff != "" {
		t.Errorf("device names mismatch (-want +got):\n%s", diff)
	}
	if len(entry.FuelingEquipments) != 1 {
		t.Errorf("expected 1 fueling equipment, got %d", len(entry.FuelingEquipments))
	}
}
