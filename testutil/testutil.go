// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/hydrogen-intake/cliparse"
	"github.com/danielhkuo/hydrogen-intake/db"
	"github.com/danielhkuo/hydrogen-intake/models"
	"github.com/danielhkuo/hydrogen-intake/session"
)

// TestDBURL is an in-memory SQLite database
const TestDBURL = ":memory:"

// SetupTestDB creates a fresh test database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		DatabaseURL:   TestDBURL,
		DatabaseType:  db.TypeSQLite,
		Sink:          cliparse.SinkDB,
		PushType:      models.MessageFormDataResponse,
		AllowedOrigin: "*",
	}
}

// NewTestManager returns a session manager logging submissions to conn.
// Sessions are closed when the test ends.
func NewTestManager(t *testing.T, conn *sql.DB, cfg cliparse.Config) *session.Manager {
	t.Helper()

	m := session.NewManager(db.NewSubmissionLog(conn, cfg.DatabaseType), cfg.PushType)
	t.Cleanup(m.Close)
	return m
}

// CreateTestSession starts a session and returns it
func CreateTestSession(t *testing.T, m *session.Manager) *session.Session {
	t.Helper()

	s, err := m.Create()
	if err != nil {
		t.Fatalf("Failed to create test session: %v", err)
	}
	return s
}

// Command builds a command envelope from a type and payload
func Command(kind string, payload interface{}) models.CommandEnvelope {
	env := models.CommandEnvelope{Type: kind}
	if payload != nil {
		env.Payload, _ = json.Marshal(payload)
	}
	return env
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
