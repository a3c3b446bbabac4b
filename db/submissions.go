// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/danielhkuo/hydrogen-intake/export"
	"github.com/danielhkuo/hydrogen-intake/models"
)

// SubmissionLog stores the whole submission log as one JSON array under
// export.LogKey. Every append reads the array, adds one entry and writes it
// back. The mutex orders appends within this process only; separate
// processes sharing the database can overwrite each other's appends.
type SubmissionLog struct {
	db     *sql.DB
	dbType string
	mu     sync.Mutex
}

var _ export.Sink = (*SubmissionLog)(nil)

func NewSubmissionLog(db *sql.DB, dbType string) *SubmissionLog {
	return &SubmissionLog{db: db, dbType: dbType}
}

func (l *SubmissionLog) selectQuery() string {
	if l.dbType == TypePostgres {
		return `SELECT value FROM kv_store WHERE key = $1`
	}
	return `SELECT value FROM kv_store WHERE key = ?`
}

func (l *SubmissionLog) upsertQuery() string {
	if l.dbType == TypePostgres {
		return `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	}
	return `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
}

// read returns the stored log, or an empty log if none is stored.
func (l *SubmissionLog) read(ctx context.Context) ([]models.Submission, error) {
	var raw string
	err := l.db.QueryRowContext(ctx, l.selectQuery(), export.LogKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return []models.Submission{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read submission log: %w", err)
	}

	subs := []models.Submission{}
	if err := json.Unmarshal([]byte(raw), &subs); err != nil {
		return nil, fmt.Errorf("corrupt submission log: %w", err)
	}
	return subs, nil
}

func (l *SubmissionLog) Append(ctx context.Context, snap models.FormSnapshot) (models.Submission, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	subs, err := l.read(ctx)
	if err != nil {
		return models.Submission{}, err
	}

	subs, sub := export.AppendToLog(subs, snap)

	payload, err := json.Marshal(subs)
	if err != nil {
		return models.Submission{}, fmt.Errorf("failed to encode submission log: %w", err)
	}

	_, err = l.db.ExecContext(ctx, l.upsertQuery(), export.LogKey, string(payload), time.Now().UTC())
	if err != nil {
		return models.Submission{}, fmt.Errorf("failed to write submission log: %w", err)
	}

	return sub, nil
}

func (l *SubmissionLog) List(ctx context.Context) ([]models.Submission, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.read(ctx)
}
