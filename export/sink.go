// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package export

import (
	"context"
	"strconv"
	"sync"

	"github.com/danielhkuo/hydrogen-intake/models"
)

// LogKey is the fixed key the submission log is stored under.
const LogKey = "hydrogenFormSubmissions"

// Sink persists the submission log.
type Sink interface {
	// Append adds snap to the log and returns it with its assigned id.
	Append(ctx context.Context, snap models.FormSnapshot) (models.Submission, error)
	// List returns every stored submission, oldest first.
	List(ctx context.Context) ([]models.Submission, error)
}

// AppendToLog tags snap with the next sequential id and appends it.
func AppendToLog(log []models.Submission, snap models.FormSnapshot) ([]models.Submission, models.Submission) {
	sub := models.Submission{
		FormSnapshot: snap,
		ID:           "submission-" + strconv.Itoa(len(log)+1),
	}
	return append(log, sub), sub
}

// MemorySink keeps the log in process memory.
type MemorySink struct {
	mu  sync.Mutex
	log []models.Submission
}

func NewMemorySink() *MemorySink {
	return &MemorySink{log: []models.Submission{}}
}

func (s *MemorySink) Append(ctx context.Context, snap models.FormSnapshot) (models.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sub models.Submission
	s.log, sub = AppendToLog(s.log, snap)
	return sub, nil
}

func (s *MemorySink) List(ctx context.Context) ([]models.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]models.Submission{}, s.log...), nil
}
