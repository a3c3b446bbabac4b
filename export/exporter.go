// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/hydrogen-intake/models"
)

var ErrPersistenceFailure = errors.New("submission log update failed")

// Forwarder passes a finished snapshot on to the host window.
type Forwarder interface {
	ForwardSubmission(snapshot models.FormSnapshot)
}

// Result describes one submit.
type Result struct {
	Snapshot models.FormSnapshot
	Download Download
	// Submission is nil when the log could not be updated; PersistErr then
	// holds the wrapped cause.
	Submission *models.Submission
	PersistErr error
}

type Exporter struct {
	sink Sink
	now  func() time.Time
}

func NewExporter(sink Sink) *Exporter {
	return &Exporter{sink: sink, now: time.Now}
}

// Submit captures model, serializes it in the requested format, appends
// the snapshot to the submission log and forwards it to the host. A log
// failure is recorded in the result; the download and forwarding still
// happen.
func (e *Exporter) Submit(ctx context.Context, model models.FormModel, format Format, fwd Forwarder) (Result, error) {
	snap := Capture(model, e.now())

	var body []byte
	switch format {
	case FormatCSV:
		body = []byte(EncodeCSV(snap))
	case FormatJSON:
		encoded, err := EncodeJSON(snap)
		if err != nil {
			return Result{}, fmt.Errorf("failed to encode submission: %w", err)
		}
		body = encoded
	default:
		return Result{}, fmt.Errorf("unsupported export format %q", format)
	}

	res := Result{
		Snapshot: snap,
		Download: Download{
			Filename:    Filename(snap.Timestamp, format),
			ContentType: format.ContentType(),
			Body:        body,
		},
	}

	sub, err := e.sink.Append(ctx, snap)
	if err != nil {
		res.PersistErr = fmt.Errorf("%w: %w", ErrPersistenceFailure, err)
		slog.Error("failed to store submission", "error", res.PersistErr)
	} else {
		res.Submission = &sub
		slog.Info("submission stored", "id", sub.ID)
	}

	if fwd != nil {
		fwd.ForwardSubmission(snap)
	}

	slog.Info("submission exported",
		"format", string(format),
		"file", res.Download.Filename,
		"size", humanize.Bytes(uint64(len(body))),
	)
	return res, nil
}

// Submissions returns the whole submission log.
func (e *Exporter) Submissions(ctx context.Context) ([]models.Submission, error) {
	subs, err := e.sink.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistenceFailure, err)
	}
	return subs, nil
}
