// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package export

import (
	"fmt"
	"strings"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat accepts "csv" or "json", case-insensitively. Empty means csv.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

func (f Format) ContentType() string {
	if f == FormatJSON {
		return "application/json;charset=utf-8"
	}
	return "text/csv;charset=utf-8"
}

// Download is a file ready to hand to the client.
type Download struct {
	Filename    string
	ContentType string
	Body        []byte
}

// Filename builds "hydrogen-form-submission-<timestamp>.<ext>" from an
// ISO-8601 timestamp, keeping the first 19 characters and replacing colons
// with hyphens.
func Filename(timestamp string, f Format) string {
	ts := timestamp
	if len(ts) > 19 {
		ts = ts[:19]
	}
	return "hydrogen-form-submission-" + strings.ReplaceAll(ts, ":", "-") + "." + string(f)
}
