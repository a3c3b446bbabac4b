// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ids

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Item id prefixes
const (
	PrefixStorageDevice    = "sd"
	PrefixFuelingEquipment = "fe"
)

// Generator hands out item ids.
type Generator interface {
	Next(prefix string) string
}

// Sequence creates ids from a creation timestamp and a process-wide
// counter. The counter alone guarantees uniqueness within the process; the
// timestamp keeps ids from different runs apart.
type Sequence struct {
	counter atomic.Uint64
	now     func() time.Time
}

func NewSequence() *Sequence {
	return &Sequence{now: time.Now}
}

// Next returns a new id such as "sd-2lkCB1-1". Ids are never reused.
func (s *Sequence) Next(prefix string) string {
	n := s.counter.Add(1)
	ts := uint64(s.now().UnixMilli())
	return prefix + "-" + base62Encode(ts) + "-" + base62Encode(n)
}

// Default is the process-wide sequence.
var Default = NewSequence()

// NewSessionID returns a random session identifier.
func NewSessionID() string {
	return uuid.NewString()
}

// base62Encode converts a number to base62 (0-9, a-z, A-Z)
func base62Encode(num uint64) string {
	const base62Chars = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

	if num == 0 {
		return "0"
	}

	result := make([]byte, 0, 11) // max length for uint64
	for num > 0 {
		result = append(result, base62Chars[num%62])
		num /= 62
	}

	// Reverse the string
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}

	return string(result)
}
