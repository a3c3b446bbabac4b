// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ids generates identifiers for form items and sessions.

# Item IDs

Storage devices and fueling equipment get ids from a Sequence:

	id := ids.Default.Next(ids.PrefixStorageDevice) // "sd-2lkCB1-1"

An id is the prefix, the creation time in milliseconds, and a process-wide
counter, each base62 encoded. The counter is atomic, so calls made in the
same millisecond, or from different goroutines, never collide.

# Session IDs

Form sessions use random UUIDs:

	sessionID := ids.NewSessionID()
*/
package ids
