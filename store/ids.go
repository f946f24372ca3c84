// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// ID scheme names accepted by NewIDGenerator
const (
	SchemeCounter = "counter"
	SchemeUUID    = "uuid"
)

// IDGenerator returns a new poll ID on every call
type IDGenerator func() string

// CounterIDs returns a generator of increasing decimal IDs starting at 1
func CounterIDs() IDGenerator {
	var n atomic.Uint64
	return func() string {
		return strconv.FormatUint(n.Add(1), 10)
	}
}

// UUIDIDs returns a generator of random UUIDs
func UUIDIDs() IDGenerator {
	return uuid.NewString
}

// NewIDGenerator picks a generator by scheme name
func NewIDGenerator(scheme string) (IDGenerator, error) {
	switch scheme {
	case "", SchemeCounter:
		return CounterIDs(), nil
	case SchemeUUID:
		return UUIDIDs(), nil
	}
	return nil, fmt.Errorf("unknown poll ID scheme %q", scheme)
}
