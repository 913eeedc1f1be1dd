package recent

import "time"

// SetTimeNow swaps the tracker clock for tests and returns a restore func.
// This file only compiles during `go test`.
func SetTimeNow(f func() time.Time) (restore func()) {
	prev := timeNow
	timeNow = f
	return func() { timeNow = prev }
}

// InstantKey exposes the key format for test assertions.
func InstantKey(t time.Time) string { return instantKey(t) }
