package starlog

import "time"

// SetTimeNow swaps the service clock for tests and returns a restore func.
// This file only compiles during `go test`.
func SetTimeNow(f func() time.Time) (restore func()) {
	prev := timeNow
	timeNow = f
	return func() { timeNow = prev }
}
