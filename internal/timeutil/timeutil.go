// Package timeutil provides millisecond-timestamp helpers. The exchange
// speaks in UNIX milliseconds everywhere: request timestamps for signing,
// server time, and kline open/close times.
package timeutil

import "time"

// NowMs returns the current time as UNIX milliseconds.
func NowMs() int64 {
	return time.Now().UnixMilli()
}

// ToMs converts a time to UNIX milliseconds.
func ToMs(t time.Time) int64 {
	return t.UnixMilli()
}

// FromMs converts UNIX milliseconds to a time.
func FromMs(ms int64) time.Time {
	return time.UnixMilli(ms)
}
