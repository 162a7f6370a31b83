// Package humanize formats durations, byte counts, and throughput for the
// Controller's diagnostic log lines -- trace loads and graph fetches are
// long enough, and memory usage and entry counts big enough, that raw
// nanoseconds/bytes/counts are unreadable at a glance.
package humanize

import (
	"fmt"
	"strings"
	"time"
)

// durationStep pairs a magnitude threshold with the precision duration
// values at or above it should truncate to.
type durationStep struct {
	atLeast   time.Duration
	precision time.Duration
}

var durationSteps = []durationStep{
	{10 * 24 * time.Hour, 24 * time.Hour},
	{24 * time.Hour, time.Hour},
	{time.Hour, time.Minute},
	{time.Minute, time.Second},
	{time.Second, 100 * time.Millisecond},
	{10 * time.Millisecond, 1000 * time.Microsecond},
	{1 * time.Millisecond, 100 * time.Microsecond},
	{1 * time.Microsecond, 1 * time.Microsecond},
}

// TruncateDuration truncates d to a precision appropriate for its
// magnitude, so a log line doesn't print nanosecond jitter on a
// multi-second trace load.
func TruncateDuration(d time.Duration) time.Duration {
	for _, step := range durationSteps {
		if d >= step.atLeast {
			return d.Truncate(step.precision)
		}
	}
	return d
}

// Duration truncates d and renders it, e.g. "1h30m" instead of
// "1h30m00.001s".
func Duration(d time.Duration) string {
	dd := TruncateDuration(d)
	ds := dd.String()

	if dd >= time.Hour && strings.HasSuffix(ds, "0s") {
		ds = strings.TrimSuffix(ds, "0s")
	}

	return ds
}

// byteUnit pairs a byte-count ceiling with the divisor and format used
// below it.
type byteUnit struct {
	below  float64
	divide float64
	format string
}

const kib = 1024.0
const mib = 1024.0 * kib

var byteUnits = []byteUnit{
	{kib, 1, "%0.1fB"},
	{100 * kib, kib, "%.1fKB"},
	{mib, kib, "%.0fKB"},
	{100 * mib, mib, "%.1fMB"},
}

// Bytes renders n, assumed to be bytes, using KB for 1024 bytes and MB for
// 1048576; used to log Controller/Timeline memory-usage estimates without a
// wall of digits.
func Bytes[T interface {
	~int | ~uint | ~int64 | ~uint64
}](n T) string {
	fn := float64(n)
	for _, u := range byteUnits {
		if fn < u.below {
			return fmt.Sprintf(u.format, fn/u.divide)
		}
	}
	return fmt.Sprintf("%.0fMB", fn/mib)
}

// Rate formats n occurrences observed over elapsed as a human-friendly
// per-second throughput, e.g. "12.3K/s" -- used to log how fast a graph
// fetch coalesced raw entries into its result array.
func Rate(n int, elapsed time.Duration) string {
	if elapsed <= 0 {
		return "n/a"
	}

	perSec := float64(n) / elapsed.Seconds()
	switch {
	case perSec >= 1_000_000:
		return fmt.Sprintf("%.1fM/s", perSec/1_000_000)
	case perSec >= 1_000:
		return fmt.Sprintf("%.1fK/s", perSec/1_000)
	default:
		return fmt.Sprintf("%.0f/s", perSec)
	}
}
