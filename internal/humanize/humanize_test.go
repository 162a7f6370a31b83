package humanize

import (
	"testing"
	"time"
)

func TestDuration(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{1500 * time.Microsecond, "1.5ms"},
		{2*time.Second + 345*time.Millisecond, "2.3s"},
		{90 * time.Minute, "1h30m"},
	}
	for _, c := range cases {
		if got := Duration(c.in); got != c.want {
			t.Errorf("Duration(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestBytes(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{512, "512.0B"},
		{2048, "2.0KB"},
		{5 * 1024 * 1024, "5.0MB"},
	}
	for _, c := range cases {
		if got := Bytes(c.in); got != c.want {
			t.Errorf("Bytes(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestRate(t *testing.T) {
	cases := []struct {
		n       int
		elapsed time.Duration
		want    string
	}{
		{0, 0, "n/a"},
		{500, time.Second, "500/s"},
		{5000, time.Second, "5.0K/s"},
		{2_000_000, time.Second, "2.0M/s"},
	}
	for _, c := range cases {
		if got := Rate(c.n, c.elapsed); got != c.want {
			t.Errorf("Rate(%d, %v) = %q, want %q", c.n, c.elapsed, got, c.want)
		}
	}
}
