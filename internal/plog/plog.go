// Package plog provides the Controller's diagnostic logging sink. Per the
// lifetime discipline described for the rest of this module, almost nothing
// here is global state -- the one exception is this package-level logger,
// which every Controller writes to by default. Callers that want isolated
// logging per Controller can override it with SetLogger.
package plog

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mtx    sync.RWMutex
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
)

// SetLogger replaces the process-wide sink. Intended to be called once,
// during process startup, by the host application.
func SetLogger(l zerolog.Logger) {
	mtx.Lock()
	defer mtx.Unlock()
	logger = l
}

// Get returns the current sink.
func Get() zerolog.Logger {
	mtx.RLock()
	defer mtx.RUnlock()
	return logger
}

// Fatalf logs ctx at Panic level and aborts the process. Per spec, invariant
// violations inside the Controller are fatal: they imply a programming
// error, not a recoverable runtime condition.
func Fatalf(format string, args ...any) {
	Get().Panic().Msgf(format, args...)
}
