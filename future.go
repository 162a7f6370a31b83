package profctl

import (
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// FutureState is the lifecycle of a Future: Init -> Loading -> {Ready, Error,
// Cancelled}. Once a Future reaches a terminal state it never changes again.
type FutureState int

const (
	FutureInit FutureState = iota
	FutureLoading
	FutureReady
	FutureError
	FutureCancelled
)

func (s FutureState) String() string {
	switch s {
	case FutureInit:
		return "Init"
	case FutureLoading:
		return "Loading"
	case FutureReady:
		return "Ready"
	case FutureError:
		return "Error"
	case FutureCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

func (s FutureState) terminal() bool {
	return s == FutureReady || s == FutureError || s == FutureCancelled
}

// ProgressFunc is invoked whenever a Future's progress or status changes,
// and at least once on terminal state, mirroring the Database port's
// progress callback shape (§6).
type ProgressFunc func(f *Future, percent int, status FutureState, message string)

// scratchKey names the small typed scratch slots a worker may stash into a
// Future for the caller to read back after completion (§4.5).
type scratchKey int

const (
	ScratchSampleValue scratchKey = iota
	ScratchEventID
	ScratchAsyncQuery
)

// Future is a one-shot handle to a background operation, with progress,
// cooperative cancellation, and optional child futures.
type Future struct {
	unhandledAccessors

	id string

	mtx       sync.Mutex
	state     FutureState
	percent   int
	err       error
	onProgress []ProgressFunc
	interrupt  bool
	children   []*Future
	scratch    map[scratchKey]any
	database   queryInterrupter // weak back-pointer for cancel() -> interrupt_query
	connHandle uint64

	done chan struct{}
}

// queryInterrupter is the sliver of the Database port a Future needs in
// order to forward cancellation into an in-flight query (§4.5, §5).
type queryInterrupter interface {
	InterruptQuery(connHandle uint64)
}

// NewFuture returns a fresh Future in the Init state.
func NewFuture() *Future {
	return &Future{
		id:      ulid.Make().String(),
		state:   FutureInit,
		scratch: map[scratchKey]any{},
		done:    make(chan struct{}),
	}
}

// ID returns the Future's unique identifier, a ULID generated at
// construction.
func (f *Future) ID() string { return f.id }

// BindDatabase attaches the Database port and connection handle this Future
// should forward interrupt_query to on cancellation, if the worker is
// currently executing a query.
func (f *Future) BindDatabase(db queryInterrupter, connHandle uint64) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	f.database = db
	f.connHandle = connHandle
}

// OnProgress registers a callback invoked on every progress/status change.
// Per §4.5, progress is monotonically non-decreasing until completion.
func (f *Future) OnProgress(fn ProgressFunc) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	f.onProgress = append(f.onProgress, fn)
}

// AdoptChild makes child a sub-future of f: Wait on f composes over every
// child, and destroying (or cancelling) f cancels every child recursively.
func (f *Future) AdoptChild(child *Future) {
	f.mtx.Lock()
	f.children = append(f.children, child)
	f.mtx.Unlock()
}

// SetScratch stashes a small piece of worker state visible to the caller
// after completion.
func (f *Future) SetScratch(key scratchKey, v any) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	f.scratch[key] = v
}

// Scratch retrieves a previously stashed value.
func (f *Future) Scratch(key scratchKey) (any, bool) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	v, ok := f.scratch[key]
	return v, ok
}

// SetProgress advances percent (0..100) and notifies subscribers. It is a
// no-op once the Future has reached a terminal state.
func (f *Future) SetProgress(percent int) {
	f.mtx.Lock()
	if f.state.terminal() {
		f.mtx.Unlock()
		return
	}
	if percent < f.percent {
		percent = f.percent // monotonically non-decreasing
	}
	if percent > 100 {
		percent = 100
	}
	f.percent = percent
	if f.state == FutureInit {
		f.state = FutureLoading
	}
	f.notifyLocked()
	f.mtx.Unlock()
}

// SetPromise completes the Future exactly once. Subsequent calls are no-ops,
// per §4.5's exactly-once completion guarantee.
func (f *Future) SetPromise(err error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	if f.state.terminal() {
		return
	}

	switch {
	case f.interrupt:
		f.state = FutureCancelled
		f.err = Wrap(Cancelled, "interrupted")
	case err != nil:
		f.state = FutureError
		f.err = err
	default:
		f.state = FutureReady
		f.percent = 100
	}

	f.notifyLocked()
	close(f.done)
}

func (f *Future) notifyLocked() {
	for _, fn := range f.onProgress {
		fn(f, f.percent, f.state, f.message())
	}
}

func (f *Future) message() string {
	if f.err != nil {
		return f.err.Error()
	}
	return ""
}

// State returns the Future's current lifecycle state.
func (f *Future) State() FutureState {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	return f.state
}

// Progress returns the current percent complete, 0..100.
func (f *Future) Progress() int {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	return f.percent
}

// Err returns the terminal error, if any.
func (f *Future) Err() error {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	return f.err
}

// Wait blocks until the Future (and all of its children) reach a terminal
// state, or timeout elapses. A zero or negative timeout blocks forever.
func (f *Future) Wait(timeout time.Duration) Code {
	var timeoutC <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		timeoutC = timer.C
	}

	select {
	case <-f.done:
	case <-timeoutC:
		return Timeout
	}

	for _, child := range f.snapshotChildren() {
		if code := child.Wait(timeout); code == Timeout {
			return Timeout
		}
	}

	return f.terminalCode()
}

func (f *Future) snapshotChildren() []*Future {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	out := make([]*Future, len(f.children))
	copy(out, f.children)
	return out
}

func (f *Future) terminalCode() Code {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	switch f.state {
	case FutureReady:
		return Success
	case FutureCancelled:
		return Cancelled
	case FutureError:
		return CodeOf(f.err)
	default:
		return Pending
	}
}

// Cancel sets the Future's interrupt flag. The owning worker must poll
// Interrupted and exit promptly; if a database query is in flight, Cancel
// also forwards interrupt_query. Every child is cancelled recursively.
func (f *Future) Cancel() {
	f.mtx.Lock()
	f.interrupt = true
	db, conn := f.database, f.connHandle
	children := append([]*Future(nil), f.children...)
	f.mtx.Unlock()

	if db != nil {
		db.InterruptQuery(conn)
	}
	for _, child := range children {
		child.Cancel()
	}
}

// Interrupted reports whether Cancel has been called. Workers should poll
// this periodically during long-running loops.
func (f *Future) Interrupted() bool {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	return f.interrupt
}

// Close releases the Future. If it is still loading, Close first sets the
// interrupt flag, then waits for the worker to observe it and finish.
func (f *Future) Close() {
	f.Cancel()
	if !f.State().terminal() {
		f.Wait(0)
	}
}

func (f *Future) ObjectKind() Kind             { return KindFuture }
func (f *Future) PropertyRange() PropertyRange { return RangeFuture }

const (
	PropFutureState PropertyID = RangeFuture.First + iota
	PropFutureProgress
)

func (f *Future) GetUint64(id PropertyID, index int) (uint64, Code) {
	if v, code, ok := universalUint64(f, id); ok {
		return v, code
	}
	if code := checkRange(f.PropertyRange(), id); code != Success {
		return 0, code
	}
	switch id {
	case PropFutureState:
		return uint64(f.State()), Success
	case PropFutureProgress:
		return uint64(f.Progress()), Success
	default:
		return 0, InvalidEnum
	}
}

func (f *Future) MemoryUsageInclusive() uint64 { return f.MemoryUsageExclusive() }
func (f *Future) MemoryUsageExclusive() uint64 { return 128 }
