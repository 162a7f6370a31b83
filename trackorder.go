package profctl

import "sync"

// trackTicketLock is the ordered mutex of §5, one per track (see
// trackOrder): two fetches against the same Track complete in the order they were
// submitted, even when their windows differ and would otherwise race as
// independent goroutines. Callers draw a ticket synchronously, in
// submission order, then block on their turn from inside the async worker.
type trackTicketLock struct {
	mu      sync.Mutex
	cond    *sync.Cond
	next    uint64
	serving uint64
}

func newTrackTicketLock() *trackTicketLock {
	l := &trackTicketLock{}
	l.cond = sync.NewCond(&l.mu)
	return l
}

// Draw reserves the next ticket. Must be called from the submitting
// goroutine before any concurrent fetch against the same track can draw a
// later ticket, so submission order is fixed at call time rather than at
// whatever point the fetch's worker goroutine happens to run.
func (l *trackTicketLock) Draw() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	t := l.next
	l.next++
	return t
}

// Await blocks until every ticket before t has called Release.
func (l *trackTicketLock) Await(t uint64) {
	l.mu.Lock()
	for l.serving != t {
		l.cond.Wait()
	}
	l.mu.Unlock()
}

// Release admits the next ticket in line.
func (l *trackTicketLock) Release() {
	l.mu.Lock()
	l.serving++
	l.cond.Broadcast()
	l.mu.Unlock()
}

// trackOrder hands out one trackTicketLock per track id, created lazily and
// kept for the Controller's lifetime.
type trackOrder struct {
	mtx   sync.Mutex
	locks map[uint64]*trackTicketLock
}

func newTrackOrder() *trackOrder {
	return &trackOrder{locks: map[uint64]*trackTicketLock{}}
}

func (o *trackOrder) forTrack(trackID uint64) *trackTicketLock {
	o.mtx.Lock()
	defer o.mtx.Unlock()
	l, ok := o.locks[trackID]
	if !ok {
		l = newTrackTicketLock()
		o.locks[trackID] = l
	}
	return l
}
