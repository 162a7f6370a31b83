package profctl

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDatabase struct {
	loadResult *LoadResult
	chunks     [][]rawEntry
	openErr    error

	// readSliceHook, if set, is invoked with a 0-based call index before
	// ReadSlice returns its chunks, letting a test stall an early call
	// behind a later one to prove ordering guarantees.
	readSliceHook func(callIndex int)
	readSliceCalls int32
}

func (f *fakeDatabase) Open(ctx context.Context, path string, progress ProgressCallback) (*LoadResult, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	progress(ProgressStatus{Stage: "parsing", Completed: 1, Total: 1})
	return f.loadResult, nil
}

func (f *fakeDatabase) Close() error { return nil }

func (f *fakeDatabase) ReadSlice(ctx context.Context, req SliceRequest, onChunk func([]rawEntry, bool)) error {
	idx := int(atomic.AddInt32(&f.readSliceCalls, 1)) - 1
	if f.readSliceHook != nil {
		f.readSliceHook(idx)
	}
	for i, c := range f.chunks {
		onChunk(c, i == len(f.chunks)-1)
	}
	return nil
}

func (f *fakeDatabase) ReadEventProperty(ctx context.Context, id EventID) ([]*ExtData, error) {
	return nil, nil
}

func (f *fakeDatabase) ExecuteQuery(ctx context.Context, req QueryRequest, progress ProgressCallback) (*Array, error) {
	a := NewArray()
	a.Append(NewUint64Cell(42))
	return a, nil
}

func (f *fakeDatabase) ExecuteComputeQuery(ctx context.Context, req QueryRequest, progress ProgressCallback) (*Array, error) {
	return NewArray(), nil
}

func (f *fakeDatabase) TrimSave(ctx context.Context, path string, startTS, endTS int64, progress ProgressCallback) error {
	return nil
}

func (f *fakeDatabase) ExportCSV(ctx context.Context, path string, req QueryRequest, progress ProgressCallback) error {
	return nil
}

func (f *fakeDatabase) InterruptQuery(futureID uint64) error { return nil }

func newTestLoadResult() *LoadResult {
	tl := NewTimeline()
	track := NewTrack(1, TrackTypeSamples)
	tl.AddTrack(track)
	return &LoadResult{
		Timeline:    tl,
		Topology:    NewTopology(0, 0),
		StringTable: NewStringTable(),
	}
}

// loadedTestFixture wires a Controller to a fakeDatabase and blocks until
// LoadAsync completes, the shared setup every test below needs before it
// can exercise graph/table fetches.
type loadedTestFixture struct {
	db *fakeDatabase
	c  *Controller
}

func setupLoadedController(t *testing.T, chunks [][]rawEntry) loadedTestFixture {
	t.Helper()

	db := &fakeDatabase{loadResult: newTestLoadResult(), chunks: chunks}
	c := NewController(db, Options{})

	code := c.LoadAsync(context.Background(), "trace.bin").Wait(time.Second)
	require.Equal(t, Success, code, "fixture LoadAsync must succeed")

	return loadedTestFixture{db: db, c: c}
}

func TestControllerLoadAsync(t *testing.T) {
	f := setupLoadedController(t, nil)
	assert.Equal(t, 1, f.c.Timeline().NumTracks())
}

func TestControllerGraphFetchAsyncDedups(t *testing.T) {
	f := setupLoadedController(t, [][]rawEntry{{{isSample: true, sampleTS: 0, sampleValue: 1}}})

	out1 := NewArray()
	g1, f1 := f.c.GraphFetchAsync(context.Background(), 1, 0, 100, 10, out1)
	require.NotNil(t, g1, "expected non-nil graph")

	out2 := NewArray()
	g2, f2 := f.c.GraphFetchAsync(context.Background(), 1, 0, 100, 10, out2)
	assert.Same(t, g1, g2, "overlapping request should join the in-flight graph")
	assert.Same(t, f1, f2, "overlapping request should join the in-flight future")

	code := f1.Wait(time.Second)
	require.Equal(t, Success, code)
	assert.Equal(t, 1, out1.Len())
}

func TestControllerGraphFetchAsyncUnknownTrack(t *testing.T) {
	f := setupLoadedController(t, nil)

	_, fut := f.c.GraphFetchAsync(context.Background(), 999, 0, 100, 10, nil)
	code := fut.Wait(time.Second)
	assert.Equal(t, InvalidArgument, code, "err=%v", fut.Err())
}

func TestControllerRecentFetchKeys(t *testing.T) {
	f := setupLoadedController(t, [][]rawEntry{{{isSample: true, sampleTS: 0, sampleValue: 1}}})

	_, fut := f.c.GraphFetchAsync(context.Background(), 1, 0, 100, 10, nil)
	fut.Wait(time.Second)

	keys := f.c.RecentFetchKeys()
	require.Len(t, keys, 1)
	assert.Zero(t, f.c.DroppedFetchLogEntries(), "history has not wrapped yet")
}

func TestControllerRecentTrackFetchKeys(t *testing.T) {
	f := setupLoadedController(t, [][]rawEntry{{{isSample: true, sampleTS: 0, sampleValue: 1}}})

	_, fut1 := f.c.GraphFetchAsync(context.Background(), 1, 0, 100, 10, nil)
	fut1.Wait(time.Second)
	_, fut2 := f.c.GraphFetchAsync(context.Background(), 1, 0, 200, 10, nil)
	fut2.Wait(time.Second)

	keys := f.c.RecentTrackFetchKeys(1)
	require.Len(t, keys, 2)
	assert.Empty(t, f.c.RecentTrackFetchKeys(999), "untouched track should have no history")

	f.c.SetTrackFetchHistoryDepth(1)
	assert.Len(t, f.c.RecentTrackFetchKeys(1), 1, "shrinking depth should drop the oldest entry")
}

func TestControllerGraphFetchAsyncSameTrackCompletesInSubmissionOrder(t *testing.T) {
	db := &fakeDatabase{loadResult: newTestLoadResult(), chunks: [][]rawEntry{
		{{isSample: true, sampleTS: 0, sampleValue: 1}},
	}}
	c := NewController(db, Options{})
	require.Equal(t, Success, c.LoadAsync(context.Background(), "trace.bin").Wait(time.Second))

	release := make(chan struct{})
	db.readSliceHook = func(callIndex int) {
		if callIndex == 0 {
			<-release // stall the first-submitted fetch's worker
		}
	}

	var mu sync.Mutex
	var order []int

	// Submit two distinct (different maxTS, so the dedup join can't merge
	// them) fetches against the same track, first then second, in order.
	_, fut1 := c.GraphFetchAsync(context.Background(), 1, 0, 100, 10, nil)
	_, fut2 := c.GraphFetchAsync(context.Background(), 1, 0, 200, 10, nil)

	go func() {
		fut1.Wait(time.Second)
		mu.Lock()
		order = append(order, 1)
		mu.Unlock()
	}()
	go func() {
		fut2.Wait(time.Second)
		mu.Lock()
		order = append(order, 2)
		mu.Unlock()
	}()

	// Give fut2 every chance to finish first if ordering weren't enforced:
	// its ReadSlice isn't stalled, so it would race ahead of fut1 without
	// the track's ticket lock holding it back.
	time.Sleep(50 * time.Millisecond)
	mu.Lock()
	stillEmpty := len(order) == 0
	mu.Unlock()
	assert.True(t, stillEmpty, "second fetch must not complete before the first is released")

	close(release)
	require.Equal(t, Success, fut1.Wait(time.Second))
	require.Equal(t, Success, fut2.Wait(time.Second))

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []int{1, 2}, order, "fetches against the same track must complete in submission order")
}

func TestControllerClose(t *testing.T) {
	f := setupLoadedController(t, nil)
	require.NoError(t, f.c.Close())
	require.NoError(t, f.c.Close(), "second Close should be a no-op")
}
