package profctl

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/run"

	"github.com/proftrace/profctl/internal/humanize"
	"github.com/proftrace/profctl/internal/plog"
	"github.com/proftrace/profctl/internal/ringbuf"
)

// recentFetchLogSize bounds how many completed fetch keys Controller keeps
// for diagnostics; older entries are overwritten rather than retained
// forever.
const recentFetchLogSize = 256

// perTrackFetchLogSize bounds each individual per-track history in
// Controller.perTrackFetches; kept smaller than recentFetchLogSize since a
// single track's own history is what an operator drills into, not the
// whole Controller's.
const perTrackFetchLogSize = 32

// Options configures the default graph entry budget, table page size,
// ReadSlice chunk size, and event-arena pre-sizing for a Controller. Zero values are replaced by DefaultOptions' values at
// construction (§6).
type Options struct {
	// MaxGraphEntries bounds how many Samples/Events a single graph_fetch_async
	// call returns before LOD coalescing kicks in.
	MaxGraphEntries int
	// TablePageSize bounds how many rows one table_fetch_async call returns.
	TablePageSize int
	// MaxChunkEntries bounds how many raw entries a single ReadSlice chunk
	// carries, so large slices stream incrementally.
	MaxChunkEntries int
	// EventArenaHint pre-sizes internal bookkeeping; purely an optimization.
	EventArenaHint int
}

// DefaultOptions returns the Controller's out-of-the-box tuning.
func DefaultOptions() Options {
	return Options{
		MaxGraphEntries: 2000,
		TablePageSize:   500,
		MaxChunkEntries: 10000,
		EventArenaHint:  4096,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.MaxGraphEntries <= 0 {
		o.MaxGraphEntries = d.MaxGraphEntries
	}
	if o.TablePageSize <= 0 {
		o.TablePageSize = d.TablePageSize
	}
	if o.MaxChunkEntries <= 0 {
		o.MaxChunkEntries = d.MaxChunkEntries
	}
	if o.EventArenaHint <= 0 {
		o.EventArenaHint = d.EventArenaHint
	}
	return o
}

// Controller is the top-level object every other Handle in this package is
// reached through: it owns the Timeline, Topology, StringTable, event
// arena, and the set of outstanding Futures, and is the only type that
// talks to the Database port directly (§4.1, §6).
type Controller struct {
	unhandledAccessors

	opts Options
	db   Database

	mtx      sync.Mutex
	timeline *Timeline
	topology *Topology
	strings  *StringTable
	arena    *eventArena
	tables   map[string]*Array
	graphs   map[uint64]*Graph
	nextID   uint64

	// outstanding dedups concurrent requests for the same (track, window,
	// maxEntries) into a single in-flight Future, per §4.6.
	outstanding map[string]*inflightFetch

	// recentFetches bounds the diagnostic log of completed fetch keys so it
	// never grows unbounded across a long-lived Controller (§9's ambient
	// "no global, unbounded history" discipline).
	recentFetches *ringbuf.Buffer[string]

	// perTrackFetches mirrors recentFetches but keyed per track, so an
	// operator inspecting one hot track isn't drowned out by fetch traffic
	// on every other track in the same trace.
	perTrackFetches *ringbuf.Keyed[string]

	// trackOrder serializes fetches against the same Track in submission
	// order (§5), independent of the dedup join above: two distinct,
	// non-identical fetches against the same track still complete in the
	// order they were submitted.
	trackOrder *trackOrder

	closed   bool
	closeMtx sync.Mutex
}

// inflightFetch pairs the Future driving a graph fetch with the Graph it is
// populating, so a joining request can hand back the same Graph the
// original caller is waiting on (§4.6).
type inflightFetch struct {
	future *Future
	graph  *Graph
}

const (
	PropControllerNumTracks PropertyID = RangeController.First + iota
	PropControllerMemoryBudget
)

// NewController constructs a Controller bound to db. opts is normalized
// with DefaultOptions for any zero fields.
func NewController(db Database, opts Options) *Controller {
	opts = opts.withDefaults()
	return &Controller{
		opts:            opts,
		db:              db,
		timeline:        NewTimeline(),
		strings:         NewStringTable(),
		arena:           newEventArena(opts.EventArenaHint),
		tables:          map[string]*Array{},
		graphs:          map[uint64]*Graph{},
		outstanding:     map[string]*inflightFetch{},
		recentFetches:   ringbuf.New[string](recentFetchLogSize),
		perTrackFetches: ringbuf.NewKeyed[string](perTrackFetchLogSize),
		trackOrder:      newTrackOrder(),
	}
}

// RecentFetchKeys returns the most recently completed graph-fetch dedup
// keys, newest first, for diagnostics.
func (c *Controller) RecentFetchKeys() []string {
	var keys []string
	c.recentFetches.Walk(func(k string) error {
		keys = append(keys, k)
		return nil
	})
	return keys
}

// DroppedFetchLogEntries returns how many completed-fetch diagnostic
// entries have rolled off the global history since construction, so an
// operator can tell "nothing has happened" apart from "plenty has happened,
// but the ring has already wrapped."
func (c *Controller) DroppedFetchLogEntries() int {
	return c.recentFetches.Dropped()
}

// RecentTrackFetchKeys returns the most recently completed fetch keys for
// trackID specifically, newest first.
func (c *Controller) RecentTrackFetchKeys(trackID uint64) []string {
	var keys []string
	c.perTrackFetches.GetOrCreate(trackKey(trackID)).Walk(func(k string) error {
		keys = append(keys, k)
		return nil
	})
	return keys
}

// SetTrackFetchHistoryDepth resizes every per-track diagnostic ring buffer
// to depth, dropping the oldest entries of any track whose history exceeds
// the new depth. Lets a host shrink or grow per-track diagnostic retention
// at runtime without rebuilding the Controller.
func (c *Controller) SetTrackFetchHistoryDepth(depth int) {
	for _, rb := range c.perTrackFetches.GetAll() {
		rb.Resize(depth)
	}
}

func trackKey(trackID uint64) string {
	return fmt.Sprintf("track:%d", trackID)
}

// Close cancels every outstanding Future and closes the Database port. Each
// outstanding Future's cancellation and the final db.Close run as
// independent actors in a run.Group so a slow worker can't block the
// others from being told to stop (§4.5's "Cancel ... every child
// recursively" extended to whole-Controller teardown).
func (c *Controller) Close() error {
	c.closeMtx.Lock()
	if c.closed {
		c.closeMtx.Unlock()
		return nil
	}
	c.closed = true
	c.closeMtx.Unlock()

	c.mtx.Lock()
	inflight := make([]*inflightFetch, 0, len(c.outstanding))
	for _, f := range c.outstanding {
		inflight = append(inflight, f)
	}
	c.mtx.Unlock()

	var g run.Group
	for _, f := range inflight {
		f := f
		cancelled := make(chan struct{})
		g.Add(func() error {
			f.future.Cancel()
			f.future.Wait(0)
			close(cancelled)
			return nil
		}, func(error) {
			<-cancelled
		})
	}

	g.Add(func() error {
		return c.db.Close()
	}, func(error) {})

	return g.Run()
}

func (c *Controller) Options() Options { return c.opts }

func (c *Controller) Timeline() *Timeline {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.timeline
}

func (c *Controller) Topology() *Topology {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.topology
}

func (c *Controller) Strings() *StringTable {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.strings
}

func (c *Controller) allocID() uint64 {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.nextID++
	return c.nextID
}

// Table returns the most recently fetched rows for a named query, if any.
func (c *Controller) Table(name string) (*Array, bool) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	t, ok := c.tables[name]
	return t, ok
}

// Graph looks up a previously fetched Graph by id.
func (c *Controller) Graph(id uint64) (*Graph, bool) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	g, ok := c.graphs[id]
	return g, ok
}

// DestroyGraph releases a Graph's retained Events and forgets it, per §3's
// "replaced on re-fetch" lifetime: the view layer destroys the old Graph
// once its replacement is ready.
func (c *Controller) DestroyGraph(id uint64) {
	c.mtx.Lock()
	g, ok := c.graphs[id]
	delete(c.graphs, id)
	c.mtx.Unlock()

	if ok {
		g.Destroy()
	}
}

// interruptAdapter bridges Database.InterruptQuery's error-returning shape
// onto the no-return queryInterrupter interface Future expects, logging any
// error since Future.Cancel has no error channel of its own.
type interruptAdapter struct{ db Database }

func (a interruptAdapter) InterruptQuery(connHandle uint64) {
	if err := a.db.InterruptQuery(connHandle); err != nil {
		plog.Get().Warn().Err(err).Uint64("handle", connHandle).Msg("interrupt_query failed")
	}
}

// LoadAsync opens path and populates the Controller's Timeline, Topology,
// and StringTable from it. The returned Future reaches Ready once every
// piece of metadata has arrived (§4.1, §6).
func (c *Controller) LoadAsync(ctx context.Context, path string) *Future {
	f := NewFuture()
	f.BindDatabase(interruptAdapter{c.db}, 0)

	start := time.Now()

	go func() {
		f.SetProgress(0)
		result, err := c.db.Open(ctx, path, func(status ProgressStatus) {
			if status.Total > 0 {
				f.SetProgress(int(100 * status.Completed / status.Total))
			}
		})
		if err != nil {
			f.SetPromise(Wrap(UnknownError, "open %q: %v", path, err))
			return
		}

		c.mtx.Lock()
		c.timeline = result.Timeline
		c.topology = result.Topology
		c.strings = result.StringTable
		mem := c.timeline.MemoryUsageInclusive() + c.strings.MemoryUsage()
		c.mtx.Unlock()

		plog.Get().Info().
			Str("path", path).
			Str("elapsed", humanize.Duration(time.Since(start))).
			Str("mem", humanize.Bytes(mem)).
			Msg("load_async complete")

		f.SetPromise(nil)
	}()

	return f
}

// GraphFetchAsync fetches a viewport-bounded, LOD-coalesced slice of
// trackID's entries into outArray, per §4.6's exact signature shape:
// (graph, min_ts, max_ts, max_entries, future, out_array). Overlapping
// requests for the same track and window join the in-flight Future instead
// of re-issuing the read (§4.6). Any two requests against the same track,
// identical window or not, complete in the order they were submitted (§5).
func (c *Controller) GraphFetchAsync(ctx context.Context, trackID uint64, minTS, maxTS int64, maxEntries int, outArray *Array) (*Graph, *Future) {
	if maxEntries <= 0 {
		maxEntries = c.opts.MaxGraphEntries
	}

	track, ok := c.Timeline().Track(trackID)
	if !ok {
		f := NewFuture()
		f.SetPromise(Wrap(InvalidArgument, "unknown track %d", trackID))
		return nil, f
	}

	dedupKey := fmt.Sprintf("graph:%d:%d:%d:%d", trackID, minTS, maxTS, maxEntries)

	c.mtx.Lock()
	if existing, ok := c.outstanding[dedupKey]; ok {
		c.mtx.Unlock()
		return existing.graph, existing.future
	}
	c.mtx.Unlock()

	// Draw this fetch's place in the track's submission order now, in the
	// caller's goroutine, before any worker goroutine is spawned: two
	// concurrent callers racing into GraphFetchAsync still get tickets in
	// the order they called it.
	trackLock := c.trackOrder.forTrack(trackID)
	seq := trackLock.Draw()

	graphType := GraphTypeLine
	if track.Type() == TrackTypeEvents {
		graphType = GraphTypeFlame
	}

	gid := c.allocID()
	g := NewGraph(gid, track, graphType, minTS, maxTS, maxEntries, c.arena)

	c.mtx.Lock()
	c.graphs[gid] = g
	c.mtx.Unlock()

	f := NewFuture()
	f.BindDatabase(interruptAdapter{c.db}, gid)

	c.mtx.Lock()
	c.outstanding[dedupKey] = &inflightFetch{future: f, graph: g}
	c.mtx.Unlock()

	start := time.Now()
	var numEntries int

	go func() {
		defer func() {
			trackLock.Release()
			c.mtx.Lock()
			delete(c.outstanding, dedupKey)
			c.mtx.Unlock()
			c.recentFetches.Add(dedupKey)
			c.perTrackFetches.GetOrCreate(trackKey(trackID)).Add(dedupKey)
			elapsed := time.Since(start)
			plog.Get().Debug().
				Str("key", dedupKey).
				Str("elapsed", humanize.Duration(elapsed)).
				Str("rate", humanize.Rate(numEntries, elapsed)).
				Msg("graph_fetch_async complete")
		}()

		// Block until every fetch submitted earlier against this same
		// track has released its ticket, so results land in submission
		// order regardless of per-request ReadSlice latency.
		trackLock.Await(seq)

		var chunks [][]rawEntry
		var mu sync.Mutex
		err := c.db.ReadSlice(ctx, SliceRequest{
			TrackID: trackID, StartTS: minTS, EndTS: maxTS, MaxChunk: c.opts.MaxChunkEntries,
		}, func(chunk []rawEntry, final bool) {
			mu.Lock()
			chunks = append(chunks, chunk)
			mu.Unlock()
			if final {
				return
			}
		})
		if err != nil {
			f.SetPromise(Wrap(UnknownError, "read_slice track %d: %v", trackID, err))
			return
		}
		for _, chunk := range chunks {
			numEntries += len(chunk)
		}

		if f.Interrupted() {
			f.SetPromise(nil) // SetPromise forces Cancelled when interrupted
			return
		}

		code := FetchGraph(g, chunks)
		if code != Success {
			f.SetPromise(Wrap(code, "graph fetch track %d", trackID))
			return
		}

		if outArray != nil {
			populateArrayFromGraph(outArray, g)
		}

		f.SetPromise(nil)
	}()

	return g, f
}

// populateArrayFromGraph copies a Graph's most recent fetch result into out
// as Handle cells, the shape a caller walks via Array's property interface.
func populateArrayFromGraph(out *Array, g *Graph) {
	out.Resize(0)
	switch g.Type() {
	case GraphTypeLine:
		for _, s := range g.ResultSamples() {
			out.Append(NewHandleCell(s))
		}
	case GraphTypeFlame:
		for _, id := range g.ResultEventIDs() {
			ev := g.arena.Get(id)
			if ev == nil {
				continue
			}
			out.Append(NewHandleCell(ev))
		}
	}
}

// TableFetchAsync runs a fixed-enumeration query (§4.11) and pages its rows
// into outArray, TablePageSize rows at a time starting at offset.
func (c *Controller) TableFetchAsync(ctx context.Context, req QueryRequest, offset int, outArray *Array) *Future {
	f := NewFuture()
	f.BindDatabase(interruptAdapter{c.db}, 0)

	go func() {
		rows, err := c.db.ExecuteQuery(ctx, req, func(status ProgressStatus) {
			if status.Total > 0 {
				f.SetProgress(int(100 * status.Completed / status.Total))
			}
		})
		if err != nil {
			f.SetPromise(Wrap(UnknownError, "execute_query %s: %v", req.Name, err))
			return
		}

		if f.Interrupted() {
			f.SetPromise(nil)
			return
		}

		c.mtx.Lock()
		c.tables[req.Name] = rows
		c.mtx.Unlock()

		if outArray != nil {
			pageInto(outArray, rows, offset, c.opts.TablePageSize)
		}

		f.SetPromise(nil)
	}()

	return f
}

func pageInto(out *Array, rows *Array, offset, pageSize int) {
	out.Resize(0)
	n := rows.Len()
	if offset < 0 || offset >= n {
		return
	}
	end := offset + pageSize
	if end > n {
		end = n
	}
	for i := offset; i < end; i++ {
		out.Append(*rows.At(i))
	}
}

func (c *Controller) ObjectKind() Kind             { return KindController }
func (c *Controller) PropertyRange() PropertyRange { return RangeController }

func (c *Controller) GetUint64(id PropertyID, index int) (uint64, Code) {
	if v, code, ok := universalUint64(c, id); ok {
		return v, code
	}
	if code := checkRange(c.PropertyRange(), id); code != Success {
		return 0, code
	}
	switch id {
	case PropControllerNumTracks:
		return uint64(c.Timeline().NumTracks()), Success
	default:
		return 0, InvalidEnum
	}
}

func (c *Controller) MemoryUsageInclusive() uint64 {
	return c.MemoryUsageExclusive() + c.Timeline().MemoryUsageInclusive() + c.Strings().MemoryUsage()
}

func (c *Controller) MemoryUsageExclusive() uint64 { return 256 }
