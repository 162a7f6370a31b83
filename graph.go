package profctl

import (
	"sort"
)

// GraphType selects how a Graph renders its Track's entries.
type GraphType int

const (
	// GraphTypeLine renders a sample Track as a line chart.
	GraphTypeLine GraphType = iota
	// GraphTypeFlame renders an event Track as a flamegraph.
	GraphTypeFlame
)

// Graph is a viewport-bounded, LOD-coalesced view onto one Track's entries.
// It is created per viewport fetch and replaced on re-fetch; it exclusively
// owns the Sample/Event LOD objects produced for its window (§3, §4.7).
type Graph struct {
	unhandledAccessors

	id         uint64
	graphType  GraphType
	track      *Track
	startTS    int64
	endTS      int64
	maxEntries int
	numEntries int

	expectedChunks int
	receivedChunks int
	allDataReady   bool

	retainedEvents []EventID // events this graph placed into its result, for release on destroy
	arena          *eventArena

	resultSamples  []*Sample
	resultEventIDs []EventID
}

const (
	PropGraphID PropertyID = RangeGraph.First + iota
	PropGraphType
	PropGraphStartTS
	PropGraphEndTS
	PropGraphNumEntries
	PropGraphMaxEntries
	PropGraphAllDataReady
	PropGraphOwningTrackID
)

// NewGraph binds a Graph to track, a window, and the target entry count
// (approximately the horizontal pixel count). Per §8, the window must be a
// subset of the track's timestamp range; callers should clamp before
// calling NewGraph.
func NewGraph(id uint64, track *Track, graphType GraphType, startTS, endTS int64, maxEntries int, arena *eventArena) *Graph {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &Graph{
		id:         id,
		graphType:  graphType,
		track:      track,
		startTS:    startTS,
		endTS:      endTS,
		maxEntries: maxEntries,
		arena:      arena,
	}
}

func (g *Graph) ID() uint64         { return g.id }
func (g *Graph) Type() GraphType    { return g.graphType }
func (g *Graph) StartTS() int64     { return g.startTS }
func (g *Graph) EndTS() int64       { return g.endTS }
func (g *Graph) NumEntries() int    { return g.numEntries }
func (g *Graph) AllDataReady() bool { return g.allDataReady }

// ResultSamples returns the LOD-coalesced samples from the most recent
// fetch. Valid only for GraphTypeLine graphs.
func (g *Graph) ResultSamples() []*Sample { return g.resultSamples }

// ResultEventIDs returns the LOD-coalesced event ids from the most recent
// fetch, already Retained in the owning arena. Valid only for
// GraphTypeFlame graphs.
func (g *Graph) ResultEventIDs() []EventID { return g.resultEventIDs }

// Destroy releases every Event this Graph retained. Sample-based graphs own
// no arena references, so Destroy is a no-op for them.
func (g *Graph) Destroy() {
	for _, id := range g.retainedEvents {
		g.arena.Release(id)
	}
	g.retainedEvents = nil
}

// declareChunks pre-declares the number of chunks the fetch expects,
// implementing the §4.7 tombstone rule: AllDataReady becomes true only
// after every chunk has arrived.
func (g *Graph) declareChunks(n int) {
	g.expectedChunks = n
	g.allDataReady = n == 0
}

func (g *Graph) receiveChunk() {
	g.receivedChunks++
	if g.receivedChunks >= g.expectedChunks {
		g.allDataReady = true
	}
}

//
//
//

// FetchGraph populates g with its LOD result, per §4.7:
//   - sample tracks are binned into at most maxEntries uniform-width bins;
//   - event tracks keep every wholly-contained event, coalescing adjacent
//     same-level same-name runs (shortest run first, ties by earliest
//     start) once the count exceeds maxEntries.
//
// Chunked reads from the Database arrive via multiple calls into chunks;
// FetchGraph merges them in arrival order and re-sorts before declaring the
// result complete, so the caller never observes a partially-loaded slice as
// complete (§1, §5).
func FetchGraph(g *Graph, chunks [][]rawEntry) Code {
	g.declareChunks(len(chunks))

	var merged []rawEntry
	for _, chunk := range chunks {
		merged = append(merged, chunk...)
		g.receiveChunk()
	}

	// Zero-length window: zero entries regardless of track type (§8), even
	// if an instant event or a sample happens to land exactly on start_ts.
	if g.startTS == g.endTS {
		g.numEntries = 0
		g.resultSamples = nil
		g.resultEventIDs = nil
		return Success
	}

	switch g.graphType {
	case GraphTypeLine:
		return g.fetchSamples(merged)
	case GraphTypeFlame:
		return g.fetchEvents(merged)
	default:
		return NotSupported
	}
}

// rawEntry is the shape FetchGraph consumes from the Database port before
// it is folded into Samples or Events: a point for sample tracks, or an
// event id for event tracks (the Event itself already lives in the arena).
type rawEntry struct {
	sampleTS    int64
	sampleValue float64
	isSample    bool
	eventID     EventID
}

func (g *Graph) fetchSamples(entries []rawEntry) Code {
	samples := make([]*Sample, 0, len(entries))
	for _, e := range entries {
		if !e.isSample {
			continue
		}
		if e.sampleTS < g.startTS || e.sampleTS > g.endTS {
			continue
		}
		samples = append(samples, NewSample(e.sampleTS, e.sampleValue))
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i].timestamp < samples[j].timestamp })

	result := binSamples(samples, g.startTS, g.endTS, g.maxEntries)
	g.numEntries = len(result)
	g.resultSamples = result
	return Success
}

func binSamples(samples []*Sample, startTS, endTS int64, maxEntries int) []*Sample {
	// A zero-length window always yields zero entries (§8), regardless of
	// whether a sample happens to land exactly on that timestamp.
	if startTS == endTS {
		return nil
	}

	width := (endTS - startTS) / int64(maxEntries)
	if width < 1 {
		width = 1
	}

	type bin struct {
		lo, hi  int64
		samples []*Sample
	}
	var bins []bin
	for _, s := range samples {
		offset := s.timestamp - startTS
		idx := offset / width
		if idx >= int64(maxEntries) {
			idx = int64(maxEntries) - 1
		}
		lo := startTS + idx*width
		hi := lo + width
		if len(bins) == 0 || bins[len(bins)-1].lo != lo {
			bins = append(bins, bin{lo: lo, hi: hi})
		}
		bins[len(bins)-1].samples = append(bins[len(bins)-1].samples, s)
	}

	result := make([]*Sample, 0, len(bins))
	for _, b := range bins {
		if len(b.samples) == 0 {
			continue
		}
		if len(b.samples) == 1 {
			result = append(result, b.samples[0])
			continue
		}
		binCenter := (b.lo + b.hi) / 2
		result = append(result, aggregateBinAt(b.samples, binCenter))
	}
	return result
}

func aggregateBinAt(samples []*Sample, center int64) *Sample {
	vals := make([]float64, len(samples))
	var sum float64
	minTS, maxTS := samples[0].timestamp, samples[0].timestamp
	for i, s := range samples {
		vals[i] = s.value
		sum += s.value
		if s.timestamp < minTS {
			minTS = s.timestamp
		}
		if s.timestamp > maxTS {
			maxTS = s.timestamp
		}
	}
	sort.Float64s(vals)
	min, max := vals[0], vals[len(vals)-1]
	mean := sum / float64(len(vals))
	median := vals[len(vals)/2]
	if len(vals)%2 == 0 {
		median = (vals[len(vals)/2-1] + vals[len(vals)/2]) / 2
	}
	return NewSyntheticSample(center, min, mean, median, max, minTS, maxTS)
}

func (g *Graph) fetchEvents(entries []rawEntry) Code {
	var ids []EventID
	for _, e := range entries {
		if e.isSample {
			continue
		}
		ev := g.arena.Get(e.eventID)
		if ev == nil {
			continue
		}
		if ev.startTS < g.startTS || ev.endTS > g.endTS {
			continue // only events wholly inside the window
		}
		ids = append(ids, e.eventID)
	}

	sort.Slice(ids, func(i, j int) bool {
		return g.arena.Get(ids[i]).startTS < g.arena.Get(ids[j]).startTS
	})

	result := ids
	var synthetic []*Event
	if len(ids) > g.maxEntries {
		result, synthetic = coalesceEvents(g.arena, ids, g.maxEntries)
		for _, ev := range synthetic {
			g.arena.Put(ev)
		}
	}

	for _, id := range result {
		g.arena.Retain(id)
	}
	g.retainedEvents = append(g.retainedEvents, result...)

	g.numEntries = len(result)
	g.resultEventIDs = result
	return Success
}

// coalesceEvents greedily merges adjacent same-level same-name runs until
// at most maxEntries entries remain, merging the shortest adjacent run
// first and breaking ties by earliest start timestamp (§4.7). It stops
// early, leaving more than maxEntries entries, once no adjacent pair shares
// both level and name. ids must already be sorted by start timestamp.
func coalesceEvents(arena *eventArena, ids []EventID, maxEntries int) (result []EventID, synthetic []*Event) {
	type node struct {
		ids   []EventID // member event ids, in order
		level uint8
		name  StringIndex
	}

	nodes := make([]node, len(ids))
	for i, id := range ids {
		ev := arena.Get(id)
		nodes[i] = node{ids: []EventID{id}, level: ev.level, name: ev.nameIdx}
	}

	nextSyntheticID := EventID(1 << 62) // reserved id space for coalesced parents

	for len(nodes) > maxEntries {
		// Find the adjacent same-level same-name run with the fewest total
		// source events; ties broken by earliest start timestamp.
		bestI, bestLen := -1, -1
		var bestStart int64
		for i := 0; i+1 < len(nodes); i++ {
			if nodes[i].level != nodes[i+1].level || nodes[i].name != nodes[i+1].name {
				continue
			}
			runLen := len(nodes[i].ids) + len(nodes[i+1].ids)
			start := arena.Get(nodes[i].ids[0]).startTS
			switch {
			case bestI < 0 || runLen < bestLen:
				bestI, bestLen, bestStart = i, runLen, start
			case runLen == bestLen && start < bestStart:
				bestI, bestLen, bestStart = i, runLen, start
			}
		}
		if bestI < 0 {
			// No mergeable adjacent pair left (different names/levels
			// throughout); stop early rather than merging unrelated events.
			break
		}

		merged := append(append([]EventID{}, nodes[bestI].ids...), nodes[bestI+1].ids...)
		nodes[bestI] = node{ids: merged, level: nodes[bestI].level, name: nodes[bestI].name}
		nodes = append(nodes[:bestI+1], nodes[bestI+2:]...)
	}

	result = make([]EventID, len(nodes))
	for i, n := range nodes {
		if len(n.ids) == 1 {
			result[i] = n.ids[0]
			continue
		}

		first := arena.Get(n.ids[0])
		maxEnd := first.endTS
		nameCounts := map[StringIndex]int{}
		for _, id := range n.ids {
			ev := arena.Get(id)
			if ev.endTS > maxEnd {
				maxEnd = ev.endTS
			}
			nameCounts[ev.nameIdx]++
		}

		mostCommon, bestCount := n.name, -1
		for name, count := range nameCounts {
			if count > bestCount {
				mostCommon, bestCount = name, count
			}
		}

		synID := nextSyntheticID
		nextSyntheticID++

		parent := NewEvent(synID, first.startTS, maxEnd, mostCommon, first.categoryIdx, n.level, "")
		parent.synthetic = true
		parent.topCombinedName = mostCommon
		parent.children = append([]EventID{}, n.ids...)

		synthetic = append(synthetic, parent)
		result[i] = synID
	}

	return result, synthetic
}

func (g *Graph) ObjectKind() Kind             { return KindGraph }
func (g *Graph) PropertyRange() PropertyRange { return RangeGraph }

func (g *Graph) GetUint64(id PropertyID, index int) (uint64, Code) {
	if v, code, ok := universalUint64(g, id); ok {
		return v, code
	}
	if code := checkRange(g.PropertyRange(), id); code != Success {
		return 0, code
	}
	switch id {
	case PropGraphID:
		return g.id, Success
	case PropGraphType:
		return uint64(g.graphType), Success
	case PropGraphStartTS:
		return uint64(g.startTS), Success
	case PropGraphEndTS:
		return uint64(g.endTS), Success
	case PropGraphNumEntries:
		return uint64(g.numEntries), Success
	case PropGraphMaxEntries:
		return uint64(g.maxEntries), Success
	case PropGraphAllDataReady:
		return boolToUint64(g.allDataReady), Success
	case PropGraphOwningTrackID:
		return g.track.ID(), Success
	default:
		return 0, InvalidEnum
	}
}

func (g *Graph) MemoryUsageInclusive() uint64 {
	return g.MemoryUsageExclusive() + uint64(g.numEntries)*64
}

func (g *Graph) MemoryUsageExclusive() uint64 { return 80 }
