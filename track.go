package profctl

import (
	"sort"
	"sync"
)

// TrackType distinguishes the two kinds of track content.
type TrackType int

const (
	TrackTypeSamples TrackType = iota
	TrackTypeEvents
)

// TopologyRef names which kind of topology node, if any, a Track is backed
// by (§4.9): a Track created for a Thread/Queue/Stream/Counter node stores a
// back-reference to it, wired once at construction and never mutated.
type TopologyRef int

const (
	TopologyRefNone TopologyRef = iota
	TopologyRefThread
	TopologyRefQueue
	TopologyRefStream
	TopologyRefCounter
)

// Track is a single time-ordered stream of either events or samples,
// exposing only metadata: entries are fetched indirectly via a Graph
// (§4.7). Events/samples within a Track are kept sorted by start timestamp,
// ties broken by insertion order (§3).
type Track struct {
	unhandledAccessors

	id          uint64
	trackType   TrackType
	minTS       int64
	maxTS       int64
	minValue    float64
	maxValue    float64
	topologyRef TopologyRef
	topologyID  uint64 // valid iff topologyRef != TopologyRefNone

	mtx      sync.Mutex
	eventIDs []EventID // sorted by start ts, ties by insertion order
	samples  []*Sample // sorted by timestamp
}

const (
	PropTrackID PropertyID = RangeTrack.First + iota
	PropTrackType
	PropTrackMinTimestamp
	PropTrackMaxTimestamp
	PropTrackMinValue
	PropTrackMaxValue
	PropTrackNumberOfEntries
	PropTrackTopologyRef
	PropTrackTopologyID
)

// NewTrack returns an empty track of the given type and id.
func NewTrack(id uint64, t TrackType) *Track {
	return &Track{id: id, trackType: t}
}

func (t *Track) ID() uint64            { return t.id }
func (t *Track) Type() TrackType       { return t.trackType }
func (t *Track) MinTimestamp() int64   { return t.minTS }
func (t *Track) MaxTimestamp() int64   { return t.maxTS }
func (t *Track) MinValue() float64     { return t.minValue }
func (t *Track) MaxValue() float64     { return t.maxValue }
func (t *Track) NumberOfEntries() int {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	if t.trackType == TrackTypeSamples {
		return len(t.samples)
	}
	return len(t.eventIDs)
}

// SetTopologyRef wires the Track's topology back-pointer. Called once
// during metadata load, never mutated afterwards (§4.9).
func (t *Track) SetTopologyRef(ref TopologyRef, nodeID uint64) {
	t.topologyRef = ref
	t.topologyID = nodeID
}

// AppendEvent inserts an event id in start-timestamp order (ties broken by
// insertion order, i.e. stable position among equal timestamps), and
// extends the track's timestamp range.
func (t *Track) AppendEvent(arena *eventArena, id EventID) {
	t.mtx.Lock()
	defer t.mtx.Unlock()

	ev := arena.Get(id)
	if ev == nil {
		return
	}

	pos := sort.Search(len(t.eventIDs), func(i int) bool {
		other := arena.Get(t.eventIDs[i])
		return other == nil || other.startTS > ev.startTS
	})
	t.eventIDs = append(t.eventIDs, 0)
	copy(t.eventIDs[pos+1:], t.eventIDs[pos:])
	t.eventIDs[pos] = id

	if len(t.eventIDs) == 1 || ev.startTS < t.minTS {
		t.minTS = ev.startTS
	}
	if ev.endTS > t.maxTS {
		t.maxTS = ev.endTS
	}
}

// AppendSample inserts a sample in timestamp order and folds its value into
// the track's min/max-value extrema. Per §9's resolved open question,
// counter values feed Track.MinValue/MaxValue only, never the Timeline's
// timestamp range.
func (t *Track) AppendSample(s *Sample) {
	t.mtx.Lock()
	defer t.mtx.Unlock()

	pos := sort.Search(len(t.samples), func(i int) bool {
		return t.samples[i].timestamp > s.timestamp
	})
	t.samples = append(t.samples, nil)
	copy(t.samples[pos+1:], t.samples[pos:])
	t.samples[pos] = s

	if len(t.samples) == 1 || s.timestamp < t.minTS {
		t.minTS = s.timestamp
	}
	if s.timestamp > t.maxTS {
		t.maxTS = s.timestamp
	}
	if len(t.samples) == 1 || s.value < t.minValue {
		t.minValue = s.value
	}
	if s.value > t.maxValue {
		t.maxValue = s.value
	}
}

// AllEventIDs returns every event id owned by the track, sorted by start
// timestamp. Window filtering happens in Graph.fetchEvents, which has access to
// the owning arena to compare each event's actual start/end.
func (t *Track) AllEventIDs() []EventID {
	t.mtx.Lock()
	defer t.mtx.Unlock()

	out := make([]EventID, len(t.eventIDs))
	copy(out, t.eventIDs)
	return out
}

// samplesInWindow returns every sample with start <= timestamp <= end.
func (t *Track) samplesInWindow(start, end int64) []*Sample {
	t.mtx.Lock()
	defer t.mtx.Unlock()

	lo := sort.Search(len(t.samples), func(i int) bool { return t.samples[i].timestamp >= start })
	hi := sort.Search(len(t.samples), func(i int) bool { return t.samples[i].timestamp > end })
	if lo >= hi {
		return nil
	}
	out := make([]*Sample, hi-lo)
	copy(out, t.samples[lo:hi])
	return out
}

func (t *Track) ObjectKind() Kind             { return KindTrack }
func (t *Track) PropertyRange() PropertyRange { return RangeTrack }

func (t *Track) GetUint64(id PropertyID, index int) (uint64, Code) {
	if v, code, ok := universalUint64(t, id); ok {
		return v, code
	}
	if code := checkRange(t.PropertyRange(), id); code != Success {
		return 0, code
	}
	switch id {
	case PropTrackID:
		return t.id, Success
	case PropTrackType:
		return uint64(t.trackType), Success
	case PropTrackMinTimestamp:
		return uint64(t.minTS), Success
	case PropTrackMaxTimestamp:
		return uint64(t.maxTS), Success
	case PropTrackNumberOfEntries:
		return uint64(t.NumberOfEntries()), Success
	case PropTrackTopologyRef:
		return uint64(t.topologyRef), Success
	case PropTrackTopologyID:
		if t.topologyRef == TopologyRefNone {
			return 0, NotLoaded
		}
		return t.topologyID, Success
	default:
		return 0, InvalidEnum
	}
}

func (t *Track) GetFloat64(id PropertyID, index int) (float64, Code) {
	if code := checkRange(t.PropertyRange(), id); code != Success {
		return 0, code
	}
	switch id {
	case PropTrackMinValue:
		return t.minValue, Success
	case PropTrackMaxValue:
		return t.maxValue, Success
	default:
		return 0, InvalidEnum
	}
}

func (t *Track) MemoryUsageInclusive() uint64 {
	return t.MemoryUsageExclusive() + uint64(len(t.eventIDs))*8 + uint64(len(t.samples))*64
}

func (t *Track) MemoryUsageExclusive() uint64 { return 96 }
