package profctl

import "sync"

// Timeline is the top-level container of Tracks loaded for one profiling
// session: it tracks the overall timestamp range across every Track it
// owns, but never the ranges of any individual counter sample (§9's
// resolved open question keeps counter value extrema on Track alone).
type Timeline struct {
	unhandledAccessors

	mtx      sync.RWMutex
	trackIDs []uint64
	tracks   map[uint64]*Track
	minTS    int64
	maxTS    int64
	hasRange bool
}

const (
	PropTimelineMinTS PropertyID = RangeTimeline.First + iota
	PropTimelineMaxTS
	PropTimelineNumTracks
	PropTimelineTrackIndexed
)

// NewTimeline returns an empty Timeline.
func NewTimeline() *Timeline {
	return &Timeline{tracks: map[uint64]*Track{}}
}

// AddTrack registers a track and folds its timestamp range into the
// Timeline's own range. Event timestamps and sample timestamps both
// contribute; sample values never do (§9).
func (tl *Timeline) AddTrack(t *Track) {
	tl.mtx.Lock()
	defer tl.mtx.Unlock()

	tl.trackIDs = append(tl.trackIDs, t.ID())
	tl.tracks[t.ID()] = t

	if t.NumberOfEntries() == 0 {
		return
	}
	if !tl.hasRange || t.MinTimestamp() < tl.minTS {
		tl.minTS = t.MinTimestamp()
	}
	if !tl.hasRange || t.MaxTimestamp() > tl.maxTS {
		tl.maxTS = t.MaxTimestamp()
	}
	tl.hasRange = true
}

// Track looks up a track by id.
func (tl *Timeline) Track(id uint64) (*Track, bool) {
	tl.mtx.RLock()
	defer tl.mtx.RUnlock()
	t, ok := tl.tracks[id]
	return t, ok
}

// TrackIDs returns every track id in registration order.
func (tl *Timeline) TrackIDs() []uint64 {
	tl.mtx.RLock()
	defer tl.mtx.RUnlock()
	out := make([]uint64, len(tl.trackIDs))
	copy(out, tl.trackIDs)
	return out
}

func (tl *Timeline) NumTracks() int {
	tl.mtx.RLock()
	defer tl.mtx.RUnlock()
	return len(tl.trackIDs)
}

func (tl *Timeline) ObjectKind() Kind             { return KindTimeline }
func (tl *Timeline) PropertyRange() PropertyRange { return RangeTimeline }

func (tl *Timeline) GetUint64(id PropertyID, index int) (uint64, Code) {
	if v, code, ok := universalUint64(tl, id); ok {
		return v, code
	}
	if code := checkRange(tl.PropertyRange(), id); code != Success {
		return 0, code
	}
	switch id {
	case PropTimelineMinTS:
		return uint64(tl.minTS), Success
	case PropTimelineMaxTS:
		return uint64(tl.maxTS), Success
	case PropTimelineNumTracks:
		return uint64(tl.NumTracks()), Success
	case PropTimelineTrackIndexed:
		tl.mtx.RLock()
		defer tl.mtx.RUnlock()
		if index < 0 || index >= len(tl.trackIDs) {
			return 0, OutOfRange
		}
		return tl.trackIDs[index], Success
	default:
		return 0, InvalidEnum
	}
}

func (tl *Timeline) GetObject(id PropertyID, index int) (Handle, Code) {
	if code := checkRange(tl.PropertyRange(), id); code != Success {
		return nil, code
	}
	if id != PropTimelineTrackIndexed {
		return nil, InvalidType
	}
	tl.mtx.RLock()
	defer tl.mtx.RUnlock()
	if index < 0 || index >= len(tl.trackIDs) {
		return nil, OutOfRange
	}
	return tl.tracks[tl.trackIDs[index]], Success
}

func (tl *Timeline) MemoryUsageInclusive() uint64 {
	tl.mtx.RLock()
	defer tl.mtx.RUnlock()
	var sum uint64
	for _, t := range tl.tracks {
		sum += t.MemoryUsageInclusive()
	}
	return tl.MemoryUsageExclusive() + sum
}

func (tl *Timeline) MemoryUsageExclusive() uint64 {
	tl.mtx.RLock()
	defer tl.mtx.RUnlock()
	return uint64(len(tl.trackIDs))*8 + 32
}
