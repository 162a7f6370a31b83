package profctl

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBinSamplesSingleSamplePerBin(t *testing.T) {
	samples := []*Sample{
		NewSample(0, 1),
		NewSample(100, 2),
	}
	got := binSamples(samples, 0, 100, 10)
	if len(got) != 2 {
		t.Fatalf("expected 2 bins, got %d", len(got))
	}
	if got[0].IsSynthetic() || got[1].IsSynthetic() {
		t.Fatalf("single-sample bins must not be synthetic")
	}
}

func TestBinSamplesAggregatesMultiplePerBin(t *testing.T) {
	samples := []*Sample{
		NewSample(0, 10),
		NewSample(1, 20),
		NewSample(2, 30),
	}
	got := binSamples(samples, 0, 10, 1)
	if len(got) != 1 {
		t.Fatalf("expected 1 bin, got %d", len(got))
	}
	s := got[0]
	if !s.IsSynthetic() {
		t.Fatalf("multi-sample bin must be synthetic")
	}
	if diff := cmp.Diff(20.0, s.Value()); diff != "" {
		t.Fatalf("mean mismatch (-want +got):\n%s", diff)
	}
	if s.minV != 10 || s.maxV != 30 {
		t.Fatalf("min/max mismatch: min=%v max=%v", s.minV, s.maxV)
	}
}

func TestBinSamplesZeroLengthWindowYieldsNoEntries(t *testing.T) {
	samples := []*Sample{NewSample(5, 1)} // lands exactly on the window
	got := binSamples(samples, 5, 5, 10)
	if len(got) != 0 {
		t.Fatalf("expected 0 bins for a zero-length window, got %d", len(got))
	}
}

func TestCoalesceEventsMergesShortestRunFirst(t *testing.T) {
	arena := newEventArena(0)
	name := StringIndex(1)
	other := StringIndex(2)

	// Two adjacent same-name/level pairs: [0,10) [10,20) at level 0 (run of
	// 2), and a lone [20,30) at a different name so it can't merge further.
	ids := []EventID{1, 2, 3}
	arena.Put(NewEvent(1, 0, 10, name, 0, 0, ""))
	arena.Put(NewEvent(2, 10, 20, name, 0, 0, ""))
	arena.Put(NewEvent(3, 20, 30, other, 0, 0, ""))

	result, synthetic := coalesceEvents(arena, ids, 2)
	if len(result) != 2 {
		t.Fatalf("expected 2 result entries, got %d: %v", len(result), result)
	}
	if len(synthetic) != 1 {
		t.Fatalf("expected 1 synthetic parent, got %d", len(synthetic))
	}
	parent := synthetic[0]
	if parent.startTS != 0 || parent.endTS != 20 {
		t.Fatalf("synthetic parent span mismatch: start=%d end=%d", parent.startTS, parent.endTS)
	}
	if len(parent.children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(parent.children))
	}
}

func TestFetchGraphLineGraphTombstone(t *testing.T) {
	track := NewTrack(1, TrackTypeSamples)
	g := NewGraph(10, track, GraphTypeLine, 0, 100, 5, newEventArena(0))

	chunks := [][]rawEntry{
		{{isSample: true, sampleTS: 0, sampleValue: 1}},
		{{isSample: true, sampleTS: 50, sampleValue: 2}},
	}
	if code := FetchGraph(g, chunks); code != Success {
		t.Fatalf("FetchGraph: %v", code)
	}
	if !g.AllDataReady() {
		t.Fatalf("expected AllDataReady after every chunk arrives")
	}
	if g.NumEntries() != 2 {
		t.Fatalf("expected 2 entries, got %d", g.NumEntries())
	}
}

func TestFetchGraphFlameRetainsAndFilters(t *testing.T) {
	arena := newEventArena(0)
	track := NewTrack(2, TrackTypeEvents)
	g := NewGraph(11, track, GraphTypeFlame, 0, 100, 10, arena)

	name := StringIndex(1)
	arena.Put(NewEvent(1, 0, 50, name, 0, 0, ""))
	arena.Put(NewEvent(2, 60, 200, name, 0, 0, "")) // not wholly inside window

	code := FetchGraph(g, [][]rawEntry{
		{{eventID: 1}, {eventID: 2}},
	})
	if code != Success {
		t.Fatalf("FetchGraph: %v", code)
	}
	if g.NumEntries() != 1 {
		t.Fatalf("expected 1 entry (event 2 exceeds window), got %d", g.NumEntries())
	}
	if arena.RefCount(1) != 1 {
		t.Fatalf("expected event 1 retained once, got refcount %d", arena.RefCount(1))
	}

	g.Destroy()
	if arena.RefCount(1) != 0 {
		t.Fatalf("expected event 1 released after Destroy, got refcount %d", arena.RefCount(1))
	}
}

func TestFetchGraphZeroLengthWindowYieldsNoEntries(t *testing.T) {
	track := NewTrack(1, TrackTypeSamples)
	g := NewGraph(12, track, GraphTypeLine, 5, 5, 10, newEventArena(0))

	code := FetchGraph(g, [][]rawEntry{
		{{isSample: true, sampleTS: 5, sampleValue: 1}}, // lands exactly on start_ts==end_ts
	})
	if code != Success {
		t.Fatalf("FetchGraph: %v", code)
	}
	if g.NumEntries() != 0 {
		t.Fatalf("expected 0 entries for a zero-length window, got %d", g.NumEntries())
	}
}
