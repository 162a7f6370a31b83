package profctl

import "testing"

func TestTopologyBindTrackWiresBackPointer(t *testing.T) {
	topo := NewTopology(0, 0)
	proc := NewTopologyNode(1, NodeKindProcess, 0)
	topo.AddNode(0, proc)
	thread := NewTopologyNode(2, NodeKindThread, 0)
	topo.AddNode(1, thread)

	track := NewTrack(100, TrackTypeEvents)
	thread.BindTrack(track)

	if track.topologyRef != TopologyRefThread {
		t.Fatalf("expected TopologyRefThread, got %v", track.topologyRef)
	}
	if track.topologyID != thread.ID() {
		t.Fatalf("expected back-pointer to thread id %d, got %d", thread.ID(), track.topologyID)
	}

	got, code := thread.GetUint64(PropNodeTrackID, 0)
	if code != Success || got != track.ID() {
		t.Fatalf("GetUint64(PropNodeTrackID) = %d, %v; want %d, Success", got, code, track.ID())
	}
}

func TestTopologyParentChildWiring(t *testing.T) {
	topo := NewTopology(0, 0)
	proc := NewTopologyNode(1, NodeKindProcess, 0)
	topo.AddNode(0, proc)

	root := topo.Root()
	n, code := root.GetUint64(PropNodeNumChildren, 0)
	if code != Success || n != 1 {
		t.Fatalf("expected root to have 1 child, got %d (%v)", n, code)
	}

	parentID, code := proc.GetUint64(PropNodeParentID, 0)
	if code != Success || parentID != root.ID() {
		t.Fatalf("expected process parent to be root, got %d (%v)", parentID, code)
	}
}

func TestTopologyUnboundNodeHasNoTrackID(t *testing.T) {
	n := NewTopologyNode(1, NodeKindProcess, 0)
	if _, code := n.GetUint64(PropNodeTrackID, 0); code != NotLoaded {
		t.Fatalf("expected NotLoaded for an unbound node, got %v", code)
	}
}

func TestTopologyNodeNameReachableViaGetUint64(t *testing.T) {
	n := NewTopologyNode(1, NodeKindProcess, StringIndex(7))
	got, code := n.GetUint64(PropNodeNameStrIndex, 0)
	if code != Success || got != 7 {
		t.Fatalf("GetUint64(PropNodeNameStrIndex) = %d, %v; want 7, Success", got, code)
	}
}
