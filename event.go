package profctl

// EventID identifies an Event within its owning Controller's arena.
type EventID uint64

// Event is a leaf data point on an event Track: an interval with a name,
// category, nesting level, and optionally a list of synthetic children
// (populated only on the LOD coalesced variant produced by Graph fetches).
type Event struct {
	unhandledAccessors

	id                EventID
	startTS           int64
	endTS             int64
	nameIdx           StringIndex
	categoryIdx       StringIndex
	level             uint8
	topCombinedName   StringIndex // for LOD display of a coalesced parent
	synthetic         bool        // true when this Event is a coalesced LOD parent
	children          []EventID   // arena indices; empty for a base (leaf) Event
	opType            string      // operation type, used to derive flow direction

	// arena resolves children to Handles for GetObject; set when the Event
	// is inserted into its owning eventArena.
	arena *eventArena
}

const (
	PropEventID PropertyID = RangeEvent.First + iota
	PropEventStartTS
	PropEventEndTS
	PropEventNameStrIndex
	PropEventCategoryStrIndex
	PropEventLevel
	PropEventTopCombinedNameStrIndex
	PropEventNumChildren
	PropEventChildIndexed
)

// NewEvent constructs a leaf Event. Children are populated only by the LOD
// coalescing pass inside Graph fetch (§4.7), never at construction time.
func NewEvent(id EventID, startTS, endTS int64, nameIdx, categoryIdx StringIndex, level uint8, opType string) *Event {
	if level > 255 {
		level = 255
	}
	return &Event{
		id:          id,
		startTS:     startTS,
		endTS:       endTS,
		nameIdx:     nameIdx,
		categoryIdx: categoryIdx,
		level:       level,
		opType:      opType,
	}
}

func (e *Event) ID() EventID        { return e.id }
func (e *Event) StartTS() int64     { return e.startTS }
func (e *Event) EndTS() int64       { return e.endTS }
func (e *Event) Level() uint8       { return e.level }
func (e *Event) NumChildren() int   { return len(e.children) }
func (e *Event) IsSynthetic() bool  { return e.synthetic }

// FlowDirection derives the flow-link direction for this event, per §3:
// launch operations are outgoing (0); everything else is incoming (1).
func (e *Event) FlowDirection() FlowDirection {
	if e.opType == "launch" {
		return FlowOutgoing
	}
	return FlowIncoming
}

func (e *Event) ObjectKind() Kind             { return KindEvent }
func (e *Event) PropertyRange() PropertyRange { return RangeEvent }

func (e *Event) GetUint64(id PropertyID, index int) (uint64, Code) {
	if v, code, ok := universalUint64(e, id); ok {
		return v, code
	}
	if code := checkRange(e.PropertyRange(), id); code != Success {
		return 0, code
	}
	switch id {
	case PropEventID:
		return uint64(e.id), Success
	case PropEventStartTS:
		return uint64(e.startTS), Success
	case PropEventEndTS:
		return uint64(e.endTS), Success
	case PropEventNameStrIndex:
		return uint64(e.nameIdx), Success
	case PropEventCategoryStrIndex:
		return uint64(e.categoryIdx), Success
	case PropEventLevel:
		return uint64(e.level), Success
	case PropEventTopCombinedNameStrIndex:
		return uint64(e.topCombinedName), Success
	case PropEventNumChildren:
		return uint64(len(e.children)), Success
	default:
		return 0, InvalidEnum
	}
}

// GetObject resolves PropEventChildIndexed, the k-th child of a coalesced
// LOD parent (§3's worked example). Base (leaf) Events have no children and
// always report OutOfRange here.
func (e *Event) GetObject(id PropertyID, index int) (Handle, Code) {
	if code := checkRange(e.PropertyRange(), id); code != Success {
		return nil, code
	}
	if id != PropEventChildIndexed {
		return nil, InvalidType
	}
	if index < 0 || index >= len(e.children) {
		return nil, OutOfRange
	}
	if e.arena == nil {
		return nil, NotLoaded
	}
	child := e.arena.Get(e.children[index])
	if child == nil {
		return nil, NotLoaded
	}
	return child, Success
}

func (e *Event) MemoryUsageInclusive() uint64 {
	return e.MemoryUsageExclusive() + uint64(len(e.children))*8
}

func (e *Event) MemoryUsageExclusive() uint64 {
	return 64
}

//
//
//

// FlowDirection is the direction of a FlowControl link relative to its
// owning Event.
type FlowDirection int

const (
	FlowOutgoing FlowDirection = 0
	FlowIncoming FlowDirection = 1
)
