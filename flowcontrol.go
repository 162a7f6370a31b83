package profctl

// FlowControl is a fetched-on-demand link between events across tracks,
// e.g. a GPU kernel launch and its execution, keyed by event id (§3, §4.8).
type FlowControl struct {
	unhandledAccessors

	id        EventID
	startTS   int64
	endTS     int64
	trackID   uint64
	level     uint8
	direction FlowDirection
	nameIdx   StringIndex
	catIdx    StringIndex
}

const (
	PropFlowControlID PropertyID = RangeFlowControl.First + iota
	PropFlowControlStartTS
	PropFlowControlEndTS
	PropFlowControlTrackID
	PropFlowControlLevel
	PropFlowControlDirection
	PropFlowControlNameStrIndex
	PropFlowControlCategoryStrIndex
)

// NewFlowControl builds a flow link, deriving direction from opType per §3.
func NewFlowControl(id EventID, startTS, endTS int64, trackID uint64, level uint8, opType string, nameIdx, catIdx StringIndex) *FlowControl {
	dir := FlowIncoming
	if opType == "launch" {
		dir = FlowOutgoing
	}
	return &FlowControl{
		id: id, startTS: startTS, endTS: endTS, trackID: trackID,
		level: level, direction: dir, nameIdx: nameIdx, catIdx: catIdx,
	}
}

func (fc *FlowControl) Direction() FlowDirection { return fc.direction }

func (fc *FlowControl) ObjectKind() Kind             { return KindFlowControl }
func (fc *FlowControl) PropertyRange() PropertyRange { return RangeFlowControl }

func (fc *FlowControl) GetUint64(id PropertyID, index int) (uint64, Code) {
	if v, code, ok := universalUint64(fc, id); ok {
		return v, code
	}
	if code := checkRange(fc.PropertyRange(), id); code != Success {
		return 0, code
	}
	switch id {
	case PropFlowControlID:
		return uint64(fc.id), Success
	case PropFlowControlStartTS:
		return uint64(fc.startTS), Success
	case PropFlowControlEndTS:
		return uint64(fc.endTS), Success
	case PropFlowControlTrackID:
		return fc.trackID, Success
	case PropFlowControlLevel:
		return uint64(fc.level), Success
	case PropFlowControlDirection:
		return uint64(fc.direction), Success
	case PropFlowControlNameStrIndex:
		return uint64(fc.nameIdx), Success
	case PropFlowControlCategoryStrIndex:
		return uint64(fc.catIdx), Success
	default:
		return 0, InvalidEnum
	}
}

func (fc *FlowControl) MemoryUsageInclusive() uint64 { return fc.MemoryUsageExclusive() }
func (fc *FlowControl) MemoryUsageExclusive() uint64 { return 56 }
