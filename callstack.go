package profctl

// Frame is one parsed stack-trace entry. A CallStack is emitted only when at
// least one field is non-empty (§4.8): symbol JSON blobs yield file/pc/name,
// codeline JSON blobs yield line-name/line-address.
type Frame struct {
	File        string
	PC          uint64
	Symbol      string
	LineName    string
	LineAddress uint64
}

func (f Frame) isEmpty() bool {
	return f.File == "" && f.PC == 0 && f.Symbol == "" && f.LineName == "" && f.LineAddress == 0
}

// CallStack is a fetched-on-demand list of stack frames for one Event,
// keyed by event id (§3, §4.8).
type CallStack struct {
	unhandledAccessors

	eventID EventID
	frames  []Frame
}

const (
	PropCallStackEventID PropertyID = RangeCallStack.First + iota
	PropCallStackNumFrames
	PropCallStackFrameFileIndexed
	PropCallStackFramePCIndexed
	PropCallStackFrameSymbolIndexed
	PropCallStackFrameLineNameIndexed
	PropCallStackFrameLineAddressIndexed
)

// NewCallStack builds a CallStack from parsed frames, dropping any frame
// whose fields are all empty.
func NewCallStack(eventID EventID, frames []Frame) *CallStack {
	kept := make([]Frame, 0, len(frames))
	for _, f := range frames {
		if !f.isEmpty() {
			kept = append(kept, f)
		}
	}
	return &CallStack{eventID: eventID, frames: kept}
}

func (cs *CallStack) EventID() EventID { return cs.eventID }
func (cs *CallStack) Frames() []Frame  { return cs.frames }

func (cs *CallStack) ObjectKind() Kind             { return KindCallStack }
func (cs *CallStack) PropertyRange() PropertyRange { return RangeCallStack }

func (cs *CallStack) GetUint64(id PropertyID, index int) (uint64, Code) {
	if v, code, ok := universalUint64(cs, id); ok {
		return v, code
	}
	if code := checkRange(cs.PropertyRange(), id); code != Success {
		return 0, code
	}
	switch id {
	case PropCallStackEventID:
		return uint64(cs.eventID), Success
	case PropCallStackNumFrames:
		return uint64(len(cs.frames)), Success
	case PropCallStackFramePCIndexed:
		f, code := cs.frame(index)
		if code != Success {
			return 0, code
		}
		return f.PC, Success
	case PropCallStackFrameLineAddressIndexed:
		f, code := cs.frame(index)
		if code != Success {
			return 0, code
		}
		return f.LineAddress, Success
	default:
		return 0, InvalidEnum
	}
}

func (cs *CallStack) GetString(id PropertyID, index int, buf []byte) (int, Code) {
	if code := checkRange(cs.PropertyRange(), id); code != Success {
		return 0, code
	}
	var s string
	switch id {
	case PropCallStackFrameFileIndexed:
		f, code := cs.frame(index)
		if code != Success {
			return 0, code
		}
		s = f.File
	case PropCallStackFrameSymbolIndexed:
		f, code := cs.frame(index)
		if code != Success {
			return 0, code
		}
		s = f.Symbol
	case PropCallStackFrameLineNameIndexed:
		f, code := cs.frame(index)
		if code != Success {
			return 0, code
		}
		s = f.LineName
	default:
		return 0, InvalidEnum
	}
	return copyString(s, buf), Success
}

func (cs *CallStack) frame(index int) (Frame, Code) {
	if index < 0 || index >= len(cs.frames) {
		return Frame{}, OutOfRange
	}
	return cs.frames[index], Success
}

func (cs *CallStack) MemoryUsageInclusive() uint64 { return cs.MemoryUsageExclusive() }
func (cs *CallStack) MemoryUsageExclusive() uint64 { return uint64(len(cs.frames)) * 48 }
