package profctl

// Kind tags the concrete object type behind a Handle. Kinds are stable
// across versions: new kinds are appended, never renumbered, so a kind id
// captured by an old client remains meaningful against a newer Controller.
type Kind int

const (
	KindController Kind = iota
	KindTimeline
	KindTrack
	KindSample
	KindEvent
	KindFlowControl
	KindCallStack
	KindFuture
	KindGraph
	KindTable
	KindView
	KindArray
	KindArguments
	KindNode
	KindProcessor
	KindExtData
	KindArgumentData
	KindProcess
	KindThread
	KindQueue
	KindStream
	KindCounter
	KindPlotSeries
)

func (k Kind) String() string {
	names := [...]string{
		"Controller", "Timeline", "Track", "Sample", "Event", "FlowControl",
		"CallStack", "Future", "Graph", "Table", "View", "Array", "Arguments",
		"Node", "Processor", "ExtData", "ArgumentData", "Process", "Thread",
		"Queue", "Stream", "Counter", "PlotSeries",
	}
	if int(k) < 0 || int(k) >= len(names) {
		return "Unknown"
	}
	return names[k]
}

// PropertyID is a 32-bit namespaced integer; each object kind reserves a
// disjoint, 0x10000000-spaced block so that a future RPC boundary can
// dispatch by range alone.
type PropertyID uint32

// PropertyRange is the half-open id range [First, Last) an object kind
// handles. An id outside this range always yields InvalidEnum.
type PropertyRange struct {
	First PropertyID
	Last  PropertyID
}

// Contains reports whether id falls inside the range.
func (r PropertyRange) Contains(id PropertyID) bool {
	return id >= r.First && id < r.Last
}

// Block-spacing for property id ranges, mirroring the 0x10000000 stride
// described in §6.
const propertyBlockStride PropertyID = 0x10000000

func propertyBlock(n int) PropertyRange {
	first := PropertyID(n) * propertyBlockStride
	return PropertyRange{First: first, Last: first + propertyBlockStride}
}

var (
	RangeController   = propertyBlock(0)
	RangeTimeline     = propertyBlock(1)
	RangeTrack        = propertyBlock(2)
	RangeSample       = propertyBlock(3)
	RangeEvent        = propertyBlock(4)
	RangeFlowControl  = propertyBlock(5)
	RangeCallStack    = propertyBlock(6)
	RangeFuture       = propertyBlock(7)
	RangeGraph        = propertyBlock(8)
	RangeTable        = propertyBlock(9)
	RangeView         = propertyBlock(10)
	RangeArray        = propertyBlock(11)
	RangeArguments    = propertyBlock(12)
	RangeNode         = propertyBlock(13)
	RangeProcessor    = propertyBlock(14)
	RangeExtData      = propertyBlock(15)
	RangeArgumentData = propertyBlock(16)
)

// Universal property ids honored by every accessor, regardless of kind.
const (
	PropMemoryUsageInclusive PropertyID = 0xFFFF0000
	PropMemoryUsageExclusive PropertyID = 0xFFFF0001
)

// Handle is the uniform interface every Controller-owned object implements.
// The view layer reads every field through this interface so it never needs
// to switch on concrete Go types (§4.1).
type Handle interface {
	// ObjectKind returns the stable kind tag for this object.
	ObjectKind() Kind

	// PropertyRange returns the half-open id range this object handles.
	PropertyRange() PropertyRange

	// GetUint64 reads a u64 property. index selects an element for indexed
	// properties; it is ignored for scalar properties.
	GetUint64(id PropertyID, index int) (uint64, Code)

	// GetFloat64 reads an f64 property.
	GetFloat64(id PropertyID, index int) (float64, Code)

	// GetString reads a string property. If buf is nil, the required length
	// (excluding NUL) is returned via n with Success; otherwise up to
	// len(buf) bytes are copied into buf and n is the number copied.
	GetString(id PropertyID, index int, buf []byte) (n int, code Code)

	// GetObject reads a Handle-valued property.
	GetObject(id PropertyID, index int) (Handle, Code)

	// SetUint64 writes a u64 property.
	SetUint64(id PropertyID, index int, v uint64) Code

	// SetFloat64 writes an f64 property.
	SetFloat64(id PropertyID, index int, v float64) Code

	// SetString writes a string property.
	SetString(id PropertyID, index int, v string) Code

	// SetObject writes a Handle-valued property.
	SetObject(id PropertyID, index int, v Handle) Code

	// MemoryUsageInclusive returns self plus every transitively owned child.
	MemoryUsageInclusive() uint64

	// MemoryUsageExclusive returns self alone.
	MemoryUsageExclusive() uint64
}

// unhandledAccessors is embedded by every concrete object to supply the
// default "out of range or unhandled" behavior for the eight dispatch
// operations, so each object only needs to override what it actually
// handles. This is the tagged-variant analogue of the C++ base-class
// UnhandledProperty fallback described in §4.1 and §9.
type unhandledAccessors struct{}

func (unhandledAccessors) GetUint64(PropertyID, int) (uint64, Code)        { return 0, InvalidEnum }
func (unhandledAccessors) GetFloat64(PropertyID, int) (float64, Code)      { return 0, InvalidEnum }
func (unhandledAccessors) GetString(PropertyID, int, []byte) (int, Code)   { return 0, InvalidEnum }
func (unhandledAccessors) GetObject(PropertyID, int) (Handle, Code)        { return nil, InvalidEnum }
func (unhandledAccessors) SetUint64(PropertyID, int, uint64) Code          { return InvalidEnum }
func (unhandledAccessors) SetFloat64(PropertyID, int, float64) Code        { return InvalidEnum }
func (unhandledAccessors) SetString(PropertyID, int, string) Code          { return InvalidEnum }
func (unhandledAccessors) SetObject(PropertyID, int, Handle) Code          { return InvalidEnum }

// checkRange is a small helper objects call before their own switch, so
// ids genuinely outside their declared block short-circuit to InvalidEnum
// without needing a case in every method.
func checkRange(r PropertyRange, id PropertyID) Code {
	if !r.Contains(id) {
		return InvalidEnum
	}
	return Success
}

//
//
//

// As narrows an opaque Handle to a concrete *T, the Go equivalent of the
// Reference Guard (§4.4): it reads the handle's kind tag, and if it matches
// T's kind, returns the typed pointer and true. It never frees h; ownership
// is unaffected by narrowing.
func As[T Handle](h Handle) (T, bool) {
	var zero T
	if h == nil {
		return zero, false
	}
	t, ok := h.(T)
	if !ok {
		return zero, false
	}
	return t, true
}

// Dispatch is the external-facing, id-based accessor shim described in §9's
// "typed facet traits" redesign note: it exists so a future RPC/FFI boundary
// can drive every object through one (handle, id, index) call, while
// in-process Go callers use the typed Handle methods directly.
type Dispatch struct{}

// GetUint64 forwards to h's typed accessor, translating a nil handle into
// InvalidArgument.
func (Dispatch) GetUint64(h Handle, id PropertyID, index int) (uint64, Code) {
	if h == nil {
		return 0, InvalidArgument
	}
	return h.GetUint64(id, index)
}

// GetFloat64 forwards to h's typed accessor.
func (Dispatch) GetFloat64(h Handle, id PropertyID, index int) (float64, Code) {
	if h == nil {
		return 0, InvalidArgument
	}
	return h.GetFloat64(id, index)
}

// GetString forwards to h's typed accessor.
func (Dispatch) GetString(h Handle, id PropertyID, index int, buf []byte) (int, Code) {
	if h == nil {
		return 0, InvalidArgument
	}
	return h.GetString(id, index, buf)
}

// GetObject forwards to h's typed accessor.
func (Dispatch) GetObject(h Handle, id PropertyID, index int) (Handle, Code) {
	if h == nil {
		return nil, InvalidArgument
	}
	return h.GetObject(id, index)
}
