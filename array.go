package profctl

// Array is a fixed-length vector of data cells. It is the result container
// returned by graph and table fetches: SetUint64(PropArrayNumEntries, ...)
// resizes it, and EntryIndexed retrieves each cell. An Array does not own
// the objects whose handles it stores unless the caller explicitly adopts
// them (see eventArena.Retain).
type Array struct {
	unhandledAccessors
	entries []Cell
}

const (
	// PropArrayNumEntries is the number of cells currently in the array.
	PropArrayNumEntries PropertyID = RangeArray.First + iota
	// PropArrayEntryIndexed reads/writes the cell at the given index.
	PropArrayEntryIndexed
)

// NewArray returns an empty array.
func NewArray() *Array { return &Array{} }

// NewArrayOfSize returns an array pre-sized to n zero-valued cells.
func NewArrayOfSize(n int) *Array {
	a := &Array{entries: make([]Cell, n)}
	return a
}

// Len returns the number of entries.
func (a *Array) Len() int { return len(a.entries) }

// Resize changes the number of entries, truncating or zero-extending.
func (a *Array) Resize(n int) {
	if n < 0 {
		n = 0
	}
	switch {
	case n <= len(a.entries):
		a.entries = a.entries[:n]
	default:
		a.entries = append(a.entries, make([]Cell, n-len(a.entries))...)
	}
}

// At returns a pointer to the cell at index, or nil if out of range.
func (a *Array) At(index int) *Cell {
	if index < 0 || index >= len(a.entries) {
		return nil
	}
	return &a.entries[index]
}

// Append adds a cell to the end of the array.
func (a *Array) Append(c Cell) {
	a.entries = append(a.entries, c)
}

// Entries returns the underlying cell slice. Callers must not retain it
// past the Array's lifetime.
func (a *Array) Entries() []Cell { return a.entries }

func (a *Array) ObjectKind() Kind              { return KindArray }
func (a *Array) PropertyRange() PropertyRange  { return RangeArray }

func (a *Array) GetUint64(id PropertyID, index int) (uint64, Code) {
	if v, code, ok := universalUint64(a, id); ok {
		return v, code
	}
	if code := checkRange(a.PropertyRange(), id); code != Success {
		return 0, code
	}
	switch id {
	case PropArrayNumEntries:
		return uint64(len(a.entries)), Success
	case PropArrayEntryIndexed:
		c := a.At(index)
		if c == nil {
			return 0, OutOfRange
		}
		return c.Uint64()
	default:
		return 0, InvalidEnum
	}
}

func (a *Array) GetFloat64(id PropertyID, index int) (float64, Code) {
	if code := checkRange(a.PropertyRange(), id); code != Success {
		return 0, code
	}
	if id != PropArrayEntryIndexed {
		return 0, InvalidType
	}
	c := a.At(index)
	if c == nil {
		return 0, OutOfRange
	}
	return c.Float64()
}

func (a *Array) GetString(id PropertyID, index int, buf []byte) (int, Code) {
	if code := checkRange(a.PropertyRange(), id); code != Success {
		return 0, code
	}
	if id != PropArrayEntryIndexed {
		return 0, InvalidType
	}
	c := a.At(index)
	if c == nil {
		return 0, OutOfRange
	}
	s, code := c.String()
	if code != Success {
		return 0, code
	}
	return copyString(s, buf), Success
}

func (a *Array) GetObject(id PropertyID, index int) (Handle, Code) {
	if code := checkRange(a.PropertyRange(), id); code != Success {
		return nil, code
	}
	if id != PropArrayEntryIndexed {
		return nil, InvalidType
	}
	c := a.At(index)
	if c == nil {
		return nil, OutOfRange
	}
	return c.Object()
}

func (a *Array) SetUint64(id PropertyID, index int, v uint64) Code {
	if code := checkRange(a.PropertyRange(), id); code != Success {
		return code
	}
	switch id {
	case PropArrayNumEntries:
		a.Resize(int(v))
		return Success
	case PropArrayEntryIndexed:
		c := a.At(index)
		if c == nil {
			return OutOfRange
		}
		c.Reset()
		return c.SetUint64(v)
	default:
		return InvalidEnum
	}
}

func (a *Array) SetFloat64(id PropertyID, index int, v float64) Code {
	if id != PropArrayEntryIndexed {
		return InvalidEnum
	}
	c := a.At(index)
	if c == nil {
		return OutOfRange
	}
	c.Reset()
	return c.SetFloat64(v)
}

func (a *Array) SetString(id PropertyID, index int, v string) Code {
	if id != PropArrayEntryIndexed {
		return InvalidEnum
	}
	c := a.At(index)
	if c == nil {
		return OutOfRange
	}
	c.Reset()
	return c.SetString(v)
}

func (a *Array) SetObject(id PropertyID, index int, v Handle) Code {
	if id != PropArrayEntryIndexed {
		return InvalidEnum
	}
	c := a.At(index)
	if c == nil {
		return OutOfRange
	}
	c.Reset()
	return c.SetObject(v)
}

func (a *Array) MemoryUsageInclusive() uint64 { return a.MemoryUsageExclusive() }

func (a *Array) MemoryUsageExclusive() uint64 {
	return uint64(len(a.entries)) * 32
}

//
//
//

// copyString copies s into buf (up to len(buf) bytes) and returns the
// number of bytes copied. With a nil buf it copies nothing and returns
// len(s), the required length exclusive of any terminator, per §4.1's
// "GetString with a null buffer returns the required length" contract.
// Passing a nil buf is how a caller probes the length.
func copyString(s string, buf []byte) int {
	if buf == nil {
		return len(s)
	}
	n := copy(buf, s)
	return n
}

// universalUint64 answers the two ids every object must honor regardless of
// its own property range: MemoryUsageInclusive and MemoryUsageExclusive.
func universalUint64(h Handle, id PropertyID) (uint64, Code, bool) {
	switch id {
	case PropMemoryUsageInclusive:
		return h.MemoryUsageInclusive(), Success, true
	case PropMemoryUsageExclusive:
		return h.MemoryUsageExclusive(), Success, true
	default:
		return 0, Success, false
	}
}
