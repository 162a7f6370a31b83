package profctl

// PrimitiveType enumerates the four primitive kinds a DataCell can hold.
type PrimitiveType int

const (
	// PrimitiveUint64 marks a cell holding a u64.
	PrimitiveUint64 PrimitiveType = iota
	// PrimitiveFloat64 marks a cell holding an f64.
	PrimitiveFloat64
	// PrimitiveString marks a cell holding an owned string copy.
	PrimitiveString
	// PrimitiveHandle marks a cell holding a non-owning Handle.
	PrimitiveHandle
)

func (t PrimitiveType) String() string {
	switch t {
	case PrimitiveUint64:
		return "uint64"
	case PrimitiveFloat64:
		return "float64"
	case PrimitiveString:
		return "string"
	case PrimitiveHandle:
		return "handle"
	default:
		return "invalid"
	}
}

// Cell is a tagged-union value: exactly one of u64, f64, string, or handle.
// Copy and move are value-semantic; the string payload is uniquely owned by
// the cell, the handle payload is non-owning. Reading with the wrong
// accessor, or writing a new type without calling Reset first, returns
// InvalidType and leaves the cell unchanged.
type Cell struct {
	kind    PrimitiveType
	u64     uint64
	f64     float64
	str     string
	h       Handle
	touched bool // false only for a never-written cell; distinguishes that from an explicit zero value of kind's type
}

// Reset clears the cell back to its zero state, ready to hold any type.
func (c *Cell) Reset() {
	*c = Cell{}
}

// Type returns the primitive type currently held by the cell.
func (c *Cell) Type() PrimitiveType { return c.kind }

// NewUint64Cell returns a cell holding v as a u64.
func NewUint64Cell(v uint64) Cell { return Cell{kind: PrimitiveUint64, u64: v, touched: true} }

// NewFloat64Cell returns a cell holding v as an f64.
func NewFloat64Cell(v float64) Cell { return Cell{kind: PrimitiveFloat64, f64: v, touched: true} }

// NewStringCell returns a cell holding an owned copy of s.
func NewStringCell(s string) Cell { return Cell{kind: PrimitiveString, str: s, touched: true} }

// NewHandleCell returns a cell holding a non-owning reference to h.
func NewHandleCell(h Handle) Cell { return Cell{kind: PrimitiveHandle, h: h, touched: true} }

// Uint64 returns the cell's value if it holds a u64, else InvalidType.
func (c *Cell) Uint64() (uint64, Code) {
	if c.kind != PrimitiveUint64 {
		return 0, InvalidType
	}
	return c.u64, Success
}

// Float64 returns the cell's value if it holds an f64, else InvalidType.
func (c *Cell) Float64() (float64, Code) {
	if c.kind != PrimitiveFloat64 {
		return 0, InvalidType
	}
	return c.f64, Success
}

// String returns the cell's value if it holds a string, else InvalidType.
func (c *Cell) String() (string, Code) {
	if c.kind != PrimitiveString {
		return "", InvalidType
	}
	return c.str, Success
}

// Object returns the cell's handle if it holds one, else InvalidType.
func (c *Cell) Object() (Handle, Code) {
	if c.kind != PrimitiveHandle {
		return nil, InvalidType
	}
	return c.h, Success
}

// SetUint64 overwrites the cell with a u64 value. Per §4.2, changing a
// cell's type requires going through Reset first; SetUint64 honors that by
// only succeeding when the cell is empty or already a u64.
func (c *Cell) SetUint64(v uint64) Code {
	if c.kind != PrimitiveUint64 && !c.isZero() {
		return InvalidType
	}
	*c = NewUint64Cell(v)
	return Success
}

// SetFloat64 overwrites the cell with an f64 value, subject to the same
// type-stability rule as SetUint64.
func (c *Cell) SetFloat64(v float64) Code {
	if c.kind != PrimitiveFloat64 && !c.isZero() {
		return InvalidType
	}
	*c = NewFloat64Cell(v)
	return Success
}

// SetString overwrites the cell with a string value, subject to the same
// type-stability rule as SetUint64.
func (c *Cell) SetString(v string) Code {
	if c.kind != PrimitiveString && !c.isZero() {
		return InvalidType
	}
	*c = NewStringCell(v)
	return Success
}

// SetObject overwrites the cell with a handle value, subject to the same
// type-stability rule as SetUint64.
func (c *Cell) SetObject(v Handle) Code {
	if c.kind != PrimitiveHandle && !c.isZero() {
		return InvalidType
	}
	*c = NewHandleCell(v)
	return Success
}

// isZero reports whether the cell has never been written to, i.e. is still
// at its struct zero value. A cell explicitly set to a zero value (e.g.
// NewUint64Cell(0)) is touched and is therefore not considered zero, even
// though its fields compare equal to a never-written cell's.
func (c *Cell) isZero() bool {
	return !c.touched
}
