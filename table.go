package profctl

// Table is a paged, column-named view onto a fixed-enumeration query result
// (§4.11): KernelList, DispatchList, SysInfo, SpeedOfLight, Roofline, and
// friends are all Tables distinguished only by name and column set. Rows
// are stored row-major in a flat Array of length NumRows*NumColumns.
type Table struct {
	unhandledAccessors

	id          uint64
	name        StringIndex
	columns     []StringIndex
	rows        *Array
	numRows     int
	allDataReady bool
}

const (
	PropTableID PropertyID = RangeTable.First + iota
	PropTableNameStrIndex
	PropTableNumColumns
	PropTableColumnNameIndexed
	PropTableNumRows
	PropTableCellIndexed // index = row*NumColumns + col
	PropTableAllDataReady
)

// NewTable returns an empty, not-yet-populated table with the given column
// names already fixed (§4.11: column sets are part of the fixed
// enumeration, never discovered at runtime).
func NewTable(id uint64, name StringIndex, columns []StringIndex) *Table {
	return &Table{id: id, name: name, columns: columns, rows: NewArray()}
}

func (t *Table) ID() uint64      { return t.id }
func (t *Table) NumColumns() int { return len(t.columns) }
func (t *Table) NumRows() int    { return t.numRows }

// SetRows replaces the table's row data. rows must contain exactly
// numRows*NumColumns() cells, row-major.
func (t *Table) SetRows(rows []Cell, numRows int) {
	t.rows = NewArrayOfSize(len(rows))
	for i, c := range rows {
		*t.rows.At(i) = c
	}
	t.numRows = numRows
}

// Cell returns the cell at (row, col), or nil if out of range.
func (t *Table) Cell(row, col int) *Cell {
	if row < 0 || row >= t.numRows || col < 0 || col >= len(t.columns) {
		return nil
	}
	return t.rows.At(row*len(t.columns) + col)
}

// MarkComplete flips AllDataReady once the query driving this table has
// returned every row (§4.7's tombstone discipline, reused here).
func (t *Table) MarkComplete() { t.allDataReady = true }

func (t *Table) AllDataReady() bool { return t.allDataReady }

func (t *Table) ObjectKind() Kind             { return KindTable }
func (t *Table) PropertyRange() PropertyRange { return RangeTable }

func (t *Table) GetUint64(id PropertyID, index int) (uint64, Code) {
	if v, code, ok := universalUint64(t, id); ok {
		return v, code
	}
	if code := checkRange(t.PropertyRange(), id); code != Success {
		return 0, code
	}
	switch id {
	case PropTableID:
		return t.id, Success
	case PropTableNameStrIndex:
		return uint64(t.name), Success
	case PropTableNumColumns:
		return uint64(len(t.columns)), Success
	case PropTableColumnNameIndexed:
		if index < 0 || index >= len(t.columns) {
			return 0, OutOfRange
		}
		return uint64(t.columns[index]), Success
	case PropTableNumRows:
		return uint64(t.numRows), Success
	case PropTableCellIndexed:
		c := t.rows.At(index)
		if c == nil {
			return 0, OutOfRange
		}
		return c.Uint64()
	case PropTableAllDataReady:
		return boolToUint64(t.allDataReady), Success
	default:
		return 0, InvalidEnum
	}
}

func (t *Table) GetFloat64(id PropertyID, index int) (float64, Code) {
	if code := checkRange(t.PropertyRange(), id); code != Success {
		return 0, code
	}
	if id != PropTableCellIndexed {
		return 0, InvalidType
	}
	c := t.rows.At(index)
	if c == nil {
		return 0, OutOfRange
	}
	return c.Float64()
}

func (t *Table) GetString(id PropertyID, index int, buf []byte) (int, Code) {
	if code := checkRange(t.PropertyRange(), id); code != Success {
		return 0, code
	}
	if id != PropTableCellIndexed {
		return 0, InvalidType
	}
	c := t.rows.At(index)
	if c == nil {
		return 0, OutOfRange
	}
	s, code := c.String()
	if code != Success {
		return 0, code
	}
	return copyString(s, buf), Success
}

func (t *Table) MemoryUsageInclusive() uint64 {
	return t.MemoryUsageExclusive() + t.rows.MemoryUsageInclusive()
}

func (t *Table) MemoryUsageExclusive() uint64 {
	return uint64(len(t.columns))*8 + 48
}
