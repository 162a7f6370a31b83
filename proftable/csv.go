package proftable

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/proftrace/profctl"
)

// ExportCSV writes columnNames as a header row and then every row of t to w
// as CSV. String-valued cells are written as stored and interned-index
// columns as their numeric index; strings is not consulted (see
// ResolveStringColumn for index lookups). Handle-valued cells are rendered
// as their object kind, since a raw pointer means nothing in a CSV file.
func ExportCSV(w io.Writer, t *profctl.Table, strings *profctl.StringTable, columnNames []string) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(columnNames); err != nil {
		return err
	}

	numCols := t.NumColumns()
	row := make([]string, numCols)
	for r := 0; r < t.NumRows(); r++ {
		for c := 0; c < numCols; c++ {
			row[c] = cellString(t.Cell(r, c), strings)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func cellString(c *profctl.Cell, strings *profctl.StringTable) string {
	if c == nil {
		return ""
	}
	switch c.Type() {
	case profctl.PrimitiveUint64:
		v, _ := c.Uint64()
		return fmt.Sprintf("%d", v)
	case profctl.PrimitiveFloat64:
		v, _ := c.Float64()
		return fmt.Sprintf("%g", v)
	case profctl.PrimitiveString:
		s, _ := c.String()
		return s
	case profctl.PrimitiveHandle:
		h, _ := c.Object()
		if h == nil {
			return ""
		}
		return h.ObjectKind().String()
	default:
		return ""
	}
}

// ResolveStringColumn reads the cell at (row, col) as a StringIndex and
// looks it up in strings, for columns that store interned names rather
// than inline strings.
func ResolveStringColumn(t *profctl.Table, row, col int, strings *profctl.StringTable) (string, bool) {
	c := t.Cell(row, col)
	if c == nil {
		return "", false
	}
	idx, code := c.Uint64()
	if code != profctl.Success {
		return "", false
	}
	return strings.Lookup(profctl.StringIndex(idx))
}
