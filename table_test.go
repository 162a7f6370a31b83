package profctl

import "testing"

func TestTableSetRowsAndCell(t *testing.T) {
	tbl := NewTable(1, 0, []StringIndex{1, 2})
	tbl.SetRows([]Cell{
		NewUint64Cell(10), NewStringCell("a"),
		NewUint64Cell(20), NewStringCell("b"),
	}, 2)

	if tbl.NumRows() != 2 {
		t.Fatalf("expected 2 rows, got %d", tbl.NumRows())
	}

	v, code := tbl.Cell(1, 0).Uint64()
	if code != Success || v != 20 {
		t.Fatalf("Cell(1,0) = %d, %v; want 20, Success", v, code)
	}

	s, code := tbl.Cell(0, 1).String()
	if code != Success || s != "a" {
		t.Fatalf("Cell(0,1) = %q, %v; want \"a\", Success", s, code)
	}

	if tbl.Cell(5, 0) != nil {
		t.Fatalf("expected nil for out-of-range row")
	}
}

func TestTableGetFloat64GetStringRejectIDsOutsideRange(t *testing.T) {
	tbl := NewTable(1, 0, []StringIndex{1})
	tbl.SetRows([]Cell{NewUint64Cell(10)}, 1)

	outsideID := RangeTrack.First // a different object's property block entirely

	if _, code := tbl.GetFloat64(outsideID, 0); code != InvalidEnum {
		t.Fatalf("GetFloat64 with out-of-range id = %v, want InvalidEnum", code)
	}
	if _, code := tbl.GetString(outsideID, 0, make([]byte, 16)); code != InvalidEnum {
		t.Fatalf("GetString with out-of-range id = %v, want InvalidEnum", code)
	}

	// An id inside Table's own range but not PropTableCellIndexed must still
	// report InvalidType for these two accessors.
	if _, code := tbl.GetFloat64(PropTableNumRows, 0); code != InvalidType {
		t.Fatalf("GetFloat64(PropTableNumRows) = %v, want InvalidType", code)
	}
}

func TestTableTombstone(t *testing.T) {
	tbl := NewTable(1, 0, nil)
	if tbl.AllDataReady() {
		t.Fatalf("fresh table should not be AllDataReady")
	}
	tbl.MarkComplete()
	if !tbl.AllDataReady() {
		t.Fatalf("expected AllDataReady after MarkComplete")
	}
}
