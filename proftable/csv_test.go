package proftable

import (
	"bytes"
	"strings"
	"testing"

	"github.com/proftrace/profctl"
)

func TestExportCSV(t *testing.T) {
	tbl := profctl.NewTable(1, 0, []profctl.StringIndex{1, 2})
	tbl.SetRows([]profctl.Cell{
		profctl.NewStringCell("memcpy"), profctl.NewUint64Cell(1200),
		profctl.NewStringCell("gemm"), profctl.NewUint64Cell(3400),
	}, 2)

	var buf bytes.Buffer
	if err := ExportCSV(&buf, tbl, profctl.NewStringTable(), []string{"name", "duration_ns"}); err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "name,duration_ns") {
		t.Fatalf("missing header, got:\n%s", out)
	}
	if !strings.Contains(out, "memcpy,1200") {
		t.Fatalf("missing first row, got:\n%s", out)
	}
	if !strings.Contains(out, "gemm,3400") {
		t.Fatalf("missing second row, got:\n%s", out)
	}
}
