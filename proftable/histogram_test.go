package proftable

import (
	"testing"

	"github.com/proftrace/profctl"
)

func TestBuildHistogramCumulative(t *testing.T) {
	tbl := profctl.NewTable(1, 0, []profctl.StringIndex{1})
	tbl.SetRows([]profctl.Cell{
		profctl.NewFloat64Cell(0.5),
		profctl.NewFloat64Cell(5),
		profctl.NewFloat64Cell(50),
	}, 3)

	h := BuildHistogram(tbl, 0, []float64{0, 1, 10, 100})

	want := []int{3, 2, 1, 0}
	for i, w := range want {
		if h.Counts[i] != w {
			t.Fatalf("bucket %d (>= %v): got %d, want %d", i, h.Buckets[i], h.Counts[i], w)
		}
	}
}
