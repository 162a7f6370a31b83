// Package proftable layers reporting helpers -- histograms and CSV export
// -- on top of a profctl.Table's already-fetched rows.
package proftable

import (
	"sort"

	"github.com/proftrace/profctl"
)

// Histogram buckets a column of a Table cumulatively: bucket i counts every
// row whose value is >= Buckets[i], mirroring the cumulative "duration >=
// bucket" semantics used for trace-duration stats.
type Histogram struct {
	Buckets []float64
	Counts  []int
}

// BuildHistogram scans column col of t and cumulatively buckets it by
// buckets, which need not be sorted on input (a sorted copy is used).
func BuildHistogram(t *profctl.Table, col int, buckets []float64) *Histogram {
	sorted := append([]float64(nil), buckets...)
	sort.Float64s(sorted)

	h := &Histogram{Buckets: sorted, Counts: make([]int, len(sorted))}

	for row := 0; row < t.NumRows(); row++ {
		c := t.Cell(row, col)
		if c == nil {
			continue
		}
		v, code := c.Float64()
		if code != profctl.Success {
			if uv, ucode := c.Uint64(); ucode == profctl.Success {
				v = float64(uv)
			} else {
				continue
			}
		}
		for i, b := range h.Buckets {
			if b > v {
				break
			}
			h.Counts[i]++
		}
	}

	return h
}
