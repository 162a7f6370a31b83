package profcompute

import "testing"

func TestBlockStatsTablesEnumeratesOnePerSubsystem(t *testing.T) {
	if len(BlockStatsTables) != 3 {
		t.Fatalf("expected 3 block-level stats tables, got %d", len(BlockStatsTables))
	}
}

func TestRooflinePlotsEnumeratesFourPrecisions(t *testing.T) {
	if len(RooflinePlots) != 4 {
		t.Fatalf("expected 4 roofline plots, got %d", len(RooflinePlots))
	}
	want := map[PlotName]bool{
		PlotRooflineFP64: true, PlotRooflineFP32: true,
		PlotRooflineFP16: true, PlotRooflineInt8: true,
	}
	for _, p := range RooflinePlots {
		if !want[p] {
			t.Fatalf("unexpected plot %q in RooflinePlots", p)
		}
	}
}

func TestRooflineSeriesIsScatter(t *testing.T) {
	cases := []struct {
		series  string
		groupBy RooflineGroupBy
		want    bool
	}{
		{"Kernel: matmul", RooflineByKernel, true},
		{"Kernel: matmul", RooflineByDispatch, false},
		{"Dispatch #4", RooflineByDispatch, true},
		{"Dispatch #4", RooflineByKernel, false},
		{"FP64 Peak", RooflineByKernel, false},
		{"FP64 Peak", RooflineByDispatch, false},
	}
	for _, c := range cases {
		if got := RooflineSeriesIsScatter(c.series, c.groupBy); got != c.want {
			t.Fatalf("RooflineSeriesIsScatter(%q, %q) = %v, want %v", c.series, c.groupBy, got, c.want)
		}
	}
}
