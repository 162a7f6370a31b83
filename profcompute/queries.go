// Package profcompute names the fixed enumeration of tables, plots, and
// scalar metrics a Controller can compute over a loaded trace (§4.11), and
// derives the handful of ratio-based metrics that are cheaper to compute
// client-side than to round-trip through the Database port a second time.
package profcompute

import (
	"strings"

	"github.com/proftrace/profctl"
)

// TableName enumerates the fixed table queries a Controller serves.
type TableName string

const (
	TableKernelList        TableName = "kernel_list"
	TableDispatchList      TableName = "dispatch_list"
	TableSysInfo           TableName = "sys_info"
	TableSpeedOfLight      TableName = "speed_of_light"
	TableBlockStatsCompute TableName = "block_stats_compute"
	TableBlockStatsMemory  TableName = "block_stats_memory"
	TableBlockStatsFabric  TableName = "block_stats_fabric"
	TableRoofline          TableName = "roofline"
)

// BlockStatsTables lists the block-level stats tables, one per GPU
// subsystem (§4.11); each shares the speed_of_light row shape but scopes
// its rows to that subsystem's counters.
var BlockStatsTables = []TableName{
	TableBlockStatsCompute,
	TableBlockStatsMemory,
	TableBlockStatsFabric,
}

// PlotName enumerates the fixed plot queries a Controller serves. Each
// resolves to a Graph over a synthetic Track the Database port builds for
// the occasion, rather than a user-visible Timeline Track.
type PlotName string

const (
	PlotPerKernelDurationPie PlotName = "per_kernel_duration_pie"
	PlotPerKernelDurationBar PlotName = "per_kernel_duration_bar"
	PlotCacheBehavior        PlotName = "cache_behavior"
	PlotInstructionMix       PlotName = "instruction_mix"
	PlotRooflineFP64         PlotName = "roofline_fp64"
	PlotRooflineFP32         PlotName = "roofline_fp32"
	PlotRooflineFP16         PlotName = "roofline_fp16"
	PlotRooflineInt8         PlotName = "roofline_int8"
)

// RooflinePlots lists the four precision-scoped roofline plots (§4.11);
// each is grouped "by kernel" vs "by dispatch" per RooflineSeriesIsScatter.
var RooflinePlots = []PlotName{
	PlotRooflineFP64,
	PlotRooflineFP32,
	PlotRooflineFP16,
	PlotRooflineInt8,
}

// RooflineGroupBy selects which series in a roofline plot are the scatter
// overlay versus the always-shown ceiling lines (§4.11).
type RooflineGroupBy string

const (
	RooflineByKernel   RooflineGroupBy = "kernel"
	RooflineByDispatch RooflineGroupBy = "dispatch"
)

// RooflineSeriesIsScatter reports whether seriesName belongs to the scatter
// overlay for groupBy, per §4.11: a series is the overlay when its name
// contains "Kernel" or "Dispatch" and matches the selected grouping;
// everything else is a ceiling line and is always shown regardless of
// groupBy.
func RooflineSeriesIsScatter(seriesName string, groupBy RooflineGroupBy) bool {
	switch groupBy {
	case RooflineByKernel:
		return strings.Contains(seriesName, "Kernel")
	case RooflineByDispatch:
		return strings.Contains(seriesName, "Dispatch")
	default:
		return false
	}
}

// QueryRequestFor builds the profctl.QueryRequest for a fixed table or plot
// name, folding params in as-is; the Database port is the sole authority on
// what each name's Params schema is.
func QueryRequestFor(name string, params map[string]profctl.Cell) profctl.QueryRequest {
	return profctl.QueryRequest{Name: name, Params: params}
}
