package profcompute

import "github.com/proftrace/profctl"

// MetricName enumerates the scalar derived metrics computed from a
// speed-of-light Table's columns (§4.11).
type MetricName string

const (
	MetricCacheHitRate    MetricName = "cache_hit_rate"
	MetricFabricBandwidth MetricName = "fabric_bandwidth_gbps"
	MetricVGPRUsage       MetricName = "vgpr_usage"
	MetricSGPRUsage       MetricName = "sgpr_usage"
	MetricLDSUsage        MetricName = "lds_usage"
)

// CacheHitRate computes hits / (hits + misses), returning 0 when both are
// zero rather than dividing by zero.
func CacheHitRate(hits, misses uint64) float64 {
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}

// FabricBandwidth computes bytes transferred over a window in GB/s.
func FabricBandwidth(bytes uint64, windowNanos int64) float64 {
	if windowNanos <= 0 {
		return 0
	}
	seconds := float64(windowNanos) / 1e9
	gigabytes := float64(bytes) / 1e9
	return gigabytes / seconds
}

// RegisterUsage computes used / available for VGPR/SGPR/LDS occupancy
// metrics, all of which share the same used-over-available shape.
func RegisterUsage(used, available uint64) float64 {
	if available == 0 {
		return 0
	}
	return float64(used) / float64(available)
}

// SpeedOfLightRow is one row's worth of the columns a speed_of_light Table
// exposes, extracted via the accessors below rather than hand-indexing
// columns at every call site.
type SpeedOfLightRow struct {
	CacheHits      uint64
	CacheMisses    uint64
	FabricBytes    uint64
	WindowNanos    int64
	VGPRUsed       uint64
	VGPRAvailable  uint64
	SGPRUsed       uint64
	SGPRAvailable  uint64
	LDSUsed        uint64
	LDSAvailable   uint64
}

// Compute derives every scalar metric for one row of a speed_of_light
// Table.
func (r SpeedOfLightRow) Compute() map[MetricName]float64 {
	return map[MetricName]float64{
		MetricCacheHitRate:    CacheHitRate(r.CacheHits, r.CacheMisses),
		MetricFabricBandwidth: FabricBandwidth(r.FabricBytes, r.WindowNanos),
		MetricVGPRUsage:       RegisterUsage(r.VGPRUsed, r.VGPRAvailable),
		MetricSGPRUsage:       RegisterUsage(r.SGPRUsed, r.SGPRAvailable),
		MetricLDSUsage:        RegisterUsage(r.LDSUsed, r.LDSAvailable),
	}
}

// readUint64Column reads column col of row r in t as a uint64, treating any
// non-success read as zero -- a row with a missing column contributes
// nothing to the derived ratio rather than aborting the whole computation.
func readUint64Column(t *profctl.Table, row, col int) uint64 {
	c := t.Cell(row, col)
	if c == nil {
		return 0
	}
	v, code := c.Uint64()
	if code != profctl.Success {
		return 0
	}
	return v
}

// RowFromTable extracts a SpeedOfLightRow from row r of t, given the fixed
// column layout a speed_of_light Table always uses.
func RowFromTable(t *profctl.Table, row int) SpeedOfLightRow {
	return SpeedOfLightRow{
		CacheHits:     readUint64Column(t, row, 0),
		CacheMisses:   readUint64Column(t, row, 1),
		FabricBytes:   readUint64Column(t, row, 2),
		WindowNanos:   int64(readUint64Column(t, row, 3)),
		VGPRUsed:      readUint64Column(t, row, 4),
		VGPRAvailable: readUint64Column(t, row, 5),
		SGPRUsed:      readUint64Column(t, row, 6),
		SGPRAvailable: readUint64Column(t, row, 7),
		LDSUsed:       readUint64Column(t, row, 8),
		LDSAvailable:  readUint64Column(t, row, 9),
	}
}
