package profctl

// Sample is a leaf data point on a sample Track: a scalar value at a point
// in time. A Graph fetch over a sample Track may coalesce many source
// samples falling in the same bin into one synthetic Sample exposing
// min/mean/median/max and min-ts/max-ts aggregates; a bin with exactly one
// source sample is returned as a non-synthetic Sample with no children.
type Sample struct {
	unhandledAccessors

	timestamp int64
	value     float64
	synthetic bool
	minV      float64
	meanV     float64
	medianV   float64
	maxV      float64
	minTS     int64
	maxTS     int64
}

const (
	PropSampleTimestamp PropertyID = RangeSample.First + iota
	PropSampleValue
	PropSampleIsSynthetic
	PropSampleMin
	PropSampleMean
	PropSampleMedian
	PropSampleMax
	PropSampleMinTS
	PropSampleMaxTS
)

// NewSample returns a non-synthetic Sample: a single source data point with
// no aggregate children.
func NewSample(timestamp int64, value float64) *Sample {
	return &Sample{timestamp: timestamp, value: value}
}

// NewSyntheticSample returns a bin-coalesced Sample exposing the aggregate
// statistics of every source sample folded into it.
func NewSyntheticSample(binCenter int64, min, mean, median, max float64, minTS, maxTS int64) *Sample {
	return &Sample{
		timestamp: binCenter,
		value:     mean,
		synthetic: true,
		minV:      min,
		meanV:     mean,
		medianV:   median,
		maxV:      max,
		minTS:     minTS,
		maxTS:     maxTS,
	}
}

func (s *Sample) Timestamp() int64  { return s.timestamp }
func (s *Sample) Value() float64    { return s.value }
func (s *Sample) IsSynthetic() bool { return s.synthetic }

func (s *Sample) ObjectKind() Kind             { return KindSample }
func (s *Sample) PropertyRange() PropertyRange { return RangeSample }

func (s *Sample) GetUint64(id PropertyID, index int) (uint64, Code) {
	if v, code, ok := universalUint64(s, id); ok {
		return v, code
	}
	if code := checkRange(s.PropertyRange(), id); code != Success {
		return 0, code
	}
	switch id {
	case PropSampleTimestamp:
		return uint64(s.timestamp), Success
	case PropSampleIsSynthetic:
		return boolToUint64(s.synthetic), Success
	case PropSampleMinTS:
		return uint64(s.minTS), Success
	case PropSampleMaxTS:
		return uint64(s.maxTS), Success
	default:
		return 0, InvalidEnum
	}
}

func (s *Sample) GetFloat64(id PropertyID, index int) (float64, Code) {
	if code := checkRange(s.PropertyRange(), id); code != Success {
		return 0, code
	}
	switch id {
	case PropSampleValue:
		return s.value, Success
	case PropSampleMin:
		return s.minV, Success
	case PropSampleMean:
		return s.meanV, Success
	case PropSampleMedian:
		return s.medianV, Success
	case PropSampleMax:
		return s.maxV, Success
	default:
		return 0, InvalidEnum
	}
}

func (s *Sample) MemoryUsageInclusive() uint64 { return s.MemoryUsageExclusive() }
func (s *Sample) MemoryUsageExclusive() uint64 { return 64 }

func boolToUint64(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
