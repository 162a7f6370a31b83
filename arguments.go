package profctl

import (
	"errors"

	"github.com/proftrace/profctl/internal/perrors"
)

// Arguments is the filter/sort/paging request a table_fetch_async call
// carries (§4.11). Zero-valued fields mean "no constraint"; Normalize
// clamps Limit into range and records anything it had to correct into
// Problems, the way a malformed request is still served best-effort rather
// than rejected outright.
type Arguments struct {
	unhandledAccessors

	FilterColumn StringIndex
	FilterValue  string
	HasFilter    bool

	SortColumn    StringIndex
	SortDescending bool

	Offset int
	Limit  int

	Problems []string
}

const (
	argumentsLimitMin = 1
	argumentsLimitDef = 500
	argumentsLimitMax = 10000
)

const (
	PropArgumentsFilterColumnStrIndex PropertyID = RangeArguments.First + iota
	PropArgumentsFilterValue
	PropArgumentsSortColumnStrIndex
	PropArgumentsSortDescending
	PropArgumentsOffset
	PropArgumentsLimit
	PropArgumentsNumProblems
	PropArgumentsProblemIndexed
)

// Normalize clamps Limit to [1, 10000], defaulting to 500, and records a
// problem string for each correction it made. Call once before the
// Arguments is handed to a query.
func (a *Arguments) Normalize() {
	var corrections []error

	switch {
	case a.Limit <= 0:
		a.Limit = argumentsLimitDef
	case a.Limit < argumentsLimitMin:
		corrections = append(corrections, errors.New("limit below minimum, clamped to 1"))
		a.Limit = argumentsLimitMin
	case a.Limit > argumentsLimitMax:
		corrections = append(corrections, errors.New("limit above maximum, clamped to 10000"))
		a.Limit = argumentsLimitMax
	}

	if a.Offset < 0 {
		corrections = append(corrections, errors.New("negative offset, clamped to 0"))
		a.Offset = 0
	}

	a.Problems = perrors.Flatten(corrections...)
}

func (a *Arguments) ObjectKind() Kind             { return KindArguments }
func (a *Arguments) PropertyRange() PropertyRange { return RangeArguments }

func (a *Arguments) GetUint64(id PropertyID, index int) (uint64, Code) {
	if v, code, ok := universalUint64(a, id); ok {
		return v, code
	}
	if code := checkRange(a.PropertyRange(), id); code != Success {
		return 0, code
	}
	switch id {
	case PropArgumentsFilterColumnStrIndex:
		if !a.HasFilter {
			return 0, NotLoaded
		}
		return uint64(a.FilterColumn), Success
	case PropArgumentsSortColumnStrIndex:
		return uint64(a.SortColumn), Success
	case PropArgumentsSortDescending:
		return boolToUint64(a.SortDescending), Success
	case PropArgumentsOffset:
		return uint64(a.Offset), Success
	case PropArgumentsLimit:
		return uint64(a.Limit), Success
	case PropArgumentsNumProblems:
		return uint64(len(a.Problems)), Success
	default:
		return 0, InvalidEnum
	}
}

func (a *Arguments) GetString(id PropertyID, index int, buf []byte) (int, Code) {
	if code := checkRange(a.PropertyRange(), id); code != Success {
		return 0, code
	}
	var s string
	switch id {
	case PropArgumentsFilterValue:
		s = a.FilterValue
	case PropArgumentsProblemIndexed:
		if index < 0 || index >= len(a.Problems) {
			return 0, OutOfRange
		}
		s = a.Problems[index]
	default:
		return 0, InvalidEnum
	}
	return copyString(s, buf), Success
}

func (a *Arguments) SetUint64(id PropertyID, index int, v uint64) Code {
	if code := checkRange(a.PropertyRange(), id); code != Success {
		return code
	}
	switch id {
	case PropArgumentsFilterColumnStrIndex:
		a.FilterColumn = StringIndex(v)
		a.HasFilter = true
		return Success
	case PropArgumentsSortColumnStrIndex:
		a.SortColumn = StringIndex(v)
		return Success
	case PropArgumentsSortDescending:
		a.SortDescending = v != 0
		return Success
	case PropArgumentsOffset:
		a.Offset = int(v)
		return Success
	case PropArgumentsLimit:
		a.Limit = int(v)
		return Success
	default:
		return ReadOnlyError
	}
}

func (a *Arguments) SetString(id PropertyID, index int, v string) Code {
	if code := checkRange(a.PropertyRange(), id); code != Success {
		return code
	}
	if id != PropArgumentsFilterValue {
		return ReadOnlyError
	}
	a.FilterValue = v
	return Success
}

func (a *Arguments) MemoryUsageInclusive() uint64 { return a.MemoryUsageExclusive() }
func (a *Arguments) MemoryUsageExclusive() uint64 {
	return uint64(len(a.FilterValue)) + 48
}
