package profctl

// ExtDataCategory enumerates the free-form attachment category.
type ExtDataCategory int

const (
	ExtDataCategoryGeneric ExtDataCategory = iota
	ExtDataCategoryArgument
)

// ExtData is a schema-free key/value attachment on an Event, Track, or
// Topology node (§3). ArgumentData layers two extra fields and its own kind
// so the UI can distinguish call arguments from arbitrary extended data.
type ExtData struct {
	unhandledAccessors

	category     string
	name         string
	value        Cell
	categoryEnum ExtDataCategory
}

const (
	PropExtDataCategory PropertyID = RangeExtData.First + iota
	PropExtDataName
	PropExtDataValue
	PropExtDataCategoryEnum
)

// NewExtData builds a generic extended-data attachment.
func NewExtData(category, name string, value Cell) *ExtData {
	return &ExtData{category: category, name: name, value: value, categoryEnum: ExtDataCategoryGeneric}
}

func (ed *ExtData) ObjectKind() Kind             { return KindExtData }
func (ed *ExtData) PropertyRange() PropertyRange { return RangeExtData }

func (ed *ExtData) GetUint64(id PropertyID, index int) (uint64, Code) {
	if v, code, ok := universalUint64(ed, id); ok {
		return v, code
	}
	if code := checkRange(ed.PropertyRange(), id); code != Success {
		return 0, code
	}
	switch id {
	case PropExtDataCategoryEnum:
		return uint64(ed.categoryEnum), Success
	case PropExtDataValue:
		return ed.value.Uint64()
	default:
		return 0, InvalidEnum
	}
}

func (ed *ExtData) GetFloat64(id PropertyID, index int) (float64, Code) {
	if id != PropExtDataValue {
		return 0, InvalidEnum
	}
	return ed.value.Float64()
}

func (ed *ExtData) GetString(id PropertyID, index int, buf []byte) (int, Code) {
	if code := checkRange(ed.PropertyRange(), id); code != Success {
		return 0, code
	}
	var s string
	switch id {
	case PropExtDataCategory:
		s = ed.category
	case PropExtDataName:
		s = ed.name
	case PropExtDataValue:
		var code Code
		s, code = ed.value.String()
		if code != Success {
			return 0, code
		}
	default:
		return 0, InvalidEnum
	}
	return copyString(s, buf), Success
}

func (ed *ExtData) MemoryUsageInclusive() uint64 { return ed.MemoryUsageExclusive() }
func (ed *ExtData) MemoryUsageExclusive() uint64 {
	return uint64(len(ed.category) + len(ed.name) + 32)
}

//
//
//

// ArgumentData is an ExtData specialized for call arguments: it adds a
// position and declared argument type, and carries its own kind tag so
// the UI can distinguish it from arbitrary extended data (§4.8).
type ArgumentData struct {
	ExtData

	position int
	argType  string
}

const (
	PropArgumentDataPosition PropertyID = RangeArgumentData.First + iota
	PropArgumentDataType
)

// NewArgumentData builds a call-argument attachment at the given position.
func NewArgumentData(name string, value Cell, position int, argType string) *ArgumentData {
	return &ArgumentData{
		ExtData:  ExtData{category: "argument", name: name, value: value, categoryEnum: ExtDataCategoryArgument},
		position: position,
		argType:  argType,
	}
}

func (ad *ArgumentData) ObjectKind() Kind             { return KindArgumentData }
func (ad *ArgumentData) PropertyRange() PropertyRange { return RangeArgumentData }

func (ad *ArgumentData) GetUint64(id PropertyID, index int) (uint64, Code) {
	if v, code, ok := universalUint64(ad, id); ok {
		return v, code
	}
	if id == PropArgumentDataPosition {
		return uint64(ad.position), Success
	}
	if checkRange(ad.PropertyRange(), id) != Success {
		// Fall through to the embedded ExtData's own block.
		return ad.ExtData.GetUint64(id, index)
	}
	return 0, InvalidEnum
}

func (ad *ArgumentData) GetString(id PropertyID, index int, buf []byte) (int, Code) {
	if id == PropArgumentDataType {
		return copyString(ad.argType, buf), Success
	}
	return ad.ExtData.GetString(id, index, buf)
}

func (ad *ArgumentData) MemoryUsageExclusive() uint64 {
	return ad.ExtData.MemoryUsageExclusive() + uint64(len(ad.argType)) + 8
}

func (ad *ArgumentData) MemoryUsageInclusive() uint64 { return ad.MemoryUsageExclusive() }
