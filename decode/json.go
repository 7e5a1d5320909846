package decode

import (
	"go.rexsapi.dev/rexsapi/codec"
	"go.rexsapi.dev/rexsapi/db"
	"go.rexsapi.dev/rexsapi/value"
)

// JSONDecoder decodes an attribute object's payload against its declared
// [db.Attribute]. attr is the decoded JSON object (as produced by
// encoding/json.Unmarshal into map[string]any), holding exactly one typed
// payload key from the closed wire-format set alongside "id" and optional "unit".
type JSONDecoder struct{}

// NewJSONDecoder returns a ready-to-use JSONDecoder.
func NewJSONDecoder() *JSONDecoder {
	return &JSONDecoder{}
}

// Decode reads attr's payload as dbAttr's declared value type.
func (d *JSONDecoder) Decode(attr map[string]any, dbAttr db.Attribute) (value.Value, Result) {
	key := dbAttr.ValueType.String()

	raw, present := attr[key]
	if !present && codeable(dbAttr.ValueType) {
		if coded, ok := attr[key+"_coded"]; ok {
			return d.decodeCoded(dbAttr.ValueType, coded)
		}
	}

	if !present {
		if jsonHasOtherTypeKey(attr, key) {
			return value.Value{}, WrongType
		}

		return value.Value{}, NoValue
	}

	if raw == nil {
		return value.Value{}, NoValue
	}

	return d.decodePlain(dbAttr, raw)
}

// jsonHasOtherTypeKey reports whether attr carries any payload key from
// the closed type-key set other than want (or its coded variant),
// signalling that the document declares a different value type than the
// database attribute expects.
func jsonHasOtherTypeKey(attr map[string]any, want string) bool {
	for _, t := range value.AllTypes() {
		k := t.String()
		if k == want {
			continue
		}

		if _, ok := attr[k]; ok {
			return true
		}

		if codeable(t) {
			if _, ok := attr[k+"_coded"]; ok {
				return true
			}
		}
	}

	return false
}

func (d *JSONDecoder) decodePlain(dbAttr db.Attribute, raw any) (value.Value, Result) {
	switch dbAttr.ValueType {
	case value.FloatingPoint:
		return jsonNumber(raw, value.Float)
	case value.Boolean:
		b, ok := raw.(bool)
		if !ok {
			return value.Value{}, Failure
		}

		return value.Bool(b), Success
	case value.Integer:
		return jsonNumber(raw, func(f float64) value.Value { return value.Int(int64(f)) })
	case value.Enum:
		s, ok := raw.(string)
		if !ok {
			return value.Value{}, Failure
		}

		if dbAttr.HasEnum() && !dbAttr.Enum.Contains(s) {
			return value.Value{}, Failure
		}

		return value.EnumValue(s), Success
	case value.String:
		s, ok := raw.(string)
		if !ok {
			return value.Value{}, Failure
		}

		return value.Str(s), Success
	case value.FileReference:
		s, ok := raw.(string)
		if !ok {
			return value.Value{}, Failure
		}

		return value.FileRef(s), Success
	case value.DateTime:
		s, ok := raw.(string)
		if !ok {
			return value.Value{}, Failure
		}

		dt, err := value.ParseTimestamp(s)
		if err != nil {
			return value.Value{}, Failure
		}

		return value.Date(dt), Success
	case value.ReferenceComponent:
		return jsonNumber(raw, func(f float64) value.Value { return value.Reference(uint64(f)) })
	case value.FloatingPointArray:
		return jsonFloatArray(raw)
	case value.IntegerArray:
		return jsonIntArray(raw)
	case value.BooleanArray:
		return jsonArray(raw, func(e any) (bool, bool) { b, ok := e.(bool); return b, ok }, value.BoolArray)
	case value.EnumArray:
		return jsonEnumArray(raw, dbAttr)
	case value.StringArray:
		return jsonArray(raw, func(e any) (string, bool) { s, ok := e.(string); return s, ok }, value.StringArrayValue)
	case value.FloatingPointMatrix:
		return jsonFloatMatrix(raw)
	case value.IntegerMatrix:
		return jsonIntMatrix(raw)
	case value.BooleanMatrix:
		return jsonMatrix(raw, func(e any) (bool, bool) { b, ok := e.(bool); return b, ok }, value.BoolMatrix)
	case value.StringMatrix:
		return jsonMatrix(raw, func(e any) (string, bool) { s, ok := e.(string); return s, ok }, value.StringMatrixValue)
	case value.ArrayOfIntegerArrays:
		return jsonArrayOfIntArrays(raw)
	default:
		return value.Value{}, Failure
	}
}

func (d *JSONDecoder) decodeCoded(t value.Type, raw any) (value.Value, Result) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return value.Value{}, Failure
	}

	code, _ := obj["code"].(string)
	payload, _ := obj["value"].(string)

	switch t {
	case value.FloatingPointArray:
		et, err := codec.ParseElementType(code)
		if err != nil {
			return value.Value{}, Failure
		}

		xs, err := codec.DecodeArray(payload, et, -1)
		if err != nil {
			return value.Value{}, Failure
		}

		return value.FloatArray(xs).WithCoding(codingOf(t, code)), Success
	case value.IntegerArray:
		xs, err := codec.DecodeIntArray(payload, -1)
		if err != nil {
			return value.Value{}, Failure
		}

		return value.IntArray(xs).WithCoding(value.CodingDefault), Success
	case value.FloatingPointMatrix:
		rows := intField(obj, "rows")
		cols := intField(obj, "columns")

		et, err := codec.ParseElementType(code)
		if err != nil {
			return value.Value{}, Failure
		}

		m, err := codec.DecodeMatrix(payload, rows, cols, et)
		if err != nil {
			return value.Value{}, Failure
		}

		return value.FloatMatrix(value.NewMatrix(m)).WithCoding(codingOf(t, code)), Success
	default:
		return value.Value{}, Failure
	}
}

func intField(obj map[string]any, key string) int {
	f, _ := obj[key].(float64)
	return int(f)
}

func jsonNumber(raw any, construct func(float64) value.Value) (value.Value, Result) {
	f, ok := raw.(float64)
	if !ok {
		return value.Value{}, Failure
	}

	return construct(f), Success
}

func jsonArray[T any](raw any, convert func(any) (T, bool), construct func([]T) value.Value) (value.Value, Result) {
	elems, ok := raw.([]any)
	if !ok {
		return value.Value{}, Failure
	}

	xs := make([]T, len(elems))

	for i, e := range elems {
		v, ok := convert(e)
		if !ok {
			return value.Value{}, Failure
		}

		xs[i] = v
	}

	return construct(xs), Success
}

func jsonFloatArray(raw any) (value.Value, Result) {
	return jsonArray(raw, func(e any) (float64, bool) { f, ok := e.(float64); return f, ok }, value.FloatArray)
}

func jsonIntArray(raw any) (value.Value, Result) {
	return jsonArray(raw, func(e any) (int64, bool) { f, ok := e.(float64); return int64(f), ok }, value.IntArray)
}

func jsonEnumArray(raw any, attr db.Attribute) (value.Value, Result) {
	elems, ok := raw.([]any)
	if !ok {
		return value.Value{}, Failure
	}

	xs := make([]string, len(elems))

	for i, e := range elems {
		s, ok := e.(string)
		if !ok {
			return value.Value{}, Failure
		}

		if attr.HasEnum() && !attr.Enum.Contains(s) {
			return value.Value{}, Failure
		}

		xs[i] = s
	}

	return value.EnumArrayValue(xs), Success
}

func jsonMatrix[T any](raw any, convert func(any) (T, bool), construct func(value.Matrix[T]) value.Value) (value.Value, Result) {
	rowsRaw, ok := raw.([]any)
	if !ok {
		return value.Value{}, Failure
	}

	rows := make([][]T, len(rowsRaw))

	for i, rowRaw := range rowsRaw {
		cells, ok := rowRaw.([]any)
		if !ok {
			return value.Value{}, Failure
		}

		row := make([]T, len(cells))

		for j, c := range cells {
			v, ok := convert(c)
			if !ok {
				return value.Value{}, Failure
			}

			row[j] = v
		}

		rows[i] = row
	}

	m := value.NewMatrix(rows)
	if !m.Validate() {
		return value.Value{}, Failure
	}

	return construct(m), Success
}

func jsonFloatMatrix(raw any) (value.Value, Result) {
	return jsonMatrix(raw, func(e any) (float64, bool) { f, ok := e.(float64); return f, ok }, value.FloatMatrix)
}

func jsonIntMatrix(raw any) (value.Value, Result) {
	return jsonMatrix(raw, func(e any) (int64, bool) { f, ok := e.(float64); return int64(f), ok }, value.IntMatrix)
}

func jsonArrayOfIntArrays(raw any) (value.Value, Result) {
	rowsRaw, ok := raw.([]any)
	if !ok {
		return value.Value{}, Failure
	}

	rows := make([][]int64, len(rowsRaw))

	for i, rowRaw := range rowsRaw {
		cells, ok := rowRaw.([]any)
		if !ok {
			return value.Value{}, Failure
		}

		row := make([]int64, len(cells))

		for j, c := range cells {
			f, ok := c.(float64)
			if !ok {
				return value.Value{}, Failure
			}

			row[j] = int64(f)
		}

		rows[i] = row
	}

	return value.IntArrayArray(rows), Success
}
