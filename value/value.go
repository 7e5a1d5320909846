package value

// Value is the tagged union over every REXS value type. It is constructed
// through the typed constructors below ([Float], [Bool], [Int], ...) and
// read back with [Get] or [GetOr]; there is no public field access, so the
// invariant "the tag determines which payload is valid" cannot be broken
// from outside the package.
type Value struct {
	typ     Type
	payload any
	coding  Coding
	empty   bool
}

// Empty returns the empty Value of the given type: present in the
// document but carrying no data (e.g. null JSON value or empty element
// text). [Value.IsEmpty] reports true for it.
func Empty(t Type) Value {
	return Value{typ: t, empty: true}
}

// Float constructs a FloatingPoint Value.
func Float(f float64) Value { return Value{typ: FloatingPoint, payload: f} }

// Bool constructs a Boolean Value.
func Bool(b bool) Value { return Value{typ: Boolean, payload: b} }

// Int constructs an Integer Value.
func Int(i int64) Value { return Value{typ: Integer, payload: i} }

// EnumValue constructs an Enum Value.
func EnumValue(s string) Value { return Value{typ: Enum, payload: s} }

// Str constructs a String Value.
func Str(s string) Value { return Value{typ: String, payload: s} }

// FileRef constructs a FileReference Value.
func FileRef(s string) Value { return Value{typ: FileReference, payload: s} }

// Date constructs a DateTime-typed Value from a Timestamp.
func Date(d Timestamp) Value { return Value{typ: DateTime, payload: d} }

// Reference constructs a ReferenceComponent Value carrying the target's
// internal id.
func Reference(id uint64) Value { return Value{typ: ReferenceComponent, payload: id} }

// FloatArray constructs a FloatingPointArray Value.
func FloatArray(xs []float64) Value { return Value{typ: FloatingPointArray, payload: xs} }

// BoolArray constructs a BooleanArray Value.
func BoolArray(xs []bool) Value { return Value{typ: BooleanArray, payload: xs} }

// IntArray constructs an IntegerArray Value.
func IntArray(xs []int64) Value { return Value{typ: IntegerArray, payload: xs} }

// EnumArrayValue constructs an EnumArray Value.
func EnumArrayValue(xs []string) Value { return Value{typ: EnumArray, payload: xs} }

// StringArrayValue constructs a StringArray Value.
func StringArrayValue(xs []string) Value { return Value{typ: StringArray, payload: xs} }

// FloatMatrix constructs a FloatingPointMatrix Value.
func FloatMatrix(m Matrix[float64]) Value { return Value{typ: FloatingPointMatrix, payload: m} }

// BoolMatrix constructs a BooleanMatrix Value.
func BoolMatrix(m Matrix[bool]) Value { return Value{typ: BooleanMatrix, payload: m} }

// IntMatrix constructs an IntegerMatrix Value.
func IntMatrix(m Matrix[int64]) Value { return Value{typ: IntegerMatrix, payload: m} }

// StringMatrixValue constructs a StringMatrix Value.
func StringMatrixValue(m Matrix[string]) Value { return Value{typ: StringMatrix, payload: m} }

// IntArrayArray constructs an ArrayOfIntegerArrays Value from jagged rows.
func IntArrayArray(rows [][]int64) Value { return Value{typ: ArrayOfIntegerArrays, payload: rows} }

// Type returns the Value's tag.
func (v Value) Type() Type { return v.typ }

// IsEmpty reports whether the Value carries no data.
func (v Value) IsEmpty() bool { return v.empty }

// MatchesType reports whether the Value's tag equals t.
func (v Value) MatchesType(t Type) bool { return v.typ == t }

// Coding returns the array/matrix coding flag. Scalars always report
// [CodingNone].
func (v Value) Coding() Coding { return v.coding }

// WithCoding returns a copy of v with the coding flag set. Only
// meaningful for array/matrix values; harmless no-op on scalars.
func (v Value) WithCoding(c Coding) Value {
	v.coding = c

	return v
}

// Get retrieves the payload as T, failing with [ErrTypeMismatch] if the
// Value's stored Go type is not T (including if the Value is empty).
func Get[T any](v Value) (T, error) {
	var zero T

	if v.empty {
		return zero, ErrTypeMismatch
	}

	t, ok := v.payload.(T)
	if !ok {
		return zero, ErrTypeMismatch
	}

	return t, nil
}

// GetOr retrieves the payload as T, returning def if retrieval fails.
func GetOr[T any](v Value, def T) T {
	t, err := Get[T](v)
	if err != nil {
		return def
	}

	return t
}
