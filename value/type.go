package value

import "fmt"

// Type is the closed set of eighteen REXS value types.
type Type uint8

const (
	// FloatingPoint is a scalar 64-bit float.
	FloatingPoint Type = iota
	// Boolean is a scalar bool.
	Boolean
	// Integer is a scalar 64-bit signed integer.
	Integer
	// Enum is a scalar string constrained to a database enumeration.
	Enum
	// String is a scalar, unconstrained string.
	String
	// FileReference is a scalar string naming an external file.
	FileReference
	// DateTime is a scalar timestamp with an explicit UTC offset.
	DateTime
	// ReferenceComponent is a scalar integer referring to another
	// component's internal id.
	ReferenceComponent
	// FloatingPointArray is a sequence of 64-bit floats.
	FloatingPointArray
	// FloatingPointMatrix is a rectangular matrix of 64-bit floats.
	FloatingPointMatrix
	// BooleanArray is a sequence of bools.
	BooleanArray
	// BooleanMatrix is a rectangular matrix of bools.
	BooleanMatrix
	// IntegerArray is a sequence of 64-bit signed integers.
	IntegerArray
	// IntegerMatrix is a rectangular matrix of 64-bit signed integers.
	IntegerMatrix
	// EnumArray is a sequence of enum-constrained strings.
	EnumArray
	// StringArray is a sequence of strings.
	StringArray
	// StringMatrix is a rectangular matrix of strings.
	StringMatrix
	// ArrayOfIntegerArrays is a jagged sequence of integer sequences.
	ArrayOfIntegerArrays
)

// typeNames maps each Type to its canonical wire-format name, used by both
// the JSON and tree decoders/serializers and by error messages.
var typeNames = [...]string{
	FloatingPoint:        "floating_point",
	Boolean:              "boolean",
	Integer:              "integer",
	Enum:                 "enum",
	String:               "string",
	FileReference:        "file_reference",
	DateTime:             "date_time",
	ReferenceComponent:   "reference_component",
	FloatingPointArray:   "floating_point_array",
	FloatingPointMatrix:  "floating_point_matrix",
	BooleanArray:         "boolean_array",
	BooleanMatrix:        "boolean_matrix",
	IntegerArray:         "integer_array",
	IntegerMatrix:        "integer_matrix",
	EnumArray:            "enum_array",
	StringArray:          "string_array",
	StringMatrix:         "string_matrix",
	ArrayOfIntegerArrays: "array_of_integer_arrays",
}

// String returns the canonical wire-format name of the type.
func (t Type) String() string {
	if int(t) >= len(typeNames) {
		return "unknown"
	}

	return typeNames[t]
}

// IsArray reports whether the type is a one-dimensional sequence type.
func (t Type) IsArray() bool {
	switch t {
	case FloatingPointArray, BooleanArray, IntegerArray, EnumArray, StringArray:
		return true
	default:
		return false
	}
}

// IsMatrix reports whether the type is a two-dimensional, rectangular
// collection type.
func (t Type) IsMatrix() bool {
	switch t {
	case FloatingPointMatrix, BooleanMatrix, IntegerMatrix, StringMatrix:
		return true
	default:
		return false
	}
}

// AllTypes returns every Type in enum declaration order. Dispatcher handler
// ordering follows this order.
func AllTypes() []Type {
	types := make([]Type, len(typeNames))
	for i := range typeNames {
		types[i] = Type(i)
	}

	return types
}

// ParseType parses a canonical wire-format type name into a Type.
func ParseType(s string) (Type, error) {
	for i, name := range typeNames {
		if name == s {
			return Type(i), nil //nolint:gosec // i is bounded by typeNames length.
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownType, s)
}
