package value

import (
	"strconv"
	"strings"
)

// AsString renders the Value in the canonical textual form used in
// user-facing messages and in the non-coded wire representations. The
// rendering must be reproducible byte-for-byte across runs:
// minimal float representation with an explicit ".0" for integral values,
// lowercase booleans, dense "[e1,e2,...]" arrays, "[[...],[...]]"
// matrices, and ISO-8601 date-times with an explicit offset.
func (v Value) AsString() string {
	if v.empty {
		return ""
	}

	switch v.typ {
	case FloatingPoint:
		return FormatFloat(GetOr(v, 0.0))
	case Boolean:
		return strconv.FormatBool(GetOr(v, false))
	case Integer:
		return strconv.FormatInt(GetOr[int64](v, 0), 10)
	case ReferenceComponent:
		return strconv.FormatUint(GetOr[uint64](v, 0), 10)
	case Enum, String, FileReference:
		return GetOr(v, "")
	case DateTime:
		return GetOr(v, Timestamp{}).String()
	case FloatingPointArray:
		return formatArray(GetOr[[]float64](v, nil), FormatFloat)
	case BooleanArray:
		return formatArray(GetOr[[]bool](v, nil), strconv.FormatBool)
	case IntegerArray:
		return formatArray(GetOr[[]int64](v, nil), func(i int64) string { return strconv.FormatInt(i, 10) })
	case EnumArray, StringArray:
		return formatArray(GetOr[[]string](v, nil), quoteIdentity)
	case FloatingPointMatrix:
		return formatMatrix(GetOr(v, Matrix[float64]{}), FormatFloat)
	case BooleanMatrix:
		return formatMatrix(GetOr(v, Matrix[bool]{}), strconv.FormatBool)
	case IntegerMatrix:
		return formatMatrix(GetOr(v, Matrix[int64]{}), func(i int64) string { return strconv.FormatInt(i, 10) })
	case StringMatrix:
		return formatMatrix(GetOr(v, Matrix[string]{}), quoteIdentity)
	case ArrayOfIntegerArrays:
		rows := GetOr[[][]int64](v, nil)

		var sb strings.Builder

		sb.WriteByte('[')

		for i, row := range rows {
			if i > 0 {
				sb.WriteByte(',')
			}

			sb.WriteString(formatArray(row, func(n int64) string { return strconv.FormatInt(n, 10) }))
		}

		sb.WriteByte(']')

		return sb.String()
	default:
		return ""
	}
}

// quoteIdentity is the element formatter for string arrays/matrices: the
// element text itself, unquoted (REXS text payloads never contain the
// array/matrix delimiters).
func quoteIdentity(s string) string { return s }

func formatArray[T any](xs []T, format func(T) string) string {
	var sb strings.Builder

	sb.WriteByte('[')

	for i, x := range xs {
		if i > 0 {
			sb.WriteByte(',')
		}

		sb.WriteString(format(x))
	}

	sb.WriteByte(']')

	return sb.String()
}

func formatMatrix[T any](m Matrix[T], format func(T) string) string {
	var sb strings.Builder

	sb.WriteByte('[')

	for i, row := range m.Rows {
		if i > 0 {
			sb.WriteByte(',')
		}

		sb.WriteString(formatArray(row, format))
	}

	sb.WriteByte(']')

	return sb.String()
}

// FormatFloat renders f with up to 15 significant digits, the minimal
// representation that round-trips that precision: trailing zeros are
// dropped, an absent "." and exponent gets an explicit ".0" suffix, and
// the exponent marker is always upper-case "E".
func FormatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', 15, 64)

	if e := strings.IndexAny(s, "eE"); e >= 0 {
		return s[:e] + "E" + s[e+1:]
	}

	if !strings.Contains(s, ".") {
		s += ".0"
	}

	return s
}
