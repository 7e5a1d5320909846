package decode

import "go.rexsapi.dev/rexsapi/value"

// codeable reports whether t is one of the value types the wire formats permit a
// coded (base64) representation for -- the three "*_coded" JSON keys and
// their tree-format "code=" equivalents.
func codeable(t value.Type) bool {
	switch t {
	case value.FloatingPointArray, value.IntegerArray, value.FloatingPointMatrix:
		return true
	default:
		return false
	}
}

// codingOf reports the [value.Coding] a decoded element type implies:
// float32 elements are [value.CodingOptimized]; float64 elements and every
// integer payload are [value.CodingDefault].
func codingOf(t value.Type, elementType string) value.Coding {
	switch t {
	case value.FloatingPointArray, value.FloatingPointMatrix:
		if elementType == "float32" {
			return value.CodingOptimized
		}

		return value.CodingDefault
	default:
		return value.CodingDefault
	}
}
