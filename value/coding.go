package value

// Coding selects how an array or matrix value is serialized. It only
// affects the binary wire encoding; it has no bearing on the value
// itself or on equality.
type Coding uint8

const (
	// CodingNone serializes the array/matrix as per-element markup
	// (<array><c>...</c></array> or a JSON array literal).
	CodingNone Coding = iota
	// CodingDefault serializes as base64, keeping floating-point elements
	// at float64; integer elements are always written as int32.
	CodingDefault
	// CodingOptimized serializes as base64, narrowing float64 to
	// float32 and int64 to int32 (lossy).
	CodingOptimized
)

// String returns the canonical element-type-independent name.
func (c Coding) String() string {
	switch c {
	case CodingNone:
		return "none"
	case CodingDefault:
		return "default"
	case CodingOptimized:
		return "optimized"
	default:
		return "unknown"
	}
}
