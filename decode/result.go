package decode

// Result classifies the outcome of decoding one attribute payload.
type Result uint8

const (
	// Success means a Value was decoded.
	Success Result = iota
	// NoValue means the element was present but empty (null JSON value,
	// empty element text).
	NoValue
	// WrongType means the source carries a different type's payload than
	// the one requested.
	WrongType
	// Failure means a value was present and type-matched but could not be
	// converted (bad number literal, unknown enum value, misaligned coded
	// payload, ...).
	Failure
)

// String returns the lower-case name of the result.
func (r Result) String() string {
	switch r {
	case Success:
		return "success"
	case NoValue:
		return "no_value"
	case WrongType:
		return "wrong_type"
	case Failure:
		return "failure"
	default:
		return "unknown"
	}
}
