package value

import "errors"

// Sentinel errors returned by the value subsystem.
var (
	// ErrUnknownType indicates a string does not name a known [Type].
	ErrUnknownType = errors.New("unknown value type")
	// ErrTypeMismatch indicates a payload was requested with a Go type
	// that does not match the Value's stored type.
	ErrTypeMismatch = errors.New("value type mismatch")
	// ErrInvalidMatrix indicates a matrix does not have a uniform row
	// length (see [Matrix.Validate]).
	ErrInvalidMatrix = errors.New("invalid matrix")
	// ErrParse indicates a string could not be parsed as the requested
	// numeric or date-time type.
	ErrParse = errors.New("parse error")
)
