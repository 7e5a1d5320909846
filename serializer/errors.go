package serializer

import "errors"

var (
	// ErrUnsupportedFormat indicates a [format.Format] with no writer.
	ErrUnsupportedFormat = errors.New("serializer: unsupported format")
	// ErrUnsupportedValueType indicates a [value.Value] carrying a type
	// outside the closed eighteen-type set reached a writer.
	ErrUnsupportedValueType = errors.New("serializer: unsupported value type")
)
