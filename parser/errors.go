package parser

import "errors"

// Sentinel errors returned by the parser package. These are Go-level
// failures (no bytes to even attempt parsing); recoverable document
// problems are reported through [result.Result] instead.
var (
	// ErrNoArchive indicates a zip-format document was sniffed but no
	// [format.Archive] was configured to unwrap it.
	ErrNoArchive = errors.New("parser: zip document given but no archive configured")
	// ErrUnsupportedFormat indicates the sniffed format has no parser.
	ErrUnsupportedFormat = errors.New("parser: unsupported format")
)
