// Package codec implements the REXS binary array/matrix codec:
// base64 of little-endian packed int32, float32, or float64 elements.
//
// Widening rule: encoding a float64 in-memory value
// with [value.CodingOptimized] narrows it to float32 (lossy); encoding an
// int64 value narrows it to int32 (truncating) regardless of coding.
// Decoding always widens back to the in-memory type (int32->int64,
// float32->float64, float64->float64).
package codec
