// Package value implements the REXS value subsystem: an eighteen-way
// tagged union over every scalar, array, and matrix type a REXS attribute
// can carry, plus the little-endian packed-binary coding flag that governs
// how arrays and matrices are serialized.
//
// [Value] is a single algebraic type, not eighteen subclasses -- callers
// use [Get] (a generic accessor keyed by the Go payload type) or the typed
// convenience constructors ([Float], [Bool], [Int], [Str], ...) instead of
// type assertions on a class hierarchy. [Value.AsString] renders any value
// using the canonical textual form required for byte-identical round trips
// (see the serializer package).
package value
