// Package decode implements the two format-specific value decoders:
// one reading the structured-text tree representation produced by the
// tree-format parser ([schema.Node]), one reading the JSON representation
// produced by unmarshaling a document's attribute object into
// map[string]any. Both report a [Result] alongside the decoded
// [value.Value] rather than a plain error, distinguishing an absent value
// from a type mismatch from an outright conversion failure.
package decode
