// Package parser implements the two format-specific model parsers:
// a structured-text tree reader and a JSON reader, sharing a common
// post-processing pass that resolves component references, checks
// invariants, and runs the relation-role checker. Diagnostics are reported
// through a [result.Result] rather than aborting on the first problem;
// any Critical finding (an unrecognized format, an unreadable document, a
// schema-validation failure, an unresolvable database version, or a
// duplicate internal id, among others) stops processing with no
// [model.Model] produced.
package parser
