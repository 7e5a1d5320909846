// Package result implements the diagnostic taxonomy shared by every stage
// of the model pipeline: parsing, schema validation, semantic validation,
// and serialization never fail outright on a recoverable condition -- they
// append a [Message] to a [Result] and keep going.
//
// Severities form a total order, Warning < Error < Critical. [Mode]
// controls how severities are reported: [Strict] leaves authored
// severities untouched, [Relaxed] downgrades everything except Critical to
// Warning, so a model with many warnings can still be usable. Downgrading
// happens as a diagnostic is recorded (see [Result.Add]), not at the
// point a check detects a problem -- callers always construct diagnostics
// with their authored severity and let the [Mode] decide.
package result
