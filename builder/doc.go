// Package builder implements a stateful DSL for constructing a valid
// [model.Model] without going through a document: components, attributes,
// and relations are declared in order against a database catalog, ids are
// minted automatically (or supplied by the caller, in a single consistent
// namespace), and [Builder.Build] resolves symbolic references, checks
// structural invariants and relation roles, and either returns a Model or
// an aggregated error.
//
// Unlike the parsers, which report recoverable findings through a
// [result.Result], the builder treats every misuse as a programming error
// and surfaces it as a Go error from Build. Calls chain; each failing
// call records its error, later calls are still applied, and Build
// reports every recorded error at once.
package builder
