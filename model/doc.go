// Package model implements the in-memory REXS model graph: an
// immutable directed graph of typed [Component]s linked by typed
// [Relation]s, each component carrying [Attribute] values, plus an
// optional [LoadSpectrum] overlaying additional attributes onto
// referenced components.
//
// All model objects are immutable after construction;
// mutation happens by producing a new Model through the builder package.
// This package owns structural invariant checking ([CheckInvariants]):
// reference integrity, id uniqueness, and matrix rectangularity are
// properties of the graph shape alone and don't need the database
// registry. Range/unit/enum/relation-role semantics live in the validate
// package, which does need the registry.
package model
