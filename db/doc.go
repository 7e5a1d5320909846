// Package db implements the versioned database registry that every
// parsed or built model is validated against: units, value types, and
// attributes (with interval/enum metadata), and components (with their
// allowed attribute set), grouped per (version, language) into a
// [Model].
//
// Loading a [Model] from an XML database file is delegated to an external
// [Loader] (see [Registry.LoadFrom]); this package only owns the in-memory
// shape and lookup semantics once loaded. A [Model]'s maps are built once
// and never mutated afterward, so a [*Model] is safe to share by pointer
// across readers, including across goroutines.
package db
