// Package relation implements the REXS relation-type and
// external-subcomponent checkers: versioned tables describing which roles
// a relation type requires, and which component types may nest inside
// which other component types. Both tables are keyed by the REXS
// distribution version they were introduced in; resolution picks the
// highest table version at or below the model's declared version.
package relation
