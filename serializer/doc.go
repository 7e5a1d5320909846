// Package serializer writes a [model.Model] back out in either wire
// format. Both writers share one renumbering pass -- components are
// emitted with dense, 1-based ids in document order, independent of
// whatever internal ids parsing or the builder assigned -- so a model
// built from scratch and one round-tripped through a parser serialize
// identically.
package serializer
