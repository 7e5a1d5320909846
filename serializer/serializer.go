package serializer

import (
	"fmt"

	"go.rexsapi.dev/rexsapi/format"
	"go.rexsapi.dev/rexsapi/model"
)

// Serializer writes [model.Model]s in either wire format.
type Serializer struct {
	indent string
}

// Option configures a Serializer constructed by [New].
type Option func(*Serializer)

// WithIndent sets the per-level indent used by both writers. The default
// is two spaces.
func WithIndent(indent string) Option {
	return func(s *Serializer) { s.indent = indent }
}

// New returns a Serializer with the given options applied.
func New(opts ...Option) *Serializer {
	s := &Serializer{indent: "  "}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Write renders m in the given format.
func (s *Serializer) Write(m *model.Model, f format.Format) ([]byte, error) {
	switch f {
	case format.Tree:
		return s.WriteTree(m)
	case format.JSON:
		return s.WriteJSON(m)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	}
}

// emittedIDs assigns every component a dense, 1-based id in document
// order, independent of its [model.Component.InternalID]. Every writer
// and reference rewrite uses this single mapping, so a Reference
// Component attribute and a relation ref naming the same component
// always agree on its emitted id.
func emittedIDs(m *model.Model) map[uint64]uint64 {
	ids := make(map[uint64]uint64, len(m.Components))

	for i, c := range m.Components {
		ids[c.InternalID] = uint64(i + 1) //nolint:gosec // document-order index, small
	}

	return ids
}
