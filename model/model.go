package model

// Model is the complete in-memory graph: header info, components,
// relations, and an optional load spectrum. Immutable after construction;
// see the builder package to construct one safely, or [New] to wrap
// already-valid parts (used by parsers, which build components/relations
// directly from document structure and call [CheckInvariants] themselves).
type Model struct {
	Info       Info
	Components []Component
	Relations  []Relation
	Spectrum   *LoadSpectrum
}

// New builds a Model from its parts without running invariant checks.
// Callers (parser post-processing, the builder) are expected to call
// [CheckInvariants] explicitly once construction is complete.
func New(info Info, components []Component, relations []Relation, spectrum *LoadSpectrum) *Model {
	return &Model{Info: info, Components: components, Relations: relations, Spectrum: spectrum}
}

// ComponentByInternalID looks up a component by its internal id.
func (m *Model) ComponentByInternalID(id uint64) (Component, bool) {
	for _, c := range m.Components {
		if c.InternalID == id {
			return c, true
		}
	}

	return Component{}, false
}

// ComponentByExternalID looks up a component by its originating document
// id.
func (m *Model) ComponentByExternalID(id uint64) (Component, bool) {
	for _, c := range m.Components {
		if c.ExternalID != nil && *c.ExternalID == id {
			return c, true
		}
	}

	return Component{}, false
}
