package model

// FindComponentsByType returns every component whose Type equals typ, in
// document order.
func FindComponentsByType(m *Model, typ string) []Component {
	var out []Component

	for _, c := range m.Components {
		if c.Type == typ {
			out = append(out, c)
		}
	}

	return out
}

// FindByRole returns every component referenced under role in any
// relation of type relType, in document order. Useful for queries like
// "the gear_1 of every stage relation".
func FindByRole(m *Model, relType RelationType, role RelationRole) []Component {
	var out []Component

	for _, r := range m.Relations {
		if r.Type != relType {
			continue
		}

		for _, ref := range r.RefsWithRole(role) {
			if c, ok := m.ComponentByInternalID(ref.ComponentRef); ok {
				out = append(out, c)
			}
		}
	}

	return out
}

// UnusedComponents returns every component that is not referenced by any
// relation. Used by the parser to emit the "unused
// components" warning.
func UnusedComponents(m *Model) []Component {
	used := make(map[uint64]struct{}, len(m.Components))

	for _, r := range m.Relations {
		for _, ref := range r.Refs {
			used[ref.ComponentRef] = struct{}{}
		}
	}

	var out []Component

	for _, c := range m.Components {
		if _, ok := used[c.InternalID]; !ok {
			out = append(out, c)
		}
	}

	return out
}
