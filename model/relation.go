package model

// RelationReference links a relation to one participating component
// under a given role. Hint is free-form descriptive text carried through
// from the document, not interpreted by this package.
type RelationReference struct {
	Role         RelationRole
	Hint         string
	ComponentRef uint64 // target Component.InternalID
}

// Relation is a typed edge linking one or more components. Order is
// present only for relation types the version table marks as ordered.
type Relation struct {
	Type  RelationType
	Order *uint32
	Refs  []RelationReference
}

// IsOrdered reports whether this relation carries an explicit order.
func (r Relation) IsOrdered() bool { return r.Order != nil }

// ComponentRefs returns every component internal id this relation
// references, in ref order.
func (r Relation) ComponentRefs() []uint64 {
	refs := make([]uint64, len(r.Refs))
	for i, ref := range r.Refs {
		refs[i] = ref.ComponentRef
	}

	return refs
}

// RefsWithRole returns every reference carrying the given role.
func (r Relation) RefsWithRole(role RelationRole) []RelationReference {
	var out []RelationReference

	for _, ref := range r.Refs {
		if ref.Role == role {
			out = append(out, ref)
		}
	}

	return out
}
