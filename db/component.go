package db

// Component is a catalog-defined component type: its id, display name,
// and the set of attribute ids it permits.
type Component struct {
	ID         string
	Name       string
	Attributes map[string]struct{}
}

// AllowsAttribute reports whether id is a member of this component
// type's allowed attribute set.
func (c Component) AllowsAttribute(id string) bool {
	_, ok := c.Attributes[id]

	return ok
}

// NewComponent builds a Component from an id, name, and allowed
// attribute ids.
func NewComponent(id, name string, attributeIDs ...string) Component {
	attrs := make(map[string]struct{}, len(attributeIDs))
	for _, a := range attributeIDs {
		attrs[a] = struct{}{}
	}

	return Component{ID: id, Name: name, Attributes: attrs}
}
