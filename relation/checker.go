package relation

import (
	"sort"

	"go.rexsapi.dev/rexsapi/db"
	"go.rexsapi.dev/rexsapi/model"
	"go.rexsapi.dev/rexsapi/result"
)

// Checker validates a model's relations and assembly nesting against the
// versioned tables built into this package.
type Checker struct {
	tables []Table // sorted ascending by Version
}

// NewChecker returns a Checker over the given tables, which need not be
// pre-sorted.
func NewChecker(tables []Table) *Checker {
	sorted := append([]Table(nil), tables...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Version.Less(sorted[j].Version) })

	return &Checker{tables: sorted}
}

// NewBuiltinChecker returns a Checker over [BuiltinTables].
func NewBuiltinChecker() *Checker {
	return NewChecker(BuiltinTables())
}

// Resolve returns the highest table version at or below modelVersion. It
// returns false if modelVersion predates every known table.
func (c *Checker) Resolve(modelVersion db.Version) (Table, bool) {
	var best *Table

	for i := range c.tables {
		t := &c.tables[i]
		if t.Version.Compare(modelVersion) > 0 {
			break
		}

		best = t
	}

	if best == nil {
		return Table{}, false
	}

	return *best, true
}

// CheckModel validates every relation and subcomponent nesting in m,
// appending diagnostics to res. modelVersion selects which table governs
// the check.
func (c *Checker) CheckModel(m *model.Model, modelVersion db.Version, res *result.Result) {
	table, ok := c.Resolve(modelVersion)
	if !ok {
		res.Addf(result.Critical, "no relation table known for version %s", modelVersion)
		return
	}

	for i, rel := range m.Relations {
		c.checkRelation(table, rel, i, res)
	}

	c.checkSubcomponents(table, m, res)
}

func (c *Checker) checkRelation(table Table, rel model.Relation, index int, res *result.Result) {
	spec, ok := table.Types[rel.Type]
	if !ok {
		res.Addf(result.Error, "relation[%d]: unknown relation type %q for table version %s", index, rel.Type, table.Version)
		return
	}

	if rel.IsOrdered() && !spec.Ordered {
		res.Addf(result.Error, "relation[%d]: relation type %q does not support order", index, rel.Type)
	}

	if !rel.IsOrdered() && spec.Ordered {
		res.Addf(result.Error, "relation[%d]: relation type %q requires order", index, rel.Type)
	}

	counts := make(map[model.RelationRole]int, len(spec.Roles))
	for _, ref := range rel.Refs {
		roleSpec, known := spec.role(ref.Role)
		if !known {
			res.Addf(result.Error, "relation[%d]: role %q not permitted for relation type %q", index, ref.Role, rel.Type)
			continue
		}

		counts[ref.Role]++

		if roleSpec.Max != Unbounded && counts[ref.Role] > roleSpec.Max {
			res.Addf(result.Error, "relation[%d]: role %q exceeds maximum of %d references for relation type %q",
				index, ref.Role, roleSpec.Max, rel.Type)
		}
	}

	for _, roleSpec := range spec.Roles {
		if roleSpec.Required && counts[roleSpec.Role] == 0 {
			res.Addf(result.Error, "relation[%d]: relation type %q missing required role %q", index, rel.Type, roleSpec.Role)
		}
	}
}

// checkSubcomponents enforces the external-subcomponent rule: for
// every relation with a RoleAssembly reference, each part referenced under
// RolePart must be of a type the container component's type permits to
// nest inside it. Other roles are not checked. Container
// component types with no entry in the table place no restriction.
func (c *Checker) checkSubcomponents(table Table, m *model.Model, res *result.Result) {
	for i, rel := range m.Relations {
		containers := rel.RefsWithRole(model.RoleAssembly)
		if len(containers) == 0 {
			continue
		}

		for _, container := range containers {
			parent, ok := m.ComponentByInternalID(container.ComponentRef)
			if !ok {
				continue
			}

			allowed, restricted := table.Subcomponents[parent.Type]
			if !restricted {
				continue
			}

			for _, part := range rel.RefsWithRole(model.RolePart) {
				child, ok := m.ComponentByInternalID(part.ComponentRef)
				if !ok {
					continue
				}

				if _, permitted := allowed[child.Type]; !permitted {
					res.Addf(result.Error, "relation[%d]: component type %q is not a permitted subcomponent of %q",
						i, child.Type, parent.Type)
				}
			}
		}
	}
}
