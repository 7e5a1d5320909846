package relation

import (
	"go.rexsapi.dev/rexsapi/db"
	"go.rexsapi.dev/rexsapi/model"
)

// RoleSpec declares how many references a relation type expects under a
// given role. A role absent from a TypeSpec's Roles is not permitted at
// all.
type RoleSpec struct {
	Role     model.RelationRole
	Required bool
	Max      int // Unbounded (0) means no upper limit
}

// Unbounded marks a RoleSpec's Max as having no upper limit.
const Unbounded = 0

// TypeSpec declares one relation type's shape: whether it carries an
// explicit order, and which roles it permits.
type TypeSpec struct {
	Ordered bool
	Roles   []RoleSpec
}

func (s TypeSpec) role(role model.RelationRole) (RoleSpec, bool) {
	for _, r := range s.Roles {
		if r.Role == role {
			return r, true
		}
	}

	return RoleSpec{}, false
}

// Table is one version's complete set of relation-type and
// external-subcomponent rules.
type Table struct {
	Version       db.Version
	Types         map[model.RelationType]TypeSpec
	Subcomponents map[string]map[string]struct{}
}
