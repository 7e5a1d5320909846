package relation

import (
	"go.rexsapi.dev/rexsapi/db"
	"go.rexsapi.dev/rexsapi/model"
)

func role(r model.RelationRole, required bool, max int) RoleSpec {
	return RoleSpec{Role: r, Required: required, Max: max}
}

// BuiltinTables returns the relation-type and external-subcomponent tables
// shipped with the REXS distribution's 1.0, 1.1, 1.3, and 1.5 releases,
// oldest first. Each later table only adds to or refines the one before
// it, mirroring how the real distribution has grown the relation-type
// vocabulary across releases.
func BuiltinTables() []Table {
	v10 := Table{
		Version: db.Version{Major: 1, Minor: 0},
		Types: map[model.RelationType]TypeSpec{
			model.Assembly: {
				Ordered: false,
				Roles: []RoleSpec{
					role(model.RoleAssembly, true, 1),
					role(model.RolePart, true, Unbounded),
				},
			},
			model.Side: {
				Ordered: false,
				Roles: []RoleSpec{
					role(model.RoleSide1, true, 1),
					role(model.RoleSide2, true, 1),
				},
			},
			model.Coupling: {
				Ordered: false,
				Roles: []RoleSpec{
					role(model.RoleSide1, true, 1),
					role(model.RoleSide2, true, 1),
				},
			},
			model.Connection: {
				Ordered: false,
				Roles: []RoleSpec{
					role(model.RoleOuterPart, true, 1),
					role(model.RoleInnerPart, true, 1),
				},
			},
			model.Reference: {
				Ordered: false,
				Roles: []RoleSpec{
					role(model.RoleOrigin, true, 1),
					role(model.RoleReferenced, true, Unbounded),
				},
			},
		},
		Subcomponents: map[string]map[string]struct{}{
			"gear_unit": set("gear_casing", "shaft", "gear", "bearing", "coupling"),
		},
	}

	v11 := extend(v10, db.Version{Major: 1, Minor: 1}, func(t *Table) {
		t.Types[model.OrderedAssembly] = TypeSpec{
			Ordered: true,
			Roles: []RoleSpec{
				role(model.RoleAssembly, true, 1),
				role(model.RolePart, true, Unbounded),
			},
		}
		t.Types[model.CentralShaft] = TypeSpec{
			Ordered: false,
			Roles: []RoleSpec{
				role(model.RoleShaft, true, 1),
				role(model.RolePart, true, Unbounded),
			},
		}
		t.Subcomponents["planetary_stage"] = set("planet_carrier", "planet", "sun_gear", "ring_gear")
	})

	v13 := extend(v11, db.Version{Major: 1, Minor: 3}, func(t *Table) {
		t.Types[model.Stage] = TypeSpec{
			Ordered: false,
			Roles: []RoleSpec{
				role(model.RoleStage, true, 1),
				role(model.RoleGear1, true, 1),
				role(model.RoleGear2, true, 1),
			},
		}
		t.Types[model.StageGearData] = TypeSpec{
			Ordered: false,
			Roles: []RoleSpec{
				role(model.RoleStage, true, 1),
				role(model.RoleStageGearData, true, 1),
			},
		}
		t.Types[model.Flank] = TypeSpec{
			Ordered: false,
			Roles: []RoleSpec{
				role(model.RoleGear, true, 1),
				role(model.RoleLeft, false, 1),
				role(model.RoleRight, false, 1),
			},
		}
		t.Types[model.Contact] = TypeSpec{
			Ordered: false,
			Roles: []RoleSpec{
				role(model.RoleOrigin, true, 1),
				role(model.RoleReferenced, true, 1),
			},
		}
	})

	v15 := extend(v13, db.Version{Major: 1, Minor: 5}, func(t *Table) {
		t.Types[model.ManufacturingStep] = TypeSpec{
			Ordered: true,
			Roles: []RoleSpec{
				role(model.RoleTool, true, 1),
				role(model.RoleWorkpiece, true, 1),
				role(model.RoleManufacturingSettings, false, 1),
			},
		}
		t.Types[model.OrderedReference] = TypeSpec{
			Ordered: true,
			Roles: []RoleSpec{
				role(model.RoleOrigin, true, 1),
				role(model.RoleReferenced, true, Unbounded),
			},
		}
		t.Types[model.PlanetCarrierShaft] = TypeSpec{
			Ordered: false,
			Roles: []RoleSpec{
				role(model.RolePlanetaryStage, true, 1),
				role(model.RoleShaft, true, 1),
			},
		}
		t.Types[model.PlanetPin] = TypeSpec{
			Ordered: false,
			Roles: []RoleSpec{
				role(model.RolePlanetaryStage, true, 1),
				role(model.RolePart, true, 1),
			},
		}
		t.Types[model.PlanetShaft] = TypeSpec{
			Ordered: false,
			Roles: []RoleSpec{
				role(model.RolePlanetaryStage, true, 1),
				role(model.RoleShaft, true, 1),
			},
		}
	})

	return []Table{v10, v11, v13, v15}
}

func set(items ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(items))
	for _, i := range items {
		m[i] = struct{}{}
	}

	return m
}

// extend copies base (including its nested maps) and applies mutate to the
// copy, used to derive each successive release's table from the one
// before it without the two sharing mutable state.
func extend(base Table, version db.Version, mutate func(*Table)) Table {
	t := Table{
		Version:       version,
		Types:         make(map[model.RelationType]TypeSpec, len(base.Types)),
		Subcomponents: make(map[string]map[string]struct{}, len(base.Subcomponents)),
	}

	for k, v := range base.Types {
		t.Types[k] = v
	}

	for k, v := range base.Subcomponents {
		cp := make(map[string]struct{}, len(v))
		for s := range v {
			cp[s] = struct{}{}
		}

		t.Subcomponents[k] = cp
	}

	mutate(&t)

	return t
}
