package relation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.rexsapi.dev/rexsapi/db"
	"go.rexsapi.dev/rexsapi/model"
	"go.rexsapi.dev/rexsapi/relation"
	"go.rexsapi.dev/rexsapi/result"
)

func ref(role model.RelationRole, id uint64) model.RelationReference {
	return model.RelationReference{Role: role, ComponentRef: id}
}

func u32(v uint32) *uint32 { return &v }

func TestCheckerResolvePicksHighestAtOrBelow(t *testing.T) {
	t.Parallel()

	c := relation.NewBuiltinChecker()

	table, ok := c.Resolve(db.Version{Major: 1, Minor: 4})
	require.True(t, ok)
	assert.Equal(t, db.Version{Major: 1, Minor: 3}, table.Version)
}

func TestCheckerResolveBelowEarliestFails(t *testing.T) {
	t.Parallel()

	c := relation.NewBuiltinChecker()

	_, ok := c.Resolve(db.Version{Major: 0, Minor: 9})
	assert.False(t, ok)
}

func TestCheckerCheckModelUnknownTypeErrors(t *testing.T) {
	t.Parallel()

	c := relation.NewBuiltinChecker()
	m := &model.Model{
		Components: []model.Component{{InternalID: 1, Type: "gear"}, {InternalID: 2, Type: "gear"}},
		Relations: []model.Relation{
			{Type: model.Stage, Refs: []model.RelationReference{ref(model.RoleGear1, 1), ref(model.RoleGear2, 2)}},
		},
	}

	res := result.New(result.Strict)
	c.CheckModel(m, db.Version{Major: 1, Minor: 0}, res)

	require.True(t, res.HasIssues())
	assert.Contains(t, res.Messages()[0].Text, "unknown relation type")
}

func TestCheckerCheckModelValidAssembly(t *testing.T) {
	t.Parallel()

	c := relation.NewBuiltinChecker()
	m := &model.Model{
		Components: []model.Component{{InternalID: 1, Type: "gear_unit"}, {InternalID: 2, Type: "shaft"}},
		Relations: []model.Relation{
			{Type: model.Assembly, Refs: []model.RelationReference{ref(model.RoleAssembly, 1), ref(model.RolePart, 2)}},
		},
	}

	res := result.New(result.Strict)
	c.CheckModel(m, db.Version{Major: 1, Minor: 5}, res)

	assert.True(t, res.OK())
}

func TestCheckerCheckModelMissingRequiredRole(t *testing.T) {
	t.Parallel()

	c := relation.NewBuiltinChecker()
	m := &model.Model{
		Components: []model.Component{{InternalID: 1, Type: "gear_unit"}},
		Relations: []model.Relation{
			{Type: model.Assembly, Refs: []model.RelationReference{ref(model.RoleAssembly, 1)}},
		},
	}

	res := result.New(result.Strict)
	c.CheckModel(m, db.Version{Major: 1, Minor: 5}, res)

	require.True(t, res.HasIssues())
	assert.Contains(t, res.Messages()[0].Text, `missing required role "part"`)
}

func TestCheckerCheckModelOrderedMismatch(t *testing.T) {
	t.Parallel()

	c := relation.NewBuiltinChecker()
	m := &model.Model{
		Components: []model.Component{{InternalID: 1, Type: "gear_unit"}, {InternalID: 2, Type: "shaft"}},
		Relations: []model.Relation{
			{
				Type:  model.Assembly,
				Order: u32(1),
				Refs:  []model.RelationReference{ref(model.RoleAssembly, 1), ref(model.RolePart, 2)},
			},
		},
	}

	res := result.New(result.Strict)
	c.CheckModel(m, db.Version{Major: 1, Minor: 5}, res)

	require.True(t, res.HasIssues())
	assert.Contains(t, res.Messages()[0].Text, "does not support order")
}

func TestCheckerCheckModelRoleExceedsMax(t *testing.T) {
	t.Parallel()

	c := relation.NewBuiltinChecker()
	m := &model.Model{
		Components: []model.Component{{InternalID: 1, Type: "shaft"}, {InternalID: 2, Type: "bearing"}, {InternalID: 3, Type: "bearing"}},
		Relations: []model.Relation{
			{Type: model.Side, Refs: []model.RelationReference{ref(model.RoleSide1, 1), ref(model.RoleSide1, 2), ref(model.RoleSide2, 3)}},
		},
	}

	res := result.New(result.Strict)
	c.CheckModel(m, db.Version{Major: 1, Minor: 0}, res)

	require.True(t, res.HasIssues())
	assert.Contains(t, res.Messages()[0].Text, "exceeds maximum")
}

func TestCheckerCheckModelSubcomponentNotPermitted(t *testing.T) {
	t.Parallel()

	c := relation.NewBuiltinChecker()
	m := &model.Model{
		Components: []model.Component{{InternalID: 1, Type: "gear_unit"}, {InternalID: 2, Type: "planet_carrier"}},
		Relations: []model.Relation{
			{Type: model.Assembly, Refs: []model.RelationReference{ref(model.RoleAssembly, 1), ref(model.RolePart, 2)}},
		},
	}

	res := result.New(result.Strict)
	c.CheckModel(m, db.Version{Major: 1, Minor: 5}, res)

	require.True(t, res.HasIssues())
	assert.Contains(t, res.Messages()[0].Text, "not a permitted subcomponent")
}

func TestCheckerCheckModelUnrestrictedContainerTypeAllowsAnyPart(t *testing.T) {
	t.Parallel()

	c := relation.NewBuiltinChecker()
	m := &model.Model{
		Components: []model.Component{{InternalID: 1, Type: "housing"}, {InternalID: 2, Type: "anything"}},
		Relations: []model.Relation{
			{Type: model.Assembly, Refs: []model.RelationReference{ref(model.RoleAssembly, 1), ref(model.RolePart, 2)}},
		},
	}

	res := result.New(result.Strict)
	c.CheckModel(m, db.Version{Major: 1, Minor: 5}, res)

	assert.True(t, res.OK())
}

func TestCheckerRelaxedModeDowngradesToWarning(t *testing.T) {
	t.Parallel()

	c := relation.NewBuiltinChecker()
	m := &model.Model{
		Components: []model.Component{{InternalID: 1, Type: "gear_unit"}},
		Relations: []model.Relation{
			{Type: model.Assembly, Refs: []model.RelationReference{ref(model.RoleAssembly, 1)}},
		},
	}

	res := result.New(result.Relaxed)
	c.CheckModel(m, db.Version{Major: 1, Minor: 5}, res)

	require.Len(t, res.Messages(), 1)
	assert.Equal(t, result.Warning, res.Messages()[0].Severity)
	assert.True(t, res.OK())
}
