package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.rexsapi.dev/rexsapi/db"
	"go.rexsapi.dev/rexsapi/model"
	"go.rexsapi.dev/rexsapi/value"
)

func testModel(t *testing.T) *model.Model {
	t.Helper()

	mass := db.Attribute{ID: "mass", Name: "Mass", ValueType: value.FloatingPoint, Unit: db.Unit{Name: "kg"}}

	ext := uint64(7)

	return model.New(
		model.Info{ApplicationID: "testapp", ApplicationVersion: "1.0", Version: db.Version{Major: 1, Minor: 5}},
		[]model.Component{
			{InternalID: 1, Type: "gear_unit", Name: "Unit"},
			{InternalID: 2, ExternalID: &ext, Type: "shaft", Attributes: []model.Attribute{
				model.NewStandardAttribute(&mass, value.Float(12.5)),
			}},
		},
		[]model.Relation{
			{Type: model.Assembly, Refs: []model.RelationReference{
				{Role: model.RoleAssembly, ComponentRef: 1},
				{Role: model.RolePart, ComponentRef: 2},
			}},
		},
		nil,
	)
}

func TestBuildTree(t *testing.T) {
	t.Parallel()

	root := buildTree(testModel(t))

	require.Len(t, root.children, 2)
	assert.Contains(t, root.label, "testapp")
	assert.Contains(t, root.children[0].label, "components (2)")
	assert.Contains(t, root.children[1].label, "relations (1)")

	shaft := root.children[0].children[1]
	assert.Contains(t, shaft.label, "shaft")
	require.Len(t, shaft.children, 1)
	assert.Equal(t, "mass = 12.5 [kg]", shaft.children[0].label)

	rel := root.children[1].children[0]
	assert.Equal(t, "assembly", rel.label)
	require.Len(t, rel.children, 2)
	assert.Contains(t, rel.children[0].label, "assembly -> [1] gear_unit")
}

func TestDumpPlain(t *testing.T) {
	t.Parallel()

	var sb strings.Builder

	dumpPlain(buildTree(testModel(t)), 0, func(s string) { sb.WriteString(s) })

	out := sb.String()
	assert.Contains(t, out, "components (2)")
	assert.Contains(t, out, "  mass = 12.5 [kg]")
	assert.Contains(t, out, "part -> [2] shaft")
}

func TestFlattenRespectsExpansion(t *testing.T) {
	t.Parallel()

	root := buildTree(testModel(t))

	// Only the root starts expanded.
	rows := flatten(root, 0, nil)
	assert.Len(t, rows, 3)

	setExpanded(root, true)

	rows = flatten(root, 0, nil)
	assert.Len(t, rows, 9)
}