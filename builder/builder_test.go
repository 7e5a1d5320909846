package builder_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.rexsapi.dev/rexsapi/builder"
	"go.rexsapi.dev/rexsapi/db"
	"go.rexsapi.dev/rexsapi/model"
	"go.rexsapi.dev/rexsapi/value"
)

func testDB(t *testing.T) *db.Model {
	t.Helper()

	m, err := db.NewModel(
		db.Version{Major: 1, Minor: 5},
		"en",
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		db.Released,
		[]db.Unit{{ID: 1, Name: "kg"}, {ID: 2, Name: "none"}},
		[]db.Attribute{
			{ID: "account_for_gravity", Name: "Account for gravity", ValueType: value.Boolean, Unit: db.None},
			{ID: "mass", Name: "Mass", ValueType: value.FloatingPoint, Unit: db.Unit{Name: "kg"}},
			{ID: "reference_component_for_position", Name: "Reference component", ValueType: value.ReferenceComponent, Unit: db.None},
		},
		[]db.Component{
			db.NewComponent("gear_unit", "Gear unit", "account_for_gravity"),
			db.NewComponent("shaft", "Shaft", "mass", "reference_component_for_position"),
		},
	)
	require.NoError(t, err)

	return m
}

func testInfo() model.Info {
	return model.Info{
		ApplicationID:      "testapp",
		ApplicationVersion: "1.0",
		Date:               time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Version:            db.Version{Major: 1, Minor: 5},
		Language:           "en",
	}
}

func TestBuilderBuildsModel(t *testing.T) {
	t.Parallel()

	b := builder.New(testDB(t))
	b.AddComponent("gear_unit").Name("Unit").
		AddAttribute("account_for_gravity").Value(value.Bool(true)).
		AddComponent("shaft").Name("Input shaft").
		AddAttribute("mass").Unit("kg").Value(value.Float(12.5)).
		AddRelation(model.Assembly).
		AddRef(model.RoleAssembly, 1, "").
		AddRef(model.RolePart, 2, "")

	m, err := b.Build(testInfo())
	require.NoError(t, err)

	require.Len(t, m.Components, 2)
	assert.Equal(t, uint64(1), m.Components[0].InternalID)
	assert.Equal(t, "Unit", m.Components[0].Name)

	attr, ok := m.Components[0].Attribute("account_for_gravity")
	require.True(t, ok)
	assert.True(t, value.GetOr(attr.Value(), false))

	attr, ok = m.Components[1].Attribute("mass")
	require.True(t, ok)
	assert.InDelta(t, 12.5, value.GetOr(attr.Value(), 0.0), 1e-9)

	require.Len(t, m.Relations, 1)
	assert.Len(t, m.Relations[0].Refs, 2)
}

func TestBuilderResolvesReferences(t *testing.T) {
	t.Parallel()

	b := builder.New(testDB(t))
	b.AddComponentWithID("gear_unit", 42).
		AddAttribute("account_for_gravity").Value(value.Bool(false)).
		AddComponentWithID("shaft", 43).
		AddAttribute("reference_component_for_position").Reference(42).
		AddRelation(model.Assembly).
		AddRef(model.RoleAssembly, 42, "").
		AddRef(model.RolePart, 43, "")

	m, err := b.Build(testInfo())
	require.NoError(t, err)

	target, ok := m.ComponentByExternalID(42)
	require.True(t, ok)

	attr, ok := m.Components[1].Attribute("reference_component_for_position")
	require.True(t, ok)
	assert.Equal(t, target.InternalID, value.GetOr(attr.Value(), uint64(0)))
}

func TestBuilderRejectsValueOnReferenceAttribute(t *testing.T) {
	t.Parallel()

	b := builder.New(testDB(t))
	b.AddComponent("shaft").
		AddAttribute("reference_component_for_position").
		Value(value.Reference(42))

	_, err := b.Build(testInfo())
	require.ErrorIs(t, err, builder.ErrUseReference)
	assert.Contains(t, err.Error(), "Reference(...)")
}

func TestBuilderRejectsTypeMismatch(t *testing.T) {
	t.Parallel()

	b := builder.New(testDB(t))
	b.AddComponent("shaft").
		AddAttribute("mass").Value(value.Bool(true))

	_, err := b.Build(testInfo())
	require.ErrorIs(t, err, builder.ErrTypeMismatch)
}

func TestBuilderRejectsMixedIDNamespaces(t *testing.T) {
	t.Parallel()

	b := builder.New(testDB(t))
	b.AddComponent("gear_unit").
		AddComponentWithID("shaft", 7)

	_, err := b.Build(testInfo())
	require.ErrorIs(t, err, builder.ErrMixedIDNamespace)
}

func TestBuilderStringIDNamespace(t *testing.T) {
	t.Parallel()

	b := builder.New(testDB(t))
	b.AddComponentWithStringID("gear_unit", "unit").
		AddAttribute("account_for_gravity").Value(value.Bool(true)).
		AddComponentWithStringID("shaft", "input").
		AddAttribute("reference_component_for_position").ReferenceString("unit").
		AddRelation(model.Assembly).
		AddRefString(model.RoleAssembly, "unit", "").
		AddRefString(model.RolePart, "input", "")

	m, err := b.Build(testInfo())
	require.NoError(t, err)

	// String ids never surface as document external ids.
	assert.Nil(t, m.Components[0].ExternalID)

	attr, ok := m.Components[1].Attribute("reference_component_for_position")
	require.True(t, ok)
	assert.Equal(t, m.Components[0].InternalID, value.GetOr(attr.Value(), uint64(0)))
}

func TestBuilderRejectsDuplicateAttribute(t *testing.T) {
	t.Parallel()

	b := builder.New(testDB(t))
	b.AddComponent("shaft").
		AddAttribute("mass").Value(value.Float(1)).
		AddAttribute("mass")

	_, err := b.Build(testInfo())
	require.ErrorIs(t, err, builder.ErrDuplicateAttribute)
}

func TestBuilderRejectsEmptyCustomID(t *testing.T) {
	t.Parallel()

	b := builder.New(testDB(t))
	b.AddComponent("gear_unit").
		AddCustomAttribute("", value.String)

	_, err := b.Build(testInfo())
	require.ErrorIs(t, err, builder.ErrEmptyCustomID)
}

func TestBuilderCustomAttribute(t *testing.T) {
	t.Parallel()

	b := builder.New(testDB(t))
	b.AddComponent("gear_unit").
		AddCustomAttribute("custom_note", value.String).Unit("none").Value(value.Str("prototype"))

	m, err := b.Build(testInfo())
	require.NoError(t, err)

	attr, ok := m.Components[0].Attribute("custom_note")
	require.True(t, ok)
	assert.True(t, attr.IsCustom())
	assert.Equal(t, "prototype", value.GetOr(attr.Value(), ""))
}

func TestBuilderRejectsUnusedComponent(t *testing.T) {
	t.Parallel()

	b := builder.New(testDB(t))
	b.AddComponent("gear_unit").
		AddComponent("shaft").
		AddComponent("shaft").
		AddRelation(model.Assembly).
		AddRef(model.RoleAssembly, 1, "").
		AddRef(model.RolePart, 2, "")

	_, err := b.Build(testInfo())
	require.ErrorIs(t, err, builder.ErrUnusedComponent)
}

func TestBuilderRejectsUnresolvedReference(t *testing.T) {
	t.Parallel()

	b := builder.New(testDB(t))
	b.AddComponent("shaft").
		AddAttribute("reference_component_for_position").Reference(99)

	_, err := b.Build(testInfo())
	require.ErrorIs(t, err, builder.ErrUnresolvedReference)
}

func TestBuilderRejectsMissingRole(t *testing.T) {
	t.Parallel()

	b := builder.New(testDB(t))
	b.AddComponent("gear_unit").
		AddRelation(model.Assembly).
		AddRef(model.RoleAssembly, 1, "")

	_, err := b.Build(testInfo())
	require.ErrorIs(t, err, builder.ErrRelationCheck)
	assert.Contains(t, err.Error(), "part")
}

func TestBuilderRejectsUnknownComponentType(t *testing.T) {
	t.Parallel()

	b := builder.New(testDB(t))
	b.AddComponent("warp_core")

	_, err := b.Build(testInfo())
	require.ErrorIs(t, err, builder.ErrUnknownComponentType)
}

func TestBuilderRejectsAttributeNotAllowed(t *testing.T) {
	t.Parallel()

	b := builder.New(testDB(t))
	b.AddComponent("gear_unit").
		AddAttribute("mass")

	_, err := b.Build(testInfo())
	require.ErrorIs(t, err, builder.ErrAttributeNotAllowed)
}

func TestBuilderCodedValue(t *testing.T) {
	t.Parallel()

	catalog, err := db.NewModel(
		db.Version{Major: 1, Minor: 5},
		"en",
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		db.Released,
		[]db.Unit{{ID: 1, Name: "mm"}},
		[]db.Attribute{
			{ID: "u_axis_vector", Name: "U axis vector", ValueType: value.FloatingPointArray, Unit: db.Unit{Name: "mm"}},
		},
		[]db.Component{db.NewComponent("shaft", "Shaft", "u_axis_vector")},
	)
	require.NoError(t, err)

	b := builder.New(catalog)
	b.AddComponent("shaft").
		AddAttribute("u_axis_vector").
		Value(value.FloatArray([]float64{19.8707, 44.9078})).
		Coded(value.CodingOptimized)

	m, err := b.Build(testInfo())
	require.NoError(t, err)

	attr, ok := m.Components[0].Attribute("u_axis_vector")
	require.True(t, ok)
	assert.Equal(t, value.CodingOptimized, attr.Value().Coding())
}
