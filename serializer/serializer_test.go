package serializer_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.rexsapi.dev/rexsapi/builder"
	"go.rexsapi.dev/rexsapi/db"
	"go.rexsapi.dev/rexsapi/format"
	"go.rexsapi.dev/rexsapi/model"
	"go.rexsapi.dev/rexsapi/parser"
	"go.rexsapi.dev/rexsapi/result"
	"go.rexsapi.dev/rexsapi/serializer"
	"go.rexsapi.dev/rexsapi/stringtest"
	"go.rexsapi.dev/rexsapi/value"
)

func testRegistry(t *testing.T) *db.Registry {
	t.Helper()

	mass := db.Attribute{ID: "mass", Name: "Mass", ValueType: value.FloatingPoint, Unit: db.Unit{Name: "kg"}}
	ratios := db.Attribute{ID: "ratios", Name: "Ratios", ValueType: value.FloatingPointArray, Unit: db.Unit{Name: "none"}}

	m, err := db.NewModel(
		db.Version{Major: 1, Minor: 5},
		"en",
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		db.Released,
		[]db.Unit{{ID: 1, Name: "kg"}, {ID: 2, Name: "none"}},
		[]db.Attribute{mass, ratios},
		[]db.Component{
			db.NewComponent("gear_unit", "Gear unit"),
			db.NewComponent("shaft", "Shaft", "mass", "ratios"),
		},
	)
	require.NoError(t, err)

	reg := db.NewRegistry()
	require.NoError(t, reg.Add(m))

	return reg
}

const roundTripTreeDoc = `<?xml version="1.0" encoding="UTF-8"?>
<model applicationId="testapp" applicationVersion="1.0" applicationLanguage="en" date="2024-01-01T00:00:00+00:00" version="1.5">
  <relations>
    <relation id="1" type="assembly">
      <ref id="1" role="assembly"/>
      <ref id="2" role="part"/>
    </relation>
  </relations>
  <components>
    <component id="1" type="gear_unit" name="Unit"/>
    <component id="2" type="shaft" name="Shaft 1">
      <attribute id="mass" unit="kg">12.5</attribute>
      <attribute id="ratios"><array><c>1.0</c><c>2.5</c></array></attribute>
    </component>
  </components>
</model>`

func TestTreeRoundTrip(t *testing.T) {
	t.Parallel()

	p := parser.New(testRegistry(t))

	m, res := p.Load("gearbox.rexs", []byte(roundTripTreeDoc), result.Strict)
	require.NotNil(t, m, "%v", res.Messages())

	out, err := serializer.New().Write(m, format.Tree)
	require.NoError(t, err)

	m2, res2 := p.Load("gearbox.rexs", out, result.Strict)
	require.NotNil(t, m2, "%v", res2.Messages())

	attr, ok := m2.Components[1].Attribute("mass")
	require.True(t, ok)
	assert.InDelta(t, 12.5, value.GetOr(attr.Value(), 0.0), 1e-9)

	ratios, ok := m2.Components[1].Attribute("ratios")
	require.True(t, ok)
	assert.Equal(t, []float64{1.0, 2.5}, value.GetOr[[]float64](ratios.Value(), nil))

	require.Len(t, m2.Relations, 1)
	assert.Equal(t, m.Relations[0].Type, m2.Relations[0].Type)
}

func TestJSONRoundTrip(t *testing.T) {
	t.Parallel()

	p := parser.New(testRegistry(t))

	m, res := p.Load("gearbox.rexs", []byte(roundTripTreeDoc), result.Strict)
	require.NotNil(t, m, "%v", res.Messages())

	out, err := serializer.New().Write(m, format.JSON)
	require.NoError(t, err)

	m2, res2 := p.Load("gearbox.rexsj", out, result.Strict)
	require.NotNil(t, m2, "%v", res2.Messages())

	attr, ok := m2.Components[1].Attribute("mass")
	require.True(t, ok)
	assert.InDelta(t, 12.5, value.GetOr(attr.Value(), 0.0), 1e-9)
}

func TestTreeRoundTripCodedFloatArray(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t)
	p := parser.New(reg)

	doc := `<?xml version="1.0" encoding="UTF-8"?>
<model applicationId="a" applicationVersion="1.0" date="2024-01-01T00:00:00+00:00" version="1.5">
  <relations></relations>
  <components>
    <component id="1" type="shaft">
      <attribute id="ratios"><array code="float32">MveeQZ6hM0I=</array></attribute>
    </component>
  </components>
</model>`

	m, res := p.Load("gearbox.rexs", []byte(doc), result.Strict)
	require.NotNil(t, m, "%v", res.Messages())

	attr, ok := m.Components[0].Attribute("ratios")
	require.True(t, ok)
	assert.Equal(t, value.CodingOptimized, attr.Value().Coding())

	out, err := serializer.New().Write(m, format.Tree)
	require.NoError(t, err)

	m2, res2 := p.Load("gearbox.rexs", out, result.Strict)
	require.NotNil(t, m2, "%v", res2.Messages())

	attr2, ok := m2.Components[0].Attribute("ratios")
	require.True(t, ok)
	assert.Equal(t, value.CodingOptimized, attr2.Value().Coding())

	xs := value.GetOr[[]float64](attr2.Value(), nil)
	require.Len(t, xs, 2)
	assert.InDelta(t, 19.8707, xs[0], 1e-3)
	assert.InDelta(t, 44.9078, xs[1], 1e-3)
}

func TestJSONGoldenBooleanScalar(t *testing.T) {
	t.Parallel()

	catalog, err := db.NewModel(
		db.Version{Major: 1, Minor: 5},
		"en",
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		db.Released,
		[]db.Unit{{ID: 1, Name: "none"}},
		[]db.Attribute{
			{ID: "account_for_gravity", Name: "Account for gravity", ValueType: value.Boolean, Unit: db.None},
		},
		[]db.Component{db.NewComponent("gear_unit", "Gear unit", "account_for_gravity")},
	)
	require.NoError(t, err)

	b := builder.New(catalog)
	b.AddComponent("gear_unit").
		AddAttribute("account_for_gravity").Value(value.Bool(true))

	m, err := b.Build(model.Info{
		ApplicationID:      "testapp",
		ApplicationVersion: "1.0",
		Date:               time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Version:            db.Version{Major: 1, Minor: 5},
		Language:           "en",
	})
	require.NoError(t, err)

	out, err := serializer.New().Write(m, format.JSON)
	require.NoError(t, err)

	want := stringtest.JoinLF(
		`{`,
		`  "model": {`,
		`    "applicationId": "testapp",`,
		`    "applicationLanguage": "en",`,
		`    "applicationVersion": "1.0",`,
		`    "components": [`,
		`      {`,
		`        "attributes": [`,
		`          {`,
		`            "boolean": true,`,
		`            "id": "account_for_gravity"`,
		`          }`,
		`        ],`,
		`        "id": 1,`,
		`        "type": "gear_unit"`,
		`      }`,
		`    ],`,
		`    "date": "2024-01-01T00:00:00+00:00",`,
		`    "relations": [],`,
		`    "version": "1.5"`,
		`  }`,
		`}`,
	)
	assert.Equal(t, want, string(out))

	reg := db.NewRegistry()
	require.NoError(t, reg.Add(catalog))

	m2, res := parser.New(reg).Load("unit.rexsj", out, result.Strict)
	require.NotNil(t, m2, "%v", res.Messages())

	attr, ok := m2.Components[0].Attribute("account_for_gravity")
	require.True(t, ok)
	assert.True(t, value.GetOr(attr.Value(), false))
}
