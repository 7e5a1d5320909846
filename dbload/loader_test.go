package dbload_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.rexsapi.dev/rexsapi/db"
	"go.rexsapi.dev/rexsapi/dbload"
	"go.rexsapi.dev/rexsapi/value"
)

const dbDoc = `<?xml version="1.0" encoding="UTF-8"?>
<rexsModel version="1.5" language="en" date="2023-03-01" status="RELEASED">
  <units>
    <unit id="1" name="kg"/>
    <unit id="2" name="C"/>
    <unit id="3" name="none"/>
  </units>
  <valueTypes>
    <valueType id="1" name="floating_point"/>
    <valueType id="2" name="boolean"/>
    <valueType id="3" name="enum"/>
  </valueTypes>
  <attributes>
    <attribute attributeId="mass" name="Mass" valueType="1" unit="1" rangeMin="0" rangeMinIntervalOpen="true"/>
    <attribute attributeId="temperature_lubricant" name="Lubricant temperature" valueType="1" unit="2" rangeMin="-273.15" rangeMinIntervalOpen="false"/>
    <attribute attributeId="account_for_gravity" name="Account for gravity" valueType="2" unit="3"/>
    <attribute attributeId="gear_shape" name="Gear shape" valueType="3" unit="3">
      <enumValues>
        <enumValue value="conical" name="Conical"/>
        <enumValue value="cylindrical" name="Cylindrical"/>
      </enumValues>
    </attribute>
  </attributes>
  <components>
    <component componentId="gear_unit" name="Gear unit"/>
    <component componentId="shaft" name="Shaft"/>
  </components>
  <componentAttributeMappings>
    <componentAttributeMapping componentId="gear_unit" attributeId="account_for_gravity"/>
    <componentAttributeMapping componentId="shaft" attributeId="mass"/>
    <componentAttributeMapping componentId="shaft" attributeId="temperature_lubricant"/>
  </componentAttributeMappings>
</rexsModel>`

func TestDecode(t *testing.T) {
	t.Parallel()

	m, err := dbload.Decode([]byte(dbDoc))
	require.NoError(t, err)

	assert.Equal(t, db.Version{Major: 1, Minor: 5}, m.Version)
	assert.Equal(t, "en", m.Language)
	assert.Equal(t, db.Released, m.Status)

	unit, ok := m.UnitByName("kg")
	require.True(t, ok)
	assert.Equal(t, uint64(1), unit.ID)

	mass, ok := m.Attribute("mass")
	require.True(t, ok)
	assert.Equal(t, value.FloatingPoint, mass.ValueType)
	assert.Equal(t, "kg", mass.Unit.Name)
	require.True(t, mass.HasInterval())
	// rangeMin=0 with an open endpoint excludes zero itself.
	assert.False(t, mass.Interval.Contains(0))
	assert.True(t, mass.Interval.Contains(0.1))

	temp, ok := m.Attribute("temperature_lubricant")
	require.True(t, ok)
	require.True(t, temp.HasInterval())
	assert.True(t, temp.Interval.Contains(-273.15))
	assert.False(t, temp.Interval.Contains(-300))

	shape, ok := m.Attribute("gear_shape")
	require.True(t, ok)
	require.True(t, shape.HasEnum())
	assert.True(t, shape.Enum.Contains("conical"))
	assert.False(t, shape.Enum.Contains("square"))

	shaft, ok := m.Component("shaft")
	require.True(t, ok)
	assert.True(t, shaft.AllowsAttribute("mass"))
	assert.False(t, shaft.AllowsAttribute("account_for_gravity"))
}

func TestDecodeRejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := dbload.Decode([]byte("<not-a-model/>"))
	require.ErrorIs(t, err, dbload.ErrMalformedDatabase)
}

func TestLoaderReadsDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rexs_model_1.5_en.xml"), []byte(dbDoc), 0o600))

	models, err := dbload.NewLoader(dir).Load()
	require.NoError(t, err)
	require.Len(t, models, 1)
	assert.Equal(t, db.Version{Major: 1, Minor: 5}, models[0].Version)
}

func TestLoaderEmptyDirectory(t *testing.T) {
	t.Parallel()

	_, err := dbload.NewLoader(t.TempDir()).Load()
	require.ErrorIs(t, err, dbload.ErrNoDatabaseFiles)
}
