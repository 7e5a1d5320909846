package decode_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.rexsapi.dev/rexsapi/db"
	"go.rexsapi.dev/rexsapi/decode"
	"go.rexsapi.dev/rexsapi/schema"
	"go.rexsapi.dev/rexsapi/value"
)

func floatAttr() db.Attribute {
	return db.Attribute{ID: "u_axis_vector", ValueType: value.FloatingPointArray}
}

func TestTreeDecoderScalarFloat(t *testing.T) {
	t.Parallel()

	d := decode.NewTreeDecoder()
	n := &schema.Node{Name: "attribute", Text: "1.5"}

	v, res := d.Decode(n, db.Attribute{ValueType: value.FloatingPoint})
	require.Equal(t, decode.Success, res)
	assert.InDelta(t, 1.5, value.GetOr(v, 0.0), 1e-9)
}

func TestTreeDecoderEmptyElementIsNoValue(t *testing.T) {
	t.Parallel()

	d := decode.NewTreeDecoder()
	n := &schema.Node{Name: "attribute"}

	_, res := d.Decode(n, db.Attribute{ValueType: value.FloatingPoint})
	assert.Equal(t, decode.NoValue, res)
}

func TestTreeDecoderScalarWithChildrenIsWrongType(t *testing.T) {
	t.Parallel()

	d := decode.NewTreeDecoder()
	n := &schema.Node{Name: "attribute", Children: []*schema.Node{{Name: "array"}}}

	_, res := d.Decode(n, db.Attribute{ValueType: value.FloatingPoint})
	assert.Equal(t, decode.WrongType, res)
}

func TestTreeDecoderEnumRejectsUnknownLiteral(t *testing.T) {
	t.Parallel()

	d := decode.NewTreeDecoder()
	n := &schema.Node{Name: "attribute", Text: "bogus"}
	attr := db.Attribute{ValueType: value.Enum, Enum: db.EnumValues{"a", "b"}}

	_, res := d.Decode(n, attr)
	assert.Equal(t, decode.Failure, res)
}

func TestTreeDecoderFloatArrayNonCoded(t *testing.T) {
	t.Parallel()

	d := decode.NewTreeDecoder()
	n := &schema.Node{
		Name: "attribute",
		Children: []*schema.Node{
			{Name: "array", Children: []*schema.Node{{Name: "c", Text: "1.0"}, {Name: "c", Text: "2.5"}}},
		},
	}

	v, res := d.Decode(n, floatAttr())
	require.Equal(t, decode.Success, res)
	assert.Equal(t, []float64{1.0, 2.5}, value.GetOr[[]float64](v, nil))
	assert.Equal(t, value.CodingNone, v.Coding())
}

func TestTreeDecoderFloatArrayCoded(t *testing.T) {
	t.Parallel()

	d := decode.NewTreeDecoder()
	n := &schema.Node{
		Name: "attribute",
		Children: []*schema.Node{
			{Name: "array", Attrs: map[string]string{"code": "float32"}, Text: "MveeQZ6hM0I="},
		},
	}

	v, res := d.Decode(n, floatAttr())
	require.Equal(t, decode.Success, res)

	xs := value.GetOr[[]float64](v, nil)
	require.Len(t, xs, 2)
	assert.InDelta(t, 19.8707, xs[0], 1e-3)
	assert.InDelta(t, 44.9078, xs[1], 1e-3)
	assert.Equal(t, value.CodingOptimized, v.Coding())
}

func TestJSONDecoderScalarBoolean(t *testing.T) {
	t.Parallel()

	d := decode.NewJSONDecoder()
	attr := map[string]any{"id": "account_for_gravity", "boolean": true}

	v, res := d.Decode(attr, db.Attribute{ValueType: value.Boolean})
	require.Equal(t, decode.Success, res)
	assert.True(t, value.GetOr(v, false))
}

func TestJSONDecoderMissingKeyIsNoValue(t *testing.T) {
	t.Parallel()

	d := decode.NewJSONDecoder()
	attr := map[string]any{"id": "x"}

	_, res := d.Decode(attr, db.Attribute{ValueType: value.Boolean})
	assert.Equal(t, decode.NoValue, res)
}

func TestJSONDecoderWrongTypeKeyPresent(t *testing.T) {
	t.Parallel()

	d := decode.NewJSONDecoder()
	attr := map[string]any{"id": "x", "integer": float64(3)}

	_, res := d.Decode(attr, db.Attribute{ValueType: value.Boolean})
	assert.Equal(t, decode.WrongType, res)
}

func TestJSONDecoderNullValueIsNoValue(t *testing.T) {
	t.Parallel()

	d := decode.NewJSONDecoder()
	attr := map[string]any{"id": "x", "boolean": nil}

	_, res := d.Decode(attr, db.Attribute{ValueType: value.Boolean})
	assert.Equal(t, decode.NoValue, res)
}

func TestJSONDecoderCodedArrayWidening(t *testing.T) {
	t.Parallel()

	d := decode.NewJSONDecoder()
	attr := map[string]any{
		"id": "u_axis_vector",
		"floating_point_array_coded": map[string]any{
			"code":  "float32",
			"value": "MveeQZ6hM0I=",
		},
	}

	v, res := d.Decode(attr, floatAttr())
	require.Equal(t, decode.Success, res)
	assert.Equal(t, value.CodingOptimized, v.Coding())

	xs := value.GetOr[[]float64](v, nil)
	require.Len(t, xs, 2)
	assert.InDelta(t, 19.8707, xs[0], 1e-3)
	assert.InDelta(t, 44.9078, xs[1], 1e-3)
}

func TestJSONDecoderEnumArrayChecksEachElement(t *testing.T) {
	t.Parallel()

	d := decode.NewJSONDecoder()
	attr := map[string]any{"id": "x", "enum_array": []any{"a", "bogus"}}
	dbAttr := db.Attribute{ValueType: value.EnumArray, Enum: db.EnumValues{"a", "b"}}

	_, res := d.Decode(attr, dbAttr)
	assert.Equal(t, decode.Failure, res)
}

func TestJSONDecoderMatrix(t *testing.T) {
	t.Parallel()

	d := decode.NewJSONDecoder()
	attr := map[string]any{"id": "x", "floating_point_matrix": []any{
		[]any{float64(1), float64(2)},
		[]any{float64(3), float64(4)},
	}}

	v, res := d.Decode(attr, db.Attribute{ValueType: value.FloatingPointMatrix})
	require.Equal(t, decode.Success, res)

	m := value.GetOr(v, value.Matrix[float64]{})
	rows, cols := m.Dims()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 2, cols)
}
