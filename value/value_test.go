package value_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.rexsapi.dev/rexsapi/value"
)

func TestAsStringRendering(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		v    value.Value
		want string
	}{
		"float with fraction": {v: value.Float(19.8707), want: "19.8707"},
		"float integral gets .0 suffix": {
			v:    value.Float(42),
			want: "42.0",
		},
		"float exponent uses uppercase E": {
			v:    value.Float(1.5e20),
			want: "1.5E+20",
		},
		"bool true": {v: value.Bool(true), want: "true"},
		"bool false": {v: value.Bool(false), want: "false"},
		"integer": {v: value.Int(-17), want: "-17"},
		"string": {v: value.Str("gear_unit"), want: "gear_unit"},
		"float array": {
			v:    value.FloatArray([]float64{19.8707, 44.9078}),
			want: "[19.8707,44.9078]",
		},
		"empty float array": {
			v:    value.FloatArray(nil),
			want: "[]",
		},
		"int matrix": {
			v:    value.IntMatrix(value.NewMatrix([][]int64{{1, 2}, {3, 4}})),
			want: "[[1,2],[3,4]]",
		},
		"array of integer arrays": {
			v:    value.IntArrayArray([][]int64{{1, 2, 3}, {4}}),
			want: "[[1,2,3],[4]]",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, tc.v.AsString())
		})
	}
}

func TestDateTimeRendersWithOriginatingOffset(t *testing.T) {
	t.Parallel()

	instant := time.Date(2024, 3, 1, 8, 15, 0, 0, time.UTC)
	d := value.NewTimestamp(instant, 2*time.Hour)

	assert.Equal(t, "2024-03-01T10:15:00+02:00", d.String())

	utcD := value.NewTimestamp(instant, 0)
	assert.Equal(t, "2024-03-01T08:15:00+00:00", utcD.String())
}

func TestParseTimestampRoundTrips(t *testing.T) {
	t.Parallel()

	d, err := value.ParseTimestamp("2024-03-01T10:15:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01T10:15:00+02:00", d.String())
}

func TestGetTypeMismatch(t *testing.T) {
	t.Parallel()

	v := value.Int(5)

	_, err := value.Get[float64](v)
	require.Error(t, err)

	i, err := value.Get[int64](v)
	require.NoError(t, err)
	assert.Equal(t, int64(5), i)

	assert.Equal(t, "fallback", value.GetOr(v, "fallback"))
}

func TestMatchesTypeAndEmpty(t *testing.T) {
	t.Parallel()

	v := value.Empty(value.String)
	assert.True(t, v.IsEmpty())
	assert.True(t, v.MatchesType(value.String))
	assert.False(t, v.MatchesType(value.Integer))
}

func TestMatrixValidate(t *testing.T) {
	t.Parallel()

	valid := value.NewMatrix([][]float64{{1, 2}, {3, 4}})
	assert.True(t, valid.Validate())

	invalid := value.NewMatrix([][]float64{{1, 2}, {3}})
	assert.False(t, invalid.Validate())

	rows, cols := valid.Dims()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 2, cols)
}

func TestDispatcherCompleteness(t *testing.T) {
	t.Parallel()

	d := value.NewDispatcher()
	for _, typ := range value.AllTypes() {
		d.On(typ, func(value.Value) error { return nil })
	}

	assert.True(t, d.Complete())

	err := d.Dispatch(value.Float(1))
	require.NoError(t, err)

	empty := value.NewDispatcher()
	err = empty.Dispatch(value.Bool(true))
	require.ErrorIs(t, err, value.ErrNoHandler)
}

func TestParseHelpers(t *testing.T) {
	t.Parallel()

	f, err := value.ParseFloat("3.14")
	require.NoError(t, err)
	assert.InDelta(t, 3.14, f, 1e-9)

	_, err = value.ParseFloat(" 3.14")
	require.Error(t, err)

	i, err := value.ParseInt("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), i)

	_, err = value.ParseInt("42abc")
	require.Error(t, err)

	b, err := value.ParseBool("true")
	require.NoError(t, err)
	assert.True(t, b)

	_, err = value.ParseBool("yes")
	require.Error(t, err)
}
