package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.rexsapi.dev/rexsapi/db"
	"go.rexsapi.dev/rexsapi/model"
	"go.rexsapi.dev/rexsapi/result"
	"go.rexsapi.dev/rexsapi/validate"
	"go.rexsapi.dev/rexsapi/value"
)

func interval(lo, hi *float64, loClosed, hiClosed bool) *db.Interval {
	iv := db.NewInterval(lo, hi, loClosed, hiClosed)
	return &iv
}

func TestCheckRange(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		attr db.Attribute
		v    value.Value
		want bool
	}{
		"no interval always passes": {
			attr: db.Attribute{ValueType: value.FloatingPoint},
			v:    value.Float(-1e12),
			want: true,
		},
		"closed low endpoint includes boundary": {
			attr: db.Attribute{ValueType: value.FloatingPoint, Interval: interval(db.Ptr(-273.15), nil, true, false)},
			v:    value.Float(-273.15),
			want: true,
		},
		"below closed low endpoint fails": {
			attr: db.Attribute{ValueType: value.FloatingPoint, Interval: interval(db.Ptr(-273.15), nil, true, false)},
			v:    value.Float(-300),
			want: false,
		},
		"open low endpoint excludes boundary": {
			attr: db.Attribute{ValueType: value.FloatingPoint, Interval: interval(db.Ptr(0), nil, false, false)},
			v:    value.Float(0),
			want: false,
		},
		"integer scalar checked": {
			attr: db.Attribute{ValueType: value.Integer, Interval: interval(db.Ptr(1), db.Ptr(10), true, true)},
			v:    value.Int(11),
			want: false,
		},
		"every array element checked": {
			attr: db.Attribute{ValueType: value.FloatingPointArray, Interval: interval(db.Ptr(0), nil, true, false)},
			v:    value.FloatArray([]float64{1, 2, -3}),
			want: false,
		},
		"every matrix element checked": {
			attr: db.Attribute{ValueType: value.FloatingPointMatrix, Interval: interval(nil, db.Ptr(5), false, true)},
			v:    value.FloatMatrix(value.NewMatrix([][]float64{{1, 2}, {3, 9}})),
			want: false,
		},
		"string types pass untouched": {
			attr: db.Attribute{ValueType: value.String, Interval: interval(db.Ptr(0), nil, true, false)},
			v:    value.Str("not a number"),
			want: true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, validate.CheckRange(tc.v, tc.attr))
		})
	}
}

func TestCheckUnit(t *testing.T) {
	t.Parallel()

	attr := db.Attribute{Unit: db.Unit{Name: "kg"}}

	assert.True(t, validate.CheckUnit("kg", attr))
	assert.True(t, validate.CheckUnit("", attr), "omitted unit agrees")
	assert.False(t, validate.CheckUnit("C", attr))
}

func TestValidatorReportsRangeWithComponentContext(t *testing.T) {
	t.Parallel()

	temp := db.Attribute{
		ID:        "temperature_lubricant",
		Name:      "Lubricant temperature",
		ValueType: value.FloatingPoint,
		Unit:      db.Unit{Name: "C"},
		Interval:  interval(db.Ptr(-273.15), nil, true, false),
	}

	m := model.New(model.Info{Version: db.Version{Major: 1, Minor: 5}}, []model.Component{
		{InternalID: 1, Type: "gear_unit", Attributes: []model.Attribute{
			model.NewStandardAttribute(&temp, value.Float(-300)),
		}},
	}, nil, nil)

	res := result.New(result.Strict)
	validate.NewValidator().CheckModel(m, res)

	require.False(t, res.OK())

	found := false

	for _, msg := range res.Messages() {
		if msg.Severity == result.Error {
			assert.Contains(t, msg.Text, "temperature_lubricant")
			assert.Contains(t, msg.Text, "gear_unit [1]")

			found = true
		}
	}

	assert.True(t, found, "expected a range error: %v", res.Messages())
}

func TestValidatorChecksLoadAttributes(t *testing.T) {
	t.Parallel()

	temp := db.Attribute{
		ID:        "temperature_lubricant",
		ValueType: value.FloatingPoint,
		Interval:  interval(db.Ptr(-273.15), nil, true, false),
	}

	m := model.New(model.Info{Version: db.Version{Major: 1, Minor: 5}}, []model.Component{
		{InternalID: 1, Type: "gear_unit"},
	}, nil, &model.LoadSpectrum{
		Cases: []model.LoadCase{{Components: []model.LoadComponent{{
			ComponentRef: 1,
			LoadAttributes: []model.Attribute{
				model.NewStandardAttribute(&temp, value.Float(-400)),
			},
		}}}},
	})

	res := result.New(result.Strict)
	validate.NewValidator().CheckModel(m, res)

	require.False(t, res.OK())
	assert.Contains(t, res.Messages()[0].Text, "load component 1")
}

func TestDuplicateTracker(t *testing.T) {
	t.Parallel()

	tr := validate.NewDuplicateTracker()

	assert.False(t, tr.Seen("mass"))
	assert.True(t, tr.Seen("mass"))
	assert.False(t, tr.Seen("width"))
}
