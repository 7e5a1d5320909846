package schema_test

import (
	"strings"
	"testing"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.rexsapi.dev/rexsapi/schema"
)

func TestSimpleTypeAccepts(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		t    schema.SimpleType
		text string
		want bool
	}{
		"valid int":             {schema.SimpleType{Base: schema.IntType}, "-3", true},
		"invalid int":           {schema.SimpleType{Base: schema.IntType}, "3.5", false},
		"valid non-negative":    {schema.SimpleType{Base: schema.NonNegativeIntegerType}, "0", true},
		"negative rejected":     {schema.SimpleType{Base: schema.NonNegativeIntegerType}, "-1", false},
		"decimal":               {schema.SimpleType{Base: schema.DecimalType}, "1.25e3", true},
		"boolean":               {schema.SimpleType{Base: schema.BooleanType}, "true", true},
		"enum member accepted":  {schema.SimpleType{Base: schema.StringType, Enumeration: []string{"a", "b"}}, "a", true},
		"enum non-member rejected": {schema.SimpleType{Base: schema.StringType, Enumeration: []string{"a", "b"}}, "c", false},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.t.Accepts(tc.text))
		})
	}
}

func TestTreeValidatorRejectsMissingRequiredAttribute(t *testing.T) {
	t.Parallel()

	doc := &schema.Node{
		Name:  "model",
		Attrs: map[string]string{"applicationId": "app", "date": "2024-01-01T00:00:00+00:00", "version": "1.5"},
		Children: []*schema.Node{
			{Name: "relations"},
			{Name: "components"},
		},
	}

	v := schema.NewTreeValidator(schema.TreeSchema())
	errs := v.Validate(doc)

	require.NotEmpty(t, errs)
	assertContainsText(t, errs, "applicationVersion")
}

func TestTreeValidatorAcceptsMinimalDocument(t *testing.T) {
	t.Parallel()

	doc := &schema.Node{
		Name: "model",
		Attrs: map[string]string{
			"applicationId":      "app",
			"applicationVersion": "1.0",
			"date":               "2024-01-01T00:00:00+00:00",
			"version":            "1.5",
		},
		Children: []*schema.Node{
			{Name: "relations"},
			{Name: "components", Children: []*schema.Node{
				{Name: "component", Attrs: map[string]string{"id": "1", "type": "gear_casing"}},
			}},
		},
	}

	v := schema.NewTreeValidator(schema.TreeSchema())
	assert.Empty(t, v.Validate(doc))
}

func TestTreeValidatorRejectsUnexpectedElement(t *testing.T) {
	t.Parallel()

	doc := &schema.Node{
		Name: "model",
		Attrs: map[string]string{
			"applicationId":      "app",
			"applicationVersion": "1.0",
			"date":               "2024-01-01T00:00:00+00:00",
			"version":            "1.5",
		},
		Children: []*schema.Node{
			{Name: "relations"},
			{Name: "components"},
			{Name: "bogus"},
		},
	}

	v := schema.NewTreeValidator(schema.TreeSchema())
	errs := v.Validate(doc)
	require.NotEmpty(t, errs)
	assertContainsText(t, errs, "bogus")
}

func TestJSONValidatorAcceptsMinimalDocument(t *testing.T) {
	t.Parallel()

	v := schema.NewJSONValidator(schema.JSONSchema())

	doc := map[string]any{
		"model": map[string]any{
			"applicationId":      "app",
			"applicationVersion": "1.0",
			"date":               "2024-01-01T00:00:00+00:00",
			"version":            "1.5",
			"relations":          []any{},
			"components":         []any{},
		},
	}

	assert.Empty(t, v.Validate(doc))
}

func TestJSONValidatorRejectsMissingModel(t *testing.T) {
	t.Parallel()

	v := schema.NewJSONValidator(schema.JSONSchema())
	errs := v.Validate(map[string]any{})
	assert.NotEmpty(t, errs)
}

func TestJSONValidatorCustomSchema(t *testing.T) {
	t.Parallel()

	s := &jsonschema.Schema{
		Type:       "object",
		Properties: map[string]*jsonschema.Schema{"n": {Type: "integer"}},
		Required:   []string{"n"},
	}

	v := schema.NewJSONValidator(s)

	assert.Empty(t, v.Validate(map[string]any{"n": 3}))
	assert.NotEmpty(t, v.Validate(map[string]any{"n": "three"}))
	assert.NotEmpty(t, v.Validate(map[string]any{}))
}

func assertContainsText(t *testing.T, errs []schema.Error, substr string) {
	t.Helper()

	for _, e := range errs {
		if strings.Contains(e.Path, substr) || strings.Contains(e.Message, substr) {
			return
		}
	}

	t.Fatalf("expected an error mentioning %q, got %v", substr, errs)
}
