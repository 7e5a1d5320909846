package schema

import "github.com/google/jsonschema-go/jsonschema"

// arrayElement is the shared shape of <array>/<array code="...">: either a
// sequence of <c> scalar children, or base64 text content when coded.
func arrayElement(name string) ElementDecl {
	return ElementDecl{
		Name:      name,
		MinOccurs: 0,
		MaxOccurs: 1,
		Attributes: []AttributeDecl{
			{Name: "code", Type: SimpleType{Base: StringType, Enumeration: []string{"int32", "float32", "float64"}}},
		},
		Type: &ComplexType{
			AnyAttr:       true,
			SimpleContent: &SimpleType{Base: StringType},
			Sequence: []ElementDecl{
				{Name: "c", MinOccurs: 0, MaxOccurs: Unbounded, Simple: &SimpleType{Base: StringType}},
			},
		},
	}
}

func matrixElement() ElementDecl {
	return ElementDecl{
		Name:      "matrix",
		MinOccurs: 0,
		MaxOccurs: 1,
		Attributes: []AttributeDecl{
			{Name: "code", Type: SimpleType{Base: StringType, Enumeration: []string{"int32", "float32", "float64"}}},
			{Name: "rows", Type: SimpleType{Base: NonNegativeIntegerType}},
			{Name: "columns", Type: SimpleType{Base: NonNegativeIntegerType}},
		},
		Type: &ComplexType{
			AnyAttr:       true,
			SimpleContent: &SimpleType{Base: StringType},
			Sequence: []ElementDecl{
				{Name: "r", MinOccurs: 0, MaxOccurs: Unbounded, Type: &ComplexType{
					Sequence: []ElementDecl{
						{Name: "c", MinOccurs: 0, MaxOccurs: Unbounded, Simple: &SimpleType{Base: StringType}},
					},
				}},
			},
		},
	}
}

func attributeElement() ElementDecl {
	return ElementDecl{
		Name:      "attribute",
		MinOccurs: 0,
		MaxOccurs: Unbounded,
		Attributes: []AttributeDecl{
			{Name: "id", Required: true, Type: SimpleType{Base: StringType}},
			{Name: "unit", Type: SimpleType{Base: StringType}},
		},
		Type: &ComplexType{
			AnyAttr:       true,
			SimpleContent: &SimpleType{Base: StringType},
			Sequence: []ElementDecl{
				arrayElement("array"),
				matrixElement(),
				{Name: "array_of_arrays", MinOccurs: 0, MaxOccurs: 1, Type: &ComplexType{
					Sequence: []ElementDecl{arrayElement("array")},
				}},
			},
		},
	}
}

func componentElement() ElementDecl {
	return ElementDecl{
		Name:      "component",
		MinOccurs: 0,
		MaxOccurs: Unbounded,
		Attributes: []AttributeDecl{
			{Name: "id", Required: true, Type: SimpleType{Base: NonNegativeIntegerType}},
			{Name: "type", Required: true, Type: SimpleType{Base: StringType}},
			{Name: "name", Type: SimpleType{Base: StringType}},
		},
		Type: &ComplexType{
			Sequence: []ElementDecl{attributeElement()},
		},
	}
}

func relationRefElement() ElementDecl {
	return ElementDecl{
		Name:      "ref",
		MinOccurs: 1,
		MaxOccurs: Unbounded,
		Attributes: []AttributeDecl{
			{Name: "id", Required: true, Type: SimpleType{Base: NonNegativeIntegerType}},
			{Name: "role", Required: true, Type: SimpleType{Base: StringType}},
			{Name: "hint", Type: SimpleType{Base: StringType}},
		},
	}
}

func relationElement() ElementDecl {
	return ElementDecl{
		Name:      "relation",
		MinOccurs: 0,
		MaxOccurs: Unbounded,
		Attributes: []AttributeDecl{
			{Name: "id", Required: true, Type: SimpleType{Base: NonNegativeIntegerType}},
			{Name: "type", Required: true, Type: SimpleType{Base: StringType}},
			{Name: "order", Type: SimpleType{Base: NonNegativeIntegerType}},
		},
		Type: &ComplexType{
			Sequence: []ElementDecl{relationRefElement()},
		},
	}
}

func loadComponentElement() ElementDecl {
	return ElementDecl{
		Name:      "component",
		MinOccurs: 0,
		MaxOccurs: Unbounded,
		Attributes: []AttributeDecl{
			{Name: "id", Required: true, Type: SimpleType{Base: NonNegativeIntegerType}},
		},
		Type: &ComplexType{
			Sequence: []ElementDecl{attributeElement()},
		},
	}
}

// TreeSchema returns the XSD-like schema for the structured-text tree
// format, rooted at <model>.
func TreeSchema() ElementDecl {
	return ElementDecl{
		Name: "model",
		Attributes: []AttributeDecl{
			{Name: "applicationId", Required: true, Type: SimpleType{Base: StringType}},
			{Name: "applicationVersion", Required: true, Type: SimpleType{Base: StringType}},
			{Name: "applicationLanguage", Type: SimpleType{Base: StringType}},
			{Name: "date", Required: true, Type: SimpleType{Base: StringType}},
			{Name: "version", Required: true, Type: SimpleType{Base: StringType}},
		},
		Type: &ComplexType{
			Sequence: []ElementDecl{
				{Name: "relations", MinOccurs: 1, MaxOccurs: 1, Type: &ComplexType{
					Sequence: []ElementDecl{relationElement()},
				}},
				{Name: "components", MinOccurs: 1, MaxOccurs: 1, Type: &ComplexType{
					Sequence: []ElementDecl{componentElement()},
				}},
				{Name: "load_spectrum", MinOccurs: 0, MaxOccurs: 1, Attributes: []AttributeDecl{
					{Name: "id", Required: true, Type: SimpleType{Base: NonNegativeIntegerType}},
				}, Type: &ComplexType{
					Sequence: []ElementDecl{
						{Name: "load_case", MinOccurs: 0, MaxOccurs: Unbounded, Attributes: []AttributeDecl{
							{Name: "id", Required: true, Type: SimpleType{Base: NonNegativeIntegerType}},
						}, Type: &ComplexType{
							Sequence: []ElementDecl{loadComponentElement()},
						}},
						{Name: "accumulation", MinOccurs: 0, MaxOccurs: 1, Type: &ComplexType{
							Sequence: []ElementDecl{loadComponentElement()},
						}},
					},
				}},
			},
		},
	}
}

// JSONSchema returns the draft-07 schema for the JSON format's top-level
// {"model": {...}} document.
func JSONSchema() *jsonschema.Schema {
	str := func() *jsonschema.Schema { return &jsonschema.Schema{Type: "string"} }

	attribute := func() *jsonschema.Schema {
		return &jsonschema.Schema{
			Type:       "object",
			Properties: map[string]*jsonschema.Schema{"id": str(), "unit": str()},
			Required:   []string{"id"},
		}
	}

	component := func() *jsonschema.Schema {
		return &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"id":         {Type: "integer"},
				"type":       str(),
				"name":       str(),
				"attributes": {Type: "array", Items: attribute()},
			},
			Required: []string{"id", "type"},
		}
	}

	ref := func() *jsonschema.Schema {
		return &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"id":   {Type: "integer"},
				"role": str(),
				"hint": str(),
			},
			Required: []string{"id", "role"},
		}
	}

	relation := func() *jsonschema.Schema {
		return &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"id":    {Type: "integer"},
				"type":  str(),
				"order": {Type: "integer"},
				"refs":  {Type: "array", Items: ref()},
			},
			Required: []string{"id", "type"},
		}
	}

	loadComponent := func() *jsonschema.Schema {
		return &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"id":         {Type: "integer"},
				"attributes": {Type: "array", Items: attribute()},
			},
			Required: []string{"id"},
		}
	}

	loadCase := func() *jsonschema.Schema {
		return &jsonschema.Schema{
			Type:       "object",
			Properties: map[string]*jsonschema.Schema{"id": {Type: "integer"}, "components": {Type: "array", Items: loadComponent()}},
		}
	}

	loadSpectrum := &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"id":           {Type: "integer"},
			"load_cases":   {Type: "array", Items: loadCase()},
			"accumulation": {Type: "array", Items: loadComponent()},
		},
	}

	model := &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"applicationId":       str(),
			"applicationVersion":  str(),
			"applicationLanguage": str(),
			"date":                str(),
			"version":             str(),
			"relations":           {Type: "array", Items: relation()},
			"components":          {Type: "array", Items: component()},
			"load_spectrum":       loadSpectrum,
		},
		Required: []string{"applicationId", "applicationVersion", "date", "version", "relations", "components"},
	}

	return &jsonschema.Schema{
		Schema: "http://json-schema.org/draft-07/schema#",
		Type:   "object",
		Properties: map[string]*jsonschema.Schema{
			"model": model,
		},
		Required: []string{"model"},
	}
}
