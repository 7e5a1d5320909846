package serializer

import (
	"encoding/json"
	"fmt"

	"go.rexsapi.dev/rexsapi/codec"
	"go.rexsapi.dev/rexsapi/model"
	"go.rexsapi.dev/rexsapi/value"
)

// WriteJSON renders m as a JSON document.
func (s *Serializer) WriteJSON(m *model.Model) ([]byte, error) {
	ids := emittedIDs(m)

	root := map[string]any{
		"applicationId":      m.Info.ApplicationID,
		"applicationVersion": m.Info.ApplicationVersion,
		"date":               value.NewTimestamp(m.Info.Date, 0).String(),
		"version":            m.Info.Version.String(),
		"relations":          []any{},
		"components":         []any{},
	}

	if m.Info.Language != "" {
		root["applicationLanguage"] = m.Info.Language
	}

	relations := make([]any, 0, len(m.Relations))

	for i, rel := range m.Relations {
		relations = append(relations, jsonRelation(i+1, rel, ids))
	}

	root["relations"] = relations

	components := make([]any, 0, len(m.Components))

	for _, c := range m.Components {
		comp, err := jsonComponent(c, ids)
		if err != nil {
			return nil, err
		}

		components = append(components, comp)
	}

	root["components"] = components

	if !m.Spectrum.IsEmpty() {
		spectrum, err := jsonLoadSpectrum(m.Spectrum, ids)
		if err != nil {
			return nil, err
		}

		root["load_spectrum"] = spectrum
	}

	doc := map[string]any{"model": root}

	if s.indent == "" {
		return json.Marshal(doc)
	}

	return json.MarshalIndent(doc, "", s.indent)
}

func jsonRelation(id int, rel model.Relation, ids map[uint64]uint64) map[string]any {
	refs := make([]any, 0, len(rel.Refs))

	for _, ref := range rel.Refs {
		r := map[string]any{"id": ids[ref.ComponentRef], "role": ref.Role.String()}
		if ref.Hint != "" {
			r["hint"] = ref.Hint
		}

		refs = append(refs, r)
	}

	out := map[string]any{"id": id, "type": rel.Type.String(), "refs": refs}
	if rel.IsOrdered() {
		out["order"] = *rel.Order
	}

	return out
}

func jsonComponent(c model.Component, ids map[uint64]uint64) (map[string]any, error) {
	attrs := make([]any, 0, len(c.Attributes))

	for _, a := range c.Attributes {
		obj, err := jsonAttribute(a, ids)
		if err != nil {
			return nil, err
		}

		attrs = append(attrs, obj)
	}

	out := map[string]any{"id": ids[c.InternalID], "type": c.Type, "attributes": attrs}
	if c.Name != "" {
		out["name"] = c.Name
	}

	return out, nil
}

func jsonAttribute(a model.Attribute, ids map[uint64]uint64) (map[string]any, error) {
	out := map[string]any{"id": a.ID()}
	if u := a.Unit(); u.Name != "" && u.Name != "none" {
		out["unit"] = u.Name
	}

	v := a.Value()

	if v.Type() == value.ReferenceComponent {
		internal, err := value.Get[uint64](v)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", a.ID(), err)
		}

		out[value.ReferenceComponent.String()] = ids[internal]

		return out, nil
	}

	key, payload, err := jsonValuePayload(v)
	if err != nil {
		return nil, fmt.Errorf("attribute %q: %w", a.ID(), err)
	}

	out[key] = payload

	return out, nil
}

func jsonValuePayload(v value.Value) (string, any, error) {
	switch v.Type() {
	case value.FloatingPoint:
		return v.Type().String(), value.GetOr(v, 0.0), nil
	case value.Boolean:
		return v.Type().String(), value.GetOr(v, false), nil
	case value.Integer:
		return v.Type().String(), value.GetOr[int64](v, 0), nil
	case value.Enum, value.String, value.FileReference:
		return v.Type().String(), value.GetOr(v, ""), nil
	case value.DateTime:
		return v.Type().String(), value.GetOr(v, value.Timestamp{}).String(), nil
	case value.FloatingPointArray:
		if v.Coding() != value.CodingNone {
			et := codec.FloatElementType(v.Coding() == value.CodingOptimized)

			b64, err := codec.EncodeArray(value.GetOr[[]float64](v, nil), et)
			if err != nil {
				return "", nil, err
			}

			return v.Type().String() + "_coded", map[string]any{"code": string(et), "value": b64}, nil
		}

		return v.Type().String(), value.GetOr[[]float64](v, nil), nil
	case value.IntegerArray:
		if v.Coding() != value.CodingNone {
			b64, err := codec.EncodeIntArray(value.GetOr[[]int64](v, nil))
			if err != nil {
				return "", nil, err
			}

			return v.Type().String() + "_coded", map[string]any{"code": string(codec.Int32), "value": b64}, nil
		}

		return v.Type().String(), value.GetOr[[]int64](v, nil), nil
	case value.BooleanArray:
		return v.Type().String(), value.GetOr[[]bool](v, nil), nil
	case value.EnumArray, value.StringArray:
		return v.Type().String(), value.GetOr[[]string](v, nil), nil
	case value.FloatingPointMatrix:
		m := value.GetOr(v, value.Matrix[float64]{})

		if v.Coding() != value.CodingNone {
			et := codec.FloatElementType(v.Coding() == value.CodingOptimized)
			rows, cols := m.Dims()

			b64, err := codec.EncodeMatrix(m.Rows, et)
			if err != nil {
				return "", nil, err
			}

			return v.Type().String() + "_coded", map[string]any{"code": string(et), "rows": rows, "columns": cols, "value": b64}, nil
		}

		return v.Type().String(), m.Rows, nil
	case value.BooleanMatrix:
		return v.Type().String(), value.GetOr(v, value.Matrix[bool]{}).Rows, nil
	case value.IntegerMatrix:
		return v.Type().String(), value.GetOr(v, value.Matrix[int64]{}).Rows, nil
	case value.StringMatrix:
		return v.Type().String(), value.GetOr(v, value.Matrix[string]{}).Rows, nil
	case value.ArrayOfIntegerArrays:
		return v.Type().String(), value.GetOr[[][]int64](v, nil), nil
	default:
		return "", nil, fmt.Errorf("%w: %s", ErrUnsupportedValueType, v.Type())
	}
}

func jsonLoadSpectrum(spectrum *model.LoadSpectrum, ids map[uint64]uint64) (map[string]any, error) {
	out := map[string]any{"id": 1}

	cases := make([]any, 0, len(spectrum.Cases))

	for i, lc := range spectrum.Cases {
		components := make([]any, 0, len(lc.Components))

		for _, lcomp := range lc.Components {
			comp, err := jsonLoadComponent(lcomp, ids)
			if err != nil {
				return nil, err
			}

			components = append(components, comp)
		}

		cases = append(cases, map[string]any{"id": i + 1, "components": components})
	}

	out["load_cases"] = cases

	if spectrum.Accumulation != nil {
		accumulation := make([]any, 0, len(spectrum.Accumulation.Components))

		for _, lcomp := range spectrum.Accumulation.Components {
			comp, err := jsonLoadComponent(lcomp, ids)
			if err != nil {
				return nil, err
			}

			accumulation = append(accumulation, comp)
		}

		out["accumulation"] = accumulation
	}

	return out, nil
}

func jsonLoadComponent(lc model.LoadComponent, ids map[uint64]uint64) (map[string]any, error) {
	attrs := make([]any, 0, len(lc.LoadAttributes))

	for _, a := range lc.LoadAttributes {
		obj, err := jsonAttribute(a, ids)
		if err != nil {
			return nil, err
		}

		attrs = append(attrs, obj)
	}

	return map[string]any{"id": ids[lc.ComponentRef], "attributes": attrs}, nil
}
