package parser

import (
	"encoding/json"

	"go.rexsapi.dev/rexsapi/db"
	"go.rexsapi.dev/rexsapi/decode"
	"go.rexsapi.dev/rexsapi/model"
	"go.rexsapi.dev/rexsapi/result"
	"go.rexsapi.dev/rexsapi/schema"
	"go.rexsapi.dev/rexsapi/validate"
	"go.rexsapi.dev/rexsapi/value"
)

func (p *Parser) loadJSON(data []byte, mode result.Mode, res *result.Result) *model.Model {
	var doc map[string]any

	if err := json.Unmarshal(data, &doc); err != nil {
		res.Addf(result.Critical, "parsing document: %s", err)
		return nil
	}

	if errs := schema.NewJSONValidator(schema.JSONSchema()).Validate(doc); len(errs) > 0 {
		for _, e := range errs {
			res.Addf(result.Critical, "schema: %s", e)
		}

		return nil
	}

	root, _ := doc["model"].(map[string]any)

	h := header{
		applicationID:      jsonStr(root, "applicationId"),
		applicationVersion: jsonStr(root, "applicationVersion"),
		date:               jsonStr(root, "date"),
		version:            jsonStr(root, "version"),
		language:           jsonStr(root, "applicationLanguage"),
	}

	dbModel, info, ok := p.resolveDBModel(h, mode, res)
	if !ok {
		return nil
	}

	dec := decode.NewJSONDecoder()

	componentObjs := jsonArray(root, "components")
	components := make([]model.Component, 0, len(componentObjs))
	externalToInternal := make(map[uint64]uint64, len(componentObjs))

	for i, raw := range componentObjs {
		cobj, ok := raw.(map[string]any)
		if !ok {
			res.Addf(result.Error, "component[%d]: malformed", i)
			continue
		}

		internalID := uint64(i + 1) //nolint:gosec // document-order index, small
		externalID := jsonUint(cobj, "id")
		externalToInternal[externalID] = internalID

		typ := jsonStr(cobj, "type")
		dbComponent, hasDBComponent := dbModel.Component(typ)

		attrs := parseJSONAttributes(dec, dbModel, dbComponent, hasDBComponent, jsonArray(cobj, "attributes"), res, i)

		components = append(components, model.Component{
			ExternalID: &externalID,
			InternalID: internalID,
			Type:       typ,
			Name:       jsonStr(cobj, "name"),
			Attributes: attrs,
		})
	}

	relationObjs := jsonArray(root, "relations")
	relations := make([]model.Relation, 0, len(relationObjs))

	for i, raw := range relationObjs {
		robj, ok := raw.(map[string]any)
		if !ok {
			res.Addf(result.Error, "relation[%d]: malformed", i)
			continue
		}

		rel, ok := parseJSONRelation(robj, externalToInternal, res, i)
		if ok {
			relations = append(relations, rel)
		}
	}

	spectrum := parseJSONLoadSpectrum(dec, dbModel, root, externalToInternal, res)

	return model.New(info, components, relations, spectrum)
}

func jsonStr(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func jsonUint(m map[string]any, key string) uint64 {
	f, _ := m[key].(float64)
	return uint64(f)
}

func jsonArray(m map[string]any, key string) []any {
	a, _ := m[key].([]any)
	return a
}

func parseJSONAttributes(
	dec *decode.JSONDecoder,
	dbModel *db.Model,
	dbComponent db.Component,
	hasDBComponent bool,
	raws []any,
	res *result.Result,
	componentIndex int,
) []model.Attribute {
	dups := validate.NewDuplicateTracker()
	attrs := make([]model.Attribute, 0, len(raws))

	for _, raw := range raws {
		aobj, ok := raw.(map[string]any)
		if !ok {
			continue
		}

		id := jsonStr(aobj, "id")

		if dups.Seen(id) {
			res.Addf(result.Error, "component[%d]: duplicate attribute %q", componentIndex, id)
			continue
		}

		isCustom := model.LooksCustomByID(id) || !hasDBComponent || !dbComponent.AllowsAttribute(id)
		if isCustom && !model.LooksCustomByID(id) {
			res.Addf(result.Error, "component[%d]: attribute %q is not declared by component type %q", componentIndex, id, dbComponent.ID)
		}

		if isCustom {
			attr, ok := parseCustomJSONAttribute(dec, aobj, id, componentIndex, res)
			if ok {
				attrs = append(attrs, attr)
			}

			continue
		}

		dbAttr, ok := dbModel.Attribute(id)
		if !ok {
			res.Addf(result.Error, "component[%d]: unknown attribute %q", componentIndex, id)
			continue
		}

		if unit := jsonStr(aobj, "unit"); !validate.CheckUnit(unit, dbAttr) {
			res.Addf(result.Error, "component[%d]: attribute %q: unit %q does not match database unit %q",
				componentIndex, id, unit, dbAttr.Unit.Name)
		}

		v, dr := dec.Decode(aobj, dbAttr)

		switch dr {
		case decode.Success:
			// Range conformance is checked by the semantic pass after
			// post-processing; an out-of-range value stays in the model.
			attrs = append(attrs, model.NewStandardAttribute(&dbAttr, v))
		case decode.NoValue:
			continue
		case decode.WrongType, decode.Failure:
			res.Addf(result.Error, "component[%d]: attribute %q: %s", componentIndex, id, dr)
		}
	}

	return attrs
}

func inferJSONValueType(attr map[string]any) (value.Type, bool) {
	for _, t := range value.AllTypes() {
		key := t.String()
		if _, ok := attr[key]; ok {
			return t, true
		}

		switch t {
		case value.FloatingPointArray, value.IntegerArray, value.FloatingPointMatrix:
			if _, ok := attr[key+"_coded"]; ok {
				return t, true
			}
		}
	}

	return value.String, false
}

func parseCustomJSONAttribute(dec *decode.JSONDecoder, aobj map[string]any, id string, componentIndex int, res *result.Result) (model.Attribute, bool) {
	vt, ok := inferJSONValueType(aobj)
	if !ok {
		return model.Attribute{}, false
	}

	dbAttr := db.Attribute{ID: id, ValueType: vt}

	v, dr := dec.Decode(aobj, dbAttr)
	if dr != decode.Success {
		if dr == decode.NoValue {
			return model.Attribute{}, false
		}

		res.Addf(result.Error, "component[%d]: custom attribute %q: %s", componentIndex, id, dr)
		return model.Attribute{}, false
	}

	unit := db.Unit{Name: jsonStr(aobj, "unit")}

	attr, err := model.NewCustomAttribute(id, unit, vt, v)
	if err != nil {
		res.Addf(result.Error, "component[%d]: custom attribute %q: %s", componentIndex, id, err)
		return model.Attribute{}, false
	}

	return attr, true
}

func parseJSONRelation(robj map[string]any, externalToInternal map[uint64]uint64, res *result.Result, index int) (model.Relation, bool) {
	typ, err := model.ParseRelationType(jsonStr(robj, "type"))
	if err != nil {
		res.Addf(result.Error, "relation[%d]: %s", index, err)
		return model.Relation{}, false
	}

	var order *uint32

	if raw, ok := robj["order"]; ok {
		f, _ := raw.(float64)
		o := uint32(f) //nolint:gosec // document-order value
		order = &o
	}

	refObjs := jsonArray(robj, "refs")
	refs := make([]model.RelationReference, 0, len(refObjs))

	for _, raw := range refObjs {
		refObj, ok := raw.(map[string]any)
		if !ok {
			continue
		}

		role, err := model.ParseRelationRole(jsonStr(refObj, "role"))
		if err != nil {
			res.Addf(result.Error, "relation[%d]: %s", index, err)
			continue
		}

		externalID := jsonUint(refObj, "id")

		internalID, ok := externalToInternal[externalID]
		if !ok {
			res.Addf(result.Error, "relation[%d]: dangling reference to component %d", index, externalID)
			continue
		}

		refs = append(refs, model.RelationReference{Role: role, Hint: jsonStr(refObj, "hint"), ComponentRef: internalID})
	}

	return model.Relation{Type: typ, Order: order, Refs: refs}, true
}

func parseJSONLoadSpectrum(
	dec *decode.JSONDecoder,
	dbModel *db.Model,
	root map[string]any,
	externalToInternal map[uint64]uint64,
	res *result.Result,
) *model.LoadSpectrum {
	ls, ok := root["load_spectrum"].(map[string]any)
	if !ok {
		return nil
	}

	spectrum := &model.LoadSpectrum{}

	for _, raw := range jsonArray(ls, "load_cases") {
		lcObj, ok := raw.(map[string]any)
		if !ok {
			continue
		}

		var components []model.LoadComponent

		for _, craw := range jsonArray(lcObj, "components") {
			cobj, ok := craw.(map[string]any)
			if !ok {
				continue
			}

			lc, ok := parseJSONLoadComponent(dec, dbModel, cobj, externalToInternal, res)
			if ok {
				components = append(components, lc)
			}
		}

		spectrum.Cases = append(spectrum.Cases, model.LoadCase{Components: components})
	}

	if accRaw, ok := ls["accumulation"]; ok {
		var components []model.LoadComponent

		for _, craw := range toAnySlice(accRaw) {
			cobj, ok := craw.(map[string]any)
			if !ok {
				continue
			}

			lc, ok := parseJSONLoadComponent(dec, dbModel, cobj, externalToInternal, res)
			if ok {
				components = append(components, lc)
			}
		}

		spectrum.Accumulation = &model.Accumulation{Components: components}
	}

	return spectrum
}

func toAnySlice(v any) []any {
	a, _ := v.([]any)
	return a
}

func parseJSONLoadComponent(
	dec *decode.JSONDecoder,
	dbModel *db.Model,
	cobj map[string]any,
	externalToInternal map[uint64]uint64,
	res *result.Result,
) (model.LoadComponent, bool) {
	externalID := jsonUint(cobj, "id")

	internalID, ok := externalToInternal[externalID]
	if !ok {
		res.Addf(result.Error, "load component: dangling reference to component %d", externalID)
		return model.LoadComponent{}, false
	}

	var attrs []model.Attribute

	dups := validate.NewDuplicateTracker()

	for _, raw := range jsonArray(cobj, "attributes") {
		aobj, ok := raw.(map[string]any)
		if !ok {
			continue
		}

		id := jsonStr(aobj, "id")
		if id == referencedComponentIDAttribute {
			continue
		}

		if dups.Seen(id) {
			res.Addf(result.Error, "load component %d: duplicate attribute %q", externalID, id)
			continue
		}

		dbAttr, ok := dbModel.Attribute(id)
		if !ok {
			attr, ok := parseCustomJSONAttribute(dec, aobj, id, -1, res)
			if ok {
				attrs = append(attrs, attr)
			}

			continue
		}

		v, dr := dec.Decode(aobj, dbAttr)
		if dr != decode.Success {
			if dr != decode.NoValue {
				res.Addf(result.Error, "load component %d: attribute %q: %s", externalID, id, dr)
			}

			continue
		}

		attrs = append(attrs, model.NewStandardAttribute(&dbAttr, v))
	}

	return model.LoadComponent{ComponentRef: internalID, LoadAttributes: attrs}, true
}
