package parser

import (
	"go.rexsapi.dev/rexsapi/db"
	"go.rexsapi.dev/rexsapi/decode"
	"go.rexsapi.dev/rexsapi/model"
	"go.rexsapi.dev/rexsapi/result"
	"go.rexsapi.dev/rexsapi/schema"
	"go.rexsapi.dev/rexsapi/validate"
	"go.rexsapi.dev/rexsapi/value"
)

func (p *Parser) loadTree(data []byte, mode result.Mode, res *result.Result) *model.Model {
	root, err := schema.ParseXML(data)
	if err != nil {
		res.Addf(result.Critical, "parsing document: %s", err)
		return nil
	}

	if errs := schema.NewTreeValidator(schema.TreeSchema()).Validate(root); len(errs) > 0 {
		for _, e := range errs {
			res.Addf(result.Critical, "schema: %s", e)
		}

		return nil
	}

	h := header{
		applicationID:      attrOr(root, "applicationId"),
		applicationVersion: attrOr(root, "applicationVersion"),
		date:               attrOr(root, "date"),
		version:            attrOr(root, "version"),
		language:           attrOr(root, "applicationLanguage"),
	}

	dbModel, info, ok := p.resolveDBModel(h, mode, res)
	if !ok {
		return nil
	}

	dec := decode.NewTreeDecoder()

	var componentNodes []*schema.Node
	if sections := root.ChildrenNamed("components"); len(sections) > 0 {
		componentNodes = sections[0].ChildrenNamed("component")
	}

	components := make([]model.Component, 0, len(componentNodes))
	externalToInternal := make(map[uint64]uint64, len(componentNodes))

	for i, cn := range componentNodes {
		internalID := uint64(i + 1) //nolint:gosec // document-order index, small

		externalID, err := value.ParseUint(attrOr(cn, "id"))
		if err != nil {
			res.Addf(result.Error, "component[%d]: invalid id: %s", i, err)
			continue
		}

		externalToInternal[externalID] = internalID

		typ := attrOr(cn, "type")
		dbComponent, hasDBComponent := dbModel.Component(typ)

		attrs := parseTreeAttributes(dec, dbModel, dbComponent, hasDBComponent, cn.ChildrenNamed("attribute"), res, i)

		components = append(components, model.Component{
			ExternalID: &externalID,
			InternalID: internalID,
			Type:       typ,
			Name:       attrOr(cn, "name"),
			Attributes: attrs,
		})
	}

	var relationNodes []*schema.Node
	if sections := root.ChildrenNamed("relations"); len(sections) > 0 {
		relationNodes = sections[0].ChildrenNamed("relation")
	}

	relations := make([]model.Relation, 0, len(relationNodes))

	for i, rn := range relationNodes {
		rel, ok := parseTreeRelation(rn, externalToInternal, res, i)
		if ok {
			relations = append(relations, rel)
		}
	}

	spectrum := parseTreeLoadSpectrum(dec, dbModel, root, externalToInternal, res)

	return model.New(info, components, relations, spectrum)
}

func attrOr(n *schema.Node, name string) string {
	v, _ := n.Attr(name)
	return v
}

func parseTreeAttributes(
	dec *decode.TreeDecoder,
	dbModel *db.Model,
	dbComponent db.Component,
	hasDBComponent bool,
	nodes []*schema.Node,
	res *result.Result,
	componentIndex int,
) []model.Attribute {
	dups := validate.NewDuplicateTracker()
	attrs := make([]model.Attribute, 0, len(nodes))

	for _, an := range nodes {
		id := attrOr(an, "id")

		if dups.Seen(id) {
			res.Addf(result.Error, "component[%d]: duplicate attribute %q", componentIndex, id)
			continue
		}

		isCustom := model.LooksCustomByID(id) || !hasDBComponent || !dbComponent.AllowsAttribute(id)
		if isCustom && !model.LooksCustomByID(id) {
			res.Addf(result.Error, "component[%d]: attribute %q is not declared by component type %q", componentIndex, id, dbComponent.ID)
		}

		if isCustom {
			attr, ok := parseCustomTreeAttribute(dec, an, id, componentIndex, res)
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

		if unit := attrOr(an, "unit"); !validate.CheckUnit(unit, dbAttr) {
			res.Addf(result.Error, "component[%d]: attribute %q: unit %q does not match database unit %q",
				componentIndex, id, unit, dbAttr.Unit.Name)
		}

		v, dr := dec.Decode(an, dbAttr)

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

func parseCustomTreeAttribute(dec *decode.TreeDecoder, an *schema.Node, id string, componentIndex int, res *result.Result) (model.Attribute, bool) {
	vt := inferTreeValueType(an)
	dbAttr := db.Attribute{ID: id, ValueType: vt}

	v, dr := dec.Decode(an, dbAttr)
	if dr != decode.Success {
		if dr == decode.NoValue {
			return model.Attribute{}, false
		}

		res.Addf(result.Error, "component[%d]: custom attribute %q: %s", componentIndex, id, dr)
		return model.Attribute{}, false
	}

	unit := db.Unit{Name: attrOr(an, "unit")}

	attr, err := model.NewCustomAttribute(id, unit, vt, v)
	if err != nil {
		res.Addf(result.Error, "component[%d]: custom attribute %q: %s", componentIndex, id, err)
		return model.Attribute{}, false
	}

	return attr, true
}

// inferTreeValueType guesses a custom attribute's value type from its
// payload shape, since the tree format carries no explicit type tag per
// attribute. Custom payloads are conservatively read as strings: this
// never misparses a caller's free-form text as a number.
func inferTreeValueType(n *schema.Node) value.Type {
	switch {
	case len(n.ChildrenNamed("matrix")) > 0:
		return value.StringMatrix
	case len(n.ChildrenNamed("array_of_arrays")) > 0:
		return value.ArrayOfIntegerArrays
	case len(n.ChildrenNamed("array")) > 0:
		return value.StringArray
	default:
		return value.String
	}
}

func parseTreeRelation(rn *schema.Node, externalToInternal map[uint64]uint64, res *result.Result, index int) (model.Relation, bool) {
	typ, err := model.ParseRelationType(attrOr(rn, "type"))
	if err != nil {
		res.Addf(result.Error, "relation[%d]: %s", index, err)
		return model.Relation{}, false
	}

	var order *uint32

	if s := attrOr(rn, "order"); s != "" {
		n, err := value.ParseUint(s)
		if err != nil {
			res.Addf(result.Error, "relation[%d]: invalid order: %s", index, err)
		} else {
			o := uint32(n) //nolint:gosec // document-order value
			order = &o
		}
	}

	refNodes := rn.ChildrenNamed("ref")
	refs := make([]model.RelationReference, 0, len(refNodes))

	for _, refNode := range refNodes {
		role, err := model.ParseRelationRole(attrOr(refNode, "role"))
		if err != nil {
			res.Addf(result.Error, "relation[%d]: %s", index, err)
			continue
		}

		externalID, err := value.ParseUint(attrOr(refNode, "id"))
		if err != nil {
			res.Addf(result.Error, "relation[%d]: invalid ref id: %s", index, err)
			continue
		}

		internalID, ok := externalToInternal[externalID]
		if !ok {
			res.Addf(result.Error, "relation[%d]: dangling reference to component %d", index, externalID)
			continue
		}

		refs = append(refs, model.RelationReference{Role: role, Hint: attrOr(refNode, "hint"), ComponentRef: internalID})
	}

	return model.Relation{Type: typ, Order: order, Refs: refs}, true
}

func parseTreeLoadSpectrum(
	dec *decode.TreeDecoder,
	dbModel *db.Model,
	root *schema.Node,
	externalToInternal map[uint64]uint64,
	res *result.Result,
) *model.LoadSpectrum {
	sections := root.ChildrenNamed("load_spectrum")
	if len(sections) == 0 {
		return nil
	}

	ls := sections[0]

	spectrum := &model.LoadSpectrum{}

	for _, lcNode := range ls.ChildrenNamed("load_case") {
		var components []model.LoadComponent

		for _, cn := range lcNode.ChildrenNamed("component") {
			lc, ok := parseLoadComponent(dec, dbModel, cn, externalToInternal, res)
			if ok {
				components = append(components, lc)
			}
		}

		spectrum.Cases = append(spectrum.Cases, model.LoadCase{Components: components})
	}

	if accNodes := ls.ChildrenNamed("accumulation"); len(accNodes) > 0 {
		var components []model.LoadComponent

		for _, cn := range accNodes[0].ChildrenNamed("component") {
			lc, ok := parseLoadComponent(dec, dbModel, cn, externalToInternal, res)
			if ok {
				components = append(components, lc)
			}
		}

		spectrum.Accumulation = &model.Accumulation{Components: components}
	}

	return spectrum
}

func parseLoadComponent(
	dec *decode.TreeDecoder,
	dbModel *db.Model,
	cn *schema.Node,
	externalToInternal map[uint64]uint64,
	res *result.Result,
) (model.LoadComponent, bool) {
	externalID, err := value.ParseUint(attrOr(cn, "id"))
	if err != nil {
		res.Addf(result.Error, "load component: invalid id: %s", err)
		return model.LoadComponent{}, false
	}

	internalID, ok := externalToInternal[externalID]
	if !ok {
		res.Addf(result.Error, "load component: dangling reference to component %d", externalID)
		return model.LoadComponent{}, false
	}

	var attrs []model.Attribute

	dups := validate.NewDuplicateTracker()

	for _, an := range cn.ChildrenNamed("attribute") {
		id := attrOr(an, "id")
		if id == referencedComponentIDAttribute {
			continue
		}

		if dups.Seen(id) {
			res.Addf(result.Error, "load component %d: duplicate attribute %q", externalID, id)
			continue
		}

		dbAttr, ok := dbModel.Attribute(id)
		if !ok {
			attr, ok := parseCustomTreeAttribute(dec, an, id, -1, res)
			if ok {
				attrs = append(attrs, attr)
			}

			continue
		}

		v, dr := dec.Decode(an, dbAttr)
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
