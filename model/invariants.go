package model

import (
	"fmt"

	"go.rexsapi.dev/rexsapi/result"
	"go.rexsapi.dev/rexsapi/value"
)

// referencedComponentIDAttribute is excluded from the reference-component
// rewriting invariant: it names the load component's own host, which is
// already resolved structurally, not via a rewritten attribute value.
const referencedComponentIDAttribute = "referenced_component_id"

// CheckInvariants verifies the universally-quantified structural
// invariants of the graph shape: reference integrity, id uniqueness, and
// matrix rectangularity. It does not check anything that needs the
// database registry (ranges, units, enums, relation roles) -- that is the
// validate package's job. Findings are appended to res as Errors, except
// a duplicate internal id, which is Critical.
func CheckInvariants(m *Model, res *result.Result) {
	checkUniqueIDs(m, res)
	checkRelationReferences(m, res)
	checkLoadSpectrumReferences(m, res)
	checkReferenceComponentAttributes(m, res)
	checkMatrices(m, res)
}

func checkUniqueIDs(m *Model, res *result.Result) {
	externalSeen := make(map[uint64]struct{}, len(m.Components))
	internalSeen := make(map[uint64]struct{}, len(m.Components))

	for _, c := range m.Components {
		if _, ok := internalSeen[c.InternalID]; ok {
			res.Addf(result.Critical, "duplicate internal id %d", c.InternalID)
		}

		internalSeen[c.InternalID] = struct{}{}

		if c.ExternalID == nil {
			continue
		}

		if _, ok := externalSeen[*c.ExternalID]; ok {
			res.Addf(result.Error, "duplicate external id %d", *c.ExternalID)
		}

		externalSeen[*c.ExternalID] = struct{}{}
	}
}

func checkRelationReferences(m *Model, res *result.Result) {
	for i, rel := range m.Relations {
		for _, ref := range rel.Refs {
			if _, ok := m.ComponentByInternalID(ref.ComponentRef); !ok {
				res.Addf(result.Error, "relation[%d] (%s): dangling reference to component %d",
					i, rel.Type, ref.ComponentRef)
			}
		}
	}
}

func checkLoadSpectrumReferences(m *Model, res *result.Result) {
	if m.Spectrum == nil {
		return
	}

	check := func(label string, lc LoadComponent) {
		if _, ok := m.ComponentByInternalID(lc.ComponentRef); !ok {
			res.Addf(result.Error, "%s: dangling reference to component %d", label, lc.ComponentRef)
		}
	}

	for i, lcase := range m.Spectrum.Cases {
		for _, lc := range lcase.Components {
			check(fmt.Sprintf("load case[%d]", i), lc)
		}
	}

	if m.Spectrum.Accumulation != nil {
		for _, lc := range m.Spectrum.Accumulation.Components {
			check("accumulation", lc)
		}
	}
}

func checkReferenceComponentAttributes(m *Model, res *result.Result) {
	checkAttrs := func(label string, attrs []Attribute) {
		for _, a := range attrs {
			if a.ValueType() != value.ReferenceComponent || a.ID() == referencedComponentIDAttribute {
				continue
			}

			target, err := value.Get[uint64](a.Value())
			if err != nil {
				continue
			}

			if _, ok := m.ComponentByInternalID(target); !ok {
				res.Addf(result.Error, "%s: attribute %q references unknown internal id %d", label, a.ID(), target)
			}
		}
	}

	for _, c := range m.Components {
		checkAttrs(fmt.Sprintf("component %d", c.InternalID), c.Attributes)
	}

	if m.Spectrum != nil {
		for i, lcase := range m.Spectrum.Cases {
			for _, lc := range lcase.Components {
				checkAttrs(fmt.Sprintf("load case[%d] component %d", i, lc.ComponentRef), lc.LoadAttributes)
			}
		}
	}
}

func checkMatrices(m *Model, res *result.Result) {
	checkAttrs := func(label string, attrs []Attribute) {
		for _, a := range attrs {
			if !matrixValid(a.Value()) {
				res.Addf(result.Error, "%s: attribute %q has a ragged matrix", label, a.ID())
			}
		}
	}

	for _, c := range m.Components {
		checkAttrs(fmt.Sprintf("component %d", c.InternalID), c.Attributes)
	}
}

func matrixValid(v value.Value) bool {
	switch v.Type() {
	case value.FloatingPointMatrix:
		return value.GetOr(v, value.Matrix[float64]{}).Validate()
	case value.BooleanMatrix:
		return value.GetOr(v, value.Matrix[bool]{}).Validate()
	case value.IntegerMatrix:
		return value.GetOr(v, value.Matrix[int64]{}).Validate()
	case value.StringMatrix:
		return value.GetOr(v, value.Matrix[string]{}).Validate()
	default:
		return true
	}
}
