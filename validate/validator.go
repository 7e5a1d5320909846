package validate

import (
	"fmt"

	"go.rexsapi.dev/rexsapi/model"
	"go.rexsapi.dev/rexsapi/relation"
	"go.rexsapi.dev/rexsapi/result"
)

// Validator runs the full semantic pass over an already-constructed
// [model.Model]: attribute range checks (each [model.Attribute] carries
// its own matching [db.Attribute], so no registry lookup is needed) and
// relation/subcomponent checks via relChecker. Unit and enum conformance
// are checked earlier, during decode, where a WrongType/Failure result is
// more informative than a generic message; range conformance is checked
// only here, so an out-of-range value is reported exactly once and still
// lands in the model.
type Validator struct {
	relChecker *relation.Checker
}

// NewValidator returns a Validator using the built-in relation tables.
func NewValidator() *Validator {
	return &Validator{relChecker: relation.NewBuiltinChecker()}
}

// NewValidatorWithChecker returns a Validator using a caller-supplied
// relation checker, e.g. one built from a non-default table set in tests.
func NewValidatorWithChecker(c *relation.Checker) *Validator {
	return &Validator{relChecker: c}
}

// CheckModel validates every standard attribute's range and every relation
// against the relation checker, appending findings to res. Custom
// attributes carry no database range to check and are skipped.
func (v *Validator) CheckModel(m *model.Model, res *result.Result) {
	for _, c := range m.Components {
		checkComponentAttributes(c, res)
	}

	for _, lc := range allLoadComponents(m) {
		for _, a := range lc.LoadAttributes {
			checkAttributeRange(a, fmt.Sprintf("load component %d", lc.ComponentRef), res)
		}
	}

	v.relChecker.CheckModel(m, m.Info.Version, res)
}

func checkComponentAttributes(c model.Component, res *result.Result) {
	context := fmt.Sprintf("%s [%d]", c.Type, c.InternalID)

	for _, a := range c.Attributes {
		checkAttributeRange(a, context, res)
	}
}

func checkAttributeRange(a model.Attribute, context string, res *result.Result) {
	dbAttr, ok := a.DBAttribute()
	if !ok {
		return
	}

	if !CheckRange(a.Value(), dbAttr) {
		res.Addf(result.Error, "%s: value is out of range for attribute %q", context, a.ID())
	}
}

func allLoadComponents(m *model.Model) []model.LoadComponent {
	if m.Spectrum.IsEmpty() {
		return nil
	}

	var out []model.LoadComponent

	for _, lc := range m.Spectrum.Cases {
		out = append(out, lc.Components...)
	}

	if m.Spectrum.Accumulation != nil {
		out = append(out, m.Spectrum.Accumulation.Components...)
	}

	return out
}
