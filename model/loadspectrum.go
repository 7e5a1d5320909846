package model

// LoadComponent overlays additional attributes onto a referenced
// component for the duration of one load case or the accumulation.
type LoadComponent struct {
	ComponentRef   uint64
	LoadAttributes []Attribute
}

// CombinedAttributes returns the derived view combining this load
// component's attributes with the referenced component's own attributes:
// a load attribute overrides a component attribute sharing the same id;
// every other component attribute passes through unchanged. The combined
// view is never stored -- it is always recomputed from LoadAttributes and
// the component.
func (lc LoadComponent) CombinedAttributes(component Component) []Attribute {
	overridden := make(map[string]struct{}, len(lc.LoadAttributes))
	for _, a := range lc.LoadAttributes {
		overridden[a.ID()] = struct{}{}
	}

	combined := make([]Attribute, 0, len(lc.LoadAttributes)+len(component.Attributes))
	combined = append(combined, lc.LoadAttributes...)

	for _, a := range component.Attributes {
		if _, ok := overridden[a.ID()]; ok {
			continue
		}

		combined = append(combined, a)
	}

	return combined
}

// LoadCase is an ordered sequence of load components describing one
// operating condition.
type LoadCase struct {
	Components []LoadComponent
}

// Accumulation is a single load-component sequence representing the
// total of a spectrum.
type Accumulation struct {
	Components []LoadComponent
}

// LoadSpectrum overlays load cases (and an optional accumulation) onto
// the model's components. A LoadSpectrum with no cases and no
// accumulation is considered empty and is omitted by the serializer.
type LoadSpectrum struct {
	Cases        []LoadCase
	Accumulation *Accumulation
}

// IsEmpty reports whether the spectrum has no cases and no accumulation.
func (ls *LoadSpectrum) IsEmpty() bool {
	return ls == nil || (len(ls.Cases) == 0 && ls.Accumulation == nil)
}
