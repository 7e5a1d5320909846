package model

// MergeModels unions the component/relation graphs of two models into
// one, renumbering internal ids to keep them unique and rewriting every
// reference accordingly. External ids are preserved as-is; a collision
// between the two models' external ids is not an error (components from
// different documents may coincidentally share one) since only internal
// ids carry cross-reference meaning after a merge. Callers fold over
// more than two models by calling this repeatedly.
//
// The merged model keeps base's Info. Load spectra are concatenated;
// accumulations are concatenated component-wise if both are present,
// otherwise whichever side has one is kept.
func MergeModels(base, overlay *Model) *Model {
	idOffset := nextInternalID(base)

	remap := make(map[uint64]uint64, len(overlay.Components))
	components := make([]Component, 0, len(base.Components)+len(overlay.Components))
	components = append(components, base.Components...)

	for _, c := range overlay.Components {
		newID := idOffset
		idOffset++
		remap[c.InternalID] = newID
		c.InternalID = newID
		components = append(components, c)
	}

	relations := make([]Relation, 0, len(base.Relations)+len(overlay.Relations))
	relations = append(relations, base.Relations...)

	for _, r := range overlay.Relations {
		refs := make([]RelationReference, len(r.Refs))
		for i, ref := range r.Refs {
			ref.ComponentRef = remap[ref.ComponentRef]
			refs[i] = ref
		}

		r.Refs = refs
		relations = append(relations, r)
	}

	spectrum := mergeSpectra(base.Spectrum, overlay.Spectrum, remap)

	return New(base.Info, components, relations, spectrum)
}

func nextInternalID(m *Model) uint64 {
	var max uint64

	for _, c := range m.Components {
		if c.InternalID > max {
			max = c.InternalID
		}
	}

	return max + 1
}

func mergeSpectra(a, b *LoadSpectrum, remap map[uint64]uint64) *LoadSpectrum {
	if a.IsEmpty() && b.IsEmpty() {
		return nil
	}

	out := &LoadSpectrum{}

	if a != nil {
		out.Cases = append(out.Cases, a.Cases...)
	}

	if b != nil {
		for _, lcase := range b.Cases {
			out.Cases = append(out.Cases, remapLoadCase(lcase, remap))
		}
	}

	switch {
	case a != nil && a.Accumulation != nil && b != nil && b.Accumulation != nil:
		merged := Accumulation{Components: append(append([]LoadComponent{}, a.Accumulation.Components...),
			remapLoadComponents(b.Accumulation.Components, remap)...)}
		out.Accumulation = &merged
	case a != nil && a.Accumulation != nil:
		out.Accumulation = a.Accumulation
	case b != nil && b.Accumulation != nil:
		remapped := Accumulation{Components: remapLoadComponents(b.Accumulation.Components, remap)}
		out.Accumulation = &remapped
	}

	return out
}

func remapLoadCase(lcase LoadCase, remap map[uint64]uint64) LoadCase {
	return LoadCase{Components: remapLoadComponents(lcase.Components, remap)}
}

func remapLoadComponents(components []LoadComponent, remap map[uint64]uint64) []LoadComponent {
	out := make([]LoadComponent, len(components))

	for i, lc := range components {
		lc.ComponentRef = remap[lc.ComponentRef]
		out[i] = lc
	}

	return out
}
