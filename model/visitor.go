package model

// Visitor is a set of optional callbacks invoked in document order by
// [Walk]. A struct of closures rather than an interface -- callers set
// only the fields they care about.
type Visitor struct {
	Component    func(Component)
	Relation     func(Relation)
	LoadCase     func(index int, lc LoadCase)
	Accumulation func(Accumulation)
}

// Walk invokes v's callbacks over m's components, relations, and load
// spectrum, in document order. Nil callbacks are skipped.
func Walk(m *Model, v Visitor) {
	if v.Component != nil {
		for _, c := range m.Components {
			v.Component(c)
		}
	}

	if v.Relation != nil {
		for _, r := range m.Relations {
			v.Relation(r)
		}
	}

	if m.Spectrum == nil {
		return
	}

	if v.LoadCase != nil {
		for i, lcase := range m.Spectrum.Cases {
			v.LoadCase(i, lcase)
		}
	}

	if v.Accumulation != nil && m.Spectrum.Accumulation != nil {
		v.Accumulation(*m.Spectrum.Accumulation)
	}
}
