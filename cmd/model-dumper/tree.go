package main

import (
	"fmt"

	"go.rexsapi.dev/rexsapi/model"
)

// node is one row of the dump tree. Children are built eagerly; the
// browser only controls visibility.
type node struct {
	label    string
	children []*node
	expanded bool
}

func newNode(label string, children ...*node) *node {
	return &node{label: label, children: children}
}

func attributeNode(a model.Attribute) *node {
	label := fmt.Sprintf("%s = %s", a.ID(), a.Value().AsString())
	if unit := a.Unit().Name; unit != "" && unit != "none" {
		label += " [" + unit + "]"
	}

	if a.IsCustom() {
		label += " (custom)"
	}

	return newNode(label)
}

func componentNode(c model.Component) *node {
	label := fmt.Sprintf("[%d] %s", c.InternalID, c.Type)
	if c.Name != "" {
		label += " " + `"` + c.Name + `"`
	}

	n := newNode(label)
	for _, a := range c.Attributes {
		n.children = append(n.children, attributeNode(a))
	}

	return n
}

func relationNode(m *model.Model, r model.Relation) *node {
	label := r.Type.String()
	if r.IsOrdered() {
		label += fmt.Sprintf(" (order %d)", *r.Order)
	}

	n := newNode(label)

	for _, ref := range r.Refs {
		refLabel := fmt.Sprintf("%s -> [%d]", ref.Role, ref.ComponentRef)
		if c, ok := m.ComponentByInternalID(ref.ComponentRef); ok {
			refLabel += " " + c.Type
		}

		if ref.Hint != "" {
			refLabel += " (" + ref.Hint + ")"
		}

		n.children = append(n.children, newNode(refLabel))
	}

	return n
}

func loadComponentNode(m *model.Model, lc model.LoadComponent) *node {
	label := fmt.Sprintf("component [%d]", lc.ComponentRef)
	if c, ok := m.ComponentByInternalID(lc.ComponentRef); ok {
		label += " " + c.Type
	}

	n := newNode(label)
	for _, a := range lc.LoadAttributes {
		n.children = append(n.children, attributeNode(a))
	}

	return n
}

// buildTree turns a model into the dump tree, in document order.
func buildTree(m *model.Model) *node {
	componentsNode := newNode(fmt.Sprintf("components (%d)", len(m.Components)))
	relationsNode := newNode(fmt.Sprintf("relations (%d)", len(m.Relations)))

	model.Walk(m, model.Visitor{
		Component: func(c model.Component) {
			componentsNode.children = append(componentsNode.children, componentNode(c))
		},
		Relation: func(r model.Relation) {
			relationsNode.children = append(relationsNode.children, relationNode(m, r))
		},
	})

	root := newNode(
		fmt.Sprintf("%s %s (REXS %s)", m.Info.ApplicationID, m.Info.ApplicationVersion, m.Info.Version),
		componentsNode,
		relationsNode,
	)
	root.expanded = true

	if !m.Spectrum.IsEmpty() {
		spectrumNode := newNode(fmt.Sprintf("load spectrum (%d cases)", len(m.Spectrum.Cases)))

		model.Walk(m, model.Visitor{
			LoadCase: func(i int, lc model.LoadCase) {
				caseNode := newNode(fmt.Sprintf("load case %d", i+1))
				for _, comp := range lc.Components {
					caseNode.children = append(caseNode.children, loadComponentNode(m, comp))
				}

				spectrumNode.children = append(spectrumNode.children, caseNode)
			},
			Accumulation: func(acc model.Accumulation) {
				accNode := newNode("accumulation")
				for _, comp := range acc.Components {
					accNode.children = append(accNode.children, loadComponentNode(m, comp))
				}

				spectrumNode.children = append(spectrumNode.children, accNode)
			},
		})

		root.children = append(root.children, spectrumNode)
	}

	return root
}

// flatten returns every visible row with its depth, in display order.
type row struct {
	node  *node
	depth int
}

func flatten(n *node, depth int, out []row) []row {
	out = append(out, row{node: n, depth: depth})

	if n.expanded {
		for _, c := range n.children {
			out = flatten(c, depth+1, out)
		}
	}

	return out
}

// dumpPlain writes the fully expanded tree as indented text.
func dumpPlain(n *node, depth int, write func(string)) {
	indent := ""
	for range depth {
		indent += "  "
	}

	write(indent + n.label + "\n")

	for _, c := range n.children {
		dumpPlain(c, depth+1, write)
	}
}
