package schema

// Node is a generic element tree, the shape the tree-format parser
// produces before (and independent of) decoding into REXS values. The
// tree-format SchemaValidator and the tree-format ModelParser both walk
// this same representation, so a document only needs to be read once.
type Node struct {
	Name     string
	Attrs    map[string]string
	Text     string
	Children []*Node
}

// Attr returns an attribute's value and whether it was present.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.Attrs[name]
	return v, ok
}

// ChildrenNamed returns n's direct children whose name equals name, in
// document order.
func (n *Node) ChildrenNamed(name string) []*Node {
	var out []*Node

	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}

	return out
}
