package schema

import (
	"fmt"
	"strconv"
)

// PODType is one of the five primitive types a tree-schema simpleType can
// restrict.
type PODType uint8

const (
	StringType PODType = iota
	IntType
	NonNegativeIntegerType
	DecimalType
	BooleanType
)

// SimpleType is a POD type optionally restricted to an enumeration of
// literal values.
type SimpleType struct {
	Base        PODType
	Enumeration []string
}

// Accepts reports whether text is a legal value of t.
func (t SimpleType) Accepts(text string) bool {
	if len(t.Enumeration) > 0 {
		for _, e := range t.Enumeration {
			if e == text {
				return true
			}
		}

		return false
	}

	switch t.Base {
	case StringType:
		return true
	case BooleanType:
		_, err := strconv.ParseBool(text)
		return err == nil
	case IntType:
		_, err := strconv.ParseInt(text, 10, 64)
		return err == nil
	case NonNegativeIntegerType:
		n, err := strconv.ParseInt(text, 10, 64)
		return err == nil && n >= 0
	case DecimalType:
		_, err := strconv.ParseFloat(text, 64)
		return err == nil
	default:
		return false
	}
}

// AttributeDecl declares one XML attribute of an element.
type AttributeDecl struct {
	Name     string
	Type     SimpleType
	Required bool
}

// Unbounded marks an ElementDecl's MaxOccurs as having no upper limit.
const Unbounded = -1

// ElementDecl declares one child element slot within a ComplexType's
// sequence, or the document root. Exactly one of Type or Simple should be
// set: Type for an element with sub-elements or text content (the latter
// through [ComplexType.SimpleContent]), Simple for scalar text content.
// When Simple is set, Type is not consulted.
type ElementDecl struct {
	Name       string
	Type       *ComplexType
	Simple     *SimpleType
	MinOccurs  int
	MaxOccurs  int
	Attributes []AttributeDecl
	AnyAttr    bool
}

// ComplexType declares an element's allowed attributes and the ordered
// sequence of child element slots it may contain. SimpleContent, when set,
// means the element additionally carries scalar text content (an XSD
// simpleContent extension) rather than further sub-elements.
type ComplexType struct {
	Attributes    []AttributeDecl
	AnyAttr       bool
	Sequence      []ElementDecl
	SimpleContent *SimpleType
}

// TreeValidator validates a [Node] document against an XSD-like schema
// rooted at Root.
type TreeValidator struct {
	Root ElementDecl
}

// NewTreeValidator returns a validator for the given root element
// declaration.
func NewTreeValidator(root ElementDecl) *TreeValidator {
	return &TreeValidator{Root: root}
}

// Validate walks doc against v's schema and returns every mismatch found.
func (v *TreeValidator) Validate(doc *Node) []Error {
	var errs []Error

	v.validateElement(doc, v.Root, doc.Name, &errs)

	return errs
}

func (v *TreeValidator) validateElement(n *Node, decl ElementDecl, path string, errs *[]Error) {
	if n.Name != decl.Name {
		*errs = append(*errs, Error{Path: path, Message: fmt.Sprintf("expected element %q, got %q", decl.Name, n.Name)})
		return
	}

	attrs := decl.Attributes
	anyAttr := decl.AnyAttr

	if decl.Type != nil {
		attrs = append(append([]AttributeDecl{}, attrs...), decl.Type.Attributes...)
		anyAttr = anyAttr || decl.Type.AnyAttr
	}

	v.validateAttributes(n, attrs, anyAttr, path, errs)

	if decl.Simple != nil {
		if !decl.Simple.Accepts(n.Text) {
			*errs = append(*errs, Error{Path: path, Message: fmt.Sprintf("invalid text content %q", n.Text)})
		}

		return
	}

	if decl.Type == nil {
		return
	}

	v.validateComplexType(n, *decl.Type, path, errs)
}

func (v *TreeValidator) validateAttributes(n *Node, attrs []AttributeDecl, anyAttr bool, path string, errs *[]Error) {
	for _, ad := range attrs {
		val, present := n.Attr(ad.Name)

		if !present {
			if ad.Required {
				*errs = append(*errs, Error{Path: path, Message: fmt.Sprintf("missing required attribute %q", ad.Name)})
			}

			continue
		}

		if !ad.Type.Accepts(val) {
			*errs = append(*errs, Error{Path: joinPath(path, "@"+ad.Name), Message: fmt.Sprintf("invalid value %q", val)})
		}
	}

	if !anyAttr {
		declared := make(map[string]struct{}, len(attrs))
		for _, ad := range attrs {
			declared[ad.Name] = struct{}{}
		}

		for name := range n.Attrs {
			if _, ok := declared[name]; !ok {
				*errs = append(*errs, Error{Path: path, Message: fmt.Sprintf("unexpected attribute %q", name)})
			}
		}
	}
}

func (v *TreeValidator) validateComplexType(n *Node, ct ComplexType, path string, errs *[]Error) {
	if ct.SimpleContent != nil {
		if !ct.SimpleContent.Accepts(n.Text) {
			*errs = append(*errs, Error{Path: path, Message: fmt.Sprintf("invalid text content %q", n.Text)})
		}

		return
	}

	consumed := make(map[*Node]struct{})

	for _, slot := range ct.Sequence {
		matches := n.ChildrenNamed(slot.Name)

		for _, m := range matches {
			consumed[m] = struct{}{}
		}

		if len(matches) < slot.MinOccurs {
			*errs = append(*errs, Error{
				Path:    path,
				Message: fmt.Sprintf("element %q: expected at least %d, found %d", slot.Name, slot.MinOccurs, len(matches)),
			})
		}

		if slot.MaxOccurs != Unbounded && len(matches) > slot.MaxOccurs {
			*errs = append(*errs, Error{
				Path:    path,
				Message: fmt.Sprintf("element %q: expected at most %d, found %d", slot.Name, slot.MaxOccurs, len(matches)),
			})
		}

		for i, m := range matches {
			v.validateElement(m, slot, fmt.Sprintf("%s/%s[%d]", path, slot.Name, i), errs)
		}
	}

	for _, c := range n.Children {
		if _, ok := consumed[c]; !ok {
			*errs = append(*errs, Error{Path: path, Message: fmt.Sprintf("unexpected element %q", c.Name)})
		}
	}
}
