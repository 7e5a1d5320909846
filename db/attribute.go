package db

import "go.rexsapi.dev/rexsapi/value"

// Attribute is a catalog-defined attribute: its id, display name, value
// type, unit, and optional range/enum constraints.
type Attribute struct {
	ID        string
	Name      string
	ValueType value.Type
	Unit      Unit
	Interval  *Interval  // nil if unbounded
	Enum      EnumValues // nil if not an enum attribute
}

// HasInterval reports whether the attribute carries a range constraint.
func (a Attribute) HasInterval() bool { return a.Interval != nil }

// HasEnum reports whether the attribute carries an enumeration
// constraint.
func (a Attribute) HasEnum() bool { return len(a.Enum) > 0 }
