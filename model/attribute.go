package model

import (
	"fmt"
	"strings"

	"go.rexsapi.dev/rexsapi/db"
	"go.rexsapi.dev/rexsapi/value"
)

// customIDPrefix is the recommended (not required) prefix for custom
// attribute ids.
const customIDPrefix = "custom_"

// Attribute is a runtime attribute: either a reference to a catalog
// [db.Attribute] (standard) or an owned custom id/unit/type triple
// (custom), always paired with a [value.Value]. Modeled as a sum type
// rather than a struct with an optional database pointer (see design
// notes): [Attribute.IsCustom] tells callers which half is populated.
type Attribute struct {
	dbAttr    *db.Attribute
	customID  string
	unit      db.Unit
	valueType value.Type
	val       value.Value
}

// NewStandardAttribute builds an Attribute backed by a catalog
// definition.
func NewStandardAttribute(dbAttr *db.Attribute, v value.Value) Attribute {
	return Attribute{dbAttr: dbAttr, val: v}
}

// NewCustomAttribute builds a custom Attribute. Returns
// [ErrEmptyCustomID] if id is empty; id is recommended, not required, to
// start with "custom_".
func NewCustomAttribute(id string, unit db.Unit, valueType value.Type, v value.Value) (Attribute, error) {
	if id == "" {
		return Attribute{}, ErrEmptyCustomID
	}

	return Attribute{customID: id, unit: unit, valueType: valueType, val: v}, nil
}

// ID returns the attribute id, whether standard or custom.
func (a Attribute) ID() string {
	if a.dbAttr != nil {
		return a.dbAttr.ID
	}

	return a.customID
}

// IsCustom reports whether this attribute is custom (not in the
// catalog).
func (a Attribute) IsCustom() bool { return a.dbAttr == nil }

// LooksCustomByID reports whether id follows the recommended "custom_"
// naming convention, independent of whether it is actually catalog-backed.
func LooksCustomByID(id string) bool { return strings.HasPrefix(id, customIDPrefix) }

// ValueType returns the attribute's value type.
func (a Attribute) ValueType() value.Type {
	if a.dbAttr != nil {
		return a.dbAttr.ValueType
	}

	return a.valueType
}

// Unit returns the attribute's unit.
func (a Attribute) Unit() db.Unit {
	if a.dbAttr != nil {
		return a.dbAttr.Unit
	}

	return a.unit
}

// DBAttribute returns the backing catalog definition and true, or the
// zero value and false if this attribute is custom.
func (a Attribute) DBAttribute() (db.Attribute, bool) {
	if a.dbAttr == nil {
		return db.Attribute{}, false
	}

	return *a.dbAttr, true
}

// Value returns the attribute's value.
func (a Attribute) Value() value.Value { return a.val }

// WithValue returns a copy of a with its value replaced.
func (a Attribute) WithValue(v value.Value) Attribute {
	a.val = v

	return a
}

// String renders the attribute as "id=value" for diagnostics.
func (a Attribute) String() string {
	return fmt.Sprintf("%s=%s", a.ID(), a.val.AsString())
}
