package validate

import (
	"go.rexsapi.dev/rexsapi/db"
	"go.rexsapi.dev/rexsapi/value"
)

// CheckUnit reports whether a document-supplied unit name agrees with
// attr's database unit. An empty documentUnit (the document omitted the
// unit attribute) always agrees.
func CheckUnit(documentUnit string, attr db.Attribute) bool {
	return documentUnit == "" || documentUnit == attr.Unit.Name
}

// CheckRange reports whether v's scalar or element values satisfy attr's
// interval constraint. Attributes without an interval, and value types an
// interval cannot apply to, always pass.
func CheckRange(v value.Value, attr db.Attribute) bool {
	if !attr.HasInterval() {
		return true
	}

	switch v.Type() {
	case value.FloatingPoint:
		return attr.Interval.Contains(value.GetOr[float64](v, 0))
	case value.Integer:
		return attr.Interval.Contains(float64(value.GetOr[int64](v, 0)))
	case value.FloatingPointArray:
		for _, f := range value.GetOr[[]float64](v, nil) {
			if !attr.Interval.Contains(f) {
				return false
			}
		}
	case value.IntegerArray:
		for _, n := range value.GetOr[[]int64](v, nil) {
			if !attr.Interval.Contains(float64(n)) {
				return false
			}
		}
	case value.FloatingPointMatrix:
		for _, f := range value.GetOr(v, value.Matrix[float64]{}).Flatten() {
			if !attr.Interval.Contains(f) {
				return false
			}
		}
	case value.IntegerMatrix:
		for _, n := range value.GetOr(v, value.Matrix[int64]{}).Flatten() {
			if !attr.Interval.Contains(float64(n)) {
				return false
			}
		}
	}

	return true
}

// DuplicateTracker flags repeated string keys (attribute ids within a
// component, component ids within a model, ...) in a single left-to-right
// pass.
type DuplicateTracker struct {
	seen map[string]struct{}
}

// NewDuplicateTracker returns an empty tracker.
func NewDuplicateTracker() *DuplicateTracker {
	return &DuplicateTracker{seen: make(map[string]struct{})}
}

// Seen records id and reports whether it was already present.
func (t *DuplicateTracker) Seen(id string) bool {
	if _, ok := t.seen[id]; ok {
		return true
	}

	t.seen[id] = struct{}{}

	return false
}
