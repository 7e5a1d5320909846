package builder

import "errors"

// Sentinel errors reported by the builder. Build wraps every recorded
// error with the call context it was detected in.
var (
	// ErrNoActiveComponent indicates an attribute or name call before
	// any AddComponent.
	ErrNoActiveComponent = errors.New("no component under construction")
	// ErrNoActiveAttribute indicates a value call before any
	// AddAttribute/AddCustomAttribute.
	ErrNoActiveAttribute = errors.New("no attribute under construction")
	// ErrNoActiveRelation indicates a ref call before any AddRelation.
	ErrNoActiveRelation = errors.New("no relation under construction")
	// ErrUnknownComponentType indicates a component type absent from the
	// database catalog.
	ErrUnknownComponentType = errors.New("unknown component type")
	// ErrUnknownAttribute indicates an attribute id absent from the
	// database catalog.
	ErrUnknownAttribute = errors.New("unknown attribute")
	// ErrAttributeNotAllowed indicates a catalog attribute the active
	// component's type does not declare.
	ErrAttributeNotAllowed = errors.New("attribute not allowed for component type")
	// ErrDuplicateAttribute indicates the active component already
	// carries the attribute.
	ErrDuplicateAttribute = errors.New("duplicate attribute")
	// ErrEmptyCustomID indicates a custom attribute with an empty id.
	ErrEmptyCustomID = errors.New("custom attribute id must not be empty")
	// ErrTypeMismatch indicates a value whose type does not match the
	// active attribute's declared value type.
	ErrTypeMismatch = errors.New("value type mismatch")
	// ErrUseReference indicates Value was called on a
	// reference-component attribute; callers must use Reference instead
	// so the target can be resolved at Build time.
	ErrUseReference = errors.New("reference-component attributes take Reference(...), not Value(...)")
	// ErrMixedIDNamespace indicates auto-minted, caller-integer, and
	// caller-string component ids were mixed in one build.
	ErrMixedIDNamespace = errors.New("mixed component id namespaces")
	// ErrDuplicateComponentID indicates two components share a
	// caller-supplied id.
	ErrDuplicateComponentID = errors.New("duplicate component id")
	// ErrUnresolvedReference indicates a Reference target that names no
	// component in this build.
	ErrUnresolvedReference = errors.New("unresolved component reference")
	// ErrUnusedComponent indicates a component not used by any relation
	// in a build that declares relations.
	ErrUnusedComponent = errors.New("component not used by any relation")
	// ErrRelationCheck indicates the relation-role checker rejected the
	// built model.
	ErrRelationCheck = errors.New("relation check failed")
	// ErrInvariant indicates a structural invariant violation in the
	// built model.
	ErrInvariant = errors.New("model invariant violated")
)
