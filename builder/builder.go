package builder

import (
	"errors"
	"fmt"
	"strings"

	"go.rexsapi.dev/rexsapi/db"
	"go.rexsapi.dev/rexsapi/model"
	"go.rexsapi.dev/rexsapi/relation"
	"go.rexsapi.dev/rexsapi/result"
	"go.rexsapi.dev/rexsapi/value"
)

// referencedComponentIDAttribute is the one reference-component attribute
// that takes a plain value instead of a symbolic Reference: it names its
// own host and is never rewritten.
const referencedComponentIDAttribute = "referenced_component_id"

// idMode tracks which component-id namespace a build committed to.
// Auto-minted, caller-integer, and caller-string ids cannot be mixed.
type idMode uint8

const (
	idUnset idMode = iota
	idAuto
	idInteger
	idString
)

// componentKey identifies a component within one build, in whichever
// namespace the build uses.
type componentKey struct {
	str   string
	num   uint64
	isStr bool
}

func (k componentKey) String() string {
	if k.isStr {
		return fmt.Sprintf("%q", k.str)
	}

	return fmt.Sprintf("%d", k.num)
}

type attributeRecord struct {
	dbAttr     *db.Attribute
	customID   string
	customType value.Type
	unit       db.Unit
	val        value.Value
	hasValue   bool
	ref        *componentKey
}

func (a *attributeRecord) id() string {
	if a.dbAttr != nil {
		return a.dbAttr.ID
	}

	return a.customID
}

func (a *attributeRecord) valueType() value.Type {
	if a.dbAttr != nil {
		return a.dbAttr.ValueType
	}

	return a.customType
}

type componentRecord struct {
	key        componentKey
	typ        string
	name       string
	dbComp     db.Component
	attributes []attributeRecord
}

type relationReferenceRecord struct {
	role   model.RelationRole
	hint   string
	target componentKey
}

type relationRecord struct {
	typ   model.RelationType
	order *uint32
	refs  []relationReferenceRecord
}

// Builder accumulates components, attributes, and relations against a
// database catalog and materializes them into a [model.Model] on [Build].
// It is single-owner and not safe for concurrent use. Calls chain;
// errors are recorded and reported together by Build.
type Builder struct {
	dbModel    *db.Model
	checker    *relation.Checker
	mode       idMode
	nextAutoID uint64
	components []componentRecord
	relations  []relationRecord
	inRelation bool
	errs       []error
}

// New creates a Builder constructing against the given database catalog.
func New(dbModel *db.Model) *Builder {
	return &Builder{
		dbModel:    dbModel,
		checker:    relation.NewBuiltinChecker(),
		nextAutoID: 1,
	}
}

func (b *Builder) fail(err error) *Builder {
	b.errs = append(b.errs, err)

	return b
}

func (b *Builder) failf(err error, format string, args ...any) *Builder {
	return b.fail(fmt.Errorf("%w: %s", err, fmt.Sprintf(format, args...)))
}

func (b *Builder) addComponent(typ string, key componentKey, mode idMode) *Builder {
	if b.mode != idUnset && b.mode != mode {
		return b.failf(ErrMixedIDNamespace, "component %q", typ)
	}

	dbComp, ok := b.dbModel.Component(typ)
	if !ok {
		return b.failf(ErrUnknownComponentType, "%q", typ)
	}

	for _, c := range b.components {
		if c.key == key {
			return b.failf(ErrDuplicateComponentID, "%s", key)
		}
	}

	b.mode = mode
	b.inRelation = false
	b.components = append(b.components, componentRecord{key: key, typ: typ, dbComp: dbComp})

	return b
}

// AddComponent starts a new component of the given catalog type with an
// auto-minted id. A build that auto-mints any id must auto-mint all of
// them.
func (b *Builder) AddComponent(typ string) *Builder {
	key := componentKey{num: b.nextAutoID}
	b.nextAutoID++

	return b.addComponent(typ, key, idAuto)
}

// AddComponentWithID starts a new component with a caller-supplied
// integer id. A build that supplies any integer id must supply all ids.
func (b *Builder) AddComponentWithID(typ string, id uint64) *Builder {
	return b.addComponent(typ, componentKey{num: id}, idInteger)
}

// AddComponentWithStringID starts a new component with a caller-supplied
// string id. String ids form a separate namespace: a build that uses one
// string id must use string ids throughout.
func (b *Builder) AddComponentWithStringID(typ, id string) *Builder {
	return b.addComponent(typ, componentKey{str: id, isStr: true}, idString)
}

// Name sets the active component's display name.
func (b *Builder) Name(name string) *Builder {
	c := b.activeComponent()
	if c == nil {
		return b.fail(ErrNoActiveComponent)
	}

	c.name = name

	return b
}

func (b *Builder) activeComponent() *componentRecord {
	if len(b.components) == 0 {
		return nil
	}

	return &b.components[len(b.components)-1]
}

func (b *Builder) activeAttribute() *attributeRecord {
	c := b.activeComponent()
	if c == nil || len(c.attributes) == 0 {
		return nil
	}

	return &c.attributes[len(c.attributes)-1]
}

// AddAttribute starts a new catalog attribute on the active component.
// The attribute must exist in the database, be declared by the
// component's type, and not already be present on the component.
func (b *Builder) AddAttribute(id string) *Builder {
	c := b.activeComponent()
	if c == nil {
		return b.failf(ErrNoActiveComponent, "attribute %q", id)
	}

	dbAttr, ok := b.dbModel.Attribute(id)
	if !ok {
		return b.failf(ErrUnknownAttribute, "%q", id)
	}

	if !c.dbComp.AllowsAttribute(id) {
		return b.failf(ErrAttributeNotAllowed, "%q on %q", id, c.typ)
	}

	if b.hasAttribute(c, id) {
		return b.failf(ErrDuplicateAttribute, "%q on component %s", id, c.key)
	}

	c.attributes = append(c.attributes, attributeRecord{dbAttr: &dbAttr, unit: dbAttr.Unit})

	return b
}

// AddCustomAttribute starts a new custom attribute of the given value
// type on the active component. The id must be non-empty; starting it
// with "custom_" is recommended.
func (b *Builder) AddCustomAttribute(id string, t value.Type) *Builder {
	c := b.activeComponent()
	if c == nil {
		return b.failf(ErrNoActiveComponent, "attribute %q", id)
	}

	if id == "" {
		return b.fail(ErrEmptyCustomID)
	}

	if b.hasAttribute(c, id) {
		return b.failf(ErrDuplicateAttribute, "%q on component %s", id, c.key)
	}

	c.attributes = append(c.attributes, attributeRecord{customID: id, customType: t})

	return b
}

func (b *Builder) hasAttribute(c *componentRecord, id string) bool {
	for i := range c.attributes {
		if c.attributes[i].id() == id {
			return true
		}
	}

	return false
}

// Unit sets the active attribute's unit by name. For catalog attributes
// the unit must equal the database unit; custom attributes accept any
// unit.
func (b *Builder) Unit(name string) *Builder {
	a := b.activeAttribute()
	if a == nil {
		return b.failf(ErrNoActiveAttribute, "unit %q", name)
	}

	if a.dbAttr != nil {
		if a.dbAttr.Unit.Name != name {
			return b.failf(ErrTypeMismatch, "unit %q does not match catalog unit %q for attribute %q", name, a.dbAttr.Unit.Name, a.dbAttr.ID)
		}

		return b
	}

	if u, ok := b.dbModel.UnitByName(name); ok {
		a.unit = u
	} else {
		a.unit = db.Unit{Name: name}
	}

	return b
}

// Value assigns the active attribute's value. The value's type must
// match the attribute's declared type. Reference-component attributes
// must be assigned with [Builder.Reference] instead, except the
// referenced_component_id attribute, which names its own host and takes
// a plain value.
func (b *Builder) Value(v value.Value) *Builder {
	a := b.activeAttribute()
	if a == nil {
		return b.fail(ErrNoActiveAttribute)
	}

	if a.valueType() == value.ReferenceComponent && a.id() != referencedComponentIDAttribute {
		return b.failf(ErrUseReference, "attribute %q", a.id())
	}

	if !v.MatchesType(a.valueType()) {
		return b.failf(ErrTypeMismatch, "attribute %q declares %s, got %s", a.id(), a.valueType(), v.Type())
	}

	a.val = v
	a.hasValue = true

	return b
}

// Coded sets the coding flag on the active attribute's value.
func (b *Builder) Coded(c value.Coding) *Builder {
	a := b.activeAttribute()
	if a == nil {
		return b.fail(ErrNoActiveAttribute)
	}

	a.val = a.val.WithCoding(c)

	return b
}

// Reference records a symbolic link from the active reference-component
// attribute to the component with the given integer id. The link is
// resolved to the target's internal id at Build time.
func (b *Builder) Reference(id uint64) *Builder {
	return b.reference(componentKey{num: id})
}

// ReferenceString is [Builder.Reference] for string-id builds.
func (b *Builder) ReferenceString(id string) *Builder {
	return b.reference(componentKey{str: id, isStr: true})
}

func (b *Builder) reference(key componentKey) *Builder {
	a := b.activeAttribute()
	if a == nil {
		return b.failf(ErrNoActiveAttribute, "reference to %s", key)
	}

	if a.valueType() != value.ReferenceComponent {
		return b.failf(ErrTypeMismatch, "attribute %q declares %s, not a component reference", a.id(), a.valueType())
	}

	a.ref = &key
	a.hasValue = true

	return b
}

// AddRelation starts a new relation of the given type.
func (b *Builder) AddRelation(t model.RelationType) *Builder {
	b.inRelation = true
	b.relations = append(b.relations, relationRecord{typ: t})

	return b
}

// Order sets the active relation's explicit order, which must be >= 1.
func (b *Builder) Order(n uint32) *Builder {
	if !b.inRelation || len(b.relations) == 0 {
		return b.fail(ErrNoActiveRelation)
	}

	if n < 1 {
		return b.failf(ErrNoActiveRelation, "order must be >= 1, got %d", n)
	}

	b.relations[len(b.relations)-1].order = &n

	return b
}

// AddRef adds a reference under the given role to the active relation,
// targeting the component with the given integer id.
func (b *Builder) AddRef(role model.RelationRole, id uint64, hint string) *Builder {
	return b.addRef(role, componentKey{num: id}, hint)
}

// AddRefString is [Builder.AddRef] for string-id builds.
func (b *Builder) AddRefString(role model.RelationRole, id, hint string) *Builder {
	return b.addRef(role, componentKey{str: id, isStr: true}, hint)
}

func (b *Builder) addRef(role model.RelationRole, key componentKey, hint string) *Builder {
	if !b.inRelation || len(b.relations) == 0 {
		return b.failf(ErrNoActiveRelation, "ref %s to %s", role, key)
	}

	rel := &b.relations[len(b.relations)-1]
	rel.refs = append(rel.refs, relationReferenceRecord{role: role, hint: hint, target: key})

	return b
}

// Build materializes the accumulated state into a [model.Model]: internal
// ids are assigned in declaration order, every symbolic reference is
// resolved, and the result is checked for structural invariants, unused
// components, and relation-role conformance. Any recorded or detected
// error aborts the build; all findings are aggregated into the returned
// error.
func (b *Builder) Build(info model.Info) (*model.Model, error) {
	errs := append([]error(nil), b.errs...)

	internalByKey := make(map[componentKey]uint64, len(b.components))

	components := make([]model.Component, 0, len(b.components))

	for i := range b.components {
		rec := &b.components[i]
		internal := uint64(i + 1) //nolint:gosec // i bounded by component count

		internalByKey[rec.key] = internal

		comp := model.Component{
			InternalID: internal,
			Type:       rec.typ,
			Name:       rec.name,
		}
		if !rec.key.isStr {
			id := rec.key.num
			comp.ExternalID = &id
		}

		components = append(components, comp)
	}

	for i := range b.components {
		rec := &b.components[i]

		attrs, attrErrs := b.materializeAttributes(rec, internalByKey)
		errs = append(errs, attrErrs...)
		components[i].Attributes = attrs
	}

	relations := make([]model.Relation, 0, len(b.relations))

	for _, rec := range b.relations {
		rel := model.Relation{Type: rec.typ, Order: rec.order}

		for _, ref := range rec.refs {
			internal, ok := internalByKey[ref.target]
			if !ok {
				errs = append(errs, fmt.Errorf("%w: relation %s ref %s to component %s", ErrUnresolvedReference, rec.typ, ref.role, ref.target))
				continue
			}

			rel.Refs = append(rel.Refs, model.RelationReference{Role: ref.role, Hint: ref.hint, ComponentRef: internal})
		}

		relations = append(relations, rel)
	}

	m := model.New(info, components, relations, nil)

	if len(relations) > 0 {
		for _, c := range model.UnusedComponents(m) {
			errs = append(errs, fmt.Errorf("%w: component %d (%s)", ErrUnusedComponent, c.InternalID, c.Type))
		}
	}

	res := result.New(result.Strict)
	model.CheckInvariants(m, res)

	if !res.OK() {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvariant, joinMessages(res)))
	}

	res = result.New(result.Strict)
	b.checker.CheckModel(m, info.Version, res)

	if !res.OK() {
		errs = append(errs, fmt.Errorf("%w: %s", ErrRelationCheck, joinMessages(res)))
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return m, nil
}

func (b *Builder) materializeAttributes(rec *componentRecord, internalByKey map[componentKey]uint64) ([]model.Attribute, []error) {
	var errs []error

	attrs := make([]model.Attribute, 0, len(rec.attributes))

	for i := range rec.attributes {
		ar := &rec.attributes[i]

		if !ar.hasValue {
			errs = append(errs, fmt.Errorf("%w: attribute %q on component %s has no value", ErrNoActiveAttribute, ar.id(), rec.key))
			continue
		}

		val := ar.val

		if ar.ref != nil {
			internal, ok := internalByKey[*ar.ref]
			if !ok {
				errs = append(errs, fmt.Errorf("%w: attribute %q on component %s references %s", ErrUnresolvedReference, ar.id(), rec.key, *ar.ref))
				continue
			}

			val = value.Reference(internal).WithCoding(val.Coding())
		}

		if ar.dbAttr != nil {
			attrs = append(attrs, model.NewStandardAttribute(ar.dbAttr, val))
			continue
		}

		attr, err := model.NewCustomAttribute(ar.customID, ar.unit, ar.customType, val)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		attrs = append(attrs, attr)
	}

	return attrs, errs
}

func joinMessages(res *result.Result) string {
	texts := make([]string, 0, len(res.Messages()))
	for _, msg := range res.Messages() {
		texts = append(texts, msg.Text)
	}

	return strings.Join(texts, "; ")
}
