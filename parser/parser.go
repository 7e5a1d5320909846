package parser

import (
	"go.rexsapi.dev/rexsapi/db"
	"go.rexsapi.dev/rexsapi/format"
	"go.rexsapi.dev/rexsapi/model"
	"go.rexsapi.dev/rexsapi/relation"
	"go.rexsapi.dev/rexsapi/result"
	"go.rexsapi.dev/rexsapi/validate"
	"go.rexsapi.dev/rexsapi/value"
)

// Parser loads REXS model documents in either wire format, validating
// against a [db.Registry] and the built-in relation tables.
type Parser struct {
	registry  *db.Registry
	checker   *format.ExtensionChecker
	archive   format.Archive
	validator *validate.Validator
}

// Option configures a Parser constructed by [New].
type Option func(*Parser)

// WithExtensionChecker overrides the default built-in [format.ExtensionChecker].
func WithExtensionChecker(c *format.ExtensionChecker) Option {
	return func(p *Parser) { p.checker = c }
}

// WithArchive configures the zip-container unwrapper used for
// `.rexsz`/`.rexs.zip` documents. Without one, zip documents fail with
// [ErrNoArchive].
func WithArchive(a format.Archive) Option {
	return func(p *Parser) { p.archive = a }
}

// WithRelationChecker overrides the default [relation.NewBuiltinChecker]
// used by the Parser's [validate.Validator]. Ignored if WithValidator is
// also given and applied after this option.
func WithRelationChecker(c *relation.Checker) Option {
	return func(p *Parser) { p.validator = validate.NewValidatorWithChecker(c) }
}

// WithValidator overrides the default [validate.NewValidator].
func WithValidator(v *validate.Validator) Option {
	return func(p *Parser) { p.validator = v }
}

// New returns a Parser resolving database models against registry.
func New(registry *db.Registry, opts ...Option) *Parser {
	p := &Parser{
		registry:  registry,
		checker:   format.NewExtensionChecker(),
		validator: validate.NewValidator(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Load sniffs name's format, parses data under it, and runs the shared
// post-processing pipeline. It returns the parsed model alongside every
// diagnostic recorded at mode's severity; a nil model means a Critical
// diagnostic aborted processing (check res.Messages() for why).
func (p *Parser) Load(name string, data []byte, mode result.Mode) (*model.Model, *result.Result) {
	res := result.New(mode)

	f, err := p.checker.Sniff(name)
	if err != nil {
		res.Addf(result.Critical, "sniffing format: %s", err)
		return nil, res
	}

	if f == format.Zip {
		if p.archive == nil {
			res.Addf(result.Critical, "%s", ErrNoArchive)
			return nil, res
		}

		inner, innerFormat, err := p.archive.Unwrap(data)
		if err != nil {
			res.Addf(result.Critical, "unwrapping zip container: %s", err)
			return nil, res
		}

		data = inner
		f = innerFormat
	}

	var m *model.Model

	switch f {
	case format.Tree:
		m = p.loadTree(data, mode, res)
	case format.JSON:
		m = p.loadJSON(data, mode, res)
	default:
		res.Addf(result.Critical, "%s: %s", ErrUnsupportedFormat, f)
		return nil, res
	}

	if m == nil {
		return nil, res
	}

	p.finalize(m, res)

	if res.HasCritical() {
		return nil, res
	}

	return m, res
}

// header is the format-independent document header both parsers produce
// before resolving a [db.Model] against it.
type header struct {
	applicationID      string
	applicationVersion string
	date               string
	version            string
	language           string
}

func (p *Parser) resolveDBModel(h header, mode result.Mode, res *result.Result) (*db.Model, model.Info, bool) {
	v, err := db.ParseVersion(h.version)
	if err != nil {
		res.Addf(result.Critical, "parsing document version %q: %s", h.version, err)
		return nil, model.Info{}, false
	}

	dbModel, err := p.registry.GetModel(v, h.language, mode == result.Strict)
	if err != nil {
		res.Addf(result.Critical, "resolving database model %s/%s: %s", v, h.language, err)
		return nil, model.Info{}, false
	}

	date, err := parseHeaderDate(h.date)
	if err != nil {
		res.Addf(result.Error, "parsing document date %q: %s", h.date, err)
	}

	info := model.Info{
		ApplicationID:      h.applicationID,
		ApplicationVersion: h.applicationVersion,
		Date:               date,
		Version:            dbModel.Version,
		Language:           dbModel.Language,
	}

	return dbModel, info, true
}

// finalize runs the shared post-processing pipeline:
// reference rewriting, invariant checks, unused-component warnings, and the
// full semantic pass (attribute range checks, relation/subcomponent
// checker) via validator. Unit and enum conformance are checked earlier,
// inline during decode; range conformance is checked only here, after the
// decoded values are already part of the model.
func (p *Parser) finalize(m *model.Model, res *result.Result) {
	rewriteReferences(m, res)

	model.CheckInvariants(m, res)

	for _, c := range model.UnusedComponents(m) {
		res.Addf(result.Warning, "component %d (%s) is not used by any relation", c.InternalID, c.Type)
	}

	p.validator.CheckModel(m, res)
}

const referencedComponentIDAttribute = "referenced_component_id"

// rewriteReferences rewrites every Reference Component attribute's stored
// integer from the originating-document external id to the target
// component's internal id, except the referenced_component_id attribute,
// which names its host structurally rather than via a rewritten value.
func rewriteReferences(m *model.Model, res *result.Result) {
	for ci, c := range m.Components {
		attrs := c.Attributes

		for ai, a := range attrs {
			if a.ValueType() != value.ReferenceComponent || a.ID() == referencedComponentIDAttribute {
				continue
			}

			externalID, err := value.Get[uint64](a.Value())
			if err != nil {
				continue
			}

			target, ok := m.ComponentByExternalID(externalID)
			if !ok {
				res.Addf(result.Error, "component %d: attribute %q references unknown external id %d", c.InternalID, a.ID(), externalID)
				continue
			}

			attrs[ai] = a.WithValue(value.Reference(target.InternalID))
		}

		m.Components[ci].Attributes = attrs
	}
}
