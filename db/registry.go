package db

import "fmt"

// Loader produces the set of [Model]s a [Registry] should serve. The
// database-model XML parser is external to this package;
// Loader is the only contract this package demands of it.
type Loader interface {
	Load() ([]*Model, error)
}

type registryKey struct {
	version  Version
	language string
}

// Registry holds a set of [Model]s, keyed by (version, language), and
// resolves lookups with a relaxed fallback when an exact match is absent.
// A Registry never serves a partially loaded model: [Registry.Add] takes
// a fully constructed [*Model] or rejects it.
type Registry struct {
	models map[registryKey]*Model
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{models: make(map[registryKey]*Model)}
}

// Add registers m, keyed by its (Version, Language). Returns
// [ErrDuplicateKey] if that key is already registered.
func (r *Registry) Add(m *Model) error {
	key := registryKey{version: m.Version, language: m.Language}
	if _, ok := r.models[key]; ok {
		return fmt.Errorf("%w: %s/%s", ErrDuplicateKey, m.Version, m.Language)
	}

	r.models[key] = m

	return nil
}

// LoadFrom registers every Model produced by loader.
func (r *Registry) LoadFrom(loader Loader) error {
	models, err := loader.Load()
	if err != nil {
		return fmt.Errorf("loading database models: %w", err)
	}

	for _, m := range models {
		if err := r.Add(m); err != nil {
			return err
		}
	}

	return nil
}

// EnglishLanguage is the language code the database distribution always
// ships, used as the fallback when no model exists in the requested
// language and as the default when a document declares none.
const EnglishLanguage = "en"

// GetModel resolves the Model for (version, language). An empty language
// means the document declared none and defaults to [EnglishLanguage].
//
// If strict, only an exact (version, language) match is returned; absence
// is an error. If not strict and no exact match exists, the highest
// version in the requested language is used; failing that, the highest
// version in [EnglishLanguage]; failing that, an error.
func (r *Registry) GetModel(version Version, language string, strict bool) (*Model, error) {
	if language == "" {
		language = EnglishLanguage
	}

	if m, ok := r.models[registryKey{version: version, language: language}]; ok {
		return m, nil
	}

	if strict {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, version, language)
	}

	if len(r.models) == 0 {
		return nil, ErrNoModels
	}

	if m, ok := r.highestInLanguage(language); ok {
		return m, nil
	}

	if m, ok := r.highestInLanguage(EnglishLanguage); ok {
		return m, nil
	}

	return nil, fmt.Errorf("%w: %s/%s (no fallback available)", ErrNotFound, version, language)
}

func (r *Registry) highestInLanguage(language string) (*Model, bool) {
	var best *Model

	for key, m := range r.models {
		if key.language != language {
			continue
		}

		if best == nil || best.Version.Less(m.Version) {
			best = m
		}
	}

	return best, best != nil
}

// Models returns every registered Model. The returned slice is a copy;
// mutating it does not affect the Registry.
func (r *Registry) Models() []*Model {
	out := make([]*Model, 0, len(r.models))
	for _, m := range r.models {
		out = append(out, m)
	}

	return out
}
