package schema

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
)

// JSONValidator validates decoded JSON values (map[string]any,
// []any, and scalars, as produced by encoding/json.Unmarshal into `any`)
// against a draft-07 JSON Schema subset, via
// github.com/google/jsonschema-go.
type JSONValidator struct {
	schema *jsonschema.Schema

	mu       sync.Mutex
	resolved *jsonschema.Resolved
}

// NewJSONValidator returns a validator for the given schema. The schema is
// resolved lazily on first use.
func NewJSONValidator(s *jsonschema.Schema) *JSONValidator {
	return &JSONValidator{schema: s}
}

func (v *JSONValidator) resolve() (*jsonschema.Resolved, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.resolved != nil {
		return v.resolved, nil
	}

	r, err := v.schema.Resolve(&jsonschema.ResolveOptions{ValidateDefaults: false})
	if err != nil {
		return nil, fmt.Errorf("resolve schema: %w", err)
	}

	v.resolved = r

	return r, nil
}

// Validate validates instance, returning one [Error] per violation found.
// A schema that fails to resolve is reported as a single Error rooted at
// the document.
func (v *JSONValidator) Validate(instance any) []Error {
	resolved, err := v.resolve()
	if err != nil {
		return []Error{{Path: "", Message: err.Error()}}
	}

	if err := resolved.Validate(instance); err != nil {
		return flattenValidationError("", err)
	}

	return nil
}

// unwrapper is satisfied by Go's multi-error wrapping convention
// (errors.Join-produced errors and the validation errors jsonschema-go
// returns) so a single failed Validate call can be split back into
// one Error per leaf violation.
type unwrapper interface {
	Unwrap() []error
}

func flattenValidationError(path string, err error) []Error {
	var u unwrapper
	if errors.As(err, &u) {
		var out []Error
		for _, child := range u.Unwrap() {
			out = append(out, flattenValidationError(path, child)...)
		}

		return out
	}

	return []Error{{Path: path, Message: err.Error()}}
}
