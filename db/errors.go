package db

import "errors"

// Sentinel errors returned by the db package.
var (
	// ErrInvalidVersion indicates a "major.minor" string could not be
	// parsed.
	ErrInvalidVersion = errors.New("invalid version")
	// ErrNotFound indicates a model lookup in a Registry found no match.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateKey indicates a Registry or Model was asked to
	// register a (version, language) or id that already exists.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrNoModels indicates a Registry has no DbModel at all, so no
	// fallback is possible.
	ErrNoModels = errors.New("registry has no models")
)
