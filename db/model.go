package db

import (
	"fmt"
	"time"
)

// Status classifies a DbModel's release state.
type Status uint8

// The two statuses a DbModel can carry.
const (
	Released Status = iota
	InDevelopment
)

// String returns the lower-case, space-separated status name.
func (s Status) String() string {
	if s == InDevelopment {
		return "in development"
	}

	return "released"
}

// Model is a single (version, language) catalog: units, value types,
// attributes, and components. Built once by [NewModel] and never mutated
// afterward.
type Model struct {
	Version     Version
	Language    string
	ReleaseDate time.Time
	Status      Status

	unitsByID   map[uint64]Unit
	unitsByName map[string]Unit
	attributes  map[string]Attribute
	components  map[string]Component
}

// NewModel builds a Model from its catalog contents. Returns
// [ErrDuplicateKey] if two units, two attributes, or two components share
// an id. Unit names are not checked: a later unit with an already used
// name replaces the earlier one in name lookups.
func NewModel(
	version Version,
	language string,
	releaseDate time.Time,
	status Status,
	units []Unit,
	attributes []Attribute,
	components []Component,
) (*Model, error) {
	m := &Model{
		Version:     version,
		Language:    language,
		ReleaseDate: releaseDate,
		Status:      status,
		unitsByID:   make(map[uint64]Unit, len(units)),
		unitsByName: make(map[string]Unit, len(units)),
		attributes:  make(map[string]Attribute, len(attributes)),
		components:  make(map[string]Component, len(components)),
	}

	for _, u := range units {
		if _, ok := m.unitsByID[u.ID]; ok {
			return nil, fmt.Errorf("%w: unit id %d", ErrDuplicateKey, u.ID)
		}

		m.unitsByID[u.ID] = u
		m.unitsByName[u.Name] = u
	}

	for _, a := range attributes {
		if _, ok := m.attributes[a.ID]; ok {
			return nil, fmt.Errorf("%w: attribute id %s", ErrDuplicateKey, a.ID)
		}

		m.attributes[a.ID] = a
	}

	for _, c := range components {
		if _, ok := m.components[c.ID]; ok {
			return nil, fmt.Errorf("%w: component id %s", ErrDuplicateKey, c.ID)
		}

		m.components[c.ID] = c
	}

	return m, nil
}

// Unit looks up a unit by id.
func (m *Model) Unit(id uint64) (Unit, bool) {
	u, ok := m.unitsByID[id]

	return u, ok
}

// UnitByName looks up a unit by exact name.
func (m *Model) UnitByName(name string) (Unit, bool) {
	u, ok := m.unitsByName[name]

	return u, ok
}

// Attribute looks up a catalog attribute by id.
func (m *Model) Attribute(id string) (Attribute, bool) {
	a, ok := m.attributes[id]

	return a, ok
}

// Component looks up a catalog component by type id.
func (m *Model) Component(id string) (Component, bool) {
	c, ok := m.components[id]

	return c, ok
}
