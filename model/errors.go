package model

import "errors"

// Sentinel errors returned by the model package.
var (
	// ErrUnknownRelationType indicates a string does not name a known
	// [RelationType].
	ErrUnknownRelationType = errors.New("unknown relation type")
	// ErrUnknownRelationRole indicates a string does not name a known
	// [RelationRole].
	ErrUnknownRelationRole = errors.New("unknown relation role")
	// ErrDanglingReference indicates a componentRef points at no
	// component in the model.
	ErrDanglingReference = errors.New("dangling component reference")
	// ErrDuplicateExternalID indicates two components share an
	// external id.
	ErrDuplicateExternalID = errors.New("duplicate external id")
	// ErrDuplicateInternalID indicates two components share an
	// internal id.
	ErrDuplicateInternalID = errors.New("duplicate internal id")
	// ErrEmptyCustomID indicates a custom attribute was given an empty
	// id.
	ErrEmptyCustomID = errors.New("custom attribute id must not be empty")
)
