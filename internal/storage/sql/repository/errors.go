package repository

import "errors"

var (
	// ErrEnumNotFound indicates no options are stored for the enumeration.
	ErrEnumNotFound = errors.New("enumeration not found")

	// ErrInvalidDescriptor indicates a descriptor without a name.
	ErrInvalidDescriptor = errors.New("invalid enumeration descriptor")
)
