// Package common defines shared sentinel errors used across the authdb
// components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Validation errors. Wrapped with the violated bound, e.g.
	// fmt.Errorf("%w: username must be at least 2 characters", ErrValidation).
	ErrValidation = errors.New("validation error")

	// Uniqueness conflicts (duplicate username).
	ErrAlreadyExists = errors.New("already exists")

	// A stored credential that does not decode as "<saltHex>-<hashHex>".
	// Indicates a storage-layer bug, not user error.
	ErrCorruptSecret = errors.New("corrupt password secret")
)
