package model

import "errors"

// Error taxonomy shared across services and store backends. Callers match
// with errors.Is; detail is added at the raise site via fmt.Errorf("%w: ...").
var (
	// ErrInvalidInput marks a validation failure on caller-supplied fields.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound covers both a missing record and a record owned by someone
	// else. The two cases are deliberately indistinguishable so lookups never
	// leak existence across owners.
	ErrNotFound = errors.New("not found")

	// ErrInvalidFrequency means a frequency outside the allowed set reached
	// the calculator. Persisted data should make this impossible; seeing it
	// at runtime indicates an upstream bug, not a recoverable condition.
	ErrInvalidFrequency = errors.New("invalid frequency")

	// ErrConflict marks a uniqueness violation, e.g. a second budget for the
	// same category and month.
	ErrConflict = errors.New("conflict")

	// ErrStaleTemplate is returned by conditional template writes when
	// NextOccurrence no longer matches the value the caller read. The losing
	// pass must not generate a record.
	ErrStaleTemplate = errors.New("template modified concurrently")
)
