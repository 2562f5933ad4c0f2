package lineards

import "errors"

var (
	// ErrNilArgument reports a nil collection, cursor, or value.
	ErrNilArgument = errors.New("lineards: nil argument")

	// ErrPosition reports a position outside the valid range of the
	// operation. Inserts accept positions up to and including the size,
	// element accesses only below it.
	ErrPosition = errors.New("lineards: position out of range")

	// ErrUnchanged reports a set whose value matched the stored bytes.
	// The collection is left untouched.
	ErrUnchanged = errors.New("lineards: value unchanged")

	// ErrAllocation reports a failed backing allocation. The failed
	// operation performs no mutation.
	ErrAllocation = errors.New("lineards: allocation failed")

	// ErrElementSize reports a value whose length differs from the
	// element size fixed at construction.
	ErrElementSize = errors.New("lineards: wrong element size")
)
