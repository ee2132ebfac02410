package vm

import "fmt"

// ---------------------------------------------------------------------------
// Error taxonomy
// ---------------------------------------------------------------------------
//
// All of these signal a programming error in the calling layer. None are
// retried; the failing operation leaves its receiver untouched.

// InvalidSlotError is returned by reflective slot access for an unknown
// slot name.
type InvalidSlotError struct {
	Slot string
}

func (e *InvalidSlotError) Error() string {
	return fmt.Sprintf("`%s' is not a valid case option", e.Slot)
}

// InvalidDimensionError is returned when an array is created with a
// negative dimension.
type InvalidDimensionError struct {
	Dim int
}

func (e *InvalidDimensionError) Error() string {
	return fmt.Sprintf("invalid array dimension %d", e.Dim)
}

// IndexOutOfBoundsError is returned for array access outside [0, Dim).
type IndexOutOfBoundsError struct {
	Index int
	Dim   int
}

func (e *IndexOutOfBoundsError) Error() string {
	return fmt.Sprintf("index %d out of bounds [0, %d)", e.Index, e.Dim)
}

// TypeMismatchError is returned when a reflective set receives a value of
// an incompatible kind.
type TypeMismatchError struct {
	Want string
	Got  string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch: want %s, got %s", e.Want, e.Got)
}
