package field

import (
	"fmt"
)

// ErrUnencodable indicates text contains a rune that has no single-byte form.
type ErrUnencodable struct {
	Text string
	Rune rune
}

func (e *ErrUnencodable) Error() string {
	return fmt.Sprintf("cannot encode %q in %q as a single byte", e.Rune, e.Text)
}

// ErrCapacity indicates a count exceeds what a fixed-width field or block can hold
type ErrCapacity struct {
	What  string
	Count int
	Max   int
}

func (e *ErrCapacity) Error() string {
	return fmt.Sprintf("%s: %d exceeds maximum of %d", e.What, e.Count, e.Max)
}
