package emitter

import (
	"fmt"
)

// ErrUnsupportedFormat indicates a format name or extension with no emitter
type ErrUnsupportedFormat struct {
	Format string
}

func (e *ErrUnsupportedFormat) Error() string {
	return fmt.Sprintf("unsupported export format: %q", e.Format)
}

// ErrInvalidContainer indicates a file that does not decode as the format it claims
type ErrInvalidContainer struct {
	Format Format
	Reason string
}

func (e *ErrInvalidContainer) Error() string {
	return fmt.Sprintf("invalid %s file: %s", e.Format, e.Reason)
}
