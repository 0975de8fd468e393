package archive

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncatedRead is returned when a read or skip would run past the
	// end of the archive.
	ErrTruncatedRead = errors.New("truncated read")

	// ErrInvalidLength is returned for a negative length or skip count.
	ErrInvalidLength = errors.New("invalid length")

	// ErrInvalidEncoding is returned when a path field is not ASCII.
	ErrInvalidEncoding = errors.New("invalid encoding")
)

// DecodeError describes a failed primitive read. It unwraps to one of the
// sentinel errors above or to the underlying I/O error.
type DecodeError struct {
	Err       error
	Op        string
	Offset    int64
	Want      int64
	Remaining int64
}

func (e *DecodeError) Error() string {
	if errors.Is(e.Err, ErrTruncatedRead) {
		return fmt.Sprintf("%s %d bytes at offset %d: %v (%d remaining)",
			e.Op, e.Want, e.Offset, e.Err, e.Remaining)
	}
	return fmt.Sprintf("%s %d bytes at offset %d: %v", e.Op, e.Want, e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
