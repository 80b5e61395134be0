package media

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConstraints = errors.New("image constraints must have positive max bytes and max dimension")
	ErrImageTooLarge      = errors.New("image too large")
	errEmptyInput         = errors.New("empty input")
)

// DecodeError wraps a failure to read the input as an image.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode image: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// UnsupportedFormatError is returned when the requested output format cannot be produced.
type UnsupportedFormatError struct {
	Format string
	Err    error
}

func (e *UnsupportedFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unsupported output format %q: %v", e.Format, e.Err)
	}
	return fmt.Sprintf("unsupported output format %q", e.Format)
}

func (e *UnsupportedFormatError) Unwrap() error { return e.Err }
