package duet

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexRange reports a channel, source, or destination index
	// outside the device's fixed counts.
	ErrIndexRange = errors.New("duet: index out of range")

	// ErrNotSupported reports an operation the model's hardware does
	// not have. It is returned before any command is sent.
	ErrNotSupported = errors.New("duet: not supported by this model")

	// ErrValueRange reports a parameter value outside its domain.
	ErrValueRange = errors.New("duet: value out of range")
)

// DecodeError reports a response value byte that matches no recognized
// encoding. The raw byte is preserved so callers can report exactly
// what the hardware returned.
type DecodeError struct {
	// Field names the parameter being decoded.
	Field string

	// Raw is the offending byte from the response value.
	Raw uint8
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("duet: unrecognized value 0x%02x for %s", e.Raw, e.Field)
}
