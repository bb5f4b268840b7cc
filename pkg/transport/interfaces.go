package transport

import (
	"errors"
	"fmt"
	"time"
)

// Bus performs asynchronous block transactions against a device's
// register space. Offsets are relative to the device's parameter base
// address; implementations add the base themselves.
type Bus interface {
	// Read fetches length bytes starting at offset. length must be a
	// multiple of the quadlet size. The returned slice is exactly
	// length bytes on success.
	Read(offset uint32, length int, timeout time.Duration) ([]byte, error)

	// Write stores data starting at offset. len(data) must be a
	// multiple of the quadlet size.
	Write(offset uint32, data []byte, timeout time.Duration) error
}

// Commander exchanges command frames with the device's function unit.
type Commander interface {
	// Status sends a query frame and returns the response frame.
	Status(frame []byte, timeout time.Duration) ([]byte, error)

	// Control sends a mutation frame and returns the response frame.
	Control(frame []byte, timeout time.Duration) ([]byte, error)
}

// Sentinel errors shared by transport implementations.
var (
	// ErrTimeout reports that the device did not answer in time.
	ErrTimeout = errors.New("transport: transaction timed out")

	// ErrDisconnected reports that the device has left the bus.
	ErrDisconnected = errors.New("transport: device disconnected")
)

// ExpectedDisconnectError wraps a transport failure that the caller
// anticipated: some register writes make the device drop off the bus
// and re-enumerate, so the failed transaction is the expected outcome,
// not a fault. Callers distinguish it with IsExpectedDisconnect.
type ExpectedDisconnectError struct {
	Err error
}

func (e *ExpectedDisconnectError) Error() string {
	return fmt.Sprintf("transport: expected disconnect: %v", e.Err)
}

func (e *ExpectedDisconnectError) Unwrap() error {
	return e.Err
}

// ExpectDisconnect wraps err as an expected disconnect. A nil err
// passes through unchanged.
func ExpectDisconnect(err error) error {
	if err == nil {
		return nil
	}
	return &ExpectedDisconnectError{Err: err}
}

// IsExpectedDisconnect reports whether err is (or wraps) an expected
// disconnect.
func IsExpectedDisconnect(err error) bool {
	var e *ExpectedDisconnectError
	return errors.As(err, &e)
}
