package proio

import "errors"

var (
	// ErrIndexRange reports a channel or pair index outside the
	// model's declared count.
	ErrIndexRange = errors.New("proio: index out of range")

	// ErrNotSupported reports an operation the model's hardware does
	// not have. It is returned before any bus traffic.
	ErrNotSupported = errors.New("proio: not supported by this model")

	// ErrValueRange reports a parameter value outside its domain.
	ErrValueRange = errors.New("proio: value out of range")
)
