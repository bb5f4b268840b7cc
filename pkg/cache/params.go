package cache

import "github.com/sndfw-protocol/sndfw-go/pkg/addrspace"

// ReadableParams is a parameter set that can be populated from a
// register image. The image layout is defined by the set's table:
// ranges packed back to back in ascending offset order.
type ReadableParams interface {
	// Table describes which registers the set occupies.
	Table() *addrspace.Table

	// Deserialize populates the set from a full register image.
	// raw is exactly Table().Total() bytes.
	Deserialize(raw []byte) error
}

// WritableParams is a parameter set that can also produce a register
// image, making it eligible for partial updates. Read-only sets such
// as hardware meters implement only ReadableParams.
type WritableParams interface {
	ReadableParams

	// Serialize renders the set into a full register image.
	// raw is exactly Table().Total() bytes.
	Serialize(raw []byte) error
}
