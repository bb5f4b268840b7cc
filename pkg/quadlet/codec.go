package quadlet

import (
	"encoding/binary"
	"fmt"
)

// Size is the number of bytes in one quadlet.
const Size = 4

// DecodeError reports a register value that matches no recognized
// encoding. The raw word is preserved so callers can report exactly
// what the hardware returned.
type DecodeError struct {
	// Field names the register or field being decoded.
	Field string

	// Raw is the offending word as read from the device.
	Raw uint32
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("quadlet: unrecognized value 0x%08x for %s", e.Raw, e.Field)
}

// Get reads the big-endian word at the start of raw.
// raw must be at least Size bytes.
func Get(raw []byte) uint32 {
	return binary.BigEndian.Uint32(raw)
}

// Put writes v big-endian to the start of raw.
// raw must be at least Size bytes.
func Put(raw []byte, v uint32) {
	binary.BigEndian.PutUint32(raw, v)
}

// GetAt reads the i-th quadlet of raw.
func GetAt(raw []byte, i int) uint32 {
	return binary.BigEndian.Uint32(raw[i*Size:])
}

// PutAt writes v to the i-th quadlet of raw.
func PutAt(raw []byte, i int, v uint32) {
	binary.BigEndian.PutUint32(raw[i*Size:], v)
}

// GetInt16 reads a 16-bit signed value that the hardware stores
// sign-extended across the full quadlet.
func GetInt16(raw []byte) int16 {
	return int16(binary.BigEndian.Uint32(raw))
}

// PutInt16 writes v sign-extended across the full quadlet.
func PutInt16(raw []byte, v int16) {
	binary.BigEndian.PutUint32(raw, uint32(int32(v)))
}

// GetInt16At reads the i-th quadlet of raw as a sign-extended 16-bit value.
func GetInt16At(raw []byte, i int) int16 {
	return int16(binary.BigEndian.Uint32(raw[i*Size:]))
}

// PutInt16At writes v sign-extended to the i-th quadlet of raw.
func PutInt16At(raw []byte, i int, v int16) {
	binary.BigEndian.PutUint32(raw[i*Size:], uint32(int32(v)))
}

// Nonzero interprets any nonzero word as true. Some registers report
// an arbitrary nonzero pattern for the enabled state, so this is the
// lenient counterpart to Bool.Decode.
func Nonzero(v uint32) bool {
	return v != 0
}
