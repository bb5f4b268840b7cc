package avc

import (
	"errors"
	"fmt"
)

// CType is the AV/C command type byte.
type CType uint8

const (
	// CTypeControl mutates device state.
	CTypeControl CType = 0x00
	// CTypeStatus queries device state.
	CTypeStatus CType = 0x01
)

// ResponseCode is the first byte of a response frame.
type ResponseCode uint8

const (
	RespNotImplemented ResponseCode = 0x08
	RespAccepted       ResponseCode = 0x09
	RespRejected       ResponseCode = 0x0a
	RespInTransition   ResponseCode = 0x0b
	RespImplemented    ResponseCode = 0x0c
	RespChanged        ResponseCode = 0x0d
	RespInterim        ResponseCode = 0x0f
)

const (
	// addrUnit targets the device's unit rather than a subunit.
	addrUnit uint8 = 0xff

	// opcodeVendorDependent carries vendor-defined payloads.
	opcodeVendorDependent uint8 = 0x00

	// headerLen covers ctype, address, and AV/C opcode.
	headerLen = 3

	// vendorHeaderLen covers prefix, opcode, selector, and index: the
	// minimum vendor payload the hardware accepts.
	vendorHeaderLen = 6
)

// None marks an unused selector or index byte.
const None uint8 = 0xff

// Errors mapped from response codes.
var (
	// ErrRejected reports the device refused the command.
	ErrRejected = errors.New("avc: command rejected")

	// ErrNotImplemented reports the device does not know the command.
	ErrNotImplemented = errors.New("avc: command not implemented")
)

// MismatchError reports a response that does not echo the request.
type MismatchError struct {
	// Field names the frame byte that diverged.
	Field string

	Want uint8
	Got  uint8
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("avc: response %s mismatch: want 0x%02x, got 0x%02x", e.Field, e.Want, e.Got)
}

// Command is one vendor-dependent command. Selector and Index default
// to None for commands that do not use them.
type Command struct {
	// Prefix is the vendor's three-byte identifier.
	Prefix [3]byte

	// Opcode is the vendor command code.
	Opcode uint8

	// Selector qualifies the opcode, None when unused.
	Selector uint8

	// Index addresses a channel, None when unused.
	Index uint8

	// Value is the command payload, empty for queries.
	Value []byte
}

// EncodeValue renders v for a field whose domain tops out at max: one
// byte for domains that fit, two big-endian bytes otherwise.
func EncodeValue(v, max int) []byte {
	if max <= 0xff {
		return []byte{byte(v)}
	}
	return []byte{byte(v >> 8), byte(v)}
}

// DecodeValue is the inverse of EncodeValue.
func DecodeValue(data []byte) int {
	v := 0
	for _, b := range data {
		v = v<<8 | int(b)
	}
	return v
}

// Build assembles the wire frame for ct.
func (c *Command) Build(ct CType) []byte {
	frame := make([]byte, 0, headerLen+vendorHeaderLen+len(c.Value))
	frame = append(frame, byte(ct), addrUnit, opcodeVendorDependent)
	frame = append(frame, c.Prefix[0], c.Prefix[1], c.Prefix[2])
	frame = append(frame, c.Opcode, c.Selector, c.Index)
	return append(frame, c.Value...)
}

// ParseResponse checks a response frame against the request and
// returns the value bytes that follow the echoed header. Response
// codes map to sentinel errors; a response that fails to echo the
// request yields a MismatchError naming the first divergent byte.
func (c *Command) ParseResponse(frame []byte) ([]byte, error) {
	if len(frame) < headerLen+vendorHeaderLen {
		return nil, fmt.Errorf("avc: response too short: %d bytes", len(frame))
	}

	switch rc := ResponseCode(frame[0]); rc {
	case RespAccepted, RespImplemented, RespChanged:
		// success
	case RespRejected:
		return nil, ErrRejected
	case RespNotImplemented:
		return nil, ErrNotImplemented
	default:
		return nil, fmt.Errorf("avc: unexpected response code 0x%02x", uint8(rc))
	}

	echo := []struct {
		field string
		want  uint8
		got   uint8
	}{
		{"address", addrUnit, frame[1]},
		{"avc-opcode", opcodeVendorDependent, frame[2]},
		{"prefix", c.Prefix[0], frame[3]},
		{"prefix", c.Prefix[1], frame[4]},
		{"prefix", c.Prefix[2], frame[5]},
		{"opcode", c.Opcode, frame[6]},
		{"selector", c.Selector, frame[7]},
		{"index", c.Index, frame[8]},
	}
	for _, e := range echo {
		if e.got != e.want {
			return nil, &MismatchError{Field: e.field, Want: e.want, Got: e.got}
		}
	}

	return frame[headerLen+vendorHeaderLen:], nil
}
