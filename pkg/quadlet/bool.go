package quadlet

// Bool encodes a boolean as one of two sentinel words. Different
// register families use different sentinels, so the codec is a value
// rather than a pair of functions.
type Bool struct {
	// Name identifies the codec in decode errors.
	Name string

	// On and Off are the wire words for true and false.
	On  uint32
	Off uint32
}

// LowBit is the plain 0/1 encoding used by the switch registers.
var LowBit = Bool{Name: "low-bit", On: 0x00000001, Off: 0x00000000}

// Encode returns the wire word for v.
func (b Bool) Encode(v bool) uint32 {
	if v {
		return b.On
	}
	return b.Off
}

// Put writes the wire word for v to the start of raw.
func (b Bool) Put(raw []byte, v bool) {
	Put(raw, b.Encode(v))
}

// PutAt writes the wire word for v to the i-th quadlet of raw.
func (b Bool) PutAt(raw []byte, i int, v bool) {
	PutAt(raw, i, b.Encode(v))
}

// Decode maps a wire word back to a boolean. A word that is neither
// sentinel yields a DecodeError carrying the raw value.
func (b Bool) Decode(v uint32) (bool, error) {
	switch v {
	case b.On:
		return true, nil
	case b.Off:
		return false, nil
	default:
		return false, &DecodeError{Field: b.Name, Raw: v}
	}
}

// Get decodes the word at the start of raw.
func (b Bool) Get(raw []byte) (bool, error) {
	return b.Decode(Get(raw))
}

// GetAt decodes the i-th quadlet of raw.
func (b Bool) GetAt(raw []byte, i int) (bool, error) {
	return b.Decode(GetAt(raw, i))
}
