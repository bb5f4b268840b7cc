package quadlet

import "fmt"

// Field describes one bit field multiplexed into a shared register.
// The field occupies the bits selected by Mask after shifting right by
// Shift, and carries one of the wire codes in Codes. The index into
// Codes is the logical value; the code is what appears on the wire.
//
// Encoding touches only the masked bits, so several Fields can share a
// quadlet as long as their masks do not overlap.
type Field struct {
	// Name identifies the field in errors.
	Name string

	// Mask selects the field's bits within the unshifted word.
	Mask uint32

	// Shift is the field's bit position.
	Shift uint

	// Codes lists the valid wire codes in logical order.
	Codes []uint8
}

// Encode stores the wire code for logical value idx into the masked
// bits of word, leaving all other bits untouched.
func (f Field) Encode(word *uint32, idx int) error {
	if idx < 0 || idx >= len(f.Codes) {
		return fmt.Errorf("quadlet: index %d out of range for %s (0..%d)", idx, f.Name, len(f.Codes)-1)
	}
	*word = (*word &^ f.Mask) | (uint32(f.Codes[idx]) << f.Shift & f.Mask)
	return nil
}

// Decode extracts the field from word and maps its wire code back to
// a logical value. An unlisted code yields a DecodeError carrying the
// full raw word.
func (f Field) Decode(word uint32) (int, error) {
	code := uint8((word & f.Mask) >> f.Shift)
	for i, c := range f.Codes {
		if c == code {
			return i, nil
		}
	}
	return 0, &DecodeError{Field: f.Name, Raw: word}
}
