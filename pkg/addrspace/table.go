package addrspace

import (
	"fmt"

	"github.com/sndfw-protocol/sndfw-go/pkg/quadlet"
)

// Range is one contiguous span of device registers.
type Range struct {
	// Offset is the device address of the first byte.
	Offset uint32

	// Length is the span size in bytes.
	Length int
}

// End returns the device address one past the last byte.
func (r Range) End() uint32 {
	return r.Offset + uint32(r.Length)
}

// Quadlets builds a Range covering count quadlets starting at offset.
func Quadlets(offset uint32, count int) Range {
	return Range{Offset: offset, Length: count * quadlet.Size}
}

// Table is a validated, ordered set of register ranges. A valid table
// has at least one range, every range quadlet-aligned in offset and
// length, and ranges strictly ascending without overlap.
type Table struct {
	ranges  []Range
	total   int
	offsets []uint32 // device offset per image quadlet
}

// New validates ranges and builds a Table.
func New(ranges ...Range) (*Table, error) {
	if len(ranges) == 0 {
		return nil, fmt.Errorf("addrspace: table needs at least one range")
	}

	total := 0
	for i, r := range ranges {
		if r.Length <= 0 {
			return nil, fmt.Errorf("addrspace: range %d at 0x%06x has non-positive length %d", i, r.Offset, r.Length)
		}
		if r.Offset%quadlet.Size != 0 || r.Length%quadlet.Size != 0 {
			return nil, fmt.Errorf("addrspace: range %d (offset 0x%06x, length %d) is not quadlet-aligned", i, r.Offset, r.Length)
		}
		if i > 0 && r.Offset < ranges[i-1].End() {
			return nil, fmt.Errorf("addrspace: range %d at 0x%06x overlaps or precedes range %d ending at 0x%06x",
				i, r.Offset, i-1, ranges[i-1].End())
		}
		total += r.Length
	}

	t := &Table{
		ranges:  append([]Range(nil), ranges...),
		total:   total,
		offsets: make([]uint32, 0, total/quadlet.Size),
	}
	for _, r := range t.ranges {
		for b := 0; b < r.Length; b += quadlet.Size {
			t.offsets = append(t.offsets, r.Offset+uint32(b))
		}
	}
	return t, nil
}

// MustNew is New for static tables; it panics on invalid input.
func MustNew(ranges ...Range) *Table {
	t, err := New(ranges...)
	if err != nil {
		panic(err)
	}
	return t
}

// Total is the serialized image size in bytes.
func (t *Table) Total() int {
	return t.total
}

// Quadlets is the serialized image size in quadlets.
func (t *Table) Quadlets() int {
	return len(t.offsets)
}

// Ranges returns a copy of the table's ranges.
func (t *Table) Ranges() []Range {
	return append([]Range(nil), t.ranges...)
}

// OffsetAt maps an image quadlet index to its device offset.
func (t *Table) OffsetAt(i int) (uint32, error) {
	if i < 0 || i >= len(t.offsets) {
		return 0, fmt.Errorf("addrspace: quadlet index %d out of range (0..%d)", i, len(t.offsets)-1)
	}
	return t.offsets[i], nil
}

// QuadletOffsets returns the device offset of every image quadlet in
// image order.
func (t *Table) QuadletOffsets() []uint32 {
	return append([]uint32(nil), t.offsets...)
}

// Merged coalesces adjacent ranges into the fewest contiguous spans,
// splitting any span longer than maxQuadlets. maxQuadlets <= 0 means
// unlimited. Two ranges are adjacent when one ends exactly where the
// next begins.
func (t *Table) Merged(maxQuadlets int) []Range {
	maxLen := maxQuadlets * quadlet.Size

	var merged []Range
	for _, r := range t.ranges {
		if n := len(merged); n > 0 && merged[n-1].End() == r.Offset {
			merged[n-1].Length += r.Length
			continue
		}
		merged = append(merged, r)
	}

	if maxLen <= 0 {
		return merged
	}

	var out []Range
	for _, r := range merged {
		for r.Length > maxLen {
			out = append(out, Range{Offset: r.Offset, Length: maxLen})
			r.Offset += uint32(maxLen)
			r.Length -= maxLen
		}
		out = append(out, r)
	}
	return out
}
