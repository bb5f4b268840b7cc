package proio

import (
	"fmt"

	"github.com/sndfw-protocol/sndfw-go/pkg/addrspace"
	"github.com/sndfw-protocol/sndfw-go/pkg/cache"
	"github.com/sndfw-protocol/sndfw-go/pkg/quadlet"
)

// Pass-through registers, identical on every model in the family.
const (
	midiThroughOffset = 0x19c
	ac3ThroughOffset  = 0x1a0
)

// ThroughParams controls the signal pass-through switches: MIDI
// messages and AC-3 frames forwarded from input to output without the
// host in the loop.
type ThroughParams struct {
	MidiThrough bool
	Ac3Through  bool

	table *addrspace.Table
}

// NewThroughParams builds the set.
func NewThroughParams() *ThroughParams {
	return &ThroughParams{
		table: addrspace.MustNew(
			addrspace.Quadlets(midiThroughOffset, 1),
			addrspace.Quadlets(ac3ThroughOffset, 1),
		),
	}
}

// Clone returns an independent copy.
func (p *ThroughParams) Clone() *ThroughParams {
	cp := NewThroughParams()
	cp.MidiThrough = p.MidiThrough
	cp.Ac3Through = p.Ac3Through
	return cp
}

// Table implements cache.ReadableParams.
func (p *ThroughParams) Table() *addrspace.Table {
	return p.table
}

// Serialize implements cache.WritableParams.
func (p *ThroughParams) Serialize(raw []byte) error {
	if len(raw) != p.table.Total() {
		return fmt.Errorf("proio: through image is %d bytes, want %d", len(raw), p.table.Total())
	}
	quadlet.LowBit.PutAt(raw, 0, p.MidiThrough)
	quadlet.LowBit.PutAt(raw, 1, p.Ac3Through)
	return nil
}

// Deserialize implements cache.ReadableParams.
func (p *ThroughParams) Deserialize(raw []byte) error {
	if len(raw) != p.table.Total() {
		return fmt.Errorf("proio: through image is %d bytes, want %d", len(raw), p.table.Total())
	}
	p.MidiThrough = quadlet.Nonzero(quadlet.GetAt(raw, 0))
	p.Ac3Through = quadlet.Nonzero(quadlet.GetAt(raw, 1))
	return nil
}

// Compile-time interface satisfaction check.
var _ cache.WritableParams = (*ThroughParams)(nil)
