package proio

import (
	"fmt"

	"github.com/sndfw-protocol/sndfw-go/pkg/addrspace"
	"github.com/sndfw-protocol/sndfw-go/pkg/cache"
	"github.com/sndfw-protocol/sndfw-go/pkg/descriptor"
	"github.com/sndfw-protocol/sndfw-go/pkg/quadlet"
)

// Registers of the device-specific switches. The phantom block grows
// downward from phantomEnd: with count groups, the first register is
// phantomEnd - 4*count. Register order is reversed relative to group
// order, so the highest group sits at the lowest register.
const (
	headRoomOffset      = 0x16c
	phantomEnd          = 0x190
	insertSwapOffset    = 0x190
	standaloneOffset    = 0x1bc
	adatDisableOffset   = 0x1c0
	directMonitorOffset = 0x1c8
)

// StandaloneMode selects what the hardware does without a host.
type StandaloneMode uint8

const (
	// StandaloneMix routes the internal mixer to the outputs.
	StandaloneMix StandaloneMode = iota
	// StandaloneTrack routes inputs straight through.
	StandaloneTrack
)

func (m StandaloneMode) String() string {
	if m == StandaloneTrack {
		return "track"
	}
	return "mix"
}

// SpecificParams holds the switches particular to this device family.
// PhantomPowerings and InsertSwaps are sized by the model and empty
// when the hardware lacks them.
type SpecificParams struct {
	HeadRoom bool

	PhantomPowerings []bool
	InsertSwaps      []bool

	StandaloneMode   StandaloneMode
	AdatEnabled      bool
	DirectMonitoring bool

	model *descriptor.Model
	table *addrspace.Table
}

// NewSpecificParams sizes the set for m.
func NewSpecificParams(m *descriptor.Model) *SpecificParams {
	ranges := []addrspace.Range{addrspace.Quadlets(headRoomOffset, 1)}
	if m.PhantomPowering > 0 {
		base := uint32(phantomEnd - quadlet.Size*m.PhantomPowering)
		ranges = append(ranges, addrspace.Quadlets(base, m.PhantomPowering))
	}
	if m.InsertSwaps > 0 {
		ranges = append(ranges, addrspace.Quadlets(insertSwapOffset, m.InsertSwaps))
	}
	ranges = append(ranges,
		addrspace.Quadlets(standaloneOffset, 1),
		addrspace.Quadlets(adatDisableOffset, 1),
		addrspace.Quadlets(directMonitorOffset, 1),
	)
	return &SpecificParams{
		PhantomPowerings: make([]bool, m.PhantomPowering),
		InsertSwaps:      make([]bool, m.InsertSwaps),
		model:            m,
		table:            addrspace.MustNew(ranges...),
	}
}

// Clone returns an independent copy.
func (p *SpecificParams) Clone() *SpecificParams {
	cp := NewSpecificParams(p.model)
	cp.HeadRoom = p.HeadRoom
	copy(cp.PhantomPowerings, p.PhantomPowerings)
	copy(cp.InsertSwaps, p.InsertSwaps)
	cp.StandaloneMode = p.StandaloneMode
	cp.AdatEnabled = p.AdatEnabled
	cp.DirectMonitoring = p.DirectMonitoring
	return cp
}

// Table implements cache.ReadableParams.
func (p *SpecificParams) Table() *addrspace.Table {
	return p.table
}

// SetHeadRoom sets the analog headroom switch.
func (p *SpecificParams) SetHeadRoom(on bool) {
	p.HeadRoom = on
}

// SetPhantomPower switches one phantom-power group. Models without
// phantom power refuse before any bus traffic.
func (p *SpecificParams) SetPhantomPower(group int, on bool) error {
	if p.model.PhantomPowering == 0 {
		return fmt.Errorf("%w: model %s has no phantom powering", ErrNotSupported, p.model.Name)
	}
	if group < 0 || group >= p.model.PhantomPowering {
		return fmt.Errorf("%w: phantom group %d of %d", ErrIndexRange, group, p.model.PhantomPowering)
	}
	p.PhantomPowerings[group] = on
	return nil
}

// SetInsertSwap switches one channel's insert jack order.
func (p *SpecificParams) SetInsertSwap(ch int, on bool) error {
	if p.model.InsertSwaps == 0 {
		return fmt.Errorf("%w: model %s has no insert swaps", ErrNotSupported, p.model.Name)
	}
	if ch < 0 || ch >= p.model.InsertSwaps {
		return fmt.Errorf("%w: insert swap %d of %d", ErrIndexRange, ch, p.model.InsertSwaps)
	}
	p.InsertSwaps[ch] = on
	return nil
}

// SetStandaloneMode selects the standalone working mode.
func (p *SpecificParams) SetStandaloneMode(mode StandaloneMode) {
	p.StandaloneMode = mode
}

// SetAdatEnabled switches the optical ADAT bank. Committing this
// change makes the device re-enumerate.
func (p *SpecificParams) SetAdatEnabled(on bool) error {
	if !p.model.HasAdat() {
		return fmt.Errorf("%w: model %s has no ADAT bank", ErrNotSupported, p.model.Name)
	}
	p.AdatEnabled = on
	return nil
}

// SetDirectMonitoring sets the hardware direct-monitoring switch.
func (p *SpecificParams) SetDirectMonitoring(on bool) {
	p.DirectMonitoring = on
}

// Serialize implements cache.WritableParams.
func (p *SpecificParams) Serialize(raw []byte) error {
	if len(raw) != p.table.Total() {
		return fmt.Errorf("proio: specific image is %d bytes, want %d", len(raw), p.table.Total())
	}
	quadlet.LowBit.PutAt(raw, 0, p.HeadRoom)

	pos := 1
	n := len(p.PhantomPowerings)
	for i := range p.PhantomPowerings {
		// Reversed: the last group occupies the first register.
		quadlet.LowBit.PutAt(raw, pos+i, p.PhantomPowerings[n-1-i])
	}
	pos += n
	for i, on := range p.InsertSwaps {
		quadlet.LowBit.PutAt(raw, pos+i, on)
	}
	pos += len(p.InsertSwaps)

	quadlet.LowBit.PutAt(raw, pos, p.StandaloneMode == StandaloneTrack)
	quadlet.LowBit.PutAt(raw, pos+1, !p.AdatEnabled)
	quadlet.LowBit.PutAt(raw, pos+2, p.DirectMonitoring)
	return nil
}

// Deserialize implements cache.ReadableParams. The hardware reports
// arbitrary nonzero words for enabled switches, so decoding is
// lenient.
func (p *SpecificParams) Deserialize(raw []byte) error {
	if len(raw) != p.table.Total() {
		return fmt.Errorf("proio: specific image is %d bytes, want %d", len(raw), p.table.Total())
	}
	p.HeadRoom = quadlet.Nonzero(quadlet.GetAt(raw, 0))

	pos := 1
	n := len(p.PhantomPowerings)
	for i := range p.PhantomPowerings {
		p.PhantomPowerings[n-1-i] = quadlet.Nonzero(quadlet.GetAt(raw, pos+i))
	}
	pos += n
	for i := range p.InsertSwaps {
		p.InsertSwaps[i] = quadlet.Nonzero(quadlet.GetAt(raw, pos+i))
	}
	pos += len(p.InsertSwaps)

	if quadlet.Nonzero(quadlet.GetAt(raw, pos)) {
		p.StandaloneMode = StandaloneTrack
	} else {
		p.StandaloneMode = StandaloneMix
	}
	p.AdatEnabled = !quadlet.Nonzero(quadlet.GetAt(raw, pos+1))
	p.DirectMonitoring = quadlet.Nonzero(quadlet.GetAt(raw, pos+2))
	return nil
}

// Compile-time interface satisfaction check.
var _ cache.WritableParams = (*SpecificParams)(nil)
