package proio

import (
	"fmt"

	"github.com/sndfw-protocol/sndfw-go/pkg/addrspace"
	"github.com/sndfw-protocol/sndfw-go/pkg/cache"
	"github.com/sndfw-protocol/sndfw-go/pkg/descriptor"
	"github.com/sndfw-protocol/sndfw-go/pkg/quadlet"
)

// outputOffset is the register of the first output-pair quadlet.
const outputOffset = 0x140

// Flag bits multiplexed with the volume byte in each output quadlet.
const (
	outPadFlag   = 0x10000000
	outHwCtlFlag = 0x08000000
	outMuteFlag  = 0x02000000
	outDimFlag   = 0x01000000
	outVolMask   = 0x000000ff
)

// VolumeMax is the loudest output volume. The register stores the
// volume inverted: 0x00 on the wire is full level.
const VolumeMax uint8 = 0xff

// OutputParams controls the analog output pairs. Each pair packs its
// volume and four switches into one quadlet.
type OutputParams struct {
	Mutes  []bool
	Vols   []uint8
	HwCtls []bool
	Dims   []bool
	Pads   []bool

	model *descriptor.Model
	table *addrspace.Table
}

// NewOutputParams sizes the set for m.
func NewOutputParams(m *descriptor.Model) *OutputParams {
	n := m.OutputPairs
	return &OutputParams{
		Mutes:  make([]bool, n),
		Vols:   make([]uint8, n),
		HwCtls: make([]bool, n),
		Dims:   make([]bool, n),
		Pads:   make([]bool, n),
		model:  m,
		table:  addrspace.MustNew(addrspace.Quadlets(outputOffset, n)),
	}
}

// Clone returns an independent copy.
func (p *OutputParams) Clone() *OutputParams {
	cp := NewOutputParams(p.model)
	copy(cp.Mutes, p.Mutes)
	copy(cp.Vols, p.Vols)
	copy(cp.HwCtls, p.HwCtls)
	copy(cp.Dims, p.Dims)
	copy(cp.Pads, p.Pads)
	return cp
}

// Table implements cache.ReadableParams.
func (p *OutputParams) Table() *addrspace.Table {
	return p.table
}

func (p *OutputParams) checkPair(pair int) error {
	if pair < 0 || pair >= p.model.OutputPairs {
		return fmt.Errorf("%w: output pair %d of %d", ErrIndexRange, pair, p.model.OutputPairs)
	}
	return nil
}

// SetVolume sets the volume of one output pair.
func (p *OutputParams) SetVolume(pair int, vol uint8) error {
	if err := p.checkPair(pair); err != nil {
		return err
	}
	p.Vols[pair] = vol
	return nil
}

// SetMute sets the mute switch of one output pair.
func (p *OutputParams) SetMute(pair int, on bool) error {
	if err := p.checkPair(pair); err != nil {
		return err
	}
	p.Mutes[pair] = on
	return nil
}

// SetHwCtl hands the pair's level over to the front-panel control.
func (p *OutputParams) SetHwCtl(pair int, on bool) error {
	if err := p.checkPair(pair); err != nil {
		return err
	}
	p.HwCtls[pair] = on
	return nil
}

// SetDim sets the dim switch of one output pair.
func (p *OutputParams) SetDim(pair int, on bool) error {
	if err := p.checkPair(pair); err != nil {
		return err
	}
	p.Dims[pair] = on
	return nil
}

// SetPad sets the output pad of one output pair.
func (p *OutputParams) SetPad(pair int, on bool) error {
	if err := p.checkPair(pair); err != nil {
		return err
	}
	p.Pads[pair] = on
	return nil
}

// Serialize implements cache.WritableParams.
func (p *OutputParams) Serialize(raw []byte) error {
	if len(raw) != p.table.Total() {
		return fmt.Errorf("proio: output image is %d bytes, want %d", len(raw), p.table.Total())
	}
	for i := range p.Vols {
		var q uint32
		if p.Pads[i] {
			q |= outPadFlag
		}
		if p.HwCtls[i] {
			q |= outHwCtlFlag
		}
		if p.Mutes[i] {
			q |= outMuteFlag
		}
		if p.Dims[i] {
			q |= outDimFlag
		}
		q |= uint32(VolumeMax-p.Vols[i]) & outVolMask
		quadlet.PutAt(raw, i, q)
	}
	return nil
}

// Deserialize implements cache.ReadableParams.
func (p *OutputParams) Deserialize(raw []byte) error {
	if len(raw) != p.table.Total() {
		return fmt.Errorf("proio: output image is %d bytes, want %d", len(raw), p.table.Total())
	}
	for i := range p.Vols {
		q := quadlet.GetAt(raw, i)
		p.Pads[i] = q&outPadFlag != 0
		p.HwCtls[i] = q&outHwCtlFlag != 0
		p.Mutes[i] = q&outMuteFlag != 0
		p.Dims[i] = q&outDimFlag != 0
		p.Vols[i] = VolumeMax - uint8(q&outVolMask)
	}
	return nil
}

// Compile-time interface satisfaction check.
var _ cache.WritableParams = (*OutputParams)(nil)
