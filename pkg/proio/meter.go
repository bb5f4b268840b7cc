package proio

import (
	"fmt"

	"github.com/sndfw-protocol/sndfw-go/pkg/addrspace"
	"github.com/sndfw-protocol/sndfw-go/pkg/cache"
	"github.com/sndfw-protocol/sndfw-go/pkg/descriptor"
	"github.com/sndfw-protocol/sndfw-go/pkg/quadlet"
)

// Metering registers.
const (
	monitorKnobOffset = 0x158
	dimLedOffset      = 0x15c
	muteLedOffset     = 0x160
)

// MeterState is the read-only hardware state: front-panel knob, LED
// states, and the clock source the device actually locked to, which
// can differ from the configured one while an external clock is
// absent. It deliberately has no serializer; these registers cannot
// be written.
type MeterState struct {
	MonitorKnob uint8
	DimLed      bool
	MuteLed     bool

	// EffectiveSourceIndex is the position of the locked clock source
	// in the model's subset.
	EffectiveSourceIndex int

	model     *descriptor.Model
	table     *addrspace.Table
	effective quadlet.Field
}

// NewMeterState sizes the set for m.
func NewMeterState(m *descriptor.Model) *MeterState {
	return &MeterState{
		model: m,
		table: addrspace.MustNew(
			addrspace.Quadlets(monitorKnobOffset, 1),
			addrspace.Quadlets(dimLedOffset, 1),
			addrspace.Quadlets(muteLedOffset, 1),
			addrspace.Quadlets(clockSourceOffset, 1),
		),
		effective: sourceField(m, "effective-source", clockSourceEffectiveMask, 8),
	}
}

// Table implements cache.ReadableParams.
func (p *MeterState) Table() *addrspace.Table {
	return p.table
}

// EffectiveSource returns the clock source the hardware locked to.
func (p *MeterState) EffectiveSource() (descriptor.ClockSource, error) {
	return p.model.SourceAt(p.EffectiveSourceIndex)
}

// Deserialize implements cache.ReadableParams.
func (p *MeterState) Deserialize(raw []byte) error {
	if len(raw) != p.table.Total() {
		return fmt.Errorf("proio: meter image is %d bytes, want %d", len(raw), p.table.Total())
	}
	p.MonitorKnob = uint8(quadlet.GetAt(raw, 0) & 0xff)
	p.DimLed = quadlet.Nonzero(quadlet.GetAt(raw, 1))
	p.MuteLed = quadlet.Nonzero(quadlet.GetAt(raw, 2))

	word := quadlet.GetAt(raw, 3)
	idx, err := p.effective.Decode(word)
	if err != nil {
		return &descriptor.UnsupportedSourceError{Model: p.model.Name, Code: uint8((word & clockSourceEffectiveMask) >> 8)}
	}
	p.EffectiveSourceIndex = idx
	return nil
}

// Compile-time interface satisfaction check.
var _ cache.ReadableParams = (*MeterState)(nil)
