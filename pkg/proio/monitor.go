package proio

import (
	"fmt"

	"github.com/sndfw-protocol/sndfw-go/pkg/addrspace"
	"github.com/sndfw-protocol/sndfw-go/pkg/cache"
	"github.com/sndfw-protocol/sndfw-go/pkg/descriptor"
	"github.com/sndfw-protocol/sndfw-go/pkg/quadlet"
)

// monitorOffset is the register of the first monitor-gain quadlet.
const monitorOffset = 0x000

// Gain range for monitor and mixer levels.
const (
	GainMin  int16 = 0
	GainMax  int16 = 0x7fff
	GainStep int16 = 0x100
)

// monitorOutputs is the number of monitor output channels every model
// in the family has.
const monitorOutputs = 2

// MonitorParams holds the input-to-monitor gain matrix. Gains are
// indexed [output][input]. AdatInputs is empty on models without an
// optical ADAT bank. On the wire the matrix is input-major: the two
// output sends of one input occupy neighbouring quadlets.
type MonitorParams struct {
	AnalogInputs [monitorOutputs][]int16
	SpdifInputs  [monitorOutputs][]int16
	AdatInputs   [monitorOutputs][]int16

	model *descriptor.Model
	table *addrspace.Table
}

// NewMonitorParams sizes the set for m.
func NewMonitorParams(m *descriptor.Model) *MonitorParams {
	p := &MonitorParams{model: m}
	for out := 0; out < monitorOutputs; out++ {
		p.AnalogInputs[out] = make([]int16, m.AnalogInputs)
		p.SpdifInputs[out] = make([]int16, m.SpdifInputs)
		if m.HasAdat() {
			p.AdatInputs[out] = make([]int16, m.AdatInputs)
		}
	}
	quads := monitorOutputs * (m.AnalogInputs + m.SpdifInputs + m.AdatInputs)
	p.table = addrspace.MustNew(addrspace.Quadlets(monitorOffset, quads))
	return p
}

// Clone returns an independent copy.
func (p *MonitorParams) Clone() *MonitorParams {
	cp := NewMonitorParams(p.model)
	for out := 0; out < monitorOutputs; out++ {
		copy(cp.AnalogInputs[out], p.AnalogInputs[out])
		copy(cp.SpdifInputs[out], p.SpdifInputs[out])
		copy(cp.AdatInputs[out], p.AdatInputs[out])
	}
	return cp
}

// Table implements cache.ReadableParams.
func (p *MonitorParams) Table() *addrspace.Table {
	return p.table
}

func (p *MonitorParams) checkOut(out int) error {
	if out < 0 || out >= monitorOutputs {
		return fmt.Errorf("%w: monitor output %d of %d", ErrIndexRange, out, monitorOutputs)
	}
	return nil
}

// SetAnalogGain sets the send level from one analog input to one
// monitor output.
func (p *MonitorParams) SetAnalogGain(out, in int, gain int16) error {
	if err := p.checkOut(out); err != nil {
		return err
	}
	if in < 0 || in >= p.model.AnalogInputs {
		return fmt.Errorf("%w: analog input %d of %d", ErrIndexRange, in, p.model.AnalogInputs)
	}
	p.AnalogInputs[out][in] = gain
	return nil
}

// SetSpdifGain sets the send level from one S/PDIF input to one
// monitor output.
func (p *MonitorParams) SetSpdifGain(out, in int, gain int16) error {
	if err := p.checkOut(out); err != nil {
		return err
	}
	if in < 0 || in >= p.model.SpdifInputs {
		return fmt.Errorf("%w: spdif input %d of %d", ErrIndexRange, in, p.model.SpdifInputs)
	}
	p.SpdifInputs[out][in] = gain
	return nil
}

// SetAdatGain sets the send level from one ADAT input to one monitor
// output. Models without an ADAT bank refuse it before any bus
// traffic.
func (p *MonitorParams) SetAdatGain(out, in int, gain int16) error {
	if !p.model.HasAdat() {
		return fmt.Errorf("%w: model %s has no ADAT inputs", ErrNotSupported, p.model.Name)
	}
	if err := p.checkOut(out); err != nil {
		return err
	}
	if in < 0 || in >= p.model.AdatInputs {
		return fmt.Errorf("%w: adat input %d of %d", ErrIndexRange, in, p.model.AdatInputs)
	}
	p.AdatInputs[out][in] = gain
	return nil
}

// Serialize implements cache.WritableParams.
func (p *MonitorParams) Serialize(raw []byte) error {
	if len(raw) != p.table.Total() {
		return fmt.Errorf("proio: monitor image is %d bytes, want %d", len(raw), p.table.Total())
	}
	base := 0
	for _, bank := range []*[monitorOutputs][]int16{&p.AnalogInputs, &p.SpdifInputs, &p.AdatInputs} {
		for out := 0; out < monitorOutputs; out++ {
			for in, gain := range bank[out] {
				quadlet.PutInt16At(raw, base+in*monitorOutputs+out, gain)
			}
		}
		base += monitorOutputs * len(bank[0])
	}
	return nil
}

// Deserialize implements cache.ReadableParams.
func (p *MonitorParams) Deserialize(raw []byte) error {
	if len(raw) != p.table.Total() {
		return fmt.Errorf("proio: monitor image is %d bytes, want %d", len(raw), p.table.Total())
	}
	base := 0
	for _, bank := range []*[monitorOutputs][]int16{&p.AnalogInputs, &p.SpdifInputs, &p.AdatInputs} {
		for out := 0; out < monitorOutputs; out++ {
			for in := range bank[out] {
				bank[out][in] = quadlet.GetInt16At(raw, base+in*monitorOutputs+out)
			}
		}
		base += monitorOutputs * len(bank[0])
	}
	return nil
}

// Compile-time interface satisfaction check.
var _ cache.WritableParams = (*MonitorParams)(nil)
