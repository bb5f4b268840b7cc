package proio

import (
	"fmt"

	"github.com/sndfw-protocol/sndfw-go/pkg/addrspace"
	"github.com/sndfw-protocol/sndfw-go/pkg/cache"
	"github.com/sndfw-protocol/sndfw-go/pkg/descriptor"
	"github.com/sndfw-protocol/sndfw-go/pkg/quadlet"
)

// mixerOffset is the register of the first mixer-level quadlet.
const mixerOffset = 0x0d0

// MixerParams holds the stream and monitor send levels of the output
// mixer. The register block interleaves three source groups; the
// position functions below encode the interleave. The first two
// entries of StreamSourcePair0 and StreamSources share register
// slots, so whichever is serialized later wins; StreamSources is the
// authoritative one.
type MixerParams struct {
	MonitorSources    []int16
	StreamSourcePair0 []int16
	StreamSources     []int16

	model *descriptor.Model
	table *addrspace.Table
}

// NewMixerParams sizes the set for m.
func NewMixerParams(m *descriptor.Model) *MixerParams {
	n := m.MixerChannels
	return &MixerParams{
		MonitorSources:    make([]int16, n),
		StreamSourcePair0: make([]int16, n),
		StreamSources:     make([]int16, n),
		model:             m,
		table:             addrspace.MustNew(addrspace.Quadlets(mixerOffset, mixerSlots(n))),
	}
}

// mixerSlots is the register block size for n mixer channels: the
// last monitor-source position plus one.
func mixerSlots(n int) int {
	return monitorSourcePos(n-1) + 1
}

// monitorSourcePos maps a monitor-source channel to its slot.
func monitorSourcePos(i int) int {
	if i < 2 {
		return 1 + i*2
	}
	return 6 + (i-2)*3
}

// streamSourcePair0Pos maps a pair-0 stream-source channel to its slot.
func streamSourcePair0Pos(i int) int {
	if i < 2 {
		return i * 2
	}
	return 4 + (i-2)*3
}

// streamSourcePos maps a stream-source channel to its slot.
func streamSourcePos(i int) int {
	if i < 2 {
		return i * 2
	}
	return 5 + (i-2)*3
}

// Clone returns an independent copy.
func (p *MixerParams) Clone() *MixerParams {
	cp := NewMixerParams(p.model)
	copy(cp.MonitorSources, p.MonitorSources)
	copy(cp.StreamSourcePair0, p.StreamSourcePair0)
	copy(cp.StreamSources, p.StreamSources)
	return cp
}

// Table implements cache.ReadableParams.
func (p *MixerParams) Table() *addrspace.Table {
	return p.table
}

func (p *MixerParams) checkChannel(ch int) error {
	if ch < 0 || ch >= p.model.MixerChannels {
		return fmt.Errorf("%w: mixer channel %d of %d", ErrIndexRange, ch, p.model.MixerChannels)
	}
	return nil
}

// SetMonitorSource sets the monitor send level of one channel.
func (p *MixerParams) SetMonitorSource(ch int, level int16) error {
	if err := p.checkChannel(ch); err != nil {
		return err
	}
	p.MonitorSources[ch] = level
	return nil
}

// SetStreamSourcePair0 sets the pair-0 stream send level of one
// channel.
func (p *MixerParams) SetStreamSourcePair0(ch int, level int16) error {
	if err := p.checkChannel(ch); err != nil {
		return err
	}
	p.StreamSourcePair0[ch] = level
	return nil
}

// SetStreamSource sets the stream send level of one channel.
func (p *MixerParams) SetStreamSource(ch int, level int16) error {
	if err := p.checkChannel(ch); err != nil {
		return err
	}
	p.StreamSources[ch] = level
	return nil
}

// Serialize implements cache.WritableParams. Groups are rendered in
// fixed order so the shared slots resolve deterministically.
func (p *MixerParams) Serialize(raw []byte) error {
	if len(raw) != p.table.Total() {
		return fmt.Errorf("proio: mixer image is %d bytes, want %d", len(raw), p.table.Total())
	}
	for i, level := range p.MonitorSources {
		quadlet.PutInt16At(raw, monitorSourcePos(i), level)
	}
	for i, level := range p.StreamSourcePair0 {
		quadlet.PutInt16At(raw, streamSourcePair0Pos(i), level)
	}
	for i, level := range p.StreamSources {
		quadlet.PutInt16At(raw, streamSourcePos(i), level)
	}
	return nil
}

// Deserialize implements cache.ReadableParams.
func (p *MixerParams) Deserialize(raw []byte) error {
	if len(raw) != p.table.Total() {
		return fmt.Errorf("proio: mixer image is %d bytes, want %d", len(raw), p.table.Total())
	}
	for i := range p.MonitorSources {
		p.MonitorSources[i] = quadlet.GetInt16At(raw, monitorSourcePos(i))
	}
	for i := range p.StreamSourcePair0 {
		p.StreamSourcePair0[i] = quadlet.GetInt16At(raw, streamSourcePair0Pos(i))
	}
	for i := range p.StreamSources {
		p.StreamSources[i] = quadlet.GetInt16At(raw, streamSourcePos(i))
	}
	return nil
}

// Compile-time interface satisfaction check.
var _ cache.WritableParams = (*MixerParams)(nil)
