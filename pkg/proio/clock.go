package proio

import (
	"fmt"
	"time"

	"github.com/sndfw-protocol/sndfw-go/pkg/addrspace"
	"github.com/sndfw-protocol/sndfw-go/pkg/cache"
	"github.com/sndfw-protocol/sndfw-go/pkg/descriptor"
	"github.com/sndfw-protocol/sndfw-go/pkg/quadlet"
	"github.com/sndfw-protocol/sndfw-go/pkg/transport"
)

// Clock registers. The rate register stores the rate index plus one;
// zero means the device has not settled. The source register carries
// the configured source code in its low byte and the effective source
// code in the byte above, which MeterState reports.
const (
	clockRateOffset   = 0x150
	clockSourceOffset = 0x174

	clockSourceConfMask      = 0x000000ff
	clockSourceEffectiveMask = 0x0000ff00
)

// ClockConfig is the configured media clock: a sample-rate index and
// a clock-source index, both positions in the model's declared lists.
type ClockConfig struct {
	RateIndex   int
	SourceIndex int

	model *descriptor.Model
	table *addrspace.Table
	conf  quadlet.Field

	// sourceWord is the last word read from the source register. The
	// register multiplexes the writable configured byte with the
	// read-only effective byte, so a rewrite must carry the other bits
	// back unchanged or a rate-only diff would dirty this quadlet.
	sourceWord uint32
}

// sourceField builds the masked wire-code field for m's clock-source
// subset; the logical value is the position in the subset.
func sourceField(m *descriptor.Model, name string, mask uint32, shift uint) quadlet.Field {
	codes := make([]uint8, len(m.ClockSources))
	for i, s := range m.ClockSources {
		codes[i] = s.Code()
	}
	return quadlet.Field{Name: name, Mask: mask, Shift: shift, Codes: codes}
}

// NewClockConfig sizes the set for m.
func NewClockConfig(m *descriptor.Model) *ClockConfig {
	return &ClockConfig{
		model: m,
		table: addrspace.MustNew(
			addrspace.Quadlets(clockRateOffset, 1),
			addrspace.Quadlets(clockSourceOffset, 1),
		),
		conf: sourceField(m, "clock-source", clockSourceConfMask, 0),
	}
}

// Clone returns an independent copy.
func (p *ClockConfig) Clone() *ClockConfig {
	cp := NewClockConfig(p.model)
	cp.RateIndex = p.RateIndex
	cp.SourceIndex = p.SourceIndex
	cp.sourceWord = p.sourceWord
	return cp
}

// Table implements cache.ReadableParams.
func (p *ClockConfig) Table() *addrspace.Table {
	return p.table
}

// SetRate selects a sample rate by index into the model's rate list.
func (p *ClockConfig) SetRate(idx int) error {
	if _, err := p.model.RateAt(idx); err != nil {
		return err
	}
	p.RateIndex = idx
	return nil
}

// SetSource selects a clock source by index into the model's subset.
func (p *ClockConfig) SetSource(idx int) error {
	if _, err := p.model.SourceAt(idx); err != nil {
		return err
	}
	p.SourceIndex = idx
	return nil
}

// Rate returns the configured sample rate.
func (p *ClockConfig) Rate() (uint32, error) {
	return p.model.RateAt(p.RateIndex)
}

// Source returns the configured clock source.
func (p *ClockConfig) Source() (descriptor.ClockSource, error) {
	return p.model.SourceAt(p.SourceIndex)
}

// Serialize implements cache.WritableParams.
func (p *ClockConfig) Serialize(raw []byte) error {
	if len(raw) != p.table.Total() {
		return fmt.Errorf("proio: clock image is %d bytes, want %d", len(raw), p.table.Total())
	}
	if _, err := p.model.RateAt(p.RateIndex); err != nil {
		return err
	}
	word := p.sourceWord
	if err := p.conf.Encode(&word, p.SourceIndex); err != nil {
		return err
	}
	quadlet.PutAt(raw, 0, uint32(p.RateIndex)+1)
	quadlet.PutAt(raw, 1, word)
	return nil
}

// Deserialize implements cache.ReadableParams. A rate word of zero or
// beyond the model's list, or a source code outside the model's
// subset, is a decode error carrying the raw value.
func (p *ClockConfig) Deserialize(raw []byte) error {
	if len(raw) != p.table.Total() {
		return fmt.Errorf("proio: clock image is %d bytes, want %d", len(raw), p.table.Total())
	}

	rate := quadlet.GetAt(raw, 0)
	if rate == 0 || rate > uint32(len(p.model.Rates)) {
		return &quadlet.DecodeError{Field: "clock-rate", Raw: rate}
	}

	word := quadlet.GetAt(raw, 1)
	idx, err := p.conf.Decode(word)
	if err != nil {
		return &descriptor.UnsupportedSourceError{Model: p.model.Name, Code: uint8(word & clockSourceConfMask)}
	}

	p.RateIndex = int(rate) - 1
	p.SourceIndex = idx
	p.sourceWord = word
	return nil
}

// WriteConfig commits next through c. Changing the clock makes the
// device drop off the bus and re-enumerate, so a failed write here is
// the anticipated outcome: any error comes back wrapped as an
// expected disconnect for the caller to recognize.
func WriteConfig(bus transport.Bus, c *cache.Cache, committed, next *ClockConfig, timeout time.Duration) error {
	if err := c.UpdatePartially(bus, committed, next, timeout); err != nil {
		return transport.ExpectDisconnect(err)
	}
	return nil
}

// Compile-time interface satisfaction check.
var _ cache.WritableParams = (*ClockConfig)(nil)
