package descriptor

import (
	"errors"
	"fmt"
)

// ErrIndexRange reports an index outside a model's declared count.
var ErrIndexRange = errors.New("descriptor: index out of range")

// Model describes one device's capabilities. All counts are fixed per
// hardware model; parameter sets derive their register layout from
// them.
type Model struct {
	// Name identifies the model in the registry and in logs.
	Name string `yaml:"name"`

	// ClockSources is the ordered subset of master sources this model
	// supports. A source's register value is its position here.
	ClockSources []ClockSource `yaml:"clock_sources"`

	// Rates lists the supported sample rates in register order.
	Rates []uint32 `yaml:"rates"`

	// AnalogInputs, SpdifInputs, and AdatInputs are the physical input
	// channel counts. AdatInputs zero means no optical ADAT bank.
	AnalogInputs int `yaml:"analog_inputs"`
	SpdifInputs  int `yaml:"spdif_inputs"`
	AdatInputs   int `yaml:"adat_inputs"`

	// OutputPairs is the number of stereo output pairs.
	OutputPairs int `yaml:"output_pairs"`

	// MixerChannels is the number of mixer input channels.
	MixerChannels int `yaml:"mixer_channels"`

	// PhantomPowering is the number of independently switchable
	// phantom-power groups, zero when the model has none.
	PhantomPowering int `yaml:"phantom_powering"`

	// InsertSwaps is the number of channels whose insert jack order
	// can be swapped.
	InsertSwaps int `yaml:"insert_swaps"`
}

// Validate checks structural consistency.
func (m *Model) Validate() error {
	if m.Name == "" {
		return errors.New("descriptor: model needs a name")
	}
	if len(m.ClockSources) == 0 {
		return fmt.Errorf("descriptor: model %s needs at least one clock source", m.Name)
	}
	seen := make(map[ClockSource]bool, len(m.ClockSources))
	for _, s := range m.ClockSources {
		if s >= numClockSources {
			return fmt.Errorf("descriptor: model %s lists invalid clock source %d", m.Name, uint8(s))
		}
		if seen[s] {
			return fmt.Errorf("descriptor: model %s lists clock source %s twice", m.Name, s)
		}
		seen[s] = true
	}
	if len(m.Rates) == 0 {
		return fmt.Errorf("descriptor: model %s needs at least one rate", m.Name)
	}
	for _, n := range []struct {
		label string
		value int
	}{
		{"analog_inputs", m.AnalogInputs},
		{"spdif_inputs", m.SpdifInputs},
		{"adat_inputs", m.AdatInputs},
		{"phantom_powering", m.PhantomPowering},
		{"insert_swaps", m.InsertSwaps},
	} {
		if n.value < 0 {
			return fmt.Errorf("descriptor: model %s has negative %s", m.Name, n.label)
		}
	}
	if m.OutputPairs <= 0 {
		return fmt.Errorf("descriptor: model %s needs at least one output pair", m.Name)
	}
	if m.MixerChannels < 2 {
		return fmt.Errorf("descriptor: model %s needs at least two mixer channels", m.Name)
	}
	return nil
}

// HasAdat reports whether the model carries an optical ADAT bank.
func (m *Model) HasAdat() bool {
	return m.AdatInputs > 0
}

// HasPhantom reports whether any phantom-power group exists.
func (m *Model) HasPhantom() bool {
	return m.PhantomPowering > 0
}

// SourceAt returns the clock source at subset position idx.
func (m *Model) SourceAt(idx int) (ClockSource, error) {
	if idx < 0 || idx >= len(m.ClockSources) {
		return 0, fmt.Errorf("%w: clock source %d of %d", ErrIndexRange, idx, len(m.ClockSources))
	}
	return m.ClockSources[idx], nil
}

// SourceCodeAt returns the wire code for subset position idx.
func (m *Model) SourceCodeAt(idx int) (uint8, error) {
	s, err := m.SourceAt(idx)
	if err != nil {
		return 0, err
	}
	return s.Code(), nil
}

// SourceIndexByCode maps a hardware wire code to a subset position. A
// code outside the subset yields an UnsupportedSourceError, including
// codes that are valid for other models.
func (m *Model) SourceIndexByCode(code uint8) (int, error) {
	for i, s := range m.ClockSources {
		if s.Code() == code {
			return i, nil
		}
	}
	return 0, &UnsupportedSourceError{Model: m.Name, Code: code}
}

// RateAt returns the sample rate at register position idx.
func (m *Model) RateAt(idx int) (uint32, error) {
	if idx < 0 || idx >= len(m.Rates) {
		return 0, fmt.Errorf("%w: rate %d of %d", ErrIndexRange, idx, len(m.Rates))
	}
	return m.Rates[idx], nil
}

// RateIndex maps a sample rate to its register position.
func (m *Model) RateIndex(rate uint32) (int, error) {
	for i, r := range m.Rates {
		if r == rate {
			return i, nil
		}
	}
	return 0, fmt.Errorf("descriptor: model %s does not support rate %d", m.Name, rate)
}
