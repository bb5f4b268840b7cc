package descriptor

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClockSourceCodes(t *testing.T) {
	assert.Equal(t, uint8(0x00), ClockInternal.Code())
	assert.Equal(t, uint8(0x02), ClockSpdif.Code())
	assert.Equal(t, uint8(0x03), ClockAdatA.Code())
	assert.Equal(t, uint8(0x04), ClockAdatB.Code())
	assert.Equal(t, uint8(0x05), ClockWordClock.Code())
}

func TestParseClockSource(t *testing.T) {
	s, err := ParseClockSource("word-clock")
	require.NoError(t, err)
	assert.Equal(t, ClockWordClock, s)

	_, err = ParseClockSource("bogus")
	assert.Error(t, err)
}

func TestSourceSubsetMapping(t *testing.T) {
	m, err := Lookup("pro26")
	require.NoError(t, err)

	// Position in the subset, not the master enum, is the register value.
	idx, err := m.SourceIndexByCode(0x05)
	require.NoError(t, err)
	assert.Equal(t, 4, idx)

	code, err := m.SourceCodeAt(1)
	require.NoError(t, err)
	assert.Equal(t, uint8(0x02), code)
}

func TestSourceIndexByCodeUnsupported(t *testing.T) {
	m, err := Lookup("pro10")
	require.NoError(t, err)

	// ADAT-A is a valid master source but outside pro10's subset.
	_, err = m.SourceIndexByCode(0x03)
	require.Error(t, err)

	var unsupported *UnsupportedSourceError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "pro10", unsupported.Model)
	assert.Equal(t, uint8(0x03), unsupported.Code)

	// Code 0x01 is unused by the hardware family entirely.
	_, err = m.SourceIndexByCode(0x01)
	assert.Error(t, err)
}

func TestSourceAtRange(t *testing.T) {
	m, err := Lookup("pro10")
	require.NoError(t, err)

	_, err = m.SourceAt(2)
	assert.ErrorIs(t, err, ErrIndexRange)
	_, err = m.SourceAt(-1)
	assert.ErrorIs(t, err, ErrIndexRange)
}

func TestRateMapping(t *testing.T) {
	m, err := Lookup("pro26")
	require.NoError(t, err)

	rate, err := m.RateAt(1)
	require.NoError(t, err)
	assert.Equal(t, uint32(48000), rate)

	idx, err := m.RateIndex(192000)
	require.NoError(t, err)
	assert.Equal(t, 5, idx)

	_, err = m.RateIndex(11025)
	assert.Error(t, err)
	_, err = m.RateAt(6)
	assert.ErrorIs(t, err, ErrIndexRange)
}

func TestBuiltinCapabilities(t *testing.T) {
	pro26, err := Lookup("pro26")
	require.NoError(t, err)
	assert.True(t, pro26.HasAdat())
	assert.True(t, pro26.HasPhantom())
	assert.Equal(t, 2, pro26.PhantomPowering)

	pro10, err := Lookup("pro10")
	require.NoError(t, err)
	assert.False(t, pro10.HasAdat())
	assert.False(t, pro10.HasPhantom())
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("nonexistent")
	assert.ErrorIs(t, err, ErrUnknownModel)
}

func TestNamesIncludesBuiltins(t *testing.T) {
	names := Names()
	assert.Contains(t, names, "pro26")
	assert.Contains(t, names, "pro10")
}

func TestValidateRejectsBadModels(t *testing.T) {
	valid := Model{
		Name:          "v",
		ClockSources:  []ClockSource{ClockInternal},
		Rates:         []uint32{44100},
		OutputPairs:   1,
		MixerChannels: 2,
	}
	require.NoError(t, valid.Validate())

	cases := map[string]func(m *Model){
		"empty name":       func(m *Model) { m.Name = "" },
		"no sources":       func(m *Model) { m.ClockSources = nil },
		"duplicate source": func(m *Model) { m.ClockSources = []ClockSource{ClockInternal, ClockInternal} },
		"invalid source":   func(m *Model) { m.ClockSources = []ClockSource{ClockSource(99)} },
		"no rates":         func(m *Model) { m.Rates = nil },
		"no outputs":       func(m *Model) { m.OutputPairs = 0 },
		"negative phantom": func(m *Model) { m.PhantomPowering = -1 },
		"one mixer chan":   func(m *Model) { m.MixerChannels = 1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			m := valid
			m.ClockSources = append([]ClockSource(nil), valid.ClockSources...)
			m.Rates = append([]uint32(nil), valid.Rates...)
			mutate(&m)
			assert.Error(t, m.Validate())
		})
	}
}

func TestRegisterRejectsInvalid(t *testing.T) {
	assert.Error(t, Register(&Model{Name: "broken"}))
	_, err := Lookup("broken")
	assert.Error(t, err)
}

func TestLoadModelsYAML(t *testing.T) {
	doc := `
- name: test-io14
  clock_sources: [internal, spdif, adat-a]
  rates: [44100, 48000, 88200, 96000]
  analog_inputs: 4
  spdif_inputs: 2
  adat_inputs: 8
  output_pairs: 2
  mixer_channels: 10
  phantom_powering: 2
  insert_swaps: 2
`
	n, err := LoadModels(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	m, err := Lookup("test-io14")
	require.NoError(t, err)
	assert.Equal(t, []ClockSource{ClockInternal, ClockSpdif, ClockAdatA}, m.ClockSources)
	assert.Equal(t, 8, m.AdatInputs)
	assert.True(t, m.HasAdat())
}

func TestLoadModelsInvalidYAML(t *testing.T) {
	_, err := LoadModels(strings.NewReader("- name: bad\n  clock_sources: [nonsense]\n"))
	assert.Error(t, err)

	_, err = LoadModels(strings.NewReader("not a list"))
	assert.Error(t, err)
}

func TestRegisterCopiesModel(t *testing.T) {
	m := Model{
		Name:          "copy-check",
		ClockSources:  []ClockSource{ClockInternal},
		Rates:         []uint32{44100},
		OutputPairs:   1,
		MixerChannels: 2,
	}
	require.NoError(t, Register(&m))

	m.ClockSources[0] = ClockWordClock
	got, err := Lookup("copy-check")
	require.NoError(t, err)
	assert.Equal(t, ClockInternal, got.ClockSources[0])
}
