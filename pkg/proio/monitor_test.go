package proio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sndfw-protocol/sndfw-go/pkg/quadlet"
)

func TestMonitorParamsTableSize(t *testing.T) {
	withAdat := NewMonitorParams(pro26(t))
	ranges := withAdat.Table().Ranges()
	require.Len(t, ranges, 1)
	assert.Equal(t, uint32(0x000), ranges[0].Offset)
	// 2 outputs x (8 analog + 2 spdif + 16 adat) quadlets.
	assert.Equal(t, 52*quadlet.Size, withAdat.Table().Total())

	withoutAdat := NewMonitorParams(pro10(t))
	assert.Equal(t, 20*quadlet.Size, withoutAdat.Table().Total())
	assert.Empty(t, withoutAdat.AdatInputs[0])
}

func TestMonitorParamsWireInterleave(t *testing.T) {
	p := NewMonitorParams(pro26(t))
	require.NoError(t, p.SetAnalogGain(0, 0, 0x7fff))
	require.NoError(t, p.SetAnalogGain(1, 1, 0x0100))
	require.NoError(t, p.SetSpdifGain(1, 0, -1))
	require.NoError(t, p.SetAdatGain(0, 15, 0x0200))

	raw := make([]byte, p.Table().Total())
	require.NoError(t, p.Serialize(raw))

	// Input-major: input i's sends to both outputs sit side by side.
	assert.Equal(t, int16(0x7fff), quadlet.GetInt16At(raw, 0), "analog 0 to output 0 at 0x00")
	assert.Equal(t, int16(0x0100), quadlet.GetInt16At(raw, 3), "analog 1 to output 1 at 0x0c")
	assert.Equal(t, int16(-1), quadlet.GetInt16At(raw, 17), "spdif 0 to output 1 at 0x44")
	assert.Equal(t, int16(0x0200), quadlet.GetInt16At(raw, 50), "adat 15 to output 0 at 0xc8")
}

func TestMonitorParamsRoundTrip(t *testing.T) {
	p := NewMonitorParams(pro26(t))
	for out := 0; out < 2; out++ {
		for in := 0; in < 8; in++ {
			require.NoError(t, p.SetAnalogGain(out, in, int16(out*1000+in)))
		}
	}
	require.NoError(t, p.SetSpdifGain(0, 1, GainMax))
	require.NoError(t, p.SetAdatGain(1, 7, GainStep))

	raw := make([]byte, p.Table().Total())
	require.NoError(t, p.Serialize(raw))

	got := NewMonitorParams(pro26(t))
	require.NoError(t, got.Deserialize(raw))
	assert.Equal(t, p.AnalogInputs, got.AnalogInputs)
	assert.Equal(t, p.SpdifInputs, got.SpdifInputs)
	assert.Equal(t, p.AdatInputs, got.AdatInputs)
}

func TestMonitorParamsAdatGating(t *testing.T) {
	p := NewMonitorParams(pro10(t))
	assert.ErrorIs(t, p.SetAdatGain(0, 0, GainMax), ErrNotSupported)
}

func TestMonitorParamsIndexChecks(t *testing.T) {
	p := NewMonitorParams(pro26(t))
	assert.ErrorIs(t, p.SetAnalogGain(2, 0, 0), ErrIndexRange)
	assert.ErrorIs(t, p.SetAnalogGain(0, 8, 0), ErrIndexRange)
	assert.ErrorIs(t, p.SetSpdifGain(0, 2, 0), ErrIndexRange)
	assert.ErrorIs(t, p.SetAdatGain(0, 16, 0), ErrIndexRange)
}

func TestMonitorParamsClone(t *testing.T) {
	p := NewMonitorParams(pro26(t))
	require.NoError(t, p.SetAnalogGain(0, 0, 42))

	cp := p.Clone()
	require.NoError(t, cp.SetAnalogGain(0, 0, 7))
	assert.Equal(t, int16(42), p.AnalogInputs[0][0])
	assert.Equal(t, int16(7), cp.AnalogInputs[0][0])
}
