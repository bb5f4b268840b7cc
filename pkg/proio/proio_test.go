package proio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sndfw-protocol/sndfw-go/pkg/cache"
	"github.com/sndfw-protocol/sndfw-go/pkg/descriptor"
	"github.com/sndfw-protocol/sndfw-go/pkg/transport"
)

// fourPhantom is a model whose four phantom-power groups each occupy
// their own register, 0x180 through 0x18c in reversed group order.
func fourPhantom(t *testing.T) *descriptor.Model {
	t.Helper()
	m := &descriptor.Model{
		Name:            "quad-phantom",
		ClockSources:    []descriptor.ClockSource{descriptor.ClockInternal, descriptor.ClockSpdif},
		Rates:           []uint32{44100, 48000, 88200, 96000},
		AnalogInputs:    8,
		SpdifInputs:     2,
		OutputPairs:     4,
		MixerChannels:   10,
		PhantomPowering: 4,
		InsertSwaps:     2,
	}
	require.NoError(t, m.Validate())
	return m
}

func TestPhantomToggleWritesSingleQuadlet(t *testing.T) {
	m := fourPhantom(t)
	dev := transport.NewMemDevice()

	committed := NewSpecificParams(m)
	c := cache.New(committed.Table(), nil)
	require.NoError(t, c.ReadWholly(dev, committed, testTimeout))
	dev.ResetJournal()

	next := committed.Clone()
	require.NoError(t, next.SetPhantomPower(1, true))
	require.NoError(t, c.UpdatePartially(dev, committed, next, testTimeout))

	writes := dev.Writes()
	require.Len(t, writes, 1, "exactly one register changes")
	assert.Equal(t, uint32(0x188), writes[0].Offset, "group 1 sits at the reversed position")
	assert.Equal(t, 4, writes[0].Length)
	assert.True(t, committed.PhantomPowerings[1], "committed state tracks the write")

	// A fresh read agrees with the committed state.
	fresh := NewSpecificParams(m)
	freshCache := cache.New(fresh.Table(), nil)
	require.NoError(t, freshCache.ReadWholly(dev, fresh, testTimeout))
	assert.Equal(t, committed.PhantomPowerings, fresh.PhantomPowerings)
}

func TestFullOutputCycleAgainstSimulatedDevice(t *testing.T) {
	m := pro26(t)
	dev := transport.NewMemDevice()

	// The device boots with all outputs at full level, wire word zero.
	committed := NewOutputParams(m)
	c := cache.New(committed.Table(), nil)
	require.NoError(t, c.ReadWholly(dev, committed, testTimeout))
	assert.Equal(t, VolumeMax, committed.Vols[0])
	dev.ResetJournal()

	next := committed.Clone()
	require.NoError(t, next.SetMute(1, true))
	require.NoError(t, next.SetVolume(1, 0x80))
	require.NoError(t, c.UpdatePartially(dev, committed, next, testTimeout))

	writes := dev.Writes()
	require.Len(t, writes, 1)
	assert.Equal(t, uint32(0x144), writes[0].Offset)
	assert.Equal(t, uint32(outMuteFlag|0x7f), dev.Quad(0x144))

	fresh := NewOutputParams(m)
	freshCache := cache.New(fresh.Table(), nil)
	require.NoError(t, freshCache.ReadWholly(dev, fresh, testTimeout))
	assert.True(t, fresh.Mutes[1])
	assert.Equal(t, uint8(0x80), fresh.Vols[1])
}

func TestMonitorUpdateBatchesNeighbouringGains(t *testing.T) {
	m := pro26(t)
	dev := transport.NewMemDevice()

	committed := NewMonitorParams(m)
	c := cache.New(committed.Table(), nil)
	require.NoError(t, c.ReadWholly(dev, committed, testTimeout))
	dev.ResetJournal()

	// Both sends of analog input 3 change; their registers neighbour.
	next := committed.Clone()
	require.NoError(t, next.SetAnalogGain(0, 3, GainMax))
	require.NoError(t, next.SetAnalogGain(1, 3, GainMax))
	require.NoError(t, c.UpdatePartially(dev, committed, next, testTimeout))

	writes := dev.Writes()
	require.Len(t, writes, 1, "neighbouring registers batch into one write")
	assert.Equal(t, uint32(0x18), writes[0].Offset)
	assert.Equal(t, 8, writes[0].Length)
}
