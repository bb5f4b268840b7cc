package proio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sndfw-protocol/sndfw-go/pkg/quadlet"
)

func TestMixerPositionFunctions(t *testing.T) {
	wantMonitor := []int{1, 3, 6, 9, 12, 15, 18, 21, 24, 27}
	wantPair0 := []int{0, 2, 4, 7, 10, 13, 16, 19, 22, 25}
	wantStream := []int{0, 2, 5, 8, 11, 14, 17, 20, 23, 26}

	for i := 0; i < 10; i++ {
		assert.Equal(t, wantMonitor[i], monitorSourcePos(i), "monitor source %d", i)
		assert.Equal(t, wantPair0[i], streamSourcePair0Pos(i), "stream source pair0 %d", i)
		assert.Equal(t, wantStream[i], streamSourcePos(i), "stream source %d", i)
	}
}

func TestMixerParamsTable(t *testing.T) {
	p := NewMixerParams(pro26(t))
	ranges := p.Table().Ranges()
	require.Len(t, ranges, 1)
	assert.Equal(t, uint32(0x0d0), ranges[0].Offset)
	assert.Equal(t, 28*quadlet.Size, p.Table().Total())
}

func TestMixerParamsSerializePositions(t *testing.T) {
	p := NewMixerParams(pro26(t))
	require.NoError(t, p.SetMonitorSource(9, 0x1234))
	require.NoError(t, p.SetStreamSourcePair0(3, 0x0100))
	require.NoError(t, p.SetStreamSource(2, -2))

	raw := make([]byte, p.Table().Total())
	require.NoError(t, p.Serialize(raw))

	assert.Equal(t, int16(0x1234), quadlet.GetInt16At(raw, 27))
	assert.Equal(t, int16(0x0100), quadlet.GetInt16At(raw, 7))
	assert.Equal(t, int16(-2), quadlet.GetInt16At(raw, 5))
}

func TestMixerParamsSharedSlots(t *testing.T) {
	// Channels 0 and 1 of the two stream groups share register slots;
	// the stream-source group is rendered last and wins.
	p := NewMixerParams(pro26(t))
	require.NoError(t, p.SetStreamSourcePair0(0, 0x1111))
	require.NoError(t, p.SetStreamSource(0, 0x2222))

	raw := make([]byte, p.Table().Total())
	require.NoError(t, p.Serialize(raw))
	assert.Equal(t, int16(0x2222), quadlet.GetInt16At(raw, 0))

	got := NewMixerParams(pro26(t))
	require.NoError(t, got.Deserialize(raw))
	assert.Equal(t, int16(0x2222), got.StreamSources[0])
	assert.Equal(t, int16(0x2222), got.StreamSourcePair0[0], "shared slot reads back into both groups")
}

func TestMixerParamsRoundTrip(t *testing.T) {
	p := NewMixerParams(pro26(t))
	for i := 0; i < 10; i++ {
		require.NoError(t, p.SetMonitorSource(i, int16(100+i)))
		if i >= 2 {
			// Channels 0 and 1 share slots with the stream group.
			require.NoError(t, p.SetStreamSourcePair0(i, int16(200+i)))
		}
		require.NoError(t, p.SetStreamSource(i, int16(300+i)))
	}

	raw := make([]byte, p.Table().Total())
	require.NoError(t, p.Serialize(raw))

	got := NewMixerParams(pro26(t))
	require.NoError(t, got.Deserialize(raw))
	assert.Equal(t, p.MonitorSources, got.MonitorSources)
	assert.Equal(t, p.StreamSources, got.StreamSources)
	for i := 2; i < 10; i++ {
		assert.Equal(t, p.StreamSourcePair0[i], got.StreamSourcePair0[i])
	}
}

func TestMixerParamsIndexChecks(t *testing.T) {
	p := NewMixerParams(pro26(t))
	assert.ErrorIs(t, p.SetMonitorSource(10, 0), ErrIndexRange)
	assert.ErrorIs(t, p.SetStreamSourcePair0(-1, 0), ErrIndexRange)
	assert.ErrorIs(t, p.SetStreamSource(10, 0), ErrIndexRange)
}
