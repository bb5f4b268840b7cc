package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sndfw-protocol/sndfw-go/pkg/addrspace"
	"github.com/sndfw-protocol/sndfw-go/pkg/quadlet"
	"github.com/sndfw-protocol/sndfw-go/pkg/transport"
)

const testTimeout = 100 * time.Millisecond

// rawParams is a transparent parameter set for exercising the cache:
// its state is the register image itself.
type rawParams struct {
	table *addrspace.Table
	data  []byte
}

func newRawParams(table *addrspace.Table) *rawParams {
	return &rawParams{table: table, data: make([]byte, table.Total())}
}

func (p *rawParams) Table() *addrspace.Table { return p.table }

func (p *rawParams) Deserialize(raw []byte) error {
	copy(p.data, raw)
	return nil
}

func (p *rawParams) Serialize(raw []byte) error {
	copy(raw, p.data)
	return nil
}

func (p *rawParams) setQuad(i int, v uint32) {
	quadlet.PutAt(p.data, i, v)
}

func TestReadWhollyCoalescesBlocks(t *testing.T) {
	// Two adjacent ranges merge; the third sits past a gap.
	table := addrspace.MustNew(
		addrspace.Quadlets(0x140, 2),
		addrspace.Quadlets(0x148, 2),
		addrspace.Quadlets(0x154, 1),
	)
	dev := transport.NewMemDevice()
	dev.SetQuad(0x148, 0xaabbccdd)
	dev.SetQuad(0x154, 0x00000003)

	c := New(table, nil)
	params := newRawParams(table)
	require.NoError(t, c.ReadWholly(dev, params, testTimeout))

	journal := dev.Journal()
	require.Len(t, journal, 2, "adjacent ranges read as one block")
	assert.Equal(t, uint32(0x140), journal[0].Offset)
	assert.Equal(t, 16, journal[0].Length)
	assert.Equal(t, uint32(0x154), journal[1].Offset)

	assert.Equal(t, uint32(0xaabbccdd), quadlet.GetAt(params.data, 2))
	assert.Equal(t, uint32(0x00000003), quadlet.GetAt(params.data, 4))
	assert.Equal(t, params.data, c.Image())
}

func TestReadWhollySplitsAtBlockCap(t *testing.T) {
	table := addrspace.MustNew(addrspace.Quadlets(0x000, 52))
	dev := transport.NewMemDevice()

	c := New(table, nil)
	require.NoError(t, c.ReadWholly(dev, newRawParams(table), testTimeout))

	journal := dev.Journal()
	require.Len(t, journal, 3)
	assert.Equal(t, MaxBlockQuadlets*quadlet.Size, journal[0].Length)
	assert.Equal(t, MaxBlockQuadlets*quadlet.Size, journal[1].Length)
	assert.Equal(t, 48, journal[2].Length)
}

func TestReadWhollyAllOrNothing(t *testing.T) {
	table := addrspace.MustNew(
		addrspace.Quadlets(0x140, 1),
		addrspace.Quadlets(0x150, 1),
	)
	dev := transport.NewMemDevice()
	dev.SetQuad(0x140, 0x11111111)
	boom := errors.New("bus error")
	dev.FailRead(0x150, boom)

	c := New(table, nil)
	params := newRawParams(table)

	err := c.ReadWholly(dev, params, testTimeout)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, make([]byte, 8), c.Image(), "image untouched on failure")
	assert.Equal(t, make([]byte, 8), params.data, "params untouched on failure")
}

func TestUpdatePartiallyWritesOnlyChangedQuadlet(t *testing.T) {
	table := addrspace.MustNew(addrspace.Quadlets(0x140, 4))
	dev := transport.NewMemDevice()
	c := New(table, nil)

	committed := newRawParams(table)
	next := newRawParams(table)
	next.setQuad(2, 0x000000ff)

	require.NoError(t, c.UpdatePartially(dev, committed, next, testTimeout))

	writes := dev.Writes()
	require.Len(t, writes, 1)
	assert.Equal(t, uint32(0x148), writes[0].Offset)
	assert.Equal(t, 4, writes[0].Length)
	assert.Equal(t, uint32(0x000000ff), dev.Quad(0x148))
	assert.Equal(t, uint32(0x000000ff), quadlet.GetAt(committed.data, 2))
}

func TestUpdatePartiallyNoChangesNoWrites(t *testing.T) {
	table := addrspace.MustNew(addrspace.Quadlets(0x140, 4))
	dev := transport.NewMemDevice()
	c := New(table, nil)

	require.NoError(t, c.UpdatePartially(dev, newRawParams(table), newRawParams(table), testTimeout))
	assert.Empty(t, dev.Writes())
}

func TestUpdatePartiallyBatchesContiguousRun(t *testing.T) {
	table := addrspace.MustNew(addrspace.Quadlets(0x140, 6))
	dev := transport.NewMemDevice()
	c := New(table, nil)

	committed := newRawParams(table)
	next := newRawParams(table)
	next.setQuad(1, 1)
	next.setQuad(2, 2)
	next.setQuad(4, 4) // separated by an unchanged quadlet

	require.NoError(t, c.UpdatePartially(dev, committed, next, testTimeout))

	writes := dev.Writes()
	require.Len(t, writes, 2)
	assert.Equal(t, uint32(0x144), writes[0].Offset)
	assert.Equal(t, 8, writes[0].Length)
	assert.Equal(t, uint32(0x150), writes[1].Offset)
	assert.Equal(t, 4, writes[1].Length)
}

func TestUpdatePartiallySplitsAcrossRegisterGap(t *testing.T) {
	// Quadlets 1 and 2 are adjacent in the image but not on the device.
	table := addrspace.MustNew(
		addrspace.Quadlets(0x140, 2),
		addrspace.Quadlets(0x150, 1),
	)
	dev := transport.NewMemDevice()
	c := New(table, nil)

	next := newRawParams(table)
	next.setQuad(1, 1)
	next.setQuad(2, 2)

	require.NoError(t, c.UpdatePartially(dev, newRawParams(table), next, testTimeout))

	writes := dev.Writes()
	require.Len(t, writes, 2)
	assert.Equal(t, uint32(0x144), writes[0].Offset)
	assert.Equal(t, uint32(0x150), writes[1].Offset)
}

func TestUpdatePartiallyCapsRunLength(t *testing.T) {
	table := addrspace.MustNew(addrspace.Quadlets(0x000, 25))
	dev := transport.NewMemDevice()
	c := New(table, nil)

	next := newRawParams(table)
	for i := 0; i < 25; i++ {
		next.setQuad(i, uint32(i+1))
	}

	require.NoError(t, c.UpdatePartially(dev, newRawParams(table), next, testTimeout))

	writes := dev.Writes()
	require.Len(t, writes, 2)
	assert.Equal(t, MaxBlockQuadlets*quadlet.Size, writes[0].Length)
	assert.Equal(t, 5*quadlet.Size, writes[1].Length)
}

func TestUpdatePartiallyCommitsPrefixOnFailure(t *testing.T) {
	table := addrspace.MustNew(
		addrspace.Quadlets(0x140, 1),
		addrspace.Quadlets(0x150, 1),
	)
	dev := transport.NewMemDevice()
	boom := errors.New("bus error")
	dev.FailWrite(0x150, boom)

	c := New(table, nil)
	committed := newRawParams(table)
	next := newRawParams(table)
	next.setQuad(0, 0xaa)
	next.setQuad(1, 0xbb)

	err := c.UpdatePartially(dev, committed, next, testTimeout)
	assert.ErrorIs(t, err, boom)

	// First write landed and is committed; second never applied.
	assert.Equal(t, uint32(0xaa), quadlet.GetAt(committed.data, 0))
	assert.Equal(t, uint32(0), quadlet.GetAt(committed.data, 1))
	assert.Equal(t, uint32(0xaa), quadlet.GetAt(c.Image(), 0))
	assert.Equal(t, uint32(0), quadlet.GetAt(c.Image(), 1))
}

func TestSeedEstablishesBaselineWithoutTraffic(t *testing.T) {
	table := addrspace.MustNew(addrspace.Quadlets(0x140, 2))
	dev := transport.NewMemDevice()
	c := New(table, nil)

	baseline := newRawParams(table)
	baseline.setQuad(0, 0x11)
	baseline.setQuad(1, 0x22)
	require.NoError(t, c.Seed(baseline))
	assert.Empty(t, dev.Journal())

	// A subsequent update only writes the delta from the baseline.
	next := newRawParams(table)
	next.setQuad(0, 0x11)
	next.setQuad(1, 0x33)
	require.NoError(t, c.UpdatePartially(dev, newRawParams(table), next, testTimeout))

	writes := dev.Writes()
	require.Len(t, writes, 1)
	assert.Equal(t, uint32(0x144), writes[0].Offset)
}

func TestTableSizeMismatch(t *testing.T) {
	c := New(addrspace.MustNew(addrspace.Quadlets(0x140, 2)), nil)
	other := newRawParams(addrspace.MustNew(addrspace.Quadlets(0x140, 3)))

	dev := transport.NewMemDevice()
	assert.Error(t, c.ReadWholly(dev, other, testTimeout))
	assert.Error(t, c.UpdatePartially(dev, other, other, testTimeout))
	assert.Error(t, c.Seed(other))
}
