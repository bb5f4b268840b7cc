package cache

import (
	"bytes"
	"fmt"
	"time"

	"github.com/sndfw-protocol/sndfw-go/pkg/addrspace"
	"github.com/sndfw-protocol/sndfw-go/pkg/log"
	"github.com/sndfw-protocol/sndfw-go/pkg/quadlet"
	"github.com/sndfw-protocol/sndfw-go/pkg/transport"
)

// MaxBlockQuadlets caps a single batched block transaction. Larger
// transfers are split; the hardware rejects blocks beyond this.
const MaxBlockQuadlets = 20

// Cache holds the committed register image for one parameter table.
// The image always reflects the device state as far as the host
// knows: reads replace it wholesale, writes commit into it one block
// at a time.
type Cache struct {
	table   *addrspace.Table
	image   []byte
	offsets []uint32
	logger  log.Logger
	session string
	model   string
}

// New builds a Cache over table. logger may be nil.
func New(table *addrspace.Table, logger log.Logger) *Cache {
	return &Cache{
		table:   table,
		image:   make([]byte, table.Total()),
		offsets: table.QuadletOffsets(),
		logger:  log.OrNoop(logger),
		session: log.NewSessionID(),
	}
}

// SetModel tags this cache's log events with a device model name.
func (c *Cache) SetModel(name string) {
	c.model = name
}

// Table returns the cache's address table.
func (c *Cache) Table() *addrspace.Table {
	return c.table
}

// Image returns a copy of the committed register image.
func (c *Cache) Image() []byte {
	return append([]byte(nil), c.image...)
}

// Seed installs a register image produced by params without any bus
// traffic. Use it to establish a baseline for parameter sets whose
// registers cannot be read back.
func (c *Cache) Seed(params WritableParams) error {
	if err := c.checkTable(params); err != nil {
		return err
	}
	scratch := make([]byte, c.table.Total())
	if err := params.Serialize(scratch); err != nil {
		return fmt.Errorf("cache: seed: %w", err)
	}
	copy(c.image, scratch)
	return nil
}

// ReadWholly refreshes the entire image from the device and
// deserializes it into params. Coalesced blocks keep the transaction
// count minimal. The operation is all-or-nothing: any failed or short
// read leaves both the image and params untouched.
func (c *Cache) ReadWholly(bus transport.Bus, params ReadableParams, timeout time.Duration) error {
	if err := c.checkTable(params); err != nil {
		return err
	}

	scratch := make([]byte, c.table.Total())
	pos := 0
	for _, blk := range c.table.Merged(MaxBlockQuadlets) {
		data, err := bus.Read(blk.Offset, blk.Length, timeout)
		if err != nil {
			c.logError(fmt.Sprintf("block read at 0x%06x: %v", blk.Offset, err), "whole-cache read")
			return fmt.Errorf("cache: read at 0x%06x: %w", blk.Offset, err)
		}
		if len(data) != blk.Length {
			c.logError(fmt.Sprintf("short read at 0x%06x: got %d of %d bytes", blk.Offset, len(data), blk.Length), "whole-cache read")
			return fmt.Errorf("cache: short read at 0x%06x: got %d of %d bytes", blk.Offset, len(data), blk.Length)
		}
		c.logger.Log(c.stamp(log.NewTransactionEvent(c.session, log.DirectionIn, false, blk.Offset, blk.Length, data)))
		copy(scratch[pos:], data)
		pos += blk.Length
	}

	if err := params.Deserialize(scratch); err != nil {
		c.logError(err.Error(), "whole-cache decode")
		return fmt.Errorf("cache: decode: %w", err)
	}
	copy(c.image, scratch)
	return nil
}

// UpdatePartially writes the difference between next and the committed
// image, at quadlet granularity. Consecutive changed quadlets whose
// registers are contiguous go out as one block write, capped at
// MaxBlockQuadlets. Each successful write is committed into the image
// and into committed before the next write is attempted; on failure
// the committed prefix stays applied and the error is returned without
// rollback.
func (c *Cache) UpdatePartially(bus transport.Bus, committed ReadableParams, next WritableParams, timeout time.Duration) error {
	if err := c.checkTable(committed); err != nil {
		return err
	}
	if err := c.checkTable(next); err != nil {
		return err
	}

	desired := make([]byte, c.table.Total())
	if err := next.Serialize(desired); err != nil {
		return fmt.Errorf("cache: encode: %w", err)
	}

	nquads := len(c.offsets)
	i := 0
	for i < nquads {
		if c.quadEqual(desired, i) {
			i++
			continue
		}

		// Extend the run while quadlets keep changing, registers stay
		// contiguous, and the block cap allows.
		j := i + 1
		for j < nquads && !c.quadEqual(desired, j) &&
			c.offsets[j] == c.offsets[j-1]+quadlet.Size &&
			j-i < MaxBlockQuadlets {
			j++
		}

		data := desired[i*quadlet.Size : j*quadlet.Size]
		if err := bus.Write(c.offsets[i], data, timeout); err != nil {
			c.logError(fmt.Sprintf("block write at 0x%06x: %v", c.offsets[i], err), "partial update")
			return fmt.Errorf("cache: write at 0x%06x: %w", c.offsets[i], err)
		}
		c.logger.Log(c.stamp(log.NewTransactionEvent(c.session, log.DirectionOut, true, c.offsets[i], len(data), data)))

		copy(c.image[i*quadlet.Size:], data)
		if err := committed.Deserialize(c.image); err != nil {
			return fmt.Errorf("cache: commit decode: %w", err)
		}
		i = j
	}
	return nil
}

func (c *Cache) quadEqual(desired []byte, i int) bool {
	b := i * quadlet.Size
	return bytes.Equal(desired[b:b+quadlet.Size], c.image[b:b+quadlet.Size])
}

func (c *Cache) checkTable(params ReadableParams) error {
	if params.Table().Total() != c.table.Total() {
		return fmt.Errorf("cache: parameter table size %d does not match cache table size %d",
			params.Table().Total(), c.table.Total())
	}
	return nil
}

func (c *Cache) logError(msg, context string) {
	c.logger.Log(c.stamp(log.NewErrorEvent(c.session, log.LayerParams, msg, context)))
}

func (c *Cache) stamp(event log.Event) log.Event {
	event.Model = c.model
	return event
}
