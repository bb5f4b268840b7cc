package transport

import (
	"fmt"
	"sync"
	"time"

	"github.com/sndfw-protocol/sndfw-go/pkg/quadlet"
)

// TxKind distinguishes journal entries.
type TxKind uint8

const (
	TxRead TxKind = iota
	TxWrite
)

func (k TxKind) String() string {
	if k == TxRead {
		return "read"
	}
	return "write"
}

// Transaction is one journaled bus operation.
type Transaction struct {
	Kind   TxKind
	Offset uint32
	Length int
	Data   []byte // written bytes, nil for reads
}

// MemDevice simulates a device's register space in memory. Unwritten
// registers read as zero. Tests can seed registers, inject failures
// per offset, and mark offsets whose write makes the device drop off
// the bus. All operations are journaled.
//
// MemDevice is safe for concurrent use.
type MemDevice struct {
	mu           sync.Mutex
	regs         map[uint32]uint32
	journal      []Transaction
	failReads    map[uint32]error
	failWrites   map[uint32]error
	disconnectOn map[uint32]bool
	disconnected bool
}

// NewMemDevice builds an empty simulated device.
func NewMemDevice() *MemDevice {
	return &MemDevice{
		regs:         make(map[uint32]uint32),
		failReads:    make(map[uint32]error),
		failWrites:   make(map[uint32]error),
		disconnectOn: make(map[uint32]bool),
	}
}

// Read implements Bus.
func (d *MemDevice) Read(offset uint32, length int, _ time.Duration) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if offset%quadlet.Size != 0 || length <= 0 || length%quadlet.Size != 0 {
		return nil, fmt.Errorf("transport: misaligned read at 0x%06x length %d", offset, length)
	}

	d.journal = append(d.journal, Transaction{Kind: TxRead, Offset: offset, Length: length})

	if d.disconnected {
		return nil, ErrDisconnected
	}
	if err, ok := d.failReads[offset]; ok {
		return nil, err
	}

	data := make([]byte, length)
	for b := 0; b < length; b += quadlet.Size {
		quadlet.Put(data[b:], d.regs[offset+uint32(b)])
	}
	return data, nil
}

// Write implements Bus. Writing to an offset marked with
// DisconnectOnWrite applies the data, then fails with ErrDisconnected
// and leaves the device disconnected, mimicking hardware that resets
// itself on the write.
func (d *MemDevice) Write(offset uint32, data []byte, _ time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if offset%quadlet.Size != 0 || len(data) == 0 || len(data)%quadlet.Size != 0 {
		return fmt.Errorf("transport: misaligned write at 0x%06x length %d", offset, len(data))
	}

	d.journal = append(d.journal, Transaction{
		Kind:   TxWrite,
		Offset: offset,
		Length: len(data),
		Data:   append([]byte(nil), data...),
	})

	if d.disconnected {
		return ErrDisconnected
	}
	if err, ok := d.failWrites[offset]; ok {
		return err
	}

	reset := false
	for b := 0; b < len(data); b += quadlet.Size {
		addr := offset + uint32(b)
		d.regs[addr] = quadlet.Get(data[b:])
		if d.disconnectOn[addr] {
			reset = true
		}
	}
	if reset {
		d.disconnected = true
		return ErrDisconnected
	}
	return nil
}

// SetQuad seeds a register value.
func (d *MemDevice) SetQuad(offset uint32, v uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.regs[offset] = v
}

// Quad returns the current register value, zero if never written.
func (d *MemDevice) Quad(offset uint32) uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.regs[offset]
}

// FailRead makes reads starting at offset return err.
func (d *MemDevice) FailRead(offset uint32, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failReads[offset] = err
}

// FailWrite makes writes starting at offset return err.
func (d *MemDevice) FailWrite(offset uint32, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failWrites[offset] = err
}

// DisconnectOnWrite marks offset so that writing it drops the device
// off the bus.
func (d *MemDevice) DisconnectOnWrite(offset uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.disconnectOn[offset] = true
}

// Reconnect clears the disconnected state, as if the device finished
// re-enumerating.
func (d *MemDevice) Reconnect() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.disconnected = false
}

// Journal returns a copy of all journaled transactions.
func (d *MemDevice) Journal() []Transaction {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Transaction(nil), d.journal...)
}

// Writes returns only the journaled write transactions.
func (d *MemDevice) Writes() []Transaction {
	var out []Transaction
	for _, tx := range d.Journal() {
		if tx.Kind == TxWrite {
			out = append(out, tx)
		}
	}
	return out
}

// ResetJournal discards the journal.
func (d *MemDevice) ResetJournal() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.journal = nil
}

// Compile-time interface satisfaction check.
var _ Bus = (*MemDevice)(nil)
