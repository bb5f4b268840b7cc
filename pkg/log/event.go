package log

import "time"

// Direction indicates whether traffic goes to or from the device.
type Direction uint8

const (
	// DirectionOut is host-to-device traffic.
	DirectionOut Direction = iota
	// DirectionIn is device-to-host traffic.
	DirectionIn
)

func (d Direction) String() string {
	switch d {
	case DirectionOut:
		return "out"
	case DirectionIn:
		return "in"
	default:
		return "unknown"
	}
}

// Layer identifies which protocol surface produced an event.
type Layer uint8

const (
	// LayerBus is the asynchronous-transaction surface.
	LayerBus Layer = iota
	// LayerCommand is the command-frame surface.
	LayerCommand
	// LayerParams is the parameter-cache layer above both.
	LayerParams
)

func (l Layer) String() string {
	switch l {
	case LayerBus:
		return "bus"
	case LayerCommand:
		return "command"
	case LayerParams:
		return "params"
	default:
		return "unknown"
	}
}

// Category classifies the event payload.
type Category uint8

const (
	// CategoryTransaction is a bus block read or write.
	CategoryTransaction Category = iota
	// CategoryCommand is a command frame or its response.
	CategoryCommand
	// CategoryError is a protocol-level failure.
	CategoryError
)

func (c Category) String() string {
	switch c {
	case CategoryTransaction:
		return "transaction"
	case CategoryCommand:
		return "command"
	case CategoryError:
		return "error"
	default:
		return "unknown"
	}
}

// maxDataBytes bounds how much payload a single event carries. The
// largest batched block transfer is 80 bytes, so this only truncates
// malformed or foreign traffic.
const maxDataBytes = 80

// Event is one captured protocol occurrence. Exactly one of the
// payload pointers is set, matching Category. CBOR integer keys keep
// the on-disk stream compact.
type Event struct {
	// Timestamp is when the event occurred, nanosecond precision.
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID groups events from one cache or device handle.
	SessionID string `cbor:"2,keyasint"`

	// Direction of the traffic.
	Direction Direction `cbor:"3,keyasint"`

	// Layer that produced the event.
	Layer Layer `cbor:"4,keyasint"`

	// Category of the payload.
	Category Category `cbor:"5,keyasint"`

	// Model is the device model name, when known.
	Model string `cbor:"6,keyasint,omitempty"`

	// Transaction payload, set for CategoryTransaction.
	Transaction *TransactionEvent `cbor:"10,keyasint,omitempty"`

	// Command payload, set for CategoryCommand.
	Command *CommandEvent `cbor:"11,keyasint,omitempty"`

	// Error payload, set for CategoryError.
	Error *ErrorEvent `cbor:"12,keyasint,omitempty"`
}

// TransactionEvent describes one bus block transaction.
type TransactionEvent struct {
	// Write is true for block writes, false for block reads.
	Write bool `cbor:"1,keyasint"`

	// Offset is the register offset of the transaction.
	Offset uint32 `cbor:"2,keyasint"`

	// Length is the full transaction size in bytes.
	Length int `cbor:"3,keyasint"`

	// Data is the transferred payload, truncated to maxDataBytes.
	Data []byte `cbor:"4,keyasint,omitempty"`

	// Truncated is set when Data was cut short.
	Truncated bool `cbor:"5,keyasint,omitempty"`
}

// CommandEvent describes one command frame or its response.
type CommandEvent struct {
	// Opcode is the vendor command code.
	Opcode uint8 `cbor:"1,keyasint"`

	// Selector and Index address the command target.
	Selector uint8 `cbor:"2,keyasint"`
	Index    uint8 `cbor:"3,keyasint"`

	// Value is the command payload.
	Value []byte `cbor:"4,keyasint,omitempty"`

	// Response is the response code, set on inbound events.
	Response uint8 `cbor:"5,keyasint,omitempty"`
}

// ErrorEvent describes a protocol-level failure.
type ErrorEvent struct {
	// Layer where the failure occurred.
	Layer Layer `cbor:"1,keyasint"`

	// Message is the error text.
	Message string `cbor:"2,keyasint"`

	// Context names the operation that failed.
	Context string `cbor:"3,keyasint,omitempty"`
}

// NewTransactionEvent builds a transaction event stamped with the
// current time. data may be nil for failed reads.
func NewTransactionEvent(sessionID string, dir Direction, write bool, offset uint32, length int, data []byte) Event {
	tx := &TransactionEvent{Write: write, Offset: offset, Length: length}
	if len(data) > maxDataBytes {
		tx.Data = append([]byte(nil), data[:maxDataBytes]...)
		tx.Truncated = true
	} else if len(data) > 0 {
		tx.Data = append([]byte(nil), data...)
	}
	return Event{
		Timestamp:   time.Now(),
		SessionID:   sessionID,
		Direction:   dir,
		Layer:       LayerBus,
		Category:    CategoryTransaction,
		Transaction: tx,
	}
}

// NewCommandEvent builds a command event stamped with the current time.
func NewCommandEvent(sessionID string, dir Direction, cmd CommandEvent) Event {
	c := cmd
	return Event{
		Timestamp: time.Now(),
		SessionID: sessionID,
		Direction: dir,
		Layer:     LayerCommand,
		Category:  CategoryCommand,
		Command:   &c,
	}
}

// NewErrorEvent builds an error event stamped with the current time.
func NewErrorEvent(sessionID string, layer Layer, message, context string) Event {
	return Event{
		Timestamp: time.Now(),
		SessionID: sessionID,
		Direction: DirectionIn,
		Layer:     layer,
		Category:  CategoryError,
		Error:     &ErrorEvent{Layer: layer, Message: message, Context: context},
	}
}
