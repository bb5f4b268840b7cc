package log

import (
	"encoding/hex"

	"github.com/rs/zerolog"
)

// ZerologAdapter writes protocol events to a zerolog.Logger. The
// zero-allocation event chain keeps the adapter cheap enough to leave
// enabled in long captures.
type ZerologAdapter struct {
	logger zerolog.Logger
}

// NewZerologAdapter creates a new ZerologAdapter that writes to the
// given zerolog.Logger.
func NewZerologAdapter(logger zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{logger: logger}
}

// Log writes the event to the zerolog logger at Debug level.
func (a *ZerologAdapter) Log(event Event) {
	e := a.logger.Debug().
		Str("session", event.SessionID).
		Str("direction", event.Direction.String()).
		Str("layer", event.Layer.String()).
		Str("category", event.Category.String())

	if event.Model != "" {
		e = e.Str("model", event.Model)
	}

	switch {
	case event.Transaction != nil:
		kind := "read"
		if event.Transaction.Write {
			kind = "write"
		}
		e = e.Str("tx", kind).
			Uint32("offset", event.Transaction.Offset).
			Int("length", event.Transaction.Length)
		if len(event.Transaction.Data) > 0 {
			e = e.Str("data", hex.EncodeToString(event.Transaction.Data))
		}
	case event.Command != nil:
		e = e.Uint8("opcode", event.Command.Opcode).
			Uint8("selector", event.Command.Selector).
			Uint8("index", event.Command.Index)
		if len(event.Command.Value) > 0 {
			e = e.Str("value", hex.EncodeToString(event.Command.Value))
		}
		if event.Direction == DirectionIn {
			e = e.Uint8("response", event.Command.Response)
		}
	case event.Error != nil:
		e = e.Str("error_layer", event.Error.Layer.String()).
			Str("error_msg", event.Error.Message)
		if event.Error.Context != "" {
			e = e.Str("error_context", event.Error.Context)
		}
	}

	e.Msg("protocol")
}

// Compile-time interface satisfaction check.
var _ Logger = (*ZerologAdapter)(nil)
