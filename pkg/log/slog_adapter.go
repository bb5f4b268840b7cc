package log

import (
	"context"
	"encoding/hex"
	"log/slog"
)

// SlogAdapter writes protocol events to an slog.Logger.
// Useful for development when you want to see protocol events in
// console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given
// slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session", event.SessionID),
		slog.String("direction", event.Direction.String()),
		slog.String("layer", event.Layer.String()),
		slog.String("category", event.Category.String()),
	}

	if event.Model != "" {
		attrs = append(attrs, slog.String("model", event.Model))
	}

	switch {
	case event.Transaction != nil:
		kind := "read"
		if event.Transaction.Write {
			kind = "write"
		}
		attrs = append(attrs,
			slog.String("tx", kind),
			slog.Uint64("offset", uint64(event.Transaction.Offset)),
			slog.Int("length", event.Transaction.Length),
		)
		if len(event.Transaction.Data) > 0 {
			attrs = append(attrs, slog.String("data", hex.EncodeToString(event.Transaction.Data)))
		}
		if event.Transaction.Truncated {
			attrs = append(attrs, slog.Bool("truncated", true))
		}
	case event.Command != nil:
		attrs = append(attrs,
			slog.Uint64("opcode", uint64(event.Command.Opcode)),
			slog.Uint64("selector", uint64(event.Command.Selector)),
			slog.Uint64("index", uint64(event.Command.Index)),
		)
		if len(event.Command.Value) > 0 {
			attrs = append(attrs, slog.String("value", hex.EncodeToString(event.Command.Value)))
		}
		if event.Direction == DirectionIn {
			attrs = append(attrs, slog.Uint64("response", uint64(event.Command.Response)))
		}
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("error_layer", event.Error.Layer.String()),
			slog.String("error_msg", event.Error.Message),
		)
		if event.Error.Context != "" {
			attrs = append(attrs, slog.String("error_context", event.Error.Context))
		}
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "protocol", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
