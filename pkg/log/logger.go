package log

import "github.com/google/uuid"

// Logger is the interface applications implement to receive protocol
// log events. Pass NoopLogger to disable logging.
type Logger interface {
	// Log records a protocol event. Implementations must be thread-safe.
	// The event should be processed quickly or queued; blocking slows
	// down device I/O.
	Log(event Event)
}

// NoopLogger discards all events. Use when logging is disabled.
// NoopLogger is safe for concurrent use and usable as a zero value.
type NoopLogger struct{}

// Log discards the event.
func (NoopLogger) Log(Event) {}

// OrNoop returns l, or a NoopLogger when l is nil, so callers can
// accept an optional logger without nil checks on every event.
func OrNoop(l Logger) Logger {
	if l == nil {
		return NoopLogger{}
	}
	return l
}

// NewSessionID returns a fresh session identifier. One session usually
// covers the lifetime of a cache or device handle.
func NewSessionID() string {
	return uuid.New().String()
}

// Compile-time interface satisfaction check.
var _ Logger = NoopLogger{}
