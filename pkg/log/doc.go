// Package log records protocol traffic for diagnostics and replay.
//
// Every bus transaction, command exchange, and protocol error can be
// captured as an Event. Events are grouped by a session ID so traffic
// from several devices can share one sink. FileLogger persists events
// as a CBOR stream; Reader filters and replays them. Adapters bridge
// events into slog and zerolog for live console output.
package log
