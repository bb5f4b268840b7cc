// Package duet drives the two-channel desktop interface, whose
// parameters live behind vendor-dependent AV/C commands instead of a
// register file. Writable parameters are cached trust-the-write: a
// verified control response commits the value, and Refresh methods
// re-query the hardware when the cache is in doubt. The rotary-knob
// hardware state is always a fresh status read.
package duet
