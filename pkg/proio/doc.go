// Package proio implements the register-mapped parameter sets of the
// rackmount interfaces: output pairs, input monitor, mixer, clock
// configuration, device-specific switches, hardware meters, and the
// store-settings trigger.
//
// Each parameter set pairs a typed Go struct with an address table
// and a serializer, sized from a descriptor.Model. State changes go
// through pkg/cache so only changed registers hit the bus.
package proio
