// Package avc builds and parses AV/C vendor-dependent command frames.
//
// Devices without a readable register space expose their parameters
// through vendor commands addressed to the unit. A frame carries the
// command type, a vendor prefix, a command opcode, optional selector
// and index bytes, and a value sized to the field's domain. Responses
// echo the request; the parser verifies the echo and maps response
// codes to errors.
package avc
