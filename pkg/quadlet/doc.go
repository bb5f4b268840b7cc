// Package quadlet encodes and decodes the 4-byte big-endian register
// words used by FireWire audio hardware.
//
// Registers pack several kinds of value into one quadlet: plain
// unsigned words, sign-extended narrow integers, sentinel-encoded
// booleans, and multiplexed bit fields. This package provides a codec
// for each so that parameter serializers never touch raw byte order
// themselves.
package quadlet
