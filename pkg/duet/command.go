package duet

import (
	"fmt"

	"github.com/sndfw-protocol/sndfw-go/pkg/avc"
)

// vendorPrefix is the ASCII "PCM" identifier carried by every command.
var vendorPrefix = [3]byte{0x50, 0x43, 0x4d}

// Vendor command codes.
const (
	cmdMicPolarity        uint8 = 0x00
	cmdXlrIsMicLevel      uint8 = 0x01
	cmdXlrIsConsumerLevel uint8 = 0x02
	cmdMicPhantom         uint8 = 0x03
	cmdOutIsConsumerLevel uint8 = 0x04
	cmdInGain             uint8 = 0x05
	cmdHwState            uint8 = 0x07
	cmdOutMute            uint8 = 0x09
	cmdInputSourceIsPhone uint8 = 0x0c
	cmdMixerSrc           uint8 = 0x10
	cmdOutSourceIsMixer   uint8 = 0x11
	cmdDisplayOverhold    uint8 = 0x13
	cmdDisplayClear       uint8 = 0x14
	cmdOutVolume          uint8 = 0x15
	cmdMuteForLineOut     uint8 = 0x16
	cmdMuteForHpOut       uint8 = 0x17
	cmdUnmuteForLineOut   uint8 = 0x18
	cmdUnmuteForHpOut     uint8 = 0x19
	cmdDisplayIsInput     uint8 = 0x1b
	cmdInClickless        uint8 = 0x1e
	cmdDisplayFollowKnob  uint8 = 0x22
)

// Booleans travel as byte sentinels, never 0/1.
const (
	byteOn  uint8 = 0x70
	byteOff uint8 = 0x60
)

// selectorSet marks commands that qualify the opcode with a channel.
const selectorSet uint8 = 0x80

func boolByte(v bool) byte {
	if v {
		return byteOn
	}
	return byteOff
}

// decodeBool accepts only the two sentinel bytes.
func decodeBool(field string, value []byte) (bool, error) {
	if len(value) == 0 {
		return false, fmt.Errorf("duet: empty value for %s", field)
	}
	switch value[0] {
	case byteOn:
		return true, nil
	case byteOff:
		return false, nil
	}
	return false, &DecodeError{Field: field, Raw: value[0]}
}

// rawCommand addresses the whole unit: no selector, no channel.
func rawCommand(op uint8, value ...byte) *avc.Command {
	return &avc.Command{
		Prefix:   vendorPrefix,
		Opcode:   op,
		Selector: avc.None,
		Index:    avc.None,
		Value:    value,
	}
}

// selCommand sets the selector byte but leaves the channel unused.
func selCommand(op uint8, value ...byte) *avc.Command {
	c := rawCommand(op, value...)
	c.Selector = selectorSet
	return c
}

// chCommand addresses one input channel.
func chCommand(op uint8, ch int, value ...byte) *avc.Command {
	c := selCommand(op, value...)
	c.Index = uint8(ch)
	return c
}

// mixerCommand packs the source pair into the selector's high nibble
// and the position within the pair into its low nibble; the index byte
// carries the destination.
func mixerCommand(src, dst int, gain uint16) *avc.Command {
	return &avc.Command{
		Prefix:   vendorPrefix,
		Opcode:   cmdMixerSrc,
		Selector: uint8((src/2)<<4 | src%2),
		Index:    uint8(dst),
		Value:    avc.EncodeValue(int(gain), MixerGainMax),
	}
}
