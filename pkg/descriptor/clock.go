package descriptor

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ClockSource is one entry of the master clock-source enumeration.
// Every source the hardware family knows has a fixed wire code; each
// model supports an ordered subset, and the register value for a
// source is its position in that subset's wire-code list.
type ClockSource uint8

const (
	ClockInternal ClockSource = iota
	ClockSpdif
	ClockAdatA
	ClockAdatB
	ClockWordClock

	numClockSources
)

// wireCodes maps each master source to its hardware code. Code 0x01
// is unused by the hardware.
var wireCodes = [numClockSources]uint8{
	ClockInternal:  0x00,
	ClockSpdif:     0x02,
	ClockAdatA:     0x03,
	ClockAdatB:     0x04,
	ClockWordClock: 0x05,
}

var clockNames = [numClockSources]string{
	ClockInternal:  "internal",
	ClockSpdif:     "spdif",
	ClockAdatA:     "adat-a",
	ClockAdatB:     "adat-b",
	ClockWordClock: "word-clock",
}

func (s ClockSource) String() string {
	if s < numClockSources {
		return clockNames[s]
	}
	return fmt.Sprintf("clock-source(%d)", uint8(s))
}

// Code returns the source's hardware wire code.
func (s ClockSource) Code() uint8 {
	return wireCodes[s]
}

// ParseClockSource maps a name back to its source.
func ParseClockSource(name string) (ClockSource, error) {
	for i, n := range clockNames {
		if n == name {
			return ClockSource(i), nil
		}
	}
	return 0, fmt.Errorf("descriptor: unknown clock source %q", name)
}

// MarshalYAML encodes the source by name.
func (s ClockSource) MarshalYAML() (any, error) {
	if s >= numClockSources {
		return nil, fmt.Errorf("descriptor: invalid clock source %d", uint8(s))
	}
	return s.String(), nil
}

// UnmarshalYAML decodes the source from its name.
func (s *ClockSource) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	parsed, err := ParseClockSource(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// UnsupportedSourceError reports a hardware clock-source code outside
// a model's supported subset.
type UnsupportedSourceError struct {
	// Model is the device model name.
	Model string

	// Code is the code the hardware reported.
	Code uint8
}

func (e *UnsupportedSourceError) Error() string {
	return fmt.Sprintf("descriptor: clock source code 0x%02x is not supported by model %s", e.Code, e.Model)
}
