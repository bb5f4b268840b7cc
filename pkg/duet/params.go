package duet

import "fmt"

// Fixed counts and value domains of the hardware.
const (
	// Inputs is the number of analog input channels.
	Inputs = 2

	// MixerSources counts the mixer inputs: two analog, two stream.
	MixerSources = 4

	// MixerOutputs counts the stereo mixer destinations.
	MixerOutputs = 2

	// InputGainMin and InputGainMax bound the microphone gain in dB.
	InputGainMin uint8 = 10
	InputGainMax uint8 = 75

	// OutputVolumeMax is the top of the output volume domain.
	OutputVolumeMax uint8 = 64

	// MixerGainMax is the top of a mixer coefficient's domain.
	MixerGainMax = 0x3fff
)

// XlrLevel is the nominal level of an XLR input.
type XlrLevel uint8

const (
	// XlrMicrophone makes the gain adjustable between 10 and 75 dB.
	XlrMicrophone XlrLevel = iota
	// XlrProfessional fixes the gain at +4 dBu.
	XlrProfessional
	// XlrConsumer fixes the gain at -10 dBV.
	XlrConsumer
)

func (l XlrLevel) String() string {
	switch l {
	case XlrMicrophone:
		return "microphone"
	case XlrConsumer:
		return "consumer"
	default:
		return "professional"
	}
}

// InputSource selects the physical plug feeding an input channel.
type InputSource uint8

const (
	SourceXlr InputSource = iota
	SourcePhone
)

func (s InputSource) String() string {
	if s == SourcePhone {
		return "phone"
	}
	return "xlr"
}

// OutputSource selects what the output pair carries.
type OutputSource uint8

const (
	OutputFromStream OutputSource = iota
	OutputFromMixer
)

func (s OutputSource) String() string {
	if s == OutputFromMixer {
		return "mixer"
	}
	return "stream"
}

// MuteMode describes how a jack follows the output mute switch.
type MuteMode uint8

const (
	// MuteNever keeps the jack open regardless of the mute switch.
	MuteNever MuteMode = iota
	// MuteNormal mutes the jack when the switch is on.
	MuteNormal
	// MuteSwapped mutes the jack when the switch is off.
	MuteSwapped
)

func (m MuteMode) String() string {
	switch m {
	case MuteNormal:
		return "normal"
	case MuteSwapped:
		return "swapped"
	default:
		return "never"
	}
}

// wire renders the mode as the mute/unmute command pair.
func (m MuteMode) wire() (mute, unmute bool) {
	switch m {
	case MuteNormal:
		return false, true
	case MuteSwapped:
		return true, false
	default:
		return true, true
	}
}

// muteModeOf is the inverse of wire. The hardware can report both
// flags clear; that also reads as never muting.
func muteModeOf(mute, unmute bool) MuteMode {
	switch {
	case !mute && unmute:
		return MuteNormal
	case mute && !unmute:
		return MuteSwapped
	default:
		return MuteNever
	}
}

// KnobTarget is what the rotary knob currently adjusts.
type KnobTarget uint8

const (
	KnobOutput KnobTarget = iota
	KnobInput0
	KnobInput1
)

func (t KnobTarget) String() string {
	switch t {
	case KnobInput0:
		return "input-0"
	case KnobInput1:
		return "input-1"
	default:
		return "output"
	}
}

// InputParams is the cached state of the input section.
type InputParams struct {
	// Gains holds the microphone gains, InputGainMin..InputGainMax.
	Gains [Inputs]uint8

	// Polarities inverts the XLR signal per channel.
	Polarities [Inputs]bool

	// XlrLevels is the nominal level per XLR input.
	XlrLevels [Inputs]XlrLevel

	// PhantomPowerings enables 48V phantom power per XLR input.
	PhantomPowerings [Inputs]bool

	// Sources selects the plug per channel.
	Sources [Inputs]InputSource

	// Clickless suppresses the relay click of gain changes.
	Clickless bool
}

// OutputParams is the cached state of the output pair.
type OutputParams struct {
	Mute bool

	// Volume is 0..OutputVolumeMax.
	Volume uint8

	Source OutputSource

	// ConsumerLevel drops the nominal level to -10 dBV.
	ConsumerLevel bool

	// LineMuteMode and HpMuteMode bind the line and headphone jacks
	// to the mute switch.
	LineMuteMode MuteMode
	HpMuteMode   MuteMode
}

// MixerParams is the cached stereo mixer, indexed destination first.
// Sources 0 and 1 are the analog inputs, 2 and 3 the stream pair.
type MixerParams struct {
	Gains [MixerOutputs][MixerSources]uint16
}

// DisplayParams is the cached state of the level display.
type DisplayParams struct {
	// ShowsInput points the meter at the inputs instead of the output.
	ShowsInput bool

	// FollowsKnob makes the meter track the knob target.
	FollowsKnob bool

	// OverholdTwoSec drops peak holds after two seconds instead of
	// keeping them until cleared.
	OverholdTwoSec bool
}

// HwState is the rotary knob section as the hardware reports it. It is
// read-only: the knob moves under the user's hand, so the values are
// never cached.
type HwState struct {
	OutputMute   bool
	KnobTarget   KnobTarget
	OutputVolume uint8
	InputGains   [Inputs]uint8
}

// hwStateLen is the size of the hardware state response value.
const hwStateLen = 11

func parseHwState(value []byte) (HwState, error) {
	if len(value) < hwStateLen {
		return HwState{}, fmt.Errorf("duet: short hardware state: %d bytes", len(value))
	}
	s := HwState{
		OutputMute:   value[0] > 0,
		OutputVolume: OutputVolumeMax - value[3],
		InputGains:   [Inputs]uint8{value[4], value[5]},
	}
	switch value[1] {
	case 2:
		s.KnobTarget = KnobInput1
	case 1:
		s.KnobTarget = KnobInput0
	default:
		s.KnobTarget = KnobOutput
	}
	return s, nil
}
