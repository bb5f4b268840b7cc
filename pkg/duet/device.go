package duet

import (
	"fmt"
	"time"

	"github.com/sndfw-protocol/sndfw-go/pkg/avc"
	"github.com/sndfw-protocol/sndfw-go/pkg/descriptor"
	"github.com/sndfw-protocol/sndfw-go/pkg/log"
	"github.com/sndfw-protocol/sndfw-go/pkg/transport"
)

// Device is one command-path interface. Setters send a control command
// and commit the value into the exported cached state only after the
// response verifies; refresh methods rebuild a section from status
// queries. Operations are strictly sequential per device handle.
type Device struct {
	cmdr    transport.Commander
	model   *descriptor.Model
	logger  log.Logger
	session string

	Input   InputParams
	Output  OutputParams
	Mixer   MixerParams
	Display DisplayParams
}

// NewDevice wraps cmdr for the hardware described by m. A nil logger
// disables command logging.
func NewDevice(cmdr transport.Commander, m *descriptor.Model, logger log.Logger) *Device {
	return &Device{
		cmdr:    cmdr,
		model:   m,
		logger:  log.OrNoop(logger),
		session: log.NewSessionID(),
	}
}

// Model returns the capability descriptor the device was opened with.
func (d *Device) Model() *descriptor.Model {
	return d.model
}

// Session returns the log session identifier.
func (d *Device) Session() string {
	return d.session
}

func (d *Device) control(cmd *avc.Command, timeout time.Duration) error {
	_, err := avc.Control(d.cmdr, cmd, d.logger, d.session, timeout)
	return err
}

func (d *Device) status(cmd *avc.Command, timeout time.Duration) ([]byte, error) {
	return avc.Status(d.cmdr, cmd, d.logger, d.session, timeout)
}

func (d *Device) queryBool(cmd *avc.Command, field string, timeout time.Duration) (bool, error) {
	v, err := d.status(cmd, timeout)
	if err != nil {
		return false, err
	}
	return decodeBool(field, v)
}

func checkInput(ch int) error {
	if ch < 0 || ch >= Inputs {
		return fmt.Errorf("%w: input %d of %d", ErrIndexRange, ch, Inputs)
	}
	return nil
}

// SetGain adjusts one microphone gain, InputGainMin..InputGainMax dB.
func (d *Device) SetGain(ch int, gain uint8, timeout time.Duration) error {
	if err := checkInput(ch); err != nil {
		return err
	}
	if gain < InputGainMin || gain > InputGainMax {
		return fmt.Errorf("%w: gain %d not in %d..%d", ErrValueRange, gain, InputGainMin, InputGainMax)
	}
	if err := d.control(chCommand(cmdInGain, ch, gain), timeout); err != nil {
		return err
	}
	d.Input.Gains[ch] = gain
	return nil
}

// SetPolarity inverts or restores one XLR input's signal.
func (d *Device) SetPolarity(ch int, inverted bool, timeout time.Duration) error {
	if err := checkInput(ch); err != nil {
		return err
	}
	if err := d.control(chCommand(cmdMicPolarity, ch, boolByte(inverted)), timeout); err != nil {
		return err
	}
	d.Input.Polarities[ch] = inverted
	return nil
}

// SetPhantom switches 48V phantom power for one XLR input. Models
// without phantom powering fail before any command is sent.
func (d *Device) SetPhantom(ch int, enabled bool, timeout time.Duration) error {
	if !d.model.HasPhantom() {
		return fmt.Errorf("%w: phantom power", ErrNotSupported)
	}
	if err := checkInput(ch); err != nil {
		return err
	}
	if ch >= d.model.PhantomPowering {
		return fmt.Errorf("%w: phantom channel %d of %d", ErrIndexRange, ch, d.model.PhantomPowering)
	}
	if err := d.control(chCommand(cmdMicPhantom, ch, boolByte(enabled)), timeout); err != nil {
		return err
	}
	d.Input.PhantomPowerings[ch] = enabled
	return nil
}

// SetXlrLevel picks the nominal level of one XLR input. The level maps
// to two switch commands; if the second fails, the hardware is left
// between levels and RefreshInput restores an accurate cache.
func (d *Device) SetXlrLevel(ch int, level XlrLevel, timeout time.Duration) error {
	if err := checkInput(ch); err != nil {
		return err
	}
	isMic := level == XlrMicrophone
	isConsumer := level == XlrConsumer
	if err := d.control(chCommand(cmdXlrIsMicLevel, ch, boolByte(isMic)), timeout); err != nil {
		return err
	}
	if err := d.control(chCommand(cmdXlrIsConsumerLevel, ch, boolByte(isConsumer)), timeout); err != nil {
		return err
	}
	d.Input.XlrLevels[ch] = level
	return nil
}

// SetSource selects the plug feeding one input channel.
func (d *Device) SetSource(ch int, src InputSource, timeout time.Duration) error {
	if err := checkInput(ch); err != nil {
		return err
	}
	enabled := src == SourcePhone
	if err := d.control(chCommand(cmdInputSourceIsPhone, ch, boolByte(enabled)), timeout); err != nil {
		return err
	}
	d.Input.Sources[ch] = src
	return nil
}

// SetClickless suppresses the relay click of gain changes.
func (d *Device) SetClickless(enabled bool, timeout time.Duration) error {
	if err := d.control(rawCommand(cmdInClickless, boolByte(enabled)), timeout); err != nil {
		return err
	}
	d.Input.Clickless = enabled
	return nil
}

// RefreshInput re-queries the whole input section.
func (d *Device) RefreshInput(timeout time.Duration) error {
	var p InputParams
	for ch := 0; ch < Inputs; ch++ {
		v, err := d.status(chCommand(cmdInGain, ch, 0), timeout)
		if err != nil {
			return err
		}
		if len(v) == 0 {
			return fmt.Errorf("duet: empty gain response for input %d", ch)
		}
		p.Gains[ch] = v[0]

		if p.Polarities[ch], err = d.queryBool(chCommand(cmdMicPolarity, ch, byteOff), "polarity", timeout); err != nil {
			return err
		}

		isMic, err := d.queryBool(chCommand(cmdXlrIsMicLevel, ch, byteOff), "xlr mic level", timeout)
		if err != nil {
			return err
		}
		isConsumer, err := d.queryBool(chCommand(cmdXlrIsConsumerLevel, ch, byteOff), "xlr consumer level", timeout)
		if err != nil {
			return err
		}
		switch {
		case isMic:
			p.XlrLevels[ch] = XlrMicrophone
		case isConsumer:
			p.XlrLevels[ch] = XlrConsumer
		default:
			p.XlrLevels[ch] = XlrProfessional
		}

		if p.PhantomPowerings[ch], err = d.queryBool(chCommand(cmdMicPhantom, ch, byteOff), "phantom", timeout); err != nil {
			return err
		}

		isPhone, err := d.queryBool(chCommand(cmdInputSourceIsPhone, ch, byteOff), "input source", timeout)
		if err != nil {
			return err
		}
		if isPhone {
			p.Sources[ch] = SourcePhone
		}
	}

	clickless, err := d.queryBool(rawCommand(cmdInClickless, byteOff), "clickless", timeout)
	if err != nil {
		return err
	}
	p.Clickless = clickless

	d.Input = p
	return nil
}

// SetOutputMute switches the output pair's mute.
func (d *Device) SetOutputMute(muted bool, timeout time.Duration) error {
	if err := d.control(selCommand(cmdOutMute, boolByte(muted)), timeout); err != nil {
		return err
	}
	d.Output.Mute = muted
	return nil
}

// SetOutputVolume sets the output level, 0..OutputVolumeMax.
func (d *Device) SetOutputVolume(vol uint8, timeout time.Duration) error {
	if vol > OutputVolumeMax {
		return fmt.Errorf("%w: volume %d over %d", ErrValueRange, vol, OutputVolumeMax)
	}
	if err := d.control(selCommand(cmdOutVolume, vol), timeout); err != nil {
		return err
	}
	d.Output.Volume = vol
	return nil
}

// SetOutputSource routes the mixer or the raw stream pair to the
// outputs.
func (d *Device) SetOutputSource(src OutputSource, timeout time.Duration) error {
	enabled := src == OutputFromMixer
	if err := d.control(rawCommand(cmdOutSourceIsMixer, boolByte(enabled)), timeout); err != nil {
		return err
	}
	d.Output.Source = src
	return nil
}

// SetOutputConsumerLevel drops the output's nominal level to -10 dBV.
func (d *Device) SetOutputConsumerLevel(enabled bool, timeout time.Duration) error {
	if err := d.control(selCommand(cmdOutIsConsumerLevel, boolByte(enabled)), timeout); err != nil {
		return err
	}
	d.Output.ConsumerLevel = enabled
	return nil
}

// SetLineMuteMode binds the line jack to the mute switch.
func (d *Device) SetLineMuteMode(mode MuteMode, timeout time.Duration) error {
	if err := d.setMuteMode(cmdMuteForLineOut, cmdUnmuteForLineOut, mode, timeout); err != nil {
		return err
	}
	d.Output.LineMuteMode = mode
	return nil
}

// SetHpMuteMode binds the headphone jack to the mute switch.
func (d *Device) SetHpMuteMode(mode MuteMode, timeout time.Duration) error {
	if err := d.setMuteMode(cmdMuteForHpOut, cmdUnmuteForHpOut, mode, timeout); err != nil {
		return err
	}
	d.Output.HpMuteMode = mode
	return nil
}

func (d *Device) setMuteMode(muteOp, unmuteOp uint8, mode MuteMode, timeout time.Duration) error {
	mute, unmute := mode.wire()
	if err := d.control(selCommand(muteOp, boolByte(mute)), timeout); err != nil {
		return err
	}
	return d.control(selCommand(unmuteOp, boolByte(unmute)), timeout)
}

// RefreshOutput re-queries the whole output section.
func (d *Device) RefreshOutput(timeout time.Duration) error {
	var p OutputParams
	var err error

	if p.Mute, err = d.queryBool(selCommand(cmdOutMute, byteOff), "output mute", timeout); err != nil {
		return err
	}

	v, err := d.status(selCommand(cmdOutVolume, 0), timeout)
	if err != nil {
		return err
	}
	if len(v) == 0 {
		return fmt.Errorf("duet: empty volume response")
	}
	p.Volume = v[0]

	isMixer, err := d.queryBool(rawCommand(cmdOutSourceIsMixer, byteOff), "output source", timeout)
	if err != nil {
		return err
	}
	if isMixer {
		p.Source = OutputFromMixer
	}

	if p.ConsumerLevel, err = d.queryBool(selCommand(cmdOutIsConsumerLevel, byteOff), "output level", timeout); err != nil {
		return err
	}

	lineMute, err := d.queryBool(selCommand(cmdMuteForLineOut, byteOff), "line mute", timeout)
	if err != nil {
		return err
	}
	lineUnmute, err := d.queryBool(selCommand(cmdUnmuteForLineOut, byteOff), "line unmute", timeout)
	if err != nil {
		return err
	}
	p.LineMuteMode = muteModeOf(lineMute, lineUnmute)

	hpMute, err := d.queryBool(selCommand(cmdMuteForHpOut, byteOff), "hp mute", timeout)
	if err != nil {
		return err
	}
	hpUnmute, err := d.queryBool(selCommand(cmdUnmuteForHpOut, byteOff), "hp unmute", timeout)
	if err != nil {
		return err
	}
	p.HpMuteMode = muteModeOf(hpMute, hpUnmute)

	d.Output = p
	return nil
}

// SetMixerGain sets one mixer coefficient, 0..MixerGainMax.
func (d *Device) SetMixerGain(src, dst int, gain uint16, timeout time.Duration) error {
	if src < 0 || src >= MixerSources {
		return fmt.Errorf("%w: mixer source %d of %d", ErrIndexRange, src, MixerSources)
	}
	if dst < 0 || dst >= MixerOutputs {
		return fmt.Errorf("%w: mixer output %d of %d", ErrIndexRange, dst, MixerOutputs)
	}
	if gain > MixerGainMax {
		return fmt.Errorf("%w: mixer gain %d over %d", ErrValueRange, gain, MixerGainMax)
	}
	if err := d.control(mixerCommand(src, dst, gain), timeout); err != nil {
		return err
	}
	d.Mixer.Gains[dst][src] = gain
	return nil
}

// RefreshMixer re-queries every mixer coefficient.
func (d *Device) RefreshMixer(timeout time.Duration) error {
	var p MixerParams
	for dst := 0; dst < MixerOutputs; dst++ {
		for src := 0; src < MixerSources; src++ {
			v, err := d.status(mixerCommand(src, dst, 0), timeout)
			if err != nil {
				return err
			}
			if len(v) < 2 {
				return fmt.Errorf("duet: short mixer response: %d bytes", len(v))
			}
			p.Gains[dst][src] = uint16(avc.DecodeValue(v[:2]))
		}
	}
	d.Mixer = p
	return nil
}

// SetDisplayShowsInput points the meter at the inputs.
func (d *Device) SetDisplayShowsInput(enabled bool, timeout time.Duration) error {
	if err := d.control(rawCommand(cmdDisplayIsInput, boolByte(enabled)), timeout); err != nil {
		return err
	}
	d.Display.ShowsInput = enabled
	return nil
}

// SetDisplayFollowsKnob makes the meter track the knob target.
func (d *Device) SetDisplayFollowsKnob(enabled bool, timeout time.Duration) error {
	if err := d.control(rawCommand(cmdDisplayFollowKnob, boolByte(enabled)), timeout); err != nil {
		return err
	}
	d.Display.FollowsKnob = enabled
	return nil
}

// SetDisplayOverhold limits peak holds to two seconds.
func (d *Device) SetDisplayOverhold(twoSec bool, timeout time.Duration) error {
	if err := d.control(rawCommand(cmdDisplayOverhold, boolByte(twoSec)), timeout); err != nil {
		return err
	}
	d.Display.OverholdTwoSec = twoSec
	return nil
}

// ClearDisplay drops the held peaks now.
func (d *Device) ClearDisplay(timeout time.Duration) error {
	return d.control(rawCommand(cmdDisplayClear), timeout)
}

// RefreshDisplay re-queries the display section.
func (d *Device) RefreshDisplay(timeout time.Duration) error {
	var p DisplayParams
	var err error

	if p.ShowsInput, err = d.queryBool(rawCommand(cmdDisplayIsInput, byteOff), "display target", timeout); err != nil {
		return err
	}
	if p.FollowsKnob, err = d.queryBool(rawCommand(cmdDisplayFollowKnob, byteOff), "display mode", timeout); err != nil {
		return err
	}
	if p.OverholdTwoSec, err = d.queryBool(rawCommand(cmdDisplayOverhold, byteOff), "display overhold", timeout); err != nil {
		return err
	}

	d.Display = p
	return nil
}

// ReadHwState queries the rotary knob section. The result reflects the
// hardware at this instant and is never cached.
func (d *Device) ReadHwState(timeout time.Duration) (HwState, error) {
	v, err := d.status(rawCommand(cmdHwState), timeout)
	if err != nil {
		return HwState{}, err
	}
	return parseHwState(v)
}
