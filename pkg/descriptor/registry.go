package descriptor

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

// ErrUnknownModel reports a registry lookup for an unregistered name.
var ErrUnknownModel = errors.New("descriptor: unknown model")

var (
	registryMu sync.RWMutex
	registry   = make(map[string]*Model)
)

// Register validates m and adds it to the registry, replacing any
// model of the same name.
func Register(m *Model) error {
	if err := m.Validate(); err != nil {
		return err
	}
	cp := *m
	cp.ClockSources = append([]ClockSource(nil), m.ClockSources...)
	cp.Rates = append([]uint32(nil), m.Rates...)

	registryMu.Lock()
	defer registryMu.Unlock()
	registry[cp.Name] = &cp
	return nil
}

// Lookup returns the registered model for name.
func Lookup(name string) (*Model, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	m, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownModel, name)
	}
	return m, nil
}

// Names lists all registered model names, sorted.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadModels reads a YAML list of models from r and registers each.
// It returns how many models were registered. A validation failure
// stops loading; models registered before the failure stay registered.
func LoadModels(r io.Reader) (int, error) {
	var models []Model
	if err := yaml.NewDecoder(r).Decode(&models); err != nil {
		return 0, fmt.Errorf("descriptor: decode models: %w", err)
	}
	for i := range models {
		if err := Register(&models[i]); err != nil {
			return i, err
		}
	}
	return len(models), nil
}

func init() {
	builtins := []*Model{
		{
			Name:            "pro26",
			ClockSources:    []ClockSource{ClockInternal, ClockSpdif, ClockAdatA, ClockAdatB, ClockWordClock},
			Rates:           []uint32{44100, 48000, 88200, 96000, 176400, 192000},
			AnalogInputs:    8,
			SpdifInputs:     2,
			AdatInputs:      16,
			OutputPairs:     4,
			MixerChannels:   10,
			PhantomPowering: 2,
			InsertSwaps:     2,
		},
		{
			Name:            "duet",
			ClockSources:    []ClockSource{ClockInternal, ClockSpdif},
			Rates:           []uint32{44100, 48000, 88200, 96000},
			AnalogInputs:    2,
			OutputPairs:     1,
			MixerChannels:   4,
			PhantomPowering: 2,
		},
		{
			Name:          "pro10",
			ClockSources:  []ClockSource{ClockInternal, ClockSpdif},
			Rates:         []uint32{44100, 48000, 88200, 96000},
			AnalogInputs:  8,
			SpdifInputs:   2,
			AdatInputs:    0,
			OutputPairs:   4,
			MixerChannels: 10,
		},
	}
	for _, m := range builtins {
		if err := Register(m); err != nil {
			panic(err)
		}
	}
}
