package midi

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/leandrodaf/miditex/sdk/contracts"
	"github.com/leandrodaf/miditex/sdk/texture"
)

const (
	// GridWidth covers every status byte, GridHeight every data1 value.
	GridWidth  = 256
	GridHeight = 128
	// NoteCount is the number of MIDI note numbers.
	NoteCount = 128

	noteOffStatus = 0x80
	noteOnStatus  = 0x90
	noteOnEnd     = 0xA0
)

// EventMapper writes incoming MIDI messages into two textures:
//   - MidiTexture (256x128): the last data2 seen for every (status, data1) pair,
//     at offset status + data1*256.
//   - NoteTexture (128x1): note velocities rescaled to [0, 256), zeroed on note-off.
//
// Messages are dropped while the mapper is disabled.
type EventMapper struct {
	MidiTexture *texture.Texture
	NoteTexture *texture.Texture

	midiArray []byte
	noteArray []byte

	logger   contracts.Logger
	provider contracts.AccessProvider

	enabled atomic.Bool
	mu      sync.Mutex
}

// NewEventMapper creates a disabled mapper with zeroed textures.
//
// opts ...contracts.Option: A variadic list of option functions to customize the mapper configuration.
//
// Returns:
//   - *EventMapper: the mapper.
//   - error: An error, if any occurred while applying the options.
func NewEventMapper(opts ...contracts.Option) (*EventMapper, error) {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}

	m := &EventMapper{
		midiArray: make([]byte, GridWidth*GridHeight),
		noteArray: make([]byte, NoteCount),
		logger:    options.Logger,
		provider:  options.AccessProvider,
	}
	m.MidiTexture = texture.New(m.midiArray, GridWidth, GridHeight)
	m.NoteTexture = texture.New(m.noteArray, NoteCount, 1)
	return m, nil
}

// Enable opens the gate and requests MIDI input access in the background.
// The returned channel yields the outcome of the request once and is then
// closed; it may be ignored. Failures are also logged. Calling Enable again
// issues a new request.
func (m *EventMapper) Enable(ctx context.Context) <-chan error {
	m.enabled.Store(true)

	result := make(chan error, 1)
	if m.provider == nil {
		m.logger.Error("This platform doesn't support MIDI input")
		result <- contracts.ErrUnsupportedHost
		close(result)
		return result
	}

	go func() {
		defer close(result)

		access, err := m.provider.RequestAccess(ctx, contracts.AccessOptions{SysEx: false})
		if err != nil {
			if errors.Is(err, contracts.ErrUnsupportedHost) {
				m.logger.Error("This platform doesn't support MIDI input")
			} else {
				m.logger.Error("Failed to load MIDI API", m.logger.Field().Error("error", err))
			}
			result <- err
			return
		}

		m.OnStateChange(access)
		result <- nil
	}()
	return result
}

// Disable closes the gate. Input handlers stay registered.
func (m *EventMapper) Disable() {
	m.enabled.Store(false)
}

// Enabled reports whether messages are currently applied.
func (m *EventMapper) Enabled() bool {
	return m.enabled.Load()
}

// OnStateChange wires every input of access to OnMessage and subscribes to
// further device list changes.
func (m *EventMapper) OnStateChange(access contracts.Access) {
	inputs := access.Inputs()
	for _, in := range inputs {
		in.SetMessageHandler(m.OnMessage)
		m.logger.Debug("MIDI input wired",
			m.logger.Field().String("id", in.ID()),
			m.logger.Field().String("name", in.Info().Name))
	}
	m.logger.Info("MIDI inputs updated", m.logger.Field().Int("inputs", len(inputs)))

	access.SetStateChangeHandler(m.OnStateChange)
}

// OnMessage applies a raw [status, data1, data2] message. data must hold at
// least three bytes and data1 must be a valid note number; neither is checked.
func (m *EventMapper) OnMessage(data []byte) {
	if !m.enabled.Load() {
		return
	}

	status, data1, data2 := data[0], data[1], data[2]

	m.mu.Lock()
	defer m.mu.Unlock()

	m.MidiTexture.Set(int(status)+int(data1)*GridWidth, data2)

	switch {
	case noteOnStatus <= status && status < noteOnEnd:
		m.NoteTexture.Set(int(data1), data2*2)
	case noteOffStatus <= status && status < noteOnStatus:
		m.NoteTexture.Set(int(data1), 0)
	}
}
