package midi

import (
	"fmt"
	"runtime"

	"github.com/leandrodaf/miditex/internal/midi/mididarwin"
	"github.com/leandrodaf/miditex/internal/midi/midirtmidi"
	"github.com/leandrodaf/miditex/internal/midi/midiwindows"
	"github.com/leandrodaf/miditex/sdk/contracts"
)

// providerInitializers maps OS names to the MIDI driver backing them.
var providerInitializers = map[string]func(*contracts.ClientOptions) (contracts.AccessProvider, error){
	"darwin":  mididarwin.NewAccessProvider,  // CoreMIDI.
	"windows": midiwindows.NewAccessProvider, // WinMM.
	"linux":   midirtmidi.NewAccessProvider,  // ALSA through RtMidi.
}

// NewAccessProvider returns the MIDI driver for the current operating system.
// It returns an error wrapping contracts.ErrUnsupportedHost when none exists.
func NewAccessProvider(opts *contracts.ClientOptions) (contracts.AccessProvider, error) {
	if initializer, exists := providerInitializers[runtime.GOOS]; exists {
		return initializer(opts)
	}
	return nil, fmt.Errorf("%w: %s", contracts.ErrUnsupportedHost, runtime.GOOS)
}
