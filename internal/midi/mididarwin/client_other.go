//go:build !darwin
// +build !darwin

package mididarwin

import (
	"fmt"

	"github.com/leandrodaf/miditex/sdk/contracts"
)

// NewAccessProvider reports CoreMIDI as unavailable outside macOS.
func NewAccessProvider(options *contracts.ClientOptions) (contracts.AccessProvider, error) {
	return nil, fmt.Errorf("%w: CoreMIDI requires macOS", contracts.ErrUnsupportedHost)
}
