//go:build !linux || !cgo

package midirtmidi

import (
	"fmt"

	"github.com/leandrodaf/miditex/sdk/contracts"
)

// NewAccessProvider reports RtMidi as unavailable without Linux and cgo.
func NewAccessProvider(options *contracts.ClientOptions) (contracts.AccessProvider, error) {
	return nil, fmt.Errorf("%w: RtMidi requires linux with cgo", contracts.ErrUnsupportedHost)
}
