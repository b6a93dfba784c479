//go:build !windows
// +build !windows

package midiwindows

import (
	"fmt"

	"github.com/leandrodaf/miditex/sdk/contracts"
)

// NewAccessProvider reports WinMM as unavailable outside Windows.
func NewAccessProvider(options *contracts.ClientOptions) (contracts.AccessProvider, error) {
	return nil, fmt.Errorf("%w: WinMM requires Windows", contracts.ErrUnsupportedHost)
}
