package midiwindows

import "github.com/leandrodaf/miditex/sdk/contracts"

// unpackShortMessage decodes the dwParam1 of a MIM_DATA callback. WinMM packs
// status, data1 and data2 into the low three bytes and zero-pads shorter
// messages, so only messages that are really three bytes long are reported.
func unpackShortMessage(param uintptr) ([]byte, bool) {
	status := byte(param & 0xFF)
	if contracts.MessageLength(status) < 3 {
		return nil, false
	}
	return []byte{
		status,
		byte((param >> 8) & 0xFF),
		byte((param >> 16) & 0xFF),
	}, true
}
