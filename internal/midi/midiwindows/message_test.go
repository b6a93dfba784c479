package midiwindows

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnpackShortMessage(t *testing.T) {
	for _, tc := range []struct {
		param    uintptr
		expected []byte
		ok       bool
	}{
		{param: 0x643C90, expected: []byte{0x90, 60, 100}, ok: true},
		{param: 0x003C80, expected: []byte{0x80, 60, 0}, ok: true},
		{param: 0x4007B0, expected: []byte{0xB0, 7, 64}, ok: true},
		{param: 0x7F00E3, expected: []byte{0xE3, 0, 127}, ok: true},
		{param: 0xFFFF643C90, expected: []byte{0x90, 60, 100}, ok: true},
		{param: 0x0005C0, ok: false}, // program change
		{param: 0x0040D2, ok: false}, // channel pressure
		{param: 0x0000F8, ok: false}, // clock
		{param: 0x0000FE, ok: false}, // active sensing
		{param: 0x000000, ok: false},
	} {
		t.Run(fmt.Sprintf("%#x", tc.param), func(t *testing.T) {
			data, ok := unpackShortMessage(tc.param)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.expected, data)
		})
	}
}
