package contracts

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMIDI(t *testing.T) {
	for _, tc := range []struct {
		data     []byte
		expected MIDI
	}{
		{data: []byte{0x90, 60, 100}, expected: MIDI{Timestamp: 1, Command: 0x90, Channel: 0, Note: 60, Velocity: 100}},
		{data: []byte{0x8F, 61, 0}, expected: MIDI{Timestamp: 1, Command: 0x80, Channel: 15, Note: 61, Velocity: 0}},
		{data: []byte{0xB3, 7, 64, 0xFF}, expected: MIDI{Timestamp: 1, Command: 0xB0, Channel: 3, Note: 7, Velocity: 64}},
	} {
		assert.Equal(t, tc.expected, NewMIDI(1, tc.data))
	}
}

func TestMessageLength(t *testing.T) {
	for _, tc := range []struct {
		status   byte
		expected int
	}{
		{status: 0x00, expected: 0},
		{status: 0x7F, expected: 0},
		{status: 0x80, expected: 3},
		{status: 0x9F, expected: 3},
		{status: 0xA3, expected: 3},
		{status: 0xB0, expected: 3},
		{status: 0xC5, expected: 2},
		{status: 0xDF, expected: 2},
		{status: 0xE0, expected: 3},
		{status: 0xF0, expected: 0},
		{status: 0xF1, expected: 2},
		{status: 0xF2, expected: 3},
		{status: 0xF3, expected: 2},
		{status: 0xF6, expected: 1},
		{status: 0xF8, expected: 1},
		{status: 0xFF, expected: 1},
	} {
		t.Run(fmt.Sprintf("0x%02X", tc.status), func(t *testing.T) {
			assert.Equal(t, tc.expected, MessageLength(tc.status))
		})
	}
}
