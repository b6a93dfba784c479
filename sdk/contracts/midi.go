package contracts

import "context"

// MIDI represents a decoded three-byte MIDI message with a timestamp.
type MIDI struct {
	Timestamp uint64 // Timestamp indicates the time the event occurred.
	Command   byte   // Command is the status byte with the channel nibble masked out.
	Channel   byte   // Channel is the zero-based channel number.
	Note      byte   // Note is the first data byte (note number or controller).
	Velocity  byte   // Velocity is the second data byte.
}

// NewMIDI splits a raw message into its status and data fields.
func NewMIDI(timestamp uint64, data []byte) MIDI {
	return MIDI{
		Timestamp: timestamp,
		Command:   data[0] & 0xF0,
		Channel:   data[0] & 0x0F,
		Note:      data[1],
		Velocity:  data[2],
	}
}

// MessageLength returns the size in bytes of a message starting with status.
// It returns 0 for data bytes and for system-exclusive, whose length is variable.
func MessageLength(status byte) int {
	switch {
	case status < 0x80:
		return 0
	case status < 0xC0, status >= 0xE0 && status < 0xF0:
		return 3
	case status < 0xE0:
		return 2
	}

	switch status {
	case 0xF0:
		return 0
	case 0xF1, 0xF3:
		return 2
	case 0xF2:
		return 3
	default:
		return 1
	}
}

// MessageHandler receives raw MIDI messages as [status, data1, data2, ...].
type MessageHandler func(data []byte)

// Input is a MIDI input device that delivers messages to a single handler.
type Input interface {
	ID() string
	Info() DeviceInfo
	// SetMessageHandler replaces the current handler. A nil handler stops delivery.
	SetMessageHandler(handler MessageHandler)
}

// Access is the granted view of the host's MIDI inputs.
type Access interface {
	Inputs() []Input
	// SetStateChangeHandler replaces the handler invoked whenever the set of inputs changes.
	SetStateChangeHandler(handler func(Access))
}

// AccessOptions are the parameters of a capability request.
type AccessOptions struct {
	SysEx bool
}

// AccessProvider grants access to the host's MIDI inputs.
type AccessProvider interface {
	// RequestAccess blocks until access is granted or rejected. The returned
	// Access stays live until ctx is cancelled.
	RequestAccess(ctx context.Context, options AccessOptions) (Access, error)
}
