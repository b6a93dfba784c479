package contracts

import "errors"

var (
	// ErrUnsupportedHost is returned when the host offers no MIDI input capability.
	ErrUnsupportedHost = errors.New("MIDI input is not supported on this host")
	// ErrSysExUnsupported is returned when system-exclusive access is requested.
	ErrSysExUnsupported = errors.New("system-exclusive messages are not supported")
)
