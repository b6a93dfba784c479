//go:build windows
// +build windows

package midiwindows

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/leandrodaf/miditex/internal/midi/hotplug"
	"github.com/leandrodaf/miditex/sdk/contracts"
	"golang.org/x/sys/windows"
)

// Type definitions for MIDI handles
type HMIDIIN windows.Handle

// Constants for callback flags
const (
	CALLBACK_FUNCTION = 0x00030000 // Indicates that the callback is a function
	MIDI_IO_STATUS    = 0x00000020 // MIDI input/output status
)

// Constants for MIDI message types
const (
	MIM_OPEN      = 0x3C1 // MIDI device opened
	MIM_CLOSE     = 0x3C2 // MIDI device closed
	MIM_DATA      = 0x3C3 // MIDI data received
	MIM_ERROR     = 0x3C5 // MIDI error
	MIM_LONGERROR = 0x3C6 // Long MIDI error
	MIM_MOREDATA  = 0x3CC // More MIDI data available
)

// Struct representing MIDI device capabilities
type midiInCaps struct {
	wMid           uint16
	wPid           uint16
	vDriverVersion uint32
	szPname        [32]uint16
	dwSupport      uint32
}

// Load the winmm.dll library and required functions
var (
	winmm                = windows.NewLazySystemDLL("winmm.dll")
	procMidiInGetNumDevs = winmm.NewProc("midiInGetNumDevs")
	procMidiInGetDevCaps = winmm.NewProc("midiInGetDevCapsW")
	procMidiInOpen       = winmm.NewProc("midiInOpen")
	procMidiInStart      = winmm.NewProc("midiInStart")
	procMidiInStop       = winmm.NewProc("midiInStop")
	procMidiInClose      = winmm.NewProc("midiInClose")
)

// WinMM callbacks carry an opaque instance value; inputs are looked up by it
// so no Go pointer is handed to the OS.
var (
	callbackOnce sync.Once
	callbackPtr  uintptr

	registryMu sync.RWMutex
	registry   = map[uintptr]*input{}
	nextKey    uintptr
)

func register(in *input) uintptr {
	registryMu.Lock()
	defer registryMu.Unlock()
	nextKey++
	registry[nextKey] = in
	return nextKey
}

func unregister(key uintptr) {
	registryMu.Lock()
	delete(registry, key)
	registryMu.Unlock()
}

func lookup(key uintptr) *input {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return registry[key]
}

// AccessProvider grants access to WinMM MIDI inputs.
type AccessProvider struct {
	logger       contracts.Logger
	pollInterval time.Duration
}

// NewAccessProvider creates a WinMM provider.
func NewAccessProvider(options *contracts.ClientOptions) (contracts.AccessProvider, error) {
	if err := winmm.Load(); err != nil {
		return nil, fmt.Errorf("%w: %v", contracts.ErrUnsupportedHost, err)
	}
	return &AccessProvider{
		logger:       options.Logger,
		pollInterval: options.PollInterval,
	}, nil
}

// RequestAccess starts watching WinMM inputs until ctx is done.
func (p *AccessProvider) RequestAccess(ctx context.Context, options contracts.AccessOptions) (contracts.Access, error) {
	if options.SysEx {
		return nil, contracts.ErrSysExUnsupported
	}

	callbackOnce.Do(func() {
		callbackPtr = windows.NewCallback(midiInCallback)
	})

	d := &devices{logger: p.logger, known: make(map[string]*input)}
	w := hotplug.NewWatcher(d.list, p.pollInterval, p.logger)
	w.Scan()
	go func() {
		w.Run(ctx)
		d.closeAll()
	}()
	p.logger.Info("MIDI access granted for Windows")
	return w, nil
}

type devices struct {
	logger contracts.Logger

	mu    sync.Mutex
	known map[string]*input
}

// list enumerates WinMM inputs. Device indices shift when devices come and
// go, so the index is part of the ID.
func (d *devices) list() ([]contracts.Input, error) {
	r0, _, _ := procMidiInGetNumDevs.Call()
	numDevices := uint32(r0)

	d.mu.Lock()
	defer d.mu.Unlock()

	seen := make(map[string]bool, numDevices)
	inputs := make([]contracts.Input, 0, numDevices)
	for i := uint32(0); i < numDevices; i++ {
		var caps midiInCaps
		r1, _, _ := procMidiInGetDevCaps.Call(
			uintptr(i),
			uintptr(unsafe.Pointer(&caps)),
			unsafe.Sizeof(caps),
		)
		if r1 != 0 {
			d.logger.Warn(fmt.Sprintf("Failed to get information for MIDI device %d", i))
			continue
		}
		name := windows.UTF16ToString(caps.szPname[:])
		id := fmt.Sprintf("%d:%s", i, name)
		seen[id] = true

		in, ok := d.known[id]
		if !ok {
			in = &input{
				id:     id,
				index:  i,
				logger: d.logger,
				info: contracts.DeviceInfo{
					Name:         name,
					EntityName:   name,
					Manufacturer: fmt.Sprintf("MID: %d PID: %d", caps.wMid, caps.wPid),
				},
			}
			d.known[id] = in
		}
		inputs = append(inputs, in)
	}

	for id, in := range d.known {
		if !seen[id] {
			in.close()
			delete(d.known, id)
		}
	}
	return inputs, nil
}

func (d *devices) closeAll() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for id, in := range d.known {
		in.close()
		delete(d.known, id)
	}
}

// input is one WinMM input device.
type input struct {
	id     string
	index  uint32
	info   contracts.DeviceInfo
	logger contracts.Logger

	handler atomic.Value // contracts.MessageHandler

	mu     sync.Mutex
	handle HMIDIIN
	key    uintptr
}

func (in *input) ID() string                 { return in.id }
func (in *input) Info() contracts.DeviceInfo { return in.info }

// SetMessageHandler replaces the handler and opens the device on first use.
func (in *input) SetMessageHandler(handler contracts.MessageHandler) {
	in.handler.Store(handler)

	in.mu.Lock()
	defer in.mu.Unlock()
	if handler == nil || in.handle != 0 {
		return
	}

	if err := in.open(); err != nil {
		in.logger.Error(err.Error())
	}
}

func (in *input) open() error {
	in.key = register(in)

	r1, _, err := procMidiInOpen.Call(
		uintptr(unsafe.Pointer(&in.handle)),
		uintptr(in.index),
		callbackPtr,
		in.key,
		uintptr(CALLBACK_FUNCTION|MIDI_IO_STATUS),
	)
	if r1 != 0 {
		unregister(in.key)
		in.handle = 0
		return fmt.Errorf("failed to open MIDI device %d: %v", in.index, err)
	}

	r1, _, err = procMidiInStart.Call(uintptr(in.handle))
	if r1 != 0 {
		procMidiInClose.Call(uintptr(in.handle))
		unregister(in.key)
		in.handle = 0
		return fmt.Errorf("failed to start MIDI capture on device %d: %v", in.index, err)
	}

	in.logger.Info(fmt.Sprintf("MIDI device %d connected", in.index), in.logger.Field().String("name", in.info.Name))
	return nil
}

func (in *input) close() {
	in.handler.Store(contracts.MessageHandler(nil))

	in.mu.Lock()
	defer in.mu.Unlock()
	if in.handle == 0 {
		return
	}

	if r1, _, err := procMidiInStop.Call(uintptr(in.handle)); r1 != 0 {
		in.logger.Error(fmt.Sprintf("Failed to stop MIDI capture: %v", err))
	}
	if r1, _, err := procMidiInClose.Call(uintptr(in.handle)); r1 != 0 {
		in.logger.Error(fmt.Sprintf("Failed to close MIDI device: %v", err))
	}
	unregister(in.key)
	in.handle = 0
}

func (in *input) currentHandler() contracts.MessageHandler {
	handler, _ := in.handler.Load().(contracts.MessageHandler)
	return handler
}

// midiInCallback processes incoming MIDI messages
func midiInCallback(hMidiIn uintptr, wMsg uint32, dwInstance uintptr, dwParam1 uintptr, dwParam2 uintptr) uintptr {
	in := lookup(dwInstance)
	if in == nil {
		return 0
	}

	switch wMsg {
	case MIM_OPEN:
		in.logger.Debug("MIDI device opened")
	case MIM_CLOSE:
		in.logger.Debug("MIDI device closed")
	case MIM_DATA:
		data, ok := unpackShortMessage(dwParam1)
		if !ok {
			return 0
		}
		if handler := in.currentHandler(); handler != nil {
			handler(data)
		}
	case MIM_ERROR, MIM_LONGERROR:
		in.logger.Error(fmt.Sprintf("MIDI error: msg=0x%X", wMsg))
	case MIM_MOREDATA:
		in.logger.Debug("Received MIM_MOREDATA message; ignored")
	default:
		in.logger.Warn(fmt.Sprintf("Unknown MIDI message: 0x%X", wMsg))
	}

	return 0
}
