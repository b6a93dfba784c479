//go:build darwin
// +build darwin

package mididarwin

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/leandrodaf/miditex/internal/midi/hotplug"
	"github.com/leandrodaf/miditex/sdk/contracts"
	"github.com/youpy/go-coremidi"
)

// Error definitions for MIDI connection and handling issues.
var (
	ErrMIDIConnectionError = errors.New("error connecting to MIDI device")
	ErrCreateInputPort     = errors.New("error creating input port")
)

// internalPortConnection is an interface for handling disconnection from a MIDI port.
type internalPortConnection interface {
	Disconnect()
}

// AccessProvider grants access to CoreMIDI sources.
type AccessProvider struct {
	logger       contracts.Logger
	config       *contracts.CoreMIDIConfig
	pollInterval time.Duration
}

// NewAccessProvider prepares a CoreMIDI provider. No CoreMIDI client is
// created until access is requested.
func NewAccessProvider(options *contracts.ClientOptions) (contracts.AccessProvider, error) {
	return &AccessProvider{
		logger:       options.Logger,
		config:       options.CoreMIDIConfig,
		pollInterval: options.PollInterval,
	}, nil
}

// RequestAccess creates the CoreMIDI client and starts watching sources until ctx is done.
func (p *AccessProvider) RequestAccess(ctx context.Context, options contracts.AccessOptions) (contracts.Access, error) {
	if options.SysEx {
		return nil, contracts.ErrSysExUnsupported
	}

	client, err := coremidi.NewClient(p.config.ClientName)
	if err != nil {
		return nil, fmt.Errorf("creating CoreMIDI client: %w", err)
	}
	p.logger.Info("MIDI client successfully created")

	s := &sources{
		client: client,
		logger: p.logger,
		known:  make(map[string]*input),
	}
	w := hotplug.NewWatcher(s.list, p.pollInterval, p.logger)
	w.Scan()
	go func() {
		w.Run(ctx)
		s.disconnectAll()
	}()
	return w, nil
}

// sources caches one input per CoreMIDI source.
type sources struct {
	client coremidi.Client
	logger contracts.Logger

	mu    sync.Mutex
	known map[string]*input
}

func (s *sources) list() ([]contracts.Input, error) {
	all, err := coremidi.AllSources()
	if err != nil {
		return nil, fmt.Errorf("error listing MIDI sources: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool, len(all))
	inputs := make([]contracts.Input, 0, len(all))
	for i, source := range all {
		entity := source.Entity()
		id := fmt.Sprintf("%s/%s/%s", entity.Manufacturer(), entity.Name(), source.Name())
		if seen[id] {
			id = fmt.Sprintf("%s#%d", id, i)
		}
		seen[id] = true

		in, ok := s.known[id]
		if !ok {
			in = &input{
				id:     id,
				source: source,
				client: s.client,
				logger: s.logger,
				info: contracts.DeviceInfo{
					Name:         source.Name(),
					EntityName:   entity.Name(),
					Manufacturer: entity.Manufacturer(),
				},
			}
			s.known[id] = in
		}
		inputs = append(inputs, in)
	}

	for id, in := range s.known {
		if !seen[id] {
			in.disconnect()
			delete(s.known, id)
		}
	}
	return inputs, nil
}

func (s *sources) disconnectAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, in := range s.known {
		in.disconnect()
		delete(s.known, id)
	}
}

// input is a single CoreMIDI source with its own input port.
type input struct {
	id     string
	info   contracts.DeviceInfo
	source coremidi.Source
	client coremidi.Client
	logger contracts.Logger

	handler atomic.Value // contracts.MessageHandler

	mu       sync.Mutex
	portConn internalPortConnection
}

func (in *input) ID() string                 { return in.id }
func (in *input) Info() contracts.DeviceInfo { return in.info }

// SetMessageHandler replaces the handler and connects the source on first use.
func (in *input) SetMessageHandler(handler contracts.MessageHandler) {
	in.handler.Store(handler)

	in.mu.Lock()
	defer in.mu.Unlock()
	if handler == nil || in.portConn != nil {
		return
	}

	if err := in.connect(); err != nil {
		in.logger.Error("Failed to connect MIDI source",
			in.logger.Field().String("name", in.info.Name),
			in.logger.Field().Error("error", err))
	}
}

func (in *input) connect() error {
	port, err := coremidi.NewInputPort(in.client, "Input Port", in.handleMIDIMessage)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCreateInputPort, err)
	}

	conn, err := port.Connect(in.source)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMIDIConnectionError, err)
	}
	in.portConn = conn
	in.logger.Info("MIDI device successfully connected", in.logger.Field().String("name", in.info.Name))
	return nil
}

func (in *input) disconnect() {
	in.handler.Store(contracts.MessageHandler(nil))

	in.mu.Lock()
	defer in.mu.Unlock()
	if in.portConn != nil {
		in.portConn.Disconnect()
		in.portConn = nil
	}
}

// handleMIDIMessage forwards complete packets to the current handler.
func (in *input) handleMIDIMessage(_ coremidi.Source, packet coremidi.Packet) {
	if len(packet.Data) == 0 {
		return
	}
	// Clock, program change and other short messages carry no data2.
	if contracts.MessageLength(packet.Data[0]) < 3 {
		in.logger.Debug("short MIDI message ignored", in.logger.Field().Uint8("status", packet.Data[0]))
		return
	}
	if len(packet.Data) < 3 {
		in.logger.Warn("incomplete MIDI packet", in.logger.Field().Int("length", len(packet.Data)))
		return
	}

	if handler, _ := in.handler.Load().(contracts.MessageHandler); handler != nil {
		handler(packet.Data)
	}
}
