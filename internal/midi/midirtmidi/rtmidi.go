//go:build linux && cgo

// Package midirtmidi provides MIDI input access through RtMidi (ALSA on Linux).
package midirtmidi

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/leandrodaf/miditex/internal/midi/hotplug"
	"github.com/leandrodaf/miditex/sdk/contracts"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

// AccessProvider grants access to RtMidi inputs.
type AccessProvider struct {
	logger       contracts.Logger
	pollInterval time.Duration
}

// NewAccessProvider creates an RtMidi provider. The driver itself is opened
// when access is requested.
func NewAccessProvider(options *contracts.ClientOptions) (contracts.AccessProvider, error) {
	return &AccessProvider{
		logger:       options.Logger,
		pollInterval: options.PollInterval,
	}, nil
}

// RequestAccess opens the RtMidi driver and watches its inputs until ctx is done.
func (p *AccessProvider) RequestAccess(ctx context.Context, options contracts.AccessOptions) (contracts.Access, error) {
	if options.SysEx {
		return nil, contracts.ErrSysExUnsupported
	}

	drv, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("rtmididrv: %w", err)
	}

	pp := &ports{drv: drv, logger: p.logger, known: make(map[string]*input)}
	w := hotplug.NewWatcher(pp.list, p.pollInterval, p.logger)
	w.Scan()
	go func() {
		w.Run(ctx)
		pp.close()
	}()
	return w, nil
}

type ports struct {
	drv    *rtmididrv.Driver
	logger contracts.Logger

	mu    sync.Mutex
	known map[string]*input
}

func (p *ports) list() ([]contracts.Input, error) {
	ins, err := p.drv.Ins()
	if err != nil {
		return nil, fmt.Errorf("list inputs: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	seen := make(map[string]bool, len(ins))
	inputs := make([]contracts.Input, 0, len(ins))
	for _, port := range ins {
		id := fmt.Sprintf("%d:%s", port.Number(), port.String())
		seen[id] = true

		in, ok := p.known[id]
		if !ok {
			in = &input{id: id, port: port, logger: p.logger}
			p.known[id] = in
		}
		inputs = append(inputs, in)
	}

	for id, in := range p.known {
		if !seen[id] {
			in.closeConn()
			delete(p.known, id)
		}
	}
	return inputs, nil
}

func (p *ports) close() {
	p.mu.Lock()
	for id, in := range p.known {
		in.closeConn()
		delete(p.known, id)
	}
	p.mu.Unlock()

	if err := p.drv.Close(); err != nil {
		p.logger.Warn("Failed to close RtMidi driver", p.logger.Field().Error("error", err))
	}
}

// input is one RtMidi input port.
type input struct {
	id     string
	port   drivers.In
	logger contracts.Logger

	handler atomic.Value // contracts.MessageHandler

	mu     sync.Mutex
	stopFn func()
}

func (in *input) ID() string { return in.id }

func (in *input) Info() contracts.DeviceInfo {
	return contracts.DeviceInfo{Name: in.port.String(), EntityName: in.port.String()}
}

// SetMessageHandler replaces the handler and starts listening on first use.
func (in *input) SetMessageHandler(handler contracts.MessageHandler) {
	in.handler.Store(handler)

	in.mu.Lock()
	defer in.mu.Unlock()
	if handler == nil || in.stopFn != nil {
		return
	}

	if err := in.listen(); err != nil {
		in.logger.Error("Failed to listen to MIDI input",
			in.logger.Field().String("name", in.port.String()),
			in.logger.Field().Error("error", err))
	}
}

func (in *input) listen() error {
	name := in.port.String()
	if err := in.port.Open(); err != nil {
		return fmt.Errorf("open %q: %w", name, err)
	}

	stop, err := midi.ListenTo(in.port, func(msg midi.Message, _ int32) {
		if len(msg) < 3 || contracts.MessageLength(msg[0]) < 3 {
			in.logger.Debug("MIDI message ignored", in.logger.Field().String("message", msg.String()))
			return
		}
		if handler, _ := in.handler.Load().(contracts.MessageHandler); handler != nil {
			handler([]byte(msg))
		}
	}, midi.HandleError(func(listenErr error) {
		in.logger.Warn("MIDI listener error",
			in.logger.Field().String("name", name),
			in.logger.Field().Error("error", listenErr))
	}))
	if err != nil {
		_ = in.port.Close()
		return fmt.Errorf("listen %q: %w", name, err)
	}

	in.stopFn = stop
	in.logger.Info("MIDI device successfully connected", in.logger.Field().String("name", name))
	return nil
}

func (in *input) closeConn() {
	in.handler.Store(contracts.MessageHandler(nil))

	in.mu.Lock()
	defer in.mu.Unlock()
	if in.stopFn != nil {
		in.stopFn()
		in.stopFn = nil
	}
	if in.port.IsOpen() {
		_ = in.port.Close()
	}
}
