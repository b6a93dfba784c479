package main

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/leandrodaf/miditex/sdk/contracts"
	gomidi "gitlab.com/gomidi/midi/v2"
)

// monitor wraps an AccessProvider and records every message passing through
// the inputs it hands out.
type monitor struct {
	contracts.AccessProvider
	logger contracts.Logger

	last  atomic.Value // string
	count atomic.Uint64
}

func newMonitor(p contracts.AccessProvider, logger contracts.Logger) *monitor {
	return &monitor{AccessProvider: p, logger: logger}
}

func (m *monitor) RequestAccess(ctx context.Context, options contracts.AccessOptions) (contracts.Access, error) {
	access, err := m.AccessProvider.RequestAccess(ctx, options)
	if err != nil {
		return nil, err
	}
	return &monitoredAccess{Access: access, mon: m}, nil
}

func (m *monitor) observe(data []byte) {
	desc := gomidi.Message(data).String()
	m.last.Store(desc)
	m.count.Add(1)
	ev := contracts.NewMIDI(uint64(time.Now().UnixNano()), data)
	m.logger.Debug("input event",
		m.logger.Field().String("message", desc),
		m.logger.Field().Uint8("command", ev.Command),
		m.logger.Field().Uint8("channel", ev.Channel+1),
		m.logger.Field().Uint8("data1", ev.Note),
		m.logger.Field().Uint8("data2", ev.Velocity),
		m.logger.Field().Uint64("timestamp", ev.Timestamp))
}

// Last describes the most recent message, or "" if none arrived yet.
func (m *monitor) Last() string {
	s, _ := m.last.Load().(string)
	return s
}

func (m *monitor) Count() uint64 {
	return m.count.Load()
}

type monitoredAccess struct {
	contracts.Access
	mon *monitor
}

func (a *monitoredAccess) Inputs() []contracts.Input {
	inputs := a.Access.Inputs()
	out := make([]contracts.Input, len(inputs))
	for i, in := range inputs {
		out[i] = &monitoredInput{Input: in, mon: a.mon}
	}
	return out
}

func (a *monitoredAccess) SetStateChangeHandler(handler func(contracts.Access)) {
	if handler == nil {
		a.Access.SetStateChangeHandler(nil)
		return
	}
	a.Access.SetStateChangeHandler(func(contracts.Access) { handler(a) })
}

type monitoredInput struct {
	contracts.Input
	mon *monitor
}

func (i *monitoredInput) SetMessageHandler(handler contracts.MessageHandler) {
	if handler == nil {
		i.Input.SetMessageHandler(nil)
		return
	}
	i.Input.SetMessageHandler(func(data []byte) {
		i.mon.observe(data)
		handler(data)
	})
}
