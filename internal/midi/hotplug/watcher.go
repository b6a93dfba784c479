// Package hotplug turns a device listing function into a contracts.Access
// that notices devices appearing and disappearing.
package hotplug

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/leandrodaf/miditex/sdk/contracts"
)

// ListFunc returns the inputs currently present. Implementations should return
// the same Input value for the same device across calls so handler
// assignments survive a rescan.
type ListFunc func() ([]contracts.Input, error)

// Watcher is a polling contracts.Access.
type Watcher struct {
	list     ListFunc
	interval time.Duration
	logger   contracts.Logger

	mu       sync.Mutex
	inputs   []contracts.Input
	ids      []string
	onChange func(contracts.Access)
}

// NewWatcher creates a watcher. Call Scan once before handing it out and Run
// to keep it current.
func NewWatcher(list ListFunc, interval time.Duration, logger contracts.Logger) *Watcher {
	if interval <= 0 {
		interval = time.Second
	}
	return &Watcher{
		list:     list,
		interval: interval,
		logger:   logger,
	}
}

// Inputs returns the inputs found by the last successful scan.
func (w *Watcher) Inputs() []contracts.Input {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]contracts.Input, len(w.inputs))
	copy(out, w.inputs)
	return out
}

// SetStateChangeHandler replaces the device list change handler.
func (w *Watcher) SetStateChangeHandler(handler func(contracts.Access)) {
	w.mu.Lock()
	w.onChange = handler
	w.mu.Unlock()
}

// Scan refreshes the device list and calls the state change handler if the
// set of device IDs changed. Listing errors keep the previous snapshot.
func (w *Watcher) Scan() bool {
	inputs, err := w.list()
	if err != nil {
		w.logger.Warn("Failed to list MIDI inputs", w.logger.Field().Error("error", err))
		return false
	}

	ids := make([]string, len(inputs))
	for i, in := range inputs {
		ids[i] = in.ID()
	}
	slices.Sort(ids)

	w.mu.Lock()
	if slices.Equal(ids, w.ids) {
		w.mu.Unlock()
		return false
	}
	w.inputs = inputs
	w.ids = ids
	handler := w.onChange
	w.mu.Unlock()

	w.logger.Debug("MIDI device list changed", w.logger.Field().Int("inputs", len(inputs)))
	if handler != nil {
		handler(w)
	}
	return true
}

// Run rescans every interval until ctx is done. It blocks.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Scan()
		}
	}
}
