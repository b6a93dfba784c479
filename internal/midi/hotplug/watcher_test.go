package hotplug

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/leandrodaf/miditex/internal/logger"
	"github.com/leandrodaf/miditex/sdk/contracts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubInput struct {
	id string
}

func (s stubInput) ID() string                                   { return s.id }
func (s stubInput) Info() contracts.DeviceInfo                   { return contracts.DeviceInfo{Name: s.id} }
func (s stubInput) SetMessageHandler(_ contracts.MessageHandler) {}

type stubList struct {
	mu     sync.Mutex
	inputs []contracts.Input
	err    error
}

func (s *stubList) set(err error, ids ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
	s.inputs = nil
	for _, id := range ids {
		s.inputs = append(s.inputs, stubInput{id: id})
	}
}

func (s *stubList) list() ([]contracts.Input, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.inputs, nil
}

func TestScan(t *testing.T) {
	src := &stubList{}
	w := NewWatcher(src.list, time.Second, logger.NewZapLogger())

	calls := 0
	w.SetStateChangeHandler(func(a contracts.Access) {
		calls++
		assert.Same(t, w, a)
	})

	for i, tc := range []struct {
		ids      []string
		err      error
		changed  bool
		expected int
	}{
		{ids: []string{"a", "b"}, changed: true, expected: 2},
		{ids: []string{"b", "a"}, changed: false, expected: 2},
		{ids: []string{"a", "b", "c"}, changed: true, expected: 3},
		{err: errors.New("driver gone"), changed: false, expected: 3},
		{ids: []string{"c"}, changed: true, expected: 1},
		{ids: nil, changed: true, expected: 0},
	} {
		src.set(tc.err, tc.ids...)
		assert.Equal(t, tc.changed, w.Scan(), "step %d", i)
		assert.Len(t, w.Inputs(), tc.expected, "step %d", i)
	}
	assert.Equal(t, 4, calls)
}

func TestScanWithoutHandler(t *testing.T) {
	src := &stubList{}
	src.set(nil, "a")
	w := NewWatcher(src.list, time.Second, logger.NewZapLogger())

	assert.True(t, w.Scan())
	assert.Len(t, w.Inputs(), 1)
}

func TestRun(t *testing.T) {
	src := &stubList{}
	w := NewWatcher(src.list, time.Millisecond, logger.NewZapLogger())

	changed := make(chan int, 8)
	w.SetStateChangeHandler(func(a contracts.Access) {
		changed <- len(a.Inputs())
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	src.set(nil, "a", "b")
	select {
	case n := <-changed:
		assert.Equal(t, 2, n)
	case <-time.After(2 * time.Second):
		require.Fail(t, "state change not reported")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		require.Fail(t, "Run did not stop")
	}
}
