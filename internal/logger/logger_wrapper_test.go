package logger

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/leandrodaf/miditex/sdk/contracts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLevelFiltering(t *testing.T) {
	for _, tc := range []struct {
		level    contracts.LogLevel
		expected []string
	}{
		{level: contracts.DebugLevel, expected: []string{"debug", "info", "warn", "error"}},
		{level: contracts.InfoLevel, expected: []string{"info", "warn", "error"}},
		{level: contracts.WarnLevel, expected: []string{"warn", "error"}},
		{level: contracts.ErrorLevel, expected: []string{"error"}},
	} {
		t.Run(toZapLevel(tc.level).String(), func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			l := NewWithCore(core)
			l.SetLevel(tc.level)

			l.Debug("debug")
			l.Info("info")
			l.Warn("warn")
			l.Error("error")

			var got []string
			for _, e := range logs.All() {
				got = append(got, e.Message)
			}
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewWithCore(core)

	l.Info("MIDI input wired",
		l.Field().String("device", "Launchkey"),
		l.Field().Int("inputs", 2),
		l.Field().Uint8("status", 0x90),
		l.Field().Error("error", errors.New("boom")),
		l.Field(),
	)

	require.Equal(t, 1, logs.Len())
	ctx := logs.All()[0].ContextMap()
	assert.Equal(t, "Launchkey", ctx["device"])
	assert.Equal(t, int64(2), ctx["inputs"])
	assert.Equal(t, uint64(0x90), ctx["status"])
	assert.Equal(t, "boom", ctx["error"])
	assert.Len(t, ctx, 4)
}

func TestFileDestination(t *testing.T) {
	path := filepath.Join(t.TempDir(), "miditex.log")

	l := NewZapLogger()
	l.SetDestination(contracts.FileLog, path)
	l.Info("written to file")
	l.SetDestination(contracts.ConsoleLog)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}
